package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/spf13/cobra"
)

var evalRadians bool

var evalCmd = &cobra.Command{
	Use:   "eval <keys...>",
	Short: "Press keys on the scientific calculator",
	Long: `Feeds keys to the scientific calculator and prints the display.
Operators fold left to right, there is no precedence. Labels may be
run together; the longest matching label wins, so "2**10" is 2 ** 10.

Examples:
  calc eval "2+3×4="
  calc eval 9 0 sin
  calc eval --rad π cos
  calc eval "5 x!"
  calc eval "2**10="`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalRadians, "rad", false, "use radians for trigonometry")
}

func runEval(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	st := scientific.New()
	if evalRadians {
		st.SetAngle(scientific.Radians)
	}
	if err := svc.Press(st, scientific.Tokenize(strings.Join(args, " "))); err != nil {
		return err
	}

	view := service.View(st)
	return printResult(cmd.OutOrStdout(), view, func(w io.Writer) {
		if view.Expression != "" {
			fmt.Fprintf(w, "%s\n", view.Expression)
		}
		fmt.Fprintf(w, "%s\n", view.Display)
	})
}
