package cmd

import (
	"fmt"
	"io"

	"github.com/Dan9191/calc-service/internal/models"
	"github.com/spf13/cobra"
)

var ageCmd = &cobra.Command{
	Use:   "age <birth-date> [as-of]",
	Short: "Time elapsed since a birth date",
	Long: `Breaks the time between two YYYY-MM-DD dates into years, months and
days. The second date defaults to today.

Examples:
  calc age 1990-05-15
  calc age 2000-02-29 2023-03-01`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAge,
}

func init() {
	rootCmd.AddCommand(ageCmd)
}

func runAge(cmd *cobra.Command, args []string) error {
	req := models.AgeRequest{BirthDate: args[0]}
	if len(args) == 2 {
		req.AsOf = args[1]
	}

	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	result, err := svc.Age(req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
		fmt.Fprintf(w, "%d years, %d months, %d days\n", result.Years, result.Months, result.Days)
		fmt.Fprintf(w, "%d days, %d weeks, %d months in total\n", result.TotalDays, result.TotalWeeks, result.TotalMonths)
		fmt.Fprintf(w, "Born on a %s; turns %d in %d days\n", result.BirthWeekday, result.NextAge, result.DaysToNextAnniversary)
	})
}
