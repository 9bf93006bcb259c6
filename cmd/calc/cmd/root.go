package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Dan9191/calc-service/internal/app"
	"github.com/Dan9191/calc-service/internal/config"
	"github.com/Dan9191/calc-service/internal/models"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Multi-mode calculator",
	Long: `calc bundles six calculators behind one command:

  eval      - scientific calculator driven by keys
  mortgage  - monthly payment and amortization schedule
  age       - time elapsed since a birth date
  temp      - Celsius, Fahrenheit and Kelvin
  currency  - conversion through a USD rate table
  units     - length, weight, area and volume

serve runs the same calculators as an HTTP and websocket API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file (default: $CALC_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		if err := os.Setenv("CALC_CONFIG", cfgFile); err != nil {
			return nil, err
		}
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newService builds the calculators the way the server does
func newService(ctx context.Context) (*service.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !verbose {
		cfg.LogLevel = "warn"
	}
	a, err := app.New(ctx, cfg, app.NewLogger(cfg.LogLevel))
	if err != nil {
		return nil, nil, err
	}
	return a.Service(), func() { a.Close() }, nil
}

// printResult writes v as JSON with --json, otherwise runs text
func printResult(w io.Writer, v interface{}, text func(io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// parseNumber reads a numeric argument the way form fields are read
func parseNumber(name, s string) (models.Number, error) {
	var n models.Number
	if err := n.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return n, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
