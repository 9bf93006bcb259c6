package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Dan9191/calc-service/internal/models"
	"github.com/spf13/cobra"
)

var tempScale string

var tempCmd = &cobra.Command{
	Use:   "temp <value>",
	Short: "Convert a temperature to every scale",
	Long: `Converts a reading to Celsius, Fahrenheit and Kelvin.

Examples:
  calc temp 100
  calc temp --scale F -- -40`,
	Args: cobra.ExactArgs(1),
	RunE: runTemp,
}

var currencyCmd = &cobra.Command{
	Use:   "currency <amount> <from> <to>",
	Short: "Convert between currencies",
	Long: `Converts an amount through the USD rate table.

Examples:
  calc currency 100 USD EUR
  calc currency rates`,
	Args: cobra.ExactArgs(3),
	RunE: runCurrency,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the currency rate table",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

var unitsCmd = &cobra.Command{
	Use:   "units <amount> <category> [from] [to]",
	Short: "Convert within a unit category",
	Long: `Converts an amount between units of one category. Without units the
category's first two units are used; "*" as target lists every unit.

Examples:
  calc units 5 Length ft in
  calc units 1 Weight kg '*'
  calc units list`,
	Args: cobra.RangeArgs(2, 4),
	RunE: runUnits,
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the unit categories",
	Args:  cobra.NoArgs,
	RunE:  runUnitsList,
}

func init() {
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(currencyCmd)
	rootCmd.AddCommand(unitsCmd)
	currencyCmd.AddCommand(ratesCmd)
	unitsCmd.AddCommand(unitsListCmd)

	tempCmd.Flags().StringVarP(&tempScale, "scale", "s", "C", "scale of the value (C, F or K)")
}

func runTemp(cmd *cobra.Command, args []string) error {
	value, err := parseNumber("value", args[0])
	if err != nil {
		return err
	}

	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	reading, err := svc.Temperature(models.TemperatureRequest{Value: value, Scale: tempScale})
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), reading, func(w io.Writer) {
		fmt.Fprintf(w, "%.2f °C\n%.2f °F\n%.2f K\n", reading.Celsius, reading.Fahrenheit, reading.Kelvin)
	})
}

func runCurrency(cmd *cobra.Command, args []string) error {
	amount, err := parseNumber("amount", args[0])
	if err != nil {
		return err
	}

	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	conv, err := svc.Currency(models.CurrencyRequest{Amount: amount, From: args[1], To: args[2]})
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), conv, func(w io.Writer) {
		fmt.Fprintf(w, "%g %s = %.2f %s (rate %.4f)\n", conv.Amount, conv.From, conv.Converted, conv.To, conv.Rate)
	})
}

func runRates(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	list := svc.Rates()
	return printResult(cmd.OutOrStdout(), list, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range list {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\n", r.Code, r.Name, r.PerUSD)
		}
		tw.Flush()
	})
}

func runUnits(cmd *cobra.Command, args []string) error {
	amount, err := parseNumber("amount", args[0])
	if err != nil {
		return err
	}
	req := models.UnitsRequest{Amount: amount, Category: args[1]}
	if len(args) > 2 {
		req.From = args[2]
	}
	if len(args) > 3 {
		req.To = args[3]
	}

	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	result, err := svc.Units(req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
		if result.Value != nil {
			fmt.Fprintf(w, "%g %s = %g %s\n", result.Amount, result.From, *result.Value, result.To)
			return
		}
		for _, c := range result.Conversions {
			fmt.Fprintf(w, "%g %s = %g %s\n", result.Amount, result.From, c.Value, c.Unit)
		}
	})
}

func runUnitsList(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	cats := svc.UnitCategories()
	return printResult(cmd.OutOrStdout(), cats, func(w io.Writer) {
		for _, c := range cats {
			fmt.Fprintf(w, "%s:", c.Name)
			for _, u := range c.Units {
				fmt.Fprintf(w, " %s", u.Symbol)
			}
			fmt.Fprintln(w)
		}
	})
}
