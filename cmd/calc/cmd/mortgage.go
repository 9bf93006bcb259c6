package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Dan9191/calc-service/internal/models"
	"github.com/spf13/cobra"
)

var (
	mortgagePrincipal string
	mortgageRate      string
	mortgageYears     string
	mortgageSchedule  bool
)

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Monthly payment for a fixed-rate loan",
	Long: `Computes the monthly payment, total paid and total interest of a
fixed-rate loan. A zero rate spreads the principal evenly.

Examples:
  calc mortgage --principal 300000 --rate 6.5 --years 30
  calc mortgage --principal 1000 --rate 12 --years 1 --schedule`,
	Args: cobra.NoArgs,
	RunE: runMortgage,
}

func init() {
	rootCmd.AddCommand(mortgageCmd)
	mortgageCmd.Flags().StringVar(&mortgagePrincipal, "principal", "", "loan amount")
	mortgageCmd.Flags().StringVar(&mortgageRate, "rate", "", "annual interest rate in percent")
	mortgageCmd.Flags().StringVar(&mortgageYears, "years", "", "loan term in years")
	mortgageCmd.Flags().BoolVar(&mortgageSchedule, "schedule", false, "print every installment")
}

func runMortgage(cmd *cobra.Command, args []string) error {
	var req models.MortgageRequest
	var err error
	if req.Principal, err = parseNumber("principal", mortgagePrincipal); err != nil {
		return err
	}
	if req.AnnualRatePercent, err = parseNumber("rate", mortgageRate); err != nil {
		return err
	}
	if req.TermYears, err = parseNumber("years", mortgageYears); err != nil {
		return err
	}

	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	if !mortgageSchedule {
		result, err := svc.Mortgage(req)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
			fmt.Fprintf(w, "Monthly payment: %.2f\n", result.MonthlyPayment)
			fmt.Fprintf(w, "Total payment:   %.2f\n", result.TotalPayment)
			fmt.Fprintf(w, "Total interest:  %.2f\n", result.TotalInterest)
		})
	}

	result, err := svc.MortgageSchedule(cmd.Context(), req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
		for _, row := range result.Installments {
			fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", row.Month, row.Payment, row.Principal, row.Interest, row.Balance)
		}
		tw.Flush()
		fmt.Fprintf(w, "\nMonthly payment %.2f, total %.2f, interest %.2f\n",
			result.Summary.MonthlyPayment, result.Summary.TotalPayment, result.Summary.TotalInterest)
	})
}
