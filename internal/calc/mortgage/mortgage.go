// Package mortgage computes fixed-rate loan payments with the standard
// annuity formula.
package mortgage

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/calc-service/internal/utils"
)

const (
	// Precision is the number of decimal places in money amounts.
	Precision = 2

	// MaxScheduleMonths bounds the length of a generated schedule.
	MaxScheduleMonths = 1200
)

var (
	ErrInvalidInput    = errors.New("invalid mortgage input")
	ErrScheduleTooLong = fmt.Errorf("schedule longer than %d months", MaxScheduleMonths)
)

// Input describes a loan.
type Input struct {
	Principal         float64 `json:"principal" msgpack:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent" msgpack:"annual_rate_percent"`
	TermYears         float64 `json:"term_years" msgpack:"term_years"`
}

// Result holds the payment figures, each rounded to cents.
type Result struct {
	MonthlyPayment float64 `json:"monthly_payment" msgpack:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment" msgpack:"total_payment"`
	TotalInterest  float64 `json:"total_interest" msgpack:"total_interest"`
}

// Installment is one month of an amortization schedule.
type Installment struct {
	Month     int     `json:"month" msgpack:"month"`
	Payment   float64 `json:"payment" msgpack:"payment"`
	Principal float64 `json:"principal" msgpack:"principal"`
	Interest  float64 `json:"interest" msgpack:"interest"`
	Balance   float64 `json:"balance" msgpack:"balance"`
}

func (in Input) validate() error {
	if math.IsNaN(in.Principal) || in.Principal <= 0 || math.IsInf(in.Principal, 0) {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if math.IsNaN(in.AnnualRatePercent) || in.AnnualRatePercent < 0 || math.IsInf(in.AnnualRatePercent, 0) {
		return fmt.Errorf("%w: annual rate must not be negative", ErrInvalidInput)
	}
	if math.IsNaN(in.TermYears) || in.TermYears <= 0 || math.IsInf(in.TermYears, 0) {
		return fmt.Errorf("%w: term must be positive", ErrInvalidInput)
	}
	return nil
}

// monthlyPayment returns the unrounded payment, the monthly rate and the
// number of payments. The annuity is evaluated as P·r / (1 − (1+r)^−n)
// through Log1p and Expm1, which stays finite for rates too small to change
// 1+r and for growth factors that would overflow.
func (in Input) monthlyPayment() (payment, rate, n float64, err error) {
	rate = in.AnnualRatePercent / 100 / 12
	n = in.TermYears * 12

	denom := -math.Expm1(-n * math.Log1p(rate))
	if denom == 0 {
		payment = in.Principal / n
	} else {
		payment = in.Principal * rate / denom
	}
	if !utils.IsFinite(payment) || !utils.IsFinite(payment*n) {
		return 0, 0, 0, fmt.Errorf("%w: payments out of range", ErrInvalidInput)
	}
	return payment, rate, n, nil
}

// Amortize computes the monthly payment, total paid and total interest.
// All arithmetic runs at full precision; only the results are rounded.
func Amortize(in Input) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	monthly, _, n, err := in.monthlyPayment()
	if err != nil {
		return Result{}, err
	}
	total := monthly * n

	return Result{
		MonthlyPayment: utils.Round(monthly, Precision),
		TotalPayment:   utils.Round(total, Precision),
		TotalInterest:  utils.Round(total-in.Principal, Precision),
	}, nil
}

// Schedule lists every monthly installment of the loan. A partial final
// month, or any residue left by floating point, is settled by the last row.
func Schedule(in Input) ([]Installment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	monthly, rate, n, err := in.monthlyPayment()
	if err != nil {
		return nil, err
	}
	months := int(math.Ceil(n))
	if months > MaxScheduleMonths {
		return nil, ErrScheduleTooLong
	}

	rows := make([]Installment, 0, months)
	balance := in.Principal
	for m := 1; m <= months; m++ {
		interest := balance * rate
		payment := monthly
		principal := payment - interest
		if m == months || principal > balance {
			principal = balance
			payment = principal + interest
		}
		balance -= principal

		rows = append(rows, Installment{
			Month:     m,
			Payment:   utils.Round(payment, Precision),
			Principal: utils.Round(principal, Precision),
			Interest:  utils.Round(interest, Precision),
			Balance:   utils.Round(balance, Precision),
		})
	}
	return rows, nil
}
