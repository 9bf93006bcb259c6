package models

import (
	"github.com/Dan9191/calc-service/internal/calc/mortgage"
	"github.com/Dan9191/calc-service/internal/calc/units"
)

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error" msgpack:"error"`
}

// CalculatorView is what a client renders for the scientific calculator
type CalculatorView struct {
	Token      string `json:"token,omitempty" msgpack:"token,omitempty"`
	Display    string `json:"display" msgpack:"display"`
	Expression string `json:"expression" msgpack:"expression"`
	Angle      string `json:"angle" msgpack:"angle"`
	Error      bool   `json:"error" msgpack:"error"`
}

// UnitsResult answers a unit conversion. Value is set for a single target,
// Conversions when every unit was requested.
type UnitsResult struct {
	Category    string             `json:"category" msgpack:"category"`
	Amount      float64            `json:"amount" msgpack:"amount"`
	From        string             `json:"from" msgpack:"from"`
	To          string             `json:"to,omitempty" msgpack:"to,omitempty"`
	Value       *float64           `json:"value,omitempty" msgpack:"value,omitempty"`
	Conversions []units.Conversion `json:"conversions,omitempty" msgpack:"conversions,omitempty"`
}

// ScheduleResult is an amortization summary with its installments
type ScheduleResult struct {
	Summary      mortgage.Result        `json:"summary" msgpack:"summary"`
	Installments []mortgage.Installment `json:"installments" msgpack:"installments"`
}
