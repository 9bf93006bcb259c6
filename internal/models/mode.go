package models

import (
	"fmt"
	"strings"
)

// Mode identifies one of the calculators.
type Mode string

const (
	ModeScientific  Mode = "scientific"
	ModeMortgage    Mode = "mortgage"
	ModeAge         Mode = "age"
	ModeTemperature Mode = "temperature"
	ModeCurrency    Mode = "currency"
	ModeUnits       Mode = "units"
)

// ModeInfo describes a calculator for a mode picker
type ModeInfo struct {
	ID    Mode   `json:"id" msgpack:"id"`
	Label string `json:"label" msgpack:"label"`
	Short string `json:"short" msgpack:"short"`
}

// Modes lists the calculators in menu order
var Modes = []ModeInfo{
	{ID: ModeScientific, Label: "Scientific Calculator", Short: "Scientific"},
	{ID: ModeMortgage, Label: "Mortgage Calculator", Short: "Mortgage"},
	{ID: ModeAge, Label: "Age Calculator", Short: "Age"},
	{ID: ModeTemperature, Label: "Temperature Converter", Short: "Temp"},
	{ID: ModeCurrency, Label: "Currency Converter", Short: "Currency"},
	{ID: ModeUnits, Label: "Units Converter", Short: "Units"},
}

// ParseMode validates a mode identifier
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range Modes {
		if info.ID == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode: %q", s)
}
