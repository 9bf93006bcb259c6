// Package temperature converts a reading between Celsius, Fahrenheit and
// Kelvin. Every conversion normalizes through Celsius.
package temperature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/calc-service/internal/utils"
)

// Precision is the number of decimal places kept in each scale.
const Precision = 2

var (
	ErrInvalidInput = errors.New("temperature is not a number")
	ErrUnknownScale = errors.New("unknown temperature scale")
)

// Scale is a temperature scale.
type Scale string

const (
	Celsius    Scale = "Celsius"
	Fahrenheit Scale = "Fahrenheit"
	Kelvin     Scale = "Kelvin"
)

// Scales lists the supported scales in display order.
var Scales = []Scale{Celsius, Fahrenheit, Kelvin}

// ParseScale accepts a scale name or its initial, in any case.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	case "kelvin", "k":
		return Kelvin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScale, s)
}

// Reading holds the same temperature on all three scales.
type Reading struct {
	Celsius    float64 `json:"celsius" msgpack:"celsius"`
	Fahrenheit float64 `json:"fahrenheit" msgpack:"fahrenheit"`
	Kelvin     float64 `json:"kelvin" msgpack:"kelvin"`
}

// Convert expresses value, given on scale, on every scale. Readings below
// absolute zero are converted like any other.
func Convert(value float64, scale Scale) (Reading, error) {
	if !utils.IsFinite(value) {
		return Reading{}, ErrInvalidInput
	}

	var c float64
	switch scale {
	case Celsius:
		c = value
	case Fahrenheit:
		c = (value - 32) * 5 / 9
	case Kelvin:
		c = value - 273.15
	default:
		return Reading{}, fmt.Errorf("%w: %q", ErrUnknownScale, scale)
	}

	f, k := c*9/5+32, c+273.15
	if !utils.IsFinite(c) || !utils.IsFinite(f) || !utils.IsFinite(k) {
		return Reading{}, fmt.Errorf("%w: reading out of range", ErrInvalidInput)
	}

	return Reading{
		Celsius:    utils.Round(c, Precision),
		Fahrenheit: utils.Round(f, Precision),
		Kelvin:     utils.Round(k, Precision),
	}, nil
}
