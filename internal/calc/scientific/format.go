package scientific

import (
	"math"
	"strconv"

	"github.com/Dan9191/calc-service/internal/utils"
)

const (
	// ErrorText is displayed for undefined results.
	ErrorText = "Error"

	// ResultPrecision is the number of decimal places kept in results.
	ResultPrecision = 10

	// exponentThreshold is where plain notation gives way to exponents.
	exponentThreshold = 1e21
)

// Format renders a value for the display.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return ErrorText
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case math.Abs(v) >= exponentThreshold:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDisplay reads a displayed value back. It accepts the infinity
// spellings Format produces and rejects the error token.
func ParseDisplay(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func roundResult(v float64) float64 {
	return utils.Round(v, ResultPrecision)
}
