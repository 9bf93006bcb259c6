package scientific

import (
	"fmt"
	"math"
)

// Operator is a binary operator. The zero value means no operator.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
)

var operatorSymbols = [...]string{
	OpNone:     "",
	OpAdd:      "+",
	OpSubtract: "−",
	OpMultiply: "×",
	OpDivide:   "÷",
	OpPower:    "^",
}

var operatorAliases = map[string]Operator{
	"+":   OpAdd,
	"−":   OpSubtract,
	"-":   OpSubtract,
	"×":   OpMultiply,
	"*":   OpMultiply,
	"x":   OpMultiply,
	"÷":   OpDivide,
	"/":   OpDivide,
	"^":   OpPower,
	"x^y": OpPower,
	"**":  OpPower,
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorSymbols[o]
}

// ParseOperator maps a key label to its operator.
func ParseOperator(s string) (Operator, bool) {
	op, ok := operatorAliases[s]
	return op, ok
}

// apply folds a and b. Division by zero yields NaN, the engine's marker for
// an undefined result.
func (o Operator) apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		if b == 0 {
			return math.NaN()
		}
		return a / b
	case OpPower:
		return math.Pow(a, b)
	}
	return math.NaN()
}
