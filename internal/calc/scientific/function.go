package scientific

import (
	"fmt"
	"math"
)

// Function is a unary function applied to the displayed value.
type Function int

const (
	FnSin Function = iota + 1
	FnCos
	FnTan
	FnLn
	FnLog
	FnSqrt
	FnSquare
	FnReciprocal
	FnFactorial
	FnPi
	FnE
)

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

var functionSymbols = map[Function]string{
	FnSin:        "sin",
	FnCos:        "cos",
	FnTan:        "tan",
	FnLn:         "ln",
	FnLog:        "log",
	FnSqrt:       "√",
	FnSquare:     "x²",
	FnReciprocal: "1/x",
	FnFactorial:  "x!",
	FnPi:         "π",
	FnE:          "e",
}

var functionAliases = map[string]Function{
	"sin":  FnSin,
	"cos":  FnCos,
	"tan":  FnTan,
	"ln":   FnLn,
	"log":  FnLog,
	"√":    FnSqrt,
	"sqrt": FnSqrt,
	"x²":   FnSquare,
	"sqr":  FnSquare,
	"1/x":  FnReciprocal,
	"x!":   FnFactorial,
	"!":    FnFactorial,
	"π":    FnPi,
	"pi":   FnPi,
	"e":    FnE,
}

// Functions lists every function in keypad order.
var Functions = []Function{FnSin, FnCos, FnTan, FnPi, FnE, FnLn, FnLog, FnSqrt, FnSquare, FnReciprocal, FnFactorial}

func (f Function) String() string {
	if s, ok := functionSymbols[f]; ok {
		return s
	}
	return fmt.Sprintf("Function(%d)", int(f))
}

// ParseFunction maps a key label to its function.
func ParseFunction(s string) (Function, bool) {
	f, ok := functionAliases[s]
	return f, ok
}

// constant reports whether f ignores its argument.
func (f Function) constant() bool {
	return f == FnPi || f == FnE
}

func (f Function) apply(v float64, unit AngleUnit) float64 {
	switch f {
	case FnSin:
		return math.Sin(unit.toRadians(v))
	case FnCos:
		return math.Cos(unit.toRadians(v))
	case FnTan:
		return math.Tan(unit.toRadians(v))
	case FnLn:
		return math.Log(v)
	case FnLog:
		return math.Log10(v)
	case FnSqrt:
		return math.Sqrt(v)
	case FnSquare:
		return v * v
	case FnReciprocal:
		if v == 0 {
			return math.NaN()
		}
		return 1 / v
	case FnFactorial:
		return factorial(v)
	case FnPi:
		return math.Pi
	case FnE:
		return math.E
	}
	return math.NaN()
}

// factorial is defined for non-negative integers only.
func factorial(v float64) float64 {
	if v < 0 || v != math.Trunc(v) || math.IsNaN(v) {
		return math.NaN()
	}
	if v > maxFactorial {
		return math.Inf(1)
	}
	f := 1.0
	for i := 2; i <= int(v); i++ {
		f *= float64(i)
	}
	return f
}
