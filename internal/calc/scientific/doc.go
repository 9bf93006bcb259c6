// Package scientific implements the keypad calculator: an accumulator
// state machine for binary operators plus immediately applied unary
// functions.
//
// Operators fold strictly left to right with no precedence, so the key
// sequence 2 + 3 × 4 = shows 20. Every result is rounded to ten decimal
// places. Undefined results (division by zero, 1/0, factorial of a
// negative or fractional number, roots of negative numbers) are NaN
// internally; the display then shows "Error" and the pending expression is
// dropped. Infinite results are shown as "Infinity" and stay usable.
package scientific
