package scientific

import (
	"fmt"
	"math"
	"strings"
)

// MaxEntryLength caps the number of characters typed into one entry.
const MaxEntryLength = 32

// AngleUnit selects how trigonometric functions read their argument.
type AngleUnit int

const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	if u == Radians {
		return "RAD"
	}
	return "DEG"
}

// ParseAngleUnit accepts DEG/RAD and the full names, in any case.
func ParseAngleUnit(s string) (AngleUnit, bool) {
	switch strings.ToLower(s) {
	case "deg", "degrees":
		return Degrees, true
	case "rad", "radians":
		return Radians, true
	}
	return Degrees, false
}

func (u AngleUnit) toRadians(v float64) float64 {
	if u == Degrees {
		return v * math.Pi / 180
	}
	return v
}

// State is one calculator session. The zero value is not ready for use;
// start from New.
type State struct {
	// Display is the entered or computed value as shown.
	Display string
	// Accumulator is the left operand of Pending, nil when none is held.
	Accumulator *float64
	Pending     Operator
	// AwaitingNewEntry makes the next digit start a new number.
	AwaitingNewEntry bool
	// OperandReady records that a right operand was typed or computed
	// since the last operator key.
	OperandReady bool
	Angle        AngleUnit
}

// New returns a cleared state in degree mode.
func New() *State {
	s := &State{Angle: Degrees}
	s.Clear()
	return s
}

// Clear resets everything but the angle unit.
func (s *State) Clear() {
	s.Display = "0"
	s.Accumulator = nil
	s.Pending = OpNone
	s.AwaitingNewEntry = true
	s.OperandReady = false
}

// Failed reports whether the display shows the error token.
func (s *State) Failed() bool {
	return s.Display == ErrorText
}

// Digit enters one decimal digit.
func (s *State) Digit(d byte) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("not a digit: %q", d)
	}
	switch {
	case s.AwaitingNewEntry || s.Display == "0":
		s.Display = string(d)
	case len(s.Display) < MaxEntryLength:
		s.Display += string(d)
	}
	s.AwaitingNewEntry = false
	s.OperandReady = true
	return nil
}

// Decimal enters the decimal point. A second point in one entry is ignored.
func (s *State) Decimal() {
	switch {
	case s.AwaitingNewEntry:
		s.Display = "0."
	case strings.Contains(s.Display, "."):
		return
	case len(s.Display) < MaxEntryLength:
		s.Display += "."
	}
	s.AwaitingNewEntry = false
	s.OperandReady = true
}

// Operator presses a binary operator key. When an operator is pending and a
// new operand has been entered, the pending operation is folded first.
func (s *State) Operator(op Operator) error {
	if op <= OpNone || op > OpPower {
		return fmt.Errorf("unknown operator: %v", op)
	}
	v, ok := ParseDisplay(s.Display)
	if !ok {
		return nil
	}

	switch {
	case s.Accumulator == nil || s.Pending == OpNone:
		s.Accumulator = &v
	case s.OperandReady:
		if !s.fold(v) {
			return nil
		}
	}

	s.Pending = op
	s.AwaitingNewEntry = true
	s.OperandReady = false
	return nil
}

// Equals folds the pending operation once and clears it. Without a pending
// operation it only ends the current entry.
func (s *State) Equals() {
	if s.Accumulator == nil || s.Pending == OpNone {
		s.AwaitingNewEntry = true
		return
	}
	v, ok := ParseDisplay(s.Display)
	if !ok {
		return
	}
	if !s.fold(v) {
		return
	}
	s.Accumulator = nil
	s.Pending = OpNone
	s.AwaitingNewEntry = true
	s.OperandReady = false
}

// Apply applies a unary function to the displayed value. The pending
// operation is kept and the result counts as an entered operand.
func (s *State) Apply(fn Function) error {
	if _, ok := functionSymbols[fn]; !ok {
		return fmt.Errorf("unknown function: %v", fn)
	}
	var v float64
	if !fn.constant() {
		var ok bool
		if v, ok = ParseDisplay(s.Display); !ok {
			return nil
		}
	}

	r := fn.apply(v, s.Angle)
	if math.IsNaN(r) {
		s.fail()
		return nil
	}
	s.Display = Format(roundResult(r))
	s.AwaitingNewEntry = true
	s.OperandReady = true
	return nil
}

// ToggleAngle switches between degrees and radians.
func (s *State) ToggleAngle() {
	if s.Angle == Degrees {
		s.Angle = Radians
	} else {
		s.Angle = Degrees
	}
}

// SetAngle selects the angle unit used by sin, cos and tan.
func (s *State) SetAngle(u AngleUnit) {
	s.Angle = u
}

// Expression describes the pending operation, such as "12 ×".
func (s *State) Expression() string {
	if s.Accumulator == nil || s.Pending == OpNone {
		return ""
	}
	return Format(*s.Accumulator) + " " + s.Pending.String()
}

// Value is the displayed number, false while the display shows an error.
func (s *State) Value() (float64, bool) {
	return ParseDisplay(s.Display)
}

// fold applies the pending operator to the accumulator and v, leaving the
// result displayed and accumulated. It reports false after an undefined
// result.
func (s *State) fold(v float64) bool {
	r := s.Pending.apply(*s.Accumulator, v)
	if math.IsNaN(r) {
		s.fail()
		return false
	}
	r = roundResult(r)
	s.Display = Format(r)
	s.Accumulator = &r
	return true
}

func (s *State) fail() {
	s.Display = ErrorText
	s.Accumulator = nil
	s.Pending = OpNone
	s.AwaitingNewEntry = true
	s.OperandReady = false
}
