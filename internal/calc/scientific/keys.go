package scientific

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrUnknownKey is returned by Press for labels that match no key.
var ErrUnknownKey = errors.New("unknown key")

// Press applies one keypad key given by its label. Digits, ".", operator
// symbols and function names are accepted along with "=", "AC" and the
// angle keys "DEG", "RAD" and "DEG/RAD".
func (s *State) Press(key string) error {
	key = strings.TrimSpace(key)
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return s.Digit(key[0])
	}
	if op, ok := ParseOperator(key); ok {
		return s.Operator(op)
	}
	if fn, ok := ParseFunction(key); ok {
		return s.Apply(fn)
	}

	switch strings.ToUpper(key) {
	case ".", ",":
		s.Decimal()
	case "=", "ENTER":
		s.Equals()
	case "AC", "C", "CLEAR":
		s.Clear()
	case "DEG/RAD", "ANGLE":
		s.ToggleAngle()
	case "DEG", "RAD":
		u, _ := ParseAngleUnit(key)
		s.SetAngle(u)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// PressAll applies keys in order and stops at the first unknown key.
func (s *State) PressAll(keys []string) error {
	for i, k := range keys {
		if err := s.Press(k); err != nil {
			return fmt.Errorf("key %d: %w", i+1, err)
		}
	}
	return nil
}

// Tokenize splits a typed sequence such as "12.5+3×4=" into key labels.
// Each whitespace-separated field is read left to right taking the longest
// label that matches, so "2**3" is 2, ** and 3 and "3x²" is 3 and x².
// Anything else, digits and the decimal point included, is one key per
// character.
func Tokenize(input string) []string {
	var keys []string
	for _, field := range strings.Fields(input) {
		for field != "" {
			n := matchLabel(field)
			if n == 0 {
				_, n = utf8.DecodeRuneInString(field)
			}
			keys = append(keys, field[:n])
			field = field[n:]
		}
	}
	return keys
}

// controlLabels are matched without regard to case.
var controlLabels = []string{"AC", "C", "CLEAR", "ENTER", "DEG/RAD", "ANGLE", "DEG", "RAD"}

type label struct {
	text string
	fold bool
}

// labels holds every multi-character key label, longest first.
var labels = func() []label {
	var ls []label
	for s := range functionAliases {
		ls = append(ls, label{text: s})
	}
	for s := range operatorAliases {
		ls = append(ls, label{text: s})
	}
	for _, s := range controlLabels {
		ls = append(ls, label{text: s, fold: true})
	}
	sort.Slice(ls, func(i, j int) bool {
		if len(ls[i].text) != len(ls[j].text) {
			return len(ls[i].text) > len(ls[j].text)
		}
		return ls[i].text < ls[j].text
	})
	return ls
}()

// matchLabel returns the byte length of the longest label prefixing s, or 0.
func matchLabel(s string) int {
	for _, l := range labels {
		if len(l.text) > len(s) {
			continue
		}
		prefix := s[:len(l.text)]
		if prefix == l.text || (l.fold && strings.EqualFold(prefix, l.text)) {
			return len(l.text)
		}
	}
	return 0
}
