package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is an optional numeric form field. It decodes from a JSON number
// or a string, so an empty field and a field holding zero stay distinct.
type Number struct {
	Value float64
	Set   bool
}

// NewNumber returns a set Number
func NewNumber(v float64) Number {
	return Number{Value: v, Set: true}
}

// Get returns the value and whether the field was filled in
func (n Number) Get() (float64, bool) {
	return n.Value, n.Set
}

// UnmarshalJSON accepts null, "", a number or a numeric string. NaN and
// infinities are rejected.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = Number{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return n.parse(s)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid number: %s", raw)
	}
	*n = NewNumber(v)
	return nil
}

// MarshalJSON writes null for an empty field
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Number) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = Number{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number: %q", s)
	}
	*n = NewNumber(v)
	return nil
}
