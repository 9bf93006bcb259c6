package temperature

import (
	"errors"
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale Scale
		want  Reading
	}{
		{"freezing point", 0, Celsius, Reading{Celsius: 0, Fahrenheit: 32, Kelvin: 273.15}},
		{"boiling point from F", 212, Fahrenheit, Reading{Celsius: 100, Fahrenheit: 212, Kelvin: 373.15}},
		{"absolute zero", 0, Kelvin, Reading{Celsius: -273.15, Fahrenheit: -459.67, Kelvin: 0}},
		{"minus forty", -40, Fahrenheit, Reading{Celsius: -40, Fahrenheit: -40, Kelvin: 233.15}},
		{"body temperature", 98.6, Fahrenheit, Reading{Celsius: 37, Fahrenheit: 98.6, Kelvin: 310.15}},
		{"below absolute zero", -10, Kelvin, Reading{Celsius: -283.15, Fahrenheit: -477.67, Kelvin: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.scale)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	if _, err := Convert(math.NaN(), Celsius); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := Convert(1, Scale("Rankine")); !errors.Is(err, ErrUnknownScale) {
		t.Errorf("expected ErrUnknownScale, got %v", err)
	}
}

func TestParseScale(t *testing.T) {
	tests := map[string]Scale{
		"celsius":    Celsius,
		"C":          Celsius,
		"Fahrenheit": Fahrenheit,
		"f":          Fahrenheit,
		" kelvin ":   Kelvin,
		"K":          Kelvin,
	}
	for in, want := range tests {
		got, err := ParseScale(in)
		if err != nil {
			t.Fatalf("ParseScale(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseScale(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseScale("R"); !errors.Is(err, ErrUnknownScale) {
		t.Errorf("expected ErrUnknownScale, got %v", err)
	}
}

func TestConvert_NonFinite(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale Scale
	}{
		{"infinite input", math.Inf(1), Celsius},
		{"negative infinite input", math.Inf(-1), Kelvin},
		{"fahrenheit overflows", 1e308, Celsius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Convert(tt.value, tt.scale); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
