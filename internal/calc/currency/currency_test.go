package currency

import (
	"errors"
	"math"
	"testing"
)

var testRates = []Rate{
	{Code: "USD", Name: "US Dollar", PerUSD: 1},
	{Code: "EUR", Name: "Euro", PerUSD: 0.92},
	{Code: "GBP", Name: "British Pound", PerUSD: 0.79},
	{Code: "JPY", Name: "Japanese Yen", PerUSD: 149.5},
	{Code: "INR", Name: "Indian Rupee", PerUSD: 83.1},
}

func newTestTable(t *testing.T) *RateTable {
	t.Helper()
	table, err := NewRateTable(testRates)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return table
}

func TestConvert(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name          string
		amount        float64
		from, to      string
		wantConverted float64
		wantRate      float64
	}{
		{"usd to eur", 100, "USD", "EUR", 92, 0.92},
		{"eur to usd", 100, "EUR", "USD", 108.7, 1.087},
		{"eur to jpy", 1, "EUR", "JPY", 162.5, 162.5},
		{"gbp to jpy", 250, "GBP", "JPY", 47310.13, 189.2405},
		{"lower case codes", 100, "usd", "eur", 92, 0.92},
		{"same currency", 12.345, "GBP", "GBP", 12.35, 1},
		{"zero amount", 0, "USD", "INR", 0, 83.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Convert(tt.amount, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Converted != tt.wantConverted {
				t.Errorf("expected converted %v, got %v", tt.wantConverted, got.Converted)
			}
			if got.Rate != tt.wantRate {
				t.Errorf("expected rate %v, got %v", tt.wantRate, got.Rate)
			}
		})
	}
}

func TestCrossRate_Inverse(t *testing.T) {
	table := newTestTable(t)

	codes := table.Codes()
	for _, a := range codes {
		for _, b := range codes {
			ab, err := table.CrossRate(a, b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ba, err := table.CrossRate(b, a)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(ab*ba-1) > 1e-12 {
				t.Errorf("rate(%s,%s)*rate(%s,%s) = %v", a, b, b, a, ab*ba)
			}
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	table := newTestTable(t)

	if _, err := table.Convert(math.NaN(), "USD", "EUR"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := table.Convert(1, "XXX", "EUR"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
	if _, err := table.Convert(1, "USD", "BTC"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestNewRateTable_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rates []Rate
	}{
		{"missing usd", []Rate{{Code: "EUR", PerUSD: 0.92}}},
		{"usd not one", []Rate{{Code: "USD", PerUSD: 2}}},
		{"zero rate", []Rate{{Code: "USD", PerUSD: 1}, {Code: "EUR", PerUSD: 0}}},
		{"negative rate", []Rate{{Code: "USD", PerUSD: 1}, {Code: "EUR", PerUSD: -1}}},
		{"duplicate", []Rate{{Code: "USD", PerUSD: 1}, {Code: "usd", PerUSD: 1}}},
		{"empty code", []Rate{{Code: "USD", PerUSD: 1}, {Code: " ", PerUSD: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRateTable(tt.rates); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("expected ErrInvalidTable, got %v", err)
			}
		})
	}
}

func TestRates_Order(t *testing.T) {
	table := newTestTable(t)

	codes := table.Codes()
	for i, r := range testRates {
		if codes[i] != r.Code {
			t.Errorf("expected %s at %d, got %s", r.Code, i, codes[i])
		}
	}

	rate, ok := table.Rate("jpy")
	if !ok || rate.Name != "Japanese Yen" {
		t.Errorf("expected JPY lookup to succeed, got %+v %v", rate, ok)
	}
}

func TestConvert_NonFinite(t *testing.T) {
	table := newTestTable(t)

	if _, err := table.Convert(math.Inf(1), "USD", "EUR"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for infinite amount, got %v", err)
	}
	if _, err := table.Convert(1e308, "GBP", "JPY"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for overflowing result, got %v", err)
	}
}
