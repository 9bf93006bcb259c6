// Package currency converts amounts between currencies through a fixed
// table of rates quoted against the US dollar.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/calc-service/internal/utils"
)

const (
	// BaseCode is the pivot currency of every rate table.
	BaseCode = "USD"

	AmountPrecision = 2
	RatePrecision   = 4
)

var (
	ErrInvalidInput    = errors.New("amount is not a number")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidTable    = errors.New("invalid rate table")
)

// Rate is the number of currency units bought by one US dollar.
type Rate struct {
	Code   string  `json:"code" msgpack:"code"`
	Name   string  `json:"name,omitempty" msgpack:"name,omitempty"`
	PerUSD float64 `json:"per_usd" msgpack:"per_usd"`
}

// Conversion is the result of converting an amount.
type Conversion struct {
	Amount    float64 `json:"amount" msgpack:"amount"`
	From      string  `json:"from" msgpack:"from"`
	To        string  `json:"to" msgpack:"to"`
	Converted float64 `json:"converted" msgpack:"converted"`
	Rate      float64 `json:"rate" msgpack:"rate"`
}

// RateTable is an immutable set of rates. It is loaded once and shared.
type RateTable struct {
	rates []Rate
	index map[string]int
}

// NewRateTable validates rates and builds a table preserving their order.
func NewRateTable(rates []Rate) (*RateTable, error) {
	t := &RateTable{
		rates: make([]Rate, 0, len(rates)),
		index: make(map[string]int, len(rates)),
	}
	for _, r := range rates {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: rate without a code", ErrInvalidTable)
		}
		if _, dup := t.index[code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrInvalidTable, code)
		}
		if !(r.PerUSD > 0) || math.IsInf(r.PerUSD, 0) {
			return nil, fmt.Errorf("%w: %s has rate %v", ErrInvalidTable, code, r.PerUSD)
		}
		if code == BaseCode && r.PerUSD != 1 {
			return nil, fmt.Errorf("%w: %s must have rate 1, has %v", ErrInvalidTable, BaseCode, r.PerUSD)
		}
		t.index[code] = len(t.rates)
		t.rates = append(t.rates, Rate{Code: code, Name: r.Name, PerUSD: r.PerUSD})
	}
	if _, ok := t.index[BaseCode]; !ok {
		return nil, fmt.Errorf("%w: %s missing", ErrInvalidTable, BaseCode)
	}
	return t, nil
}

// Rates returns the table's rates in load order.
func (t *RateTable) Rates() []Rate {
	out := make([]Rate, len(t.rates))
	copy(out, t.rates)
	return out
}

// Codes returns the currency codes in load order.
func (t *RateTable) Codes() []string {
	out := make([]string, len(t.rates))
	for i, r := range t.rates {
		out[i] = r.Code
	}
	return out
}

// Rate looks up a currency by code, ignoring case.
func (t *RateTable) Rate(code string) (Rate, bool) {
	i, ok := t.index[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Rate{}, false
	}
	return t.rates[i], true
}

// CrossRate is the unrounded number of to units per from unit.
func (t *RateTable) CrossRate(from, to string) (float64, error) {
	f, tt, err := t.pair(from, to)
	if err != nil {
		return 0, err
	}
	return tt.PerUSD / f.PerUSD, nil
}

// Convert converts amount from one currency to another, pivoting through
// the dollar. The converted amount is rounded to cents and the effective
// rate to four places.
func (t *RateTable) Convert(amount float64, from, to string) (Conversion, error) {
	if !utils.IsFinite(amount) {
		return Conversion{}, ErrInvalidInput
	}
	f, tt, err := t.pair(from, to)
	if err != nil {
		return Conversion{}, err
	}

	inUSD := amount / f.PerUSD
	converted := inUSD * tt.PerUSD
	if !utils.IsFinite(converted) {
		return Conversion{}, fmt.Errorf("%w: converted amount out of range", ErrInvalidInput)
	}

	return Conversion{
		Amount:    amount,
		From:      f.Code,
		To:        tt.Code,
		Converted: utils.Round(converted, AmountPrecision),
		Rate:      utils.Round(tt.PerUSD/f.PerUSD, RatePrecision),
	}, nil
}

func (t *RateTable) pair(from, to string) (Rate, Rate, error) {
	f, ok := t.Rate(from)
	if !ok {
		return Rate{}, Rate{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
	tt, ok := t.Rate(to)
	if !ok {
		return Rate{}, Rate{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}
	return f, tt, nil
}
