package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/currency"
	"github.com/Dan9191/calc-service/internal/calc/datedelta"
	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/Dan9191/calc-service/internal/calc/units"
	"github.com/Dan9191/calc-service/internal/integrations/rates"
	"github.com/Dan9191/calc-service/internal/models"
	"github.com/Dan9191/calc-service/internal/repository"
	"github.com/sirupsen/logrus/hooks/test"
)

type countingCache struct {
	*repository.MemoryCache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func newTestService(t *testing.T) (*Service, *countingCache) {
	t.Helper()
	logger, _ := test.NewNullLogger()

	rateTable, err := rates.NewLoader(logger).Load("")
	if err != nil {
		t.Fatalf("failed to load rates: %v", err)
	}
	unitTable, err := units.Default()
	if err != nil {
		t.Fatalf("failed to load units: %v", err)
	}

	cache := &countingCache{MemoryCache: repository.NewMemoryCache()}
	svc := NewService(repository.NewRepository(cache, time.Hour), logger, rateTable, unitTable)
	svc.now = func() time.Time { return time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC) }
	return svc, cache
}

func TestModes(t *testing.T) {
	svc, _ := newTestService(t)
	modes := svc.Modes()
	if len(modes) != 6 {
		t.Fatalf("expected 6 modes, got %d", len(modes))
	}
	if modes[0].ID != models.ModeScientific {
		t.Errorf("expected scientific first, got %s", modes[0].ID)
	}

	modes[0].Label = "changed"
	if svc.Modes()[0].Label == "changed" {
		t.Error("expected Modes to return a copy")
	}
}

func TestMortgage(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Mortgage(models.MortgageRequest{
		Principal:         models.NewNumber(300000),
		AnnualRatePercent: models.NewNumber(6.5),
		TermYears:         models.NewNumber(30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MonthlyPayment != 1896.2 {
		t.Errorf("expected 1896.20, got %.2f", result.MonthlyPayment)
	}

	_, err = svc.Mortgage(models.MortgageRequest{Principal: models.NewNumber(1000)})
	if !errors.Is(err, ErrMissingInput) || !IsInputError(err) {
		t.Errorf("expected missing input, got %v", err)
	}
}

func TestMortgageSchedule_Cached(t *testing.T) {
	svc, cache := newTestService(t)
	ctx := context.Background()
	req := models.MortgageRequest{
		Principal:         models.NewNumber(1000),
		AnnualRatePercent: models.NewNumber(12),
		TermYears:         models.NewNumber(1),
	}

	first, err := svc.MortgageSchedule(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.MortgageSchedule(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
	if len(first.Installments) != 12 || len(second.Installments) != 12 {
		t.Errorf("expected 12 installments, got %d and %d", len(first.Installments), len(second.Installments))
	}
	if first.Summary != second.Summary {
		t.Errorf("expected cached summary %+v, got %+v", first.Summary, second.Summary)
	}
}

func TestAge(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Age(models.AgeRequest{BirthDate: "1990-05-15"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Years != 33 || result.Months != 11 || result.Days != 29 {
		t.Errorf("expected 33y 11m 29d, got %dy %dm %dd", result.Years, result.Months, result.Days)
	}
	if result.DaysToNextAnniversary != 1 {
		t.Errorf("expected 1 day to birthday, got %d", result.DaysToNextAnniversary)
	}

	result, err = svc.Age(models.AgeRequest{BirthDate: "2000-01-01", AsOf: "2000-01-31"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalDays != 30 {
		t.Errorf("expected 30 days, got %d", result.TotalDays)
	}
}

func TestAge_Errors(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  models.AgeRequest
		want error
	}{
		{"missing birth date", models.AgeRequest{}, datedelta.ErrMissingDate},
		{"bad layout", models.AgeRequest{BirthDate: "15/05/1990"}, ErrMissingInput},
		{"bad reference date", models.AgeRequest{BirthDate: "1990-05-15", AsOf: "soon"}, ErrMissingInput},
		{"future birth date", models.AgeRequest{BirthDate: "2030-01-01"}, datedelta.ErrFutureDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Age(tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !IsInputError(err) {
				t.Errorf("expected an input error, got %v", err)
			}
		})
	}
}

func TestTemperature(t *testing.T) {
	svc, _ := newTestService(t)

	reading, err := svc.Temperature(models.TemperatureRequest{Value: models.NewNumber(100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Fahrenheit != 212 || reading.Kelvin != 373.15 {
		t.Errorf("unexpected reading %+v", reading)
	}

	reading, err = svc.Temperature(models.TemperatureRequest{Value: models.NewNumber(32), Scale: "F"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Celsius != 0 {
		t.Errorf("expected 0 C, got %v", reading.Celsius)
	}

	if _, err := svc.Temperature(models.TemperatureRequest{}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected missing input, got %v", err)
	}
	if _, err := svc.Temperature(models.TemperatureRequest{Value: models.NewNumber(1), Scale: "R"}); !IsInputError(err) {
		t.Errorf("expected an input error, got %v", err)
	}
}

func TestCurrency(t *testing.T) {
	svc, _ := newTestService(t)

	conv, err := svc.Currency(models.CurrencyRequest{Amount: models.NewNumber(100), From: "usd", To: "EUR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Converted != 92 {
		t.Errorf("expected 92.00, got %.2f", conv.Converted)
	}

	if _, err := svc.Currency(models.CurrencyRequest{Amount: models.NewNumber(1), From: "USD", To: "XYZ"}); !errors.Is(err, currency.ErrUnknownCurrency) {
		t.Errorf("expected unknown currency, got %v", err)
	}
	if _, err := svc.Currency(models.CurrencyRequest{Amount: models.NewNumber(1), From: "USD"}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected missing input, got %v", err)
	}
	if len(svc.Rates()) == 0 {
		t.Error("expected rates to be listed")
	}
}

func TestUnits(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Units(models.UnitsRequest{Amount: models.NewNumber(1), Category: "Length"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.From != "m" || result.To != "km" || result.Value == nil || *result.Value != 0.001 {
		t.Errorf("expected default pair m->km = 0.001, got %+v", result)
	}

	result, err = svc.Units(models.UnitsRequest{Amount: models.NewNumber(1), Category: "weight", From: "kg", To: AllUnits})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != "Weight" || len(result.Conversions) != 4 || result.Value != nil {
		t.Errorf("expected 4 weight conversions, got %+v", result)
	}

	if _, err := svc.Units(models.UnitsRequest{Amount: models.NewNumber(1), Category: "Speed"}); !errors.Is(err, units.ErrUnknownCategory) {
		t.Errorf("expected unknown category, got %v", err)
	}
	if _, err := svc.Units(models.UnitsRequest{Category: "Length"}); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected missing input, got %v", err)
	}
	if len(svc.UnitCategories()) != 4 {
		t.Errorf("expected 4 categories")
	}
}

func TestPress(t *testing.T) {
	svc, _ := newTestService(t)

	st := scientific.New()
	if err := svc.Press(st, []string{"2", "+", "3", "="}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view := View(st)
	if view.Display != "5" || view.Angle != "DEG" || view.Error {
		t.Errorf("unexpected view %+v", view)
	}

	if err := svc.Press(st, []string{"%"}); !IsInputError(err) {
		t.Errorf("expected an input error, got %v", err)
	}
}

func TestIsInputError(t *testing.T) {
	if IsInputError(errors.New("connection refused")) {
		t.Error("expected an unrelated error not to be an input error")
	}
	if IsInputError(nil) {
		t.Error("expected nil not to be an input error")
	}
}
