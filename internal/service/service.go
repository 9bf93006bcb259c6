package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/currency"
	"github.com/Dan9191/calc-service/internal/calc/datedelta"
	"github.com/Dan9191/calc-service/internal/calc/mortgage"
	"github.com/Dan9191/calc-service/internal/calc/scientific"
	"github.com/Dan9191/calc-service/internal/calc/temperature"
	"github.com/Dan9191/calc-service/internal/calc/units"
	"github.com/Dan9191/calc-service/internal/models"
	"github.com/Dan9191/calc-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// AllUnits requests every other unit of a category
const AllUnits = "*"

// ErrMissingInput is returned when a required field is empty
var ErrMissingInput = errors.New("missing input")

var inputErrors = []error{
	ErrMissingInput,
	mortgage.ErrInvalidInput,
	mortgage.ErrScheduleTooLong,
	datedelta.ErrMissingDate,
	datedelta.ErrFutureDate,
	temperature.ErrInvalidInput,
	temperature.ErrUnknownScale,
	currency.ErrInvalidInput,
	currency.ErrUnknownCurrency,
	units.ErrInvalidInput,
	units.ErrUnknownCategory,
	units.ErrUnknownUnit,
	scientific.ErrUnknownKey,
}

// IsInputError reports whether err means the request produced no result
// because of its input, as opposed to a failure of the service
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Service routes calculator requests to the engines
type Service struct {
	repo  *repository.Repository
	log   *logrus.Logger
	rates *currency.RateTable
	units *units.Table
	now   func() time.Time
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, rates *currency.RateTable, unitTable *units.Table) *Service {
	return &Service{repo: repo, log: log, rates: rates, units: unitTable, now: time.Now}
}

// Modes lists the available calculators
func (s *Service) Modes() []models.ModeInfo {
	out := make([]models.ModeInfo, len(models.Modes))
	copy(out, models.Modes)
	return out
}

// Mortgage computes loan payments
func (s *Service) Mortgage(req models.MortgageRequest) (mortgage.Result, error) {
	in, err := mortgageInput(req)
	if err != nil {
		return mortgage.Result{}, s.reject(models.ModeMortgage, err)
	}
	result, err := mortgage.Amortize(in)
	if err != nil {
		return mortgage.Result{}, s.reject(models.ModeMortgage, err)
	}
	s.log.Debugf("Mortgage %+v: %+v", in, result)
	return result, nil
}

// MortgageSchedule computes the payment summary and the monthly schedule.
// Schedules are cached; a cache failure is logged and ignored.
func (s *Service) MortgageSchedule(ctx context.Context, req models.MortgageRequest) (*models.ScheduleResult, error) {
	in, err := mortgageInput(req)
	if err != nil {
		return nil, s.reject(models.ModeMortgage, err)
	}

	if cached, ok := s.repo.FindSchedule(ctx, in); ok {
		s.log.Debugf("Schedule cache hit for %+v", in)
		return cached, nil
	}

	summary, err := mortgage.Amortize(in)
	if err != nil {
		return nil, s.reject(models.ModeMortgage, err)
	}
	rows, err := mortgage.Schedule(in)
	if err != nil {
		return nil, s.reject(models.ModeMortgage, err)
	}

	result := &models.ScheduleResult{Summary: summary, Installments: rows}
	if err := s.repo.SaveSchedule(ctx, in, result); err != nil {
		s.log.Warnf("Failed to cache schedule: %v", err)
	}
	s.log.Debugf("Schedule %+v: %d installments", in, len(rows))
	return result, nil
}

// Age computes the time elapsed since a birth date
func (s *Service) Age(req models.AgeRequest) (datedelta.Result, error) {
	birth, err := datedelta.Parse(req.BirthDate)
	if err != nil {
		return datedelta.Result{}, s.reject(models.ModeAge, dateError("birth_date", err))
	}

	asOf := s.now()
	if req.AsOf != "" {
		if asOf, err = datedelta.Parse(req.AsOf); err != nil {
			return datedelta.Result{}, s.reject(models.ModeAge, dateError("as_of", err))
		}
	}

	result, err := datedelta.Delta(birth, asOf)
	if err != nil {
		return datedelta.Result{}, s.reject(models.ModeAge, err)
	}
	s.log.Debugf("Age from %s: %+v", req.BirthDate, result)
	return result, nil
}

// Temperature converts a reading to every scale
func (s *Service) Temperature(req models.TemperatureRequest) (temperature.Reading, error) {
	value, ok := req.Value.Get()
	if !ok {
		return temperature.Reading{}, s.reject(models.ModeTemperature, fmt.Errorf("%w: value", ErrMissingInput))
	}
	scale := temperature.Celsius
	if req.Scale != "" {
		var err error
		if scale, err = temperature.ParseScale(req.Scale); err != nil {
			return temperature.Reading{}, s.reject(models.ModeTemperature, err)
		}
	}

	reading, err := temperature.Convert(value, scale)
	if err != nil {
		return temperature.Reading{}, s.reject(models.ModeTemperature, err)
	}
	s.log.Debugf("Temperature %v %s: %+v", value, scale, reading)
	return reading, nil
}

// Rates lists the currency table
func (s *Service) Rates() []currency.Rate {
	return s.rates.Rates()
}

// Currency converts an amount between two currencies
func (s *Service) Currency(req models.CurrencyRequest) (currency.Conversion, error) {
	amount, ok := req.Amount.Get()
	if !ok {
		return currency.Conversion{}, s.reject(models.ModeCurrency, fmt.Errorf("%w: amount", ErrMissingInput))
	}
	if req.From == "" || req.To == "" {
		return currency.Conversion{}, s.reject(models.ModeCurrency, fmt.Errorf("%w: from and to", ErrMissingInput))
	}

	conv, err := s.rates.Convert(amount, req.From, req.To)
	if err != nil {
		return currency.Conversion{}, s.reject(models.ModeCurrency, err)
	}
	s.log.Debugf("Currency %+v", conv)
	return conv, nil
}

// UnitCategories lists the unit tables
func (s *Service) UnitCategories() []units.Category {
	return s.units.Categories()
}

// Units converts an amount within a category
func (s *Service) Units(req models.UnitsRequest) (*models.UnitsResult, error) {
	amount, ok := req.Amount.Get()
	if !ok {
		return nil, s.reject(models.ModeUnits, fmt.Errorf("%w: amount", ErrMissingInput))
	}
	if req.Category == "" {
		return nil, s.reject(models.ModeUnits, fmt.Errorf("%w: category", ErrMissingInput))
	}
	category, ok := s.units.Category(req.Category)
	if !ok {
		return nil, s.reject(models.ModeUnits, fmt.Errorf("%w: %q", units.ErrUnknownCategory, req.Category))
	}

	from, to := req.From, req.To
	if from == "" || to == "" {
		defFrom, defTo, err := s.units.DefaultPair(category.Name)
		if err != nil {
			return nil, s.reject(models.ModeUnits, err)
		}
		if from == "" {
			from = defFrom
		}
		if to == "" {
			to = defTo
		}
	}

	result := &models.UnitsResult{Category: category.Name, Amount: amount, From: from}
	if to == AllUnits {
		rows, err := s.units.ConvertAll(amount, category.Name, from)
		if err != nil {
			return nil, s.reject(models.ModeUnits, err)
		}
		result.Conversions = rows
	} else {
		v, err := s.units.Convert(amount, category.Name, from, to)
		if err != nil {
			return nil, s.reject(models.ModeUnits, err)
		}
		result.To = to
		result.Value = &v
	}
	s.log.Debugf("Units %+v", result)
	return result, nil
}

// Press applies keys to a calculator session. The state is updated up to
// the first unknown key.
func (s *Service) Press(st *scientific.State, keys []string) error {
	if err := st.PressAll(keys); err != nil {
		return s.reject(models.ModeScientific, err)
	}
	s.log.Debugf("Scientific %v: display %q", keys, st.Display)
	return nil
}

// View renders a calculator state for clients
func View(st *scientific.State) models.CalculatorView {
	return models.CalculatorView{
		Display:    st.Display,
		Expression: st.Expression(),
		Angle:      st.Angle.String(),
		Error:      st.Failed(),
	}
}

func (s *Service) reject(mode models.Mode, err error) error {
	s.log.WithField("mode", mode).Infof("No result: %v", err)
	return err
}

func mortgageInput(req models.MortgageRequest) (mortgage.Input, error) {
	principal, ok := req.Principal.Get()
	if !ok {
		return mortgage.Input{}, fmt.Errorf("%w: principal", ErrMissingInput)
	}
	rate, ok := req.AnnualRatePercent.Get()
	if !ok {
		return mortgage.Input{}, fmt.Errorf("%w: annual_rate_percent", ErrMissingInput)
	}
	years, ok := req.TermYears.Get()
	if !ok {
		return mortgage.Input{}, fmt.Errorf("%w: term_years", ErrMissingInput)
	}
	return mortgage.Input{Principal: principal, AnnualRatePercent: rate, TermYears: years}, nil
}

// dateError keeps ErrMissingDate and marks layout errors as missing input
func dateError(field string, err error) error {
	if errors.Is(err, datedelta.ErrMissingDate) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrMissingInput, field, err)
}
