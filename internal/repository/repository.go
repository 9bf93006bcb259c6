package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/mortgage"
	"github.com/Dan9191/calc-service/internal/models"
	"github.com/cespare/xxhash/v2"
)

// Repository keeps computed amortization schedules
type Repository struct {
	cache Cache
	ttl   time.Duration
}

// NewRepository initializes a new repository
func NewRepository(cache Cache, ttl time.Duration) *Repository {
	return &Repository{cache: cache, ttl: ttl}
}

// FindSchedule returns a cached schedule for the loan, if any
func (r *Repository) FindSchedule(ctx context.Context, in mortgage.Input) (*models.ScheduleResult, bool) {
	raw, ok := r.cache.Get(ctx, scheduleKey(in))
	if !ok {
		return nil, false
	}
	result := &models.ScheduleResult{}
	if err := json.Unmarshal([]byte(raw), result); err != nil {
		return nil, false
	}
	return result, true
}

// SaveSchedule caches a schedule for the loan
func (r *Repository) SaveSchedule(ctx context.Context, in mortgage.Input, result *models.ScheduleResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := r.cache.Set(ctx, scheduleKey(in), string(raw), r.ttl); err != nil {
		return fmt.Errorf("failed to cache schedule: %w", err)
	}
	return nil
}

func scheduleKey(in mortgage.Input) string {
	d := xxhash.New()
	for _, v := range []float64{in.Principal, in.AnnualRatePercent, in.TermYears} {
		d.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		d.WriteString("|")
	}
	return fmt.Sprintf("schedule:%016x", d.Sum64())
}
