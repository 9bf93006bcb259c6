package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/mortgage"
	"github.com/Dan9191/calc-service/internal/models"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Set(ctx, "b", "2", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := cache.Get(ctx, "a"); !ok || v != "1" {
		t.Errorf("expected a=1, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "a"); ok {
		t.Error("expected a to expire")
	}
	if v, ok := cache.Get(ctx, "b"); !ok || v != "2" {
		t.Errorf("expected b to live forever, got %q %v", v, ok)
	}
}

func TestMemoryCache_Purge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "short", "x", time.Second)
	cache.Set(ctx, "long", "y", time.Hour)

	now = now.Add(time.Minute)
	if removed := cache.Purge(); removed != 1 {
		t.Errorf("expected 1 purged entry, got %d", removed)
	}
	if _, ok := cache.Get(ctx, "long"); !ok {
		t.Error("expected long entry to survive")
	}
}

func TestRepository_Schedule(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryCache(), time.Hour)
	in := mortgage.Input{Principal: 1000, AnnualRatePercent: 12, TermYears: 1}

	if _, ok := repo.FindSchedule(ctx, in); ok {
		t.Fatal("expected a cache miss")
	}

	result := &models.ScheduleResult{
		Summary:      mortgage.Result{MonthlyPayment: 88.85},
		Installments: []mortgage.Installment{{Month: 1, Payment: 88.85}},
	}
	if err := repo.SaveSchedule(ctx, in, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := repo.FindSchedule(ctx, in)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Summary.MonthlyPayment != 88.85 || len(got.Installments) != 1 {
		t.Errorf("unexpected cached schedule: %+v", got)
	}

	other := in
	other.TermYears = 2
	if _, ok := repo.FindSchedule(ctx, other); ok {
		t.Error("expected a different loan to miss")
	}
}
