package datedelta

import (
	"errors"
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := Parse(s)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", s, err)
	}
	return d
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name        string
		birth, asOf string
		want        Result
	}{
		{
			name:  "leap day birthday in a common year",
			birth: "2000-02-29",
			asOf:  "2023-03-01",
			want: Result{
				Years: 23, Months: 0, Days: 1,
				TotalDays: 8401, TotalWeeks: 1200, TotalMonths: 276,
				DaysToNextAnniversary: 0, NextAnniversaryYear: 2023, NextAge: 23,
				BirthWeekday: "Tuesday",
			},
		},
		{
			name:  "day before birthday",
			birth: "1990-06-15",
			asOf:  "2024-06-14",
			want: Result{
				Years: 33, Months: 11, Days: 30,
				TotalDays: 12418, TotalWeeks: 1774, TotalMonths: 407,
				DaysToNextAnniversary: 1, NextAnniversaryYear: 2024, NextAge: 34,
				BirthWeekday: "Friday",
			},
		},
		{
			name:  "borrow across the year boundary",
			birth: "1985-12-25",
			asOf:  "2024-01-10",
			want: Result{
				Years: 38, Months: 0, Days: 16,
				TotalDays: 13895, TotalWeeks: 1985, TotalMonths: 456,
				DaysToNextAnniversary: 350, NextAnniversaryYear: 2024, NextAge: 39,
				BirthWeekday: "Wednesday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Delta(date(t, tt.birth), date(t, tt.asOf))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDelta_MonthEndBirthday(t *testing.T) {
	got, err := Delta(date(t, "2000-01-31"), date(t, "2023-03-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Years != 23 || got.Months != 1 || got.Days != 1 {
		t.Errorf("expected 23y 1m 1d, got %dy %dm %dd", got.Years, got.Months, got.Days)
	}
}

func TestDelta_SameDay(t *testing.T) {
	d := date(t, "2010-05-20")
	got, err := Delta(d, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Years != 0 || got.Months != 0 || got.Days != 0 || got.TotalDays != 0 {
		t.Errorf("expected an empty delta, got %+v", got)
	}
	if got.DaysToNextAnniversary != 0 || got.NextAnniversaryYear != 2010 {
		t.Errorf("expected the anniversary to be today, got %+v", got)
	}
}

func TestDelta_IgnoresTimeOfDay(t *testing.T) {
	birth := time.Date(2000, 3, 1, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2000, 3, 2, 0, 1, 0, 0, time.UTC)

	got, err := Delta(birth, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalDays != 1 || got.Days != 1 {
		t.Errorf("expected one day, got %+v", got)
	}
}

func TestDelta_LongSpan(t *testing.T) {
	got, err := Delta(date(t, "1700-01-01"), date(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalDays != 118398 {
		t.Errorf("expected 118398 days, got %d", got.TotalDays)
	}
}

func TestDelta_Errors(t *testing.T) {
	if _, err := Delta(time.Time{}, time.Now()); !errors.Is(err, ErrMissingDate) {
		t.Errorf("expected ErrMissingDate, got %v", err)
	}
	if _, err := Delta(date(t, "2030-01-01"), date(t, "2024-01-01")); !errors.Is(err, ErrFutureDate) {
		t.Errorf("expected ErrFutureDate, got %v", err)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrMissingDate) {
		t.Errorf("expected ErrMissingDate, got %v", err)
	}
	if _, err := Parse("2023-02-30"); err == nil {
		t.Error("expected an error for an impossible date")
	}
	if _, err := Parse("01/02/2023"); err == nil {
		t.Error("expected an error for a foreign layout")
	}
}
