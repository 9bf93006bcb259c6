// Package datedelta measures the calendar distance between a birth date and
// a reference date, and the time left until the next anniversary.
package datedelta

import (
	"errors"
	"time"
)

// Layout is the accepted date format.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var (
	ErrMissingDate = errors.New("birth date is required")
	ErrFutureDate  = errors.New("birth date is after the reference date")
)

// Result is an elapsed-time breakdown. Years, Months and Days are a
// calendar breakdown; the totals count elapsed time and may disagree with
// it by a day.
type Result struct {
	Years                 int    `json:"years" msgpack:"years"`
	Months                int    `json:"months" msgpack:"months"`
	Days                  int    `json:"days" msgpack:"days"`
	TotalDays             int    `json:"total_days" msgpack:"total_days"`
	TotalWeeks            int    `json:"total_weeks" msgpack:"total_weeks"`
	TotalMonths           int    `json:"total_months" msgpack:"total_months"`
	DaysToNextAnniversary int    `json:"days_to_next_anniversary" msgpack:"days_to_next_anniversary"`
	NextAnniversaryYear   int    `json:"next_anniversary_year" msgpack:"next_anniversary_year"`
	NextAge               int    `json:"next_age" msgpack:"next_age"`
	BirthWeekday          string `json:"birth_weekday" msgpack:"birth_weekday"`
}

// Parse reads a YYYY-MM-DD date as a UTC calendar date.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	return time.ParseInLocation(Layout, s, time.UTC)
}

// Delta computes the breakdown from birth to asOf. Only the calendar dates
// of both arguments are used.
func Delta(birth, asOf time.Time) (Result, error) {
	if birth.IsZero() {
		return Result{}, ErrMissingDate
	}
	birth = dateOf(birth)
	asOf = dateOf(asOf)
	if birth.After(asOf) {
		return Result{}, ErrFutureDate
	}

	years := asOf.Year() - birth.Year()
	months := int(asOf.Month()) - int(birth.Month())
	days := asOf.Day() - birth.Day()

	if days < 0 {
		months--
		// Borrow the month before asOf. A birth day past that month's end
		// counts as its last day.
		prevLen := daysIn(asOf.Year(), asOf.Month()-1)
		bd := birth.Day()
		if bd > prevLen {
			bd = prevLen
		}
		days = asOf.Day() + prevLen - bd
	}
	if months < 0 {
		years--
		months += 12
	}

	totalDays := wholeDays(birth, asOf)
	next := anniversary(birth, asOf.Year())
	if next.Before(asOf) {
		next = anniversary(birth, asOf.Year()+1)
	}

	return Result{
		Years:                 years,
		Months:                months,
		Days:                  days,
		TotalDays:             totalDays,
		TotalWeeks:            totalDays / 7,
		TotalMonths:           years*12 + months,
		DaysToNextAnniversary: wholeDays(asOf, next),
		NextAnniversaryYear:   next.Year(),
		NextAge:               next.Year() - birth.Year(),
		BirthWeekday:          birth.Weekday().String(),
	}, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// anniversary places birth's month and day in year. February 29 rolls over
// to March 1 in common years.
func anniversary(birth time.Time, year int) time.Time {
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
}

// daysIn handles month 0 as December of the previous year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// wholeDays counts on Unix seconds because time.Duration saturates at
// about 292 years.
func wholeDays(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
