package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearsBetween(t *testing.T) {
	from := date(2026, time.February, 1)

	assert.Equal(t, 0.0, YearsBetween(from, from), "same day is zero years")
	assert.Equal(t, 0.0, YearsBetween(from, from.AddDate(-1, 0, 0)), "negative spans clamp to zero")

	oneYear := YearsBetween(from, from.AddDate(1, 0, 0))
	assert.InDelta(t, 365.0/365.25, oneYear, 1e-9)
}

func TestYearsBetweenIgnoresClockTime(t *testing.T) {
	from := time.Date(2026, time.February, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, time.February, 2, 0, 1, 0, 0, time.UTC)
	assert.InDelta(t, 1.0/DaysPerYear, YearsBetween(from, to), 1e-9)
}

func TestMonthsBetween(t *testing.T) {
	from := date(2026, time.February, 1)
	to := from.AddDate(0, 0, 913) // close to 30 average months

	assert.InDelta(t, 30.0, MonthsBetween(from, to), 0.01)
	assert.InDelta(t, -1.0/AverageDaysPerMonth, MonthsBetween(from, from.AddDate(0, 0, -1)), 1e-9)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 5, 22, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}

func TestDateOrDefault(t *testing.T) {
	fallback := date(2026, time.February, 1)
	assert.Equal(t, fallback, DateOrDefault(nil, fallback))

	var zero time.Time
	assert.Equal(t, fallback, DateOrDefault(&zero, fallback))

	set := date(2027, time.June, 15)
	assert.Equal(t, set, DateOrDefault(&set, fallback))
}
