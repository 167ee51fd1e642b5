package utils

import "time"

// Calendar averaging constants used across all duration computations so that
// yearly and monthly figures stay consistent with each other.
const (
	DaysPerYear         = 365.25
	AverageDaysPerMonth = 30.44
)

// DayStart truncates t to midnight UTC so that intra-day clock differences
// never leak into duration computations.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// YearsBetween returns the fractional number of years between from and to,
// clamped to zero when to precedes from.
func YearsBetween(from, to time.Time) float64 {
	days := DayStart(to).Sub(DayStart(from)).Hours() / 24
	years := days / DaysPerYear
	if years < 0 {
		return 0
	}
	return years
}

// MonthsBetween returns the fractional number of average months between from and to.
func MonthsBetween(from, to time.Time) float64 {
	days := DayStart(to).Sub(DayStart(from)).Hours() / 24
	return days / AverageDaysPerMonth
}

// YearsToMonths converts a fractional year count to months.
func YearsToMonths(years float64) float64 {
	return years * 12
}

// MonthsToYears converts a month count to fractional years.
func MonthsToYears(months float64) float64 {
	return months / 12
}

// DateOrDefault returns t when it is set, otherwise fallback.
func DateOrDefault(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}
