package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Clock is a wall-clock time of day with minute precision
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	if !dateRe.MatchString(dateStr) {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	parts := strings.Split(dateStr, "-")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseClock converts an HH:MM string (24h) into a Clock
func ParseClock(s string) (Clock, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("invalid time format, expected HH:MM")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Clock{Hour: hour, Minute: minute}, nil
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// At combines a date and a clock in loc
func At(d Date, c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, c.Hour, c.Minute, 0, 0, loc)
}

// ParseAmountCents parses a non-negative decimal amount ("12", "12.5",
// "12.50") into cents. Fractions of a cent are rounded half away from zero.
func ParseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if f < 0 {
		return 0, ErrNegativeAmount
	}
	// float64(MaxInt64) is 2^63, which no longer fits in an int64
	cents := math.Round(f * 100)
	if cents >= math.MaxInt64 {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return int64(cents), nil
}

// ErrNegativeAmount is returned by ParseAmountCents for amounts below zero
var ErrNegativeAmount = errors.New("amount is negative")

// FormatCents renders cents as a decimal string with two places
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// PriceBreakdown is the charge for one booked day
type PriceBreakdown struct {
	PricePerDayCents int64
	ServiceFeeCents  int64
	TotalCents       int64
}

// CalculateBookingPrice applies the service fee (a whole percentage of the
// effective daily price, rounded half up to the cent) and returns the total.
func CalculateBookingPrice(effectivePriceCents int64, feePercent int) PriceBreakdown {
	fee := (effectivePriceCents*int64(feePercent) + 50) / 100
	return PriceBreakdown{
		PricePerDayCents: effectivePriceCents,
		ServiceFeeCents:  fee,
		TotalCents:       effectivePriceCents + fee,
	}
}

// EffectivePrice returns the override price when the date is explicitly
// available with a price override, otherwise the listing's default price.
func EffectivePrice(defaultCents int64, overrideAvailable bool, overrideCents *int64) int64 {
	if overrideAvailable && overrideCents != nil {
		return *overrideCents
	}
	return defaultCents
}

// CancellationAllowed reports whether more than window remains between now
// and start. Exactly window remaining is too late.
func CancellationAllowed(now, start time.Time, window time.Duration) bool {
	return start.Sub(now) > window
}
