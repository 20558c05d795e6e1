package grid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidFormat is returned when a string is not a valid YYYY-MM-DD calendar date
var ErrInvalidFormat = errors.New("invalid date key format")

// KeyLayout is the time layout matching a DateKey
const KeyLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// DateKey identifies a calendar day in YYYY-MM-DD form.
// It carries no time-of-day and no zone.
type DateKey string

// NewDateKey formats a (year, month, day) triple as a zero-padded DateKey
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// KeyOf returns the DateKey of t's calendar day in t's own location
func KeyOf(t time.Time) DateKey {
	y, m, d := t.Date()
	return NewDateKey(y, m, d)
}

// ParseDateKey splits a YYYY-MM-DD string into its calendar components.
// Impossible dates such as 2023-13-01 or 2023-02-30 are rejected.
func ParseDateKey(s string) (year int, month time.Month, day int, err error) {
	m := dateKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	year, _ = strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])

	if mon < 1 || mon > 12 || day < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	// time.Date normalizes overflow (Feb 30 -> Mar 2), so a mismatch means the day does not exist
	probe := time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC)
	if probe.Month() != time.Month(mon) || probe.Day() != day {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return year, time.Month(mon), day, nil
}

// Parse is the method form of ParseDateKey
func (k DateKey) Parse() (int, time.Month, int, error) {
	return ParseDateKey(string(k))
}

// Valid reports whether k encodes a real calendar date
func (k DateKey) Valid() bool {
	_, _, _, err := ParseDateKey(string(k))
	return err == nil
}

// In returns local midnight of k's day in loc
func (k DateKey) In(loc *time.Location) (time.Time, error) {
	y, m, d, err := ParseDateKey(string(k))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

func (k DateKey) String() string {
	return string(k)
}
