// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used to
// find calendar-day boundaries: a "day" is the span between two business
// midnights, stored as the UTC instant of the first one.
package biztime

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Kolkata"

	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"
)

// ErrInvalidDate is returned when input cannot be interpreted as a date.
var ErrInvalidDate = errors.New("invalid date")

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// acceptedLayouts are tried in order by ParseDate. Layouts without a zone are
// read in the business timezone.
var acceptedLayouts = []struct {
	layout string
	zoned  bool
}{
	{DateLayout, false},
	{"2006-01-02T15:04:05", false},
	{time.RFC3339, true},
	{time.RFC3339Nano, true},
}

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Kolkata.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, initializing it with the
// default timezone on first use.
func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to initialize timezone: %v", err))
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// TodayUTC returns the start of the current business day.
func TodayUTC(now time.Time) time.Time {
	return StartOfDayUTC(now)
}

// AddDaysUTC moves a day boundary by n calendar days in business timezone.
// Calendar arithmetic keeps the result on a midnight even across DST changes.
func AddDaysUTC(day time.Time, n int) time.Time {
	bizTime := day.In(Location())
	shifted := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day()+n, 0, 0, 0, 0, Location())
	return shifted.UTC()
}

// NormalizeDate truncates t to its calendar day. The zero time is rejected.
func NormalizeDate(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return StartOfDayUTC(t), nil
}

// ParseDate parses date-like input and normalizes it to its calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}

	for _, l := range acceptedLayouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, Location())
		}
		if err == nil {
			return NormalizeDate(t)
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// SameDay reports whether a and b fall on the same business day.
func SameDay(a, b time.Time) bool {
	return StartOfDayUTC(a).Equal(StartOfDayUTC(b))
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// FormatDate formats a day boundary as YYYY-MM-DD in business timezone.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}
