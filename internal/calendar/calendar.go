package calendar

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = DateLayout + " " + ClockLayout

	longDateLayout = "Monday, January 2, 2006"
	shortClock     = "3:04 PM"
)

// ErrInvalidTimeFormat is returned whenever a date or a clock string does not
// match DateLayout / ClockLayout.
var ErrInvalidTimeFormat = httperr.ErrBusiness("invalid_time_format")

// ParseDate returns midnight of the given YYYY-MM-DD day in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}
	return d, nil
}

// ParseClock parses a zero-padded 24h HH:mm string.
func ParseClock(clock string) (hour, minute int, err error) {
	if len(clock) != len(ClockLayout) {
		return 0, 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDateTime combines a date and a clock string into one timestamp.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return At(day, h, m), nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// At returns the same calendar day as day, at hour:minute.
func At(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// AddDays moves t by whole calendar days, keeping the wall clock.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func Weekday(t time.Time) time.Weekday {
	return t.Weekday()
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBefore reports whether a falls on a calendar day strictly before b.
func DayBefore(a, b time.Time) bool {
	return StartOfDay(a).Before(StartOfDay(b))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatLong renders "Monday, January 2, 2006".
func FormatLong(t time.Time) string {
	return t.Format(longDateLayout)
}

// FormatRange renders "9:00 AM - 9:30 AM".
func FormatRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format(shortClock), end.Format(shortClock))
}
