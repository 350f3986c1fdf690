package types

import (
	"cmp"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ShortTimeLayout is accepted in addition to civil's HH:MM:SS when parsing a
// TimeOfDay.
const ShortTimeLayout = "15:04"

// Date is a calendar date without a time zone. It marshals as YYYY-MM-DD.
type Date struct {
	civil.Date
}

// NewDate builds a Date. Out-of-range values are normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the date part of t in t's location.
func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{d}, nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Before(o.Date):
		return -1
	case d.After(o.Date):
		return 1
	}
	return 0
}

// TimeOfDay is a wall-clock time without a date. It marshals as HH:MM:SS.
type TimeOfDay struct {
	civil.Time
}

// NewTimeOfDay builds a TimeOfDay.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{civil.Time{Hour: hour, Minute: minute, Second: second}}
}

// ParseTimeOfDay parses HH:MM:SS or HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := civil.ParseTime(s)
	if err == nil {
		return TimeOfDay{t}, nil
	}
	short, shortErr := time.Parse(ShortTimeLayout, s)
	if shortErr != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{civil.TimeOf(short)}, nil
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after o.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	if c := cmp.Compare(t.Hour, o.Hour); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Minute, o.Minute); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Second, o.Second); c != 0 {
		return c
	}
	return cmp.Compare(t.Nanosecond, o.Nanosecond)
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting HH:MM as well.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
