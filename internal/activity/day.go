package activity

import (
	"errors"
	"fmt"
	"time"
)

// SecondsPerDay is the distance between two consecutive activity days.
const SecondsPerDay int64 = 86400

// DefaultRollover is the hour a new day starts at when nothing else is configured.
const DefaultRollover = 4

// maxYear is the last year a Day can render as a four-digit ISO date.
const maxYear = 9999

// ErrInvalidInput is returned for negative or out-of-range timestamps and
// out-of-range rollover hours.
var ErrInvalidInput = errors.New("invalid input")

// Day is the start of an activity day, in seconds since the Unix epoch.
// It always sits on a UTC midnight, so consecutive days differ by exactly
// SecondsPerDay regardless of daylight saving in the local timezone.
type Day int64

// Time returns the day as a UTC time at midnight.
func (d Day) Time() time.Time {
	return time.Unix(int64(d), 0).UTC()
}

// Date renders the day as YYYY-MM-DD.
func (d Day) Date() string {
	return d.Time().Format("2006-01-02")
}

// Next returns the following day.
func (d Day) Next() Day { return d + Day(SecondsPerDay) }

// Prev returns the preceding day.
func (d Day) Prev() Day { return d - Day(SecondsPerDay) }

// ParseDay parses a YYYY-MM-DD date into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, s, err)
	}
	return Day(t.Unix()), nil
}

// Boundary describes where one activity day ends and the next begins.
type Boundary struct {
	// Rollover is the number of hours past local midnight at which a new
	// day starts, in [0,23].
	Rollover int
	// Location supplies the local clock. Nil means UTC.
	Location *time.Location
}

// Validate reports whether the boundary can be used for normalization.
func (b Boundary) Validate() error {
	if b.Rollover < 0 || b.Rollover > 23 {
		return fmt.Errorf("%w: rollover hour %d outside [0,23]", ErrInvalidInput, b.Rollover)
	}
	return nil
}

func (b Boundary) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

// Normalize maps a millisecond timestamp to the activity day it belongs to.
//
// The local wall clock of tsMs is shifted back by the rollover hours and the
// calendar date of the shifted clock names the day. The shift is done on the
// wall clock, not on the instant, so a day always starts at the same local
// hour even across a DST change.
func Normalize(tsMs int64, b Boundary) (Day, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if tsMs < 0 {
		return 0, fmt.Errorf("%w: negative timestamp %d", ErrInvalidInput, tsMs)
	}

	local := time.UnixMilli(tsMs).In(b.location())
	// time.Date normalizes a negative hour into the previous day.
	shifted := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour()-b.Rollover, local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	y, m, d := shifted.Date()
	if y > maxYear {
		return 0, fmt.Errorf("%w: timestamp %d falls after year %d", ErrInvalidInput, tsMs, maxYear)
	}
	return Day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()), nil
}
