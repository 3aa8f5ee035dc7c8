// Package report turns configuration and an event source into the explicit
// parameters the activity engine needs, and runs it.
package report

import (
	"fmt"
	"time"

	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/config"
	"github.com/rnwolfe/streakmap/internal/revlog"
)

// Settings are the resolved inputs for one aggregation run.
type Settings struct {
	Rollover int
	Location *time.Location
	Mode     activity.CountMode
	Fill     bool
}

// Overrides come from command-line flags and win over everything else.
type Overrides struct {
	Rollover *int
	Timezone string
	Mode     *activity.CountMode
	Fill     *bool
}

// RolloverSource reports a rollover hour stored alongside the events.
type RolloverSource interface {
	Rollover() (hour int, ok bool, err error)
}

// Resolve picks the rollover hour, timezone and count mode.
// Rollover precedence: flag, config file, the collection's own setting, then
// activity.DefaultRollover. col may be nil.
func Resolve(cfg *config.Config, col RolloverSource, o Overrides) (Settings, error) {
	var s Settings

	switch {
	case o.Rollover != nil:
		s.Rollover = *o.Rollover
	case cfg.Day.Rollover != nil:
		s.Rollover = *cfg.Day.Rollover
	default:
		s.Rollover = activity.DefaultRollover
		if col != nil {
			hour, ok, err := col.Rollover()
			if err != nil {
				return Settings{}, fmt.Errorf("reading collection rollover: %w", err)
			}
			if ok {
				s.Rollover = hour
			}
		}
	}

	day := cfg.Day
	if o.Timezone != "" {
		day.Timezone = o.Timezone
	}
	loc, err := day.Location()
	if err != nil {
		return Settings{}, err
	}
	s.Location = loc

	if o.Mode != nil {
		s.Mode = *o.Mode
	} else {
		mode, err := activity.ParseCountMode(cfg.Heatmap.Count)
		if err != nil {
			return Settings{}, err
		}
		s.Mode = mode
	}

	s.Fill = cfg.Heatmap.Fill
	if o.Fill != nil {
		s.Fill = *o.Fill
	}

	if err := s.Boundary().Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Boundary returns the day boundary for these settings.
func (s Settings) Boundary() activity.Boundary {
	return activity.Boundary{Rollover: s.Rollover, Location: s.Location}
}

// Build loads every event from src once and aggregates it relative to now.
func Build(src revlog.Source, s Settings, now time.Time) (*activity.Result, error) {
	events, err := src.Events()
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	res, err := activity.Aggregate(events, activity.Options{
		Boundary: s.Boundary(),
		Mode:     s.Mode,
		FillGaps: s.Fill,
	}, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("aggregating events: %w", err)
	}
	return res, nil
}

// Recent returns the n days ending at res.Today, oldest first, with zero
// values for idle days.
func Recent(res *activity.Result, n int) []activity.DayCount {
	if n <= 0 || res == nil {
		return nil
	}
	today, err := activity.ParseDay(res.Today)
	if err != nil {
		return nil
	}

	counts := make(map[string]int, len(res.Heatmap))
	for _, c := range res.Heatmap {
		counts[c.Date] = c.Value
	}

	out := make([]activity.DayCount, n)
	d := today
	for i := n - 1; i >= 0; i-- {
		out[i] = activity.DayCount{Date: d.Date(), Value: counts[d.Date()]}
		d = d.Prev()
	}
	return out
}
