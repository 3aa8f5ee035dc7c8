package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/config"
	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/revlog"
	"github.com/rnwolfe/streakmap/internal/store"
	"github.com/rnwolfe/streakmap/internal/ui"
)

// Persistent flags shared by every command.
var (
	flagCollection string
	flagRollover   rolloverFlag
	flagTimezone   string
	flagNoColor    bool
)

// rolloverFlag is a pflag.Value that only accepts hours 0-23 and remembers
// whether it was set at all.
type rolloverFlag struct {
	hour *int
}

func (f *rolloverFlag) String() string {
	if f.hour == nil {
		return ""
	}
	return strconv.Itoa(*f.hour)
}

func (f *rolloverFlag) Set(s string) error {
	h, err := config.ParseHour(s)
	if err != nil {
		return err
	}
	f.hour = &h
	return nil
}

func (f *rolloverFlag) Type() string { return "hour" }

// session is an open event source plus the config it was resolved from.
type session struct {
	cfg *config.Config
	db  *store.DB
	src revlog.Source
	col report.RolloverSource // nil for the streakmap log
}

// openSession opens the Anki collection when one is configured, otherwise the
// streakmap event log.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	path := cfg.Collection.Path
	if flagCollection != "" {
		path = flagCollection
	}

	s := &session{cfg: cfg}
	if path == "" {
		db, err := store.Open()
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		s.db = db
		s.src = revlog.NewLog(db.Conn())
		return s, nil
	}

	db, err := store.OpenCollection(path)
	if err != nil {
		return nil, err
	}
	col := revlog.NewCollection(db.Conn())
	s.db, s.src, s.col = db, col, col
	return s, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// overrides merges the persistent flags with per-command overrides in o.
func (s *session) overrides(o report.Overrides) report.Overrides {
	if o.Rollover == nil {
		o.Rollover = flagRollover.hour
	}
	if o.Timezone == "" {
		o.Timezone = flagTimezone
	}
	return o
}

// settings resolves the settings a run with overrides o would use.
func (s *session) settings(o report.Overrides) (report.Settings, error) {
	return report.Resolve(s.cfg, s.col, s.overrides(o))
}

// compute reads every event and aggregates it against the current time.
// Nothing is cached; each call sees the log as it is now.
func (s *session) compute(o report.Overrides) (*activity.Result, error) {
	settings, err := s.settings(o)
	if err != nil {
		return nil, err
	}
	return report.Build(s.src, settings, time.Now())
}

// printJSON writes v to stdout, indented when a person is reading it.
func printJSON(v any) error {
	var (
		data []byte
		err  error
	)
	if ui.IsStdoutTTY() {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	ui.Puts(string(data))
	return nil
}
