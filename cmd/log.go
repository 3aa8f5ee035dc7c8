package cmd

import (
	"fmt"
	"time"

	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/config"
	"github.com/rnwolfe/streakmap/internal/revlog"
	"github.com/rnwolfe/streakmap/internal/store"
	"github.com/rnwolfe/streakmap/internal/ui"
	"github.com/spf13/cobra"
)

var (
	logAt   string
	logKind string
)

var logCmd = &cobra.Command{
	Use:   "log <subject>...",
	Short: "Record learned cards in the streakmap event log",
	Long: `Records one event per subject in streakmap's own event log, for studying
outside of Anki. Each subject counts once, on the day it is first logged.

  streakmap log "ser vs estar"
  streakmap log kanji-42 kanji-43 --at 2026-03-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "When it happened (RFC3339 or YYYY-MM-DD; default now)")
	logCmd.Flags().StringVar(&logKind, "kind", "learn", "Event kind (learn, review, relearn, filtered, manual)")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	at, err := parseLogTime(logAt, time.Now())
	if err != nil {
		return err
	}
	kind, err := activity.ParseKind(logKind)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Collection.Path != "" || flagCollection != "" {
		ui.Warn("a collection is configured; events in the streakmap log are not read while it is")
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer db.Close()

	l := revlog.NewLog(db.Conn())
	for _, subject := range args {
		if _, err := l.Record(subject, at, kind); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("%s %s", kind, subject))
	}

	n, err := l.Count()
	if err != nil {
		return fmt.Errorf("counting events: %w", err)
	}
	ui.Puts(ui.Muted.Render(fmt.Sprintf("  %d events in %s", n, config.GetPaths().DBFile)))
	return nil
}

// parseLogTime accepts RFC3339 or a bare date. A bare date means noon local
// time so it lands on that day for any rollover hour.
func parseLogTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q (use RFC3339 or YYYY-MM-DD)", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location()), nil
}
