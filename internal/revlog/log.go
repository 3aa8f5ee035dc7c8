package revlog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/streakmap/internal/activity"
)

// Log is streakmap's own event log, for studying outside of Anki.
type Log struct {
	db *sql.DB
}

// NewLog wraps an event log opened by store.Open.
func NewLog(db *sql.DB) *Log {
	return &Log{db: db}
}

// Record stores an event for subject at the given time and returns its id.
// Ids are millisecond timestamps; a collision moves the event forward by a
// millisecond until it fits.
func (l *Log) Record(subject string, at time.Time, kind activity.Kind) (int64, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return 0, fmt.Errorf("subject can't be empty")
	}
	if at.UnixMilli() < 0 {
		return 0, fmt.Errorf("%w: event time %s is before 1970", activity.ErrInvalidInput, at.Format(time.RFC3339))
	}

	id := at.UnixMilli()
	for {
		var taken int
		err := l.db.QueryRow(`SELECT COUNT(*) FROM events WHERE id = ?`, id).Scan(&taken)
		if err != nil {
			return 0, fmt.Errorf("allocating event id: %w", err)
		}
		if taken == 0 {
			break
		}
		id++
	}

	if _, err := l.db.Exec(
		`INSERT INTO events (id, subject, kind, last_ivl) VALUES (?, ?, ?, 0)`,
		id, subject, int(kind),
	); err != nil {
		return 0, fmt.Errorf("recording event: %w", err)
	}
	return id, nil
}

// Events returns all first-learn events, oldest first.
func (l *Log) Events() ([]activity.Event, error) {
	rows, err := l.db.Query(
		`SELECT id, subject, kind, last_ivl FROM events
		 WHERE kind = 0 AND last_ivl = 0 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Count returns the number of stored events of any kind.
func (l *Log) Count() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
