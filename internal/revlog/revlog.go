// Package revlog reads review events from an Anki collection or from the
// streakmap event log and hands them to the activity engine.
package revlog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rnwolfe/streakmap/internal/activity"
)

// Source supplies the complete set of candidate events.
type Source interface {
	Events() ([]activity.Event, error)
}

// Collection reads an Anki collection's revlog table.
type Collection struct {
	db *sql.DB
}

// NewCollection wraps an open collection database.
func NewCollection(db *sql.DB) *Collection {
	return &Collection{db: db}
}

// Events returns every first-learn entry in the revlog, oldest first.
func (c *Collection) Events() ([]activity.Event, error) {
	rows, err := c.db.Query(
		`SELECT id, CAST(cid AS TEXT), type, lastIvl
		 FROM revlog WHERE type = 0 AND lastIvl = 0 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("reading revlog: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Rollover returns the collection's "next day starts at" hour. ok is false
// when the collection does not store one.
//
// Collections from Anki 2.1.28 on keep it as a JSON value in the config
// table; older ones keep it inside the JSON blob in col.conf.
func (c *Collection) Rollover() (hour int, ok bool, err error) {
	var raw []byte
	err = c.db.QueryRow(`SELECT val FROM config WHERE KEY = 'rollover'`).Scan(&raw)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &hour); err != nil {
			return 0, false, fmt.Errorf("decoding rollover %q: %w", raw, err)
		}
		return hour, true, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case !isMissingTable(err):
		return 0, false, fmt.Errorf("reading rollover: %w", err)
	}

	var conf sql.NullString
	err = c.db.QueryRow(`SELECT conf FROM col LIMIT 1`).Scan(&conf)
	if errors.Is(err, sql.ErrNoRows) || (err != nil && isMissingTable(err)) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading col.conf: %w", err)
	}
	if !conf.Valid || conf.String == "" {
		return 0, false, nil
	}

	var legacy struct {
		Rollover *int `json:"rollover"`
	}
	if err := json.Unmarshal([]byte(conf.String), &legacy); err != nil {
		return 0, false, fmt.Errorf("decoding col.conf: %w", err)
	}
	if legacy.Rollover == nil {
		return 0, false, nil
	}
	return *legacy.Rollover, true, nil
}

// isMissingTable matches SQLite's "no such table" error. The modernc driver
// keeps the C library wording.
func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}

func scanEvents(rows *sql.Rows) ([]activity.Event, error) {
	var events []activity.Event
	for rows.Next() {
		var e activity.Event
		var kind int
		if err := rows.Scan(&e.ID, &e.Subject, &kind, &e.LastInterval); err != nil {
			return nil, err
		}
		e.Kind = activity.Kind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}
