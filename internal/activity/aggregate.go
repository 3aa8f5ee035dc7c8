package activity

import (
	"cmp"
	"fmt"
	"slices"
)

// Kind is the revlog entry type.
type Kind int

const (
	KindLearn Kind = iota
	KindReview
	KindRelearn
	KindFiltered
	KindManual
)

var kindNames = map[Kind]string{
	KindLearn:    "learn",
	KindReview:   "review",
	KindRelearn:  "relearn",
	KindFiltered: "filtered",
	KindManual:   "manual",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the names printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q (use learn, review, relearn, filtered or manual)", s)
}

// Event is one review log entry.
type Event struct {
	// ID is the entry's creation time in milliseconds since the Unix epoch.
	ID           int64
	Subject      string
	Kind         Kind
	LastInterval int
}

// FirstLearn reports whether the event marks a card being learned for the
// first time: a learning step with no previous interval.
func (e Event) FirstLearn() bool {
	return e.Kind == KindLearn && e.LastInterval == 0
}

// CountMode selects which eligible events contribute to a day's count.
type CountMode int

const (
	// CountFirst counts each subject once, on the day it was first learned.
	CountFirst CountMode = iota
	// CountAll counts every eligible event.
	CountAll
)

// ParseCountMode accepts "first" and "all". The empty string means CountFirst.
func ParseCountMode(s string) (CountMode, error) {
	switch s {
	case "", "first":
		return CountFirst, nil
	case "all":
		return CountAll, nil
	}
	return CountFirst, fmt.Errorf("invalid count mode %q (use first or all)", s)
}

func (m CountMode) String() string {
	if m == CountAll {
		return "all"
	}
	return "first"
}

// Options controls an aggregation run.
type Options struct {
	Boundary Boundary
	Mode     CountMode
	// FillGaps emits zero-valued entries for idle days between the first
	// active day and today.
	FillGaps bool
}

// DayCount is one heatmap cell.
type DayCount struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Result is the data product handed to a heatmap renderer.
type Result struct {
	Heatmap       []DayCount `json:"heatmap_data"`
	LongestStreak int        `json:"longest_streak"`
	CurrentStreak int        `json:"current_streak"`
	Total         int        `json:"total"`
	Today         string     `json:"today"`
}

// Aggregate counts first-learned events per activity day and derives streaks.
//
// todayMs is the caller's notion of now and is normalized with the same
// boundary as the events. Any normalization error is returned as is and no
// partial result is produced. Aggregate is safe for concurrent use.
func Aggregate(events []Event, opts Options, todayMs int64) (*Result, error) {
	today, err := Normalize(todayMs, opts.Boundary)
	if err != nil {
		return nil, err
	}

	eligible := make([]Event, 0, len(events))
	for _, e := range events {
		if e.FirstLearn() {
			eligible = append(eligible, e)
		}
	}
	// The log is not guaranteed to be in time order; first occurrence
	// depends on it.
	slices.SortStableFunc(eligible, func(a, b Event) int { return cmp.Compare(a.ID, b.ID) })

	counts := make(map[Day]int)
	seen := make(map[string]struct{})
	for _, e := range eligible {
		if opts.Mode == CountFirst {
			if _, ok := seen[e.Subject]; ok {
				continue
			}
			seen[e.Subject] = struct{}{}
		}
		day, err := Normalize(e.ID, opts.Boundary)
		if err != nil {
			return nil, err
		}
		counts[day]++
	}

	days := make([]Day, 0, len(counts))
	total := 0
	for d, c := range counts {
		days = append(days, d)
		total += c
	}
	slices.Sort(days)

	streak := ComputeStreak(days, today)
	return &Result{
		Heatmap:       heatmap(days, counts, today, opts.FillGaps),
		LongestStreak: streak.Longest,
		CurrentStreak: streak.Current,
		Total:         total,
		Today:         today.Date(),
	}, nil
}

// heatmap formats sorted days as cells, ascending by date.
func heatmap(days []Day, counts map[Day]int, today Day, fill bool) []DayCount {
	if len(days) == 0 {
		return []DayCount{}
	}
	if !fill {
		out := make([]DayCount, 0, len(days))
		for _, d := range days {
			out = append(out, DayCount{Date: d.Date(), Value: counts[d]})
		}
		return out
	}

	last := max(days[len(days)-1], today)
	out := make([]DayCount, 0, int64(last-days[0])/SecondsPerDay+1)
	for d := days[0]; d <= last; d = d.Next() {
		out = append(out, DayCount{Date: d.Date(), Value: counts[d]})
	}
	return out
}
