package activity

import "slices"

// StreakInfo holds current and longest streak values.
type StreakInfo struct {
	Current int
	Longest int
}

// ComputeStreak calculates the current and longest study streaks from a set
// of active days.
//
// A streak is a run of days each exactly one day after the previous. The
// current streak is the run ending at the most recent day, and only counts
// when that day is today or yesterday: studying yesterday but not yet today
// keeps the streak alive.
//
// days may be unsorted and may contain duplicates.
func ComputeStreak(days []Day, today Day) StreakInfo {
	if len(days) == 0 {
		return StreakInfo{}
	}

	asc := slices.Clone(days)
	slices.Sort(asc)
	asc = slices.Compact(asc)

	longest := 1
	run := 1
	for i := 1; i < len(asc); i++ {
		if asc[i-1].Next() == asc[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	var current int
	if last := asc[len(asc)-1]; last == today || last == today.Prev() {
		current = run
	}

	return StreakInfo{Current: current, Longest: longest}
}
