// Package progress computes habit streaks and milestone badges from a habit's
// completion history. Everything here is pure: callers own persistence.
package progress

import (
	"slices"
	"time"

	"github.com/Dias221467/Wellness_Tracker/internal/models"
)

// Day truncates t to midnight in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from b to a. The dates are re-anchored in UTC
// so a DST shift in their own location cannot turn 24h into 23h.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}

// DistinctDays returns the calendar days that have at least one completion,
// most recent first. Same-day duplicates collapse into one day.
func DistinctDays(events []models.CompletionEvent, loc *time.Location) []time.Time {
	days := make([]time.Time, 0, len(events))
	for _, e := range events {
		days = append(days, Day(e.Date, loc))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}

// CurrentStreak counts consecutive completion days ending today or yesterday.
// Days are computed in today's location. If the latest completion is older than
// yesterday the streak is 0, and nothing before the first gap is counted.
func CurrentStreak(events []models.CompletionEvent, today time.Time) int {
	loc := today.Location()
	ref := Day(today, loc)

	streak := 0
	var prev time.Time
	for i, d := range DistinctDays(events, loc) {
		if i == 0 {
			if daysBetween(ref, d) > 1 {
				break
			}
			streak++
			prev = d
			continue
		}
		if daysBetween(prev, d) != 1 {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completion days anywhere
// in the history.
func LongestStreak(events []models.CompletionEvent, loc *time.Location) int {
	days := DistinctDays(events, loc)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}

// AtRisk reports whether a live streak ends tonight: the most recent completion
// was yesterday and nothing has been logged today.
func AtRisk(events []models.CompletionEvent, today time.Time) bool {
	days := DistinctDays(events, today.Location())
	if len(days) == 0 {
		return false
	}
	return daysBetween(Day(today, today.Location()), days[0]) == 1
}
