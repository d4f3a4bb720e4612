package summary

import (
	"sort"
	"time"
)

// WeekStart returns the Monday of the week containing t, at midnight
// UTC. Sunday counts as the end of its week, never the start.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

// WeekLabel returns the canonical Monday-to-Sunday label for the week
// containing t, e.g. "28-Oct - 3-Nov". Day numbers are not zero-padded
// and month abbreviations are English regardless of locale.
func WeekLabel(t time.Time) string {
	start := WeekStart(t)
	end := start.AddDate(0, 0, 6)
	return start.Format("2-Jan") + " - " + end.Format("2-Jan")
}

// Weeks returns the distinct week labels across records, sorted.
func Weeks(records []Record) []string {
	seen := make(map[string]struct{})
	weeks := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Week]; ok {
			continue
		}
		seen[r.Week] = struct{}{}
		weeks = append(weeks, r.Week)
	}
	SortWeeks(weeks)
	return weeks
}

// SortWeeks orders the week axis. The order is a plain lexical string
// sort, matching the deployed behavior. It misorders labels across
// month and year boundaries; switching to a chronological sort keyed on
// the week's start date would change every consumer's column order, so
// it stays as is until the report owners ask for it.
func SortWeeks(weeks []string) {
	sort.Strings(weeks)
}
