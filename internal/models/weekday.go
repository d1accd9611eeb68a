package models

import (
	"strings"
	"time"
)

// Weekday indexing is Monday-based: 0 = Monday .. 6 = Sunday. This matches
// the bit positions of Habit.Weekday and the ISO week used by reconciliation.

var weekdayNames = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

var weekdayAbbr = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayIndex converts a time.Weekday (Sunday-based) to the Monday-based
// index used by habit schedules.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeekdayOf returns the Monday-based weekday index of a date.
func WeekdayOf(t time.Time) int {
	return WeekdayIndex(t.Weekday())
}

// WeekdayByName resolves a case-insensitive full English weekday name.
func WeekdayByName(name string) (int, bool) {
	i, ok := weekdayNames[strings.ToLower(name)]
	return i, ok
}

// WeekdayAbbr returns the three-letter abbreviation for a Monday-based
// weekday index, or an empty string for an out-of-range index.
func WeekdayAbbr(i int) string {
	if i < 0 || i > 6 {
		return ""
	}
	return weekdayAbbr[i]
}
