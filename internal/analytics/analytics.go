// Package analytics provides derived queries over habits and their event
// ledgers.
package analytics

import (
	"errors"

	"github.com/julianstephens/habitkeep/internal/models"
)

// ErrNoEvents is returned when an aggregate is requested over an empty
// event sequence.
var ErrNoEvents = errors.New("no events to aggregate")

// Enabled filters to habits currently being tracked.
func Enabled(habits []models.Habit) []models.Habit {
	var out []models.Habit
	for _, habit := range habits {
		if habit.Enabled {
			out = append(out, habit)
		}
	}
	return out
}

// DueOnWeekday returns the enabled habits due on the given Monday-based
// weekday. Weekly habits match every weekday.
func DueOnWeekday(habits []models.Habit, weekday int) []models.Habit {
	var out []models.Habit
	for _, habit := range habits {
		if habit.Enabled && habit.DueOn(weekday) {
			out = append(out, habit)
		}
	}
	return out
}

// AverageQuota returns the arithmetic mean of the achieved quota across the
// given events. An empty sequence is an error, never a silent zero.
func AverageQuota(events []models.HabitEvent) (float64, error) {
	if len(events) == 0 {
		return 0, ErrNoEvents
	}

	sum := 0
	for _, event := range events {
		sum += event.Quota
	}
	return float64(sum) / float64(len(events)), nil
}
