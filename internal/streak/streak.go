// Package streak computes consecutive-success run lengths over a habit's
// event ledger. Events must be ordered by solved date ascending, which is
// what every storage query returns.
//
// For streak purposes a Pending event counts as Failed: an occurrence that
// was never resolved breaks the run just like an explicit miss.
package streak

import (
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
)

// Current returns the trailing run of Done events at the end of history.
// This is the value cached in Habit.LatestStreak.
func Current(events []models.HabitEvent) int {
	run := 0
	for _, event := range events {
		if event.Status == models.StatusDone {
			run++
		} else {
			run = 0
		}
	}
	return run
}

// Longest returns the maximum run of Done events anywhere in history.
// Always >= Current for the same ledger.
func Longest(events []models.HabitEvent) int {
	run, longest := 0, 0
	for _, event := range events {
		if event.Status == models.StatusDone {
			run++
		} else {
			run = 0
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// LongestAll groups events by habit and returns each habit's longest run.
// Habits without any events are present in the result with a streak of 0.
func LongestAll(habits []models.Habit, events []models.HabitEvent) map[string]int {
	grouped := make(map[string][]models.HabitEvent)
	for _, event := range events {
		grouped[event.HabitID] = append(grouped[event.HabitID], event)
	}

	result := make(map[string]int, len(habits))
	for _, habit := range habits {
		result[habit.ID] = Longest(grouped[habit.ID])
	}
	return result
}

// Recalculate recomputes a habit's current streak from its ledger and caches
// it on the habit record.
func Recalculate(store storage.Provider, habitID string) error {
	habit, err := store.GetHabit(habitID)
	if err != nil {
		return err
	}

	events, err := store.EventsForHabit(habitID)
	if err != nil {
		return err
	}

	habit.LatestStreak = Current(events)
	return store.SaveHabit(habit)
}
