package streak

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
)

// eventsFromStatuses builds a chronological ledger from a status sequence.
func eventsFromStatuses(habitID string, statuses []models.EventStatus) []models.HabitEvent {
	events := make([]models.HabitEvent, len(statuses))
	for i, status := range statuses {
		day := fmt.Sprintf("2022-01-%02d", i+1)
		events[i] = models.HabitEvent{
			ID:      fmt.Sprintf("%s-%d", habitID, i),
			HabitID: habitID,
			Created: day,
			Solved:  day,
			Status:  status,
		}
	}
	return events
}

const (
	p = models.StatusPending
	d = models.StatusDone
	f = models.StatusFailed
)

func TestStreakNormalization(t *testing.T) {
	// Pending breaks runs exactly like Failed
	events := eventsFromStatuses("h", []models.EventStatus{p, d, d, f, d, d, d, p, d})

	if got := Longest(events); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
	if got := Current(events); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestCurrentZeroAfterTrailingPending(t *testing.T) {
	events := eventsFromStatuses("h", []models.EventStatus{d, d, d, p})

	if got := Current(events); got != 0 {
		t.Errorf("Current = %d, want 0", got)
	}
	if got := Longest(events); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}

func TestLongestWednesdaySaturdayScenario(t *testing.T) {
	// Habit scheduled Wednesday and Saturday
	events := eventsFromStatuses("h", []models.EventStatus{p, d, d, d, f, p, d, f, p})

	if got := Longest(events); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}

func TestLongestMonthScenario(t *testing.T) {
	raw := []int{0, 1, 1, 1, 2, 0, 1, 2, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 2, 0, 0, 0, 0, 1, 2, 2, 1, 0, 1}
	statuses := make([]models.EventStatus, len(raw))
	for i, s := range raw {
		statuses[i] = models.EventStatus(s)
	}

	if got := Longest(eventsFromStatuses("h", statuses)); got != 11 {
		t.Errorf("Longest = %d, want 11", got)
	}
}

func TestEmptyLedger(t *testing.T) {
	if got := Current(nil); got != 0 {
		t.Errorf("Current(nil) = %d, want 0", got)
	}
	if got := Longest(nil); got != 0 {
		t.Errorf("Longest(nil) = %d, want 0", got)
	}
}

func TestLongestAll(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Name: "Jogging"},
		{ID: "h2", Name: "Reading"},
		{ID: "h3", Name: "Fresh habit"}, // no events yet
	}

	var events []models.HabitEvent
	events = append(events, eventsFromStatuses("h1", []models.EventStatus{d, d, f, d})...)
	events = append(events, eventsFromStatuses("h2", []models.EventStatus{f, d, d, d, d, p})...)

	got := LongestAll(habits, events)

	want := map[string]int{"h1": 2, "h2": 4, "h3": 0}
	if len(got) != len(want) {
		t.Fatalf("LongestAll returned %d entries, want %d", len(got), len(want))
	}
	for id, streak := range want {
		value, ok := got[id]
		if !ok {
			t.Errorf("habit %s missing from result", id)
			continue
		}
		if value != streak {
			t.Errorf("LongestAll[%s] = %d, want %d", id, value, streak)
		}
	}
}

func TestRecalculateCachesTrailingRun(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitkeep.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	habit := models.Habit{ID: "h1", Name: "Jogging", Enabled: true, Created: "2022-01-01", Updated: "2022-01-01"}
	if err := store.SaveHabit(habit); err != nil {
		t.Fatal(err)
	}
	for _, event := range eventsFromStatuses("h1", []models.EventStatus{f, d, d}) {
		if err := store.SaveEvent(event); err != nil {
			t.Fatal(err)
		}
	}

	if err := Recalculate(store, "h1"); err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatal(err)
	}
	if got.LatestStreak != 2 {
		t.Errorf("cached streak = %d, want 2", got.LatestStreak)
	}
}
