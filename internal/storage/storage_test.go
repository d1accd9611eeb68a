package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/models"
)

func newTestStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "habitkeep.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habitkeep.db")),
	}
	for name, store := range stores {
		if err := store.Init(); err != nil {
			t.Fatalf("init %s store: %v", name, err)
		}
	}
	return stores
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("/tmp/x.json").(*JSONStore); !ok {
		t.Error("expected JSON store for .json path")
	}
	if _, ok := ForPath("/tmp/x.db").(*SQLiteStore); !ok {
		t.Error("expected SQLite store for .db path")
	}
}

func TestHabitRoundTrip(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			habit := models.Habit{
				ID:        "h1",
				Name:      "Jogging",
				Enabled:   true,
				Created:   "2022-01-01",
				Updated:   "2022-01-05",
				Condition: models.ConditionGt,
				Quota:     5,
				Unit:      "km",
				Weekday:   (1 << 2) | (1 << 5),
			}
			if err := store.SaveHabit(habit); err != nil {
				t.Fatalf("SaveHabit: %v", err)
			}

			got, err := store.GetHabit("h1")
			if err != nil {
				t.Fatalf("GetHabit: %v", err)
			}
			if got != habit {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, habit)
			}

			_, err = store.GetHabit("missing")
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestEventQueriesOrdered(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			habit := models.Habit{ID: "h1", Name: "Reading", Enabled: true, Created: "2022-01-01", Updated: "2022-01-01"}
			if err := store.SaveHabit(habit); err != nil {
				t.Fatal(err)
			}

			// Insert out of chronological order
			days := []string{"2022-01-03", "2022-01-01", "2022-01-02"}
			for i, day := range days {
				event := models.HabitEvent{
					ID:      string(rune('a' + i)),
					HabitID: "h1",
					Created: day,
					Solved:  day,
					Status:  models.StatusPending,
				}
				if err := store.SaveEvent(event); err != nil {
					t.Fatal(err)
				}
			}

			events, err := store.EventsForHabit("h1")
			if err != nil {
				t.Fatal(err)
			}
			if len(events) != 3 {
				t.Fatalf("got %d events, want 3", len(events))
			}
			for i := 1; i < len(events); i++ {
				if events[i-1].Solved > events[i].Solved {
					t.Errorf("events not ordered by solved date: %v", events)
				}
			}

			ranged, err := store.EventsInRange("h1", "2022-01-01", "2022-01-02")
			if err != nil {
				t.Fatal(err)
			}
			if len(ranged) != 2 {
				t.Errorf("range query returned %d events, want 2", len(ranged))
			}

			if _, err := store.EventOnDay("h1", "2022-01-02"); err != nil {
				t.Errorf("EventOnDay: %v", err)
			}
			_, err = store.EventOnDay("h1", "2022-06-01")
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("expected ErrNotFound for empty day, got %v", err)
			}

			pending, err := store.PendingEvents("h1")
			if err != nil {
				t.Fatal(err)
			}
			if len(pending) != 3 {
				t.Errorf("got %d pending events, want 3", len(pending))
			}
		})
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"h1", "h2"} {
				habit := models.Habit{ID: id, Name: id, Enabled: true, Created: "2022-01-01", Updated: "2022-01-01"}
				if err := store.SaveHabit(habit); err != nil {
					t.Fatal(err)
				}
				event := models.HabitEvent{ID: "e-" + id, HabitID: id, Created: "2022-01-01", Solved: "2022-01-01"}
				if err := store.SaveEvent(event); err != nil {
					t.Fatal(err)
				}
			}

			if err := store.DeleteHabit("h1"); err != nil {
				t.Fatalf("DeleteHabit: %v", err)
			}

			if _, err := store.GetHabit("h1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("habit survived delete: %v", err)
			}
			events, err := store.EventsForHabit("h1")
			if err != nil {
				t.Fatal(err)
			}
			if len(events) != 0 {
				t.Errorf("events survived cascade delete: %v", events)
			}

			// Other habit untouched
			others, err := store.EventsForHabit("h2")
			if err != nil {
				t.Fatal(err)
			}
			if len(others) != 1 {
				t.Errorf("unrelated events affected by delete: %v", others)
			}

			if err := store.DeleteHabit("h1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("expected ErrNotFound deleting twice, got %v", err)
			}
		})
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			cat := models.Category{ID: "c1", Name: "Sports"}
			if err := store.SaveCategory(cat); err != nil {
				t.Fatal(err)
			}

			got, err := store.GetCategory("c1")
			if err != nil || got != cat {
				t.Errorf("GetCategory = %+v, %v", got, err)
			}

			cats, err := store.GetAllCategories()
			if err != nil || len(cats) != 1 {
				t.Errorf("GetAllCategories = %v, %v", cats, err)
			}

			if err := store.DeleteCategory("c1"); err != nil {
				t.Fatal(err)
			}
			if err := store.DeleteCategory("c1"); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestLoadBeforeInitFails(t *testing.T) {
	dir := t.TempDir()
	for name, store := range map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "missing.db")),
	} {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Error("expected error loading uninitialized store")
			}
		})
	}
}
