package analytics

import (
	"errors"
	"testing"

	"github.com/julianstephens/habitkeep/internal/models"
)

// Five-habit schedule fixture: one weekly, four with per-day masks.
func scheduleFixture() []models.Habit {
	return []models.Habit{
		{ID: "h1", Name: "Meditation", Enabled: true, Weekday: models.WeeklySentinel},
		{ID: "h2", Name: "Jogging", Enabled: true, Weekday: (1 << 2) | (1 << 5) | (1 << 6)}, // Wed, Sat, Sun
		{ID: "h3", Name: "Reading", Enabled: true, Weekday: 1 << 3},                         // Thu
		{ID: "h4", Name: "Meal prep", Enabled: true, Weekday: 1 << 6},                       // Sun
		{ID: "h5", Name: "Stretching", Enabled: true, Weekday: (1 << 0) | (1 << 3) | (1 << 6)}, // Mon, Thu, Sun
	}
}

func TestEnabled(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Enabled: true},
		{ID: "h2", Enabled: false},
		{ID: "h3", Enabled: true},
	}

	enabled := Enabled(habits)
	if len(enabled) != 2 {
		t.Fatalf("got %d enabled habits, want 2", len(enabled))
	}
	for _, habit := range enabled {
		if !habit.Enabled {
			t.Errorf("disabled habit %s in result", habit.ID)
		}
	}
}

func TestDueOnWeekday(t *testing.T) {
	habits := scheduleFixture()

	cases := []struct {
		weekday int
		want    int
	}{
		{0, 2},
		{3, 3},
		{6, 4},
	}

	for _, tc := range cases {
		got := DueOnWeekday(habits, tc.weekday)
		if len(got) != tc.want {
			t.Errorf("DueOnWeekday(%d) returned %d habits, want %d", tc.weekday, len(got), tc.want)
		}
	}
}

func TestDueOnWeekdaySkipsDisabled(t *testing.T) {
	habits := scheduleFixture()
	habits[0].Enabled = false // the weekly habit

	if got := DueOnWeekday(habits, 0); len(got) != 1 {
		t.Errorf("DueOnWeekday(0) with disabled weekly habit returned %d, want 1", len(got))
	}
}

func TestAverageQuota(t *testing.T) {
	events := []models.HabitEvent{
		{ID: "e1", Quota: 4},
		{ID: "e2", Quota: 8},
		{ID: "e3", Quota: 6},
	}

	avg, err := AverageQuota(events)
	if err != nil {
		t.Fatalf("AverageQuota: %v", err)
	}
	if avg != 6.0 {
		t.Errorf("AverageQuota = %f, want 6.0", avg)
	}
}

func TestAverageQuotaEmptyIsError(t *testing.T) {
	_, err := AverageQuota(nil)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}

	_, err = AverageQuota([]models.HabitEvent{})
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("expected ErrNoEvents for empty slice, got %v", err)
	}
}
