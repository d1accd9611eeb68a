// Package reconcile backfills missed habit occurrences. On every program
// start the engine walks each enabled habit's calendar from its last
// processed date to today and inserts a Pending placeholder event for every
// period that owed an occurrence but has none recorded. The user resolves
// the backlog later through the check-off flow.
package reconcile

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
	"github.com/julianstephens/habitkeep/internal/streak"
)

type Engine struct {
	Store  storage.Provider
	Logger *slog.Logger

	// Now is the clock used for "today"; overridable in tests.
	Now func() time.Time
}

func New(store storage.Provider, logger *slog.Logger) *Engine {
	return &Engine{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// Run reconciles every enabled habit and returns one notice per backfilled
// event. A failure on one habit is logged and skipped; the pass never aborts.
// Each habit's checkpoint advances to today whether or not gaps were found,
// so an immediate second run inserts nothing.
func Run(store storage.Provider, logger *slog.Logger) []string {
	return New(store, logger).Run()
}

func (e *Engine) Run() []string {
	var notices []string

	habits, err := e.Store.GetAllHabits()
	if err != nil {
		e.Logger.Error("reconcile: loading habits failed", "error", err)
		return notices
	}

	today := dateOf(e.Now())

	for _, habit := range habits {
		// Weekday mask 0 means never scheduled: nothing can be owed.
		if !habit.Enabled || habit.Weekday == 0 {
			continue
		}

		var (
			habitNotices []string
			err          error
		)
		if habit.IsWeekly() {
			habitNotices, err = e.backfillWeekly(habit, today)
		} else {
			habitNotices, err = e.backfillDaily(habit, today)
		}
		if err != nil {
			e.Logger.Error("reconcile: backfill failed", "habit", habit.Name, "error", err)
			continue
		}

		// The checkpoint advances even when no events were inserted, so
		// already-processed periods are never rescanned.
		habit.Updated = today.Format(constants.DateFormat)
		if err := e.Store.SaveHabit(habit); err != nil {
			e.Logger.Error("reconcile: saving checkpoint failed", "habit", habit.Name, "error", err)
			continue
		}

		if len(habitNotices) > 0 {
			if err := streak.Recalculate(e.Store, habit.ID); err != nil {
				e.Logger.Error("reconcile: streak recalculation failed", "habit", habit.Name, "error", err)
			}
		}

		notices = append(notices, habitNotices...)
	}

	return notices
}

// backfillWeekly walks ISO weeks (Monday start) from the week containing the
// habit's checkpoint. A week with no event in [weekStart, weekStart+6] gets a
// Pending event dated to the week's Monday, except when that Monday is today:
// today's slot is left for the live check-off flow.
func (e *Engine) backfillWeekly(habit models.Habit, today time.Time) ([]string, error) {
	start, err := time.ParseInLocation(constants.DateFormat, habit.Updated, today.Location())
	if err != nil {
		return nil, fmt.Errorf("habit %s has invalid checkpoint %q: %w", habit.ID, habit.Updated, err)
	}

	var notices []string

	weekStart := start.AddDate(0, 0, -models.WeekdayOf(start))
	for weekStart.Before(today) {
		weekEnd := weekStart.AddDate(0, 0, 6)
		from := weekStart.Format(constants.DateFormat)
		to := weekEnd.Format(constants.DateFormat)

		events, err := e.Store.EventsInRange(habit.ID, from, to)
		if err != nil {
			return notices, err
		}

		// The loop bound keeps weekStart strictly before today, so the
		// current week is only backfilled once its Monday is in the past.
		if len(events) == 0 {
			if err := e.insertMissed(habit, weekStart); err != nil {
				return notices, err
			}
			notices = append(notices, fmt.Sprintf(
				"You missed %s in the week of %s to %s, please run 'habitkeep checkoff %s'",
				habit.Name, from, to, habit.ID))
		}

		weekStart = weekStart.AddDate(0, 0, 7)
	}

	return notices, nil
}

// backfillDaily walks single days from the habit's checkpoint up to but
// excluding today, skipping days the weekday mask does not cover.
func (e *Engine) backfillDaily(habit models.Habit, today time.Time) ([]string, error) {
	start, err := time.ParseInLocation(constants.DateFormat, habit.Updated, today.Location())
	if err != nil {
		return nil, fmt.Errorf("habit %s has invalid checkpoint %q: %w", habit.ID, habit.Updated, err)
	}

	var notices []string

	for day := start; day.Before(today); day = day.AddDate(0, 0, 1) {
		if !habit.DueOn(models.WeekdayOf(day)) {
			continue
		}

		dayStr := day.Format(constants.DateFormat)
		_, err := e.Store.EventOnDay(habit.ID, dayStr)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return notices, err
		}

		if err := e.insertMissed(habit, day); err != nil {
			return notices, err
		}
		notices = append(notices, fmt.Sprintf(
			"You missed %s on %s, please run 'habitkeep checkoff %s'",
			habit.Name, dayStr, habit.ID))
	}

	return notices, nil
}

func (e *Engine) insertMissed(habit models.Habit, day time.Time) error {
	dayStr := day.Format(constants.DateFormat)
	event := models.HabitEvent{
		ID:      uuid.New().String(),
		HabitID: habit.ID,
		Created: dayStr,
		Solved:  dayStr,
		Weekday: models.WeekdayOf(day),
		Status:  models.StatusPending,
	}
	return e.Store.SaveEvent(event)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
