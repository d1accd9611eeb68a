package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/streak"
)

type CheckoffCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

// Run resolves the habit's current occurrence, then walks the remaining
// pending backlog oldest first. Every resolution is provisional until the
// final confirmation; declining or aborting discards that one event while
// earlier confirmations stand.
func (c *CheckoffCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	runReconcile(ctx)

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	now := time.Now()

	// A daily habit that is not due today has no current occurrence; only
	// the backlog can be worked on.
	if !habit.IsWeekly() && !habit.DueToday() {
		fmt.Printf("%s is not due today.\n", habit.Name)
		if err := resolveBacklog(ctx, habit); err != nil {
			return err
		}
		return streak.Recalculate(ctx.Store, habit.ID)
	}

	event, existing, err := currentEvent(ctx, habit, now)
	if err != nil {
		return err
	}
	if existing {
		fmt.Printf("Changes will update the current event %s with status %s.\n",
			event.ID, event.Status)
	}

	if err := resolveEvent(ctx, habit, event); err != nil {
		if errors.Is(err, apperr.ErrAborted) {
			fmt.Println("Cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if err := resolveBacklog(ctx, habit); err != nil {
		return err
	}

	return streak.Recalculate(ctx.Store, habit.ID)
}

// currentEvent finds the event of the habit's current period (today for
// daily habits, this ISO week for weekly ones) or builds a fresh Pending
// event for it. The fresh event is not persisted here.
func currentEvent(ctx *Context, habit models.Habit, now time.Time) (models.HabitEvent, bool, error) {
	today := now.Format(constants.DateFormat)

	if habit.IsWeekly() {
		from, to := weekBounds(now)
		events, err := ctx.Store.EventsInRange(habit.ID, from, to)
		if err != nil {
			return models.HabitEvent{}, false, err
		}
		if len(events) > 0 {
			return events[0], true, nil
		}
	} else {
		event, err := ctx.Store.EventOnDay(habit.ID, today)
		if err == nil {
			return event, true, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return models.HabitEvent{}, false, err
		}
	}

	return models.HabitEvent{
		ID:      uuid.New().String(),
		HabitID: habit.ID,
		Created: today,
		Solved:  today,
		Weekday: models.WeekdayOf(now),
		Status:  models.StatusPending,
	}, false, nil
}

// resolveEvent runs the resolution dialog for one event. The event is only
// written on the final confirmation; a declined confirmation discards it
// silently, a user abort surfaces as apperr.ErrAborted.
func resolveEvent(ctx *Context, habit models.Habit, event models.HabitEvent) error {
	if habit.NeedsCondition() {
		fmt.Println(habit.SatisfactionText())
		value, err := askInt(
			fmt.Sprintf("How many %s did you reach on %s?", habit.Unit, event.Solved),
			"",
		)
		if err != nil {
			return err
		}
		event.Resolve(habit.Evaluate(value), value)
	} else {
		did, err := confirm(fmt.Sprintf("Did you do %s on %s?", habit.Name, event.Solved))
		if err != nil {
			return err
		}
		if did {
			event.Resolve(models.StatusDone, 0)
		} else {
			event.Resolve(models.StatusFailed, 0)
		}
	}

	if event.Status == models.StatusDone {
		fmt.Println("Great, booking this one as a success!")
	} else {
		fmt.Println("Seems you did not reach the target this time.")
	}

	day, err := time.ParseInLocation(constants.DateFormat, event.Solved, time.Local)
	if err != nil {
		return fmt.Errorf("event %s has invalid solved date %q: %w", event.ID, event.Solved, err)
	}
	event.Weekday = models.WeekdayOf(day)

	final, err := confirm(fmt.Sprintf("Mark this state - %s - for %s as final?", event.Status, event.Solved))
	if err != nil {
		return err
	}
	if !final {
		fmt.Println("Discarded.")
		return nil
	}

	return ctx.Store.SaveEvent(event)
}

// resolveBacklog offers every still-pending event of the habit for
// resolution, oldest first. An abort stops the backlog walk; events already
// confirmed stay saved.
func resolveBacklog(ctx *Context, habit models.Habit) error {
	events, err := ctx.Store.PendingEvents(habit.ID)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No open events, everything is marked as final.")
		return nil
	}
	fmt.Printf("%d open or unresolved events.\n", len(events))

	for _, event := range events {
		fmt.Printf("Resolving event %s on %s\n", event.ID, event.Solved)
		if err := resolveEvent(ctx, habit, event); err != nil {
			if errors.Is(err, apperr.ErrAborted) {
				fmt.Println("Stopping here, remaining events stay open.")
				return nil
			}
			return err
		}
	}

	return nil
}
