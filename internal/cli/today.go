package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/display"
	"github.com/julianstephens/habitkeep/internal/models"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	runReconcile(ctx)

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	now := time.Now()
	var rows [][]string
	for _, habit := range habits {
		if !habit.Enabled || habit.Weekday == 0 || !habit.DueToday() {
			continue
		}

		status, err := periodStatus(ctx, habit, now)
		if err != nil {
			return err
		}

		rows = append(rows, []string{
			status,
			display.ShortID(habit.ID),
			habit.Name,
			strconv.Itoa(habit.LatestStreak),
			categoryName(ctx, habit),
		})
	}

	if len(rows) == 0 {
		fmt.Println("Nothing due today.")
		return nil
	}

	fmt.Println(display.Header("Today's habits"))
	fmt.Print(display.Table([]string{"Status", "ID", "Name", "Streak", "Category"}, rows))
	return nil
}

// periodStatus reports the state of the habit's current occurrence: the
// event's status when one exists, "Open" when the slot has not been touched.
func periodStatus(ctx *Context, habit models.Habit, now time.Time) (string, error) {
	if habit.IsWeekly() {
		from, to := weekBounds(now)
		events, err := ctx.Store.EventsInRange(habit.ID, from, to)
		if err != nil {
			return "", err
		}
		if len(events) == 0 {
			return "Open", nil
		}
		return display.Status(events[0].Status), nil
	}

	event, err := ctx.Store.EventOnDay(habit.ID, now.Format(constants.DateFormat))
	if errors.Is(err, apperr.ErrNotFound) {
		return "Open", nil
	}
	if err != nil {
		return "", err
	}
	return display.Status(event.Status), nil
}

// weekBounds returns the ISO week (Monday to Sunday) containing t, as
// inclusive date strings.
func weekBounds(t time.Time) (string, string) {
	start := t.AddDate(0, 0, -models.WeekdayOf(t))
	end := start.AddDate(0, 0, 6)
	return start.Format(constants.DateFormat), end.Format(constants.DateFormat)
}
