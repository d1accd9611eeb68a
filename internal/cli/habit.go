package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/display"
	"github.com/julianstephens/habitkeep/internal/streak"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List all habits."`
	Info   HabitInfoCmd   `cmd:"" help:"Show the full details of a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its events."`
	Rename HabitRenameCmd `cmd:"" help:"Rename a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Enable or disable a habit."`
	Events HabitEventsCmd `cmd:"" help:"List the events of a habit."`
	Reset  HabitResetCmd  `cmd:"" help:"Reset an event back to pending."`
}

type HabitListCmd struct {
	All bool `help:"Include disabled habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, habit := range habits {
		if !c.All && !habit.Enabled {
			continue
		}
		rows = append(rows, display.HabitRow(habit, categoryName(ctx, habit)))
	}

	if len(rows) == 0 {
		fmt.Println(display.Muted("No habits yet, run 'habitkeep create' to add one."))
		return nil
	}

	fmt.Println(display.Header("Habits"))
	fmt.Print(display.Table([]string{"ID", "Name", "On", "Schedule", "Streak", "Category"}, rows))
	return nil
}

type HabitInfoCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *HabitInfoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	events, err := ctx.Store.EventsForHabit(habit.ID)
	if err != nil {
		return err
	}

	fmt.Println(display.Header(habit.Name))
	fmt.Printf("ID:        %s\n", habit.ID)
	fmt.Printf("Enabled:   %t\n", habit.Enabled)
	fmt.Printf("Created:   %s\n", habit.Created)
	fmt.Printf("Updated:   %s\n", habit.Updated)
	fmt.Printf("Schedule:  %s\n", habit.ScheduleText())
	if habit.NeedsCondition() {
		fmt.Printf("Target:    %s\n", habit.SatisfactionText())
	}
	if name := categoryName(ctx, habit); name != "" {
		fmt.Printf("Category:  %s\n", name)
	}
	fmt.Printf("Streak:    %d (longest %d)\n", streak.Current(events), streak.Longest(events))
	fmt.Printf("Events:    %d\n", len(events))
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	events, err := ctx.Store.EventsForHabit(habit.ID)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete %q and its %d events?", habit.Name, len(events)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Kept.")
		return nil
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s.\n", habit.Name)
	return nil
}

type HabitRenameCmd struct {
	ID   string `arg:"" help:"Habit id (or unique prefix)."`
	Name string `arg:"" help:"New name."`
}

func (c *HabitRenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	old := habit.Name
	habit.Name = name
	if err := habit.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Renamed %q to %q.\n", old, habit.Name)
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

// Run flips the enabled flag. The checkpoint moves to today first so that
// re-enabling does not backfill the window the habit sat disabled in.
func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	habit.Updated = time.Now().Format(constants.DateFormat)
	habit.Enabled = !habit.Enabled
	if err := ctx.Store.SaveHabit(habit); err != nil {
		return err
	}

	state := "disabled"
	if habit.Enabled {
		state = "enabled"
	}
	fmt.Printf("%s is now %s.\n", habit.Name, state)
	return nil
}

type HabitEventsCmd struct {
	ID    string `arg:"" help:"Habit id (or unique prefix)."`
	Limit int    `default:"30" help:"Show at most this many events, newest last."`
}

func (c *HabitEventsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	events, err := ctx.Store.EventsForHabit(habit.ID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println(display.Muted("No events recorded for this habit."))
		return nil
	}
	if c.Limit > 0 && len(events) > c.Limit {
		events = events[len(events)-c.Limit:]
	}

	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, display.EventRow(event))
	}

	fmt.Println(display.Header(habit.Name))
	fmt.Print(display.Table([]string{"ID", "Status", "Amount", "Day", "Weekday"}, rows))
	return nil
}

type HabitResetCmd struct {
	EventID string `arg:"" help:"Event id (or unique prefix)."`
}

func (c *HabitResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	event, err := findEvent(ctx, c.EventID)
	if err != nil {
		return err
	}

	event.Reset()
	if err := ctx.Store.SaveEvent(event); err != nil {
		return err
	}
	if err := streak.Recalculate(ctx.Store, event.HabitID); err != nil {
		return err
	}

	fmt.Printf("Event %s on %s is pending again.\n", display.ShortID(event.ID), event.Solved)
	return nil
}
