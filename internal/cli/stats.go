package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/habitkeep/internal/analytics"
	"github.com/julianstephens/habitkeep/internal/display"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/streak"
)

type StatsCmd struct {
	Streaks    StatsStreaksCmd    `cmd:"" help:"Current streak of every enabled habit."`
	Longest    StatsLongestCmd    `cmd:"" help:"Longest streak a habit ever reached."`
	LongestAll StatsLongestAllCmd `cmd:"" name:"longest-all" help:"Longest streak of every habit."`
	Due        StatsDueCmd        `cmd:"" help:"Habits due on a given weekday."`
	Average    StatsAverageCmd    `cmd:"" help:"Average recorded amount of a measured habit."`
}

type StatsStreaksCmd struct{}

func (c *StatsStreaksCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, habit := range analytics.Enabled(habits) {
		events, err := ctx.Store.EventsForHabit(habit.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			display.ShortID(habit.ID),
			habit.Name,
			fmt.Sprintf("%d", streak.Current(events)),
		})
	}
	if len(rows) == 0 {
		fmt.Println(display.Muted("No enabled habits."))
		return nil
	}

	fmt.Println(display.Header("Current streaks"))
	fmt.Print(display.Table([]string{"ID", "Name", "Streak"}, rows))
	return nil
}

type StatsLongestCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *StatsLongestCmd) Run(ctx *Context) error {
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

	fmt.Printf("Longest streak for %s: %d\n", habit.Name, streak.Longest(events))
	return nil
}

type StatsLongestAllCmd struct{}

func (c *StatsLongestAllCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	events, err := ctx.Store.AllEvents()
	if err != nil {
		return err
	}

	longest := streak.LongestAll(habits, events)

	byID := make(map[string]models.Habit, len(habits))
	for _, habit := range habits {
		byID[habit.ID] = habit
	}

	ids := make([]string, 0, len(longest))
	for id := range longest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return byID[ids[i]].Name < byID[ids[j]].Name
	})

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{
			display.ShortID(id),
			byID[id].Name,
			fmt.Sprintf("%d", longest[id]),
		})
	}
	if len(rows) == 0 {
		fmt.Println(display.Muted("No habits yet."))
		return nil
	}

	fmt.Println(display.Header("Longest streaks"))
	fmt.Print(display.Table([]string{"ID", "Name", "Longest"}, rows))
	return nil
}

type StatsDueCmd struct {
	Weekday int `arg:"" help:"Weekday as 0-6 with 0 = Monday."`
}

func (c *StatsDueCmd) Run(ctx *Context) error {
	if c.Weekday < 0 || c.Weekday > 6 {
		return fmt.Errorf("weekday must be between 0 (Monday) and 6 (Sunday), got %d", c.Weekday)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	due := analytics.DueOnWeekday(analytics.Enabled(habits), c.Weekday)
	if len(due) == 0 {
		fmt.Printf("Nothing due on %s.\n", models.WeekdayAbbr(c.Weekday))
		return nil
	}

	fmt.Println(display.Header(fmt.Sprintf("Due on %s", models.WeekdayAbbr(c.Weekday))))
	for _, habit := range due {
		fmt.Printf("  %s  %s\n", display.ShortID(habit.ID), habit.Name)
	}
	return nil
}

type StatsAverageCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *StatsAverageCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	if !habit.NeedsCondition() {
		return fmt.Errorf("%s has no measurable target, nothing to average", habit.Name)
	}

	events, err := ctx.Store.EventsForHabit(habit.ID)
	if err != nil {
		return err
	}

	average, err := analytics.AverageQuota(events)
	if err != nil {
		if errors.Is(err, analytics.ErrNoEvents) {
			return fmt.Errorf("no recorded amounts for %s yet", habit.Name)
		}
		return err
	}

	fmt.Printf("Average for %s: %.2f %s\n", habit.Name, average, habit.Unit)
	return nil
}
