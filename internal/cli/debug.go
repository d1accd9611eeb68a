package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

type DebugCmd struct {
	DbPath     DebugDbPathCmd     `cmd:"" name:"db-path" help:"Print the store path."`
	DumpHabit  DebugDumpHabitCmd  `cmd:"" name:"dump-habit" help:"Dump a habit as JSON."`
	DumpEvents DebugDumpEventsCmd `cmd:"" name:"dump-events" help:"Dump a habit's events as JSON."`
}

type DebugDbPathCmd struct{}

func (c *DebugDbPathCmd) Run(ctx *Context) error {
	fmt.Println(ctx.Store.GetConfigPath())
	return nil
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *DebugDumpHabitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	return dumpJSON(habit)
}

type DebugDumpEventsCmd struct {
	ID string `arg:"" help:"Habit id (or unique prefix)."`
}

func (c *DebugDumpEventsCmd) Run(ctx *Context) error {
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
	return dumpJSON(events)
}

func dumpJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
