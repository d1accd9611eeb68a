package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/cli"
	"github.com/julianstephens/habitkeep/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path, .json for the JSON backend." type:"path" default:"~/.config/habitkeep/habitkeep.db"`
	Verbose bool   `short:"v" help:"Log reconciliation details."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitkeep storage."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habits." default:"1"`
	Checkoff cli.CheckoffCmd `cmd:"" help:"Resolve a habit's current and overdue events."`
	Create   cli.CreateCmd   `cmd:"" help:"Create a new habit."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Cat      cli.CatCmd      `cmd:"" help:"Manage categories."`
	Stats    cli.StatsCmd    `cmd:"" help:"Streaks and other statistics."`
	Backup   cli.BackupCmd   `cmd:"" help:"Back up and restore the store."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check the store for problems."`
	Debug    cli.DebugCmd    `cmd:"" help:"Inspect raw records."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitkeep"),
		kong.Description("Habit tracker with automatic backfill of missed days"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	level := slog.LevelWarn
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	appCtx := &cli.Context{
		Store:  storage.ForPath(CLI.Config),
		Logger: logger,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		if errors.Is(err, apperr.ErrAborted) {
			fmt.Println("Cancelled.")
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
