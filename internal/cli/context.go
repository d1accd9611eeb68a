package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/reconcile"
	"github.com/julianstephens/habitkeep/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Logger *slog.Logger
}

// runReconcile backfills missed occurrences and prints the resulting
// notices. Called by the ledger-mutating commands before any interaction.
func runReconcile(ctx *Context) {
	notices := reconcile.Run(ctx.Store, ctx.Logger)
	for _, notice := range notices {
		fmt.Println(notice)
	}
	if len(notices) > 0 {
		fmt.Println()
	}
}

// findHabit resolves a full habit id or a unique id prefix.
func findHabit(ctx *Context, id string) (models.Habit, error) {
	if habit, err := ctx.Store.GetHabit(id); err == nil {
		return habit, nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, habit := range habits {
		if strings.HasPrefix(habit.ID, id) {
			matches = append(matches, habit)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperr.ErrNotFound)
	default:
		return models.Habit{}, fmt.Errorf("habit id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// findEvent resolves a full event id or a unique id prefix.
func findEvent(ctx *Context, id string) (models.HabitEvent, error) {
	if event, err := ctx.Store.GetEvent(id); err == nil {
		return event, nil
	}

	events, err := ctx.Store.AllEvents()
	if err != nil {
		return models.HabitEvent{}, err
	}

	var matches []models.HabitEvent
	for _, event := range events {
		if strings.HasPrefix(event.ID, id) {
			matches = append(matches, event)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.HabitEvent{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	default:
		return models.HabitEvent{}, fmt.Errorf("event id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// findCategory resolves a full category id or a unique id prefix.
func findCategory(ctx *Context, id string) (models.Category, error) {
	if cat, err := ctx.Store.GetCategory(id); err == nil {
		return cat, nil
	}

	cats, err := ctx.Store.GetAllCategories()
	if err != nil {
		return models.Category{}, err
	}

	var matches []models.Category
	for _, cat := range cats {
		if strings.HasPrefix(cat.ID, id) {
			matches = append(matches, cat)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Category{}, fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
	default:
		return models.Category{}, fmt.Errorf("category id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// categoryName resolves a habit's category for display; an unset or dangling
// reference renders as an empty string.
func categoryName(ctx *Context, habit models.Habit) string {
	if habit.CategoryID == "" {
		return ""
	}
	cat, err := ctx.Store.GetCategory(habit.CategoryID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			ctx.Logger.Warn("category lookup failed", "habit", habit.Name, "error", err)
		}
		return ""
	}
	return cat.Name
}
