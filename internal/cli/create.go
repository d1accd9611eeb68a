package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/models"
)

type CreateCmd struct{}

// Run walks through the interactive habit builder. Nothing is written until
// the final confirmation, so aborting at any point leaves the store
// untouched.
func (c *CreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	habit, err := buildHabit(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrAborted) {
			fmt.Println("Cancelled, nothing saved.")
			return nil
		}
		return err
	}

	save, err := confirm(fmt.Sprintf("Save habit %q (%s)?", habit.Name, habit.ScheduleText()))
	if err != nil {
		if errors.Is(err, apperr.ErrAborted) {
			fmt.Println("Cancelled, nothing saved.")
			return nil
		}
		return err
	}
	if !save {
		fmt.Println("Discarded.")
		return nil
	}

	if err := habit.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Created habit %s (%s).\n", habit.Name, habit.ID)
	return nil
}

func buildHabit(ctx *Context) (models.Habit, error) {
	today := time.Now().Format(constants.DateFormat)
	habit := models.Habit{
		ID:      uuid.New().String(),
		Enabled: true,
		Created: today,
		Updated: today,
	}

	var name string
	err := huh.NewInput().
		Title("What habit do you want to build?").
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name must not be empty")
			}
			return nil
		}).
		Value(&name).
		Run()
	if err != nil {
		return habit, promptErr(err)
	}
	habit.Name = strings.TrimSpace(name)

	condition, err := askCondition()
	if err != nil {
		return habit, err
	}
	habit.Condition = condition

	if habit.NeedsCondition() {
		quota, err := askInt("What is the target amount per occurrence?", "")
		if err != nil {
			return habit, err
		}
		habit.Quota = quota

		var unit string
		err = huh.NewInput().
			Title("What unit is the amount measured in?").
			Placeholder("minutes, pages, reps, ...").
			Value(&unit).
			Run()
		if err != nil {
			return habit, promptErr(err)
		}
		habit.Unit = strings.TrimSpace(unit)
	}

	if err := askSchedule(&habit); err != nil {
		return habit, err
	}

	if err := askCategory(ctx, &habit); err != nil {
		return habit, err
	}

	return habit, nil
}

func askCondition() (models.Condition, error) {
	var condition models.Condition
	err := huh.NewSelect[models.Condition]().
		Title("Does the habit have a measurable target?").
		Options(
			huh.NewOption("No, just done or not done", models.ConditionNone),
			huh.NewOption("Reach exactly the target", models.ConditionEq),
			huh.NewOption("Stay at or below the target", models.ConditionLt),
			huh.NewOption("Reach at least the target", models.ConditionGt),
		).
		Value(&condition).
		Run()
	if err != nil {
		return condition, promptErr(err)
	}
	return condition, nil
}

func askSchedule(habit *models.Habit) error {
	const (
		scheduleWeekly = "weekly"
		scheduleDaily  = "daily"
		scheduleSubset = "subset"
	)

	var mode string
	err := huh.NewSelect[string]().
		Title("How often is the habit due?").
		Options(
			huh.NewOption("Once per week, any day", scheduleWeekly),
			huh.NewOption("Every day", scheduleDaily),
			huh.NewOption("On specific weekdays", scheduleSubset),
		).
		Value(&mode).
		Run()
	if err != nil {
		return promptErr(err)
	}

	switch mode {
	case scheduleWeekly:
		habit.SetWeekly()
	case scheduleDaily:
		habit.ResetSchedule()
		for day := 0; day < 7; day++ {
			habit.AddScheduledDay(fmt.Sprintf("%d", day))
		}
	case scheduleSubset:
		var input string
		err := huh.NewInput().
			Title("Which weekdays?").
			Description("Comma separated, names or 0-6 with 0 = Monday.").
			Validate(func(s string) error {
				days, bad := parseScheduleList(s)
				if len(bad) > 0 {
					return fmt.Errorf("unknown weekday %q", bad[0])
				}
				if len(days) == 0 {
					return errors.New("pick at least one weekday")
				}
				return nil
			}).
			Value(&input).
			Run()
		if err != nil {
			return promptErr(err)
		}
		habit.ResetSchedule()
		days, _ := parseScheduleList(input)
		for _, day := range days {
			habit.AddScheduledDay(day)
		}
	}

	return nil
}

func askCategory(ctx *Context, habit *models.Habit) error {
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}

	options := []huh.Option[string]{huh.NewOption("None", "")}
	for _, category := range categories {
		options = append(options, huh.NewOption(category.Name, category.ID))
	}

	var categoryID string
	err = huh.NewSelect[string]().
		Title("Assign a category?").
		Options(options...).
		Value(&categoryID).
		Run()
	if err != nil {
		return promptErr(err)
	}
	habit.CategoryID = categoryID
	return nil
}
