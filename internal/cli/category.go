package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/display"
	"github.com/julianstephens/habitkeep/internal/models"
)

type CatCmd struct {
	List   CatListCmd   `cmd:"" help:"List all categories."`
	Add    CatAddCmd    `cmd:"" help:"Add a category."`
	Delete CatDeleteCmd `cmd:"" help:"Delete a category."`
	Rename CatRenameCmd `cmd:"" help:"Rename a category."`
}

type CatListCmd struct{}

func (c *CatListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println(display.Muted("No categories yet."))
		return nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, habit := range habits {
		counts[habit.CategoryID]++
	}

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{
			display.ShortID(category.ID),
			category.Name,
			fmt.Sprintf("%d", counts[category.ID]),
		})
	}

	fmt.Println(display.Header("Categories"))
	fmt.Print(display.Table([]string{"ID", "Name", "Habits"}, rows))
	return nil
}

type CatAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CatAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	category := models.Category{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(c.Name),
	}
	if err := category.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveCategory(category); err != nil {
		return err
	}

	fmt.Printf("Added category %s (%s).\n", category.Name, display.ShortID(category.ID))
	return nil
}

type CatDeleteCmd struct {
	ID string `arg:"" help:"Category id (or unique prefix)."`
}

// Run deletes the category and detaches it from any habit that carried it.
// The habits themselves are untouched.
func (c *CatDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	category, err := findCategory(ctx, c.ID)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if habit.CategoryID != category.ID {
			continue
		}
		habit.CategoryID = ""
		if err := ctx.Store.SaveHabit(habit); err != nil {
			return err
		}
	}

	if err := ctx.Store.DeleteCategory(category.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted category %s.\n", category.Name)
	return nil
}

type CatRenameCmd struct {
	ID   string `arg:"" help:"Category id (or unique prefix)."`
	Name string `arg:"" help:"New name."`
}

func (c *CatRenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	category, err := findCategory(ctx, c.ID)
	if err != nil {
		return err
	}

	old := category.Name
	category.Name = strings.TrimSpace(c.Name)
	if err := category.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveCategory(category); err != nil {
		return err
	}

	fmt.Printf("Renamed category %q to %q.\n", old, category.Name)
	return nil
}
