package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitkeep/internal/backup"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/display"
	"github.com/julianstephens/habitkeep/internal/storage"
)

type DoctorCmd struct{}

// Run checks the store and its surroundings and reports each finding. The
// command exits non-zero only when the store itself is unusable; warnings
// about backups or stray processes do not fail it.
func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println(display.Header("habitkeep doctor"))

	broken := false

	if err := ctx.Store.Load(); err != nil {
		report(false, "store: %v", err)
		return fmt.Errorf("store at %s is unusable", ctx.Store.GetConfigPath())
	}
	defer ctx.Store.Close()
	report(true, "store reachable at %s", ctx.Store.GetConfigPath())

	if sqlite, ok := ctx.Store.(*storage.SQLiteStore); ok {
		if err := checkSQLite(sqlite); err != nil {
			report(false, "sqlite: %v", err)
			broken = true
		} else {
			report(true, "sqlite responds and has all tables")
		}
	}

	if err := checkIDs(ctx); err != nil {
		report(false, "%v", err)
		broken = true
	} else {
		report(true, "all ids are unique")
	}

	if warn := checkClock(ctx); warn != "" {
		fmt.Printf("  ?  %s\n", warn)
	} else {
		report(true, "no records dated in the future")
	}

	manager := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := manager.ListBackups()
	switch {
	case err != nil:
		fmt.Printf("  ?  backups: %v\n", err)
	case len(backups) == 0:
		fmt.Println("  ?  no backups yet, consider 'habitkeep backup create'")
	default:
		report(true, "%d backups, newest from %s", len(backups),
			backups[0].Timestamp.Format("2006-01-02 15:04"))
	}

	if names := otherInstances(); len(names) > 0 {
		fmt.Printf("  ?  another habitkeep process is running (pid %s), writes may collide\n",
			strings.Join(names, ", "))
	} else {
		report(true, "no other habitkeep process running")
	}

	if broken {
		return fmt.Errorf("problems found, see above")
	}
	fmt.Println("All good.")
	return nil
}

func report(ok bool, format string, args ...any) {
	mark := "ok"
	if !ok {
		mark = "!!"
	}
	fmt.Printf("  %s %s\n", mark, fmt.Sprintf(format, args...))
}

func checkSQLite(store *storage.SQLiteStore) error {
	db := store.GetDB()
	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	for _, table := range []string{"habits", "events", "categories"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			return fmt.Errorf("table %s missing: %w", table, err)
		}
	}
	return nil
}

// checkIDs scans for duplicate ids across habits, events and categories.
// Duplicates cannot happen through normal use but a hand-edited JSON store
// or a bad restore can introduce them.
func checkIDs(ctx *Context) error {
	seen := make(map[string]string)
	note := func(id, kind string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("id %s used by both %s and %s", id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if err := note(habit.ID, "habit "+habit.Name); err != nil {
			return err
		}
	}

	events, err := ctx.Store.AllEvents()
	if err != nil {
		return err
	}
	for _, event := range events {
		if err := note(event.ID, "event on "+event.Solved); err != nil {
			return err
		}
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	for _, category := range categories {
		if err := note(category.ID, "category "+category.Name); err != nil {
			return err
		}
	}

	return nil
}

// checkClock looks for dates ahead of today. Those usually mean the system
// clock jumped backwards and would keep the backfill from running.
func checkClock(ctx *Context) string {
	today := time.Now().Format(constants.DateFormat)

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err.Error()
	}
	for _, habit := range habits {
		if habit.Updated > today {
			return fmt.Sprintf("habit %s has checkpoint %s in the future", habit.Name, habit.Updated)
		}
	}

	events, err := ctx.Store.AllEvents()
	if err != nil {
		return err.Error()
	}
	for _, event := range events {
		if event.Solved > today {
			return fmt.Sprintf("event %s is dated %s in the future", display.ShortID(event.ID), event.Solved)
		}
	}

	return ""
}

// otherInstances lists other running habitkeep processes by pid.
func otherInstances() []string {
	processes, err := ps.Processes()
	if err != nil {
		return nil
	}

	var pids []string
	for _, proc := range processes {
		if proc.Pid() == os.Getpid() {
			continue
		}
		if strings.HasPrefix(proc.Executable(), "habitkeep") {
			pids = append(pids, fmt.Sprintf("%d", proc.Pid()))
		}
	}
	return pids
}
