package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/storage"
)

func setupStore(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	store := storage.ForPath(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	habit := models.Habit{ID: "h1", Name: "Jogging", Enabled: true, Created: "2022-01-01", Updated: "2022-01-01"}
	if err := store.SaveHabit(habit); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndListBackup(t *testing.T) {
	for _, name := range []string{"habitkeep.db", "habitkeep.json"} {
		t.Run(name, func(t *testing.T) {
			storePath := setupStore(t, name)
			mgr := NewManager(storePath)

			backupPath, err := mgr.CreateBackup()
			if err != nil {
				t.Fatalf("CreateBackup: %v", err)
			}
			if _, err := os.Stat(backupPath); err != nil {
				t.Fatalf("backup file missing: %v", err)
			}

			// Backup must be loadable by the same backend
			restored := storage.ForPath(backupPath)
			if err := restored.Load(); err != nil {
				t.Fatalf("loading backup: %v", err)
			}
			if _, err := restored.GetHabit("h1"); err != nil {
				t.Errorf("habit missing from backup: %v", err)
			}
			restored.Close()

			backups, err := mgr.ListBackups()
			if err != nil {
				t.Fatal(err)
			}
			if len(backups) != 1 {
				t.Errorf("ListBackups returned %d entries, want 1", len(backups))
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	storePath := setupStore(t, "habitkeep.db")
	mgr := NewManager(storePath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the live store after the backup
	store := storage.ForPath(storePath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}

	restored := storage.ForPath(storePath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if _, err := restored.GetHabit("h1"); err != nil {
		t.Errorf("habit not restored: %v", err)
	}
}

func TestRestoreMissingBackupFails(t *testing.T) {
	storePath := setupStore(t, "habitkeep.db")
	mgr := NewManager(storePath)

	if err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "nope.db")); err == nil {
		t.Error("expected error restoring nonexistent backup")
	}
}
