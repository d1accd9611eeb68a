package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitkeep/internal/backup"
	"github.com/julianstephens/habitkeep/internal/display"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Back up the store."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := manager.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s.\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := manager.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println(display.Muted("No backups yet, run 'habitkeep backup create'."))
		return nil
	}

	rows := make([][]string, 0, len(backups))
	for _, info := range backups {
		rows = append(rows, []string{
			filepath.Base(info.Path),
			info.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d KiB", info.Size/1024),
		})
	}

	fmt.Println(display.Header("Backups"))
	fmt.Print(display.Table([]string{"File", "Taken", "Size"}, rows))
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" optional:"" help:"Backup file name, defaults to the newest."`
}

// Run replaces the live store with the chosen backup. A safety backup of the
// current store is taken first, so the replaced state stays recoverable.
func (c *BackupRestoreCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.GetConfigPath())

	path := c.File
	if path == "" {
		backups, err := manager.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups available")
		}
		path = backups[0].Path
	} else if filepath.Dir(path) == "." {
		path = filepath.Join(manager.GetBackupDir(), path)
	}

	ok, err := confirm(fmt.Sprintf("Replace the current store with %s?", filepath.Base(path)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Kept the current store.")
		return nil
	}

	if err := manager.RestoreBackup(path); err != nil {
		return err
	}
	fmt.Printf("Restored from %s.\n", filepath.Base(path))
	return nil
}
