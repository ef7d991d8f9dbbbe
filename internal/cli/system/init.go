package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/growthdash/internal/cli"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()

	if c.Force {
		if !ctx.IsSQLite() {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDB, errDB := filepath.Abs(dbPath)
			absSource, errSource := filepath.Abs(c.Source)
			if errDB == nil && errSource == nil && absDB == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized growthdash storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "Migration completed successfully!")
	}
	return nil
}

// copyData moves settings, entries and ledger rows from another backend into the new store
func (c *InitCmd) copyData(ctx *cli.Context) error {
	out := ctx.Out()
	source, err := cli.OpenStore(c.Source, false)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	bg := ctx.Ctx()

	fmt.Fprintln(out, "  Migrating settings...")
	settings, err := source.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(bg, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Fprintln(out, "  Migrating daily entries...")
	entries, err := source.GetEntries(bg, "", "")
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	records := 0
	for _, entry := range entries {
		if err := ctx.Store.UpsertEntry(bg, entry); err != nil {
			return fmt.Errorf("failed to copy entry %s: %w", entry.Date, err)
		}
		ledger, err := source.GetNotifications(bg, entry.Date)
		if err != nil {
			return fmt.Errorf("failed to get notifications for %s: %w", entry.Date, err)
		}
		for _, rec := range ledger {
			if err := ctx.Store.RecordNotification(bg, rec); err != nil {
				return fmt.Errorf("failed to copy notification %s: %w", rec.ID, err)
			}
			records++
		}
	}
	fmt.Fprintf(out, "    Migrated %d entries\n", len(entries))
	fmt.Fprintf(out, "    Migrated %d notification records\n", records)
	return nil
}
