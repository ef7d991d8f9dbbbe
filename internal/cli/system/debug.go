package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/storage"
	"github.com/julianstephens/growthdash/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpEntry    *DebugDumpEntryCmd    `cmd:"" help:"Dump a daily entry as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	DumpSnapshot *DebugDumpSnapshotCmd `cmd:"" help:"Dump today's progress snapshot as JSON."`
	DumpLedger   *DebugDumpLedgerCmd   `cmd:"" help:"Dump the notification ledger for a date as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return writeJSON(ctx.Out(), map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpEntryCmd struct {
	Date string `arg:"" help:"Date of the entry to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, cmd.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(ctx.Ctx(), date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no entry found for date: %s", date)
		}
		return fmt.Errorf("failed to get entry: %w", err)
	}
	return writeJSON(ctx.Out(), entry)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return writeJSON(ctx.Out(), settings)
}

type DebugDumpSnapshotCmd struct{}

func (cmd *DebugDumpSnapshotCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Journal.Snapshot(ctx.Ctx(), ctx.Now())
	if err != nil {
		return err
	}
	return writeJSON(ctx.Out(), snap)
}

type DebugDumpLedgerCmd struct {
	Date string `arg:"" default:"today" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpLedgerCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, cmd.Date)
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetNotifications(ctx.Ctx(), date)
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	return writeJSON(ctx.Out(), records)
}

// resolveDate maps 'today' onto the configured timezone and validates anything else
func resolveDate(ctx *cli.Context, date string) (string, error) {
	if date == "" || date == "today" {
		today, _, err := ctx.Journal.Today(ctx.Ctx(), ctx.Now())
		return today, err
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}
	return date, nil
}

func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
