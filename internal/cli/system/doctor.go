package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/growthdash/internal/backup"
	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

type DoctorCmd struct{}

type doctorCheck struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []doctorCheck{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Entry integrity", needsDB: true, run: checkEntries},
	{name: "Progress engine", needsDB: true, run: checkProgress},
	{name: "Notification channels", needsDB: true, warnOnly: true, run: checkChannels},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Fprintf(out, "❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Fprintln(out, "✓ Database reachable: OK")
	}

	for _, check := range doctorChecks {
		if check.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}
		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✓ %s: OK\n", check.name)
		case check.warnOnly:
			fmt.Fprintf(out, "⚠ %s: WARNING\n   %v\n", check.name, err)
		default:
			fmt.Fprintf(out, "❌ %s: FAIL\n   Error: %v\n", check.name, err)
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		var one int
		if err := s.GetDB().QueryRow("SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	status, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'growthdash migrate')", status.Current, status.Latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return s.Validate()
}

func checkEntries(ctx *cli.Context) error {
	entries, err := ctx.Store.GetEntries(ctx.Ctx(), "", "")
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	invalid := 0
	var first error
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			invalid++
			if first == nil {
				first = fmt.Errorf("%s: %w", entries[i].Date, err)
			}
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid entries, first: %v", invalid, first)
	}
	return nil
}

func checkProgress(ctx *cli.Context) error {
	_, err := ctx.Journal.Snapshot(ctx.Ctx(), ctx.Now())
	return err
}

func checkChannels(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return err
	}
	if !s.NotificationsEnabled {
		return fmt.Errorf("notifications are disabled")
	}
	_, errs := buildChannelsFunc(s, resolveSecrets())
	if len(errs) > 0 {
		return fmt.Errorf("%d channel(s) misconfigured: %v", len(errs), errs)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'growthdash backup create')", mgr.BackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation("UTC"); err != nil {
		return fmt.Errorf("timezone database unavailable: %w", err)
	}
	return nil
}
