package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/cli/backups"
	"github.com/julianstephens/growthdash/internal/cli/entries"
	"github.com/julianstephens/growthdash/internal/cli/settings"
	"github.com/julianstephens/growthdash/internal/cli/system"
	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/errors"
	"github.com/julianstephens/growthdash/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path or PostgreSQL connection string. Defaults to $GROWTHDASH_DB_CONNECTION, the keyring, then ~/.config/growthdash/growthdash.db. Credentials must NOT be embedded in a connection string passed here." type:"string"`
	Debug   bool   `help:"Mirror logs to stderr at debug level."`

	Init     system.InitCmd       `cmd:"" help:"Initialize growthdash storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the dashboard." default:"1"`
	Checkin  entries.CheckinCmd   `cmd:"" help:"Record a check-in session for today."`
	Show     entries.ShowCmd      `cmd:"" help:"Show the entry for a day."`
	Stats    entries.StatsCmd     `cmd:"" help:"Show streaks, completion rates and the accountability tier."`
	Heatmap  entries.HeatmapCmd   `cmd:"" help:"Show the check-in heatmap."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the database connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability and stored secrets."`
		Secret system.KeyringSecretCmd `cmd:"" help:"Manage notification channel secrets."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Inspect system.DebugCmd  `cmd:"" help:"Dump stored data as JSON for troubleshooting."`
	Notify  system.NotifyCmd `cmd:"" help:"Send due reminders and accountability messages (run every minute from cron or a systemd timer)."`
}

// commands that run without opening the database first
var noLoad = map[string]bool{"init": true, "keyring": true}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal growth dashboard: daily check-ins, streaks and accountability"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir, err := cli.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir, Level: os.Getenv(constants.EnvLogLevel)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logger.Close()

	config, trusted, err := cli.ResolveConfig(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	store, err := cli.OpenStore(config, trusted)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(store)
	appCtx.Debug = CLI.Debug

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !noLoad[command[0]] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	logger.Debug("running command", "command", ctx.Command())
	if err := ctx.Run(appCtx); err != nil {
		_ = store.Close()
		errors.Fatal(err)
	}
}
