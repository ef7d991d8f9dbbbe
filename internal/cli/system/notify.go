package system

import (
	"fmt"

	"github.com/julianstephens/growthdash/internal/accountability"
	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/dispatch"
	"github.com/julianstephens/growthdash/internal/keyring"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/notifier"
	"github.com/julianstephens/growthdash/internal/utils"
)

var buildChannelsFunc = notifier.BuildChannels

// NotifyCmd is meant to run every minute from cron or a systemd timer
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	now := ctx.Now()

	overview, err := ctx.Journal.Overview(ctx.Ctx(), now, 0, 0)
	if err != nil {
		return err
	}
	settings := overview.Settings

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Fprintln(out, "Notifications are disabled in settings.")
		}
		return nil
	}

	local, err := utils.InTimezone(now, settings.Timezone)
	if err != nil {
		return err
	}
	triggers := dispatch.DueTriggers(settings, local, overview.Today, overview.Snapshot)
	if len(triggers) == 0 {
		if c.DryRun {
			fmt.Fprintf(out, "Nothing due at %s.\n", local.Format("15:04"))
		}
		return nil
	}

	channels, errs := buildChannelsFunc(settings, resolveSecrets())
	for _, err := range errs {
		logger.Warn("channel skipped", "error", err)
		if c.DryRun {
			fmt.Fprintf(out, "[DryRun] channel skipped: %v\n", err)
		}
	}
	if len(channels) == 0 {
		return fmt.Errorf("no notification channel is usable")
	}

	ledger, closeLedger := openLedger(ctx, settings)
	defer closeLedger()
	d := dispatch.New(channels, ledger).WithDryRun(c.DryRun)

	failed := 0
	for _, trig := range triggers {
		msg := accountability.Compose(trig.Kind, overview.Snapshot, trig.Session).WithNotes(overview.Today)
		for _, res := range d.Dispatch(ctx.Ctx(), msg) {
			switch {
			case res.Err != nil:
				failed++
				fmt.Fprintf(out, "✗ %s via %s: %v\n", msg.LedgerKind(), res.Channel, res.Err)
			case res.Skipped:
				if c.DryRun {
					fmt.Fprintf(out, "[DryRun] already sent %s via %s\n", msg.LedgerKind(), res.Channel)
				}
			case c.DryRun:
				fmt.Fprintf(out, "[DryRun] %s via %s: [%s] %s: %s\n",
					msg.LedgerKind(), res.Channel, accountability.Badge(msg.Tier), msg.Title, msg.PlainBody())
			default:
				fmt.Fprintf(out, "✓ %s via %s\n", msg.LedgerKind(), res.Channel)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d notification(s) failed; they will be retried on the next run", failed)
	}
	return nil
}

func resolveSecrets() notifier.Secrets {
	var s notifier.Secrets
	var err error
	if s.SMTPPassword, err = keyring.Resolve(keyring.SecretSMTPPassword); err != nil {
		logger.Warn("failed to read SMTP password", "error", err)
	}
	if s.TelegramToken, err = keyring.Resolve(keyring.SecretTelegramToken); err != nil {
		logger.Warn("failed to read Telegram token", "error", err)
	}
	return s
}

// openLedger prefers Redis when configured, always backed by the database ledger
func openLedger(ctx *cli.Context, settings models.Settings) (dispatch.Ledger, func()) {
	durable := dispatch.NewStoreLedger(ctx.Store)
	if settings.RedisAddr == "" {
		return durable, func() {}
	}
	ledger := dispatch.NewRedisLedger(dispatch.NewRedisClient(settings.RedisAddr), durable)
	return ledger, func() {
		if err := ledger.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}
}
