package settings

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/notifier"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone used to decide what 'today' is."`
	SprintStart  *string `help:"Sprint start date (YYYY-MM-DD); empty resets to the first entry."`
	SprintLength *int    `help:"Sprint length in days."`

	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
	MorningTime          *string `help:"Morning session reminder (HH:MM)."`
	MiddayTime           *string `help:"Midday session reminder (HH:MM)."`
	EveningTime          *string `help:"Evening session reminder (HH:MM)."`
	BedtimeTime          *string `help:"Bedtime session reminder (HH:MM)."`
	AccountabilityTime   *string `help:"Daily accountability check (HH:MM)."`
	GracePeriod          *int    `help:"Minutes a missed reminder may still fire."`
	Channels             *string `help:"Comma separated channels: push, email, webhook, telegram, discord."`

	EmailTo      *string `help:"Comma separated email recipients."`
	EmailFrom    *string `help:"Sender address."`
	SMTPHost     *string `name:"smtp-host" help:"SMTP server host."`
	SMTPPort     *int    `name:"smtp-port" help:"SMTP server port."`
	SMTPUsername *string `name:"smtp-username" help:"SMTP username (password lives in the keyring)."`
	SMTPTLS      *bool   `name:"smtp-tls" help:"Use STARTTLS."`

	WebhookURL        *string `name:"webhook-url" help:"Generic chat webhook URL."`
	TelegramChatID    *string `name:"telegram-chat-id" help:"Telegram chat ID (token lives in the keyring)."`
	DiscordWebhookURL *string `name:"discord-webhook-url" help:"Discord webhook URL."`
	RedisAddr         *string `name:"redis-addr" help:"Redis address for the shared dispatch ledger; empty disables it."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(out, settings)
		return nil
	}

	updated := c.apply(&settings)
	if !updated {
		fmt.Fprintln(out, "No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := validateChannels(settings.Channels); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(ctx.Ctx(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Info("Settings updated")
	fmt.Fprintln(out, "Settings updated successfully.")
	return nil
}

// apply copies every flag that was given onto s
func (c *SettingsCmd) apply(s *models.Settings) bool {
	updated := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}

	setString(&s.Timezone, c.Timezone)
	setString(&s.SprintStart, c.SprintStart)
	setInt(&s.SprintLengthDays, c.SprintLength)
	setBool(&s.NotificationsEnabled, c.NotificationsEnabled)
	setString(&s.MorningTime, c.MorningTime)
	setString(&s.MiddayTime, c.MiddayTime)
	setString(&s.EveningTime, c.EveningTime)
	setString(&s.BedtimeTime, c.BedtimeTime)
	setString(&s.AccountabilityTime, c.AccountabilityTime)
	setInt(&s.NotificationGracePeriodMin, c.GracePeriod)
	if c.Channels != nil {
		s.Channels = models.ParseChannelList(*c.Channels)
		updated = true
	}
	setString(&s.EmailTo, c.EmailTo)
	setString(&s.EmailFrom, c.EmailFrom)
	setString(&s.SMTPHost, c.SMTPHost)
	setInt(&s.SMTPPort, c.SMTPPort)
	setString(&s.SMTPUsername, c.SMTPUsername)
	setBool(&s.SMTPTLS, c.SMTPTLS)
	setString(&s.WebhookURL, c.WebhookURL)
	setString(&s.TelegramChatID, c.TelegramChatID)
	setString(&s.DiscordWebhookURL, c.DiscordWebhookURL)
	setString(&s.RedisAddr, c.RedisAddr)
	return updated
}

func validateChannels(channels []string) error {
	for _, name := range channels {
		known := false
		for _, c := range notifier.AllChannels {
			if c == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown channel %q (expected one of %s)", name, strings.Join(notifier.AllChannels, ", "))
		}
	}
	return nil
}

func printSettings(out io.Writer, s models.Settings) {
	sprintStart := s.SprintStart
	if sprintStart == "" {
		sprintStart = "(first entry)"
	}
	fmt.Fprintln(out, "Current Settings:")
	fmt.Fprintf(out, "  Timezone:              %s\n", s.Timezone)
	fmt.Fprintf(out, "  Sprint Start:          %s\n", sprintStart)
	fmt.Fprintf(out, "  Sprint Length:         %d days\n", s.SprintLengthDays)

	fmt.Fprintln(out, "\nReminders:")
	for _, session := range models.AllSessions {
		fmt.Fprintf(out, "  %-22s %s\n", session.String()+":", s.SessionTime(session))
	}
	fmt.Fprintf(out, "  %-22s %s\n", "accountability:", s.AccountabilityTime)
	fmt.Fprintf(out, "  Grace Period:          %d min\n", s.NotificationGracePeriodMin)

	fmt.Fprintln(out, "\nNotification Settings:")
	fmt.Fprintf(out, "  Notifications Enabled: %v\n", s.NotificationsEnabled)
	fmt.Fprintf(out, "  Channels:              %s\n", strings.Join(s.Channels, ", "))
	fmt.Fprintf(out, "  Email:                 %s -> %s via %s:%d (tls %v)\n", s.EmailFrom, s.EmailTo, s.SMTPHost, s.SMTPPort, s.SMTPTLS)
	fmt.Fprintf(out, "  Webhook URL:           %s\n", s.WebhookURL)
	fmt.Fprintf(out, "  Telegram Chat ID:      %s\n", s.TelegramChatID)
	fmt.Fprintf(out, "  Discord Webhook URL:   %s\n", s.DiscordWebhookURL)
	fmt.Fprintf(out, "  Redis Ledger:          %s\n", orNone(s.RedisAddr))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
