package notifier

import (
	"fmt"
	"strings"

	"github.com/julianstephens/growthdash/internal/models"
)

// Secrets holds channel credentials that never live in the settings table
type Secrets struct {
	SMTPPassword  string
	TelegramToken string
}

// BuildChannels constructs every enabled channel. A channel whose configuration is
// incomplete is skipped and reported in the returned errors so the others still send.
func BuildChannels(settings models.Settings, secrets Secrets) ([]Channel, []error) {
	var (
		channels []Channel
		errs     []error
	)
	if !settings.NotificationsEnabled {
		return nil, nil
	}

	for _, name := range settings.Channels {
		var (
			ch  Channel
			err error
		)
		switch name {
		case ChannelPush:
			ch = NewTrayChannel()
		case ChannelEmail:
			ch, err = NewEmailChannel(EmailConfig{
				Host:     settings.SMTPHost,
				Port:     settings.SMTPPort,
				Username: settings.SMTPUsername,
				Password: secrets.SMTPPassword,
				From:     settings.EmailFrom,
				To:       splitRecipients(settings.EmailTo),
				StartTLS: settings.SMTPTLS,
			})
		case ChannelWebhook:
			ch, err = NewWebhookChannel(settings.WebhookURL)
		case ChannelTelegram:
			ch, err = NewTelegramChannel(TelegramConfig{Token: secrets.TelegramToken, ChatID: settings.TelegramChatID})
		case ChannelDiscord:
			ch, err = NewDiscordChannel(settings.DiscordWebhookURL)
		default:
			err = fmt.Errorf("unknown channel %q", name)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		channels = append(channels, ch)
	}
	return channels, errs
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
