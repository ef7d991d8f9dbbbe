package notifier

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julianstephens/growthdash/internal/accountability"
)

// WebhookChannel posts {"text": ...} to a generic chat webhook (Slack, Mattermost, Rocket.Chat)
type WebhookChannel struct {
	url    string
	client *http.Client
}

type webhookPayload struct {
	Text string `json:"text"`
}

func NewWebhookChannel(url string) (*WebhookChannel, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("webhook url is not configured")
	}
	return &WebhookChannel{url: url, client: defaultClient()}, nil
}

func (c *WebhookChannel) Name() string { return ChannelWebhook }

func (c *WebhookChannel) Send(ctx context.Context, msg accountability.Message) error {
	_, err := postJSON(ctx, c.client, ChannelWebhook, c.url, renderWebhook(msg), nil)
	return err
}

func renderWebhook(msg accountability.Message) webhookPayload {
	lines := []string{
		accountability.Emoji(msg.Tier) + " *" + headline(msg) + "*",
		strings.ReplaceAll(msg.Body, "**", "*"),
		"_" + msg.Summary() + "_",
	}
	return webhookPayload{Text: strings.Join(lines, "\n")}
}
