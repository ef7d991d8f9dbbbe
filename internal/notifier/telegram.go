package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/julianstephens/growthdash/internal/accountability"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramConfig holds the bot credentials. BaseURL is only overridden in tests.
type TelegramConfig struct {
	Token   string
	ChatID  string
	BaseURL string
}

// TelegramChannel sends through the Bot API sendMessage method
type TelegramChannel struct {
	cfg    TelegramConfig
	client *http.Client
}

type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewTelegramChannel(cfg TelegramConfig) (*TelegramChannel, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram bot token is not configured")
	}
	if cfg.ChatID == "" {
		return nil, errors.New("telegram chat id is not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = telegramAPIBase
	}
	return &TelegramChannel{cfg: cfg, client: defaultClient()}, nil
}

func (c *TelegramChannel) Name() string { return ChannelTelegram }

func (c *TelegramChannel) Send(ctx context.Context, msg accountability.Message) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Token)
	body, err := postJSON(ctx, c.client, ChannelTelegram, url, renderTelegram(c.cfg.ChatID, msg), nil)
	if err != nil {
		return err
	}

	var res telegramResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("telegram returned an unreadable response: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("telegram rejected the message: %s", res.Description)
	}
	return nil
}

// renderTelegram uses legacy Markdown, where *text* is bold
func renderTelegram(chatID string, msg accountability.Message) telegramPayload {
	text := fmt.Sprintf("%s *%s*\n%s\n\n_%s_",
		accountability.Emoji(msg.Tier), headline(msg),
		strings.ReplaceAll(msg.Body, "**", "*"), msg.Summary())
	return telegramPayload{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}
}
