package notifier

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/julianstephens/growthdash/internal/accountability"
)

// DiscordChannel posts an embed to a Discord webhook, coloured by tier
type DiscordChannel struct {
	url    string
	client *http.Client
}

type discordPayload struct {
	Content string         `json:"content"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
	Footer      *discordFooter `json:"footer,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

func NewDiscordChannel(url string) (*DiscordChannel, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("discord webhook url is not configured")
	}
	return &DiscordChannel{url: url, client: defaultClient()}, nil
}

func (c *DiscordChannel) Name() string { return ChannelDiscord }

func (c *DiscordChannel) Send(ctx context.Context, msg accountability.Message) error {
	_, err := postJSON(ctx, c.client, ChannelDiscord, c.url, renderDiscord(msg), nil)
	return err
}

func renderDiscord(msg accountability.Message) discordPayload {
	embed := discordEmbed{
		Title:       accountability.Emoji(msg.Tier) + " " + headline(msg),
		Description: msg.Body,
		Color:       accountability.Color(msg.Tier),
		Footer:      &discordFooter{Text: msg.Summary()},
	}
	for _, note := range msg.Notes {
		name, value, ok := strings.Cut(note, ": ")
		if !ok {
			name, value = "note", note
		}
		embed.Fields = append(embed.Fields, discordField{Name: name, Value: value})
	}
	return discordPayload{
		Content: headline(msg),
		Embeds:  []discordEmbed{embed},
	}
}
