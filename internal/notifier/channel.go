package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/julianstephens/growthdash/internal/accountability"
	"github.com/julianstephens/growthdash/internal/constants"
)

// Channel names as stored in the channels setting
const (
	ChannelPush     = "push"
	ChannelEmail    = "email"
	ChannelWebhook  = "webhook"
	ChannelTelegram = "telegram"
	ChannelDiscord  = "discord"
)

// AllChannels lists every supported channel name
var AllChannels = []string{ChannelPush, ChannelEmail, ChannelWebhook, ChannelTelegram, ChannelDiscord}

// Channel delivers a composed message over one transport
type Channel interface {
	Name() string
	Send(ctx context.Context, msg accountability.Message) error
}

// StatusError is returned when a remote endpoint answers with a non-2xx status
type StatusError struct {
	Channel    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s notification failed with status %d: %s", e.Channel, e.StatusCode, e.Body)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: constants.ChannelRequestTimeout}
}

// postJSON sends payload as JSON and returns the response body of a 2xx reply
func postJSON(ctx context.Context, client *http.Client, channel, url string, payload any, headers map[string]string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", channel, err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Channel: channel, StatusCode: res.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

// headline is the first line every text channel shows: tier badge plus title
func headline(msg accountability.Message) string {
	return fmt.Sprintf("[%s] %s", accountability.Badge(msg.Tier), msg.Title)
}
