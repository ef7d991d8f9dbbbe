package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/growthdash/internal/models"
)

func TestNewEmailChannel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EmailConfig
		wantErr bool
	}{
		{"complete", EmailConfig{Host: "smtp.example.com", From: "a@example.com", To: []string{"b@example.com"}}, false},
		{"no host", EmailConfig{From: "a@example.com", To: []string{"b@example.com"}}, true},
		{"no sender", EmailConfig{Host: "smtp.example.com", To: []string{"b@example.com"}}, true},
		{"no recipient", EmailConfig{Host: "smtp.example.com", From: "a@example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := NewEmailChannel(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEmailChannel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && ch.cfg.Port != 587 {
				t.Errorf("expected default port 587, got %d", ch.cfg.Port)
			}
		})
	}
}

func TestEmailChannel_Send(t *testing.T) {
	var (
		gotCfg  EmailConfig
		gotData string
	)
	oldDeliver := deliverFunc
	defer func() { deliverFunc = oldDeliver }()
	deliverFunc = func(ctx context.Context, cfg EmailConfig, data []byte) error {
		gotCfg = cfg
		gotData = string(data)
		return nil
	}

	ch, err := NewEmailChannel(EmailConfig{
		Host:     "smtp.example.com",
		Port:     2525,
		From:     "dash@example.com",
		To:       []string{"me@example.com", "coach@example.com"},
		StartTLS: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	entry := models.DailyEntry{Date: "2024-03-10"}
	entry.Notes[models.SessionEvening] = "<b>stretch</b> done"
	msg := testMessage(4).WithNotes(entry)

	if err := ch.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotCfg.Port != 2525 || !gotCfg.StartTLS {
		t.Errorf("config not passed through: %+v", gotCfg)
	}
	checks := []string{
		"To: me@example.com, coach@example.com",
		"Subject: [FIRM] ",
		"multipart/alternative",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Type: text/html; charset=UTF-8",
		"<strong>4 days</strong>",
		"evening: stretch done",
	}
	for _, want := range checks {
		if !strings.Contains(gotData, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(gotData, "<b>") {
		t.Error("note markup should be stripped")
	}

	deliverFunc = func(ctx context.Context, cfg EmailConfig, data []byte) error {
		return errors.New("connection refused")
	}
	if err := ch.Send(context.Background(), msg); err == nil {
		t.Error("expected delivery error to propagate")
	}
}

func TestRenderEmail_SanitizesHTML(t *testing.T) {
	msg := testMessage(0)
	msg.Body = "Click <script>alert(1)</script> **now**"

	rendered, err := renderEmail(msg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(rendered.HTML, "<script>") {
		t.Errorf("script survived sanitizing: %s", rendered.HTML)
	}
	if !strings.Contains(rendered.HTML, "<strong>now</strong>") {
		t.Errorf("expected markdown emphasis rendered, got %s", rendered.HTML)
	}
	if strings.Contains(rendered.Text, "**") {
		t.Errorf("plain text should not carry markdown: %s", rendered.Text)
	}
}

func TestSplitRecipients(t *testing.T) {
	got := splitRecipients(" a@example.com , ,b@example.com")
	if len(got) != 2 || got[0] != "a@example.com" || got[1] != "b@example.com" {
		t.Errorf("unexpected recipients: %v", got)
	}
	if splitRecipients("") != nil {
		t.Error("expected nil for empty input")
	}
}
