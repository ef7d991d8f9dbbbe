package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/growthdash/internal/accountability"
	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func testMessage(missed int) accountability.Message {
	snap := progress.Snapshot{
		AsOf:            "2024-03-10",
		TodayCompletion: 50,
		CurrentStreak:   0,
		MissedDays:      missed,
		SeverityTier:    progress.TierFor(missed),
		GoalProgress:    12,
	}
	return accountability.Compose(models.KindAccountability, snap, models.SessionMorning)
}

func serverPort(t *testing.T, url string) string {
	t.Helper()
	parts := strings.Split(url, ":")
	return parts[len(parts)-1]
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/growthdash/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	malformed := []struct {
		name    string
		content string
		errPart string
	}{
		{"two parts", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|testsecret123", "port"},
		{"port out of range", "99999|12345|testsecret123", "range"},
		{"bad pid", "8080|abc|testsecret123", "process ID"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil {
				t.Fatalf("expected error for %q", tt.content)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error mentioning %q, got: %v", tt.errPart, err)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "growthdash-tray"}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

func TestTrayChannel_Send(t *testing.T) {
	var got trayPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Growthdash-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tempDir := t.TempDir()
	oldUserConfigDirFunc := userConfigDirFunc
	oldFindProcessFunc := findProcessFunc
	defer func() {
		userConfigDirFunc = oldUserConfigDirFunc
		findProcessFunc = oldFindProcessFunc
	}()
	userConfigDirFunc = func() (string, error) { return tempDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "growthdash-tray"}, nil
	}

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lockfile := filepath.Join(trayDir, constants.NotifierLockfileName)
	write := func(secret string) {
		content := fmt.Sprintf("%s|4242|%s", serverPort(t, server.URL), secret)
		if err := os.WriteFile(lockfile, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("test-secret")
	ch := NewTrayChannel()
	msg := testMessage(8)
	if err := ch.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got.Text, "[BRUTAL]") {
		t.Errorf("expected brutal badge first, got %q", got.Text)
	}
	if !got.Urgent {
		t.Error("expected brutal push to be urgent")
	}
	if strings.Contains(got.Text, "**") {
		t.Errorf("push text should not carry markdown: %q", got.Text)
	}

	write("wrong-secret")
	err := ch.Send(context.Background(), msg)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 StatusError, got %v", err)
	}
}

func TestWebhookChannel_Send(t *testing.T) {
	var got webhookPayload
	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	if _, err := NewWebhookChannel("  "); err == nil {
		t.Error("expected error for empty url")
	}

	ch, err := NewWebhookChannel(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if err := ch.Send(context.Background(), testMessage(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Text, "[FIRM]") {
		t.Errorf("expected firm badge, got %q", got.Text)
	}
	if !strings.Contains(got.Text, "*3 days*") {
		t.Errorf("expected bold converted to single asterisks, got %q", got.Text)
	}

	fail = true
	err = ch.Send(context.Background(), testMessage(3))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError || statusErr.Channel != ChannelWebhook {
		t.Errorf("unexpected status error: %+v", statusErr)
	}
}

func TestTelegramChannel_Send(t *testing.T) {
	var (
		got      telegramPayload
		response = `{"ok":true}`
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	if _, err := NewTelegramChannel(TelegramConfig{ChatID: "1"}); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := NewTelegramChannel(TelegramConfig{Token: "TOKEN"}); err == nil {
		t.Error("expected error for missing chat id")
	}

	ch, err := NewTelegramChannel(TelegramConfig{Token: "TOKEN", ChatID: "42", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	if err := ch.Send(context.Background(), testMessage(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != "42" || got.ParseMode != "Markdown" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if !strings.Contains(got.Text, "[HARSH]") {
		t.Errorf("expected harsh badge, got %q", got.Text)
	}

	response = `{"ok":false,"description":"chat not found"}`
	err = ch.Send(context.Background(), testMessage(5))
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("expected rejection error, got %v", err)
	}

	bad, _ := NewTelegramChannel(TelegramConfig{Token: "OTHER", ChatID: "42", BaseURL: server.URL})
	err = bad.Send(context.Background(), testMessage(5))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 StatusError, got %v", err)
	}
}

func TestDiscordChannel_Send(t *testing.T) {
	var got discordPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ch, err := NewDiscordChannel(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	entry := models.DailyEntry{Date: "2024-03-10"}
	entry.Notes[models.SessionMorning] = "ran 5k"
	msg := testMessage(0).WithNotes(entry)

	if err := ch.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Color != accountability.Color(progress.TierGentle) {
		t.Errorf("expected gentle color, got %#x", embed.Color)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Name != "morning" || embed.Fields[0].Value != "ran 5k" {
		t.Errorf("unexpected fields: %+v", embed.Fields)
	}
	if embed.Footer == nil || embed.Footer.Text != msg.Summary() {
		t.Errorf("expected summary footer, got %+v", embed.Footer)
	}
}

// Every channel must show the same tier for the same missed-day count
func TestRenderers_TierConsistency(t *testing.T) {
	tierBadges := map[string]bool{}
	for _, tier := range progress.Tiers {
		tierBadges["["+accountability.Badge(tier)+"]"] = true
	}

	for missed := 0; missed <= 10; missed++ {
		for _, kind := range []models.NotificationKind{models.KindSessionReminder, models.KindAccountability} {
			snap := progress.Snapshot{AsOf: "2024-03-10", MissedDays: missed, TodayCompletion: 25}
			msg := accountability.Compose(kind, snap, models.SessionEvening)
			want := "[" + accountability.Badge(progress.TierFor(missed)) + "]"

			email, err := renderEmail(msg)
			if err != nil {
				t.Fatal(err)
			}
			rendered := map[string]string{
				ChannelPush:     renderPush(msg).Text,
				ChannelWebhook:  renderWebhook(msg).Text,
				ChannelTelegram: renderTelegram("1", msg).Text,
				ChannelDiscord:  renderDiscord(msg).Content,
				ChannelEmail:    email.Subject,
			}
			for channel, text := range rendered {
				if !strings.Contains(text, want) {
					t.Errorf("missed=%d kind=%s: %s missing %s in %q", missed, kind, channel, want, text)
				}
				for badge := range tierBadges {
					if badge != want && strings.Contains(text, badge) {
						t.Errorf("missed=%d kind=%s: %s also shows %s", missed, kind, channel, badge)
					}
				}
			}
			if !strings.Contains(email.HTML, accountability.Badge(progress.TierFor(missed))) {
				t.Errorf("missed=%d: email html missing badge", missed)
			}
			if renderDiscord(msg).Embeds[0].Color != accountability.Color(progress.TierFor(missed)) {
				t.Errorf("missed=%d: discord color does not match tier", missed)
			}
		}
	}
}

func TestBuildChannels(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Channels = []string{ChannelPush, ChannelEmail, ChannelWebhook, ChannelTelegram, ChannelDiscord, "carrier-pigeon"}
	settings.WebhookURL = "https://hooks.example.com/x"
	settings.DiscordWebhookURL = "https://discord.example.com/y"
	settings.TelegramChatID = "42"

	channels, errs := BuildChannels(settings, Secrets{TelegramToken: "tok"})

	var names []string
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	if strings.Join(names, ",") != "push,webhook,telegram,discord" {
		t.Errorf("unexpected channels: %v", names)
	}
	// email lacks host/recipient and the unknown channel is rejected
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}

	settings.NotificationsEnabled = false
	channels, errs = BuildChannels(settings, Secrets{})
	if len(channels) != 0 || len(errs) != 0 {
		t.Errorf("expected nothing when notifications are disabled, got %v %v", channels, errs)
	}
}
