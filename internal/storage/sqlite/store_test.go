package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func intPtr(v int) *int { return &v }

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if !reflect.DeepEqual(settings, models.DefaultSettings()) {
		t.Errorf("settings = %+v, want defaults %+v", settings, models.DefaultSettings())
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("first Init() error: %v", err)
	}
	ctx := context.Background()
	s, _ := first.GetSettings(ctx)
	s.Timezone = "Europe/Paris"
	if err := first.SaveSettings(ctx, s); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init() error: %v", err)
	}
	defer second.Close()

	got, err := second.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Timezone != "Europe/Paris" {
		t.Errorf("re-init overwrote settings: timezone = %q", got.Timezone)
	}
	status, err := second.MigrationStatus()
	if err != nil || !status.UpToDate() {
		t.Errorf("MigrationStatus() = %+v, %v", status, err)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 7, 5, 0, 123, time.UTC)
	entry := models.DailyEntry{
		ID:              "entry-1",
		Date:            "2024-03-01",
		Sessions:        [models.SessionCount]bool{true, false, true, false},
		Focus:           intPtr(7),
		Health:          intPtr(3),
		Burnout:         models.BurnoutHigh,
		AngerFrequency:  models.AngerNone,
		MoodSwings:      models.MoodSwingsMild,
		MoneyStress:     models.MoneyStressModerate,
		JobApplications: 4,
		StudyHours:      1.25,
		Gym:             true,
		Notes:           [models.SessionCount]string{"woke early", "", "long walk", ""},
		Source:          constants.SourceCLI,
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	if err := store.UpsertEntry(ctx, entry); err != nil {
		t.Fatalf("UpsertEntry() error: %v", err)
	}

	got, err := store.GetEntry(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("GetEntry() error: %v", err)
	}
	if !reflect.DeepEqual(got, entry) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, entry)
	}
}

func TestUpsertKeepsIdentityAndCreatedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC)
	first := models.DailyEntry{ID: "original", Date: "2024-03-02", CreatedAt: created, UpdatedAt: created}
	first.Sessions[models.SessionMorning] = true
	if err := store.UpsertEntry(ctx, first); err != nil {
		t.Fatal(err)
	}

	updated := created.Add(5 * time.Hour)
	second := models.DailyEntry{ID: "replacement", Date: "2024-03-02", CreatedAt: updated, UpdatedAt: updated}
	second.Sessions[models.SessionMorning] = true
	second.Sessions[models.SessionMidday] = true
	if err := store.UpsertEntry(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetEntry(ctx, "2024-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "original" || !got.CreatedAt.Equal(created) {
		t.Errorf("identity changed on update: id=%s created=%v", got.ID, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(updated) || got.CompletedSessions() != 2 {
		t.Errorf("update not applied: %+v", got)
	}

	entries, err := store.GetEntries(ctx, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single row per date, got %d", len(entries))
	}
}

func TestGetEntryNotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetEntry(context.Background(), "1999-01-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}
}

func TestGetEntriesRange(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, date := range []string{"2024-01-03", "2024-01-01", "2024-01-05", "2024-01-02"} {
		e := models.DailyEntry{ID: string(rune('a' + i)), Date: date, CreatedAt: now, UpdatedAt: now}
		if err := store.UpsertEntry(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		start, end string
		want       []string
	}{
		{"", "", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"}},
		{"2024-01-02", "", []string{"2024-01-02", "2024-01-03", "2024-01-05"}},
		{"", "2024-01-02", []string{"2024-01-01", "2024-01-02"}},
		{"2024-01-03", "2024-01-04", []string{"2024-01-03"}},
		{"2024-02-01", "2024-02-28", nil},
	}
	for _, tt := range tests {
		entries, err := store.GetEntries(ctx, tt.start, tt.end)
		if err != nil {
			t.Fatalf("GetEntries(%q, %q) error: %v", tt.start, tt.end, err)
		}
		var dates []string
		for _, e := range entries {
			dates = append(dates, e.Date)
		}
		if !reflect.DeepEqual(dates, tt.want) {
			t.Errorf("GetEntries(%q, %q) = %v, want %v", tt.start, tt.end, dates, tt.want)
		}
	}
}

func TestNotificationLedger(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	has, err := store.HasNotification(ctx, "2024-01-01", "accountability", "push")
	if err != nil || has {
		t.Fatalf("HasNotification() on empty ledger = %v, %v", has, err)
	}

	rec := models.NotificationRecord{
		ID: "n1", Date: "2024-01-01", Kind: "accountability", Channel: "push",
		SentAt: time.Date(2024, 1, 1, 21, 30, 0, 0, time.UTC),
	}
	if err := store.RecordNotification(ctx, rec); err != nil {
		t.Fatalf("RecordNotification() error: %v", err)
	}
	// duplicate rows are ignored
	dup := rec
	dup.ID = "n2"
	if err := store.RecordNotification(ctx, dup); err != nil {
		t.Fatalf("duplicate RecordNotification() error: %v", err)
	}

	has, err = store.HasNotification(ctx, "2024-01-01", "accountability", "push")
	if err != nil || !has {
		t.Errorf("HasNotification() after record = %v, %v", has, err)
	}
	has, _ = store.HasNotification(ctx, "2024-01-01", "accountability", "email")
	if has {
		t.Error("ledger should be keyed by channel")
	}

	records, err := store.GetNotifications(ctx, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "n1" || !records[0].SentAt.Equal(rec.SentAt) {
		t.Errorf("GetNotifications() = %+v", records)
	}
}
