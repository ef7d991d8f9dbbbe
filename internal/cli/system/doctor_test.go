package system

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	gokeyring.MockInit()
	ctx, store, out := setupTestContext(t)
	addEntry(t, store, "2025-03-09", 4)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Database reachable: OK", "✓ Schema version: OK", "✓ Progress engine: OK", "⚠ Backups present: WARNING"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_UninitializedDB(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := cli.NewContext(store)
	var out strings.Builder
	ctx.Stdout = &out

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail without a database")
	}
	if !strings.Contains(out.String(), "⊘ Schema version: SKIPPED") {
		t.Errorf("expected dependent checks to be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_InvalidEntry(t *testing.T) {
	gokeyring.MockInit()
	ctx, store, out := setupTestContext(t)

	bad := 42
	entry := models.DailyEntry{ID: "bad", Date: "2025-03-09", Focus: &bad, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	if err := store.UpsertEntry(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to flag the invalid entry")
	}
	if !strings.Contains(out.String(), "❌ Entry integrity: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCheckChannels(t *testing.T) {
	gokeyring.MockInit()
	ctx, store, _ := setupTestContext(t)

	updateSettings(t, store, func(s *models.Settings) { s.Channels = []string{"push", "email"} })
	if err := checkChannels(ctx); err == nil {
		t.Error("expected email without SMTP host to be reported")
	}

	updateSettings(t, store, func(s *models.Settings) { s.NotificationsEnabled = false })
	if err := checkChannels(ctx); err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("expected disabled warning, got %v", err)
	}
}
