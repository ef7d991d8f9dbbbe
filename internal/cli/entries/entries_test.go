package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s.Timezone = "UTC"
	if err := store.SaveSettings(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Stdout = &out
	ctx.NowFunc = func() time.Time { return fixedNow }
	return ctx, store, &out
}

func seedPerfectDays(t *testing.T, store *sqlite.Store, dates ...string) {
	t.Helper()
	for _, d := range dates {
		e := models.DailyEntry{ID: "e-" + d, Date: d, Sessions: [models.SessionCount]bool{true, true, true, true}, CreatedAt: fixedNow, UpdatedAt: fixedNow}
		if err := store.UpsertEntry(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCheckinCmd_Flags(t *testing.T) {
	ctx, store, out := setup(t)

	cmd := &CheckinCmd{Session: "morning", Note: ptr("meditated"), Focus: "8", Burnout: "Low", Apps: ptr(2), Gym: ptr(true)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("checkin failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ morning marked done for 2025-03-10") || !strings.Contains(out.String(), "Today 25%") {
		t.Errorf("unexpected output: %q", out.String())
	}

	e, err := store.GetEntry(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Sessions[models.SessionMorning] || e.Notes[models.SessionMorning] != "meditated" {
		t.Errorf("session not recorded: %+v", e)
	}
	if e.Focus == nil || *e.Focus != 8 || e.Burnout != models.BurnoutLow || e.JobApplications != 2 || !e.Gym {
		t.Errorf("details not recorded: %+v", e)
	}
	if e.Source != constants.SourceCLI {
		t.Errorf("source = %q", e.Source)
	}

	// no --note keeps it, --note "" clears it
	if err := (&CheckinCmd{Session: "morning"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if e, _ = store.GetEntry(context.Background(), "2025-03-10"); e.Notes[models.SessionMorning] != "meditated" {
		t.Errorf("note dropped without --note: %q", e.Notes[models.SessionMorning])
	}
	if err := (&CheckinCmd{Session: "morning", Note: ptr("")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if e, _ = store.GetEntry(context.Background(), "2025-03-10"); e.Notes[models.SessionMorning] != "" {
		t.Errorf("note not cleared: %q", e.Notes[models.SessionMorning])
	}
}

func TestCheckinCmd_OutOfOrderAndUndo(t *testing.T) {
	ctx, store, _ := setup(t)

	if err := (&CheckinCmd{Session: "4"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&CheckinCmd{Session: "2"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&CheckinCmd{Session: "bedtime", Undo: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	e, err := store.GetEntry(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if e.Sessions != [models.SessionCount]bool{false, true, false, false} {
		t.Errorf("sessions = %v", e.Sessions)
	}
}

func TestCheckinCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  CheckinCmd
	}{
		{"unknown session", CheckinCmd{Session: "brunch"}},
		{"rating not a number", CheckinCmd{Session: "morning", Energy: "high"}},
		{"rating out of range", CheckinCmd{Session: "morning", Health: "0"}},
		{"bad enum", CheckinCmd{Session: "morning", MoodSwings: "Wild"}},
		{"negative counter", CheckinCmd{Session: "morning", Apps: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := setup(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCheckinCmd_Interactive(t *testing.T) {
	ctx, store, _ := setup(t)
	seed := models.DailyEntry{ID: "today", Date: "2025-03-10", CreatedAt: fixedNow, UpdatedAt: fixedNow}
	seed.Sessions[models.SessionMorning] = true
	if err := store.UpsertEntry(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = func(*huh.Form) error { return nil }

	if err := (&CheckinCmd{}).Run(ctx); err != nil {
		t.Fatalf("interactive checkin failed: %v", err)
	}
	e, err := store.GetEntry(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Sessions[models.SessionMidday] {
		t.Error("the form should default to the first open session")
	}
	if e.Source != constants.SourceInteractive {
		t.Errorf("source = %q", e.Source)
	}

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	if err := (&CheckinCmd{Interactive: true}).Run(ctx); !errors.Is(err, huh.ErrUserAborted) {
		t.Errorf("expected the abort to surface, got %v", err)
	}
}

func TestShowCmd(t *testing.T) {
	ctx, store, out := setup(t)

	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No check-ins recorded for 2025-03-10") {
		t.Errorf("unexpected output: %q", out.String())
	}

	seedPerfectDays(t, store, "2025-03-09")
	out.Reset()
	if err := (&ShowCmd{Date: "2025-03-09"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "2025-03-09  (100% complete)") || strings.Count(out.String(), "✓") != 4 {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&ShowCmd{Date: "March 9"}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestStatsCmd_JSON(t *testing.T) {
	ctx, store, out := setup(t)
	seedPerfectDays(t, store, "2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06")

	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var snap progress.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	// 07, 08, 09 and today are missed
	if snap.MissedDays != 4 || snap.SeverityTier != progress.TierFirm {
		t.Errorf("missed = %d tier = %s", snap.MissedDays, snap.SeverityTier)
	}
	if snap.LongestStreak != 6 || snap.CurrentStreak != 0 {
		t.Errorf("streaks = %d/%d", snap.CurrentStreak, snap.LongestStreak)
	}
}

func TestStatsCmd_Text(t *testing.T) {
	ctx, store, out := setup(t)
	seedPerfectDays(t, store, "2025-03-09", "2025-03-10")

	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"GENTLE", "Current streak:   2 days", "Day:              2 of 90"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHeatmapCmd(t *testing.T) {
	ctx, store, out := setup(t)
	seedPerfectDays(t, store, "2025-03-08", "2025-03-09")

	if err := (&HeatmapCmd{Weeks: 4, Trend: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Mon") || !strings.Contains(out.String(), "Weekly completion:") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := (&HeatmapCmd{Weeks: 0}).Run(ctx); err == nil {
		t.Error("expected an error for zero weeks")
	}
	if err := (&HeatmapCmd{Weeks: 1 << 60, Trend: 2}).Run(ctx); err == nil {
		t.Error("expected an error for an oversized heatmap")
	}
	if err := (&HeatmapCmd{Weeks: 4, Trend: 1 << 60}).Run(ctx); err == nil {
		t.Error("expected an error for an oversized trend")
	}
}

func TestFirstOpenSession(t *testing.T) {
	var e models.DailyEntry
	if got := firstOpenSession(e); got != models.SessionMorning {
		t.Errorf("empty day = %s", got)
	}
	e.Sessions = [models.SessionCount]bool{true, true, true, true}
	if got := firstOpenSession(e); got != models.SessionBedtime {
		t.Errorf("full day = %s", got)
	}
}

func ptr[T any](v T) *T { return &v }
