package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/storage/sqlite"
	"github.com/julianstephens/growthdash/internal/tui/components/today"
)

func setupModel(t *testing.T) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	m := NewModel(journal.NewService(store), time.Now)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), store
}

// run executes cmd and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, next := m.Update(cmd())
	return updated.(Model), next
}

func TestModel_LoadsOverview(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = run(t, m, m.Init())

	if !m.loaded || m.err != nil {
		t.Fatalf("overview not loaded: %v", m.err)
	}
	view := m.View()
	if !strings.Contains(view, "GENTLE") {
		t.Errorf("expected the tier badge in the view:\n%s", view)
	}
	for _, s := range models.AllSessions {
		if !strings.Contains(view, s.String()) {
			t.Errorf("view missing session %s", s)
		}
	}
}

func TestModel_ToggleSessionRecords(t *testing.T) {
	m, store := setupModel(t)
	m, _ = run(t, m, m.Init())

	updated, cmd := m.Update(today.ToggleSessionMsg{Session: models.SessionEvening, Done: true})
	m = updated.(Model)
	m, cmd = run(t, m, cmd) // recordedMsg
	if m.err != nil {
		t.Fatalf("record failed: %v", m.err)
	}
	m, _ = run(t, m, cmd) // overviewMsg

	if !m.overview.Today.Sessions[models.SessionEvening] {
		t.Error("evening session not marked in the refreshed overview")
	}
	if m.overview.Snapshot.TodayCompletion != 25 {
		t.Errorf("today completion = %d, want 25", m.overview.Snapshot.TodayCompletion)
	}
	if !strings.Contains(m.status, "evening completed") {
		t.Errorf("status = %q", m.status)
	}

	entry, err := store.GetEntry(context.Background(), m.overview.Date)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Source != constants.SourceTUI {
		t.Errorf("source = %q, want %q", entry.Source, constants.SourceTUI)
	}
}

func TestModel_TabsCycle(t *testing.T) {
	m, _ := setupModel(t)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	want := []SessionState{StateProgress, StateHistory, StateToday}
	for _, w := range want {
		updated, _ := m.Update(tab)
		m = updated.(Model)
		if m.state != w {
			t.Fatalf("state = %d, want %d", m.state, w)
		}
	}
}

func TestModel_CheckinOpensAndEscCloses(t *testing.T) {
	m, _ := setupModel(t)
	m, _ = run(t, m, m.Init())

	updated, _ := m.Update(today.CheckinMsg{Session: models.SessionMidday})
	m = updated.(Model)
	if m.state != StateCheckin || m.checkinForm.Session != models.SessionMidday {
		t.Fatalf("check-in form not opened: state=%d", m.state)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.state != StateToday {
		t.Errorf("esc should return to the today tab, got %d", m.state)
	}
}

func TestCheckinFormModel_ToInput(t *testing.T) {
	tests := []struct {
		name    string
		form    CheckinFormModel
		wantErr bool
		check   func(t *testing.T, in journal.SessionInput)
	}{
		{
			name: "blank ratings are skipped",
			form: CheckinFormModel{Session: models.SessionMorning, Done: true, Note: "  woke early "},
			check: func(t *testing.T, in journal.SessionInput) {
				if in.Details.Focus != nil || in.Details.JobApplications != nil {
					t.Error("blank fields should stay nil")
				}
				if in.Note == nil || *in.Note != "woke early" {
					t.Errorf("note = %v", in.Note)
				}
			},
		},
		{
			name: "values parsed",
			form: CheckinFormModel{Session: models.SessionBedtime, Done: true, Focus: "7", JobApplications: "3", StudyHours: "1.5", Gym: true, Burnout: models.BurnoutLow},
			check: func(t *testing.T, in journal.SessionInput) {
				if in.Details.Focus == nil || *in.Details.Focus != 7 {
					t.Errorf("focus = %v", in.Details.Focus)
				}
				if *in.Details.JobApplications != 3 || *in.Details.StudyHours != 1.5 || !*in.Details.Gym {
					t.Errorf("counters = %+v", in.Details)
				}
				if in.Details.Burnout != models.BurnoutLow {
					t.Errorf("burnout = %q", in.Details.Burnout)
				}
			},
		},
		{name: "rating out of range", form: CheckinFormModel{Energy: "11"}, wantErr: true},
		{name: "rating not a number", form: CheckinFormModel{Health: "great"}, wantErr: true},
		{name: "bad hours", form: CheckinFormModel{StudyHours: "lots"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.form.ToInput(constants.SourceInteractive)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && in.Source != constants.SourceInteractive {
				t.Errorf("source = %q", in.Source)
			}
			if tt.check != nil && err == nil {
				tt.check(t, in)
			}
		})
	}
}

func TestNewCheckinFormModel_Prefills(t *testing.T) {
	focus := 6
	entry := models.DailyEntry{Focus: &focus, JobApplications: 2, StudyHours: 0.5}
	entry.Notes[models.SessionEvening] = "stretch"

	fm := NewCheckinFormModel(entry, models.SessionEvening)
	if fm.Focus != "6" || fm.JobApplications != "2" || fm.StudyHours != "0.5" || fm.Note != "stretch" || !fm.Done {
		t.Errorf("unexpected prefill: %+v", fm)
	}
	if fm.Energy != "" {
		t.Errorf("absent rating should be blank, got %q", fm.Energy)
	}

	// the user deletes the prefilled note before submitting
	fm.Note = "  "
	in, err := fm.ToInput(constants.SourceTUI)
	if err != nil {
		t.Fatal(err)
	}
	if in.Note == nil || *in.Note != "" {
		t.Errorf("cleared note should be submitted as empty, got %v", in.Note)
	}
}

func TestRenderHeatmap(t *testing.T) {
	if got := RenderHeatmap(nil); got != "No history yet." {
		t.Errorf("empty heatmap = %q", got)
	}

	// 2025-03-03 is a Monday
	cells := []progress.HeatmapCell{
		{Date: "2025-03-03", Completion: 100, HasEntry: true},
		{Date: "2025-03-04", Completion: 50, HasEntry: true},
		{Date: "2025-03-05"},
	}
	out := RenderHeatmap(cells)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 7 weekday rows, a blank line and a legend, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Mon") || strings.Count(lines[0], "■") != 1 {
		t.Errorf("monday row = %q", lines[0])
	}
	if strings.Count(lines[3], "■") != 0 {
		t.Errorf("thursday should be empty, got %q", lines[3])
	}
}

func TestShadeFor(t *testing.T) {
	tests := []struct {
		cell progress.HeatmapCell
		want int
	}{
		{progress.HeatmapCell{}, 0},
		{progress.HeatmapCell{HasEntry: true, Completion: 0}, 0},
		{progress.HeatmapCell{HasEntry: true, Completion: 25}, 1},
		{progress.HeatmapCell{HasEntry: true, Completion: 75}, 3},
		{progress.HeatmapCell{HasEntry: true, Completion: 100}, 4},
	}
	for _, tt := range tests {
		if got := shadeFor(tt.cell); got != heatmapShades[tt.want] {
			t.Errorf("shadeFor(%+v) = %v, want %v", tt.cell, got, heatmapShades[tt.want])
		}
	}
}
