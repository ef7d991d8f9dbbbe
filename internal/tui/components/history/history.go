package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
)

type Item struct {
	Entry models.DailyEntry
}

func (i Item) Title() string {
	done := i.Entry.CompletedSessions()
	bar := strings.Repeat("●", done) + strings.Repeat("○", models.SessionCount-done)
	return fmt.Sprintf("%s  %s  %d%%", i.Entry.Date, bar, progress.CompletionPercentage(i.Entry))
}

func (i Item) Description() string {
	var parts []string
	if i.Entry.Focus != nil {
		parts = append(parts, fmt.Sprintf("focus %d", *i.Entry.Focus))
	}
	if i.Entry.Energy != nil {
		parts = append(parts, fmt.Sprintf("energy %d", *i.Entry.Energy))
	}
	if i.Entry.JobApplications > 0 {
		parts = append(parts, fmt.Sprintf("%d applications", i.Entry.JobApplications))
	}
	if i.Entry.StudyHours > 0 {
		parts = append(parts, fmt.Sprintf("%.1fh study", i.Entry.StudyHours))
	}
	if i.Entry.Gym {
		parts = append(parts, "gym")
	}
	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Entry.Date }

type Model struct {
	list list.Model
}

// New lists entries newest first
func New(entries []models.DailyEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m *Model) SetEntries(entries []models.DailyEntry) {
	m.list.SetItems(toItems(entries))
}

func toItems(entries []models.DailyEntry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		items = append(items, Item{Entry: entries[i]})
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No check-ins yet.\n  Press 'c' on the Today tab to record one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
