package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growthdash/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	sessionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(10)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// ToggleSessionMsg asks the parent to flip a session's completion
type ToggleSessionMsg struct {
	Session models.Session
	Done    bool
}

// CheckinMsg asks the parent to open the check-in form for a session
type CheckinMsg struct {
	Session models.Session
}

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Checkin key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x")),
		Checkin: key.NewBinding(key.WithKeys("c", "enter")),
	}
}

// Model lists today's four sessions with their reminder times
type Model struct {
	viewport viewport.Model
	keys     KeyMap
	Entry    models.DailyEntry
	Settings models.Settings
	cursor   models.Session
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > models.SessionMorning {
				m.cursor--
				m.Render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < models.SessionBedtime {
				m.cursor++
				m.Render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			s, done := m.cursor, !m.Entry.Sessions[m.cursor]
			return m, func() tea.Msg { return ToggleSessionMsg{Session: s, Done: done} }
		case key.Matches(msg, m.keys.Checkin):
			s := m.cursor
			return m, func() tea.Msg { return CheckinMsg{Session: s} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

// Cursor is the highlighted session
func (m Model) Cursor() models.Session {
	return m.cursor
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEntry(entry models.DailyEntry, settings models.Settings) {
	m.Entry = entry
	m.Settings = settings
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, s := range models.AllSessions {
		pointer := "  "
		if s == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		mark := "○"
		if m.Entry.Sessions[s] {
			mark = doneStyle.Render("✓")
		}
		line := fmt.Sprintf("%s%s %s %s", pointer, mark,
			timeStyle.Render(m.Settings.SessionTime(s)),
			sessionStyle.Render(s.String()),
		)
		if note := strings.TrimSpace(m.Entry.Notes[s]); note != "" {
			line += " " + noteStyle.Render(note)
		}
		b.WriteString(line + "\n")
	}
	m.viewport.SetContent(b.String())
}
