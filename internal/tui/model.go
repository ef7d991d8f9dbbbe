package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/tui/components/history"
	"github.com/julianstephens/growthdash/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateProgress
	StateHistory
	StateCheckin
)

var tabTitles = []string{"Today", "Progress", "History"}

const (
	heatmapDays = 12 * 7
	trendWeeks  = 8
	barWidth    = 40
	sessionRows = 5
)

// overviewMsg carries a freshly loaded dashboard
type overviewMsg struct {
	overview journal.Overview
	err      error
}

// recordedMsg reports the result of a journal write
type recordedMsg struct {
	status string
	err    error
}

type Model struct {
	journal       *journal.Service
	nowFunc       func() time.Time
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	historyModel  history.Model
	todayBar      bprogress.Model
	windowBar     bprogress.Model
	sprintBar     bprogress.Model
	form          *huh.Form
	checkinForm   *CheckinFormModel
	overview      journal.Overview
	loaded        bool
	err           error
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *journal.Service, nowFunc func() time.Time) Model {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return Model{
		journal:      svc,
		nowFunc:      nowFunc,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		todayModel:   today.New(0, 0),
		historyModel: history.New(nil, 0, 0),
		todayBar:     bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(barWidth)),
		windowBar:    bprogress.New(bprogress.WithSolidFill("34"), bprogress.WithWidth(barWidth)),
		sprintBar:    bprogress.New(bprogress.WithScaledGradient("#5A56E0", "#EE6FF8"), bprogress.WithWidth(barWidth)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadOverview()
}

func (m Model) loadOverview() tea.Cmd {
	svc, now := m.journal, m.nowFunc()
	return func() tea.Msg {
		o, err := svc.Overview(context.Background(), now, heatmapDays, trendWeeks)
		return overviewMsg{overview: o, err: err}
	}
}

func (m Model) record(in journal.SessionInput, status string) tea.Cmd {
	svc, now := m.journal, m.nowFunc()
	return func() tea.Msg {
		_, err := svc.RecordSession(context.Background(), in, now)
		return recordedMsg{status: status, err: err}
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.Checkin, m.keys.Toggle)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Checkin, m.keys.Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}
