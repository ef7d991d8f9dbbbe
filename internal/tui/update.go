package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help
		contentHeight := msg.Height - 6
		m.todayModel.SetSize(msg.Width-4, sessionRows)
		m.historyModel.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case overviewMsg:
		m.err = msg.err
		if msg.err == nil {
			m.overview = msg.overview
			m.loaded = true
			m.todayModel.SetEntry(msg.overview.Today, msg.overview.Settings)
			m.historyModel.SetEntries(msg.overview.History)
		}
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			logger.Warn("check-in failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		return m, m.loadOverview()

	case today.ToggleSessionMsg:
		in := journal.SessionInput{Session: msg.Session, Done: msg.Done, Source: constants.SourceTUI}
		verb := "completed"
		if !msg.Done {
			verb = "reopened"
		}
		return m, m.record(in, fmt.Sprintf("%s %s", msg.Session, verb))

	case today.CheckinMsg:
		m.checkinForm = NewCheckinFormModel(m.overview.Today, msg.Session)
		m.form = NewCheckinForm(m.checkinForm)
		m.previousState = m.state
		m.state = StateCheckin
		return m, m.form.Init()
	}

	if m.state == StateCheckin {
		return m.updateCheckin(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.loadOverview()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	}
	return m, cmd
}

// updateCheckin drives the embedded huh form until it completes or is aborted
func (m Model) updateCheckin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		in, err := m.checkinForm.ToInput(constants.SourceTUI)
		if err != nil {
			m.err = err
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.record(in, fmt.Sprintf("%s checked in", in.Session)))
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}
