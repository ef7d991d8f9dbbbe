package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growthdash/internal/progress"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateProgress:
		content = m.viewProgress()
	case StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case StateCheckin:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) || (m.state == StateCheckin && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		return labelStyle.Width(0).Render(m.status)
	}
	return ""
}

func (m Model) viewToday() string {
	if !m.loaded {
		return docStyle.Render("Loading...")
	}
	snap := m.overview.Snapshot

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		valueStyle.Render(m.overview.Date), "  ", TierBadge(snap.SeverityTier))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		row("Today", m.todayBar.ViewAs(percent(snap.TodayCompletion))),
		row("Streak", fmt.Sprintf("%d days", snap.CurrentStreak)),
		row("Missed", fmt.Sprintf("%d days", snap.MissedDays)),
		"",
		m.todayModel.View(),
	))
}

func (m Model) viewProgress() string {
	if !m.loaded {
		return docStyle.Render("Loading...")
	}
	snap := m.overview.Snapshot

	streaks := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("Current", fmt.Sprintf("%d days", snap.CurrentStreak)),
		row("Longest", fmt.Sprintf("%d days", snap.LongestStreak)),
		row("Active days", fmt.Sprintf("%d", snap.TotalActiveDays)),
		row("Next", milestoneLabel(snap.NextMilestone)),
		row("Tier", TierBadge(snap.SeverityTier)),
	))

	sprint := fmt.Sprintf("day %d of %d", snap.SprintDay, snap.SprintLengthDays)
	if snap.SprintLengthDays == 0 {
		sprint = "no sprint set"
	}
	rates := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("Week", m.windowBar.ViewAs(percent(snap.WeeklyPercentage))),
		row("Month", m.windowBar.ViewAs(percent(snap.MonthlyPercentage))),
		row("Year", m.windowBar.ViewAs(percent(snap.YearlyPercentage))),
		row("Sprint", m.sprintBar.ViewAs(percent(snap.GoalProgress))),
		row("", sprint),
	))

	week := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("Focus", average(snap.WeeklyRatings.Focus)),
		row("Energy", average(snap.WeeklyRatings.Energy)),
		row("Health", average(snap.WeeklyRatings.Health)),
		row("Emotional", average(snap.WeeklyRatings.EmotionalState)),
		row("Applications", fmt.Sprintf("%d", snap.WeeklyCounters.JobApplications)),
		row("Study", fmt.Sprintf("%.1fh", snap.WeeklyCounters.StudyHours)),
		row("Gym", fmt.Sprintf("%d days", snap.WeeklyCounters.GymDays)),
	))

	top := lipgloss.JoinHorizontal(lipgloss.Top, streaks, " ", rates, " ", week)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		top,
		"",
		RenderHeatmap(m.overview.Heatmap),
		"",
		RenderTrend(m.overview.Trend),
	))
}

// RenderTrend draws one bar per week, oldest first
func RenderTrend(weeks []progress.WeekBucket) string {
	if len(weeks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range weeks {
		filled := w.Percentage / 5
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Render(strings.Repeat("█", filled))
		fmt.Fprintf(&b, "%s  %s %3d%%  %d perfect\n", w.Start, bar+strings.Repeat(" ", 20-filled), w.Percentage, w.PerfectDays)
	}
	return strings.TrimRight(b.String(), "\n")
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func percent(v int) float64 {
	return float64(v) / 100
}

func average(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func milestoneLabel(next int) string {
	if next == 0 {
		return "all reached"
	}
	return fmt.Sprintf("%d days", next)
}
