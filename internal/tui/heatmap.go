package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/progress"
)

var weekdayLabels = [7]string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}

// RenderHeatmap lays cells out as a calendar: one column per week, Monday on top.
// Cells must be consecutive days, oldest first, as progress.Heatmap returns them.
func RenderHeatmap(cells []progress.HeatmapCell) string {
	if len(cells) == 0 {
		return "No history yet."
	}

	first, err := time.Parse(constants.DateFormat, cells[0].Date)
	if err != nil {
		return "Invalid heatmap data."
	}
	// Monday = 0
	offset := (int(first.Weekday()) + 6) % 7
	weeks := (offset + len(cells) + 6) / 7

	var rows [7]strings.Builder
	for d := 0; d < 7; d++ {
		rows[d].WriteString(labelStyle.Width(4).Render(weekdayLabels[d]))
	}
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			i := w*7 + d - offset
			if i < 0 || i >= len(cells) {
				rows[d].WriteString("  ")
				continue
			}
			rows[d].WriteString(heatmapCell(cells[i]) + " ")
		}
	}

	lines := make([]string, 0, 9)
	for d := range rows {
		lines = append(lines, strings.TrimRight(rows[d].String(), " "))
	}
	lines = append(lines, "", heatmapLegend())
	return strings.Join(lines, "\n")
}

func heatmapCell(c progress.HeatmapCell) string {
	return lipgloss.NewStyle().Foreground(shadeFor(c)).Render("■")
}

func shadeFor(c progress.HeatmapCell) lipgloss.Color {
	if !c.HasEntry {
		return heatmapShades[0]
	}
	// one shade per completed session
	idx := c.Completion * (len(heatmapShades) - 1) / 100
	if idx < 0 {
		idx = 0
	}
	if idx >= len(heatmapShades) {
		idx = len(heatmapShades) - 1
	}
	return heatmapShades[idx]
}

func heatmapLegend() string {
	var b strings.Builder
	b.WriteString("Less ")
	for _, shade := range heatmapShades {
		b.WriteString(lipgloss.NewStyle().Foreground(shade).Render("■"))
		b.WriteString(" ")
	}
	b.WriteString("More")
	return b.String()
}
