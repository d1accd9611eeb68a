// Package display renders habit and event listings for the terminal.
// It is pure formatting: the commands pass in data, nothing here touches
// the store.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkeep/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Header renders a section heading.
func Header(s string) string {
	return headerStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Status renders an event status in its color.
func Status(s models.EventStatus) string {
	switch s {
	case models.StatusDone:
		return doneStyle.Render(s.String())
	case models.StatusFailed:
		return failedStyle.Render(s.String())
	}
	return pendingStyle.Render(s.String())
}

// Table renders rows under a styled header with column-aligned cells.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pad right-pads styled text to the target display width.
func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// HabitRow is the common habit listing row: id prefix, name, enabled flag,
// schedule, cached streak and category name.
func HabitRow(h models.Habit, category string) []string {
	enabled := "yes"
	if !h.Enabled {
		enabled = "no"
	}
	return []string{ShortID(h.ID), h.Name, enabled, h.ScheduleText(), fmt.Sprintf("%d", h.LatestStreak), category}
}

// EventRow is the common event listing row.
func EventRow(e models.HabitEvent) []string {
	return []string{ShortID(e.ID), Status(e.Status), fmt.Sprintf("%d", e.Quota), e.Solved, models.WeekdayAbbr(e.Weekday)}
}

// ShortID shows the first uuid group; every command accepts the full id.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
