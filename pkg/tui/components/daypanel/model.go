// Package daypanel renders the framed event list for the selected day.
package daypanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/tui/theme"
)

// Model holds the selected day and the events on it.
type Model struct {
	day        calendar.Date
	events     []*calendar.Event
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetDay replaces the day and its events.
func (m *Model) SetDay(day calendar.Date, events []*calendar.Event) {
	m.day = day
	m.events = events
}

// SetDayFromGrid picks day's events out of g. Days outside g leave the
// panel empty.
func (m *Model) SetDayFromGrid(g calendar.Grid, day calendar.Date) {
	m.SetDay(day, nil)
	for _, c := range g.Cells {
		if c.Date == day {
			m.events = c.Events
			return
		}
	}
}

// View returns the rendered panel and its height in lines.
func (m Model) View() (string, int) {
	content := []string{m.titleStyle.Render(fmt.Sprintf("%s %s", m.day.Weekday().String()[:3], m.day))}
	if len(m.events) == 0 {
		content = append(content, m.bodyStyle.Render("no events"))
	}
	for _, e := range m.events {
		line := "• " + e.Title
		if e.Subject != "" {
			line += " (" + e.Subject + ")"
		}
		content = append(content, m.bodyStyle.Render(line))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
