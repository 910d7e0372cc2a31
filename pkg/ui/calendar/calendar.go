// Package calendar renders a month grid as a block of styled text.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	cal "tableflip.dev/eduhub/pkg/calendar"
)

// Options controls the styling of the rendered calendar.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	DayStyle      lipgloss.Style
	OutsideStyle  lipgloss.Style
	EventStyle    lipgloss.Style
	MoreStyle     lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	// CellWidth is the printable width of one day column.
	CellWidth int
	ShowTitle bool
}

// DefaultOptions returns the styling used for grid rendering.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		DayStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		OutsideStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		EventStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		MoreStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true).Bold(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		CellWidth:     12,
		ShowTitle:     true,
	}
}

// Render draws the six week rows of g. Each cell holds the day number, the
// inline event titles and a "+N more" line when events overflow.
func Render(g cal.Grid, today, selected cal.Date, opts Options) string {
	width := opts.CellWidth
	if width < 4 {
		width = 4
	}

	var lines []string
	if opts.ShowTitle {
		title := fmt.Sprintf("%s %d", g.Month.Month, g.Month.Year)
		lines = append(lines, opts.TitleStyle.Render(title))
	}

	header := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		header = append(header, opts.HeaderStyle.Width(width).Render(d.String()[:3]))
	}
	lines = append(lines, strings.Join(header, " "))

	for _, week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderCell(c, c.Date == today, c.Date == selected, width, opts))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(cells)...))
	}
	return strings.Join(lines, "\n")
}

func joinWithGap(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

// Every cell has the same height so rows line up.
func renderCell(c cal.Cell, isToday, isSelected bool, width int, opts Options) string {
	dayStyle := opts.DayStyle
	if c.Outside {
		dayStyle = opts.OutsideStyle
	}
	if isToday {
		dayStyle = dayStyle.Inherit(opts.TodayStyle)
	}
	if isSelected {
		dayStyle = dayStyle.Inherit(opts.SelectedStyle)
	}

	rows := make([]string, 0, cal.MaxInline+2)
	rows = append(rows, dayStyle.Width(width).Render(fmt.Sprintf("%2d", c.Date.Day)))
	for _, e := range c.Inline() {
		rows = append(rows, opts.EventStyle.Width(width).Render(Clip(e.Title, width)))
	}
	for len(rows) < cal.MaxInline+1 {
		rows = append(rows, strings.Repeat(" ", width))
	}
	more := ""
	if n := c.Overflow(); n > 0 {
		more = Clip(fmt.Sprintf("+%d more", n), width)
	}
	rows = append(rows, opts.MoreStyle.Width(width).Render(more))
	return strings.Join(rows, "\n")
}

// Clip shortens s to width printable cells, marking the cut with an ellipsis.
func Clip(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…")
}
