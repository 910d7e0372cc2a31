// Package help is the scrollable key binding overlay for the browser.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/eduhub/pkg/tui/theme"
)

// Binding documents one group of keys.
type Binding struct {
	Keys        string
	Description string
}

// Model renders bindings inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	bindings []Binding
	width    int
	height   int

	frame lipgloss.Style
	title lipgloss.Style
	keys  lipgloss.Style
	body  lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(bindings []Binding, th theme.PanelTheme, width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		bindings: bindings,
		frame:    th.Frame,
		title:    th.Title,
		keys:     th.Title,
		body:     th.Body,
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

func (m *Model) View() string {
	return m.frame.Width(m.width).Render(m.viewport.View())
}

// SetSize configures the overlay dimensions and re-renders the bindings.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 6
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(min(innerHeight, len(m.bindings)+2))
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(0)
}

func (m *Model) render() string {
	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(b.Keys))
	}
	lines := []string{m.title.Render("Keys"), ""}
	for _, b := range m.bindings {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Keys))
		lines = append(lines, m.keys.Render(b.Keys)+pad+"  "+m.body.Render(b.Description))
	}
	return strings.Join(lines, "\n")
}
