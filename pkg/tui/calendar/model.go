// Package calendar is the interactive month browser. It keeps the focus month
// as an explicit cursor and redraws whenever the Service reports a change.
package calendar

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/store"
	"tableflip.dev/eduhub/pkg/tui/components/daypanel"
	"tableflip.dev/eduhub/pkg/tui/components/help"
	"tableflip.dev/eduhub/pkg/tui/theme"
	uical "tableflip.dev/eduhub/pkg/ui/calendar"
)

// Source is the part of app.Service the browser reads.
type Source interface {
	MonthGrid(ctx context.Context, focus calendar.Date) (calendar.Grid, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
	Reload(ctx context.Context) error
}

const helpText = "←/p prev · →/n next · ↑/↓ week · t today · ? keys · q quit"

var bindings = []help.Binding{
	{Keys: "→/n/pgdown", Description: "next month"},
	{Keys: "←/p/pgup", Description: "previous month"},
	{Keys: "↓/j", Description: "same weekday next week"},
	{Keys: "↑/k", Description: "same weekday last week"},
	{Keys: "t", Description: "jump to today"},
	{Keys: "?", Description: "toggle this help"},
	{Keys: "q/esc", Description: "quit"},
}

// Model is the Bubble Tea model for the month browser.
type Model struct {
	ctx      context.Context
	src      Source
	theme    theme.Theme
	today    calendar.Date
	cursor   calendar.Cursor
	selected calendar.Date
	grid     calendar.Grid
	loaded   bool
	status   string
	err      error
	width    int
	help     *help.Model
	showHelp bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds a model focused on today's month.
func New(ctx context.Context, src Source, today calendar.Date, th theme.Theme) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:      ctx,
		src:      src,
		theme:    th,
		today:    today,
		cursor:   calendar.CursorAt(today),
		selected: today,
		help:     help.New(bindings, th.Panel, 48, 12),
	}
}

// Cursor exposes the focus month.
func (m Model) Cursor() calendar.Cursor { return m.cursor }

// Selected is the highlighted day.
func (m Model) Selected() calendar.Date { return m.selected }

type gridLoadedMsg struct {
	grid calendar.Grid
	err  error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

type reloadedMsg struct {
	err error
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadGrid(), startWatchCmd(m.ctx, m.src))
}

func (m Model) loadGrid() tea.Cmd {
	src, ctx, focus := m.src, m.ctx, m.cursor.Month()
	return func() tea.Msg {
		g, err := src.MonthGrid(ctx, focus)
		return gridLoadedMsg{grid: g, err: err}
	}
}

func startWatchCmd(parent context.Context, src Source) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := src.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m Model) reload() tea.Cmd {
	src, ctx := m.src, m.ctx
	return func() tea.Msg {
		return reloadedMsg{err: src.Reload(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.SetSize(min(msg.Width, 48), msg.Height-2)
	case gridLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		// Drop stale loads from months the user already left.
		if msg.grid.Month != m.cursor.Month() {
			break
		}
		m.err = nil
		m.grid = msg.grid
		m.loaded = true
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		if msg.event.Type == store.EventInvalidated || msg.event.Slot == store.SlotEvents {
			cmds = append(cmds, m.reload())
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case reloadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.status = "Calendar updated"
		cmds = append(cmds, m.loadGrid())
	case tea.KeyPressMsg:
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			case "ctrl+c":
				m.stopWatch()
				return m, tea.Quit
			default:
				cmds = append(cmds, m.help.Update(msg))
			}
			break
		}
		switch msg.String() {
		case "?":
			m.showHelp = true
		case "q", "esc", "ctrl+c":
			m.stopWatch()
			return m, tea.Quit
		case "right", "n", "pgdown":
			m.cursor = m.cursor.Next()
			m.selected = m.cursor.Month()
			cmds = append(cmds, m.loadGrid())
		case "left", "p", "pgup":
			m.cursor = m.cursor.Previous()
			m.selected = m.cursor.Month()
			cmds = append(cmds, m.loadGrid())
		case "t":
			m.cursor = calendar.CursorAt(m.today)
			m.selected = m.today
			cmds = append(cmds, m.loadGrid())
		case "down", "j":
			cmds = append(cmds, m.selectDay(m.selected.AddDays(7)))
		case "up", "k":
			cmds = append(cmds, m.selectDay(m.selected.AddDays(-7)))
		}
	}
	return m, tea.Batch(cmds...)
}

// selectDay moves the highlight, following it into a neighbouring month.
func (m *Model) selectDay(d calendar.Date) tea.Cmd {
	m.selected = d
	if d.FirstOfMonth() == m.cursor.Month() {
		return nil
	}
	m.cursor = calendar.CursorAt(d)
	return m.loadGrid()
}

func (m Model) View() string {
	var b strings.Builder
	if !m.loaded {
		if m.err != nil {
			b.WriteString(m.theme.Footer.Error.Render(m.err.Error()))
		} else {
			b.WriteString("Loading…")
		}
		return b.String()
	}
	if m.showHelp {
		b.WriteString(m.help.View())
		b.WriteString("\n")
		b.WriteString(m.theme.Footer.Help.Render("? or esc to close"))
		return b.String()
	}
	b.WriteString(uical.Render(m.grid, m.today, m.selected, m.theme.Calendar))
	b.WriteString("\n\n")
	b.WriteString(m.dayDetail())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.theme.Footer.Error.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.theme.Footer.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Footer.Help.Render(helpText))
	return b.String()
}

func (m Model) dayDetail() string {
	p := daypanel.New(m.theme.Panel)
	p.SetDayFromGrid(m.grid, m.selected)
	view, _ := p.View()
	return view
}

// Run starts the browser in the alternate screen.
func Run(ctx context.Context, src Source, today calendar.Date, th theme.Theme) error {
	p := tea.NewProgram(New(ctx, src, today, th), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
