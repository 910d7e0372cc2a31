// Package month prints or browses the calendar month grid.
package month

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/printers"
	"tableflip.dev/eduhub/pkg/timeutil"
	tuical "tableflip.dev/eduhub/pkg/tui/calendar"
	"tableflip.dev/eduhub/pkg/tui/theme"
	uical "tableflip.dev/eduhub/pkg/ui/calendar"
)

// Layout selects how a month is printed.
type Layout string

const (
	LayoutGrid    Layout = "grid"
	LayoutCompact Layout = "compact"
	LayoutLong    Layout = "long"
)

// Month renders the grid for Focus, or starts the interactive browser.
type Month struct {
	Hub         *app.Service
	Today       calendar.Date
	Focus       string
	Layout      Layout
	Interactive bool
	JSON        bool
	Out         io.Writer
}

func (m *Month) out() io.Writer {
	if m.Out != nil {
		return m.Out
	}
	return color.Output
}

func (m *Month) Do(ctx context.Context) error {
	focus, err := timeutil.ParseMonth(m.Focus, m.Today)
	if err != nil {
		return err
	}

	if m.Interactive {
		name, err := m.Hub.Theme()
		if err != nil {
			return err
		}
		if err := m.Hub.Load(ctx); err != nil {
			return err
		}
		return tuical.Run(ctx, m.Hub, m.Today, theme.ForName(name))
	}

	g, err := m.Hub.MonthGrid(ctx, focus)
	if err != nil {
		return err
	}
	if m.JSON {
		enc := json.NewEncoder(m.out())
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	pp := printers.PrettyPrint{Out: m.Out}
	switch m.Layout {
	case "", LayoutGrid:
		name, err := m.Hub.Theme()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(m.out(), uical.Render(g, m.Today, calendar.Date{}, theme.ForName(name).Calendar))
	case LayoutCompact:
		pp.PrintMonth(g)
	case LayoutLong:
		pp.Title(fmt.Sprintf("%s %d", g.Month.Month, g.Month.Year))
		pp.PrintMonthLong(g, m.Today)
	default:
		return fmt.Errorf("unknown layout %q (expected grid, compact or long)", m.Layout)
	}
	return nil
}
