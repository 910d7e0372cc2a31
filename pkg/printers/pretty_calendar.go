package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonth prints a compact month with days that have events in bold.
func (pp *PrettyPrint) PrintMonth(g calendar.Grid) {
	count := make([]int, DaysIn(g.Month))
	for _, c := range g.Cells {
		if !c.Outside {
			count[c.Date.Day-1] = len(c.Events)
		}
	}
	pp.PrintMonthCount(g.Month, count)
}

func (pp *PrettyPrint) PrintMonthCount(month calendar.Date, count []int) {
	d := StartDay(month)
	out := pp.out()

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", month.Month, month.Year)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(month)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// PrintMonthLong prints one line per day of the month with its events.
func (pp *PrettyPrint) PrintMonthLong(g calendar.Grid, today calendar.Date) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)
	more := color.New(color.Faint, color.Italic)
	out := pp.out()

	for _, c := range g.Cells {
		if c.Outside {
			continue
		}
		printer := p
		isToday := c.Date == today
		if isToday {
			printer = b
		}
		if c.Date.Weekday() == time.Sunday {
			printer = s
			if isToday {
				printer = bs
			}
		}
		_, _ = printer.Fprintf(out, "%2d %s", c.Date.Day, c.Date.Weekday().String()[0:1])

		for i, e := range c.Inline() {
			if i > 0 {
				_, _ = p.Fprint(out, "     ")
			}
			_, _ = p.Fprintf(out, "  %s", e.Title)
			if e.Subject != "" {
				_, _ = more.Fprintf(out, " (%s)", e.Subject)
			}
			_, _ = p.Fprint(out, "\n")
		}
		if n := c.Overflow(); n > 0 {
			_, _ = more.Fprintf(out, "       +%d more\n", n)
		}
		if len(c.Events) == 0 {
			_, _ = p.Fprint(out, "\n")
		}
	}
}

func DaysIn(month calendar.Date) int {
	return calendar.DaysIn(month.Year, month.Month)
}

func StartDay(month calendar.Date) time.Weekday {
	return month.FirstOfMonth().Weekday()
}
