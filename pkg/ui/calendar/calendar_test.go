package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"

	cal "tableflip.dev/eduhub/pkg/calendar"
)

func plainOptions() Options {
	opts := DefaultOptions()
	plain := lipgloss.NewStyle()
	opts.TitleStyle = plain
	opts.HeaderStyle = plain
	opts.DayStyle = plain
	opts.OutsideStyle = plain
	opts.EventStyle = plain
	opts.MoreStyle = plain
	opts.TodayStyle = plain
	opts.SelectedStyle = plain
	return opts
}

func TestRenderShowsInlineEventsAndOverflow(t *testing.T) {
	day := cal.NewDate(2025, time.October, 17)
	created := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	events := []*cal.Event{
		{ID: "1", Date: day, Title: "Quiz", CreatedAt: created},
		{ID: "2", Date: day, Title: "Lab", CreatedAt: created.Add(time.Minute)},
		{ID: "3", Date: day, Title: "Hidden", CreatedAt: created.Add(2 * time.Minute)},
	}
	out := Render(cal.MonthGrid(day, events), day, day, plainOptions())

	if !strings.HasPrefix(out, "October 2025") {
		t.Fatalf("expected title line, got %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, want := range []string{"Sun", "Sat", "Quiz", "Lab", "+1 more"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in grid:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hidden") {
		t.Fatalf("third event must collapse into the overflow line")
	}
}

func TestRenderHasSixEqualWeeks(t *testing.T) {
	opts := plainOptions()
	opts.ShowTitle = false
	out := Render(cal.MonthGrid(cal.NewDate(2025, time.June, 1), nil), cal.Date{}, cal.Date{}, opts)
	lines := strings.Split(out, "\n")
	// header + 6 weeks of (day + inline rows + more row)
	want := 1 + 6*(cal.MaxInline+2)
	if len(lines) != want {
		t.Fatalf("expected %d lines, got %d", want, len(lines))
	}
	rowWidth := 7*opts.CellWidth + 6
	for i, l := range lines[1:] {
		if w := ansi.PrintableRuneWidth(l); w != rowWidth {
			t.Fatalf("line %d: expected width %d, got %d (%q)", i+1, rowWidth, w, l)
		}
	}
}

func TestClip(t *testing.T) {
	if got := Clip("Organic chemistry review", 8); ansi.PrintableRuneWidth(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected clip %q", got)
	}
	if got := Clip("Quiz", 8); got != "Quiz" {
		t.Fatalf("short titles must be kept, got %q", got)
	}
}
