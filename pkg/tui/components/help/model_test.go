package help

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/eduhub/pkg/tui/theme"
)

func TestViewListsBindings(t *testing.T) {
	m := New([]Binding{
		{Keys: "q", Description: "quit"},
		{Keys: "←/p", Description: "previous month"},
	}, theme.Dark().Panel, 40, 12)

	view := m.View()
	for _, want := range []string{"Keys", "quit", "previous month"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in:\n%s", want, view)
		}
	}
	if w := ansi.PrintableRuneWidth(strings.Split(view, "\n")[0]); w < 32 {
		t.Fatalf("expected framed overlay at least 32 wide, got %d", w)
	}
}

func TestSetSizeClampsToMinimum(t *testing.T) {
	m := New(nil, theme.Light().Panel, 1, 1)
	if m.width != 32 || m.height != 6 {
		t.Fatalf("expected minimum size, got %dx%d", m.width, m.height)
	}
}
