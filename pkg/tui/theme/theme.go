package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	uical "tableflip.dev/eduhub/pkg/ui/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Name     string
	Footer   FooterTheme
	Panel    PanelTheme
	Calendar uical.Options
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ForName returns the dark theme for "dark" and the light theme otherwise,
// matching the stored theme preference.
func ForName(name string) Theme {
	if name == "dark" {
		return Dark()
	}
	return Light()
}

// Dark is tuned for dark terminal backgrounds.
func Dark() Theme {
	return Theme{
		Name: "dark",
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Calendar: uical.DefaultOptions(),
	}
}

// Light is tuned for light terminal backgrounds.
func Light() Theme {
	t := Dark()
	t.Name = "light"
	t.Footer.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	t.Footer.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	t.Footer.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	opts := uical.DefaultOptions()
	opts.HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Bold(true)
	opts.DayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
	opts.OutsideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	opts.EventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	opts.MoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true)
	opts.SelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("0"))
	t.Calendar = opts
	return t
}
