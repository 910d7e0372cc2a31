// Package prefs reads and writes the theme and display name preferences.
package prefs

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
)

// Theme prints the stored theme, or stores Set when it is not empty.
type Theme struct {
	Hub *app.Service
	Set string
	Out io.Writer
}

func (t *Theme) Do(_ context.Context) error {
	if t.Set != "" {
		if err := t.Hub.SetTheme(t.Set); err != nil {
			return err
		}
	}
	theme, err := t.Hub.Theme()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(t.Out), theme)
	return nil
}

// Name prints the stored display name, or stores Set when Update is true.
type Name struct {
	Hub    *app.Service
	Set    string
	Update bool
	Out    io.Writer
}

func (n *Name) Do(_ context.Context) error {
	if n.Update {
		if err := n.Hub.SetDisplayName(n.Set); err != nil {
			return err
		}
	}
	name, err := n.Hub.DisplayName()
	if err != nil {
		return err
	}
	if name == "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(out(n.Out), "no display name set")
		return nil
	}
	_, _ = fmt.Fprintln(out(n.Out), name)
	return nil
}

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}
