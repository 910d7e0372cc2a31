// Package info reports where eduhub keeps its state.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/config"
	"tableflip.dev/eduhub/pkg/store"
)

type Info struct {
	Config *config.Config
	Hub    *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath+" found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath+" env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	file := n.Config.File
	if file == "" {
		file = "none"
	}
	_, _ = fmt.Fprintln(out, "Config.file:", file)
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend:", n.Config.Backend())

	if n.Hub == nil || n.Hub.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	_, _ = fmt.Fprintf(out, "Slots:\n")
	for _, slot := range store.AllSlots() {
		state := "absent"
		if n.Hub.Persistence.Has(slot) {
			state = "stored"
		}
		_, _ = fmt.Fprintf(out, "  %-16s %s\n", slot, state)
	}

	stats, err := n.Hub.Stats(ctx)
	if err != nil {
		return err
	}
	events, err := n.Hub.Events(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Materials: %d (%d projects)\n", stats.TotalMaterials, stats.ProjectCount)
	_, _ = fmt.Fprintf(out, "Events: %d\n", len(events))
	return nil
}
