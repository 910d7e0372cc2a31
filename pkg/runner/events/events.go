// Package events holds the CLI runners for calendar events.
package events

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/printers"
	"tableflip.dev/eduhub/pkg/timeutil"
)

func writeJSON(w io.Writer, v any) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Add creates an event on On, resolved relative to Today.
type Add struct {
	Hub     *app.Service
	Today   calendar.Date
	On      string
	Title   string
	Subject string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	date, err := timeutil.ParseDay(a.On, a.Today)
	if err != nil {
		return err
	}
	e, err := a.Hub.AddEvent(ctx, date, app.EventInput{Title: a.Title, Subject: a.Subject})
	if err != nil {
		return err
	}
	if a.JSON {
		return writeJSON(a.Out, e)
	}
	pp := printers.PrettyPrint{ShowID: a.ShowID, Out: a.Out}
	pp.Events(e)
	return nil
}

// Edit replaces an event's title and subject.
type Edit struct {
	Hub     *app.Service
	ID      string
	Title   string
	Subject string
	JSON    bool
	Out     io.Writer
}

func (e *Edit) Do(ctx context.Context) error {
	ev, err := e.Hub.EditEvent(ctx, e.ID, app.EventInput{Title: e.Title, Subject: e.Subject})
	if err != nil {
		return err
	}
	if e.JSON {
		return writeJSON(e.Out, ev)
	}
	pp := printers.PrettyPrint{Out: e.Out}
	if ev == nil {
		pp.Status("No event " + e.ID)
		return nil
	}
	pp.Events(ev)
	return nil
}

// Delete removes an event. Unknown ids are not an error.
type Delete struct {
	Hub *app.Service
	ID  string
	Out io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	if err := d.Hub.DeleteEvent(ctx, d.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Status("Deleted " + d.ID)
	return nil
}

// List prints the events on one day, or every event when All is set.
type List struct {
	Hub    *app.Service
	Today  calendar.Date
	On     string
	All    bool
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (l *List) Do(ctx context.Context) error {
	var (
		events []*calendar.Event
		err    error
		title  string
	)
	if l.All {
		events, err = l.Hub.Events(ctx)
		title = "Events"
		calendar.SortByDate(events)
	} else {
		var date calendar.Date
		date, err = timeutil.ParseDay(l.On, l.Today)
		if err != nil {
			return err
		}
		events, err = l.Hub.EventsOn(ctx, date)
		title = date.String()
	}
	if err != nil {
		return err
	}
	if l.JSON {
		return writeJSON(l.Out, events)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.Title(title)
	pp.Events(events...)
	return nil
}
