package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/eduhub/pkg/calendar"
)

// EventInput is the editable part of an event.
type EventInput struct {
	Title   string `validate:"required,max=200"`
	Subject string `validate:"max=120"`
}

func (in EventInput) normalized() (EventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := validate.Struct(in); err != nil {
		return in, fmt.Errorf("%w: event title is required: %v", ErrValidation, err)
	}
	return in, nil
}

// AddEvent creates an event on date. An empty title is rejected with
// ErrValidation and nothing changes.
func (s *Service) AddEvent(ctx context.Context, date calendar.Date, in EventInput) (*calendar.Event, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", ErrValidation)
	}
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	e := &calendar.Event{
		ID:        s.newID(),
		Date:      date,
		Title:     in.Title,
		Subject:   in.Subject,
		CreatedAt: s.now(),
	}
	s.events = append(s.events, e)
	s.persistEvents()
	s.Metrics.eventsChanged(len(s.events))
	s.notify(Change{Kind: ChangeEvents, ID: e.ID})
	return e.Clone(), nil
}

// EditEvent updates title and subject in place. ID, Date and CreatedAt are
// kept. Unknown ids return (nil, nil).
func (s *Service) EditEvent(ctx context.Context, id string, in EventInput) (*calendar.Event, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := s.eventIndex(id)
	if idx < 0 {
		return nil, nil
	}
	e := s.events[idx]
	e.Title = in.Title
	e.Subject = in.Subject
	s.persistEvents()
	s.notify(Change{Kind: ChangeEvents, ID: id})
	return e.Clone(), nil
}

// DeleteEvent removes the event with id. Unknown ids are ignored.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.eventIndex(id)
	if idx < 0 {
		return nil
	}
	s.events = append(s.events[:idx:idx], s.events[idx+1:]...)
	s.persistEvents()
	s.Metrics.eventsChanged(len(s.events))
	s.notify(Change{Kind: ChangeEvents, ID: id})
	return nil
}

// Events returns every event in stored order.
func (s *Service) Events(ctx context.Context) ([]*calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneEvents(s.events), nil
}

// EventsOn lists the events on date ordered by creation time.
func (s *Service) EventsOn(ctx context.Context, date calendar.Date) ([]*calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneEvents(calendar.EventsOn(s.events, date)), nil
}

// MonthGrid projects the events onto focus's month.
func (s *Service) MonthGrid(ctx context.Context, focus calendar.Date) (calendar.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return calendar.Grid{}, err
	}
	return calendar.MonthGrid(focus, cloneEvents(s.events)), nil
}

func (s *Service) eventIndex(id string) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneEvents(in []*calendar.Event) []*calendar.Event {
	out := make([]*calendar.Event, 0, len(in))
	for _, e := range in {
		out = append(out, e.Clone())
	}
	return out
}
