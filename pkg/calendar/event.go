package calendar

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a dated calendar entry. Date and CreatedAt never change after
// creation; Title and Subject may be edited.
type Event struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventsOn returns the events on date ordered by CreatedAt. Equal timestamps
// keep collection order.
func EventsOn(events []*Event, date Date) []*Event {
	var out []*Event
	for _, e := range events {
		if e != nil && e.Date == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// SortByDate orders events by Date, then CreatedAt, in place.
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// Clone returns a copy of e.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// MarshalEvents serialises events in collection order.
func MarshalEvents(events []*Event) ([]byte, error) {
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e)
		}
	}
	return json.Marshal(out)
}

// UnmarshalEvents deserialises events. Empty input is an empty collection.
// Entries without an id get one; entries with a blank title are dropped.
func UnmarshalEvents(data []byte) ([]*Event, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []*Event{}, nil
	}
	var events []*Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if e == nil || strings.TrimSpace(e.Title) == "" {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		out = append(out, e)
	}
	return out, nil
}
