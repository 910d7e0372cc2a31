package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCursorMovesOneMonth(t *testing.T) {
	cases := []struct {
		name  string
		start Date
		next  Date
		prev  Date
	}{
		{"december", NewDate(2025, time.December, 9), NewDate(2026, time.January, 1), NewDate(2025, time.November, 1)},
		{"january", NewDate(2026, time.January, 20), NewDate(2026, time.February, 1), NewDate(2025, time.December, 1)},
		{"clamp", NewDate(2025, time.January, 31), NewDate(2025, time.February, 1), NewDate(2024, time.December, 1)},
	}
	for _, tc := range cases {
		c := CursorAt(tc.start)
		if got := c.Next().Month(); got != tc.next {
			t.Fatalf("%s: next expected %s, got %s", tc.name, tc.next, got)
		}
		if got := c.Previous().Month(); got != tc.prev {
			t.Fatalf("%s: previous expected %s, got %s", tc.name, tc.prev, got)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	c := CursorAt(NewDate(2024, time.March, 31))
	for i := 0; i < 25; i++ {
		c = c.Next()
	}
	for i := 0; i < 25; i++ {
		c = c.Previous()
	}
	if c.Month() != NewDate(2024, time.March, 1) {
		t.Fatalf("expected to return to March 2024, got %s", c.Month())
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysIn(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestDateText(t *testing.T) {
	d, err := ParseDate("2025-02-09")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != NewDate(2025, time.February, 9) || d.String() != "2025-02-09" {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("2025-02-30"); err == nil {
		t.Fatalf("expected invalid day to fail")
	}
	if d.Weekday() != time.Sunday {
		t.Fatalf("expected Sunday, got %s", d.Weekday())
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, time.May, 1, 2, 0, 0, 0, time.UTC)
	west := time.FixedZone("west", -5*60*60)
	if got := Today(now, west); got != NewDate(2025, time.April, 30) {
		t.Fatalf("expected Apr 30 in a western zone, got %s", got)
	}
	if got := Today(now, time.UTC); got != NewDate(2025, time.May, 1) {
		t.Fatalf("expected May 1 in UTC, got %s", got)
	}
}

func TestEventCodecRoundTrip(t *testing.T) {
	events := []*Event{
		ev("a", NewDate(2025, time.October, 3), 0),
		{ID: "b", Date: NewDate(2025, time.October, 4), Title: "Quiz", Subject: "Physics", CreatedAt: created},
	}
	data, err := MarshalEvents(events)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("raw: %v", err)
	}
	if raw[0]["date"] != "2025-10-03" {
		t.Fatalf("expected date-only encoding, got %v", raw[0]["date"])
	}

	got, err := UnmarshalEvents(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i := range events {
		w, g := events[i], got[i]
		if w.ID != g.ID || w.Date != g.Date || w.Title != g.Title || w.Subject != g.Subject || !w.CreatedAt.Equal(g.CreatedAt) {
			t.Fatalf("event %d differs: want %+v got %+v", i, w, g)
		}
	}

	empty, err := MarshalEvents(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected empty array, got %s %v", empty, err)
	}
	if got, err := UnmarshalEvents(empty); err != nil || len(got) != 0 {
		t.Fatalf("expected empty collection, got %v %v", got, err)
	}
}
