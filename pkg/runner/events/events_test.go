package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/store"
)

var today = calendar.NewDate(2025, time.October, 17)

func newHub() *app.Service {
	color.NoColor = true
	return &app.Service{Persistence: store.NewMemory()}
}

func TestAddThenList(t *testing.T) {
	ctx := context.Background()
	hub := newHub()

	add := Add{Hub: hub, Today: today, On: "tomorrow", Title: "Field trip", Subject: "Biology", Out: &bytes.Buffer{}}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var buf bytes.Buffer
	list := List{Hub: hub, Today: today, On: "2025-10-18", Out: &buf}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Field trip (Biology)") {
		t.Fatalf("expected event line, got:\n%s", buf.String())
	}

	buf.Reset()
	list.On = ""
	if err := list.Do(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if strings.Contains(buf.String(), "Field trip") {
		t.Fatalf("expected no events today, got:\n%s", buf.String())
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	hub := newHub()
	add := Add{Hub: hub, Today: today, Title: "  ", Out: &bytes.Buffer{}}
	if err := add.Do(context.Background()); !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	events, _ := hub.Events(context.Background())
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestEditUnknownPrintsStatus(t *testing.T) {
	var buf bytes.Buffer
	e := Edit{Hub: newHub(), ID: "nope", Title: "x", Out: &buf}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No event nope") {
		t.Fatalf("expected miss status, got:\n%s", buf.String())
	}
}

func TestListAllSortsByDate(t *testing.T) {
	ctx := context.Background()
	hub := newHub()
	for _, on := range []string{"+2d", "today", "+1d"} {
		a := Add{Hub: hub, Today: today, On: on, Title: "at " + on, Out: &bytes.Buffer{}}
		if err := a.Do(ctx); err != nil {
			t.Fatalf("Add %s failed: %v", on, err)
		}
	}
	var buf bytes.Buffer
	list := List{Hub: hub, All: true, Out: &buf}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := buf.String()
	i0, i1, i2 := strings.Index(got, "at today"), strings.Index(got, "at +1d"), strings.Index(got, "at +2d")
	if !(i0 < i1 && i1 < i2) || i0 < 0 {
		t.Fatalf("expected date order, got:\n%s", got)
	}
}
