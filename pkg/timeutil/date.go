// Package timeutil parses the loose date and month arguments accepted by the
// CLI and MCP tools.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/eduhub/pkg/calendar"
)

// ParseDay resolves a day argument relative to today. Accepted forms are
// "today", "tomorrow", "yesterday", "+3d", "-1w" and YYYY-MM-DD. Empty means
// today.
func ParseDay(input string, today calendar.Date) (calendar.Date, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	if s[0] == '+' || s[0] == '-' {
		days, err := ParseSpan(s[1:])
		if err != nil {
			return calendar.Date{}, fmt.Errorf("invalid day %q: %w", input, err)
		}
		if s[0] == '-' {
			days = -days
		}
		return today.AddDays(days), nil
	}
	return calendar.ParseDate(s)
}

var monthNames = func() map[string]time.Month {
	m := make(map[string]time.Month, 24)
	for i := time.January; i <= time.December; i++ {
		name := strings.ToLower(i.String())
		m[name] = i
		m[name[:3]] = i
	}
	return m
}()

// ParseMonth resolves a month argument to day 1 of that month. Accepted forms
// are "this", "next", "prev", a month name (in today's year), YYYY-MM and
// YYYY-MM-DD. Empty means this month.
func ParseMonth(input string, today calendar.Date) (calendar.Date, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	cur := calendar.CursorAt(today)
	switch s {
	case "", "this", "now":
		return cur.Month(), nil
	case "next":
		return cur.Next().Month(), nil
	case "prev", "previous", "last":
		return cur.Previous().Month(), nil
	}
	if m, ok := monthNames[s]; ok {
		return calendar.NewDate(today.Year, m, 1), nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return calendar.DateOf(t), nil
	}
	if d, err := calendar.ParseDate(s); err == nil {
		return d.FirstOfMonth(), nil
	}
	return calendar.Date{}, fmt.Errorf("invalid month %q", input)
}
