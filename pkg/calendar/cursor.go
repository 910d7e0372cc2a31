package calendar

import "time"

// Cursor is the focus month of a calendar view. It always points at day 1.
type Cursor struct {
	month Date
}

// CursorAt returns a cursor on d's month.
func CursorAt(d Date) Cursor {
	return Cursor{month: d.FirstOfMonth()}
}

// Month is day 1 of the focused month.
func (c Cursor) Month() Date {
	return c.month
}

// Next moves one calendar month forward. Jan 31 goes to Feb 1, not March.
func (c Cursor) Next() Cursor {
	return c.shift(1)
}

// Previous moves one calendar month back.
func (c Cursor) Previous() Cursor {
	return c.shift(-1)
}

func (c Cursor) shift(n int) Cursor {
	return CursorAt(NewDate(c.month.Year, c.month.Month+time.Month(n), 1))
}

// Grid projects events for the focused month.
func (c Cursor) Grid(events []*Event) Grid {
	return MonthGrid(c.month, events)
}
