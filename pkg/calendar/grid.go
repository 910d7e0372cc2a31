package calendar

// GridCells is the fixed size of a month grid: six weeks of seven days.
const GridCells = 42

// MaxInline is how many events a cell shows before collapsing into "+N more".
const MaxInline = 2

// Cell is one day of a month grid.
type Cell struct {
	Date    Date
	Outside bool
	Events  []*Event
}

// Inline returns the events shown directly in the cell.
func (c Cell) Inline() []*Event {
	if len(c.Events) <= MaxInline {
		return c.Events
	}
	return c.Events[:MaxInline]
}

// Overflow is the number of events hidden behind Inline.
func (c Cell) Overflow() int {
	if n := len(c.Events) - MaxInline; n > 0 {
		return n
	}
	return 0
}

// Grid is a Sunday-first month projection.
type Grid struct {
	Month Date
	Cells [GridCells]Cell
}

// Weeks splits the grid into six rows of seven cells.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, GridCells/7)
	for i := 0; i < GridCells; i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// MonthGrid projects events onto the 42 cells around focus's month. The
// first cell is the Sunday on or before day 1.
func MonthGrid(focus Date, events []*Event) Grid {
	first := focus.FirstOfMonth()
	lead := int(first.Weekday())
	start := first.AddDays(-lead)

	byDate := make(map[Date][]*Event)
	for _, e := range events {
		if e != nil {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}

	g := Grid{Month: first}
	for i := 0; i < GridCells; i++ {
		d := start.AddDays(i)
		g.Cells[i] = Cell{
			Date:    d,
			Outside: d.Year != first.Year || d.Month != first.Month,
			Events:  EventsOn(byDate[d], d),
		}
	}
	return g
}
