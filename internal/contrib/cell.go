package contrib

import "time"

// levelCounts maps a level to a representative count when the grid carries
// no real counts.
var levelCounts = [...]int{0, 2, 5, 8, 12}

// Cell is the display data derived for one grid position.
type Cell struct {
	Week    int
	Day     int
	Level   int
	Date    time.Time
	Count   int
	Weekday string
}

// Key identifies a cell by its grid position.
type Key struct {
	Week, Day int
}

// Key returns the cell's grid position.
func (c Cell) Key() Key {
	return Key{Week: c.Week, Day: c.Day}
}

// FirstSunday returns the Sunday on or before January 1st of year. The grid's
// first column is assumed to start there; the mapping is best effort.
func FirstSunday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.AddDate(0, 0, -int(jan1.Weekday()))
}

// DateAt returns the calendar date for a grid position.
func DateAt(year, week, day, daysPerWeek int) time.Time {
	return FirstSunday(year).AddDate(0, 0, week*daysPerWeek+day)
}

// ApproximateCount returns a representative count for a level.
func ApproximateCount(level int) int {
	switch {
	case level <= 0:
		return 0
	case level < len(levelCounts):
		return levelCounts[level]
	default:
		return levelCounts[len(levelCounts)-1] + (level-len(levelCounts)+1)*4
	}
}

// CellAt derives the display cell for one grid position.
func (g *Grid) CellAt(week, day int) Cell {
	level := g.Level(week, day)
	date := DateAt(g.Year, week, day, g.Days())
	count, ok := g.Count(week, day)
	if !ok {
		count = ApproximateCount(level)
	}
	return Cell{
		Week:    week,
		Day:     day,
		Level:   level,
		Date:    date,
		Count:   count,
		Weekday: date.Weekday().String(),
	}
}

// Cells derives every cell of the grid, keyed by position.
func (g *Grid) Cells() map[Key]Cell {
	cells := make(map[Key]Cell, g.Weeks()*g.Days())
	for w := range g.Weeks() {
		for d := range g.Days() {
			c := g.CellAt(w, d)
			cells[c.Key()] = c
		}
	}
	return cells
}
