// Package contrib models a yearly contribution calendar as a week×day grid
// of intensity levels and derives the per-cell display data shown in tooltips.
package contrib

import (
	"errors"
	"fmt"
)

// DaysPerWeek is the usual height of a calendar grid.
const DaysPerWeek = 7

// MaxLevel is the highest level the contributions API reports.
const MaxLevel = 4

// Grid validation errors.
var (
	ErrEmptyGrid  = errors.New("contribution grid has no weeks")
	ErrZeroDays   = errors.New("contribution grid week has no days")
	ErrRaggedGrid = errors.New("contribution grid weeks differ in length")
)

// Grid is a rectangular calendar of intensity levels indexed [week][day].
// Counts, when present, has the same shape and holds the real per-day counts.
type Grid struct {
	Levels [][]int
	Counts [][]int
	Year   int
}

// NewGrid allocates a zeroed grid of the given shape.
func NewGrid(weeks, days, year int) *Grid {
	g := &Grid{
		Levels: make([][]int, weeks),
		Counts: make([][]int, weeks),
		Year:   year,
	}
	for w := range weeks {
		g.Levels[w] = make([]int, days)
		g.Counts[w] = make([]int, days)
	}
	return g
}

// Validate checks the grid is non-empty and rectangular.
func (g *Grid) Validate() error {
	if g == nil || len(g.Levels) == 0 {
		return ErrEmptyGrid
	}
	days := len(g.Levels[0])
	if days == 0 {
		return fmt.Errorf("week 0: %w", ErrZeroDays)
	}
	for w, week := range g.Levels {
		if len(week) == 0 {
			return fmt.Errorf("week %d: %w", w, ErrZeroDays)
		}
		if len(week) != days {
			return fmt.Errorf("week %d has %d days, want %d: %w", w, len(week), days, ErrRaggedGrid)
		}
	}
	if g.Counts != nil {
		if len(g.Counts) != len(g.Levels) {
			return fmt.Errorf("counts have %d weeks, levels %d: %w", len(g.Counts), len(g.Levels), ErrRaggedGrid)
		}
		for w, week := range g.Counts {
			if len(week) != days {
				return fmt.Errorf("counts week %d has %d days, want %d: %w", w, len(week), days, ErrRaggedGrid)
			}
		}
	}
	return nil
}

// Weeks returns the number of weeks (grid width).
func (g *Grid) Weeks() int {
	return len(g.Levels)
}

// Days returns the number of days per week (grid height).
func (g *Grid) Days() int {
	if len(g.Levels) == 0 {
		return 0
	}
	return len(g.Levels[0])
}

// Level returns the level at (week, day). Out-of-range positions read as 0.
func (g *Grid) Level(week, day int) int {
	if week < 0 || week >= len(g.Levels) || day < 0 || day >= len(g.Levels[week]) {
		return 0
	}
	return g.Levels[week][day]
}

// Count returns the real count at (week, day) and whether one is known.
func (g *Grid) Count(week, day int) (int, bool) {
	if g.Counts == nil || week < 0 || week >= len(g.Counts) || day < 0 || day >= len(g.Counts[week]) {
		return 0, false
	}
	return g.Counts[week][day], true
}

// MaxLevelInWeek returns the highest level within one week.
func (g *Grid) MaxLevelInWeek(week int) int {
	highest := 0
	for _, lvl := range g.Levels[week] {
		if lvl > highest {
			highest = lvl
		}
	}
	return highest
}

// MaxLevel returns the highest level in the whole grid.
func (g *Grid) MaxLevel() int {
	highest := 0
	for w := range g.Levels {
		if m := g.MaxLevelInWeek(w); m > highest {
			highest = m
		}
	}
	return highest
}
