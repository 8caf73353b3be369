package contrib

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const dateLayout = "2006-01-02"

// Day is one entry of the contributions API response. Older responses use
// the contributionCount/contributionLevel keys.
type Day struct {
	Date              string `json:"date"`
	Count             *int   `json:"count,omitempty"`
	Level             *int   `json:"level,omitempty"`
	ContributionCount *int   `json:"contributionCount,omitempty"`
	ContributionLevel *int   `json:"contributionLevel,omitempty"`
}

// CountValue returns the day's count, whichever key carried it.
func (d Day) CountValue() int {
	switch {
	case d.Count != nil:
		return *d.Count
	case d.ContributionCount != nil:
		return *d.ContributionCount
	default:
		return 0
	}
}

// LevelValue returns the day's level, whichever key carried it.
func (d Day) LevelValue() int {
	switch {
	case d.Level != nil:
		return *d.Level
	case d.ContributionLevel != nil:
		return *d.ContributionLevel
	default:
		return 0
	}
}

// Payload is the contributions API response body.
type Payload struct {
	Total         map[string]int `json:"total"`
	Contributions []Day          `json:"contributions"`
}

// Stats summarises one year of contributions.
type Stats struct {
	TotalContributions int
	MaxContribution    int
	LongestStreak      int
}

// DecodePayload parses an API response body.
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding contributions payload: %w", err)
	}
	return &p, nil
}

// ReadPayloadFile loads a saved API response from disk.
func ReadPayloadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload %s: %w", path, err)
	}
	return DecodePayload(data)
}

// yearDays returns the parsed days that fall in year, sorted by date.
// Entries with unparseable dates are skipped.
func (p *Payload) yearDays(year int) []datedDay {
	days := make([]datedDay, 0, len(p.Contributions))
	for _, d := range p.Contributions {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil || t.Year() != year {
			continue
		}
		days = append(days, datedDay{date: t, day: d})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })
	return days
}

type datedDay struct {
	date time.Time
	day  Day
}

// WeekIndex returns the Sunday-aligned column of date within year's grid.
func WeekIndex(year int, date time.Time) int {
	days := int(date.Sub(FirstSunday(year)).Hours() / 24)
	return days / DaysPerWeek
}

// Normalize converts a payload into a week×7 grid for year. The grid has at
// least 53 weeks and grows when the year spills into a 54th column.
func Normalize(p *Payload, year int) *Grid {
	days := p.yearDays(year)

	weeks := 53
	for _, d := range days {
		if w := WeekIndex(year, d.date) + 1; w > weeks {
			weeks = w
		}
	}

	g := NewGrid(weeks, DaysPerWeek, year)
	for _, d := range days {
		w := WeekIndex(year, d.date)
		wd := int(d.date.Weekday())
		g.Levels[w][wd] = d.day.LevelValue()
		g.Counts[w][wd] = d.day.CountValue()
	}
	return g
}

// CalculateStats computes totals and the longest streak of active days for year.
func CalculateStats(p *Payload, year int) Stats {
	var s Stats
	streak := 0
	for _, d := range p.yearDays(year) {
		count := d.day.CountValue()
		s.TotalContributions += count
		if count > s.MaxContribution {
			s.MaxContribution = count
		}
		if count > 0 {
			streak++
			if streak > s.LongestStreak {
				s.LongestStreak = streak
			}
		} else {
			streak = 0
		}
	}
	return s
}
