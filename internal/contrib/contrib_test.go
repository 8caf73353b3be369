package contrib

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid *Grid
		want error
	}{
		{"nil", nil, ErrEmptyGrid},
		{"no weeks", &Grid{}, ErrEmptyGrid},
		{"zero days", &Grid{Levels: [][]int{{}}}, ErrZeroDays},
		{"ragged", &Grid{Levels: [][]int{{1, 2}, {1}}}, ErrRaggedGrid},
		{"ragged counts", &Grid{Levels: [][]int{{1, 2}}, Counts: [][]int{{1}}}, ErrRaggedGrid},
		{"single cell", &Grid{Levels: [][]int{{3}}}, nil},
		{"full year", NewGrid(53, 7, 2024), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMaxLevelInWeek(t *testing.T) {
	g := &Grid{Levels: [][]int{{0, 0, 0}, {1, 4, 2}}}
	if got := g.MaxLevelInWeek(0); got != 0 {
		t.Errorf("MaxLevelInWeek(0) = %d, want 0", got)
	}
	if got := g.MaxLevelInWeek(1); got != 4 {
		t.Errorf("MaxLevelInWeek(1) = %d, want 4", got)
	}
	if got := g.MaxLevel(); got != 4 {
		t.Errorf("MaxLevel() = %d, want 4", got)
	}
}

func TestFirstSunday(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{2024, "2023-12-31"}, // Jan 1 is a Monday
		{2023, "2023-01-01"}, // Jan 1 is a Sunday
		{2022, "2021-12-26"}, // Jan 1 is a Saturday
	}
	for _, tt := range tests {
		got := FirstSunday(tt.year)
		if got.Weekday() != time.Sunday {
			t.Errorf("FirstSunday(%d) is a %s", tt.year, got.Weekday())
		}
		if got.Format(dateLayout) != tt.want {
			t.Errorf("FirstSunday(%d) = %s, want %s", tt.year, got.Format(dateLayout), tt.want)
		}
	}
}

func TestCellAt(t *testing.T) {
	g := NewGrid(53, 7, 2024)
	g.Counts = nil
	g.Levels[0][1] = 3

	c := g.CellAt(0, 1)
	if c.Date.Format(dateLayout) != "2024-01-01" {
		t.Errorf("date = %s, want 2024-01-01", c.Date.Format(dateLayout))
	}
	if c.Weekday != "Monday" {
		t.Errorf("weekday = %s, want Monday", c.Weekday)
	}
	if c.Level != 3 {
		t.Errorf("level = %d, want 3", c.Level)
	}
	if c.Count != ApproximateCount(3) {
		t.Errorf("count = %d, want approximate %d", c.Count, ApproximateCount(3))
	}
}

func TestCellAtUsesRealCounts(t *testing.T) {
	g := NewGrid(2, 7, 2024)
	g.Levels[1][2] = 1
	g.Counts[1][2] = 17

	if c := g.CellAt(1, 2); c.Count != 17 {
		t.Errorf("count = %d, want real count 17", c.Count)
	}
}

func TestCells(t *testing.T) {
	g := NewGrid(3, 7, 2024)
	cells := g.Cells()
	if len(cells) != 21 {
		t.Fatalf("len(cells) = %d, want 21", len(cells))
	}
	c, ok := cells[Key{Week: 2, Day: 6}]
	if !ok {
		t.Fatal("missing cell (2,6)")
	}
	if c.Date.Format(dateLayout) != "2024-01-20" {
		t.Errorf("cell (2,6) date = %s, want 2024-01-20", c.Date.Format(dateLayout))
	}
}

func TestApproximateCountMonotonic(t *testing.T) {
	prev := -1
	for lvl := 0; lvl <= 8; lvl++ {
		got := ApproximateCount(lvl)
		if got <= prev {
			t.Errorf("ApproximateCount(%d) = %d, not above %d", lvl, got, prev)
		}
		prev = got
	}
	if ApproximateCount(-2) != 0 {
		t.Error("negative level should count 0")
	}
}

const samplePayload = `{
  "total": {"2024": 9, "2023": 1},
  "contributions": [
    {"date": "2023-12-30", "count": 1, "level": 1},
    {"date": "2024-01-03", "count": 0, "level": 0},
    {"date": "2024-01-01", "count": 2, "level": 1},
    {"date": "2024-01-02", "count": 5, "level": 3},
    {"date": "2024-01-04", "contributionCount": 1, "contributionLevel": 1},
    {"date": "2024-12-31", "count": 1, "level": 4},
    {"date": "not-a-date", "count": 99, "level": 4}
  ]
}`

func TestNormalize(t *testing.T) {
	p, err := DecodePayload([]byte(samplePayload))
	if err != nil {
		t.Fatalf("DecodePayload() error: %v", err)
	}

	g := Normalize(p, 2024)
	if err := g.Validate(); err != nil {
		t.Fatalf("normalized grid invalid: %v", err)
	}
	if g.Weeks() != 53 || g.Days() != 7 {
		t.Fatalf("shape = %dx%d, want 53x7", g.Weeks(), g.Days())
	}

	checks := []struct {
		week, day, level, count int
	}{
		{0, 1, 1, 2}, // Mon Jan 1
		{0, 2, 3, 5}, // Tue Jan 2
		{0, 4, 1, 1}, // Thu Jan 4, legacy keys
		{52, 2, 4, 1},
		{0, 0, 0, 0}, // Dec 31 2023 belongs to the previous year
	}
	for _, c := range checks {
		if got := g.Level(c.week, c.day); got != c.level {
			t.Errorf("level(%d,%d) = %d, want %d", c.week, c.day, got, c.level)
		}
		if got, _ := g.Count(c.week, c.day); got != c.count {
			t.Errorf("count(%d,%d) = %d, want %d", c.week, c.day, got, c.count)
		}
	}
}

func TestNormalizeGrowsFor54Weeks(t *testing.T) {
	// 2028 starts on a Saturday and is a leap year, so Dec 31 lands in column 53.
	p := &Payload{Contributions: []Day{{Date: "2028-12-31", Count: intPtr(1), Level: intPtr(2)}}}
	g := Normalize(p, 2028)
	if g.Weeks() != 54 {
		t.Fatalf("weeks = %d, want 54", g.Weeks())
	}
	if got := g.Level(53, 0); got != 2 {
		t.Errorf("level(53,0) = %d, want 2", got)
	}
}

func TestCalculateStats(t *testing.T) {
	p, err := DecodePayload([]byte(samplePayload))
	if err != nil {
		t.Fatalf("DecodePayload() error: %v", err)
	}

	s := CalculateStats(p, 2024)
	want := Stats{TotalContributions: 9, MaxContribution: 5, LongestStreak: 2}
	if s != want {
		t.Errorf("CalculateStats() = %+v, want %+v", s, want)
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	if _, err := DecodePayload([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadPayloadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(samplePayload), 0644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	p, err := ReadPayloadFile(path)
	if err != nil {
		t.Fatalf("ReadPayloadFile() error: %v", err)
	}
	if len(p.Contributions) != 7 {
		t.Errorf("contributions = %d, want 7", len(p.Contributions))
	}

	if _, err := ReadPayloadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v4/octocat":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(samplePayload))
		case "/v4/ghost":
			http.Error(w, "not found", http.StatusNotFound)
		case "/v4/busy":
			http.Error(w, "slow down", http.StatusTooManyRequests)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v4", 2*time.Second)
	ctx := context.Background()

	g, stats, err := c.Load(ctx, "  octocat ", 2024)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if g.Level(0, 2) != 3 {
		t.Errorf("level(0,2) = %d, want 3", g.Level(0, 2))
	}
	if stats.TotalContributions != 9 {
		t.Errorf("total = %d, want 9", stats.TotalContributions)
	}

	if _, err := c.Fetch(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(ghost) = %v, want ErrNotFound", err)
	}
	if _, err := c.Fetch(ctx, "busy"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Fetch(busy) = %v, want ErrRateLimited", err)
	}
	if _, err := c.Fetch(ctx, "broken"); err == nil {
		t.Error("Fetch(broken) should fail on 500")
	}
	if _, err := c.Fetch(ctx, "   "); err == nil {
		t.Error("Fetch with blank username should fail")
	}
}

func TestClientFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Fetch(ctx, "octocat"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestMockGrid(t *testing.T) {
	a := MockGrid(2024, 7)
	b := MockGrid(2024, 7)
	if err := a.Validate(); err != nil {
		t.Fatalf("mock grid invalid: %v", err)
	}
	for w := range a.Weeks() {
		for d := range a.Days() {
			if a.Level(w, d) != b.Level(w, d) {
				t.Fatalf("mock grid not deterministic at (%d,%d)", w, d)
			}
			if lvl := a.Level(w, d); lvl < 0 || lvl > MaxLevel {
				t.Fatalf("level %d out of range at (%d,%d)", lvl, w, d)
			}
		}
	}

	s := MockStats(a)
	if s.TotalContributions <= 0 || s.MaxContribution > ApproximateCount(MaxLevel) {
		t.Errorf("unexpected mock stats %+v", s)
	}
}

func intPtr(v int) *int { return &v }
