package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/contribscape/internal/config"
	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/metrics"
)

const payload = `{
  "total": {"2024": 8},
  "contributions": [
    {"date": "2024-01-01", "count": 3, "level": 2},
    {"date": "2024-01-02", "count": 5, "level": 3},
    {"date": "2024-01-03", "count": 0, "level": 0}
  ]
}`

func waitPoll[T any](t *testing.T, l *Loader[T]) T {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, ok := l.Poll(); ok {
			return v
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no result before deadline")
	var zero T
	return zero
}

func TestLoaderDeliversLatest(t *testing.T) {
	l := NewLoader[string](context.Background())
	defer l.Close()

	if _, ok := l.Poll(); ok {
		t.Fatal("Poll() on idle loader returned a result")
	}
	if l.Pending() {
		t.Fatal("idle loader is pending")
	}

	firstCancelled := make(chan error, 1)
	l.Go(func(ctx context.Context) string {
		<-ctx.Done()
		firstCancelled <- ctx.Err()
		return "first"
	})
	l.Go(func(context.Context) string { return "second" })

	if !l.Pending() {
		t.Error("loader with a running job is not pending")
	}
	if got := waitPoll(t, l); got != "second" {
		t.Errorf("Poll() = %q, want second", got)
	}
	if l.Pending() {
		t.Error("loader still pending after delivery")
	}

	select {
	case err := <-firstCancelled:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("superseded job ctx.Err() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded job was not cancelled")
	}

	// The superseded result arrives late and must be dropped.
	time.Sleep(10 * time.Millisecond)
	if v, ok := l.Poll(); ok {
		t.Errorf("Poll() delivered stale result %q", v)
	}
}

func TestLoaderCloseCancelsJobs(t *testing.T) {
	l := NewLoader[int](context.Background())
	started := make(chan struct{})
	l.Go(func(ctx context.Context) int {
		close(started)
		<-ctx.Done()
		return 1
	})
	<-started

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return")
	}
}

func TestLoaderParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	l := NewLoader[error](parent)
	l.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()
	l.Close()
}

func newTestSource(t *testing.T, handler http.HandlerFunc) (*Source, *metrics.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewManager()
	cfg := config.SourceConfig{APIURL: srv.URL + "/v4", Timeout: 2 * time.Second, MockSeed: 7}
	return NewSource(cfg, 2024, m), m
}

func apiHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v4/octocat":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	case "/v4/busy":
		http.Error(w, "slow down", http.StatusTooManyRequests)
	default:
		http.NotFound(w, r)
	}
}

func TestSourceFromUser(t *testing.T) {
	s, m := newTestSource(t, apiHandler)

	d := s.FromUser(context.Background(), " octocat ")
	if d.Err != nil || d.Fallback() {
		t.Fatalf("FromUser() err = %v", d.Err)
	}
	if d.Label != "octocat" {
		t.Errorf("Label = %q", d.Label)
	}
	// 2024-01-02 is a Tuesday in the week starting 2023-12-31.
	if got := d.Grid.Level(0, 2); got != 3 {
		t.Errorf("Level(0, 2) = %d, want 3", got)
	}
	if d.Stats == nil || d.Stats.TotalContributions != 8 || d.Stats.MaxContribution != 5 || d.Stats.LongestStreak != 2 {
		t.Errorf("Stats = %+v", d.Stats)
	}

	values, err := m.Values()
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range values {
		if v != 0 && strings.HasPrefix(k, "fetch_errors_total") {
			t.Errorf("unexpected %s = %v", k, v)
		}
	}
}

func TestSourceFallback(t *testing.T) {
	s, m := newTestSource(t, apiHandler)

	tests := []struct {
		user   string
		want   error
		reason string
	}{
		{"ghost", contrib.ErrNotFound, "not_found"},
		{"busy", contrib.ErrRateLimited, "rate_limited"},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			d := s.FromUser(context.Background(), tt.user)
			if !errors.Is(d.Err, tt.want) {
				t.Fatalf("Err = %v, want %v", d.Err, tt.want)
			}
			if !d.Fallback() || d.Grid == nil || d.Grid.Weeks() != 53 {
				t.Errorf("expected placeholder grid, got %v", d)
			}
			if d.Label != tt.user {
				t.Errorf("Label = %q", d.Label)
			}
			if d.Stats == nil {
				t.Error("placeholder has no stats")
			}

			values, err := m.Values()
			if err != nil {
				t.Fatal(err)
			}
			if got := values[fmt.Sprintf("fetch_errors_total{%s}", tt.reason)]; got != 1 {
				t.Errorf("fetch_errors_total{%s} = %v, want 1", tt.reason, got)
			}
		})
	}
}

func TestSourceFromFile(t *testing.T) {
	s, m := newTestSource(t, apiHandler)
	dir := t.TempDir()

	path := filepath.Join(dir, "alice.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	d := s.FromFile(path)
	if d.Err != nil {
		t.Fatalf("FromFile() err = %v", d.Err)
	}
	if d.Label != "alice" || d.Stats.TotalContributions != 8 {
		t.Errorf("got %v stats %+v", d, d.Stats)
	}

	d = s.FromFile(filepath.Join(dir, "missing.json"))
	if d.Err == nil || !d.Fallback() {
		t.Fatal("missing file should fall back")
	}
	if d.Label != "missing" {
		t.Errorf("Label = %q", d.Label)
	}
	values, _ := m.Values()
	if values["fetch_errors_total{other}"] != 1 {
		t.Errorf("fetch_errors_total{other} = %v", values["fetch_errors_total{other}"])
	}
}

func TestSourceMockIsDeterministic(t *testing.T) {
	s, _ := newTestSource(t, apiHandler)
	a, b := s.Mock("x"), s.Mock("y")
	for w := range a.Grid.Weeks() {
		for day := range a.Grid.Days() {
			if a.Grid.Level(w, day) != b.Grid.Level(w, day) {
				t.Fatalf("mock grids differ at %d,%d", w, day)
			}
		}
	}
	if *a.Stats != *b.Stats {
		t.Errorf("mock stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestSourceStartup(t *testing.T) {
	s, _ := newTestSource(t, apiHandler)
	path := filepath.Join(t.TempDir(), "saved.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cfg   config.SourceConfig
		ok    bool
		label string
	}{
		{"file wins", config.SourceConfig{GridFile: path, Mock: true, Username: "octocat"}, true, "saved"},
		{"mock", config.SourceConfig{Mock: true, Username: "octocat"}, true, "sample"},
		{"user", config.SourceConfig{Username: "octocat"}, true, "octocat"},
		{"nothing", config.SourceConfig{}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := s.Startup(context.Background(), tt.cfg)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if d.Label != tt.label {
				t.Errorf("Label = %q, want %q", d.Label, tt.label)
			}
			if ok && d.Err != nil {
				t.Errorf("Err = %v", d.Err)
			}
		})
	}
}

func TestFailureReasonAndMessage(t *testing.T) {
	tests := []struct {
		err    error
		reason string
		msg    string
	}{
		{fmt.Errorf("ghost: %w", contrib.ErrNotFound), "not_found", "User not found. Showing sample data."},
		{contrib.ErrRateLimited, "rate_limited", "Rate limited. Showing sample data."},
		{fmt.Errorf("get: %w", context.DeadlineExceeded), "timeout", "Could not load data. Showing sample data."},
		{context.Canceled, "canceled", "Could not load data. Showing sample data."},
		{errors.New("boom"), "other", "Could not load data. Showing sample data."},
	}
	for _, tt := range tests {
		if got := FailureReason(tt.err); got != tt.reason {
			t.Errorf("FailureReason(%v) = %q, want %q", tt.err, got, tt.reason)
		}
		if got := UserMessage(tt.err); got != tt.msg {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.msg)
		}
	}
	if UserMessage(nil) != "" {
		t.Error("UserMessage(nil) should be empty")
	}
}
