// Package feed loads contribution datasets off the frame loop.
package feed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/contribscape/internal/config"
	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/logger"
	"github.com/Faultbox/contribscape/internal/metrics"
)

// Dataset is a grid ready to visualize.
type Dataset struct {
	Grid  *contrib.Grid
	Label string
	Stats *contrib.Stats
	// Err is the load failure when Grid is the placeholder.
	Err error
}

// Fallback reports whether the dataset is the placeholder grid.
func (d Dataset) Fallback() bool {
	return d.Err != nil
}

// Source produces datasets from the API, saved payloads or the mock
// generator. Failed loads fall back to the mock grid.
type Source struct {
	Client   *contrib.Client
	Year     int
	MockSeed int64
	Metrics  *metrics.Manager
}

// NewSource builds a source from the source config section.
func NewSource(cfg config.SourceConfig, year int, m *metrics.Manager) *Source {
	return &Source{
		Client:   contrib.NewClient(cfg.APIURL, cfg.Timeout),
		Year:     year,
		MockSeed: cfg.MockSeed,
		Metrics:  m,
	}
}

// Mock returns the placeholder grid under label.
func (s *Source) Mock(label string) Dataset {
	g := contrib.MockGrid(s.Year, s.MockSeed)
	stats := contrib.MockStats(g)
	return Dataset{Grid: g, Label: label, Stats: &stats}
}

// FromUser fetches username's calendar.
func (s *Source) FromUser(ctx context.Context, username string) Dataset {
	username = strings.TrimSpace(username)
	p, err := s.Client.Fetch(ctx, username)
	if err != nil {
		return s.fallback(username, err)
	}
	return s.fromPayload(p, username)
}

// FromFile loads a saved payload; the label is the file's base name.
func (s *Source) FromFile(path string) Dataset {
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := contrib.ReadPayloadFile(path)
	if err != nil {
		return s.fallback(label, err)
	}
	return s.fromPayload(p, label)
}

func (s *Source) fromPayload(p *contrib.Payload, label string) Dataset {
	stats := contrib.CalculateStats(p, s.Year)
	return Dataset{Grid: contrib.Normalize(p, s.Year), Label: label, Stats: &stats}
}

func (s *Source) fallback(label string, err error) Dataset {
	s.Metrics.FetchFailed(FailureReason(err))
	logger.Warn("loading contributions failed, using placeholder grid",
		zap.String("label", label),
		zap.Error(err),
	)
	d := s.Mock(label)
	d.Err = err
	return d
}

// FailureReason classifies a load error for metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, contrib.ErrNotFound):
		return "not_found"
	case errors.Is(err, contrib.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// UserMessage turns a load error into the line shown under the form.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, contrib.ErrNotFound):
		return "User not found. Showing sample data."
	case errors.Is(err, contrib.ErrRateLimited):
		return "Rate limited. Showing sample data."
	default:
		return "Could not load data. Showing sample data."
	}
}

// Startup picks the first dataset: a saved payload, the mock grid or the
// configured user. ok is false when nothing is configured.
func (s *Source) Startup(ctx context.Context, cfg config.SourceConfig) (d Dataset, ok bool) {
	switch {
	case cfg.GridFile != "":
		return s.FromFile(cfg.GridFile), true
	case cfg.Mock:
		return s.Mock("sample"), true
	case cfg.Username != "":
		return s.FromUser(ctx, cfg.Username), true
	default:
		return Dataset{}, false
	}
}

func (d Dataset) String() string {
	if d.Grid == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%s (%d weeks)", d.Label, d.Grid.Weeks())
}
