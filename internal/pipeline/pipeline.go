// Package pipeline decides which winner data to show.
//
// Acquire walks a fixed sequence of tiers and always returns a tagged Result:
//
//	simulated   the caller asked for demo data
//	cached      the calendar has ended; the archive is returned without fetching
//	real        one live fetch succeeded
//	cached      the live fetch failed and an archive exists (Err explains why)
//	simulated   the live fetch failed, no archive, fallback policy "simulate"
//	error       the live fetch failed, no archive, fallback policy "error"
//
// There is no retry: each call performs at most one network request. Callers
// serialize calls and re-invoke Acquire to check again.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/archive"
	"github.com/pfrederiksen/advent-wins/internal/logger"
)

// EventEnd is the default cutoff after which the live page is no longer polled
var EventEnd = time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)

// Fallback selects the terminal tier used when no archive is available
type Fallback string

const (
	FallbackError    Fallback = "error"
	FallbackSimulate Fallback = "simulate"
)

// ParseFallback validates a fallback policy name
func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(s); f {
	case FallbackError, FallbackSimulate:
		return f, nil
	}
	return "", fmt.Errorf("invalid fallback: %q (must be 'error' or 'simulate')", s)
}

// Fetcher performs the single live retrieval
type Fetcher interface {
	FetchWins(ctx context.Context) ([]advent.DayData, error)
}

// Simulator produces demo data
type Simulator interface {
	Generate(members []advent.Member) []advent.DayData
}

// Result is the outcome of one acquisition
type Result struct {
	Source     advent.DataSource `json:"dataSource"`
	DayData    []advent.DayData  `json:"dayData"`
	Err        string            `json:"error,omitempty"`
	CachedAsOf *time.Time        `json:"cachedAsOf,omitempty"`
}

// Pipeline holds the collaborators of an acquisition. It keeps no state between calls.
type Pipeline struct {
	fetcher   Fetcher
	archive   archive.Loader
	simulator Simulator
	fallback  Fallback
	eventEnd  time.Time
	now       func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithFallback sets the terminal tier policy
func WithFallback(f Fallback) Option {
	return func(p *Pipeline) { p.fallback = f }
}

// WithEventEnd sets the cutoff after which only the archive is used
func WithEventEnd(t time.Time) Option {
	return func(p *Pipeline) { p.eventEnd = t }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline. arch may be nil when no archive exists.
func New(fetcher Fetcher, arch archive.Loader, simulator Simulator, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		archive:   arch,
		simulator: simulator,
		fallback:  FallbackError,
		eventEnd:  EventEnd,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns the winner data to display. It never fails; problems are
// reported through Result.Source and Result.Err.
func (p *Pipeline) Acquire(ctx context.Context, members []advent.Member, forceSimulate bool) Result {
	if forceSimulate {
		return p.simulated(members, "")
	}

	if !p.now().Before(p.eventEnd) {
		if ds := p.loadArchive(); ds != nil {
			logger.IncrCounter("acquire.cached")
			return Result{
				Source:     advent.SourceCached,
				DayData:    ds.DayData,
				CachedAsOf: asOf(ds),
			}
		}
		logger.Warn("Calendar has ended but no archive is available, trying live page", logger.Fields{
			"event_end": p.eventEnd.Format(time.RFC3339),
		})
	}

	days, err := p.fetcher.FetchWins(ctx)
	if err == nil {
		logger.IncrCounter("acquire.real")
		return Result{Source: advent.SourceReal, DayData: days}
	}

	logger.Warn("Live fetch failed", logger.Fields{"error": err.Error()})

	if ds := p.loadArchive(); ds != nil {
		logger.IncrCounter("acquire.cached")
		msg := err.Error()
		if !ds.LastUpdated.IsZero() {
			msg = fmt.Sprintf("%s (showing data as of %s)", msg, ds.LastUpdated.Format("2006-01-02"))
		}
		return Result{
			Source:     advent.SourceCached,
			DayData:    ds.DayData,
			Err:        msg,
			CachedAsOf: asOf(ds),
		}
	}

	if p.fallback == FallbackSimulate && p.simulator != nil {
		return p.simulated(members, err.Error())
	}

	logger.IncrCounter("acquire.error")
	return Result{
		Source:  advent.SourceError,
		DayData: []advent.DayData{},
		Err:     err.Error(),
	}
}

func (p *Pipeline) simulated(members []advent.Member, reason string) Result {
	if p.simulator == nil {
		logger.IncrCounter("acquire.error")
		return Result{Source: advent.SourceError, DayData: []advent.DayData{}, Err: "demo data is not available"}
	}
	logger.IncrCounter("acquire.simulated")
	return Result{
		Source:  advent.SourceSimulated,
		DayData: p.simulator.Generate(members),
		Err:     reason,
	}
}

// loadArchive returns nil when there is no usable archive
func (p *Pipeline) loadArchive() *archive.Dataset {
	if p.archive == nil {
		return nil
	}
	ds, err := p.archive.Load()
	if err != nil {
		logger.Error("Loading archive failed", nil, err)
		return nil
	}
	return ds
}

func asOf(ds *archive.Dataset) *time.Time {
	if ds.LastUpdated.IsZero() {
		return nil
	}
	t := ds.LastUpdated
	return &t
}
