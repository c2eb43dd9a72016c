package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/archive"
	"github.com/pfrederiksen/advent-wins/internal/logger"
	"github.com/pfrederiksen/advent-wins/internal/match"
	"github.com/pfrederiksen/advent-wins/internal/notifier"
	"github.com/pfrederiksen/advent-wins/internal/pipeline"
	"github.com/pfrederiksen/advent-wins/internal/storage"
)

// ErrCheckInProgress is returned when a check is requested while another one runs
var ErrCheckInProgress = errors.New("check already in progress")

// Acquirer returns the winner data to display
type Acquirer interface {
	Acquire(ctx context.Context, members []advent.Member, forceSimulate bool) pipeline.Result
}

// Tracker is the application service behind the CLI and the HTTP API
type Tracker struct {
	store    *storage.Storage
	acquirer Acquirer
	notifier notifier.Notifier
	now      func() time.Time

	checkMu  sync.Mutex
	checking atomic.Bool
	stateMu  sync.Mutex
}

// New creates a Tracker. A nil notifier disables notifications.
func New(store *storage.Storage, acquirer Acquirer, n notifier.Notifier) *Tracker {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Tracker{
		store:    store,
		acquirer: acquirer,
		notifier: n,
		now:      time.Now,
	}
}

// SetClock replaces time.Now
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// CheckResult describes one completed check
type CheckResult struct {
	CheckedAt  time.Time         `json:"checkedAt"`
	Source     advent.DataSource `json:"dataSource"`
	Error      string            `json:"error,omitempty"`
	CachedAsOf *time.Time        `json:"cachedAsOf,omitempty"`
	Days       int               `json:"days"`
	Wins       []advent.WinEntry `json:"wins"`
	NewWins    []advent.WinEntry `json:"newWins"`
}

// Check acquires fresh data and records the outcome. Acquisition problems are
// reported in the result; the returned error covers storage failures and
// ErrCheckInProgress.
func (t *Tracker) Check(ctx context.Context, simulate bool) (*CheckResult, error) {
	if !t.checkMu.TryLock() {
		return nil, ErrCheckInProgress
	}
	defer t.checkMu.Unlock()
	t.checking.Store(true)
	defer t.checking.Store(false)

	state, err := t.load()
	if err != nil {
		return nil, err
	}

	start := t.now()
	res := t.acquirer.Acquire(ctx, advent.AllMembers(state.Groups), simulate)
	checkedAt := t.now()
	logger.RecordTiming("tracker.check", checkedAt.Sub(start))

	if res.Source == advent.SourceReal {
		ds := &archive.Dataset{LastUpdated: checkedAt.UTC(), DayData: res.DayData}
		if err := t.store.Archive().Save(ds); err != nil {
			logger.Error("Saving archive failed", nil, err)
		}
	}

	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	// Reload so edits made while fetching are kept
	state, err = t.store.LoadState()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	state.DayData = res.DayData
	if state.DayData == nil {
		state.DayData = []advent.DayData{}
	}
	state.LastCheck = &checkedAt
	state.DataSource = res.Source
	state.LastError = res.Err
	state.CachedAsOf = res.CachedAsOf

	wins := match.Match(state.DayData, advent.AllMembers(state.Groups))
	newWins := []advent.WinEntry{}

	// Demo data never triggers notifications
	if res.Source == advent.SourceReal || res.Source == advent.SourceCached {
		fresh, next := match.Unnotified(wins, state.Notified)
		if len(fresh) > 0 {
			if err := t.notifier.Notify(ctx, fresh); err != nil {
				logger.Error("Sending notifications failed", logger.Fields{"wins": len(fresh)}, err)
			} else {
				state.Notified = next
				logger.IncrCounter("tracker.notified")
			}
		}
		newWins = fresh
	}

	if err := t.store.SaveState(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	logger.Info("Check completed", logger.Fields{
		"source":   string(res.Source),
		"days":     len(state.DayData),
		"wins":     len(wins),
		"new_wins": len(newWins),
	})

	return &CheckResult{
		CheckedAt:  checkedAt,
		Source:     res.Source,
		Error:      res.Err,
		CachedAsOf: res.CachedAsOf,
		Days:       len(state.DayData),
		Wins:       wins,
		NewWins:    newWins,
	}, nil
}

// Status summarizes the stored state
type Status struct {
	DataSource advent.DataSource `json:"dataSource"`
	LastCheck  *time.Time        `json:"lastCheck,omitempty"`
	Live       bool              `json:"live"`
	LastError  string            `json:"lastError,omitempty"`
	CachedAsOf *time.Time        `json:"cachedAsOf,omitempty"`
	Days       int               `json:"days"`
	Members    int               `json:"members"`
	Wins       int               `json:"wins"`
	Checking   bool              `json:"checking"`
}

// Status returns the current status
func (t *Tracker) Status() (*Status, error) {
	state, err := t.load()
	if err != nil {
		return nil, err
	}

	members := advent.AllMembers(state.Groups)
	s := &Status{
		DataSource: state.DataSource,
		LastCheck:  state.LastCheck,
		LastError:  state.LastError,
		CachedAsOf: state.CachedAsOf,
		Days:       len(state.DayData),
		Members:    len(members),
		Wins:       len(match.Match(state.DayData, members)),
		Checking:   t.checking.Load(),
	}
	if state.LastCheck != nil {
		s.Live = match.IsLive(state.DataSource, *state.LastCheck, t.now())
	}
	return s, nil
}

// Wins returns every match of the stored day data against the registered tickets
func (t *Tracker) Wins() ([]advent.WinEntry, error) {
	state, err := t.load()
	if err != nil {
		return nil, err
	}
	return match.Match(state.DayData, advent.AllMembers(state.Groups)), nil
}

func (t *Tracker) load() (*storage.State, error) {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	state, err := t.store.LoadState()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state, nil
}

// update applies fn to the stored groups and persists the result
func (t *Tracker) update(fn func([]advent.Group) ([]advent.Group, error)) ([]advent.Group, error) {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()

	state, err := t.store.LoadState()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	groups, err := fn(state.Groups)
	if err != nil {
		return nil, err
	}
	state.Groups = groups

	if err := t.store.SaveState(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}
	return groups, nil
}
