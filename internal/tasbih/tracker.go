// Package tasbih owns the live counter ledger: it loads it from a store,
// applies day rollovers and persists every change.
package tasbih

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sadopc/deen/internal/clock"
	"github.com/sadopc/deen/internal/ledger"
)

// Store persists a whole ledger. LoadLedger returns nil when nothing has been
// saved yet.
type Store interface {
	LoadLedger() (*ledger.State, error)
	SaveLedger(ledger.State) error
}

type Tracker struct {
	mu      sync.Mutex
	store   Store
	clock   clock.Clock
	catalog []ledger.Definition
	log     *slog.Logger
	state   ledger.State
}

// New loads the ledger, reconciles it with catalog and catches up on any
// days that passed while the app was closed.
func New(store Store, clk clock.Clock, catalog []ledger.Definition, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loaded, err := store.LoadLedger()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var st ledger.State
	if loaded == nil {
		logger.Info("starting new ledger", "counters", len(catalog))
		st = ledger.New(catalog)
	} else {
		st = ledger.Sanitize(*loaded, catalog)
		if dropped := len(loaded.Counters) - matched(loaded.Counters, catalog); dropped > 0 {
			logger.Warn("dropped counters missing from catalog", "count", dropped)
		}
	}

	t := &Tracker{store: store, clock: clk, catalog: catalog, log: logger, state: st}
	t.state, _ = t.rollover(t.state)
	if err := t.save(); err != nil {
		t.log.Error("save ledger", "err", err)
	}
	return t, nil
}

func matched(counters []ledger.Counter, catalog []ledger.Definition) int {
	ids := make(map[string]bool, len(catalog))
	for _, d := range catalog {
		ids[d.ID] = true
	}
	n := 0
	for _, c := range counters {
		if ids[c.ID] {
			n++
			delete(ids, c.ID)
		}
	}
	return n
}

// rollover must be called with mu held (or before the tracker is shared).
func (t *Tracker) rollover(st ledger.State) (ledger.State, bool) {
	prev := st.LastResetDate
	next, fired := ledger.CheckRollover(st, t.clock.Now())
	if fired && prev != "" {
		t.log.Info("day rolled over", "date", prev, "total", next.History[prev])
	}
	return next, fired
}

func (t *Tracker) save() error {
	if err := t.store.SaveLedger(t.state); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Tick checks for a day change. It reports whether the ledger changed.
func (t *Tracker) Tick() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, fired := t.rollover(t.state)
	if !fired {
		return false, nil
	}
	t.state = next
	return true, t.save()
}

// Increment counts one recitation for id. A pending rollover is applied
// first so the count lands in the current day.
func (t *Tracker) Increment(id string) (ledger.Cue, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, _ := t.rollover(t.state)
	st, cue, err := ledger.Increment(st, id)
	if err != nil {
		return ledger.CueNone, fmt.Errorf("increment %q: %w", id, err)
	}
	t.state = st
	return cue, t.save()
}

func (t *Tracker) ResetCounter(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := ledger.ResetCounter(t.state, id)
	if err != nil {
		return fmt.Errorf("reset %q: %w", id, err)
	}
	t.state = st
	return t.save()
}

func (t *Tracker) SetTarget(id string, target int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := ledger.SetTarget(t.state, id, target)
	if err != nil {
		return fmt.Errorf("set target %q: %w", id, err)
	}
	t.state = st
	return t.save()
}

// FullReset wipes all progress and history, then starts today afresh.
func (t *Tracker) FullReset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := ledger.FullReset(t.state)
	t.state, _ = ledger.CheckRollover(st, t.clock.Now())
	t.log.Warn("ledger reset", "date", t.state.LastResetDate)
	return t.save()
}

// Snapshot returns a copy of the current ledger.
func (t *Tracker) Snapshot() ledger.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

func (t *Tracker) Stats() ledger.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.ComputeStats(t.state, t.clock.Now())
}

func (t *Tracker) Catalog() []ledger.Definition {
	return t.catalog
}

func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}
