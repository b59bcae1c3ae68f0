package session

import (
	"math"
	"sync"
	"time"

	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/metrics"
	"github.com/mswatii/cs2-tradeup/internal/models"
	"github.com/mswatii/cs2-tradeup/internal/tradeup"
)

// Session is one user's trade-up workspace. All methods are safe for
// concurrent use; mutation and resolution never interleave.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	sel      *tradeup.Selection
	outcomes []tradeup.Outcome
	// resolvedOn is the catalog snapshot outcomes were computed against
	resolvedOn *catalog.Catalog
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Entries   []tradeup.Entry
	Rarity    models.Rarity // RarityUnknown when empty
	Variant   models.Variant
	Outcomes  []tradeup.Outcome // nil until resolved, after any change, and after a catalog reload
}

func newSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now(), sel: tradeup.NewSelection()}
}

// Add appends item to the selection.
func (s *Session) Add(item models.Item) (tradeup.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.sel.Add(item)
	s.mutated(metrics.OpAdd, err)
	return entry, err
}

// Remove deletes the item at position.
func (s *Session) Remove(position int) (tradeup.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.sel.Remove(position)
	s.mutated(metrics.OpRemove, err)
	return entry, err
}

// SetWear sets the wear at position. A nil wear unsets it.
func (s *Session) SetWear(position int, wear *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := math.NaN()
	if wear != nil {
		value = *wear
	}
	err := s.sel.SetWear(position, value)
	s.mutated(metrics.OpSetWear, err)
	return err
}

// Clear empties the selection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel.Clear()
	s.mutated(metrics.OpClear, nil)
}

func (s *Session) mutated(op string, err error) {
	if err != nil {
		metrics.SelectionMutations.WithLabelValues(op, metrics.ResultRejected).Inc()
		return
	}
	s.outcomes, s.resolvedOn = nil, nil
	metrics.SelectionMutations.WithLabelValues(op, metrics.ResultOK).Inc()
}

// Resolve computes and stores the outcomes of the current selection.
func (s *Session) Resolve(cat *catalog.Catalog) ([]tradeup.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.resolveLocked(cat)
	if err != nil {
		return nil, err
	}
	return append([]tradeup.Outcome(nil), out...), nil
}

func (s *Session) resolveLocked(cat *catalog.Catalog) ([]tradeup.Outcome, error) {
	out, err := tradeup.Resolve(s.sel, cat.Items())
	if err != nil {
		metrics.Resolutions.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, err
	}
	metrics.Resolutions.WithLabelValues(metrics.ResultOK).Inc()
	s.outcomes, s.resolvedOn = out, cat
	return out, nil
}

// storedOutcomes returns the outcomes resolved against cat, nil when none
// are stored or they belong to an older snapshot.
func (s *Session) storedOutcomes(cat *catalog.Catalog) []tradeup.Outcome {
	if s.resolvedOn != cat {
		return nil
	}
	return s.outcomes
}

// Simulate draws trials times from the outcomes stored for cat, resolving
// first when none are stored.
func (s *Session) Simulate(cat *catalog.Catalog, trials int, rng tradeup.RandomSource) (tradeup.SimulationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes := s.storedOutcomes(cat)
	if outcomes == nil {
		var err error
		if outcomes, err = s.resolveLocked(cat); err != nil {
			return tradeup.SimulationResult{}, err
		}
	}

	res, err := tradeup.Simulate(outcomes, trials, rng)
	if err != nil {
		return tradeup.SimulationResult{}, err
	}
	metrics.SimulatedDraws.Add(float64(trials))
	return res, nil
}

// Snapshot returns a copy of the session state. Outcomes resolved against
// a snapshot other than current are left out.
func (s *Session) Snapshot(current *catalog.Catalog) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Entries:   s.sel.Entries(),
	}
	snap.Rarity, _ = s.sel.Rarity()
	snap.Variant, _ = s.sel.Variant()
	if out := s.storedOutcomes(current); out != nil {
		snap.Outcomes = append([]tradeup.Outcome(nil), out...)
	}
	return snap
}
