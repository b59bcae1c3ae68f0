package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mswatii/cs2-tradeup/internal/metrics"
)

// Store holds the live catalog snapshot and swaps it on reload.
// Readers always see a complete snapshot.
type Store struct {
	source Source

	mu       sync.RWMutex
	current  *Catalog
	loadedAt time.Time
}

// NewStore creates a store that starts out empty.
func NewStore(source Source) *Store {
	return &Store{source: source, current: Empty()}
}

// Current returns the live snapshot.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadedAt is the time of the last successful reload, zero if none.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Reload fetches a fresh snapshot from the source. On failure the previous
// snapshot stays live.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	cat, err := s.source.Load(ctx)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("reload catalog: %w", err)
	}

	s.mu.Lock()
	s.current = cat
	s.loadedAt = time.Now()
	s.mu.Unlock()

	metrics.CatalogReloads.WithLabelValues(metrics.ResultOK).Inc()
	metrics.CatalogItems.Set(float64(cat.Len()))
	slog.Info("Catalog loaded", "items", cat.Len(), "collections", len(cat.Collections()))
	return cat, nil
}
