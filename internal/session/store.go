package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mswatii/cs2-tradeup/internal/metrics"
)

// Store keeps live sessions in an LRU with time-based expiration.
// The least recently used session is evicted once size is reached.
type Store struct {
	lru *expirable.LRU[string, *Session]
}

// NewStore creates a store holding at most size sessions for ttl each.
func NewStore(size int, ttl time.Duration) *Store {
	onEvict := func(string, *Session) { metrics.ActiveSessions.Dec() }
	return &Store{lru: expirable.NewLRU[string, *Session](size, onEvict, ttl)}
}

// Create starts an empty session.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString())
	metrics.ActiveSessions.Inc()
	s.lru.Add(sess.ID, sess)
	return sess
}

// Get returns the session with id, refreshing its recency.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.lru.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete discards the session with id.
func (s *Store) Delete(id string) error {
	if !s.lru.Remove(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Len returns the number of live sessions, expired ones included until purged.
func (s *Store) Len() int {
	return s.lru.Len()
}
