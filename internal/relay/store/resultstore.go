// Package store holds the process-local, time-bounded store for auth
// results. Provider tokens park here for the few seconds between the OAuth
// callback and the frontend redeeming them, keyed by an opaque one-time id,
// so the tokens themselves never appear in a browser-visible URL.
package store

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intakeworks/authrelay/internal/relay/domain"
)

// DefaultResultTTL is long enough for an immediate browser redirect
// round-trip and short enough to bound the exposure of a leaked id.
const DefaultResultTTL = 60 * time.Second

// ErrNotFound reports an id that is absent, expired, or already consumed.
// All three cases look identical on purpose: a replayed id must learn
// nothing about why it failed.
var ErrNotFound = errors.New("store: auth result expired or invalid")

type entry struct {
	bundle    domain.TokenBundle
	expiresAt time.Time
}

// ResultStore maps opaque ids to token bundles with single-read semantics.
// Safe for concurrent use; Consume is an atomic check-and-delete so two
// racing reads of the same id can never both succeed.
type ResultStore struct {
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]entry

	// Sweep lifecycle, same shape as the other background workers.
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewResultStore creates a store with the given TTL. If ttl is 0 or
// negative, defaults to DefaultResultTTL.
func NewResultStore(ttl time.Duration, logger *slog.Logger) *ResultStore {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ResultStore{
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]entry),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Save stores a bundle and returns the opaque one-time id for it.
func (s *ResultStore) Save(bundle domain.TokenBundle) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.entries[id] = entry{
		bundle:    bundle,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return id
}

// Consume reads and deletes the bundle for id in one step. A second call
// with the same id, or a call after expiry, fails with ErrNotFound.
func (s *ResultStore) Consume(id string) (domain.TokenBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, id)
		return domain.TokenBundle{}, ErrNotFound
	}

	delete(s.entries, id)
	return e.bundle, nil
}

// Len reports the number of live entries. Used by tests to assert the
// sweep keeps memory bounded.
func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start begins the background sweep that deletes expired entries on an
// interval equal to the TTL. Non-blocking; call Stop to shut it down.
// An unconsumed entry can therefore live up to 2xTTL in the worst case,
// which matches what Consume enforces anyway.
func (s *ResultStore) Start() {
	go s.run()
	s.logger.Info("result store sweep started", "ttl", s.ttl)
}

// Stop shuts down the background sweep. Blocks until the worker exits.
func (s *ResultStore) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("result store sweep stopped")
}

func (s *ResultStore) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes every entry past its expiry. Purely a memory bound for ids
// the browser never came back for; Consume already refuses expired reads.
func (s *ResultStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	var removed int
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	remaining := len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("swept expired auth results", "removed", removed, "remaining", remaining)
	}
}
