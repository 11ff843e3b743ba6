package jwtx

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/intakeworks/authrelay/pkg/slogx"
)

// DefaultKeyCacheTTL matches the provider-recommended JWKS cache max age.
const DefaultKeyCacheTTL = 24 * time.Hour

// RemoteKeySet resolves signing keys by kid from a provider JWKS endpoint,
// caching each key for a bounded time. A cache miss (unseen kid or stale
// entry) refetches the whole document. Concurrent misses may each trigger a
// fetch; the last write wins and they all converge on the same key material,
// so we don't bother with single-flight.
type RemoteKeySet struct {
	url    string
	ttl    time.Duration
	client *http.Client

	mu   sync.RWMutex
	keys map[string]cachedKey
}

type cachedKey struct {
	key       *rsa.PublicKey
	fetchedAt time.Time
}

// NewRemoteKeySet creates a resolver for the given JWKS URL. A nil client
// falls back to a plain http.Client; callers should pass one with a timeout.
func NewRemoteKeySet(jwksURL string, ttl time.Duration, client *http.Client) *RemoteKeySet {
	if ttl <= 0 {
		ttl = DefaultKeyCacheTTL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &RemoteKeySet{
		url:    jwksURL,
		ttl:    ttl,
		client: client,
		keys:   make(map[string]cachedKey),
	}
}

// ResolveKey returns the public key for the given kid, fetching the JWKS
// document on cache miss. Unknown kid and unreachable endpoint both come
// back as ErrKeyResolution; the caller is not supposed to tell them apart,
// the logs are.
func (s *RemoteKeySet) ResolveKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if kid == "" {
		return nil, fmt.Errorf("jwtx: missing kid: %w", ErrKeyResolution)
	}

	s.mu.RLock()
	entry, ok := s.keys[kid]
	s.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < s.ttl {
		return entry.key, nil
	}

	if err := s.Refresh(ctx); err != nil {
		slogx.FromContext(ctx).Warn("jwks fetch failed", "url", s.url, "err", err)
		return nil, fmt.Errorf("jwtx: fetch signing keys: %w", ErrKeyResolution)
	}

	s.mu.RLock()
	entry, ok = s.keys[kid]
	s.mu.RUnlock()

	if !ok {
		slogx.FromContext(ctx).Warn("kid not present in provider jwks", "kid", kid)
		return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, ErrKeyResolution)
	}
	return entry.key, nil
}

// Refresh fetches the JWKS document and replaces all cached entries.
// Also used by the readiness probe to confirm the provider is reachable.
func (s *RemoteKeySet) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("jwtx: build jwks request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("jwtx: get jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwtx: jwks endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("jwtx: read jwks body: %w", err)
	}

	var doc JWKS
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("jwtx: decode jwks: %w", err)
	}

	now := time.Now()
	fresh := make(map[string]cachedKey, len(doc.Keys))
	for _, j := range doc.Keys {
		pub, err := parseJWKToKey(j)
		if err != nil {
			// Non-RSA entries are fine to skip, the provider may publish
			// encryption keys alongside signing keys.
			continue
		}
		fresh[j.Kid] = cachedKey{key: pub, fetchedAt: now}
	}

	s.mu.Lock()
	s.keys = fresh
	s.mu.Unlock()

	return nil
}

// IsReady reports whether at least one key has been cached.
func (s *RemoteKeySet) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys) > 0
}
