package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps a Resolver with TTL-based caching so authorization
// checks do not hit the backing store every time.
type CachedResolver[S comparable] struct {
	inner Resolver[S]
	mu    sync.RWMutex
	cache map[S]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	profile   Profile
	expiresAt time.Time
}

// NewCachedResolver wraps inner, keeping each resolved profile for ttl.
func NewCachedResolver[S comparable](inner Resolver[S], ttl time.Duration) *CachedResolver[S] {
	return &CachedResolver[S]{
		inner: inner,
		cache: make(map[S]cacheEntry),
		ttl:   ttl,
	}
}

// Resolve returns the cached profile when fresh, otherwise asks the inner
// resolver and caches what it got. Unknown subjects (nil profiles) are
// cached too; invalidate when they gain access.
func (r *CachedResolver[S]) Resolve(ctx context.Context, subject S) (Profile, error) {
	r.mu.RLock()
	entry, ok := r.cache[subject]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.profile, nil
	}

	profile, err := r.inner.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[subject] = cacheEntry{
		profile:   profile,
		expiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Unlock()
	return profile, nil
}

// Invalidate drops one subject from the cache. Call it when a subject's
// permissions or scope change.
func (r *CachedResolver[S]) Invalidate(subject S) {
	r.mu.Lock()
	delete(r.cache, subject)
	r.mu.Unlock()
}

// InvalidateAll clears the whole cache.
func (r *CachedResolver[S]) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[S]cacheEntry)
	r.mu.Unlock()
}
