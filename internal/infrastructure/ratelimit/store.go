package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterEntry is one client's token bucket plus the last time it was used
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store is a thread-safe set of per-key token buckets. Idle entries are evicted
// periodically so one-off clients do not accumulate.
type Store struct {
	entries map[string]*limiterEntry
	mutex   sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewStore creates a limiter store allowing perMinute requests per key with the given burst
func NewStore(perMinute, burst int) *Store {
	if burst <= 0 {
		burst = 1
	}

	store := &Store{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		stop:    make(chan struct{}),
	}

	// Start cleanup goroutine to remove idle entries every minute
	go store.cleanupIdle(time.Minute)

	return store
}

// Allow reports whether a request for key may proceed now
func (s *Store) Allow(key string) bool {
	s.mutex.Lock()
	entry, exists := s.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = time.Now()
	s.mutex.Unlock()

	return entry.limiter.Allow()
}

// Size returns the current number of tracked keys (for debugging/monitoring)
func (s *Store) Size() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) cleanupIdle(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictIdle(now)
		}
	}
}

// evictIdle removes entries not seen within idleTTL of now
func (s *Store) evictIdle(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.idleTTL {
			delete(s.entries, key)
		}
	}
}
