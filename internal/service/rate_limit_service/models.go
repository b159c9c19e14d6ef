package rate_limit_service

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultMaxRequests = 10
	DefaultWindow      = 60 * time.Second

	// bound on the number of client keys tracked at once. older idle
	// keys are evicted instead of accumulating forever.
	defaultMaxTrackedKeys = 16384
)

// TimestampStore keeps the recent request timestamps per client key. The
// limiter serializes all calls for the same key, implementations only
// have to be safe for concurrent use across different keys.
type TimestampStore interface {
	// Prune drops timestamps older than cutoff and reports how many remain.
	Prune(ctx context.Context, key string, cutoff time.Time) (int, error)
	// Record appends a request timestamp for the key. ttl tells external
	// stores how long the key stays interesting.
	Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}

// RateLimiter is a per-client sliding window gate shared by every code
// execution and submission endpoint.
type RateLimiter struct {
	MaxRequests int
	Window      time.Duration
	Store       TimestampStore

	// Now is swappable so tests can move time without sleeping
	Now func() time.Time

	mu       sync.Mutex
	keyLocks *lru.Cache[string, *sync.Mutex]
}

func New(store TimestampStore, maxRequests int, window time.Duration) *RateLimiter {
	locks, err := lru.New[string, *sync.Mutex](defaultMaxTrackedKeys)
	if err != nil {
		// only reachable with a non-positive size constant
		panic(err)
	}
	return &RateLimiter{
		MaxRequests: maxRequests,
		Window:      window,
		Store:       store,
		Now:         time.Now,
		keyLocks:    locks,
	}
}

// NewFromEnv builds a limiter from RATE_LIMIT_MAX_REQUESTS and
// RATE_LIMIT_WINDOW_MS, falling back to the defaults with a logged
// warning when they are absent or malformed.
func NewFromEnv(store TimestampStore) *RateLimiter {
	maxRequests := envInt("RATE_LIMIT_MAX_REQUESTS", DefaultMaxRequests)
	windowMs := envInt("RATE_LIMIT_WINDOW_MS", int(DefaultWindow.Milliseconds()))
	return New(store, maxRequests, time.Duration(windowMs)*time.Millisecond)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Warnf("invalid value %q for %s. using default %d", raw, key, fallback)
		return fallback
	}
	return value
}

// keyLock returns the mutex serializing all limiter work for one key.
// lock granularity stays per key, contention on one client never blocks
// another.
func (rl *RateLimiter) keyLock(key string) *sync.Mutex {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lock, ok := rl.keyLocks.Get(key); ok {
		return lock
	}
	lock := &sync.Mutex{}
	rl.keyLocks.Add(key, lock)
	return lock
}
