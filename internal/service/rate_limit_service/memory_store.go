package rate_limit_service

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore keeps per-key timestamp lists inside a bounded LRU so the
// key table can not grow without limit. Evicting an idle key only
// forgets old requests, which errs on the side of allowing.
type MemoryStore struct {
	entries *lru.Cache[string, []time.Time]
}

func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = defaultMaxTrackedKeys
	}
	entries, err := lru.New[string, []time.Time](maxKeys)
	if err != nil {
		panic(err)
	}
	return &MemoryStore{entries: entries}
}

func (m *MemoryStore) Prune(_ context.Context, key string, cutoff time.Time) (int, error) {
	timestamps, ok := m.entries.Get(key)
	if !ok {
		return 0, nil
	}

	recent := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) == 0 {
		m.entries.Remove(key)
		return 0, nil
	}
	m.entries.Add(key, recent)
	return len(recent), nil
}

func (m *MemoryStore) Record(_ context.Context, key string, at time.Time, _ time.Duration) error {
	timestamps, _ := m.entries.Get(key)
	m.entries.Add(key, append(timestamps, at))
	return nil
}
