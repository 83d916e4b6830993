package optimizer

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type memoKey struct {
	base       Values
	ingredient int
	delta      int
}

// MemoEvaluator caches EvaluateIncremental results in a bounded LRU.
// Sibling branches sharing a prefix hit the same (base, ingredient, delta)
// triples. It is meant to be owned by a single worker.
type MemoEvaluator struct {
	next  stepper
	cache *lru.Cache[memoKey, Values]

	hits, misses uint64
}

// NewMemoEvaluator wraps c with a cache of the given capacity.
func NewMemoEvaluator(c *Catalog, size int) (*MemoEvaluator, error) {
	return newMemo(c, size)
}

func newMemo(next stepper, size int) (*MemoEvaluator, error) {
	cache, err := lru.New[memoKey, Values](size)
	if err != nil {
		return nil, err
	}
	return &MemoEvaluator{next: next, cache: cache}, nil
}

// EvaluateIncremental implements stepper.
func (m *MemoEvaluator) EvaluateIncremental(base Values, ingredient, delta int) Values {
	k := memoKey{base, ingredient, delta}
	if v, ok := m.cache.Get(k); ok {
		m.hits++
		return v
	}
	m.misses++
	v := m.next.EvaluateIncremental(base, ingredient, delta)
	m.cache.Add(k, v)
	return v
}

// HitRate returns the fraction of lookups answered from the cache.
func (m *MemoEvaluator) HitRate() float64 {
	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}

// Len returns the number of cached entries.
func (m *MemoEvaluator) Len() int { return m.cache.Len() }
