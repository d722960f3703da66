package bvh

import lru "github.com/hashicorp/golang-lru"

// queryCacheSize bounds the number of memoized range/bounds query
// results kept alive at once.
const queryCacheSize = 256

// rangeCacheKey identifies a query_range call against a specific tree
// generation (§4.6: the generation counter bumps on every mutation, so
// a stale entry is simply never looked up again rather than needing
// explicit invalidation).
type rangeCacheKey struct {
	generation uint64
	center     Vector3
	radius     float64
}

// boundsCacheKey identifies an intersect_bounds call against a specific
// tree generation.
type boundsCacheKey struct {
	generation uint64
	box        AABB
}

// enableCache lazily creates the tree's query cache. Caching is off
// (cache == nil) until a caller opts in with EnableQueryCache, since the
// embedded-library contract (spec.md §6) shouldn't add hidden memory
// growth nobody asked for.
func (t *Tree) enableCache() {
	if t.cache != nil {
		return
	}
	c, err := lru.New(queryCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// queryCacheSize never is.
		panic(err)
	}
	t.cache = c
}

// EnableQueryCache turns on LRU memoization of QueryRange and
// IntersectBounds results. Grounded on hashicorp/golang-lru, pulled into
// the dependency surface via newbthenewbd-btrfs-rec.
func (t *Tree) EnableQueryCache() {
	t.enableCache()
}

// DisableQueryCache drops the cache and stops memoizing further
// queries.
func (t *Tree) DisableQueryCache() {
	t.cache = nil
}

func (t *Tree) cachedRange(key rangeCacheKey) ([]interface{}, bool) {
	if t.cache == nil {
		return nil, false
	}
	v, ok := t.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]interface{}), true
}

func (t *Tree) storeRange(key rangeCacheKey, results []interface{}) {
	if t.cache == nil {
		return
	}
	t.cache.Add(key, results)
}

func (t *Tree) cachedBounds(key boundsCacheKey) ([]interface{}, bool) {
	if t.cache == nil {
		return nil, false
	}
	v, ok := t.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]interface{}), true
}

func (t *Tree) storeBounds(key boundsCacheKey, results []interface{}) {
	if t.cache == nil {
		return
	}
	t.cache.Add(key, results)
}
