package bvh

// QueryRange returns every payload whose AABB intersects a sphere of
// the given center and radius, each reported at most once. Results are
// memoized per tree generation when EnableQueryCache has been called.
// Grounded on spatial_partitioning.go's Octree.Query, generalized from
// an octree cell test to a BVH node-bounds test.
func (t *Tree) QueryRange(center Vector3, radius float64) []interface{} {
	if t.root == nilIndex {
		return nil
	}

	key := rangeCacheKey{generation: t.generation, center: center, radius: radius}
	if cached, ok := t.cachedRange(key); ok {
		return cached
	}

	var results []interface{}
	seen := make(map[ObjectID]bool)
	t.queryRangeNode(t.root, center, radius, &results, seen)

	t.storeRange(key, results)
	return results
}

func (t *Tree) queryRangeNode(idx nodeIndex, center Vector3, radius float64, results *[]interface{}, seen map[ObjectID]bool) {
	n := t.arena.at(idx)
	if !n.bounds.IntersectsSphere(center, radius) {
		return
	}

	if n.isLeaf {
		for _, it := range n.items {
			if seen[it.id] {
				continue
			}
			if it.bounds.IntersectsSphere(center, radius) {
				seen[it.id] = true
				*results = append(*results, it.payload)
			}
		}
		return
	}

	t.queryRangeNode(n.left, center, radius, results, seen)
	t.queryRangeNode(n.right, center, radius, results, seen)
}
