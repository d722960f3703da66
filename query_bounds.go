package bvh

// IntersectBounds returns every payload whose AABB overlaps box, each
// reported at most once. Results are memoized per tree generation when
// EnableQueryCache has been called.
func (t *Tree) IntersectBounds(box AABB) []interface{} {
	if t.root == nilIndex {
		return nil
	}

	key := boundsCacheKey{generation: t.generation, box: box}
	if cached, ok := t.cachedBounds(key); ok {
		return cached
	}

	var results []interface{}
	seen := make(map[ObjectID]bool)
	t.intersectBoundsNode(t.root, box, &results, seen)

	t.storeBounds(key, results)
	return results
}

func (t *Tree) intersectBoundsNode(idx nodeIndex, box AABB, results *[]interface{}, seen map[ObjectID]bool) {
	n := t.arena.at(idx)
	if !Intersects(n.bounds, box) {
		return
	}

	if n.isLeaf {
		for _, it := range n.items {
			if seen[it.id] {
				continue
			}
			if Intersects(it.bounds, box) {
				seen[it.id] = true
				*results = append(*results, it.payload)
			}
		}
		return
	}

	t.intersectBoundsNode(n.left, box, results, seen)
	t.intersectBoundsNode(n.right, box, results, seen)
}
