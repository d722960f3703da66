package bvh

// Raycast returns every payload whose AABB the ray (origin, dir)
// intersects at entry distance <= maxT, in traversal order (spec.md
// §4.5: "order is traversal order, not sorted by distance"). Pass
// math.Inf(1) for maxT to report every hit along the ray. Grounded on
// raycast.go's Scene.RaycastAll and BVH.RayQuery.
func (t *Tree) Raycast(origin, dir Vector3, maxT float64) []Hit {
	if t.root == nilIndex {
		return nil
	}
	ray := NewRay(origin, dir)
	root := t.arena.at(t.root)
	if entry, ok := root.bounds.RayIntersect(ray.Origin, ray.Direction); !ok || entry > maxT {
		return nil
	}
	var hits []Hit
	t.raycastNode(t.root, ray, maxT, &hits)
	return hits
}

// raycastNode descends near-first (§4.5: "recurse first into the child
// with smaller entry distance"), pruning any child whose entry distance
// exceeds maxT or that the ray misses outright.
func (t *Tree) raycastNode(idx nodeIndex, ray Ray, maxT float64, hits *[]Hit) {
	n := t.arena.at(idx)

	if n.isLeaf {
		for _, it := range n.items {
			d, ok := it.bounds.RayIntersect(ray.Origin, ray.Direction)
			if !ok || d > maxT {
				continue
			}
			point := ray.At(d)
			*hits = append(*hits, Hit{
				Payload:  it.payload,
				Distance: d,
				Point:    point,
				Normal:   aabbNormalAt(it.bounds, point),
			})
		}
		return
	}

	type child struct {
		idx   nodeIndex
		entry float64
		hit   bool
	}
	children := [2]child{}
	for i, ci := range [2]nodeIndex{n.left, n.right} {
		cn := t.arena.at(ci)
		entry, ok := cn.bounds.RayIntersect(ray.Origin, ray.Direction)
		children[i] = child{idx: ci, entry: entry, hit: ok && entry <= maxT}
	}
	if children[1].hit && (!children[0].hit || children[1].entry < children[0].entry) {
		children[0], children[1] = children[1], children[0]
	}
	for _, c := range children {
		if c.hit {
			t.raycastNode(c.idx, ray, maxT, hits)
		}
	}
}
