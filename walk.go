package bvh

// NodeInfo describes one node for read-only tree introspection: the
// shape WalkNodes reports to callers like cmd/bvhdebug that need to draw
// or inspect the tree without reaching into its internals.
type NodeInfo struct {
	Bounds AABB
	Depth  int
	IsLeaf bool
	Count  int // number of payloads in this node's bucket; 0 for internal nodes
}

// WalkNodes calls visit once for every node in the tree, parent before
// children, for diagnostics and visualization (e.g. cmd/bvhdebug's
// wireframe renderer). It does not mutate the tree and is safe to call
// between any two other operations.
func (t *Tree) WalkNodes(visit func(NodeInfo)) {
	if t.root == nilIndex {
		return
	}
	t.walkNode(t.root, visit)
}

func (t *Tree) walkNode(idx nodeIndex, visit func(NodeInfo)) {
	n := t.arena.at(idx)
	visit(NodeInfo{Bounds: n.bounds, Depth: n.depth, IsLeaf: n.isLeaf, Count: len(n.items)})
	if !n.isLeaf {
		t.walkNode(n.left, visit)
		t.walkNode(n.right, visit)
	}
}
