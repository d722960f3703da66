package bvh

// nodeIndex addresses a node record inside a tree's arena. -1 means "no
// node" (nil, in pointer terms).
type nodeIndex int32

const nilIndex nodeIndex = -1

// leafItem is one payload stored in a leaf's bucket.
type leafItem struct {
	id      ObjectID
	bounds  AABB
	payload interface{}
}

// node is a single record in the tree's arena. Internal nodes have
// left/right set and no items; leaves have items and no children.
// parent is a weak back-link used only for upward walks during refit
// and removal (§3: "never controls lifetime").
type node struct {
	bounds       AABB
	left, right  nodeIndex
	parent       nodeIndex
	depth        int
	isLeaf       bool
	items        []leafItem
}

// nodeArena owns every node record for a tree, modeled as the vector of
// indexed records the design notes call for (§9: "an implementer... should
// model this as arena storage"), generalizing the teacher's
// sync.Pool-backed TrianglePool/PointPool (object_pool.go) from bulk
// Get/Reset into individual alloc/release so insert/remove churn doesn't
// grow the slice unboundedly.
type nodeArena struct {
	nodes []node
	free  []nodeIndex
}

// alloc returns the index of a fresh or recycled node record.
func (a *nodeArena) alloc() nodeIndex {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[idx] = node{}
		return idx
	}
	a.nodes = append(a.nodes, node{})
	return nodeIndex(len(a.nodes) - 1)
}

// release returns idx to the free list for reuse.
func (a *nodeArena) release(idx nodeIndex) {
	a.free = append(a.free, idx)
}

// at returns a pointer to the node record at idx.
func (a *nodeArena) at(idx nodeIndex) *node {
	return &a.nodes[idx]
}

// reset truncates the arena back to empty in O(1), backing Tree.Clear.
func (a *nodeArena) reset() {
	a.nodes = a.nodes[:0]
	a.free = a.free[:0]
}

// liveCount returns the number of allocated-and-not-freed nodes.
func (a *nodeArena) liveCount() int {
	return len(a.nodes) - len(a.free)
}
