package bvh

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
)

// ObjectID identifies a payload inserted into a Tree. Ids are handed out
// in increasing order starting at 0 and are never reused while their
// mapping entry exists; Remove retires an id permanently.
type ObjectID int64

// Tree owns a BVH's node graph and the ObjectID -> leaf mapping. The
// zero value is not usable; construct with New or a Builder. A Tree is
// a single-owner mutable aggregate (spec.md §5): mutating methods must
// not run concurrently with any other method on the same Tree.
type Tree struct {
	arena      nodeArena
	root       nodeIndex
	idToLeaf   map[ObjectID]nodeIndex
	nextID     ObjectID
	config     Config
	generation uint64
	logger     *logrus.Logger
	cache      *lru.Cache
}

// New creates an empty Tree with the given configuration. An invalid
// configuration (MaxLeafSize or MaxDepth <= 0) falls back to
// DefaultConfig rather than panicking, consistent with §7's preference
// for a library embedded in a larger real-time system to degrade
// gracefully instead of crashing its host.
func New(cfg Config) *Tree {
	if err := cfg.validate(); err != nil {
		cfg = DefaultConfig()
	}
	return &Tree{
		config:   cfg,
		root:     nilIndex,
		idToLeaf: make(map[ObjectID]nodeIndex),
	}
}

// NewDefault creates an empty Tree with DefaultConfig.
func NewDefault() *Tree {
	return New(DefaultConfig())
}

// Count returns the number of live payloads in the tree.
func (t *Tree) Count() int {
	return len(t.idToLeaf)
}

func (t *Tree) bumpGeneration() {
	t.generation++
}

// Insert adds payload with bounding box box and returns its ObjectID.
// The box is normalized (min/max swapped per axis if needed) before
// insertion, so a malformed AABB never causes a panic (§7).
func (t *Tree) Insert(box AABB, payload interface{}) ObjectID {
	if box.isEmpty() {
		t.logWarnf("insert: malformed aabb min=%+v max=%+v, normalizing", box.Min, box.Max)
	}
	box = NewAABB(box.Min, box.Max)
	id := t.nextID
	t.nextID++
	t.bumpGeneration()
	t.insertExisting(id, box, payload)
	t.checkDegraded()
	t.logDebugf("insert id=%d", id)
	return id
}

// insertExisting places an already-allocated id into the tree. Used by
// Insert for fresh ids and by Update's remove-and-reinsert path for ids
// that must keep their identity across a relocation.
func (t *Tree) insertExisting(id ObjectID, box AABB, payload interface{}) {
	if t.root == nilIndex {
		idx := t.arena.alloc()
		*t.arena.at(idx) = node{
			bounds: box,
			isLeaf: true,
			parent: nilIndex,
			left:   nilIndex,
			right:  nilIndex,
			items:  []leafItem{{id: id, bounds: box, payload: payload}},
		}
		t.root = idx
		t.idToLeaf[id] = idx
		return
	}
	leafIdx := t.chooseLeaf(t.root, box)
	t.insertIntoLeaf(leafIdx, id, box, payload)
}

// chooseLeaf descends from idx picking, at each internal node, the child
// with the smaller enlargement cost (ties broken by smaller surface
// area), per spec.md §4.3's insertion algorithm.
func (t *Tree) chooseLeaf(idx nodeIndex, box AABB) nodeIndex {
	for {
		n := t.arena.at(idx)
		if n.isLeaf {
			return idx
		}
		left := t.arena.at(n.left)
		right := t.arena.at(n.right)

		var costLeft, costRight float64
		if t.config.EnableSAH {
			costLeft = enlargementCost(left.bounds, box)
			costRight = enlargementCost(right.bounds, box)
		} else {
			costLeft = volumeEnlargement(left.bounds, box)
			costRight = volumeEnlargement(right.bounds, box)
		}

		switch {
		case costLeft < costRight:
			idx = n.left
		case costRight < costLeft:
			idx = n.right
		case left.bounds.SurfaceArea() <= right.bounds.SurfaceArea():
			idx = n.left
		default:
			idx = n.right
		}
	}
}

// volumeEnlargement is the non-SAH insertion heuristic (§6: "when false,
// uses volume-based... heuristic"): the growth in volume needed to
// enclose box.
func volumeEnlargement(a, b AABB) float64 {
	return Union(a, b).Volume() - a.Volume()
}

// insertIntoLeaf appends id to leafIdx's bucket, or splits the leaf into
// a fresh internal node when the bucket is full and the depth ceiling
// hasn't been reached.
func (t *Tree) insertIntoLeaf(leafIdx nodeIndex, id ObjectID, box AABB, payload interface{}) {
	n := t.arena.at(leafIdx)
	atDepthCeiling := n.depth >= t.config.MaxDepth

	if len(n.items) < t.config.MaxLeafSize || atDepthCeiling {
		n.items = append(n.items, leafItem{id: id, bounds: box, payload: payload})
		n.bounds = Union(n.bounds, box)
		t.idToLeaf[id] = leafIdx
		t.refitUpward(n.parent)
		if atDepthCeiling && len(n.items) > t.config.MaxLeafSize {
			t.logWarnf("max_depth %d reached at leaf, bucket overflowed to %d items", t.config.MaxDepth, len(n.items))
		}
		return
	}

	t.splitLeaf(leafIdx, id, box, payload)
}

// splitLeaf replaces leafIdx with a new internal node whose children are
// the old leaf's bucket and a fresh single-payload leaf.
func (t *Tree) splitLeaf(leafIdx nodeIndex, id ObjectID, box AABB, payload interface{}) {
	old := *t.arena.at(leafIdx)

	leftIdx := t.arena.alloc()
	*t.arena.at(leftIdx) = node{
		bounds: old.bounds,
		isLeaf: true,
		depth:  old.depth + 1,
		parent: leafIdx,
		left:   nilIndex,
		right:  nilIndex,
		items:  append([]leafItem(nil), old.items...),
	}

	rightIdx := t.arena.alloc()
	*t.arena.at(rightIdx) = node{
		bounds: box,
		isLeaf: true,
		depth:  old.depth + 1,
		parent: leafIdx,
		left:   nilIndex,
		right:  nilIndex,
		items:  []leafItem{{id: id, bounds: box, payload: payload}},
	}

	for _, it := range old.items {
		t.idToLeaf[it.id] = leftIdx
	}
	t.idToLeaf[id] = rightIdx

	cur := t.arena.at(leafIdx)
	cur.isLeaf = false
	cur.items = nil
	cur.left = leftIdx
	cur.right = rightIdx
	cur.bounds = Union(old.bounds, box)

	t.refitUpward(old.parent)
}

// refitUpward walks from idx to the root, recomputing each internal
// node's bounds as the union of its children. Stops early once a node's
// bounds don't change, since everything above it is already correct.
func (t *Tree) refitUpward(idx nodeIndex) {
	for idx != nilIndex {
		n := t.arena.at(idx)
		left := t.arena.at(n.left)
		right := t.arena.at(n.right)
		newBounds := Union(left.bounds, right.bounds)
		if newBounds == n.bounds {
			return
		}
		n.bounds = newBounds
		idx = n.parent
	}
}

// Update assigns a new AABB to an existing payload. Returns false if id
// is unknown. Per spec.md §4.3: a new AABB fully contained in the
// leaf's current bounds is a cheap in-place update; otherwise the leaf
// is shrink-refit and, if it grew past twice its pre-update surface
// area, the payload is removed and reinserted for better locality.
func (t *Tree) Update(id ObjectID, newBox AABB) bool {
	if newBox.isEmpty() {
		t.logWarnf("update id=%d: malformed aabb min=%+v max=%+v, normalizing", id, newBox.Min, newBox.Max)
	}
	newBox = NewAABB(newBox.Min, newBox.Max)

	leafIdx, ok := t.idToLeaf[id]
	if !ok {
		return false
	}
	n := t.arena.at(leafIdx)
	pos := indexOfItem(n.items, id)
	if pos < 0 {
		return false
	}

	t.bumpGeneration()

	if containsBox(n.bounds, newBox) {
		n.items[pos].bounds = newBox
		t.logDebugf("update id=%d cheap", id)
		return true
	}

	oldArea := n.bounds.SurfaceArea()
	payload := n.items[pos].payload
	n.items[pos].bounds = newBox
	n.bounds = unionOfItems(n.items)
	t.refitUpward(n.parent)
	newArea := n.bounds.SurfaceArea()

	if oldArea > 0 && newArea/oldArea > 2.0 {
		t.unlinkItem(id)
		t.insertExisting(id, newBox, payload)
		t.logDebugf("update id=%d reinsert (enlargement ratio)", id)
	} else {
		t.logDebugf("update id=%d refit", id)
	}

	t.checkDegraded()
	return true
}

// Remove deletes a payload by id. Returns false if id is unknown.
func (t *Tree) Remove(id ObjectID) bool {
	if !t.unlinkItem(id) {
		return false
	}
	t.bumpGeneration()
	t.logDebugf("remove id=%d", id)
	return true
}

// unlinkItem removes id's item from its leaf bucket, collapsing the
// leaf into its sibling if the bucket becomes empty, and retires id
// from the id->leaf map. Shared by Remove and Update's relocation path.
func (t *Tree) unlinkItem(id ObjectID) bool {
	leafIdx, ok := t.idToLeaf[id]
	if !ok {
		return false
	}
	n := t.arena.at(leafIdx)
	pos := indexOfItem(n.items, id)
	if pos < 0 {
		return false
	}

	n.items = append(n.items[:pos], n.items[pos+1:]...)
	delete(t.idToLeaf, id)

	if len(n.items) > 0 {
		n.bounds = unionOfItems(n.items)
		t.refitUpward(n.parent)
	} else {
		t.collapseEmptyLeaf(leafIdx)
	}
	return true
}

// collapseEmptyLeaf unlinks a now-empty leaf from its parent and
// replaces the parent in the grandparent's child slot with the leaf's
// sibling, per spec.md §4.3's Remove algorithm.
func (t *Tree) collapseEmptyLeaf(leafIdx nodeIndex) {
	parentIdx := t.arena.at(leafIdx).parent
	t.arena.release(leafIdx)

	if parentIdx == nilIndex {
		t.root = nilIndex
		return
	}

	parent := t.arena.at(parentIdx)
	siblingIdx := parent.right
	if parent.left != leafIdx {
		siblingIdx = parent.left
	}
	grandparentIdx := parent.parent
	t.arena.release(parentIdx)

	newDepth := 0
	if grandparentIdx != nilIndex {
		newDepth = t.arena.at(grandparentIdx).depth + 1
	}
	t.reassignDepths(siblingIdx, newDepth)
	t.arena.at(siblingIdx).parent = grandparentIdx

	if grandparentIdx == nilIndex {
		t.root = siblingIdx
		return
	}

	gp := t.arena.at(grandparentIdx)
	if gp.left == parentIdx {
		gp.left = siblingIdx
	} else {
		gp.right = siblingIdx
	}
	t.refitUpward(grandparentIdx)
}

// reassignDepths sets idx's depth and recurses into its children,
// since collapsing a leaf moves its sibling's whole subtree up one
// level.
func (t *Tree) reassignDepths(idx nodeIndex, depth int) {
	n := t.arena.at(idx)
	n.depth = depth
	if !n.isLeaf {
		t.reassignDepths(n.left, depth+1)
		t.reassignDepths(n.right, depth+1)
	}
}

// Refit recomputes every internal node's bounds bottom-up from current
// leaf bounds, without changing tree topology (spec.md §4.3).
func (t *Tree) Refit() {
	t.bumpGeneration()
	if t.root != nilIndex {
		t.refitSubtree(t.root)
	}
}

func (t *Tree) refitSubtree(idx nodeIndex) AABB {
	n := t.arena.at(idx)
	if n.isLeaf {
		n.bounds = unionOfItems(n.items)
		return n.bounds
	}
	left := t.refitSubtree(n.left)
	right := t.refitSubtree(n.right)
	n.bounds = Union(left, right)
	return n.bounds
}

// Rebuild discards the current node graph and reconstructs it from
// scratch with the given strategy, preserving every payload's
// ObjectID (spec.md §4.3: "collect every payload with its current
// AABB, discard the existing node graph... replace the root").
func (t *Tree) Rebuild(strategy Strategy) {
	items := t.collectItems()
	t.arena.reset()
	t.idToLeaf = make(map[ObjectID]nodeIndex, len(items))
	t.bumpGeneration()

	if len(items) == 0 {
		t.root = nilIndex
		return
	}

	t.root = buildRecursive(&t.arena, items, 0, t.config, strategy)
	reindexLeaves(&t.arena, t.root, t.idToLeaf)
	t.logDebugf("rebuild strategy=%v items=%d", strategy, len(items))
	t.checkDegraded()
}

func (t *Tree) collectItems() []leafItem {
	var items []leafItem
	var walk func(idx nodeIndex)
	walk = func(idx nodeIndex) {
		if idx == nilIndex {
			return
		}
		n := t.arena.at(idx)
		if n.isLeaf {
			items = append(items, n.items...)
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return items
}

// Clear empties the tree in O(1), per the arena design note (§9).
func (t *Tree) Clear() {
	t.arena.reset()
	t.root = nilIndex
	t.idToLeaf = make(map[ObjectID]nodeIndex)
	t.bumpGeneration()
	t.logDebugf("clear")
}

// --- shared small helpers ---

func containsBox(outer, inner AABB) bool {
	return outer.Min.X <= inner.Min.X && outer.Max.X >= inner.Max.X &&
		outer.Min.Y <= inner.Min.Y && outer.Max.Y >= inner.Max.Y &&
		outer.Min.Z <= inner.Min.Z && outer.Max.Z >= inner.Max.Z
}

func unionOfItems(items []leafItem) AABB {
	box := items[0].bounds
	for _, it := range items[1:] {
		box = Union(box, it.bounds)
	}
	return box
}

func indexOfItem(items []leafItem, id ObjectID) int {
	for i := range items {
		if items[i].id == id {
			return i
		}
	}
	return -1
}
