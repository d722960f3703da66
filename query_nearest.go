package bvh

import "container/heap"

// nearestQueueItem is one pending node in FindNearest's best-first
// search, ordered by the squared distance from the query point to the
// node's bounds (a lower bound on the distance to anything inside it).
// Grounded on lvlath/graph/dijkstra.go's nodeItem/nodePQ pattern.
type nearestQueueItem struct {
	idx  nodeIndex
	dist float64
}

type nearestQueue []nearestQueueItem

func (q nearestQueue) Len() int            { return len(q) }
func (q nearestQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nearestQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nearestQueue) Push(x interface{}) { *q = append(*q, x.(nearestQueueItem)) }
func (q *nearestQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// FindNearest returns the payload closest to point within maxDist, and
// whether one was found. Uses a best-first traversal (spec.md §4.5): a
// min-heap of pending nodes keyed by lower-bound distance, popped in
// increasing order, stopping as soon as the heap's minimum exceeds the
// best candidate found so far.
func (t *Tree) FindNearest(point Vector3, maxDist float64) (interface{}, bool) {
	if t.root == nilIndex {
		return nil, false
	}

	pq := &nearestQueue{}
	heap.Init(pq)

	root := t.arena.at(t.root)
	heap.Push(pq, nearestQueueItem{idx: t.root, dist: root.bounds.DistanceSq(point)})

	bestDistSq := maxDist * maxDist
	var best interface{}
	found := false

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nearestQueueItem)
		if item.dist > bestDistSq {
			break
		}

		n := t.arena.at(item.idx)
		if n.isLeaf {
			for _, it := range n.items {
				d := it.bounds.DistanceSq(point)
				if d < bestDistSq {
					bestDistSq = d
					best = it.payload
					found = true
				}
			}
			continue
		}

		left := t.arena.at(n.left)
		right := t.arena.at(n.right)
		if d := left.bounds.DistanceSq(point); d <= bestDistSq {
			heap.Push(pq, nearestQueueItem{idx: n.left, dist: d})
		}
		if d := right.bounds.DistanceSq(point); d <= bestDistSq {
			heap.Push(pq, nearestQueueItem{idx: n.right, dist: d})
		}
	}

	return best, found
}
