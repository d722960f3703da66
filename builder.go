package bvh

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Strategy selects how Builder.Build and Tree.Rebuild partition items
// into a tree (spec.md §4.4).
type Strategy int

const (
	// StrategySAH picks, at every internal split, the axis and position
	// minimizing the surface-area-heuristic cost function.
	StrategySAH Strategy = iota
	// StrategyMedian sorts along the bounding box's longest axis and
	// splits at the median.
	StrategyMedian
	// StrategyEqual splits the input order in half with no sorting.
	StrategyEqual
)

func (s Strategy) String() string {
	switch s {
	case StrategySAH:
		return "sah"
	case StrategyMedian:
		return "median"
	case StrategyEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// BuildItem is one payload and its AABB, the input unit for
// Builder.Build.
type BuildItem struct {
	Bounds  AABB
	Payload interface{}
}

// Builder constructs a Tree in one bulk pass, generalizing
// spatial_partitioning.go's BVH.buildRecursive/findBestSplit/computeSAH
// (which only ever built a single-object-per-leaf SAH tree) to respect
// MaxLeafSize/MaxDepth and to support all three strategies.
type Builder struct {
	Config   Config
	Strategy Strategy
	// Logger is attached the same way Tree.SetLogger attaches one: nil
	// (the default) keeps Build silent, a non-nil logger gets a Warn
	// for every malformed input AABB Build normalizes.
	Logger *logrus.Logger
}

// NewBuilder returns a Builder for the given configuration and
// strategy.
func NewBuilder(cfg Config, strategy Strategy) *Builder {
	return &Builder{Config: cfg, Strategy: strategy}
}

// SetLogger attaches a structured logger to the builder, mirroring
// Tree.SetLogger.
func (b *Builder) SetLogger(logger *logrus.Logger) {
	b.Logger = logger
}

func (b *Builder) logWarnf(format string, args ...interface{}) {
	if b.Logger == nil {
		return
	}
	b.Logger.Warnf(format, args...)
}

// Build constructs a fresh Tree from items. Returns ErrEmptyBuild if
// items is empty (spec.md §4.4: "build requires at least one item").
func (b *Builder) Build(items []BuildItem) (*Tree, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBuild
	}

	cfg := b.Config
	if err := cfg.validate(); err != nil {
		cfg = DefaultConfig()
	}

	t := &Tree{
		config:   cfg,
		idToLeaf: make(map[ObjectID]nodeIndex, len(items)),
	}

	leafItems := make([]leafItem, len(items))
	for i, it := range items {
		if it.Bounds.isEmpty() {
			b.logWarnf("build: item %d has malformed aabb min=%+v max=%+v, normalizing", i, it.Bounds.Min, it.Bounds.Max)
		}
		id := t.nextID
		t.nextID++
		leafItems[i] = leafItem{id: id, bounds: NewAABB(it.Bounds.Min, it.Bounds.Max), payload: it.Payload}
	}

	t.root = buildRecursive(&t.arena, leafItems, 0, cfg, b.Strategy)
	reindexLeaves(&t.arena, t.root, t.idToLeaf)
	return t, nil
}

// buildRecursive partitions items into a subtree rooted at depth,
// stopping at a leaf once len(items) <= cfg.MaxLeafSize or depth hits
// cfg.MaxDepth (spec.md's "bulk build never creates a node deeper than
// max_depth" invariant).
func buildRecursive(arena *nodeArena, items []leafItem, depth int, cfg Config, strategy Strategy) nodeIndex {
	box := unionOfItems(items)

	if len(items) <= cfg.MaxLeafSize || depth >= cfg.MaxDepth {
		return makeLeafNode(arena, items, box, depth)
	}

	splitAt := len(items) / 2

	switch strategy {
	case StrategySAH:
		axis, pos, forceLeaf := sahSplit(items)
		if forceLeaf {
			return makeLeafNode(arena, items, box, depth)
		}
		sortItemsByAxis(items, axis)
		splitAt = pos
	case StrategyMedian:
		sortItemsByAxis(items, box.LongestAxis())
	case StrategyEqual:
		// Input order is split as-is: no sort, no axis choice.
	}

	if splitAt <= 0 {
		splitAt = 1
	}
	if splitAt >= len(items) {
		splitAt = len(items) - 1
	}

	leftIdx := buildRecursive(arena, items[:splitAt], depth+1, cfg, strategy)
	rightIdx := buildRecursive(arena, items[splitAt:], depth+1, cfg, strategy)

	idx := arena.alloc()
	arena.at(leftIdx).parent = idx
	arena.at(rightIdx).parent = idx
	*arena.at(idx) = node{
		bounds: Union(arena.at(leftIdx).bounds, arena.at(rightIdx).bounds),
		isLeaf: false,
		depth:  depth,
		parent: nilIndex,
		left:   leftIdx,
		right:  rightIdx,
	}
	return idx
}

func makeLeafNode(arena *nodeArena, items []leafItem, box AABB, depth int) nodeIndex {
	idx := arena.alloc()
	*arena.at(idx) = node{
		bounds: box,
		isLeaf: true,
		depth:  depth,
		parent: nilIndex,
		left:   nilIndex,
		right:  nilIndex,
		items:  append([]leafItem(nil), items...),
	}
	return idx
}

// sahSplit evaluates all three axes and every split position, scoring
// each with spec.md §4.4's cost function:
//
//	cost(i) = 1 + (SA(Bleft_i)/SA(B))*i + (SA(Bright_i)/SA(B))*(n-i)
//
// and returns the axis/position of the minimum. forceLeaf reports true
// when no split beats cost(i) >= n (leaving the bucket unsplit is
// cheaper).
func sahSplit(items []leafItem) (axis Axis, splitAt int, forceLeaf bool) {
	n := len(items)
	bestCost := math.Inf(1)
	bestAxis := AxisX
	bestSplit := n / 2

	totalBox := unionOfItems(items)
	totalArea := totalBox.SurfaceArea()
	if totalArea <= 0 {
		totalArea = 1
	}

	for _, ax := range [3]Axis{AxisX, AxisY, AxisZ} {
		sorted := append([]leafItem(nil), items...)
		sortItemsByAxis(sorted, ax)

		leftArea := make([]float64, n)
		rightArea := make([]float64, n)

		leftBox := sorted[0].bounds
		leftArea[0] = leftBox.SurfaceArea()
		for i := 1; i < n; i++ {
			leftBox = Union(leftBox, sorted[i].bounds)
			leftArea[i] = leftBox.SurfaceArea()
		}

		rightBox := sorted[n-1].bounds
		rightArea[n-1] = rightBox.SurfaceArea()
		for i := n - 2; i >= 0; i-- {
			rightBox = Union(rightBox, sorted[i].bounds)
			rightArea[i] = rightBox.SurfaceArea()
		}

		for i := 1; i < n; i++ {
			cost := 1 + (leftArea[i-1]/totalArea)*float64(i) + (rightArea[i]/totalArea)*float64(n-i)
			if cost < bestCost {
				bestCost = cost
				bestAxis = ax
				bestSplit = i
			}
		}
	}

	forceLeaf = bestCost >= float64(n)
	return bestAxis, bestSplit, forceLeaf
}

// sortItemsByAxis sorts items by their bounds' center along axis,
// stable so ties preserve input order (spec.md §8: "stable with
// respect to insertion order").
func sortItemsByAxis(items []leafItem, axis Axis) {
	sort.SliceStable(items, func(i, j int) bool {
		return axis.component(items[i].bounds.Center()) < axis.component(items[j].bounds.Center())
	})
}

// reindexLeaves walks the subtree rooted at idx and populates idToLeaf
// for every payload found in a leaf bucket.
func reindexLeaves(arena *nodeArena, idx nodeIndex, idToLeaf map[ObjectID]nodeIndex) {
	if idx == nilIndex {
		return
	}
	n := arena.at(idx)
	if n.isLeaf {
		for _, it := range n.items {
			idToLeaf[it.id] = idx
		}
		return
	}
	reindexLeaves(arena, n.left, idToLeaf)
	reindexLeaves(arena, n.right, idToLeaf)
}
