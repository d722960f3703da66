package bvh

import "errors"

// Sentinel errors for bvh operations. Unknown-id lookups on Update/Remove
// stay booleans per the public contract (§7: a malformed or unknown input
// degrades a single call, it never needs to propagate a typed error through
// a hot path) — these two are for the paths that do return errors.
var (
	// ErrEmptyBuild indicates Builder.Build was called with zero items.
	ErrEmptyBuild = errors.New("bvh: build requires at least one item")
	// ErrInvalidConfig indicates a Config with a non-positive MaxLeafSize
	// or MaxDepth.
	ErrInvalidConfig = errors.New("bvh: max_leaf_size and max_depth must be > 0")
)
