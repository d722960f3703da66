// Package bvh implements a bounding volume hierarchy: a binary tree of
// nested axis-aligned bounding boxes that accelerates ray casts, range
// queries, nearest-neighbor lookups and overlap tests against a set of
// user payloads to expected O(log n) instead of O(n).
//
// What:
//
//   - AABB: axis-aligned bounding box primitives (union, intersect,
//     surface area, longest axis, ray-slab test).
//   - Tree: owns the node graph and an ObjectID -> leaf index; supports
//     Insert/Update/Remove/Refit/Rebuild/Clear plus the four query
//     traversals.
//   - Builder: bulk construction from a batch of (AABB, payload) pairs
//     using one of three split strategies (SAH, Median, Equal).
//
// Why:
//
//   - Ray-traced and rasterized scenes need fast "what's near this point
//     / along this ray" answers without scanning every object.
//   - Physics broadphase, frustum culling and picking all reduce to the
//     same four query shapes the tree exposes.
//
// Concurrency:
//
//   - The tree is a single-owner mutable aggregate. Mutating operations
//     must not run concurrently with any other operation on the same
//     tree. Concurrent queries on a tree nobody is mutating are safe
//     under the caller's own synchronization; the tree does no internal
//     locking.
//
// See DESIGN.md for the grounding of each component against the
// reference corpus this package was built from.
package bvh
