package bvh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycastReportsEveryHitWithinMaxT(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "A")
	tr.Insert(box(3, 0, 0, 1), "B")
	tr.Insert(box(10, 5, 5, 1), "C") // off the ray's path entirely

	hits := tr.Raycast(Vector3{X: -5, Y: 0, Z: 0}, Vector3{X: 1, Y: 0, Z: 0}, 100)
	require.Len(t, hits, 2)

	payloads := map[interface{}]bool{}
	for _, h := range hits {
		payloads[h.Payload] = true
	}
	assert.True(t, payloads["A"])
	assert.True(t, payloads["B"])
}

func TestRaycastMaxTZeroOnlyReportsContainingOrigin(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 2), "contains-origin")
	tr.Insert(box(5, 0, 0, 1), "ahead")

	hits := tr.Raycast(Vector3{}, Vector3{X: 1, Y: 0, Z: 0}, 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "contains-origin", hits[0].Payload)
}

func TestQueryRangeFindsOverlappingBoxes(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "near")
	tr.Insert(box(50, 0, 0, 1), "far")

	results := tr.QueryRange(Vector3{}, 5)
	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0])
}

func TestQueryRangeEachPayloadAtMostOnce(t *testing.T) {
	tr := NewDefault()
	for i := 0; i < 30; i++ {
		tr.Insert(box(0, 0, 0, 1), i)
	}
	results := tr.QueryRange(Vector3{}, 10)
	assert.Len(t, results, 30)
}

func TestIntersectBoundsFindsOverlaps(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "inside")
	tr.Insert(box(100, 100, 100, 1), "outside")

	results := tr.IntersectBounds(box(0, 0, 0, 5))
	require.Len(t, results, 1)
	assert.Equal(t, "inside", results[0])
}

func TestFindNearestReturnsClosestWithinRadius(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "A") // closest point at distance 0.5 from (1.5,0,0)
	tr.Insert(box(100, 0, 0, 1), "B")

	payload, found := tr.FindNearest(Vector3{X: 1.5, Y: 0, Z: 0}, 3.0)
	require.True(t, found)
	assert.Equal(t, "A", payload)
}

func TestFindNearestNoneWithinRadius(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(1000, 0, 0, 1), "far")

	_, found := tr.FindNearest(Vector3{}, 1)
	assert.False(t, found)
}

func TestQueryCacheIsInvalidatedByMutation(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "A")
	tr.EnableQueryCache()

	first := tr.QueryRange(Vector3{}, 5)
	require.Len(t, first, 1)

	tr.Insert(box(0, 0, 0, 1), "B")
	second := tr.QueryRange(Vector3{}, 5)
	assert.Len(t, second, 2, "cached result from before the insert must not be reused")
}
