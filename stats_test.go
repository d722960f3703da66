package bvh

import "testing"

func TestStatsEmptyTree(t *testing.T) {
	tr := NewDefault()
	stats := tr.Stats()
	if stats.NodeCount != 0 || stats.LeafCount != 0 {
		t.Fatalf("Stats() on empty tree = %+v, want all zero", stats)
	}
}

func TestStatsBalanceFactorAtLeastOne(t *testing.T) {
	tr := NewDefault()
	for i := 0; i < 100; i++ {
		tr.Insert(box(float64(i), 0, 0, 0.4), i)
	}
	if stats := tr.Stats(); stats.BalanceFactor < 1.0 {
		t.Errorf("BalanceFactor = %v, want >= 1.0", stats.BalanceFactor)
	}
}

func TestDegradedTreeLogsWarning(t *testing.T) {
	tr := New(Config{MaxLeafSize: 1, MaxDepth: 32, EnableSAH: true})
	logger := newCapturingLogger()
	tr.SetLogger(logger.Logger)

	// Insert along a single line so SAH insertion keeps choosing the
	// same branch, producing a deep, unbalanced chain.
	for i := 0; i < 64; i++ {
		tr.Insert(box(float64(i), 0, 0, 0.1), i)
	}

	if stats := tr.Stats(); stats.BalanceFactor <= 2.0 {
		t.Skipf("tree shape balance_factor=%.2f did not exceed the degraded threshold in this run", stats.BalanceFactor)
	}
	if !logger.sawWarning {
		t.Error("expected a degraded-tree warning to be logged")
	}
}
