package bvh

import "testing"

func sampleItems(n int) []BuildItem {
	items := make([]BuildItem, n)
	for i := 0; i < n; i++ {
		items[i] = BuildItem{Bounds: box(float64(i)*2, 0, 0, 0.5), Payload: i}
	}
	return items
}

func TestBuilderEmptyItemsIsError(t *testing.T) {
	b := NewBuilder(DefaultConfig(), StrategySAH)
	if _, err := b.Build(nil); err != ErrEmptyBuild {
		t.Fatalf("Build(nil) error = %v, want ErrEmptyBuild", err)
	}
}

func TestBuilderStrategiesProduceValidTrees(t *testing.T) {
	for _, strategy := range []Strategy{StrategySAH, StrategyMedian, StrategyEqual} {
		b := NewBuilder(Config{MaxLeafSize: 4, MaxDepth: 16, EnableSAH: true}, strategy)
		tr, err := b.Build(sampleItems(64))
		if err != nil {
			t.Fatalf("strategy %v: Build error: %v", strategy, err)
		}
		if tr.Count() != 64 {
			t.Errorf("strategy %v: Count() = %d, want 64", strategy, tr.Count())
		}
		if !tr.Validate() {
			t.Errorf("strategy %v: tree failed Validate()", strategy)
		}
		if stats := tr.Stats(); stats.MaxDepth > 16 {
			t.Errorf("strategy %v: MaxDepth = %d, exceeds configured 16", strategy, stats.MaxDepth)
		}
	}
}

func TestBuilderRespectsMaxLeafSize(t *testing.T) {
	b := NewBuilder(Config{MaxLeafSize: 8, MaxDepth: 32, EnableSAH: true}, StrategySAH)
	tr, err := b.Build(sampleItems(100))
	if err != nil {
		t.Fatal(err)
	}
	tr.WalkNodes(func(n NodeInfo) {
		if n.IsLeaf && n.Count > 8 {
			t.Errorf("leaf bucket has %d items, want <= 8", n.Count)
		}
	})
}

func TestBuilderSingleItemIsOneLeaf(t *testing.T) {
	b := NewBuilder(DefaultConfig(), StrategySAH)
	tr, err := b.Build([]BuildItem{{Bounds: box(0, 0, 0, 1), Payload: "only"}})
	if err != nil {
		t.Fatal(err)
	}
	stats := tr.Stats()
	if stats.NodeCount != 1 || stats.LeafCount != 1 {
		t.Fatalf("single-item tree stats = %+v, want one leaf node", stats)
	}
}

func TestBuilderNormalizesMalformedAABBAndWarns(t *testing.T) {
	b := NewBuilder(DefaultConfig(), StrategySAH)
	logger := newCapturingLogger()
	b.SetLogger(logger.Logger)

	malformed := AABB{Min: Vector3{X: 1, Y: 1, Z: 1}, Max: Vector3{X: -1, Y: -1, Z: -1}}
	tr, err := b.Build([]BuildItem{
		{Bounds: box(0, 0, 0, 1), Payload: "ok"},
		{Bounds: malformed, Payload: "bad"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !logger.sawWarning {
		t.Fatal("Build with a malformed item aabb should log a Warn")
	}
	if !tr.Validate() {
		t.Fatal("built tree should validate after normalizing a malformed item")
	}
}
