package bvh

import "testing"

func box(cx, cy, cz, half float64) AABB {
	return NewAABB(
		Vector3{X: cx - half, Y: cy - half, Z: cz - half},
		Vector3{X: cx + half, Y: cy + half, Z: cz + half},
	)
}

func TestTreeInsertAndCount(t *testing.T) {
	tr := NewDefault()
	for i := 0; i < 50; i++ {
		tr.Insert(box(float64(i), 0, 0, 0.4), i)
	}
	if got := tr.Count(); got != 50 {
		t.Fatalf("Count() = %d, want 50", got)
	}
	if !tr.Validate() {
		t.Fatal("tree failed Validate() after inserts")
	}
}

func TestTreeRemoveRetiresID(t *testing.T) {
	tr := NewDefault()
	var ids []ObjectID
	for i := 0; i < 10; i++ {
		ids = append(ids, tr.Insert(box(float64(i), 0, 0, 0.4), i))
	}

	if !tr.Remove(ids[3]) {
		t.Fatal("Remove on a known id should succeed")
	}
	if tr.Remove(ids[3]) {
		t.Fatal("Remove on an already-removed id should fail")
	}
	if got := tr.Count(); got != 9 {
		t.Fatalf("Count() = %d, want 9", got)
	}
	if !tr.Validate() {
		t.Fatal("tree failed Validate() after remove")
	}
}

func TestTreeRemoveAllEmptiesRoot(t *testing.T) {
	tr := NewDefault()
	var ids []ObjectID
	for i := 0; i < 5; i++ {
		ids = append(ids, tr.Insert(box(float64(i)*3, 0, 0, 0.4), i))
	}
	for _, id := range ids {
		if !tr.Remove(id) {
			t.Fatalf("Remove(%d) failed", id)
		}
	}
	if tr.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", tr.Count())
	}
	if !tr.Validate() {
		t.Fatal("empty tree should validate")
	}
	// Inserting into a fully-emptied tree must still work.
	id := tr.Insert(box(0, 0, 0, 1), "payload")
	if got, ok := tr.FindNearest(Vector3{}, 10); !ok || got != "payload" {
		t.Fatalf("FindNearest after re-populating empty tree = (%v, %v)", got, ok)
	}
	_ = id
}

func TestTreeUpdateCheapWhenContained(t *testing.T) {
	tr := NewDefault()
	id := tr.Insert(box(0, 0, 0, 5), "payload")
	if !tr.Update(id, box(0, 0, 0, 1)) {
		t.Fatal("Update on known id should succeed")
	}
	if !tr.Validate() {
		t.Fatal("tree failed Validate() after contained update")
	}
}

func TestTreeUpdateUnknownIDFails(t *testing.T) {
	tr := NewDefault()
	tr.Insert(box(0, 0, 0, 1), "payload")
	if tr.Update(ObjectID(9999), box(0, 0, 0, 1)) {
		t.Fatal("Update on unknown id should fail")
	}
}

func TestTreeClearIsEmpty(t *testing.T) {
	tr := NewDefault()
	for i := 0; i < 20; i++ {
		tr.Insert(box(float64(i), 0, 0, 0.3), i)
	}
	tr.Clear()
	if tr.Count() != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", tr.Count())
	}
	if !tr.Validate() {
		t.Fatal("cleared tree should validate")
	}
}

func TestTreeRebuildPreservesContentsAndIDs(t *testing.T) {
	tr := NewDefault()
	ids := make(map[ObjectID]bool)
	for i := 0; i < 40; i++ {
		id := tr.Insert(box(float64(i), float64(i%3), 0, 0.4), i)
		ids[id] = true
	}

	tr.Rebuild(StrategyMedian)

	if tr.Count() != 40 {
		t.Fatalf("Count() after Rebuild = %d, want 40", tr.Count())
	}
	if !tr.Validate() {
		t.Fatal("tree failed Validate() after Rebuild")
	}
	for id := range ids {
		if _, ok := tr.idToLeaf[id]; !ok {
			t.Errorf("id %d missing after rebuild", id)
		}
	}
}

func TestTreeRefitDoesNotChangeTopology(t *testing.T) {
	tr := NewDefault()
	for i := 0; i < 30; i++ {
		tr.Insert(box(float64(i), 0, 0, 0.4), i)
	}
	before := tr.Stats()
	tr.Refit()
	after := tr.Stats()
	if before.NodeCount != after.NodeCount || before.LeafCount != after.LeafCount {
		t.Fatalf("Refit changed topology: before=%+v after=%+v", before, after)
	}
	if !tr.Validate() {
		t.Fatal("tree failed Validate() after Refit")
	}
}

func TestNewFallsBackToDefaultOnInvalidConfig(t *testing.T) {
	tr := New(Config{MaxLeafSize: 0, MaxDepth: 0, EnableSAH: true})
	tr.Insert(box(0, 0, 0, 1), "x")
	if !tr.Validate() {
		t.Fatal("tree with a corrected config should still validate")
	}
}

func TestInsertNormalizesMalformedAABBAndWarns(t *testing.T) {
	tr := NewDefault()
	logger := newCapturingLogger()
	tr.SetLogger(logger.Logger)

	malformed := AABB{Min: Vector3{X: 1, Y: 1, Z: 1}, Max: Vector3{X: -1, Y: -1, Z: -1}}
	id := tr.Insert(malformed, "x")

	if !logger.sawWarning {
		t.Fatal("Insert with a malformed aabb should log a Warn")
	}
	if !tr.Validate() {
		t.Fatal("tree should still validate after normalizing a malformed insert")
	}
	if _, ok := tr.idToLeaf[id]; !ok {
		t.Fatal("normalized item should still be findable by id")
	}
}

func TestUpdateNormalizesMalformedAABBAndWarns(t *testing.T) {
	tr := NewDefault()
	id := tr.Insert(box(0, 0, 0, 1), "x")

	logger := newCapturingLogger()
	tr.SetLogger(logger.Logger)

	malformed := AABB{Min: Vector3{X: 5, Y: 5, Z: 5}, Max: Vector3{X: 3, Y: 3, Z: 3}}
	if !tr.Update(id, malformed) {
		t.Fatal("Update on a known id should succeed even with a malformed aabb")
	}
	if !logger.sawWarning {
		t.Fatal("Update with a malformed aabb should log a Warn")
	}
}

func TestInsertWithoutLoggerStaysSilentOnMalformedAABB(t *testing.T) {
	tr := NewDefault()
	malformed := AABB{Min: Vector3{X: 1, Y: 1, Z: 1}, Max: Vector3{X: -1, Y: -1, Z: -1}}
	tr.Insert(malformed, "x")
	if !tr.Validate() {
		t.Fatal("tree with no logger attached should still normalize and validate")
	}
}
