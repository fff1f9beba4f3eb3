package grid

import "testing"

// sampleEntries builds an id set spanning several depths and faces with
// gaps in the local range.
func sampleEntries(t *testing.T) []IndexEntry {
	t.Helper()
	var entries []IndexEntry
	node := int32(0)
	for _, depth := range []int{1, 4, 9} {
		for face := 0; face < 6; face++ {
			for _, local := range []int64{0, 2, 3, 7, 50} {
				id, err := Encode(depth, face, local)
				if err != nil {
					t.Fatalf("encode: %v", err)
				}
				entries = append(entries, IndexEntry{Tile: id, Node: node})
				node++
			}
		}
	}
	return entries
}

func TestSparseDenseEquivalence(t *testing.T) {
	entries := sampleEntries(t)

	sparse := NewSparseIndex()
	dense := NewDenseIndex()
	if err := sparse.Build(entries); err != nil {
		t.Fatalf("sparse build: %v", err)
	}
	if err := dense.Build(entries); err != nil {
		t.Fatalf("dense build: %v", err)
	}

	// Every inserted id resolves identically.
	for _, e := range entries {
		sn, sok := sparse.TryGetIndex(e.Tile)
		dn, dok := dense.TryGetIndex(e.Tile)
		if !sok || !dok || sn != e.Node || dn != e.Node {
			t.Fatalf("id %d: sparse=(%d,%v) dense=(%d,%v), want (%d,true)", e.Tile, sn, sok, dn, dok, e.Node)
		}
	}

	// Absent ids miss identically: gaps in local space, unused faces,
	// unused depths, and undecodable ids.
	absent := []TileID{TileID(-3)}
	for _, probe := range []struct {
		depth int
		face  int
		local int64
	}{
		{1, 0, 1},  // local gap
		{1, 0, 51}, // beyond max local
		{1, 7, 0},  // unused face
		{2, 0, 0},  // unused depth
	} {
		id, err := Encode(probe.depth, probe.face, probe.local)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		absent = append(absent, id)
	}
	for _, id := range absent {
		sn, sok := sparse.TryGetIndex(id)
		dn, dok := dense.TryGetIndex(id)
		if sok || dok {
			t.Fatalf("id %d: expected miss, sparse=(%d,%v) dense=(%d,%v)", id, sn, sok, dn, dok)
		}
		if sn != -1 || dn != -1 {
			t.Fatalf("id %d: miss must report -1, sparse=%d dense=%d", id, sn, dn)
		}
	}
}

func TestSparseBuildOrderIndependent(t *testing.T) {
	entries := sampleEntries(t)
	reversed := make([]IndexEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}

	a := NewSparseIndex()
	b := NewSparseIndex()
	if err := a.Build(entries); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := b.Build(reversed); err != nil {
		t.Fatalf("build reversed: %v", err)
	}
	for _, e := range entries {
		an, aok := a.TryGetIndex(e.Tile)
		bn, bok := b.TryGetIndex(e.Tile)
		if an != bn || aok != bok {
			t.Fatalf("id %d: order-dependent result (%d,%v) vs (%d,%v)", e.Tile, an, aok, bn, bok)
		}
	}
}

func TestDenseBuildRejectsBadIDs(t *testing.T) {
	dense := NewDenseIndex()
	err := dense.Build([]IndexEntry{{Tile: TileID(-1), Node: 0}})
	if err == nil {
		t.Fatalf("expected build error for undecodable id")
	}
}

func TestIndexRebuildClearsOldEntries(t *testing.T) {
	first, err := Encode(1, 0, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Encode(2, 1, 1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for name, idx := range map[string]Index{"sparse": NewSparseIndex(), "dense": NewDenseIndex()} {
		if err := idx.Build([]IndexEntry{{Tile: first, Node: 0}}); err != nil {
			t.Fatalf("%s first build: %v", name, err)
		}
		if err := idx.Build([]IndexEntry{{Tile: second, Node: 0}}); err != nil {
			t.Fatalf("%s second build: %v", name, err)
		}
		if _, ok := idx.TryGetIndex(first); ok {
			t.Fatalf("%s: stale entry survived rebuild", name)
		}
		if n, ok := idx.TryGetIndex(second); !ok || n != 0 {
			t.Fatalf("%s: rebuilt entry missing, got (%d,%v)", name, n, ok)
		}
	}
}
