package worldgen

import (
	"math"
	"testing"

	"github.com/JoelDorrington/hexglobe/grid"
)

func TestGenerateGlobe(t *testing.T) {
	cfg := Config{Subdivisions: 4, MaxPopulation: 50}
	records, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if want := 20 * 4 * 4; len(records) != want {
		t.Fatalf("record count: got %d, want %d", len(records), want)
	}

	topo, err := grid.Build(records, grid.NewDenseIndex())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// A closed sphere has no boundary: every cell has exactly three
	// resolved neighbors.
	for i := int32(0); int(i) < topo.NodeCount(); i++ {
		start, count := topo.NeighborSlice(i)
		if count != 3 {
			t.Fatalf("node %d neighbor count: got %d, want 3", i, count)
		}
		for k := start; k < start+count; k++ {
			if topo.Neighbors[k] == grid.None {
				t.Fatalf("node %d has unresolved neighbor", i)
			}
		}
	}

	for i, r := range records {
		if l := r.Center.Length(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("record %d center length %v", i, l)
		}
		if r.Seed == nil || r.Seed.MaxPopulation != 50 || r.Seed.Allegiance != -1 {
			t.Fatalf("record %d seed misconfigured: %+v", i, r.Seed)
		}
	}
}

func TestGenerateNeighborsSymmetric(t *testing.T) {
	records, err := Generate(Config{Subdivisions: 3, MaxPopulation: 10})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	adj := make(map[grid.TileID]map[grid.TileID]bool, len(records))
	for _, r := range records {
		set := make(map[grid.TileID]bool, len(r.Neighbors))
		for _, nb := range r.Neighbors {
			set[nb] = true
		}
		adj[r.Tile] = set
	}
	for _, r := range records {
		for _, nb := range r.Neighbors {
			if !adj[nb][r.Tile] {
				t.Fatalf("edge %d->%d not reciprocated", r.Tile, nb)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	build := func() uint64 {
		records, err := Generate(Config{Subdivisions: 5, MaxPopulation: 20})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		topo, err := grid.Build(records, grid.NewSparseIndex())
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return topo.Checksum()
	}
	if a, b := build(), build(); a != b {
		t.Fatalf("checksums differ: %016x vs %016x", a, b)
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	if _, err := Generate(Config{Subdivisions: 0}); err == nil {
		t.Fatalf("subdivisions 0 accepted")
	}
	if _, err := Generate(Config{Subdivisions: grid.MaxDepth + 1}); err == nil {
		t.Fatalf("oversized subdivisions accepted")
	}
}
