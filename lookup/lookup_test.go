package lookup

import (
	"testing"

	"github.com/JoelDorrington/hexglobe/grid"
)

func buildAxes(t *testing.T) *grid.Topology {
	t.Helper()
	records := []grid.TileRecord{
		{Tile: 0, Center: grid.Vec3{X: 1}, Parent: grid.NoTile},
		{Tile: 1, Center: grid.Vec3{X: -1}, Parent: grid.NoTile},
		{Tile: 2, Center: grid.Vec3{Y: 1}, Parent: grid.NoTile},
		{Tile: 3, Center: grid.Vec3{Y: -1}, Parent: grid.NoTile},
		{Tile: 4, Center: grid.Vec3{Z: 1}, Parent: grid.NoTile},
		{Tile: 5, Center: grid.Vec3{Z: -1}, Parent: grid.NoTile},
	}
	topo, err := grid.Build(records, grid.NewSparseIndex())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return topo
}

func TestFindAxisDirections(t *testing.T) {
	topo := buildAxes(t)
	l := New(topo, 8)

	cases := []struct {
		dir  grid.Vec3
		want int32
	}{
		{grid.Vec3{X: 1}, 0},
		{grid.Vec3{X: -1}, 1},
		{grid.Vec3{Y: 1}, 2},
		{grid.Vec3{Y: -1}, 3},
		{grid.Vec3{Z: 1}, 4},
		{grid.Vec3{Z: -1}, 5},
		// Slightly off-axis and unnormalized still snap to the face cell.
		{grid.Vec3{X: 10, Y: 0.4, Z: -0.3}, 0},
		{grid.Vec3{Y: -2, X: 0.1}, 3},
	}
	for _, c := range cases {
		got, ok := l.Find(c.dir)
		if !ok || got != c.want {
			t.Fatalf("find(%+v): got (%d,%v), want (%d,true)", c.dir, got, ok, c.want)
		}
	}
}

func TestFindNearestWithinBucket(t *testing.T) {
	// Two centers near +x; the closer one wins.
	records := []grid.TileRecord{
		{Tile: 0, Center: grid.Vec3{X: 1, Y: 0.01}.Normalize(), Parent: grid.NoTile},
		{Tile: 1, Center: grid.Vec3{X: 1, Y: 0.05}.Normalize(), Parent: grid.NoTile},
	}
	topo, err := grid.Build(records, grid.NewSparseIndex())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	l := New(topo, 8)

	got, ok := l.Find(grid.Vec3{X: 1})
	if !ok || got != 0 {
		t.Fatalf("got (%d,%v), want (0,true)", got, ok)
	}
	got, ok = l.Find(grid.Vec3{X: 1, Y: 0.06})
	if !ok || got != 1 {
		t.Fatalf("got (%d,%v), want (1,true)", got, ok)
	}
}

func TestFindMissOnEmptyFace(t *testing.T) {
	// Only a +x center exists; a -x query exhausts its ring budget on an
	// empty face and reports a miss rather than guessing.
	records := []grid.TileRecord{
		{Tile: 0, Center: grid.Vec3{X: 1}, Parent: grid.NoTile},
	}
	topo, err := grid.Build(records, grid.NewSparseIndex())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	l := New(topo, 32)

	if got, ok := l.Find(grid.Vec3{X: -1}); ok {
		t.Fatalf("expected miss, got %d", got)
	}
}

func TestFindZeroDirection(t *testing.T) {
	l := New(buildAxes(t), 8)
	if got, ok := l.Find(grid.Vec3{}); ok || got != -1 {
		t.Fatalf("zero direction: got (%d,%v), want (-1,false)", got, ok)
	}
}

func TestFindRingExpansion(t *testing.T) {
	// A single +x center registered in the face's middle bucket; a query
	// for a corner of the same face lands in an empty bucket and must
	// expand to find it.
	records := []grid.TileRecord{
		{Tile: 0, Center: grid.Vec3{X: 1}, Parent: grid.NoTile},
	}
	topo, err := grid.Build(records, grid.NewSparseIndex())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	l := New(topo, 8)

	got, ok := l.Find(grid.Vec3{X: 1, Y: 0.3, Z: 0.3})
	if !ok || got != 0 {
		t.Fatalf("ring expansion failed: got (%d,%v)", got, ok)
	}
}
