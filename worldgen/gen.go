// Package worldgen produces the tile records the topology is built
// from: a subdivided icosahedron with cell centers normalized onto the
// unit sphere. It stands in for the engine-side mapping layer, whose
// only contract with the core is the record slice itself.
package worldgen

import (
	"fmt"
	"math"

	"github.com/JoelDorrington/hexglobe/grid"
)

// Config controls world generation.
type Config struct {
	// Subdivisions is the lattice frequency per icosahedron face edge.
	// Each of the 20 faces yields Subdivisions² cells.
	Subdivisions int

	// MaxPopulation seeds every cell's population capacity.
	MaxPopulation int32
}

// icosahedron geometry, vertices normalized at init.
var icoVerts = func() []grid.Vec3 {
	p := (1 + math.Sqrt(5)) / 2
	raw := []grid.Vec3{
		{X: -1, Y: p}, {X: 1, Y: p}, {X: -1, Y: -p}, {X: 1, Y: -p},
		{Y: -1, Z: p}, {Y: 1, Z: p}, {Y: -1, Z: -p}, {Y: 1, Z: -p},
		{X: p, Z: -1}, {X: p, Z: 1}, {X: -p, Z: -1}, {X: -p, Z: 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}()

var icoFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// vertKey quantizes a lattice point so shared edge points hash equal
// regardless of which face computed them.
type vertKey [3]int64

func keyOf(p grid.Vec3) vertKey {
	const q = 1e9
	return vertKey{
		int64(math.Round(p.X * q)),
		int64(math.Round(p.Y * q)),
		int64(math.Round(p.Z * q)),
	}
}

// edgeKey is an unordered pair of vertex keys.
type edgeKey struct{ a, b vertKey }

func edgeOf(p, q grid.Vec3) edgeKey {
	ka, kb := keyOf(p), keyOf(q)
	if less(kb, ka) {
		ka, kb = kb, ka
	}
	return edgeKey{a: ka, b: kb}
}

func less(a, b vertKey) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

type triangle struct {
	id      grid.TileID
	corners [3]grid.Vec3
}

// Generate builds the full record set for the configured globe. Output
// is deterministic for a given config: records are emitted in face and
// lattice order, and adjacency comes from edge sharing, so every
// neighbor id resolves and neighbor lists are symmetric.
func Generate(cfg Config) ([]grid.TileRecord, error) {
	f := cfg.Subdivisions
	if f < 1 || f > grid.MaxDepth {
		return nil, fmt.Errorf("worldgen: subdivisions %d outside [1, %d]", f, grid.MaxDepth)
	}

	tris := make([]triangle, 0, 20*f*f)
	edges := make(map[edgeKey][]grid.TileID, 30*f*f)

	for face, fv := range icoFaces {
		a, b, c := icoVerts[fv[0]], icoVerts[fv[1]], icoVerts[fv[2]]
		lattice := func(i, j int) grid.Vec3 {
			inv := 1 / float64(f)
			return a.Scale(float64(f-i-j) * inv).
				Add(b.Scale(float64(i) * inv)).
				Add(c.Scale(float64(j) * inv))
		}

		local := int64(0)
		emit := func(p0, p1, p2 grid.Vec3) error {
			id, err := grid.Encode(f, face, local)
			if err != nil {
				return fmt.Errorf("worldgen: face %d local %d: %w", face, local, err)
			}
			local++
			tris = append(tris, triangle{id: id, corners: [3]grid.Vec3{p0, p1, p2}})
			for _, e := range [3]edgeKey{edgeOf(p0, p1), edgeOf(p1, p2), edgeOf(p2, p0)} {
				edges[e] = append(edges[e], id)
			}
			return nil
		}

		for i := 0; i < f; i++ {
			for j := 0; j < f-i; j++ {
				if err := emit(lattice(i, j), lattice(i+1, j), lattice(i, j+1)); err != nil {
					return nil, err
				}
				if j < f-i-1 {
					if err := emit(lattice(i+1, j), lattice(i+1, j+1), lattice(i, j+1)); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	records := make([]grid.TileRecord, len(tris))
	for i, tr := range tris {
		neighbors := make([]grid.TileID, 0, 3)
		for _, e := range [3]edgeKey{
			edgeOf(tr.corners[0], tr.corners[1]),
			edgeOf(tr.corners[1], tr.corners[2]),
			edgeOf(tr.corners[2], tr.corners[0]),
		} {
			for _, other := range edges[e] {
				if other != tr.id {
					neighbors = append(neighbors, other)
				}
			}
		}

		centroid := tr.corners[0].Add(tr.corners[1]).Add(tr.corners[2]).Scale(1.0 / 3).Normalize()
		records[i] = grid.TileRecord{
			Tile:      tr.id,
			Neighbors: neighbors,
			Center:    centroid,
			Parent:    grid.NoTile,
			Seed: &grid.CellSeed{
				MaxPopulation: cfg.MaxPopulation,
				Allegiance:    -1,
				UnitID:        -1,
			},
		}
	}
	return records, nil
}
