package grid

import (
	"errors"
	"fmt"
	"sort"
)

// CellSeed carries a record's optional initial gameplay state. Use -1
// for Allegiance (neutral) and UnitID (no unit); the zero value of those
// fields names player/unit 0.
type CellSeed struct {
	Population    float64
	MaxPopulation int32
	Allegiance    int32
	HasUnit       bool
	UnitID        int32
}

// TileRecord is the raw per-cell input supplied by the spatial mapping
// layer. Records are transient: consumed once per build, in any order.
type TileRecord struct {
	Tile      TileID
	Neighbors []TileID
	Center    Vec3

	// Parent is the coarser-level tile containing this one, or NoTile.
	Parent TileID

	// Seed is the cell's optional initial gameplay state; nil means
	// topology-only (defaults apply).
	Seed *CellSeed
}

// ErrDuplicateTile is returned when a record set names the same tile id
// twice; the build aborts rather than guess which record wins.
var ErrDuplicateTile = errors.New("grid: duplicate tile id in record set")

// Build constructs a Topology from an unordered record set.
//
// Node indices are assigned by rank in ascending tile-id order, which
// makes the output byte-identical for any permutation of the same
// records. Neighbor ids absent from the record set resolve to None, not
// an error: partial and boundary topologies are valid input. Neighbor
// lists are taken as given; the builder neither checks nor adds
// reciprocal edges.
func Build(records []TileRecord, idx Index) (*Topology, error) {
	recs := make([]TileRecord, len(records))
	copy(recs, records)
	sort.Slice(recs, func(i, j int) bool { return recs[i].Tile < recs[j].Tile })

	totalNeighbors := 0
	for i, r := range recs {
		if i > 0 && r.Tile == recs[i-1].Tile {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTile, r.Tile)
		}
		totalNeighbors += len(r.Neighbors)
	}

	n := len(recs)
	t := &Topology{
		Nodes:   make([]Node, n),
		Centers: make([]Vec3, n),
		TileIDs: make([]TileID, n),
		index:   idx,
	}

	entries := make([]IndexEntry, n)
	first := int32(0)
	for i, r := range recs {
		t.Nodes[i] = Node{
			Index:         int32(i),
			FirstNeighbor: first,
			NeighborCount: int32(len(r.Neighbors)),
			Parent:        None,
			ChildStart:    None,
		}
		t.Centers[i] = r.Center
		t.TileIDs[i] = r.Tile
		entries[i] = IndexEntry{Tile: r.Tile, Node: int32(i)}
		first += int32(len(r.Neighbors))
	}

	if err := idx.Build(entries); err != nil {
		return nil, fmt.Errorf("grid: build index: %w", err)
	}

	t.Neighbors = make([]int32, 0, totalNeighbors)
	for _, r := range recs {
		for _, nb := range r.Neighbors {
			if j, ok := idx.TryGetIndex(nb); ok {
				t.Neighbors = append(t.Neighbors, j)
			} else {
				t.Neighbors = append(t.Neighbors, None)
			}
		}
	}

	linkHierarchy(t, recs, idx)
	return t, nil
}

// linkHierarchy resolves Parent references and flattens children into
// the Children array, mirroring the neighbor-array layout. Records
// without parents leave the hierarchy fields at None/0.
func linkHierarchy(t *Topology, recs []TileRecord, idx Index) {
	childCount := make([]int32, len(recs))
	linked := 0
	for i, r := range recs {
		if r.Parent == NoTile {
			continue
		}
		p, ok := idx.TryGetIndex(r.Parent)
		if !ok {
			continue
		}
		t.Nodes[i].Parent = p
		childCount[p]++
		linked++
	}
	if linked == 0 {
		return
	}

	t.Children = make([]int32, linked)
	next := make([]int32, len(recs))
	start := int32(0)
	for i := range t.Nodes {
		if childCount[i] == 0 {
			continue
		}
		t.Nodes[i].ChildStart = start
		t.Nodes[i].ChildCount = childCount[i]
		next[i] = start
		start += childCount[i]
	}
	for i := range t.Nodes {
		p := t.Nodes[i].Parent
		if p == None {
			continue
		}
		t.Children[next[p]] = int32(i)
		next[p]++
	}
}
