package grid

import (
	"fmt"
	"sort"
)

// IndexEntry associates one tile id with its dense node index.
type IndexEntry struct {
	Tile TileID
	Node int32
}

// Index maps tile identifiers to dense node indices. Two implementations
// exist: SparseIndex for arbitrary id sets, DenseIndex for ids that
// densely populate a small per-depth (face, local) space. Both must
// return identical results for the same entry set.
type Index interface {
	// Build clears the index and repopulates it from entries.
	// A failed Build leaves no usable index; callers must abort.
	Build(entries []IndexEntry) error

	// TryGetIndex resolves a tile id to its node index.
	// Returns (-1, false) when the id is not present.
	TryGetIndex(id TileID) (int32, bool)
}

// SparseIndex is a hash-backed Index. Smaller than DenseIndex for sparse
// id sets, at the cost of hashing on every lookup.
type SparseIndex struct {
	byTile map[TileID]int32
}

// NewSparseIndex creates an empty sparse index.
func NewSparseIndex() *SparseIndex {
	return &SparseIndex{byTile: make(map[TileID]int32)}
}

// Build sorts the entries by tile id before inserting so that the
// populated map is independent of the caller's entry order.
func (s *SparseIndex) Build(entries []IndexEntry) error {
	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tile < sorted[j].Tile })

	s.byTile = make(map[TileID]int32, len(sorted))
	for _, e := range sorted {
		s.byTile[e.Tile] = e.Node
	}
	return nil
}

func (s *SparseIndex) TryGetIndex(id TileID) (int32, bool) {
	node, ok := s.byTile[id]
	if !ok {
		return -1, false
	}
	return node, true
}

// DenseIndex stores one flat array per depth, addressed by
// face*stride+local. Fastest lookup, largest memory; only worthwhile when
// the id set nearly fills its per-depth (face, local) space.
type DenseIndex struct {
	depths [MaxDepth + 1]*denseDepth
}

type denseDepth struct {
	stride int64 // maxLocal+1
	nodes  []int32
}

// NewDenseIndex creates an empty dense index.
func NewDenseIndex() *DenseIndex {
	return &DenseIndex{}
}

// Build decodes every entry, sizes one array per depth from the observed
// face/local maxima, and writes node indices into their slots. Entries
// whose ids cannot be decoded abort the build.
func (d *DenseIndex) Build(entries []IndexEntry) error {
	d.depths = [MaxDepth + 1]*denseDepth{}

	type extent struct {
		maxFace  int
		maxLocal int64
	}
	extents := make(map[int]*extent)
	for _, e := range entries {
		depth, face, local, err := Decode(e.Tile)
		if err != nil {
			return fmt.Errorf("grid: dense index build: %w", err)
		}
		ext := extents[depth]
		if ext == nil {
			ext = &extent{}
			extents[depth] = ext
		}
		if face > ext.maxFace {
			ext.maxFace = face
		}
		if local > ext.maxLocal {
			ext.maxLocal = local
		}
	}

	for depth, ext := range extents {
		stride := ext.maxLocal + 1
		nodes := make([]int32, int64(ext.maxFace+1)*stride)
		for i := range nodes {
			nodes[i] = -1
		}
		d.depths[depth] = &denseDepth{stride: stride, nodes: nodes}
	}

	for _, e := range entries {
		depth, face, local, _ := Decode(e.Tile)
		dd := d.depths[depth]
		dd.nodes[int64(face)*dd.stride+local] = e.Node
	}
	return nil
}

func (d *DenseIndex) TryGetIndex(id TileID) (int32, bool) {
	depth, face, local, err := Decode(id)
	if err != nil {
		return -1, false
	}
	dd := d.depths[depth]
	if dd == nil {
		return -1, false
	}
	pos := int64(face)*dd.stride + local
	if local >= dd.stride || pos >= int64(len(dd.nodes)) {
		return -1, false
	}
	node := dd.nodes[pos]
	if node < 0 {
		return -1, false
	}
	return node, true
}
