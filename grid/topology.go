package grid

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// None marks an unresolved node reference: a neighbor whose tile id was
// not part of the record set, or an absent parent/child link. Callers
// iterating neighbor or hierarchy slots must skip negative entries.
const None = int32(-1)

// Node is one cell's slot in the topology. Nodes are blittable and
// immutable after build.
type Node struct {
	// Index is the node's dense position, stable for the topology's
	// lifetime.
	Index int32

	// FirstNeighbor and NeighborCount address this node's slice of the
	// flat Neighbors array.
	FirstNeighbor int32
	NeighborCount int32

	// Parent, ChildStart and ChildCount form an optional coarse/fine
	// hierarchy. Parent is None and ChildCount 0 when unused; ChildStart
	// addresses the flat Children array.
	Parent     int32
	ChildStart int32
	ChildCount int32

	// Flags is an opaque bitfield reserved for region/attribute tagging.
	Flags uint32
}

// Topology is the immutable adjacency and position graph built from tile
// records. It may be read concurrently without synchronization; rebuilds
// must construct a new instance and swap the reference.
type Topology struct {
	Nodes     []Node
	Neighbors []int32
	Children  []int32
	Centers   []Vec3
	TileIDs   []TileID

	index Index
}

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int { return len(t.Nodes) }

// TryGetIndex resolves a tile id through the topology's index.
// Returns (-1, false) when the id is unknown.
func (t *Topology) TryGetIndex(id TileID) (int32, bool) {
	return t.index.TryGetIndex(id)
}

// GetNode returns the node at index i, or (zero, false) for an invalid
// index.
func (t *Topology) GetNode(i int32) (Node, bool) {
	if i < 0 || int(i) >= len(t.Nodes) {
		return Node{}, false
	}
	return t.Nodes[i], true
}

// NeighborSlice returns the (start, count) window of node i's neighbors
// in the flat Neighbors array, or (0, 0) for an invalid index.
func (t *Topology) NeighborSlice(i int32) (start, count int32) {
	if i < 0 || int(i) >= len(t.Nodes) {
		return 0, 0
	}
	n := t.Nodes[i]
	return n.FirstNeighbor, n.NeighborCount
}

// Neighbor returns node i's k-th neighbor index, or None when either
// index is out of range or the neighbor is unresolved.
func (t *Topology) Neighbor(i, k int32) int32 {
	start, count := t.NeighborSlice(i)
	if k < 0 || k >= count {
		return None
	}
	return t.Neighbors[start+k]
}

// Center returns node i's center position, or the zero vector for an
// invalid index.
func (t *Topology) Center(i int32) Vec3 {
	if i < 0 || int(i) >= len(t.Centers) {
		return Vec3{}
	}
	return t.Centers[i]
}

// Checksum digests the flat arrays. Two builds from the same record set
// produce the same checksum regardless of input order; a mismatch across
// rebuilds of identical input is a determinism defect.
func (t *Topology) Checksum() uint64 {
	h := xxhash.New()
	var buf [8]byte

	u32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:4], v)
		h.Write(buf[:4])
	}
	u64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for _, n := range t.Nodes {
		u32(uint32(n.Index))
		u32(uint32(n.FirstNeighbor))
		u32(uint32(n.NeighborCount))
		u32(uint32(n.Parent))
		u32(uint32(n.ChildStart))
		u32(uint32(n.ChildCount))
		u32(n.Flags)
	}
	for _, nb := range t.Neighbors {
		u32(uint32(nb))
	}
	for _, c := range t.Children {
		u32(uint32(c))
	}
	for _, id := range t.TileIDs {
		u64(uint64(id))
	}
	for _, c := range t.Centers {
		u64(math.Float64bits(c.X))
		u64(math.Float64bits(c.Y))
		u64(math.Float64bits(c.Z))
	}
	return h.Sum64()
}
