package grid

import (
	"errors"
	"fmt"
)

// TileID is an opaque identifier for a single cell on the globe. Ids are
// produced by the spatial mapping layer; nothing outside this file may
// assume a particular bit layout.
type TileID int64

// NoTile marks an absent tile reference (e.g. a record without a parent).
const NoTile TileID = -1

// Bit layout, packed low to high: depth | face | local.
const (
	depthBits = 6
	faceBits  = 5
	localBits = 63 - depthBits - faceBits

	// MaxDepth, MaxFace and MaxLocal are the largest encodable field values.
	MaxDepth = 1<<depthBits - 1
	MaxFace  = 1<<faceBits - 1
	MaxLocal = int64(1)<<localBits - 1
)

// ErrFieldRange is returned when a codec field exceeds its allotted bits.
var ErrFieldRange = errors.New("grid: tile id field out of range")

// Encode packs (depth, face, local) into a TileID.
// Returns ErrFieldRange if any field exceeds its bit width.
func Encode(depth, face int, local int64) (TileID, error) {
	if depth < 0 || depth > MaxDepth {
		return 0, fmt.Errorf("%w: depth %d", ErrFieldRange, depth)
	}
	if face < 0 || face > MaxFace {
		return 0, fmt.Errorf("%w: face %d", ErrFieldRange, face)
	}
	if local < 0 || local > MaxLocal {
		return 0, fmt.Errorf("%w: local %d", ErrFieldRange, local)
	}
	id := int64(depth) | int64(face)<<depthBits | local<<(depthBits+faceBits)
	return TileID(id), nil
}

// Decode unpacks a TileID into (depth, face, local).
// Returns ErrFieldRange for ids that no Encode call can produce.
func Decode(id TileID) (depth, face int, local int64, err error) {
	if id < 0 {
		return 0, 0, 0, fmt.Errorf("%w: id %d", ErrFieldRange, id)
	}
	v := int64(id)
	depth = int(v & MaxDepth)
	face = int(v >> depthBits & MaxFace)
	local = v >> (depthBits + faceBits)
	return depth, face, local, nil
}
