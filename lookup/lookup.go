// Package lookup provides an approximate direction-to-cell search over a
// topology's centers. It is a selection aid for interactive input, not a
// geometric authority: adjacency-critical code must use the topology.
package lookup

import "github.com/JoelDorrington/hexglobe/grid"

// Lookup buckets cell centers into a quantized grid on each of the six
// major-axis faces. Immutable after New; safe for concurrent queries.
type Lookup struct {
	perAxis  int
	maxRings int
	buckets  [][]int32 // 6 * perAxis * perAxis cells
	centers  []grid.Vec3
}

// DefaultBucketsPerAxis suits grids in the tens of thousands of cells.
const DefaultBucketsPerAxis = 32

// New registers every center of topo. bucketsPerAxis <= 0 selects the
// default.
func New(topo *grid.Topology, bucketsPerAxis int) *Lookup {
	if bucketsPerAxis <= 0 {
		bucketsPerAxis = DefaultBucketsPerAxis
	}
	maxRings := bucketsPerAxis / 8
	if maxRings < 1 {
		maxRings = 1
	}
	l := &Lookup{
		perAxis:  bucketsPerAxis,
		maxRings: maxRings,
		buckets:  make([][]int32, 6*bucketsPerAxis*bucketsPerAxis),
		centers:  topo.Centers,
	}
	for i, c := range topo.Centers {
		if c.LengthSq() == 0 {
			continue
		}
		face, u, v := faceProject(c)
		b := l.bucketAt(face, l.quantize(u), l.quantize(v))
		l.buckets[b] = append(l.buckets[b], int32(i))
	}
	return l
}

// Find returns the node whose center is nearest (by squared chord
// distance) to the given direction, searching the direction's bucket and
// then a bounded ring expansion around it. Returns (-1, false) when the
// search exhausts without meeting a registered center, or for a
// zero-length direction.
func (l *Lookup) Find(dir grid.Vec3) (int32, bool) {
	d := dir.Normalize()
	if d.LengthSq() == 0 {
		return -1, false
	}
	face, u, v := faceProject(d)
	bu, bv := l.quantize(u), l.quantize(v)

	for ring := 0; ring <= l.maxRings; ring++ {
		best := int32(-1)
		bestDist := 0.0
		l.scanRing(face, bu, bv, ring, func(node int32) {
			dist := grid.DistSq(d, l.centers[node])
			if best < 0 || dist < bestDist {
				best = node
				bestDist = dist
			}
		})
		if best >= 0 {
			return best, true
		}
	}
	return -1, false
}

// scanRing visits every registered node in the square ring at the given
// radius, skipping cells that fall off the face grid.
func (l *Lookup) scanRing(face, cu, cv, ring int, visit func(node int32)) {
	for du := -ring; du <= ring; du++ {
		for dv := -ring; dv <= ring; dv++ {
			if ring > 0 && du > -ring && du < ring && dv > -ring && dv < ring {
				continue
			}
			u, v := cu+du, cv+dv
			if u < 0 || u >= l.perAxis || v < 0 || v >= l.perAxis {
				continue
			}
			for _, node := range l.buckets[l.bucketAt(face, u, v)] {
				visit(node)
			}
		}
	}
}

func (l *Lookup) bucketAt(face, u, v int) int {
	return (face*l.perAxis+u)*l.perAxis + v
}

// quantize maps a face parameter in [-1, 1] to a bucket column.
func (l *Lookup) quantize(p float64) int {
	b := int((p + 1) * 0.5 * float64(l.perAxis))
	if b < 0 {
		return 0
	}
	if b >= l.perAxis {
		return l.perAxis - 1
	}
	return b
}

// faceProject classifies a direction by its largest-magnitude component
// and projects it onto that face's 2D parameterization in [-1, 1]².
// Faces: 0 +x, 1 -x, 2 +y, 3 -y, 4 +z, 5 -z.
func faceProject(d grid.Vec3) (face int, u, v float64) {
	ax, ay, az := abs(d.X), abs(d.Y), abs(d.Z)
	switch {
	case ax >= ay && ax >= az:
		face = 0
		if d.X < 0 {
			face = 1
		}
		return face, d.Y / ax, d.Z / ax
	case ay >= az:
		face = 2
		if d.Y < 0 {
			face = 3
		}
		return face, d.X / ay, d.Z / ay
	default:
		face = 4
		if d.Z < 0 {
			face = 5
		}
		return face, d.X / az, d.Y / az
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
