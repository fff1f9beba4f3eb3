// Package path implements low-allocation A* shortest-path search over a
// topology's flat neighbor arrays.
package path

import (
	"math"

	"github.com/JoelDorrington/hexglobe/grid"
)

// Buffer is a caller-owned path output: node indices plus a count.
// Each search overwrites it in place; the backing slice only grows when
// a path is longer than any previous one.
type Buffer struct {
	Nodes []int32
	Count int
}

// Path returns the valid portion of the buffer.
func (b *Buffer) Path() []int32 { return b.Nodes[:b.Count] }

func (b *Buffer) push(n int32) {
	if b.Count < len(b.Nodes) {
		b.Nodes[b.Count] = n
	} else {
		b.Nodes = append(b.Nodes, n)
	}
	b.Count++
}

// Finder owns the scratch arrays (gScore, fScore, cameFrom, heap) for A*
// searches, reused across calls to avoid per-query allocation. A Finder
// must not be shared between concurrent searches; independent queries
// over the same immutable topology may each use their own Finder in
// parallel.
type Finder struct {
	g    []float64
	came []int32
	heap *MinHeap
}

// NewFinder allocates scratch sized for nodeCount nodes. The scratch
// grows automatically if later used with a larger topology.
func NewFinder(nodeCount int) *Finder {
	return &Finder{
		g:    make([]float64, nodeCount),
		came: make([]int32, nodeCount),
		heap: NewMinHeap(nodeCount),
	}
}

func (p *Finder) ensure(nodeCount int) {
	if len(p.g) < nodeCount {
		p.g = make([]float64, nodeCount)
		p.came = make([]int32, nodeCount)
		p.heap = NewMinHeap(nodeCount)
	}
}

// TryFindPath runs A* from start to goal using chord distance between
// cell centers as both edge cost and heuristic (a lower bound on any
// path over the sphere, so the heuristic is admissible). On success the
// path, start and goal inclusive, is written into out and the total
// traversal cost is returned with true. Returns false when the open set
// empties before reaching goal, or for invalid endpoints; out then holds
// an empty path.
//
// Unresolved neighbors (grid.None) are skipped, never treated as node 0.
func (p *Finder) TryFindPath(t *grid.Topology, start, goal int32, out *Buffer) (float64, bool) {
	out.Count = 0
	n := t.NodeCount()
	if start < 0 || int(start) >= n || goal < 0 || int(goal) >= n {
		return 0, false
	}
	if start == goal {
		out.push(start)
		return 0, true
	}

	p.ensure(n)
	for i := 0; i < n; i++ {
		p.g[i] = math.Inf(1)
		p.came[i] = grid.None
	}
	p.heap.Clear()

	goalCenter := t.Center(goal)
	p.g[start] = 0
	p.heap.Push(start, grid.Dist(t.Center(start), goalCenter))

	for p.heap.Len() > 0 {
		cur, _, _ := p.heap.PopMin()
		if cur == goal {
			p.reconstruct(start, goal, out)
			return p.g[goal], true
		}

		first, count := t.NeighborSlice(cur)
		curCenter := t.Center(cur)
		for k := first; k < first+count; k++ {
			nb := t.Neighbors[k]
			if nb == grid.None {
				continue
			}
			tentative := p.g[cur] + grid.Dist(curCenter, t.Center(nb))
			if tentative >= p.g[nb] {
				continue
			}
			p.g[nb] = tentative
			p.came[nb] = cur
			f := tentative + grid.Dist(t.Center(nb), goalCenter)
			if !p.heap.DecreaseKey(nb, f) && !p.heap.Contains(nb) {
				p.heap.Push(nb, f)
			}
		}
	}
	return 0, false
}

// reconstruct walks cameFrom from goal back to start, then reverses the
// buffer in place.
func (p *Finder) reconstruct(start, goal int32, out *Buffer) {
	for cur := goal; cur != grid.None; cur = p.came[cur] {
		out.push(cur)
		if cur == start {
			break
		}
	}
	for i, j := 0, out.Count-1; i < j; i, j = i+1, j-1 {
		out.Nodes[i], out.Nodes[j] = out.Nodes[j], out.Nodes[i]
	}
}
