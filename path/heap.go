package path

// MinHeap is a binary min-heap of (node, key) pairs with an auxiliary
// position array so DecreaseKey runs in O(log n) instead of a linear
// scan. The position array is sized to the total node count; the heap
// itself only holds the open set.
//
// Not safe for concurrent use; each concurrent search needs its own heap.
type MinHeap struct {
	entries []heapEntry
	pos     []int32 // pos[node] = heap slot, or -1 when absent
}

type heapEntry struct {
	node int32
	key  float64
}

// NewMinHeap creates a heap able to track nodes in [0, nodeCount).
func NewMinHeap(nodeCount int) *MinHeap {
	h := &MinHeap{pos: make([]int32, nodeCount)}
	for i := range h.pos {
		h.pos[i] = -1
	}
	return h
}

// Len returns the number of queued entries.
func (h *MinHeap) Len() int { return len(h.entries) }

// Contains reports whether node is currently queued.
func (h *MinHeap) Contains(node int32) bool {
	return node >= 0 && int(node) < len(h.pos) && h.pos[node] >= 0
}

// Push queues a node that is not currently in the heap.
func (h *MinHeap) Push(node int32, key float64) {
	h.entries = append(h.entries, heapEntry{node: node, key: key})
	h.pos[node] = int32(len(h.entries) - 1)
	h.siftUp(len(h.entries) - 1)
}

// PopMin removes and returns the entry with the smallest key.
func (h *MinHeap) PopMin() (node int32, key float64, ok bool) {
	if len(h.entries) == 0 {
		return -1, 0, false
	}
	top := h.entries[0]
	last := len(h.entries) - 1
	h.entries[0] = h.entries[last]
	h.pos[h.entries[0].node] = 0
	h.entries = h.entries[:last]
	h.pos[top.node] = -1
	if last > 0 {
		h.siftDown(0)
	}
	return top.node, top.key, true
}

// DecreaseKey lowers a queued node's key. Returns false if the node is
// not in the heap or the new key is not smaller.
func (h *MinHeap) DecreaseKey(node int32, key float64) bool {
	if !h.Contains(node) {
		return false
	}
	slot := h.pos[node]
	if key >= h.entries[slot].key {
		return false
	}
	h.entries[slot].key = key
	h.siftUp(int(slot))
	return true
}

// Clear empties the heap in O(queued entries), not O(node count).
func (h *MinHeap) Clear() {
	for _, e := range h.entries {
		h.pos[e.node] = -1
	}
	h.entries = h.entries[:0]
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.entries[parent].key <= h.entries[i].key {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.entries)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.entries[right].key < h.entries[left].key {
			smallest = right
		}
		if h.entries[i].key <= h.entries[smallest].key {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *MinHeap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.pos[h.entries[i].node] = int32(i)
	h.pos[h.entries[j].node] = int32(j)
}
