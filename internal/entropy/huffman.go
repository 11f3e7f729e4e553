package entropy

import "container/heap"

// MaxCodeLength is the cap from spec §4.3: if any code would need more
// bits than this, entropy encoding must be aborted for the frame.
const MaxCodeLength = 32

// arenaSize is the tree arena bound: 256 leaves plus at most 255 internal
// combine nodes.
const arenaSize = 512

// Entry is one byte value's (bit-pattern, length) pair. A zero Length means
// the byte value never occurs in the stream; such values carry no real
// code and must not appear in the packed body.
type Entry struct {
	Bits   uint32
	Length uint8
}

// Dictionary maps a byte value (0..255) to its Entry.
type Dictionary [256]Entry

// node is one arena slot: a leaf (index < 256, byte value == its own
// index) or an internal combine node (left/right are other arena indices).
type node struct {
	count       uint64
	left, right int32
}

type heapItem struct {
	idx   int32
	count uint64
}

// nodeHeap is a standard container/heap min-heap keyed by count, the same
// shape as the teacher's nodeHeap in internal/lossless/encode_huffman.go.
type nodeHeap []heapItem

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].count < h[j].count }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(heapItem))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// BuildDictionary runs the min-heap Huffman combine of spec §4.3 over hist
// and returns the resulting code table. ok is false if the code of any
// byte value that occurs in hist would exceed MaxCodeLength bits, in which
// case the caller must fall back to the plain (non-entropy-coded) stream;
// the depth of zero-count leaves does not count against that limit.
//
// All 256 byte values participate as leaves regardless of count, per the
// algorithm's literal step 1/2 — this is what makes a single-nonzero-count
// histogram converge on a 1-bit code for that value (§8 scenario 6): the
// 255 zero-weight leaves combine among themselves first, and the sole
// nonzero leaf is pulled in last, next to the root. Zero-count byte values
// are then stripped back out of the returned table, since they carry no
// code that will ever be transmitted or decoded.
func BuildDictionary(hist Histogram) (dict Dictionary, ok bool) {
	var arena [arenaSize]node
	for v := 0; v < 256; v++ {
		arena[v] = node{count: uint64(hist[v]), left: -1, right: -1}
	}
	next := int32(256)

	h := make(nodeHeap, 256)
	for v := 0; v < 256; v++ {
		h[v] = heapItem{idx: int32(v), count: arena[v].count}
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)
		arena[next] = node{count: a.count + b.count, left: a.idx, right: b.idx}
		heap.Push(&h, heapItem{idx: next, count: arena[next].count})
		next++
	}
	root := heap.Pop(&h).(heapItem).idx

	ok = true
	var assign func(idx int32, bits uint32, length int)
	assign = func(idx int32, bits uint32, length int) {
		if !ok {
			return
		}
		if idx < 256 {
			if hist[idx] == 0 {
				return
			}
			if length > MaxCodeLength {
				ok = false
				return
			}
			dict[idx] = Entry{Bits: bits, Length: uint8(length)}
			return
		}
		n := arena[idx]
		assign(n.left, bits, length+1)
		assign(n.right, bits|(1<<uint(length)), length+1)
	}
	assign(root, 0, 0)

	for v := 0; v < 256; v++ {
		if hist[v] == 0 {
			dict[v] = Entry{}
		}
	}

	return dict, ok
}
