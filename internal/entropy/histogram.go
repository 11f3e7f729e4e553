// Package entropy implements the optional canonical prefix-code layer that
// wraps a chunk stream: code construction via a min-heap Huffman combine
// (huffman.go), dictionary serialization and word-packing (encode.go), and
// the two-tier flat-table-plus-tree decoder (decode.go). Grounded on the
// teacher's internal/lossless Huffman encoder/decoder, re-targeted to this
// format's own dictionary layout and bit-packing convention.
package entropy

// Histogram is a 256-bucket byte-frequency table over a chunk stream.
type Histogram [256]uint32

// Add increments the bucket for b.
func (h *Histogram) Add(b byte) {
	h[b]++
}

// NumNonZero reports how many byte values occur at least once.
func (h Histogram) NumNonZero() int {
	n := 0
	for _, c := range h {
		if c > 0 {
			n++
		}
	}
	return n
}

// EstimatedBits returns Σ counts·lengths, the estimated packed body size in
// bits for dict, used by the 3%-savings policy in §4.4.
func (h Histogram) EstimatedBits(dict Dictionary) uint64 {
	var bits uint64
	for v := 0; v < 256; v++ {
		bits += uint64(h[v]) * uint64(dict[v].Length)
	}
	return bits
}
