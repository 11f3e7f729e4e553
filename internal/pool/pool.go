// Package pool provides reusable scratch-buffer pools for the two
// variable-size byte slices the chunk codec allocates per call: the
// encoder's growable chunk-stream accumulator (worst case
// width*height*(channels+1) + len(chunk.EndMarker) bytes) and the
// decoder's reconstructed pixel buffer (width*height*channels bytes).
// Both scale directly with image area rather than falling into a small
// number of fixed tile sizes, so unlike a DSP-tile allocator this pool
// does not bucket by fixed size class: each Pool keeps one sync.Pool of
// slices and grows a borrowed buffer to the caller's exact requested
// capacity when the pooled one is too small.
package pool

import "sync"

// minBufCap is the smallest capacity kept in a Pool; buffers for tiny
// images aren't worth pooling.
const minBufCap = 256

// Pool hands out byte slices of length 0 and at least a requested
// capacity, reusing previously Put slices where possible.
type Pool struct {
	sync.Pool
}

// New creates a Pool whose fresh (unpooled) slices start at minBufCap.
func New() *Pool {
	return &Pool{
		Pool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, minBufCap)
				return &b
			},
		},
	}
}

// Get returns a zero-length slice with capacity at least size. The
// caller must call Put when done with it.
func (p *Pool) Get(size int) []byte {
	bp := p.Pool.Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		return make([]byte, 0, size)
	}
	return b[:0]
}

// Put returns b to the pool for reuse. Slices smaller than minBufCap
// are not pooled.
func (p *Pool) Put(b []byte) {
	if cap(b) < minBufCap {
		return
	}
	b = b[:0]
	p.Pool.Put(&b)
}

var (
	// EncoderBuffers pools internal/chunk/encode.go's growable chunk-
	// stream output buffer.
	EncoderBuffers = New()

	// DecoderBuffers pools internal/chunk/decode.go's reconstructed
	// pixel output buffer.
	DecoderBuffers = New()
)
