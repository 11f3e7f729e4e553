// Package chunk implements the pixel-to-chunk-stream state machine: the
// forward scan that turns a linear RGB/RGBA pixel buffer into a sequence of
// byte-aligned chunks (encode.go), and the inverse scan that reconstructs
// pixels from that chunk stream (decode.go). Both sides share the same
// hash-indexed predictor cache, kept in sync by construction the way
// libwebp's lossless encoder/decoder keep their ColorCache in sync.
package chunk

// Pixel is a single RGBA sample. A zero-value Pixel is {0,0,0,0}, which is
// how the predictor cache's slots start out (note: alpha 0, not 255 — see
// Cache below).
type Pixel struct {
	R, G, B, A uint8
}

// hash implements h(p) = (3r + 5g + 7b + 11a) mod 64 (spec §3).
func (p Pixel) hash() uint8 {
	return uint8((3*uint32(p.R) + 5*uint32(p.G) + 7*uint32(p.B) + 11*uint32(p.A)) % CacheSize)
}

// CacheSize is the fixed number of predictor-cache slots.
const CacheSize = 64

// Cache is the 64-slot predictor table, hash-indexed by Pixel.hash. It is
// the direct analogue of libwebp's ColorCache (internal/lossless/colorcache.go
// in the teacher repo), sized 64 instead of 2^hashBits and keyed by the
// additive hash in spec §3 instead of VP8L's multiplicative one.
//
// Cache is zero-valued (all slots {0,0,0,0}) at the start of every
// encode/decode call — including alpha 0, which is the "cache-init
// asymmetry" spec §9 calls out: prev starts at alpha 255, the cache does
// not.
type Cache struct {
	slots [CacheSize]Pixel
}

// Reset clears every slot back to {0,0,0,0}.
func (c *Cache) Reset() {
	for i := range c.slots {
		c.slots[i] = Pixel{}
	}
}

// Index returns the hash slot a pixel belongs in.
func (c *Cache) Index(p Pixel) uint8 {
	return p.hash()
}

// At returns the pixel currently stored at slot k.
func (c *Cache) At(k uint8) Pixel {
	return c.slots[k]
}

// Set stores p at slot k (its own hash).
func (c *Cache) Set(k uint8, p Pixel) {
	c.slots[k] = p
}

// Matches reports whether the cache slot for p already holds p (an INDEX
// hit), and returns that slot.
func (c *Cache) Matches(p Pixel) (uint8, bool) {
	k := p.hash()
	return k, c.slots[k] == p
}
