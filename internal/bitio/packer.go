package bitio

import "encoding/binary"

// WordWriter packs bits LSB-first into 32-bit words and stores those words
// in the host's native byte order, per the entropy frame layout (spec §4.4,
// §6): "bit 0 is the first emitted bit... words are stored as the host
// architecture stores them". This is a deliberate portability limitation of
// the format, not an oversight: entropy-coded frames produced on one host
// byte order are not guaranteed to decode correctly on a host of the
// opposite byte order. Re-targeted from the accumulate-then-flush shape of
// a VP8L-style bit writer, but flushing whole 32-bit native-endian words
// instead of fixed little-endian bytes.
type WordWriter struct {
	acc  uint64 // bit accumulator
	used int    // number of valid bits currently in acc
	buf  []byte
}

// NewWordWriter creates a WordWriter with capacity pre-reserved for
// approximately expectedBytes of packed output.
func NewWordWriter(expectedBytes int) *WordWriter {
	if expectedBytes < 64 {
		expectedBytes = 64
	}
	return &WordWriter{buf: make([]byte, 0, expectedBytes)}
}

// WriteBits ORs the low length bits of bits into the stream, advancing the
// bit cursor by length. length must be in [0, 32].
func (w *WordWriter) WriteBits(bits uint32, length int) {
	if length == 0 {
		return
	}
	w.acc |= uint64(bits) << uint(w.used)
	w.used += length
	for w.used >= 32 {
		w.flushWord()
	}
}

// flushWord emits the low 32 bits of the accumulator as one native-endian
// word and shifts the accumulator down by 32.
func (w *WordWriter) flushWord() {
	var tmp [4]byte
	binary.NativeEndian.PutUint32(tmp[:], uint32(w.acc))
	w.buf = append(w.buf, tmp[:]...)
	w.acc >>= 32
	w.used -= 32
}

// Finish flushes any partial word (zero-padding the remaining high bits)
// and returns the packed byte slice. It does not append the trailing zero
// word the frame format requires after the body; callers append that
// themselves so the trailer is visible at the call site (see §4.4/§6).
func (w *WordWriter) Finish() []byte {
	if w.used > 0 {
		w.flushWord()
	}
	return w.buf
}

// WordReader reads bits LSB-first out of a sequence of native-endian 32-bit
// words, mirroring WordWriter. It keeps a 64-bit window spanning the
// current and next word so a caller can always read up to 32 bits starting
// at an arbitrary bit offset within the current word (spec §4.5: "given a
// 64-bit window read as two consecutive 32-bit words shifted right by
// bit_cursor").
type WordReader struct {
	words    []uint32 // the body reinterpreted as native-endian 32-bit words
	wordIdx  int       // index of the current low word in the 64-bit window
	bitCursor int      // bit offset within the current word, 0..31
}

// NewWordReader interprets data (already padded to a multiple of 4 bytes by
// the caller, per the frame format) as a sequence of native-endian 32-bit
// words.
func NewWordReader(data []byte) *WordReader {
	n := len(data) / 4
	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		words[i] = binary.NativeEndian.Uint32(data[i*4 : i*4+4])
	}
	return &WordReader{words: words}
}

// word returns words[i], or 0 if i is past the end (end-of-stream padding).
func (r *WordReader) word(i int) uint32 {
	if i < 0 || i >= len(r.words) {
		return 0
	}
	return r.words[i]
}

// Window returns the current 64-bit prefetch window: the current word and
// the next word, shifted down by bitCursor so bit 0 of the result is the
// next unconsumed bit.
func (r *WordReader) Window() uint64 {
	lo := uint64(r.word(r.wordIdx))
	hi := uint64(r.word(r.wordIdx + 1))
	win := lo | (hi << 32)
	return win >> uint(r.bitCursor)
}

// Advance moves the bit cursor forward by n bits (0..32), rolling over into
// the next word as needed, per spec §4.5's advance rule.
func (r *WordReader) Advance(n int) {
	r.bitCursor += n
	if r.bitCursor >= 32 {
		r.wordIdx++
		r.bitCursor -= 32
	}
}

// Exhausted reports whether the reader has consumed every word (including
// the mandatory trailing zero word), i.e. any further read would come from
// implicit zero padding.
func (r *WordReader) Exhausted() bool {
	return r.wordIdx >= len(r.words)
}
