package chunk

import (
	"sync"

	"github.com/brightforge/qoipix/internal/entropy"
	"github.com/brightforge/qoipix/internal/pool"
)

// Tag bytes and masks for the chunk stream, spec §3/§4.1.
const (
	tagIndex byte = 0x00 // 00kkkkkk
	tagDiff  byte = 0x40 // 01rrggbb
	tagLuma  byte = 0x80 // 10gggggg
	tagRun   byte = 0xC0 // 11rrrrrr
	tagRGB   byte = 0xFE
	tagRGBA  byte = 0xFF

	tagMask byte = 0xC0

	maxRun = 62
)

// EndMarker is the fixed 8-byte sequence every chunk stream ends with
// (spec §3): seven zero bytes followed by a single 1 bit in the last byte.
var EndMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// EncodeResult holds the chunk stream (including its trailing EndMarker)
// and the byte-frequency histogram collected over it while scanning, the
// same histogram entropy.Encode needs to build its dictionary (spec §2
// item 5, §4.4) — collected once here instead of re-scanned downstream.
type EncodeResult struct {
	Bytes     []byte
	Histogram entropy.Histogram
}

// encoderState is the scratch state reused across Encode calls via
// encoderPool, the same acquire/release shape the teacher uses for its
// Decoder/Encoder structs in internal/lossless.
type encoderState struct {
	cache Cache
	hist  entropy.Histogram
	out   []byte
}

var encoderPool = sync.Pool{
	New: func() any { return &encoderState{} },
}

func acquireEncoder() *encoderState {
	e := encoderPool.Get().(*encoderState)
	e.cache.Reset()
	e.hist = entropy.Histogram{}
	e.out = e.out[:0]
	return e
}

func releaseEncoder(e *encoderState) {
	if e.out != nil {
		pool.EncoderBuffers.Put(e.out)
		e.out = nil
	}
	encoderPool.Put(e)
}

// Encode scans a linear pixel buffer (width*height*channels bytes, channels
// 3 or 4) and produces the chunk stream per spec §4.1: a RUN/INDEX/DIFF/
// LUMA/RGB/RGBA tag-precedence ladder driven by a 64-slot predictor cache,
// terminated by EndMarker.
func Encode(pixels []byte, width, height, channels int) (EncodeResult, error) {
	if width <= 0 || height <= 0 {
		return EncodeResult{}, ErrInvalidDimensions
	}
	if channels != 3 && channels != 4 {
		return EncodeResult{}, ErrInvalidChannels
	}
	numPixels := width * height
	if numPixels >= MaxPixels {
		return EncodeResult{}, ErrTooManyPixels
	}
	if len(pixels) != numPixels*channels {
		return EncodeResult{}, ErrBufferSize
	}

	e := acquireEncoder()
	defer releaseEncoder(e)

	maxSize := numPixels*(channels+1) + len(EndMarker)
	if cap(e.out) < maxSize {
		e.out = pool.EncoderBuffers.Get(maxSize)
	}

	emit := func(b byte) {
		e.out = append(e.out, b)
		e.hist.Add(b)
	}

	prev := Pixel{R: 0, G: 0, B: 0, A: 255}
	run := 0

	for i := 0; i < numPixels; i++ {
		off := i * channels
		p := Pixel{R: pixels[off], G: pixels[off+1], B: pixels[off+2], A: 255}
		if channels == 4 {
			p.A = pixels[off+3]
		}

		last := i == numPixels-1

		if p == prev {
			run++
			if run == maxRun || last {
				emit(tagRun | byte(run-1))
				run = 0
			}
			continue
		}

		if run > 0 {
			emit(tagRun | byte(run-1))
			run = 0
		}

		if k, ok := e.cache.Matches(p); ok {
			emit(tagIndex | k)
			prev = p
			continue
		}

		k := e.cache.Index(p)
		e.cache.Set(k, p)

		if p.A != prev.A {
			emit(tagRGBA)
			emit(p.R)
			emit(p.G)
			emit(p.B)
			emit(p.A)
			prev = p
			continue
		}

		vr := int8(p.R - prev.R)
		vg := int8(p.G - prev.G)
		vb := int8(p.B - prev.B)

		if vr >= -2 && vr <= 1 && vg >= -2 && vg <= 1 && vb >= -2 && vb <= 1 {
			emit(tagDiff | byte(vr+2)<<4 | byte(vg+2)<<2 | byte(vb+2))
			prev = p
			continue
		}

		vgR := int(vr) - int(vg)
		vgB := int(vb) - int(vg)
		if vg >= -32 && vg <= 31 && vgR >= -8 && vgR <= 7 && vgB >= -8 && vgB <= 7 {
			emit(tagLuma | byte(int(vg)+32))
			emit(byte(vgR+8)<<4 | byte(vgB+8))
			prev = p
			continue
		}

		emit(tagRGB)
		emit(p.R)
		emit(p.G)
		emit(p.B)
		prev = p
	}

	for _, b := range EndMarker {
		emit(b)
	}

	out := make([]byte, len(e.out))
	copy(out, e.out)
	return EncodeResult{Bytes: out, Histogram: e.hist}, nil
}
