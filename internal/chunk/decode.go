package chunk

import (
	"bytes"
	"sync"

	"github.com/brightforge/qoipix/internal/pool"
)

// decoderState is the scratch state reused across Decode calls via
// decoderPool, mirroring encoderState / the teacher's acquireDecoder.
type decoderState struct {
	cache Cache
	out   []byte
}

var decoderPool = sync.Pool{
	New: func() any { return &decoderState{} },
}

func acquireDecoder() *decoderState {
	d := decoderPool.Get().(*decoderState)
	d.cache.Reset()
	d.out = d.out[:0]
	return d
}

func releaseDecoder(d *decoderState) {
	if d.out != nil {
		pool.DecoderBuffers.Put(d.out)
		d.out = nil
	}
	decoderPool.Put(d)
}

// Decode reconstructs a linear pixel buffer of width*height*outChannels
// bytes (outChannels 3 or 4) from a chunk stream, per spec §4.2. The stream
// is expected to end with its own EndMarker; a trailing EndMarker is cut off
// before any chunk is read, so its bytes are never decoded as chunks. A
// marker anywhere other than at the very end is not searched for (callers
// that need to locate it should do so before calling Decode).
//
// A body that runs out of bytes before producing width*height pixels is not
// a hard error: per spec §8's truncated-body scenario, the remaining pixels
// are filled by repeating the last successfully decoded pixel (or the
// canonical {0,0,0,255} start pixel if none were decoded yet). The second
// return value reports whether that happened, so a caller's strict mode can
// turn it into a hard error.
func Decode(data []byte, width, height, outChannels int) ([]byte, bool, error) {
	if width <= 0 || height <= 0 {
		return nil, false, ErrInvalidDimensions
	}
	if outChannels != 3 && outChannels != 4 {
		return nil, false, ErrInvalidChannels
	}
	numPixels := width * height
	if numPixels >= MaxPixels {
		return nil, false, ErrTooManyPixels
	}

	if n := len(data) - len(EndMarker); n >= 0 && bytes.Equal(data[n:], EndMarker[:]) {
		data = data[:n]
	}

	d := acquireDecoder()
	defer releaseDecoder(d)

	if cap(d.out) < numPixels*outChannels {
		d.out = pool.DecoderBuffers.Get(numPixels * outChannels)
	}

	prev := Pixel{R: 0, G: 0, B: 0, A: 255}
	pos := 0
	run := 0
	truncated := false

	readByte := func() (byte, bool) {
		if pos >= len(data) {
			truncated = true
			return 0, false
		}
		b := data[pos]
		pos++
		return b, true
	}

	writePixel := func(p Pixel) {
		d.out = append(d.out, p.R, p.G, p.B)
		if outChannels == 4 {
			d.out = append(d.out, p.A)
		}
	}

	for i := 0; i < numPixels && !truncated; i++ {
		if run > 0 {
			writePixel(prev)
			run--
			continue
		}

		b, ok := readByte()
		if !ok {
			writePixel(prev)
			continue
		}

		switch {
		case b == tagRGB:
			r, ok1 := readByte()
			g, ok2 := readByte()
			bl, ok3 := readByte()
			if !ok1 || !ok2 || !ok3 {
				writePixel(prev)
				continue
			}
			p := Pixel{R: r, G: g, B: bl, A: prev.A}
			d.cache.Set(d.cache.Index(p), p)
			writePixel(p)
			prev = p

		case b == tagRGBA:
			r, ok1 := readByte()
			g, ok2 := readByte()
			bl, ok3 := readByte()
			a, ok4 := readByte()
			if !ok1 || !ok2 || !ok3 || !ok4 {
				writePixel(prev)
				continue
			}
			p := Pixel{R: r, G: g, B: bl, A: a}
			d.cache.Set(d.cache.Index(p), p)
			writePixel(p)
			prev = p

		case b&tagMask == tagIndex:
			k := b &^ tagMask
			p := d.cache.At(k)
			writePixel(p)
			prev = p

		case b&tagMask == tagDiff:
			dr := int8((b>>4)&0x03) - 2
			dg := int8((b>>2)&0x03) - 2
			db := int8(b&0x03) - 2
			p := Pixel{
				R: prev.R + byte(dr),
				G: prev.G + byte(dg),
				B: prev.B + byte(db),
				A: prev.A,
			}
			d.cache.Set(d.cache.Index(p), p)
			writePixel(p)
			prev = p

		case b&tagMask == tagLuma:
			vg := int(b&0x3F) - 32
			b2, ok2 := readByte()
			if !ok2 {
				writePixel(prev)
				continue
			}
			vgR := int(b2>>4) - 8
			vgB := int(b2&0x0F) - 8
			dr := vgR + vg
			db := vgB + vg
			p := Pixel{
				R: prev.R + byte(int8(dr)),
				G: prev.G + byte(int8(vg)),
				B: prev.B + byte(int8(db)),
				A: prev.A,
			}
			d.cache.Set(d.cache.Index(p), p)
			writePixel(p)
			prev = p

		case b&tagMask == tagRun:
			length := int(b&0x3F) + 1
			writePixel(prev)
			run = length - 1
		}
	}

	// Fill any pixels left after a truncated body with the last decoded
	// pixel, per the soft-failure rule above.
	for len(d.out) < numPixels*outChannels {
		writePixel(prev)
	}

	out := make([]byte, len(d.out))
	copy(out, d.out)
	return out, truncated, nil
}
