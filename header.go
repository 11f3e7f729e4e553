package qoipix

import (
	"github.com/brightforge/qoipix/internal/bitio"
	"github.com/brightforge/qoipix/internal/chunk"
)

// headerSize is the fixed 14-byte frame header length (spec §3/§6).
const headerSize = 14

var magic = [4]byte{'q', 'o', 'i', 'f'}

const (
	colorspaceEntropyBit   = 1 << 7
	colorspaceLinearBit    = 1 << 0
	colorspaceReservedMask = ^byte(colorspaceEntropyBit | colorspaceLinearBit)
)

// frameHeader is the parsed form of the 14-byte header.
type frameHeader struct {
	Width, Height int
	Channels      int
	Entropy       bool
	Linear        bool
}

func (h frameHeader) colorspaceByte() byte {
	var b byte
	if h.Entropy {
		b |= colorspaceEntropyBit
	}
	if h.Linear {
		b |= colorspaceLinearBit
	}
	return b
}

// writeHeader writes h into the first headerSize bytes of buf.
func writeHeader(buf []byte, h frameHeader) {
	cur := bitio.NewCursor(buf)
	cur.WriteBytes(magic[:])
	cur.WriteU32(uint32(h.Width))
	cur.WriteU32(uint32(h.Height))
	cur.WriteByte(byte(h.Channels))
	cur.WriteByte(h.colorspaceByte())
}

// parseHeader validates and parses the 14-byte header at the start of
// data, per spec §3/§7 (magic mismatch, truncated header, bad channel
// count, reserved colorspace bits, or out-of-range dimensions).
func parseHeader(data []byte) (frameHeader, error) {
	if len(data) < headerSize {
		return frameHeader{}, ErrInvalidHeader
	}

	cur := bitio.NewCursor(data)
	var gotMagic [4]byte
	copy(gotMagic[:], cur.ReadBytes(4))
	if gotMagic != magic {
		return frameHeader{}, ErrInvalidHeader
	}

	width := int(cur.ReadU32())
	height := int(cur.ReadU32())
	channels := int(cur.ReadByte())
	colorspace := cur.ReadByte()

	if channels != 3 && channels != 4 {
		return frameHeader{}, ErrInvalidHeader
	}
	if colorspace&colorspaceReservedMask != 0 {
		return frameHeader{}, ErrInvalidHeader
	}
	if width <= 0 || height <= 0 {
		return frameHeader{}, ErrInvalidHeader
	}
	if width*height >= chunk.MaxPixels {
		return frameHeader{}, ErrTooLarge
	}

	return frameHeader{
		Width:    width,
		Height:   height,
		Channels: channels,
		Entropy:  colorspace&colorspaceEntropyBit != 0,
		Linear:   colorspace&colorspaceLinearBit != 0,
	}, nil
}
