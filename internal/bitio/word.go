// Package bitio provides the byte/bit-level primitives the codec needs:
// a positional big-endian cursor for the frame header and literal chunk
// fields, and a 32-bit-word LSB-first bit packer/unpacker for the entropy
// layer.
package bitio

import "encoding/binary"

// Cursor is a positional reader/writer over a big-endian byte buffer. It
// backs the frame header (width, height) and is also used by callers that
// need to stitch raw big-endian integers into a buffer without pulling in
// the bit-packer below.
type Cursor struct {
	Buf []byte
	Pos int
}

// NewCursor wraps buf for reading or writing starting at position 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{Buf: buf}
}

// ReadU16 reads a big-endian uint16 and advances the cursor.
func (c *Cursor) ReadU16() uint16 {
	v := binary.BigEndian.Uint16(c.Buf[c.Pos:])
	c.Pos += 2
	return v
}

// ReadU24 reads a big-endian 24-bit unsigned integer and advances the
// cursor by 3 bytes.
func (c *Cursor) ReadU24() uint32 {
	b := c.Buf[c.Pos : c.Pos+3]
	c.Pos += 3
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// ReadU32 reads a big-endian uint32 and advances the cursor.
func (c *Cursor) ReadU32() uint32 {
	v := binary.BigEndian.Uint32(c.Buf[c.Pos:])
	c.Pos += 4
	return v
}

// ReadByte reads a single byte and advances the cursor.
func (c *Cursor) ReadByte() byte {
	b := c.Buf[c.Pos]
	c.Pos++
	return b
}

// ReadBytes reads n raw bytes and advances the cursor.
func (c *Cursor) ReadBytes(n int) []byte {
	b := c.Buf[c.Pos : c.Pos+n]
	c.Pos += n
	return b
}

// WriteU16 writes a big-endian uint16 and advances the cursor.
func (c *Cursor) WriteU16(v uint16) {
	binary.BigEndian.PutUint16(c.Buf[c.Pos:], v)
	c.Pos += 2
}

// WriteU24 writes a big-endian 24-bit unsigned integer (low 24 bits of v)
// and advances the cursor by 3 bytes.
func (c *Cursor) WriteU24(v uint32) {
	c.Buf[c.Pos] = byte(v >> 16)
	c.Buf[c.Pos+1] = byte(v >> 8)
	c.Buf[c.Pos+2] = byte(v)
	c.Pos += 3
}

// WriteU32 writes a big-endian uint32 and advances the cursor.
func (c *Cursor) WriteU32(v uint32) {
	binary.BigEndian.PutUint32(c.Buf[c.Pos:], v)
	c.Pos += 4
}

// WriteByte writes a single byte and advances the cursor. Implements
// io.ByteWriter.
func (c *Cursor) WriteByte(b byte) error {
	c.Buf[c.Pos] = b
	c.Pos++
	return nil
}

// WriteBytes copies raw bytes into the buffer and advances the cursor.
func (c *Cursor) WriteBytes(b []byte) {
	copy(c.Buf[c.Pos:], b)
	c.Pos += len(b)
}

// Remaining returns the number of unread/unwritten bytes left in Buf.
func (c *Cursor) Remaining() int {
	return len(c.Buf) - c.Pos
}
