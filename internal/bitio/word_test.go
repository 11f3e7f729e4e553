package bitio

import "testing"

func TestCursorRoundTrip(t *testing.T) {
	buf := make([]byte, 2+3+4+1+2)
	c := NewCursor(buf)
	c.WriteU16(0xABCD)
	c.WriteU24(0x112233)
	c.WriteU32(0xDEADBEEF)
	c.WriteByte(0x42)
	c.WriteBytes([]byte{0x01, 0x02})

	c = NewCursor(buf)
	if v := c.ReadU16(); v != 0xABCD {
		t.Errorf("ReadU16 = %#x, want 0xABCD", v)
	}
	if v := c.ReadU24(); v != 0x112233 {
		t.Errorf("ReadU24 = %#x, want 0x112233", v)
	}
	if v := c.ReadU32(); v != 0xDEADBEEF {
		t.Errorf("ReadU32 = %#x, want 0xDEADBEEF", v)
	}
	if v := c.ReadByte(); v != 0x42 {
		t.Errorf("ReadByte = %#x, want 0x42", v)
	}
	if v := c.ReadBytes(2); v[0] != 0x01 || v[1] != 0x02 {
		t.Errorf("ReadBytes = % X, want [01 02]", v)
	}
}

func TestCursorU24TruncatesToLow24Bits(t *testing.T) {
	buf := make([]byte, 3)
	c := NewCursor(buf)
	c.WriteU24(0xFFAABBCC) // only low 24 bits (AABBCC) should be stored
	c = NewCursor(buf)
	if v := c.ReadU24(); v != 0xAABBCC {
		t.Errorf("ReadU24 = %#x, want 0xAABBCC", v)
	}
}

func TestCursorRemaining(t *testing.T) {
	buf := make([]byte, 10)
	c := NewCursor(buf)
	if r := c.Remaining(); r != 10 {
		t.Errorf("Remaining = %d, want 10", r)
	}
	c.ReadBytes(4)
	if r := c.Remaining(); r != 6 {
		t.Errorf("Remaining after reading 4 = %d, want 6", r)
	}
}

func TestWordWriterReaderRoundTrip(t *testing.T) {
	type bits struct {
		value  uint32
		length int
	}
	seq := []bits{
		{0x1, 1},
		{0x5, 3},
		{0x7F, 7},
		{0xABCDE, 20},
		{0x3, 2},
		{0xFFFFFFFF, 32},
		{0x0, 5},
	}

	w := NewWordWriter(32)
	for _, b := range seq {
		w.WriteBits(b.value, b.length)
	}
	body := w.Finish()
	// Pad to a multiple of 4 (WordReader requires whole words) plus a
	// trailing zero word, mirroring the frame format.
	for len(body)%4 != 0 {
		body = append(body, 0)
	}
	body = append(body, 0, 0, 0, 0)

	r := NewWordReader(body)
	for i, b := range seq {
		window := r.Window()
		mask := uint64(1)<<uint(b.length) - 1
		got := uint32(window & mask)
		want := b.value & uint32(mask)
		if got != want {
			t.Errorf("seq[%d]: got %#x, want %#x", i, got, want)
		}
		r.Advance(b.length)
	}
}

func TestWordReaderExhausted(t *testing.T) {
	r := NewWordReader(make([]byte, 4))
	if r.Exhausted() {
		t.Fatal("reader with one word should not start exhausted")
	}
	r.Advance(32)
	if !r.Exhausted() {
		t.Error("reader should be exhausted after consuming its only word")
	}
}
