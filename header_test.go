package qoipix

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	h := frameHeader{Width: 640, Height: 480, Channels: 4, Entropy: true, Linear: false}
	buf := make([]byte, headerSize)
	writeHeader(buf, h)

	got, err := parseHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}

func TestHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, headerSize)
	writeHeader(buf, frameHeader{Width: 1, Height: 1, Channels: 3})
	buf[0] = 'x'
	if _, err := parseHeader(buf); err != ErrInvalidHeader {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestHeaderRejectsTruncated(t *testing.T) {
	buf := make([]byte, headerSize-1)
	if _, err := parseHeader(buf); err != ErrInvalidHeader {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestHeaderRejectsBadChannels(t *testing.T) {
	buf := make([]byte, headerSize)
	writeHeader(buf, frameHeader{Width: 1, Height: 1, Channels: 5})
	if _, err := parseHeader(buf); err != ErrInvalidHeader {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestHeaderRejectsReservedColorspaceBits(t *testing.T) {
	buf := make([]byte, headerSize)
	writeHeader(buf, frameHeader{Width: 1, Height: 1, Channels: 3})
	buf[13] |= 0x02 // a reserved bit outside entropy(0x80)/linear(0x01)
	if _, err := parseHeader(buf); err != ErrInvalidHeader {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestHeaderRejectsZeroDimensions(t *testing.T) {
	buf := make([]byte, headerSize)
	writeHeader(buf, frameHeader{Width: 0, Height: 1, Channels: 3})
	if _, err := parseHeader(buf); err != ErrInvalidHeader {
		t.Errorf("got %v, want ErrInvalidHeader", err)
	}
}

func TestColorspaceByte(t *testing.T) {
	cases := []struct {
		h    frameHeader
		want byte
	}{
		{frameHeader{}, 0x00},
		{frameHeader{Entropy: true}, 0x80},
		{frameHeader{Linear: true}, 0x01},
		{frameHeader{Entropy: true, Linear: true}, 0x81},
	}
	for _, c := range cases {
		if got := c.h.colorspaceByte(); got != c.want {
			t.Errorf("colorspaceByte(%+v) = %#x, want %#x", c.h, got, c.want)
		}
	}
}
