package entropy

import (
	"bytes"
	"testing"

	"github.com/brightforge/qoipix/internal/bitio"
)

// skewedStream builds a chunk-stream-shaped byte slice large enough to clear
// the savings floor, with a skewed byte distribution so the 3%-savings
// policy is actually met.
func skewedStream(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		out = append(out, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x2A)
	}
	return out[:n]
}

// histogramOf mirrors what chunk.Encode collects while scanning a pixel
// buffer, for tests that exercise entropy.Encode directly against a raw
// stream rather than through the chunk package.
func histogramOf(stream []byte) Histogram {
	var hist Histogram
	for _, b := range stream {
		hist.Add(b)
	}
	return hist
}

func TestEntropyRoundTrip(t *testing.T) {
	stream := skewedStream(savingsFloorBytes * 2)
	payload, ok := Encode(stream, histogramOf(stream))
	if !ok {
		t.Fatal("Encode declined to entropy-code a skewed 20KB stream")
	}

	// A marker that never occurs in the stream's byte alphabet, so Decode
	// runs to maxBytes instead of stopping early on a spurious match.
	out, err := Decode(payload, []byte{0xFF, 0xFF}, len(stream))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, stream) {
		t.Errorf("round trip mismatch at byte %d (len got=%d want=%d)", firstDiff(out, stream), len(out), len(stream))
	}
}

func TestEntropyFallbackBelowSizeFloor(t *testing.T) {
	stream := skewedStream(savingsFloorBytes - 1)
	if _, ok := Encode(stream, histogramOf(stream)); ok {
		t.Error("Encode should decline streams under the size floor")
	}
}

func TestEntropyFallbackUniformHistogram(t *testing.T) {
	// A uniform byte distribution compresses to ~8 bits/symbol, i.e. no
	// real savings, so Encode must decline it even though it clears the
	// size floor.
	n := savingsFloorBytes * 2
	stream := make([]byte, n)
	for i := range stream {
		stream[i] = byte(i)
	}
	if _, ok := Encode(stream, histogramOf(stream)); ok {
		t.Error("Encode should decline a stream with no compressible skew")
	}
}

func TestDictionaryWireSizeMatchesWrite(t *testing.T) {
	var hist Histogram
	hist[0] = 1000
	hist[1] = 1
	dict, ok := BuildDictionary(hist)
	if !ok {
		t.Fatal("BuildDictionary failed")
	}
	want := dictionaryWireSize(dict)
	buf := make([]byte, want)
	cur := bitio.NewCursor(buf)
	writeDictionary(cur, dict)
	if cur.Pos != want {
		t.Errorf("writeDictionary consumed %d bytes, want %d", cur.Pos, want)
	}
}

func firstDiff(a, b []byte) int {
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			return i
		}
	}
	return len(a)
}
