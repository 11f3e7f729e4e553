package entropy

import "testing"

func TestBuildDictionarySingleNonZeroSymbolGetsOneBitCode(t *testing.T) {
	// spec §8 scenario 6: a histogram with exactly one nonzero entry must
	// assign that symbol a 1-bit code.
	var hist Histogram
	hist[42] = 1000

	dict, ok := BuildDictionary(hist)
	if !ok {
		t.Fatal("BuildDictionary failed unexpectedly")
	}
	if dict[42].Length != 1 {
		t.Errorf("symbol 42 code length = %d, want 1", dict[42].Length)
	}
	for v := 0; v < 256; v++ {
		if v == 42 {
			continue
		}
		if dict[v].Length != 0 {
			t.Errorf("zero-count symbol %d has nonzero code length %d", v, dict[v].Length)
		}
	}
}

func TestBuildDictionaryPrefixFree(t *testing.T) {
	var hist Histogram
	freqs := []uint32{50, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	for i, f := range freqs {
		hist[i] = f
	}
	dict, ok := BuildDictionary(hist)
	if !ok {
		t.Fatal("BuildDictionary failed unexpectedly")
	}

	type code struct {
		bits   uint32
		length uint8
	}
	var codes []code
	for v := 0; v < 256; v++ {
		if dict[v].Length > 0 {
			codes = append(codes, code{dict[v].Bits, dict[v].Length})
		}
	}
	for i := range codes {
		for j := range codes {
			if i == j {
				continue
			}
			a, b := codes[i], codes[j]
			if a.length > b.length {
				continue
			}
			maskA := uint32(1)<<uint(a.length) - 1
			maskB := uint32(1)<<uint(a.length) - 1
			if a.bits&maskA == b.bits&maskB && a.length <= b.length {
				t.Errorf("code %d (len %d) is a prefix of code %d (len %d)", a.bits, a.length, b.bits, b.length)
			}
		}
	}
}

func TestBuildDictionaryFibonacciWeightsExceedMaxLength(t *testing.T) {
	// A Fibonacci-weighted histogram is the classic Huffman worst case: n
	// leaves with weights following the Fibonacci recurrence force a tree
	// of depth n-1. 40 such leaves force codes well past MaxCodeLength(32),
	// so BuildDictionary must report ok=false.
	var hist Histogram
	a, b := uint32(1), uint32(1)
	for v := 0; v < 40; v++ {
		hist[v] = a
		a, b = b, a+b
	}
	if _, ok := BuildDictionary(hist); ok {
		t.Error("BuildDictionary should report ok=false for a Fibonacci-weighted histogram forcing codes past MaxCodeLength")
	}
}

func TestBuildDictionaryUniformHistogramStaysWithinMaxLength(t *testing.T) {
	var hist Histogram
	for v := 0; v < 256; v++ {
		hist[v] = 1
	}
	dict, ok := BuildDictionary(hist)
	if !ok {
		t.Fatal("BuildDictionary failed unexpectedly on a uniform histogram")
	}
	for v := 0; v < 256; v++ {
		if dict[v].Length == 0 || dict[v].Length > MaxCodeLength {
			t.Errorf("symbol %d has invalid code length %d", v, dict[v].Length)
		}
	}
}
