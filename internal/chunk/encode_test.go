package chunk

import (
	"bytes"
	"testing"
)

func pixels4(samples ...byte) []byte { return samples }

func TestEncodeScenario1_SinglePixelRun(t *testing.T) {
	// spec §8 scenario 1: 1x1 opaque black -> RUN(0xC0) + EndMarker.
	res, err := Encode([]byte{0, 0, 0, 255}, 1, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xC0}, EndMarker[:]...)
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("got % X, want % X", res.Bytes, want)
	}
}

func TestEncodeScenario2_TwoPixelRun(t *testing.T) {
	// spec §8 scenario 2: two identical opaque-black pixels -> RUN(length=2).
	px := pixels4(0, 0, 0, 255, 0, 0, 0, 255)
	res, err := Encode(px, 2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xC1}, EndMarker[:]...)
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("got % X, want % X", res.Bytes, want)
	}
}

func TestEncodeScenario3_Luma(t *testing.T) {
	// spec §8 scenario 3: {1,2,3,255} from prev {0,0,0,255} -> LUMA A2 79.
	res, err := Encode([]byte{1, 2, 3, 255}, 1, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xA2, 0x79}, EndMarker[:]...)
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("got % X, want % X", res.Bytes, want)
	}
}

func TestEncodeScenario4_RGBThenRun(t *testing.T) {
	// spec §8 scenario 4: two identical {10,10,10,255} pixels -> RGB then RUN.
	px := pixels4(10, 10, 10, 255, 10, 10, 10, 255)
	res, err := Encode(px, 2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xFE, 0x0A, 0x0A, 0x0A, 0xC0}, EndMarker[:]...)
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("got % X, want % X", res.Bytes, want)
	}
}

func TestEncodeScenario5_LumaThenLumaCacheMiss(t *testing.T) {
	// {5,5,5,255} then {0,0,0,255}: the first is +5 per channel -> LUMA A5 88;
	// the second misses the cache (slot 53 is still zero) and is -5 per
	// channel -> LUMA 9B 88.
	px := pixels4(5, 5, 5, 255, 0, 0, 0, 255)
	res, err := Encode(px, 2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0xA5, 0x88, 0x9B, 0x88}, EndMarker[:]...)
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("got % X, want % X", res.Bytes, want)
	}
}

func TestEncodeTagPrecedenceDiffOverLuma(t *testing.T) {
	// A delta that fits DIFF (-2..1 on each channel) must never be emitted
	// as LUMA or RGB, even though LUMA could also represent it.
	px := pixels4(0, 0, 0, 255, 1, 1, 1, 255)
	res, err := Encode(px, 2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bytes) < 2 {
		t.Fatalf("unexpectedly short stream: % X", res.Bytes)
	}
	if res.Bytes[1]&tagMask != tagDiff {
		t.Errorf("second pixel tag = %#x, want DIFF (mask %#x)", res.Bytes[1], tagDiff)
	}
}

func TestEncodeRunLimitNeverEmitsMaxBiasBytes(t *testing.T) {
	// spec §8: no RUN chunk carries length-bias byte 0x3E or 0x3F, i.e. runs
	// longer than maxRun are split into multiple RUN chunks.
	n := 200
	px := make([]byte, n*4)
	for i := 0; i < n; i++ {
		px[i*4+3] = 255
	}
	res, err := Encode(px, n, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range res.Bytes {
		if b&tagMask == tagRun {
			bias := b &^ tagMask
			if bias == 0x3E || bias == 0x3F {
				t.Errorf("RUN chunk carries forbidden bias byte %#x", bias)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	px := pixels4(1, 2, 3, 255, 4, 5, 6, 255, 4, 5, 6, 255, 0, 0, 0, 0)
	a, err := Encode(px, 2, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(px, 2, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes, b.Bytes) {
		t.Errorf("Encode is not deterministic: % X vs % X", a.Bytes, b.Bytes)
	}
}

func TestEncodeRejectsBadArgs(t *testing.T) {
	if _, err := Encode(nil, 0, 1, 4); err != ErrInvalidDimensions {
		t.Errorf("zero width: got %v, want ErrInvalidDimensions", err)
	}
	if _, err := Encode(nil, 1, 1, 5); err != ErrInvalidChannels {
		t.Errorf("bad channels: got %v, want ErrInvalidChannels", err)
	}
	if _, err := Encode([]byte{1, 2, 3}, 1, 1, 4); err != ErrBufferSize {
		t.Errorf("short buffer: got %v, want ErrBufferSize", err)
	}
}
