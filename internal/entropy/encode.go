package entropy

import "github.com/brightforge/qoipix/internal/bitio"

// flatTableBits is W from spec §4.5: the flat decode table is indexed by
// the low 11 bits of the bit window.
const flatTableBits = 11
const flatTableSize = 1 << flatTableBits

// savingsFloorBytes is the ~10 KB chunk-stream-size floor below which
// entropy coding is never attempted (spec §4.4 policy).
const savingsFloorBytes = 10 * 1024

// minSavingsRatio is the 3% saving the entropy frame must beat.
const minSavingsRatio = 0.97

// dictionaryWireSize returns the number of bytes the serialized dictionary
// occupies: 256 entries, each a 1-byte length plus a 16/24/32-bit code
// depending on that length (spec §4.4).
func dictionaryWireSize(dict Dictionary) int {
	n := 0
	for v := 0; v < 256; v++ {
		n += 1 + codeFieldBytes(dict[v].Length)
	}
	return n
}

func codeFieldBytes(length uint8) int {
	switch {
	case length <= 16:
		return 2
	case length <= 24:
		return 3
	default:
		return 4
	}
}

func writeDictionary(cur *bitio.Cursor, dict Dictionary) {
	for v := 0; v < 256; v++ {
		e := dict[v]
		cur.WriteByte(e.Length)
		switch {
		case e.Length <= 16:
			cur.WriteU16(uint16(e.Bits))
		case e.Length <= 24:
			cur.WriteU24(e.Bits)
		default:
			cur.WriteU32(e.Bits)
		}
	}
}

// Encode builds a canonical Huffman dictionary over hist — the byte-
// frequency histogram chunk.Encode already collected while scanning
// chunkStream, so chunkStream itself is never re-scanned here — and, if the
// §4.4 savings policy is met, returns the entropy-coded payload (dictionary
// + padding + packed body + trailing zero word) that follows the 14-byte
// frame header. ok is false when entropy coding should be skipped in favor
// of the plain stream: the stream is under the size floor, the estimated
// savings fall short of 3%, or any code would exceed 32 bits.
func Encode(chunkStream []byte, hist Histogram) (payload []byte, ok bool) {
	if len(chunkStream) < savingsFloorBytes {
		return nil, false
	}

	dict, built := BuildDictionary(hist)
	if !built {
		return nil, false
	}

	dictBytes := dictionaryWireSize(dict)
	estBodyBytes := int((hist.EstimatedBits(dict) + 7) / 8)
	estTotal := dictBytes + padTo4(dictBytes) + estBodyBytes + 4
	if float64(estTotal) > float64(len(chunkStream))*minSavingsRatio {
		return nil, false
	}

	dictBuf := make([]byte, dictBytes)
	cur := bitio.NewCursor(dictBuf)
	writeDictionary(cur, dict)

	out := make([]byte, 0, estTotal+16)
	out = append(out, dictBuf...)
	for i := 0; i < padTo4(len(out)); i++ {
		out = append(out, 0)
	}

	w := bitio.NewWordWriter(estBodyBytes)
	for _, b := range chunkStream {
		e := dict[b]
		w.WriteBits(e.Bits, int(e.Length))
	}
	out = append(out, w.Finish()...)
	out = append(out, 0, 0, 0, 0) // trailer word

	if float64(len(out)) > float64(len(chunkStream))*minSavingsRatio {
		return nil, false
	}

	return out, true
}

func padTo4(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}
