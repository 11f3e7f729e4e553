package entropy

import (
	"errors"

	"github.com/brightforge/qoipix/internal/bitio"
)

// ErrDictionaryTruncated is returned when the 256-entry dictionary can't be
// fully read from the payload (spec §4.5: "dictionary truncated → invalid
// header").
var ErrDictionaryTruncated = errors.New("entropy: dictionary truncated")

// treeTag marks a flatTable entry as a tree reference rather than a short
// code leaf (spec §4.5: "store (1<<15) | root_index").
const treeTag = 1 << 15

// treeNode is one slot in the overflow tree arena used for codes longer
// than flatTableBits. newTreeNode returns an unpopulated internal node
// (both children -1); the zero value, whose children are 0, is not one.
type treeNode struct {
	isLeaf    bool
	length    uint8
	byteValue byte
	children  [2]int32
}

// decoder holds the two-tier decode structure built from a Dictionary.
type decoder struct {
	flat  [flatTableSize]uint32
	arena []treeNode
}

func newTreeNode() treeNode {
	return treeNode{children: [2]int32{-1, -1}}
}

// buildDecoder constructs the flat-table-plus-tree decode structure from
// dict, per spec §4.5.
func buildDecoder(dict Dictionary) *decoder {
	d := &decoder{}
	for v := 0; v < 256; v++ {
		e := dict[v]
		if e.Length == 0 {
			continue
		}
		length := int(e.Length)
		bits := e.Bits

		if length <= flatTableBits {
			step := 1 << uint(length)
			entry := uint32(length)<<8 | uint32(v)
			for idx := int(bits); idx < flatTableSize; idx += step {
				d.flat[idx] = entry
			}
			continue
		}

		truncated := bits & (flatTableSize - 1)
		leading := bits >> flatTableBits
		leadingLen := length - flatTableBits

		var rootIdx int32
		if d.flat[truncated] == 0 {
			rootIdx = int32(len(d.arena))
			d.arena = append(d.arena, newTreeNode())
			d.flat[truncated] = treeTag | uint32(rootIdx)
		} else {
			rootIdx = int32(d.flat[truncated] &^ treeTag)
		}

		cur := rootIdx
		for i := 0; i < leadingLen; i++ {
			bit := (leading >> uint(i)) & 1
			if i == leadingLen-1 {
				leafIdx := int32(len(d.arena))
				d.arena = append(d.arena, treeNode{isLeaf: true, length: e.Length, byteValue: byte(v)})
				d.arena[cur].children[bit] = leafIdx
				break
			}
			next := d.arena[cur].children[bit]
			if next == -1 {
				next = int32(len(d.arena))
				d.arena = append(d.arena, newTreeNode())
				d.arena[cur].children[bit] = next
			}
			cur = next
		}
	}
	return d
}

// decodeByte reads one symbol starting at the current bit cursor of r,
// returning the byte value and advancing r by the code's length. ok is
// false if the window's low bits don't correspond to any known code
// (corrupt or truncated stream).
func (d *decoder) decodeByte(r *bitio.WordReader) (byte, bool) {
	window := r.Window()
	idx := window & (flatTableSize - 1)
	entry := d.flat[idx]
	if entry == 0 {
		return 0, false
	}

	if entry&treeTag == 0 {
		length := int(entry >> 8)
		value := byte(entry & 0xFF)
		r.Advance(length)
		return value, true
	}

	cur := int32(entry &^ treeTag)
	pos := flatTableBits
	for {
		bit := (window >> uint(pos)) & 1
		next := d.arena[cur].children[bit]
		if next == -1 {
			return 0, false
		}
		n := d.arena[next]
		if n.isLeaf {
			r.Advance(int(n.length))
			return n.byteValue, true
		}
		cur = next
		pos++
	}
}

// readDictionary parses 256 (length, bits) pairs using the 16/24/32-bit
// rule from §4.4, returning the number of bytes consumed.
func readDictionary(payload []byte) (Dictionary, int, error) {
	var dict Dictionary
	pos := 0
	for v := 0; v < 256; v++ {
		if pos >= len(payload) {
			return Dictionary{}, 0, ErrDictionaryTruncated
		}
		length := payload[pos]
		pos++
		need := codeFieldBytes(length)
		if pos+need > len(payload) {
			return Dictionary{}, 0, ErrDictionaryTruncated
		}
		cur := bitio.NewCursor(payload[pos:])
		var bits uint32
		switch {
		case length <= 16:
			bits = uint32(cur.ReadU16())
		case length <= 24:
			bits = cur.ReadU24()
		default:
			bits = cur.ReadU32()
		}
		pos += need
		dict[v] = Entry{Bits: bits, Length: length}
	}
	return dict, pos, nil
}

// Decode parses an entropy-coded payload (everything in the frame after
// the 14-byte header) and recovers the chunk stream it was packed from.
// Decoding stops, without error, either when the recovered bytes end with
// EndMarker or when the bit-word reader runs out of words — the latter
// mirrors the truncated-body tolerance of §4.2/§4.5 and leaves any
// consequent pixel-filling to the chunk decoder. maxBytes bounds the
// recovered stream defensively against a corrupt payload that never
// produces the end marker.
func Decode(payload []byte, endMarker []byte, maxBytes int) ([]byte, error) {
	dict, consumed, err := readDictionary(payload)
	if err != nil {
		return nil, err
	}

	pos := consumed
	if pad := pos % 4; pad != 0 {
		pos += 4 - pad
	}
	if pos > len(payload) {
		pos = len(payload)
	}

	dec := buildDecoder(dict)
	r := bitio.NewWordReader(payload[pos:])

	out := make([]byte, 0, maxBytes)
	for len(out) < maxBytes && !r.Exhausted() {
		b, ok := dec.decodeByte(r)
		if !ok {
			break
		}
		out = append(out, b)
		if hasSuffix(out, endMarker) {
			break
		}
	}
	return out, nil
}

func hasSuffix(out, marker []byte) bool {
	if len(out) < len(marker) {
		return false
	}
	tail := out[len(out)-len(marker):]
	for i := range marker {
		if tail[i] != marker[i] {
			return false
		}
	}
	return true
}
