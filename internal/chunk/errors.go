package chunk

import "errors"

// Sentinel errors for the chunk codec, mirroring the teacher's per-package
// sentinel var blocks (internal/lossless/decode.go's ErrBadSignature et al.).
var (
	ErrInvalidDimensions = errors.New("chunk: width and height must be positive")
	ErrInvalidChannels   = errors.New("chunk: channels must be 3 or 4")
	ErrBufferSize        = errors.New("chunk: pixel buffer size does not match width*height*channels")
	ErrTooManyPixels     = errors.New("chunk: width*height exceeds the pixel budget")
)

// MaxPixels is the pixel-count budget from spec §1/§3: width*height must
// stay strictly under this value.
const MaxPixels = 400_000_000
