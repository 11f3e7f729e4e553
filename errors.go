package qoipix

import "errors"

// Sentinel errors returned by this package, grouped the way the teacher
// groups ErrUnsupported/ErrNoFrames in webp.go.
var (
	// ErrInvalidArgument covers zero dimensions, channels outside {3,4}, a
	// pixel buffer whose length is not width*height*channels, and a
	// requested decode channel count other than 0, 3 or 4.
	ErrInvalidArgument = errors.New("qoipix: invalid argument")

	// ErrTooLarge is returned when width*height meets or exceeds the
	// pixel budget.
	ErrTooLarge = errors.New("qoipix: image exceeds the pixel budget")

	// ErrInvalidHeader covers a magic mismatch, a header too short to
	// read, a channel count outside {3,4}, a colorspace byte with reserved
	// bits set, and a zero width or height.
	ErrInvalidHeader = errors.New("qoipix: invalid header")

	// ErrTruncatedBody is the soft failure from spec §7: the decoder ran
	// out of input before producing every pixel. The default decode
	// policy swallows this and returns a partially-correct image;
	// DecodeOptions.Strict turns it into a returned error.
	ErrTruncatedBody = errors.New("qoipix: truncated body")
)
