package qoipix

// EncoderOptions carries the encode-time knobs, the same shape as the
// teacher's EncoderOptions in encode.go (there: Quality/Method/Preset; here:
// the handful of knobs spec.md actually defines).
type EncoderOptions struct {
	// Linear marks the colorspace bit as linear light instead of sRGB.
	// Purely descriptive metadata; it does not change how pixels are
	// encoded.
	Linear bool

	// DisableEntropy skips the optional entropy-coding layer even when it
	// would otherwise pass the §4.4 savings test. Useful for producing a
	// frame a minimal decoder (plain-stream only) can still read.
	DisableEntropy bool
}

// DefaultEncoderOptions returns the zero options: sRGB colorspace and the
// entropy layer attempted. The entropy layer's size floor and savings
// threshold are fixed constants in internal/entropy, not options.
func DefaultEncoderOptions() *EncoderOptions {
	return &EncoderOptions{}
}

// DecodeOptions carries decode-time knobs.
type DecodeOptions struct {
	// Channels requests a specific output channel count (3 or 4). Zero
	// means "use the channel count recorded in the header" (spec §6).
	Channels int

	// Strict turns the soft TruncatedBody condition (spec §7) into a
	// returned ErrTruncatedBody instead of silently filling the
	// remaining pixels with the last decoded one.
	Strict bool
}

// DefaultDecodeOptions requests the header's own channel count and the
// lenient (non-strict) truncation policy.
func DefaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{}
}
