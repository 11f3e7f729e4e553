// Package qoipix implements a lossless codec for raw 3- or 4-channel 8-bit
// pixel data, with an optional canonical-Huffman entropy-coding layer. It
// registers itself with the standard library's image package so that
// image.Decode can transparently read qoipix files, the way the teacher's
// webp.go registers WebP.
package qoipix

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/brightforge/qoipix/internal/chunk"
	"github.com/brightforge/qoipix/internal/entropy"
)

func init() {
	image.RegisterFormat("qoipix", string(magic[:]), Decode, DecodeConfig)
}

// Features describes a frame's header fields, as returned by [Probe].
type Features struct {
	Width, Height int
	Channels      int
	Linear        bool
	EntropyCoded  bool
}

// readAll reads all of r. If r implements Len() int (e.g. *bytes.Reader), a
// single exact-sized allocation is used instead of the repeated doublings
// io.ReadAll performs.
func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		if n := lr.Len(); n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// EncodePixels is the core encode operation: a linear pixel buffer of
// width*height*channels bytes (channels 3 or 4) in, a complete frame
// (header + body) out, per spec §6's `encode(pixels, W, H, C, colorspace)`.
func EncodePixels(pixels []byte, width, height, channels int, opts *EncoderOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultEncoderOptions()
	}
	if width <= 0 || height <= 0 || (channels != 3 && channels != 4) {
		return nil, ErrInvalidArgument
	}
	if width*height >= chunk.MaxPixels {
		return nil, ErrTooLarge
	}
	if len(pixels) != width*height*channels {
		return nil, ErrInvalidArgument
	}

	result, err := chunk.Encode(pixels, width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("qoipix: encoding chunk stream: %w", err)
	}

	body := result.Bytes
	entropyCoded := false
	if !opts.DisableEntropy {
		if payload, ok := entropy.Encode(body, result.Histogram); ok {
			body = payload
			entropyCoded = true
		}
	}

	h := frameHeader{
		Width:    width,
		Height:   height,
		Channels: channels,
		Entropy:  entropyCoded,
		Linear:   opts.Linear,
	}

	out := make([]byte, headerSize+len(body))
	writeHeader(out, h)
	copy(out[headerSize:], body)
	return out, nil
}

// DecodePixels is the core decode operation, per spec §6's
// `decode(bytes, length, requested_channels)`. opts.Channels == 0 means
// "use the header's own channel count".
func DecodePixels(data []byte, opts *DecodeOptions) (pixels []byte, width, height, channels int, linear bool, err error) {
	if opts == nil {
		opts = DefaultDecodeOptions()
	}

	h, err := parseHeader(data)
	if err != nil {
		return nil, 0, 0, 0, false, err
	}

	outChannels := h.Channels
	if opts.Channels != 0 {
		if opts.Channels != 3 && opts.Channels != 4 {
			return nil, 0, 0, 0, false, ErrInvalidArgument
		}
		outChannels = opts.Channels
	}

	body := data[headerSize:]
	var chunkStream []byte

	if h.Entropy {
		maxBytes := h.Width*h.Height*(h.Channels+1) + len(chunk.EndMarker)
		chunkStream, err = entropy.Decode(body, chunk.EndMarker[:], maxBytes)
		if err != nil {
			return nil, 0, 0, 0, false, fmt.Errorf("qoipix: decoding entropy layer: %w", err)
		}
	} else {
		chunkStream = body
	}

	pixelBuf, truncated, err := chunk.Decode(chunkStream, h.Width, h.Height, outChannels)
	if err != nil {
		return nil, 0, 0, 0, false, fmt.Errorf("qoipix: decoding chunk stream: %w", err)
	}
	if truncated && opts.Strict {
		return nil, 0, 0, 0, false, ErrTruncatedBody
	}

	return pixelBuf, h.Width, h.Height, outChannels, h.Linear, nil
}

// flatten converts an arbitrary image.Image into a tightly packed straight-
// alpha RGB or RGBA buffer, the way the teacher's encoder flattens an
// image.Image to planar buffers before VP8/VP8L encoding. The channel
// count is 3 when the image reports itself fully opaque, 4 otherwise.
func flatten(img image.Image) (pixels []byte, width, height, channels int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	channels = 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	pixels = make([]byte, width*height*channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[i] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			if channels == 4 {
				pixels[i+3] = c.A
			}
			i += channels
		}
	}
	return pixels, width, height, channels
}

// Encode writes img to w in qoipix format. opts may be nil for defaults.
func Encode(w io.Writer, img image.Image, opts *EncoderOptions) error {
	pixels, width, height, channels := flatten(img)
	out, err := EncodePixels(pixels, width, height, channels, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Decode reads a qoipix image from r and returns it as *image.NRGBA,
// mirroring webp.go's lossless Decode path.
func Decode(r io.Reader) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("qoipix: reading data: %w", err)
	}

	pixels, width, height, channels, _, err := DecodePixels(data, DefaultDecodeOptions())
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := byte(255)
			if channels == 4 {
				a = pixels[i+3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: a})
			i += channels
		}
	}
	return img, nil
}

// DecodeConfig returns the color model and dimensions of a qoipix image
// without decoding any pixels, mirroring webp.go's DecodeConfig.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := readAll(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("qoipix: reading data: %w", err)
	}
	h, err := parseHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Probe reads a frame's header fields (dimensions, channels, colorspace,
// entropy-coded flag) without decoding any pixels, mirroring webp.go's
// GetFeatures.
func Probe(r io.Reader) (*Features, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("qoipix: reading data: %w", err)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	return &Features{
		Width:        h.Width,
		Height:       h.Height,
		Channels:     h.Channels,
		Linear:       h.Linear,
		EntropyCoded: h.Entropy,
	}, nil
}
