package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/brightforge/qoipix"
)

func newDecodeCmd() *cobra.Command {
	var (
		output string
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "decode [options] <input.qoi>",
		Short: "Decode a qoipix image to PNG or BMP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args[0], output, format, strict)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output path (default: <input>.png, or <input>.bmp with --format bmp; "-" for stdout)`)
	cmd.Flags().StringVar(&format, "format", "png", "output format: png or bmp")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of padding a truncated body")

	return cmd
}

func runDecode(inputPath, outputPath, format string, strict bool) error {
	start := time.Now()

	in, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	data, err := io.ReadAll(in)
	closeIfNotStd(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	pixels, width, height, channels, _, err := qoipix.DecodePixels(data, &qoipix.DecodeOptions{Strict: strict})
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	img := pixelsToNRGBA(pixels, width, height, channels)

	if outputPath == "" {
		ext := ".png"
		if strings.EqualFold(format, "bmp") {
			ext = ".bmp"
		}
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outputPath = base + ext
	}

	var out *os.File
	if outputPath == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputPath)
		if err != nil {
			return err
		}
	}

	if err := writeImage(out, img, format); err != nil {
		closeIfNotStd(out)
		if outputPath != "-" {
			os.Remove(outputPath)
		}
		return fmt.Errorf("writing output: %w", err)
	}
	if err := out.Close(); err != nil && out != os.Stdout {
		os.Remove(outputPath)
		return err
	}

	if outputPath != "-" {
		log.Info().
			Str("input", inputPath).
			Str("output", outputPath).
			Dur("elapsed", time.Since(start)).
			Msg("decoded")
	}
	return nil
}

func pixelsToNRGBA(pixels []byte, width, height, channels int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		off := img.PixOffset(0, y)
		for x := 0; x < width; x++ {
			img.Pix[off] = pixels[i]
			img.Pix[off+1] = pixels[i+1]
			img.Pix[off+2] = pixels[i+2]
			if channels == 4 {
				img.Pix[off+3] = pixels[i+3]
			} else {
				img.Pix[off+3] = 255
			}
			i += channels
			off += 4
		}
	}
	return img
}

func writeImage(w io.Writer, img image.Image, format string) error {
	if strings.EqualFold(format, "bmp") {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}
