package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/brightforge/qoipix"
)

func newEncodeCmd() *cobra.Command {
	var (
		output    string
		linear    bool
		noEntropy bool
	)

	cmd := &cobra.Command{
		Use:   "encode [options] <input>",
		Short: "Encode a PNG/JPEG/BMP image to qoipix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args[0], output, linear, noEntropy)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output path (default: <input>.qoi, "-" for stdout)`)
	cmd.Flags().BoolVar(&linear, "linear", false, "mark the colorspace as linear light instead of sRGB")
	cmd.Flags().BoolVar(&noEntropy, "no-entropy", false, "skip the entropy-coding layer")

	return cmd
}

func decodeSourceImage(path string) (image.Image, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer closeIfNotStd(in)

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return bmp.Decode(in)
	}
	img, _, err := image.Decode(in)
	return img, err
}

func runEncode(inputPath, outputPath string, linear, noEntropy bool) error {
	start := time.Now()

	img, err := decodeSourceImage(inputPath)
	if err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outputPath = base + ".qoi"
	}

	opts := &qoipix.EncoderOptions{Linear: linear, DisableEntropy: noEntropy}

	var out *os.File
	if outputPath == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputPath)
		if err != nil {
			return err
		}
	}

	if err := qoipix.Encode(out, img, opts); err != nil {
		closeIfNotStd(out)
		if outputPath != "-" {
			os.Remove(outputPath)
		}
		return fmt.Errorf("encoding: %w", err)
	}
	if err := out.Close(); err != nil && out != os.Stdout {
		os.Remove(outputPath)
		return err
	}

	if outputPath != "-" {
		fi, _ := os.Stat(outputPath)
		log.Info().
			Str("input", inputPath).
			Str("output", outputPath).
			Int64("bytes", fi.Size()).
			Dur("elapsed", time.Since(start)).
			Msg("encoded")
	}
	return nil
}
