package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/brightforge/qoipix"
)

var batchSourceExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true,
}

func newBatchCmd() *cobra.Command {
	var (
		outDir    string
		linear    bool
		noEntropy bool
	)

	cmd := &cobra.Command{
		Use:   "batch [options] <dir>",
		Short: "Encode every PNG/JPEG/BMP image in a directory to qoipix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], outDir, linear, noEntropy)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "output directory (default: same as input)")
	cmd.Flags().BoolVar(&linear, "linear", false, "mark the colorspace as linear light instead of sRGB")
	cmd.Flags().BoolVar(&noEntropy, "no-entropy", false, "skip the entropy-coding layer")

	return cmd
}

func runBatch(dir, outDir string, linear, noEntropy bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var sources []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if batchSourceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			sources = append(sources, e.Name())
		}
	}
	if len(sources) == 0 {
		log.Warn().Str("dir", dir).Msg("no matching images found")
		return nil
	}

	bar := progressbar.NewOptions(len(sources),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	opts := &qoipix.EncoderOptions{Linear: linear, DisableEntropy: noEntropy}
	var failures int
	for _, name := range sources {
		src := filepath.Join(dir, name)
		dst := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".qoi")

		if err := convertOne(src, dst, opts); err != nil {
			failures++
			log.Error().Str("file", src).Err(err).Msg("conversion failed")
		}
		bar.Add(1)
	}

	log.Info().Int("total", len(sources)).Int("failed", failures).Msg("batch complete")
	return nil
}

func convertOne(src, dst string, opts *qoipix.EncoderOptions) error {
	img, err := decodeSourceImage(src)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := qoipix.Encode(out, img, opts); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("encoding: %w", err)
	}
	return out.Close()
}
