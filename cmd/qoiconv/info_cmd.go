package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brightforge/qoipix"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.qoi>",
		Short: "Display a qoipix frame header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(inputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer closeIfNotStd(in)

	feat, err := qoipix.Probe(in)
	if err != nil {
		return fmt.Errorf("probing header: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	colorspace := "sRGB"
	if feat.Linear {
		colorspace = "linear"
	}

	fmt.Printf("File:        %s\n", name)
	fmt.Printf("Dimensions:  %d x %d\n", feat.Width, feat.Height)
	fmt.Printf("Channels:    %d\n", feat.Channels)
	fmt.Printf("Colorspace:  %s\n", colorspace)
	fmt.Printf("Entropy:     %v\n", feat.EntropyCoded)

	if inputPath != "-" {
		if fi, err := os.Stat(inputPath); err == nil {
			fmt.Printf("File size:   %d bytes\n", fi.Size())
		}
	}
	return nil
}
