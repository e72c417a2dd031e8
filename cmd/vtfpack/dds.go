// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/woozymasta/vtf"
)

var ddsFlags struct {
	output string
	format string
	edds   bool
}

var cmdDDS = cobra.Command{
	Use:   "dds -o <output.dds> <input.png>",
	Short: "Encode an image into a single-level DDS payload.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		input := args[0]
		format, err := vtf.ParseFormat(ddsFlags.format)
		if err != nil {
			return err
		}
		if ext := filepath.Ext(ddsFlags.output); !strings.EqualFold(ext, ".dds") && !strings.EqualFold(ext, ".edds") {
			logrus.Warn("output file does not have .dds extension")
		}

		img, err := readImage(input)
		if err != nil {
			return &fileError{input, err}
		}
		p, err := vtf.EncodePayload(img, format, nil)
		if err != nil {
			return &fileError{input, err}
		}
		if err := vtf.WritePayload(ddsFlags.output, p, ddsFlags.edds); err != nil {
			return &fileError{ddsFlags.output, err}
		}

		logrus.Infof("wrote %s: %dx%d %s", ddsFlags.output, p.Width, p.Height, p.Format)
		return nil
	},
}

func init() {
	fl := cmdDDS.Flags()
	fl.StringVarP(&ddsFlags.output, "output", "o", "", "write output to `file`")
	fl.StringVar(&ddsFlags.format, "format", "DXT1", "payload `format`: DXT1, DXT3, DXT5, RGBA8888 or BGRA8888")
	fl.BoolVar(&ddsFlags.edds, "edds", false, "store as an LZ4-compressed Enfusion EDDS block")
	_ = cmdDDS.MarkFlagRequired("output")
}

func readImage(name string) (image.Image, error) {
	fp, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	img, _, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("could not decode: %w", err)
	}
	return img, nil
}
