// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/woozymasta/vtf"
)

var packFlags struct {
	output       string
	version      string
	format       string
	flags        []string
	reflectivity string
	bumpScale    float32
	firstFrame   uint16
	thumbnail    string
	keyValues    string
	lod          string
	checksum     bool
	mipmaps      int
	frames       int
	faces        int
	slices       int
}

var cmdPack = cobra.Command{
	Use:   "pack -o <output.vtf> <input.dds>...",
	Short: "Pack DDS payloads into a VTF file.",
	Long: `Pack DDS payloads into a VTF file.

Inputs are listed largest mipmap first; within a mipmap by frame, then face,
then slice. Each input must hold exactly one mipmap level.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		f := &packFlags
		if ext := filepath.Ext(f.output); !strings.EqualFold(ext, ".vtf") {
			logrus.Warn("output file does not have .vtf extension")
		}

		grid, err := reshape(args, f.mipmaps, f.frames, f.faces, f.slices)
		if err != nil {
			return err
		}
		settings, err := packSettings(args[0])
		if err != nil {
			return err
		}

		for _, a := range args {
			logrus.Debugf("input %s", a)
		}
		if err := vtf.Assemble(f.output, grid, f.thumbnail, settings); err != nil {
			return &fileError{f.output, err}
		}

		logrus.Infof("wrote %s: version %s, %d mipmaps, %d frames, %d faces, %d slices",
			f.output, settings.Version, len(grid), len(grid[0]), len(grid[0][0]), len(grid[0][0][0]))
		return nil
	},
}

func init() {
	fl := cmdPack.Flags()
	fl.StringVarP(&packFlags.output, "output", "o", "", "write output to `file`")
	fl.StringVar(&packFlags.version, "version", "7.5", "VTF `version`, 7.0 to 7.5")
	fl.StringVar(&packFlags.format, "format", "auto", "high-res pixel `format`, or auto to use the first input's")
	fl.StringSliceVar(&packFlags.flags, "flag", nil, "texture flag `name`, repeatable (e.g. TRILINEAR)")
	fl.StringVar(&packFlags.reflectivity, "reflectivity", "0.5,0.5,0.5", "reflectivity as `r,g,b`")
	fl.Float32Var(&packFlags.bumpScale, "bumpscale", 1, "bumpmap `scale`")
	fl.Uint16Var(&packFlags.firstFrame, "first-frame", 0, "first animation `frame`; 65535 for 7-face cubemaps")
	fl.StringVar(&packFlags.thumbnail, "thumbnail", "", "low-res thumbnail DDS `file`")
	fl.StringVar(&packFlags.keyValues, "kvd", "", "key-values text `file` stored as a KVD resource (7.3+)")
	fl.StringVar(&packFlags.lod, "lod", "", "LOD clamp as `u,v`, stored as a LOD resource (7.3+)")
	fl.BoolVar(&packFlags.checksum, "checksum", false, "store a CRC resource of the high-res data (7.3+)")
	fl.IntVar(&packFlags.mipmaps, "mipmaps", 0, "mipmap `count`; 0 infers it from the input count")
	fl.IntVar(&packFlags.frames, "frames", 1, "frame `count`")
	fl.IntVar(&packFlags.faces, "faces", 1, "face `count`: 1, 6 or 7")
	fl.IntVar(&packFlags.slices, "slices", 1, "slice `count`")
	_ = cmdPack.MarkFlagRequired("output")
}

// reshape splits inputs into a mipmap x frame x face x slice grid.
func reshape(inputs []string, mipmaps, frames, faces, slices int) (vtf.Grid, error) {
	if frames < 1 || faces < 1 || slices < 1 {
		return nil, fmt.Errorf("frames, faces and slices must be at least 1")
	}
	perMip := frames * faces * slices
	if mipmaps == 0 {
		if len(inputs)%perMip != 0 {
			return nil, fmt.Errorf("got %d inputs, not a multiple of %d per mipmap", len(inputs), perMip)
		}
		mipmaps = len(inputs) / perMip
	}
	if mipmaps*perMip != len(inputs) {
		return nil, fmt.Errorf("got %d inputs, expected %d", len(inputs), mipmaps*perMip)
	}

	grid := make(vtf.Grid, mipmaps)
	i := 0
	for m := range grid {
		grid[m] = make([][][]string, frames)
		for f := range grid[m] {
			grid[m][f] = make([][]string, faces)
			for c := range grid[m][f] {
				grid[m][f][c] = inputs[i : i+slices : i+slices]
				i += slices
			}
		}
	}

	return grid, nil
}

func packSettings(first string) (*vtf.Settings, error) {
	f := &packFlags

	version, err := vtf.ParseVersion(f.version)
	if err != nil {
		return nil, err
	}
	flags, err := vtf.ParseFlags(f.flags...)
	if err != nil {
		return nil, err
	}
	refl, err := parseReflectivity(f.reflectivity)
	if err != nil {
		return nil, err
	}
	lod, err := parseLOD(f.lod)
	if err != nil {
		return nil, err
	}

	var format vtf.Format
	if strings.EqualFold(f.format, "auto") {
		p, err := vtf.ReadPayload(first)
		if err != nil {
			return nil, err
		}
		if format = p.Format; format == vtf.FormatNone {
			return nil, &fileError{first, fmt.Errorf("unknown DDS pixel format, pass --format")}
		}
		logrus.Debugf("format %s from %s", format, first)
	} else if format, err = vtf.ParseFormat(f.format); err != nil {
		return nil, err
	}

	s := &vtf.Settings{
		Version:      version,
		Flags:        flags,
		Format:       format,
		Reflectivity: refl,
		BumpmapScale: f.bumpScale,
		FirstFrame:   f.firstFrame,
		LOD:          lod,
		Checksum:     f.checksum,
	}
	if f.keyValues != "" {
		data, err := os.ReadFile(f.keyValues)
		if err != nil {
			return nil, err
		}
		s.KeyValues = string(data)
	}

	return s, nil
}

func parseReflectivity(s string) (vtf.Reflectivity, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vtf.Reflectivity{}, fmt.Errorf("reflectivity needs 3 values, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return vtf.Reflectivity{}, fmt.Errorf("invalid reflectivity %q: %w", p, err)
		}
		v[i] = float32(x)
	}

	return vtf.Reflectivity{R: v[0], G: v[1], B: v[2]}, nil
}

// parseLOD parses "u,v" clamp values; an empty string means no LOD resource.
func parseLOD(s string) (*vtf.LOD, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("lod needs 2 values, got %q", s)
	}
	var v [2]uint8
	for i, p := range parts {
		x, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid lod clamp %q: %w", p, err)
		}
		v[i] = uint8(x)
	}

	return &vtf.LOD{ClampU: v[0], ClampV: v[1]}, nil
}
