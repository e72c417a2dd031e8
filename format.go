// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"fmt"
	"strings"
)

// Format is a VTF pixel format code.
type Format uint32

// Pixel format codes, fixed by the VTF format.
const (
	FormatRGBA8888 Format = iota
	FormatABGR8888
	FormatRGB888
	FormatBGR888
	FormatRGB565
	FormatI8
	FormatIA88
	FormatP8
	FormatA8
	FormatRGB888Bluescreen
	FormatBGR888Bluescreen
	FormatARGB8888
	FormatBGRA8888
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatBGRX8888
	FormatBGR565
	FormatBGRX5551
	FormatBGRA4444
	FormatDXT1OneBitAlpha
	FormatBGRA5551
	FormatUV88
	FormatUVWQ8888
	FormatRGBA16161616F
	FormatRGBA16161616
	FormatUVLX8888

	// FormatNone marks an absent image, e.g. no low-res thumbnail.
	FormatNone Format = 0xFFFFFFFF
)

var formatNames = [...]string{
	FormatRGBA8888:         "RGBA8888",
	FormatABGR8888:         "ABGR8888",
	FormatRGB888:           "RGB888",
	FormatBGR888:           "BGR888",
	FormatRGB565:           "RGB565",
	FormatI8:               "I8",
	FormatIA88:             "IA88",
	FormatP8:               "P8",
	FormatA8:               "A8",
	FormatRGB888Bluescreen: "RGB888_BLUESCREEN",
	FormatBGR888Bluescreen: "BGR888_BLUESCREEN",
	FormatARGB8888:         "ARGB8888",
	FormatBGRA8888:         "BGRA8888",
	FormatDXT1:             "DXT1",
	FormatDXT3:             "DXT3",
	FormatDXT5:             "DXT5",
	FormatBGRX8888:         "BGRX8888",
	FormatBGR565:           "BGR565",
	FormatBGRX5551:         "BGRX5551",
	FormatBGRA4444:         "BGRA4444",
	FormatDXT1OneBitAlpha:  "DXT1_ONEBITALPHA",
	FormatBGRA5551:         "BGRA5551",
	FormatUV88:             "UV88",
	FormatUVWQ8888:         "UVWQ8888",
	FormatRGBA16161616F:    "RGBA16161616F",
	FormatRGBA16161616:     "RGBA16161616",
	FormatUVLX8888:         "UVLX8888",
}

// formatSizes holds bytes per pixel, or bytes per 4x4 block when block is set.
var formatSizes = [...]struct {
	bytes int
	block bool
}{
	FormatRGBA8888:         {bytes: 4},
	FormatABGR8888:         {bytes: 4},
	FormatRGB888:           {bytes: 3},
	FormatBGR888:           {bytes: 3},
	FormatRGB565:           {bytes: 2},
	FormatI8:               {bytes: 1},
	FormatIA88:             {bytes: 2},
	FormatP8:               {bytes: 1},
	FormatA8:               {bytes: 1},
	FormatRGB888Bluescreen: {bytes: 3},
	FormatBGR888Bluescreen: {bytes: 3},
	FormatARGB8888:         {bytes: 4},
	FormatBGRA8888:         {bytes: 4},
	FormatDXT1:             {bytes: 8, block: true},
	FormatDXT3:             {bytes: 16, block: true},
	FormatDXT5:             {bytes: 16, block: true},
	FormatBGRX8888:         {bytes: 4},
	FormatBGR565:           {bytes: 2},
	FormatBGRX5551:         {bytes: 2},
	FormatBGRA4444:         {bytes: 2},
	FormatDXT1OneBitAlpha:  {bytes: 8, block: true},
	FormatBGRA5551:         {bytes: 2},
	FormatUV88:             {bytes: 2},
	FormatUVWQ8888:         {bytes: 4},
	FormatRGBA16161616F:    {bytes: 8},
	FormatRGBA16161616:     {bytes: 8},
	FormatUVLX8888:         {bytes: 4},
}

// Valid reports whether f is a known format code or FormatNone.
func (f Format) Valid() bool {
	return f == FormatNone || int(f) < len(formatNames)
}

func (f Format) String() string {
	if f == FormatNone {
		return "NONE"
	}
	if int(f) < len(formatNames) {
		return formatNames[f]
	}

	return fmt.Sprintf("Format(%d)", uint32(f))
}

// ParseFormat returns the format with the given name, case-insensitive.
func ParseFormat(name string) (Format, error) {
	if strings.EqualFold(name, "NONE") {
		return FormatNone, nil
	}
	for i, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// DataLength returns the byte size of one width x height image in f, or -1
// for FormatNone, unknown codes and empty sizes. Block-compressed formats
// round each axis up to whole 4x4 blocks.
func (f Format) DataLength(width, height int) int {
	if f == FormatNone || int(f) >= len(formatSizes) || width < 1 || height < 1 {
		return -1
	}

	sz := formatSizes[f]
	if sz.block {
		return ((width + 3) / 4) * ((height + 3) / 4) * sz.bytes
	}

	return width * height * sz.bytes
}

// Compressed reports whether f stores 4x4 blocks.
func (f Format) Compressed() bool {
	return int(f) < len(formatSizes) && formatSizes[f].block
}
