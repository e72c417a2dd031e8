// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package vtf

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flag is the VTF texture flag bitmask.
type Flag uint32

// Flag bits. Positions are fixed by the VTF format.
const (
	FlagPointSample       Flag = 0x00000001
	FlagTrilinear         Flag = 0x00000002
	FlagClampS            Flag = 0x00000004
	FlagClampT            Flag = 0x00000008
	FlagAnisotropic       Flag = 0x00000010
	FlagHintDXT5          Flag = 0x00000020
	FlagPWLCorrected      Flag = 0x00000040
	FlagNormal            Flag = 0x00000080
	FlagNoMip             Flag = 0x00000100
	FlagNoLOD             Flag = 0x00000200
	FlagAllMips           Flag = 0x00000400
	FlagProcedural        Flag = 0x00000800
	FlagOneBitAlpha       Flag = 0x00001000
	FlagEightBitAlpha     Flag = 0x00002000
	FlagEnvMap            Flag = 0x00004000
	FlagRenderTarget      Flag = 0x00008000
	FlagDepthRenderTarget Flag = 0x00010000
	FlagNoDebugOverride   Flag = 0x00020000
	FlagSingleCopy        Flag = 0x00040000
	FlagPreSRGB           Flag = 0x00080000
	FlagNoDepthBuffer     Flag = 0x00800000
	FlagClampU            Flag = 0x02000000
	FlagVertexTexture     Flag = 0x04000000
	FlagSSBump            Flag = 0x08000000
	FlagBorder            Flag = 0x20000000
)

var flagNames = map[Flag]string{
	FlagPointSample:       "POINTSAMPLE",
	FlagTrilinear:         "TRILINEAR",
	FlagClampS:            "CLAMPS",
	FlagClampT:            "CLAMPT",
	FlagAnisotropic:       "ANISOTROPIC",
	FlagHintDXT5:          "HINT_DXT5",
	FlagPWLCorrected:      "PWL_CORRECTED",
	FlagNormal:            "NORMAL",
	FlagNoMip:             "NOMIP",
	FlagNoLOD:             "NOLOD",
	FlagAllMips:           "ALL_MIPS",
	FlagProcedural:        "PROCEDURAL",
	FlagOneBitAlpha:       "ONEBITALPHA",
	FlagEightBitAlpha:     "EIGHTBITALPHA",
	FlagEnvMap:            "ENVMAP",
	FlagRenderTarget:      "RENDERTARGET",
	FlagDepthRenderTarget: "DEPTHRENDERTARGET",
	FlagNoDebugOverride:   "NODEBUGOVERRIDE",
	FlagSingleCopy:        "SINGLECOPY",
	FlagPreSRGB:           "PRE_SRGB",
	FlagNoDepthBuffer:     "NODEPTHBUFFER",
	FlagClampU:            "CLAMPU",
	FlagVertexTexture:     "VERTEXTEXTURE",
	FlagSSBump:            "SSBUMP",
	FlagBorder:            "BORDER",
}

// String lists the set bits lowest first, joined by "|".
// Bits without a name are printed in hex.
func (f Flag) String() string {
	if f == 0 {
		return "0"
	}

	var parts []string
	for v := uint32(f); v != 0; v &= v - 1 {
		bit := Flag(1) << bits.TrailingZeros32(v)
		if name, ok := flagNames[bit]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%08x", uint32(bit)))
		}
	}

	return strings.Join(parts, "|")
}

// ParseFlags combines flag names, case-insensitive, into a bitmask.
func ParseFlags(names ...string) (Flag, error) {
	var out Flag
next:
	for _, name := range names {
		for bit, n := range flagNames {
			if strings.EqualFold(name, n) {
				out |= bit
				continue next
			}
		}

		return 0, fmt.Errorf("%w: %q", ErrInvalidFlag, name)
	}

	return out, nil
}
