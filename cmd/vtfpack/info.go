// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/vtf"
)

var cmdInfo = cobra.Command{
	Use:   "info <file.vtf>",
	Short: "Print the header of a VTF file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := vtf.ReadInfo(args[0])
		if err != nil {
			return &fileError{args[0], err}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version:      %s\n", info.Version)
		fmt.Fprintf(out, "header size:  %d\n", info.HeaderSize)
		fmt.Fprintf(out, "size:         %dx%d\n", info.Width, info.Height)
		fmt.Fprintf(out, "flags:        %s\n", info.Flags)
		fmt.Fprintf(out, "frames:       %d (first %d)\n", info.Frames, info.FirstFrame)
		fmt.Fprintf(out, "reflectivity: %g %g %g\n", info.Reflectivity.R, info.Reflectivity.G, info.Reflectivity.B)
		fmt.Fprintf(out, "bumpmap:      %g\n", info.BumpmapScale)
		fmt.Fprintf(out, "format:       %s, %d mipmaps\n", info.HighResFormat, info.MipmapCount)
		fmt.Fprintf(out, "low-res:      %s %dx%d\n", info.LowResFormat, info.LowResWidth, info.LowResHeight)
		if info.Version.Minor >= 2 {
			fmt.Fprintf(out, "depth:        %d\n", info.Depth)
		}
		for _, r := range info.Resources {
			fmt.Fprintf(out, "resource:     %-13s flags 0x%02x value 0x%08x\n", r.Tag, uint8(r.Flag), r.Value)
		}
		return nil
	},
}
