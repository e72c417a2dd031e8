// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/vtf

// Command vtfpack assembles single-level DDS payloads into a VTF file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type fileError struct {
	name string
	err  error
}

func (e *fileError) Error() string {
	return fmt.Sprintf("%q: %v", e.name, e.err)
}

func (e *fileError) Unwrap() error { return e.err }

var flagVerbose bool

var cmdRoot = cobra.Command{
	Use:           "vtfpack",
	Short:         "VTFpack builds Valve Texture Format files from DDS payloads.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	cmdRoot.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every input file")
	cmdRoot.AddCommand(&cmdPack, &cmdInfo, &cmdDDS)
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
