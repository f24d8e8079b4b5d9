// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"zb.256lights.llc/archdesc/internal/system"
	"zombiezen.com/go/log"
)

// archdescVersion is the version string filled in by the linker (e.g. "1.2.3").
var archdescVersion string

func newVersionCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "version",
		Short:                 "show version information",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.Context(), g, os.Stdout)
	}
	return c
}

func runVersion(ctx context.Context, g *globalConfig, w io.Writer) error {
	firstLine := "archdesc"
	if archdescVersion == "" {
		firstLine += " (version unknown)"
	} else {
		firstLine += " version " + archdescVersion
	}
	fmt.Fprintf(w, "%s\nArchitecture: %v\n", firstLine, system.Current())
	if d, err := g.registry.ForHost(); err != nil {
		log.Debugf(ctx, "%v", err)
		fmt.Fprintf(w, "Descriptor:   (none)\n")
	} else {
		fmt.Fprintf(w, "Descriptor:   %s\n", descriptorSummary(d))
	}
	fmt.Fprintf(w, "Descriptors:  %d\n", len(g.registry.Names()))

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" || runtime.GOOS == "freebsd" {
		output, err := exec.CommandContext(ctx, "uname", "-srv").Output()
		if errors.Is(err, exec.ErrNotFound) {
			log.Debugf(ctx, "uname: %v", err)
		} else if err != nil {
			log.Errorf(ctx, "uname: %v", err)
		} else {
			output = bytes.TrimSuffix(output, []byte("\n"))
			fmt.Fprintf(w, "OS:           %s\n", output)
		}
	}
	return nil
}
