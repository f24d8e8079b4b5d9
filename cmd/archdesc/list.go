// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"zb.256lights.llc/archdesc"
)

func newListCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "list",
		Short:                 "list registered descriptors",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), g, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	}
	return c
}

func runList(ctx context.Context, g *globalConfig, w io.Writer, pretty bool) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Family", "Bits", "Endian", "Target", "GDB", "QEMU"})
	for d := range g.registry.All() {
		t.AppendRow(table.Row{
			d.Name(),
			d.Family(),
			strconv.Itoa(d.Bits()),
			d.Endianness().String(),
			d.TargetArch(),
			d.GDBName(),
			d.QEMUName(),
		})
	}
	var out string
	if pretty {
		t.SetStyle(table.StyleLight)
		out = t.Render()
	} else {
		out = t.RenderCSV()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// descriptorSummary is a one-line description of d.
func descriptorSummary(d *archdesc.Descriptor) string {
	return fmt.Sprintf("%s (%d-bit %v-endian %s)", d.Name(), d.Bits(), d.Endianness(), d.Family())
}
