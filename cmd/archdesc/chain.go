// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newChainCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "chain NAME",
		Short:                 "print the definitions a descriptor is built from, root first",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runChain(cmd.Context(), g, os.Stdout, args[0])
	}
	return c
}

func runChain(ctx context.Context, g *globalConfig, w io.Writer, name string) error {
	chain, err := g.registry.Chain(name)
	if err != nil {
		return err
	}
	for _, link := range chain {
		if _, err := fmt.Fprintln(w, link); err != nil {
			return err
		}
	}
	return nil
}
