// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"zb.256lights.llc/archdesc"
	"zombiezen.com/go/log"
)

type whichOptions struct {
	name  string
	tools toolListFlag
	all   bool
}

func newWhichCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "which [options] NAME",
		Short:                 "print the path of a descriptor's tool executables",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(whichOptions)
	c.Flags().VarP(&opts.tools, "tool", "t", "resolve `tool` (can be passed multiple times; defaults to qemu)")
	c.Flags().BoolVarP(&opts.all, "all", "a", false, "resolve every tool, skipping tools that are not installed")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.name = args[0]
		return runWhich(cmd.Context(), g, os.Stdout, opts)
	}
	return c
}

func runWhich(ctx context.Context, g *globalConfig, w io.Writer, opts *whichOptions) error {
	d, err := g.registry.Lookup(opts.name)
	if err != nil {
		return err
	}
	tools := []archdesc.Tool(opts.tools)
	switch {
	case opts.all && len(tools) > 0:
		return errors.New("can specify at most one of --tool or --all")
	case opts.all:
		tools = d.Tools()
	case len(tools) == 0:
		tools = []archdesc.Tool{archdesc.ToolQEMU}
	}

	paths := make([]string, len(tools))
	errs := make([]error, len(tools))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(len(tools))
	for i, tool := range tools {
		grp.Go(func() error {
			paths[i], errs[i] = d.Executable(grpCtx, tool, g.install)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	var failed []error
	for i, tool := range tools {
		err := errs[i]
		switch {
		case err == nil:
			if _, err := fmt.Fprintf(w, "%v\t%s\n", tool, paths[i]); err != nil {
				return err
			}
		case opts.all && (errors.Is(err, archdesc.ErrNotInstalled) || errors.Is(err, archdesc.ErrUnsupportedTool)):
			log.Infof(ctx, "%v", err)
		default:
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}
