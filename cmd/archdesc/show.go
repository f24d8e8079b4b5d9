// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"io"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"zb.256lights.llc/archdesc"
	"zombiezen.com/go/log"
)

type showOptions struct {
	name      string
	triple    string
	host      bool
	multiline bool
}

func newShowCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "show [options] [NAME]",
		Short:                 "print a descriptor as JSON",
		DisableFlagsInUseLine: true,
		Args:                  cobra.MaximumNArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(showOptions)
	c.Flags().StringVar(&opts.triple, "triple", "", "show the descriptor for the target `triple`")
	c.Flags().BoolVar(&opts.host, "host", false, "show the descriptor for the running machine")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			opts.name = args[0]
		}
		opts.multiline = term.IsTerminal(int(os.Stdout.Fd()))
		return runShow(cmd.Context(), g, os.Stdout, opts)
	}
	return c
}

// showResult is the JSON output of the show command.
type showResult struct {
	*archdesc.Info `json:",inline"`
	Chain          []string `json:"chain"`
}

func runShow(ctx context.Context, g *globalConfig, w io.Writer, opts *showOptions) error {
	d, err := selectDescriptor(g.registry, opts)
	if err != nil {
		return err
	}
	log.Debugf(ctx, "Selected %s", descriptorSummary(d))
	chain, err := g.registry.Chain(d.Name())
	if err != nil {
		return err
	}
	data, err := jsonv2.Marshal(showResult{Info: d.Info(), Chain: chain},
		jsonv2.Deterministic(true),
		jsontext.Multiline(opts.multiline))
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func selectDescriptor(r *archdesc.Registry, opts *showOptions) (*archdesc.Descriptor, error) {
	n := 0
	for _, set := range []bool{opts.name != "", opts.triple != "", opts.host} {
		if set {
			n++
		}
	}
	switch {
	case n > 1:
		return nil, errors.New("can specify at most one of NAME, --triple, or --host")
	case opts.name != "":
		return r.Lookup(opts.name)
	case opts.triple != "":
		return r.ForTriple(opts.triple)
	case opts.host:
		return r.ForHost()
	default:
		return nil, errors.New("must specify one of NAME, --triple, or --host")
	}
}
