// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// archdesc inspects the architecture descriptor registry
// and resolves the backend tools configured for each descriptor.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"zb.256lights.llc/archdesc"
	"zb.256lights.llc/archdesc/internal/installconfig"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"
)

type globalConfig struct {
	configFiles []string

	install  *installconfig.Config
	registry *archdesc.Registry
}

func main() {
	rootCommand := &cobra.Command{
		Use:           "archdesc",
		Short:         "architecture descriptor registry",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := new(globalConfig)
	rootCommand.PersistentFlags().StringArrayVar(&g.configFiles, "config", nil, "read additional configuration from `path` (can be passed multiple times)")
	showDebug := rootCommand.PersistentFlags().Bool("debug", false, "show debugging output")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(*showDebug)
		return g.load(cmd.Context())
	}

	rootCommand.AddCommand(
		newListCommand(g),
		newShowCommand(g),
		newWhichCommand(g),
		newChainCommand(g),
		newVersionCommand(g),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(*showDebug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "archdesc: ", log.StdFlags, nil),
		})
	})
}
