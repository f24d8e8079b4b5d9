// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"zb.256lights.llc/archdesc"
	"zb.256lights.llc/archdesc/internal/installconfig"
	"zb.256lights.llc/archdesc/internal/xiter"
	"zombiezen.com/go/log"
)

// load reads the installation configuration
// and builds the registry of built-in and configured descriptors.
func (g *globalConfig) load(ctx context.Context) error {
	cfg, err := loadInstallConfig(xiter.Chain(installconfig.DefaultFiles(), slices.Values(g.configFiles)))
	if err != nil {
		return err
	}
	r, err := archdesc.Default()
	if err != nil {
		return fmt.Errorf("internal error: %v", err)
	}
	if defs := cfg.Definitions(); len(defs) > 0 {
		log.Debugf(ctx, "Adding %d configured variant(s)", len(defs))
		r, err = r.Extend(defs...)
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}
	}
	g.install = cfg
	g.registry = r
	return nil
}

func loadInstallConfig(files iter.Seq[string]) (*installconfig.Config, error) {
	cfg := installconfig.Default()
	if err := cfg.MergeEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.MergeFiles(files); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}
