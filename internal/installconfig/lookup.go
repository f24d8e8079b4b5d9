// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package installconfig

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"zb.256lights.llc/archdesc"
	"zombiezen.com/go/log"
)

var _ archdesc.InstallConfig = (*Config)(nil)

// ToolPath returns the path of the executable for the given binary of a tool.
// An explicit entry in the tool's Binaries takes precedence,
// then the tool's Dir is searched,
// then PATH if c.SearchPath is true.
// If none of these yield an executable,
// ToolPath returns an error wrapping [archdesc.ErrNotInstalled].
func (c *Config) ToolPath(ctx context.Context, tool archdesc.Tool, binary string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if binary == "" || filepath.Base(binary) != binary {
		return "", fmt.Errorf("%v: invalid binary name %q: %w", tool, binary, archdesc.ErrNotInstalled)
	}
	if tc := c.Tools[tool]; tc != nil {
		if path, ok := tc.Binaries[binary]; ok {
			if err := checkExecutable(path); err != nil {
				return "", fmt.Errorf("%v: configured %s: %v: %w", tool, binary, err, archdesc.ErrNotInstalled)
			}
			log.Debugf(ctx, "Using configured %s at %s", binary, path)
			return path, nil
		}
		if tc.Dir != "" {
			path, err := findInDir(tc.Dir, binary)
			if err == nil {
				log.Debugf(ctx, "Found %s in %s", binary, tc.Dir)
				return path, nil
			}
			log.Debugf(ctx, "%s not usable in %s: %v", binary, tc.Dir, err)
		}
	}
	if c.SearchPath {
		path, err := exec.LookPath(binary)
		if err == nil {
			log.Debugf(ctx, "Found %s on PATH at %s", binary, path)
			return path, nil
		}
		log.Debugf(ctx, "%s not found on PATH: %v", binary, err)
	}
	return "", fmt.Errorf("%v: %s: %w", tool, binary, archdesc.ErrNotInstalled)
}
