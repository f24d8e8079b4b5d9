// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package installconfig

import (
	"iter"
	"path/filepath"

	"github.com/xyproto/env/v2"
)

// FileName is the name of the configuration file in each configuration directory.
const FileName = "config.jwcc"

// DefaultFiles returns the configuration files to read
// in ascending order of precedence:
// the files in the user and system configuration directories
// followed by the files listed in the ARCHDESC_CONFIG environment variable.
func DefaultFiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		env.Load()
		for _, dir := range configDirs() {
			if !yield(filepath.Join(dir, FileName)) {
				return
			}
		}
		for _, path := range filepath.SplitList(env.Str(envPrefix + "CONFIG")) {
			if path == "" {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}
