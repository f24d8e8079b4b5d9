// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package installconfig

import (
	"os"
	"path/filepath"
)

// configDirs returns the directories to search for configuration files
// in ascending order of precedence.
func configDirs() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "archdesc")}
}
