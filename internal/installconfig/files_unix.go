// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:build unix

package installconfig

import (
	"path/filepath"
	"slices"

	"go4.org/xdgdir"
)

// configDirs returns the directories to search for configuration files
// in ascending order of precedence.
func configDirs() []string {
	dirs := xdgdir.Config.SearchPaths()
	slices.Reverse(dirs)
	for i, dir := range dirs {
		dirs[i] = filepath.Join(dir, "archdesc")
	}
	return dirs
}
