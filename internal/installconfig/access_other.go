// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package installconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// checkExecutable returns an error if path is not a regular file.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

func findInDir(dir, binary string) (string, error) {
	path := filepath.Join(dir, binary)
	err := checkExecutable(path)
	if err != nil && runtime.GOOS == "windows" && filepath.Ext(binary) == "" {
		if exeErr := checkExecutable(path + ".exe"); exeErr == nil {
			return path + ".exe", nil
		}
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
