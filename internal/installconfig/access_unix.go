// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:build unix

package installconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// checkExecutable returns an error if path is not an executable file.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return &os.PathError{Op: "access", Path: path, Err: err}
	}
	return nil
}

func findInDir(dir, binary string) (string, error) {
	path := filepath.Join(dir, binary)
	if err := checkExecutable(path); err != nil {
		return "", err
	}
	return path, nil
}
