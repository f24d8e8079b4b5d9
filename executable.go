// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"context"
	"errors"
	"fmt"

	"zombiezen.com/go/log"
)

// Tool is a category of external executable that a descriptor can resolve.
type Tool string

// Known tools.
const (
	// ToolQEMU is the QEMU full-system emulator.
	ToolQEMU Tool = "qemu"
	// ToolPANDA is the PANDA build of QEMU.
	ToolPANDA Tool = "panda"
	// ToolOpenOCD is the OpenOCD hardware debug bridge.
	ToolOpenOCD Tool = "openocd"
	// ToolGDBMultiarch is a GDB built with support for every target.
	ToolGDBMultiarch Tool = "gdb-multiarch"
)

// Tools returns all the known tools.
func Tools() []Tool {
	return []Tool{ToolQEMU, ToolPANDA, ToolOpenOCD, ToolGDBMultiarch}
}

// String returns string(tool).
func (tool Tool) String() string {
	return string(tool)
}

// IsKnown reports whether tool is one of the values returned by [Tools].
func (tool Tool) IsKnown() bool {
	switch tool {
	case ToolQEMU, ToolPANDA, ToolOpenOCD, ToolGDBMultiarch:
		return true
	default:
		return false
	}
}

// Errors wrapped by [*ToolError].
var (
	// ErrNotInstalled indicates that the installation configuration
	// has no executable for the requested tool and binary.
	ErrNotInstalled = errors.New("tool not installed")
	// ErrUnsupportedTool indicates that the descriptor binds no resolver for a tool.
	ErrUnsupportedTool = errors.New("tool not supported for architecture")
)

// InstallConfig is the installation configuration that records
// where tool binaries live.
// ToolPath may probe the filesystem.
type InstallConfig interface {
	// ToolPath returns the path of the given binary for a tool.
	// If the configuration has no such binary,
	// then ToolPath returns an error for which
	// errors.Is(err, ErrNotInstalled) reports true.
	ToolPath(ctx context.Context, tool Tool, binary string) (string, error)
}

// Resolver finds the executable for a tool.
// binary is the descriptor's default binary identifier for the tool.
type Resolver func(ctx context.Context, cfg InstallConfig, tool Tool, binary string) (string, error)

// Configured returns a [Resolver] that asks the installation configuration
// for the descriptor's binary.
func Configured() Resolver {
	return func(ctx context.Context, cfg InstallConfig, tool Tool, binary string) (string, error) {
		if cfg == nil {
			return "", ErrNotInstalled
		}
		return cfg.ToolPath(ctx, tool, binary)
	}
}

// ToolError is the error returned by [Descriptor.Executable].
type ToolError struct {
	Descriptor string
	Tool       Tool
	Binary     string
	Err        error
}

func (e *ToolError) Error() string {
	if e.Binary == "" {
		return fmt.Sprintf("resolve %v for %s: %v", e.Tool, e.Descriptor, e.Err)
	}
	return fmt.Sprintf("resolve %v (%s) for %s: %v", e.Tool, e.Binary, e.Descriptor, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Executable returns the path of the executable for the given tool,
// consulting cfg through the resolver bound to d.
// It never substitutes a default path:
// if the tool is not configured, Executable returns a [*ToolError]
// that wraps [ErrNotInstalled] or [ErrUnsupportedTool].
//
// Executable may block on filesystem access performed by cfg.
func (d *Descriptor) Executable(ctx context.Context, tool Tool, cfg InstallConfig) (string, error) {
	resolve := d.resolvers[tool]
	if resolve == nil {
		return "", &ToolError{Descriptor: d.name, Tool: tool, Err: ErrUnsupportedTool}
	}
	binary := d.binaries[tool]
	log.Debugf(ctx, "Resolving %v binary %q for %s", tool, binary, d.name)
	path, err := resolve(ctx, cfg, tool, binary)
	if err != nil {
		return "", &ToolError{Descriptor: d.name, Tool: tool, Binary: binary, Err: err}
	}
	if path == "" {
		return "", &ToolError{Descriptor: d.name, Tool: tool, Binary: binary, Err: ErrNotInstalled}
	}
	return path, nil
}

// ResolveExecutable is shorthand for d.Executable(ctx, tool, cfg).
func ResolveExecutable(ctx context.Context, d *Descriptor, tool Tool, cfg InstallConfig) (string, error) {
	return d.Executable(ctx, tool, cfg)
}
