// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"zb.256lights.llc/archdesc/internal/testcontext"
)

// mapConfig is an [InstallConfig] backed by a map from binary to path.
type mapConfig map[Tool]map[string]string

func (m mapConfig) ToolPath(ctx context.Context, tool Tool, binary string) (string, error) {
	path, ok := m[tool][binary]
	if !ok {
		return "", fmt.Errorf("%v %s: %w", tool, binary, ErrNotInstalled)
	}
	return path, nil
}

func TestExecutable(t *testing.T) {
	ctx := testcontext.New(t)
	cfg := mapConfig{
		ToolQEMU: {
			"qemu-system-ppc":   "/opt/qemu/bin/qemu-system-ppc",
			"qemu-system-ppc64": "/opt/qemu/bin/qemu-system-ppc64",
		},
		ToolGDBMultiarch: {
			"gdb-multiarch": "/usr/bin/gdb-multiarch",
		},
	}
	tests := []struct {
		name string
		tool Tool
		want string
	}{
		{PPC32, ToolQEMU, "/opt/qemu/bin/qemu-system-ppc"},
		{PPCMPC8544, ToolQEMU, "/opt/qemu/bin/qemu-system-ppc"},
		{PPCLE, ToolQEMU, "/opt/qemu/bin/qemu-system-ppc"},
		{PPC64LE, ToolQEMU, "/opt/qemu/bin/qemu-system-ppc64"},
		{PPC64, ToolGDBMultiarch, "/usr/bin/gdb-multiarch"},
	}
	r := testRegistry(t)
	for _, test := range tests {
		d, err := r.Lookup(test.name)
		if err != nil {
			t.Error(err)
			continue
		}
		got, err := ResolveExecutable(ctx, d, test.tool, cfg)
		if got != test.want || err != nil {
			t.Errorf("ResolveExecutable(ctx, %s, %v, cfg) = %q, %v; want %q, <nil>", test.name, test.tool, got, err, test.want)
		}
	}
}

func TestExecutableNotInstalled(t *testing.T) {
	ctx := testcontext.New(t)
	d, err := Lookup(PPC64)
	if err != nil {
		t.Fatal(err)
	}
	cfg := mapConfig{
		ToolQEMU: {"qemu-system-ppc": "/opt/qemu/bin/qemu-system-ppc"},
	}

	for _, c := range []InstallConfig{cfg, mapConfig{}, nil} {
		for _, tool := range Tools() {
			got, err := d.Executable(ctx, tool, c)
			if got != "" {
				t.Errorf("Executable(ctx, %v, %v) = %q, %v; want no path", tool, c, got, err)
			}
			var toolErr *ToolError
			if !errors.As(err, &toolErr) || !errors.Is(err, ErrNotInstalled) {
				t.Errorf("Executable(ctx, %v, %v) error = %v; want *ToolError wrapping ErrNotInstalled", tool, c, err)
				continue
			}
			if toolErr.Descriptor != PPC64 || toolErr.Tool != tool {
				t.Errorf("toolErr = %+v; want Descriptor=%s Tool=%v", toolErr, PPC64, tool)
			}
		}
	}
}

func TestExecutableUnsupportedTool(t *testing.T) {
	ctx := testcontext.New(t)
	d, err := Lookup(PPC32)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.Executable(ctx, "ida", mapConfig{})
	if !errors.Is(err, ErrUnsupportedTool) {
		t.Errorf("Executable(ctx, ida, cfg) error = %v; want ErrUnsupportedTool", err)
	}
}

func TestExecutableEmptyPath(t *testing.T) {
	ctx := testcontext.New(t)
	d, err := Resolve(testRoot(), Fragment{
		Resolvers: map[Tool]Resolver{
			ToolQEMU: func(ctx context.Context, cfg InstallConfig, tool Tool, binary string) (string, error) {
				return "", nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, err := d.Executable(ctx, ToolQEMU, mapConfig{}); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Executable(...) = %q, %v; want ErrNotInstalled", got, err)
	}
}

func TestToolError(t *testing.T) {
	err := &ToolError{Descriptor: PPC32, Tool: ToolQEMU, Binary: "qemu-system-ppc", Err: ErrNotInstalled}
	if got, want := err.Error(), "resolve qemu (qemu-system-ppc) for ppc32: tool not installed"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
	err = &ToolError{Descriptor: PPC32, Tool: "ida", Err: ErrUnsupportedTool}
	if got, want := err.Error(), "resolve ida for ppc32: tool not supported for architecture"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
