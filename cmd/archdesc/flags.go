// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"zb.256lights.llc/archdesc"
)

// toolListFlag is the implementation of [github.com/spf13/pflag.Value]
// and [github.com/spf13/pflag.SliceValue]
// for a list of [archdesc.Tool] values.
// Each call to Set appends one or more comma-separated tools.
type toolListFlag []archdesc.Tool

var _ pflag.SliceValue = (*toolListFlag)(nil)

func (f *toolListFlag) Type() string { return "tool" }
func (f toolListFlag) Get() any      { return []archdesc.Tool(f) }

func (f toolListFlag) String() string {
	return strings.Join(f.GetSlice(), ",")
}

func (f *toolListFlag) Set(s string) error {
	for part := range strings.SplitSeq(s, ",") {
		tool, err := parseTool(part)
		if err != nil {
			return err
		}
		if !slices.Contains(*f, tool) {
			*f = append(*f, tool)
		}
	}
	return nil
}

func (f *toolListFlag) Append(s string) error {
	return f.Set(s)
}

func (f *toolListFlag) Replace(vals []string) error {
	*f = nil
	for _, s := range vals {
		if err := f.Set(s); err != nil {
			return err
		}
	}
	return nil
}

func (f toolListFlag) GetSlice() []string {
	vals := make([]string, 0, len(f))
	for _, tool := range f {
		vals = append(vals, string(tool))
	}
	return vals
}

func parseTool(s string) (archdesc.Tool, error) {
	tool := archdesc.Tool(strings.ToLower(strings.TrimSpace(s)))
	if !tool.IsKnown() {
		names := make([]string, 0, len(archdesc.Tools()))
		for _, t := range archdesc.Tools() {
			names = append(names, string(t))
		}
		return "", fmt.Errorf("unknown tool %q (must be one of %s)", s, strings.Join(names, ", "))
	}
	return tool, nil
}
