// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package installconfig records where backend tools are installed.
// A [Config] is assembled from defaults, environment variables,
// and HuJSON (JWCC) configuration files, in that order of increasing precedence.
package installconfig

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
	"github.com/xyproto/env/v2"
	"zb.256lights.llc/archdesc"
	"zb.256lights.llc/archdesc/internal/xmaps"
)

// Config is the installation configuration.
// *Config implements [archdesc.InstallConfig].
type Config struct {
	// SearchPath permits falling back to the PATH environment variable
	// for tools that have no configured location.
	SearchPath bool `json:"searchPath"`
	// Tools maps a tool to where its binaries are installed.
	Tools map[archdesc.Tool]*ToolConfig `json:"tools,omitempty"`
	// Variants declares additional descriptors,
	// typically boards that differ from a built-in descriptor
	// in only a few fields.
	Variants map[string]*Variant `json:"variants,omitempty"`
}

// ToolConfig records the installation of one tool.
type ToolConfig struct {
	// Dir is a directory that contains the tool's binaries.
	Dir string `json:"dir,omitempty"`
	// Binaries maps a binary identifier (e.g. "qemu-system-ppc")
	// to the path of the executable.
	// Entries in Binaries take precedence over Dir.
	Binaries map[string]string `json:"binaries,omitempty"`
}

// Variant is a descriptor declared in configuration.
type Variant struct {
	// Base is the name of the descriptor the variant overrides.
	Base              string `json:"base"`
	archdesc.Fragment `json:",inline"`
}

// Default returns the configuration used in the absence of
// environment variables and configuration files.
func Default() *Config {
	return new(Config)
}

// envPrefix is the prefix of all environment variables read by [Config.MergeEnvironment].
const envPrefix = "ARCHDESC_"

// ToolDirEnv returns the name of the environment variable
// that sets the directory for a tool (e.g. "ARCHDESC_GDB_MULTIARCH_DIR").
func ToolDirEnv(tool archdesc.Tool) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(string(tool), "-", "_")) + "_DIR"
}

// MergeEnvironment applies the ARCHDESC_SEARCH_PATH
// and ARCHDESC_<TOOL>_DIR environment variables to c.
// The process environment is reread on every call.
func (c *Config) MergeEnvironment() error {
	env.Load()
	if v := env.Str(envPrefix + "SEARCH_PATH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSEARCH_PATH: %v", envPrefix, err)
		}
		c.SearchPath = b
	}
	for _, tool := range archdesc.Tools() {
		dir := env.Str(ToolDirEnv(tool))
		if dir == "" {
			continue
		}
		c.tool(tool).Dir = dir
	}
	return nil
}

// MergeFiles reads each of the HuJSON files in paths in order
// and merges their contents into c.
// Files that do not exist are skipped.
func (c *Config) MergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, c, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}
	return nil
}

// UnmarshalJSONFrom unmarshals the configuration object from the JSON decoder,
// merging any fields in the JSON object with existing values.
// Tool entries are merged binary by binary;
// a variant replaces any previous variant of the same name.
func (c *Config) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// Keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "searchPath":
			if err := jsonv2.UnmarshalDecode(in, &c.SearchPath); err != nil {
				return fmt.Errorf("unmarshal config.searchPath: %w", err)
			}
		case "tools":
			var tools map[archdesc.Tool]*ToolConfig
			if err := jsonv2.UnmarshalDecode(in, &tools); err != nil {
				return fmt.Errorf("unmarshal config.tools: %w", err)
			}
			for tool, tc := range xmaps.Sorted(tools) {
				if tc == nil {
					continue
				}
				dst := c.tool(tool)
				if tc.Dir != "" {
					dst.Dir = tc.Dir
				}
				dst.Binaries = xmaps.Overlay(dst.Binaries, tc.Binaries)
			}
		case "variants":
			var variants map[string]*Variant
			if err := jsonv2.UnmarshalDecode(in, &variants); err != nil {
				return fmt.Errorf("unmarshal config.variants: %w", err)
			}
			c.Variants = xmaps.Overlay(c.Variants, variants)
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
			if err := in.SkipValue(); err != nil {
				return err
			}
		}
	}
}

// tool returns the entry for tool, creating it if necessary.
func (c *Config) tool(tool archdesc.Tool) *ToolConfig {
	tc := c.Tools[tool]
	if tc == nil {
		tc = new(ToolConfig)
		if c.Tools == nil {
			c.Tools = make(map[archdesc.Tool]*ToolConfig)
		}
		c.Tools[tool] = tc
	}
	return tc
}

// Validate reports problems with the configuration
// that would prevent it from being used.
func (c *Config) Validate() error {
	var errs []error
	for tool, tc := range xmaps.Sorted(c.Tools) {
		if !tool.IsKnown() {
			errs = append(errs, fmt.Errorf("tools: unknown tool %q", tool))
			continue
		}
		if tc.Dir != "" && !filepath.IsAbs(tc.Dir) {
			errs = append(errs, fmt.Errorf("tools.%v.dir: %q is not absolute", tool, tc.Dir))
		}
		for binary, path := range xmaps.Sorted(tc.Binaries) {
			if !filepath.IsAbs(path) {
				errs = append(errs, fmt.Errorf("tools.%v.binaries.%s: %q is not absolute", tool, binary, path))
			}
		}
	}
	for name, v := range xmaps.Sorted(c.Variants) {
		switch {
		case v == nil:
			errs = append(errs, fmt.Errorf("variants.%s: null", name))
		case v.Base == "":
			errs = append(errs, fmt.Errorf("variants.%s: missing base", name))
		}
	}
	return errors.Join(errs...)
}

// Definitions returns the variants as descriptor definitions, sorted by name.
func (c *Config) Definitions() []archdesc.Definition {
	defs := make([]archdesc.Definition, 0, len(c.Variants))
	for name, v := range xmaps.Sorted(c.Variants) {
		if v == nil {
			continue
		}
		defs = append(defs, archdesc.Definition{
			Name:     name,
			Base:     v.Base,
			Fragment: v.Fragment,
		})
	}
	return defs
}
