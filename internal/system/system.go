// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package system normalizes the architecture component of target triples.
package system

import (
	"runtime"
	"strings"
)

const Unknown = "unknown"

// ParseArchitecture returns the normalized architecture of a target triple
// such as "powerpc64le-unknown-linux-gnu".
// A bare architecture name (e.g. "ppc64") is accepted as well.
// ParseArchitecture returns [Unknown] for an empty architecture component.
func ParseArchitecture(triple string) Architecture {
	archPart, _, _ := strings.Cut(triple, "-")
	if archPart == "" {
		return Unknown
	}
	arch := Architecture(strings.ToLower(archPart))
	if canon, ok := aliases[arch]; ok {
		return canon
	}
	return arch
}

// aliases maps alternate spellings to the names used in triples by LLVM.
var aliases = map[Architecture]Architecture{
	"amd64":       "x86_64",
	"arm64":       "aarch64",
	"ppc":         "powerpc",
	"ppc32":       "powerpc",
	"powerpc32":   "powerpc",
	"ppcle":       "powerpcle",
	"ppc32le":     "powerpcle",
	"ppc64":       "powerpc64",
	"ppc64le":     "powerpc64le",
	"powerpc64el": "powerpc64le",
}

// Current returns the [Architecture] of the current process.
func Current() Architecture {
	switch runtime.GOARCH {
	case "386":
		return "i686"
	case "amd64":
		return "x86_64"
	case "arm":
		return "arm"
	case "arm64":
		return "aarch64"
	case "riscv64":
		return "riscv64"
	case "ppc64":
		return "powerpc64"
	case "ppc64le":
		return "powerpc64le"
	default:
		return Architecture(runtime.GOARCH)
	}
}
