// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package keystone declares the selector values the Keystone assembler engine
// accepts for ks_open.
package keystone

import (
	"strconv"
	"strings"
)

// Arch is a Keystone architecture (ks_arch).
type Arch int

// [Arch] values.
const (
	ArchARM   Arch = 1
	ArchARM64 Arch = 2
	ArchMIPS  Arch = 3
	ArchX86   Arch = 4
	ArchPPC   Arch = 5
	ArchSPARC Arch = 6
)

func (a Arch) String() string {
	switch a {
	case ArchARM:
		return "KS_ARCH_ARM"
	case ArchARM64:
		return "KS_ARCH_ARM64"
	case ArchMIPS:
		return "KS_ARCH_MIPS"
	case ArchX86:
		return "KS_ARCH_X86"
	case ArchPPC:
		return "KS_ARCH_PPC"
	case ArchSPARC:
		return "KS_ARCH_SPARC"
	default:
		return "keystone.Arch(" + strconv.Itoa(int(a)) + ")"
	}
}

// Mode is a bit set of Keystone mode flags (ks_mode).
type Mode uint32

// [Mode] flags.
const (
	ModeLittleEndian Mode = 0
	ModePPC32        Mode = 1 << 2
	ModePPC64        Mode = 1 << 3
	ModeQPX          Mode = 1 << 4
	ModeBigEndian    Mode = 1 << 30
)

// BigEndian reports whether the mode selects big-endian encoding.
func (m Mode) BigEndian() bool {
	return m&ModeBigEndian != 0
}

// Bits returns the PowerPC width the mode selects,
// or 0 if the mode does not select one.
func (m Mode) Bits() int {
	switch {
	case m&ModePPC32 != 0 && m&ModePPC64 == 0:
		return 32
	case m&ModePPC64 != 0 && m&ModePPC32 == 0:
		return 64
	default:
		return 0
	}
}

// String formats the mode as a "|"-separated list of flag names.
func (m Mode) String() string {
	var parts []string
	if m.BigEndian() {
		parts = append(parts, "KS_MODE_BIG_ENDIAN")
	} else {
		parts = append(parts, "KS_MODE_LITTLE_ENDIAN")
	}
	if m&ModePPC32 != 0 {
		parts = append(parts, "KS_MODE_PPC32")
	}
	if m&ModePPC64 != 0 {
		parts = append(parts, "KS_MODE_PPC64")
	}
	if m&ModeQPX != 0 {
		parts = append(parts, "KS_MODE_QPX")
	}
	if rest := m &^ (ModeBigEndian | ModePPC32 | ModePPC64 | ModeQPX); rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
