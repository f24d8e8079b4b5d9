// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package capstone declares the selector values the Capstone disassembly engine
// accepts for cs_open.
// The values match the engine's published constants
// so they can be handed to a binding uninterpreted.
package capstone

import (
	"strconv"
	"strings"
)

// Arch is a Capstone architecture (cs_arch).
type Arch int

// [Arch] values.
const (
	ArchARM   Arch = 0
	ArchARM64 Arch = 1
	ArchMIPS  Arch = 2
	ArchX86   Arch = 3
	ArchPPC   Arch = 4
	ArchSPARC Arch = 5
)

func (a Arch) String() string {
	switch a {
	case ArchARM:
		return "CS_ARCH_ARM"
	case ArchARM64:
		return "CS_ARCH_ARM64"
	case ArchMIPS:
		return "CS_ARCH_MIPS"
	case ArchX86:
		return "CS_ARCH_X86"
	case ArchPPC:
		return "CS_ARCH_PPC"
	case ArchSPARC:
		return "CS_ARCH_SPARC"
	default:
		return "capstone.Arch(" + strconv.Itoa(int(a)) + ")"
	}
}

// Mode is a bit set of Capstone mode flags (cs_mode).
type Mode uint32

// [Mode] flags.
const (
	ModeLittleEndian Mode = 0
	Mode32           Mode = 1 << 2
	Mode64           Mode = 1 << 3
	ModeQPX          Mode = 1 << 4
	ModeBigEndian    Mode = 1 << 31
)

// BigEndian reports whether the mode selects big-endian decoding.
func (m Mode) BigEndian() bool {
	return m&ModeBigEndian != 0
}

// Bits returns the instruction width the mode selects,
// or 0 if the mode does not select one.
func (m Mode) Bits() int {
	switch {
	case m&Mode32 != 0 && m&Mode64 == 0:
		return 32
	case m&Mode64 != 0 && m&Mode32 == 0:
		return 64
	default:
		return 0
	}
}

// String formats the mode as a "|"-separated list of flag names.
func (m Mode) String() string {
	var parts []string
	if m.BigEndian() {
		parts = append(parts, "CS_MODE_BIG_ENDIAN")
	} else {
		parts = append(parts, "CS_MODE_LITTLE_ENDIAN")
	}
	if m&Mode32 != 0 {
		parts = append(parts, "CS_MODE_32")
	}
	if m&Mode64 != 0 {
		parts = append(parts, "CS_MODE_64")
	}
	if m&ModeQPX != 0 {
		parts = append(parts, "CS_MODE_QPX")
	}
	if rest := m &^ (ModeBigEndian | Mode32 | Mode64 | ModeQPX); rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
