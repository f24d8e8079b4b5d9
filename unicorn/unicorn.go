// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package unicorn declares the selector and register values
// the Unicorn CPU emulator accepts for uc_open and uc_reg_read/uc_reg_write.
package unicorn

import (
	"strconv"
	"strings"
)

// Arch is a Unicorn architecture (uc_arch).
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
		return "UC_ARCH_ARM"
	case ArchARM64:
		return "UC_ARCH_ARM64"
	case ArchMIPS:
		return "UC_ARCH_MIPS"
	case ArchX86:
		return "UC_ARCH_X86"
	case ArchPPC:
		return "UC_ARCH_PPC"
	case ArchSPARC:
		return "UC_ARCH_SPARC"
	default:
		return "unicorn.Arch(" + strconv.Itoa(int(a)) + ")"
	}
}

// Mode is a bit set of Unicorn mode flags (uc_mode).
type Mode uint32

// [Mode] flags.
const (
	ModeLittleEndian Mode = 0
	ModePPC32        Mode = 1 << 2
	ModePPC64        Mode = 1 << 3
	ModeBigEndian    Mode = 1 << 30
)

// BigEndian reports whether the mode selects a big-endian CPU.
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
		parts = append(parts, "UC_MODE_BIG_ENDIAN")
	} else {
		parts = append(parts, "UC_MODE_LITTLE_ENDIAN")
	}
	if m&ModePPC32 != 0 {
		parts = append(parts, "UC_MODE_PPC32")
	}
	if m&ModePPC64 != 0 {
		parts = append(parts, "UC_MODE_PPC64")
	}
	if rest := m &^ (ModeBigEndian | ModePPC32 | ModePPC64); rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// Reg is a Unicorn register identifier.
// Identifiers are only meaningful together with an [Arch].
type Reg int

// PowerPC registers (uc_ppc_reg).
const (
	PPCRegInvalid Reg = 0
	PPCRegPC      Reg = 1
	PPCRegR0      Reg = 2
	PPCRegCR0     Reg = PPCRegR0 + 32
	PPCRegFPR0    Reg = PPCRegCR0 + 8
	PPCRegLR      Reg = PPCRegFPR0 + 32
	PPCRegXER     Reg = PPCRegLR + 1
	PPCRegCTR     Reg = PPCRegLR + 2
	PPCRegMSR     Reg = PPCRegLR + 3
	PPCRegFPSCR   Reg = PPCRegLR + 4
	PPCRegCR      Reg = PPCRegLR + 5
)

// PPCRegGPR returns the identifier of general-purpose register rN.
// PPCRegGPR panics if n is not in the range [0, 31].
func PPCRegGPR(n int) Reg {
	if n < 0 || n > 31 {
		panic("unicorn: PowerPC GPR " + strconv.Itoa(n) + " out of range")
	}
	return PPCRegR0 + Reg(n)
}

// PPCRegCRField returns the identifier of condition register field crN.
// PPCRegCRField panics if n is not in the range [0, 7].
func PPCRegCRField(n int) Reg {
	if n < 0 || n > 7 {
		panic("unicorn: PowerPC CR field " + strconv.Itoa(n) + " out of range")
	}
	return PPCRegCR0 + Reg(n)
}
