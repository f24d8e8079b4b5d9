// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package system

// Architecture is the name of an instruction set architecture in a target triple.
// The empty string is treated the same as [Unknown].
type Architecture string

// IsUnknown reports whether arch is the empty string or [Unknown].
func (arch Architecture) IsUnknown() bool {
	return arch == "" || arch == Unknown
}

// String returns string(arch) or [Unknown] if arch is the empty string.
func (arch Architecture) String() string {
	if arch == "" {
		return Unknown
	}
	return string(arch)
}

func (arch Architecture) pointerBitWidth() (int, bool) {
	switch {
	case arch.isX8632() || arch == "arm" || arch == "riscv32" || arch.isPowerPC32():
		return 32, true
	case arch == "x86_64" || arch == "aarch64" || arch == "riscv64" || arch.isPowerPC64():
		return 64, true
	default:
		return 0, false
	}
}

// Is32Bit reports whether pointers on the architecture are 32 bits wide.
func (arch Architecture) Is32Bit() bool {
	w, _ := arch.pointerBitWidth()
	return w == 32
}

// Is64Bit reports whether pointers on the architecture are 64 bits wide.
func (arch Architecture) Is64Bit() bool {
	w, _ := arch.pointerBitWidth()
	return w == 64
}

// isX8632 reports whether arch is a 32-bit Intel-based instruction set.
func (arch Architecture) isX8632() bool {
	return arch == "i386" ||
		arch == "i486" ||
		arch == "i586" ||
		arch == "i686"
}

// IsPowerPC reports whether arch is a PowerPC instruction set,
// including both 32-bit and 64-bit forms of either byte order.
func (arch Architecture) IsPowerPC() bool {
	return arch.isPowerPC32() || arch.isPowerPC64()
}

func (arch Architecture) isPowerPC32() bool {
	return arch == "powerpc" || arch == "powerpcle"
}

func (arch Architecture) isPowerPC64() bool {
	return arch == "powerpc64" || arch == "powerpc64le"
}

// IsLittleEndian reports whether arch is known to be little-endian.
// Architectures with a selectable byte order spell the little-endian form
// with an "le" or "el" suffix.
func (arch Architecture) IsLittleEndian() bool {
	switch {
	case arch.isX8632() || arch == "x86_64" || arch == "aarch64" || arch == "arm" || arch == "riscv32" || arch == "riscv64":
		return true
	case arch.IsPowerPC():
		return arch == "powerpcle" || arch == "powerpc64le"
	default:
		return false
	}
}
