// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package capstone

import "testing"

func TestMode(t *testing.T) {
	tests := []struct {
		mode      Mode
		bigEndian bool
		bits      int
		str       string
	}{
		{ModeLittleEndian, false, 0, "CS_MODE_LITTLE_ENDIAN"},
		{ModeBigEndian | Mode32, true, 32, "CS_MODE_BIG_ENDIAN|CS_MODE_32"},
		{ModeBigEndian | Mode64, true, 64, "CS_MODE_BIG_ENDIAN|CS_MODE_64"},
		{Mode64 | ModeQPX, false, 64, "CS_MODE_LITTLE_ENDIAN|CS_MODE_64|CS_MODE_QPX"},
		{Mode32 | Mode64, false, 0, "CS_MODE_LITTLE_ENDIAN|CS_MODE_32|CS_MODE_64"},
		{Mode32 | 1<<20, false, 32, "CS_MODE_LITTLE_ENDIAN|CS_MODE_32|0x100000"},
	}
	for _, test := range tests {
		if got := test.mode.BigEndian(); got != test.bigEndian {
			t.Errorf("Mode(%#x).BigEndian() = %t; want %t", uint32(test.mode), got, test.bigEndian)
		}
		if got := test.mode.Bits(); got != test.bits {
			t.Errorf("Mode(%#x).Bits() = %d; want %d", uint32(test.mode), got, test.bits)
		}
		if got := test.mode.String(); got != test.str {
			t.Errorf("Mode(%#x).String() = %q; want %q", uint32(test.mode), got, test.str)
		}
	}
}

func TestArchString(t *testing.T) {
	if got, want := ArchPPC.String(), "CS_ARCH_PPC"; got != want {
		t.Errorf("ArchPPC.String() = %q; want %q", got, want)
	}
	if got, want := Arch(42).String(), "capstone.Arch(42)"; got != want {
		t.Errorf("Arch(42).String() = %q; want %q", got, want)
	}
}
