// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"strconv"

	"zb.256lights.llc/archdesc/capstone"
	"zb.256lights.llc/archdesc/keystone"
	"zb.256lights.llc/archdesc/unicorn"
)

// PowerPC family descriptor names.
const (
	PPC        = "ppc"
	PPC32      = "ppc32"
	PPC64      = "ppc64"
	PPCMPC8544 = "ppc-mpc8544ds"
	PPCBE      = "ppc-be"
	PPCLE      = "ppc-le"
	PPC64BE    = "ppc64-be"
	PPC64LE    = "ppc64-le"
)

const (
	ppcNumGPRs  = 32
	ppcPCNumber = 64
)

// PowerPC returns the definitions of the PowerPC family.
// [PPC] is the abstract family root;
// every other definition overrides it directly or through [PPC32] or [PPC64].
// Each call returns new values.
func PowerPC() []Definition {
	return []Definition{
		{
			Name:     PPC,
			Abstract: true,
			Fragment: ppcRoot(),
		},
		{
			Name: PPC32,
			Base: PPC,
			Fragment: Fragment{
				TargetArch:   NonNull("powerpc"),
				Bits:         NonNull(32),
				Endianness:   NonNull(BigEndian),
				CapstoneMode: NonNull(capstone.ModeBigEndian | capstone.Mode32),
				KeystoneMode: NonNull(keystone.ModeBigEndian | keystone.ModePPC32),
				UnicornMode:  NonNull(unicorn.ModeBigEndian | unicorn.ModePPC32),
				GDBName:      NonNull("powerpc:common"),
				QEMUName:     NonNull("ppc"),
				Binaries: map[Tool]string{
					ToolQEMU:  "qemu-system-ppc",
					ToolPANDA: "panda-system-ppc",
				},
			},
		},
		{
			Name: PPC64,
			Base: PPC,
			Fragment: Fragment{
				TargetArch:   NonNull("powerpc64"),
				Bits:         NonNull(64),
				Endianness:   NonNull(BigEndian),
				CapstoneMode: NonNull(capstone.ModeBigEndian | capstone.Mode64),
				KeystoneMode: NonNull(keystone.ModeBigEndian | keystone.ModePPC64),
				UnicornMode:  NonNull(unicorn.ModeBigEndian | unicorn.ModePPC64),
				GDBName:      NonNull("powerpc64:common"),
				QEMUName:     NonNull("ppc64"),
				Binaries: map[Tool]string{
					ToolQEMU:  "qemu-system-ppc64",
					ToolPANDA: "panda-system-ppc64",
				},
			},
		},
		{
			// QEMU's MPC8544DS board.
			Name: PPCMPC8544,
			Base: PPC32,
			Fragment: Fragment{
				GDBName: NonNull("powerpc:MPC8XX"),
			},
		},
		{
			Name: PPCBE,
			Base: PPC32,
		},
		{
			Name: PPCLE,
			Base: PPC32,
			Fragment: Fragment{
				TargetArch:   NonNull("powerpcle"),
				Endianness:   NonNull(LittleEndian),
				CapstoneMode: NonNull(capstone.ModeLittleEndian | capstone.Mode32),
				KeystoneMode: NonNull(keystone.ModeLittleEndian | keystone.ModePPC32),
				UnicornMode:  NonNull(unicorn.ModeLittleEndian | unicorn.ModePPC32),
			},
		},
		{
			Name: PPC64BE,
			Base: PPC64,
		},
		{
			Name: PPC64LE,
			Base: PPC64,
			Fragment: Fragment{
				TargetArch:   NonNull("powerpc64le"),
				Endianness:   NonNull(LittleEndian),
				CapstoneMode: NonNull(capstone.ModeLittleEndian | capstone.Mode64),
				KeystoneMode: NonNull(keystone.ModeLittleEndian | keystone.ModePPC64),
				UnicornMode:  NonNull(unicorn.ModeLittleEndian | unicorn.ModePPC64),
			},
		},
	}
}

// ppcRoot returns the register model and selectors
// shared by all PowerPC variants.
// Register identifiers follow GDB's PowerPC register numbering.
func ppcRoot() Fragment {
	f := Fragment{
		Family:            NonNull(PPC),
		Registers:         make([]Register, 0, ppcNumGPRs+6),
		EmulatorRegisters: make(map[string]unicorn.Reg, ppcNumGPRs+6),
		Aliases: map[string]string{
			"sp":  "r1",
			"nip": "pc",
		},
		PCRegister:     NonNull("pc"),
		StatusRegister: NonNull("cr"),
		CapstoneArch:   NonNull(capstone.ArchPPC),
		KeystoneArch:   NonNull(keystone.ArchPPC),
		UnicornArch:    NonNull(unicorn.ArchPPC),
		Binaries: map[Tool]string{
			ToolOpenOCD:      "openocd",
			ToolGDBMultiarch: "gdb-multiarch",
		},
		Resolvers: map[Tool]Resolver{
			ToolQEMU:         Configured(),
			ToolPANDA:        Configured(),
			ToolOpenOCD:      Configured(),
			ToolGDBMultiarch: Configured(),
		},
	}
	for i := range ppcNumGPRs {
		name := "r" + strconv.Itoa(i)
		f.Registers = append(f.Registers, Register{Name: name, ID: i})
		f.EmulatorRegisters[name] = unicorn.PPCRegGPR(i)
	}
	special := []struct {
		name string
		emu  unicorn.Reg
	}{
		{"pc", unicorn.PPCRegPC},
		{"msr", unicorn.PPCRegMSR},
		{"cr", unicorn.PPCRegCR},
		{"lr", unicorn.PPCRegLR},
		{"ctr", unicorn.PPCRegCTR},
		{"xer", unicorn.PPCRegXER},
	}
	for i, reg := range special {
		f.Registers = append(f.Registers, Register{Name: reg.name, ID: ppcPCNumber + i})
		f.EmulatorRegisters[reg.name] = reg.emu
	}
	return f
}
