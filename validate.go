// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"zb.256lights.llc/archdesc/internal/system"
	"zb.256lights.llc/archdesc/internal/xmaps"
	"zb.256lights.llc/archdesc/sets"
)

// byteOrderMode is implemented by the mode selectors of backends
// that encode byte order and width in their mode flags.
type byteOrderMode interface {
	BigEndian() bool
	Bits() int
	String() string
}

func (b *builder) validate() {
	d := b.d
	if d.name == "" {
		b.errorf("missing name")
	}
	if d.family == "" {
		b.errorf("missing family")
	}
	if d.bits != 32 && d.bits != 64 {
		b.errorf("address width %d is not 32 or 64", d.bits)
	}
	if d.endian != BigEndian && d.endian != LittleEndian {
		b.errorf("endianness not set")
	}
	if d.targetArch != "" {
		b.checkTargetArch(system.Architecture(d.targetArch))
	}

	if len(d.regNames) == 0 {
		b.errorf("no registers")
	}
	ids := make(map[int]string, len(d.regNames))
	for _, name := range d.regNames {
		id := d.regIDs[name]
		if prev, dup := ids[id]; dup {
			b.errorf("registers %q and %q share identifier %d", prev, name, id)
			continue
		}
		ids[id] = name
	}
	for alias, target := range xmaps.Sorted(d.aliases) {
		if _, isReg := d.regIDs[alias]; isReg {
			b.errorf("alias %q shadows a register", alias)
		}
		if _, ok := d.regIDs[target]; !ok {
			b.errorf("alias %q refers to undefined register %q", alias, target)
		}
	}
	b.checkRegister("program counter", d.pc)
	b.checkRegister("status register", d.sr)
	for name := range xmaps.Sorted(d.emuRegs) {
		if _, ok := d.regIDs[name]; !ok {
			b.errorf("emulator register mapping for undefined register %q", name)
		}
	}

	if d.gdbName == "" {
		b.errorf("missing GDB architecture name")
	}
	if d.qemuName == "" {
		b.errorf("missing QEMU target name")
	}
	if d.ksArch == 0 {
		b.errorf("keystone architecture not set")
	}
	if d.ucArch == 0 {
		b.errorf("unicorn architecture not set")
	}
	b.checkMode("capstone", d.csMode)
	b.checkMode("keystone", d.ksMode)
	b.checkMode("unicorn", d.ucMode)

	resolverTools := make(sets.Set[Tool], len(d.resolvers))
	for tool, r := range xmaps.Sorted(d.resolvers) {
		if r == nil {
			b.errorf("nil resolver for %s", tool)
		}
		resolverTools.Add(tool)
		if d.binaries[tool] == "" {
			b.errorf("resolver for %s has no binary identifier", tool)
		}
	}
	for tool := range xmaps.Sorted(d.binaries) {
		if !resolverTools.Has(tool) {
			b.errorf("binary identifier for %s has no resolver", tool)
		}
	}
}

// checkTargetArch verifies that the triple architecture
// agrees with the descriptor's address width and byte order.
func (b *builder) checkTargetArch(arch system.Architecture) {
	d := b.d
	if canon := system.ParseArchitecture(string(arch)); canon != arch {
		b.errorf("target architecture %q is not canonical (use %q)", arch, canon)
		return
	}
	switch {
	case arch.Is32Bit() && d.bits == 64:
		b.errorf("target architecture %s contradicts 64-bit address width", arch)
	case arch.Is64Bit() && d.bits == 32:
		b.errorf("target architecture %s contradicts 32-bit address width", arch)
	}
	if d.endian != BigEndian && d.endian != LittleEndian {
		return
	}
	// Outside PowerPC, only little-endian architectures are distinguishable.
	if arch.IsPowerPC() || arch.IsLittleEndian() {
		if arch.IsLittleEndian() != (d.endian == LittleEndian) {
			b.errorf("target architecture %s contradicts %v endianness", arch, d.endian)
		}
	}
}

func (b *builder) checkRegister(role, name string) {
	if name == "" {
		b.errorf("%s not designated", role)
		return
	}
	if _, ok := b.d.regIDs[name]; !ok {
		b.errorf("%s %q is not a defined register", role, name)
	}
}

// checkMode verifies that a backend's mode flags agree
// with the descriptor's byte order and address width.
func (b *builder) checkMode(backend string, mode byteOrderMode) {
	d := b.d
	switch w := mode.Bits(); {
	case w == 0:
		b.errorf("%s mode %v selects no address width", backend, mode)
	case (d.bits == 32 || d.bits == 64) && w != d.bits:
		b.errorf("%s mode %v contradicts %d-bit address width", backend, mode, d.bits)
	}
	switch d.endian {
	case BigEndian, LittleEndian:
		if mode.BigEndian() != (d.endian == BigEndian) {
			b.errorf("%s mode %v contradicts %v endianness", backend, mode, d.endian)
		}
	}
}
