// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zb.256lights.llc/archdesc/capstone"
	"zb.256lights.llc/archdesc/keystone"
	"zb.256lights.llc/archdesc/unicorn"
)

// testRoot returns a small but complete big-endian 32-bit family root.
func testRoot() Fragment {
	return Fragment{
		Name:       "test",
		Family:     NonNull("test"),
		Bits:       NonNull(32),
		Endianness: NonNull(BigEndian),
		Registers: []Register{
			{Name: "r0", ID: 0},
			{Name: "r1", ID: 1},
			{Name: "pc", ID: 64},
		},
		EmulatorRegisters: map[string]unicorn.Reg{
			"r0": unicorn.PPCRegGPR(0),
			"pc": unicorn.PPCRegPC,
		},
		PCRegister:     NonNull("pc"),
		StatusRegister: NonNull("r1"),
		CapstoneArch:   NonNull(capstone.ArchPPC),
		CapstoneMode:   NonNull(capstone.ModeBigEndian | capstone.Mode32),
		KeystoneArch:   NonNull(keystone.ArchPPC),
		KeystoneMode:   NonNull(keystone.ModeBigEndian | keystone.ModePPC32),
		UnicornArch:    NonNull(unicorn.ArchPPC),
		UnicornMode:    NonNull(unicorn.ModeBigEndian | unicorn.ModePPC32),
		GDBName:        NonNull("powerpc:common"),
		QEMUName:       NonNull("ppc"),
		Binaries:       map[Tool]string{ToolQEMU: "qemu-system-ppc"},
		Resolvers:      map[Tool]Resolver{ToolQEMU: Configured()},
	}
}

func registerMap(d *Descriptor) map[string]int {
	m := make(map[string]int)
	for name, id := range d.Registers() {
		m[name] = id
	}
	return m
}

func TestResolveMergesRegisters(t *testing.T) {
	d, err := Resolve(testRoot(), Fragment{
		Registers: []Register{{Name: "pc", ID: 65}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"r0": 0, "r1": 1, "pc": 65}
	if diff := cmp.Diff(want, registerMap(d)); diff != "" {
		t.Errorf("registers (-want +got):\n%s", diff)
	}

	var order []string
	for name := range d.Registers() {
		order = append(order, name)
	}
	if diff := cmp.Diff([]string{"r0", "r1", "pc"}, order); diff != "" {
		t.Errorf("register order (-want +got):\n%s", diff)
	}
}

func TestResolveAppendsNewRegisters(t *testing.T) {
	d, err := Resolve(testRoot(), Fragment{
		Registers:         []Register{{Name: "lr", ID: 67}},
		EmulatorRegisters: map[string]unicorn.Reg{"lr": unicorn.PPCRegLR},
	})
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for name := range d.Registers() {
		order = append(order, name)
	}
	if diff := cmp.Diff([]string{"r0", "r1", "pc", "lr"}, order); diff != "" {
		t.Errorf("register order (-want +got):\n%s", diff)
	}
	if got, err := d.EmulatorRegister("lr"); got != unicorn.PPCRegLR || err != nil {
		t.Errorf("EmulatorRegister(\"lr\") = %v, %v; want %v, <nil>", got, err, unicorn.PPCRegLR)
	}
	if got, err := d.EmulatorRegister("r0"); got != unicorn.PPCRegGPR(0) || err != nil {
		t.Errorf("EmulatorRegister(\"r0\") = %v, %v; want %v, <nil> (inherited)", got, err, unicorn.PPCRegGPR(0))
	}
}

func TestResolveReplacesScalars(t *testing.T) {
	d, err := Resolve(testRoot(),
		Fragment{Name: "mid", GDBName: NonNull("powerpc:403")},
		Fragment{Name: "leaf", GDBName: NonNull("powerpc:MPC8XX"), QEMUName: NonNull("ppc-board")},
		Fragment{},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.Name(), "leaf"; got != want {
		t.Errorf("Name() = %q; want %q", got, want)
	}
	if got, want := d.GDBName(), "powerpc:MPC8XX"; got != want {
		t.Errorf("GDBName() = %q; want %q", got, want)
	}
	if got, want := d.QEMUName(), "ppc-board"; got != want {
		t.Errorf("QEMUName() = %q; want %q", got, want)
	}
	if got, want := d.Bits(), 32; got != want {
		t.Errorf("Bits() = %d; want %d (inherited)", got, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	chain := []Fragment{
		{Registers: []Register{{Name: "pc", ID: 65}}},
		{Name: "leaf", Aliases: map[string]string{"sp": "r1"}},
	}
	d1, err := Resolve(testRoot(), chain...)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Resolve(testRoot(), chain...)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(d1.Info(), d2.Info()); diff != "" {
		t.Errorf("resolving twice differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(d1.Tools(), d2.Tools()); diff != "" {
		t.Errorf("tools differ (-first +second):\n%s", diff)
	}
}

func TestResolveDoesNotModifyFragments(t *testing.T) {
	root := testRoot()
	override := Fragment{
		Registers: []Register{{Name: "pc", ID: 65}},
		Binaries:  map[Tool]string{ToolQEMU: "qemu-system-ppc-board"},
	}
	if _, err := Resolve(root, override); err != nil {
		t.Fatal(err)
	}
	if got, want := root.Registers[2].ID, 64; got != want {
		t.Errorf("root pc ID = %d after Resolve; want %d", got, want)
	}
	if got, want := root.Binaries[ToolQEMU], "qemu-system-ppc"; got != want {
		t.Errorf("root qemu binary = %q after Resolve; want %q", got, want)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		chain   []Fragment
		message string
	}{
		{
			name: "DanglingEmulatorRegister",
			chain: []Fragment{{
				EmulatorRegisters: map[string]unicorn.Reg{"lr": unicorn.PPCRegLR},
			}},
			message: `emulator register mapping for undefined register "lr"`,
		},
		{
			name:    "TargetArchWidth",
			chain:   []Fragment{{TargetArch: NonNull("powerpc64le")}},
			message: "target architecture powerpc64le contradicts 32-bit address width",
		},
		{
			name:    "TargetArchEndianness",
			chain:   []Fragment{{TargetArch: NonNull("powerpc64le")}},
			message: "target architecture powerpc64le contradicts big endianness",
		},
		{
			name:    "TargetArchAlias",
			chain:   []Fragment{{TargetArch: NonNull("ppc")}},
			message: `target architecture "ppc" is not canonical (use "powerpc")`,
		},
		{
			name:    "DanglingPC",
			chain:   []Fragment{{PCRegister: NonNull("nip")}},
			message: `program counter "nip" is not a defined register`,
		},
		{
			name:    "DanglingStatusRegister",
			chain:   []Fragment{{StatusRegister: NonNull("cr")}},
			message: `status register "cr" is not a defined register`,
		},
		{
			name: "DuplicateNameInFragment",
			chain: []Fragment{{Registers: []Register{
				{Name: "r2", ID: 2},
				{Name: "r2", ID: 3},
			}}},
			message: `register "r2" listed twice`,
		},
		{
			name:    "DuplicateID",
			chain:   []Fragment{{Registers: []Register{{Name: "sp", ID: 1}}}},
			message: `registers "r1" and "sp" share identifier 1`,
		},
		{
			name:    "AliasShadowsRegister",
			chain:   []Fragment{{Aliases: map[string]string{"r0": "r1"}}},
			message: `alias "r0" shadows a register`,
		},
		{
			name:    "DanglingAlias",
			chain:   []Fragment{{Aliases: map[string]string{"sp": "r31"}}},
			message: `alias "sp" refers to undefined register "r31"`,
		},
		{
			// A little-endian variant that keeps its parent's big-endian emulator flag.
			name: "LittleEndianWithBigEndianMode",
			chain: []Fragment{{
				Endianness:   NonNull(LittleEndian),
				CapstoneMode: NonNull(capstone.ModeLittleEndian | capstone.Mode32),
				KeystoneMode: NonNull(keystone.ModeLittleEndian | keystone.ModePPC32),
			}},
			message: "unicorn mode UC_MODE_BIG_ENDIAN|UC_MODE_PPC32 contradicts little endianness",
		},
		{
			name:    "BigEndianWithLittleEndianMode",
			chain:   []Fragment{{CapstoneMode: NonNull(capstone.Mode32)}},
			message: "capstone mode CS_MODE_LITTLE_ENDIAN|CS_MODE_32 contradicts big endianness",
		},
		{
			name:    "WidthMismatch",
			chain:   []Fragment{{KeystoneMode: NonNull(keystone.ModeBigEndian | keystone.ModePPC64)}},
			message: "keystone mode KS_MODE_BIG_ENDIAN|KS_MODE_PPC64 contradicts 32-bit address width",
		},
		{
			name:    "NoWidth",
			chain:   []Fragment{{UnicornMode: NonNull(unicorn.ModeBigEndian)}},
			message: "unicorn mode UC_MODE_BIG_ENDIAN selects no address width",
		},
		{
			name:    "BadBits",
			chain:   []Fragment{{Bits: NonNull(16)}},
			message: "address width 16 is not 32 or 64",
		},
		{
			name:    "ResolverWithoutBinary",
			chain:   []Fragment{{Resolvers: map[Tool]Resolver{ToolOpenOCD: Configured()}}},
			message: "resolver for openocd has no binary identifier",
		},
		{
			name:    "BinaryWithoutResolver",
			chain:   []Fragment{{Binaries: map[Tool]string{ToolPANDA: "panda-system-ppc"}}},
			message: "binary identifier for panda has no resolver",
		},
		{
			name:    "EmptyName",
			chain:   []Fragment{{GDBName: NonNull("")}},
			message: "missing GDB architecture name",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Resolve(testRoot(), test.chain...)
			if err == nil {
				t.Fatalf("Resolve(...) = %v, <nil>; want error", d)
			}
			if !errors.Is(err, ErrMalformedDescriptor) {
				t.Errorf("Resolve(...) error = %v; want to wrap ErrMalformedDescriptor", err)
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("Resolve(...) error = %v; want to contain %q", err, test.message)
			}
		})
	}
}

func TestResolveEmptyRoot(t *testing.T) {
	_, err := Resolve(Fragment{})
	if !errors.Is(err, ErrMalformedDescriptor) {
		t.Fatalf("Resolve(Fragment{}) error = %v; want ErrMalformedDescriptor", err)
	}
	for _, want := range []string{"<unnamed>", "missing name", "no registers", "endianness not set", "program counter not designated"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestEmulatorRegister(t *testing.T) {
	d, err := Resolve(testRoot(), Fragment{
		Aliases: map[string]string{"sp": "r1"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, err := d.EmulatorRegister("pc"); got != unicorn.PPCRegPC || err != nil {
		t.Errorf("EmulatorRegister(\"pc\") = %v, %v; want %v, <nil>", got, err, unicorn.PPCRegPC)
	}
	if _, err := d.EmulatorRegister("r1"); !errors.Is(err, ErrUnsupportedRegister) {
		t.Errorf("EmulatorRegister(\"r1\") error = %v; want ErrUnsupportedRegister", err)
	}
	if _, err := d.EmulatorRegister("sp"); !errors.Is(err, ErrUnsupportedRegister) {
		t.Errorf("EmulatorRegister(\"sp\") error = %v; want ErrUnsupportedRegister", err)
	}
	if _, err := d.EmulatorRegister("f0"); !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("EmulatorRegister(\"f0\") error = %v; want ErrUnknownRegister", err)
	}
	if id, ok := d.Register("sp"); id != 1 || !ok {
		t.Errorf("Register(\"sp\") = %d, %t; want 1, true", id, ok)
	}
}

func TestResolverOverride(t *testing.T) {
	var gotBinary string
	d, err := Resolve(testRoot(), Fragment{
		Binaries: map[Tool]string{ToolQEMU: "qemu-system-ppc-board"},
		Resolvers: map[Tool]Resolver{
			ToolQEMU: func(ctx context.Context, cfg InstallConfig, tool Tool, binary string) (string, error) {
				gotBinary = binary
				return "/board/" + binary, nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Executable(context.Background(), ToolQEMU, nil)
	if want := "/board/qemu-system-ppc-board"; got != want || err != nil {
		t.Errorf("Executable(ctx, qemu, nil) = %q, %v; want %q, <nil>", got, err, want)
	}
	if gotBinary != "qemu-system-ppc-board" {
		t.Errorf("resolver received binary %q; want %q", gotBinary, "qemu-system-ppc-board")
	}
}
