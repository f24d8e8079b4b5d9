// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package archdesc provides a registry of instruction set architecture descriptors.
//
// A [Descriptor] is the canonical model of one architecture variant:
// its registers, byte order and address width,
// along with the selector values that each integrated backend
// (the Capstone disassembler, the Keystone assembler, the Unicorn emulator,
// GDB and QEMU) needs to operate on that variant.
// Descriptors are built by [Resolve] from a family root [Fragment]
// and an ordered chain of override fragments,
// and are looked up by name through a [Registry].
// Descriptors are immutable and safe for concurrent use.
package archdesc

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"zb.256lights.llc/archdesc/capstone"
	"zb.256lights.llc/archdesc/keystone"
	"zb.256lights.llc/archdesc/unicorn"
)

// Errors returned by [Descriptor] methods.
var (
	// ErrUnknownRegister is returned for names that are neither
	// a canonical register nor an alias of one.
	ErrUnknownRegister = errors.New("unknown register")
	// ErrUnsupportedRegister is returned when a backend has no equivalent
	// for a canonical register.
	ErrUnsupportedRegister = errors.New("register unsupported by backend")
)

// Endianness is the byte order of an architecture variant.
// The zero value is not a valid byte order.
type Endianness int8

// [Endianness] values.
const (
	BigEndian Endianness = 1 + iota
	LittleEndian
)

// String returns "big" or "little".
func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("Endianness(%d)", int8(e))
	}
}

// MarshalText returns the same value as [Endianness.String]
// or an error if e is not a valid byte order.
func (e Endianness) MarshalText() ([]byte, error) {
	if e != BigEndian && e != LittleEndian {
		return nil, fmt.Errorf("marshal endianness: invalid value %d", int8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText parses "big" or "little".
func (e *Endianness) UnmarshalText(text []byte) error {
	switch string(text) {
	case "big":
		*e = BigEndian
	case "little":
		*e = LittleEndian
	default:
		return fmt.Errorf("unmarshal endianness: unknown value %q", text)
	}
	return nil
}

// Register is a canonical register name paired with its canonical identifier.
type Register struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Descriptor is a fully resolved architecture variant.
// Use [Resolve] or a [Registry] to obtain one.
type Descriptor struct {
	name       string
	family     string
	targetArch string
	bits       int
	endian     Endianness

	regNames []string
	regIDs   map[string]int
	aliases  map[string]string
	emuRegs  map[string]unicorn.Reg
	pc       string
	sr       string

	csArch   capstone.Arch
	csMode   capstone.Mode
	ksArch   keystone.Arch
	ksMode   keystone.Mode
	ucArch   unicorn.Arch
	ucMode   unicorn.Mode
	gdbName  string
	qemuName string

	binaries  map[Tool]string
	resolvers map[Tool]Resolver
}

// Name returns the descriptor's registry name (e.g. "ppc64-le").
func (d *Descriptor) Name() string { return d.name }

// Family returns the name of the architecture family (e.g. "ppc").
func (d *Descriptor) Family() string { return d.family }

// TargetArch returns the architecture component of target triples
// that correspond to the descriptor (e.g. "powerpc64le"),
// or the empty string if the descriptor does not claim one.
func (d *Descriptor) TargetArch() string { return d.targetArch }

// Bits returns the address width in bits.
func (d *Descriptor) Bits() int { return d.bits }

// Endianness returns the byte order of the variant.
func (d *Descriptor) Endianness() Endianness { return d.endian }

// String returns the descriptor's name.
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.name
}

// Registers returns an iterator over the canonical registers in definition order.
func (d *Descriptor) Registers() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range d.regNames {
			if !yield(name, d.regIDs[name]) {
				return
			}
		}
	}
}

// NumRegisters returns the number of canonical registers.
func (d *Descriptor) NumRegisters() int {
	return len(d.regNames)
}

// Canonical returns the canonical register name for name,
// following an alias if necessary.
func (d *Descriptor) Canonical(name string) (string, bool) {
	if _, ok := d.regIDs[name]; ok {
		return name, true
	}
	if target, ok := d.aliases[name]; ok {
		return target, true
	}
	return "", false
}

// Register returns the canonical identifier of the named register.
// name may be a canonical name or an alias.
func (d *Descriptor) Register(name string) (id int, ok bool) {
	canon, ok := d.Canonical(name)
	if !ok {
		return 0, false
	}
	return d.regIDs[canon], true
}

// Aliases returns an iterator over alias names and their canonical targets,
// sorted by alias.
func (d *Descriptor) Aliases() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, alias := range slices.Sorted(maps.Keys(d.aliases)) {
			if !yield(alias, d.aliases[alias]) {
				return
			}
		}
	}
}

// PCRegister returns the canonical name of the program counter.
func (d *Descriptor) PCRegister() string { return d.pc }

// StatusRegister returns the canonical name of the status register.
func (d *Descriptor) StatusRegister() string { return d.sr }

// EmulatorRegister translates a register name into the emulator's identifier.
// If name does not name a register of d,
// then errors.Is(err, ErrUnknownRegister) reports true.
// If the emulator has no equivalent register,
// then errors.Is(err, ErrUnsupportedRegister) reports true.
func (d *Descriptor) EmulatorRegister(name string) (unicorn.Reg, error) {
	canon, ok := d.Canonical(name)
	if !ok {
		return unicorn.PPCRegInvalid, fmt.Errorf("%s: %q: %w", d.name, name, ErrUnknownRegister)
	}
	reg, ok := d.emuRegs[canon]
	if !ok {
		return unicorn.PPCRegInvalid, fmt.Errorf("%s: %q: %w", d.name, name, ErrUnsupportedRegister)
	}
	return reg, nil
}

// Capstone returns the disassembler's architecture and mode selectors.
func (d *Descriptor) Capstone() (capstone.Arch, capstone.Mode) { return d.csArch, d.csMode }

// Keystone returns the assembler's architecture and mode selectors.
func (d *Descriptor) Keystone() (keystone.Arch, keystone.Mode) { return d.ksArch, d.ksMode }

// Unicorn returns the emulator's architecture and mode selectors.
func (d *Descriptor) Unicorn() (unicorn.Arch, unicorn.Mode) { return d.ucArch, d.ucMode }

// GDBName returns the architecture name passed to GDB's "set architecture".
func (d *Descriptor) GDBName() string { return d.gdbName }

// QEMUName returns the QEMU target name (e.g. "ppc64").
func (d *Descriptor) QEMUName() string { return d.qemuName }

// Binary returns the default binary identifier for the given tool.
func (d *Descriptor) Binary(tool Tool) (string, bool) {
	b, ok := d.binaries[tool]
	return b, ok
}

// Tools returns the tools the descriptor binds a resolver for, in sorted order.
func (d *Descriptor) Tools() []Tool {
	return slices.Sorted(maps.Keys(d.resolvers))
}

// Info is a plain-data snapshot of a [Descriptor].
// Two resolutions of the same definition produce equal Info values.
type Info struct {
	Name              string                 `json:"name"`
	Family            string                 `json:"family"`
	TargetArch        string                 `json:"targetArch,omitempty"`
	Bits              int                    `json:"bits"`
	Endianness        Endianness             `json:"endianness"`
	Registers         []Register             `json:"registers"`
	Aliases           map[string]string      `json:"aliases,omitempty"`
	EmulatorRegisters map[string]unicorn.Reg `json:"emulatorRegisters"`
	PCRegister        string                 `json:"pc"`
	StatusRegister    string                 `json:"sr"`
	CapstoneArch      capstone.Arch          `json:"capstoneArch"`
	CapstoneMode      capstone.Mode          `json:"capstoneMode"`
	KeystoneArch      keystone.Arch          `json:"keystoneArch"`
	KeystoneMode      keystone.Mode          `json:"keystoneMode"`
	UnicornArch       unicorn.Arch           `json:"unicornArch"`
	UnicornMode       unicorn.Mode           `json:"unicornMode"`
	GDBName           string                 `json:"gdbName"`
	QEMUName          string                 `json:"qemuName"`
	Binaries          map[Tool]string        `json:"binaries"`
}

// Info returns a snapshot of d's fields.
// The returned value does not alias d's internal state.
func (d *Descriptor) Info() *Info {
	info := &Info{
		Name:              d.name,
		Family:            d.family,
		TargetArch:        d.targetArch,
		Bits:              d.bits,
		Endianness:        d.endian,
		Registers:         make([]Register, 0, len(d.regNames)),
		Aliases:           maps.Clone(d.aliases),
		EmulatorRegisters: maps.Clone(d.emuRegs),
		PCRegister:        d.pc,
		StatusRegister:    d.sr,
		CapstoneArch:      d.csArch,
		CapstoneMode:      d.csMode,
		KeystoneArch:      d.ksArch,
		KeystoneMode:      d.ksMode,
		UnicornArch:       d.ucArch,
		UnicornMode:       d.ucMode,
		GDBName:           d.gdbName,
		QEMUName:          d.qemuName,
		Binaries:          maps.Clone(d.binaries),
	}
	for name, id := range d.Registers() {
		info.Registers = append(info.Registers, Register{Name: name, ID: id})
	}
	return info
}
