// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"zb.256lights.llc/archdesc/capstone"
	"zb.256lights.llc/archdesc/internal/xmaps"
	"zb.256lights.llc/archdesc/keystone"
	"zb.256lights.llc/archdesc/sets"
	"zb.256lights.llc/archdesc/unicorn"
)

// ErrMalformedDescriptor is wrapped by every error that [Resolve] returns
// for an inconsistent descriptor.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

// Fragment is a partial descriptor.
// A family root fragment defines the full register model and default selectors;
// override fragments set only the fields they change.
//
// Scalar fields replace the accumulated value when they are valid.
// Registers, Aliases, EmulatorRegisters, Binaries, and Resolvers
// are merged key by key: new keys are added, existing keys are replaced,
// and keys the fragment does not mention are kept.
type Fragment struct {
	// Name is the name of the resolved descriptor.
	// The last non-empty Name in a chain wins.
	Name string `json:"name,omitempty"`

	Family     Nullable[string]     `json:"family,omitzero"`
	TargetArch Nullable[string]     `json:"targetArch,omitzero"`
	Bits       Nullable[int]        `json:"bits,omitzero"`
	Endianness Nullable[Endianness] `json:"endianness,omitzero"`

	// Registers is merged in order:
	// a replaced register keeps its original position
	// and new registers are appended.
	Registers         []Register             `json:"registers,omitempty"`
	Aliases           map[string]string      `json:"aliases,omitempty"`
	EmulatorRegisters map[string]unicorn.Reg `json:"emulatorRegisters,omitempty"`
	PCRegister        Nullable[string]       `json:"pc,omitzero"`
	StatusRegister    Nullable[string]       `json:"sr,omitzero"`

	CapstoneArch Nullable[capstone.Arch] `json:"capstoneArch,omitzero"`
	CapstoneMode Nullable[capstone.Mode] `json:"capstoneMode,omitzero"`
	KeystoneArch Nullable[keystone.Arch] `json:"keystoneArch,omitzero"`
	KeystoneMode Nullable[keystone.Mode] `json:"keystoneMode,omitzero"`
	UnicornArch  Nullable[unicorn.Arch]  `json:"unicornArch,omitzero"`
	UnicornMode  Nullable[unicorn.Mode]  `json:"unicornMode,omitzero"`
	GDBName      Nullable[string]        `json:"gdbName,omitzero"`
	QEMUName     Nullable[string]        `json:"qemuName,omitzero"`

	// Binaries maps a tool to the default binary identifier
	// passed to the tool's resolver.
	Binaries  map[Tool]string   `json:"binaries,omitempty"`
	Resolvers map[Tool]Resolver `json:"-"`
}

// clone returns a copy of f that shares no slices or maps with f.
func (f Fragment) clone() Fragment {
	f.Registers = slices.Clone(f.Registers)
	f.Aliases = maps.Clone(f.Aliases)
	f.EmulatorRegisters = maps.Clone(f.EmulatorRegisters)
	f.Binaries = maps.Clone(f.Binaries)
	f.Resolvers = maps.Clone(f.Resolvers)
	return f
}

// Resolve builds a descriptor by applying chain to root in order.
// Resolve is deterministic and does not retain or modify its arguments.
// If the resulting descriptor is inconsistent,
// then Resolve returns an error for which
// errors.Is(err, ErrMalformedDescriptor) reports true.
func Resolve(root Fragment, chain ...Fragment) (*Descriptor, error) {
	b := &builder{d: new(Descriptor)}
	b.apply(&root)
	for i := range chain {
		b.apply(&chain[i])
	}
	return b.finish()
}

// builder accumulates fragments into a descriptor.
type builder struct {
	d    *Descriptor
	errs []error
}

func (b *builder) apply(f *Fragment) {
	d := b.d
	if f.Name != "" {
		d.name = f.Name
	}
	set(&d.family, f.Family)
	set(&d.targetArch, f.TargetArch)
	set(&d.bits, f.Bits)
	set(&d.endian, f.Endianness)

	seen := make(sets.Set[string], len(f.Registers))
	for _, r := range f.Registers {
		if seen.Has(r.Name) {
			b.errorf("register %q listed twice in one fragment", r.Name)
			continue
		}
		seen.Add(r.Name)
		if d.regIDs == nil {
			d.regIDs = make(map[string]int)
		}
		if _, exists := d.regIDs[r.Name]; !exists {
			d.regNames = append(d.regNames, r.Name)
		}
		d.regIDs[r.Name] = r.ID
	}
	d.aliases = xmaps.Overlay(d.aliases, f.Aliases)
	d.emuRegs = xmaps.Overlay(d.emuRegs, f.EmulatorRegisters)
	set(&d.pc, f.PCRegister)
	set(&d.sr, f.StatusRegister)

	set(&d.csArch, f.CapstoneArch)
	set(&d.csMode, f.CapstoneMode)
	set(&d.ksArch, f.KeystoneArch)
	set(&d.ksMode, f.KeystoneMode)
	set(&d.ucArch, f.UnicornArch)
	set(&d.ucMode, f.UnicornMode)
	set(&d.gdbName, f.GDBName)
	set(&d.qemuName, f.QEMUName)

	d.binaries = xmaps.Overlay(d.binaries, f.Binaries)
	d.resolvers = xmaps.Overlay(d.resolvers, f.Resolvers)
}

func set[T any](dst *T, src Nullable[T]) {
	*dst = src.Or(*dst)
}

func (b *builder) errorf(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

func (b *builder) finish() (*Descriptor, error) {
	b.validate()
	if len(b.errs) > 0 {
		name := b.d.name
		if name == "" {
			name = "<unnamed>"
		}
		return nil, fmt.Errorf("descriptor %s: %w: %w", name, ErrMalformedDescriptor, errors.Join(b.errs...))
	}
	return b.d, nil
}
