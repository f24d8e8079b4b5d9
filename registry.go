// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"zb.256lights.llc/archdesc/internal/system"
	"zb.256lights.llc/archdesc/sets"
)

// ErrUnknownDescriptor is returned by [Registry] lookups
// for names that are not registered.
var ErrUnknownDescriptor = errors.New("unknown architecture")

// Definition places a [Fragment] in the descriptor hierarchy.
type Definition struct {
	// Name is the name of the definition.
	// It overrides any name set in Fragment.
	Name string
	// Base is the name of the definition that Fragment overrides.
	// An empty Base makes the definition a family root.
	Base string
	// Abstract definitions are not registered as descriptors.
	// They exist only to be overridden.
	Abstract bool

	Fragment Fragment
}

// Registry is an immutable set of resolved descriptors.
// It is safe to call methods on a Registry from multiple goroutines.
type Registry struct {
	defs        map[string]*Definition
	order       []string
	descriptors map[string]*Descriptor
	chains      map[string][]string
	byTarget    map[string]string
}

// NewRegistry resolves the given definitions into a new registry.
// Bases must be defined in the same call.
// All problems with the definitions are reported together.
func NewRegistry(defs ...Definition) (*Registry, error) {
	return new(Registry).Extend(defs...)
}

// Extend returns a new registry that contains the definitions of r
// and the given definitions, which may use definitions in r as bases.
// r is not modified.
func (r *Registry) Extend(defs ...Definition) (*Registry, error) {
	r2 := &Registry{
		defs:        maps.Clone(r.defs),
		order:       slices.Clone(r.order),
		descriptors: maps.Clone(r.descriptors),
		chains:      maps.Clone(r.chains),
		byTarget:    maps.Clone(r.byTarget),
	}
	if r2.defs == nil {
		r2.defs = make(map[string]*Definition)
		r2.descriptors = make(map[string]*Descriptor)
		r2.chains = make(map[string][]string)
		r2.byTarget = make(map[string]string)
	}

	var errs []error
	var added []string
	for i := range defs {
		def := defs[i]
		def.Fragment = def.Fragment.clone()
		if def.Name == "" {
			errs = append(errs, fmt.Errorf("definition #%d: missing name", i+1))
			continue
		}
		if _, dup := r2.defs[def.Name]; dup {
			errs = append(errs, fmt.Errorf("define %s: name already defined", def.Name))
			continue
		}
		r2.defs[def.Name] = &def
		r2.order = append(r2.order, def.Name)
		added = append(added, def.Name)
	}

	for _, name := range added {
		chain, err := r2.chainOf(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("define %s: %w", name, err))
			continue
		}
		r2.chains[name] = chain
		def := r2.defs[name]
		if def.Abstract {
			continue
		}
		frags := make([]Fragment, 0, len(chain))
		for _, link := range chain {
			frags = append(frags, r2.defs[link].Fragment)
		}
		frags[len(frags)-1].Name = name
		d, err := Resolve(frags[0], frags[1:]...)
		if err != nil {
			errs = append(errs, fmt.Errorf("define %s: %w", name, err))
			continue
		}
		r2.descriptors[name] = d
		if t := d.targetArch; t != "" {
			if _, taken := r2.byTarget[t]; !taken {
				r2.byTarget[t] = name
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r2, nil
}

// chainOf returns the names of the definitions from the family root to name.
func (r *Registry) chainOf(name string) ([]string, error) {
	var chain []string
	seen := make(sets.Set[string])
	for curr := name; curr != ""; {
		if seen.Has(curr) {
			return nil, fmt.Errorf("base cycle through %s", curr)
		}
		seen.Add(curr)
		def := r.defs[curr]
		if def == nil {
			return nil, fmt.Errorf("base %s: %w", curr, ErrUnknownDescriptor)
		}
		chain = append(chain, curr)
		curr = def.Base
	}
	slices.Reverse(chain)
	return chain, nil
}

// Lookup returns the descriptor with the given name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d := r.descriptors[name]
	if d == nil {
		if def := r.defs[name]; def != nil && def.Abstract {
			return nil, fmt.Errorf("look up %s: abstract definition: %w", name, ErrUnknownDescriptor)
		}
		return nil, fmt.Errorf("look up %s: %w", name, ErrUnknownDescriptor)
	}
	return d, nil
}

// Names returns the names of the registered descriptors in definition order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for _, name := range r.order {
		if r.descriptors[name] != nil {
			names = append(names, name)
		}
	}
	return names
}

// All returns an iterator over the registered descriptors in definition order.
func (r *Registry) All() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for _, name := range r.order {
			if d := r.descriptors[name]; d != nil && !yield(d) {
				return
			}
		}
	}
}

// Chain returns the names of the definitions applied to build name,
// from the family root to name itself.
// Later definitions take precedence.
func (r *Registry) Chain(name string) ([]string, error) {
	chain, ok := r.chains[name]
	if !ok {
		return nil, fmt.Errorf("chain of %s: %w", name, ErrUnknownDescriptor)
	}
	return slices.Clone(chain), nil
}

// ForTriple returns the first registered descriptor
// whose target architecture matches the architecture of the target triple
// (e.g. "powerpc64le-unknown-linux-gnu" or "ppc64").
func (r *Registry) ForTriple(triple string) (*Descriptor, error) {
	arch := system.ParseArchitecture(triple)
	if arch.IsUnknown() {
		return nil, fmt.Errorf("look up %q: %w", triple, ErrUnknownDescriptor)
	}
	name, ok := r.byTarget[arch.String()]
	if !ok {
		return nil, fmt.Errorf("look up %q: no descriptor for %v: %w", triple, arch, ErrUnknownDescriptor)
	}
	return r.descriptors[name], nil
}

// ForHost returns the descriptor for the architecture of the running process.
func (r *Registry) ForHost() (*Descriptor, error) {
	return r.ForTriple(system.Current().String())
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(PowerPC()...)
})

// Default returns the registry of built-in descriptors.
// The registry is built on first use;
// an error indicates a defect in the built-in definitions.
func Default() (*Registry, error) {
	return defaultRegistry()
}

// Lookup returns the built-in descriptor with the given name.
func Lookup(name string) (*Descriptor, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	return r.Lookup(name)
}
