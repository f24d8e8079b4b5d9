// Copyright 2024 Roxy Light
// SPDX-License-Identifier: MIT

// Package sets provides a generic set type.
package sets

// Set is an unordered set with O(1) lookup and insertion.
// The zero value is an empty set that can be read but not added to.
type Set[T comparable] map[T]struct{}

// Add adds the arguments to the set.
func (s Set[T]) Add(elem ...T) {
	for _, x := range elem {
		s[x] = struct{}{}
	}
}

// Has reports whether the set contains x.
func (s Set[T]) Has(x T) bool {
	_, present := s[x]
	return present
}
