// Copyright 2024 Roxy Light
// SPDX-License-Identifier: MIT

// Package xiter provides various functions useful with iterators of any type.
package xiter

import "iter"

// Chain returns an [iter.Seq] that is the logical concatenation of the provided iterators.
func Chain[T any](iterators ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, it := range iterators {
			for x := range it {
				if !yield(x) {
					return
				}
			}
		}
	}
}
