// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package archdesc

import (
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Nullable wraps a [Fragment] field to distinguish "not overridden" from a zero value.
// The zero value is unset and serializes as JSON null.
type Nullable[T any] struct {
	X     T
	Valid bool
}

// NonNull returns a [Nullable] that wraps the given value.
func NonNull[T any](x T) Nullable[T] {
	return Nullable[T]{x, true}
}

// Or returns n.X if n is valid or def otherwise.
func (n Nullable[T]) Or(def T) T {
	if !n.Valid {
		return def
	}
	return n.X
}

// IsZero reports whether n is unset.
// It allows the "omitzero" JSON option to skip unset fields.
func (n Nullable[T]) IsZero() bool {
	return !n.Valid
}

// MarshalJSONTo encodes n.X if n.Valid is true.
// Otherwise, MarshalJSONTo writes a null token.
func (n Nullable[T]) MarshalJSONTo(enc *jsontext.Encoder) error {
	if !n.Valid {
		return enc.WriteToken(jsontext.Null)
	}
	return jsonv2.MarshalEncode(enc, n.X)
}

// UnmarshalJSONFrom unmarshals the next value from the JSON decoder into n.X
// unless it receives a JSON null, in which case n is zeroed out.
func (n *Nullable[T]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if dec.PeekKind() == 'n' {
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		*n = Nullable[T]{}
		return nil
	}
	err := jsonv2.UnmarshalDecode(dec, &n.X)
	n.Valid = err == nil
	return err
}
