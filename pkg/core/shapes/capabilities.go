// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "reflect"

// Sequence is implemented by random-access ranges whose elements are not addressable:
// reading yields a value, and writing goes through SetAt. A bit-packed sequence of bools
// is the typical example.
//
// ElemType must work on the zero value of the implementing type (a nil pointer, if the
// methods have pointer receivers), since it is used to introspect the type before any
// value is seen.
type Sequence interface {
	ElemType() reflect.Type
	Len() int
	At(i int) any
	SetAt(i int, value any)
}

// Chain is implemented by bidirectional ranges without random access, like linked lists.
//
// Front and Back return a nil interface (not a typed nil) for an empty chain, and Link.Next
// (Link.Prev) return a nil interface after the last (before the first) element.
//
// As with Sequence, ElemType must work on the zero value of the implementing type.
type Chain interface {
	ElemType() reflect.Type
	Front() Link
	Back() Link
}

// Link is one position of a Chain.
type Link interface {
	Next() Link
	Prev() Link
	Get() any
	Set(value any)
}

var (
	sequenceType = reflect.TypeOf((*Sequence)(nil)).Elem()
	chainType    = reflect.TypeOf((*Chain)(nil)).Elem()
)
