// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package ranges provides positional markers over any kind of range described by the shapes
// package (slices, arrays, strings, shapes.Sequence and shapes.Chain), with one uniform API.
//
// A Range is one level of a nested value. A Pos is an immutable position within a Range (the
// equivalent of a raw iterator), from which one can read and write the element (Pos.Slot) or
// descend into it, if it is itself a range (Pos.Sub).
//
// Ranges and positions don't own the data: they are invalidated by structural changes (e.g.,
// appending to a slice) of the underlying value.
package ranges

import (
	"reflect"
	"unsafe"

	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Range is a traversable value: the top level of a nested value or one of its subranges.
//
// The zero Range is invalid. An empty placeholder Range for a type can be created with Empty.
type Range struct {
	desc  *shapes.Descriptor
	value reflect.Value
	seq   shapes.Sequence
	chain shapes.Chain

	// copied is set for arrays held by value, which have no address to identify them.
	copied *arrayCopy
}

// arrayCopy identifies an array held by value. Copies of a Range share it.
type arrayCopy struct {
	// from is the position the array was read from, if it is an element of another range.
	// Reading the same position again yields the same array.
	from *Pos
}

func (c *arrayCopy) same(o *arrayCopy) bool {
	if c == o {
		return true
	}
	return c.from != nil && o.from != nil && c.from.Equal(*o.from)
}

// Of returns the Range for the given value, which must be a range under the given classifier.
//
// To be able to write to arrays, pass a pointer to them: arrays passed by value are copies,
// and are read-only. Each call copies the array again, so positions of ranges from different
// calls are never equal, even with equal contents.
func Of(value any, classifier ...shapes.ScalarClassifier) (Range, error) {
	if value == nil {
		return Range{}, errors.Wrap(shapes.ErrNotRange, "ranges.Of(nil)")
	}
	v := reflect.ValueOf(value)
	desc, err := shapes.Describe(v.Type(), classifier...)
	if err != nil {
		return Range{}, err
	}
	if desc.IsScalar() {
		return Range{}, errors.Wrapf(shapes.ErrNotRange, "value of type %s is a scalar", v.Type())
	}
	return New(desc, v), nil
}

// New returns the Range for the value v of the type described by desc. Nil pointers, slices,
// sequences or chains are empty ranges.
//
// It panics if desc is not a range descriptor or v is not of the type of desc.
func New(desc *shapes.Descriptor, v reflect.Value) Range {
	if desc.IsScalar() {
		panic(errors.Wrapf(shapes.ErrNotRange, "ranges.New(%s)", desc))
	}
	if v.Type() != desc.Type {
		panic(errors.Errorf("ranges.New(%s): value of type %s given", desc, v.Type()))
	}
	for range desc.Indirect {
		if v.IsNil() {
			return Empty(desc)
		}
		v = v.Elem()
	}
	r := Range{desc: desc, value: v}
	switch desc.Kind {
	case shapes.KindArray:
		if !v.CanAddr() {
			r.copied = &arrayCopy{}
		}
	case shapes.KindSequence:
		if isNil(v) {
			return Empty(desc)
		}
		r.seq = v.Interface().(shapes.Sequence)
	case shapes.KindChain:
		if isNil(v) {
			return Empty(desc)
		}
		r.chain = v.Interface().(shapes.Chain)
	default:
	}
	return r
}

// Empty returns a placeholder Range for the type described by desc, with no elements.
func Empty(desc *shapes.Descriptor) Range {
	return Range{desc: desc}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// IsValid returns false for the zero Range.
func (r Range) IsValid() bool { return r.desc != nil }

// Descriptor of the range type.
func (r Range) Descriptor() *shapes.Descriptor { return r.desc }

// Dimensionality of the range.
func (r Range) Dimensionality() int { return r.desc.Dimensionality }

// Value returns the underlying value, after following pointers. It is invalid for empty placeholders.
func (r Range) Value() reflect.Value { return r.value }

// isPlaceholder returns whether the range has no underlying value.
func (r Range) isPlaceholder() bool {
	return !r.value.IsValid() && r.seq == nil && r.chain == nil
}

// Len returns the number of elements. For chains it walks the whole chain, unless the chain
// has a `Len() int` method.
func (r Range) Len() int {
	if r.isPlaceholder() {
		return 0
	}
	switch r.desc.Kind {
	case shapes.KindSequence:
		return r.seq.Len()
	case shapes.KindChain:
		if withLen, ok := r.chain.(interface{ Len() int }); ok {
			return withLen.Len()
		}
		n := 0
		for link := r.chain.Front(); link != nil; link = link.Next() {
			n++
		}
		return n
	default:
		return r.value.Len()
	}
}

// IsEmpty returns whether the range has no elements.
func (r Range) IsEmpty() bool {
	if r.desc != nil && r.desc.Kind == shapes.KindChain {
		return r.chain == nil || r.chain.Front() == nil
	}
	return r.Len() == 0
}

// Begin returns the position of the first element.
func (r Range) Begin() Pos {
	if r.desc.Kind == shapes.KindChain && r.chain != nil {
		return Pos{r: r, link: r.chain.Front()}
	}
	return Pos{r: r}
}

// End returns the position one past the last element.
func (r Range) End() Pos {
	if r.desc.Kind == shapes.KindChain {
		return Pos{r: r}
	}
	return Pos{r: r, idx: r.Len()}
}

// back returns the last link of a chain, or nil.
func (r Range) back() shapes.Link {
	if r.chain == nil {
		return nil
	}
	return r.chain.Back()
}

// Same returns whether r and o refer to the same underlying storage. Any two empty ranges
// are considered the same.
func (r Range) Same(o Range) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return r.IsEmpty() && o.IsEmpty()
	}
	if r.desc.Kind != o.desc.Kind {
		return false
	}
	switch r.desc.Kind {
	case shapes.KindSlice:
		return r.value.Type() == o.value.Type() && r.value.Pointer() == o.value.Pointer() && r.value.Len() == o.value.Len()
	case shapes.KindArray:
		if r.value.Type() != o.value.Type() {
			return false
		}
		if r.value.CanAddr() && o.value.CanAddr() {
			return r.value.UnsafeAddr() == o.value.UnsafeAddr()
		}
		if r.copied == nil || o.copied == nil {
			return false
		}
		// Arrays passed by value are distinct copies, even with equal contents, unless they
		// were read from the same position.
		return r.copied.same(o.copied)
	case shapes.KindString:
		rs, os := r.value.String(), o.value.String()
		return len(rs) == len(os) && unsafe.StringData(rs) == unsafe.StringData(os)
	case shapes.KindSequence:
		return sameInstance(r.seq, o.seq)
	case shapes.KindChain:
		return sameInstance(r.chain, o.chain)
	default:
		return false
	}
}

// sameInstance compares dynamic values with ==, if they are comparable.
func sameInstance(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
