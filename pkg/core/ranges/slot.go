// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ranges

import (
	"reflect"

	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Slot is the uniform read/write accessor to one element of a range.
//
// Slices (and addressable arrays) yield addressable slots; sequences and chains yield
// value slots, read and written through their methods; strings yield read-only bytes.
type Slot struct {
	v        reflect.Value
	seq      shapes.Sequence
	idx      int
	link     shapes.Link
	elemType reflect.Type
}

// Type of the element.
func (s Slot) Type() reflect.Type { return s.elemType }

// Get returns the element.
func (s Slot) Get() reflect.Value {
	var elem any
	switch {
	case s.v.IsValid():
		return s.v
	case s.seq != nil:
		elem = s.seq.At(s.idx)
	default:
		elem = s.link.Get()
	}
	if elem == nil {
		return reflect.Zero(s.elemType)
	}
	return reflect.ValueOf(elem)
}

// CanSet returns whether Set is allowed. Sequences and chains are always assumed writable.
func (s Slot) CanSet() bool {
	if s.v.IsValid() {
		return s.v.CanSet()
	}
	return true
}

// Set the element. It panics with ErrReadOnly if the slot can't be set.
func (s Slot) Set(value reflect.Value) {
	switch {
	case s.v.IsValid():
		if !s.v.CanSet() {
			panic(errors.Wrapf(shapes.ErrReadOnly, "element of type %s is not addressable", s.elemType))
		}
		if !value.IsValid() {
			s.v.SetZero()
			return
		}
		s.v.Set(value)
	case s.seq != nil:
		s.seq.SetAt(s.idx, interfaceOf(value))
	default:
		s.link.Set(interfaceOf(value))
	}
}

func interfaceOf(value reflect.Value) any {
	if !value.IsValid() {
		return nil
	}
	return value.Interface()
}

// Addr returns the address of the element, or an invalid reflect.Value if the slot is not addressable.
func (s Slot) Addr() reflect.Value {
	if s.v.IsValid() && s.v.CanAddr() {
		return s.v.Addr()
	}
	return reflect.Value{}
}

// Load reads the slot as a T, which must be the element type or an interface it implements.
func Load[T any](s Slot) T {
	v, _ := s.Get().Interface().(T)
	return v
}

// Store writes value to the slot. T must be the element type, or an interface whose dynamic
// value is of the element type.
func Store[T any](s Slot, value T) {
	v := reflect.ValueOf(&value).Elem()
	if v.Kind() == reflect.Interface {
		// Store the dynamic value (or the zero value for nil).
		v = v.Elem()
	}
	s.Set(v)
}

// Pointer returns a pointer to the element if the slot is addressable and the element type is T.
// Otherwise, it returns nil.
func Pointer[T any](s Slot) *T {
	addr := s.Addr()
	if !addr.IsValid() || s.elemType != reflect.TypeFor[T]() {
		return nil
	}
	return addr.Interface().(*T)
}
