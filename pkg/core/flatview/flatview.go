// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package flatview presents a nested, possibly jagged, range as a flat sequence of its scalars.
//
// A View doesn't copy the data: it holds positions into the nested value, and iterates over
// the scalars in depth-first, left-to-right order, transparently skipping empty subranges.
// Scalars can be read and, if the underlying range allows it, written in place.
//
// Example:
//
//	rows := [][]int{{}, {1, 2, 3}, {4}, {}, {}, {5, 6}}
//	view := must.M1(flatview.Of[int](rows))
//	for i, v := range view.All() {
//		fmt.Printf("%d: %d\n", i, v) // Prints 0: 1, 1: 2, ... 5: 6.
//	}
package flatview

import (
	"cmp"
	"iter"
	"math"
	"reflect"

	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// View of the scalars of a nested range, as a flat sequence of T.
//
// T must be the scalar type of the range, or an interface type it implements.
//
// A View is valid as long as the underlying value is not structurally changed (e.g., by appending
// to one of its slices). Copying a View is a shallow copy: both copies share the underlying value.
type View[T any] struct {
	first, last ranges.Pos
	dims        int

	// Length is computed on demand, and cached.
	length    int
	hasLength bool
}

// Of returns a View over all the scalars of value, which must be a range under the given classifier.
func Of[T any](value any, classifier ...shapes.ScalarClassifier) (*View[T], error) {
	r, err := ranges.Of(value, classifier...)
	if err != nil {
		return nil, errors.WithMessage(err, "flatview.Of")
	}
	return New[T](r.Begin(), r.End())
}

// New returns a View over the scalars of the elements from first (inclusive) to last (exclusive),
// two positions of the same range.
//
// It returns an error wrapping shapes.ErrScalarType if T can't hold the scalars of the range.
func New[T any](first, last ranges.Pos) (*View[T], error) {
	desc := first.Range().Descriptor()
	if !first.Range().Same(last.Range()) {
		return nil, errors.Wrap(shapes.ErrUnrelatedIterators, "flatview.New: first and last are positions of different ranges")
	}
	if err := desc.CheckScalarType(reflect.TypeFor[T]()); err != nil {
		return nil, errors.WithMessage(err, "flatview.New")
	}
	if klog.V(3).Enabled() {
		klog.Infof("flatview: new view of %s", desc)
	}
	return &View[T]{first: first, last: last, dims: desc.Dimensionality}, nil
}

// Dimensionality of the underlying range.
func (v *View[T]) Dimensionality() int { return v.dims }

// Begin returns an iterator to the first scalar.
func (v *View[T]) Begin() *Iterator[T] { return makeBegin[T](v.first, v.last, v.dims) }

// End returns an iterator one past the last scalar.
func (v *View[T]) End() *Iterator[T] { return makeEnd[T](v.first, v.last, v.dims) }

// CBegin returns a read-only iterator to the first scalar.
func (v *View[T]) CBegin() *ConstIterator[T] { return &ConstIterator[T]{it: v.Begin()} }

// CEnd returns a read-only iterator one past the last scalar.
func (v *View[T]) CEnd() *ConstIterator[T] { return &ConstIterator[T]{it: v.End()} }

// RBegin returns a reverse iterator to the last scalar.
func (v *View[T]) RBegin() *ReverseIterator[T] { return &ReverseIterator[T]{base: v.End()} }

// REnd returns a reverse iterator one before the first scalar.
func (v *View[T]) REnd() *ReverseIterator[T] { return &ReverseIterator[T]{base: v.Begin()} }

// Front returns the first scalar. It panics with shapes.ErrOutOfBounds if the View is empty.
func (v *View[T]) Front() T { return v.Begin().Value() }

// Back returns the last scalar. It panics with shapes.ErrOutOfBounds if the View is empty.
func (v *View[T]) Back() T { return v.End().Prev().Value() }

// Iter returns an iterator to the n-th scalar. It takes n steps.
func (v *View[T]) Iter(n int) *Iterator[T] { return v.Begin().Advance(n) }

// At returns the n-th scalar. It panics with shapes.ErrOutOfBounds if n is out of range.
func (v *View[T]) At(n int) T { return v.Iter(n).Value() }

// SetAt sets the n-th scalar. It panics with shapes.ErrOutOfBounds if n is out of range.
func (v *View[T]) SetAt(n int, value T) { v.Iter(n).Set(value) }

// Len returns the number of scalars. It is computed by iterating over the View the first time,
// and cached.
func (v *View[T]) Len() int {
	if !v.hasLength {
		n := 0
		for it := v.Begin(); it.Valid(); it.Next() {
			n++
		}
		v.length, v.hasLength = n, true
	}
	return v.length
}

// Empty returns whether the View has no scalars, even if the underlying range has elements.
func (v *View[T]) Empty() bool { return !v.Begin().Valid() }

// MaxLen is the largest length a View can have.
func (v *View[T]) MaxLen() int { return math.MaxInt }

// Swap the contents of two views.
func (v *View[T]) Swap(other *View[T]) { *v, *other = *other, *v }

// All iterates over the index and value of each scalar, in order.
func (v *View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for it := v.Begin(); it.Valid(); it.Next() {
			if !yield(i, it.Value()) {
				return
			}
			i++
		}
	}
}

// Backward iterates over the index and value of each scalar, from the last to the first.
func (v *View[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := v.Len() - 1
		for it := v.End().Prev(); it.Valid(); it.Prev() {
			if !yield(i, it.Value()) {
				return
			}
			i--
		}
	}
}

// Values returns a copy of the scalars, in order.
func (v *View[T]) Values() []T {
	values := make([]T, 0, v.Len())
	for _, value := range v.All() {
		values = append(values, value)
	}
	return values
}

// AsSequence exposes the View as a shapes.Sequence of T, so it can be nested or viewed again.
//
// Access by index walks the View, so it takes linear time.
func (v *View[T]) AsSequence() shapes.Sequence { return &sequence[T]{view: v} }

type sequence[T any] struct {
	view *View[T]
}

var _ shapes.Sequence = (*sequence[int])(nil)

func (s *sequence[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }
func (s *sequence[T]) Len() int               { return s.view.Len() }
func (s *sequence[T]) At(i int) any           { return s.view.At(i) }

func (s *sequence[T]) SetAt(i int, value any) {
	t, _ := value.(T)
	s.view.SetAt(i, t)
}

// Equal returns whether both views have the same scalars.
func Equal[T comparable](a, b *View[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc returns whether both views have the same number of scalars, and eq returns true
// for each pair of them.
func EqualFunc[T any](a, b *View[T], eq func(T, T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	itB := b.Begin()
	for itA := a.Begin(); itA.Valid(); itA.Next() {
		if !eq(itA.Value(), itB.Value()) {
			return false
		}
		itB.Next()
	}
	return true
}

// Compare the scalars of both views lexicographically. It returns -1, 0 or +1.
func Compare[T cmp.Ordered](a, b *View[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc compares the scalars of both views lexicographically, using compare for each pair.
func CompareFunc[T any](a, b *View[T], compare func(T, T) int) int {
	itA, itB := a.Begin(), b.Begin()
	for ; itA.Valid() && itB.Valid(); itA, itB = itA.Next(), itB.Next() {
		if c := compare(itA.Value(), itB.Value()); c != 0 {
			return c
		}
	}
	switch {
	case itA.Valid():
		return 1
	case itB.Valid():
		return -1
	default:
		return 0
	}
}
