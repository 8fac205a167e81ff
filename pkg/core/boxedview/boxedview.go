// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package boxedview presents a nested, possibly jagged, range as an N-dimensional hyperrectangle.
//
// The bounds of the hyperrectangle (the "apparent bounds") are chosen independently of the data:
// by default they are the natural bounds of the range (see package geometry), but they can crop
// or pad it. Reading a position beyond the physical data returns a default value, and writing to
// it is silently ignored. Reading or writing beyond the apparent bounds panics with an error
// wrapping shapes.ErrOutOfBounds.
//
// Example:
//
//	rows := [][]int{{1, 2}, {3}}
//	view := must.M1(boxedview.Of(rows, 99, []int{3, 3}))
//	fmt.Println(view.Get(1, 0), view.Get(1, 1), view.Get(2, 2)) // Prints 3 99 99
package boxedview

import (
	"cmp"
	"iter"
	"math"
	"reflect"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/multidim/pkg/core/geometry"
	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/gomlx/multidim/pkg/support/xslices"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// View of a nested range as a hyperrectangle of scalars of type T.
//
// T must be the scalar type of the range, or an interface type it implements.
//
// The View owns its default value and its bounds, but not the underlying range: it is valid as
// long as the underlying value is not structurally changed.
type View[T any] struct {
	first, last  ranges.Pos
	defaultValue T
	bounds       []int
}

// Of returns a View over value, which must be a range under the given classifier.
//
// If bounds is empty, the natural bounds of value are used. Otherwise, it must have one
// non-negative bound per dimension of value, or an error wrapping shapes.ErrBoundsMismatch is returned.
func Of[T any](value any, defaultValue T, bounds []int, classifier ...shapes.ScalarClassifier) (*View[T], error) {
	r, err := ranges.Of(value, classifier...)
	if err != nil {
		return nil, errors.WithMessage(err, "boxedview.Of")
	}
	return New(r.Begin(), r.End(), defaultValue, bounds)
}

// New returns a View over the elements from first (inclusive) to last (exclusive) of a range.
// See Of for the bounds.
func New[T any](first, last ranges.Pos, defaultValue T, bounds []int) (*View[T], error) {
	if !first.Range().Same(last.Range()) {
		return nil, errors.Wrap(shapes.ErrUnrelatedIterators, "boxedview.New: first and last are positions of different ranges")
	}
	desc := first.Range().Descriptor()
	if err := desc.CheckScalarType(reflect.TypeFor[T]()); err != nil {
		return nil, errors.WithMessage(err, "boxedview.New")
	}
	if len(bounds) == 0 {
		g, err := geometry.ComputeRange(first, last)
		if err != nil {
			return nil, errors.WithMessage(err, "boxedview.New: computing natural bounds")
		}
		bounds = g.Bounds
	} else {
		if len(bounds) != desc.Dimensionality {
			return nil, errors.Wrapf(shapes.ErrBoundsMismatch, "boxedview.New: %d bounds given for range of dimensionality %d",
				len(bounds), desc.Dimensionality)
		}
		if slices.Min(bounds) < 0 {
			return nil, errors.Wrapf(shapes.ErrBoundsMismatch, "boxedview.New: negative bounds %v", bounds)
		}
		bounds = slices.Clone(bounds)
	}
	if klog.V(3).Enabled() {
		klog.Infof("boxedview: new view with bounds %v of %s", bounds, desc)
	}
	return &View[T]{first: first, last: last, defaultValue: defaultValue, bounds: bounds}, nil
}

// Dimensionality of the View.
func (v *View[T]) Dimensionality() int { return len(v.bounds) }

// Bounds returns a copy of the apparent bounds.
func (v *View[T]) Bounds() []int { return slices.Clone(v.bounds) }

// Default value of positions beyond the physical data.
func (v *View[T]) Default() T { return v.defaultValue }

// Len is the apparent bound of the first dimension.
func (v *View[T]) Len() int { return v.bounds[0] }

// Empty returns whether the View has no elements.
func (v *View[T]) Empty() bool { return v.bounds[0] == 0 }

// MaxLen is the largest length a View can have.
func (v *View[T]) MaxLen() int { return math.MaxInt }

// NumCells is the number of scalars of the View, physical or filled: the product of the bounds.
func (v *View[T]) NumCells() int { return xslices.Product(v.bounds) }

// Clone returns a shallow copy of the View: the underlying range is shared, the bounds and
// default value are copied.
func (v *View[T]) Clone() *View[T] {
	clone := *v
	clone.bounds = slices.Clone(v.bounds)
	return &clone
}

// Swap the contents of two views.
func (v *View[T]) Swap(other *View[T]) { *v, *other = *other, *v }

// Begin returns an iterator at the first element of the first dimension.
func (v *View[T]) Begin() *Iterator[T] {
	return makeBegin(v.first, v.last, &v.defaultValue, v.bounds)
}

// End returns an iterator one past the last element of the first dimension.
func (v *View[T]) End() *Iterator[T] {
	return makeEnd(v.first, v.last, &v.defaultValue, v.bounds)
}

// Index returns an iterator over the i-th element of the first dimension, one dimension down.
// It requires a Dimensionality() > 1.
func (v *View[T]) Index(i int) *Iterator[T] { return v.Begin().Advance(i).Sub() }

// Cell returns the proxy to the i-th scalar. It requires a Dimensionality() == 1.
func (v *View[T]) Cell(i int) ScalarProxy[T] { return v.Begin().Advance(i).Proxy() }

// At returns the proxy to the scalar at the given coordinates, one per dimension.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if any coordinate is outside the apparent bounds.
func (v *View[T]) At(coords ...int) ScalarProxy[T] {
	if len(coords) != len(v.bounds) {
		panic(errors.Wrapf(shapes.ErrBoundsMismatch, "boxedview: %d coordinates given for view of dimensionality %d",
			len(coords), len(v.bounds)))
	}
	it := v.Begin()
	for _, coord := range coords[:len(coords)-1] {
		it = it.Advance(coord).Sub()
	}
	return it.Advance(coords[len(coords)-1]).Proxy()
}

// Get returns the scalar at the given coordinates, or the default value if it is beyond the physical data.
func (v *View[T]) Get(coords ...int) T { return v.At(coords...).Get() }

// Set the scalar at the given coordinates. It is a no-op if the coordinates are beyond the physical data.
func (v *View[T]) Set(value T, coords ...int) { v.At(coords...).Set(value) }

// Front returns the proxy to the first scalar, at coordinates (0, 0, ...).
func (v *View[T]) Front() ScalarProxy[T] {
	return v.At(make([]int, len(v.bounds))...)
}

// Back returns the proxy to the last scalar, at coordinates (bounds[0]-1, bounds[1]-1, ...).
func (v *View[T]) Back() ScalarProxy[T] {
	coords := make([]int, len(v.bounds))
	for dim, bound := range v.bounds {
		coords[dim] = bound - 1
	}
	return v.At(coords...)
}

// All iterates over the coordinates and proxies of all the scalars, physical or filled, in row-major order.
//
// The coordinates slice is owned by the iteration and reused: don't change or keep it.
func (v *View[T]) All() iter.Seq2[[]int, ScalarProxy[T]] {
	return func(yield func([]int, ScalarProxy[T]) bool) {
		coords := make([]int, len(v.bounds))
		var walk func(it *Iterator[T], dim int) bool
		walk = func(it *Iterator[T], dim int) bool {
			for i := range it.Len() {
				coords[dim] = i
				if dim == len(coords)-1 {
					if !yield(coords, it.Proxy()) {
						return false
					}
				} else if !walk(it.Sub(), dim+1) {
					return false
				}
				it.Next()
			}
			return true
		}
		walk(v.Begin(), 0)
	}
}

// Values returns a copy of all the scalars, physical or filled, in row-major order.
func (v *View[T]) Values() []T {
	values := xslices.SliceWithValue(v.NumCells(), v.defaultValue)
	i := 0
	for _, proxy := range v.All() {
		if proxy.Physical() {
			values[i] = proxy.Get()
		}
		i++
	}
	return values
}

// Cells exposes the View as a one-dimensional shapes.Sequence of its NumCells() scalars, in
// row-major order. Writes to filled positions are ignored.
//
// It can be used to build a flat view of the hyperrectangle, padding included.
func (v *View[T]) Cells() shapes.Sequence {
	return &cells[T]{view: v, strides: geometry.Strides(v.bounds)}
}

type cells[T any] struct {
	view    *View[T]
	strides []int
}

var _ shapes.Sequence = (*cells[int])(nil)

func (c *cells[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }
func (c *cells[T]) Len() int               { return c.view.NumCells() }

func (c *cells[T]) At(i int) any {
	return c.proxy(i).Get()
}

func (c *cells[T]) SetAt(i int, value any) {
	t, _ := value.(T)
	c.proxy(i).Set(t)
}

func (c *cells[T]) proxy(i int) ScalarProxy[T] {
	if i < 0 || i >= c.Len() {
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "boxedview: cell %d of %d", i, c.Len()))
	}
	return c.view.At(geometry.Unflatten(i, c.strides, nil)...)
}

// Equal returns whether both views have the same bounds and the same scalars, physical or filled.
func Equal[T comparable](a, b *View[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc returns whether both views have the same bounds, and eq returns true for each pair
// of their scalars.
func EqualFunc[T any](a, b *View[T], eq func(T, T) bool) bool {
	if !slices.Equal(a.bounds, b.bounds) {
		return false
	}
	next, stop := iter.Pull2(b.All())
	defer stop()
	for _, proxyA := range a.All() {
		_, proxyB, ok := next()
		if !ok || !eq(proxyA.Get(), proxyB.Get()) {
			return false
		}
	}
	return true
}

// Compare the scalars of both views lexicographically, in row-major order. It returns -1, 0 or +1.
func Compare[T cmp.Ordered](a, b *View[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc compares the scalars of both views lexicographically, in row-major order, using
// compare for each pair.
func CompareFunc[T any](a, b *View[T], compare func(T, T) int) int {
	next, stop := iter.Pull2(b.All())
	defer stop()
	for _, proxyA := range a.All() {
		_, proxyB, ok := next()
		if !ok {
			return 1
		}
		if c := compare(proxyA.Get(), proxyB.Get()); c != 0 {
			return c
		}
	}
	if _, _, ok := next(); ok {
		return -1
	}
	return 0
}

// mustHaveDims panics if the view doesn't have the given dimensionality.
func (v *View[T]) mustHaveDims(dims int) {
	if len(v.bounds) != dims {
		exceptions.Panicf("boxedview: view of dimensionality %d, expected %d", len(v.bounds), dims)
	}
}

// Rows returns the values of a 2-dimensional View, one slice per row.
// It panics if the View is not 2-dimensional.
func (v *View[T]) Rows() [][]T {
	v.mustHaveDims(2)
	rows := make([][]T, 0, v.bounds[0])
	for it := v.Begin(); it.Valid(); it.Next() {
		row := make([]T, 0, v.bounds[1])
		for cell := it.Sub(); cell.Valid(); cell.Next() {
			row = append(row, cell.Proxy().Get())
		}
		rows = append(rows, row)
	}
	return rows
}
