// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package multidim offers zero-copy views over nested, possibly jagged, Go values: slices of
// slices, arrays, strings, and user types implementing shapes.Sequence or shapes.Chain.
//
// Two views are offered:
//
//   - flatview.View: the scalars of the nested value as one flat sequence, skipping empty subranges.
//   - boxedview.View: the nested value as an N-dimensional hyperrectangle, with chosen bounds that can
//     crop it or pad it with a default value.
//
// This package is a thin entry point to the packages under pkg/core, plus a few introspection helpers.
//
// Example:
//
//	rows := [][]int{{1, 2}, {3}}
//	flat := must.M1(multidim.MakeFlatView[int](rows))       // 1, 2, 3
//	boxed := must.M1(multidim.MakeBoxedView(rows, 0, nil))  // {1, 2}, {3, 0}
package multidim

import (
	"reflect"

	"github.com/gomlx/multidim/pkg/core/boxedview"
	"github.com/gomlx/multidim/pkg/core/flatview"
	"github.com/gomlx/multidim/pkg/core/geometry"
	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// ScalarClassifier decides which types are leaves, even if they could be traversed. See shapes.ScalarClassifier.
type ScalarClassifier = shapes.ScalarClassifier

// StringsAsScalars is a ScalarClassifier that treats strings as leaves, instead of ranges of bytes.
type StringsAsScalars = shapes.StringsAsScalars

// ClassifierFunc adapts a function to a ScalarClassifier.
type ClassifierFunc = shapes.ClassifierFunc

// TypesAsScalars returns a ScalarClassifier that treats the given types as leaves.
func TypesAsScalars(types ...reflect.Type) ScalarClassifier { return shapes.TypesAsScalars(types...) }

// Sentinel errors, re-exported from package shapes.
var (
	ErrOutOfBounds        = shapes.ErrOutOfBounds
	ErrShapeMismatch      = shapes.ErrShapeMismatch
	ErrBoundsMismatch     = shapes.ErrBoundsMismatch
	ErrUnrelatedIterators = shapes.ErrUnrelatedIterators
	ErrNotRange           = shapes.ErrNotRange
	ErrScalarType         = shapes.ErrScalarType
	ErrReadOnly           = shapes.ErrReadOnly
	ErrRecursiveType      = shapes.ErrRecursiveType
)

// MakeFlatView returns a flat view over all the scalars of nested.
func MakeFlatView[T any](nested any, classifier ...ScalarClassifier) (*flatview.View[T], error) {
	return flatview.Of[T](nested, classifier...)
}

// MakeFlatViewRange returns a flat view over the scalars of the elements from first (inclusive)
// to last (exclusive) of a range.
func MakeFlatViewRange[T any](first, last ranges.Pos) (*flatview.View[T], error) {
	return flatview.New[T](first, last)
}

// MakeBoxedView returns a view of nested as a hyperrectangle with the given bounds, padded with
// defaultValue. If bounds is nil, the natural bounds of nested are used.
func MakeBoxedView[T any](nested any, defaultValue T, bounds []int, classifier ...ScalarClassifier) (*boxedview.View[T], error) {
	return boxedview.Of(nested, defaultValue, bounds, classifier...)
}

// describe returns the descriptor of the type of value.
func describe(value any, classifier []ScalarClassifier) (*shapes.Descriptor, error) {
	if value == nil {
		return nil, errors.Wrap(shapes.ErrNotRange, "nil value has no type")
	}
	return shapes.Describe(reflect.TypeOf(value), classifier...)
}

// Dimensionality returns the nesting depth of the type of value: 0 for scalars.
func Dimensionality(value any, classifier ...ScalarClassifier) (int, error) {
	desc, err := describe(value, classifier)
	if err != nil {
		return 0, err
	}
	return desc.Dimensionality, nil
}

// DimensionalityOf returns the nesting depth of the type T. It panics for malformed types.
func DimensionalityOf[T any](classifier ...ScalarClassifier) int {
	return shapes.Dimensionality(reflect.TypeFor[T](), classifier...)
}

// ScalarType returns the type at the bottom of the nesting of value's type.
func ScalarType(value any, classifier ...ScalarClassifier) (reflect.Type, error) {
	desc, err := describe(value, classifier)
	if err != nil {
		return nil, err
	}
	return desc.Scalar, nil
}

// ScalarTypeOf returns the type at the bottom of the nesting of T. It panics for malformed types.
func ScalarTypeOf[T any](classifier ...ScalarClassifier) reflect.Type {
	return shapes.ScalarType(reflect.TypeFor[T](), classifier...)
}

// Bounds returns the natural bounds of value: for each dimension the largest length of its subranges.
// Scalars have empty bounds.
func Bounds(value any, classifier ...ScalarClassifier) ([]int, error) {
	g, err := geometry.Of(value, classifier...)
	if err != nil {
		return nil, err
	}
	return g.Bounds, nil
}

// ScalarSize returns the number of scalars physically present in value.
func ScalarSize(value any, classifier ...ScalarClassifier) (int, error) {
	g, err := geometry.Of(value, classifier...)
	if err != nil {
		return 0, err
	}
	return g.NumScalars, nil
}
