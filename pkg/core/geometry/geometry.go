// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package geometry computes the bounds and the number of scalars of nested, possibly jagged, values.
//
// The bounds of a nested value are, for each dimension, the maximum length found among all
// its subranges at that depth: the smallest hyperrectangle containing all the scalars.
// The outermost bound is always the exact length of the top-level range.
//
// The number of scalars is the count of leaf elements actually present. It equals the
// capacity (product of the bounds) only if the value is not jagged.
package geometry

import (
	"fmt"

	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/gomlx/multidim/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Geometry of a nested value.
type Geometry struct {
	// Bounds has one entry per dimension. Empty for scalars.
	Bounds []int

	// NumScalars is the number of scalars physically present.
	NumScalars int
}

// Of returns the geometry of value. A scalar value has empty bounds and one scalar.
func Of(value any, classifier ...shapes.ScalarClassifier) (Geometry, error) {
	r, err := ranges.Of(value, classifier...)
	if err != nil {
		if errors.Is(err, shapes.ErrNotRange) && value != nil {
			return Geometry{Bounds: []int{}, NumScalars: 1}, nil
		}
		return Geometry{}, err
	}
	return Compute(r)
}

// Compute returns the geometry of the range r.
//
// It returns an error wrapping shapes.ErrShapeMismatch if sibling subranges have different
// dimensionalities.
func Compute(r ranges.Range) (Geometry, error) {
	return ComputeRange(r.Begin(), r.End())
}

// ComputeRange returns the geometry of the elements from first (inclusive) to last (exclusive),
// which must be positions in the same range.
func ComputeRange(first, last ranges.Pos) (Geometry, error) {
	dims := first.Range().Dimensionality()
	g := Geometry{Bounds: make([]int, dims)}
	g.Bounds[0] = first.Distance(last)
	if dims == 1 {
		g.NumScalars = g.Bounds[0]
		return g, nil
	}
	for pos := first; !pos.Equal(last); pos = pos.Next() {
		sub, err := pos.Sub()
		if err != nil {
			return Geometry{}, errors.WithMessagef(err, "geometry of element %d", first.Distance(pos))
		}
		child, err := Compute(sub)
		if err != nil {
			return Geometry{}, err
		}
		if len(child.Bounds) != dims-1 {
			return Geometry{}, errors.Wrapf(shapes.ErrShapeMismatch,
				"element %d has %d dimensions, expected %d", first.Distance(pos), len(child.Bounds), dims-1)
		}
		g.NumScalars += child.NumScalars
		if pos.Equal(first) {
			copy(g.Bounds[1:], child.Bounds)
			continue
		}
		for dim, bound := range child.Bounds {
			g.Bounds[dim+1] = max(g.Bounds[dim+1], bound)
		}
	}
	return g, nil
}

// ComputeBounds returns the bounds of the range r.
func ComputeBounds(r ranges.Range) ([]int, error) {
	g, err := Compute(r)
	return g.Bounds, err
}

// ComputeScalarCount returns the number of scalars in the range r.
func ComputeScalarCount(r ranges.Range) (int, error) {
	g, err := Compute(r)
	return g.NumScalars, err
}

// Dimensionality is the number of bounds.
func (g Geometry) Dimensionality() int { return len(g.Bounds) }

// Capacity is the number of cells of the bounding hyperrectangle: the product of the bounds.
func (g Geometry) Capacity() int {
	return xslices.Product(g.Bounds)
}

// IsJagged returns whether some subrange is shorter than the bound of its dimension.
func (g Geometry) IsJagged() bool {
	return g.Capacity() != g.NumScalars
}

// String implements fmt.Stringer.
func (g Geometry) String() string {
	return fmt.Sprintf("bounds=%v, scalars=%d", g.Bounds, g.NumScalars)
}
