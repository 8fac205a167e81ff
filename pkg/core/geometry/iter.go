// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"iter"

	"github.com/pkg/errors"
)

// Strides returns the strides for each dimension of a hyperrectangle with the given bounds,
// in a row-major layout (the last dimension changes fastest).
//
// Notice the strides are in cells, not in bytes.
func Strides(bounds []int) (strides []int) {
	rank := len(bounds)
	if rank == 0 {
		return
	}
	strides = make([]int, rank)
	currentStride := 1
	for dim := rank - 1; dim >= 0; dim-- {
		strides[dim] = currentStride
		currentStride *= bounds[dim]
	}
	return
}

// Strides of the geometry's bounding hyperrectangle.
func (g Geometry) Strides() []int { return Strides(g.Bounds) }

// Iter iterates sequentially, in row-major order, over all the coordinates of the hyperrectangle
// with the given bounds.
//
// It yields the flat index (counter) and a slice of coordinates.
//
// To avoid allocating the slice of coordinates, the yielded coordinates are owned by the Iter()
// function: don't change them inside the loop.
func Iter(bounds []int) iter.Seq2[int, []int] {
	coords := make([]int, len(bounds))
	return IterOn(bounds, coords)
}

// Iter iterates over all coordinates of the geometry's bounding hyperrectangle. See Iter.
func (g Geometry) Iter() iter.Seq2[int, []int] { return Iter(g.Bounds) }

// IterOn iterates over all the coordinates of the hyperrectangle with the given bounds.
//
// It yields the flat index (counter) and a slice of coordinates.
//
// The iteration updates the coordinates on the given coords slice.
// During the iteration the caller shouldn't modify the slice, otherwise it will lead to undefined behavior.
//
// It expects len(coords) == len(bounds). It will panic otherwise.
func IterOn(bounds, coords []int) iter.Seq2[int, []int] {
	if len(coords) != len(bounds) {
		panic(errors.Errorf("geometry.IterOn given len(coords) == %d, want it to be equal to the rank %d", len(coords), len(bounds)))
	}
	return func(yield func(int, []int) bool) {
		rank := len(bounds)
		if rank == 0 {
			// Scalar: yield one empty coordinates slice.
			_ = yield(0, coords)
			return
		}
		for _, bound := range bounds {
			if bound <= 0 {
				// No cells to iterate over.
				return
			}
		}
		for i := range coords {
			coords[i] = 0
		}

		// This structure simulates an N-dimensional counter for the coordinates.
		flatIdx := 0
	yielder:
		for {
			if !yield(flatIdx, coords) {
				return // Consumer requested to stop iteration.
			}
			flatIdx++

			// Increment coordinates (row-major order: the last one changes fastest).
			for dim := rank - 1; dim >= 0; dim-- {
				coords[dim]++
				if coords[dim] < bounds[dim] {
					continue yielder
				}
				// Carry-over to the previous dimension.
				coords[dim] = 0
			}

			// The first dimension overflowed: iteration is complete.
			break
		}
	}
}

// Unflatten converts a flat row-major index into coordinates, using the given strides.
func Unflatten(flatIdx int, strides []int, coords []int) []int {
	if coords == nil {
		coords = make([]int, len(strides))
	}
	for dim, stride := range strides {
		if stride == 0 {
			coords[dim] = 0
			continue
		}
		coords[dim] = flatIdx / stride
		flatIdx %= stride
	}
	return coords
}
