// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "github.com/pkg/errors"

// Sentinel errors returned (or carried by panics) by the multidim packages.
// Use errors.Is to test for them, since they are always wrapped with context.
var (
	// ErrOutOfBounds is raised when dereferencing or moving an iterator beyond its valid logical range.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrShapeMismatch is returned when sibling subranges disagree on their nesting depth.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrBoundsMismatch is returned when explicit bounds don't match the dimensionality of a range.
	ErrBoundsMismatch = errors.New("bounds mismatch")

	// ErrUnrelatedIterators is raised when comparing iterators that don't belong to the same range.
	ErrUnrelatedIterators = errors.New("unrelated iterators")

	// ErrNotRange is returned when a value is expected to be a range, but it is a scalar.
	ErrNotRange = errors.New("not a range")

	// ErrScalarType is returned when a view's element type is incompatible with the scalar type of the range.
	ErrScalarType = errors.New("incompatible scalar type")

	// ErrReadOnly is raised when writing to a position that can't be written to, e.g. a byte of a string.
	ErrReadOnly = errors.New("read-only element")

	// ErrRecursiveType is returned for range types that contain themselves, e.g. `type R []R`.
	ErrRecursiveType = errors.New("recursive range type")

	// ErrNoElementType is returned for Sequence or Chain types that fail to report their element type.
	ErrNoElementType = errors.New("no element type")
)
