// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"reflect"

	"github.com/gomlx/multidim/pkg/support/sets"
)

// ScalarClassifier decides whether a type that would otherwise be traversed as a range
// should be treated as an indivisible scalar.
//
// Classifiers that are comparable (see reflect.Value.Comparable) get their type descriptors cached.
type ScalarClassifier interface {
	IsCustomScalar(t reflect.Type) bool
}

// NoCustomScalars is the default classifier: only types that are not ranges are scalars.
type NoCustomScalars struct{}

// IsCustomScalar implements ScalarClassifier.
func (NoCustomScalars) IsCustomScalar(reflect.Type) bool { return false }

// StringsAsScalars treats any type of kind string as a scalar, as opposed to a range of bytes.
type StringsAsScalars struct{}

// IsCustomScalar implements ScalarClassifier.
func (StringsAsScalars) IsCustomScalar(t reflect.Type) bool { return t.Kind() == reflect.String }

// ClassifierFunc adapts a function to a ScalarClassifier.
// Descriptors created with a ClassifierFunc are not cached.
type ClassifierFunc func(t reflect.Type) bool

// IsCustomScalar implements ScalarClassifier.
func (fn ClassifierFunc) IsCustomScalar(t reflect.Type) bool { return fn(t) }

// typesAsScalars is the classifier returned by TypesAsScalars.
type typesAsScalars struct {
	types sets.Set[reflect.Type]
}

// IsCustomScalar implements ScalarClassifier.
func (c typesAsScalars) IsCustomScalar(t reflect.Type) bool { return c.types.Has(t) }

// TypesAsScalars returns a classifier that treats exactly the given types as scalars.
//
// Example: treat a fixed-size vector as a leaf value.
//
//	type Vec3 [3]float32
//	dims := multidim.DimensionalityOf[[]Vec3](shapes.TypesAsScalars(reflect.TypeFor[Vec3]())) // 1
func TypesAsScalars(types ...reflect.Type) ScalarClassifier {
	return typesAsScalars{types: sets.MakeWith(types...)}
}

// isComparable reports whether the classifier can be used as a cache key.
func isComparable(classifier ScalarClassifier) bool {
	return reflect.ValueOf(classifier).Comparable()
}
