// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes introspects nested Go types: whether a type is a range, how many levels of
// nesting it has (its dimensionality), what the scalar type at the bottom is, and how to
// navigate from one level to the next.
//
// Ranges are slices, arrays, strings (ranges of bytes), types implementing Sequence (random
// access, no element addresses) and types implementing Chain (bidirectional, no random access).
// Pointers to ranges are followed transparently. Everything else is a scalar, and a
// ScalarClassifier can turn any type into a scalar, e.g. StringsAsScalars.
//
// The result of the introspection of a type is a Descriptor, built once per type and
// classifier and then cached.
package shapes

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/multidim/pkg/core/dtypes"
	"github.com/gomlx/multidim/pkg/support/sets"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// RangeKind is the kind of a type, as far as traversal is concerned.
type RangeKind int

const (
	// KindScalar is a leaf: not traversed any further.
	KindScalar RangeKind = iota

	// KindSlice is a Go slice: random access to addressable elements.
	KindSlice

	// KindArray is a Go array: random access to elements, addressable if the array is.
	KindArray

	// KindString is a Go string, seen as a range of read-only bytes.
	KindString

	// KindSequence implements Sequence: random access to values.
	KindSequence

	// KindChain implements Chain: bidirectional traversal of values.
	KindChain
)

//go:generate go tool enumer -type RangeKind -trimprefix=Kind -output=gen_kind_enumer.go shapes.go

// Descriptor is the result of the introspection of a type, for a given ScalarClassifier.
//
// Descriptors are immutable and shared: don't modify them.
type Descriptor struct {
	// Type described.
	Type reflect.Type

	// Kind of the type, after following Indirect pointers.
	Kind RangeKind

	// Indirect is the number of pointers to follow from Type to reach the range.
	// It is always 0 for scalars: a pointer to a scalar is itself a scalar.
	Indirect int

	// Elem describes the elements of the range. It is nil for scalars.
	Elem *Descriptor

	// Dimensionality is the number of traversal steps to reach a scalar. 0 for scalars.
	Dimensionality int

	// Scalar is the type at the bottom of the nesting.
	Scalar reflect.Type

	introspector *Introspector
}

// IsScalar returns whether the type is a leaf.
func (d *Descriptor) IsScalar() bool { return d.Kind == KindScalar }

// IsRange returns whether the type is traversed, the opposite of IsScalar.
func (d *Descriptor) IsRange() bool { return d.Kind != KindScalar }

// RandomAccess returns whether positions on the range can be moved by arbitrary offsets in constant time.
func (d *Descriptor) RandomAccess() bool {
	return d.Kind == KindSlice || d.Kind == KindArray || d.Kind == KindString || d.Kind == KindSequence
}

// YieldsReferences returns whether traversing the range yields addressable slots (as opposed
// to values, like a Sequence or a Chain, or read-only bytes, like a string).
//
// Notice arrays only yield addressable slots if the array value itself is addressable.
func (d *Descriptor) YieldsReferences() bool {
	return d.Kind == KindSlice || d.Kind == KindArray
}

// DType of the scalar type, or dtypes.InvalidDType if it has no corresponding DType.
func (d *Descriptor) DType() dtypes.DType {
	return dtypes.FromGoType(d.Scalar)
}

// CheckScalarType returns an error wrapping ErrScalarType unless values of type t can hold
// the scalars of the descriptor: t must be the scalar type itself, or an interface it implements.
func (d *Descriptor) CheckScalarType(t reflect.Type) error {
	if t == d.Scalar || (t.Kind() == reflect.Interface && d.Scalar.Implements(t)) {
		return nil
	}
	return errors.Wrapf(ErrScalarType, "%s can't hold the scalars of %s, of type %s", t, d.Type, d.Scalar)
}

// Classifier used to build the descriptor.
func (d *Descriptor) Classifier() ScalarClassifier {
	return d.introspector.classifier
}

// Describe another type with the same classifier used for this descriptor.
func (d *Descriptor) Describe(t reflect.Type) (*Descriptor, error) {
	return d.introspector.Describe(t)
}

// Kinds returns the kinds of each level, from this one down to the scalar.
func (d *Descriptor) Kinds() []RangeKind {
	kinds := make([]RangeKind, 0, d.Dimensionality+1)
	for level := d; level != nil; level = level.Elem {
		kinds = append(kinds, level.Kind)
	}
	return kinds
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil descriptor>"
	}
	if d.IsScalar() {
		return fmt.Sprintf("scalar %s", d.Type)
	}
	parts := make([]string, 0, d.Dimensionality)
	for level := d; level.IsRange(); level = level.Elem {
		parts = append(parts, level.Kind.String())
	}
	return fmt.Sprintf("%s: dims=%d [%s] of %s", d.Type, d.Dimensionality, strings.Join(parts, ", "), d.Scalar)
}

// Introspector builds and caches Descriptors for one ScalarClassifier.
type Introspector struct {
	classifier ScalarClassifier
	cacheable  bool
	cache      sync.Map // reflect.Type -> *Descriptor
}

// introspectors holds one Introspector per comparable classifier.
var introspectors sync.Map

// For returns the Introspector for the given classifier. If classifier is nil, NoCustomScalars is used.
//
// Introspectors for comparable classifiers are shared, and so is their cache of descriptors.
// Non-comparable classifiers (e.g., ClassifierFunc) get a new Introspector that doesn't cache.
func For(classifier ScalarClassifier) *Introspector {
	if classifier == nil {
		classifier = NoCustomScalars{}
	}
	if !isComparable(classifier) {
		return &Introspector{classifier: classifier}
	}
	if in, found := introspectors.Load(classifier); found {
		return in.(*Introspector)
	}
	in, _ := introspectors.LoadOrStore(classifier, &Introspector{classifier: classifier, cacheable: true})
	return in.(*Introspector)
}

// Classifier returns the classifier used by the Introspector.
func (in *Introspector) Classifier() ScalarClassifier { return in.classifier }

// Describe returns the descriptor of the type t.
//
// It returns an error wrapping ErrRecursiveType if t contains itself, or ErrNoElementType if
// t (or one of its element types) is a Sequence or Chain that can't report its element type.
func (in *Introspector) Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, errors.New("shapes.Describe: cannot describe nil type")
	}
	return in.describe(t, sets.Make[reflect.Type]())
}

func (in *Introspector) describe(t reflect.Type, visiting sets.Set[reflect.Type]) (*Descriptor, error) {
	if in.cacheable {
		if d, found := in.cache.Load(t); found {
			return d.(*Descriptor), nil
		}
	}
	if visiting.Has(t) {
		return nil, errors.Wrapf(ErrRecursiveType, "type %s contains itself", t)
	}

	kind, elemType, indirect, err := in.classify(t)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{Type: t, Kind: kind, Indirect: indirect, introspector: in}
	if kind == KindScalar {
		d.Scalar = t
	} else {
		visiting.Insert(t)
		d.Elem, err = in.describe(elemType, visiting)
		visiting.Delete(t)
		if err != nil {
			return nil, errors.WithMessagef(err, "while describing elements of %s", t)
		}
		d.Dimensionality = d.Elem.Dimensionality + 1
		d.Scalar = d.Elem.Scalar
	}

	if in.cacheable {
		actual, loaded := in.cache.LoadOrStore(t, d)
		if !loaded && klog.V(2).Enabled() {
			klog.Infof("shapes: new descriptor %s", d)
		}
		d = actual.(*Descriptor)
	}
	return d, nil
}

var byteType = reflect.TypeOf(byte(0))

// classify finds the kind of t, following pointers, and its element type if it is a range.
func (in *Introspector) classify(t reflect.Type) (kind RangeKind, elem reflect.Type, indirect int, err error) {
	base := t
	for {
		if in.classifier.IsCustomScalar(base) {
			return KindScalar, nil, 0, nil
		}
		if base.Kind() == reflect.Pointer && (base.Elem().Implements(sequenceType) || base.Elem().Implements(chainType)) {
			// Value receivers: ElemType can't be called on a nil pointer, so use the pointee.
			base = base.Elem()
			indirect++
			continue
		}
		if base.Implements(sequenceType) {
			elem, err = elementTypeOf(base)
			return KindSequence, elem, indirect, err
		}
		if base.Implements(chainType) {
			elem, err = elementTypeOf(base)
			return KindChain, elem, indirect, err
		}
		switch base.Kind() {
		case reflect.Slice:
			return KindSlice, base.Elem(), indirect, nil
		case reflect.Array:
			return KindArray, base.Elem(), indirect, nil
		case reflect.String:
			return KindString, byteType, indirect, nil
		case reflect.Pointer:
			base = base.Elem()
			indirect++
			continue
		default:
		}
		// Not a range: the given type (not the pointee) is the scalar.
		return KindScalar, nil, 0, nil
	}
}

// elementTypeOf calls ElemType on the zero value of a Sequence or Chain type.
func elementTypeOf(t reflect.Type) (elem reflect.Type, err error) {
	exception := exceptions.Try(func() {
		switch r := reflect.Zero(t).Interface().(type) {
		case Sequence:
			elem = r.ElemType()
		case Chain:
			elem = r.ElemType()
		}
	})
	if exception != nil {
		return nil, errors.Wrapf(ErrNoElementType, "calling %s.ElemType() on its zero value: %v", t, exception)
	}
	if elem == nil {
		return nil, errors.Wrapf(ErrNoElementType, "%s.ElemType() returned nil", t)
	}
	return elem, nil
}

// Describe returns the descriptor of t for the given classifier (the default if none is given).
func Describe(t reflect.Type, classifier ...ScalarClassifier) (*Descriptor, error) {
	return For(optionalClassifier(classifier)).Describe(t)
}

// DescriptorFor returns the descriptor of the type T for the given classifier (the default if none is given).
func DescriptorFor[T any](classifier ...ScalarClassifier) (*Descriptor, error) {
	return Describe(reflect.TypeFor[T](), classifier...)
}

// MustDescribe is like Describe, but panics on error.
func MustDescribe(t reflect.Type, classifier ...ScalarClassifier) *Descriptor {
	d, err := Describe(t, classifier...)
	if err != nil {
		panic(err)
	}
	return d
}

// IsScalar returns whether t is a leaf for the given classifier. It panics for malformed types.
func IsScalar(t reflect.Type, classifier ...ScalarClassifier) bool {
	return MustDescribe(t, classifier...).IsScalar()
}

// IsRange returns whether t is traversable, ignoring any classifier.
// Unlike Describe, it doesn't check the element types.
func IsRange(t reflect.Type) bool {
	kind, _, _, err := For(nil).classify(t)
	return err == nil && kind != KindScalar
}

// Dimensionality returns the nesting depth of t. It panics for malformed types.
func Dimensionality(t reflect.Type, classifier ...ScalarClassifier) int {
	return MustDescribe(t, classifier...).Dimensionality
}

// ScalarType returns the type at the bottom of the nesting of t. It panics for malformed types.
func ScalarType(t reflect.Type, classifier ...ScalarClassifier) reflect.Type {
	return MustDescribe(t, classifier...).Scalar
}

// YieldsReferences returns whether traversing t yields addressable slots. It panics for malformed types.
func YieldsReferences(t reflect.Type, classifier ...ScalarClassifier) bool {
	return MustDescribe(t, classifier...).YieldsReferences()
}

func optionalClassifier(classifier []ScalarClassifier) ScalarClassifier {
	if len(classifier) == 0 {
		return nil
	}
	if len(classifier) > 1 {
		exceptions.Panicf("at most one ScalarClassifier can be given, got %d", len(classifier))
	}
	return classifier[0]
}
