// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"reflect"

	"github.com/gomlx/multidim/pkg/core/dtypes"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// decode parses a JSON nested array into a value of type [][]...[]T, where T is the Go type of dtype
// and the number of slice levels is the nesting depth of the JSON array.
//
// All leaves must be at the same depth, otherwise an error wrapping shapes.ErrShapeMismatch is returned.
// Empty arrays match any depth.
func decode(data []byte, dtype dtypes.DType) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	depth, _, err := depthOf(tree)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return nil, errors.Wrapf(shapes.ErrNotRange, "JSON value %v is not an array", tree)
	}
	t := dtype.GoType()
	for range depth {
		t = reflect.SliceOf(t)
	}
	v, err := build(tree, t, depth, dtype)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// depthOf returns the nesting depth of node. If exact is false, the depth is only a lower bound,
// because node has only empty arrays at the bottom.
func depthOf(node any) (depth int, exact bool, err error) {
	children, isArray := node.([]any)
	if !isArray {
		return 0, true, nil
	}
	exactDepth, minDepth := -1, 0
	for ii, child := range children {
		childDepth, childExact, err := depthOf(child)
		if err != nil {
			return 0, false, err
		}
		if !childExact {
			minDepth = max(minDepth, childDepth)
			continue
		}
		if exactDepth != -1 && exactDepth != childDepth {
			return 0, false, errors.Wrapf(shapes.ErrShapeMismatch, "element %d has depth %d, previous elements have depth %d",
				ii, childDepth, exactDepth)
		}
		exactDepth = childDepth
	}
	if exactDepth == -1 {
		return minDepth + 1, false, nil
	}
	if minDepth > exactDepth {
		return 0, false, errors.Wrapf(shapes.ErrShapeMismatch, "empty arrays nested %d deep, but the leaves are at depth %d",
			minDepth, exactDepth)
	}
	return exactDepth + 1, true, nil
}

// build converts node to a reflect.Value of type t, with depth levels of slices.
func build(node any, t reflect.Type, depth int, dtype dtypes.DType) (reflect.Value, error) {
	if depth == 0 {
		return leaf(node, dtype)
	}
	children, isArray := node.([]any)
	if !isArray {
		return reflect.Value{}, errors.Wrapf(shapes.ErrShapeMismatch, "expected an array, got %v", node)
	}
	v := reflect.MakeSlice(t, len(children), len(children))
	for ii, child := range children {
		childValue, err := build(child, t.Elem(), depth-1, dtype)
		if err != nil {
			return reflect.Value{}, err
		}
		v.Index(ii).Set(childValue)
	}
	return v, nil
}

// leaf converts a JSON scalar to a value of the Go type of dtype. null converts to the zero value.
func leaf(node any, dtype dtypes.DType) (reflect.Value, error) {
	switch x := node.(type) {
	case nil:
		return reflect.Zero(dtype.GoType()), nil
	case float64:
		value, err := dtype.FromFloat64(x)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(value), nil
	case bool:
		if dtype == dtypes.Bool {
			return reflect.ValueOf(x), nil
		}
	case string:
		if dtype == dtypes.String {
			return reflect.ValueOf(x), nil
		}
	}
	return reflect.Value{}, errors.Errorf("cannot convert JSON value %v (%T) to dtype %s", node, node, dtype)
}

// parseScalar parses a scalar given in the command line into a value of the Go type of dtype.
// Strings are taken verbatim, everything else is parsed as JSON.
func parseScalar(str string, dtype dtypes.DType) (any, error) {
	if dtype == dtypes.String {
		return str, nil
	}
	var node any
	if err := json.Unmarshal([]byte(str), &node); err != nil {
		return nil, errors.Wrapf(err, "parsing %q", str)
	}
	v, err := leaf(node, dtype)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}
