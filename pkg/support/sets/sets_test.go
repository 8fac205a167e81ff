// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := Make[int](10)
	assert.Len(t, s, 0)

	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := s.Clone()
	s.Delete(7, 11)
	assert.Len(t, s, 1)
	assert.False(t, s.Has(7))
	assert.True(t, s2.Has(7), "clone must not be affected by Delete")

	var nilSet Set[string]
	assert.False(t, nilSet.Has("x"))
}

func TestSetOfTypes(t *testing.T) {
	s := MakeWith(reflect.TypeOf(""), reflect.TypeOf([]byte(nil)))
	assert.True(t, s.Has(reflect.TypeOf("abc")))
	assert.False(t, s.Has(reflect.TypeOf(0)))
}
