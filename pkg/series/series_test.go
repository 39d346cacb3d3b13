// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package series

import (
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/padic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Series_00(t *testing.T) {
	r := padic.MustRing(5, 12)
	s := New(r, 6, r.One(), r.One())
	//
	inv, err := s.Inverse()
	require.NoError(t, err)
	assertSeries(t, s.Mul(inv), 1, 0, 0, 0, 0, 0)
	assertSeries(t, inv, 1, -1, 1, -1, 1, -1)
	//
	cube, err := s.Pow(3)
	require.NoError(t, err)
	assertSeries(t, cube, 1, 3, 3, 1, 0, 0)
	//
	neg, err := s.Pow(-1)
	require.NoError(t, err)
	assert.Equal(t, inv.String(), neg.String())
}

func Test_Series_01(t *testing.T) {
	r := padic.MustRing(5, 12)
	s := New(r, 4, r.Zero(), r.One())
	//
	_, err := s.Inverse()
	assert.ErrorIs(t, err, ErrNotInvertible)
	_, err = New(r, 4, r.One()).Div(s)
	assert.ErrorIs(t, err, ErrNotInvertible)
	// Mixed lengths truncate
	assert.Equal(t, 2, s.Add(New(r, 2)).Len())
	assert.Equal(t, 2, s.Truncate(2).Len())
}

func Test_Series_02(t *testing.T) {
	r := padic.MustRing(5, 12)
	y := New(r, 4, r.Zero(), r.FromInt64(5))
	l := y.Log1p(10)
	// log(1 + 5r) = 5r - 25r^2/2 + 125r^3/3 - ...
	assert.True(t, l.Coeff(0).IsZero())
	assert.True(t, l.Coeff(1).Equal(r.FromInt64(5)))
	assert.True(t, l.Coeff(2).Equal(r.FromRat(big.NewRat(-25, 2))))
	assert.True(t, l.Coeff(3).Equal(r.FromRat(big.NewRat(125, 3))))
}

func Test_Poly_00(t *testing.T) {
	r := padic.MustRing(7, 10)
	one, x := r.One(), r.FromInt64(1)
	p := NewPoly(r, one, x)
	q := NewPoly(r, one, x.Neg())
	//
	pq := p.Mul(q)
	assert.Equal(t, 2, pq.Degree())
	assert.True(t, pq.Coeff(1).IsZero())
	assert.True(t, pq.Coeff(2).Equal(r.FromInt64(-1)))
	assert.True(t, pq.Eval(r.FromInt64(3)).Equal(r.FromInt64(-8)))
	// x^2 + 1 homogenized by u = 2 + x, v = 1 is (2 + x)^2 + 1
	f := NewPoly(r, one, r.Zero(), one)
	h := f.Homogenize(Linear(r.FromInt64(2), one), NewPoly(r, one))
	assertPoly(t, h, 5, 4, 1)
	// Evaluating at a series agrees with homogenization
	assertSeries(t, f.EvalSeries(New(r, 3, r.FromInt64(2), one)), 5, 4, 1)
}

func assertSeries(t *testing.T, s Series, coeffs ...int64) {
	t.Helper()
	require.Equal(t, len(coeffs), s.Len())
	//
	for i, c := range coeffs {
		assert.True(t, s.Coeff(i).Equal(s.Ring().FromInt64(c)), "coefficient %d: %s != %d", i, s.Coeff(i), c)
	}
}

func assertPoly(t *testing.T, p Poly, coeffs ...int64) {
	t.Helper()
	//
	for i, c := range coeffs {
		assert.True(t, p.Coeff(i).Equal(p.Ring().FromInt64(c)), "coefficient %d: %s != %d", i, p.Coeff(i), c)
	}
}
