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
package matrix

import (
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/padic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Rat_00(t *testing.T) {
	m := NewRat(1, 2, 3, 7)
	n := NewRat(2, 0, 5, 1)
	//
	assert.True(t, m.Mul(n).Equal(NewRat(12, 2, 41, 7)))
	assert.Equal(t, "1", m.Det().RatString())
	assert.Equal(t, 0, m.Mul(n).Det().Cmp(new(big.Rat).Mul(m.Det(), n.Det())))
	//
	inv, err := n.Inverse()
	require.NoError(t, err)
	assert.True(t, n.Mul(inv).Equal(IdentityRat()))
	//
	_, err = NewRat(1, 2, 2, 4).Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func Test_Rat_01(t *testing.T) {
	m, err := ParseRat([]string{"1", "1/2", "0", "-5"})
	require.NoError(t, err)
	assert.Equal(t, "[[1, 1/2], [0, -5]]", m.String())
	//
	_, err = ParseRat([]string{"1", "2", "3"})
	assert.Error(t, err)
	_, err = ParseRat([]string{"1", "2", "3", "q"})
	assert.Error(t, err)
}

func Test_M2_00(t *testing.T) {
	r := padic.MustRing(5, 10)
	m := NewRat(1, 2, 5, 7)
	n := NewRat(2, 1, 0, 3)
	// Embedding is a homomorphism
	lhs := Embed(r, m).Mul(Embed(r, n))
	rhs := Embed(r, m.Mul(n))
	//
	for i := range lhs {
		assert.True(t, lhs[i].Equal(rhs[i]))
	}
	//
	assert.True(t, Embed(r, m).Det().Equal(r.FromInt64(-3)))
	assert.Equal(t, Embed(r, m).Key(), Embed(r, NewRat(1, 2, 5, 7)).Key())
	assert.NotEqual(t, Embed(r, m).Key(), Embed(r, n).Key())
}

func Test_Dense_00(t *testing.T) {
	r := padic.MustRing(7, 8)
	m := NewDense(2, 3, ints(r, 1, 2, 3, 4, 5, 6))
	//
	assert.Equal(t, 3, m.Transpose().Rows())
	assert.True(t, m.Transpose().At(2, 1).Equal(r.FromInt64(6)))
	assert.True(t, Identity(r, 2).Mul(m).Sub(m).IsZero())
	assert.True(t, m.Mul(Identity(r, 3)).Sub(m).IsZero())
	//
	v := m.VecMul(ints(r, 1, 1))
	assert.True(t, v[2].Equal(r.FromInt64(9)))
	//
	w := m.MulVec(ints(r, 1, 0, 1))
	assert.True(t, w[1].Equal(r.FromInt64(10)))
	assert.Panics(t, func() { m.Mul(m) })
}

func Test_Solve_00(t *testing.T) {
	r := padic.MustRing(7, 12)
	a := NewDense(3, 2, ints(r, 1, 2, 3, 4, 5, 6))
	x := NewDense(2, 1, ints(r, 1, -2))
	//
	sol, err := GaussSolver{}.Solve(a, a.Mul(x))
	require.NoError(t, err)
	assert.True(t, sol.Sub(x).IsZero())
	//
	_, err = GaussSolver{}.Solve(a, NewDense(3, 1, ints(r, 1, 0, 0)))
	assert.ErrorIs(t, err, ErrInconsistent)
	//
	_, err = GaussSolver{}.Solve(NewDense(2, 2, ints(r, 1, 2, 2, 4)), NewDense(2, 1, ints(r, 1, 2)))
	assert.ErrorIs(t, err, ErrSingular)
}

func ints(r *padic.Ring, vals ...int64) []padic.Element {
	out := make([]padic.Element, len(vals))
	for i, v := range vals {
		out[i] = r.FromInt64(v)
	}
	//
	return out
}
