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
package action

import (
	"testing"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Action_00(t *testing.T) {
	r := padic.MustRing(7, 12)
	w, err := New(Config{Weight: 2})
	require.NoError(t, err)
	//
	m, err := w.ActingMatrix(matrix.IdentityM2(r), 5)
	require.NoError(t, err)
	assert.True(t, m.Sub(matrix.Identity(r, 5)).IsZero())
}

// Pushing forward a Dirac measure along y -> 2 + 5y.
func Test_Action_01(t *testing.T) {
	r := padic.MustRing(7, 12)
	w, err := New(Config{Weight: 0})
	require.NoError(t, err)
	//
	v := dist.New(0, ints(r, 1, 3, 9))
	u, err := w.Act(v, matrix.Embed(r, matrix.NewRat(1, 2, 0, 5)))
	require.NoError(t, err)
	assert.True(t, u.Equal(dist.New(0, ints(r, 1, 17, 289))))
}

func Test_Action_02(t *testing.T) {
	checkRightAssociativity(t, Config{Weight: 2})
}

func Test_Action_03(t *testing.T) {
	checkRightAssociativity(t, Config{Weight: 3, DetTwist: 1, Character: TeichmullerCharacter{Power: 1}})
}

func Test_Action_04(t *testing.T) {
	checkRightAssociativity(t, Config{Weight: 0, DetTwist: -2})
}

// Upper triangular matrices act through exact truncations, so the left action
// composes exactly.
func Test_Action_05(t *testing.T) {
	r := padic.MustRing(7, 12)
	w, err := New(Config{Weight: 2, ActOnLeft: true, DetTwist: 1})
	require.NoError(t, err)
	//
	v := dist.New(2, ints(r, 1, 5, -3, 8, 2))
	g1 := matrix.NewRat(2, 3, 0, 5)
	g2 := matrix.NewRat(3, 1, 0, 2)
	//
	lhs, err := w.Act(v, matrix.Embed(r, g2))
	require.NoError(t, err)
	lhs, err = w.Act(lhs, matrix.Embed(r, g1))
	require.NoError(t, err)
	rhs, err := w.Act(v, matrix.Embed(r, g1.Mul(g2)))
	require.NoError(t, err)
	//
	assert.True(t, lhs.Equal(rhs))
}

func Test_Action_06(t *testing.T) {
	r := padic.MustRing(7, 12)
	w, err := New(Config{Weight: 1})
	require.NoError(t, err)
	//
	_, err = w.ActingMatrix(matrix.Embed(r, matrix.NewRat(1, 2, 2, 4)), 3)
	assert.ErrorIs(t, err, ErrInvalidMatrix)
	_, err = w.ActingMatrix(matrix.Embed(r, matrix.NewRat(0, 1, 1, 1)), 3)
	assert.ErrorIs(t, err, ErrInvalidMatrix)
	// The tree convention reads d as the leading entry
	w, err = w.WithConfig(Config{Weight: 1, Adjuster: Tree})
	require.NoError(t, err)
	_, err = w.ActingMatrix(matrix.Embed(r, matrix.NewRat(0, 1, 1, 1)), 3)
	assert.NoError(t, err)
	// Weight mismatch
	_, err = w.Act(dist.New(2, ints(r, 1, 2, 3)), matrix.IdentityM2(r))
	assert.Error(t, err)
	//
	_, err = New(Config{Weight: -1})
	assert.Error(t, err)
}

func Test_Action_07(t *testing.T) {
	r := padic.MustRing(5, 8)
	w, err := New(Config{Weight: 2, CacheSize: 2})
	require.NoError(t, err)
	g := matrix.Embed(r, matrix.NewRat(1, 1, 5, 2))
	//
	m1, err := w.ActingMatrix(g, 4)
	require.NoError(t, err)
	m2, err := w.ActingMatrix(g, 4)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	// Different number of moments is a different entry
	m3, err := w.ActingMatrix(g, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, m3.Rows())
	//
	w.Purge()
	m4, err := w.ActingMatrix(g, 4)
	require.NoError(t, err)
	assert.NotSame(t, m1, m4)
	assert.True(t, m1.Sub(m4).IsZero())
}

func Test_Action_08(t *testing.T) {
	r := padic.MustRing(7, 12)
	g := matrix.Embed(r, matrix.NewRat(2, 3, 7, 4))
	// Adjugate convention is the standard action of the adjugate
	wa, err := New(Config{Weight: 2, Adjuster: Adjugate})
	require.NoError(t, err)
	ws, err := New(Config{Weight: 2})
	require.NoError(t, err)
	//
	ma, err := wa.ActingMatrix(g, 4)
	require.NoError(t, err)
	ms, err := ws.ActingMatrix(g.Adjugate(), 4)
	require.NoError(t, err)
	assert.True(t, ma.Sub(ms).IsZero())
}

// Truncation is only compatible with composition up to the filtration: moment
// j of the two sides agrees modulo p^(d-j) for matrices in Sigma_0(p).
func checkRightAssociativity(t *testing.T, config Config) {
	const d = 6
	//
	r := padic.MustRing(7, 20)
	w, err := New(config)
	require.NoError(t, err)
	//
	moments := ints(r, 3, -1, 4, 1, -5, 9)[:d]
	v := dist.New(config.Weight, moments)
	g1 := matrix.NewRat(1, 2, 7, 3)
	g2 := matrix.NewRat(2, 1, 14, 5)
	//
	lhs, err := w.Act(v, matrix.Embed(r, g1))
	require.NoError(t, err)
	lhs, err = w.Act(lhs, matrix.Embed(r, g2))
	require.NoError(t, err)
	rhs, err := w.Act(v, matrix.Embed(r, g1.Mul(g2)))
	require.NoError(t, err)
	//
	for j := 0; j < d; j++ {
		diff := lhs.Moment(j).Sub(rhs.Moment(j))
		assert.True(t, diff.Valuation().CmpInt(d-j) >= 0, "moment %d differs by %s", j, diff)
	}
}

func ints(r *padic.Ring, vals ...int64) []padic.Element {
	out := make([]padic.Element, len(vals))
	for i, v := range vals {
		out[i] = r.FromInt64(v)
	}
	//
	return out
}
