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
package dist

import (
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/padic"
	vmath "github.com/consensys/go-padic/pkg/util/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Distribution_00(t *testing.T) {
	r := padic.MustRing(5, 10)
	a := New(0, ints(r, 1, 2, 3, 4))
	b := New(0, ints(r, 5, 0, 25, 7))
	//
	assert.True(t, a.Add(b).Equal(b.Add(a)))
	assert.True(t, a.Sub(a).Valuation().IsInfinite())
	assert.True(t, a.Scale(r.One()).Equal(a))
	assert.Equal(t, vmath.Finite(0), a.Valuation())
	assert.Equal(t, vmath.Finite(1), b.Scale(r.FromInt64(5)).Valuation())
	assert.True(t, Zero(r, 0, 4).IsZero())
	assert.Panics(t, func() { a.Add(New(0, ints(r, 1))) })
}

func Test_Distribution_01(t *testing.T) {
	r := padic.MustRing(5, 10)
	a := New(0, ints(r, 1, 2, 3))
	// 1 + 2y + 3y^2 pairs to 1 + 4 + 9
	v, err := a.Evaluate(ints(r, 1, 2, 3), Strict)
	require.NoError(t, err)
	assert.True(t, v.Equal(r.FromInt64(14)))
	// Shorter series are fine
	v, err = a.Evaluate(ints(r, 1), Strict)
	require.NoError(t, err)
	assert.True(t, v.Equal(r.One()))
	// Zero tail is fine
	_, err = a.Evaluate(ints(r, 1, 0, 0, 0), Strict)
	require.NoError(t, err)
	// Nonzero tail is not
	_, err = a.Evaluate(ints(r, 1, 0, 0, 1), Strict)
	assert.ErrorIs(t, err, ErrDegreeMismatch)
	v, err = a.Evaluate(ints(r, 1, 0, 0, 1), Truncate)
	require.NoError(t, err)
	assert.True(t, v.Equal(r.One()))
}

func Test_Distribution_02(t *testing.T) {
	r := padic.MustRing(7, 10)
	classical := ints(r, 3, 1, 4)
	//
	d, err := FromClassical(2, classical, 6, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, d.Len())
	//
	low := d.Specialize()
	require.Len(t, low, 3)
	for i := range low {
		assert.True(t, low[i].Equal(classical[i]))
	}
	//
	assert.Equal(t, 4, d.ReducePrecision(4).Len())
	assert.Equal(t, 6, d.ReducePrecision(9).Len())
	//
	_, err = FromClassical(2, ints(r, 1, 2), 6, 10)
	assert.Error(t, err)
	_, err = FromClassical(2, classical, 2, 10)
	assert.Error(t, err)
}

func Test_Distribution_03(t *testing.T) {
	r := padic.MustRing(7, 10)
	a := New(0, ints(r, 1, 2, 3, 4))
	b := New(0, ints(r, 9, 9, 9, 9))
	//
	c := a.WithLowMoments(b, 2)
	assert.True(t, c.Moment(0).Equal(r.FromInt64(9)))
	assert.True(t, c.Moment(1).Equal(r.FromInt64(9)))
	assert.True(t, c.Moment(2).Equal(r.FromInt64(3)))
	// Receiver untouched
	assert.True(t, a.Moment(0).Equal(r.One()))
}

func Test_SolveDiffEqn_00(t *testing.T) {
	r := padic.MustRing(7, 10)
	nu := New(0, ints(r, 0, 1, 0, 0))
	//
	mu, err := nu.SolveDiffEqn()
	require.NoError(t, err)
	assert.True(t, mu.Moment(0).Equal(r.One()))
	assert.True(t, mu.Moment(1).Equal(r.FromRat(big.NewRat(-1, 2))))
	assert.True(t, mu.Moment(2).Equal(r.FromRat(big.NewRat(1, 6))))
	assert.True(t, mu.Moment(3).IsZero())
	//
	_, err = New(0, ints(r, 1, 1)).SolveDiffEqn()
	assert.ErrorIs(t, err, ErrNotSolvable)
}

func Test_Record_00(t *testing.T) {
	r := padic.MustRing(5, 8)
	a := New(2, []padic.Element{r.FromRat(big.NewRat(-3, 7)), r.BigOh(4), r.Zero(), r.FromInt64(50).Truncate(5)})
	//
	b, err := FromRecord(r, a.Record())
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 2, b.Weight())
}

func ints(r *padic.Ring, vals ...int64) []padic.Element {
	out := make([]padic.Element, len(vals))
	for i, v := range vals {
		out[i] = r.FromInt64(v)
	}
	//
	return out
}
