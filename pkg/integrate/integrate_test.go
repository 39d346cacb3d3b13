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
package integrate

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/series"
	"github.com/consensys/go-padic/pkg/source"
	"github.com/consensys/go-padic/pkg/source/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Integrate_00(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	fn := Polynomial(series.NewPoly(r, r.One(), r.Zero(), r.One()))
	// Point mass at 7 against x^2 + 1
	for level := 0; level <= 1; level++ {
		x, err := in.Integrate(fn, matrix.IdentityRat(), level, Moments)
		require.NoError(t, err)
		assert.True(t, x.Equal(r.FromInt64(50)), "level %d gives %s", level, x)
	}
}

func Test_Integrate_01(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	fn := Polynomial(series.NewPoly(r, r.One(), r.Zero(), r.One()))
	// Riemann sums lose precision, but less so at higher levels.
	for level := 0; level <= 1; level++ {
		x, err := in.Integrate(fn, matrix.IdentityRat(), level, Moments)
		require.NoError(t, err)
		y, err := in.Integrate(fn, matrix.IdentityRat(), level, RiemannSum)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, x.Sub(y).Valuation().CmpInt(level), 0)
	}
	//
	y, err := in.Integrate(fn, matrix.IdentityRat(), 1, RiemannSum)
	require.NoError(t, err)
	assert.True(t, y.Equal(r.FromInt64(5)))
}

func Test_Integrate_02(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	// 1/(1 + x) at 7, up to the truncation of 1/(3 + 5r) after 12 terms
	fn := Rational{series.NewPoly(r, r.One()), series.NewPoly(r, r.One(), r.One())}
	x, err := in.Integrate(fn, matrix.IdentityRat(), 1, Moments)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, x.Sub(r.FromRat(big.NewRat(1, 8))).Valuation().CmpInt(12), 0)
	// No covering at level 2
	_, err = in.Integrate(fn, matrix.IdentityRat(), 2, Moments)
	assert.Error(t, err)
}

func Test_Coleman_00(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	t1, t2 := r.FromRat(big.NewRat(1, 5)), r.FromRat(big.NewRat(2, 5))
	//
	expected, err := r.FromRat(big.NewRat(34, 33)).Log()
	require.NoError(t, err)
	//
	x, err := in.Coleman(t1, t2, ColemanOptions{Method: Moments})
	require.NoError(t, err)
	assert.True(t, x.Equal(expected), "%s vs %s", x, expected)
	// Riemann sums agree modulo p
	y, err := in.Coleman(t1, t2, ColemanOptions{Method: RiemannSum})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, x.Sub(y).Valuation().CmpInt(1), 0)
	assert.False(t, x.Equal(y))
}

func Test_Coleman_01(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	t1, t2 := r.FromRat(big.NewRat(1, 5)), r.FromRat(big.NewRat(2, 5))
	//
	x, err := in.Coleman(t1, t2, ColemanOptions{Method: Moments, Mult: true})
	require.NoError(t, err)
	assert.True(t, x.Equal(r.FromRat(big.NewRat(34, 33))), "%s", x)
	//
	_, err = in.Coleman(t1, t2, ColemanOptions{Method: Moments, Mult: true, Twist: true})
	assert.True(t, errors.Is(err, ErrNotImplemented))
	// No covering for swapped endpoints
	_, err = in.Coleman(t2, t1, ColemanOptions{})
	assert.Error(t, err)
}

func Test_Coleman_02(t *testing.T) {
	in, r := diracIntegrator(t, 20, 12)
	t1, t2 := r.FromRat(big.NewRat(1, 5)), r.FromRat(big.NewRat(2, 5))
	// In weight zero the only twist is trivial
	x, err := in.Coleman(t1, t2, ColemanOptions{Method: Moments})
	require.NoError(t, err)
	y, err := in.Coleman(t1, t2, ColemanOptions{Method: Moments, Twist: true, Delta: 0})
	require.NoError(t, err)
	assert.True(t, x.Equal(y))
	//
	_, err = in.Coleman(t1, t2, ColemanOptions{Method: Moments, Twist: true, Delta: 1})
	assert.Error(t, err)
}

func Test_Method_00(t *testing.T) {
	for _, m := range []Method{Moments, RiemannSum} {
		n, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, n)
	}
	//
	_, err := ParseMethod("simpson")
	assert.Error(t, err)
}

// Integrator for the form whose value on representative 0 is the point mass at
// 7, with d moments.
func diracIntegrator(t *testing.T, cap int, d int) (*Integrator, *padic.Ring) {
	src, err := tables.Load("../../testdata/tables/dirac.yaml")
	require.NoError(t, err)
	//
	r := padic.MustRing(src.Prime(), cap)
	moments := make([]padic.Element, d)
	//
	for i := range moments {
		moments[i] = r.FromInt64(7).Pow(i)
	}
	//
	f, err := form.New(src, []dist.Distribution{dist.New(0, moments), dist.Zero(r, 0, d)})
	require.NoError(t, err)
	//
	act, err := action.New(action.Config{Weight: 0})
	require.NoError(t, err)
	//
	return New(f, act, source.RingEmbedding{Ring: r}, src), r
}
