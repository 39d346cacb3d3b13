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
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/go-padic/pkg/padic"
	vmath "github.com/consensys/go-padic/pkg/util/math"
)

var (
	// ErrDegreeMismatch is returned when strictly evaluating a distribution on
	// a series with nonzero terms beyond the available moments.
	ErrDegreeMismatch = errors.New("series degree exceeds number of moments")
	// ErrNotSolvable is returned when a difference equation has no solution.
	ErrNotSolvable = errors.New("difference equation not solvable")
)

// Mode determines how Evaluate treats series longer than the moment vector.
type Mode uint8

const (
	// Strict evaluation fails with ErrDegreeMismatch.
	Strict Mode = iota
	// Truncate evaluation silently drops the excess terms.
	Truncate
)

// Distribution is a finite-precision p-adic distribution, represented by its
// moments mu(y^0), ..., mu(y^(d-1)) together with the weight k of the action
// it carries.  The number of moments never changes under arithmetic.
// Distributions are values: every operation returns a fresh one.
type Distribution struct {
	weight  int
	moments []padic.Element
}

// New constructs a distribution from its moments, which are copied.
func New(weight int, moments []padic.Element) Distribution {
	if len(moments) == 0 {
		panic("distribution requires at least one moment")
	}
	//
	return Distribution{weight, append([]padic.Element(nil), moments...)}
}

// Zero constructs the zero distribution with d moments.
func Zero(r *padic.Ring, weight int, d int) Distribution {
	moments := make([]padic.Element, d)
	for i := range moments {
		moments[i] = r.Zero()
	}
	//
	return Distribution{weight, moments}
}

// FromClassical lifts a classical weight-k value (k+1 coefficients) to a
// distribution with d moments, filling the higher moments with O(p^prec).
func FromClassical(weight int, coeffs []padic.Element, d int, prec int) (Distribution, error) {
	if len(coeffs) != weight+1 {
		return Distribution{}, fmt.Errorf("weight %d requires %d coefficients, found %d", weight, weight+1, len(coeffs))
	} else if d < weight+1 {
		return Distribution{}, fmt.Errorf("%d moments cannot hold a weight %d value", d, weight)
	}
	//
	r := coeffs[0].Ring()
	moments := make([]padic.Element, d)
	copy(moments, coeffs)
	//
	for i := len(coeffs); i < d; i++ {
		moments[i] = r.BigOh(prec)
	}
	//
	return Distribution{weight, moments}, nil
}

// Ring returns the ring of the moments.
func (p Distribution) Ring() *padic.Ring {
	return p.moments[0].Ring()
}

// Weight returns the weight k.
func (p Distribution) Weight() int {
	return p.weight
}

// Len returns the number of moments d.
func (p Distribution) Len() int {
	return len(p.moments)
}

// Moment returns mu(y^i).
func (p Distribution) Moment(i int) padic.Element {
	return p.moments[i]
}

// Moments returns a copy of the moment vector.
func (p Distribution) Moments() []padic.Element {
	return append([]padic.Element(nil), p.moments...)
}

// Add returns p + q, which must have the same number of moments.
func (p Distribution) Add(q Distribution) Distribution {
	p.check(q)
	moments := make([]padic.Element, len(p.moments))
	//
	for i, m := range p.moments {
		moments[i] = m.Add(q.moments[i])
	}
	//
	return Distribution{p.weight, moments}
}

// Neg returns -p.
func (p Distribution) Neg() Distribution {
	moments := make([]padic.Element, len(p.moments))
	for i, m := range p.moments {
		moments[i] = m.Neg()
	}
	//
	return Distribution{p.weight, moments}
}

// Sub returns p - q, which must have the same number of moments.
func (p Distribution) Sub(q Distribution) Distribution {
	return p.Add(q.Neg())
}

// Scale returns c*p.
func (p Distribution) Scale(c padic.Element) Distribution {
	moments := make([]padic.Element, len(p.moments))
	for i, m := range p.moments {
		moments[i] = m.Mul(c)
	}
	//
	return Distribution{p.weight, moments}
}

// Evaluate pairs this distribution with a power series given by its
// coefficients, returning sum_i mu(y^i) * coeffs[i].
func (p Distribution) Evaluate(coeffs []padic.Element, mode Mode) (padic.Element, error) {
	acc := p.Ring().Zero()
	//
	for i, c := range coeffs {
		if i < len(p.moments) {
			acc = acc.Add(p.moments[i].Mul(c))
		} else if mode == Strict && !c.IsZero() {
			return padic.Element{}, fmt.Errorf("%w (coefficient %d with %d moments)", ErrDegreeMismatch, i, len(p.moments))
		}
	}
	//
	return acc, nil
}

// Valuation returns the least valuation of any moment, or +∞ for zero.
func (p Distribution) Valuation() vmath.Valuation {
	v := vmath.PosInfinity
	for _, m := range p.moments {
		v = v.Min(m.Valuation())
	}
	//
	return v
}

// Precision returns the least absolute precision of any moment.
func (p Distribution) Precision() int {
	prec := p.moments[0].Precision()
	for _, m := range p.moments[1:] {
		prec = min(prec, m.Precision())
	}
	//
	return prec
}

// IsZero returns true if every moment is zero to its precision.
func (p Distribution) IsZero() bool {
	return p.Valuation().IsInfinite()
}

// Equal returns true if both distributions have the same number of moments and
// these agree to the available precision.
func (p Distribution) Equal(q Distribution) bool {
	return len(p.moments) == len(q.moments) && p.Sub(q).IsZero()
}

// ReducePrecision keeps only the first M moments.
func (p Distribution) ReducePrecision(M int) Distribution {
	if M >= len(p.moments) {
		return p
	}
	//
	return Distribution{p.weight, append([]padic.Element(nil), p.moments[:M]...)}
}

// Specialize returns the classical weight-k value, i.e. the first k+1
// moments.
func (p Distribution) Specialize() []padic.Element {
	n := min(p.weight+1, len(p.moments))
	return append([]padic.Element(nil), p.moments[:n]...)
}

// WithLowMoments returns a copy of p whose first n moments are taken from q.
func (p Distribution) WithLowMoments(q Distribution, n int) Distribution {
	moments := p.Moments()
	copy(moments[:min(n, len(moments), len(q.moments))], q.moments)
	//
	return Distribution{p.weight, moments}
}

// SolveDiffEqn returns mu with mu|Delta - mu = p for the unipotent translation
// Delta = [[1,1],[0,1]], i.e. sum_{i<j} C(j,i) mu_i = p_j for every j.  This
// requires p_0 = 0.  The top moment of mu is left undetermined, and each step
// divides by j which loses v_p(j) digits of precision.
func (p Distribution) SolveDiffEqn() (Distribution, error) {
	if !p.moments[0].IsZero() {
		return Distribution{}, fmt.Errorf("%w (total measure %s)", ErrNotSolvable, p.moments[0])
	}
	//
	var (
		r       = p.Ring()
		d       = len(p.moments)
		moments = make([]padic.Element, d)
	)
	//
	for j := 1; j < d; j++ {
		acc := p.moments[j]
		for i := 0; i < j-1; i++ {
			acc = acc.Sub(moments[i].Mul(r.FromBigInt(vmath.Binomial(j, i))))
		}
		//
		moments[j-1] = acc.Div(r.FromInt64(int64(j)))
	}
	//
	moments[d-1] = r.BigOh(0)
	//
	return Distribution{p.weight, moments}, nil
}

func (p Distribution) String() string {
	var b strings.Builder
	//
	for i, m := range p.moments {
		if i != 0 {
			b.WriteString(", ")
		}
		//
		b.WriteString(m.String())
	}
	//
	return "(" + b.String() + ")"
}

func (p Distribution) check(q Distribution) {
	if len(p.moments) != len(q.moments) {
		panic(fmt.Sprintf("incompatible distributions (%d vs %d moments)", len(p.moments), len(q.moments)))
	}
}
