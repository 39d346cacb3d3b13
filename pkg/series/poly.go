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
	"github.com/consensys/go-padic/pkg/padic"
)

// Poly is a polynomial a_0 + a_1 x + ... + a_n x^n over the p-adic numbers.
// Unlike a Series, products are exact (no truncation).
type Poly struct {
	ring   *padic.Ring
	coeffs []padic.Element
}

// NewPoly constructs a polynomial from its coefficients, lowest degree first.
func NewPoly(r *padic.Ring, coeffs ...padic.Element) Poly {
	return Poly{r, append([]padic.Element(nil), coeffs...)}
}

// Linear constructs the polynomial c0 + c1*x.
func Linear(c0, c1 padic.Element) Poly {
	return NewPoly(c0.Ring(), c0, c1)
}

// Ring returns the coefficient ring.
func (p Poly) Ring() *padic.Ring {
	return p.ring
}

// Degree returns the formal degree (number of coefficients minus one).
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Coeff returns the coefficient of x^i, which is zero beyond the degree.
func (p Poly) Coeff(i int) padic.Element {
	if i < len(p.coeffs) {
		return p.coeffs[i]
	}
	//
	return p.ring.Zero()
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := max(len(p.coeffs), len(q.coeffs))
	cs := make([]padic.Element, n)
	//
	for i := range cs {
		cs[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	//
	return Poly{p.ring, cs}
}

// Scale returns c*p.
func (p Poly) Scale(c padic.Element) Poly {
	cs := make([]padic.Element, len(p.coeffs))
	for i, x := range p.coeffs {
		cs[i] = x.Mul(c)
	}
	//
	return Poly{p.ring, cs}
}

// Mul returns the exact product p*q.
func (p Poly) Mul(q Poly) Poly {
	if len(p.coeffs) == 0 || len(q.coeffs) == 0 {
		return Poly{p.ring, nil}
	}
	//
	cs := make([]padic.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i := range cs {
		cs[i] = p.ring.Zero()
	}
	//
	for i, x := range p.coeffs {
		for j, y := range q.coeffs {
			cs[i+j] = cs[i+j].Add(x.Mul(y))
		}
	}
	//
	return Poly{p.ring, cs}
}

// Pow returns p^k for k >= 0.
func (p Poly) Pow(k int) Poly {
	result := NewPoly(p.ring, p.ring.One())
	for i := 0; i < k; i++ {
		result = result.Mul(p)
	}
	//
	return result
}

// Eval evaluates p at a point using Horner's rule.
func (p Poly) Eval(x padic.Element) padic.Element {
	acc := p.ring.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.coeffs[i])
	}
	//
	return acc
}

// EvalSeries evaluates p at a power series using Horner's rule.
func (p Poly) EvalSeries(s Series) Series {
	acc := New(p.ring, s.Len())
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(s).Add(Constant(p.coeffs[i], s.Len()))
	}
	//
	return acc
}

// Series converts p into a series with n terms.
func (p Poly) Series(n int) Series {
	return New(p.ring, n, p.coeffs...)
}

// Homogenize returns sum_i a_i u^i v^(deg-i) for linear polynomials u and v,
// which is v^deg * p(u/v) without any division.
func (p Poly) Homogenize(u, v Poly) Poly {
	deg := p.Degree()
	acc := NewPoly(p.ring)
	//
	for i, c := range p.coeffs {
		acc = acc.Add(u.Pow(i).Mul(v.Pow(deg - i)).Scale(c))
	}
	//
	return acc
}
