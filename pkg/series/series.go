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
	"errors"
	"strings"

	"github.com/consensys/go-padic/pkg/padic"
)

// ErrNotInvertible is returned when inverting a series whose constant term is
// zero.
var ErrNotInvertible = errors.New("power series is not invertible")

// Series is a power series in one variable truncated to a fixed number of
// terms, i.e. a_0 + a_1 r + ... + a_{n-1} r^{n-1} + O(r^n).  Binary operations
// keep the lesser number of terms.
type Series struct {
	ring   *padic.Ring
	coeffs []padic.Element
}

// New constructs a series with n terms from leading coefficients, padding with
// exact zeros (or dropping trailing coefficients) as necessary.
func New(r *padic.Ring, n int, coeffs ...padic.Element) Series {
	cs := make([]padic.Element, n)
	//
	for i := range cs {
		if i < len(coeffs) {
			cs[i] = coeffs[i]
		} else {
			cs[i] = r.Zero()
		}
	}
	//
	return Series{r, cs}
}

// Constant constructs the series c + O(r^n).
func Constant(c padic.Element, n int) Series {
	return New(c.Ring(), n, c)
}

// Ring returns the coefficient ring.
func (s Series) Ring() *padic.Ring {
	return s.ring
}

// Len returns the number of terms known.
func (s Series) Len() int {
	return len(s.coeffs)
}

// Coeff returns the coefficient of r^i.
func (s Series) Coeff(i int) padic.Element {
	return s.coeffs[i]
}

// Coefficients returns a copy of the coefficients.
func (s Series) Coefficients() []padic.Element {
	return append([]padic.Element(nil), s.coeffs...)
}

// Truncate keeps at most n terms.
func (s Series) Truncate(n int) Series {
	if n >= len(s.coeffs) {
		return s
	}
	//
	return Series{s.ring, s.coeffs[:n:n]}
}

// Add returns s + t.
func (s Series) Add(t Series) Series {
	n := min(s.Len(), t.Len())
	cs := make([]padic.Element, n)
	//
	for i := range cs {
		cs[i] = s.coeffs[i].Add(t.coeffs[i])
	}
	//
	return Series{s.ring, cs}
}

// Neg returns -s.
func (s Series) Neg() Series {
	cs := make([]padic.Element, s.Len())
	for i, c := range s.coeffs {
		cs[i] = c.Neg()
	}
	//
	return Series{s.ring, cs}
}

// Sub returns s - t.
func (s Series) Sub(t Series) Series {
	return s.Add(t.Neg())
}

// Scale returns c*s.
func (s Series) Scale(c padic.Element) Series {
	cs := make([]padic.Element, s.Len())
	for i, x := range s.coeffs {
		cs[i] = x.Mul(c)
	}
	//
	return Series{s.ring, cs}
}

// Mul returns the truncated product s*t.
func (s Series) Mul(t Series) Series {
	n := min(s.Len(), t.Len())
	cs := make([]padic.Element, n)
	//
	for k := 0; k < n; k++ {
		acc := s.coeffs[0].Mul(t.coeffs[k])
		for i := 1; i <= k; i++ {
			acc = acc.Add(s.coeffs[i].Mul(t.coeffs[k-i]))
		}
		//
		cs[k] = acc
	}
	//
	return Series{s.ring, cs}
}

// Inverse returns 1/s, which exists when the constant term is nonzero.
func (s Series) Inverse() (Series, error) {
	n := s.Len()
	if n == 0 || s.coeffs[0].IsZero() {
		return Series{}, ErrNotInvertible
	}
	//
	inv0 := s.coeffs[0].Inverse()
	cs := make([]padic.Element, n)
	cs[0] = inv0
	//
	for k := 1; k < n; k++ {
		acc := s.coeffs[1].Mul(cs[k-1])
		for i := 2; i <= k; i++ {
			acc = acc.Add(s.coeffs[i].Mul(cs[k-i]))
		}
		//
		cs[k] = acc.Neg().Mul(inv0)
	}
	//
	return Series{s.ring, cs}, nil
}

// Div returns s/t.
func (s Series) Div(t Series) (Series, error) {
	inv, err := t.Inverse()
	if err != nil {
		return Series{}, err
	}
	//
	return s.Mul(inv), nil
}

// Pow returns s^k, where negative powers require s to be invertible.
func (s Series) Pow(k int) (Series, error) {
	if k < 0 {
		inv, err := s.Inverse()
		if err != nil {
			return Series{}, err
		}
		//
		return inv.Pow(-k)
	}
	//
	result := New(s.ring, s.Len(), s.ring.One())
	base := s
	//
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		//
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	//
	return result, nil
}

// Log1p returns log(1 + s) = s - s^2/2 + s^3/3 - ... summed over the given
// number of terms.  This only converges when every coefficient of s has
// positive valuation.
func (s Series) Log1p(terms int) Series {
	var (
		sum   = New(s.ring, s.Len())
		power = s
	)
	//
	for j := 1; j <= terms; j++ {
		term := power.Scale(s.ring.FromInt64(int64(j)).Inverse())
		//
		if j%2 == 0 {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
		//
		power = power.Mul(s)
	}
	//
	return sum
}

func (s Series) String() string {
	var b strings.Builder
	//
	for i, c := range s.coeffs {
		if i != 0 {
			b.WriteString(", ")
		}
		//
		b.WriteString(c.String())
	}
	//
	return "[" + b.String() + "]"
}
