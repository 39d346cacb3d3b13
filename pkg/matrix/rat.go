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
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("singular matrix")

// Rat is an exact 2x2 matrix over the rationals, stored row-major as
// (a, b, c, d) for [[a, b], [c, d]].  Group elements handed over by the
// double-coset tables are of this form, and are only embedded into the p-adic
// ring when an action needs them.  Entries are never modified in place.
type Rat [4]*big.Rat

// NewRat constructs a rational matrix from machine integers.
func NewRat(a, b, c, d int64) Rat {
	return Rat{big.NewRat(a, 1), big.NewRat(b, 1), big.NewRat(c, 1), big.NewRat(d, 1)}
}

// IdentityRat returns the 2x2 identity.
func IdentityRat() Rat {
	return NewRat(1, 0, 0, 1)
}

// ParseRat parses a matrix from four rationals given row-major, such as
// ["1", "1/2", "0", "5"].
func ParseRat(entries []string) (Rat, error) {
	var m Rat
	//
	if len(entries) != 4 {
		return m, fmt.Errorf("expected 4 matrix entries, found %d", len(entries))
	}
	//
	for i, s := range entries {
		q, ok := new(big.Rat).SetString(strings.TrimSpace(s))
		if !ok {
			return m, fmt.Errorf("invalid matrix entry %q", s)
		}
		//
		m[i] = q
	}
	//
	return m, nil
}

// Entries returns the four entries a, b, c, d.
func (m Rat) Entries() (*big.Rat, *big.Rat, *big.Rat, *big.Rat) {
	return m[0], m[1], m[2], m[3]
}

// Mul returns the product m*n.
func (m Rat) Mul(n Rat) Rat {
	return Rat{
		dot(m[0], n[0], m[1], n[2]),
		dot(m[0], n[1], m[1], n[3]),
		dot(m[2], n[0], m[3], n[2]),
		dot(m[2], n[1], m[3], n[3]),
	}
}

// Scale returns q*m.
func (m Rat) Scale(q *big.Rat) Rat {
	var r Rat
	for i := range m {
		r[i] = new(big.Rat).Mul(m[i], q)
	}
	//
	return r
}

// Det returns the determinant ad - bc.
func (m Rat) Det() *big.Rat {
	bc := new(big.Rat).Mul(m[1], m[2])
	return bc.Sub(new(big.Rat).Mul(m[0], m[3]), bc)
}

// Adjugate returns [[d, -b], [-c, a]].
func (m Rat) Adjugate() Rat {
	return Rat{
		new(big.Rat).Set(m[3]),
		new(big.Rat).Neg(m[1]),
		new(big.Rat).Neg(m[2]),
		new(big.Rat).Set(m[0]),
	}
}

// Inverse returns m^-1, or ErrSingular.
func (m Rat) Inverse() (Rat, error) {
	det := m.Det()
	if det.Sign() == 0 {
		return Rat{}, ErrSingular
	}
	//
	return m.Adjugate().Scale(det.Inv(det)), nil
}

// Equal determines whether two matrices are identical.
func (m Rat) Equal(n Rat) bool {
	for i := range m {
		if m[i].Cmp(n[i]) != 0 {
			return false
		}
	}
	//
	return true
}

func (m Rat) String() string {
	return fmt.Sprintf("[[%s, %s], [%s, %s]]", m[0].RatString(), m[1].RatString(), m[2].RatString(),
		m[3].RatString())
}

func dot(a, b, c, d *big.Rat) *big.Rat {
	cd := new(big.Rat).Mul(c, d)
	return cd.Add(new(big.Rat).Mul(a, b), cd)
}
