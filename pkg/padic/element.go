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
package padic

import (
	"fmt"
	"math/big"

	vmath "github.com/consensys/go-padic/pkg/util/math"
)

// Element is a p-adic number p^ordp * unit known modulo p^prec.  Elements are
// immutable values: every operation returns a fresh element and none of them
// ever extends precision.  A zero element has no unit, and is either exact or
// of the form O(p^prec).
type Element struct {
	ring *Ring
	// Valuation for nonzero elements, otherwise equal to prec.
	ordp int
	// Unit part in [0, p^(prec-ordp)), or nil for zero.
	unit *big.Int
	// Absolute precision.
	prec int
}

// Ring returns the ring this element belongs to.
func (x Element) Ring() *Ring {
	return x.ring
}

// IsZero returns true if this element is zero to its precision.
func (x Element) IsZero() bool {
	return x.unit == nil
}

// IsExactZero returns true if this element is an exact zero.
func (x Element) IsExactZero() bool {
	return x.unit == nil && x.prec == exactPrecision
}

// IsUnit returns true if this element is a p-adic unit.
func (x Element) IsUnit() bool {
	return x.unit != nil && x.ordp == 0
}

// IsIntegral returns true if this element lies in Z_p.
func (x Element) IsIntegral() bool {
	return x.unit == nil || x.ordp >= 0
}

// Valuation returns the p-adic valuation, which is +∞ for zero.
func (x Element) Valuation() vmath.Valuation {
	if x.unit == nil {
		return vmath.PosInfinity
	}
	//
	return vmath.Finite(x.ordp)
}

// Ordp returns the valuation of a nonzero element, or the absolute precision
// of a zero.
func (x Element) Ordp() int {
	return x.ordp
}

// Precision returns the absolute precision of this element.
func (x Element) Precision() int {
	return x.prec
}

// RelativePrecision returns the number of known digits past the valuation.
func (x Element) RelativePrecision() int {
	if x.unit == nil {
		return 0
	}
	//
	return x.prec - x.ordp
}

// UnitPart returns x / p^v(x).  This panics for zero.
func (x Element) UnitPart() Element {
	if x.unit == nil {
		panic("padic: unit part of zero")
	}
	//
	return Element{x.ring, 0, x.unit, x.prec - x.ordp}
}

// Add returns x + y.
func (x Element) Add(y Element) Element {
	prec := min(x.prec, y.prec)
	//
	switch {
	case x.unit == nil && y.unit == nil:
		return x.ring.zeroTo(prec)
	case x.unit == nil || x.ordp >= prec:
		return y.Truncate(prec)
	case y.unit == nil || y.ordp >= prec:
		return x.Truncate(prec)
	}
	//
	shift := min(x.ordp, y.ordp)
	n := new(big.Int).Mul(x.unit, x.ring.pow(x.ordp-shift))
	n.Add(n, new(big.Int).Mul(y.unit, x.ring.pow(y.ordp-shift)))
	//
	return x.ring.normalize(shift, n, prec)
}

// Neg returns -x.
func (x Element) Neg() Element {
	if x.unit == nil {
		return x
	}
	//
	u := new(big.Int).Sub(x.ring.pow(x.prec-x.ordp), x.unit)
	//
	return Element{x.ring, x.ordp, u, x.prec}
}

// Sub returns x - y.
func (x Element) Sub(y Element) Element {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Element) Mul(y Element) Element {
	r := x.ring
	//
	switch {
	case x.IsExactZero() || y.IsExactZero():
		return r.Zero()
	case x.unit == nil && y.unit == nil:
		return r.zeroTo(x.prec + y.prec)
	case x.unit == nil:
		return r.zeroTo(x.prec + y.ordp)
	case y.unit == nil:
		return r.zeroTo(y.prec + x.ordp)
	}
	//
	rel := min(x.prec-x.ordp, y.prec-y.ordp)
	ordp := x.ordp + y.ordp
	u := new(big.Int).Mul(x.unit, y.unit)
	u.Mod(u, r.pow(rel))
	//
	return Element{r, ordp, u, ordp + rel}
}

// Inverse returns 1/x.  As with math/big, this panics for zero.
func (x Element) Inverse() Element {
	if x.unit == nil {
		panic("padic: division by zero")
	}
	//
	rel := x.prec - x.ordp
	u := new(big.Int).ModInverse(x.unit, x.ring.pow(rel))
	//
	return Element{x.ring, -x.ordp, u, rel - x.ordp}
}

// Div returns x / y, panicking if y is zero.
func (x Element) Div(y Element) Element {
	return x.Mul(y.Inverse())
}

// Pow returns x^n for any integer n, panicking for negative powers of zero.
func (x Element) Pow(n int) Element {
	if n < 0 {
		return x.Inverse().Pow(-n)
	}
	//
	result := x.ring.One()
	base := x
	//
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		// div 2
		n >>= 1
		//
		if n > 0 {
			base = base.Mul(base)
		}
	}
	//
	return result
}

// ShiftP returns x * p^k exactly.
func (x Element) ShiftP(k int) Element {
	switch {
	case x.IsExactZero():
		return x
	case x.unit == nil:
		return x.ring.zeroTo(x.prec + k)
	default:
		return Element{x.ring, x.ordp + k, x.unit, x.prec + k}
	}
}

// Truncate reduces the absolute precision of x to at most n.
func (x Element) Truncate(n int) Element {
	switch {
	case n >= x.prec:
		return x
	case x.unit == nil:
		return x.ring.zeroTo(n)
	default:
		return x.ring.normalize(x.ordp, x.unit, n)
	}
}

// Equal returns true if x and y agree to the precision of both.
func (x Element) Equal(y Element) bool {
	return x.Sub(y).IsZero()
}

// Rat returns the rational number p^ordp * unit represented by x, where unit is
// the least nonnegative representative.
func (x Element) Rat() *big.Rat {
	if x.unit == nil {
		return new(big.Rat)
	} else if x.ordp >= 0 {
		n := new(big.Int).Mul(x.unit, x.ring.pow(x.ordp))
		return new(big.Rat).SetInt(n)
	}
	//
	return new(big.Rat).SetFrac(x.unit, x.ring.pow(-x.ordp))
}

// BigInt returns the least nonnegative integer congruent to x modulo p^prec.
// This fails if x is not integral.
func (x Element) BigInt() (*big.Int, error) {
	if !x.IsIntegral() {
		return nil, fmt.Errorf("%s is not integral", x.String())
	} else if x.unit == nil {
		return new(big.Int), nil
	}
	//
	return new(big.Int).Mul(x.unit, x.ring.pow(x.ordp)), nil
}

// Key returns a string uniquely identifying the digits and precision of x,
// suitable as a map key.
func (x Element) Key() string {
	if x.unit == nil {
		return fmt.Sprintf("O%d", x.prec)
	}
	//
	return fmt.Sprintf("%d:%s:%d", x.ordp, x.unit.Text(36), x.prec)
}
