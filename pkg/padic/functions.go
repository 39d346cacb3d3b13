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
	"errors"
	"math/big"

	vmath "github.com/consensys/go-padic/pkg/util/math"
)

var (
	// ErrLogOfZero is returned when taking the logarithm of zero.
	ErrLogOfZero = errors.New("logarithm of zero")
	// ErrExpDiverges is returned when the exponential series does not converge.
	ErrExpDiverges = errors.New("exponential series does not converge")
	// ErrNoReconstruction is returned when no rational of small height matches.
	ErrNoReconstruction = errors.New("rational reconstruction failed")
)

// Teichmuller returns the Teichmüller representative of the unit part of x,
// i.e. the unique (p-1)-st root of unity congruent to it modulo p.  This
// panics for zero.
func (x Element) Teichmuller() Element {
	if x.unit == nil {
		panic("padic: teichmuller lift of zero")
	}
	//
	rel := x.prec - x.ordp
	mod := x.ring.pow(rel)
	w := new(big.Int).Set(x.unit)
	// Each step fixes one more digit.
	for i := 0; i < rel; i++ {
		w.Exp(w, x.ring.p, mod)
	}
	//
	return Element{x.ring, 0, w, rel}
}

// Log returns the Iwasawa logarithm of x, i.e. the branch with log(p) = 0.
// Hence log(x) = log(u/ω(u)) where u is the unit part of x and ω is the
// Teichmüller character.
func (x Element) Log() (Element, error) {
	if x.unit == nil {
		return Element{}, ErrLogOfZero
	}
	//
	r := x.ring
	u := x.UnitPart()
	z := u.Div(u.Teichmuller()).Sub(r.One())
	//
	if z.unit == nil {
		return z, nil
	}
	//
	var (
		target = z.prec
		sum    = r.BigOh(target)
		power  = z
	)
	//
	for n := 1; n*z.ordp-vmath.ExactLog(r.prime, uint64(n)) < target; n++ {
		term := power.Div(r.FromInt64(int64(n)))
		//
		if n%2 == 0 {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
		//
		power = power.Mul(z)
	}
	//
	return sum, nil
}

// Exp returns the p-adic exponential of x, which converges only when
// v(x) > 1/(p-1).
func (x Element) Exp() (Element, error) {
	r := x.ring
	//
	if x.unit == nil {
		return r.One().Truncate(x.prec), nil
	} else if x.ordp < 1 || (r.prime == 2 && x.ordp < 2) {
		return Element{}, ErrExpDiverges
	}
	//
	var (
		target = x.prec
		sum    = r.One().Truncate(target)
		term   = r.One()
		pm1    = int(r.prime - 1)
	)
	// Stop once the lower bound n*v(x) - (n-1)/(p-1) on v(x^n/n!) reaches the
	// target, since that bound is increasing in n.
	for n := 1; n*x.ordp*pm1-(n-1) < target*pm1; n++ {
		term = term.Mul(x).Div(r.FromInt64(int64(n)))
		sum = sum.Add(term)
	}
	//
	return sum, nil
}

// RationalReconstruction returns a rational a/b of small height congruent to x
// to its precision, with |a|, |b| <= sqrt(p^rel / 2).
func (x Element) RationalReconstruction() (*big.Rat, error) {
	if x.unit == nil {
		return new(big.Rat), nil
	}
	//
	var (
		m     = x.ring.pow(x.prec - x.ordp)
		bound = new(big.Int).Sqrt(new(big.Int).Rsh(m, 1))
		r0    = new(big.Int).Set(m)
		r1    = new(big.Int).Set(x.unit)
		s0    = big.NewInt(0)
		s1    = big.NewInt(1)
		q     = new(big.Int)
		tmp   = new(big.Int)
	)
	// Extended Euclid, maintaining r_i = s_i * unit (mod m).
	for r1.Cmp(bound) > 0 {
		q.Quo(r0, r1)
		tmp.Mul(q, r1)
		r0, r1 = r1, new(big.Int).Sub(r0, tmp)
		tmp.Mul(q, s1)
		s0, s1 = s1, new(big.Int).Sub(s0, tmp)
	}
	//
	if s1.Sign() == 0 || new(big.Int).Abs(s1).Cmp(bound) > 0 ||
		new(big.Int).GCD(nil, nil, s1, m).Cmp(big.NewInt(1)) != 0 {
		return nil, ErrNoReconstruction
	}
	//
	result := new(big.Rat).SetFrac(r1, s1)
	//
	return result.Mul(result, x.ring.PowerOfP(x.ordp).Rat()), nil
}
