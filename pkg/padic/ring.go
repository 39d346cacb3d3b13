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
	"math"
	"math/big"

	vmath "github.com/consensys/go-padic/pkg/util/math"
)

// exactPrecision is the absolute precision of an exact zero.
const exactPrecision = math.MaxInt32

// Ring represents the p-adic numbers Q_p for a fixed prime p, modelled with
// capped relative precision.  That is, every nonzero element stores at most
// cap digits past its valuation.  A Ring is immutable once constructed and is
// safe to share between goroutines.
type Ring struct {
	// The prime p as a machine word.
	prime uint64
	// The prime p as a big integer.
	p *big.Int
	// Relative precision cap.
	cap int
	// Cached powers p^0 .. p^(2*cap).
	powers []*big.Int
}

// NewRing constructs the ring of p-adic numbers for a given prime and relative
// precision cap.
func NewRing(prime uint64, cap int) (*Ring, error) {
	if !vmath.IsPrime(prime) {
		return nil, fmt.Errorf("%d is not prime", prime)
	} else if cap < 1 {
		return nil, fmt.Errorf("invalid precision cap %d", cap)
	}
	//
	p := new(big.Int).SetUint64(prime)
	powers := make([]*big.Int, 2*cap+1)
	powers[0] = big.NewInt(1)
	//
	for i := 1; i < len(powers); i++ {
		powers[i] = new(big.Int).Mul(powers[i-1], p)
	}
	//
	return &Ring{prime, p, cap, powers}, nil
}

// MustRing constructs a ring, panicking on an invalid prime or precision.
func MustRing(prime uint64, cap int) *Ring {
	r, err := NewRing(prime, cap)
	if err != nil {
		panic(err)
	}
	//
	return r
}

// WithCap returns a ring over the same prime with a different precision cap.
func (r *Ring) WithCap(cap int) *Ring {
	return MustRing(r.prime, cap)
}

// Prime returns the prime p of this ring.
func (r *Ring) Prime() uint64 {
	return r.prime
}

// Cap returns the relative precision cap of this ring.
func (r *Ring) Cap() int {
	return r.cap
}

// Zero returns the exact zero.
func (r *Ring) Zero() Element {
	return r.zeroTo(exactPrecision)
}

// BigOh returns the inexact zero O(p^n).
func (r *Ring) BigOh(n int) Element {
	return r.zeroTo(n)
}

// One returns the unit element.
func (r *Ring) One() Element {
	return r.FromInt64(1)
}

// PowerOfP returns p^k for any (possibly negative) k.
func (r *Ring) PowerOfP(k int) Element {
	return Element{r, k, big.NewInt(1), k + r.cap}
}

// FromInt64 embeds a machine integer.
func (r *Ring) FromInt64(n int64) Element {
	return r.FromBigInt(big.NewInt(n))
}

// FromUint64 embeds an unsigned machine integer.
func (r *Ring) FromUint64(n uint64) Element {
	return r.FromBigInt(new(big.Int).SetUint64(n))
}

// FromBigInt embeds an integer.
func (r *Ring) FromBigInt(n *big.Int) Element {
	return r.normalize(0, n, exactPrecision)
}

// FromRat embeds a rational number.
func (r *Ring) FromRat(q *big.Rat) Element {
	if q.Sign() == 0 {
		return r.Zero()
	}
	//
	wn, un := r.split(q.Num())
	wd, ud := r.split(q.Denom())
	//
	mod := r.pow(r.cap)
	inv := new(big.Int).ModInverse(ud, mod)
	unit := un.Mul(un, inv)
	unit.Mod(unit, mod)
	//
	return Element{r, wn - wd, unit, wn - wd + r.cap}
}

// ParseRat embeds a rational number given as a string, such as "-3/7" or "12".
func (r *Ring) ParseRat(s string) (Element, error) {
	q, ok := new(big.Rat).SetString(s)
	if !ok {
		return Element{}, fmt.Errorf("invalid rational %q", s)
	}
	//
	return r.FromRat(q), nil
}

func (r *Ring) String() string {
	return fmt.Sprintf("Q_%d (cap %d)", r.prime, r.cap)
}

// Return p^n for n >= 0.  The result is shared and must not be modified.
func (r *Ring) pow(n int) *big.Int {
	if n < len(r.powers) {
		return r.powers[n]
	}
	//
	return new(big.Int).Exp(r.p, big.NewInt(int64(n)), nil)
}

// Split a nonzero integer n into p^w * u where u is not divisible by p.
func (r *Ring) split(n *big.Int) (int, *big.Int) {
	var (
		u   = new(big.Int).Set(n)
		q   = new(big.Int)
		rem = new(big.Int)
		w   = 0
	)
	//
	for {
		q.QuoRem(u, r.p, rem)
		if rem.Sign() != 0 {
			return w, u
		}
		//
		u.Set(q)
		w++
	}
}

func (r *Ring) zeroTo(prec int) Element {
	return Element{r, prec, nil, prec}
}

// Construct the element p^shift * n known to absolute precision prec.
func (r *Ring) normalize(shift int, n *big.Int, prec int) Element {
	if n.Sign() == 0 {
		return r.zeroTo(prec)
	}
	//
	w, u := r.split(n)
	ordp := shift + w
	//
	if prec == exactPrecision || prec-ordp > r.cap {
		prec = ordp + r.cap
	}
	//
	rel := prec - ordp
	if rel <= 0 {
		return r.zeroTo(prec)
	}
	//
	u.Mod(u, r.pow(rel))
	//
	return Element{r, ordp, u, prec}
}
