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
package math

import (
	"fmt"
	"math"
)

// PosInfinity is the valuation of zero.
var PosInfinity = Valuation{0, true}

// Valuation represents a p-adic valuation, which is either a finite (possibly
// negative) integer or positive infinity.  Positive infinity is the valuation
// of zero and is larger than every finite valuation.
type Valuation struct {
	// finite value (meaningless when infinite)
	val int
	// signals positive infinity
	inf bool
}

// Finite constructs a finite valuation.
func Finite(v int) Valuation {
	return Valuation{v, false}
}

// IsInfinite returns true if this is the valuation of zero.
func (p Valuation) IsInfinite() bool {
	return p.inf
}

// Int returns the finite value of this valuation.  This will panic if the
// valuation is infinite.
func (p Valuation) Int() int {
	if p.inf {
		panic("cannot cast infinity into an integer")
	}
	//
	return p.val
}

// IntOr returns the finite value of this valuation, or the given default if it
// is infinite.
func (p Valuation) IntOr(dflt int) int {
	if p.inf {
		return dflt
	}
	//
	return p.val
}

// Add two valuations together.  Infinity absorbs everything.
func (p Valuation) Add(o Valuation) Valuation {
	if p.inf || o.inf {
		return PosInfinity
	}
	//
	return Valuation{p.val + o.val, false}
}

// AddInt adds a finite amount to this valuation.
func (p Valuation) AddInt(n int) Valuation {
	if p.inf {
		return p
	}
	//
	return Valuation{p.val + n, false}
}

// SubInt subtracts a finite amount from this valuation.
func (p Valuation) SubInt(n int) Valuation {
	return p.AddInt(-n)
}

// Cmp compares two valuations, returning -1, 0 or 1.
func (p Valuation) Cmp(o Valuation) int {
	switch {
	case p.inf && o.inf:
		return 0
	case p.inf:
		return 1
	case o.inf:
		return -1
	case p.val < o.val:
		return -1
	case p.val > o.val:
		return 1
	default:
		return 0
	}
}

// CmpInt compares this valuation against a finite integer.
func (p Valuation) CmpInt(n int) int {
	return p.Cmp(Finite(n))
}

// Min determines the least of two valuations.
func (p Valuation) Min(o Valuation) Valuation {
	if p.Cmp(o) <= 0 {
		return p
	}
	//
	return o
}

// Max determines the greatest of two valuations.
func (p Valuation) Max(o Valuation) Valuation {
	if p.Cmp(o) >= 0 {
		return p
	}
	//
	return o
}

// Clamp converts this valuation into an integer, mapping infinity to
// math.MaxInt32.
func (p Valuation) Clamp() int {
	return p.IntOr(math.MaxInt32)
}

func (p Valuation) String() string {
	if p.inf {
		return "+∞"
	}
	//
	return fmt.Sprintf("%d", p.val)
}
