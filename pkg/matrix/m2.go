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
	"strings"

	"github.com/consensys/go-padic/pkg/padic"
)

// M2 is a 2x2 matrix over the p-adic numbers, stored row-major.
type M2 [4]padic.Element

// Embed coerces a rational matrix into the given p-adic ring.
func Embed(r *padic.Ring, m Rat) M2 {
	return M2{r.FromRat(m[0]), r.FromRat(m[1]), r.FromRat(m[2]), r.FromRat(m[3])}
}

// IdentityM2 returns the 2x2 identity over a given ring.
func IdentityM2(r *padic.Ring) M2 {
	return M2{r.One(), r.Zero(), r.Zero(), r.One()}
}

// Entries returns the four entries a, b, c, d.
func (m M2) Entries() (padic.Element, padic.Element, padic.Element, padic.Element) {
	return m[0], m[1], m[2], m[3]
}

// Mul returns the product m*n.
func (m M2) Mul(n M2) M2 {
	return M2{
		m[0].Mul(n[0]).Add(m[1].Mul(n[2])),
		m[0].Mul(n[1]).Add(m[1].Mul(n[3])),
		m[2].Mul(n[0]).Add(m[3].Mul(n[2])),
		m[2].Mul(n[1]).Add(m[3].Mul(n[3])),
	}
}

// Scale returns e*m.
func (m M2) Scale(e padic.Element) M2 {
	return M2{m[0].Mul(e), m[1].Mul(e), m[2].Mul(e), m[3].Mul(e)}
}

// Det returns the determinant ad - bc.
func (m M2) Det() padic.Element {
	return m[0].Mul(m[3]).Sub(m[1].Mul(m[2]))
}

// Adjugate returns [[d, -b], [-c, a]].
func (m M2) Adjugate() M2 {
	return M2{m[3], m[1].Neg(), m[2].Neg(), m[0]}
}

// Key returns a string identifying this matrix (digits and precision),
// suitable for use as a cache key.
func (m M2) Key() string {
	var b strings.Builder
	//
	for i, e := range m {
		if i != 0 {
			b.WriteByte('|')
		}
		//
		b.WriteString(e.Key())
	}
	//
	return b.String()
}

func (m M2) String() string {
	return "[[" + m[0].String() + ", " + m[1].String() + "], [" + m[2].String() + ", " + m[3].String() + "]]"
}
