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
package action

import (
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
)

// Adjuster extracts the tuple (a, b, c, d) from which the weight-k action of
// a matrix is built.  Different sources of group elements use different
// conventions, and this is how they are reconciled.
type Adjuster interface {
	Adjust(g matrix.M2) (padic.Element, padic.Element, padic.Element, padic.Element)
}

var (
	// Standard reads the entries of g in order.
	Standard Adjuster = standard{}
	// Tree reads (d, b, c, a), the convention of matrices arising from
	// Bruhat-Tits tree quotients.
	Tree Adjuster = tree{}
	// Adjugate reads (d, -b, -c, a), i.e. the entries of the adjugate of g.
	Adjugate Adjuster = adjugate{}
)

type standard struct{}

func (standard) Adjust(g matrix.M2) (padic.Element, padic.Element, padic.Element, padic.Element) {
	return g.Entries()
}

type tree struct{}

func (tree) Adjust(g matrix.M2) (padic.Element, padic.Element, padic.Element, padic.Element) {
	a, b, c, d := g.Entries()
	return d, b, c, a
}

type adjugate struct{}

func (adjugate) Adjust(g matrix.M2) (padic.Element, padic.Element, padic.Element, padic.Element) {
	a, b, c, d := g.Entries()
	return d, b.Neg(), c.Neg(), a
}

// Character is a multiplicative character applied to the (adjusted) leading
// entry of a matrix.
type Character interface {
	Eval(a padic.Element) padic.Element
}

// TeichmullerCharacter is the character a -> ω(a)^Power, where ω is the
// Teichmüller character.
type TeichmullerCharacter struct {
	Power int
}

// Eval implementation for the Character interface.
func (c TeichmullerCharacter) Eval(a padic.Element) padic.Element {
	return a.Teichmuller().Pow(c.Power)
}
