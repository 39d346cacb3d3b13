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
// Package source defines the collaborators which supply double-coset data to
// the lifting machinery.  Building a Bruhat-Tits quotient or a set of Manin
// relations is not done here; a Source only hands over the precomputed tables.
package source

import (
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
)

// ErrNoData is returned by a source which holds no decomposition for a
// requested operator.
var ErrNoData = errors.New("no operator data")

// Correction is the outcome of reducing a matrix g to a representative: g is
// equivalent to p^Power * T * gamma, where gamma is the representative with
// index Label.  A label in [n, 2n), for n the number of indices, refers to the
// opposite of representative Label-n.
type Correction struct {
	Label int
	T     matrix.Rat
	Power int
}

// Datum is one piece of a double-coset decomposition: an acting matrix
// together with one correction per output index.
type Datum struct {
	Acter       matrix.Rat
	Corrections []Correction
}

// Operator is a named double-coset operator, given as a sum over pieces.
type Operator struct {
	Name   string
	Pieces []Datum
}

// Validate checks every piece has one correction per index.
func (op Operator) Validate(indices int) error {
	for i, piece := range op.Pieces {
		if len(piece.Corrections) != indices {
			return fmt.Errorf("%s piece %d has %d corrections, expected %d", op.Name, i, len(piece.Corrections),
				indices)
		}
	}
	//
	return nil
}

// Normalization determines the scalar which Hecke operators are multiplied by.
type Normalization uint8

const (
	// NormalizeNone applies no scaling.
	NormalizeNone Normalization = iota
	// NormalizeTree scales T_l by l^(k/2)/(l+1) when l divides the level and
	// by l^(k/2) otherwise, as for harmonic cocycles.
	NormalizeTree
)

// Source supplies double-coset data for a fixed arithmetic group.
type Source interface {
	// Prime p.
	Prime() uint64
	// Level of the arithmetic group.
	Level() uint64
	// Number of indices (edges or generators) a form has values on.
	NumIndices() int
	// Normalization of Hecke operators.
	Normalization() Normalization
	// HeckeData returns the decomposition of T_l.
	HeckeData(ell uint64) (Operator, error)
	// AtkinLehnerData returns the decomposition of W_q, which has one piece.
	AtkinLehnerData(q uint64) (Operator, error)
	// UpData returns the decomposition of U_p.
	UpData() (Operator, error)
	// Reduce a matrix to a representative.
	Reduce(g matrix.Rat) (Correction, error)
}

// Stabilizer is an element of the stabilizer of an edge.
type Stabilizer struct {
	Element    matrix.Rat
	Nontrivial bool
}

// TreeSource is a Source arising from a Bruhat-Tits tree quotient, whose
// indices are edges.
type TreeSource interface {
	Source
	// EdgeRep returns the representative matrix of edge i.
	EdgeRep(i int) (matrix.Rat, error)
	// Stabilizers returns the stabilizer of edge i.
	Stabilizers(i int) ([]Stabilizer, error)
}

// Representatives is implemented by sources which know a matrix representing
// each index, so that forms can be evaluated at translates of an index.
type Representatives interface {
	// Representative returns the matrix representing index i.
	Representative(i int) (matrix.Rat, error)
}

// Torsion classifies a Manin generator.
type Torsion uint8

const (
	// TorsionFree generators have no torsion.
	TorsionFree Torsion = iota
	// TorsionTwo generators satisfy a relation of order two.
	TorsionTwo
	// TorsionThree generators satisfy a relation of order three.
	TorsionThree
)

// ManinSource is a Source arising from Manin relations, whose indices are
// generators.
type ManinSource interface {
	Source
	// Generators returns the generator indices, the first being the one whose
	// value is solved for.
	Generators() []int
	// Torsion classifies generator i.
	Torsion(i int) Torsion
	// Gamma returns the group element attached to generator i.
	Gamma(i int) matrix.Rat
}

// Covering supplies coverings of P^1(Q_p) by balls, each ball being the image
// of Z_p under a matrix.
type Covering interface {
	// Balls covers the ball around center at a given level.
	Balls(center matrix.Rat, level int) ([]matrix.Rat, error)
	// FindCovering covers P^1(Q_p) minus small balls around t1 and t2.
	FindCovering(t1, t2 padic.Element) ([]matrix.Rat, error)
}

// Embedding maps group elements into 2x2 matrices over Q_p.
type Embedding interface {
	Embed(g matrix.Rat) (matrix.M2, error)
}

// RingEmbedding embeds rational matrices by coercing their entries.
type RingEmbedding struct {
	Ring *padic.Ring
}

// Embed implementation for the Embedding interface.
func (e RingEmbedding) Embed(g matrix.Rat) (matrix.M2, error) {
	return matrix.Embed(e.Ring, g), nil
}
