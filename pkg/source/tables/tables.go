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
// Package tables provides a source of double-coset data read from YAML files.
// The tables are produced elsewhere (e.g. by a computer algebra system) and
// this package only checks and serves them.
package tables

import (
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	"gopkg.in/yaml.v3"
)

// Tables serves precomputed double-coset data.  It implements source.Source
// and source.Covering, and exposes tree or Manin views when the corresponding
// sections are present.
type Tables struct {
	name          string
	prime         uint64
	level         uint64
	indices       int
	normalization source.Normalization
	up            source.Operator
	hecke         map[uint64]source.Operator
	atkinLehner   map[uint64]source.Operator
	reductions    map[string]source.Correction
	coverings     map[string][]matrix.Rat
	coleman       []colemanEntry
	tree          *treeData
	manin         *maninData
	classical     *classicalData
	reps          []matrix.Rat
}

type colemanEntry struct {
	t1    *big.Rat
	t2    *big.Rat
	balls []matrix.Rat
}

type treeData struct {
	edgeReps    []matrix.Rat
	stabilizers [][]source.Stabilizer
}

type maninData struct {
	generators []int
	torsion    map[int]source.Torsion
	gammas     map[int]matrix.Rat
}

type classicalData struct {
	weight int
	values [][]*big.Rat
}

// Load reads tables from a YAML file.
func Load(filename string) (*Tables, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	t, err := Parse(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return t, nil
}

// Parse reads tables from YAML text, checking both the shape of the data and
// that every label is in range.
func Parse(bytes []byte) (*Tables, error) {
	var file File
	//
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, err
	} else if err := validate.Struct(&file); err != nil {
		return nil, err
	}
	//
	return build(&file)
}

func build(file *File) (*Tables, error) {
	var err error
	//
	t := &Tables{
		name:        file.Name,
		prime:       file.Prime,
		level:       file.Level,
		indices:     file.Indices,
		hecke:       make(map[uint64]source.Operator),
		atkinLehner: make(map[uint64]source.Operator),
		reductions:  make(map[string]source.Correction),
		coverings:   make(map[string][]matrix.Rat),
	}
	//
	if file.Normalization == "tree" {
		t.normalization = source.NormalizeTree
	}
	//
	if t.up, err = t.operator("U_p", file.Up); err != nil {
		return nil, err
	}
	//
	for ell, pieces := range file.Hecke {
		if t.hecke[ell], err = t.operator(fmt.Sprintf("T_%d", ell), pieces); err != nil {
			return nil, err
		}
	}
	//
	for q, pieces := range file.AtkinLehner {
		if t.atkinLehner[q], err = t.operator(fmt.Sprintf("W_%d", q), pieces); err != nil {
			return nil, err
		}
	}
	//
	for _, red := range file.Reductions {
		g, err := matrix.ParseRat(red.Matrix)
		if err != nil {
			return nil, err
		}
		//
		c, err := t.correction(CorrectionFile{red.Label, red.T, red.Power})
		if err != nil {
			return nil, err
		}
		//
		t.reductions[g.String()] = c
	}
	//
	for _, cov := range file.Coverings {
		center, err := matrix.ParseRat(cov.Center)
		if err != nil {
			return nil, err
		}
		//
		if t.coverings[coveringKey(center, cov.Level)], err = parseMatrices(cov.Balls); err != nil {
			return nil, err
		}
	}
	//
	for _, col := range file.Coleman {
		if err := t.addColeman(col); err != nil {
			return nil, err
		}
	}
	//
	if file.Tree != nil {
		if t.tree, err = t.buildTree(file.Tree); err != nil {
			return nil, err
		}
	}
	//
	if file.Manin != nil {
		if t.manin, err = t.buildManin(file.Manin); err != nil {
			return nil, err
		}
	}
	//
	if file.Classical != nil {
		if t.classical, err = t.buildClassical(file.Classical); err != nil {
			return nil, err
		}
	}
	//
	if len(file.Representatives) > 0 {
		if len(file.Representatives) != t.indices {
			return nil, fmt.Errorf("expected %d representatives, found %d", t.indices, len(file.Representatives))
		} else if t.reps, err = parseMatrices(file.Representatives); err != nil {
			return nil, err
		}
	}
	//
	return t, nil
}

// Name returns the name of these tables.
func (t *Tables) Name() string {
	return t.name
}

// Prime implementation for the source.Source interface.
func (t *Tables) Prime() uint64 {
	return t.prime
}

// Level implementation for the source.Source interface.
func (t *Tables) Level() uint64 {
	return t.level
}

// NumIndices implementation for the source.Source interface.
func (t *Tables) NumIndices() int {
	return t.indices
}

// Normalization implementation for the source.Source interface.
func (t *Tables) Normalization() source.Normalization {
	return t.normalization
}

// HeckeData implementation for the source.Source interface.
func (t *Tables) HeckeData(ell uint64) (source.Operator, error) {
	if op, ok := t.hecke[ell]; ok {
		return op, nil
	}
	//
	return source.Operator{}, fmt.Errorf("%w for T_%d", source.ErrNoData, ell)
}

// AtkinLehnerData implementation for the source.Source interface.
func (t *Tables) AtkinLehnerData(q uint64) (source.Operator, error) {
	if op, ok := t.atkinLehner[q]; ok {
		return op, nil
	}
	//
	return source.Operator{}, fmt.Errorf("%w for W_%d", source.ErrNoData, q)
}

// UpData implementation for the source.Source interface.
func (t *Tables) UpData() (source.Operator, error) {
	if len(t.up.Pieces) == 0 {
		return source.Operator{}, fmt.Errorf("%w for U_%d", source.ErrNoData, t.prime)
	}
	//
	return t.up, nil
}

// Reduce implementation for the source.Source interface.
func (t *Tables) Reduce(g matrix.Rat) (source.Correction, error) {
	if c, ok := t.reductions[g.String()]; ok {
		return c, nil
	}
	//
	return source.Correction{}, fmt.Errorf("no reduction for %s", g)
}

// Representative implementation for the source.Representatives interface.
// Explicit representatives take priority over tree edge representatives.
func (t *Tables) Representative(i int) (matrix.Rat, error) {
	switch {
	case i < 0 || i >= t.indices:
		return matrix.Rat{}, fmt.Errorf("index %d out of range", i)
	case t.reps != nil:
		return t.reps[i], nil
	case t.tree != nil:
		return t.tree.edgeReps[i], nil
	default:
		return matrix.Rat{}, fmt.Errorf("%w: no representative for index %d", source.ErrNoData, i)
	}
}

// Balls implementation for the source.Covering interface.
func (t *Tables) Balls(center matrix.Rat, level int) ([]matrix.Rat, error) {
	if balls, ok := t.coverings[coveringKey(center, level)]; ok {
		return balls, nil
	}
	//
	return nil, fmt.Errorf("no covering of %s at level %d", center, level)
}

// FindCovering implementation for the source.Covering interface.
func (t *Tables) FindCovering(t1, t2 padic.Element) ([]matrix.Rat, error) {
	r := t1.Ring()
	//
	for _, e := range t.coleman {
		if r.FromRat(e.t1).Equal(t1) && r.FromRat(e.t2).Equal(t2) {
			return e.balls, nil
		}
	}
	//
	return nil, fmt.Errorf("no covering avoiding %s and %s", t1, t2)
}

// Tree returns the tree view of these tables, if present.
func (t *Tables) Tree() (source.TreeSource, bool) {
	if t.tree == nil {
		return nil, false
	}
	//
	return treeView{t}, true
}

// Manin returns the Manin view of these tables, if present.
func (t *Tables) Manin() (source.ManinSource, bool) {
	if t.manin == nil {
		return nil, false
	}
	//
	return maninView{t}, true
}

// Classical returns the classical values (one per index) embedded in a given
// ring, together with their weight.
func (t *Tables) Classical(r *padic.Ring) (int, [][]padic.Element, error) {
	if t.classical == nil {
		return 0, nil, fmt.Errorf("%s has no classical values", t.name)
	}
	//
	values := make([][]padic.Element, len(t.classical.values))
	//
	for i, qs := range t.classical.values {
		values[i] = make([]padic.Element, len(qs))
		for j, q := range qs {
			values[i][j] = r.FromRat(q)
		}
	}
	//
	return t.classical.weight, values, nil
}

type treeView struct {
	*Tables
}

func (v treeView) EdgeRep(i int) (matrix.Rat, error) {
	if i < 0 || i >= len(v.tree.edgeReps) {
		return matrix.Rat{}, fmt.Errorf("no representative for edge %d", i)
	}
	//
	return v.tree.edgeReps[i], nil
}

func (v treeView) Stabilizers(i int) ([]source.Stabilizer, error) {
	if i < 0 || i >= v.indices {
		return nil, fmt.Errorf("no stabilizer for edge %d", i)
	} else if i >= len(v.tree.stabilizers) {
		return nil, nil
	}
	//
	return v.tree.stabilizers[i], nil
}

type maninView struct {
	*Tables
}

func (v maninView) Generators() []int {
	return v.manin.generators
}

func (v maninView) Torsion(i int) source.Torsion {
	return v.manin.torsion[i]
}

func (v maninView) Gamma(i int) matrix.Rat {
	if g, ok := v.manin.gammas[i]; ok {
		return g
	}
	//
	return matrix.IdentityRat()
}
