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
package tables

import (
	"github.com/go-playground/validator/v10"
)

// File is the on-disk layout of a table of double-coset data.  Matrices are
// given row-major as four rationals, e.g. ["1", "2", "0", "5"].
type File struct {
	Name          string                 `yaml:"name" validate:"required"`
	Prime         uint64                 `yaml:"prime" validate:"required,gt=1"`
	Level         uint64                 `yaml:"level" validate:"required,gt=0"`
	Indices       int                    `yaml:"indices" validate:"required,gt=0"`
	Normalization string                 `yaml:"normalization" validate:"omitempty,oneof=none tree"`
	Up            []PieceFile            `yaml:"up" validate:"dive"`
	Hecke         map[uint64][]PieceFile `yaml:"hecke" validate:"dive,dive"`
	AtkinLehner   map[uint64][]PieceFile `yaml:"atkin_lehner" validate:"dive,len=1,dive"`
	Reductions    []ReductionFile        `yaml:"reductions" validate:"dive"`
	Coverings     []CoveringFile         `yaml:"coverings" validate:"dive"`
	Coleman       []ColemanFile          `yaml:"coleman" validate:"dive"`
	Tree          *TreeFile              `yaml:"tree"`
	Manin         *ManinFile             `yaml:"manin"`
	Classical     *ClassicalFile         `yaml:"classical"`
	// Representative matrix of each index, for sources without a tree.
	Representatives [][]string `yaml:"representatives" validate:"omitempty,dive,len=4"`
}

// PieceFile is one piece of an operator.
type PieceFile struct {
	Acter       []string         `yaml:"acter" validate:"len=4"`
	Corrections []CorrectionFile `yaml:"corrections" validate:"required,dive"`
}

// CorrectionFile is a correction for one index.
type CorrectionFile struct {
	Label int      `yaml:"label" validate:"gte=0"`
	T     []string `yaml:"t" validate:"len=4"`
	Power int      `yaml:"power"`
}

// ReductionFile is the reduction of a single matrix.
type ReductionFile struct {
	Matrix []string `yaml:"matrix" validate:"len=4"`
	Label  int      `yaml:"label" validate:"gte=0"`
	T      []string `yaml:"t" validate:"len=4"`
	Power  int      `yaml:"power"`
}

// CoveringFile lists the balls covering a ball at a given level.
type CoveringFile struct {
	Center []string   `yaml:"center" validate:"len=4"`
	Level  int        `yaml:"level" validate:"gte=0"`
	Balls  [][]string `yaml:"balls" validate:"required,dive,len=4"`
}

// ColemanFile lists the balls covering P^1 minus neighbourhoods of t1 and t2.
type ColemanFile struct {
	T1    string     `yaml:"t1" validate:"required"`
	T2    string     `yaml:"t2" validate:"required"`
	Balls [][]string `yaml:"balls" validate:"required,dive,len=4"`
}

// TreeFile holds edge representatives and stabilizers.
type TreeFile struct {
	EdgeReps    [][]string         `yaml:"edge_reps" validate:"required,dive,len=4"`
	Stabilizers [][]StabilizerFile `yaml:"stabilizers" validate:"dive,dive"`
}

// StabilizerFile is one element of an edge stabilizer.
type StabilizerFile struct {
	Element    []string `yaml:"element" validate:"len=4"`
	Nontrivial bool     `yaml:"nontrivial"`
}

// ManinFile holds Manin generators.
type ManinFile struct {
	Generators []int            `yaml:"generators" validate:"required,min=1"`
	Torsion    map[int]int      `yaml:"torsion" validate:"dive,oneof=2 3"`
	Gammas     map[int][]string `yaml:"gammas" validate:"dive,len=4"`
}

// ClassicalFile holds classical values, one per index, each given by its
// weight+1 coefficients.
type ClassicalFile struct {
	Weight int        `yaml:"weight" validate:"gte=0"`
	Values [][]string `yaml:"values" validate:"required,dive,required"`
}

var validate = validator.New()
