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
	"fmt"
	"math/big"

	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/source"
)

func (t *Tables) operator(name string, pieces []PieceFile) (source.Operator, error) {
	op := source.Operator{Name: name, Pieces: make([]source.Datum, len(pieces))}
	//
	for i, piece := range pieces {
		acter, err := matrix.ParseRat(piece.Acter)
		if err != nil {
			return op, fmt.Errorf("%s piece %d: %w", name, i, err)
		}
		//
		corrections := make([]source.Correction, len(piece.Corrections))
		//
		for j, c := range piece.Corrections {
			if corrections[j], err = t.correction(c); err != nil {
				return op, fmt.Errorf("%s piece %d: %w", name, i, err)
			}
		}
		//
		op.Pieces[i] = source.Datum{Acter: acter, Corrections: corrections}
	}
	//
	if err := op.Validate(t.indices); err != nil {
		return op, err
	}
	//
	return op, nil
}

// Labels may refer to opposite edges, hence range over [0, 2n).
func (t *Tables) correction(c CorrectionFile) (source.Correction, error) {
	if c.Label >= 2*t.indices {
		return source.Correction{}, fmt.Errorf("label %d out of range", c.Label)
	}
	//
	m, err := matrix.ParseRat(c.T)
	if err != nil {
		return source.Correction{}, err
	}
	//
	return source.Correction{Label: c.Label, T: m, Power: c.Power}, nil
}

func (t *Tables) addColeman(col ColemanFile) error {
	t1, ok := new(big.Rat).SetString(col.T1)
	if !ok {
		return fmt.Errorf("invalid point %q", col.T1)
	}
	//
	t2, ok := new(big.Rat).SetString(col.T2)
	if !ok {
		return fmt.Errorf("invalid point %q", col.T2)
	}
	//
	balls, err := parseMatrices(col.Balls)
	if err != nil {
		return err
	}
	//
	t.coleman = append(t.coleman, colemanEntry{t1, t2, balls})
	//
	return nil
}

func (t *Tables) buildTree(file *TreeFile) (*treeData, error) {
	if len(file.EdgeReps) != t.indices {
		return nil, fmt.Errorf("expected %d edge representatives, found %d", t.indices, len(file.EdgeReps))
	}
	//
	reps, err := parseMatrices(file.EdgeReps)
	if err != nil {
		return nil, err
	}
	//
	stabs := make([][]source.Stabilizer, len(file.Stabilizers))
	//
	for i, stab := range file.Stabilizers {
		for _, s := range stab {
			m, err := matrix.ParseRat(s.Element)
			if err != nil {
				return nil, err
			}
			//
			stabs[i] = append(stabs[i], source.Stabilizer{Element: m, Nontrivial: s.Nontrivial})
		}
	}
	//
	return &treeData{reps, stabs}, nil
}

func (t *Tables) buildManin(file *ManinFile) (*maninData, error) {
	data := &maninData{file.Generators, make(map[int]source.Torsion), make(map[int]matrix.Rat)}
	//
	for _, g := range file.Generators {
		if g < 0 || g >= t.indices {
			return nil, fmt.Errorf("generator %d out of range", g)
		}
	}
	//
	for g, order := range file.Torsion {
		if order == 2 {
			data.torsion[g] = source.TorsionTwo
		} else {
			data.torsion[g] = source.TorsionThree
		}
	}
	//
	for g, entries := range file.Gammas {
		m, err := matrix.ParseRat(entries)
		if err != nil {
			return nil, err
		}
		//
		data.gammas[g] = m
	}
	//
	return data, nil
}

func (t *Tables) buildClassical(file *ClassicalFile) (*classicalData, error) {
	if len(file.Values) != t.indices {
		return nil, fmt.Errorf("expected %d classical values, found %d", t.indices, len(file.Values))
	}
	//
	values := make([][]*big.Rat, len(file.Values))
	//
	for i, val := range file.Values {
		if len(val) != file.Weight+1 {
			return nil, fmt.Errorf("classical value %d has %d coefficients, expected %d", i, len(val), file.Weight+1)
		}
		//
		for _, s := range val {
			q, ok := new(big.Rat).SetString(s)
			if !ok {
				return nil, fmt.Errorf("invalid coefficient %q", s)
			}
			//
			values[i] = append(values[i], q)
		}
	}
	//
	return &classicalData{file.Weight, values}, nil
}

func parseMatrices(entries [][]string) ([]matrix.Rat, error) {
	ms := make([]matrix.Rat, len(entries))
	//
	for i, e := range entries {
		m, err := matrix.ParseRat(e)
		if err != nil {
			return nil, err
		}
		//
		ms[i] = m
	}
	//
	return ms, nil
}

func coveringKey(center matrix.Rat, level int) string {
	return fmt.Sprintf("%s@%d", center, level)
}
