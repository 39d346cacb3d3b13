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
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/padic"
)

// ErrInconsistent is returned when a linear system has no solution.
var ErrInconsistent = errors.New("inconsistent linear system")

// Solver solves linear systems A*X = B over the p-adic numbers.  Operator
// matrices are computed against a Solver so that callers can plug in their own
// linear algebra.
type Solver interface {
	Solve(a *Dense, b *Dense) (*Dense, error)
}

// GaussSolver solves A*X = B for A of full column rank by Gaussian
// elimination, pivoting on the entry of least valuation to limit precision
// loss.
type GaussSolver struct{}

// Solve implementation for the Solver interface.
func (GaussSolver) Solve(a *Dense, b *Dense) (*Dense, error) {
	if a.rows != b.rows {
		return nil, fmt.Errorf("incompatible dimensions (%dx%d, %dx%d)", a.rows, a.cols, b.rows, b.cols)
	} else if a.rows < a.cols {
		return nil, fmt.Errorf("underdetermined system (%dx%d)", a.rows, a.cols)
	}
	// Augmented working copy
	width := a.cols + b.cols
	rows := make([][]padic.Element, a.rows)
	//
	for i := range rows {
		rows[i] = append(a.Row(i), b.Row(i)...)
	}
	//
	for c := 0; c < a.cols; c++ {
		pivot := -1
		// Choose pivot of least valuation
		for i := c; i < len(rows); i++ {
			if rows[i][c].IsZero() {
				continue
			} else if pivot < 0 || rows[i][c].Valuation().Cmp(rows[pivot][c].Valuation()) < 0 {
				pivot = i
			}
		}
		//
		if pivot < 0 {
			return nil, ErrSingular
		}
		//
		rows[c], rows[pivot] = rows[pivot], rows[c]
		inv := rows[c][c].Inverse()
		//
		for j := c; j < width; j++ {
			rows[c][j] = rows[c][j].Mul(inv)
		}
		// Eliminate column c everywhere else
		for i := range rows {
			if i == c || rows[i][c].IsZero() {
				continue
			}
			//
			f := rows[i][c]
			for j := c; j < width; j++ {
				rows[i][j] = rows[i][j].Sub(f.Mul(rows[c][j]))
			}
		}
	}
	// Remaining rows must be consistent
	for i := a.cols; i < len(rows); i++ {
		for j := a.cols; j < width; j++ {
			if !rows[i][j].IsZero() {
				return nil, ErrInconsistent
			}
		}
	}
	//
	data := make([]padic.Element, 0, a.cols*b.cols)
	for i := 0; i < a.cols; i++ {
		data = append(data, rows[i][a.cols:]...)
	}
	//
	return NewDense(a.cols, b.cols, data), nil
}
