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
	"fmt"

	"github.com/consensys/go-padic/pkg/padic"
)

// Dense is a rows x cols matrix over the p-adic numbers, stored row-major.  A
// Dense matrix is treated as immutable once constructed, which allows acting
// matrices to be shared out of a cache.
type Dense struct {
	rows int
	cols int
	data []padic.Element
}

// NewDense constructs a matrix from row-major data.
func NewDense(rows, cols int, data []padic.Element) *Dense {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("invalid matrix data (expected %d entries, found %d)", rows*cols, len(data)))
	}
	//
	return &Dense{rows, cols, data}
}

// Zeros constructs a matrix of exact zeros.
func Zeros(r *padic.Ring, rows, cols int) *Dense {
	data := make([]padic.Element, rows*cols)
	for i := range data {
		data[i] = r.Zero()
	}
	//
	return &Dense{rows, cols, data}
}

// Identity constructs the n x n identity.
func Identity(r *padic.Ring, n int) *Dense {
	m := Zeros(r, n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = r.One()
	}
	//
	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Dense) Cols() int {
	return m.cols
}

// At returns the entry at row i, column j.
func (m *Dense) At(i, j int) padic.Element {
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) []padic.Element {
	return append([]padic.Element(nil), m.data[i*m.cols:(i+1)*m.cols]...)
}

// Transpose returns the transpose of this matrix.
func (m *Dense) Transpose() *Dense {
	data := make([]padic.Element, len(m.data))
	//
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	//
	return &Dense{m.cols, m.rows, data}
}

// Mul returns the product m*n, panicking on mismatched dimensions.
func (m *Dense) Mul(n *Dense) *Dense {
	if m.cols != n.rows {
		panic(fmt.Sprintf("incompatible dimensions (%dx%d * %dx%d)", m.rows, m.cols, n.rows, n.cols))
	}
	//
	data := make([]padic.Element, m.rows*n.cols)
	//
	for i := 0; i < m.rows; i++ {
		for j := 0; j < n.cols; j++ {
			acc := m.At(i, 0).Mul(n.At(0, j))
			for k := 1; k < m.cols; k++ {
				acc = acc.Add(m.At(i, k).Mul(n.At(k, j)))
			}
			//
			data[i*n.cols+j] = acc
		}
	}
	//
	return &Dense{m.rows, n.cols, data}
}

// Scale returns e*m.
func (m *Dense) Scale(e padic.Element) *Dense {
	data := make([]padic.Element, len(m.data))
	for i, x := range m.data {
		data[i] = x.Mul(e)
	}
	//
	return &Dense{m.rows, m.cols, data}
}

// Sub returns m - n.
func (m *Dense) Sub(n *Dense) *Dense {
	if m.rows != n.rows || m.cols != n.cols {
		panic("incompatible dimensions")
	}
	//
	data := make([]padic.Element, len(m.data))
	for i, x := range m.data {
		data[i] = x.Sub(n.data[i])
	}
	//
	return &Dense{m.rows, m.cols, data}
}

// IsZero returns true if every entry is zero to its precision.
func (m *Dense) IsZero() bool {
	for _, x := range m.data {
		if !x.IsZero() {
			return false
		}
	}
	//
	return true
}

// VecMul returns the row vector v*m.
func (m *Dense) VecMul(v []padic.Element) []padic.Element {
	if len(v) != m.rows {
		panic(fmt.Sprintf("incompatible dimensions (%d * %dx%d)", len(v), m.rows, m.cols))
	}
	//
	out := make([]padic.Element, m.cols)
	//
	for j := 0; j < m.cols; j++ {
		acc := v[0].Mul(m.At(0, j))
		for i := 1; i < m.rows; i++ {
			acc = acc.Add(v[i].Mul(m.At(i, j)))
		}
		//
		out[j] = acc
	}
	//
	return out
}

// MulVec returns the column vector m*v.
func (m *Dense) MulVec(v []padic.Element) []padic.Element {
	if len(v) != m.cols {
		panic(fmt.Sprintf("incompatible dimensions (%dx%d * %d)", m.rows, m.cols, len(v)))
	}
	//
	out := make([]padic.Element, m.rows)
	//
	for i := 0; i < m.rows; i++ {
		acc := m.At(i, 0).Mul(v[0])
		for j := 1; j < m.cols; j++ {
			acc = acc.Add(m.At(i, j).Mul(v[j]))
		}
		//
		out[i] = acc
	}
	//
	return out
}
