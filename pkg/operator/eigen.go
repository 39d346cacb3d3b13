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
package operator

import (
	"context"
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNotScalarMultiple is returned when a form is not an eigenvector of an
// operator to the requested precision.
var ErrNotScalarMultiple = errors.New("not a scalar multiple")

// Eigenvalue returns a such that Tf = a*f modulo p^(v(f)+M), where Tf is the
// image of f under some operator.  The eigenvalue is read off at a moment of
// least valuation.
func Eigenvalue(f, tf form.Form, M int) (padic.Element, error) {
	s := f.Valuation()
	//
	if s.IsInfinite() {
		return padic.Element{}, errors.New("eigenvalue of zero form")
	}
	//
	var x, y padic.Element
	// Find pivot
	for i := 0; i < f.Len() && x.Ring() == nil; i++ {
		for j, m := range f.Value(i).Moments() {
			if m.Valuation() == s {
				x, y = m, tf.Value(i).Moment(j)
				break
			}
		}
	}
	//
	a := y.Div(x)
	//
	if tf.Sub(f.Scale(a)).Valuation().CmpInt(s.Int()+M) < 0 {
		return padic.Element{}, fmt.Errorf("%w modulo p^%d", ErrNotScalarMultiple, M)
	}
	//
	return a, nil
}

// Matrix returns the matrix of an operator in a given basis, whose column j
// holds the coordinates of the image of basis[j].  Images are computed
// concurrently, with at most limit running at once (no limit if limit <= 0).
func Matrix(ctx context.Context, basis []form.Form, op func(form.Form) (form.Form, error), solver matrix.Solver,
	limit int) (*matrix.Dense, error) {
	//
	if len(basis) == 0 {
		return nil, errors.New("empty basis")
	}
	//
	images := make([]form.Form, len(basis))
	g, ctx := errgroup.WithContext(ctx)
	//
	if limit > 0 {
		g.SetLimit(limit)
	}
	//
	for i, f := range basis {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			img, err := op(f)
			if err != nil {
				return fmt.Errorf("basis element %d: %w", i, err)
			}
			//
			images[i] = img
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	log.Debugf("computed %d operator images", len(images))
	//
	return solver.Solve(columns(basis), columns(images))
}

// Arrange forms as the columns of a matrix, one row per moment of each value.
func columns(forms []form.Form) *matrix.Dense {
	var (
		n    = forms[0].Len() * forms[0].Depth()
		data = make([]padic.Element, n*len(forms))
	)
	//
	for j, f := range forms {
		for i := 0; i < f.Len(); i++ {
			for k, m := range f.Value(i).Moments() {
				data[(i*f.Depth()+k)*len(forms)+j] = m
			}
		}
	}
	//
	return matrix.NewDense(n, len(forms), data)
}
