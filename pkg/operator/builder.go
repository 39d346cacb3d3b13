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
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	"github.com/puzpuzpuz/xsync/v3"
	log "github.com/sirupsen/logrus"
)

// ErrLabelOutOfRange is returned when an operator refers to a label which does
// not exist.
var ErrLabelOutOfRange = form.ErrLabelOutOfRange

// Builder applies double-coset operators to forms over a given source.  The
// acting matrices of each operator are embedded once and then reused, hence a
// builder is tied to one embedding and may be shared between goroutines.
type Builder struct {
	source    source.Source
	action    *action.WeightKAction
	embedding source.Embedding
	// Embedded matrices r = p^-power * T * acter, indexed by operator name and
	// then by piece and output index.
	prepared *xsync.MapOf[string, [][]matrix.M2]
}

// UpOptions control the application of U_p.
type UpOptions struct {
	// Scale drops the normalising factor p^(k/2).
	Scale bool
	// FixLowDegree overwrites the bottom k+1 moments of the image with those
	// of the input, so that U_p preserves the classical part exactly.
	FixLowDegree bool
}

// NewBuilder constructs a builder over a given source.
func NewBuilder(src source.Source, act *action.WeightKAction, embedding source.Embedding) *Builder {
	return &Builder{src, act, embedding, xsync.NewMapOf[string, [][]matrix.M2]()}
}

// Source returns the source of double-coset data.
func (b *Builder) Source() source.Source {
	return b.source
}

// Action returns the weight-k action used by this builder.
func (b *Builder) Action() *action.WeightKAction {
	return b.action
}

// Apply an operator to a form.  For each output index j, this sums the value
// at the label of every piece acted on by r = p^-power * T * acter, and then
// multiplies by the given factor.  When fixLowDegree is set, the bottom k+1
// moments of the result are taken from the input.
func (b *Builder) Apply(f form.Form, op source.Operator, factor padic.Element, fixLowDegree bool) (form.Form, error) {
	n := f.Len()
	//
	if err := op.Validate(n); err != nil {
		return form.Form{}, err
	}
	//
	rs, err := b.prepare(op)
	if err != nil {
		return form.Form{}, err
	}
	//
	values := make([]dist.Distribution, n)
	//
	for j := 0; j < n; j++ {
		acc := dist.Zero(f.Ring(), f.Weight(), f.Depth())
		//
		for i, piece := range op.Pieces {
			v, err := f.Resolve(piece.Corrections[j].Label)
			if err != nil {
				return form.Form{}, fmt.Errorf("%s piece %d index %d: %w", op.Name, i, j, err)
			}
			//
			w, err := b.action.Act(v, rs[i][j])
			if err != nil {
				return form.Form{}, fmt.Errorf("%s piece %d index %d: %w", op.Name, i, j, err)
			}
			//
			acc = acc.Add(w)
		}
		//
		acc = acc.Scale(factor)
		//
		if fixLowDegree {
			acc = acc.WithLowMoments(f.Value(j), f.Weight()+1)
		}
		//
		values[j] = acc
	}
	//
	log.Debugf("applied %s (%d pieces) to %d values", op.Name, len(op.Pieces), n)
	//
	return form.New(f.Source(), values)
}

// Hecke applies T_ell.  For ell = p this is U_p.
func (b *Builder) Hecke(f form.Form, ell uint64) (form.Form, error) {
	if ell == b.source.Prime() {
		return b.Up(f, UpOptions{})
	}
	//
	op, err := b.source.HeckeData(ell)
	if err != nil {
		return form.Form{}, err
	}
	//
	factor, err := b.normalization(f, ell, false)
	if err != nil {
		return form.Form{}, err
	}
	//
	return b.Apply(f, op, factor, false)
}

// AtkinLehner applies the Atkin-Lehner involution W_q.
func (b *Builder) AtkinLehner(f form.Form, q uint64) (form.Form, error) {
	op, err := b.source.AtkinLehnerData(q)
	if err != nil {
		return form.Form{}, err
	} else if len(op.Pieces) != 1 {
		return form.Form{}, fmt.Errorf("%s has %d pieces, expected one", op.Name, len(op.Pieces))
	}
	//
	return b.Apply(f, op, f.Ring().One(), false)
}

// Up applies the U_p operator.
func (b *Builder) Up(f form.Form, opts UpOptions) (form.Form, error) {
	op, err := b.source.UpData()
	if err != nil {
		return form.Form{}, err
	}
	//
	factor, err := b.normalization(f, b.source.Prime(), opts.Scale)
	if err != nil {
		return form.Form{}, err
	}
	//
	return b.Apply(f, op, factor, opts.FixLowDegree)
}

// Embedding returns the embedding of matrices into the p-adic numbers.
func (b *Builder) Embedding() source.Embedding {
	return b.embedding
}

// Purge forgets all prepared operators.
func (b *Builder) Purge() {
	b.prepared.Clear()
}

// Determine the scalar by which T_ell is normalised.
func (b *Builder) normalization(f form.Form, ell uint64, scale bool) (padic.Element, error) {
	r := f.Ring()
	//
	if b.source.Normalization() == source.NormalizeNone || (scale && ell == b.source.Prime()) {
		return r.One(), nil
	} else if f.Weight()%2 != 0 {
		return padic.Element{}, errors.New("tree normalisation requires even weight")
	}
	//
	factor := r.FromUint64(ell).Pow(f.Weight() / 2)
	//
	if ell != b.source.Prime() && b.source.Level()%ell == 0 {
		factor = factor.Div(r.FromUint64(ell + 1))
	}
	//
	return factor, nil
}

// Embed the acting matrices of an operator, reusing earlier work when the
// operator has been seen before.
func (b *Builder) prepare(op source.Operator) ([][]matrix.M2, error) {
	if op.Name != "" {
		if rs, ok := b.prepared.Load(op.Name); ok && len(rs) == len(op.Pieces) {
			return rs, nil
		}
	}
	//
	p := b.source.Prime()
	rs := make([][]matrix.M2, len(op.Pieces))
	//
	for i, piece := range op.Pieces {
		rs[i] = make([]matrix.M2, len(piece.Corrections))
		//
		for j, c := range piece.Corrections {
			g := form.Correct(p, c.Power, c.T).Mul(piece.Acter)
			//
			m, err := b.embedding.Embed(g)
			if err != nil {
				return nil, err
			}
			//
			rs[i][j] = m
		}
	}
	//
	if op.Name != "" {
		b.prepared.Store(op.Name, rs)
	}
	//
	return rs, nil
}
