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
	"fmt"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/source"
)

// Conjugation by [[1,0],[0,-1]], whose eigenspaces are the plus and minus
// parts of a form.
var minusProjector = matrix.NewRat(1, 0, 0, -1)

// Translate returns the form over target whose value at index i is
// f(m*g_i)|m, where g_i represents index i of target.  Both the evaluation of
// f and the action go through this builder's action and embedding.
func (b *Builder) Translate(f form.Form, target source.Source, m matrix.Rat) (form.Form, error) {
	reps, ok := target.(source.Representatives)
	if !ok {
		return form.Form{}, fmt.Errorf("%w: source has no representatives", source.ErrNoData)
	}
	//
	em, err := b.embedding.Embed(m)
	if err != nil {
		return form.Form{}, err
	}
	//
	values := make([]dist.Distribution, target.NumIndices())
	//
	for i := range values {
		g, err := reps.Representative(i)
		if err != nil {
			return form.Form{}, err
		}
		//
		v, err := f.Evaluate(m.Mul(g), b.action, b.embedding)
		if err != nil {
			return form.Form{}, fmt.Errorf("index %d: %w", i, err)
		}
		//
		if values[i], err = b.action.Act(v, em); err != nil {
			return form.Form{}, fmt.Errorf("index %d: %w", i, err)
		}
	}
	//
	return form.New(target, values)
}

// PlusPart returns f + f|[[1,0],[0,-1]].
func (b *Builder) PlusPart(f form.Form) (form.Form, error) {
	g, err := b.Translate(f, f.Source(), minusProjector)
	if err != nil {
		return form.Form{}, err
	}
	//
	return f.Add(g), nil
}

// MinusPart returns f - f|[[1,0],[0,-1]].
func (b *Builder) MinusPart(f form.Form) (form.Form, error) {
	g, err := b.Translate(f, f.Source(), minusProjector)
	if err != nil {
		return form.Form{}, err
	}
	//
	return f.Sub(g), nil
}
