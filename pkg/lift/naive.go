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
package lift

import (
	"fmt"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
)

// Sources which offer a tree or Manin view of themselves, without necessarily
// being one.
type treeViewer interface {
	Tree() (source.TreeSource, bool)
}

type maninViewer interface {
	Manin() (source.ManinSource, bool)
}

// Naive lifts classical weight-k values to a form with d moments, padding
// with O(p^prec).  Over a tree quotient each value is transported by the
// inverse of its edge representative and averaged over its stabiliser.  Over
// Manin relations, torsion generators are projected and the value at the
// first generator is solved for, so that the Manin relations hold.
func Naive(b *operator.Builder, weight int, classical [][]padic.Element, d int, prec int) (form.Form, error) {
	src := b.Source()
	//
	plain, err := form.Classical(src, weight, classical, d, prec)
	if err != nil {
		return form.Form{}, err
	}
	//
	if ts, ok := treeOf(src); ok {
		return liftTree(b, ts, plain)
	} else if ms, ok := maninOf(src); ok {
		return liftManin(b, ms, plain)
	}
	//
	return plain, nil
}

func treeOf(src source.Source) (source.TreeSource, bool) {
	if ts, ok := src.(source.TreeSource); ok {
		return ts, true
	} else if v, ok := src.(treeViewer); ok {
		return v.Tree()
	}
	//
	return nil, false
}

func maninOf(src source.Source) (source.ManinSource, bool) {
	if ms, ok := src.(source.ManinSource); ok {
		return ms, true
	} else if v, ok := src.(maninViewer); ok {
		return v.Manin()
	}
	//
	return nil, false
}

func liftTree(b *operator.Builder, ts source.TreeSource, plain form.Form) (form.Form, error) {
	var (
		act    = b.Action()
		values = plain.Values()
		r      = plain.Ring()
	)
	//
	for i := range values {
		rep, err := ts.EdgeRep(i)
		if err != nil {
			return form.Form{}, err
		}
		//
		inv, err := rep.Inverse()
		if err != nil {
			return form.Form{}, fmt.Errorf("edge %d: %w", i, err)
		}
		//
		g, err := b.Embedding().Embed(inv)
		if err != nil {
			return form.Form{}, err
		}
		//
		x, err := act.ActLeft(values[i], g)
		if err != nil {
			return form.Form{}, fmt.Errorf("edge %d: %w", i, err)
		}
		//
		stabs, err := ts.Stabilizers(i)
		if err != nil {
			return form.Form{}, err
		} else if !anyNontrivial(stabs) {
			values[i] = x
			continue
		}
		// Average over the stabiliser, conjugated into the frame of the edge
		acc := dist.Zero(r, x.Weight(), x.Len())
		//
		for _, s := range stabs {
			m, err := b.Embedding().Embed(rep.Adjugate().Mul(s.Element).Mul(rep))
			if err != nil {
				return form.Form{}, err
			}
			//
			y, err := act.ActLeft(x, m)
			if err != nil {
				return form.Form{}, fmt.Errorf("edge %d: %w", i, err)
			}
			//
			acc = acc.Add(y)
		}
		//
		values[i] = acc.Scale(r.FromInt64(int64(len(stabs))).Inverse())
	}
	//
	return form.New(plain.Source(), values)
}

func anyNontrivial(stabs []source.Stabilizer) bool {
	for _, s := range stabs {
		if s.Nontrivial {
			return true
		}
	}
	//
	return false
}

func liftManin(b *operator.Builder, ms source.ManinSource, plain form.Form) (form.Form, error) {
	var (
		act    = b.Action()
		values = plain.Values()
		r      = plain.Ring()
		half   = r.FromInt64(2).Inverse()
		gens   = ms.Generators()
		// Boundary of the fundamental domain, less the two vertical lines
		t = dist.Zero(r, plain.Weight(), plain.Depth())
	)
	//
	for _, g := range gens[1:] {
		gam, err := b.Embedding().Embed(ms.Gamma(g))
		if err != nil {
			return form.Form{}, err
		}
		//
		mu := values[g]
		//
		muGam, err := act.ActRight(mu, gam)
		if err != nil {
			return form.Form{}, fmt.Errorf("generator %d: %w", g, err)
		}
		//
		switch ms.Torsion(g) {
		case source.TorsionTwo:
			values[g] = mu.Sub(muGam).Scale(half)
			t = t.Sub(values[g])
		case source.TorsionThree:
			gam2, err := b.Embedding().Embed(ms.Gamma(g).Mul(ms.Gamma(g)))
			if err != nil {
				return form.Form{}, err
			}
			//
			muGam2, err := act.ActRight(mu, gam2)
			if err != nil {
				return form.Form{}, fmt.Errorf("generator %d: %w", g, err)
			}
			//
			values[g] = mu.Scale(r.FromInt64(2)).Sub(muGam).Sub(muGam2).Scale(half)
			t = t.Sub(values[g])
		default:
			t = t.Add(muGam.Sub(mu))
		}
	}
	//
	mu, err := t.SolveDiffEqn()
	if err != nil {
		return form.Form{}, err
	}
	//
	values[gens[0]] = mu.Neg()
	//
	return form.New(plain.Source(), values)
}
