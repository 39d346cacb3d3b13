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

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	log "github.com/sirupsen/logrus"
)

// UnitRoot returns the unit root of x^2 - ap*x + p^(k+1)*eps, where eps is the
// value of the character at p (zero when p divides the level).  The root is
// the fixed point of x -> ap - p^(k+1)*eps/x, which is a contraction on the
// units whenever ap is itself a unit.
func UnitRoot(ap padic.Element, k int, eps padic.Element) (padic.Element, error) {
	if ap.IsZero() || ap.Ordp() > 0 {
		return padic.Element{}, fmt.Errorf("%w (a_p = %s)", ErrNonOrdinary, ap)
	}
	//
	var (
		r     = ap.Ring()
		c     = r.PowerOfP(k + 1).Mul(eps)
		alpha = ap
	)
	// Each step gains at least k+1 digits
	for i := 0; i <= r.Cap(); i++ {
		next := ap.Sub(c.Div(alpha))
		if next.Equal(alpha) {
			break
		}
		//
		alpha = next
	}
	//
	return alpha, nil
}

// FindAlpha returns the unit root alpha of the Hecke polynomial at p of an
// eigenform f, reading a_p off modulo p^M.
func FindAlpha(b *operator.Builder, f form.Form, M int) (padic.Element, error) {
	var (
		src = b.Source()
		r   = f.Ring()
		eps = r.One()
	)
	//
	tf, err := b.Hecke(f, src.Prime())
	if err != nil {
		return padic.Element{}, err
	}
	//
	ap, err := operator.Eigenvalue(f, tf, M)
	if err != nil {
		return padic.Element{}, fmt.Errorf("T_%d: %w", src.Prime(), err)
	}
	//
	if src.Level()%src.Prime() == 0 {
		eps = r.Zero()
	}
	//
	alpha, err := UnitRoot(ap, f.Weight(), eps)
	if err != nil {
		return padic.Element{}, err
	}
	//
	log.Debugf("a_%d = %s gives alpha = %s", src.Prime(), ap, alpha)
	//
	return alpha, nil
}

// Stabilize returns the p-stabilisation of f with respect to alpha, as a form
// over target whose indices represent the level Np.  Its value at index i is
// f(g_i) - alpha^-1 f(P*g_i)|P with P = [[p,0],[0,1]], which is a U_p
// eigenform of eigenvalue alpha whenever f is a T_p eigenform with alpha a
// root of its Hecke polynomial.
func Stabilize(b *operator.Builder, f form.Form, target source.Source, alpha padic.Element) (form.Form, error) {
	if alpha.IsZero() || alpha.Ordp() > 0 {
		return form.Form{}, fmt.Errorf("%w (alpha = %s)", ErrNonOrdinary, alpha)
	}
	//
	p := int64(target.Prime())
	//
	restricted, err := b.Translate(f, target, matrix.IdentityRat())
	if err != nil {
		return form.Form{}, err
	}
	//
	shifted, err := b.Translate(f, target, matrix.NewRat(p, 0, 0, 1))
	if err != nil {
		return form.Form{}, err
	}
	//
	return restricted.Sub(shifted.Scale(alpha.Inverse())), nil
}
