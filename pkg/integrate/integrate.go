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
package integrate

import (
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/series"
	"github.com/consensys/go-padic/pkg/source"
	log "github.com/sirupsen/logrus"
)

// ErrNotImplemented is returned for combinations of options which have no
// known implementation.
var ErrNotImplemented = errors.New("not implemented")

// Method of integration.
type Method uint8

const (
	// Moments keeps the transported test function as an exact quotient of
	// series until it is paired with the moments.  This is the method to use.
	Moments Method = iota
	// RiemannSum evaluates a truncation of the transported test function on
	// each ball.  It loses precision, and its cost is exponential in the
	// level, so it is only useful as a cross check.
	RiemannSum
)

func (m Method) String() string {
	switch m {
	case Moments:
		return "moments"
	case RiemannSum:
		return "riemann_sum"
	default:
		return "unknown"
	}
}

// ParseMethod parses the name of a method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "moments":
		return Moments, nil
	case "riemann_sum":
		return RiemannSum, nil
	default:
		return 0, fmt.Errorf("unknown integration method %q", name)
	}
}

// Rational is a test function Num(x)/Den(x).
type Rational struct {
	Num series.Poly
	Den series.Poly
}

// Polynomial constructs the test function p(x).
func Polynomial(p series.Poly) Rational {
	return Rational{p, series.NewPoly(p.Ring(), p.Ring().One())}
}

// Integrator integrates test functions against the measure given by a form.
type Integrator struct {
	form      form.Form
	action    *action.WeightKAction
	embedding source.Embedding
	covering  source.Covering
}

// New constructs an integrator for a given form.
func New(f form.Form, act *action.WeightKAction, embedding source.Embedding, covering source.Covering) *Integrator {
	return &Integrator{f, act, embedding, covering}
}

// Integrate a test function over the balls covering the ball of a center at a
// given level.
func (in *Integrator) Integrate(fn Rational, center matrix.Rat, level int, method Method) (padic.Element, error) {
	balls, err := in.covering.Balls(center, level)
	if err != nil {
		return padic.Element{}, err
	}
	//
	value := in.form.Ring().Zero()
	//
	for i, e := range balls {
		x, err := in.integrateBall(fn, e, method)
		if err != nil {
			return padic.Element{}, fmt.Errorf("ball %d: %w", i, err)
		}
		//
		value = value.Add(x)
	}
	//
	log.Debugf("integrated over %d balls (%s)", len(balls), method)
	//
	return value, nil
}

func (in *Integrator) integrateBall(fn Rational, e matrix.Rat, method Method) (padic.Element, error) {
	k := in.form.Weight()
	//
	if k%2 != 0 {
		return padic.Element{}, fmt.Errorf("cannot integrate in odd weight %d", k)
	}
	//
	mu, err := in.form.Evaluate(e, in.action, in.embedding)
	if err != nil {
		return padic.Element{}, err
	}
	//
	g, err := in.embedding.Embed(e)
	if err != nil {
		return padic.Element{}, err
	}
	//
	var (
		a, b, c, d = g.Entries()
		twist      = g.Det().Pow(-k / 2)
		s          series.Series
	)
	//
	switch method {
	case RiemannSum:
		s, err = riemann(fn, a, b, c, d, k)
	case Moments:
		s, err = moments(fn, a, b, c, d, k, mu.Len())
	default:
		err = fmt.Errorf("unknown integration method %d", method)
	}
	//
	if err != nil {
		return padic.Element{}, err
	}
	//
	return mu.Evaluate(s.Scale(twist).Coefficients(), dist.Strict)
}

// Compute (d + cr)^k f((b + ar)/(d + cr)) to k+1 terms.
func riemann(fn Rational, a, b, c, d padic.Element, k int) (series.Series, error) {
	r := a.Ring()
	den := series.New(r, k+1, d, c)
	//
	x, err := series.New(r, k+1, b, a).Div(den)
	if err != nil {
		return series.Series{}, err
	}
	//
	fx, err := fn.Num.EvalSeries(x).Div(fn.Den.EvalSeries(x))
	if err != nil {
		return series.Series{}, err
	}
	//
	dk, err := den.Pow(k)
	if err != nil {
		return series.Series{}, err
	}
	//
	return dk.Mul(fx), nil
}

// Compute the same function as riemann, but homogenising numerator and
// denominator before dividing as series with n terms.
func moments(fn Rational, a, b, c, d padic.Element, k int, n int) (series.Series, error) {
	var (
		u   = series.Linear(b, a)
		v   = series.Linear(d, c)
		num = fn.Num.Homogenize(u, v)
		den = fn.Den.Homogenize(u, v)
	)
	//
	if e := k + fn.Den.Degree() - fn.Num.Degree(); e >= 0 {
		num = num.Mul(v.Pow(e))
	} else {
		den = den.Mul(v.Pow(-e))
	}
	//
	return num.Series(n).Div(den.Series(n))
}
