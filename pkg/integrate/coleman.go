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
	"fmt"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/series"
	log "github.com/sirupsen/logrus"
)

// ColemanOptions control a Coleman integral.
type ColemanOptions struct {
	Method Method
	// Mult computes the multiplicative integral, i.e. the exponential of the
	// additive one corrected by a product of Teichmüller representatives.
	Mult bool
	// Twist multiplies the integrand by (r-t1)^Delta (r-t2)^(k-Delta).
	Twist bool
	Delta int
}

// Coleman integrates the logarithm of (x - t1)/(x - t2) against the measure
// given by the form, over a covering supplied for t1 and t2.
func (in *Integrator) Coleman(t1, t2 padic.Element, opts ColemanOptions) (padic.Element, error) {
	if opts.Mult && opts.Twist {
		return padic.Element{}, fmt.Errorf("%w: multiplicative integral with twist", ErrNotImplemented)
	} else if opts.Twist && (opts.Delta < 0 || opts.Delta > in.form.Weight()) {
		return padic.Element{}, fmt.Errorf("invalid twist %d in weight %d", opts.Delta, in.form.Weight())
	}
	//
	balls, err := in.covering.FindCovering(t1, t2)
	if err != nil {
		return padic.Element{}, err
	}
	//
	var (
		r        = in.form.Ring()
		value    = r.Zero()
		valueExp = r.One()
	)
	//
	for i, e := range balls {
		x, w, err := in.colemanBall(t1, t2, e, opts)
		if err != nil {
			return padic.Element{}, fmt.Errorf("ball %d: %w", i, err)
		}
		//
		value = value.Add(x)
		valueExp = valueExp.Mul(w)
	}
	//
	log.Debugf("coleman integral over %d balls (%s)", len(balls), opts.Method)
	//
	if !opts.Mult {
		return value, nil
	}
	//
	exp, err := value.Exp()
	if err != nil {
		return padic.Element{}, err
	}
	//
	return valueExp.Teichmuller().Mul(exp), nil
}

// Returns the contribution of one ball to the additive integral, and to the
// Teichmüller product (which is one unless opts.Mult holds).
func (in *Integrator) colemanBall(t1, t2 padic.Element, e matrix.Rat, opts ColemanOptions) (padic.Element,
	padic.Element, error) {
	//
	r := t1.Ring()
	//
	mu, err := in.form.Evaluate(e, in.action, in.embedding)
	if err != nil {
		return padic.Element{}, padic.Element{}, err
	}
	//
	g, err := in.embedding.Embed(e)
	if err != nil {
		return padic.Element{}, padic.Element{}, err
	}
	//
	var (
		a, b, c, d = g.Entries()
		n          = mu.Len()
		value      padic.Element
		num        = b.Sub(d.Mul(t1))
		den        = b.Sub(d.Mul(t2))
	)
	//
	if (opts.Method == RiemannSum || opts.Mult) && (num.IsZero() || den.IsZero()) {
		return padic.Element{}, padic.Element{}, fmt.Errorf("ball %s is centred on an endpoint", e)
	}
	//
	switch opts.Method {
	case RiemannSum:
		lg, err := num.Div(den).Log()
		if err != nil {
			return padic.Element{}, padic.Element{}, err
		}
		//
		if value, err = mu.Evaluate([]padic.Element{lg}, dist.Strict); err != nil {
			return padic.Element{}, padic.Element{}, err
		}
	case Moments:
		u := series.New(r, n, b, a)
		v := series.New(r, n, d, c)
		//
		y0, err := u.Sub(v.Scale(t1)).Div(u.Sub(v.Scale(t2)))
		if err != nil {
			return padic.Element{}, padic.Element{}, err
		} else if y0.Coeff(0).IsZero() {
			return padic.Element{}, padic.Element{}, fmt.Errorf("ball %s meets %s", e, t1)
		}
		//
		y0 = y0.Scale(r.PowerOfP(-y0.Coeff(0).Ordp()))
		omega := y0.Coeff(0).Teichmuller()
		poly := y0.Scale(omega.Inverse()).Sub(series.Constant(r.One(), n)).Log1p(r.Cap() + 10)
		//
		if opts.Twist {
			poly, err = twist(poly, t1, t2, opts.Delta, in.form.Weight())
			if err != nil {
				return padic.Element{}, padic.Element{}, err
			}
		}
		//
		if value, err = mu.Evaluate(poly.Coefficients(), dist.Strict); err != nil {
			return padic.Element{}, padic.Element{}, err
		}
	default:
		return padic.Element{}, padic.Element{}, fmt.Errorf("unknown integration method %d", opts.Method)
	}
	//
	if !opts.Mult {
		return value, r.One(), nil
	}
	//
	q, err := mu.Moment(0).RationalReconstruction()
	if err != nil {
		return padic.Element{}, padic.Element{}, err
	} else if !q.IsInt() {
		return padic.Element{}, padic.Element{}, fmt.Errorf("total measure %s is not an integer", q.RatString())
	}
	//
	return value, num.Div(den).Teichmuller().Pow(int(q.Num().Int64())), nil
}

// Multiply by (r - t1)^delta (r - t2)^(k - delta).
func twist(s series.Series, t1, t2 padic.Element, delta, k int) (series.Series, error) {
	var (
		r   = t1.Ring()
		one = r.One()
	)
	//
	p1, err := series.New(r, s.Len(), t1.Neg(), one).Pow(delta)
	if err != nil {
		return series.Series{}, err
	}
	//
	p2, err := series.New(r, s.Len(), t2.Neg(), one).Pow(k - delta)
	if err != nil {
		return series.Series{}, err
	}
	//
	return s.Mul(p1).Mul(p2), nil
}
