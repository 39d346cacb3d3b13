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
package form

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	vmath "github.com/consensys/go-padic/pkg/util/math"
)

// ErrLabelOutOfRange indicates a correction refers to a label which is neither
// a representative nor the opposite of one.  This means the double-coset data
// is malformed.
var ErrLabelOutOfRange = errors.New("label out of range")

// Form is an overconvergent form (or modular symbol), i.e. an assignment of a
// distribution to every index of a source.  All values share the same weight,
// ring and number of moments.
type Form struct {
	source source.Source
	values []dist.Distribution
}

// New constructs a form from one value per index of the given source.
func New(src source.Source, values []dist.Distribution) (Form, error) {
	if len(values) != src.NumIndices() {
		return Form{}, fmt.Errorf("expected %d values, found %d", src.NumIndices(), len(values))
	}
	//
	for i, v := range values[1:] {
		if v.Len() != values[0].Len() || v.Weight() != values[0].Weight() {
			return Form{}, fmt.Errorf("value %d is incompatible with value 0", i+1)
		} else if v.Ring() != values[0].Ring() {
			return Form{}, fmt.Errorf("value %d belongs to a different ring", i+1)
		}
	}
	//
	return Form{src, append([]dist.Distribution(nil), values...)}, nil
}

// Classical constructs a form from classical weight-k values, each padded to d
// moments with O(p^prec).
func Classical(src source.Source, weight int, coeffs [][]padic.Element, d int, prec int) (Form, error) {
	values := make([]dist.Distribution, len(coeffs))
	//
	for i, c := range coeffs {
		v, err := dist.FromClassical(weight, c, d, prec)
		if err != nil {
			return Form{}, fmt.Errorf("index %d: %w", i, err)
		}
		//
		values[i] = v
	}
	//
	return New(src, values)
}

// Source returns the source this form is defined over.
func (f Form) Source() source.Source {
	return f.source
}

// Ring returns the ring of the moments.
func (f Form) Ring() *padic.Ring {
	return f.values[0].Ring()
}

// Weight returns the weight k.
func (f Form) Weight() int {
	return f.values[0].Weight()
}

// Len returns the number of indices.
func (f Form) Len() int {
	return len(f.values)
}

// Depth returns the number of moments of each value.
func (f Form) Depth() int {
	return f.values[0].Len()
}

// Value returns the value at index i.
func (f Form) Value(i int) dist.Distribution {
	return f.values[i]
}

// Values returns a copy of all values.
func (f Form) Values() []dist.Distribution {
	return append([]dist.Distribution(nil), f.values...)
}

// Resolve returns the value a label refers to.  Labels in [n, 2n) denote the
// opposite of representative label-n, whose value is negated.
func (f Form) Resolve(label int) (dist.Distribution, error) {
	n := len(f.values)
	//
	switch {
	case label >= 0 && label < n:
		return f.values[label], nil
	case label >= n && label < 2*n:
		return f.values[label-n].Neg(), nil
	default:
		return dist.Distribution{}, fmt.Errorf("%w (label %d with %d indices)", ErrLabelOutOfRange, label, n)
	}
}

// Add returns f + g.
func (f Form) Add(g Form) Form {
	return f.zip(g, dist.Distribution.Add)
}

// Sub returns f - g.
func (f Form) Sub(g Form) Form {
	return f.zip(g, dist.Distribution.Sub)
}

// Neg returns -f.
func (f Form) Neg() Form {
	return f.Map(dist.Distribution.Neg)
}

// Scale returns c*f.
func (f Form) Scale(c padic.Element) Form {
	return f.Map(func(v dist.Distribution) dist.Distribution { return v.Scale(c) })
}

// ReducePrecision keeps only the first M moments of every value.
func (f Form) ReducePrecision(M int) Form {
	return f.Map(func(v dist.Distribution) dist.Distribution { return v.ReducePrecision(M) })
}

// Map applies a function to every value.
func (f Form) Map(fn func(dist.Distribution) dist.Distribution) Form {
	values := make([]dist.Distribution, len(f.values))
	for i, v := range f.values {
		values[i] = fn(v)
	}
	//
	return Form{f.source, values}
}

// Valuation returns the least valuation of any value, or +∞ for zero.
func (f Form) Valuation() vmath.Valuation {
	v := vmath.PosInfinity
	for _, x := range f.values {
		v = v.Min(x.Valuation())
	}
	//
	return v
}

// Precision returns the least absolute precision of any moment.
func (f Form) Precision() int {
	prec := f.values[0].Precision()
	for _, x := range f.values[1:] {
		prec = min(prec, x.Precision())
	}
	//
	return prec
}

// IsZero checks whether every value vanishes to the available precision.
func (f Form) IsZero() bool {
	return f.Valuation().IsInfinite()
}

// Equal checks whether two forms agree to the available precision.
func (f Form) Equal(g Form) bool {
	if len(f.values) != len(g.values) {
		return false
	}
	//
	for i, v := range f.values {
		if !v.Equal(g.values[i]) {
			return false
		}
	}
	//
	return true
}

// Specialize returns the classical form underlying f, given by the bottom k+1
// moments of each value.
func (f Form) Specialize() [][]padic.Element {
	classical := make([][]padic.Element, len(f.values))
	for i, v := range f.values {
		classical[i] = v.Specialize()
	}
	//
	return classical
}

// Evaluate returns the value of f on an arbitrary matrix e, by reducing e to a
// representative and transporting that value.
func (f Form) Evaluate(e matrix.Rat, act *action.WeightKAction, embedding source.Embedding) (dist.Distribution, error) {
	c, err := f.source.Reduce(e)
	if err != nil {
		return dist.Distribution{}, err
	}
	//
	v, err := f.Resolve(c.Label)
	if err != nil {
		return dist.Distribution{}, err
	}
	//
	g, err := embedding.Embed(Correct(f.source.Prime(), c.Power, c.T))
	if err != nil {
		return dist.Distribution{}, err
	}
	//
	return act.Act(v, g)
}

func (f Form) String() string {
	return fmt.Sprintf("%v", f.values)
}

func (f Form) zip(g Form, fn func(dist.Distribution, dist.Distribution) dist.Distribution) Form {
	if len(f.values) != len(g.values) {
		panic(fmt.Sprintf("incompatible forms (%d vs %d values)", len(f.values), len(g.values)))
	}
	//
	values := make([]dist.Distribution, len(f.values))
	for i, v := range f.values {
		values[i] = fn(v, g.values[i])
	}
	//
	return Form{f.source, values}
}

// Correct returns p^-power * t.  Scaling happens over Q before embedding, since
// the precision of the resulting p-adic matrix depends on it.
func Correct(p uint64, power int, t matrix.Rat) matrix.Rat {
	if power == 0 {
		return t
	}
	//
	pp := new(big.Int).Exp(new(big.Int).SetUint64(p), big.NewInt(int64(max(power, -power))), nil)
	scale := new(big.Rat).SetInt(pp)
	//
	if power > 0 {
		scale.Inv(scale)
	}
	//
	return t.Scale(scale)
}
