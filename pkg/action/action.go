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
package action

import (
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/series"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultCacheSize is the number of acting matrices retained when no cache
// size is configured.
const DefaultCacheSize = 1024

// ErrInvalidMatrix is returned for matrices which cannot act, i.e. which are
// singular or whose adjusted leading entry vanishes.
var ErrInvalidMatrix = errors.New("invalid matrix")

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "padic",
		Subsystem: "action",
		Name:      "cache_hits_total",
		Help:      "Acting matrices served from cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "padic",
		Subsystem: "action",
		Name:      "cache_misses_total",
		Help:      "Acting matrices computed afresh.",
	})
)

// Config determines a weight-k action.
type Config struct {
	// Weight k of the action.
	Weight int
	// Adjuster convention, defaulting to Standard.
	Adjuster Adjuster
	// Optional character applied to the adjusted leading entry.
	Character Character
	// Power of the determinant to twist by.
	DetTwist int
	// Act on column vectors (A*m) rather than row vectors (m*A).
	ActOnLeft bool
	// Number of acting matrices to cache, defaulting to DefaultCacheSize.
	CacheSize int
}

// WeightKAction is the action of 2x2 matrices on distributions by
//
//	(mu|g)(f) = mu((a + cy)^k f((b + dy)/(a + cy)))
//
// where (a, b, c, d) is supplied by the adjuster.  Acting matrices are cached
// per (matrix, number of moments).  The configuration of an action is fixed,
// so changing it means constructing a new action with an empty cache.
type WeightKAction struct {
	config Config
	cache  *lru.Cache[cacheKey, *matrix.Dense]
}

type cacheKey struct {
	g string
	d int
}

// New constructs a weight-k action for a given configuration.
func New(config Config) (*WeightKAction, error) {
	if config.Weight < 0 {
		return nil, fmt.Errorf("invalid weight %d", config.Weight)
	} else if config.Adjuster == nil {
		config.Adjuster = Standard
	}
	//
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultCacheSize
	}
	//
	cache, err := lru.New[cacheKey, *matrix.Dense](config.CacheSize)
	if err != nil {
		return nil, err
	}
	//
	return &WeightKAction{config, cache}, nil
}

// Config returns the configuration of this action.
func (w *WeightKAction) Config() Config {
	return w.config
}

// Weight returns the weight k of this action.
func (w *WeightKAction) Weight() int {
	return w.config.Weight
}

// WithConfig returns a new action for the given configuration.  The cache of
// the receiver is not shared, since its matrices are stale.
func (w *WeightKAction) WithConfig(config Config) (*WeightKAction, error) {
	return New(config)
}

// Purge drops all cached acting matrices.
func (w *WeightKAction) Purge() {
	w.cache.Purge()
}

// ActingMatrix returns the d x d matrix A(g) such that the moments of mu|g
// are m*A(g) (or A(g)*m when acting on the left).  The returned matrix is
// shared and must not be modified.
func (w *WeightKAction) ActingMatrix(g matrix.M2, d int) (*matrix.Dense, error) {
	key := cacheKey{g.Key(), d}
	//
	if m, ok := w.cache.Get(key); ok {
		cacheHits.Inc()
		return m, nil
	}
	//
	cacheMisses.Inc()
	//
	m, err := w.compute(g, d)
	if err != nil {
		return nil, err
	}
	//
	w.cache.Add(key, m)
	//
	return m, nil
}

// Act applies g to a distribution in the configured orientation.
func (w *WeightKAction) Act(v dist.Distribution, g matrix.M2) (dist.Distribution, error) {
	return w.act(v, g, w.config.ActOnLeft)
}

// ActLeft applies g to a distribution as a column vector, regardless of the
// configured orientation.
func (w *WeightKAction) ActLeft(v dist.Distribution, g matrix.M2) (dist.Distribution, error) {
	return w.act(v, g, true)
}

// ActRight applies g to a distribution as a row vector, regardless of the
// configured orientation.
func (w *WeightKAction) ActRight(v dist.Distribution, g matrix.M2) (dist.Distribution, error) {
	return w.act(v, g, false)
}

func (w *WeightKAction) act(v dist.Distribution, g matrix.M2, left bool) (dist.Distribution, error) {
	if v.Weight() != w.config.Weight {
		return dist.Distribution{}, fmt.Errorf("weight %d distribution under weight %d action", v.Weight(),
			w.config.Weight)
	}
	//
	m, err := w.ActingMatrix(g, v.Len())
	if err != nil {
		return dist.Distribution{}, err
	}
	//
	if left {
		return dist.New(v.Weight(), m.MulVec(v.Moments())), nil
	}
	//
	return dist.New(v.Weight(), m.VecMul(v.Moments())), nil
}

// Row i of the transpose holds the coefficients of (a+cy)^k ((b+dy)/(a+cy))^i.
func (w *WeightKAction) compute(g matrix.M2, d int) (*matrix.Dense, error) {
	a, b, c, dd := w.config.Adjuster.Adjust(g)
	det := a.Mul(dd).Sub(b.Mul(c))
	//
	if det.IsZero() {
		return nil, fmt.Errorf("%w: %s is singular", ErrInvalidMatrix, g)
	} else if a.IsZero() {
		return nil, fmt.Errorf("%w: %s has vanishing leading entry", ErrInvalidMatrix, g)
	}
	//
	r := a.Ring()
	lin := series.New(r, d, a, c)
	//
	scale, err := series.New(r, d, b, dd).Div(lin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMatrix, err.Error())
	}
	//
	row, err := lin.Pow(w.config.Weight)
	if err != nil {
		return nil, err
	}
	//
	data := make([]padic.Element, 0, d*d)
	//
	for i := 0; i < d; i++ {
		data = append(data, row.Coefficients()...)
		row = row.Mul(scale)
	}
	//
	m := matrix.NewDense(d, d, data).Transpose()
	//
	if w.config.DetTwist != 0 || w.config.Character != nil {
		factor := det.Pow(w.config.DetTwist)
		//
		if w.config.Character != nil {
			factor = factor.Mul(w.config.Character.Eval(a))
		}
		//
		m = m.Scale(factor)
	}
	//
	return m, nil
}
