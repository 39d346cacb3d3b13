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
	"errors"
	"fmt"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/operator"
	vmath "github.com/consensys/go-padic/pkg/util/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrPrecisionExhausted indicates an iteration ran out of attempts before
	// reaching the requested precision.
	ErrPrecisionExhausted = errors.New("precision exhausted")
	// ErrNonOrdinary indicates the U_p eigenvalue is not a p-adic unit.
	ErrNonOrdinary = errors.New("eigenvalue is not ordinary")
	// ErrEisensteinSuspected indicates no auxiliary prime separates the form
	// from the Eisenstein series.
	ErrEisensteinSuspected = errors.New("form appears to be Eisenstein")
)

var (
	iterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "padic",
		Subsystem: "lift",
		Name:      "iterations",
		Help:      "U_p iterations per lift.",
		Buckets:   prometheus.LinearBuckets(0, 5, 10),
	})
	outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "padic",
		Subsystem: "lift",
		Name:      "outcomes_total",
		Help:      "Completed lifts by final state.",
	}, []string{"state"})
)

// PrecisionError records how far an iteration got before giving up.
type PrecisionError struct {
	// Valuation reached by the difference of the last two iterates.
	Precision vmath.Valuation
	// Number of iterations performed.
	Iterations int
}

func (e *PrecisionError) Error() string {
	return fmt.Sprintf("%s after %d iterations (difference has valuation %s)", ErrPrecisionExhausted, e.Iterations,
		e.Precision)
}

// Unwrap makes a PrecisionError match ErrPrecisionExhausted.
func (e *PrecisionError) Unwrap() error {
	return ErrPrecisionExhausted
}

// State of a lift.
type State uint8

const (
	// StateNaive lifts hold embedded classical data.
	StateNaive State = iota
	// StateIterating lifts are being improved by U_p.
	StateIterating
	// StateConverged lifts are fixed by U_p to the target precision.
	StateConverged
	// StateFailed lifts stopped improving before reaching the target precision.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNaive:
		return "naive"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Lifter improves a naive lift into one fixed by U_p.  A lifter is used once,
// and is not safe for concurrent use.
type Lifter struct {
	builder    *operator.Builder
	form       form.Form
	target     int
	state      State
	iterations int
}

// NewLifter constructs a lifter for a naive lift, aiming for agreement of
// successive iterates modulo p^target.
func NewLifter(builder *operator.Builder, naive form.Form, target int) *Lifter {
	return &Lifter{builder: builder, form: naive, target: target}
}

// Form returns the current lift.
func (l *Lifter) Form() form.Form {
	return l.form
}

// State returns the current state.
func (l *Lifter) State() State {
	return l.state
}

// Iterations returns the number of U_p iterations performed so far.
func (l *Lifter) Iterations() int {
	return l.iterations
}

// Improve iterates U_p (scaled, with the classical moments held fixed) until
// two successive iterates agree.  Each pass must increase the valuation of
// their difference, and at most twice the target number of passes are made.
// Should the iterates still disagree modulo p^target, this fails with a
// PrecisionError.
func (l *Lifter) Improve() error {
	if l.state != StateNaive {
		return fmt.Errorf("cannot improve %s lift", l.state)
	}
	//
	var (
		opts  = operator.UpOptions{Scale: true, FixLowDegree: true}
		init  = l.form.Valuation()
		limit = 2 * l.target
		diff  = vmath.PosInfinity
		best  = vmath.Finite(0)
	)
	//
	if init.IsInfinite() {
		return l.finish(StateConverged, nil)
	}
	//
	h2, err := l.builder.Up(l.form, opts)
	if err != nil {
		return err
	}
	//
	l.state = StateIterating
	//
	for l.iterations < limit {
		l.form = h2
		l.iterations++
		//
		if h2, err = l.builder.Up(l.form, opts); err != nil {
			return l.finish(StateFailed, err)
		}
		//
		diff = h2.Sub(l.form).Valuation()
		delta := diff.SubInt(init.Int())
		//
		log.Debugf("iteration %d: difference has valuation %s", l.iterations, diff)
		//
		if delta.IsInfinite() || delta.Cmp(best) <= 0 {
			break
		}
		//
		best = delta
	}
	// Keep the newest iterate
	l.form = h2
	//
	if diff.CmpInt(init.Int()+l.target) >= 0 {
		return l.finish(StateConverged, nil)
	}
	//
	return l.finish(StateFailed, &PrecisionError{diff, l.iterations})
}

func (l *Lifter) finish(state State, err error) error {
	l.state = state
	//
	iterations.Observe(float64(l.iterations))
	outcomes.WithLabelValues(state.String()).Inc()
	//
	if err != nil {
		log.Infof("lift %s after %d iterations: %s", state, l.iterations, err)
	} else {
		log.Infof("lift %s after %d iterations", state, l.iterations)
	}
	//
	return err
}
