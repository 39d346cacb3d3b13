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
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	vmath "github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// AuxiliaryBound is the (exclusive) bound on the auxiliary primes searched by
// FindAuxiliaryPrime.
const AuxiliaryBound = 50

// Auxiliary is a prime q != p, not dividing the level, used to kill the
// Eisenstein part of a lift.
type Auxiliary struct {
	Q uint64
	// Eigenvalue of T_q on the classical form.
	Aq padic.Element
	// Valuation of a_q - q^(k+1) - 1.
	EisensteinLoss int
}

// FindAuxiliaryPrime searches for the least prime q below AuxiliaryBound for
// which a_q - q^(k+1) - 1 has valuation below M.  Primes for which the source
// holds no data are skipped.
func FindAuxiliaryPrime(b *operator.Builder, classical form.Form, M int) (Auxiliary, error) {
	var (
		src = b.Source()
		r   = classical.Ring()
		k   = classical.Weight()
	)
	//
	for _, q := range vmath.PrimesBelow(AuxiliaryBound) {
		if q == src.Prime() || src.Level()%q == 0 {
			continue
		}
		//
		tf, err := b.Hecke(classical, q)
		if errors.Is(err, source.ErrNoData) {
			log.Debugf("skipping auxiliary prime %d: %s", q, err)
			continue
		} else if err != nil {
			return Auxiliary{}, err
		}
		//
		aq, err := operator.Eigenvalue(classical, tf, M)
		if err != nil {
			return Auxiliary{}, fmt.Errorf("T_%d: %w", q, err)
		}
		//
		loss := aq.Sub(eisenstein(r, q, k)).Valuation()
		//
		if loss.CmpInt(M) < 0 {
			log.Debugf("auxiliary prime %d has a_q = %s (Eisenstein loss %s)", q, aq, loss)
			return Auxiliary{q, aq, loss.Int()}, nil
		}
	}
	//
	return Auxiliary{}, ErrEisensteinSuspected
}

// ExtraPrecision returns the working precision needed to obtain M correct
// moments.  This accounts for the Eisenstein loss, denominators introduced
// by solving the difference equation, and the valuation s of the form itself.
func ExtraPrecision(p uint64, M int, eisensteinLoss int, s int) int {
	var (
		newM  = M + eisensteinLoss
		eplog = 0
	)
	//
	if newM > 1 {
		eplog = vmath.ExactLog(p, uint64(newM-1))
	}
	//
	for eplog < vmath.ExactLog(p, uint64(newM+eplog)) {
		eplog = vmath.ExactLog(p, uint64(newM+eplog))
	}
	//
	newM += eplog
	//
	if s < 0 {
		newM -= s
	}
	//
	return newM
}

// Eigensymbol lifts a classical U_p-eigenform with unit eigenvalue alpha to an
// overconvergent eigenform with M correct moments.  The lift is made at a
// higher working precision, its Eisenstein part killed using an auxiliary
// prime, and then alpha^-1 U_p is iterated to a fixed point.
func Eigensymbol(b *operator.Builder, classical form.Form, alpha padic.Element, M int) (form.Form, error) {
	if M < 1 {
		return form.Form{}, fmt.Errorf("invalid target precision %d", M)
	} else if alpha.IsZero() || alpha.Ordp() > 0 {
		return form.Form{}, fmt.Errorf("%w (alpha = %s)", ErrNonOrdinary, alpha)
	}
	//
	s := classical.Valuation()
	if s.IsInfinite() {
		return form.Form{}, errors.New("cannot lift zero form")
	}
	//
	aux, err := FindAuxiliaryPrime(b, classical, M)
	if err != nil {
		return form.Form{}, err
	}
	//
	var (
		r    = classical.Ring()
		k    = classical.Weight()
		newM = ExtraPrecision(r.Prime(), M, aux.EisensteinLoss, s.Int())
		inv  = alpha.Inverse()
		opts = operator.UpOptions{Scale: true}
		eis  = eisenstein(r, aux.Q, k)
	)
	//
	if r.Cap() < newM {
		return form.Form{}, fmt.Errorf("precision cap %d below working precision %d", r.Cap(), newM)
	}
	//
	log.Debugf("lifting with %d moments (q = %d)", newM, aux.Q)
	//
	phi, err := Naive(b, k, classical.Specialize(), newM, newM)
	if err != nil {
		return form.Form{}, err
	}
	//
	if phi, err = b.Up(phi, opts); err != nil {
		return form.Form{}, err
	}
	//
	phi = phi.Scale(inv)
	// Kill Eisenstein part
	tq, err := b.Hecke(phi, aux.Q)
	if err != nil {
		return form.Form{}, err
	}
	//
	phi = phi.Scale(eis).Sub(tq)
	//
	psi, err := b.Up(phi, opts)
	if err != nil {
		return form.Form{}, err
	}
	//
	psi = psi.Scale(inv)
	attempts := 0
	//
	for ; !phi.Equal(psi) && attempts < 2*newM; attempts++ {
		log.Debugf("attempt %d: difference has valuation %s", attempts+1, phi.Sub(psi).Valuation())
		//
		phi = psi
		//
		if psi, err = b.Up(phi, opts); err != nil {
			return form.Form{}, err
		}
		//
		psi = psi.Scale(inv)
	}
	//
	iterations.Observe(float64(attempts))
	//
	if !phi.Equal(psi) {
		outcomes.WithLabelValues(StateFailed.String()).Inc()
		return form.Form{}, &PrecisionError{phi.Sub(psi).Valuation(), attempts}
	}
	//
	outcomes.WithLabelValues(StateConverged.String()).Inc()
	log.Infof("eigensymbol converged after %d attempts", attempts)
	//
	return phi.Scale(eis.Sub(aux.Aq).Inverse()).ReducePrecision(M), nil
}

// Compute q^(k+1) + 1.
func eisenstein(r *padic.Ring, q uint64, k int) padic.Element {
	return r.FromUint64(q).Pow(k + 1).Add(r.One())
}
