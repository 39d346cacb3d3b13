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
package dist

import (
	"fmt"

	"github.com/consensys/go-padic/pkg/padic"
)

// Record is the serialised form of a distribution: its weight, and each
// moment as a rational together with its absolute precision.
type Record struct {
	Weight  int            `json:"weight"`
	Moments []MomentRecord `json:"moments"`
}

// MomentRecord is a single serialised moment.
type MomentRecord struct {
	Value     string `json:"value"`
	Precision int    `json:"precision"`
}

// Record converts this distribution into its serialised form.
func (p Distribution) Record() Record {
	moments := make([]MomentRecord, len(p.moments))
	for i, m := range p.moments {
		moments[i] = MomentRecord{m.Rat().RatString(), m.Precision()}
	}
	//
	return Record{p.weight, moments}
}

// FromRecord reconstructs a distribution over a given ring from its
// serialised form.
func FromRecord(r *padic.Ring, rec Record) (Distribution, error) {
	if len(rec.Moments) == 0 {
		return Distribution{}, fmt.Errorf("distribution record without moments")
	}
	//
	moments := make([]padic.Element, len(rec.Moments))
	//
	for i, m := range rec.Moments {
		x, err := r.ParseRat(m.Value)
		if err != nil {
			return Distribution{}, fmt.Errorf("moment %d: %w", i, err)
		}
		//
		if x.IsExactZero() {
			x = r.BigOh(m.Precision)
		}
		//
		moments[i] = x.Truncate(m.Precision)
	}
	//
	return Distribution{rec.Weight, moments}, nil
}
