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
	"fmt"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
)

// Record is the serialisable form of a Form.
type Record struct {
	Prime  uint64        `json:"prime"`
	Weight int           `json:"weight"`
	Values []dist.Record `json:"values"`
}

// Record returns the serialisable form of f.
func (f Form) Record() Record {
	values := make([]dist.Record, len(f.values))
	for i, v := range f.values {
		values[i] = v.Record()
	}
	//
	return Record{f.Ring().Prime(), f.Weight(), values}
}

// FromRecord reconstructs a form over a given source.
func FromRecord(src source.Source, r *padic.Ring, rec Record) (Form, error) {
	if rec.Prime != r.Prime() {
		return Form{}, fmt.Errorf("record over Q_%d read into %s", rec.Prime, r)
	}
	//
	values := make([]dist.Distribution, len(rec.Values))
	//
	for i, v := range rec.Values {
		d, err := dist.FromRecord(r, v)
		if err != nil {
			return Form{}, fmt.Errorf("value %d: %w", i, err)
		}
		//
		values[i] = d
	}
	//
	return New(src, values)
}
