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
package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PerfStats_00(t *testing.T) {
	stats := NewPerfStats()
	buf := make([][]byte, 0, 16)
	//
	for i := 0; i < 16; i++ {
		buf = append(buf, make([]byte, 1<<20))
	}
	//
	fields := stats.Fields()
	assert.Len(t, buf, 16)
	assert.GreaterOrEqual(t, fields["alloc_mb"], uint64(16))
	assert.GreaterOrEqual(t, fields["seconds"], 0.0)
	assert.Contains(t, fields, "gcs")
}
