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
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats is a snapshot of elapsed time and allocation, against which the
// cost of a computation can be reported.
type PerfStats struct {
	// Time of the snapshot
	start time.Time
	// Bytes allocated so far
	alloc uint64
	// Number of gc events so far
	gcs uint32
}

// NewPerfStats takes a snapshot now.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	start := time.Now()
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{start, m.TotalAlloc, m.NumGC}
}

// Fields returns the time, memory and gc events since the snapshot was taken.
func (p *PerfStats) Fields() log.Fields {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return log.Fields{
		"seconds":  time.Since(p.start).Seconds(),
		"alloc_mb": (m.TotalAlloc - p.alloc) / 1024 / 1024,
		"gcs":      m.NumGC - p.gcs,
	}
}

// Log reports the cost of a computation since the snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	f := p.Fields()
	log.WithFields(f).Debugf("%s took %0.2fs using %v Mb (%v GC events)", prefix, f["seconds"], f["alloc_mb"], f["gcs"])
}
