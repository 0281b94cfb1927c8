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

// PerfStats records the time taken, memory allocated and garbage collections
// arising from some operation.
type PerfStats struct {
	start   time.Time
	alloc   uint64
	mallocs uint64
	gcs     uint32
}

// NewPerfStats begins recording from this point.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.Mallocs, m.NumGC}
}

// Elapsed returns the time since recording began.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Log (at debug level) the difference between now and when recording began.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	log.Debugf("%s took %s using %d Kb in %d allocations (%d GC events)", prefix, p.Elapsed().Round(time.Microsecond),
		(m.TotalAlloc-p.alloc)/1024, m.Mallocs-p.mallocs, m.NumGC-p.gcs)
}
