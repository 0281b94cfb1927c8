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
package verify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/consensys/go-bcedit/pkg/graph"
	log "github.com/sirupsen/logrus"
)

// ErrVerificationUnavailable indicates the verifier could not produce a result.
var ErrVerificationUnavailable = errors.New("verification unavailable")

// Verifier statically checks a snapshot of a method body.  Verifiers may be
// invoked from any goroutine, and must not retain the snapshot.
type Verifier interface {
	Verify(ctx context.Context, snapshot *graph.Snapshot) (Result, error)
}

// Outcome is the result of verifying the graph at a given version.  The cause
// of any failure has been mapped back onto the original graph instruction.
type Outcome struct {
	Version uint64
	Result  Result
	Err     error
}

// Run a verifier synchronously against a given snapshot.
func Run(ctx context.Context, v Verifier, snapshot *graph.Snapshot) Outcome {
	res, err := v.Verify(ctx, snapshot)
	//
	if err != nil {
		return Outcome{snapshot.Version(), Result{}, fmt.Errorf("%w: %w", ErrVerificationUnavailable, err)}
	} else if res.Cause != nil {
		// Map cause back onto the graph
		res.Cause = snapshot.Original(res.Cause)
	}
	//
	return Outcome{snapshot.Version(), res, nil}
}

// Runner executes verification asynchronously, delivering outcomes on a
// channel.  Scheduling a new run cancels any run still in flight, since its
// result would be stale anyway.
type Runner struct {
	verifier Verifier
	results  chan Outcome
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewRunner constructs a runner for a given verifier.
func NewRunner(v Verifier) *Runner {
	return &Runner{verifier: v, results: make(chan Outcome, 1)}
}

// Results returns the channel on which outcomes are delivered.
func (r *Runner) Results() <-chan Outcome {
	return r.results
}

// Schedule verification of a given snapshot.  This returns immediately.
func (r *Runner) Schedule(ctx context.Context, snapshot *graph.Snapshot) {
	if r.cancel != nil {
		r.cancel()
	}
	//
	ctx, r.cancel = context.WithCancel(ctx)
	//
	r.wg.Add(1)
	//
	go func() {
		defer r.wg.Done()
		//
		outcome := Run(ctx, r.verifier, snapshot)
		//
		if ctx.Err() != nil {
			log.Debugf("verification of version %d cancelled", snapshot.Version())
			return
		}
		//
		select {
		case r.results <- outcome:
		case <-ctx.Done():
			log.Debugf("verification of version %d abandoned", snapshot.Version())
		}
	}()
}

// Close cancels any run in flight, and waits for it to finish.
func (r *Runner) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	//
	r.wg.Wait()
}
