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
package editor

import (
	"context"
	"fmt"

	"github.com/consensys/go-bcedit/pkg/verify"
	log "github.com/sirupsen/logrus"
)

// Overlay returns the verification overlay of this view.
func (v *View) Overlay() *verify.Overlay {
	return v.overlay
}

// Results returns the channel on which asynchronous verification outcomes are
// delivered, or nil when there is no verifier.  Outcomes received should be
// passed to Deliver on the owner goroutine.
func (v *View) Results() <-chan verify.Outcome {
	if v.runner == nil {
		return nil
	}
	//
	return v.runner.Results()
}

// Deliver applies a verification outcome to the overlay.  Outcomes which are
// stale (i.e. computed against an earlier version of the graph), or which
// failed, are discarded and false is returned.  A failed run against the
// current version returns the overlay to unverified.
func (v *View) Deliver(outcome verify.Outcome) bool {
	if v.closed {
		return false
	} else if outcome.Err != nil {
		log.Warnf("verification of %s failed: %s", v.method, outcome.Err)
		//
		if outcome.Version == v.overlay.Version() {
			v.overlay.Invalidate(v.graph.Version())
		}
		//
		return false
	} else if !v.overlay.Apply(outcome.Version, outcome.Result) {
		log.Infof("discarding stale verification of %s (version %d, expected %d)", v.method, outcome.Version,
			v.overlay.Version())
		//
		return false
	}
	//
	for _, o := range v.observers {
		o.Verified(v.method, outcome.Result)
	}
	//
	return true
}

// VerifyNow verifies the current version of the graph synchronously, and
// applies the outcome.
func (v *View) VerifyNow(ctx context.Context) error {
	if v.closed {
		return ErrClosed
	} else if v.verifier == nil {
		return fmt.Errorf("no verifier for %s: %w", v.method, verify.ErrVerificationUnavailable)
	}
	//
	outcome := verify.Run(ctx, v.verifier, v.graph.Snapshot())
	//
	v.Deliver(outcome)
	//
	return outcome.Err
}

// VerifyLater schedules verification of the current version of the graph in
// the background.  The outcome arrives on Results.
func (v *View) VerifyLater() error {
	if v.closed {
		return ErrClosed
	} else if v.runner == nil {
		return fmt.Errorf("no verifier for %s: %w", v.method, verify.ErrVerificationUnavailable)
	}
	//
	v.scheduleVerify()
	//
	return nil
}

func (v *View) scheduleVerify() {
	if v.runner != nil {
		v.runner.Schedule(v.ctx, v.graph.Snapshot())
	}
}
