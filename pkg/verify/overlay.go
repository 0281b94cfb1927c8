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
	"strings"

	"github.com/consensys/go-bcedit/pkg/insn"
)

// State of a verification overlay.
type State uint8

const (
	// UNVERIFIED indicates no result applies to the current version of the
	// graph.
	UNVERIFIED State = iota
	// VERIFIED indicates the result applies to the current version of the
	// graph.
	VERIFIED
)

func (s State) String() string {
	if s == VERIFIED {
		return "verified"
	}
	//
	return "unverified"
}

// Presentation style classes used for verification results.
const (
	STYLE_PASS = "verify-pass"
	STYLE_FAIL = "verify-fail"
)

// Result is the outcome of verifying a method.  When invalid, Cause optionally
// identifies the offending instruction.
type Result struct {
	Valid   bool
	Cause   insn.Instruction
	Message string
}

// Passed constructs a successful result.
func Passed() Result {
	return Result{Valid: true}
}

// Failed constructs a failed result.
func Failed(cause insn.Instruction, msg string) Result {
	return Result{false, cause, msg}
}

// Summary returns the first line of the message, truncated to at most n
// characters (when n > 0).
func (r Result) Summary(n uint) string {
	line, _, _ := strings.Cut(r.Message, "\n")
	//
	if runes := []rune(line); n > 0 && uint(len(runes)) > n {
		return string(runes[:n])
	}
	//
	return line
}

// Overlay reflects the verification status of a method onto its instructions.
// An overlay is tied to a specific version of the graph: it only becomes
// verified through a result computed against that version, and reverts to
// unverified whenever the graph changes.  Results are replaced wholesale.
type Overlay struct {
	state   State
	result  Result
	version uint64
}

// NewOverlay constructs an unverified overlay for a given graph version.
func NewOverlay(version uint64) *Overlay {
	return &Overlay{UNVERIFIED, Result{}, version}
}

// State returns the current state of the overlay.
func (o *Overlay) State() State {
	return o.state
}

// Result returns the applicable result, which is only meaningful when the
// overlay is verified.
func (o *Overlay) Result() Result {
	return o.result
}

// Version returns the graph version this overlay is tracking.
func (o *Overlay) Version() uint64 {
	return o.version
}

// Invalidate reverts the overlay to unverified, and records the new graph
// version against which results are now expected.
func (o *Overlay) Invalidate(version uint64) {
	o.state = UNVERIFIED
	o.result = Result{}
	o.version = version
}

// Apply a result computed against a given graph version.  Stale results (i.e.
// computed against a different version) are discarded, and false returned.
func (o *Overlay) Apply(version uint64, result Result) bool {
	if version != o.version {
		return false
	}
	//
	o.state = VERIFIED
	o.result = result
	//
	return true
}

// ListStyle returns the presentation style for the instruction list as a whole,
// or the empty string when unverified.
func (o *Overlay) ListStyle() string {
	switch {
	case o.state != VERIFIED:
		return ""
	case o.result.Valid:
		return STYLE_PASS
	default:
		return STYLE_FAIL
	}
}

// IsCause checks whether a given instruction is the cause of a verification
// failure in the applicable result.
func (o *Overlay) IsCause(i insn.Instruction) bool {
	return o.state == VERIFIED && !o.result.Valid && i != nil && o.result.Cause == i
}
