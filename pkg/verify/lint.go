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
	"fmt"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
)

// IssueType classifies the issues found by the lint verifier.
type IssueType uint8

const (
	// DANGLING is a reference to a label not in the method.
	DANGLING IssueType = iota
	// FALL_OFF is when control can run past the last instruction.
	FALL_OFF
	// BAD_SLOT is an access to a local variable slot beyond max locals.
	BAD_SLOT
	// BAD_SWITCH is a table switch whose labels do not match its key range.
	BAD_SWITCH
	// EMPTY is a method body without instructions.
	EMPTY
)

var issueNames = [...]string{"dangling", "fall-off", "slot", "switch", "empty"}

func (t IssueType) String() string {
	return issueNames[t]
}

// Issue describes a single problem found by the lint verifier.
type Issue struct {
	Type    IssueType
	Insn    insn.Instruction
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Type, i.Message)
}

// Lint is a lightweight structural verifier.  It does not perform frame
// analysis, but catches the mistakes most commonly introduced by editing:
// dangling label references, control falling off the end of the method, slots
// beyond max locals and inconsistent table switches.
type Lint struct {
	MaxLocals uint
}

// Verify implementation for the Verifier interface.  The first issue found
// determines the cause, whilst the message lists all issues (one per line).
func (l Lint) Verify(ctx context.Context, snapshot *graph.Snapshot) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	//
	issues := l.Check(snapshot.Instructions())
	//
	if len(issues) == 0 {
		return Passed(), nil
	}
	//
	msg := issues[0].Message
	//
	for _, issue := range issues[1:] {
		msg = msg + "\n" + issue.Message
	}
	//
	return Failed(issues[0].Insn, msg), nil
}

// Check a sequence of instructions, returning all issues found in order.
func (l Lint) Check(insns []insn.Instruction) []Issue {
	var (
		issues  []Issue
		defined = make(map[*insn.Label]bool)
		last    insn.Instruction
	)
	//
	if len(insns) == 0 {
		return []Issue{{EMPTY, nil, "method has no instructions"}}
	}
	//
	for _, i := range insns {
		if label, ok := i.(*insn.Label); ok {
			defined[label] = true
		}
	}
	//
	for index, i := range insns {
		for _, target := range i.Targets() {
			if !defined[target] {
				issues = append(issues, Issue{DANGLING, i, fmt.Sprintf("instruction %d (%v) refers to missing label",
					index, i)})
			}
		}
		//
		if slot, ok := insn.SlotOf(i); ok {
			size := uint(1)
			//
			if k := i.Opcode().SlotKind(); k == insn.LONG_SLOT || k == insn.DOUBLE_SLOT {
				size = 2
			}
			//
			if slot+size > l.MaxLocals {
				issues = append(issues, Issue{BAD_SLOT, i, fmt.Sprintf("instruction %d (%v) accesses slot %d "+
					"beyond max locals %d", index, i, slot, l.MaxLocals)})
			}
		}
		//
		if sw, ok := i.(*insn.TableSwitch); ok && !sw.Consistent() {
			issues = append(issues, Issue{BAD_SWITCH, i, fmt.Sprintf("instruction %d has %d labels for range "+
				"%d..%d", index, len(sw.Labels), sw.Min, sw.Max)})
		}
		//
		if i.Opcode() != insn.NONE {
			last = i
		}
	}
	//
	if last == nil || !last.Opcode().IsTerminal() {
		issues = append(issues, Issue{FALL_OFF, last, "control falls off the end of the method"})
	}
	//
	return issues
}
