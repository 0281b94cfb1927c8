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
package graph

import (
	"errors"
	"fmt"

	"github.com/consensys/go-bcedit/pkg/insn"
)

var (
	// ErrNotFound indicates an instruction (or anchor) is not a member of the
	// graph.
	ErrNotFound = errors.New("instruction not in graph")
	// ErrDuplicate indicates an attempt to insert an instruction which is already
	// a member of the graph (or appears twice in the same insertion).
	ErrDuplicate = errors.New("instruction already in graph")
	// ErrDangling indicates a label reference to a label which is not a member of
	// the graph.
	ErrDangling = errors.New("dangling label reference")
)

// StructuralErrorKind distinguishes the different kinds of structural error.
type StructuralErrorKind uint8

const (
	// NOT_FOUND indicates an instruction expected in the graph was missing.
	NOT_FOUND StructuralErrorKind = iota
	// DANGLING_TARGET indicates an instruction references a label which is not
	// in the graph.
	DANGLING_TARGET
)

// StructuralError describes a non-fatal structural problem with the graph.
// Such errors are diagnostics only: the operation reporting them continues
// with the remaining instructions.
type StructuralError struct {
	Kind StructuralErrorKind
	// Instruction concerned (i.e. the missing instruction, or the instruction
	// holding the dangling reference).
	Insn insn.Instruction
	// Target is the dangling label (if applicable).
	Target *insn.Label
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case NOT_FOUND:
		return fmt.Sprintf("instruction not in graph: %v", e.Insn)
	case DANGLING_TARGET:
		if e.Target == nil {
			return fmt.Sprintf("missing label reference in %v", e.Insn)
		}
		//
		return fmt.Sprintf("dangling reference to label #%d in %v", e.Target.Serial(), e.Insn)
	default:
		panic("unreachable")
	}
}

// Unwrap allows structural errors to be matched with errors.Is against the
// corresponding sentinel.
func (e *StructuralError) Unwrap() error {
	if e.Kind == NOT_FOUND {
		return ErrNotFound
	}
	//
	return ErrDangling
}
