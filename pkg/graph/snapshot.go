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
	"slices"

	"github.com/consensys/go-bcedit/pkg/insn"
)

// Snapshot is an immutable copy of a graph at a given version.  Since its
// instructions are independent copies, a snapshot can safely be handed to
// another goroutine (e.g. for verification) whilst the graph continues to be
// edited.  Results computed against a snapshot can be mapped back onto the
// original instructions using Original().
type Snapshot struct {
	version   uint64
	insns     []insn.Instruction
	positions map[insn.Instruction]int
	originals []insn.Instruction
}

// Snapshot takes an immutable copy of this graph.
func (g *Graph) Snapshot() *Snapshot {
	var (
		originals = g.ToList()
		insns     = insn.CloneAll(originals)
		positions = make(map[insn.Instruction]int, len(insns))
	)
	//
	for i, c := range insns {
		positions[c] = i
	}
	//
	return &Snapshot{g.version, insns, positions, originals}
}

// Version returns the version of the graph from which this snapshot was taken.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of instructions in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.insns)
}

// Instructions returns the (copied) instructions of this snapshot.
func (s *Snapshot) Instructions() []insn.Instruction {
	return slices.Clone(s.insns)
}

// At returns the instruction at a given position in the snapshot.
func (s *Snapshot) At(index int) insn.Instruction {
	return s.insns[index]
}

// IndexOf returns the position of an instruction within the snapshot, or -1 if
// it is not part of the snapshot.
func (s *Snapshot) IndexOf(i insn.Instruction) int {
	if index, ok := s.positions[i]; ok {
		return index
	}
	//
	return -1
}

// Original maps an instruction of this snapshot back to the graph instruction
// it was copied from, or nil if it is not part of the snapshot.
func (s *Snapshot) Original(i insn.Instruction) insn.Instruction {
	if index, ok := s.positions[i]; ok {
		return s.originals[index]
	}
	//
	return nil
}
