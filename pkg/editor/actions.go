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
	"strings"

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
)

// ActionKind identifies an action offered for an instruction.
type ActionKind uint8

const (
	// EDIT_ACTION edits the operands of the instruction.
	EDIT_ACTION ActionKind = iota
	// MOVE_UP_ACTION moves the selection up.
	MOVE_UP_ACTION
	// MOVE_DOWN_ACTION moves the selection down.
	MOVE_DOWN_ACTION
	// DEFINE_ACTION opens the definition of the referred class or member.
	DEFINE_ACTION
	// SEARCH_ACTION searches for references to the referred class or member.
	SEARCH_ACTION
	// BLOCK_SAVE_ACTION saves the selection as a named block.
	BLOCK_SAVE_ACTION
	// BLOCK_LOAD_ACTION inserts a named block.
	BLOCK_LOAD_ACTION
	// ADD_ACTION inserts a new instruction.
	ADD_ACTION
	// REMOVE_ACTION removes the selection.
	REMOVE_ACTION
)

// Action is an entry of the context menu for an instruction.
type Action struct {
	Kind ActionKind
	// Key for the display text.
	Key string
	// Display text.
	Label string
	// Class or member concerned (for definition and reference actions).
	Target insn.Member
}

// Actions builds the context menu for a given instruction, based on its
// capabilities, its position and the current selection.  Definition and
// reference actions are only offered when exactly one instruction is selected,
// whilst a selection of several instructions can be saved as a block.
func (v *View) Actions(i insn.Instruction) []Action {
	var (
		actions []Action
		caps    = i.Capabilities()
	)
	//
	add := func(kind ActionKind, key string, target insn.Member) {
		actions = append(actions, Action{kind, key, v.lookup.Text(key), target})
	}
	//
	if caps.Has(insn.CAN_EDIT) {
		add(EDIT_ACTION, lang.EDIT, insn.Member{})
	}
	//
	if v.graph.Prev(i) != nil {
		add(MOVE_UP_ACTION, lang.MOVE_UP, insn.Member{})
	}
	//
	if v.graph.Next(i) != nil {
		add(MOVE_DOWN_ACTION, lang.MOVE_DOWN, insn.Member{})
	}
	//
	switch {
	case len(v.selection) == 1:
		if member, ok := insn.ReferentOf(i); ok {
			if caps.Has(insn.HAS_DEFINITION) && v.resolves(member) {
				add(DEFINE_ACTION, lang.DEFINE, member)
			}
			//
			if caps.Has(insn.HAS_REFERENCES) {
				add(SEARCH_ACTION, lang.SEARCH, member)
			}
		}
	case len(v.selection) > 1:
		add(BLOCK_SAVE_ACTION, lang.BLOCK_SAVE, insn.Member{})
	}
	//
	add(BLOCK_LOAD_ACTION, lang.BLOCK_LOAD, insn.Member{})
	add(ADD_ACTION, lang.ADD, insn.Member{})
	add(REMOVE_ACTION, lang.REMOVE, insn.Member{})
	//
	return actions
}

// Check whether the definition of a given class or member is available.
func (v *View) resolves(member insn.Member) bool {
	switch {
	case v.resolver == nil:
		return false
	case member.Name == "":
		return v.resolver.HasClass(member.Owner)
	case strings.HasPrefix(member.Desc, "("):
		return v.resolver.HasMethod(member)
	default:
		return v.resolver.HasField(member)
	}
}

// References returns the instructions of a given sequence which refer to a
// class or member.  When the member names only a class, any reference to that
// class (or one of its members) matches.
func References(code []insn.Instruction, member insn.Member) []insn.Instruction {
	var matches []insn.Instruction
	//
	for _, i := range code {
		if referent, ok := insn.ReferentOf(i); !ok {
			continue
		} else if referent == member || (member.Name == "" && referent.Owner == member.Owner) {
			matches = append(matches, i)
		}
	}
	//
	return matches
}
