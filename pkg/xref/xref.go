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
package xref

import (
	"slices"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
)

// Relation describes how a related instruction relates to the focal
// instruction.
type Relation uint8

const (
	// JUMP_TARGET is a label control may transfer to from the focal instruction
	// (or the anchor of a line marker).
	JUMP_TARGET Relation = iota
	// FAILURE_PATH is where control goes when a branch is not taken (or the
	// default of a switch).
	FAILURE_PATH
	// REVERSE is an instruction which refers to the focal label.
	REVERSE
	// VAR_MATCH is an instruction accessing the same local variable slot.
	VAR_MATCH
	// FIELD_MATCH is an instruction accessing the same field.
	FIELD_MATCH
)

// Presentation style classes used for highlighting.
const (
	STYLE_SELECTED      = "op-selected"
	STYLE_JUMPDEST      = "op-jumpdest"
	STYLE_JUMPDEST_FAIL = "op-jumpdest-fail"
	STYLE_REVERSE       = "op-jumpdest-reverse"
	STYLE_VARMATCH      = "op-varmatch"
)

var relationNames = [...]string{"target", "failure", "reverse", "var", "field"}

func (r Relation) String() string {
	return relationNames[r]
}

// Style returns the presentation style class for this relation.  Variable and
// field matches share a style.
func (r Relation) Style() string {
	switch r {
	case JUMP_TARGET:
		return STYLE_JUMPDEST
	case FAILURE_PATH:
		return STYLE_JUMPDEST_FAIL
	case REVERSE:
		return STYLE_REVERSE
	case VAR_MATCH, FIELD_MATCH:
		return STYLE_VARMATCH
	default:
		panic("unreachable")
	}
}

// Reference identifies an instruction related to some focal instruction.
type Reference struct {
	Insn     insn.Instruction
	Relation Relation
}

// RelatedTo determines the instructions related to a given focal instruction,
// in the order they are discovered.  Duplicates are not removed (e.g. a switch
// whose default label is also a case label yields that label twice).
// References to labels which are not in the graph are omitted, as are all
// references when the focal instruction itself is not in the graph.
func RelatedTo(g *graph.Graph, focal insn.Instruction) []Reference {
	var refs []Reference
	//
	if focal == nil || !g.Contains(focal) {
		return nil
	}
	//
	add := func(i insn.Instruction, rel Relation) {
		if i != nil && g.Contains(i) {
			refs = append(refs, Reference{i, rel})
		}
	}
	//
	switch p := focal.(type) {
	case *insn.Jump:
		add(asInsn(p.Target), JUMP_TARGET)
		add(g.Next(p), FAILURE_PATH)
	case *insn.LookupSwitch:
		add(asInsn(p.Default), FAILURE_PATH)
		//
		for _, l := range p.Labels {
			add(asInsn(l), JUMP_TARGET)
		}
	case *insn.TableSwitch:
		add(asInsn(p.Default), FAILURE_PATH)
		//
		for _, l := range p.Labels {
			add(asInsn(l), JUMP_TARGET)
		}
	case *insn.Line:
		add(asInsn(p.Start), JUMP_TARGET)
	case *insn.Var, *insn.Iinc:
		slot, _ := insn.SlotOf(p)
		//
		for _, i := range g.ToList() {
			if s, ok := insn.SlotOf(i); ok && s == slot {
				add(i, VAR_MATCH)
			}
		}
	case *insn.Field:
		for _, i := range g.ToList() {
			if f, ok := i.(*insn.Field); ok && f.SameField(p) {
				add(i, FIELD_MATCH)
			}
		}
	case *insn.Label:
		for _, i := range g.ToList() {
			if i != p && slices.Contains(i.Targets(), p) {
				add(i, REVERSE)
			}
		}
	}
	//
	return refs
}

// Styles maps each referenced instruction to the (distinct) style classes which
// apply to it, in order of first occurrence.
func Styles(refs []Reference) map[insn.Instruction][]string {
	styles := make(map[insn.Instruction][]string)
	//
	for _, ref := range refs {
		style := ref.Relation.Style()
		//
		if !slices.Contains(styles[ref.Insn], style) {
			styles[ref.Insn] = append(styles[ref.Insn], style)
		}
	}
	//
	return styles
}

// Avoid a typed nil *Label being wrapped as a non-nil interface.
func asInsn(l *insn.Label) insn.Instruction {
	if l == nil {
		return nil
	}
	//
	return l
}
