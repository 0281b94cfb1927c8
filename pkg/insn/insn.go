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
package insn

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the shape of an instruction.  Every instruction has exactly
// one kind, and the set of kinds is closed.
type Kind uint8

const (
	// PLAIN is an instruction consisting only of an opcode (e.g. IADD).
	PLAIN Kind = iota
	// IMMEDIATE is an opcode with a constant operand (e.g. BIPUSH, LDC, NEW).
	IMMEDIATE
	// VAR is an opcode which reads or writes a local variable slot.
	VAR
	// FIELD is an opcode which accesses a field.
	FIELD
	// METHOD is an opcode which invokes a method.
	METHOD
	// DYNAMIC is an invokedynamic call site.
	DYNAMIC
	// JUMP is a (conditional or unconditional) branch to a label.
	JUMP
	// LOOKUP_SWITCH is a sparse switch over (key,label) pairs.
	LOOKUP_SWITCH
	// TABLE_SWITCH is a dense switch over a contiguous range of keys.
	TABLE_SWITCH
	// LABEL is a zero-size anchor used as a branch target.
	LABEL
	// LINE associates a source line number with an anchor label.
	LINE
	// IINC increments a local variable slot by a constant.
	IINC
)

var kindNames = [...]string{
	"plain", "immediate", "var", "field", "method", "dynamic", "jump", "lookupswitch", "tableswitch", "label",
	"line", "iinc",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind converts the name of a kind (as produced by String) back into a
// kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown instruction kind \"%s\"", name)
}

// Capability describes what a presentation layer can offer for a given
// instruction.  Menus are built from these, rather than by switching on the
// concrete type of an instruction.
type Capability uint8

const (
	// CAN_EDIT indicates the instruction has operands which can be edited.
	CAN_EDIT Capability = 1 << iota
	// HAS_DEFINITION indicates the instruction refers to a class or member whose
	// definition could be opened.
	HAS_DEFINITION
	// HAS_REFERENCES indicates the instruction refers to something for which
	// other references can be searched.
	HAS_REFERENCES
)

// Has checks whether all of the given capabilities are present.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// Instruction is a single node of a method body.  Instructions have identity:
// two instructions with identical operands are still distinct, and label
// references compare by identity, not by value.  The set of implementations is
// closed (see Kind).
type Instruction interface {
	// Kind returns the shape of this instruction.
	Kind() Kind
	// Opcode returns the opcode of this instruction, or NONE for pseudo
	// instructions (labels and line markers).
	Opcode() Opcode
	// Targets returns the labels referenced by this instruction, in operand
	// order.  Duplicates are preserved.
	Targets() []*Label
	// Capabilities reports what can be done with this instruction.
	Capabilities() Capability
	// clone a copy of this instruction, where every label reference is passed
	// through the given function.
	clone(func(*Label) *Label) Instruction
	// equals checks operand equality, using the given function to compare label
	// references.
	equals(Instruction, func(*Label, *Label) bool) bool
}

// Member identifies a class member (or class) referred to by an instruction.
// For type instructions only the Owner is set.
type Member struct {
	Owner string
	Name  string
	Desc  string
}

func (m Member) String() string {
	if m.Name == "" {
		return m.Owner
	}
	//
	return fmt.Sprintf("%s.%s%s", m.Owner, m.Name, m.Desc)
}

// Referent is implemented by instructions which refer to a class or member.
type Referent interface {
	// Referent returns the referred class or member, or false if there is
	// none (e.g. an LDC of an integer).
	Referent() (Member, bool)
}

// ReferentOf returns the class or member referred to by the given instruction,
// if any.
func ReferentOf(insn Instruction) (Member, bool) {
	if r, ok := insn.(Referent); ok {
		return r.Referent()
	}
	//
	return Member{}, false
}

// Identity generator for labels.  This is the only process-wide mutable state
// in the instruction model, and it is only used for diagnostics.
var serials atomic.Uint64

func nextSerial() uint64 {
	return serials.Add(1)
}
