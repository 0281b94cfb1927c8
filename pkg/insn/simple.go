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

import "fmt"

// Plain is an instruction which consists solely of an opcode, such as IADD or
// RETURN.
type Plain struct {
	Op Opcode
}

// NewPlain constructs a new plain instruction.
func NewPlain(op Opcode) *Plain {
	return &Plain{op}
}

// Kind implementation for Instruction interface.
func (p *Plain) Kind() Kind { return PLAIN }

// Opcode implementation for Instruction interface.
func (p *Plain) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Plain) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Plain) Capabilities() Capability { return CAN_EDIT }

func (p *Plain) clone(func(*Label) *Label) Instruction {
	return &Plain{p.Op}
}

func (p *Plain) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Plain)
	return ok && o.Op == p.Op
}

func (p *Plain) String() string {
	return p.Op.String()
}

// ============================================================================

// Immediate is an instruction carrying a constant operand, such as BIPUSH, LDC,
// NEW or MULTIANEWARRAY.
type Immediate struct {
	Op    Opcode
	Value Operand
}

// NewImmediate constructs a new instruction with a constant operand.
func NewImmediate(op Opcode, value Operand) *Immediate {
	return &Immediate{op, value}
}

// Kind implementation for Instruction interface.
func (p *Immediate) Kind() Kind { return IMMEDIATE }

// Opcode implementation for Instruction interface.
func (p *Immediate) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Immediate) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.  Type operands refer
// to a class, hence have definitions and references.
func (p *Immediate) Capabilities() Capability {
	if p.Value.Sort == TYPE_SORT {
		return CAN_EDIT | HAS_DEFINITION | HAS_REFERENCES
	}
	//
	return CAN_EDIT
}

// Referent implementation for Referent interface.
func (p *Immediate) Referent() (Member, bool) {
	if p.Value.Sort != TYPE_SORT {
		return Member{}, false
	}
	//
	return Member{Owner: p.Value.Text}, true
}

func (p *Immediate) clone(func(*Label) *Label) Instruction {
	return &Immediate{p.Op, p.Value.clone()}
}

func (p *Immediate) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Immediate)
	return ok && o.Op == p.Op && o.Value.Equals(p.Value)
}

func (p *Immediate) String() string {
	return fmt.Sprintf("%s %s", p.Op, p.Value.String())
}

// ============================================================================

// Var is an instruction which loads or stores a local variable slot.
type Var struct {
	Op   Opcode
	Slot uint
}

// NewVar constructs a new local variable instruction.
func NewVar(op Opcode, slot uint) *Var {
	return &Var{op, slot}
}

// Kind implementation for Instruction interface.
func (p *Var) Kind() Kind { return VAR }

// Opcode implementation for Instruction interface.
func (p *Var) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Var) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Var) Capabilities() Capability { return CAN_EDIT }

func (p *Var) clone(func(*Label) *Label) Instruction {
	return &Var{p.Op, p.Slot}
}

func (p *Var) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Var)
	return ok && o.Op == p.Op && o.Slot == p.Slot
}

func (p *Var) String() string {
	return fmt.Sprintf("%s %d", p.Op, p.Slot)
}

// ============================================================================

// Iinc increments a local variable slot by a constant amount.
type Iinc struct {
	Slot  uint
	Delta int32
}

// NewIinc constructs a new increment instruction.
func NewIinc(slot uint, delta int32) *Iinc {
	return &Iinc{slot, delta}
}

// Kind implementation for Instruction interface.
func (p *Iinc) Kind() Kind { return IINC }

// Opcode implementation for Instruction interface.
func (p *Iinc) Opcode() Opcode { return IINC_OP }

// Targets implementation for Instruction interface.
func (p *Iinc) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Iinc) Capabilities() Capability { return CAN_EDIT }

func (p *Iinc) clone(func(*Label) *Label) Instruction {
	return &Iinc{p.Slot, p.Delta}
}

func (p *Iinc) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Iinc)
	return ok && o.Slot == p.Slot && o.Delta == p.Delta
}

func (p *Iinc) String() string {
	return fmt.Sprintf("IINC %d %d", p.Slot, p.Delta)
}

// SlotOf returns the local variable slot accessed by a Var or Iinc
// instruction.
func SlotOf(i Instruction) (uint, bool) {
	switch p := i.(type) {
	case *Var:
		return p.Slot, true
	case *Iinc:
		return p.Slot, true
	default:
		return 0, false
	}
}
