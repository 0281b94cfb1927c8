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
	"slices"
	"strings"
)

// Field is an instruction which reads or writes a (static or instance) field.
type Field struct {
	Op    Opcode
	Owner string
	Name  string
	Desc  string
}

// NewField constructs a new field access instruction.
func NewField(op Opcode, owner, name, desc string) *Field {
	return &Field{op, owner, name, desc}
}

// Kind implementation for Instruction interface.
func (p *Field) Kind() Kind { return FIELD }

// Opcode implementation for Instruction interface.
func (p *Field) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Field) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Field) Capabilities() Capability { return CAN_EDIT | HAS_DEFINITION | HAS_REFERENCES }

// Referent implementation for Referent interface.
func (p *Field) Referent() (Member, bool) {
	return Member{p.Owner, p.Name, p.Desc}, true
}

// SameField checks whether two field instructions access the same field, as
// determined by their owner, name and descriptor.
func (p *Field) SameField(other *Field) bool {
	return p.Owner == other.Owner && p.Name == other.Name && p.Desc == other.Desc
}

func (p *Field) clone(func(*Label) *Label) Instruction {
	return &Field{p.Op, p.Owner, p.Name, p.Desc}
}

func (p *Field) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Field)
	return ok && o.Op == p.Op && p.SameField(o)
}

func (p *Field) String() string {
	return fmt.Sprintf("%s %s.%s %s", p.Op, p.Owner, p.Name, p.Desc)
}

// ============================================================================

// Method is an instruction which invokes a method (other than through
// invokedynamic).
type Method struct {
	Op        Opcode
	Owner     string
	Name      string
	Desc      string
	Interface bool
}

// NewMethod constructs a new method invocation instruction.
func NewMethod(op Opcode, owner, name, desc string, itf bool) *Method {
	return &Method{op, owner, name, desc, itf}
}

// Kind implementation for Instruction interface.
func (p *Method) Kind() Kind { return METHOD }

// Opcode implementation for Instruction interface.
func (p *Method) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Method) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Method) Capabilities() Capability { return CAN_EDIT | HAS_DEFINITION | HAS_REFERENCES }

// Referent implementation for Referent interface.
func (p *Method) Referent() (Member, bool) {
	return Member{p.Owner, p.Name, p.Desc}, true
}

func (p *Method) clone(func(*Label) *Label) Instruction {
	return &Method{p.Op, p.Owner, p.Name, p.Desc, p.Interface}
}

func (p *Method) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Method)
	//
	return ok && o.Op == p.Op && o.Owner == p.Owner && o.Name == p.Name && o.Desc == p.Desc &&
		o.Interface == p.Interface
}

func (p *Method) String() string {
	return fmt.Sprintf("%s %s.%s%s", p.Op, p.Owner, p.Name, p.Desc)
}

// ============================================================================

// Dynamic is an invokedynamic call site.
type Dynamic struct {
	Name      string
	Desc      string
	Bootstrap Handle
	Args      []Operand
}

// NewDynamic constructs a new invokedynamic instruction.
func NewDynamic(name, desc string, bsm Handle, args ...Operand) *Dynamic {
	return &Dynamic{name, desc, bsm, args}
}

// Kind implementation for Instruction interface.
func (p *Dynamic) Kind() Kind { return DYNAMIC }

// Opcode implementation for Instruction interface.
func (p *Dynamic) Opcode() Opcode { return INVOKEDYNAMIC }

// Targets implementation for Instruction interface.
func (p *Dynamic) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.  Only call sites whose
// second bootstrap argument is a method handle (e.g. lambda metafactory sites)
// have a resolvable implementation.  Call sites are not editable, since their
// textual form omits the bootstrap method.
func (p *Dynamic) Capabilities() Capability {
	if _, ok := p.Referent(); ok {
		return HAS_DEFINITION | HAS_REFERENCES
	}
	//
	return 0
}

// Referent implementation for Referent interface.
func (p *Dynamic) Referent() (Member, bool) {
	if len(p.Args) < 2 || p.Args[1].Sort != HANDLE_SORT || p.Args[1].Handle == nil {
		return Member{}, false
	}
	//
	h := p.Args[1].Handle
	//
	return Member{h.Owner, h.Name, h.Desc}, true
}

func (p *Dynamic) clone(func(*Label) *Label) Instruction {
	args := make([]Operand, len(p.Args))
	//
	for i, a := range p.Args {
		args[i] = a.clone()
	}
	//
	return &Dynamic{p.Name, p.Desc, p.Bootstrap, args}
}

func (p *Dynamic) equals(other Instruction, _ func(*Label, *Label) bool) bool {
	o, ok := other.(*Dynamic)
	//
	if !ok || o.Name != p.Name || o.Desc != p.Desc || o.Bootstrap != p.Bootstrap {
		return false
	}
	//
	return slices.EqualFunc(p.Args, o.Args, func(a, b Operand) bool { return a.Equals(b) })
}

func (p *Dynamic) String() string {
	var args []string
	//
	for _, a := range p.Args {
		args = append(args, a.String())
	}
	//
	return fmt.Sprintf("INVOKEDYNAMIC %s%s [%s]", p.Name, p.Desc, strings.Join(args, ", "))
}
