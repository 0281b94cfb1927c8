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
package method

import (
	"fmt"

	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
)

// Access flags relevant to editing.
const (
	ACC_PUBLIC    uint16 = 0x0001
	ACC_PRIVATE   uint16 = 0x0002
	ACC_PROTECTED uint16 = 0x0004
	ACC_STATIC    uint16 = 0x0008
	ACC_FINAL     uint16 = 0x0010
	ACC_INTERFACE uint16 = 0x0200
	ACC_ABSTRACT  uint16 = 0x0400
)

// Class is the (minimal) owner of a set of methods.
type Class struct {
	// Internal name of this class (e.g. "java/lang/Object").
	Name string
	// Internal name of the super class.
	Super string
	// Access flags
	Access uint16
	// Fields declared in this class.
	Fields []Field
	// Methods declared in this class.
	Methods []*Method
}

// Field is a field declared in a class.
type Field struct {
	Name   string
	Desc   string
	Access uint16
}

// NewClass constructs a new class with no fields or methods.
func NewClass(name, super string, access uint16) *Class {
	return &Class{name, super, access, nil, nil}
}

// FindField returns the field with the given name and descriptor, or nil if
// there is none.
func (c *Class) FindField(name, desc string) *Field {
	for i := range c.Fields {
		if c.Fields[i].Name == name && c.Fields[i].Desc == desc {
			return &c.Fields[i]
		}
	}
	//
	return nil
}

// AddMethod constructs a new method with an empty body and adds it to this
// class.
func (c *Class) AddMethod(name, desc string, access uint16) *Method {
	m := &Method{Owner: c, Name: name, Descriptor: desc, Access: access, Code: graph.New()}
	c.Methods = append(c.Methods, m)
	//
	return m
}

// Find a method with the given name and descriptor, or nil if there is none.
func (c *Class) Find(name, desc string) *Method {
	for _, m := range c.Methods {
		if m.Name == name && m.Descriptor == desc {
			return m
		}
	}
	//
	return nil
}

// LocalVariable is an entry in the local variable table of a method.
type LocalVariable struct {
	Name      string
	Desc      string
	Signature string
	Start     *insn.Label
	End       *insn.Label
	Index     uint
}

// Method is a method whose body can be edited.
type Method struct {
	Owner      *Class
	Name       string
	Descriptor string
	Access     uint16
	MaxLocals  uint
	MaxStack   uint
	Locals     []LocalVariable
	// Code is the canonical instruction sequence of this method.
	Code *graph.Graph
}

// IsStatic checks whether this method is static (i.e. has no receiver).
func (m *Method) IsStatic() bool {
	return m.Access&ACC_STATIC != 0
}

// Key returns a unique identifier for this method within its owner.
func (m *Method) Key() string {
	return m.Name + m.Descriptor
}

func (m *Method) String() string {
	if m.Owner == nil {
		return m.Key()
	}
	//
	return fmt.Sprintf("%s.%s", m.Owner.Name, m.Key())
}

// LocalAt returns the local variable table entry for a given slot which covers
// a given instruction, or nil if there is none.  Where no entry covers the
// instruction (e.g. because it is not in the method), the first entry for the
// slot is returned.
func (m *Method) LocalAt(slot uint, at insn.Instruction) *LocalVariable {
	var (
		first *LocalVariable
		index = m.Code.IndexOf(at)
	)
	//
	for i := range m.Locals {
		lv := &m.Locals[i]
		//
		if lv.Index != slot {
			continue
		} else if first == nil {
			first = lv
		}
		//
		start, end := m.Code.IndexOf(lv.Start), m.Code.IndexOf(lv.End)
		//
		if index >= 0 && start >= 0 && end >= 0 && start <= index && index <= end {
			return lv
		}
	}
	//
	return first
}

// SlotKinds determines the known kind of each local variable slot.  Slots
// initialised on entry follow from the descriptor (and the receiver for
// instance methods).  Other slots are determined by the local variable table,
// provided all entries for the slot agree.  An invalid descriptor yields no
// information about parameters.
func (m *Method) SlotKinds() []insn.SlotKind {
	kinds, err := insn.MethodSlotKinds(m.IsStatic(), m.Descriptor)
	//
	if err != nil {
		kinds = nil
	}
	//
	var (
		params = uint(len(kinds))
		locals = make(map[uint]insn.SlotKind)
	)
	//
	for _, lv := range m.Locals {
		if lv.Index < params {
			continue
		}
		//
		kind := insn.Type(lv.Desc).SlotKind()
		//
		if k, ok := locals[lv.Index]; ok && k != kind {
			kind = insn.UNKNOWN_SLOT
		}
		//
		locals[lv.Index] = kind
	}
	//
	for slot, kind := range locals {
		for uint(len(kinds)) <= slot {
			kinds = append(kinds, insn.UNKNOWN_SLOT)
		}
		//
		kinds[slot] = kind
	}
	//
	return kinds
}

// Context returns the clipboard context describing this method.
func (m *Method) Context() clipboard.Context {
	var owner string
	//
	if m.Owner != nil {
		owner = m.Owner.Name
	}
	//
	return clipboard.Context{
		Owner:     owner,
		Name:      m.Name,
		Desc:      m.Descriptor,
		Static:    m.IsStatic(),
		MaxLocals: m.MaxLocals,
		Slots:     m.SlotKinds(),
	}
}
