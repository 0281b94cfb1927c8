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

// Label is an anonymous anchor within a method body which can be the target of
// jumps, switches and line markers.  Labels are compared by identity only; the
// serial number exists purely for diagnostics.
type Label struct {
	serial uint64
}

// NewLabel constructs a fresh label, distinct from all others.
func NewLabel() *Label {
	return &Label{nextSerial()}
}

// Serial returns the diagnostic serial number of this label.
func (p *Label) Serial() uint64 { return p.serial }

// Kind implementation for Instruction interface.
func (p *Label) Kind() Kind { return LABEL }

// Opcode implementation for Instruction interface.
func (p *Label) Opcode() Opcode { return NONE }

// Targets implementation for Instruction interface.
func (p *Label) Targets() []*Label { return nil }

// Capabilities implementation for Instruction interface.
func (p *Label) Capabilities() Capability { return 0 }

// Labels cloned individually always produce a fresh identity, unless an
// explicit mapping is given.
func (p *Label) clone(fn func(*Label) *Label) Instruction {
	if l := fn(p); l != p {
		return l
	}
	//
	return NewLabel()
}

func (p *Label) equals(other Instruction, eq func(*Label, *Label) bool) bool {
	o, ok := other.(*Label)
	return ok && eq(p, o)
}

func (p *Label) String() string {
	return fmt.Sprintf("L#%d:", p.serial)
}

func labelString(l *Label) string {
	if l == nil {
		return "L#?"
	}
	//
	return fmt.Sprintf("L#%d", l.serial)
}

// ============================================================================

// Line associates a source line number with the position of an anchor label.
type Line struct {
	Number uint
	Start  *Label
}

// NewLine constructs a new line marker.
func NewLine(number uint, start *Label) *Line {
	return &Line{number, start}
}

// Kind implementation for Instruction interface.
func (p *Line) Kind() Kind { return LINE }

// Opcode implementation for Instruction interface.
func (p *Line) Opcode() Opcode { return NONE }

// Targets implementation for Instruction interface.
func (p *Line) Targets() []*Label { return []*Label{p.Start} }

// Capabilities implementation for Instruction interface.
func (p *Line) Capabilities() Capability { return CAN_EDIT }

func (p *Line) clone(fn func(*Label) *Label) Instruction {
	return &Line{p.Number, fn(p.Start)}
}

func (p *Line) equals(other Instruction, eq func(*Label, *Label) bool) bool {
	o, ok := other.(*Line)
	return ok && o.Number == p.Number && eq(p.Start, o.Start)
}

func (p *Line) String() string {
	return fmt.Sprintf("LINE %d %s", p.Number, labelString(p.Start))
}

// ============================================================================

// Jump is a conditional or unconditional branch to a label.  For conditional
// branches, the instruction following the jump is the failure path.
type Jump struct {
	Op     Opcode
	Target *Label
}

// NewJump constructs a new branch instruction.
func NewJump(op Opcode, target *Label) *Jump {
	return &Jump{op, target}
}

// Kind implementation for Instruction interface.
func (p *Jump) Kind() Kind { return JUMP }

// Opcode implementation for Instruction interface.
func (p *Jump) Opcode() Opcode { return p.Op }

// Targets implementation for Instruction interface.
func (p *Jump) Targets() []*Label { return []*Label{p.Target} }

// Capabilities implementation for Instruction interface.
func (p *Jump) Capabilities() Capability { return CAN_EDIT }

func (p *Jump) clone(fn func(*Label) *Label) Instruction {
	return &Jump{p.Op, fn(p.Target)}
}

func (p *Jump) equals(other Instruction, eq func(*Label, *Label) bool) bool {
	o, ok := other.(*Jump)
	return ok && o.Op == p.Op && eq(p.Target, o.Target)
}

func (p *Jump) String() string {
	return fmt.Sprintf("%s %s", p.Op, labelString(p.Target))
}

// ============================================================================

// LookupSwitch is a sparse switch, consisting of ordered (key,label) pairs and
// a default label.
type LookupSwitch struct {
	Default *Label
	Keys    []int32
	Labels  []*Label
}

// NewLookupSwitch constructs a new lookup switch.  The keys and labels must have
// matching lengths.
func NewLookupSwitch(dflt *Label, keys []int32, labels []*Label) *LookupSwitch {
	if len(keys) != len(labels) {
		panic("mismatched keys and labels")
	}
	//
	return &LookupSwitch{dflt, keys, labels}
}

// Kind implementation for Instruction interface.
func (p *LookupSwitch) Kind() Kind { return LOOKUP_SWITCH }

// Opcode implementation for Instruction interface.
func (p *LookupSwitch) Opcode() Opcode { return LOOKUPSWITCH }

// Targets implementation for Instruction interface.  The default label comes
// first, followed by every case label in key order.
func (p *LookupSwitch) Targets() []*Label {
	return append([]*Label{p.Default}, p.Labels...)
}

// Capabilities implementation for Instruction interface.
func (p *LookupSwitch) Capabilities() Capability { return CAN_EDIT }

func (p *LookupSwitch) clone(fn func(*Label) *Label) Instruction {
	return &LookupSwitch{fn(p.Default), slices.Clone(p.Keys), mapLabels(p.Labels, fn)}
}

func (p *LookupSwitch) equals(other Instruction, eq func(*Label, *Label) bool) bool {
	o, ok := other.(*LookupSwitch)
	//
	return ok && eq(p.Default, o.Default) && slices.Equal(p.Keys, o.Keys) && slices.EqualFunc(p.Labels, o.Labels, eq)
}

func (p *LookupSwitch) String() string {
	var builder strings.Builder
	//
	builder.WriteString("LOOKUPSWITCH {")
	//
	for i, k := range p.Keys {
		builder.WriteString(fmt.Sprintf(" %d: %s", k, labelString(p.Labels[i])))
	}
	//
	builder.WriteString(fmt.Sprintf(" default: %s }", labelString(p.Default)))
	//
	return builder.String()
}

// ============================================================================

// TableSwitch is a dense switch over the contiguous key range [Min,Max], with
// one label per key and a default label.
type TableSwitch struct {
	Min     int32
	Max     int32
	Default *Label
	Labels  []*Label
}

// NewTableSwitch constructs a new table switch.
func NewTableSwitch(minKey, maxKey int32, dflt *Label, labels ...*Label) *TableSwitch {
	return &TableSwitch{minKey, maxKey, dflt, labels}
}

// Kind implementation for Instruction interface.
func (p *TableSwitch) Kind() Kind { return TABLE_SWITCH }

// Opcode implementation for Instruction interface.
func (p *TableSwitch) Opcode() Opcode { return TABLESWITCH }

// Targets implementation for Instruction interface.  The default label comes
// first, followed by every case label from Min to Max.
func (p *TableSwitch) Targets() []*Label {
	return append([]*Label{p.Default}, p.Labels...)
}

// Capabilities implementation for Instruction interface.
func (p *TableSwitch) Capabilities() Capability { return CAN_EDIT }

// Consistent checks whether the number of labels matches the key range.
func (p *TableSwitch) Consistent() bool {
	return p.Min <= p.Max && int64(len(p.Labels)) == int64(p.Max)-int64(p.Min)+1
}

func (p *TableSwitch) clone(fn func(*Label) *Label) Instruction {
	return &TableSwitch{p.Min, p.Max, fn(p.Default), mapLabels(p.Labels, fn)}
}

func (p *TableSwitch) equals(other Instruction, eq func(*Label, *Label) bool) bool {
	o, ok := other.(*TableSwitch)
	//
	return ok && o.Min == p.Min && o.Max == p.Max && eq(p.Default, o.Default) &&
		slices.EqualFunc(p.Labels, o.Labels, eq)
}

func (p *TableSwitch) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("TABLESWITCH %d..%d {", p.Min, p.Max))
	//
	for _, l := range p.Labels {
		builder.WriteString(" ")
		builder.WriteString(labelString(l))
	}
	//
	builder.WriteString(fmt.Sprintf(" default: %s }", labelString(p.Default)))
	//
	return builder.String()
}

func mapLabels(labels []*Label, fn func(*Label) *Label) []*Label {
	nlabels := make([]*Label, len(labels))
	//
	for i, l := range labels {
		nlabels[i] = fn(l)
	}
	//
	return nlabels
}
