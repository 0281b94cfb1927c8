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
package render

import (
	"fmt"
	"strings"

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
)

// Representation is the rendered form of a single instruction.
type Representation struct {
	// Mnemonic (or label name for labels).
	Op string
	// Rendered operands (if any).
	Operands string
}

func (r Representation) String() string {
	if r.Operands == "" {
		return r.Op
	}
	//
	return fmt.Sprintf("%s %s", r.Op, r.Operands)
}

// Renderer is responsible for producing the visual representation of an
// instruction within the context of its method.
type Renderer interface {
	Render(i insn.Instruction, m *method.Method) Representation
}

// DependsOnLayout checks whether the representation of an instruction (as
// produced by TextRenderer) can change when other instructions are inserted,
// removed or moved.  This is the case for labels, and anything which refers
// to them.
func DependsOnLayout(i insn.Instruction) bool {
	return i.Kind() == insn.LABEL || len(i.Targets()) > 0
}

// TextRenderer is the default renderer.  Labels are named "L0", "L1", etc by
// their order of appearance within the method, whilst references to labels
// which are not in the method are shown as "L?".  Local variable instructions
// are annotated with the variable's name where known.
type TextRenderer struct {
	// Label names, valid for the given version of the given method's code.
	names   map[*insn.Label]int
	method  *method.Method
	version uint64
}

// NewTextRenderer constructs a new text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render implementation for Renderer interface.
func (r *TextRenderer) Render(i insn.Instruction, m *method.Method) Representation {
	switch p := i.(type) {
	case *insn.Label:
		return Representation{Op: r.LabelName(p, m) + ":"}
	case *insn.Line:
		return Representation{"LINE", fmt.Sprintf("%d %s", p.Number, r.LabelName(p.Start, m))}
	case *insn.Jump:
		return Representation{p.Op.String(), r.LabelName(p.Target, m)}
	case *insn.Var:
		return Representation{p.Op.String(), r.slot(p.Slot, p, m)}
	case *insn.Iinc:
		return Representation{"IINC", fmt.Sprintf("%s %+d", r.slot(p.Slot, p, m), p.Delta)}
	case *insn.LookupSwitch:
		var cases []string
		//
		for k, key := range p.Keys {
			cases = append(cases, fmt.Sprintf("%d: %s", key, r.LabelName(p.Labels[k], m)))
		}
		//
		cases = append(cases, "default: "+r.LabelName(p.Default, m))
		//
		return Representation{"LOOKUPSWITCH", strings.Join(cases, ", ")}
	case *insn.TableSwitch:
		var cases []string
		//
		for k, l := range p.Labels {
			cases = append(cases, fmt.Sprintf("%d: %s", int64(p.Min)+int64(k), r.LabelName(l, m)))
		}
		//
		cases = append(cases, "default: "+r.LabelName(p.Default, m))
		//
		return Representation{"TABLESWITCH", strings.Join(cases, ", ")}
	case *insn.Plain:
		return Representation{Op: p.Op.String()}
	case *insn.Immediate:
		return Representation{p.Op.String(), p.Value.String()}
	case *insn.Field:
		return Representation{p.Op.String(), fmt.Sprintf("%s.%s %s", p.Owner, p.Name, p.Desc)}
	case *insn.Method:
		return Representation{p.Op.String(), fmt.Sprintf("%s.%s%s", p.Owner, p.Name, p.Desc)}
	case *insn.Dynamic:
		return Representation{"INVOKEDYNAMIC", fmt.Sprintf("%s%s", p.Name, p.Desc)}
	default:
		return Representation{Op: fmt.Sprintf("%v", i)}
	}
}

// LabelName returns the name of a label within the given method.
func (r *TextRenderer) LabelName(l *insn.Label, m *method.Method) string {
	if r.method != m || r.names == nil || r.version != m.Code.Version() {
		r.names = make(map[*insn.Label]int)
		r.method = m
		r.version = m.Code.Version()
		//
		for _, i := range m.Code.ToList() {
			if label, ok := i.(*insn.Label); ok {
				r.names[label] = len(r.names)
			}
		}
	}
	//
	if index, ok := r.names[l]; ok {
		return fmt.Sprintf("L%d", index)
	}
	//
	return "L?"
}

func (r *TextRenderer) slot(slot uint, at insn.Instruction, m *method.Method) string {
	if lv := m.LocalAt(slot, at); lv != nil && lv.Name != "" {
		return fmt.Sprintf("%d (%s)", slot, lv.Name)
	}
	//
	return fmt.Sprintf("%d", slot)
}
