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
	"fmt"
	"maps"
	"slices"

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/xref"
	log "github.com/sirupsen/logrus"
)

// Select sets the current selection.  Instructions not visible are ignored.
// The last visible instruction given becomes the focus, from which cross
// references are computed.  Selection never modifies the graph.
func (v *View) Select(insns ...insn.Instruction) {
	var focus insn.Instruction
	//
	for _, i := range insns {
		if v.graph.Contains(i) {
			focus = i
		}
	}
	//
	v.setSelection(insns, focus)
}

// SelectIndices sets the current selection by visible position.  The last
// index given becomes the focus.
func (v *View) SelectIndices(indices ...int) error {
	insns := make([]insn.Instruction, len(indices))
	//
	for k, index := range indices {
		if index < 0 || index >= len(v.order) {
			return fmt.Errorf("index %d out of bounds (length %d)", index, len(v.order))
		}
		//
		insns[k] = v.order[index]
	}
	//
	v.Select(insns...)
	//
	return nil
}

// ClearSelection empties the selection.
func (v *View) ClearSelection() {
	v.setSelection(nil, nil)
}

// Selection returns the selected instructions in visible order.
func (v *View) Selection() []insn.Instruction {
	return slices.Clone(v.selection)
}

// IsSelected checks whether a given instruction is selected.
func (v *View) IsSelected(i insn.Instruction) bool {
	return slices.Contains(v.selection, i)
}

// Focus returns the focal instruction of the selection, or nil when nothing is
// selected.
func (v *View) Focus() insn.Instruction {
	return v.focus
}

// Highlights returns the style classes applying to each highlighted
// instruction.
func (v *View) Highlights() map[insn.Instruction][]string {
	return maps.Clone(v.highlights)
}

// Set the selection (ignoring instructions not in the graph), sort it into
// visible order, then recompute highlights.
func (v *View) setSelection(insns []insn.Instruction, focus insn.Instruction) {
	var (
		seen      = make(map[insn.Instruction]bool)
		selection []insn.Instruction
	)
	//
	for _, i := range insns {
		if !seen[i] && v.graph.Contains(i) {
			selection = append(selection, i)
			seen[i] = true
		}
	}
	//
	slices.SortFunc(selection, func(a, b insn.Instruction) int {
		return v.graph.IndexOf(a) - v.graph.IndexOf(b)
	})
	//
	v.selection = selection
	//
	switch {
	case focus != nil && seen[focus]:
		v.focus = focus
	case len(selection) > 0:
		v.focus = selection[len(selection)-1]
	default:
		v.focus = nil
	}
	//
	v.updateHighlights()
}

// Recompute highlighting from the selection.
func (v *View) updateHighlights() {
	v.highlights = make(map[insn.Instruction][]string)
	//
	for _, i := range v.selection {
		v.mark(i, xref.STYLE_SELECTED)
	}
	//
	if v.focus == nil {
		return
	}
	//
	for _, ref := range xref.RelatedTo(v.graph, v.focus) {
		v.mark(ref.Insn, ref.Relation.Style())
	}
}

func (v *View) mark(i insn.Instruction, style string) {
	if _, ok := v.cache[i]; !ok {
		log.Errorf("cannot highlight %v: not visible in %s", i, v.method)
		return
	} else if !slices.Contains(v.highlights[i], style) {
		v.highlights[i] = append(v.highlights[i], style)
	}
}
