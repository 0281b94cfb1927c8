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
package tui

import (
	"fmt"

	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/render"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/xref"
)

// Widths of the fixed columns (index, opcode and operands).  The final column
// (notes) takes whatever remains.
var columnWidths = [...]uint{5, 16, 40}

// Colours used for highlighted rows, in order of priority.
var styleColours = []struct {
	style  string
	colour uint
}{
	{xref.STYLE_SELECTED, termio.TERM_YELLOW},
	{xref.STYLE_JUMPDEST, termio.TERM_GREEN},
	{xref.STYLE_JUMPDEST_FAIL, termio.TERM_MAGENTA},
	{xref.STYLE_REVERSE, termio.TERM_CYAN},
	{xref.STYLE_VARMATCH, termio.TERM_BLUE},
}

// ColumnWidth implementation for widget.TableSource interface.
func (p *Editor) ColumnWidth(col uint) uint {
	var fixed uint
	//
	if col < uint(len(columnWidths)) {
		return columnWidths[col]
	} else if col > uint(len(columnWidths)) {
		return 0
	}
	//
	for _, w := range columnWidths {
		fixed += w + 1
	}
	//
	if p.width > fixed {
		return p.width - fixed
	}
	//
	return 0
}

// CellAt implementation for widget.TableSource interface.
func (p *Editor) CellAt(col, row uint) termio.FormattedText {
	state := p.current()
	//
	if state == nil || state.offset+row >= uint(state.view.Len()) {
		return termio.NewText("")
	}
	//
	var (
		index  = state.offset + row
		i      = state.view.CurrentOrder()[index]
		format = rowFormat(state.view, i, index == state.cursor)
	)
	//
	switch col {
	case 0:
		return termio.NewFormattedText(fmt.Sprintf("%4d", index), format)
	case 1:
		return termio.NewFormattedText(marker(state.view, i)+representation(state.view, i).Op, format)
	case 2:
		return termio.NewFormattedText(representation(state.view, i).Operands, format)
	default:
		return termio.NewColouredText(notes(p, state.view, i), termio.TERM_RED)
	}
}

// Determine the format of a row, based on the highlights and verification
// overlay of the view.
func rowFormat(view *editor.View, i insn.Instruction, cursor bool) termio.AnsiEscape {
	format := termio.NewAnsiEscape()
	//
	if cursor {
		format = termio.ReverseAnsiEscape()
	}
	//
	if view.Overlay().IsCause(i) {
		return format.FgColour(termio.TERM_RED)
	}
	//
	styles := view.Highlights()[i]
	//
	for _, sc := range styleColours {
		for _, style := range styles {
			if style == sc.style {
				return format.FgColour(sc.colour)
			}
		}
	}
	//
	return format
}

func marker(view *editor.View, i insn.Instruction) string {
	if view.IsSelected(i) {
		return "*"
	} else if i.Kind() == insn.LABEL {
		return ""
	}
	//
	return " "
}

func representation(view *editor.View, i insn.Instruction) render.Representation {
	if r, ok := view.Representation(i); ok {
		return r
	}
	//
	return render.Representation{Op: "?"}
}

func notes(p *Editor, view *editor.View, i insn.Instruction) string {
	if view.Overlay().IsCause(i) {
		return view.Overlay().Result().Summary(p.config.Verify.MaxMessage)
	}
	//
	return ""
}
