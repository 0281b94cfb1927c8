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
	"strings"

	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
	"github.com/consensys/go-bcedit/pkg/util/termio"
)

// ActionMode offers the actions available for the instruction under the
// cursor, numbered from one.  Pressing a number performs the corresponding
// action, whilst escape returns to navigation.
type ActionMode struct {
	actions []editor.Action
}

// Enter action mode for the instruction under the cursor (if any).
func (p *Editor) enterActionMode() {
	var (
		cursor  = p.Cursor()
		actions []editor.Action
	)
	//
	if cursor == nil {
		return
	}
	//
	for _, a := range p.View().Actions(cursor) {
		blocks := a.Kind == editor.BLOCK_SAVE_ACTION || a.Kind == editor.BLOCK_LOAD_ACTION
		// Blocks are unavailable without a library
		if !blocks || p.library != nil {
			actions = append(actions, a)
		}
	}
	//
	p.EnterMode(&ActionMode{actions})
}

// Activate implementation for the Mode interface.
func (p *ActionMode) Activate(parent *Editor) {
	parent.cmdBar.Clear()
	parent.cmdBar.AddLeft(termio.NewColouredText(parent.lookup.Text(lang.ACTIONS_TITLE)+": ", termio.TERM_YELLOW))
	//
	for k, a := range p.actions {
		parent.cmdBar.AddLeft(termio.NewColouredText(fmt.Sprintf("[%d]", k+1), termio.TERM_YELLOW))
		parent.cmdBar.AddLeft(termio.NewText(a.Label + " "))
	}
	//
	parent.cmdBar.AddRight(termio.NewColouredText("[esc]", termio.TERM_RED))
}

// Clock implementation for the Mode interface.
func (p *ActionMode) Clock(parent *Editor) {
	// Nothing to do.
}

// KeyPressed implementation for the Mode interface.
func (p *ActionMode) KeyPressed(parent *Editor, key uint16) bool {
	switch {
	case key == termio.ESC:
		return true
	case key >= '1' && key <= '9' && int(key-'1') < len(p.actions):
		parent.perform(p.actions[key-'1'])
		return true
	}
	//
	return false
}

// Perform an action on the instruction under the cursor.  Actions which act on
// the selection use the cursor instruction when nothing is selected.
func (p *Editor) perform(action editor.Action) {
	state := p.current()
	//
	switch action.Kind {
	case editor.EDIT_ACTION:
		p.enterEditMode()
	case editor.MOVE_UP_ACTION:
		p.selectCursor()
		p.moveSelection(state, state.view.MoveSelectionUp)
	case editor.MOVE_DOWN_ACTION:
		p.selectCursor()
		p.moveSelection(state, state.view.MoveSelectionDown)
	case editor.DEFINE_ACTION:
		p.gotoDefinition(action.Target)
	case editor.SEARCH_ACTION:
		p.searchReferences(action.Target)
	case editor.BLOCK_SAVE_ACTION:
		p.enterBlockMode(p.saveBlock)
	case editor.BLOCK_LOAD_ACTION:
		p.enterBlockMode(p.loadBlock)
	case editor.ADD_ACTION:
		p.enterInsertMode()
	case editor.REMOVE_ACTION:
		p.selectCursor()
		p.report(state.view.Delete())
	}
}

func (p *Editor) selectCursor() {
	if view, cursor := p.View(), p.Cursor(); cursor != nil && len(view.Selection()) == 0 {
		view.Select(cursor)
	}
}

// Show the definition of a class or member.  Methods of the class being edited
// are opened in their tab, whilst other definitions are described in the
// status bar.
func (p *Editor) gotoDefinition(target insn.Member) {
	if target.Owner == p.class.Name && strings.HasPrefix(target.Desc, "(") {
		for k, state := range p.methods {
			if state.method.Name == target.Name && state.method.Descriptor == target.Desc {
				p.tabs.Select(uint(k))
				return
			}
		}
	}
	//
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("%s: %s", p.lookup.Text(lang.DEFINE), target), termio.TERM_CYAN))
}

// Select the references to a class or member within the method being edited,
// and report how many references the class contains overall.
func (p *Editor) searchReferences(target insn.Member) {
	var total, methods int
	//
	for _, state := range p.methods {
		if n := len(editor.References(state.method.Code.ToList(), target)); n > 0 {
			total += n
			methods++
		}
	}
	//
	view := p.View()
	view.Select(editor.References(view.CurrentOrder(), target)...)
	//
	msg := fmt.Sprintf("%s to %s: %d (%d methods)", p.lookup.Text(lang.REFERENCES), target, total, methods)
	p.SetStatus(termio.NewColouredText(msg, termio.TERM_CYAN))
}
