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
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/verify"
)

// Rows occupied by widgets other than the instruction table.
const CHROME_HEIGHT = 5

// NavigationMode is the default mode of the editor, in which the cursor is
// moved around the instructions of a method and edits are applied.
type NavigationMode struct {
}

// Activate implementation for the Mode interface.
func (p *NavigationMode) Activate(parent *Editor) {
	parent.cmdBar.Clear()
	//
	for _, cmd := range parent.commands() {
		parent.cmdBar.AddLeft(termio.NewColouredText(fmt.Sprintf("[%s]", cmd.key), cmd.colour))
		parent.cmdBar.AddLeft(termio.NewText(cmd.title + " "))
	}
	//
	if view := parent.View(); view != nil {
		parent.cmdBar.AddRight(verificationStatus(parent, view))
	}
}

// Clock implementation for the Mode interface.
func (p *NavigationMode) Clock(parent *Editor) {
	// Refresh verification status
	p.Activate(parent)
}

// KeyPressed implementation for the Mode interface.
func (p *NavigationMode) KeyPressed(parent *Editor, key uint16) bool {
	state := parent.current()
	//
	switch {
	case key == 'q':
		return true
	case key == termio.TAB:
		parent.tabs.Next(true)
	case key == termio.BACKTAB:
		parent.tabs.Next(false)
	case state == nil:
		// Nothing else applies to a class without methods
		return false
	case key == termio.CURSOR_UP:
		parent.moveCursor(state, -1)
	case key == termio.CURSOR_DOWN:
		parent.moveCursor(state, 1)
	case key == termio.PAGE_UP:
		parent.moveCursor(state, -int(parent.tableHeight()))
	case key == termio.PAGE_DOWN:
		parent.moveCursor(state, int(parent.tableHeight()))
	case key == termio.SPACE:
		parent.toggleSelection()
	case key == termio.ESC:
		state.view.ClearSelection()
	case key == 'd':
		parent.report(state.view.Delete())
	case key == 'i':
		parent.enterInsertMode()
	case key == 'e':
		parent.enterEditMode()
	case key == 'u':
		parent.moveSelection(state, state.view.MoveSelectionUp)
	case key == 'n':
		parent.moveSelection(state, state.view.MoveSelectionDown)
	case key == parent.keybind(parent.config.Keybinds.Copy):
		parent.copySelection()
	case key == parent.keybind(parent.config.Keybinds.Paste):
		parent.paste(parent.clipboard)
	case key == 's':
		parent.seed()
	case key == 'b':
		parent.enterBlockMode(parent.saveBlock)
	case key == 'l':
		parent.enterBlockMode(parent.loadBlock)
	case key == 'w':
		parent.write()
	case key == 'r':
		parent.verifyNow()
	case key == '?':
		parent.enterActionMode()
	}
	// Refresh whichever mode is now active
	parent.modes[len(parent.modes)-1].Activate(parent)
	//
	return false
}

type command struct {
	key    string
	title  string
	colour uint
}

// Determine the commands displayed in the command bar.
func (p *Editor) commands() []command {
	cmds := []command{
		{"space", "select", termio.TERM_YELLOW},
		{"i", p.lookup.Text(lang.ADD), termio.TERM_YELLOW},
		{"e", p.lookup.Text(lang.EDIT), termio.TERM_YELLOW},
		{"d", p.lookup.Text(lang.REMOVE), termio.TERM_YELLOW},
		{"u/n", p.lookup.Text(lang.MOVE_UP) + "/" + p.lookup.Text(lang.MOVE_DOWN), termio.TERM_YELLOW},
	}
	//
	if p.config.Keybinds.Active {
		cmds = append(cmds,
			command{p.config.Keybinds.Copy, p.lookup.Text(lang.COPY), termio.TERM_YELLOW},
			command{p.config.Keybinds.Paste, p.lookup.Text(lang.PASTE), termio.TERM_YELLOW})
	}
	//
	if view := p.View(); view != nil && view.NeedsSeed() {
		cmds = append(cmds, command{"s", p.lookup.Text(lang.SEED), termio.TERM_YELLOW})
	}
	//
	if p.library != nil {
		cmds = append(cmds,
			command{"b", p.lookup.Text(lang.BLOCK_SAVE), termio.TERM_YELLOW},
			command{"l", p.lookup.Text(lang.BLOCK_LOAD), termio.TERM_YELLOW})
	}
	//
	return append(cmds,
		command{"?", p.lookup.Text(lang.ACTIONS_TITLE), termio.TERM_YELLOW},
		command{"w", p.lookup.Text(lang.WRITE), termio.TERM_YELLOW},
		command{"q", p.lookup.Text(lang.QUIT), termio.TERM_RED})
}

func verificationStatus(parent *Editor, view *editor.View) termio.FormattedText {
	switch view.Overlay().ListStyle() {
	case verify.STYLE_PASS:
		return termio.NewColouredText(parent.lookup.Text(lang.VERIFY_PASS), termio.TERM_GREEN)
	case verify.STYLE_FAIL:
		return termio.NewColouredText(parent.lookup.Text(lang.VERIFY_FAIL), termio.TERM_RED)
	default:
		return termio.NewColouredText(parent.lookup.Text(lang.VERIFY_PENDING), termio.TERM_WHITE)
	}
}

// Determine the key bound to a given command, or zero when keybinds are
// inactive.
func (p *Editor) keybind(binding string) uint16 {
	if !p.config.Keybinds.Active || len(binding) == 0 {
		return 0
	}
	//
	return uint16(binding[0])
}

// Number of rows available for displaying instructions.
func (p *Editor) tableHeight() uint {
	if p.height > CHROME_HEIGHT {
		return p.height - CHROME_HEIGHT
	}
	//
	return 1
}

func (p *Editor) moveCursor(state *methodState, delta int) {
	cursor := int(state.cursor) + delta
	state.cursor = uint(max(cursor, 0))
	p.clampCursor(state)
}

// Ensure the cursor is within the method, and visible.
func (p *Editor) clampCursor(state *methodState) {
	n := uint(state.view.Len())
	//
	if n == 0 {
		state.cursor = 0
	} else {
		state.cursor = min(state.cursor, n-1)
	}
	//
	rows := p.tableHeight()
	//
	if state.cursor < state.offset {
		state.offset = state.cursor
	} else if state.cursor >= state.offset+rows {
		state.offset = state.cursor - rows + 1
	}
}

func (p *Editor) toggleSelection() {
	var (
		view      = p.View()
		cursor    = p.Cursor()
		selection = view.Selection()
	)
	//
	if cursor == nil {
		return
	} else if view.IsSelected(cursor) {
		view.Select(slices.DeleteFunc(selection, func(i insn.Instruction) bool { return i == cursor })...)
	} else {
		view.Select(append(selection, cursor)...)
	}
}

// Move the selection, keeping the cursor on the same instruction.
func (p *Editor) moveSelection(state *methodState, move func() error) {
	cursor := p.Cursor()
	//
	if err := move(); err != nil {
		p.error(err)
		return
	}
	//
	if index := state.view.Graph().IndexOf(cursor); index >= 0 {
		state.cursor = uint(index)
		p.clampCursor(state)
	}
}

func (p *Editor) copySelection() {
	view := p.View()
	//
	if len(view.Selection()) == 0 {
		return
	}
	//
	p.clipboard = view.CopySelection()
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("%s: %d", p.lookup.Text(lang.COPY), p.clipboard.Len()),
		termio.TERM_GREEN))
}

// Paste a block after the cursor.
func (p *Editor) paste(block *clipboard.Block) {
	if block == nil {
		return
	}
	//
	err := p.View().PasteAfter(p.Cursor(), block)
	//
	switch {
	case errors.Is(err, clipboard.ErrIncompatibleClipboard):
		p.SetStatus(termio.NewColouredText(p.lookup.Text(lang.PASTE_INCOMPAT), termio.TERM_RED))
	case errors.Is(err, editor.ErrClosed):
		p.SetStatus(termio.NewColouredText(p.lookup.Text(lang.EDITOR_CLOSED), termio.TERM_RED))
	case err != nil:
		p.error(err)
	}
}

func (p *Editor) seed() {
	if view := p.View(); view.NeedsSeed() {
		p.error(view.Seed())
	}
}

func (p *Editor) write() {
	if err := method.WriteFile(p.filename, p.class); err != nil {
		p.error(err)
		return
	}
	//
	p.modified = false
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("%s: %s", p.lookup.Text(lang.WRITE), p.filename),
		termio.TERM_GREEN))
}

func (p *Editor) verifyNow() {
	p.error(p.View().VerifyNow(context.Background()))
}

// Report the diagnostics arising from an edit.
func (p *Editor) report(errs []error) {
	if len(errs) > 0 {
		p.error(errors.Join(errs...))
	}
}

func (p *Editor) error(err error) {
	if err != nil {
		p.SetStatus(termio.NewColouredText(err.Error(), termio.TERM_RED))
	}
}
