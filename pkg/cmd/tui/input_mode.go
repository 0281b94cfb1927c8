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
	"slices"
	"strings"

	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/render"
	"github.com/consensys/go-bcedit/pkg/util/termio"
)

// InputMode is a mode in which the user enters a line of text, which is
// converted into a value of some kind and then applied.
type InputMode[T any] struct {
	// prompt to show user
	prompt termio.FormattedText
	// input text being accumulated whilst in input mode.
	input []byte
	// current cursor position
	cursor uint
	// history of options for this input mode.
	history []string
	// history index
	index uint
	// handler responsible for checking whether input is valid (or not).
	handler InputHandler[T]
}

// InputHandler converts text input into values, and applies them.
type InputHandler[T any] interface {
	// Convert attempts to convert the input string into a valid value.
	Convert(string) (T, bool)
	// Apply the given input, which will activate some kind of callback.
	Apply(T)
}

func newInputMode[T any](prompt termio.FormattedText, history []string, handler InputHandler[T]) *InputMode[T] {
	return &InputMode[T]{prompt, nil, 0, history, uint(len(history)), handler}
}

// Activate implementation for the Mode interface.
func (p *InputMode[T]) Activate(parent *Editor) {
	var (
		colour = termio.TERM_GREEN
		input  = string(p.input)
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_BLACK).BgColour(termio.TERM_YELLOW)
	)
	//
	parent.cmdBar.Clear()
	parent.cmdBar.Add(p.prompt)
	//
	if _, ok := p.handler.Convert(input); !ok {
		colour = termio.TERM_RED
	}
	//
	if p.cursor < uint(len(p.input)) {
		// cursor behind text
		parent.cmdBar.Add(termio.NewColouredText(input[:p.cursor], colour))
		parent.cmdBar.Add(termio.NewFormattedText(input[p.cursor:p.cursor+1], escape))
		parent.cmdBar.Add(termio.NewColouredText(input[p.cursor+1:], colour))
	} else {
		// cursor leading text
		parent.cmdBar.Add(termio.NewColouredText(input, colour))
		parent.cmdBar.Add(termio.NewFormattedText(" ", escape))
	}
}

// Clock implementation for the Mode interface.
func (p *InputMode[T]) Clock(parent *Editor) {
	// Nothing to do.
}

// KeyPressed implementation for the Mode interface.
func (p *InputMode[T]) KeyPressed(parent *Editor, key uint16) bool {
	switch {
	case key == termio.ESC:
		return true
	case key == termio.BACKSPACE || key == termio.DEL:
		if p.cursor > 0 {
			p.cursor--
			p.input = slices.Delete(p.input, int(p.cursor), int(p.cursor)+1)
		}
	case key == termio.CARRIAGE_RETURN:
		if val, ok := p.handler.Convert(string(p.input)); ok {
			p.handler.Apply(val)
		}
		//
		return true
	case key == termio.CURSOR_LEFT:
		if p.cursor > 0 {
			p.cursor--
		}
	case key == termio.CURSOR_RIGHT:
		if p.cursor < uint(len(p.input)) {
			p.cursor++
		}
	case key == termio.CURSOR_UP:
		if p.index > 0 {
			p.index--
			p.setInput(p.history[p.index])
		}
	case key == termio.CURSOR_DOWN:
		if p.index+1 < uint(len(p.history)) {
			p.index++
			p.setInput(p.history[p.index])
		} else {
			p.index = uint(len(p.history))
			p.setInput("")
		}
	case key >= 32 && key <= 126:
		p.input = slices.Insert(p.input, int(p.cursor), byte(key))
		p.cursor++
	}
	// Update displayed text
	p.Activate(parent)
	//
	return false
}

func (p *InputMode[T]) setInput(text string) {
	p.input = []byte(text)
	p.cursor = uint(len(p.input))
}

// ============================================================================
// Block names
// ============================================================================

type nameHandler struct {
	callback func(string)
}

func (p *nameHandler) Convert(input string) (string, bool) {
	name := strings.TrimSpace(input)
	return name, name != ""
}

func (p *nameHandler) Apply(name string) {
	p.callback(name)
}

// Enter a mode for reading the name of a block, whose history is the set of
// blocks currently in the library.
func (p *Editor) enterBlockMode(callback func(string)) {
	var history []string
	//
	if p.library == nil {
		return
	}
	//
	entries, err := p.library.List()
	if err != nil {
		p.error(err)
		return
	}
	//
	for _, e := range entries {
		history = append(history, e.Name)
	}
	//
	prompt := termio.NewColouredText(fmt.Sprintf("[history ↑/↓] %s? ", p.lookup.Text(lang.BLOCK_TITLE)),
		termio.TERM_YELLOW)
	//
	p.EnterMode(newInputMode[string](prompt, history, &nameHandler{callback}))
}

func (p *Editor) saveBlock(name string) {
	view := p.View()
	//
	if len(view.Selection()) == 0 {
		return
	}
	//
	if _, err := p.library.Save(name, view.CopySelection()); err != nil {
		p.error(err)
		return
	}
	//
	p.SetStatus(termio.NewColouredText(fmt.Sprintf("%s: %s", p.lookup.Text(lang.BLOCK_SAVE), name),
		termio.TERM_GREEN))
}

func (p *Editor) loadBlock(name string) {
	block, err := p.library.Load(name)
	//
	if err != nil {
		p.error(err)
		return
	}
	//
	p.paste(block)
}

// ============================================================================
// Instructions
// ============================================================================

type insnHandler struct {
	parser   *render.TextRenderer
	method   *method.Method
	callback func(insn.Instruction)
}

func (p *insnHandler) Convert(input string) (insn.Instruction, bool) {
	i, err := p.parser.Parse(input, p.method)
	return i, err == nil
}

func (p *insnHandler) Apply(i insn.Instruction) {
	p.callback(i)
}

// Enter a mode for reading an instruction, whose history is the set of
// instructions previously entered.
func (p *Editor) enterInsnMode(title string, initial string, callback func(insn.Instruction)) {
	state := p.current()
	prompt := termio.NewColouredText(fmt.Sprintf("[history ↑/↓] %s? ", title), termio.TERM_YELLOW)
	mode := newInputMode[insn.Instruction](prompt, p.history, &insnHandler{p.parser, state.method, callback})
	//
	mode.setInput(initial)
	p.EnterMode(mode)
}

// Enter a mode for inserting a new instruction after the cursor.
func (p *Editor) enterInsertMode() {
	if p.current() != nil {
		p.enterInsnMode(p.lookup.Text(lang.INSERT_TITLE), "", p.insertInstruction)
	}
}

// Enter a mode for replacing the instruction under the cursor, starting from
// its current text.
func (p *Editor) enterEditMode() {
	var (
		cursor = p.Cursor()
		view   = p.View()
	)
	//
	if cursor == nil || !cursor.Capabilities().Has(insn.CAN_EDIT) {
		return
	}
	//
	repr, _ := view.Representation(cursor)
	//
	p.enterInsnMode(p.lookup.Text(lang.EDIT), repr.String(), func(i insn.Instruction) {
		p.replaceInstruction(cursor, i)
	})
}

func (p *Editor) insertInstruction(i insn.Instruction) {
	var (
		state = p.current()
		at    = 0
	)
	//
	if state.view.Len() > 0 {
		at = int(state.cursor) + 1
	}
	//
	p.report(state.view.ApplyUiChange(editor.Change{From: at, Added: []insn.Instruction{i}}))
	p.entered(state, i)
}

func (p *Editor) replaceInstruction(old insn.Instruction, i insn.Instruction) {
	var (
		state = p.current()
		at    = state.view.Graph().IndexOf(old)
	)
	//
	if at < 0 {
		return
	}
	//
	p.report(state.view.ApplyUiChange(editor.Change{From: at, Removed: []insn.Instruction{old},
		Added: []insn.Instruction{i}}))
	p.entered(state, i)
}

// Move the cursor onto an instruction just entered, and record its text.
func (p *Editor) entered(state *methodState, i insn.Instruction) {
	if index := state.view.Graph().IndexOf(i); index >= 0 {
		state.cursor = uint(index)
		p.clampCursor(state)
	}
	//
	if repr, ok := state.view.Representation(i); ok && i.Kind() != insn.LABEL {
		p.history = append(p.history, repr.String())
	}
}
