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
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/consensys/go-bcedit/pkg/blocks"
	"github.com/consensys/go-bcedit/pkg/config"
	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/verify"
)

func Test_Editor_01(t *testing.T) {
	e, m := newTestEditor(t, nil)
	// Select second and third instructions, then delete them.
	check_Keys(t, e, termio.CURSOR_DOWN, termio.SPACE, termio.CURSOR_DOWN, termio.SPACE)
	//
	if len(e.View().Selection()) != 2 {
		t.Fatalf("expected two selected instructions, got %d", len(e.View().Selection()))
	}
	//
	check_Keys(t, e, 'd')
	check_Length(t, m, 2)
	//
	if !e.Modified() {
		t.Errorf("expected editor to be modified")
	}
}

func Test_Editor_02(t *testing.T) {
	e, m := newTestEditor(t, nil)
	// Copy first instruction, and paste after last.
	check_Keys(t, e, termio.SPACE, 'c', termio.CURSOR_DOWN, termio.CURSOR_DOWN, termio.CURSOR_DOWN, 'v')
	check_Length(t, m, 5)
	//
	if m.Code.Last().Opcode() != insn.ILOAD {
		t.Errorf("expected ILOAD pasted at end, got %v", m.Code.Last())
	}
}

func Test_Editor_03(t *testing.T) {
	e, m := newTestEditor(t, nil)
	first := m.Code.First()
	// Move first instruction down twice, cursor follows it.
	check_Keys(t, e, termio.SPACE, 'n', 'n')
	//
	if m.Code.IndexOf(first) != 2 {
		t.Errorf("expected instruction at index 2, got %d", m.Code.IndexOf(first))
	} else if e.Cursor() != first {
		t.Errorf("expected cursor to follow moved instruction")
	}
	//
	check_Keys(t, e, 'u')
	//
	if m.Code.IndexOf(first) != 1 {
		t.Errorf("expected instruction at index 1, got %d", m.Code.IndexOf(first))
	}
}

func Test_Editor_04(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	//
	check_Keys(t, e, termio.SPACE, 'd', 'w')
	//
	cls, err := method.ReadFile(e.filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	if n := cls.Find("m", "(I)I").Code.Len(); n != 3 {
		t.Errorf("expected 3 instructions written, got %d", n)
	} else if e.Modified() {
		t.Errorf("expected editor to be unmodified after writing")
	}
}

func Test_Editor_05(t *testing.T) {
	lib, err := blocks.Open(filepath.Join(t.TempDir(), "blocks.db"))
	if err != nil {
		t.Fatal(err)
	}
	//
	defer lib.Close()
	//
	e, m := newTestEditor(t, lib)
	// Save first two instructions as a block
	check_Keys(t, e, termio.SPACE, termio.CURSOR_DOWN, termio.SPACE, 'b')
	check_Text(t, e, "pair")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	//
	if entries, err := lib.List(); err != nil || len(entries) != 1 || entries[0].Name != "pair" {
		t.Fatalf("expected block \"pair\" saved (%v, %v)", entries, err)
	}
	// Load it back
	check_Keys(t, e, 'l')
	check_Text(t, e, "pair")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	check_Length(t, m, 6)
}

func Test_Editor_06(t *testing.T) {
	e, m := newTestEditor(t, nil)
	// Blocks are unavailable without a library
	e.library = nil
	check_Keys(t, e, 'b')
	//
	if len(e.modes) != 1 {
		t.Errorf("expected no input mode without a library")
	}
	// Seeding a non-empty method does nothing
	check_Keys(t, e, 's')
	check_Length(t, m, 4)
	//
	if !e.KeyPressed('q') {
		t.Errorf("expected editor to exit")
	}
}

func Test_Editor_07(t *testing.T) {
	var (
		cls = method.NewClass("A", "java/lang/Object", method.ACC_PUBLIC)
		m   = cls.AddMethod("run", "()V", method.ACC_PUBLIC)
		e   = NewEditor(&testScreen{}, filepath.Join(t.TempDir(), "A.json"), cls, config.Default(), nil, nil)
	)
	//
	check_Keys(t, e, 's')
	check_Length(t, m, 3)
	//
	if len(m.Locals) != 1 {
		t.Errorf("expected receiver local to be added")
	}
}

func Test_Editor_08(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	//
	if err := e.Clock(); err != nil {
		t.Fatal(err)
	}
	//
	check_Keys(t, e, termio.CURSOR_DOWN)
	//
	if cell := e.CellAt(1, 1); strings.TrimSpace(cell.String()) != "ICONST_1" {
		t.Errorf("expected ICONST_1, got %q", cell.String())
	} else if cell := e.CellAt(0, 3); strings.TrimSpace(cell.String()) != "3" {
		t.Errorf("expected index 3, got %q", cell.String())
	} else if cell := e.CellAt(1, 10); cell.Len() != 0 {
		t.Errorf("expected empty cell, got %q", cell.String())
	}
	//
	if e.ColumnWidth(3) != 100-64 || e.ColumnWidth(4) != 0 {
		t.Errorf("unexpected column widths %d, %d", e.ColumnWidth(3), e.ColumnWidth(4))
	}
}

func Test_Editor_09(t *testing.T) {
	var (
		cls = method.NewClass("A", "java/lang/Object", method.ACC_PUBLIC)
		m   = cls.AddMethod("m", "(I)I", method.ACC_PUBLIC|method.ACC_STATIC)
		cfg = config.Default()
	)
	//
	m.MaxLocals = 1
	m.Code = graph.New(insn.NewVar(insn.ILOAD, 0), insn.NewPlain(insn.IRETURN))
	cfg.Verify.OnEdit = false
	//
	e := NewEditor(&testScreen{}, filepath.Join(t.TempDir(), "A.json"), cls, cfg, nil,
		func(m *method.Method) verify.Verifier { return verify.Lint{MaxLocals: m.MaxLocals} })
	//
	t.Cleanup(func() { e.Close() })
	//
	check_Keys(t, e, 'r')
	//
	if style := e.View().Overlay().ListStyle(); style != verify.STYLE_PASS {
		t.Errorf("expected %s, got %q", verify.STYLE_PASS, style)
	}
	// Removing the return lets control fall off the end
	check_Keys(t, e, termio.CURSOR_DOWN, termio.SPACE, 'd')
	//
	if e.View().Overlay().State() != verify.UNVERIFIED {
		t.Errorf("expected overlay to be unverified after edit")
	}
	//
	check_Keys(t, e, 'r')
	//
	if style := e.View().Overlay().ListStyle(); style != verify.STYLE_FAIL {
		t.Errorf("expected %s, got %q", verify.STYLE_FAIL, style)
	}
}

func Test_Editor_10(t *testing.T) {
	e, m := newTestEditor(t, nil)
	// Insert after the cursor, which then moves onto the new instruction
	check_Keys(t, e, 'i')
	check_Text(t, e, "ICONST_2")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	check_Length(t, m, 5)
	//
	if op := m.Code.At(1).Opcode(); op != insn.ICONST_2 {
		t.Errorf("expected ICONST_2 inserted, got %s", op)
	} else if e.Cursor() != m.Code.At(1) {
		t.Errorf("expected cursor on inserted instruction")
	}
	// Invalid text changes nothing
	check_Keys(t, e, 'i')
	check_Text(t, e, "ILOAD x")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	check_Length(t, m, 5)
	// Previous entries are offered as history
	check_Keys(t, e, 'i', termio.CURSOR_UP, termio.CARRIAGE_RETURN)
	check_Length(t, m, 6)
	//
	if op := m.Code.At(2).Opcode(); op != insn.ICONST_2 {
		t.Errorf("expected ICONST_2 from history, got %s", op)
	}
}

func Test_Editor_11(t *testing.T) {
	e, m := newTestEditor(t, nil)
	old := m.Code.At(1)
	// Edit starts from the current text ("ICONST_1")
	check_Keys(t, e, termio.CURSOR_DOWN, 'e', termio.BACKSPACE)
	check_Text(t, e, "5")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	check_Length(t, m, 4)
	//
	if op := m.Code.At(1).Opcode(); op != insn.ICONST_5 {
		t.Errorf("expected ICONST_5, got %s", op)
	} else if m.Code.Contains(old) {
		t.Errorf("expected replaced instruction to be removed")
	} else if len(e.modes) != 1 {
		t.Errorf("expected navigation mode, got %d modes", len(e.modes))
	}
}

func Test_Editor_12(t *testing.T) {
	e, m := newTestEditor(t, nil)
	// Edit, move down, add and remove are offered for the first instruction
	check_Keys(t, e, '?')
	//
	if mode, ok := e.modes[len(e.modes)-1].(*ActionMode); !ok {
		t.Fatalf("expected action mode")
	} else if len(mode.actions) != 4 || mode.actions[3].Kind != editor.REMOVE_ACTION {
		t.Fatalf("unexpected actions %v", mode.actions)
	}
	// Remove the cursor instruction
	check_Keys(t, e, '4')
	check_Length(t, m, 3)
	// Add after the cursor
	check_Keys(t, e, '?', '3')
	check_Text(t, e, "NOP")
	check_Keys(t, e, termio.CARRIAGE_RETURN)
	check_Length(t, m, 4)
	//
	if op := m.Code.At(1).Opcode(); op != insn.NOP {
		t.Errorf("expected NOP, got %s", op)
	}
	// Escape and out of range choices leave the menu without acting
	check_Keys(t, e, '?', '9', termio.ESC)
	check_Length(t, m, 4)
	//
	if len(e.modes) != 1 {
		t.Errorf("expected navigation mode, got %d modes", len(e.modes))
	}
}

func Test_Editor_13(t *testing.T) {
	var (
		cls    = method.NewClass("A", "java/lang/Object", method.ACC_PUBLIC)
		m      = cls.AddMethod("m", "()I", method.ACC_STATIC)
		helper = cls.AddMethod("helper", "()I", method.ACC_STATIC)
		call   = insn.NewMethod(insn.INVOKESTATIC, "A", "helper", "()I", false)
	)
	//
	m.Code = graph.New(call, insn.NewPlain(insn.IRETURN))
	helper.Code = graph.New(insn.NewMethod(insn.INVOKESTATIC, "A", "helper", "()I", false), insn.NewPlain(insn.IRETURN))
	//
	e := NewEditor(&testScreen{}, filepath.Join(t.TempDir(), "A.json"), cls, config.Default(), nil, nil)
	t.Cleanup(func() { e.Close() })
	// Edit, move down, definition, references, add, remove
	check_Keys(t, e, termio.SPACE, '?', '4')
	//
	if sel := e.View().Selection(); len(sel) != 1 || sel[0] != call {
		t.Errorf("expected call selected, got %v", sel)
	}
	//
	check_Keys(t, e, '?', '3')
	//
	if e.tabs.Selected() != 1 {
		t.Errorf("expected definition opened in tab 1, got %d", e.tabs.Selected())
	}
}

func Test_Editor_14(t *testing.T) {
	screen := &scriptScreen{keys: []uint16{'q', 'x', 'x'}}
	e, _ := newTestEditor(t, nil)
	e.screen = screen
	//
	if errs := e.Start(); len(errs) != 0 {
		t.Fatal(errs)
	}
	// Key reader stops, even though keys remain
	select {
	case <-e.reader:
	case <-time.After(5 * time.Second):
		t.Fatalf("key reader still running")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

type testScreen struct {
	widgets []termio.Widget
}

func (p *testScreen) Add(w termio.Widget) {
	p.widgets = append(p.widgets, w)
}

func (p *testScreen) Render() error {
	return nil
}

func (p *testScreen) GetSize() (uint, uint) {
	return 100, 30
}

func (p *testScreen) ReadKey() (uint16, error) {
	return 0, io.EOF
}

func (p *testScreen) Restore() error {
	return nil
}

// Screen which replays a fixed sequence of keys.
type scriptScreen struct {
	testScreen
	keys []uint16
}

func (p *scriptScreen) ReadKey() (uint16, error) {
	if len(p.keys) == 0 {
		return 0, io.EOF
	}
	//
	key := p.keys[0]
	p.keys = p.keys[1:]
	//
	return key, nil
}

func newTestEditor(t *testing.T, lib *blocks.Library) (*Editor, *method.Method) {
	var (
		cls = method.NewClass("A", "java/lang/Object", method.ACC_PUBLIC)
		m   = cls.AddMethod("m", "(I)I", method.ACC_PUBLIC|method.ACC_STATIC)
	)
	//
	m.MaxLocals = 1
	m.Code = graph.New(insn.NewVar(insn.ILOAD, 0), insn.NewPlain(insn.ICONST_1), insn.NewPlain(insn.IADD),
		insn.NewPlain(insn.IRETURN))
	//
	e := NewEditor(&testScreen{}, filepath.Join(t.TempDir(), "A.json"), cls, config.Default(), lib, nil)
	//
	t.Cleanup(func() { e.Close() })
	//
	return e, m
}

func check_Keys(t *testing.T, e *Editor, keys ...uint16) {
	t.Helper()
	//
	for _, key := range keys {
		if e.KeyPressed(key) {
			t.Fatalf("unexpected exit on key %x", key)
		}
	}
}

func check_Text(t *testing.T, e *Editor, text string) {
	t.Helper()
	//
	for _, c := range []byte(text) {
		check_Keys(t, e, uint16(c))
	}
}

func check_Length(t *testing.T, m *method.Method, expected int) {
	t.Helper()
	//
	if m.Code.Len() != expected {
		t.Errorf("expected %d instructions, got %d", expected, m.Code.Len())
	}
}
