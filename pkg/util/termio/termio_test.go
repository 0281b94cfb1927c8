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
package termio

import (
	"bytes"
	"math"
	"testing"
)

func Test_Escape_01(t *testing.T) {
	check_Escape(t, NewAnsiEscape(), "")
	check_Escape(t, ResetAnsiEscape(), "\033[0m")
	check_Escape(t, NewAnsiEscape().FgColour(TERM_RED), "\033[31m")
	check_Escape(t, BoldAnsiEscape().FgColour(TERM_BLACK).BgColour(TERM_YELLOW), "\033[1;30;43m")
}

func Test_Escape_02(t *testing.T) {
	var (
		base  = UnderlineAnsiEscape()
		red   = base.FgColour(TERM_RED)
		green = base.FgColour(TERM_GREEN)
	)
	// Extending an escape leaves the original unchanged
	check_Escape(t, base, "\033[4m")
	check_Escape(t, red, "\033[4;31m")
	check_Escape(t, green, "\033[4;32m")
}

func Test_Text_01(t *testing.T) {
	text := NewText("ldc \"héllo\"")
	//
	if text.Len() != 11 {
		t.Errorf("expected length 11, got %d", text.Len())
	}
	//
	text.Clip(5, 10)
	//
	if text.String() != "héllo" {
		t.Errorf("expected \"héllo\", got %q", text.String())
	}
	//
	text.Clip(3, math.MaxUint)
	//
	if text.String() != "lo" {
		t.Errorf("expected \"lo\", got %q", text.String())
	}
}

func Test_Text_02(t *testing.T) {
	text := NewColouredText("GOTO", TERM_GREEN)
	//
	if string(text.Bytes()) != "\033[32mGOTO\033[0m" {
		t.Errorf("unexpected bytes %q", text.Bytes())
	} else if string(NewText("NOP").Bytes()) != "NOP" {
		t.Errorf("unexpected bytes %q", NewText("NOP").Bytes())
	}
}

func Test_Key_01(t *testing.T) {
	check_Key(t, []byte{'q'}, 'q')
	check_Key(t, []byte{0x1b, '[', 'A'}, CURSOR_UP)
	check_Key(t, []byte{0x1b, '[', 'B'}, CURSOR_DOWN)
	check_Key(t, []byte{0x1b, '[', 'C'}, CURSOR_RIGHT)
	check_Key(t, []byte{0x1b, '[', 'D'}, CURSOR_LEFT)
	check_Key(t, []byte{0x1b, '[', 'Z'}, BACKTAB)
	check_Key(t, []byte{0x1b, '[', '5', '~'}, PAGE_UP)
	check_Key(t, []byte{0x1b, '[', '6', '~'}, PAGE_DOWN)
	check_Key(t, []byte{0x1b, '[', 'X'}, UNKNOWN)
	check_Key(t, []byte{0x1b, 'O', 'A'}, UNKNOWN)
}

func Test_Layout_01(t *testing.T) {
	var (
		top    = &fixedWidget{1, "top"}
		middle = &fixedWidget{math.MaxUint, "mid"}
		bottom = &fixedWidget{1, "bottom"}
		lines  = layout([]Widget{top, middle, bottom}, 8, 5)
	)
	//
	expected := []string{"top     ", "mid     ", "mid     ", "mid     ", "bottom  "}
	//
	check_Lines(t, lines, expected)
}

func Test_Layout_02(t *testing.T) {
	lines := layout([]Widget{&fixedWidget{1, "overflowing"}}, 4, 2)
	//
	check_Lines(t, lines, []string{"over", "    "})
}

func Test_Canvas_01(t *testing.T) {
	canvas := newTerminalCanvas(10, 1)
	canvas.Write(4, 0, NewText("world"))
	canvas.Write(0, 0, NewText("hello!"))
	canvas.Write(12, 0, NewText("ignored"))
	// Later chunks overlapping earlier ones are clipped
	check_Lines(t, [][]byte{canvas.renderLine(0)}, []string{"hello!rld "})
}

func Test_Table_01(t *testing.T) {
	var (
		buf   bytes.Buffer
		table = NewTablePrinter(3, 2)
	)
	//
	table.SetRow(0, "0", "ILOAD", "0 (x)")
	table.SetRow(1, "10", "INVOKESTATIC", "java/lang/Math.max(II)I")
	table.SetMaxWidth(2, 10)
	table.Set(0, 0, NewColouredText("0", TERM_RED))
	table.AnsiEscapes(false)
	//
	if err := table.Print(&buf); err != nil {
		t.Fatal(err)
	}
	//
	expected := "0  ILOAD        0 (x)\n10 INVOKESTATIC java/lan..\n"
	//
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

type fixedWidget struct {
	height uint
	text   string
}

func (p *fixedWidget) GetHeight() uint {
	return p.height
}

func (p *fixedWidget) Render(canvas Canvas) {
	_, h := canvas.GetDimensions()
	//
	for y := uint(0); y < h; y++ {
		canvas.Write(0, y, NewText(p.text))
	}
}

func check_Escape(t *testing.T, escape AnsiEscape, expected string) {
	t.Helper()
	//
	if actual := escape.Build(); actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func check_Key(t *testing.T, bytes []byte, expected uint16) {
	t.Helper()
	//
	if actual := decodeKey(bytes); actual != expected {
		t.Errorf("key %v: expected %x, got %x", bytes, expected, actual)
	}
}

func check_Lines(t *testing.T, lines [][]byte, expected []string) {
	t.Helper()
	//
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	//
	for i, line := range lines {
		if string(line) != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], line)
		}
	}
}
