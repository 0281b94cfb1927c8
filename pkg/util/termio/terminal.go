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
	"errors"
	"io"
	"math"
	"os"
	"slices"
	"sync"

	"golang.org/x/term"
)

// ESC is the escape code.
const ESC uint16 = 0x1b

// TAB indicates the horizontal tab
const TAB uint16 = 0x09

// CARRIAGE_RETURN indicates "enter"
const CARRIAGE_RETURN uint16 = 0x0D

// BACKSPACE is the backspace
const BACKSPACE uint16 = 0x08

// DEL is the delete key
const DEL uint16 = 0x7f

// SPACE is the space bar
const SPACE uint16 = 0x20

// BACKTAB indicates shift + tab
const BACKTAB uint16 = 0x5b5a

// CURSOR_UP (up arrow)
const CURSOR_UP uint16 = 0x5b41

// CURSOR_DOWN (down arrow)
const CURSOR_DOWN uint16 = 0x5b42

// CURSOR_RIGHT (right arrow)
const CURSOR_RIGHT uint16 = 0x5b43

// CURSOR_LEFT (left arrow)
const CURSOR_LEFT uint16 = 0x5b44

// PAGE_UP (page up)
const PAGE_UP uint16 = 0x5b35

// PAGE_DOWN (page down)
const PAGE_DOWN uint16 = 0x5b36

// UNKNOWN is a fall-back for unknown escape sequences
const UNKNOWN uint16 = 0x5bff

// Moves the cursor to the top-left corner.
const cursorHome = "\033[H"

// Terminal provides a simple top-level window.
type Terminal struct {
	// file descriptors for input and output.
	in, out int
	// Underlying terminal
	xterm *term.Terminal
	// Stores original state of terminal so this can be restored.
	state    *term.State
	restored sync.Once
	// List of widgets to display
	widgets []Widget
}

// NewTerminal constructs a new terminal, moving it into raw mode.
func NewTerminal() (*Terminal, error) {
	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	//
	if !term.IsTerminal(in) || !term.IsTerminal(out) {
		return nil, errors.New("invalid terminal")
	}
	// Move terminal into raw mode
	state, err := term.MakeRaw(in)
	if err != nil {
		return nil, err
	}
	// Construct "screen"
	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	//
	return &Terminal{in: in, out: out, xterm: term.NewTerminal(screen, ""), state: state}, nil
}

// ReadKey returns a keyevent from the keyboard.  This is either an ASCII
// character, or an extended escape code.
func (t *Terminal) ReadKey() (uint16, error) {
	var key [4]byte
	//
	n, err := os.Stdin.Read(key[:])
	//
	if err != nil {
		return 0, err
	}
	//
	return decodeKey(key[:n]), nil
}

// Decode the bytes of a single key press.
func decodeKey(key []byte) uint16 {
	switch {
	case len(key) == 1:
		return uint16(key[0])
	case len(key) < 3 || key[0] != byte(ESC) || key[1] != '[':
		// Unknown or malformed escape sequence.
		return UNKNOWN
	case len(key) == 4 && key[3] == '~' && (key[2] == '5' || key[2] == '6'):
		return 0x5b00 | uint16(key[2])
	case len(key) != 3:
		return UNKNOWN
	}
	// Dispatch escape
	switch key[2] {
	case 'A':
		return CURSOR_UP
	case 'B':
		return CURSOR_DOWN
	case 'C':
		return CURSOR_RIGHT
	case 'D':
		return CURSOR_LEFT
	case 'Z':
		return BACKTAB
	}
	// unknown key
	return UNKNOWN
}

// GetSize returns the dimensions of the terminal.
func (t *Terminal) GetSize() (uint, uint) {
	w, h, err := term.GetSize(t.out)
	// Fall back to a conventional size.
	if err != nil {
		return 80, 24
	}
	//
	return uint(w), uint(h)
}

// Add a new widget to this window.  Widgets will be laid out vertically in
// the order they are added.
func (t *Terminal) Add(w Widget) {
	t.widgets = append(t.widgets, w)
}

// Render this window to the terminal.
func (t *Terminal) Render() error {
	width, height := t.GetSize()
	//
	if _, err := t.xterm.Write([]byte(cursorHome)); err != nil {
		return err
	}
	//
	for _, line := range layout(t.widgets, width, height) {
		if _, err := t.xterm.Write(line); err != nil {
			return err
		}
	}
	//
	return nil
}

// Restore terminal to its original state.  This can safely be called more
// than once.
func (t *Terminal) Restore() error {
	var err error
	//
	t.restored.Do(func() {
		err = term.Restore(t.in, t.state)
	})
	//
	return err
}

// Lay out a set of widgets vertically within given dimensions, returning the
// rendered lines.  Widgets of unbounded height share whatever space remains,
// and any space left over is filled with blank lines.
func layout(widgets []Widget, width, height uint) [][]byte {
	var (
		lines [][]byte
		taken uint
		nFlex uint
		flex  uint
	)
	//
	for _, w := range widgets {
		if h := w.GetHeight(); h != math.MaxUint {
			taken += h
		} else {
			nFlex++
		}
	}
	// Determine flexible amount
	if nFlex > 0 && taken < height {
		flex = (height - taken) / nFlex
	}
	//
	for _, w := range widgets {
		h := w.GetHeight()
		//
		if h == math.MaxUint {
			h = flex
		}
		// Clip widgets which do not fit
		h = min(h, height-uint(len(lines)))
		canvas := newTerminalCanvas(width, h)
		w.Render(canvas)
		//
		for i := range canvas.lines {
			lines = append(lines, canvas.renderLine(uint(i)))
		}
	}
	// Fill out remainder with blanks
	for uint(len(lines)) < height {
		lines = append(lines, blankLine(width))
	}
	//
	return lines
}

// TerminalCanvas provides a Canvas which collects chunks to be written when
// rendering a given widget.
type terminalCanvas struct {
	width uint
	lines [][]terminalChunk
}

func newTerminalCanvas(width, height uint) *terminalCanvas {
	return &terminalCanvas{width, make([][]terminalChunk, height)}
}

func (p *terminalCanvas) GetDimensions() (uint, uint) {
	return p.width, uint(len(p.lines))
}

func (p *terminalCanvas) Write(x, y uint, text FormattedText) {
	w, h := p.GetDimensions()
	//
	if x < w && y < h {
		text.Clip(0, w-x)
		p.lines[y] = append(p.lines[y], terminalChunk{x, text})
	}
}

// Render a line of the canvas, such that chunks are written left to right and
// those overlapping an earlier chunk are clipped.
func (p *terminalCanvas) renderLine(line uint) []byte {
	var (
		xpos   uint
		chunks = p.lines[line]
		bytes  []byte
	)
	//
	slices.SortStableFunc(chunks, func(l terminalChunk, r terminalChunk) int {
		return int(l.xpos) - int(r.xpos)
	})
	//
	for _, c := range chunks {
		text := c.text
		// fill upto mark
		for ; xpos < c.xpos; xpos++ {
			bytes = append(bytes, ' ')
		}
		// Clip chunk if it overlaps
		if c.xpos < xpos {
			text.Clip(xpos-c.xpos, math.MaxUint)
		}
		//
		bytes = append(bytes, text.Bytes()...)
		xpos += text.Len()
	}
	// fill to end of line
	for ; xpos < p.width; xpos++ {
		bytes = append(bytes, ' ')
	}
	//
	return bytes
}

type terminalChunk struct {
	xpos uint
	text FormattedText
}

// Construct a line full of blanks.
func blankLine(width uint) []byte {
	bytes := make([]byte, width)
	//
	for i := range bytes {
		bytes[i] = ' '
	}
	//
	return bytes
}
