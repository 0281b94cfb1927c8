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
	"time"

	"github.com/consensys/go-bcedit/pkg/blocks"
	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/config"
	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/render"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/util/termio/widget"
	"github.com/consensys/go-bcedit/pkg/verify"
	log "github.com/sirupsen/logrus"
)

// Screen is the terminal on which the editor is displayed.
type Screen interface {
	termio.Window
	// GetSize returns the width and height of the screen.
	GetSize() (uint, uint)
	// ReadKey blocks until a key is pressed.
	ReadKey() (uint16, error)
	// Restore the screen to its original state.
	Restore() error
}

// Editor is an interactive terminal editor for the methods of a single class.
// Each method is edited through its own view, opened when the method is first
// displayed.
type Editor struct {
	width  uint
	height uint
	//
	screen   Screen
	filename string
	class    *method.Class
	config   *config.Config
	lookup   lang.Lookup
	library  *blocks.Library
	options  []editor.Option
	// Constructs the verifier for each method (when enabled).
	verifiers VerifierFactory
	// One (lazily opened) view per method, along with its cursor and scroll
	// offset.
	methods []*methodState
	// Contents of the clipboard (if any)
	clipboard *clipboard.Block
	// Parses instructions entered as text
	parser *render.TextRenderer
	// Instructions previously entered, most recent last
	history  []string
	modified bool
	// Widgets
	tabs      *widget.Tabs
	table     *widget.Table
	cmdBar    *widget.TextLine
	statusBar *widget.TextLine
	statusClk uint
	// Closed once the key reader started by Start has stopped.
	reader chan struct{}
	// The stack of "modes" in which the editor is operating.  When the root
	// mode is terminated, the editor closes.
	modes []Mode
}

type methodState struct {
	method *method.Method
	view   *editor.View
	cursor uint
	offset uint
}

// Mode represents a mode of operation for the editor, such as navigating or
// entering text.
type Mode interface {
	// Activate is called when this mode becomes active.  This happens when the
	// mode is first entered, but can also happen subsequently when a child mode
	// exits and results in this mode being reactivated.
	Activate(*Editor)
	// Clock is called on every clock tick.
	Clock(*Editor)
	// KeyPressed in the editor and received by this mode.  Returns true when
	// the mode should exit.
	KeyPressed(*Editor, uint16) bool
}

// VerifierFactory constructs the verifier for a given method, or returns nil if
// the method cannot be verified.
type VerifierFactory func(*method.Method) verify.Verifier

// NewEditor constructs an editor for a class loaded from a given file.  The
// library may be nil, in which case blocks cannot be saved or loaded.
// Likewise, verifiers may be nil in which case verification is unavailable.
func NewEditor(screen Screen, filename string, cls *method.Class, cfg *config.Config,
	library *blocks.Library, verifiers VerifierFactory) *Editor {
	//
	p := &Editor{screen: screen, filename: filename, class: cls, config: cfg, lookup: lang.English(),
		library: library, verifiers: verifiers, parser: render.NewTextRenderer()}
	//
	p.options = []editor.Option{
		editor.WithObserver(p),
		editor.WithResolver(method.NewWorkspace(cls)),
		editor.WithAutoVerify(cfg.Verify.OnEdit),
		editor.WithLookup(p.lookup),
	}
	//
	var titles []string
	//
	for _, m := range cls.Methods {
		p.methods = append(p.methods, &methodState{method: m})
		titles = append(titles, m.Key())
	}
	//
	p.tabs = widget.NewTabs(titles...)
	p.table = widget.NewTable(p)
	p.cmdBar = widget.NewText()
	p.statusBar = widget.NewText()
	//
	screen.Add(p.tabs)
	screen.Add(widget.NewSeparator("⎯"))
	screen.Add(p.table)
	screen.Add(widget.NewSeparator("⎯"))
	screen.Add(p.cmdBar)
	screen.Add(p.statusBar)
	//
	p.EnterMode(&NavigationMode{})
	//
	return p
}

// Current returns the state of the method currently displayed, opening its
// view if necessary.  This returns nil when the class has no methods.
func (p *Editor) current() *methodState {
	if len(p.methods) == 0 {
		return nil
	}
	//
	state := p.methods[p.tabs.Selected()]
	//
	if state.view == nil || state.view.IsClosed() {
		opts := p.options
		//
		if p.verifiers != nil {
			if v := p.verifiers(state.method); v != nil {
				opts = append(slices.Clone(opts), editor.WithVerifier(v))
			}
		}
		//
		state.view = editor.Open(p.class, state.method, opts...)
		state.cursor, state.offset = 0, 0
	}
	//
	return state
}

// View returns the view of the method currently displayed, or nil if there is
// none.
func (p *Editor) View() *editor.View {
	if state := p.current(); state != nil {
		return state.view
	}
	//
	return nil
}

// Cursor returns the instruction under the cursor, or nil if the method is
// empty.
func (p *Editor) Cursor() insn.Instruction {
	state := p.current()
	//
	if state == nil || state.view.Len() == 0 {
		return nil
	}
	//
	order := state.view.CurrentOrder()
	//
	return order[min(state.cursor, uint(len(order)-1))]
}

// Modified checks whether any method has been modified since the class was
// last written.
func (p *Editor) Modified() bool {
	return p.modified
}

// GraphDirty implementation for editor.Observer interface.
func (p *Editor) GraphDirty(m *method.Method, version uint64) {
	log.Debugf("%s modified (version %d)", m, version)
	//
	p.modified = true
	//
	if state := p.current(); state != nil && state.method == m {
		p.clampCursor(state)
	}
}

// Verified implementation for editor.Observer interface.
func (p *Editor) Verified(m *method.Method, result verify.Result) {
	if result.Valid {
		p.SetStatus(termio.NewColouredText(p.lookup.Text(lang.VERIFY_PASS), termio.TERM_GREEN))
	} else {
		msg := fmt.Sprintf("%s: %s", p.lookup.Text(lang.VERIFY_FAIL), result.Summary(p.config.Verify.MaxMessage))
		p.SetStatus(termio.NewColouredText(msg, termio.TERM_RED))
	}
}

// EnterMode pushes a new mode onto the mode stack, and activates it.
func (p *Editor) EnterMode(mode Mode) {
	p.modes = append(p.modes, mode)
	mode.Activate(p)
}

// KeyPressed dispatches a key to the active mode, returning true when the
// editor should exit.
func (p *Editor) KeyPressed(key uint16) bool {
	var n = len(p.modes) - 1
	// Modes entered whilst handling the key remain above this one
	if p.modes[n].KeyPressed(p, key) {
		p.modes = slices.Delete(p.modes, n, n+1)
		//
		if len(p.modes) > 0 {
			p.modes[len(p.modes)-1].Activate(p)
		}
	}
	//
	return len(p.modes) == 0
}

// SetStatus displays a message in the status bar for a few clock ticks.
func (p *Editor) SetStatus(msg termio.FormattedText) {
	p.statusBar.Clear()
	p.statusBar.Add(msg)
	p.statusClk = 5
}

// Clock advances the editor by one tick, re-rendering if the status expired or
// the screen dimensions changed.
func (p *Editor) Clock() error {
	dirty := false
	nWidth, nHeight := p.screen.GetSize()
	//
	p.modes[len(p.modes)-1].Clock(p)
	//
	if p.statusClk != 0 {
		p.statusClk--
		// Clear status when clock expired
		if p.statusClk == 0 {
			p.statusBar.Clear()
			dirty = true
		}
	}
	//
	if dirty || nWidth != p.width || nHeight != p.height {
		p.width, p.height = nWidth, nHeight
		return p.Render()
	}
	//
	return nil
}

// Render the editor to the screen.
func (p *Editor) Render() error {
	return p.screen.Render()
}

// Close every view, and restore the screen.
func (p *Editor) Close() error {
	for _, state := range p.methods {
		if state.view != nil {
			state.view.Close()
		}
	}
	//
	return p.screen.Restore()
}

// Start the main loop of the editor, which runs until the editor exits or the
// screen fails.  Keys, clock ticks and verification outcomes are all handled on
// this goroutine.
func (p *Editor) Start() []error {
	var (
		errors []error
		keys   = make(chan uint16)
		fail   = make(chan error, 1)
		done   = make(chan struct{})
		clk    = time.NewTicker(500 * time.Millisecond)
	)
	//
	defer clk.Stop()
	defer close(done)
	//
	p.reader = make(chan struct{})
	go p.readKeys(keys, fail, done)
	//
	if err := p.Render(); err != nil {
		errors = append(errors, err)
	}
	//
	for len(errors) == 0 {
		var results <-chan verify.Outcome
		//
		if view := p.View(); view != nil {
			results = view.Results()
		}
		//
		select {
		case err := <-fail:
			errors = append(errors, err)
			continue
		case <-clk.C:
			if err := p.Clock(); err != nil {
				errors = append(errors, err)
			}
			//
			continue
		case outcome := <-results:
			p.View().Deliver(outcome)
		case key := <-keys:
			if p.KeyPressed(key) {
				if err := p.Close(); err != nil {
					errors = append(errors, err)
				}
				//
				return errors
			}
		}
		//
		if err := p.Render(); err != nil {
			errors = append(errors, err)
		}
	}
	//
	if err := p.Close(); err != nil {
		errors = append(errors, err)
	}
	//
	return errors
}

// Forward keys from the screen until it fails, or the main loop finishes.
func (p *Editor) readKeys(keys chan<- uint16, fail chan<- error, done <-chan struct{}) {
	defer close(p.reader)
	//
	for {
		key, err := p.screen.ReadKey()
		if err != nil {
			select {
			case fail <- err:
			case <-done:
			}
			//
			return
		}
		//
		select {
		case keys <- key:
		case <-done:
			return
		}
	}
}
