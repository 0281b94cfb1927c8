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
	"context"
	"errors"
	"slices"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/lang"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/render"
	"github.com/consensys/go-bcedit/pkg/verify"
	log "github.com/sirupsen/logrus"
)

// ErrClosed is returned by operations on an editor which has been closed.
var ErrClosed = errors.New("editor closed")

// Observer is notified of changes to the method being edited.  Notifications
// are made synchronously on the goroutine driving the view.
type Observer interface {
	// GraphDirty is called exactly once at the end of every batch of changes
	// which modified the instruction graph.
	GraphDirty(m *method.Method, version uint64)
	// Verified is called whenever a verification result is applied.
	Verified(m *method.Method, result verify.Result)
}

// Resolver determines whether the definition of a class or member referred to
// by an instruction is available (e.g. loaded in the workspace).
type Resolver interface {
	HasClass(name string) bool
	HasField(member insn.Member) bool
	HasMethod(member insn.Member) bool
}

// Option configures a view when opened.
type Option func(*View)

// WithRenderer sets the renderer used to produce instruction representations.
func WithRenderer(r render.Renderer) Option {
	return func(v *View) { v.renderer = r }
}

// WithVerifier sets the verifier used to check the method.
func WithVerifier(verifier verify.Verifier) Option {
	return func(v *View) { v.verifier = verifier }
}

// WithObserver registers an observer of the view.
func WithObserver(o Observer) Option {
	return func(v *View) { v.observers = append(v.observers, o) }
}

// WithLookup sets the lookup used for display text.
func WithLookup(l lang.Lookup) Option {
	return func(v *View) { v.lookup = l }
}

// WithResolver sets the resolver used to determine whether definitions are
// available.
func WithResolver(r Resolver) Option {
	return func(v *View) { v.resolver = r }
}

// WithAutoVerify determines whether verification is scheduled automatically
// after every batch of changes.
func WithAutoVerify(flag bool) Option {
	return func(v *View) { v.autoVerify = flag }
}

// View is an editable, observable projection of a method's instruction graph.
// All edits are applied to the graph, after which the visible order is
// recomputed from it.  Consequently, the visible order always agrees with the
// graph after every reconciled batch.
//
// A view is owned by a single goroutine.  Verification runs asynchronously
// against a snapshot, and its outcomes are applied on the owner goroutine via
// Deliver().
type View struct {
	owner  *method.Class
	method *method.Method
	graph  *graph.Graph
	// Visible order (as of the last reconciliation)
	order []insn.Instruction
	// Render cache, holding exactly the visible instructions.
	cache map[insn.Instruction]render.Representation
	// Selected instructions in visible order, and the focal instruction.
	selection []insn.Instruction
	focus     insn.Instruction
	// Highlight styles computed from the selection.
	highlights map[insn.Instruction][]string
	overlay    *verify.Overlay
	observers  []Observer
	renderer   render.Renderer
	verifier   verify.Verifier
	runner     *verify.Runner
	lookup     lang.Lookup
	resolver   Resolver
	autoVerify bool
	closed     bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// Open an editor view onto a given method of a given class.  The method's code
// becomes the single graph backing this view.
func Open(owner *method.Class, m *method.Method, opts ...Option) *View {
	if m.Code == nil {
		m.Code = graph.New()
	}
	//
	v := &View{
		owner:      owner,
		method:     m,
		graph:      m.Code,
		cache:      make(map[insn.Instruction]render.Representation),
		highlights: make(map[insn.Instruction][]string),
		renderer:   render.NewTextRenderer(),
		lookup:     lang.English(),
		autoVerify: true,
	}
	//
	for _, opt := range opts {
		opt(v)
	}
	//
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.overlay = verify.NewOverlay(v.graph.Version())
	//
	if v.verifier != nil {
		v.runner = verify.NewRunner(v.verifier)
	}
	//
	v.order = v.graph.ToList()
	v.Refresh()
	//
	if v.autoVerify {
		v.scheduleVerify()
	}
	//
	return v
}

// Owner returns the class owning the method being edited.
func (v *View) Owner() *method.Class {
	return v.owner
}

// Method returns the method being edited.
func (v *View) Method() *method.Method {
	return v.method
}

// Graph returns the graph backing this view.
func (v *View) Graph() *graph.Graph {
	return v.graph
}

// Lookup returns the lookup used for display text.
func (v *View) Lookup() lang.Lookup {
	return v.lookup
}

// CurrentOrder returns a read-only snapshot of the visible order.
func (v *View) CurrentOrder() []insn.Instruction {
	return slices.Clone(v.order)
}

// Len returns the number of visible instructions.
func (v *View) Len() int {
	return len(v.order)
}

// Representation returns the cached representation of a visible instruction.
func (v *View) Representation(i insn.Instruction) (render.Representation, bool) {
	r, ok := v.cache[i]
	return r, ok
}

// Refresh re-renders every visible instruction.  This is idempotent.
func (v *View) Refresh() {
	for _, i := range v.order {
		v.cache[i] = v.renderer.Render(i, v.method)
	}
}

// IsClosed checks whether this view has been closed.
func (v *View) IsClosed() bool {
	return v.closed
}

// Close this view, cancelling any verification in flight.  Subsequent edits
// fail with ErrClosed.
func (v *View) Close() {
	if v.closed {
		return
	}
	//
	v.closed = true
	v.cancel()
	//
	if v.runner != nil {
		v.runner.Close()
	}
	//
	log.Debugf("closed editor for %s", v.method)
}

// ClassRenamed informs the view that a class has been renamed.  If this is the
// owner of the method being edited, the view closes itself.
func (v *View) ClassRenamed(oldName string) bool {
	if v.owner != nil && v.owner.Name == oldName {
		v.Close()
		return true
	}
	//
	return false
}

// ClassReverted informs the view that a class has been reverted to an earlier
// state.  If this is the owner of the method being edited, the view closes
// itself.
func (v *View) ClassReverted(name string) bool {
	return v.ClassRenamed(name)
}
