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
	"slices"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/render"
	log "github.com/sirupsen/logrus"
)

// Change describes a single change to the visible list, as produced by a
// presentation layer.  Instructions in Removed are removed (wherever they
// are), after which those in Added are inserted at position From.
type Change struct {
	From    int
	Removed []insn.Instruction
	Added   []insn.Instruction
}

// ApplyUiChange applies a batch of changes to the graph, in order, and then
// reconciles the view with the graph exactly once.  The errors returned are
// non-fatal diagnostics: instructions which could not be found or inserted,
// and dangling label references created by this batch.  Observers are notified
// once if the graph changed.
func (v *View) ApplyUiChange(changes ...Change) []error {
	var errs []error
	//
	if v.closed {
		return []error{ErrClosed}
	}
	//
	var (
		before   = v.graph.Version()
		dangling = danglingSet(v.graph)
	)
	//
	for _, c := range changes {
		if len(c.Removed) > 0 {
			errs = append(errs, v.graph.Remove(c.Removed...)...)
		}
		//
		if len(c.Added) > 0 {
			if err := v.graph.InsertAfter(v.anchorFor(c.From), c.Added...); err != nil {
				errs = append(errs, err)
			}
		}
	}
	// Report dangling references introduced by this batch
	for _, err := range v.graph.Dangling() {
		if !dangling[danglingKey{err.Insn, err.Target}] {
			errs = append(errs, err)
		}
	}
	//
	log.Debugf("applied %d change(s) to %s (%d diagnostics)", len(changes), v.method, len(errs))
	//
	if v.graph.Version() != before {
		v.reconcile()
	}
	//
	return errs
}

// Determine the instruction after which additions at a given position should
// be inserted.
func (v *View) anchorFor(from int) insn.Instruction {
	switch n := v.graph.Len(); {
	case from <= 0:
		return nil
	case from > n:
		log.Warnf("insertion position %d beyond end of %s (length %d)", from, v.method, n)
		return v.graph.Last()
	default:
		return v.graph.At(from - 1)
	}
}

type danglingKey struct {
	insn   insn.Instruction
	target *insn.Label
}

func danglingSet(g *graph.Graph) map[danglingKey]bool {
	set := make(map[danglingKey]bool)
	//
	for _, err := range g.Dangling() {
		set[danglingKey{err.Insn, err.Target}] = true
	}
	//
	return set
}

// Bring the view back into agreement with the graph after it was modified.
// The visible order is recomputed, stale cache entries dropped, and new (or
// layout dependent) entries rendered.  Observers are then notified, and
// verification scheduled.
func (v *View) reconcile() {
	v.order = v.graph.ToList()
	//
	for i := range v.cache {
		if !v.graph.Contains(i) {
			delete(v.cache, i)
		}
	}
	//
	for _, i := range v.order {
		if _, ok := v.cache[i]; !ok || render.DependsOnLayout(i) {
			v.cache[i] = v.renderer.Render(i, v.method)
		}
	}
	// Prune selection of anything removed
	v.setSelection(v.selection, v.focus)
	//
	version := v.graph.Version()
	v.overlay.Invalidate(version)
	//
	for _, o := range v.observers {
		o.GraphDirty(v.method, version)
	}
	//
	if v.autoVerify {
		v.scheduleVerify()
	}
}

// Delete removes the current selection, as one removal record per contiguous
// run of selected instructions.
func (v *View) Delete() []error {
	var (
		changes []Change
		removed = 0
	)
	//
	if v.closed {
		return []error{ErrClosed}
	} else if len(v.selection) == 0 {
		return nil
	}
	//
	for _, run := range v.selectedRuns() {
		// Position of run after earlier removals
		from := v.graph.IndexOf(run[0]) - removed
		changes = append(changes, Change{From: from, Removed: run})
		removed += len(run)
	}
	//
	return v.ApplyUiChange(changes...)
}

// Split the selection into maximal runs of adjacent instructions.
func (v *View) selectedRuns() [][]insn.Instruction {
	var (
		runs [][]insn.Instruction
		last = -2
	)
	//
	for _, i := range v.selection {
		index := v.graph.IndexOf(i)
		//
		if index == last+1 {
			runs[len(runs)-1] = append(runs[len(runs)-1], i)
		} else {
			runs = append(runs, []insn.Instruction{i})
		}
		//
		last = index
	}
	//
	return runs
}

// MoveSelectionUp shifts every selected instruction above its immediate
// predecessor.  Selected instructions already at the top (or packed against
// other such instructions) stay where they are.  The relative order of the
// selected instructions is preserved, and the selection itself is unchanged.
func (v *View) MoveSelectionUp() error {
	return v.moveSelection(true)
}

// MoveSelectionDown shifts every selected instruction below its immediate
// successor, with the same rules as for MoveSelectionUp.
func (v *View) MoveSelectionDown() error {
	return v.moveSelection(false)
}

func (v *View) moveSelection(up bool) error {
	var (
		selected = make(map[insn.Instruction]bool)
		items    = v.Selection()
		moved    = false
	)
	//
	if v.closed {
		return ErrClosed
	}
	//
	for _, i := range items {
		selected[i] = true
	}
	//
	if !up {
		// Process bottom-up, so blocked instructions are seen first.
		slices.Reverse(items)
	}
	//
	for _, i := range items {
		var (
			neighbour insn.Instruction
			err       error
		)
		//
		if up {
			neighbour = v.graph.Prev(i)
		} else {
			neighbour = v.graph.Next(i)
		}
		// Neighbour is selected only when it could not move itself.
		if neighbour == nil || selected[neighbour] {
			continue
		} else if up {
			err = v.graph.MoveBefore(i, neighbour)
		} else {
			err = v.graph.MoveAfter(i, neighbour)
		}
		//
		if err != nil {
			return err
		}
		//
		moved = true
	}
	//
	if moved {
		v.reconcile()
	}
	//
	return nil
}
