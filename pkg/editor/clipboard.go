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
	"errors"
	"fmt"

	"github.com/consensys/go-bcedit/pkg/clipboard"
	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
	log "github.com/sirupsen/logrus"
)

// CopySelection copies the selection (in visible order) into a new clipboard
// block.
func (v *View) CopySelection() *clipboard.Block {
	return clipboard.Capture(v.selection, v.method.Context())
}

// PasteAfter inserts a fresh copy of a block's instructions immediately after a
// given anchor, or at the end when the anchor is nil.  If the block is not
// compatible with this method, ErrIncompatibleClipboard is returned and nothing
// changes.  Dangling references arising from the block's external references
// are permitted, and only logged.
func (v *View) PasteAfter(anchor insn.Instruction, block *clipboard.Block) error {
	var from int
	//
	if v.closed {
		return ErrClosed
	} else if block == nil || block.Len() == 0 {
		return nil
	} else if err := block.CompatibleWith(v.method.Context()); err != nil {
		return err
	}
	//
	if anchor == nil {
		from = v.graph.Len()
	} else if index := v.graph.IndexOf(anchor); index < 0 {
		return fmt.Errorf("paste anchor %v: %w", anchor, graph.ErrNotFound)
	} else {
		from = index + 1
	}
	//
	if block.HasExternalReferences() {
		log.Warnf("pasting block with %d external label reference(s) into %s", len(block.ExternalTargets()),
			v.method)
	}
	//
	var errs []error
	//
	for _, err := range v.ApplyUiChange(Change{From: from, Added: block.Materialize()}) {
		if errors.Is(err, graph.ErrDangling) {
			log.Debug(err.Error())
		} else {
			errs = append(errs, err)
		}
	}
	//
	return errors.Join(errs...)
}

// NeedsSeed checks whether the method body is empty, in which case the only
// sensible edit is to seed it.
func (v *View) NeedsSeed() bool {
	return v.graph.Len() == 0
}

// Seed inserts a minimal method skeleton (start label, RETURN, end label) into
// an empty method.  For instance methods without local variables, a "this"
// local spanning the skeleton is also added.  This does nothing if the method
// is not empty.
func (v *View) Seed() error {
	if v.closed {
		return ErrClosed
	} else if !v.NeedsSeed() {
		return nil
	}
	//
	var (
		start = insn.NewLabel()
		end   = insn.NewLabel()
	)
	//
	if len(v.method.Locals) == 0 && !v.method.IsStatic() {
		var owner string
		//
		if v.owner != nil {
			owner = v.owner.Name
		}
		//
		v.method.Locals = append(v.method.Locals, method.LocalVariable{Name: "this", Desc: "L" + owner + ";",
			Start: start, End: end, Index: 0})
		v.method.MaxLocals = 1
	}
	//
	errs := v.ApplyUiChange(Change{From: 0, Added: []insn.Instruction{start, insn.NewPlain(insn.RETURN), end}})
	// Local variable names may have changed
	v.Refresh()
	//
	return errors.Join(errs...)
}
