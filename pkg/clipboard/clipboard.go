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
package clipboard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/consensys/go-bcedit/pkg/insn"
)

// ErrIncompatibleClipboard indicates a block cannot be pasted into a given
// method.
var ErrIncompatibleClipboard = errors.New("incompatible clipboard")

// Context describes the method from which a block was copied (or into which it
// is to be pasted).
type Context struct {
	Owner     string `json:"owner" cbor:"1,keyasint"`
	Name      string `json:"name" cbor:"2,keyasint"`
	Desc      string `json:"desc" cbor:"3,keyasint"`
	Static    bool   `json:"static,omitempty" cbor:"4,keyasint,omitempty"`
	MaxLocals uint   `json:"maxLocals" cbor:"5,keyasint"`
	// Known kind of each local variable slot, indexed by slot.  Slots beyond
	// the end are unknown.
	Slots []insn.SlotKind `json:"slots,omitempty" cbor:"6,keyasint,omitempty"`
}

// SlotKind returns the known kind of a given slot in this context.
func (c Context) SlotKind(slot uint) insn.SlotKind {
	if slot < uint(len(c.Slots)) {
		return c.Slots[slot]
	}
	//
	return insn.UNKNOWN_SLOT
}

func (c Context) String() string {
	return fmt.Sprintf("%s.%s%s", c.Owner, c.Name, c.Desc)
}

// Block is an ordered sequence of instructions copied out of a method, together
// with the context of that method.  The instructions are independent of the
// originals: labels defined within the block have been replaced, and all
// references to them retargeted.  References to labels outside the block are
// preserved, and flagged.
type Block struct {
	insns    []insn.Instruction
	context  Context
	external []*insn.Label
}

// Capture copies the given instructions (in the given order) into a new block.
func Capture(selected []insn.Instruction, ctx Context) *Block {
	insns := insn.CloneAll(selected)
	//
	return &Block{insns, ctx, insn.ExternalTargets(insns)}
}

// Len returns the number of instructions in this block.
func (b *Block) Len() int {
	return len(b.insns)
}

// Context returns the context of the method this block was copied from.
func (b *Block) Context() Context {
	return b.context
}

// Instructions returns the instructions held in this block.  These must not be
// inserted into a method; use Materialize for that.
func (b *Block) Instructions() []insn.Instruction {
	return slices.Clone(b.insns)
}

// Materialize produces a fresh copy of the instructions in this block, suitable
// for insertion into a method.  Every call produces distinct identities, so the
// same block can be pasted any number of times.
func (b *Block) Materialize() []insn.Instruction {
	return insn.CloneAll(b.insns)
}

// HasExternalReferences checks whether any instruction in this block refers to
// a label not defined in the block.
func (b *Block) HasExternalReferences() bool {
	return len(b.external) > 0
}

// ExternalTargets returns the labels referenced from within the block which are
// not defined in it.
func (b *Block) ExternalTargets() []*insn.Label {
	return slices.Clone(b.external)
}

// CompatibleWith determines whether this block can be pasted into a method with
// the given context.  A block is incompatible when it accesses some local
// variable slot whose kind is known in both contexts, and those kinds differ.
func (b *Block) CompatibleWith(target Context) error {
	for _, i := range b.insns {
		slot, ok := insn.SlotOf(i)
		//
		if !ok {
			continue
		}
		//
		src, dst := b.context.SlotKind(slot), target.SlotKind(slot)
		//
		if !src.Compatible(dst) {
			return fmt.Errorf("slot %d holds %s in %s but %s in %s: %w", slot, src, b.context, dst, target,
				ErrIncompatibleClipboard)
		}
	}
	//
	return nil
}
