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
package xref

import (
	"testing"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
)

// Deleting a self-loop jump removes it from the label's reverse references.
func Test_Xref_01(t *testing.T) {
	var (
		l0    = insn.NewLabel()
		jmp   = insn.NewJump(insn.GOTO, l0)
		l0End = insn.NewLabel()
		g     = graph.New(l0, jmp, l0End)
	)
	//
	check_Refs(t, RelatedTo(g, l0), Reference{jmp, REVERSE})
	//
	if errs := g.Remove(jmp); len(errs) != 0 {
		t.Fatal(errs)
	}
	//
	check_Refs(t, RelatedTo(g, l0))
}

// Table switch yields default then every case, without deduplication.
func Test_Xref_02(t *testing.T) {
	var (
		ld = insn.NewLabel()
		la = insn.NewLabel()
		lb = insn.NewLabel()
		lc = insn.NewLabel()
		sw = insn.NewTableSwitch(0, 2, ld, la, lb, lc)
		g  = graph.New(sw, la, lb, lc, ld)
	)
	//
	check_Refs(t, RelatedTo(g, sw), Reference{ld, FAILURE_PATH}, Reference{la, JUMP_TARGET},
		Reference{lb, JUMP_TARGET}, Reference{lc, JUMP_TARGET})
	// Repeated case labels
	sw2 := insn.NewTableSwitch(0, 2, ld, la, la, lc)
	check_NoError(t, g.Append(sw2))
	check_Refs(t, RelatedTo(g, sw2), Reference{ld, FAILURE_PATH}, Reference{la, JUMP_TARGET},
		Reference{la, JUMP_TARGET}, Reference{lc, JUMP_TARGET})
}

func Test_Xref_03(t *testing.T) {
	var (
		l0   = insn.NewLabel()
		jmp  = insn.NewJump(insn.IFEQ, l0)
		next = insn.NewVar(insn.ILOAD, 1)
		g    = graph.New(jmp, next, l0)
	)
	//
	check_Refs(t, RelatedTo(g, jmp), Reference{l0, JUMP_TARGET}, Reference{next, FAILURE_PATH})
	// Dangling target omitted
	if errs := g.Remove(l0); len(errs) != 0 {
		t.Fatal(errs)
	}
	//
	check_Refs(t, RelatedTo(g, jmp), Reference{next, FAILURE_PATH})
}

func Test_Xref_04(t *testing.T) {
	var (
		load  = insn.NewVar(insn.ILOAD, 1)
		other = insn.NewVar(insn.ILOAD, 2)
		inc   = insn.NewIinc(1, 1)
		store = insn.NewVar(insn.ISTORE, 1)
		g     = graph.New(load, other, inc, store)
	)
	//
	check_Refs(t, RelatedTo(g, inc), Reference{load, VAR_MATCH}, Reference{inc, VAR_MATCH},
		Reference{store, VAR_MATCH})
}

func Test_Xref_05(t *testing.T) {
	var (
		get   = insn.NewField(insn.GETFIELD, "A", "f", "I")
		put   = insn.NewField(insn.PUTFIELD, "A", "f", "I")
		other = insn.NewField(insn.GETFIELD, "A", "f", "J")
		g     = graph.New(get, other, put)
	)
	//
	check_Refs(t, RelatedTo(g, put), Reference{get, FIELD_MATCH}, Reference{put, FIELD_MATCH})
}

func Test_Xref_06(t *testing.T) {
	var (
		l0   = insn.NewLabel()
		line = insn.NewLine(4, l0)
		jmp  = insn.NewJump(insn.GOTO, l0)
		sw   = insn.NewLookupSwitch(l0, []int32{1, 2}, []*insn.Label{l0, l0})
		ret  = insn.NewPlain(insn.RETURN)
		g    = graph.New(l0, line, jmp, sw, ret)
	)
	//
	check_Refs(t, RelatedTo(g, line), Reference{l0, JUMP_TARGET})
	check_Refs(t, RelatedTo(g, l0), Reference{line, REVERSE}, Reference{jmp, REVERSE}, Reference{sw, REVERSE})
	check_Refs(t, RelatedTo(g, ret))
	check_Refs(t, RelatedTo(g, insn.NewPlain(insn.NOP)))
	//
	styles := Styles(RelatedTo(g, sw))
	//
	if len(styles[l0]) != 2 || styles[l0][0] != STYLE_JUMPDEST_FAIL || styles[l0][1] != STYLE_JUMPDEST {
		t.Errorf("unexpected styles %v", styles[l0])
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Refs(t *testing.T, actual []Reference, expected ...Reference) {
	t.Helper()
	//
	if len(actual) != len(expected) {
		t.Fatalf("expected %d references, got %d (%v)", len(expected), len(actual), actual)
	}
	//
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("reference %d: expected %v, got %v", i, expected[i], actual[i])
		}
	}
}

func check_NoError(t *testing.T, err error) {
	t.Helper()
	//
	if err != nil {
		t.Fatal(err)
	}
}
