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
package render

import (
	"errors"
	"testing"

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
)

func Test_Render_01(t *testing.T) {
	var (
		cls   = method.NewClass("A", "java/lang/Object", 0)
		m     = cls.AddMethod("m", "(I)V", method.ACC_STATIC)
		l0    = insn.NewLabel()
		l1    = insn.NewLabel()
		lost  = insn.NewLabel()
		load  = insn.NewVar(insn.ILOAD, 0)
		inc   = insn.NewIinc(0, -2)
		jmp   = insn.NewJump(insn.IFEQ, l1)
		gone  = insn.NewJump(insn.GOTO, lost)
		sw    = insn.NewTableSwitch(3, 4, l0, l1, lost)
		field = insn.NewField(insn.GETSTATIC, "A", "f", "I")
		r     = NewTextRenderer()
	)
	//
	m.Locals = []method.LocalVariable{{Name: "x", Desc: "I", Start: l0, End: l1, Index: 0}}
	//
	if err := m.Code.Append(l0, load, inc, jmp, gone, sw, field, l1); err != nil {
		t.Fatal(err)
	}
	//
	check_Render(t, r, m, l0, "L0:")
	check_Render(t, r, m, l1, "L1:")
	check_Render(t, r, m, load, "ILOAD 0 (x)")
	check_Render(t, r, m, inc, "IINC 0 (x) -2")
	check_Render(t, r, m, jmp, "IFEQ L1")
	check_Render(t, r, m, gone, "GOTO L?")
	check_Render(t, r, m, sw, "TABLESWITCH 3: L1, 4: L?, default: L0")
	check_Render(t, r, m, field, "GETSTATIC A.f I")
	// Label names follow layout
	if errs := m.Code.Remove(l0); len(errs) != 0 {
		t.Fatal(errs)
	}
	//
	check_Render(t, r, m, jmp, "IFEQ L0")
}

func Test_Parse_01(t *testing.T) {
	var (
		cls    = method.NewClass("A", "java/lang/Object", 0)
		m      = cls.AddMethod("m", "(I)V", method.ACC_STATIC)
		l0     = insn.NewLabel()
		r      = NewTextRenderer()
		lookup = insn.NewMethod(insn.INVOKEINTERFACE, "java/util/Map", "get",
			"(Ljava/lang/Object;)Ljava/lang/Object;", true)
		multi = insn.NewImmediate(insn.MULTIANEWARRAY, insn.Operand{Sort: insn.TYPE_SORT, Text: "[[I", Int: 2})
	)
	//
	m.Locals = []method.LocalVariable{{Name: "x", Desc: "I", Start: l0, End: l0, Index: 0}}
	//
	if err := m.Code.Append(l0); err != nil {
		t.Fatal(err)
	}
	// Every rendered form reads back as an equal instruction
	for _, i := range []insn.Instruction{
		insn.NewPlain(insn.IADD),
		insn.NewVar(insn.ILOAD, 0),
		insn.NewIinc(0, -2),
		insn.NewJump(insn.GOTO, l0),
		insn.NewField(insn.GETSTATIC, "java/lang/System", "out", "Ljava/io/PrintStream;"),
		lookup,
		insn.NewImmediate(insn.BIPUSH, insn.IntOperand(-7)),
		insn.NewImmediate(insn.LDC, insn.StringOperand("hello world")),
		insn.NewImmediate(insn.LDC, insn.LongOperand(5)),
		insn.NewImmediate(insn.LDC, insn.IntOperand(100000)),
		insn.NewImmediate(insn.LDC, insn.Operand{Sort: insn.FLOAT_SORT, Float: 1.5}),
		insn.NewImmediate(insn.LDC, insn.TypeOperand("java/lang/String")),
		insn.NewImmediate(insn.NEW, insn.TypeOperand("java/lang/StringBuilder")),
		multi,
		insn.NewLine(12, l0),
		insn.NewLookupSwitch(l0, []int32{-1, 8}, []*insn.Label{l0, l0}),
		insn.NewTableSwitch(3, 4, l0, l0, l0),
	} {
		check_Parse(t, r, m, r.Render(i, m).String(), i)
	}
	// Mnemonics are case insensitive, and a fresh label can be created
	check_Parse(t, r, m, "  iconst_1 ", insn.NewPlain(insn.ICONST_1))
	//
	if l, err := r.Parse(LABEL_KEYWORD, m); err != nil || l.Kind() != insn.LABEL || l == insn.Instruction(l0) {
		t.Errorf("expected fresh label, got %v (%v)", l, err)
	}
}

func Test_Parse_02(t *testing.T) {
	var (
		cls = method.NewClass("A", "java/lang/Object", 0)
		m   = cls.AddMethod("m", "()V", method.ACC_STATIC)
		r   = NewTextRenderer()
	)
	//
	if err := m.Code.Append(insn.NewLabel()); err != nil {
		t.Fatal(err)
	}
	//
	for _, text := range []string{
		"", "FOO", "IADD 1", "LABEL L0", "ILOAD", "ILOAD x", "IINC 0", "GOTO L9", "BIPUSH 300",
		"GETSTATIC A.f", "GETSTATIC f I", "GETSTATIC A.f Q", "INVOKESTATIC A.m", "INVOKESTATIC A.m(", "LDC",
		"LDC \"open", "LDC 1 2", "LDC 99999999999", "MULTIANEWARRAY [[I 0", "LINE x L0", "LINE 3 L9",
		"TABLESWITCH", "TABLESWITCH 1: L0", "TABLESWITCH 1: L0, 3: L0, default: L0",
		"LOOKUPSWITCH 2: L0, 1: L0, default: L0", "LOOKUPSWITCH default: L0, default: L0",
		"INVOKEDYNAMIC run()V",
	} {
		if _, err := r.Parse(text, m); !errors.Is(err, ErrSyntax) {
			t.Errorf("expected syntax error for \"%s\", got %v", text, err)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Render(t *testing.T, r Renderer, m *method.Method, i insn.Instruction, expected string) {
	t.Helper()
	//
	if actual := r.Render(i, m).String(); actual != expected {
		t.Errorf("expected \"%s\", got \"%s\"", expected, actual)
	}
}

func check_Parse(t *testing.T, r *TextRenderer, m *method.Method, text string, expected insn.Instruction) {
	t.Helper()
	//
	actual, err := r.Parse(text, m)
	//
	if err != nil {
		t.Errorf("parsing \"%s\": %s", text, err)
	} else if actual == expected {
		t.Errorf("parsing \"%s\" returned an existing instruction", text)
	} else if !insn.Equal(actual, expected) {
		t.Errorf("parsing \"%s\": expected %s, got %s", text, r.Render(expected, m), r.Render(actual, m))
	}
}
