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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/method"
)

// ErrSyntax indicates text which does not describe an instruction.
var ErrSyntax = errors.New("invalid instruction")

// Pseudo mnemonics for instructions without an opcode.
const (
	LABEL_KEYWORD = "LABEL"
	LINE_KEYWORD  = "LINE"
)

// Parse the textual form of an instruction, as produced by Render, back into a
// fresh instruction.  Label references are resolved by name against the current
// code of the method, whilst LABEL creates a fresh label.  Invokedynamic call
// sites cannot be entered this way.
func (r *TextRenderer) Parse(text string, m *method.Method) (insn.Instruction, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	name = strings.ToUpper(name)
	args := operands(rest)
	//
	if name == "" {
		return nil, fmt.Errorf("empty input: %w", ErrSyntax)
	} else if name == LABEL_KEYWORD {
		return checked(insn.NewLabel(), arity(name, args, 0))
	} else if name == LINE_KEYWORD {
		return r.parseLine(args, m)
	}
	//
	op, err := insn.ParseOpcode(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	//
	switch kind := insn.KindOf(op); kind {
	case insn.PLAIN:
		return checked(insn.NewPlain(op), arity(name, args, 0))
	case insn.VAR:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		//
		slot, err := strconv.ParseUint(args[0], 10, 16)
		//
		return checked(insn.NewVar(op, uint(slot)), number(args[0], err))
	case insn.IINC:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		//
		slot, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return nil, number(args[0], err)
		}
		//
		delta, err := strconv.ParseInt(args[1], 10, 16)
		//
		return checked(insn.NewIinc(uint(slot), int32(delta)), number(args[1], err))
	case insn.JUMP:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		//
		target, err := r.label(args[0], m)
		if err != nil {
			return nil, err
		}
		//
		return insn.NewJump(op, target), nil
	case insn.FIELD:
		return parseField(op, args)
	case insn.METHOD:
		return parseMethod(op, args)
	case insn.IMMEDIATE:
		return parseImmediate(op, rest, args)
	case insn.LOOKUP_SWITCH, insn.TABLE_SWITCH:
		return r.parseSwitch(op, rest, m)
	default:
		return nil, fmt.Errorf("%s instructions cannot be entered as text: %w", kind, ErrSyntax)
	}
}

// LabelNamed returns the label of a method with the given rendered name, or nil
// if there is none.
func (r *TextRenderer) LabelNamed(name string, m *method.Method) *insn.Label {
	for _, i := range m.Code.ToList() {
		if label, ok := i.(*insn.Label); ok && r.LabelName(label, m) == name {
			return label
		}
	}
	//
	return nil
}

func (r *TextRenderer) parseLine(args []string, m *method.Method) (insn.Instruction, error) {
	if err := arity(LINE_KEYWORD, args, 2); err != nil {
		return nil, err
	}
	//
	line, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return nil, number(args[0], err)
	}
	//
	start, err := r.label(args[1], m)
	if err != nil {
		return nil, err
	}
	//
	return insn.NewLine(uint(line), start), nil
}

// Parse the cases of a switch, given as "key: label" pairs separated by commas
// with a mandatory default case.  Lookup keys must be strictly increasing,
// whilst table keys must also be contiguous.
func (r *TextRenderer) parseSwitch(op insn.Opcode, rest string, m *method.Method) (insn.Instruction, error) {
	var (
		dflt   *insn.Label
		keys   []int32
		labels []*insn.Label
	)
	//
	for _, c := range strings.Split(rest, ",") {
		key, name, ok := strings.Cut(c, ":")
		key, name = strings.TrimSpace(key), strings.TrimSpace(name)
		//
		if !ok {
			return nil, fmt.Errorf("expected key: label, got \"%s\": %w", strings.TrimSpace(c), ErrSyntax)
		}
		//
		label, err := r.label(name, m)
		if err != nil {
			return nil, err
		} else if key == "default" && dflt != nil {
			return nil, fmt.Errorf("duplicate default case: %w", ErrSyntax)
		} else if key == "default" {
			dflt = label
			continue
		}
		//
		k, err := strconv.ParseInt(key, 10, 32)
		if err != nil {
			return nil, number(key, err)
		} else if n := len(keys); n > 0 && int64(k) <= int64(keys[n-1]) {
			return nil, fmt.Errorf("%s keys must be increasing: %w", op, ErrSyntax)
		} else if n > 0 && op == insn.TABLESWITCH && int64(k) != int64(keys[n-1])+1 {
			return nil, fmt.Errorf("%s keys must be contiguous: %w", op, ErrSyntax)
		}
		//
		keys = append(keys, int32(k))
		labels = append(labels, label)
	}
	//
	switch {
	case dflt == nil:
		return nil, fmt.Errorf("%s requires a default case: %w", op, ErrSyntax)
	case op == insn.LOOKUPSWITCH:
		return insn.NewLookupSwitch(dflt, keys, labels), nil
	case len(keys) == 0:
		return nil, fmt.Errorf("%s requires at least one key: %w", op, ErrSyntax)
	default:
		return insn.NewTableSwitch(keys[0], keys[len(keys)-1], dflt, labels...), nil
	}
}

func (r *TextRenderer) label(name string, m *method.Method) (*insn.Label, error) {
	if label := r.LabelNamed(name, m); label != nil {
		return label, nil
	}
	//
	return nil, fmt.Errorf("unknown label \"%s\": %w", name, ErrSyntax)
}

// Parse an access of the form "owner.name desc".
func parseField(op insn.Opcode, args []string) (insn.Instruction, error) {
	if err := arity(op.String(), args, 2); err != nil {
		return nil, err
	}
	//
	owner, name, ok := member(args[0])
	if !ok {
		return nil, fmt.Errorf("expected owner.name, got \"%s\": %w", args[0], ErrSyntax)
	} else if _, err := insn.ParseFieldType(args[1]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	//
	return insn.NewField(op, owner, name, args[1]), nil
}

// Parse an invocation of the form "owner.name(desc)ret".
func parseMethod(op insn.Opcode, args []string) (insn.Instruction, error) {
	if err := arity(op.String(), args, 1); err != nil {
		return nil, err
	}
	//
	paren := strings.IndexByte(args[0], '(')
	if paren < 0 {
		return nil, fmt.Errorf("missing descriptor in \"%s\": %w", args[0], ErrSyntax)
	}
	//
	owner, name, ok := member(args[0][:paren])
	desc := args[0][paren:]
	//
	if !ok {
		return nil, fmt.Errorf("expected owner.name, got \"%s\": %w", args[0][:paren], ErrSyntax)
	} else if _, _, err := insn.ParseDescriptor(desc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	//
	return insn.NewMethod(op, owner, name, desc, op == insn.INVOKEINTERFACE), nil
}

func parseImmediate(op insn.Opcode, rest string, args []string) (insn.Instruction, error) {
	var name = op.String()
	//
	switch op {
	case insn.BIPUSH, insn.SIPUSH, insn.NEWARRAY:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		//
		bits := 16
		if op != insn.SIPUSH {
			bits = 8
		}
		//
		v, err := strconv.ParseInt(args[0], 10, bits)
		//
		return checked(insn.NewImmediate(op, insn.IntOperand(int32(v))), number(args[0], err))
	case insn.MULTIANEWARRAY:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		//
		dims, err := strconv.ParseUint(args[1], 10, 8)
		if err == nil && dims == 0 {
			err = strconv.ErrRange
		}
		//
		return checked(insn.NewImmediate(op, insn.Operand{Sort: insn.TYPE_SORT, Text: args[0], Int: int64(dims)}),
			number(args[1], err))
	case insn.LDC:
		value, err := parseConstant(strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}
		//
		return insn.NewImmediate(op, value), nil
	default:
		// Type operands
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		//
		return insn.NewImmediate(op, insn.TypeOperand(args[0])), nil
	}
}

// Parse a loadable constant, using the suffixes and quoting of Operand.String.
func parseConstant(text string) (insn.Operand, error) {
	switch {
	case text == "":
		return insn.Operand{}, fmt.Errorf("LDC expects a constant: %w", ErrSyntax)
	case strings.HasPrefix(text, "\""):
		s, err := strconv.Unquote(text)
		if err != nil {
			return insn.Operand{}, fmt.Errorf("malformed string %s: %w", text, ErrSyntax)
		}
		//
		return insn.StringOperand(s), nil
	case strings.ContainsAny(text, " \t"):
		return insn.Operand{}, fmt.Errorf("LDC expects one constant: %w", ErrSyntax)
	}
	//
	if !strings.ContainsAny(text[:1], "+-0123456789") {
		// Anything else names a class
		return insn.TypeOperand(text), nil
	}
	//
	body := text[:len(text)-1]
	//
	switch text[len(text)-1] {
	case 'L':
		v, err := strconv.ParseInt(body, 10, 64)
		return insn.LongOperand(v), number(text, err)
	case 'F':
		v, err := strconv.ParseFloat(body, 32)
		return insn.Operand{Sort: insn.FLOAT_SORT, Float: v}, number(text, err)
	case 'D':
		v, err := strconv.ParseFloat(body, 64)
		return insn.Operand{Sort: insn.DOUBLE_SORT, Float: v}, number(text, err)
	}
	//
	v, err := strconv.ParseInt(text, 10, 32)
	//
	return insn.IntOperand(int32(v)), number(text, err)
}

// Split operands on whitespace, dropping local variable names as rendered
// after a slot (e.g. "0 (x)").
func operands(text string) []string {
	var args []string
	//
	for _, f := range strings.Fields(text) {
		if !strings.HasPrefix(f, "(") || !strings.HasSuffix(f, ")") {
			args = append(args, f)
		}
	}
	//
	return args
}

func member(text string) (string, string, bool) {
	dot := strings.LastIndexByte(text, '.')
	//
	if dot <= 0 || dot == len(text)-1 {
		return "", "", false
	}
	//
	return text[:dot], text[dot+1:], true
}

func arity(name string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d operand(s), got %d: %w", name, n, len(args), ErrSyntax)
	}
	//
	return nil
}

func number(text string, err error) error {
	if err != nil {
		return fmt.Errorf("malformed number \"%s\": %w", text, ErrSyntax)
	}
	//
	return nil
}

// Discard the instruction when parsing its operands failed.
func checked(i insn.Instruction, err error) (insn.Instruction, error) {
	if err != nil {
		return nil, err
	}
	//
	return i, nil
}
