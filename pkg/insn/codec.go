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
package insn

import (
	"errors"
	"fmt"
	"slices"
)

// Record is the serial form of an instruction.  Label references are encoded as
// the ordinal of the label amongst the labels defined in the enclosing sequence.
// References to labels defined outside the sequence are encoded as negative
// ordinals (i.e. -1 for the first such label, -2 for the second, etc).
type Record struct {
	Kind      string    `json:"kind" cbor:"1,keyasint"`
	Op        string    `json:"op,omitempty" cbor:"2,keyasint,omitempty"`
	Value     *Operand  `json:"value,omitempty" cbor:"3,keyasint,omitempty"`
	Slot      uint      `json:"slot,omitempty" cbor:"4,keyasint,omitempty"`
	Delta     int32     `json:"delta,omitempty" cbor:"5,keyasint,omitempty"`
	Owner     string    `json:"owner,omitempty" cbor:"6,keyasint,omitempty"`
	Name      string    `json:"name,omitempty" cbor:"7,keyasint,omitempty"`
	Desc      string    `json:"desc,omitempty" cbor:"8,keyasint,omitempty"`
	Interface bool      `json:"itf,omitempty" cbor:"9,keyasint,omitempty"`
	Bootstrap *Handle   `json:"bsm,omitempty" cbor:"10,keyasint,omitempty"`
	Args      []Operand `json:"args,omitempty" cbor:"11,keyasint,omitempty"`
	Target    int       `json:"target,omitempty" cbor:"12,keyasint,omitempty"`
	Keys      []int32   `json:"keys,omitempty" cbor:"13,keyasint,omitempty"`
	Labels    []int     `json:"labels,omitempty" cbor:"14,keyasint,omitempty"`
	Min       int32     `json:"min,omitempty" cbor:"15,keyasint,omitempty"`
	Max       int32     `json:"max,omitempty" cbor:"16,keyasint,omitempty"`
	Line      uint      `json:"line,omitempty" cbor:"17,keyasint,omitempty"`
}

// ErrMalformedRecord is returned when decoding a record which does not describe
// a valid instruction.
var ErrMalformedRecord = errors.New("malformed instruction record")

// Encode converts a sequence of instructions into their serial form.
func Encode(insns []Instruction) ([]Record, error) {
	var (
		records  = make([]Record, len(insns))
		ordinals = make(map[*Label]int)
	)
	// Assign ordinals to defined labels
	for _, insn := range insns {
		if l, ok := insn.(*Label); ok {
			ordinals[l] = len(ordinals)
		}
	}
	//
	external := 0
	ordinal := func(l *Label) int {
		if index, ok := ordinals[l]; ok {
			return index
		}
		// Allocate next external ordinal
		external++
		ordinals[l] = -external
		//
		return -external
	}
	//
	for i, insn := range insns {
		rec, err := encode(insn, ordinal)
		//
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		//
		records[i] = rec
	}
	//
	return records, nil
}

func encode(insn Instruction, ordinal func(*Label) int) (Record, error) {
	rec := Record{Kind: insn.Kind().String()}
	// Missing references have no ordinal
	if slices.Contains(insn.Targets(), nil) {
		return rec, fmt.Errorf("missing label reference in %s: %w", insn.Kind(), ErrMalformedRecord)
	}
	//
	if insn.Opcode() != NONE {
		rec.Op = insn.Opcode().String()
	}
	//
	switch p := insn.(type) {
	case *Plain, *Label:
		// no operands
	case *Immediate:
		value := p.Value.clone()
		rec.Value = &value
	case *Var:
		rec.Slot = p.Slot
	case *Iinc:
		rec.Slot, rec.Delta = p.Slot, p.Delta
	case *Field:
		rec.Owner, rec.Name, rec.Desc = p.Owner, p.Name, p.Desc
	case *Method:
		rec.Owner, rec.Name, rec.Desc, rec.Interface = p.Owner, p.Name, p.Desc, p.Interface
	case *Dynamic:
		bsm := p.Bootstrap
		rec.Name, rec.Desc, rec.Bootstrap = p.Name, p.Desc, &bsm
		//
		for _, a := range p.Args {
			rec.Args = append(rec.Args, a.clone())
		}
	case *Jump:
		rec.Target = ordinal(p.Target)
	case *Line:
		rec.Line, rec.Target = p.Number, ordinal(p.Start)
	case *LookupSwitch:
		rec.Target, rec.Keys = ordinal(p.Default), append([]int32(nil), p.Keys...)
		rec.Labels = encodeLabels(p.Labels, ordinal)
	case *TableSwitch:
		rec.Target, rec.Min, rec.Max = ordinal(p.Default), p.Min, p.Max
		rec.Labels = encodeLabels(p.Labels, ordinal)
	default:
		return rec, fmt.Errorf("unknown instruction %T", insn)
	}
	//
	return rec, nil
}

func encodeLabels(labels []*Label, ordinal func(*Label) int) []int {
	indices := make([]int, len(labels))
	//
	for i, l := range labels {
		indices[i] = ordinal(l)
	}
	//
	return indices
}

// Decode converts a sequence of records back into instructions.  Every label
// record produces a fresh label, and every distinct external ordinal produces a
// fresh label which is not part of the sequence.
func Decode(records []Record) ([]Instruction, error) {
	var (
		insns    = make([]Instruction, len(records))
		defined  []*Label
		external = make(map[int]*Label)
	)
	//
	for _, rec := range records {
		if rec.Kind == LABEL.String() {
			defined = append(defined, NewLabel())
		}
	}
	//
	label := func(index int) (*Label, error) {
		if index >= len(defined) {
			return nil, fmt.Errorf("label %d out of bounds: %w", index, ErrMalformedRecord)
		} else if index >= 0 {
			return defined[index], nil
		} else if l, ok := external[index]; ok {
			return l, nil
		}
		//
		l := NewLabel()
		external[index] = l
		//
		return l, nil
	}
	//
	next := 0
	//
	for i, rec := range records {
		var err error
		//
		if rec.Kind == LABEL.String() {
			insns[i] = defined[next]
			next++
		} else if insns[i], err = decode(rec, label); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	//
	return insns, nil
}

func decode(rec Record, label func(int) (*Label, error)) (Instruction, error) {
	kind, err := ParseKind(rec.Kind)
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrMalformedRecord)
	}
	//
	op := NONE
	//
	if rec.Op != "" {
		if op, err = ParseOpcode(rec.Op); err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), ErrMalformedRecord)
		}
	}
	//
	if kind != LINE && op != NONE && KindOf(op) != kind {
		return nil, fmt.Errorf("opcode %s is not a %s instruction: %w", op, kind, ErrMalformedRecord)
	}
	//
	switch kind {
	case PLAIN:
		return NewPlain(op), nil
	case IMMEDIATE:
		if rec.Value == nil {
			return nil, fmt.Errorf("missing operand: %w", ErrMalformedRecord)
		}
		//
		return NewImmediate(op, rec.Value.clone()), nil
	case VAR:
		return NewVar(op, rec.Slot), nil
	case IINC:
		return NewIinc(rec.Slot, rec.Delta), nil
	case FIELD:
		return NewField(op, rec.Owner, rec.Name, rec.Desc), nil
	case METHOD:
		return NewMethod(op, rec.Owner, rec.Name, rec.Desc, rec.Interface), nil
	case DYNAMIC:
		if rec.Bootstrap == nil {
			return nil, fmt.Errorf("missing bootstrap method: %w", ErrMalformedRecord)
		}
		//
		args := make([]Operand, len(rec.Args))
		//
		for i, a := range rec.Args {
			args[i] = a.clone()
		}
		//
		return NewDynamic(rec.Name, rec.Desc, *rec.Bootstrap, args...), nil
	case JUMP:
		target, err := label(rec.Target)
		if err != nil {
			return nil, err
		}
		//
		return NewJump(op, target), nil
	case LINE:
		start, err := label(rec.Target)
		if err != nil {
			return nil, err
		}
		//
		return NewLine(rec.Line, start), nil
	case LOOKUP_SWITCH, TABLE_SWITCH:
		return decodeSwitch(kind, rec, label)
	}
	//
	return nil, fmt.Errorf("unexpected %s record: %w", kind, ErrMalformedRecord)
}

func decodeSwitch(kind Kind, rec Record, label func(int) (*Label, error)) (Instruction, error) {
	dflt, err := label(rec.Target)
	//
	if err != nil {
		return nil, err
	}
	//
	labels := make([]*Label, len(rec.Labels))
	//
	for i, index := range rec.Labels {
		if labels[i], err = label(index); err != nil {
			return nil, err
		}
	}
	//
	if kind == TABLE_SWITCH {
		return NewTableSwitch(rec.Min, rec.Max, dflt, labels...), nil
	} else if len(rec.Keys) != len(labels) {
		return nil, fmt.Errorf("lookupswitch has %d keys but %d labels: %w", len(rec.Keys), len(labels),
			ErrMalformedRecord)
	}
	//
	return NewLookupSwitch(dflt, append([]int32(nil), rec.Keys...), labels), nil
}
