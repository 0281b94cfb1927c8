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
	"fmt"
	"strconv"
)

// Sort identifies the kind of value held in an operand.
type Sort uint8

const (
	// INT_SORT is a 32bit integer constant.
	INT_SORT Sort = iota
	// LONG_SORT is a 64bit integer constant.
	LONG_SORT
	// FLOAT_SORT is a 32bit floating point constant.
	FLOAT_SORT
	// DOUBLE_SORT is a 64bit floating point constant.
	DOUBLE_SORT
	// STRING_SORT is a string constant.
	STRING_SORT
	// TYPE_SORT is a class (or array) type, given in internal form.
	TYPE_SORT
	// HANDLE_SORT is a method handle.
	HANDLE_SORT
)

// Handle is a method handle, as used by bootstrap methods and constants.
type Handle struct {
	Tag       uint8  `json:"tag" cbor:"1,keyasint"`
	Owner     string `json:"owner" cbor:"2,keyasint"`
	Name      string `json:"name" cbor:"3,keyasint"`
	Desc      string `json:"desc" cbor:"4,keyasint"`
	Interface bool   `json:"itf,omitempty" cbor:"5,keyasint,omitempty"`
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s.%s%s (%d)", h.Owner, h.Name, h.Desc, h.Tag)
}

// Operand is a constant operand of an instruction.  Only the field matching
// the sort is meaningful, except for MULTIANEWARRAY where Text holds the array
// type and Int the number of dimensions.
type Operand struct {
	Sort   Sort    `json:"sort" cbor:"1,keyasint"`
	Int    int64   `json:"int,omitempty" cbor:"2,keyasint,omitempty"`
	Float  float64 `json:"float,omitempty" cbor:"3,keyasint,omitempty"`
	Text   string  `json:"text,omitempty" cbor:"4,keyasint,omitempty"`
	Handle *Handle `json:"handle,omitempty" cbor:"5,keyasint,omitempty"`
}

// IntOperand constructs an integer operand.
func IntOperand(v int32) Operand {
	return Operand{Sort: INT_SORT, Int: int64(v)}
}

// LongOperand constructs a long operand.
func LongOperand(v int64) Operand {
	return Operand{Sort: LONG_SORT, Int: v}
}

// StringOperand constructs a string operand.
func StringOperand(v string) Operand {
	return Operand{Sort: STRING_SORT, Text: v}
}

// TypeOperand constructs a type operand from an internal class name.
func TypeOperand(name string) Operand {
	return Operand{Sort: TYPE_SORT, Text: name}
}

// HandleOperand constructs a method handle operand.
func HandleOperand(h Handle) Operand {
	return Operand{Sort: HANDLE_SORT, Handle: &h}
}

// Equals checks whether two operands hold the same value.
func (o Operand) Equals(other Operand) bool {
	if o.Sort != other.Sort || o.Int != other.Int || o.Float != other.Float || o.Text != other.Text {
		return false
	} else if o.Handle == nil || other.Handle == nil {
		return o.Handle == other.Handle
	}
	//
	return *o.Handle == *other.Handle
}

func (o Operand) clone() Operand {
	if o.Handle != nil {
		h := *o.Handle
		o.Handle = &h
	}
	//
	return o
}

func (o Operand) String() string {
	switch o.Sort {
	case INT_SORT:
		return strconv.FormatInt(o.Int, 10)
	case LONG_SORT:
		return strconv.FormatInt(o.Int, 10) + "L"
	case FLOAT_SORT:
		return strconv.FormatFloat(o.Float, 'g', -1, 32) + "F"
	case DOUBLE_SORT:
		return strconv.FormatFloat(o.Float, 'g', -1, 64) + "D"
	case STRING_SORT:
		return strconv.Quote(o.Text)
	case TYPE_SORT:
		if o.Int != 0 {
			return fmt.Sprintf("%s %d", o.Text, o.Int)
		}
		//
		return o.Text
	case HANDLE_SORT:
		if o.Handle == nil {
			return "null"
		}
		//
		return o.Handle.String()
	default:
		panic("unreachable")
	}
}
