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
	"strings"
)

// SlotKind identifies the kind of value held in a local variable slot.
type SlotKind uint8

const (
	// UNKNOWN_SLOT indicates nothing is known about the slot.
	UNKNOWN_SLOT SlotKind = iota
	// INT_SLOT holds an int (or boolean, byte, char, short).
	INT_SLOT
	// LONG_SLOT holds the first half of a long.
	LONG_SLOT
	// FLOAT_SLOT holds a float.
	FLOAT_SLOT
	// DOUBLE_SLOT holds the first half of a double.
	DOUBLE_SLOT
	// REFERENCE_SLOT holds an object reference.
	REFERENCE_SLOT
	// TOP_SLOT is the second half of a long or double.
	TOP_SLOT
)

var slotKindNames = [...]string{"?", "int", "long", "float", "double", "ref", "top"}

func (k SlotKind) String() string {
	return slotKindNames[k]
}

// Compatible checks whether two slot kinds could describe the same slot.
// Unknown slots are compatible with everything.
func (k SlotKind) Compatible(other SlotKind) bool {
	return k == UNKNOWN_SLOT || other == UNKNOWN_SLOT || k == other
}

// Type is a single field type descriptor, such as "I", "[J" or
// "Ljava/lang/String;".  The void type "V" is only valid as a return type.
type Type string

// SlotKind returns the kind of local variable slot used to hold a value of this
// type.
func (t Type) SlotKind() SlotKind {
	if len(t) == 0 {
		return UNKNOWN_SLOT
	}
	//
	switch t[0] {
	case 'Z', 'B', 'C', 'S', 'I':
		return INT_SLOT
	case 'J':
		return LONG_SLOT
	case 'F':
		return FLOAT_SLOT
	case 'D':
		return DOUBLE_SLOT
	case 'L', '[':
		return REFERENCE_SLOT
	default:
		return UNKNOWN_SLOT
	}
}

// Size returns the number of local variable slots occupied by this type.
func (t Type) Size() uint {
	switch t {
	case "V":
		return 0
	case "J", "D":
		return 2
	default:
		return 1
	}
}

// ParseDescriptor parses a method descriptor, such as "(IJ)Ljava/lang/String;",
// into its argument types and return type.
func ParseDescriptor(desc string) ([]Type, Type, error) {
	var args []Type
	//
	if !strings.HasPrefix(desc, "(") {
		return nil, "", fmt.Errorf("invalid method descriptor \"%s\"", desc)
	}
	//
	index := 1
	//
	for index < len(desc) && desc[index] != ')' {
		end, err := parseFieldType(desc, index)
		//
		if err != nil {
			return nil, "", err
		}
		//
		args = append(args, Type(desc[index:end]))
		index = end
	}
	//
	if index >= len(desc) {
		return nil, "", fmt.Errorf("unterminated method descriptor \"%s\"", desc)
	}
	// Skip ')'
	index++
	//
	if desc[index:] == "V" {
		return args, "V", nil
	} else if end, err := parseFieldType(desc, index); err != nil {
		return nil, "", err
	} else if end != len(desc) {
		return nil, "", fmt.Errorf("trailing characters in method descriptor \"%s\"", desc)
	}
	//
	return args, Type(desc[index:]), nil
}

// ParseFieldType checks a given field descriptor is well formed.
func ParseFieldType(desc string) (Type, error) {
	if end, err := parseFieldType(desc, 0); err != nil {
		return "", err
	} else if end != len(desc) {
		return "", fmt.Errorf("trailing characters in field descriptor \"%s\"", desc)
	}
	//
	return Type(desc), nil
}

// Parse a single field type starting at a given index, returning the index
// just after it.
func parseFieldType(desc string, index int) (int, error) {
	for index < len(desc) && desc[index] == '[' {
		index++
	}
	//
	if index >= len(desc) {
		return 0, fmt.Errorf("truncated descriptor \"%s\"", desc)
	}
	//
	switch desc[index] {
	case 'Z', 'B', 'C', 'S', 'I', 'J', 'F', 'D':
		return index + 1, nil
	case 'L':
		end := strings.IndexByte(desc[index:], ';')
		//
		if end <= 1 {
			return 0, fmt.Errorf("malformed class type in descriptor \"%s\"", desc)
		}
		//
		return index + end + 1, nil
	default:
		return 0, fmt.Errorf("unexpected character '%c' in descriptor \"%s\"", desc[index], desc)
	}
}

// MethodSlotKinds determines the kinds of the local variable slots initialised
// on entry to a method with the given descriptor.  For instance methods, slot 0
// holds the receiver.  Long and double parameters occupy two slots, the second
// of which is TOP_SLOT.
func MethodSlotKinds(static bool, desc string) ([]SlotKind, error) {
	var kinds []SlotKind
	//
	args, _, err := ParseDescriptor(desc)
	//
	if err != nil {
		return nil, err
	}
	//
	if !static {
		kinds = append(kinds, REFERENCE_SLOT)
	}
	//
	for _, arg := range args {
		kinds = append(kinds, arg.SlotKind())
		//
		if arg.Size() == 2 {
			kinds = append(kinds, TOP_SLOT)
		}
	}
	//
	return kinds, nil
}
