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
package method

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/consensys/go-bcedit/pkg/graph"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/fxamacker/cbor/v2"
)

// ClassFile is the serial form of a class, as held in a method file.
type ClassFile struct {
	Name    string       `json:"name" cbor:"1,keyasint"`
	Super   string       `json:"super,omitempty" cbor:"2,keyasint,omitempty"`
	Access  uint16       `json:"access" cbor:"3,keyasint"`
	Methods []MethodFile `json:"methods" cbor:"4,keyasint"`
	Fields  []FieldFile  `json:"fields,omitempty" cbor:"5,keyasint,omitempty"`
}

// FieldFile is the serial form of a field declaration.
type FieldFile struct {
	Name   string `json:"name" cbor:"1,keyasint"`
	Desc   string `json:"desc" cbor:"2,keyasint"`
	Access uint16 `json:"access" cbor:"3,keyasint"`
}

// MethodFile is the serial form of a method.
type MethodFile struct {
	Name      string        `json:"name" cbor:"1,keyasint"`
	Desc      string        `json:"desc" cbor:"2,keyasint"`
	Access    uint16        `json:"access" cbor:"3,keyasint"`
	MaxLocals uint          `json:"maxLocals" cbor:"4,keyasint"`
	MaxStack  uint          `json:"maxStack" cbor:"5,keyasint"`
	Locals    []LocalFile   `json:"locals,omitempty" cbor:"6,keyasint,omitempty"`
	Code      []insn.Record `json:"code" cbor:"7,keyasint"`
}

// LocalFile is the serial form of a local variable table entry.  Start and End
// are label ordinals within the method's code.
type LocalFile struct {
	Name      string `json:"name" cbor:"1,keyasint"`
	Desc      string `json:"desc" cbor:"2,keyasint"`
	Signature string `json:"signature,omitempty" cbor:"3,keyasint,omitempty"`
	Start     int    `json:"start" cbor:"4,keyasint"`
	End       int    `json:"end" cbor:"5,keyasint"`
	Index     uint   `json:"index" cbor:"6,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("method: failed to create CBOR enc mode: %v", err))
	}
	//
	cborEncMode = em
}

// ReadFile reads a class (and its methods) from a method file, using a decoder
// based on the extension of the filename.
func ReadFile(filename string) (*Class, error) {
	var cf ClassFile
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	// Check file extension
	switch ext := path.Ext(filename); ext {
	case ".json":
		err = json.Unmarshal(bytes, &cf)
	case ".cbor":
		err = cbor.Unmarshal(bytes, &cf)
	default:
		return nil, fmt.Errorf("unknown method file format: %s", ext)
	}
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return FromFile(cf)
}

// WriteFile writes a class (and its methods) to a method file, using an encoder
// based on the extension of the filename.
func WriteFile(filename string, cls *Class) error {
	var bytes []byte
	//
	cf, err := ToFile(cls)
	if err != nil {
		return err
	}
	//
	switch ext := path.Ext(filename); ext {
	case ".json":
		bytes, err = json.MarshalIndent(cf, "", "  ")
	case ".cbor":
		bytes, err = cborEncMode.Marshal(cf)
	default:
		return fmt.Errorf("unknown method file format: %s", ext)
	}
	//
	if err != nil {
		return err
	}
	//
	return os.WriteFile(filename, bytes, 0644)
}

// ToFile converts a class into its serial form.
func ToFile(cls *Class) (ClassFile, error) {
	cf := ClassFile{Name: cls.Name, Super: cls.Super, Access: cls.Access}
	//
	for _, f := range cls.Fields {
		cf.Fields = append(cf.Fields, FieldFile(f))
	}
	//
	for _, m := range cls.Methods {
		code := m.Code.ToList()
		records, err := insn.Encode(code)
		//
		if err != nil {
			return cf, fmt.Errorf("%s: %w", m, err)
		}
		//
		ordinals := labelOrdinals(code)
		mf := MethodFile{
			Name: m.Name, Desc: m.Descriptor, Access: m.Access, MaxLocals: m.MaxLocals, MaxStack: m.MaxStack,
			Code: records,
		}
		//
		for _, lv := range m.Locals {
			mf.Locals = append(mf.Locals, LocalFile{lv.Name, lv.Desc, lv.Signature, ordinal(ordinals, lv.Start),
				ordinal(ordinals, lv.End), lv.Index})
		}
		//
		cf.Methods = append(cf.Methods, mf)
	}
	//
	return cf, nil
}

// FromFile converts the serial form of a class back into a class.
func FromFile(cf ClassFile) (*Class, error) {
	cls := NewClass(cf.Name, cf.Super, cf.Access)
	//
	for _, f := range cf.Fields {
		cls.Fields = append(cls.Fields, Field(f))
	}
	//
	for _, mf := range cf.Methods {
		code, err := insn.Decode(mf.Code)
		//
		if err != nil {
			return nil, fmt.Errorf("%s.%s%s: %w", cf.Name, mf.Name, mf.Desc, err)
		}
		//
		var labels []*insn.Label
		//
		for _, i := range code {
			if l, ok := i.(*insn.Label); ok {
				labels = append(labels, l)
			}
		}
		//
		m := &Method{Owner: cls, Name: mf.Name, Descriptor: mf.Desc, Access: mf.Access, MaxLocals: mf.MaxLocals,
			MaxStack: mf.MaxStack, Code: graph.New(code...)}
		//
		for _, lf := range mf.Locals {
			m.Locals = append(m.Locals, LocalVariable{lf.Name, lf.Desc, lf.Signature, labelAt(labels, lf.Start),
				labelAt(labels, lf.End), lf.Index})
		}
		//
		cls.Methods = append(cls.Methods, m)
	}
	//
	return cls, nil
}

func labelOrdinals(code []insn.Instruction) map[*insn.Label]int {
	ordinals := make(map[*insn.Label]int)
	//
	for _, i := range code {
		if l, ok := i.(*insn.Label); ok {
			ordinals[l] = len(ordinals)
		}
	}
	//
	return ordinals
}

func ordinal(ordinals map[*insn.Label]int, l *insn.Label) int {
	if index, ok := ordinals[l]; ok {
		return index
	}
	//
	return -1
}

func labelAt(labels []*insn.Label, index int) *insn.Label {
	if index >= 0 && index < len(labels) {
		return labels[index]
	}
	// Detached
	return insn.NewLabel()
}
