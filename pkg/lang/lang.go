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
package lang

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Keys used by the editor.
const (
	EDIT           = "misc.edit"
	ADD            = "misc.add"
	REMOVE         = "misc.remove"
	COPY           = "misc.copy"
	PASTE          = "misc.paste"
	QUIT           = "misc.quit"
	MOVE_UP        = "ui.edit.method.move.up"
	MOVE_DOWN      = "ui.edit.method.move.down"
	DEFINE         = "ui.edit.method.define"
	SEARCH         = "ui.edit.method.search"
	BLOCK_SAVE     = "ui.edit.method.block.save"
	BLOCK_LOAD     = "ui.edit.method.block.load"
	BLOCK_TITLE    = "ui.edit.method.block.title"
	INSERT_TITLE   = "ui.edit.method.insert.title"
	ACTIONS_TITLE  = "ui.edit.method.actions"
	REFERENCES     = "ui.edit.method.references"
	SEED           = "ui.edit.method.seed"
	WRITE          = "ui.edit.method.write"
	VERIFY_PASS    = "ui.edit.method.verify.pass"
	VERIFY_FAIL    = "ui.edit.method.verify.fail"
	VERIFY_PENDING = "ui.edit.method.verify.pending"
	PASTE_INCOMPAT = "ui.edit.method.paste.incompatible"
	EDITOR_CLOSED  = "ui.edit.method.closed"
)

// Lookup translates keys into display text.
type Lookup interface {
	Text(key string) string
}

//go:embed en.toml
var english string

// Table is a lookup backed by a fixed table of strings.  Unknown keys are
// returned unchanged.
type Table map[string]string

// Text implementation for Lookup interface.
func (t Table) Text(key string) string {
	if text, ok := t[key]; ok {
		return text
	}
	//
	return key
}

// Parse a table of strings from TOML text.
func Parse(text string) (Table, error) {
	var table Table
	//
	if _, err := toml.Decode(text, &table); err != nil {
		return nil, fmt.Errorf("invalid language table: %w", err)
	}
	//
	return table, nil
}

// English returns the built-in English table.
func English() Table {
	table, err := Parse(english)
	// Embedded table is fixed
	if err != nil {
		panic(err.Error())
	}
	//
	return table
}
