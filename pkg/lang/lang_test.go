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

import "testing"

func Test_Lang_01(t *testing.T) {
	table := English()
	//
	for _, key := range []string{EDIT, ADD, REMOVE, MOVE_UP, MOVE_DOWN, DEFINE, SEARCH, BLOCK_SAVE, BLOCK_LOAD,
		INSERT_TITLE, ACTIONS_TITLE, REFERENCES, SEED, PASTE_INCOMPAT} {
		if table.Text(key) == key {
			t.Errorf("missing text for %s", key)
		}
	}
	//
	if table.Text(MOVE_UP) != "Move up" {
		t.Errorf("unexpected text %s", table.Text(MOVE_UP))
	}
	//
	if table.Text("no.such.key") != "no.such.key" {
		t.Errorf("unknown key not returned unchanged")
	}
}

func Test_Lang_02(t *testing.T) {
	if _, err := Parse("\"a\" = "); err == nil {
		t.Errorf("expected parse error")
	}
}
