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

import "github.com/consensys/go-bcedit/pkg/insn"

// Workspace is the set of classes currently loaded, indexed by name.  It
// determines which definitions referred to by instructions can be opened.
type Workspace map[string]*Class

// NewWorkspace constructs a workspace from a given set of classes.
func NewWorkspace(classes ...*Class) Workspace {
	w := make(Workspace)
	//
	for _, c := range classes {
		w[c.Name] = c
	}
	//
	return w
}

// HasClass checks whether a class of the given name is loaded.
func (w Workspace) HasClass(name string) bool {
	_, ok := w[name]
	return ok
}

// HasField checks whether the given field is declared in a loaded class.
func (w Workspace) HasField(member insn.Member) bool {
	c, ok := w[member.Owner]
	return ok && c.FindField(member.Name, member.Desc) != nil
}

// HasMethod checks whether the given method is declared in a loaded class.
func (w Workspace) HasMethod(member insn.Member) bool {
	c, ok := w[member.Owner]
	return ok && c.Find(member.Name, member.Desc) != nil
}

// Rename a class within the workspace, returning false if there is no such
// class (or the new name is taken).
func (w Workspace) Rename(oldName, newName string) bool {
	c, ok := w[oldName]
	//
	if !ok || w.HasClass(newName) {
		return false
	}
	//
	delete(w, oldName)
	c.Name = newName
	w[newName] = c
	//
	return true
}
