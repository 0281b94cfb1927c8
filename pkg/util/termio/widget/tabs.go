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
package widget

import "github.com/consensys/go-bcedit/pkg/util/termio"

// Tabs is a single line of titles, one of which is selected.
type Tabs struct {
	tabs     []string
	selected uint
}

// NewTabs constructs a set of tabs with the first selected.
func NewTabs(tabs ...string) *Tabs {
	return &Tabs{tabs, 0}
}

// Selected returns the index of the selected tab.
func (p *Tabs) Selected() uint {
	return p.selected
}

// Select a given tab, wrapping around as necessary.
func (p *Tabs) Select(tab uint) {
	if len(p.tabs) > 0 {
		p.selected = tab % uint(len(p.tabs))
	}
}

// Next selects the tab after (or, when forward is false, before) the currently
// selected tab, wrapping around as necessary.
func (p *Tabs) Next(forward bool) {
	n := uint(len(p.tabs))
	//
	switch {
	case n == 0:
		return
	case forward:
		p.Select(p.selected + 1)
	default:
		p.Select(p.selected + n - 1)
	}
}

// Render implementation for Widget interface.
func (p *Tabs) Render(canvas termio.Canvas) {
	w, _ := canvas.GetDimensions()
	//
	x := uint(1)
	//
	for i := 0; i < len(p.tabs) && x < w; i++ {
		if i != 0 {
			canvas.Write(x, 0, termio.NewText(" | "))
			x += 3
		}
		//
		cell := termio.NewText(p.tabs[i])
		//
		if uint(i) == p.selected {
			cell.Format(termio.UnderlineAnsiEscape())
		}
		//
		canvas.Write(x, 0, cell)
		x += cell.Len()
	}
}

// GetHeight implementation for Widget interface.
func (p *Tabs) GetHeight() uint {
	return 1
}
