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

import (
	"strings"

	"github.com/consensys/go-bcedit/pkg/util/termio"
)

// Separator is a horizontal line spanning the width of the window.
type Separator struct {
	separator string
	colour    uint
}

// NewSeparator constructs a separator drawn with a given string.
func NewSeparator(separator string) *Separator {
	return &Separator{separator, termio.TERM_WHITE}
}

// GetHeight implementation for Widget interface.
func (p *Separator) GetHeight() uint {
	return 1
}

// SetColour sets the colour of this separator.
func (p *Separator) SetColour(colour uint) {
	p.colour = colour
}

// Render implementation for Widget interface.
func (p *Separator) Render(canvas termio.Canvas) {
	w, _ := canvas.GetDimensions()
	n := uint(len([]rune(p.separator)))
	//
	if n == 0 {
		return
	}
	//
	canvas.Write(0, 0, termio.NewColouredText(strings.Repeat(p.separator, int(w/n)), p.colour))
}
