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

// TextLine is a single line of text, made up from chunks aligned either to the
// left or right.
type TextLine struct {
	left  []termio.FormattedText
	right []termio.FormattedText
}

// NewText constructs an empty line of text.
func NewText() *TextLine {
	return &TextLine{nil, nil}
}

// GetHeight implementation for Widget interface.
func (p *TextLine) GetHeight() uint {
	return 1
}

// Clear all text from this line.
func (p *TextLine) Clear() {
	p.left = nil
	p.right = nil
}

// Add a chunk of text to the left-aligned portion of this line.
func (p *TextLine) Add(txt termio.FormattedText) {
	p.AddLeft(txt)
}

// AddLeft adds a chunk of text to the left-aligned portion of this line.
func (p *TextLine) AddLeft(txt termio.FormattedText) {
	p.left = append(p.left, txt)
}

// AddRight adds a chunk of text to the right-aligned portion of this line.
func (p *TextLine) AddRight(txt termio.FormattedText) {
	p.right = append(p.right, txt)
}

// Render implementation for Widget interface.  Right-aligned text is drawn
// first, such that left-aligned text takes priority where they overlap.
func (p *TextLine) Render(canvas termio.Canvas) {
	var (
		width, _ = canvas.GetDimensions()
		rlen     uint
		xpos     uint
	)
	//
	for _, txt := range p.right {
		rlen += txt.Len()
	}
	//
	if rlen < width {
		xpos = width - rlen
		//
		for _, txt := range p.right {
			canvas.Write(xpos, 0, txt)
			xpos += txt.Len()
		}
	}
	//
	xpos = 0
	//
	for _, txt := range p.left {
		canvas.Write(xpos, 0, txt)
		xpos += txt.Len()
	}
}
