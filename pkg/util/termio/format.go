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
package termio

import (
	"slices"
	"strconv"
	"strings"
)

// Terminal colours, as used in ANSI escape codes.
const (
	TERM_BLACK uint = iota
	TERM_RED
	TERM_GREEN
	TERM_YELLOW
	TERM_BLUE
	TERM_MAGENTA
	TERM_CYAN
	TERM_WHITE
)

// AnsiEscape is a "Select Graphic Rendition" escape sequence, built up from
// zero or more parameters.
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape constructs an escape with no parameters.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// ResetAnsiEscape constructs an escape which resets all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape which enables bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// UnderlineAnsiEscape constructs an escape which enables underlined text.
func UnderlineAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{4}}
}

// ReverseAnsiEscape constructs an escape which swaps foreground and background.
func ReverseAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{7}}
}

// FgColour extends this escape with a given foreground colour.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return AnsiEscape{append(slices.Clip(p.params), 30+col)}
}

// BgColour extends this escape with a given background colour.
func (p AnsiEscape) BgColour(col uint) AnsiEscape {
	return AnsiEscape{append(slices.Clip(p.params), 40+col)}
}

// Build the escape sequence.  An escape without parameters yields the empty
// string.
func (p AnsiEscape) Build() string {
	var builder strings.Builder
	//
	if len(p.params) == 0 {
		return ""
	}
	//
	builder.WriteString("\033[")
	//
	for i, param := range p.params {
		if i != 0 {
			builder.WriteByte(';')
		}
		//
		builder.WriteString(strconv.FormatUint(uint64(param), 10))
	}
	//
	builder.WriteByte('m')
	//
	return builder.String()
}

// FormattedText is a chunk of text displayed with a single format.  Lengths
// and clipping are measured in runes, not bytes.
type FormattedText struct {
	text   []rune
	format AnsiEscape
}

// NewText constructs unformatted text.
func NewText(text string) FormattedText {
	return FormattedText{[]rune(text), NewAnsiEscape()}
}

// NewColouredText constructs text with a given foreground colour.
func NewColouredText(text string, colour uint) FormattedText {
	return FormattedText{[]rune(text), NewAnsiEscape().FgColour(colour)}
}

// NewFormattedText constructs text with a given format.
func NewFormattedText(text string, format AnsiEscape) FormattedText {
	return FormattedText{[]rune(text), format}
}

// Len returns the number of runes in this text.
func (p FormattedText) Len() uint {
	return uint(len(p.text))
}

// Clip this text to the runes in the range [start,end).  Bounds beyond the end
// of the text are clamped.
func (p *FormattedText) Clip(start, end uint) {
	n := p.Len()
	end = min(end, n)
	start = min(start, end)
	p.text = p.text[start:end]
}

// Format replaces the format of this text.
func (p *FormattedText) Format(format AnsiEscape) {
	p.format = format
}

// String returns the text without formatting.
func (p FormattedText) String() string {
	return string(p.text)
}

// Bytes returns the text surrounded by its escape codes (if any).
func (p FormattedText) Bytes() []byte {
	escape := p.format.Build()
	//
	if escape == "" {
		return []byte(string(p.text))
	}
	//
	return []byte(escape + string(p.text) + ResetAnsiEscape().Build())
}
