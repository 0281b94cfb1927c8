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
	"fmt"
	"io"
	"strings"
)

// TablePrinter is a utility for printing tables of text to an output stream,
// where cells in the same column are aligned.  Cells can be individually
// formatted, though formatting is only written when enabled.
type TablePrinter struct {
	widths        []uint
	rows          [][]FormattedText
	enableEscapes bool
	separator     string
}

// NewTablePrinter constructs a table with a given number of columns and rows.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	widths := make([]uint, width)
	rows := make([][]FormattedText, height)
	//
	for i := uint(0); i < height; i++ {
		rows[i] = make([]FormattedText, width)
	}
	//
	return &TablePrinter{widths, rows, true, " "}
}

// Set the contents of a given cell.
func (p *TablePrinter) Set(col uint, row uint, val FormattedText) {
	p.widths[col] = max(p.widths[col], val.Len())
	p.rows[row][col] = val
}

// SetRow sets the (unformatted) contents of every cell in a given row.
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, val := range vals {
		p.Set(uint(i), row, NewText(val))
	}
}

// Get the contents of a given cell.
func (p *TablePrinter) Get(col uint, row uint) FormattedText {
	return p.rows[row][col]
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AnsiEscapes determines whether formatting is written.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetSeparator sets the text written between columns.
func (p *TablePrinter) SetSeparator(separator string) {
	p.separator = separator
}

// SetMaxWidths limits the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := uint(0); i < uint(len(p.widths)); i++ {
		p.SetMaxWidth(i, width)
	}
}

// SetMaxWidth limits the width of a given column.  Cells wider than this are
// truncated with "..".
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print this table to a given output stream.  The final column is not padded.
func (p *TablePrinter) Print(out io.Writer) error {
	for _, row := range p.rows {
		var builder strings.Builder
		//
		for j, cell := range row {
			width := p.widths[j]
			//
			if j != 0 {
				builder.WriteString(p.separator)
			}
			//
			if cell.Len() > width && width > 2 {
				cell.Clip(0, width-2)
				cell = NewFormattedText(cell.String()+"..", cell.format)
			} else if cell.Len() > width {
				cell.Clip(0, width)
			}
			//
			if p.enableEscapes {
				builder.Write(cell.Bytes())
			} else {
				builder.WriteString(cell.String())
			}
			//
			if j+1 < len(row) {
				builder.WriteString(strings.Repeat(" ", int(width-cell.Len())))
			}
		}
		//
		if _, err := fmt.Fprintln(out, strings.TrimRight(builder.String(), " ")); err != nil {
			return err
		}
	}
	//
	return nil
}
