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
	"math"

	"github.com/consensys/go-bcedit/pkg/util/termio"
)

// TableSource provides the contents of a table widget.
type TableSource interface {
	// ColumnWidth returns the width of a given column, or zero if there is no
	// such column.
	ColumnWidth(col uint) uint
	// CellAt returns the content of a given cell in the table, where rows are
	// relative to the visible window.
	CellAt(col, row uint) termio.FormattedText
}

// Table is a widget displaying a grid of cells, which expands to take all
// available height.
type Table struct {
	source TableSource
}

// NewTable constructs a table for a given source.
func NewTable(source TableSource) *Table {
	return &Table{source}
}

// GetHeight implementation for Widget interface.
func (p *Table) GetHeight() uint {
	return math.MaxUint
}

// SetSource sets the source of the table contents.
func (p *Table) SetSource(source TableSource) {
	p.source = source
}

// Render implementation for Widget interface.
func (p *Table) Render(canvas termio.Canvas) {
	width, height := canvas.GetDimensions()
	//
	if p.source == nil {
		return
	}
	//
	for col, xpos := uint(0), uint(0); xpos < width; col++ {
		colWidth := p.source.ColumnWidth(col)
		//
		if colWidth == 0 {
			return
		}
		//
		for row := uint(0); row < height; row++ {
			cell := p.source.CellAt(col, row)
			cell.Clip(0, colWidth)
			canvas.Write(xpos, row, cell)
		}
		//
		xpos += colWidth + 1
	}
}
