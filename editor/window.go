//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"fmt"
	"unicode/utf8"

	chix "github.com/chixed/chix/types"
)

// Render draws the buffer into an area of the display, reserving the
// last row of the area for the info bar.
func (e *Editor) Render(d chix.Display, r chix.Rect, p chix.Palette) {
	textRows := r.Size.Rows - 1
	if textRows < 0 {
		textRows = 0
	}
	e.SetSize(chix.Size{Rows: textRows, Cols: r.Size.Cols})
	e.Scroll()
	e.Highlight()

	b := e.Buffer
	for i := 0; i < textRows; i++ {
		y := r.Origin.Row + i
		row := b.GetRow(i + e.Offset.Rows)
		if row == nil {
			fillRow(d, r.Origin.Col, y, r.Size.Cols, p.Foreground, p.Background)
			d.SetCell(r.Origin.Col, y, '~', p.Muted, p.Background)
			continue
		}
		e.renderRow(d, row, r.Origin.Col, y, r.Size.Cols, p)
	}

	// Draw the info bar as a single line at the bottom of the area.
	infoText := e.computeInfoBarText(r.Size.Cols)
	infoRow := r.Origin.Row + r.Size.Rows - 1
	x := 0
	for _, ch := range infoText {
		if x >= r.Size.Cols {
			break
		}
		d.SetCell(r.Origin.Col+x, infoRow, ch, p.BarText, p.Bar)
		x++
	}
}

func (e *Editor) renderRow(d chix.Display, row *Row, originCol, y, width int, p chix.Palette) {
	fillRow(d, originCol, y, width, p.Foreground, p.Background)
	x := 0
	for j, c := range row.Text {
		w := cellWidth(c, x, e.tabWidth)
		color := p.Foreground
		if j < len(row.Colors) && row.Colors[j] != chix.ColorDefault {
			color = row.Colors[j]
		}
		glyph := c
		if c == '\t' || c == '\r' {
			glyph = ' '
		} else if isRawByte(c) {
			glyph = utf8.RuneError
		}
		for k := 0; k < w; k++ {
			screenX := x + k - e.Offset.Cols
			if screenX >= 0 && screenX < width {
				d.SetCell(originCol+screenX, y, glyph, color, p.Background)
			}
		}
		x += w
		if x-e.Offset.Cols >= width {
			break
		}
	}
}

func fillRow(d chix.Display, originCol, y, width int, fg, bg chix.Color) {
	for x := 0; x < width; x++ {
		d.SetCell(originCol+x, y, ' ', fg, bg)
	}
}

// Compute the text to display on the info bar.
func (e *Editor) computeInfoBarText(length int) string {
	b := e.Buffer
	finalText := fmt.Sprintf(" Ln %d, Col %d ", e.Cursor.Row+1, e.Cursor.Col+1)
	text := " " + b.GetName()
	if b.IsDirty() {
		text += " [+]"
	}
	for len([]rune(text)) < length-len(finalText) {
		text += " "
	}
	text += finalText
	return text
}

// SetCursorForDisplay places the terminal cursor at the editing position.
func (e *Editor) SetCursorForDisplay(d chix.Display, r chix.Rect) {
	d.SetCursor(chix.Point{
		Col: r.Origin.Col + e.cursorDisplayColumn() - e.Offset.Cols,
		Row: r.Origin.Row + e.Cursor.Row - e.Offset.Rows,
	})
}
