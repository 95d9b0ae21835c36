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
	chix "github.com/chixed/chix/types"
)

// A row of text in the editor.
// Tabs are kept as they are so that files round-trip exactly;
// they are expanded only when the row is drawn.
type Row struct {
	Text   []rune
	Colors []chix.Color
}

func NewRow(text string) *Row {
	r := &Row{}
	r.setText(decodeText(text))
	return r
}

func (r *Row) setText(text []rune) {
	r.Text = text
	r.Colors = make([]chix.Color, len(r.Text))
}

func (r *Row) clearColors() {
	for j := range r.Colors {
		r.Colors[j] = chix.ColorDefault
	}
}

func (r *Row) Length() int {
	return len(r.Text)
}

func (r *Row) InsertChar(col int, c rune) {
	line := make([]rune, 0, len(r.Text)+1)
	if col <= len(r.Text) {
		line = append(line, r.Text[0:col]...)
	} else {
		line = append(line, r.Text...)
	}
	line = append(line, c)
	if col < len(r.Text) {
		line = append(line, r.Text[col:]...)
	}
	r.setText(line)
}

// replace character at col and return the replaced character
func (r *Row) ReplaceChar(col int, c rune) rune {
	if (col < 0) || (col >= len(r.Text)) {
		return rune(0)
	}
	result := r.Text[col]
	r.Text[col] = c
	return result
}

// delete character at col and return the deleted character
func (r *Row) DeleteChar(col int) rune {
	if len(r.Text) == 0 {
		return 0
	}
	if col > len(r.Text)-1 {
		col = len(r.Text) - 1
	}
	c := r.Text[col]
	line := make([]rune, 0, len(r.Text)-1)
	line = append(line, r.Text[0:col]...)
	line = append(line, r.Text[col+1:]...)
	r.setText(line)
	return c
}

// splits row at col, return a new row containing the remaining text.
func (r *Row) Split(col int) *Row {
	if col < len(r.Text) {
		after := &Row{}
		after.setText(append([]rune{}, r.Text[col:]...))
		r.setText(append([]rune{}, r.Text[0:col]...))
		return after
	}
	return NewRow("")
}

// joins rows by appending the passed-in row to the current row
func (r *Row) Join(other *Row) {
	line := make([]rune, 0, len(r.Text)+len(other.Text))
	line = append(line, r.Text...)
	line = append(line, other.Text...)
	r.setText(line)
}

// returns the text after a specified column
func (r *Row) TextAfter(col int) string {
	if col < len(r.Text) {
		return encodeText(r.Text[col:])
	}
	return ""
}

// DisplayColumn returns the screen column of col once tabs are expanded.
func (r *Row) DisplayColumn(col int, tabWidth int) int {
	x := 0
	for i := 0; i < col && i < len(r.Text); i++ {
		x += cellWidth(r.Text[i], x, tabWidth)
	}
	if col > len(r.Text) {
		x += col - len(r.Text)
	}
	return x
}

func cellWidth(c rune, x int, tabWidth int) int {
	if c == '\t' {
		if tabWidth <= 0 {
			return 1
		}
		return tabWidth - x%tabWidth
	}
	return 1
}
