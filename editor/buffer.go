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
	"path/filepath"
	"strings"

	chix "github.com/chixed/chix/types"
)

// A Buffer holds the document being edited: its rows, the file it was
// read from or saved to, and whether it has changed since then.
type Buffer struct {
	rows        []*Row
	fileName    string
	dirty       bool
	Highlighted bool
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	b.rows = []*Row{NewRow("")}
	return b
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

// GetName returns a short name for display.
func (b *Buffer) GetName() string {
	if b.fileName == "" {
		return "untitled"
	}
	return filepath.Base(b.fileName)
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
	b.Highlighted = false
}

// IsDirty reports whether the buffer changed since it was last read or written.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

func (b *Buffer) markClean() {
	b.dirty = false
}

// touch records an edit.
func (b *Buffer) touch() {
	b.dirty = true
	b.Highlighted = false
}

// LoadBytes replaces the contents of the buffer. The buffer is clean afterwards.
func (b *Buffer) LoadBytes(bytes []byte) {
	lines := strings.Split(string(bytes), "\n")
	b.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		b.rows = append(b.rows, NewRow(line))
	}
	b.Highlighted = false
	b.dirty = false
}

func (b *Buffer) Bytes() []byte {
	var s strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(encodeText(row.Text))
	}
	return []byte(s.String())
}

func (b *Buffer) GetRowCount() int {
	return len(b.rows)
}

func (b *Buffer) GetRowLength(i int) int {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i].Length()
	}
	return 0
}

func (b *Buffer) GetRow(i int) *Row {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i]
	}
	return nil
}

func (b *Buffer) GetCharacterAtCursor(cursor chix.Point) rune {
	if cursor.Row < len(b.rows) {
		row := b.rows[cursor.Row]
		if cursor.Col < row.Length() && cursor.Col >= 0 {
			return row.Text[cursor.Col]
		}
	}
	return rune(0)
}

func (b *Buffer) TextAfter(row, col int) string {
	if row < len(b.rows) {
		return b.rows[row].TextAfter(col)
	}
	return ""
}

func (b *Buffer) InsertCharacter(row, col int, c rune) {
	if row < len(b.rows) {
		b.touch()
		b.rows[row].InsertChar(col, c)
	}
}

func (b *Buffer) DeleteRow(row int) {
	if row < len(b.rows) {
		b.touch()
		b.rows = append(b.rows[0:row], b.rows[row+1:]...)
	}
}

func (b *Buffer) DeleteCharacters(row int, col int, count int, joinLines bool) string {
	deletedText := ""
	if row >= b.GetRowCount() {
		return deletedText
	}
	b.touch()
	for i := 0; i < count; i++ {
		if col < b.rows[row].Length() {
			c := b.rows[row].DeleteChar(col)
			deletedText += encodeRune(c)
		} else if joinLines && row < b.GetRowCount()-1 {
			// join next row to current row
			nextRow := b.rows[row+1]
			b.rows[row].Join(nextRow)
			// remove next row
			b.DeleteRow(row + 1)
			deletedText += "\n"
		}
	}
	return deletedText
}

// ApplyHighlights colors the rows with the given spans.
// Spans that fall outside the buffer are ignored.
func (b *Buffer) ApplyHighlights(spans []chix.Span) {
	for _, r := range b.rows {
		r.clearColors()
	}
	for _, sp := range spans {
		if sp.Row < 0 || sp.Row >= len(b.rows) {
			continue
		}
		colors := b.rows[sp.Row].Colors
		for k := sp.StartCol; k < sp.EndCol && k < len(colors); k++ {
			if k >= 0 {
				colors[k] = sp.Color
			}
		}
	}
	b.Highlighted = true
}
