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
	"strings"
	"unicode"
	"unicode/utf8"

	chix "github.com/chixed/chix/types"
)

const defaultTabWidth = 4

// The Editor manages the editing of text in a Buffer.
type Editor struct {
	Cursor      chix.Point           // cursor position
	Offset      chix.Size            // display offset
	Buffer      *Buffer              // the document being edited
	size        chix.Size            // size of editing area
	tabWidth    int                  // columns per tab stop when drawing
	highlighter Highlighter          // colors the buffer, may be nil
	pasteText   string               // used to cut/copy and paste
	pasteMode   int                  // how to paste the string on the pasteboard
	previous    chix.Operation       // last operation performed, available to repeat
	undo        []chix.Operation     // stack of operations to undo
	insert      chix.InsertOperation // when in insert mode, the current insert operation
}

func NewEditor() *Editor {
	e := &Editor{}
	e.Buffer = NewBuffer()
	e.tabWidth = defaultTabWidth
	return e
}

func (e *Editor) SetTabWidth(width int) {
	if width > 0 {
		e.tabWidth = width
	}
}

func (e *Editor) TabWidth() int {
	return e.tabWidth
}

func clipToRange(i, min, max int) int {
	if i > max {
		i = max
	}
	if i < min {
		i = min
	}
	return i
}

func (e *Editor) Perform(op chix.Operation, multiplier int) {
	// perform the operation; the editing primitives mark the buffer as changed
	inverse := op.Perform(e, multiplier)
	// save the operation for repeats
	e.previous = op
	// save the inverse of the operation for undo
	if inverse != nil {
		e.undo = append(e.undo, inverse)
	}
}

func (e *Editor) Repeat() {
	if e.previous != nil {
		inverse := e.previous.Perform(e, 0)
		if inverse != nil {
			e.undo = append(e.undo, inverse)
		}
	}
}

func (e *Editor) PerformUndo() {
	if len(e.undo) > 0 {
		last := len(e.undo) - 1
		undo := e.undo[last]
		e.undo = e.undo[0:last]
		undo.Perform(e, 0)
		e.Buffer.touch()
	}
}

// CanUndo reports whether there are operations to undo.
func (e *Editor) CanUndo() bool {
	return len(e.undo) > 0
}

func (e *Editor) resetHistory() {
	e.previous = nil
	e.undo = nil
	e.insert = nil
	e.Cursor = chix.Point{}
	e.Offset = chix.Size{}
}

func (e *Editor) PerformSearch(text string) bool {
	if e.Buffer.GetRowCount() == 0 || text == "" {
		return false
	}
	row := e.Cursor.Row
	col := e.Cursor.Col + 1

	for i := 0; i <= e.Buffer.GetRowCount(); i++ {
		var s string
		if col < e.Buffer.GetRowLength(row) {
			s = e.Buffer.TextAfter(row, col)
		}
		if i := strings.Index(s, text); i != -1 {
			// found it
			e.Cursor.Row = row
			e.Cursor.Col = col + utf8.RuneCountInString(s[:i])
			return true
		}
		col = 0
		row = row + 1
		if row == e.Buffer.GetRowCount() {
			row = 0
		}
	}
	return false
}

func (e *Editor) cursorDisplayColumn() int {
	row := e.Buffer.GetRow(e.Cursor.Row)
	if row == nil {
		return e.Cursor.Col
	}
	return row.DisplayColumn(e.Cursor.Col, e.tabWidth)
}

func (e *Editor) Scroll() {
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row-e.Offset.Rows >= e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	x := e.cursorDisplayColumn()
	if x < e.Offset.Cols {
		e.Offset.Cols = x
	}
	if x-e.Offset.Cols >= e.size.Cols {
		e.Offset.Cols = x - e.size.Cols + 1
	}
	if e.Offset.Rows < 0 {
		e.Offset.Rows = 0
	}
	if e.Offset.Cols < 0 {
		e.Offset.Cols = 0
	}
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	for i := 0; i < multiplier; i++ {
		switch direction {
		case chix.MoveLeft:
			if e.Cursor.Col > 0 {
				e.Cursor.Col--
			}
		case chix.MoveRight:
			if e.Cursor.Row < e.Buffer.GetRowCount() {
				rowLength := e.Buffer.GetRowLength(e.Cursor.Row)
				if e.Cursor.Col < rowLength-1 {
					e.Cursor.Col++
				}
			}
		case chix.MoveUp:
			if e.Cursor.Row > 0 {
				e.Cursor.Row--
			}
		case chix.MoveDown:
			if e.Cursor.Row < e.Buffer.GetRowCount()-1 {
				e.Cursor.Row++
			}
		}
	}
	// don't go past the end of the current line
	if e.Cursor.Row < e.Buffer.GetRowCount() {
		rowLength := e.Buffer.GetRowLength(e.Cursor.Row)
		if e.Cursor.Col > rowLength-1 {
			e.Cursor.Col = rowLength - 1
			if e.Cursor.Col < 0 {
				e.Cursor.Col = 0
			}
		}
	}
}

// MoveCursorInInsert moves the cursor while typing; unlike MoveCursor it
// allows the cursor to sit just past the end of a row.
func (e *Editor) MoveCursorInInsert(direction int) {
	switch direction {
	case chix.MoveLeft:
		if e.Cursor.Col > 0 {
			e.Cursor.Col--
		}
	case chix.MoveRight:
		if e.Cursor.Col < e.Buffer.GetRowLength(e.Cursor.Row) {
			e.Cursor.Col++
		}
	case chix.MoveUp:
		if e.Cursor.Row > 0 {
			e.Cursor.Row--
		}
	case chix.MoveDown:
		if e.Cursor.Row < e.Buffer.GetRowCount()-1 {
			e.Cursor.Row++
		}
	}
	e.Cursor.Col = clipToRange(e.Cursor.Col, 0, e.Buffer.GetRowLength(e.Cursor.Row))
}

func (e *Editor) MoveCursorToLine(line int) {
	e.Cursor.Row = clipToRange(line-1, 0, e.Buffer.GetRowCount()-1)
	e.Cursor.Col = 0
}

// These editor primitives will make changes in insert mode and associate them with to the current operation.

func (e *Editor) InsertChar(c rune) {
	if e.insert != nil {
		e.insert.AddCharacter(c)
	}
	e.Buffer.touch()
	if c == '\n' {
		e.InsertRow()
		e.Cursor.Row++
		e.Cursor.Col = 0
		return
	}
	// if the cursor is past the number of rows, add a row
	for e.Cursor.Row >= e.Buffer.GetRowCount() {
		e.AppendBlankRow()
	}
	e.Buffer.InsertCharacter(e.Cursor.Row, e.Cursor.Col, c)
	e.Cursor.Col++
}

func (e *Editor) InsertRow() {
	if e.Cursor.Row >= e.Buffer.GetRowCount() {
		e.AppendBlankRow()
	} else {
		newRow := e.Buffer.rows[e.Cursor.Row].Split(e.Cursor.Col)
		i := e.Cursor.Row + 1
		// add a dummy row at the end of the rows slice
		e.AppendBlankRow()
		// move rows to make room for the one we are adding
		copy(e.Buffer.rows[i+1:], e.Buffer.rows[i:])
		// add the new row
		e.Buffer.rows[i] = newRow
	}
	e.Buffer.touch()
}

func (e *Editor) BackspaceChar() rune {
	if e.Buffer.GetRowCount() == 0 {
		return rune(0)
	}
	if e.insert == nil || e.insert.Length() == 0 {
		return rune(0)
	}
	e.insert.DeleteCharacter()
	e.Buffer.touch()
	if e.Cursor.Col > 0 {
		c := e.Buffer.rows[e.Cursor.Row].DeleteChar(e.Cursor.Col - 1)
		e.Cursor.Col--
		return c
	} else if e.Cursor.Row > 0 {
		// remove the current row and join it with the previous one
		previous := e.Buffer.rows[e.Cursor.Row-1]
		col := previous.Length()
		previous.Join(e.Buffer.rows[e.Cursor.Row])
		e.Buffer.rows = append(e.Buffer.rows[0:e.Cursor.Row], e.Buffer.rows[e.Cursor.Row+1:]...)
		e.Cursor.Row--
		e.Cursor.Col = col
		return rune('\n')
	}
	return rune(0)
}

func (e *Editor) JoinRow(multiplier int) []chix.Point {
	points := make([]chix.Point, 0)
	for i := 0; i < multiplier; i++ {
		row := e.Cursor.Row
		if row >= e.Buffer.GetRowCount()-1 {
			break
		}
		point := chix.Point{Row: row, Col: e.Buffer.rows[row].Length()}
		e.Buffer.rows[row].Join(e.Buffer.rows[row+1])
		e.Buffer.DeleteRow(row + 1)
		e.Cursor.Col = point.Col
		points = append(points, point)
	}
	return points
}

func (e *Editor) YankRow(multiplier int) {
	if e.Buffer.GetRowCount() == 0 {
		return
	}
	pasteText := ""
	for i := 0; i < multiplier; i++ {
		position := e.Cursor.Row + i
		if position < e.Buffer.GetRowCount() {
			pasteText += encodeText(e.Buffer.rows[position].Text) + "\n"
		}
	}
	e.SetPasteBoard(pasteText, chix.PasteNewLine)
}

func (e *Editor) KeepCursorInRow() {
	if e.Buffer.GetRowCount() == 0 {
		e.Cursor.Row = 0
		e.Cursor.Col = 0
		return
	}
	e.Cursor.Row = clipToRange(e.Cursor.Row, 0, e.Buffer.GetRowCount()-1)
	lastIndexInRow := e.Buffer.rows[e.Cursor.Row].Length() - 1
	if e.Cursor.Col > lastIndexInRow {
		e.Cursor.Col = lastIndexInRow
	}
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
}

func (e *Editor) AppendBlankRow() {
	e.Buffer.rows = append(e.Buffer.rows, NewRow(""))
	e.Buffer.touch()
}

func (e *Editor) InsertLineAboveCursor() {
	if e.Cursor.Row > e.Buffer.GetRowCount() {
		e.Cursor.Row = e.Buffer.GetRowCount()
	}
	e.AppendBlankRow()
	copy(e.Buffer.rows[e.Cursor.Row+1:], e.Buffer.rows[e.Cursor.Row:])
	e.Buffer.rows[e.Cursor.Row] = NewRow("")
	e.Cursor.Col = 0
}

func (e *Editor) InsertLineBelowCursor() {
	if e.Cursor.Row >= e.Buffer.GetRowCount() {
		e.Cursor.Row = e.Buffer.GetRowCount() - 1
	}
	e.AppendBlankRow()
	copy(e.Buffer.rows[e.Cursor.Row+2:], e.Buffer.rows[e.Cursor.Row+1:])
	e.Buffer.rows[e.Cursor.Row+1] = NewRow("")
	e.Cursor.Row++
	e.Cursor.Col = 0
}

func (e *Editor) MoveCursorToStartOfLine() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveCursorToStartOfLineBelowCursor() {
	e.Cursor.Col = 0
	e.Cursor.Row++
}

// editable

func (e *Editor) GetCursor() chix.Point {
	return e.Cursor
}

func (e *Editor) SetCursor(cursor chix.Point) {
	e.Cursor = cursor
}

func (e *Editor) GetRowCount() int {
	return e.Buffer.GetRowCount()
}

func (e *Editor) GetRowLength(row int) int {
	return e.Buffer.GetRowLength(row)
}

func (e *Editor) ReplaceCharacterAtCursor(cursor chix.Point, c rune) rune {
	row := e.Buffer.GetRow(cursor.Row)
	if row == nil {
		return rune(0)
	}
	e.Buffer.touch()
	return row.ReplaceChar(cursor.Col, c)
}

func (e *Editor) DeleteRowsAtCursor(multiplier int) string {
	deletedText := ""
	for i := 0; i < multiplier; i++ {
		row := e.Cursor.Row
		if row < e.Buffer.GetRowCount() {
			if i > 0 {
				deletedText += "\n"
			}
			deletedText += encodeText(e.Buffer.rows[row].Text)
			e.Buffer.DeleteRow(row)
		} else {
			break
		}
	}
	e.Cursor.Row = clipToRange(e.Cursor.Row, 0, e.Buffer.GetRowCount()-1)
	e.Cursor.Col = 0
	return deletedText
}

func (e *Editor) SetPasteBoard(text string, mode int) {
	e.pasteText = text
	e.pasteMode = mode
}

func (e *Editor) DeleteWordsAtCursor(multiplier int) string {
	deletedText := ""
	for i := 0; i < multiplier; i++ {
		if e.Buffer.GetRowCount() == 0 {
			break
		}
		row := e.Cursor.Row
		col := e.Cursor.Col
		if col >= e.Buffer.rows[row].Length() {
			// at the end of a row, words continue on the next row
			if row >= e.Buffer.GetRowCount()-1 {
				break
			}
			deletedText += e.Buffer.DeleteCharacters(row, col, 1, true)
			continue
		}
		c := e.Buffer.rows[row].DeleteChar(col)
		deletedText += encodeRune(c)
		for c != ' ' && col < e.Buffer.rows[row].Length() {
			c = e.Buffer.rows[row].DeleteChar(col)
			deletedText += encodeRune(c)
		}
	}
	e.Buffer.touch()
	return deletedText
}

func (e *Editor) DeleteCharactersAtCursor(multiplier int, undo bool, finallyDeleteRow bool) string {
	if e.Buffer.GetRowCount() == 0 {
		return ""
	}
	e.Cursor.Row = clipToRange(e.Cursor.Row, 0, e.Buffer.GetRowCount()-1)
	deletedText := e.Buffer.DeleteCharacters(e.Cursor.Row, e.Cursor.Col, multiplier, undo)
	if finallyDeleteRow && e.Buffer.GetRowCount() > 0 {
		e.Buffer.DeleteRow(e.Cursor.Row)
	}
	e.KeepCursorInRow()
	return deletedText
}

func (e *Editor) InsertText(text string, position int) (chix.Point, int) {
	if e.Buffer.GetRowCount() == 0 {
		// an empty buffer already has room for a new line
		e.AppendBlankRow()
		position = chix.InsertAtCursor
		e.Cursor = chix.Point{}
	}
	e.Cursor.Row = clipToRange(e.Cursor.Row, 0, e.Buffer.GetRowCount())
	switch position {
	case chix.InsertAtCursor:
		break
	case chix.InsertAfterCursor:
		e.Cursor.Col++
		e.Cursor.Col = clipToRange(e.Cursor.Col, 0, e.Buffer.GetRowLength(e.Cursor.Row))
	case chix.InsertAtStartOfLine:
		e.Cursor.Col = 0
	case chix.InsertAfterEndOfLine:
		e.Cursor.Col = e.Buffer.GetRowLength(e.Cursor.Row)
	case chix.InsertAtNewLineBelowCursor:
		e.InsertLineBelowCursor()
	case chix.InsertAtNewLineAboveCursor:
		e.InsertLineAboveCursor()
	}
	var mode int
	if text != "" {
		r := e.Cursor.Row
		c := e.Cursor.Col
		for _, c := range decodeText(text) {
			e.InsertChar(c)
		}
		e.Cursor.Row = r
		e.Cursor.Col = c
		mode = chix.ModeEdit
	} else {
		mode = chix.ModeInsert
	}
	return e.Cursor, mode
}

func (e *Editor) SetInsertOperation(insert chix.InsertOperation) {
	e.insert = insert
}

func (e *Editor) GetPasteMode() int {
	return e.pasteMode
}

func (e *Editor) GetPasteText() string {
	return e.pasteText
}

func (e *Editor) ReverseCaseCharactersAtCursor(multiplier int) {
	row := e.Buffer.GetRow(e.Cursor.Row)
	if row == nil || row.Length() == 0 {
		return
	}
	e.Buffer.touch()
	for i := 0; i < multiplier && e.Cursor.Col < row.Length(); i++ {
		c := row.Text[e.Cursor.Col]
		if unicode.IsUpper(c) {
			row.ReplaceChar(e.Cursor.Col, unicode.ToLower(c))
		} else if unicode.IsLower(c) {
			row.ReplaceChar(e.Cursor.Col, unicode.ToUpper(c))
		}
		if e.Cursor.Col == row.Length()-1 {
			break
		}
		e.Cursor.Col++
	}
}

// ChangeWordAtCursor deletes words and inserts text in their place.
// The space that ends the last word is kept.
func (e *Editor) ChangeWordAtCursor(multiplier int, text string) (string, int) {
	deletedText := e.DeleteWordsAtCursor(multiplier)
	if strings.HasSuffix(deletedText, " ") {
		deletedText = deletedText[:len(deletedText)-1]
		e.Buffer.InsertCharacter(e.Cursor.Row, e.Cursor.Col, ' ')
	}
	_, mode := e.InsertText(text, chix.InsertAtCursor)
	return deletedText, mode
}

func (e *Editor) PageUp(multiplier int) {
	// move to the top of the screen
	e.Cursor.Row = e.Offset.Rows
	// move up by a page
	e.MoveCursor(chix.MoveUp, e.size.Rows*multiplier)
}

func (e *Editor) PageDown(multiplier int) {
	// move to the bottom of the screen
	e.Cursor.Row = clipToRange(e.Offset.Rows+e.size.Rows-1, 0, e.Buffer.GetRowCount()-1)
	// move down by a page
	e.MoveCursor(chix.MoveDown, e.size.Rows*multiplier)
}

func (e *Editor) SetSize(s chix.Size) {
	e.size = s
}

func (e *Editor) CloseInsert() {
	if e.insert != nil {
		e.insert.Close()
		e.insert = nil
	}
}

func (e *Editor) MoveToBeginningOfLine() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	e.Cursor.Col = 0
	if e.Cursor.Row < e.Buffer.GetRowCount() {
		e.Cursor.Col = e.Buffer.GetRowLength(e.Cursor.Row) - 1
		if e.Cursor.Col < 0 {
			e.Cursor.Col = 0
		}
	}
}

func (e *Editor) GetText() string {
	return string(e.Buffer.Bytes())
}

// SetText replaces the text of the buffer, keeping its file and the cursor
// row where possible.
func (e *Editor) SetText(text string) {
	e.Buffer.LoadBytes([]byte(text))
	e.Buffer.touch()
	e.KeepCursorInRow()
}
