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
package operations

import (
	"strings"
	"unicode/utf8"

	chix "github.com/chixed/chix/types"
)

// Insert adds text at a position relative to the cursor. Without Text it
// switches the commander to insert mode and collects what is typed until
// the insert is closed.
type Insert struct {
	operation
	Position  int
	Text      string
	Inverse   *DeleteCharacter
	Commander chix.Commander
}

func (op *Insert) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	if op.Text == "" && !op.Undo {
		e.SetInsertOperation(op)
	}
	var mode int
	op.Cursor, mode = e.InsertText(op.Text, op.Position)
	if op.Commander != nil {
		op.Commander.SetMode(mode)
	}
	op.Inverse = remove(&op.operation, op.Length())
	// an insert that opened a line removes the line too
	op.Inverse.FinallyDeleteRow = op.Position == chix.InsertAtNewLineBelowCursor ||
		op.Position == chix.InsertAtNewLineAboveCursor
	return op.Inverse
}

func (op *Insert) Length() int         { return utf8.RuneCountInString(op.Text) }
func (op *Insert) AddCharacter(c rune) { op.Text += string(c) }
func (op *Insert) DeleteCharacter()    { op.Text = dropLastRune(op.Text) }
func (op *Insert) Close()              { op.Inverse.Multiplier = op.Length() }

// ChangeWord replaces words at the cursor with text, typed in insert mode
// when Text is empty.
type ChangeWord struct {
	operation
	Text      string
	Inverse   *DeleteCharacter
	Commander chix.Commander
}

func (op *ChangeWord) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	if op.Text == "" && !op.Undo {
		e.SetInsertOperation(op)
	}
	deleted, mode := e.ChangeWordAtCursor(op.Multiplier, op.Text)
	if op.Commander != nil {
		op.Commander.SetMode(mode)
	}
	op.Inverse = remove(&op.operation, op.Length())

	// the typed text goes first, then the words come back
	inverse := &Sequence{
		Operations: []chix.Operation{op.Inverse, reinsert(&op.operation, deleted, chix.InsertAtCursor)},
	}
	inverse.inverseOf(&op.operation, 1)
	return inverse
}

func (op *ChangeWord) Length() int         { return utf8.RuneCountInString(op.Text) }
func (op *ChangeWord) AddCharacter(c rune) { op.Text += string(c) }
func (op *ChangeWord) DeleteCharacter()    { op.Text = dropLastRune(op.Text) }
func (op *ChangeWord) Close()              { op.Inverse.Multiplier = op.Length() }

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// Paste inserts the pasteboard. Whole lines go below the cursor row,
// anything else goes at the cursor.
type Paste struct {
	operation
}

func (op *Paste) Perform(e chix.Editor, multiplier int) chix.Operation {
	text := e.GetPasteText()
	if text == "" {
		return nil
	}
	if e.GetPasteMode() == chix.PasteNewLine {
		cursor := e.GetCursor()
		if cursor.Row < e.GetRowCount()-1 {
			e.MoveCursorToStartOfLineBelowCursor()
		} else {
			// no line below: start one at the end of the last line
			cursor.Col = e.GetRowLength(cursor.Row)
			e.SetCursor(cursor)
			text = "\n" + strings.TrimSuffix(text, "\n")
		}
	}
	op.init(e, multiplier)
	e.InsertText(strings.Repeat(text, op.Multiplier), chix.InsertAtCursor)
	e.SetCursor(op.Cursor)
	return remove(&op.operation, utf8.RuneCountInString(text)*op.Multiplier)
}
