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
	chix "github.com/chixed/chix/types"
)

// DeleteCharacter deletes characters at the cursor. As an undo it also
// deletes line breaks, and FinallyDeleteRow removes the emptied row.
type DeleteCharacter struct {
	operation
	FinallyDeleteRow bool
}

func (op *DeleteCharacter) Perform(e chix.Editor, multiplier int) chix.Operation {
	if op.Undo && op.Multiplier == 0 {
		// undoing an insert that added nothing
		if op.FinallyDeleteRow {
			e.SetCursor(op.Cursor)
			e.DeleteCharactersAtCursor(0, true, true)
		}
		return nil
	}
	op.init(e, multiplier)
	deleted := e.DeleteCharactersAtCursor(op.Multiplier, op.Undo, op.FinallyDeleteRow)
	if deleted == "" {
		return nil
	}
	if !op.Undo {
		e.SetPasteBoard(deleted, chix.PasteAtCursor)
	}
	return reinsert(&op.operation, deleted, chix.InsertAtCursor)
}

// DeleteRow deletes whole rows and puts them on the pasteboard.
type DeleteRow struct {
	operation
}

func (op *DeleteRow) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	deleted := e.DeleteRowsAtCursor(op.Multiplier)
	e.SetPasteBoard(deleted+"\n", chix.PasteNewLine)
	inverse := reinsert(&op.operation, deleted, chix.InsertAtNewLineAboveCursor)
	inverse.Cursor.Col = 0
	return inverse
}

// DeleteWord deletes words with their trailing space.
type DeleteWord struct {
	operation
}

func (op *DeleteWord) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	deleted := e.DeleteWordsAtCursor(op.Multiplier)
	if deleted == "" {
		return nil
	}
	e.SetPasteBoard(deleted, chix.PasteAtCursor)
	return reinsert(&op.operation, deleted, chix.InsertAtCursor)
}

// JoinLine appends the following lines to the cursor row.
type JoinLine struct {
	operation
}

func (op *JoinLine) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	joins := e.JoinRow(op.Multiplier)
	if len(joins) == 0 {
		return nil
	}
	// split again from the last join back to the first
	breaks := make([]chix.Operation, len(joins))
	for i, p := range joins {
		insert := &Insert{Position: chix.InsertAtCursor, Text: "\n"}
		insert.inverseOf(&operation{Cursor: p}, 1)
		breaks[len(joins)-1-i] = insert
	}
	inverse := &Sequence{Operations: breaks}
	inverse.inverseOf(&op.operation, 1)
	return inverse
}
