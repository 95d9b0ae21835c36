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

// ReplaceCharacter overwrites the character at the cursor.
type ReplaceCharacter struct {
	operation
	Character rune
}

func (op *ReplaceCharacter) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	old := e.ReplaceCharacterAtCursor(op.Cursor, op.Character)
	if old == 0 {
		return nil
	}
	inverse := &ReplaceCharacter{Character: old}
	inverse.inverseOf(&op.operation, op.Multiplier)
	return inverse
}

// ReverseCaseCharacter flips the case of letters from the cursor to the
// end of the row. Performing it again restores them.
type ReverseCaseCharacter struct {
	operation
}

func (op *ReverseCaseCharacter) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	e.ReverseCaseCharactersAtCursor(op.Multiplier)
	inverse := &ReverseCaseCharacter{}
	inverse.inverseOf(&op.operation, op.Multiplier)
	return inverse
}

// ReplaceText replaces all of the text of a buffer, as a formatter does.
type ReplaceText struct {
	operation
	Text string
}

func (op *ReplaceText) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	old := e.GetText()
	if old == op.Text {
		return nil
	}
	e.SetText(op.Text)
	inverse := &ReplaceText{Text: old}
	inverse.inverseOf(&op.operation, 1)
	return inverse
}
