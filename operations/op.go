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

// operation holds the state shared by all operations: where it was
// performed, how many times, and whether it is being performed as an undo.
type operation struct {
	Cursor     chix.Point
	Multiplier int
	Undo       bool
}

// init places the cursor for an undo, or records it for a new operation.
// A multiplier given when the operation was created wins over the one
// passed in, so repeats do the same amount of work.
func (op *operation) init(e chix.Editor, multiplier int) {
	if op.Undo {
		e.SetCursor(op.Cursor)
	} else {
		op.Cursor = e.GetCursor()
		if op.Multiplier == 0 {
			op.Multiplier = multiplier
		}
	}
	if op.Multiplier == 0 {
		op.Multiplier = 1
	}
}

// inverseOf marks op as the undo of other, performed where other was.
func (op *operation) inverseOf(other *operation, multiplier int) {
	op.Cursor = other.Cursor
	op.Multiplier = multiplier
	op.Undo = true
}

// reinsert returns an undo that puts deleted text back.
func reinsert(from *operation, text string, position int) *Insert {
	insert := &Insert{Position: position, Text: text}
	insert.inverseOf(from, 1)
	return insert
}

// remove returns an undo that deletes count characters, joining lines.
func remove(from *operation, count int) *DeleteCharacter {
	d := &DeleteCharacter{}
	d.inverseOf(from, count)
	return d
}

// A Sequence performs a list of operations as one undoable unit.
type Sequence struct {
	operation
	Operations []chix.Operation
}

func (op *Sequence) Perform(e chix.Editor, multiplier int) chix.Operation {
	op.init(e, multiplier)
	inverses := make([]chix.Operation, 0, len(op.Operations))
	for _, o := range op.Operations {
		if inverse := o.Perform(e, 0); inverse != nil {
			inverses = append(inverses, inverse)
		}
	}
	if len(inverses) == 0 {
		return nil
	}
	// inverses run in reverse order
	for i, j := 0, len(inverses)-1; i < j; i, j = i+1, j-1 {
		inverses[i], inverses[j] = inverses[j], inverses[i]
	}
	inverse := &Sequence{Operations: inverses}
	inverse.inverseOf(&op.operation, 1)
	return inverse
}
