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
package types

// Editor modes
const (
	ModeEdit    = 0
	ModeInsert  = 1
	ModeCommand = 2
	ModeSearch  = 3
	ModeLisp    = 4
	ModePrompt  = 5
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Insert positions
const (
	InsertAtCursor             = 0
	InsertAfterCursor          = 1
	InsertAtStartOfLine        = 2
	InsertAfterEndOfLine       = 3
	InsertAtNewLineBelowCursor = 4
	InsertAtNewLineAboveCursor = 5
)

// Paste modes
const (
	PasteAtCursor = 0
	PasteNewLine  = 1
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

type Rect struct {
	Origin Point
	Size   Size
}

// Color packs a palette entry (1-256, zero for the terminal default) with
// text attributes in the upper bits.
type Color uint16

const (
	ColorDefault   Color = 0
	ColorBold      Color = 1 << 9
	ColorUnderline Color = 1 << 10
	ColorReverse   Color = 1 << 11
)

// PaletteColor returns the Color for an xterm-256 palette index.
func PaletteColor(index uint8) Color {
	return Color(index) + 1
}

// A Span colors the runes [StartCol, EndCol) of a row.
type Span struct {
	Row      int
	StartCol int
	EndCol   int
	Color    Color
}

// A Palette holds the colors used to draw everything that is not source text.
type Palette struct {
	Background Color
	Foreground Color
	Panel      Color
	Bar        Color
	BarText    Color
	Muted      Color
	Accent     Color
	Error      Color
	Warning    Color
	Success    Color
}

// A Display receives rendered cells.
type Display interface {
	SetCell(col int, row int, c rune, fg Color, bg Color)
	SetCursor(p Point)
}

type Operation interface {
	Perform(e Editor, multiplier int) Operation // performs the operation and returns its inverse
}

type InsertOperation interface {
	Operation
	AddCharacter(c rune)
	DeleteCharacter()
	Close()
	Length() int
}

type Commander interface {
	SetMode(int)
	GetMode() int
}

// Editor lists the editing services used by operations.
type Editor interface {
	GetCursor() Point
	SetCursor(cursor Point)
	GetRowCount() int
	GetRowLength(row int) int

	MoveCursorToStartOfLineBelowCursor()

	ReplaceCharacterAtCursor(cursor Point, c rune) rune
	DeleteRowsAtCursor(multiplier int) string
	DeleteWordsAtCursor(multiplier int) string
	DeleteCharactersAtCursor(multiplier int, undo bool, finallyDeleteRow bool) string
	ChangeWordAtCursor(multiplier int, text string) (string, int)
	ReverseCaseCharactersAtCursor(multiplier int)
	JoinRow(multiplier int) []Point
	InsertChar(c rune)
	InsertText(text string, position int) (Point, int)
	GetText() string
	SetText(text string)

	SetPasteBoard(text string, mode int)
	GetPasteMode() int
	GetPasteText() string
	SetInsertOperation(insert InsertOperation)
}
