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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chixed/chix/operations"
	chix "github.com/chixed/chix/types"
)

const source = "testdata/hello.c"

func setup(t *testing.T) *Editor {
	editor := NewEditor()
	err := editor.ReadFile(source)
	if err != nil {
		t.Fatalf("Read failed: %+v", err)
	}
	return editor
}

// final writes the buffer and checks that it matches the original file.
func final(t *testing.T, editor *Editor) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final.c")
	if err := editor.WriteFile(path); err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	expected, _ := os.ReadFile(source)
	actual, _ := os.ReadFile(path)
	if !bytes.Equal(expected, actual) {
		t.Errorf("File changed:\n%s", actual)
	}
}

// read and write a file without changing it
func TestReadWriteInvariance(t *testing.T) {
	editor := setup(t)
	if editor.Buffer.IsDirty() {
		t.Errorf("Buffer dirty after reading")
	}
	if rowCount := editor.Buffer.GetRowCount(); rowCount != 12 {
		t.Errorf("Unexpected row count: %d", rowCount)
	}
	final(t, editor)
}

func TestDeleteRow(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 4, Col: 3}
	editor.Perform(&operations.DeleteRow{}, 2)
	if rowCount := editor.Buffer.GetRowCount(); rowCount != 10 {
		t.Errorf("Invalid row count after deletion: %d", rowCount)
	}
	if remainder := editor.Buffer.TextAfter(4, 0); !strings.HasPrefix(remainder, "\tfor") {
		t.Errorf("Unexpected row after deletion: '%s'", remainder)
	}
	if editor.GetPasteMode() != chix.PasteNewLine || editor.GetPasteText() != "\tchar *name = \"wörld\";\n\tint count = 3;\n" {
		t.Errorf("Unexpected pasteboard: %q", editor.GetPasteText())
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestDeleteWord(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 0}
	editor.Perform(&operations.DeleteWord{}, 2)
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "{" {
		t.Errorf("Unexpected remainder after deletion: '%s'", remainder)
	}
	if editor.GetPasteText() != "int main(void) " {
		t.Errorf("Unexpected pasteboard: %q", editor.GetPasteText())
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestDeleteCharacter(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 4, Col: 1}
	editor.Perform(&operations.DeleteCharacter{}, 6)
	expected := "\tname = \"wörld\";"
	if remainder := editor.Buffer.TextAfter(4, 0); remainder != expected {
		t.Errorf("Unexpected remainder after deletion: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestRepeat(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 0}
	editor.Perform(&operations.DeleteCharacter{}, 2)
	editor.Repeat()
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "main(void) {" {
		t.Errorf("Unexpected remainder after repeat: '%s'", remainder)
	}
	editor.PerformUndo()
	editor.PerformUndo()
	final(t, editor)
}

func TestInsert(t *testing.T) {
	editor := setup(t)
	editor.Perform(&operations.Insert{Position: chix.InsertAtCursor, Text: "// hi\n"}, 1)
	if remainder := editor.Buffer.TextAfter(0, 0); remainder != "// hi" {
		t.Errorf("Unexpected first row: '%s'", remainder)
	}
	if remainder := editor.Buffer.TextAfter(1, 0); remainder != "#include <stdio.h>" {
		t.Errorf("Unexpected second row: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestInsertNewLines(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 10, Col: 0}
	editor.Perform(&operations.Insert{Position: chix.InsertAtNewLineBelowCursor, Text: "x"}, 1)
	if remainder := editor.Buffer.TextAfter(11, 0); remainder != "x" {
		t.Errorf("Unexpected row: '%s'", remainder)
	}
	editor.Cursor = chix.Point{Row: 3, Col: 5}
	editor.Perform(&operations.Insert{Position: chix.InsertAtNewLineAboveCursor, Text: "int y;"}, 1)
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "int y;" {
		t.Errorf("Unexpected row: '%s'", remainder)
	}
	if rowCount := editor.Buffer.GetRowCount(); rowCount != 14 {
		t.Errorf("Unexpected row count: %d", rowCount)
	}
	editor.PerformUndo()
	editor.PerformUndo()
	final(t, editor)
}

func TestReplaceCharacter(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 4}
	editor.Perform(&operations.ReplaceCharacter{Character: 'M'}, 1)
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "int Main(void) {" {
		t.Errorf("Unexpected row after replacement: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestReverseCase(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 0}
	editor.Perform(&operations.ReverseCaseCharacter{}, 3)
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "INT main(void) {" {
		t.Errorf("Unexpected row after case change: '%s'", remainder)
	}
	editor.PerformUndo()

	// the change stops at the end of the row
	editor.Cursor = chix.Point{Row: 9, Col: 1}
	editor.Perform(&operations.ReverseCaseCharacter{}, 20)
	if remainder := editor.Buffer.TextAfter(9, 0); remainder != "\tRETURN 0;" {
		t.Errorf("Unexpected row after case change: '%s'", remainder)
	}
	if remainder := editor.Buffer.TextAfter(10, 0); remainder != "}" {
		t.Errorf("Next row changed: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestJoinLine(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 8, Col: 0}
	editor.Perform(&operations.JoinLine{}, 2)
	if remainder := editor.Buffer.TextAfter(8, 0); remainder != "\t}\treturn 0;}" {
		t.Errorf("Unexpected row after join: '%s'", remainder)
	}
	if rowCount := editor.Buffer.GetRowCount(); rowCount != 10 {
		t.Errorf("Unexpected row count: %d", rowCount)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestYankAndPaste(t *testing.T) {
	editor := setup(t)
	editor.YankRow(1)
	editor.Cursor = chix.Point{Row: 1, Col: 0}
	editor.Perform(&operations.Paste{}, 1)
	if remainder := editor.Buffer.TextAfter(2, 0); remainder != "#include <stdio.h>" {
		t.Errorf("Unexpected row after paste: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)

	// pasting below the last row
	editor.Cursor = chix.Point{Row: 11, Col: 0}
	editor.Perform(&operations.Paste{}, 1)
	if remainder := editor.Buffer.TextAfter(12, 0); remainder != "#include <stdio.h>" {
		t.Errorf("Unexpected last row after paste: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestChangeWord(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 0}
	editor.Perform(&operations.ChangeWord{Text: "long"}, 1)
	if remainder := editor.Buffer.TextAfter(3, 0); remainder != "long main(void) {" {
		t.Errorf("Unexpected row after change: '%s'", remainder)
	}
	editor.PerformUndo()
	final(t, editor)
}

func TestUndoEmptyInsert(t *testing.T) {
	editor := setup(t)
	editor.Cursor = chix.Point{Row: 3, Col: 2}
	editor.Perform(&operations.Insert{Position: chix.InsertAtCursor}, 1)
	editor.CloseInsert()
	editor.PerformUndo()
	final(t, editor)
}

func TestSearch(t *testing.T) {
	editor := setup(t)
	if !editor.PerformSearch("count") {
		t.Fatalf("Search failed")
	}
	if editor.Cursor != (chix.Point{Row: 5, Col: 5}) {
		t.Errorf("Unexpected cursor: %+v", editor.Cursor)
	}
	editor.PerformSearch("count")
	if editor.Cursor != (chix.Point{Row: 6, Col: 21}) {
		t.Errorf("Unexpected cursor: %+v", editor.Cursor)
	}
	if editor.PerformSearch("missing") {
		t.Errorf("Found missing text")
	}
}

func TestDirtyTracking(t *testing.T) {
	editor := setup(t)
	editor.MoveCursor(chix.MoveDown, 3)
	if editor.Buffer.IsDirty() {
		t.Errorf("Moving made the buffer dirty")
	}
	editor.Perform(&operations.DeleteCharacter{}, 1)
	if !editor.Buffer.IsDirty() {
		t.Errorf("Deleting did not make the buffer dirty")
	}
	path := filepath.Join(t.TempDir(), "dirty.c")
	if err := editor.WriteFile(path); err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	if editor.Buffer.IsDirty() || editor.Buffer.GetFileName() != path {
		t.Errorf("Unexpected state after write: %v %s", editor.Buffer.IsDirty(), editor.Buffer.GetFileName())
	}
}

func TestSaveAs(t *testing.T) {
	editor := NewEditor()
	if err := editor.Save(); !errors.Is(err, ErrNoFileName) {
		t.Errorf("Unexpected error saving an unnamed buffer: %v", err)
	}
	editor.InsertChar('x')
	dir := t.TempDir()
	path, err := editor.SaveAs(filepath.Join(dir, "prog"))
	if err != nil {
		t.Fatalf("SaveAs failed: %+v", err)
	}
	if path != filepath.Join(dir, "prog.c") || editor.Buffer.GetName() != "prog.c" {
		t.Errorf("Unexpected path %s", path)
	}
	if b, _ := os.ReadFile(path); string(b) != "x" {
		t.Errorf("Unexpected contents %q", b)
	}
	if path, _ := editor.SaveAs(filepath.Join(dir, "notes.txt")); filepath.Ext(path) != ".txt" {
		t.Errorf("Extension replaced: %s", path)
	}
	if _, err := editor.SaveAs(dir); !errors.Is(err, ErrDirectory) {
		t.Errorf("Saved over a directory: %v", err)
	}
	if _, err := os.Stat(dir + DefaultExtension); err == nil {
		t.Errorf("Saved next to a directory")
	}
}

const latin1Source = "testdata/latin1.c"

// bytes that are not UTF-8 are written back unchanged
func TestInvalidUTF8Invariance(t *testing.T) {
	original, err := os.ReadFile(latin1Source)
	if err != nil {
		t.Fatalf("Read failed: %+v", err)
	}
	path := filepath.Join(t.TempDir(), "latin1.c")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	editor := NewEditor()
	if err := editor.ReadFile(path); err != nil {
		t.Fatalf("Read failed: %+v", err)
	}
	if length := editor.Buffer.GetRowLength(0); length != len("/* cafe au lait */") {
		t.Errorf("Unexpected row length: %d", length)
	}
	if err := editor.Save(); err != nil {
		t.Fatalf("Save failed: %+v", err)
	}
	if saved, _ := os.ReadFile(path); !bytes.Equal(saved, original) {
		t.Errorf("File changed:\n%q", saved)
	}

	// edits around the byte keep it
	editor.Cursor = chix.Point{Row: 0, Col: 0}
	editor.Perform(&operations.Insert{Position: chix.InsertAtCursor, Text: "//"}, 1)
	if !bytes.Equal(editor.Bytes(), append([]byte("//"), original...)) {
		t.Errorf("Unexpected text after insert: %q", editor.Bytes())
	}
	editor.PerformUndo()
	editor.Cursor = chix.Point{Row: 4, Col: 0}
	editor.YankRow(1)
	editor.Perform(&operations.DeleteRow{}, 1)
	editor.Perform(&operations.Paste{}, 1)
	editor.PerformUndo()
	editor.PerformUndo()
	if !bytes.Equal(editor.Bytes(), original) {
		t.Errorf("Unexpected text after undo:\n%q", editor.Bytes())
	}
	editor.Cursor = chix.Point{Row: 0, Col: 6}
	editor.Perform(&operations.DeleteCharacter{}, 1)
	editor.PerformUndo()
	if !bytes.Equal(editor.Bytes(), original) {
		t.Errorf("Unexpected text after undo:\n%q", editor.Bytes())
	}
}

func TestReadMissingFile(t *testing.T) {
	editor := setup(t)
	if err := editor.ReadFile(filepath.Join(t.TempDir(), "missing.c")); err == nil {
		t.Fatalf("Read of a missing file succeeded")
	}
	if editor.Buffer.GetName() != "hello.c" {
		t.Errorf("Document replaced by a failed read")
	}
}

func TestTemplate(t *testing.T) {
	editor := NewEditor()
	if !editor.InsertTemplate() {
		t.Fatalf("Template not inserted")
	}
	if string(editor.Bytes()) != StarterProgram || !editor.Buffer.IsDirty() {
		t.Errorf("Unexpected template state")
	}
	if editor.InsertTemplate() {
		t.Errorf("Template inserted into a document with text")
	}
}

type fakeDisplay struct {
	cells  map[chix.Point]rune
	colors map[chix.Point]chix.Color
	cursor chix.Point
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{cells: map[chix.Point]rune{}, colors: map[chix.Point]chix.Color{}}
}

func (d *fakeDisplay) SetCell(col int, row int, c rune, fg chix.Color, bg chix.Color) {
	d.cells[chix.Point{Row: row, Col: col}] = c
	d.colors[chix.Point{Row: row, Col: col}] = fg
}

func (d *fakeDisplay) SetCursor(p chix.Point) {
	d.cursor = p
}

func (d *fakeDisplay) row(r, width int) string {
	var s strings.Builder
	for x := 0; x < width; x++ {
		if c, ok := d.cells[chix.Point{Row: r, Col: x}]; ok {
			s.WriteRune(c)
		} else {
			s.WriteRune(' ')
		}
	}
	return strings.TrimRight(s.String(), " ")
}

type fixedHighlighter struct{}

func (fixedHighlighter) Highlight(text string) ([]chix.Span, error) {
	return []chix.Span{{Row: 3, StartCol: 0, EndCol: 3, Color: chix.PaletteColor(33)}}, nil
}

func TestRender(t *testing.T) {
	editor := setup(t)
	editor.SetHighlighter(fixedHighlighter{})
	editor.Cursor = chix.Point{Row: 4, Col: 1}
	p := chix.Palette{Foreground: chix.PaletteColor(250), Muted: chix.PaletteColor(240)}
	d := newFakeDisplay()
	area := chix.Rect{Origin: chix.Point{Row: 1, Col: 0}, Size: chix.Size{Rows: 20, Cols: 60}}
	editor.Render(d, area, p)
	if row := d.row(5, 60); row != "    char *name = \"wörld\";" {
		t.Errorf("Unexpected row: '%s'", row)
	}
	if d.colors[chix.Point{Row: 4, Col: 0}] != chix.PaletteColor(33) || d.colors[chix.Point{Row: 4, Col: 4}] != p.Foreground {
		t.Errorf("Highlight not drawn")
	}
	if row := d.row(13, 60); row != "~" {
		t.Errorf("Unexpected row past the end: '%s'", row)
	}
	info := d.row(20, 60)
	if !strings.HasPrefix(info, " hello.c ") || !strings.HasSuffix(info, "Ln 5, Col 2") {
		t.Errorf("Unexpected info bar: '%s'", info)
	}
	editor.SetCursorForDisplay(d, area)
	if d.cursor != (chix.Point{Row: 5, Col: 4}) {
		t.Errorf("Unexpected cursor: %+v", d.cursor)
	}
}

func TestOutput(t *testing.T) {
	red, green := chix.PaletteColor(196), chix.PaletteColor(46)
	o := NewOutput()
	o.Append("a\nb", red)
	o.Append("c\n", red)
	o.AppendLine("done", green)
	if o.Text() != "a\nbc\ndone" {
		t.Errorf("Unexpected output: %q", o.Text())
	}
	if lines := o.Lines(); lines[2].Color != green {
		t.Errorf("Unexpected color: %+v", lines[2])
	}

	d := newFakeDisplay()
	area := chix.Rect{Size: chix.Size{Rows: 3, Cols: 20}}
	o.Render(d, area, "Output", chix.Palette{})
	if d.row(0, 20) != " Output" || d.row(1, 20) != "bc" || d.row(2, 20) != "done" {
		t.Errorf("Unexpected output pane: %q %q %q", d.row(0, 20), d.row(1, 20), d.row(2, 20))
	}
	o.Scroll(1)
	o.Render(d, area, "Output", chix.Palette{})
	if d.row(1, 20) != "a" || d.row(2, 20) != "bc" {
		t.Errorf("Unexpected scrolled pane: %q %q", d.row(1, 20), d.row(2, 20))
	}

	o.Clear()
	for i := 0; i < maxOutputLines+10; i++ {
		o.AppendLine("x", red)
	}
	if len(o.Lines()) != maxOutputLines {
		t.Errorf("Output not trimmed: %d lines", len(o.Lines()))
	}
}
