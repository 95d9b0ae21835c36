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
package commander

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/chixed/chix/compiler"
	"github.com/chixed/chix/editor"
	"github.com/chixed/chix/highlight"
	chix "github.com/chixed/chix/types"
)

// fakeDisplay records the cells drawn into it.
type fakeDisplay struct {
	size   chix.Size
	cells  map[chix.Point]rune
	colors map[chix.Point]chix.Color
	cursor chix.Point
}

func newFakeDisplay(rows, cols int) *fakeDisplay {
	return &fakeDisplay{
		size:   chix.Size{Rows: rows, Cols: cols},
		cells:  make(map[chix.Point]rune),
		colors: make(map[chix.Point]chix.Color),
	}
}

func (d *fakeDisplay) SetCell(col int, row int, c rune, fg chix.Color, bg chix.Color) {
	p := chix.Point{Row: row, Col: col}
	d.cells[p] = c
	d.colors[p] = fg
}

func (d *fakeDisplay) SetCursor(p chix.Point) {
	d.cursor = p
}

func (d *fakeDisplay) row(r int) string {
	var s strings.Builder
	for x := 0; x < d.size.Cols; x++ {
		if c, ok := d.cells[chix.Point{Row: r, Col: x}]; ok {
			s.WriteRune(c)
		} else {
			s.WriteRune(' ')
		}
	}
	return strings.TrimRight(s.String(), " ")
}

func setup(t *testing.T, compilerName string) *Commander {
	t.Helper()
	themes, err := highlight.LoadThemes()
	if err != nil {
		t.Fatalf("LoadThemes failed: %+v", err)
	}
	pipeline := compiler.NewPipeline(compiler.NewRunner(compilerName, nil))
	pipeline.TempDir = t.TempDir()
	return NewCommander(context.Background(), editor.NewEditor(), pipeline, themes)
}

func typeKeys(c *Commander, text string) {
	for _, ch := range text {
		switch ch {
		case ' ':
			press(c, chix.KeySpace)
		case '\n':
			press(c, chix.KeyEnter)
		default:
			c.ProcessKey(&chix.Event{Type: chix.EventKey, Ch: ch})
		}
	}
}

func press(c *Commander, key chix.Key) {
	c.ProcessKey(&chix.Event{Type: chix.EventKey, Key: key})
}

func text(c *Commander) string {
	return string(c.Editor().Bytes())
}

func TestInsertAndUndoWithKeys(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, "iint x;")
	press(c, chix.KeyEsc)
	if c.GetMode() != chix.ModeEdit {
		t.Errorf("Unexpected mode %d", c.GetMode())
	}
	if text(c) != "int x;" {
		t.Errorf("Unexpected text %q", text(c))
	}
	if !c.Editor().Buffer.IsDirty() {
		t.Errorf("Buffer not dirty after typing")
	}
	typeKeys(c, "u")
	if text(c) != "" {
		t.Errorf("Undo left %q", text(c))
	}
}

func TestEditCommands(t *testing.T) {
	c := setup(t, "")
	path := filepath.Join(t.TempDir(), "e.c")
	os.WriteFile(path, []byte("one two three\nfour\nfive\n"), 0644)
	if err := c.OpenFile(path); err != nil {
		t.Fatalf("OpenFile failed: %+v", err)
	}
	typeKeys(c, "dw")
	if got := c.Editor().Buffer.TextAfter(0, 0); got != "two three" {
		t.Errorf("Unexpected text after dw: %q", got)
	}
	typeKeys(c, "jdd")
	if got := text(c); got != "two three\nfive\n" {
		t.Errorf("Unexpected text after dd: %q", got)
	}
	typeKeys(c, "kp")
	if got := text(c); got != "two three\nfour\nfive\n" {
		t.Errorf("Unexpected text after p: %q", got)
	}
	typeKeys(c, "2x")
	if got := c.Editor().Buffer.TextAfter(1, 0); got != "ur" {
		t.Errorf("Unexpected text after 2x: %q", got)
	}
	typeKeys(c, "uuuu")
	if got := text(c); got != "one two three\nfour\nfive\n" {
		t.Errorf("Undo did not restore the text: %q", got)
	}
}

func TestCommands(t *testing.T) {
	c := setup(t, "")
	path := filepath.Join(t.TempDir(), "prog")
	typeKeys(c, ":template\n")
	if !strings.Contains(text(c), "int main()") {
		t.Fatalf("Template missing: %q", text(c))
	}
	typeKeys(c, ":q\n")
	if c.GetMode() == chix.ModeQuit {
		t.Errorf("Quit with unsaved changes")
	}
	typeKeys(c, ":w "+path+"\n")
	saved, err := os.ReadFile(path + ".c")
	if err != nil {
		t.Fatalf("File not saved with the default extension: %+v", err)
	}
	if string(saved) != editor.StarterProgram {
		t.Errorf("Unexpected saved text %q", saved)
	}
	if c.Editor().Buffer.IsDirty() {
		t.Errorf("Buffer dirty after save")
	}
	typeKeys(c, ":5\n")
	if row := c.Editor().Cursor.Row; row != 4 {
		t.Errorf("Unexpected row %d", row)
	}
	typeKeys(c, ":nonsense\n")
	if !strings.HasPrefix(c.GetMessage(), "Unknown command") {
		t.Errorf("Unexpected message %q", c.GetMessage())
	}
	typeKeys(c, ":q\n")
	if c.GetMode() != chix.ModeQuit {
		t.Errorf("Did not quit")
	}
}

func TestDiscardNeedsConfirmation(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, "ihello")
	press(c, chix.KeyCtrlN)
	if text(c) != "hello" {
		t.Fatalf("Dirty document discarded without confirmation")
	}
	press(c, chix.KeyCtrlN)
	if text(c) != "" || c.Editor().Buffer.IsDirty() {
		t.Errorf("Document not replaced: %q", text(c))
	}

	typeKeys(c, "ibye")
	press(c, chix.KeyCtrlQ)
	typeKeys(c, "l")
	press(c, chix.KeyCtrlQ)
	if c.GetMode() == chix.ModeQuit {
		t.Errorf("Another key did not cancel the confirmation")
	}
	press(c, chix.KeyCtrlQ)
	if c.GetMode() != chix.ModeQuit {
		t.Errorf("Did not quit after confirmation")
	}
}

func TestSaveAsPrompt(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, "ix")
	press(c, chix.KeyCtrlS)
	if c.GetMode() != chix.ModePrompt {
		t.Fatalf("Saving an unnamed document did not prompt")
	}
	path := filepath.Join(t.TempDir(), "named")
	typeKeys(c, path+"\n")
	if c.Editor().Buffer.GetFileName() != path+".c" {
		t.Errorf("Unexpected file name %s", c.Editor().Buffer.GetFileName())
	}
	if b, err := os.ReadFile(path + ".c"); err != nil || string(b) != "x" {
		t.Errorf("Unexpected file contents %q %v", b, err)
	}
}

func TestCompileRunUnsavedDocument(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, "iint main(){return 0;}")
	press(c, chix.KeyCtrlR)
	if c.Running() || c.pipeline.Busy() {
		t.Errorf("Build started for an unsaved document")
	}
	if c.GetMode() != chix.ModePrompt {
		t.Errorf("No prompt to save")
	}
	select {
	case e := <-c.pipeline.Events():
		t.Errorf("Unexpected event %+v", e)
	default:
	}
}

func TestCompileRunWithoutToolchain(t *testing.T) {
	c := setup(t, "chix-no-such-compiler")
	path := filepath.Join(t.TempDir(), "a.c")
	os.WriteFile(path, []byte("int main(){return 0;}\n"), 0644)
	c.OpenFile(path)
	press(c, chix.KeyCtrlR)
	if c.GetNotice() == "" {
		t.Fatalf("No notice for a missing compiler")
	}
	typeKeys(c, "x")
	if c.GetNotice() != "" {
		t.Errorf("Notice not dismissed")
	}
	if text(c) != "int main(){return 0;}\n" {
		t.Errorf("Dismissing key reached the editor: %q", text(c))
	}
}

func TestPipelineEventsReachOutput(t *testing.T) {
	c := setup(t, "")
	p := c.Theme().Palette()
	c.running = true
	code := 3
	for _, e := range []compiler.Event{
		{Type: compiler.EventCompileStarted, SourcePath: "/x/a.c"},
		{Type: compiler.EventCompileFinished, Compile: &compiler.CompileResult{}},
		{Type: compiler.EventOutput, Phase: compiler.PhaseRun, Stream: compiler.Stdout, Text: "hel"},
		{Type: compiler.EventOutput, Phase: compiler.PhaseRun, Stream: compiler.Stdout, Text: "lo\n"},
		{Type: compiler.EventOutput, Phase: compiler.PhaseRun, Stream: compiler.Stderr, Text: "oops\n"},
		{Type: compiler.EventRunFinished, Run: &compiler.RunOutput{ExitCode: &code}},
		{Type: compiler.EventDone},
	} {
		c.ProcessPipelineEvent(e)
	}
	lines := c.Output().Lines()
	if len(lines) != 5 {
		t.Fatalf("Unexpected output %q", c.Output().Text())
	}
	if lines[0].Text != "Compiling a.c" || lines[2].Text != "hello" {
		t.Errorf("Unexpected output %q", c.Output().Text())
	}
	if lines[3].Text != "oops" || lines[3].Color != p.Error {
		t.Errorf("Stderr not shown as an error: %+v", lines[3])
	}
	if !strings.Contains(lines[4].Text, "code 3") {
		t.Errorf("Unexpected status %q", lines[4].Text)
	}
	if c.Running() {
		t.Errorf("Still running after EventDone")
	}
}

func TestCompileRunSavesAndRuns(t *testing.T) {
	if _, ok := compiler.CheckToolchainAvailable(); !ok {
		t.Skip("no C compiler installed")
	}
	c := setup(t, "")
	path := filepath.Join(t.TempDir(), "b.c")
	os.WriteFile(path, []byte("#include <stdio.h>\n"), 0644)
	c.OpenFile(path)
	typeKeys(c, "Goint main(){printf(\"hi\");return 2;}")
	press(c, chix.KeyEsc)
	press(c, chix.KeyCtrlR)
	if !c.Running() {
		t.Fatalf("Build did not start: %s", c.GetMessage())
	}
	if c.Editor().Buffer.IsDirty() {
		t.Errorf("Document not saved before building")
	}
	timeout := time.After(30 * time.Second)
	for c.Running() {
		select {
		case e := <-c.pipeline.Events():
			c.ProcessPipelineEvent(e)
		case <-timeout:
			t.Fatalf("Build did not finish: %q", c.Output().Text())
		}
	}
	output := c.Output().Text()
	if !strings.Contains(output, "Build succeeded") && !strings.Contains(output, "Build failed") {
		t.Errorf("No build status in %q", output)
	}
}

func TestThemes(t *testing.T) {
	c := setup(t, "")
	first := c.Theme().Name
	press(c, chix.KeyCtrlT)
	if c.Theme().Name == first {
		t.Errorf("Theme did not change")
	}
	typeKeys(c, ":theme monokai\n")
	if c.Theme().Name != "monokai" {
		t.Errorf("Unexpected theme %s", c.Theme().Name)
	}
	typeKeys(c, ":theme nope\n")
	if c.Theme().Name != "monokai" || !c.isError {
		t.Errorf("Unknown theme accepted")
	}
}

func TestStdinCommand(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, `:stdin 4 5\n6`+"\n")
	if got := c.pipeline.Runner().Stdin(); got != "4 5\n6\n" {
		t.Errorf("Unexpected stdin %q", got)
	}
	typeKeys(c, ":stdin\n")
	if got := c.pipeline.Runner().Stdin(); got != "" {
		t.Errorf("Stdin not cleared: %q", got)
	}
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(chix.Size{Rows: 30, Cols: 80}, 8)
	if l.Toolbar.Origin.Row != 0 || l.Message.Origin.Row != 29 {
		t.Errorf("Unexpected bars %+v", l)
	}
	if l.Output.Size.Rows != 9 || l.Editor.Size.Rows != 19 || l.Output.Origin.Row != 20 {
		t.Errorf("Unexpected areas %+v", l)
	}
	small := ComputeLayout(chix.Size{Rows: 10, Cols: 80}, 8)
	if small.Output.Size.Rows != 4 || small.Editor.Size.Rows != 4 {
		t.Errorf("Unexpected small layout %+v", small)
	}
}

func TestRender(t *testing.T) {
	c := setup(t, "")
	typeKeys(c, "ireturn 0;")
	press(c, chix.KeyEsc)
	d := newFakeDisplay(24, 100)
	c.Render(d, d.size)
	if toolbar := d.row(0); !strings.Contains(toolbar, "^R Compile&Run") || strings.Contains(toolbar, "Stop") {
		t.Errorf("Unexpected toolbar %q", toolbar)
	}
	if row := d.row(1); row != "return 0;" {
		t.Errorf("Unexpected first row %q", row)
	}
	keyword := c.Theme().Color(c.Theme().Syntax.Keyword)
	if got := d.colors[chix.Point{Row: 1, Col: 0}] &^ chix.ColorBold; got != keyword {
		t.Errorf("Keyword drawn in %d, expected %d", got, keyword)
	}
	layout := ComputeLayout(d.size, 8)
	info := d.row(layout.Editor.Origin.Row + layout.Editor.Size.Rows - 1)
	if !strings.Contains(info, "untitled [+]") {
		t.Errorf("Unexpected info bar %q", info)
	}
	if title := d.row(layout.Output.Origin.Row); !strings.Contains(title, "Output") {
		t.Errorf("Unexpected output title %q", title)
	}

	c.running = true
	c.Render(d, d.size)
	if toolbar := d.row(0); !strings.Contains(toolbar, "^K Stop") {
		t.Errorf("Stop missing while running: %q", toolbar)
	}
	if d.colors[chix.Point{Row: 0, Col: strings.Index(d.row(0), "^R")}] != c.Theme().Palette().Muted {
		t.Errorf("Compile&Run not disabled while running")
	}
}

func TestLisp(t *testing.T) {
	c := setup(t, "")
	path := filepath.Join(t.TempDir(), "l.c")
	os.WriteFile(path, []byte("a\nb\nc\n"), 0644)
	c.OpenFile(path)
	if got := c.ParseEval("(goto-line 3)"); got != "3" {
		t.Errorf("Unexpected goto-line result %q", got)
	}
	if c.Editor().Cursor.Row != 2 {
		t.Errorf("Unexpected row %d", c.Editor().Cursor.Row)
	}
	if _, err := c.EvalScript(`(insert "x") (message "done")`); err != nil {
		t.Fatalf("EvalScript failed: %+v", err)
	}
	if text(c) != "a\nb\nxc\n" || c.GetMessage() != "done" {
		t.Errorf("Unexpected state %q %q", text(c), c.GetMessage())
	}
	if got := c.ParseEval("(file-name)"); !strings.Contains(got, "l.c") {
		t.Errorf("Unexpected file name %q", got)
	}
	typeKeys(c, "(message \"typed\")\n")
	if c.GetMessage() != `"typed"` && c.GetMessage() != "typed" {
		t.Errorf("Unexpected message %q", c.GetMessage())
	}
}

func TestFormat(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix shell")
	}
	c := setup(t, "")
	c.SetFormatter([]string{"tr", "a-z", "A-Z"})
	typeKeys(c, "ireturn x;")
	press(c, chix.KeyEsc)
	typeKeys(c, ":format\n")
	if text(c) != "RETURN X;" {
		t.Fatalf("Unexpected formatted text %q (%s)", text(c), c.GetMessage())
	}
	typeKeys(c, "u")
	if text(c) != "return x;" {
		t.Errorf("Undo did not restore the text: %q", text(c))
	}

	c.SetFormatter([]string{"chix-no-such-formatter"})
	typeKeys(c, ":format\n")
	if !c.isError || text(c) != "return x;" {
		t.Errorf("Missing formatter changed the document: %q %q", text(c), c.GetMessage())
	}
}
