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
	"fmt"
	"strconv"
	"strings"

	"github.com/chixed/chix/compiler"
	"github.com/chixed/chix/editor"
	"github.com/chixed/chix/highlight"
	"github.com/chixed/chix/operations"
	chix "github.com/chixed/chix/types"
)

// A prompt asks for a line of text in the message bar.
type prompt struct {
	label  string
	text   string
	action func(text string)
}

// The Commander converts user input into commands for the Editor.
type Commander struct {
	ctx      context.Context
	editor   *editor.Editor
	pipeline *compiler.Pipeline
	output   *editor.Output
	themes   *highlight.Themes
	theme    *highlight.Theme

	mode       int    // editor mode
	editKeys   string // edit key sequences in progress
	command    string // command as it is being typed on the command line
	searchText string // text for searches as it is being typed
	lispText   string // lisp command as it is being typed
	message    string // status message
	isError    bool   // the status message reports a failure
	notice     string // blocking notice, dismissed by any key
	prompt     *prompt
	multiplier string // multiplier string as it is being entered
	outputRows int    // rows of program output shown
	formatter  []string

	pending    string // action waiting for the user to confirm discarding changes
	confirming string // the pending action while a key is processed
	running    bool   // a build is in progress
}

func NewCommander(ctx context.Context, e *editor.Editor, p *compiler.Pipeline, themes *highlight.Themes) *Commander {
	c := &Commander{
		ctx:        ctx,
		editor:     e,
		pipeline:   p,
		output:     editor.NewOutput(),
		themes:     themes,
		mode:       chix.ModeEdit,
		outputRows: 8,
		formatter:  []string{"clang-format"},
	}
	c.theme = themes.DefaultTheme()
	c.refreshHighlighter()
	bindLisp(c)
	return c
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) Editor() *editor.Editor {
	return c.editor
}

func (c *Commander) Output() *editor.Output {
	return c.output
}

func (c *Commander) Theme() *highlight.Theme {
	return c.theme
}

func (c *Commander) SetOutputRows(rows int) {
	if rows > 0 {
		c.outputRows = rows
	}
}

// SetFormatter sets the command that formats the document.
func (c *Commander) SetFormatter(command []string) {
	if len(command) > 0 {
		c.formatter = command
	}
}

// Running reports whether a build started by this commander is in progress.
func (c *Commander) Running() bool {
	return c.running
}

func (c *Commander) setMessage(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
	c.isError = false
}

func (c *Commander) setError(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
	c.isError = true
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) GetNotice() string {
	return c.notice
}

func (c *Commander) ProcessEvent(event *chix.Event) error {
	switch event.Type {
	case chix.EventKey:
		return c.ProcessKey(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessKey(event *chix.Event) error {
	c.confirming, c.pending = c.pending, ""
	if c.notice != "" {
		c.notice = ""
		return nil
	}
	if c.mode == chix.ModeEdit || c.mode == chix.ModeInsert {
		if c.processShortcut(event) {
			return nil
		}
	}
	switch c.mode {
	case chix.ModeEdit:
		c.ProcessKeyEditMode(event)
	case chix.ModeInsert:
		c.ProcessKeyInsertMode(event)
	case chix.ModeCommand:
		c.command = c.processLine(event, c.command, c.PerformCommand)
	case chix.ModeSearch:
		c.searchText = c.processLine(event, c.searchText, func() {
			if !c.editor.PerformSearch(c.searchText) {
				c.setMessage("Not found: %s", c.searchText)
			}
		})
	case chix.ModeLisp:
		c.lispText = c.processLine(event, c.lispText, func() {
			c.message = c.ParseEval(c.lispText)
		})
	case chix.ModePrompt:
		p := c.prompt
		if p == nil {
			c.mode = chix.ModeEdit
			break
		}
		p.text = c.processLine(event, p.text, func() {
			c.prompt = nil
			p.action(strings.TrimSpace(p.text))
		})
		// the action may have opened another prompt
		if c.mode != chix.ModePrompt && c.prompt == p {
			c.prompt = nil
		}
	}
	return nil
}

// processShortcut handles the control keys of the toolbar.
func (c *Commander) processShortcut(event *chix.Event) bool {
	var action func()
	switch event.Key {
	case chix.KeyCtrlN:
		action = func() { c.NewDocument(false) }
	case chix.KeyCtrlO:
		action = func() { c.OpenPrompt(false) }
	case chix.KeyCtrlS:
		action = c.Save
	case chix.KeyCtrlW:
		action = c.SaveAsPrompt
	case chix.KeyCtrlR:
		action = c.CompileRun
	case chix.KeyCtrlK:
		action = c.Stop
	case chix.KeyCtrlT:
		action = c.NextTheme
	case chix.KeyCtrlQ:
		action = func() { c.Quit(false) }
	default:
		return false
	}
	if c.mode == chix.ModeInsert {
		c.endInsert()
	}
	c.editKeys = ""
	c.multiplier = ""
	action()
	return true
}

func (c *Commander) endInsert() {
	c.editor.CloseInsert()
	c.mode = chix.ModeEdit
	c.editor.KeepCursorInRow()
}

func (c *Commander) ProcessKeyEditMode(event *chix.Event) {
	e := c.editor

	key := event.Key
	ch := event.Ch

	// multikey commands have highest precedence
	if len(c.editKeys) > 0 {
		switch c.editKeys {
		case "c":
			switch ch {
			case 'w':
				e.Perform(&operations.ChangeWord{Commander: c}, c.Multiplier())
			}
		case "d":
			switch ch {
			case 'd':
				e.Perform(&operations.DeleteRow{}, c.Multiplier())
			case 'w':
				e.Perform(&operations.DeleteWord{}, c.Multiplier())
			}
		case "r":
			if key == chix.KeySpace {
				e.Perform(&operations.ReplaceCharacter{Character: ' '}, c.Multiplier())
			} else if key == chix.KeyTab {
				e.Perform(&operations.ReplaceCharacter{Character: '\t'}, c.Multiplier())
			} else if ch != 0 {
				e.Perform(&operations.ReplaceCharacter{Character: ch}, c.Multiplier())
			}
		case "y":
			switch ch {
			case 'y':
				e.YankRow(c.Multiplier())
			}
		}
		c.editKeys = ""
		return
	}
	switch key {
	case chix.KeyEsc:
		c.multiplier = ""
	case chix.KeyCtrlB, chix.KeyPgup:
		e.PageUp(c.Multiplier())
	case chix.KeyCtrlF, chix.KeyPgdn:
		e.PageDown(c.Multiplier())
	case chix.KeyCtrlA, chix.KeyHome:
		e.MoveToBeginningOfLine()
	case chix.KeyCtrlE, chix.KeyEnd:
		e.MoveToEndOfLine()
	case chix.KeyArrowUp:
		e.MoveCursor(chix.MoveUp, c.Multiplier())
	case chix.KeyArrowDown:
		e.MoveCursor(chix.MoveDown, c.Multiplier())
	case chix.KeyArrowLeft:
		e.MoveCursor(chix.MoveLeft, c.Multiplier())
	case chix.KeyArrowRight, chix.KeySpace:
		e.MoveCursor(chix.MoveRight, c.Multiplier())
	case chix.KeyDelete:
		e.Perform(&operations.DeleteCharacter{}, c.Multiplier())
	case chix.KeyCtrlU:
		c.output.Scroll(c.outputRows / 2)
	case chix.KeyCtrlD:
		c.output.Scroll(-c.outputRows / 2)
	}
	if ch == 0 {
		return
	}
	switch ch {
	//
	// command multipliers are saved when operations are created
	//
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		c.multiplier += string(ch)
	case '0':
		if c.multiplier == "" {
			e.MoveToBeginningOfLine()
		} else {
			c.multiplier += string(ch)
		}
	case '$':
		e.MoveToEndOfLine()
	//
	// commands, searches and lisp go to the message bar
	//
	case ':':
		c.mode = chix.ModeCommand
		c.command = ""
	case '/':
		c.mode = chix.ModeSearch
		c.searchText = ""
	case 'n':
		e.PerformSearch(c.searchText)
	case '(':
		c.mode = chix.ModeLisp
		c.lispText = "("
	//
	// cursor movement isn't logged
	//
	case 'h':
		e.MoveCursor(chix.MoveLeft, c.Multiplier())
	case 'j':
		e.MoveCursor(chix.MoveDown, c.Multiplier())
	case 'k':
		e.MoveCursor(chix.MoveUp, c.Multiplier())
	case 'l':
		e.MoveCursor(chix.MoveRight, c.Multiplier())
	case 'G':
		if c.multiplier == "" {
			e.MoveCursorToLine(e.Buffer.GetRowCount())
		} else {
			e.MoveCursorToLine(c.Multiplier())
		}
	//
	// "performed" operations are saved for undo and repetition
	//
	case 'i':
		e.Perform(&operations.Insert{Position: chix.InsertAtCursor, Commander: c}, c.Multiplier())
	case 'a':
		e.Perform(&operations.Insert{Position: chix.InsertAfterCursor, Commander: c}, c.Multiplier())
	case 'I':
		e.Perform(&operations.Insert{Position: chix.InsertAtStartOfLine, Commander: c}, c.Multiplier())
	case 'A':
		e.Perform(&operations.Insert{Position: chix.InsertAfterEndOfLine, Commander: c}, c.Multiplier())
	case 'o':
		e.Perform(&operations.Insert{Position: chix.InsertAtNewLineBelowCursor, Commander: c}, c.Multiplier())
	case 'O':
		e.Perform(&operations.Insert{Position: chix.InsertAtNewLineAboveCursor, Commander: c}, c.Multiplier())
	case 'x':
		e.Perform(&operations.DeleteCharacter{}, c.Multiplier())
	case 'J':
		e.Perform(&operations.JoinLine{}, c.Multiplier())
	case 'p':
		e.Perform(&operations.Paste{}, c.Multiplier())
	case '~':
		e.Perform(&operations.ReverseCaseCharacter{}, c.Multiplier())
	//
	// a few keys open multi-key commands
	//
	case 'c', 'd', 'y', 'r':
		c.editKeys = string(ch)
	case 'u':
		if e.CanUndo() {
			e.PerformUndo()
		} else {
			c.setMessage("Nothing to undo")
		}
	case '.':
		e.Repeat()
	}
}

func (c *Commander) ProcessKeyInsertMode(event *chix.Event) {
	e := c.editor

	switch event.Key {
	case chix.KeyEsc:
		c.endInsert()
	case chix.KeyBackspace, chix.KeyBackspace2:
		e.BackspaceChar()
	case chix.KeyTab:
		e.InsertChar('\t')
	case chix.KeyEnter:
		e.InsertChar('\n')
	case chix.KeySpace:
		e.InsertChar(' ')
	case chix.KeyArrowUp, chix.KeyArrowDown, chix.KeyArrowLeft, chix.KeyArrowRight:
		// an insert covers contiguous text, so moving starts a new one
		e.CloseInsert()
		e.MoveCursorInInsert(insertDirection(event.Key))
		e.Perform(&operations.Insert{Position: chix.InsertAtCursor, Commander: c}, 1)
	}
	if event.Ch != 0 {
		e.InsertChar(event.Ch)
	}
}

func insertDirection(key chix.Key) int {
	switch key {
	case chix.KeyArrowUp:
		return chix.MoveUp
	case chix.KeyArrowDown:
		return chix.MoveDown
	case chix.KeyArrowLeft:
		return chix.MoveLeft
	}
	return chix.MoveRight
}

// processLine edits a line being typed in the message bar.
func (c *Commander) processLine(event *chix.Event, line string, enter func()) string {
	switch event.Key {
	case chix.KeyEsc:
		c.mode = chix.ModeEdit
		return ""
	case chix.KeyEnter:
		c.mode = chix.ModeEdit
		enter()
		return ""
	case chix.KeyBackspace, chix.KeyBackspace2:
		if line == "" {
			c.mode = chix.ModeEdit
			return ""
		}
		r := []rune(line)
		return string(r[:len(r)-1])
	case chix.KeySpace:
		return line + " "
	}
	if event.Ch != 0 {
		return line + string(event.Ch)
	}
	return line
}

func (c *Commander) PerformCommand() {
	e := c.editor
	command := strings.TrimSpace(c.command)
	c.command = ""
	if command == "" {
		return
	}
	name, argument, _ := strings.Cut(command, " ")
	argument = strings.TrimSpace(argument)

	if line, err := strconv.Atoi(name); err == nil {
		e.MoveCursorToLine(line)
		return
	}
	switch name {
	case "$":
		e.MoveCursorToLine(e.Buffer.GetRowCount())
	case "w":
		if argument != "" {
			c.SaveAs(argument)
		} else {
			c.Save()
		}
	case "wq", "x":
		if argument != "" {
			c.SaveAs(argument)
		} else {
			c.Save()
		}
		if !e.Buffer.IsDirty() {
			c.Quit(true)
		}
	case "q":
		if e.Buffer.IsDirty() {
			c.setError("No write since last change (add ! to discard)")
			return
		}
		c.Quit(true)
	case "q!":
		c.Quit(true)
	case "e", "e!":
		if argument == "" {
			c.setError("Usage: :e <file>")
			return
		}
		if name == "e" && e.Buffer.IsDirty() {
			c.setError("No write since last change (add ! to discard)")
			return
		}
		c.OpenFile(argument)
	case "new", "new!":
		if name == "new" && e.Buffer.IsDirty() {
			c.setError("No write since last change (add ! to discard)")
			return
		}
		c.NewDocument(true)
	case "run", "make":
		c.CompileRun()
	case "stop":
		c.Stop()
	case "theme":
		if argument == "" {
			c.NextTheme()
		} else if err := c.SetTheme(argument); err != nil {
			c.setError("%v", err)
		}
	case "themes":
		c.setMessage("Themes: %s", strings.Join(c.themes.Names(), " "))
	case "stdin":
		c.SetStdin(argument)
	case "cc":
		c.Toolchain(argument)
	case "format":
		c.Format()
	case "clear":
		c.output.Clear()
	case "template":
		if e.InsertTemplate() {
			c.setMessage("Inserted starter program")
		} else {
			c.setError("The template goes into an empty document")
		}
	default:
		c.setError("Unknown command: %s", name)
	}
}

func (c *Commander) Multiplier() int {
	if c.multiplier == "" {
		return 1
	}
	i, err := strconv.ParseInt(c.multiplier, 10, 64)
	c.multiplier = ""
	if err != nil || i < 1 {
		return 1
	}
	return int(i)
}

func (c *Commander) GetSearchText() string {
	return c.searchText
}

func (c *Commander) GetLispText() string {
	return c.lispText
}

func (c *Commander) GetCommand() string {
	return c.command
}

// insertText inserts text at the cursor as one undoable operation.
func (c *Commander) insertText(text string) {
	if text == "" {
		return
	}
	c.editor.Perform(&operations.Insert{Position: chix.InsertAtCursor, Text: text}, 1)
}
