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
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/steelseries/golisp"

	chix "github.com/chixed/chix/types"
)

// Lisp primitives are global, so they act on the most recently created
// Commander.
var (
	lispOnce   sync.Once
	lispMutex  sync.Mutex
	lispTarget *Commander
)

func bindLisp(c *Commander) {
	lispMutex.Lock()
	lispTarget = c
	lispMutex.Unlock()
	lispOnce.Do(func() {
		golisp.MakePrimitiveFunction("new", "0", lispNew)
		golisp.MakePrimitiveFunction("open", "1", lispOpen)
		golisp.MakePrimitiveFunction("save", "0", lispSave)
		golisp.MakePrimitiveFunction("save-as", "1", lispSaveAs)
		golisp.MakePrimitiveFunction("compile-run", "0", lispCompileRun)
		golisp.MakePrimitiveFunction("stop", "0", lispStop)
		golisp.MakePrimitiveFunction("theme", "1", lispTheme)
		golisp.MakePrimitiveFunction("themes", "0", lispThemes)
		golisp.MakePrimitiveFunction("message", "1", lispMessage)
		golisp.MakePrimitiveFunction("goto-line", "1", lispGotoLine)
		golisp.MakePrimitiveFunction("insert", "1", lispInsert)
		golisp.MakePrimitiveFunction("file-name", "0", lispFileName)
		golisp.MakePrimitiveFunction("dirty?", "0", lispDirty)
		golisp.MakePrimitiveFunction("format-buffer", "0", lispFormatBuffer)
	})
}

func target() *Commander {
	lispMutex.Lock()
	defer lispMutex.Unlock()
	return lispTarget
}

func stringArgument(name string, args *golisp.Data) (string, error) {
	value := golisp.Car(args)
	if !golisp.StringP(value) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(value), nil
}

func lispNew(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c := target()
	if c.editor.Buffer.IsDirty() {
		return nil, errors.New("new: the document has unsaved changes")
	}
	c.NewDocument(true)
	return golisp.LispTrue, nil
}

func lispOpen(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArgument("open", args)
	if err != nil {
		return nil, err
	}
	c := target()
	if c.editor.Buffer.IsDirty() {
		return nil, errors.New("open: the document has unsaved changes")
	}
	if err := c.OpenFile(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func lispSave(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c := target()
	path := c.editor.Buffer.GetFileName()
	if path == "" {
		return nil, errors.New("save: the document has no file name")
	}
	if err := c.save(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(path), nil
}

func lispSaveAs(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	path, err := stringArgument("save-as", args)
	if err != nil {
		return nil, err
	}
	c := target()
	if err := c.SaveAs(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.editor.Buffer.GetFileName()), nil
}

func lispCompileRun(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c := target()
	c.CompileRun()
	return golisp.BooleanWithValue(c.running), nil
}

func lispStop(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c := target()
	running := c.running
	c.Stop()
	return golisp.BooleanWithValue(running), nil
}

func lispFormatBuffer(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c := target()
	c.Format()
	if c.isError {
		return nil, errors.New(c.message)
	}
	return golisp.StringWithValue(c.message), nil
}

func lispTheme(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	name, err := stringArgument("theme", args)
	if err != nil {
		return nil, err
	}
	if err := target().SetTheme(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(name), nil
}

func lispThemes(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	names := target().themes.Names()
	items := make([]*golisp.Data, 0, len(names))
	for _, name := range names {
		items = append(items, golisp.StringWithValue(name))
	}
	return golisp.ArrayToList(items), nil
}

func lispMessage(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArgument("message", args)
	if err != nil {
		return nil, err
	}
	target().setMessage("%s", text)
	return golisp.StringWithValue(text), nil
}

func lispGotoLine(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	value := golisp.Car(args)
	var line int
	switch {
	case golisp.IntegerP(value):
		line = int(golisp.IntegerValue(value))
	case golisp.FloatP(value):
		line = int(golisp.FloatValue(value))
	default:
		return nil, errors.New("goto-line requires a number")
	}
	e := target().editor
	e.MoveCursorToLine(line)
	return golisp.IntegerWithValue(int64(e.Cursor.Row + 1)), nil
}

func lispInsert(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text, err := stringArgument("insert", args)
	if err != nil {
		return nil, err
	}
	c := target()
	if c.mode == chix.ModeInsert {
		c.endInsert()
	}
	c.insertText(text)
	return golisp.StringWithValue(text), nil
}

func lispFileName(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.StringWithValue(target().editor.Buffer.GetFileName()), nil
}

func lispDirty(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return golisp.BooleanWithValue(target().editor.Buffer.IsDirty()), nil
}

// ParseEval evaluates a lisp expression and describes the result.
func (c *Commander) ParseEval(command string) string {
	bindLisp(c)
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		log.Printf("lisp: %s: %v", command, err)
		c.isError = true
		return err.Error()
	}
	c.isError = false
	return golisp.String(value)
}

// EvalScript evaluates every expression of a script in order.
func (c *Commander) EvalScript(script string) (string, error) {
	bindLisp(c)
	value, err := golisp.ParseAndEval("(begin " + strings.TrimSpace(script) + "\n)")
	if err != nil {
		return "", err
	}
	return golisp.String(value), nil
}
