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
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/chixed/chix/compiler"
	"github.com/chixed/chix/highlight"
	"github.com/chixed/chix/operations"
	chix "github.com/chixed/chix/types"
)

// discardConfirmed reports whether an action that replaces the document
// may go ahead. A dirty document needs the action to be asked for twice.
func (c *Commander) discardConfirmed(action, again string) bool {
	if !c.editor.Buffer.IsDirty() || c.confirming == action {
		return true
	}
	c.pending = action
	c.setError("%s has unsaved changes; press %s again to discard them", c.editor.Buffer.GetName(), again)
	return false
}

func (c *Commander) startPrompt(label, text string, action func(string)) {
	c.prompt = &prompt{label: label, text: text, action: action}
	c.mode = chix.ModePrompt
}

func (c *Commander) refreshHighlighter() {
	c.editor.SetHighlighter(highlight.NewHighlighter(c.editor.Buffer.GetFileName(), c.theme))
}

// NewDocument replaces the document with an empty one.
func (c *Commander) NewDocument(force bool) {
	if !force && !c.discardConfirmed("new", "^N") {
		return
	}
	c.editor.New()
	c.refreshHighlighter()
	c.setMessage("New document")
}

// OpenPrompt asks for a file to open.
func (c *Commander) OpenPrompt(force bool) {
	if !force && !c.discardConfirmed("open", "^O") {
		return
	}
	c.startPrompt("Open: ", "", func(path string) {
		if path != "" {
			c.OpenFile(path)
		}
	})
}

// OpenFile replaces the document with the contents of path. A path that
// does not exist yet gives an empty document that will be saved there.
func (c *Commander) OpenFile(path string) error {
	err := c.editor.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c.editor.New()
		c.editor.Buffer.SetFileName(path)
		c.refreshHighlighter()
		c.setMessage("%s [new file]", path)
		return nil
	}
	if err != nil {
		log.Printf("opening %s: %v", path, err)
		c.setError("Can't open %s: %v", path, err)
		return err
	}
	c.refreshHighlighter()
	c.setMessage("%s: %d lines", path, c.editor.Buffer.GetRowCount())
	return nil
}

// Save writes the document to its file, asking for a name if it has none.
func (c *Commander) Save() {
	if c.editor.Buffer.GetFileName() == "" {
		c.SaveAsPrompt()
		return
	}
	c.save(c.editor.Buffer.GetFileName())
}

func (c *Commander) SaveAsPrompt() {
	c.startPrompt("Save as: ", c.editor.Buffer.GetFileName(), func(path string) {
		if path != "" {
			c.SaveAs(path)
		}
	})
}

// SaveAs writes the document to path, adding .c when path has no extension.
func (c *Commander) SaveAs(path string) error {
	path, err := c.editor.SaveAs(path)
	if err != nil {
		log.Printf("saving %s: %v", path, err)
		c.setError("Can't save %s: %v", path, err)
		return err
	}
	c.refreshHighlighter()
	c.setMessage("Saved %s", path)
	return nil
}

func (c *Commander) save(path string) error {
	if err := c.editor.WriteFile(path); err != nil {
		log.Printf("saving %s: %v", path, err)
		c.setError("Can't save %s: %v", path, err)
		return err
	}
	c.setMessage("Saved %s", path)
	return nil
}

// CompileRun saves the document and starts compiling and running it.
func (c *Commander) CompileRun() {
	if c.running {
		c.setError("A build is already running; ^K stops it")
		return
	}
	b := c.editor.Buffer
	if b.GetFileName() != "" && b.IsDirty() {
		if err := c.save(b.GetFileName()); err != nil {
			return
		}
	}
	err := c.pipeline.Start(c.ctx, b.GetFileName())
	switch {
	case err == nil:
		c.running = true
		c.output.Clear()
		c.setMessage("Building %s", b.GetName())
	case errors.Is(err, compiler.ErrSourceUnsaved):
		c.setError("Save the file before compiling")
		c.startPrompt("Save as: ", "", func(path string) {
			if path != "" && c.SaveAs(path) == nil {
				c.CompileRun()
			}
		})
	case errors.Is(err, compiler.ErrToolchainMissing):
		log.Printf("compile: %v", err)
		c.notice = "No C compiler was found. Install gcc or clang, or set CC to the compiler to use."
	case errors.Is(err, compiler.ErrBusy):
		c.setError("A build is already running; ^K stops it")
	default:
		log.Printf("compile: %v", err)
		c.setError("Can't build: %v", err)
	}
}

// Format runs the formatter over the document as one undoable change.
func (c *Commander) Format() {
	e := c.editor
	formatted, err := compiler.Format(c.ctx, c.formatter, e.Buffer.GetFileName(), e.Bytes())
	if err != nil {
		log.Printf("format: %v", err)
		c.setError("%v", err)
		return
	}
	e.CloseInsert()
	e.Perform(&operations.ReplaceText{Text: string(formatted)}, 1)
	c.setMessage("Formatted with %s", filepath.Base(c.formatter[0]))
}

// Stop ends the running build.
func (c *Commander) Stop() {
	if !c.running {
		c.setMessage("Nothing is running")
		return
	}
	c.pipeline.Stop()
	c.setMessage("Stopping")
}

// Quit ends the session, stopping any build.
func (c *Commander) Quit(force bool) {
	if !force && !c.discardConfirmed("quit", "^Q") {
		return
	}
	c.pipeline.Stop()
	c.mode = chix.ModeQuit
}

func (c *Commander) NextTheme() {
	c.theme = c.themes.Next(c.theme.Name)
	c.refreshHighlighter()
	c.setMessage("Theme: %s", c.theme.Name)
}

func (c *Commander) SetTheme(name string) error {
	theme, ok := c.themes.Get(name)
	if !ok {
		return fmt.Errorf("unknown theme %q (try :themes)", name)
	}
	c.theme = theme
	c.refreshHighlighter()
	c.setMessage("Theme: %s", c.theme.Name)
	return nil
}

// SetStdin sets the input given to programs. A literal \n is a newline.
func (c *Commander) SetStdin(text string) {
	text = strings.ReplaceAll(text, `\n`, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	c.pipeline.Runner().SetStdin(text)
	if text == "" {
		c.setMessage("Programs get no input")
	} else {
		c.setMessage("Programs read: %q", text)
	}
}

// Toolchain shows the compiler, or selects another one.
func (c *Commander) Toolchain(name string) {
	r := c.pipeline.Runner()
	if name != "" {
		r.SetCompiler(name)
	}
	path, err := r.Compiler()
	if err != nil {
		c.setError("%v", err)
		return
	}
	c.setMessage("Compiler: %s %s", path, strings.Join(r.Flags, " "))
}

// ProcessPipelineEvent shows the progress of a build.
func (c *Commander) ProcessPipelineEvent(event compiler.Event) {
	p := c.theme.Palette()
	name := filepath.Base(event.SourcePath)
	switch event.Type {
	case compiler.EventCompileStarted:
		c.output.AppendLine(fmt.Sprintf("Compiling %s", name), p.Muted)
	case compiler.EventOutput:
		color := chix.ColorDefault
		if event.Stream == compiler.Stderr {
			color = p.Error
		}
		c.output.Append(event.Text, color)
	case compiler.EventCompileFinished:
		result := event.Compile
		if result.ExitCode == 0 {
			c.output.AppendLine(fmt.Sprintf("Build succeeded in %s", seconds(result.Duration)), p.Success)
		} else {
			c.output.AppendLine(fmt.Sprintf("Build failed with exit code %d", result.ExitCode), p.Error)
			c.setError("Build failed")
		}
	case compiler.EventRunFinished:
		run := event.Run
		color := p.Success
		if run.ExitCode != nil && *run.ExitCode != 0 {
			color = p.Warning
		}
		code := "?"
		if run.ExitCode != nil {
			code = fmt.Sprintf("%d", *run.ExitCode)
		}
		c.output.AppendLine(fmt.Sprintf("Program exited with code %s in %s", code, seconds(run.Duration)), color)
		c.setMessage("%s finished", name)
	case compiler.EventFailed:
		log.Printf("%s of %s failed: %v", event.Phase, name, event.Err)
		if errors.Is(event.Err, compiler.ErrStopped) {
			c.output.AppendLine("Stopped", p.Warning)
			c.setMessage("Stopped")
			return
		}
		label := "Compile"
		if event.Phase == compiler.PhaseRun {
			label = "Run"
		}
		c.output.AppendLine(fmt.Sprintf("%s failed: %v", label, event.Err), p.Error)
		c.setError("%s failed", label)
		if errors.Is(event.Err, compiler.ErrSpawnFailed) {
			c.notice = fmt.Sprintf("Could not start the %s: %v", event.Phase, event.Err)
		}
	case compiler.EventDone:
		c.running = false
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
