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
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chixed/chix/commander"
	"github.com/chixed/chix/compiler"
	"github.com/chixed/chix/config"
	"github.com/chixed/chix/editor"
	"github.com/chixed/chix/highlight"
	"github.com/chixed/chix/screen"
	chix "github.com/chixed/chix/types"
)

const usage = "usage: chix [--theme name] [--eval script.lisp] [file.c]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var filename, script string
	for i := 1; i < len(os.Args); i++ {
		argi := os.Args[i]
		switch argi {
		case "--eval": // eval program
			i++
			if i >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "No file specified for --eval option")
				os.Exit(2)
			}
			script = os.Args[i]
		case "--theme":
			i++
			if i >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "No name specified for --theme option")
				os.Exit(2)
			}
			cfg.Theme = os.Args[i]
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if filename != "" {
				fmt.Fprintln(os.Stderr, usage)
				os.Exit(2)
			}
			filename = argi
		}
	}

	// Open a log file.
	f, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	log.SetOutput(f)

	themes, err := highlight.LoadThemes()
	if err != nil {
		log.Fatalf("loading themes: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The editor manages all text manipulation.
	e := editor.NewEditor()
	e.SetTabWidth(cfg.TabWidth)

	// The pipeline compiles and runs programs in the background.
	runner := compiler.NewRunner(cfg.Compiler, cfg.CFlags)
	runner.CompileTimeout = cfg.CompileTimeout
	runner.RunTimeout = cfg.RunTimeout
	p := compiler.NewPipeline(runner)

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(ctx, e, p, themes)
	c.SetOutputRows(cfg.OutputRows)
	c.SetFormatter(cfg.Formatter)
	if err := c.SetTheme(cfg.Theme); err != nil {
		log.Printf("%v", err)
	}

	if filename != "" {
		c.OpenFile(filename)
	}

	if script != "" {
		// Run a chix script and exit.
		if err := runScript(c, p, script); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	s, err := screen.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	keys := make(chan *chix.Event)
	go func() {
		for {
			keys <- s.GetNextEvent()
		}
	}()

	// Run the main event loop.
	for c.GetMode() != chix.ModeQuit {
		s.Render(c)
		select {
		case event := <-keys:
			if err := c.ProcessEvent(event); err != nil {
				log.Printf("%v", err)
			}
		case event := <-p.Events():
			c.ProcessPipelineEvent(event)
		}
	}
	cancel()
	finish(c, p, 2*time.Second)
}

// runScript evaluates a script without a screen and prints what it produced.
func runScript(c *commander.Commander, p *compiler.Pipeline, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := c.EvalScript(string(b)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	finish(c, p, 0)
	if text := c.Output().Text(); text != "" {
		fmt.Println(text)
	}
	if message := c.GetMessage(); message != "" {
		fmt.Println(message)
	}
	return nil
}

// finish delivers pipeline events until the running build is done, waiting
// at most timeout when it is positive.
func finish(c *commander.Commander, p *compiler.Pipeline, timeout time.Duration) {
	var deadline <-chan time.Time
	if timeout > 0 {
		deadline = time.After(timeout)
	}
	for c.Running() {
		select {
		case event := <-p.Events():
			c.ProcessPipelineEvent(event)
		case <-deadline:
			log.Printf("build still running at exit")
			return
		}
	}
}
