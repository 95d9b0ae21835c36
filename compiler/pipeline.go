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
package compiler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Phase names the step of a pipeline.
type Phase int

const (
	PhaseCompile Phase = iota
	PhaseRun
)

func (p Phase) String() string {
	switch p {
	case PhaseCompile:
		return "compile"
	case PhaseRun:
		return "run"
	}
	return "unknown"
}

// Stream names an output stream of a program.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

type EventType int

const (
	EventCompileStarted EventType = iota
	EventCompileFinished
	EventOutput
	EventRunFinished
	EventFailed
	EventDone
)

// An Event reports the progress of a pipeline.
type Event struct {
	Type       EventType
	Phase      Phase
	SourcePath string
	Stream     Stream         // EventOutput
	Text       string         // EventOutput
	Compile    *CompileResult // EventCompileFinished
	Run        *RunOutput     // EventRunFinished, and EventFailed when a run was cut short
	Err        error          // EventFailed
}

const eventBufferSize = 256

// A Pipeline compiles a saved source file and runs the program it produces.
type Pipeline struct {
	runner *Runner
	events chan Event
	// TempDir is where build directories are made. Empty means os.TempDir().
	TempDir string

	mu     sync.Mutex
	busy   bool
	cancel context.CancelFunc
}

func NewPipeline(runner *Runner) *Pipeline {
	return &Pipeline{
		runner: runner,
		events: make(chan Event, eventBufferSize),
	}
}

func (p *Pipeline) Runner() *Runner {
	return p.runner
}

// Events delivers the events of every pipeline started. Each pipeline
// ends with an EventDone.
func (p *Pipeline) Events() <-chan Event {
	return p.events
}

func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Stop cancels the running pipeline, if there is one.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Start checks that sourcePath can be built and starts building it in the
// background. Nothing is started when an error is returned.
func (p *Pipeline) Start(ctx context.Context, sourcePath string) error {
	if sourcePath == "" {
		return ErrSourceUnsaved
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrBusy
	}
	if _, err := p.runner.Compiler(); err != nil {
		return err
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	// Build from a private copy so that later edits and saves don't
	// affect this build.
	tempDir := p.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	dir := filepath.Join(tempDir, "chix-build-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}
	snapshot := filepath.Join(dir, filepath.Base(sourcePath))
	if err := os.WriteFile(snapshot, source, 0600); err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("copying source: %w", err)
	}

	// events are dropped only once the caller is gone
	closed := ctx.Done()
	ctx, cancel := context.WithCancel(ctx)
	p.busy = true
	p.cancel = cancel
	b := &build{
		pipeline:   p,
		closed:     closed,
		dir:        dir,
		sourcePath: sourcePath,
		snapshot:   snapshot,
	}
	go b.run(ctx, cancel)
	return nil
}

type build struct {
	pipeline   *Pipeline
	closed     <-chan struct{}
	dir        string
	sourcePath string
	snapshot   string
}

func (b *build) emit(e Event) {
	e.SourcePath = b.sourcePath
	select {
	case b.pipeline.events <- e:
		return
	default:
	}
	select {
	case b.pipeline.events <- e:
	case <-b.closed:
		log.Printf("no reader for %s events; dropped event %d", b.sourcePath, e.Type)
	}
}

// rewrite replaces the snapshot path in compiler messages with the path
// the user knows.
func (b *build) rewrite(s string) string {
	return strings.ReplaceAll(s, b.snapshot, b.sourcePath)
}

func (b *build) run(ctx context.Context, cancel context.CancelFunc) {
	p := b.pipeline
	defer func() {
		cancel()
		if err := os.RemoveAll(b.dir); err != nil {
			log.Printf("removing %s: %v", b.dir, err)
		}
		p.mu.Lock()
		p.busy = false
		p.cancel = nil
		p.mu.Unlock()
		b.emit(Event{Type: EventDone})
	}()

	log.Printf("compiling %s", b.sourcePath)
	b.emit(Event{Type: EventCompileStarted, Phase: PhaseCompile})
	executable := filepath.Join(b.dir, executableName("program"))
	result, err := p.runner.Compile(ctx, b.snapshot, executable)
	if err != nil {
		b.emit(Event{Type: EventFailed, Phase: PhaseCompile, Err: err})
		return
	}
	result.Stdout = b.rewrite(result.Stdout)
	result.Stderr = b.rewrite(result.Stderr)
	if result.Stdout != "" {
		b.emit(Event{Type: EventOutput, Phase: PhaseCompile, Stream: Stdout, Text: result.Stdout})
	}
	if result.Stderr != "" {
		b.emit(Event{Type: EventOutput, Phase: PhaseCompile, Stream: Stderr, Text: result.Stderr})
	}
	b.emit(Event{Type: EventCompileFinished, Phase: PhaseCompile, Compile: result})
	if result.ExitCode != 0 || result.ProducedBinaryPath == "" {
		log.Printf("compile of %s failed with exit code %d", b.sourcePath, result.ExitCode)
		return
	}

	log.Printf("running %s", b.sourcePath)
	output, err := p.runner.Run(ctx, result.ProducedBinaryPath,
		&eventWriter{build: b, stream: Stdout},
		&eventWriter{build: b, stream: Stderr})
	if err != nil {
		b.emit(Event{Type: EventFailed, Phase: PhaseRun, Run: output, Err: err})
		return
	}
	b.emit(Event{Type: EventRunFinished, Phase: PhaseRun, Run: output})
}

// An eventWriter turns program output into events.
type eventWriter struct {
	build  *build
	stream Stream
}

func (w *eventWriter) Write(b []byte) (int, error) {
	w.build.emit(Event{Type: EventOutput, Phase: PhaseRun, Stream: w.stream, Text: string(b)})
	return len(b), nil
}
