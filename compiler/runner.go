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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// A CompileResult describes a finished compile.
type CompileResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// ProducedBinaryPath is set only when the compile succeeded and the
	// binary exists.
	ProducedBinaryPath string
	Duration           time.Duration
}

// A RunOutput describes a program run.
type RunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode *int // nil when the program did not exit normally
	Duration time.Duration
}

// A Runner compiles and runs C programs.
type Runner struct {
	Candidates     []string
	Flags          []string
	CompileTimeout time.Duration // zero means no limit
	RunTimeout     time.Duration // zero means no limit

	mu       sync.Mutex
	compiler string
	stdin    string
}

// NewRunner returns a runner for the named compiler, or for the first of
// the default compilers found when name is empty.
func NewRunner(name string, flags []string) *Runner {
	r := &Runner{Flags: flags}
	if name != "" {
		r.Candidates = []string{name}
	}
	return r
}

// Compiler returns the path of the compiler, looking for it the first time
// it is needed.
func (r *Runner) Compiler() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.compiler != "" {
		return r.compiler, nil
	}
	path, ok := CheckToolchainAvailable(r.Candidates...)
	if !ok {
		names := r.Candidates
		if len(names) == 0 {
			names = DefaultCandidates
		}
		return "", fmt.Errorf("%w (looked for %s)", ErrToolchainMissing, strings.Join(names, ", "))
	}
	r.compiler = path
	return path, nil
}

// SetCompiler changes the compiler; it is looked for on next use.
func (r *Runner) SetCompiler(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compiler = ""
	r.Candidates = nil
	if name != "" {
		r.Candidates = []string{name}
	}
}

// SetStdin sets the text given to programs on standard input.
func (r *Runner) SetStdin(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stdin = text
}

func (r *Runner) Stdin() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stdin
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// interrupted explains why a command stopped early, if it did.
func interrupted(ctx, cmdCtx context.Context, limit time.Duration) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrStopped, ctx.Err())
	}
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrTimeout, limit)
	}
	return nil
}

// Compile compiles sourcePath into outputPath. A compile that fails because
// of the source is a result with a non-zero exit code, not an error.
func (r *Runner) Compile(ctx context.Context, sourcePath, outputPath string) (*CompileResult, error) {
	if sourcePath == "" {
		return nil, ErrSourceUnsaved
	}
	cc, err := r.Compiler()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	f.Close()
	// a failed build must not leave an older binary behind
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("removing %s: %w", outputPath, err)
	}

	cmdCtx, cancel := withTimeout(ctx, r.CompileTimeout)
	defer cancel()

	args := make([]string, 0, len(r.Flags)+3)
	args = append(args, r.Flags...)
	args = append(args, sourcePath, "-o", outputPath)
	cmd := exec.CommandContext(cmdCtx, cc, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	result := &CompileResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		if stop := interrupted(ctx, cmdCtx, r.CompileTimeout); stop != nil {
			return result, stop
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, cc, err)
		}
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if info, err := os.Stat(outputPath); err == nil && !info.IsDir() {
		result.ProducedBinaryPath = outputPath
	}
	return result, nil
}

// Run runs a program, copying its output to stdout and stderr as it is
// written. Either writer may be nil. A program that exits with a non-zero
// code is a result, not an error.
func (r *Runner) Run(ctx context.Context, executablePath string, stdout, stderr io.Writer) (*RunOutput, error) {
	cmdCtx, cancel := withTimeout(ctx, r.RunTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, executablePath)
	cmd.Stdin = strings.NewReader(r.Stdin())
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = tee(&outBuf, stdout)
	cmd.Stderr = tee(&errBuf, stderr)
	// don't wait forever on pipes held open by the program's children
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	output := &RunOutput{Duration: time.Since(start)}
	collect := func() {
		output.Stdout = outBuf.String()
		output.Stderr = errBuf.String()
	}
	if err == nil {
		collect()
		code := 0
		output.ExitCode = &code
		return output, nil
	}
	collect()
	if stop := interrupted(ctx, cmdCtx, r.RunTimeout); stop != nil {
		return output, stop
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if signal, crashed := crashSignal(exitErr.ProcessState); crashed {
			return output, fmt.Errorf("%w: %s", ErrRuntimeCrash, signal)
		}
		code := exitErr.ExitCode()
		output.ExitCode = &code
		return output, nil
	}
	return output, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
}

func tee(buffer *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buffer
	}
	return io.MultiWriter(buffer, w)
}
