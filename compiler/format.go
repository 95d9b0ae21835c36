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
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FormatTimeout bounds a formatter run.
const FormatTimeout = 10 * time.Second

// Format pipes source through a formatter command and returns what it
// prints. The formatter's messages about its standard input are reported
// against filename.
func Format(ctx context.Context, command []string, filename string, source []byte) ([]byte, error) {
	if len(command) == 0 {
		return nil, ErrFormatterMissing
	}
	path, err := exec.LookPath(command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormatterMissing, command[0])
	}
	ctx, cancel := context.WithTimeout(ctx, FormatTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, command[1:]...)
	cmd.Stdin = bytes.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(command[0]), ErrTimeout)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
		}
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = err.Error()
		}
		if filename != "" {
			for _, name := range []string{"<stdin>", "<standard input>"} {
				message = strings.ReplaceAll(message, name, filename)
			}
		}
		return nil, fmt.Errorf("%s: %s", filepath.Base(command[0]), message)
	}
	return stdout.Bytes(), nil
}
