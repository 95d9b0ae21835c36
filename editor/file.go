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
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultExtension is added to names given to Save As that have none.
const DefaultExtension = ".c"

var (
	// ErrNoFileName is returned when saving a buffer that has never been given a path.
	ErrNoFileName = errors.New("no file name")
	ErrDirectory  = errors.New("is a directory")
)

// New replaces the document with an empty, unnamed one.
func (e *Editor) New() {
	e.Buffer = NewBuffer()
	e.resetHistory()
}

// ReadFile replaces the document with the contents of path.
// The editor is unchanged if the file cannot be read.
func (e *Editor) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	buffer := NewBuffer()
	buffer.LoadBytes(b)
	buffer.SetFileName(path)
	e.Buffer = buffer
	e.resetHistory()
	return nil
}

func (e *Editor) Bytes() []byte {
	return e.Buffer.Bytes()
}

// WriteFile writes the document to path and makes path the document's file.
func (e *Editor) WriteFile(path string) error {
	if path == "" {
		return ErrNoFileName
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s %w", path, ErrDirectory)
		}
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, e.Bytes(), mode); err != nil {
		return err
	}
	if path != e.Buffer.GetFileName() {
		e.Buffer.SetFileName(path)
	}
	e.Buffer.markClean()
	return nil
}

// Save writes the document to the file it was read from or last saved to.
func (e *Editor) Save() error {
	return e.WriteFile(e.Buffer.GetFileName())
}

// SaveAs writes the document to path, adding the default extension when
// path has none. A path naming a directory is refused as it is.
func (e *Editor) SaveAs(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, fmt.Errorf("%s %w", path, ErrDirectory)
	}
	path = WithDefaultExtension(path)
	return path, e.WriteFile(path)
}

// WithDefaultExtension adds DefaultExtension to a path without an extension.
func WithDefaultExtension(path string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + DefaultExtension
}

// InsertTemplate replaces an empty document with a starter program.
func (e *Editor) InsertTemplate() bool {
	if e.Buffer.GetRowCount() > 1 || e.Buffer.GetRowLength(0) > 0 {
		return false
	}
	e.Buffer.LoadBytes([]byte(StarterProgram))
	e.Buffer.touch()
	e.resetHistory()
	return true
}

// StarterProgram is offered for new documents.
const StarterProgram = `#include <stdio.h>

int main() {
    int x;
    printf("Enter a number: ");
    if (scanf("%d", &x) != 1) {
        printf("no number given\n");
        return 1;
    }
    printf("You entered: %d\n", x);
    return 0;
}
`
