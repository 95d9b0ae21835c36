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
	"log"

	chix "github.com/chixed/chix/types"
)

// A Highlighter computes colored spans for the text of a buffer.
type Highlighter interface {
	Highlight(text string) ([]chix.Span, error)
}

// SetHighlighter replaces the highlighter and invalidates the current colors.
func (e *Editor) SetHighlighter(h Highlighter) {
	e.highlighter = h
	e.Buffer.Highlighted = false
}

// Highlight recolors the buffer if it changed since it was last colored.
// A failing highlighter leaves the text uncolored.
func (e *Editor) Highlight() {
	b := e.Buffer
	if b.Highlighted {
		return
	}
	if e.highlighter == nil {
		b.ApplyHighlights(nil)
		return
	}
	spans, err := e.highlighter.Highlight(string(b.Bytes()))
	if err != nil {
		log.Printf("highlighting %s: %v", b.GetName(), err)
		spans = nil
	}
	b.ApplyHighlights(spans)
}
