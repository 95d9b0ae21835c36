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
	"strings"

	chix "github.com/chixed/chix/types"
)

// maxOutputLines bounds the memory held by a chatty program.
const maxOutputLines = 2000

// An OutputLine is one line of the output pane.
type OutputLine struct {
	Text  string
	Color chix.Color
}

// The Output pane collects compiler and program output as it arrives.
// Text may arrive in pieces; a line is complete when its newline arrives.
type Output struct {
	lines   []OutputLine
	partial bool // the last line is still being written
	scroll  int  // lines scrolled up from the bottom
}

func NewOutput() *Output {
	return &Output{}
}

func (o *Output) Clear() {
	o.lines = nil
	o.partial = false
	o.scroll = 0
}

// Append adds text in the given color.
func (o *Output) Append(text string, color chix.Color) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if i == 0 && o.partial && len(o.lines) > 0 {
			last := &o.lines[len(o.lines)-1]
			if last.Color == color || part == "" {
				last.Text += part
			} else {
				o.lines = append(o.lines, OutputLine{Text: part, Color: color})
			}
			continue
		}
		if i == len(parts)-1 && part == "" {
			// text ended with a newline
			o.partial = false
			o.trim()
			return
		}
		o.lines = append(o.lines, OutputLine{Text: part, Color: color})
	}
	o.partial = true
	o.trim()
}

// AppendLine adds a complete line.
func (o *Output) AppendLine(text string, color chix.Color) {
	if o.partial {
		o.partial = false
	}
	o.Append(text+"\n", color)
}

func (o *Output) trim() {
	if len(o.lines) > maxOutputLines {
		o.lines = append([]OutputLine{}, o.lines[len(o.lines)-maxOutputLines:]...)
	}
}

func (o *Output) Lines() []OutputLine {
	return o.lines
}

// Text returns the pane contents as plain text.
func (o *Output) Text() string {
	var s strings.Builder
	for i, line := range o.lines {
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(line.Text)
	}
	return s.String()
}

// Scroll moves the view up (positive) or down (negative) by n lines.
func (o *Output) Scroll(n int) {
	o.scroll = clipToRange(o.scroll+n, 0, maxInt(len(o.lines)-1, 0))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Render draws the most recent lines that fit into the area; a title
// line is drawn first.
func (o *Output) Render(d chix.Display, r chix.Rect, title string, p chix.Palette) {
	if r.Size.Rows <= 0 {
		return
	}
	titleRow := r.Origin.Row
	fillRow(d, r.Origin.Col, titleRow, r.Size.Cols, p.Muted, p.Panel)
	x := 0
	for _, ch := range " " + title {
		if x >= r.Size.Cols {
			break
		}
		d.SetCell(r.Origin.Col+x, titleRow, ch, p.Muted, p.Panel)
		x++
	}

	rows := r.Size.Rows - 1
	end := len(o.lines) - o.scroll
	start := maxInt(end-rows, 0)
	for i := 0; i < rows; i++ {
		y := r.Origin.Row + 1 + i
		fillRow(d, r.Origin.Col, y, r.Size.Cols, p.Foreground, p.Panel)
		index := start + i
		if index >= end {
			continue
		}
		line := o.lines[index]
		color := line.Color
		if color == chix.ColorDefault {
			color = p.Foreground
		}
		x := 0
		for _, ch := range line.Text {
			if x >= r.Size.Cols {
				break
			}
			if ch == '\t' {
				ch = ' '
			}
			d.SetCell(r.Origin.Col+x, y, ch, color, p.Panel)
			x++
		}
	}
}
