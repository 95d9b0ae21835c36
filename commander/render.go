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
	"fmt"
	"strings"

	chix "github.com/chixed/chix/types"
)

// A Layout divides the screen into its areas, top to bottom.
type Layout struct {
	Toolbar chix.Rect
	Editor  chix.Rect // includes the info bar
	Output  chix.Rect // includes the title row
	Message chix.Rect
}

// ComputeLayout gives the output pane its rows plus a title, but never
// more than half of the space between the toolbar and the message bar.
func ComputeLayout(size chix.Size, outputRows int) Layout {
	middle := size.Rows - 2
	if middle < 0 {
		middle = 0
	}
	outputHeight := outputRows + 1
	if outputHeight > middle/2 {
		outputHeight = middle / 2
	}
	editorHeight := middle - outputHeight
	row := func(r, rows int) chix.Rect {
		return chix.Rect{Origin: chix.Point{Row: r}, Size: chix.Size{Rows: rows, Cols: size.Cols}}
	}
	return Layout{
		Toolbar: row(0, 1),
		Editor:  row(1, editorHeight),
		Output:  row(1+editorHeight, outputHeight),
		Message: row(size.Rows-1, 1),
	}
}

// A ToolbarItem is one action shown on the toolbar.
type ToolbarItem struct {
	Key     string
	Label   string
	Enabled bool
}

func (c *Commander) Toolbar() []ToolbarItem {
	items := []ToolbarItem{
		{"^N", "New", true},
		{"^O", "Open", true},
		{"^S", "Save", true},
		{"^W", "Save As", true},
		{"^R", "Compile&Run", !c.running},
	}
	if c.running {
		items = append(items, ToolbarItem{"^K", "Stop", true})
	}
	return append(items,
		ToolbarItem{"^T", "Theme", true},
		ToolbarItem{"^Q", "Quit", true})
}

// Render draws everything into a display of the given size.
func (c *Commander) Render(d chix.Display, size chix.Size) {
	p := c.theme.Palette()
	layout := ComputeLayout(size, c.outputRows)

	c.renderToolbar(d, layout.Toolbar, p)
	if layout.Editor.Size.Rows > 0 {
		c.editor.Render(d, layout.Editor, p)
	}
	c.output.Render(d, layout.Output, c.outputTitle(), p)
	c.renderMessageBar(d, layout.Message, p)

	switch {
	case c.notice != "":
		c.renderNotice(d, layout.Editor, p)
		d.SetCursor(chix.Point{Row: -1, Col: -1})
	case c.mode == chix.ModeEdit || c.mode == chix.ModeInsert:
		c.editor.SetCursorForDisplay(d, layout.Editor)
	default:
		d.SetCursor(chix.Point{Row: layout.Message.Origin.Row, Col: len([]rune(c.StatusLine()))})
	}
}

// drawText writes text from a column, clipped to the width of r, and
// returns the column after it.
func drawText(d chix.Display, r chix.Rect, col int, text string, fg, bg chix.Color) int {
	for _, ch := range text {
		if col >= r.Size.Cols {
			break
		}
		d.SetCell(r.Origin.Col+col, r.Origin.Row, ch, fg, bg)
		col++
	}
	return col
}

func fill(d chix.Display, r chix.Rect, fg, bg chix.Color) {
	for y := 0; y < r.Size.Rows; y++ {
		for x := 0; x < r.Size.Cols; x++ {
			d.SetCell(r.Origin.Col+x, r.Origin.Row+y, ' ', fg, bg)
		}
	}
}

func (c *Commander) renderToolbar(d chix.Display, r chix.Rect, p chix.Palette) {
	fill(d, r, p.BarText, p.Bar)
	col := 1
	for _, item := range c.Toolbar() {
		keyColor, labelColor := p.Accent|chix.ColorBold, p.Foreground
		if !item.Enabled {
			keyColor, labelColor = p.Muted, p.Muted
		}
		col = drawText(d, r, col, item.Key, keyColor, p.Bar)
		col = drawText(d, r, col, " "+item.Label+"  ", labelColor, p.Bar)
	}
}

// StatusLine is the text of the message bar.
func (c *Commander) StatusLine() string {
	switch c.mode {
	case chix.ModeCommand:
		return ":" + c.command
	case chix.ModeSearch:
		return "/" + c.searchText
	case chix.ModeLisp:
		return c.lispText
	case chix.ModePrompt:
		if c.prompt != nil {
			return c.prompt.label + c.prompt.text
		}
	case chix.ModeInsert:
		if c.message == "" {
			return "-- INSERT --"
		}
	}
	return c.message
}

func (c *Commander) renderMessageBar(d chix.Display, r chix.Rect, p chix.Palette) {
	fill(d, r, p.Foreground, p.Background)
	color := p.Foreground
	if c.isError && (c.mode == chix.ModeEdit || c.mode == chix.ModeInsert) {
		color = p.Error
	}
	drawText(d, r, 0, c.StatusLine(), color, p.Background)
}

func (c *Commander) outputTitle() string {
	title := "Output"
	if c.running {
		title += " (running)"
	}
	if stdin := c.pipeline.Runner().Stdin(); stdin != "" {
		title += fmt.Sprintf("   stdin: %q", stdin)
	}
	return title
}

// renderNotice draws the notice in a box centered in the area.
func (c *Commander) renderNotice(d chix.Display, area chix.Rect, p chix.Palette) {
	lines := wrap(c.notice, area.Size.Cols-6)
	lines = append(lines, "", "Press any key to continue")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	box := chix.Rect{Size: chix.Size{Rows: len(lines) + 2, Cols: width + 4}}
	box.Origin.Row = area.Origin.Row + (area.Size.Rows-box.Size.Rows)/2
	box.Origin.Col = area.Origin.Col + (area.Size.Cols-box.Size.Cols)/2
	if box.Origin.Row < area.Origin.Row {
		box.Origin.Row = area.Origin.Row
	}
	if box.Origin.Col < 0 {
		box.Origin.Col = 0
	}
	fill(d, box, p.Foreground, p.Panel)
	for i, line := range lines {
		color := p.Foreground
		if i == len(lines)-1 {
			color = p.Muted
		}
		row := chix.Rect{Origin: chix.Point{Row: box.Origin.Row + 1 + i, Col: box.Origin.Col + 2}, Size: chix.Size{Rows: 1, Cols: width}}
		drawText(d, row, 0, line, color, p.Panel)
	}
}

// wrap splits text into lines of at most width runes at spaces.
func wrap(text string, width int) []string {
	if width < 10 {
		width = 10
	}
	lines := make([]string, 0)
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
