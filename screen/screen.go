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
package screen

import (
	"github.com/nsf/termbox-go"

	chix "github.com/chixed/chix/types"
)

// A Renderer draws itself into a display of a given size.
type Renderer interface {
	Render(d chix.Display, size chix.Size)
}

// The Screen draws into the terminal and reads keys from it.
type Screen struct {
	size chix.Size // screen size
}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Size() chix.Size {
	return s.size
}

func (s *Screen) Render(r Renderer) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	s.size.Cols, s.size.Rows = termbox.Size()
	r.Render(s, s.size)
	termbox.Flush()
}

func (s *Screen) SetCell(col int, row int, c rune, fg chix.Color, bg chix.Color) {
	termbox.SetCell(col, row, c, attribute(fg), attribute(bg))
}

// SetCursor moves the cursor; a negative position hides it.
func (s *Screen) SetCursor(p chix.Point) {
	if p.Row < 0 || p.Col < 0 {
		termbox.HideCursor()
		return
	}
	termbox.SetCursor(p.Col, p.Row)
}

// attribute converts a Color to termbox's 256-color representation.
func attribute(c chix.Color) termbox.Attribute {
	a := termbox.Attribute(c & 0x1ff)
	if c&chix.ColorBold != 0 {
		a |= termbox.AttrBold
	}
	if c&chix.ColorUnderline != 0 {
		a |= termbox.AttrUnderline
	}
	if c&chix.ColorReverse != 0 {
		a |= termbox.AttrReverse
	}
	return a
}

// GetNextEvent blocks until the terminal has an event.
func (s *Screen) GetNextEvent() *chix.Event {
	return convert(termbox.PollEvent())
}

// Interrupt makes a pending GetNextEvent return an EventInterrupt.
func (s *Screen) Interrupt() {
	termbox.Interrupt()
}

func convert(event termbox.Event) *chix.Event {
	switch event.Type {
	case termbox.EventKey:
		if event.Ch != 0 {
			return &chix.Event{Type: chix.EventKey, Key: chix.KeyNone, Ch: event.Ch}
		}
		return &chix.Event{Type: chix.EventKey, Key: key(event.Key)}
	case termbox.EventResize:
		termbox.Flush()
		return &chix.Event{Type: chix.EventResize}
	case termbox.EventInterrupt:
		return &chix.Event{Type: chix.EventInterrupt}
	default:
		return &chix.Event{Type: chix.EventOther}
	}
}

func key(k termbox.Key) chix.Key {
	switch k {
	case termbox.KeyArrowDown:
		return chix.KeyArrowDown
	case termbox.KeyArrowLeft:
		return chix.KeyArrowLeft
	case termbox.KeyArrowRight:
		return chix.KeyArrowRight
	case termbox.KeyArrowUp:
		return chix.KeyArrowUp
	case termbox.KeyBackspace:
		return chix.KeyBackspace
	case termbox.KeyBackspace2:
		return chix.KeyBackspace2
	case termbox.KeyDelete:
		return chix.KeyDelete
	case termbox.KeyCtrlA:
		return chix.KeyCtrlA
	case termbox.KeyCtrlB:
		return chix.KeyCtrlB
	case termbox.KeyCtrlD:
		return chix.KeyCtrlD
	case termbox.KeyCtrlE:
		return chix.KeyCtrlE
	case termbox.KeyCtrlF:
		return chix.KeyCtrlF
	case termbox.KeyCtrlK:
		return chix.KeyCtrlK
	case termbox.KeyCtrlN:
		return chix.KeyCtrlN
	case termbox.KeyCtrlO:
		return chix.KeyCtrlO
	case termbox.KeyCtrlQ:
		return chix.KeyCtrlQ
	case termbox.KeyCtrlR:
		return chix.KeyCtrlR
	case termbox.KeyCtrlS:
		return chix.KeyCtrlS
	case termbox.KeyCtrlT:
		return chix.KeyCtrlT
	case termbox.KeyCtrlU:
		return chix.KeyCtrlU
	case termbox.KeyCtrlW:
		return chix.KeyCtrlW
	case termbox.KeyEnd:
		return chix.KeyEnd
	case termbox.KeyEnter:
		return chix.KeyEnter
	case termbox.KeyEsc:
		return chix.KeyEsc
	case termbox.KeyHome:
		return chix.KeyHome
	case termbox.KeyPgdn:
		return chix.KeyPgdn
	case termbox.KeyPgup:
		return chix.KeyPgup
	case termbox.KeySpace:
		return chix.KeySpace
	case termbox.KeyTab:
		return chix.KeyTab
	default:
		return chix.KeyUnsupported
	}
}
