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
package highlight

import (
	_ "embed"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"

	chix "github.com/chixed/chix/types"
)

//go:embed themes.yaml
var builtinThemes []byte

// UIColors are the colors of everything that is not source text.
type UIColors struct {
	Background string `yaml:"background"`
	Panel      string `yaml:"panel"`
	Bar        string `yaml:"bar"`
	Foreground string `yaml:"foreground"`
	Muted      string `yaml:"muted"`
	Accent     string `yaml:"accent"`
	Error      string `yaml:"error"`
	Warning    string `yaml:"warning"`
	Success    string `yaml:"success"`
}

// SyntaxColors are the colors of token classes.
type SyntaxColors struct {
	Keyword      string `yaml:"keyword"`
	Type         string `yaml:"type"`
	Function     string `yaml:"function"`
	String       string `yaml:"string"`
	Number       string `yaml:"number"`
	Comment      string `yaml:"comment"`
	Operator     string `yaml:"operator"`
	Variable     string `yaml:"variable"`
	Preprocessor string `yaml:"preprocessor"`
}

// A Theme names a set of colors.
type Theme struct {
	Name   string       `yaml:"name"`
	Chroma string       `yaml:"chroma,omitempty"`
	UI     UIColors     `yaml:"ui"`
	Syntax SyntaxColors `yaml:"syntax"`

	style *chroma.Style
}

// Style returns the chroma style used to color tokens.
func (t *Theme) Style() *chroma.Style {
	return t.style
}

// resolve builds the chroma style and fills in missing UI colors.
func (t *Theme) resolve() error {
	if t.Chroma != "" {
		style, ok := styles.Registry[t.Chroma]
		if !ok {
			return fmt.Errorf("theme %s: unknown chroma style %q", t.Name, t.Chroma)
		}
		t.style = style
		t.fillFromStyle()
		return nil
	}
	s := t.Syntax
	entries := chroma.StyleEntries{
		chroma.Background: fmt.Sprintf("%s bg:%s", t.UI.Foreground, t.UI.Background),
	}
	add := func(tt chroma.TokenType, colour string) {
		if colour != "" {
			entries[tt] = colour
		}
	}
	add(chroma.Keyword, s.Keyword)
	add(chroma.KeywordType, s.Type)
	add(chroma.NameFunction, s.Function)
	add(chroma.NameBuiltin, s.Function)
	add(chroma.LiteralString, s.String)
	add(chroma.LiteralStringChar, s.String)
	add(chroma.LiteralNumber, s.Number)
	add(chroma.Comment, s.Comment)
	add(chroma.CommentPreproc, s.Preprocessor)
	add(chroma.Operator, s.Operator)
	add(chroma.NameVariable, s.Variable)
	style, err := chroma.NewStyle(t.Name, entries)
	if err != nil {
		return fmt.Errorf("theme %s: %w", t.Name, err)
	}
	t.style = style
	return nil
}

func (t *Theme) fillFromStyle() {
	hex := func(c chroma.Colour) string {
		if !c.IsSet() {
			return ""
		}
		return c.String()
	}
	set := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	bg := t.style.Get(chroma.Background)
	set(&t.UI.Background, hex(bg.Background))
	set(&t.UI.Foreground, hex(bg.Colour))
	set(&t.UI.Foreground, hex(t.style.Get(chroma.Text).Colour))
	set(&t.UI.Foreground, "#d0d0d0")
	set(&t.UI.Panel, t.UI.Background)
	set(&t.UI.Bar, hex(t.style.Get(chroma.LineHighlight).Background))
	set(&t.UI.Bar, t.UI.Background)
	set(&t.UI.Muted, hex(t.style.Get(chroma.Comment).Colour))
	set(&t.UI.Accent, hex(t.style.Get(chroma.Keyword).Colour))
	set(&t.UI.Error, hex(t.style.Get(chroma.Error).Colour))
	set(&t.UI.Error, "#ff5555")
	set(&t.UI.Warning, "#ffb86c")
	set(&t.UI.Success, "#50fa7b")
}

// Color returns the terminal color nearest to a hex color.
// An empty or malformed color is the terminal default.
func (t *Theme) Color(hex string) chix.Color {
	return colorOf(chroma.ParseColour(hex))
}

// Palette returns the UI colors as terminal colors.
func (t *Theme) Palette() chix.Palette {
	ui := t.UI
	return chix.Palette{
		Background: t.Color(ui.Background),
		Foreground: t.Color(ui.Foreground),
		Panel:      t.Color(ui.Panel),
		Bar:        t.Color(ui.Bar),
		BarText:    t.Color(ui.Foreground) | chix.ColorBold,
		Muted:      t.Color(ui.Muted),
		Accent:     t.Color(ui.Accent),
		Error:      t.Color(ui.Error),
		Warning:    t.Color(ui.Warning),
		Success:    t.Color(ui.Success),
	}
}

func colorOf(c chroma.Colour) chix.Color {
	if !c.IsSet() {
		return chix.ColorDefault
	}
	return chix.PaletteColor(Nearest256(c.Red(), c.Green(), c.Blue()))
}

var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// Nearest256 returns the xterm-256 palette index closest to an RGB color,
// choosing between the 6x6x6 color cube and the grayscale ramp. The first
// sixteen entries are left alone because terminals redefine them.
func Nearest256(r, g, b uint8) uint8 {
	cube := func(v uint8) int {
		best := 0
		for i, level := range cubeLevels {
			if abs(int(v)-level) < abs(int(v)-cubeLevels[best]) {
				best = i
			}
		}
		return best
	}
	ri, gi, bi := cube(r), cube(g), cube(b)
	cubeIndex := 16 + 36*ri + 6*gi + bi
	cubeDistance := distance(r, g, b, cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	average := (int(r) + int(g) + int(b)) / 3
	grayStep := (average - 8 + 5) / 10
	if grayStep < 0 {
		grayStep = 0
	}
	if grayStep > 23 {
		grayStep = 23
	}
	gray := 8 + 10*grayStep
	grayDistance := distance(r, g, b, gray, gray, gray)

	if grayDistance < cubeDistance {
		return uint8(232 + grayStep)
	}
	return uint8(cubeIndex)
}

func distance(r, g, b uint8, r2, g2, b2 int) int {
	dr, dg, db := int(r)-r2, int(g)-g2, int(b)-b2
	return dr*dr + dg*dg + db*db
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Themes is the list of available themes.
type Themes struct {
	Default string   `yaml:"default"`
	List    []*Theme `yaml:"themes"`
}

// LoadThemes reads the built-in themes.
func LoadThemes() (*Themes, error) {
	return ParseThemes(builtinThemes)
}

// ParseThemes reads themes from YAML.
func ParseThemes(b []byte) (*Themes, error) {
	themes := &Themes{}
	if err := yaml.Unmarshal(b, themes); err != nil {
		return nil, fmt.Errorf("reading themes: %w", err)
	}
	if len(themes.List) == 0 {
		return nil, fmt.Errorf("reading themes: no themes defined")
	}
	seen := make(map[string]bool)
	for _, t := range themes.List {
		if t.Name == "" {
			return nil, fmt.Errorf("reading themes: theme without a name")
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("reading themes: %s is defined twice", t.Name)
		}
		seen[t.Name] = true
		if err := t.resolve(); err != nil {
			return nil, err
		}
	}
	if themes.Default == "" || !seen[themes.Default] {
		themes.Default = themes.List[0].Name
	}
	return themes, nil
}

// Get returns the named theme.
func (ts *Themes) Get(name string) (*Theme, bool) {
	for _, t := range ts.List {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// DefaultTheme returns the theme used when none is chosen.
func (ts *Themes) DefaultTheme() *Theme {
	t, _ := ts.Get(ts.Default)
	return t
}

func (ts *Themes) Names() []string {
	names := make([]string, 0, len(ts.List))
	for _, t := range ts.List {
		names = append(names, t.Name)
	}
	return names
}

// Next returns the theme after the named one, wrapping around.
// An unknown name gives the first theme.
func (ts *Themes) Next(name string) *Theme {
	for i, t := range ts.List {
		if t.Name == name {
			return ts.List[(i+1)%len(ts.List)]
		}
	}
	return ts.List[0]
}
