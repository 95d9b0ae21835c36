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
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	chix "github.com/chixed/chix/types"
)

// A Grammar tokenizes the text of one language.
type Grammar struct {
	lexer chroma.Lexer
}

// GrammarFor returns the grammar for a file name, or the C grammar when
// the name says nothing about the language.
func GrammarFor(filename string) *Grammar {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Get("c")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Grammar{lexer: chroma.Coalesce(lexer)}
}

func (g *Grammar) Name() string {
	return g.lexer.Config().Name
}

// Highlight returns the colored spans of text. Rows and columns count
// runes of text split at newlines, the way the editor stores it.
// Whitespace and text drawn in the theme's foreground produce no spans.
func Highlight(text string, grammar *Grammar, theme *Theme) ([]chix.Span, error) {
	if grammar == nil {
		grammar = GrammarFor("")
	}
	// keep \r so that columns match the buffer
	iterator, err := grammar.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, err
	}
	style := theme.Style()
	foreground := style.Get(chroma.Background).Colour
	if !foreground.IsSet() {
		foreground = style.Get(chroma.Text).Colour
	}

	spans := make([]chix.Span, 0)
	row, col := 0, 0
	for token := iterator(); token != chroma.EOF; token = iterator() {
		color := chix.ColorDefault
		if !isWhitespace(token) {
			entry := style.Get(token.Type)
			if entry.Colour.IsSet() && entry.Colour != foreground {
				color = colorOf(entry.Colour)
				if entry.Bold == chroma.Yes {
					color |= chix.ColorBold
				}
			}
		}
		lines := strings.Split(token.Value, "\n")
		for i, line := range lines {
			if i > 0 {
				row++
				col = 0
			}
			n := utf8.RuneCountInString(line)
			if n > 0 && color != chix.ColorDefault && strings.TrimSpace(line) != "" {
				spans = append(spans, chix.Span{Row: row, StartCol: col, EndCol: col + n, Color: color})
			}
			col += n
		}
	}
	return spans, nil
}

func isWhitespace(token chroma.Token) bool {
	return token.Type == chroma.TextWhitespace || strings.TrimSpace(token.Value) == ""
}

// A Highlighter colors buffers with a grammar and a theme.
type Highlighter struct {
	Grammar *Grammar
	Theme   *Theme
}

func NewHighlighter(filename string, theme *Theme) *Highlighter {
	return &Highlighter{Grammar: GrammarFor(filename), Theme: theme}
}

func (h *Highlighter) Highlight(text string) ([]chix.Span, error) {
	return Highlight(text, h.Grammar, h.Theme)
}
