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
	"unicode"
	"unicode/utf8"
)

// Bytes of a file that are not valid UTF-8 are held as runes above the
// Unicode range, one rune per byte, so that they are written back as read.
const rawByte = unicode.MaxRune + 1

func isRawByte(c rune) bool {
	return c >= rawByte && c < rawByte+256
}

// decodeText splits text into runes, keeping invalid bytes.
func decodeText(s string) []rune {
	runes := make([]rune, 0, len(s))
	for len(s) > 0 {
		c, size := utf8.DecodeRuneInString(s)
		if c == utf8.RuneError && size == 1 {
			c = rawByte + rune(s[0])
		}
		runes = append(runes, c)
		s = s[size:]
	}
	return runes
}

// encodeText is the inverse of decodeText.
func encodeText(runes []rune) string {
	var s strings.Builder
	for _, c := range runes {
		writeRune(&s, c)
	}
	return s.String()
}

func encodeRune(c rune) string {
	if isRawByte(c) {
		return string([]byte{byte(c - rawByte)})
	}
	return string(c)
}

func writeRune(s *strings.Builder, c rune) {
	if isRawByte(c) {
		s.WriteByte(byte(c - rawByte))
		return
	}
	s.WriteRune(c)
}
