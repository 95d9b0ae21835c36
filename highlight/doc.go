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
// Package highlight colors C source text for the editor.
//
// Highlight is a pure function from text, a grammar and a theme to a list
// of colored spans; the editor applies the spans to its rows when it draws.
// Themes are read from a YAML file compiled into the binary. A theme either
// lists its own syntax colors or borrows them from a named chroma style.
package highlight
