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
// Package commander converts user input into actions on the editor and
// the build pipeline.
//
// The Commander is modal. Edit mode takes single-key commands, insert
// mode types text, and command, search, lisp and prompt modes collect a
// line in the message bar. Control-key shortcuts for the toolbar actions
// work in edit and insert modes.
package commander
