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
// Package compiler finds a C compiler, compiles a single source file with
// it, and runs the resulting program.
//
// A Pipeline chains the two steps for the editor: it snapshots the saved
// source into a private build directory, compiles it, runs the program only
// when the compile succeeded, and reports progress as a stream of events.
// One pipeline runs at a time.
package compiler
