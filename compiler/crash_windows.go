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
package compiler

import (
	"fmt"
	"os"
)

// crashSignal reports the exception that ended a process. Windows has no
// signals; crashes show up as NTSTATUS error codes.
func crashSignal(state *os.ProcessState) (string, bool) {
	if state == nil {
		return "", false
	}
	code := uint32(state.ExitCode())
	if code < 0xC0000000 {
		return "", false
	}
	switch code {
	case 0xC0000005:
		return "access violation", true
	case 0xC00000FD:
		return "stack overflow", true
	case 0xC0000094:
		return "integer divide by zero", true
	}
	return fmt.Sprintf("exception 0x%X", code), true
}

func executableName(base string) string {
	return base + ".exe"
}
