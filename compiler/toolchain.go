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
	"os/exec"
)

// DefaultCandidates are the compilers looked for when none is named.
var DefaultCandidates = []string{"gcc", "clang", "cc", "tcc"}

// CheckToolchainAvailable returns the path of the first candidate that can
// be found on PATH. A candidate containing a path separator is used as is
// when it is executable.
func CheckToolchainAvailable(candidates ...string) (string, bool) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, true
		}
	}
	return "", false
}
