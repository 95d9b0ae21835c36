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
	"errors"
)

var (
	ErrToolchainMissing = errors.New("no C compiler found")
	ErrSourceUnsaved    = errors.New("source file has not been saved")
	ErrSourceUnreadable = errors.New("source file cannot be read")
	ErrSpawnFailed      = errors.New("process could not be started")
	ErrRuntimeCrash     = errors.New("program crashed")
	ErrTimeout          = errors.New("timed out")
	ErrStopped          = errors.New("stopped")
	ErrBusy             = errors.New("a build is already running")
	ErrFormatterMissing = errors.New("formatter not found")
)
