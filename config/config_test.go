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
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom failed: %+v", err)
	}
	if c.Compiler != "" || len(c.CFlags) != 0 {
		t.Errorf("Unexpected compiler settings: %q %v", c.Compiler, c.CFlags)
	}
	if c.Theme != "xcode_dark" {
		t.Errorf("Unexpected theme %s", c.Theme)
	}
	if c.CompileTimeout != 30*time.Second || c.RunTimeout != 0 {
		t.Errorf("Unexpected timeouts %s %s", c.CompileTimeout, c.RunTimeout)
	}
	if !reflect.DeepEqual(c.Formatter, []string{"clang-format"}) {
		t.Errorf("Unexpected formatter %v", c.Formatter)
	}
	if c.OutputRows != 8 || c.TabWidth != 4 {
		t.Errorf("Unexpected sizes %d %d", c.OutputRows, c.TabWidth)
	}
	if c.LogPath() != filepath.Join(os.TempDir(), "chix.log") {
		t.Errorf("Unexpected log path %s", c.LogPath())
	}
}

func TestOverrides(t *testing.T) {
	c, err := LoadFrom(map[string]string{
		"CC":                   "clang",
		"CHIX_CFLAGS":          "-Wall  -O2",
		"CHIX_THEME":           "monokai",
		"CHIX_COMPILE_TIMEOUT": "5s",
		"CHIX_RUN_TIMEOUT":     "1m",
		"CHIX_OUTPUT_ROWS":     "1",
		"CHIX_TAB_WIDTH":       "8",
		"CHIX_LOG":             "/tmp/x.log",
		"CHIX_FORMATTER":       "indent  -kr",
	})
	if err != nil {
		t.Fatalf("LoadFrom failed: %+v", err)
	}
	if c.Compiler != "clang" {
		t.Errorf("Unexpected compiler %s", c.Compiler)
	}
	if !reflect.DeepEqual(c.CFlags, []string{"-Wall", "-O2"}) {
		t.Errorf("Unexpected flags %q", c.CFlags)
	}
	if !reflect.DeepEqual(c.Formatter, []string{"indent", "-kr"}) {
		t.Errorf("Unexpected formatter %q", c.Formatter)
	}
	if c.CompileTimeout != 5*time.Second || c.RunTimeout != time.Minute {
		t.Errorf("Unexpected timeouts %s %s", c.CompileTimeout, c.RunTimeout)
	}
	if c.OutputRows != 2 {
		t.Errorf("Output rows not raised to the minimum: %d", c.OutputRows)
	}
	if c.Theme != "monokai" || c.TabWidth != 8 || c.LogPath() != "/tmp/x.log" {
		t.Errorf("Unexpected configuration %+v", c)
	}
}

func TestInvalidValues(t *testing.T) {
	for _, environment := range []map[string]string{
		{"CHIX_COMPILE_TIMEOUT": "soon"},
		{"CHIX_RUN_TIMEOUT": "-1s"},
		{"CHIX_TAB_WIDTH": "0"},
		{"CHIX_OUTPUT_ROWS": "many"},
	} {
		if _, err := LoadFrom(environment); err == nil {
			t.Errorf("Expected an error for %v", environment)
		}
	}
}
