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
// Package config reads chix settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings that may be changed without editing code.
// Command-line flags override them.
type Config struct {
	Compiler       string        `env:"CC"`
	CFlags         []string      `env:"CHIX_CFLAGS" envSeparator:" "`
	Theme          string        `env:"CHIX_THEME" envDefault:"xcode_dark"`
	CompileTimeout time.Duration `env:"CHIX_COMPILE_TIMEOUT" envDefault:"30s"`
	RunTimeout     time.Duration `env:"CHIX_RUN_TIMEOUT" envDefault:"0s"` // zero means no limit
	OutputRows     int           `env:"CHIX_OUTPUT_ROWS" envDefault:"8"`
	TabWidth       int           `env:"CHIX_TAB_WIDTH" envDefault:"4"`
	LogFile        string        `env:"CHIX_LOG"`
	Formatter      []string      `env:"CHIX_FORMATTER" envSeparator:" " envDefault:"clang-format"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, options); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.CompileTimeout < 0 {
		return fmt.Errorf("CHIX_COMPILE_TIMEOUT must not be negative: %s", c.CompileTimeout)
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("CHIX_RUN_TIMEOUT must not be negative: %s", c.RunTimeout)
	}
	if c.OutputRows < 2 {
		c.OutputRows = 2
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("CHIX_TAB_WIDTH must be between 1 and 16: %d", c.TabWidth)
	}
	c.CFlags = nonEmpty(c.CFlags)
	c.Formatter = nonEmpty(c.Formatter)
	if len(c.Formatter) == 0 {
		return fmt.Errorf("CHIX_FORMATTER must name a command")
	}
	return nil
}

// nonEmpty drops the empty words left by repeated separators.
func nonEmpty(words []string) []string {
	result := words[:0]
	for _, w := range words {
		if w != "" {
			result = append(result, w)
		}
	}
	return result
}

// LogPath returns where the log is written.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(os.TempDir(), "chix.log")
}
