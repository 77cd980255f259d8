// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRoot is scanned when neither a flag nor a config file names one
	DefaultRoot = "src"

	// DefaultWorkers keeps file processing sequential
	DefaultWorkers = 1
)

// 📚 Config holds the run settings. Every field is optional.
type Config struct {
	Root    string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"` // extra doublestar globs
	Workers int      `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	DryRun  bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Diff    bool     `json:"diff,omitempty" yaml:"diff,omitempty" hcl:"diff,optional"`

	location string
}

// 🏭 Default returns the settings used when no config file exists
func Default() *Config {
	return &Config{
		Root:    DefaultRoot,
		Workers: DefaultWorkers,
	}
}

// Location is the file the config was read from, or "" for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
}

// 🔍 Validate checks the configuration and cleans the root path
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.New("root is required")
	}
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	for _, g := range cfg.Exclude {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid exclude glob %q", g)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	return nil
}

// 📝 String returns a short description for logs
func (cfg *Config) String() string {
	mode := "fix"
	if cfg.DryRun {
		mode = "check"
	}
	return fmt.Sprintf("%s root=%s workers=%d exclude=%v", mode, cfg.Root, cfg.Workers, cfg.Exclude)
}
