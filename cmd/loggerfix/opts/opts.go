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

package opts

import (
	"context"

	"github.com/walteh/loggerfix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string   // explicit config path, "" to search the working directory
	Dir        string   // directory searched for a config file
	Debug      bool     // debug level logging
	Workers    int      // --workers, applied only when WorkersSet
	WorkersSet bool     // whether --workers was given
	Exclude    []string // extra exclude globs from the command line
}

// 🎯 Resolve loads the config and applies command line overrides. A
// positional root argument wins over the config file.
func (o *RootOpts) Resolve(ctx context.Context, args []string) (*config.Config, error) {
	dir := o.Dir
	if dir == "" {
		dir = "."
	}

	cfg, err := config.Resolve(ctx, dir, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if len(args) > 0 && args[0] != "" {
		cfg.Root = args[0]
	}
	if o.WorkersSet {
		cfg.Workers = o.Workers
	}
	cfg.Exclude = append(cfg.Exclude, o.Exclude...)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return cfg, nil
}
