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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootOpts_Resolve(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	tests := []struct {
		name        string
		config      string
		opts        RootOpts
		args        []string
		errContains string
		check       func(t *testing.T, root string, workers int, exclude []string)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, root string, workers int, exclude []string) {
				assert.Equal(t, "src", root)
				assert.Equal(t, 1, workers)
				assert.Empty(t, exclude)
			},
		},
		{
			name:   "config_values",
			config: "root: web\nworkers: 4\nexclude: [\"gen/**\"]\n",
			check: func(t *testing.T, root string, workers int, exclude []string) {
				assert.Equal(t, "web", root)
				assert.Equal(t, 4, workers)
				assert.Equal(t, []string{"gen/**"}, exclude)
			},
		},
		{
			name:   "flags_override_config",
			config: "root: web\nworkers: 4\nexclude: [\"gen/**\"]\n",
			opts:   RootOpts{Workers: 2, WorkersSet: true, Exclude: []string{"legacy/**"}},
			args:   []string{"app/src"},
			check: func(t *testing.T, root string, workers int, exclude []string) {
				assert.Equal(t, "app/src", root, "positional root wins")
				assert.Equal(t, 2, workers)
				assert.Equal(t, []string{"gen/**", "legacy/**"}, exclude, "excludes accumulate")
			},
		},
		{
			name:   "unset_workers_flag_ignored",
			config: "workers: 4\n",
			opts:   RootOpts{Workers: 1},
			check: func(t *testing.T, root string, workers int, exclude []string) {
				assert.Equal(t, 4, workers)
			},
		},
		{
			name:        "invalid_workers_flag",
			opts:        RootOpts{Workers: 0, WorkersSet: true},
			errContains: "workers must be at least 1",
		},
		{
			name:        "invalid_exclude_flag",
			opts:        RootOpts{Exclude: []string{"[oops"}},
			errContains: "invalid exclude glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			o.Dir = t.TempDir()
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(o.Dir, ".loggerfix.yaml"), []byte(tt.config), 0o644))
			}

			cfg, err := o.Resolve(ctx, tt.args)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg.Root, cfg.Workers, cfg.Exclude)
		})
	}
}
