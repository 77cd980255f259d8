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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/loggerfix/cmd/loggerfix/opts"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned by check when at least one file would change
var ErrChangesPending = errors.Base("files need fixing")

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var diff bool

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Report malformed logger.error() calls without changing files",
		Long: `Check runs the same rewrite as fix but leaves every file untouched.
It exits non-zero when any file would change, which makes it usable in CI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.Resolve(ctx, args)
			if err != nil {
				return err
			}
			cfg.DryRun = true
			cfg.Diff = cfg.Diff || diff

			out, err := run(ctx, cfg)
			if err != nil {
				return err
			}

			if out.Pending() {
				return errors.Errorf("%d file(s): %w", out.Summary.Totals().FilesChanged, ErrChangesPending)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&diff, "diff", false, "print the lines each file would change")

	return cmd
}
