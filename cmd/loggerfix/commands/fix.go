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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/loggerfix/cmd/loggerfix/opts"
	"github.com/walteh/loggerfix/pkg/config"
	"github.com/walteh/loggerfix/pkg/log"
	"github.com/walteh/loggerfix/pkg/operation"
	"github.com/walteh/loggerfix/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates the fix command
func NewFixCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [root]",
		Short: "Rewrite malformed logger.error() calls in place",
		Long: `Fix scans the root directory (src by default) for TypeScript files that
call logger.error() with a message field instead of an error object, and
rewrites those calls in place.
It will:
1. Select .ts and .tsx files containing logger.error(
2. Apply the rewrite rules in order
3. Write back every file that changed
4. Print a summary and the next steps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunFix(cmd.Context(), o, args)
		},
	}

	return cmd
}

// RunFix resolves the options and runs one rewrite pass. Per-file failures
// are reported in the summary and do not fail the command.
func RunFix(ctx context.Context, o *opts.RootOpts, args []string) error {
	cfg, err := o.Resolve(ctx, args)
	if err != nil {
		return err
	}

	_, err = run(ctx, cfg)
	return err
}

func run(ctx context.Context, cfg *config.Config) (*operation.Outcome, error) {
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("resolved configuration")

	mode := "fix"
	if cfg.DryRun {
		mode = "check"
	}
	log.FromContext(ctx).Header(mode)

	op, err := operation.New(operation.Options{
		Root:     cfg.Root,
		Selector: selector.DefaultOptions().WithExcludes(cfg.Exclude...),
		Workers:  cfg.Workers,
		DryRun:   cfg.DryRun,
		Diff:     cfg.Diff,
	})
	if err != nil {
		return nil, errors.Errorf("creating operation: %w", err)
	}

	out, err := op.Run(ctx)
	if err != nil {
		return nil, errors.Errorf("running %s: %w", cfg.Root, err)
	}
	return out, nil
}
