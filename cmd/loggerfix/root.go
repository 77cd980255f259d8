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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/loggerfix/cmd/loggerfix/commands"
	"github.com/walteh/loggerfix/cmd/loggerfix/opts"
	"github.com/walteh/loggerfix/pkg/log"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand is the same as fix.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "loggerfix [root]",
		Short: "Rewrite malformed logger.error() calls into canonical form",
		Long: `loggerfix rewrites logger.error() calls that pass an error message or
message field into calls that pass a real Error object.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.WorkersSet = cmd.Flags().Changed("workers")
			cmd.SetContext(setupLogging(cmd.Context(), o.Debug, cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFix(cmd.Context(), o, args)
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewFixCmd(o),
		commands.NewCheckCmd(o),
		commands.NewRulesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .loggerfix.{yaml,yml,hcl,json} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().IntVarP(&o.Workers, "workers", "w", 1, "number of files processed concurrently")
	cmd.PersistentFlags().StringArrayVar(&o.Exclude, "exclude", nil, "extra doublestar glob to skip, relative to the root (repeatable)")
}

// setupLogging attaches a zerolog logger on stderr and the console logger
// on stdout to ctx
func setupLogging(ctx context.Context, debug bool, stdout, stderr io.Writer) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	return log.NewContext(ctx, log.NewWithZerolog(stdout, zlog))
}
