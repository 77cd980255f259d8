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

package operation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/loggerfix/pkg/log"
	"github.com/walteh/loggerfix/pkg/report"
	"github.com/walteh/loggerfix/pkg/rewrite"
	"github.com/walteh/loggerfix/pkg/rule"
	"github.com/walteh/loggerfix/pkg/selector"
	"github.com/walteh/loggerfix/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for a rewrite run
type Options struct {
	// Root is the directory to scan
	Root string
	// Selector picks the candidate files; zero value means selector.DefaultOptions
	Selector selector.Options
	// Table is the ordered rule table; zero value means rule.DefaultTable
	Table rule.Table
	// Files reads and writes candidates; nil means the local filesystem
	Files FileManager
	// Workers bounds concurrent file processing
	Workers int
	// DryRun leaves files untouched and reports what would change
	DryRun bool
	// Diff prints the changed lines of every modified file
	Diff bool
}

// 📦 Outcome is what a run produced
type Outcome struct {
	Selection *selector.Selection
	Summary   *report.Summary
	Git       *vcs.Status
}

// Pending reports whether any file was (or in a dry run, would be) changed.
func (o *Outcome) Pending() bool {
	return o.Summary.Totals().FilesChanged > 0
}

// 🎮 Operation rewrites every candidate below a root
type Operation struct {
	root     string
	selector *selector.Selector
	engine   *rewrite.Engine
	files    FileManager
	runner   *Runner
	dryRun   bool
	diff     bool
}

// 🏭 New creates an operation, filling defaults for unset options
func New(opts Options) (*Operation, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}

	selOpts := opts.Selector
	if selOpts.Trigger == "" && len(selOpts.Includes) == 0 {
		selOpts = selector.DefaultOptions().WithExcludes(opts.Selector.Excludes...)
	}
	sel, err := selector.New(selOpts)
	if err != nil {
		return nil, errors.Errorf("creating selector: %w", err)
	}

	table := opts.Table
	if table.Len() == 0 {
		table = rule.DefaultTable()
	}

	files := opts.Files
	if files == nil {
		files = OSFileManager{}
	}

	return &Operation{
		root:     opts.Root,
		selector: sel,
		engine:   rewrite.NewEngine(table),
		files:    files,
		runner:   NewRunner(opts.Workers),
		dryRun:   opts.DryRun,
		diff:     opts.Diff,
	}, nil
}

// 📄 fileOutcome is the result of processing one candidate
type fileOutcome struct {
	path   string
	result *rewrite.Result
	err    error
}

func (f fileOutcome) changed() bool {
	return f.err == nil && f.result != nil && f.result.WasModified
}

// 🏃 Run selects the candidates, rewrites them and prints the summary.
// A file that cannot be read or written is recorded as failed and the run
// continues; only selection errors and cancellation fail the run.
func (op *Operation) Run(ctx context.Context) (*Outcome, error) {
	logger := log.FromContext(ctx)
	zlog := zerolog.Ctx(ctx)

	sel, err := op.selector.Select(ctx, op.root)
	if err != nil {
		return nil, errors.Errorf("selecting files: %w", err)
	}

	git, err := vcs.Inspect(ctx, op.root)
	if err != nil {
		zlog.Debug().Err(err).Msg("git inspection failed, continuing without it")
		git = &vcs.Status{}
	}

	logger.StartRun(ctx, log.RunOperation{
		Root:       op.root,
		Candidates: len(sel.Candidates),
		DryRun:     op.dryRun,
	})
	defer logger.EndRun(ctx)

	if dirty := git.DirtyOf(sel.Candidates); len(dirty) > 0 && !op.dryRun {
		logger.Warningf("%d file(s) already have uncommitted changes; review the diff carefully", len(dirty))
		for _, p := range dirty {
			zlog.Debug().Str("file", p).Msg("uncommitted changes")
		}
	}

	outcomes := make([]fileOutcome, len(sel.Candidates))
	err = op.runner.Each(ctx, len(sel.Candidates), func(ctx context.Context, i int) error {
		outcomes[i] = op.processFile(ctx, sel.Candidates[i])
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Errorf("processing %s: %w", sel.Candidates[i], ctxErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := report.NewSummary(len(sel.Scanned), len(sel.Candidates))
	for _, o := range outcomes {
		op.record(ctx, logger, summary, o)
	}

	if err := report.Render(logger.Console(), summary, op.dryRun); err != nil {
		return nil, err
	}

	totals := summary.Totals()
	if totals.Failed > 0 {
		logger.Errorf("%d file(s) could not be processed", totals.Failed)
	}
	if totals.FilesChanged > 0 && !op.dryRun {
		logger.LogNewline()
		logger.Successf("Fixed %d call(s) in %d file(s)", totals.TotalFixes, totals.FilesChanged)
		if !git.InRepo {
			logger.Info("Not inside a git repository, so the original files are not recoverable")
		}
		if err := report.RenderNextSteps(logger.Console(), report.NextSteps(git.InRepo)); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Selection: sel,
		Summary:   summary,
		Git:       git,
	}, nil
}

// 📄 processFile reads, rewrites and (unless dry) writes one candidate
func (op *Operation) processFile(ctx context.Context, path string) fileOutcome {
	content, err := op.files.ReadFile(ctx, path)
	if err != nil {
		return fileOutcome{path: path, err: err}
	}

	res, err := op.engine.Rewrite(ctx, bytes.NewReader(content))
	if err != nil {
		return fileOutcome{path: path, err: err}
	}

	if res.WasModified && !op.dryRun {
		if err := op.files.WriteFile(ctx, path, res.ModifiedContent); err != nil {
			return fileOutcome{path: path, err: err}
		}
	}

	return fileOutcome{path: path, result: res}
}

// 📝 record folds one outcome into the summary and logs it
func (op *Operation) record(ctx context.Context, logger *log.Logger, summary *report.Summary, o fileOutcome) {
	fr := report.FileResult{Path: o.path, Err: o.err}
	fo := log.FileOperation{Path: o.path, Err: o.err, Status: log.StatusUnchanged}

	switch {
	case o.err != nil:
		fo.Status = log.StatusFailed
	case o.changed():
		fr.Changed = true
		fr.Fixes = o.result.ReplacementCount
		fr.Counts = o.result.Counts()
		fo.Modified = true
		fo.Fixes = o.result.ReplacementCount
		fo.Status = log.StatusFixed
		if op.dryRun {
			fo.Status = log.StatusWouldFix
		}
	}

	summary.Add(fr)
	logger.LogFileOperation(ctx, fo)

	if op.diff && o.changed() {
		fmt.Fprint(logger.Console(), report.Diff(o.path, string(o.result.OriginalContent), string(o.result.ModifiedContent)))
	}
}
