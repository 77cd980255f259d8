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

package selector

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/loggerfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 📂 Source files the rewriter understands
var DefaultIncludes = []string{
	"**/*.ts",
	"**/*.tsx",
}

// 🚫 Path fragments that are never rewritten. logger.ts defines the logger
// itself and must not be rewritten to depend on itself.
var DefaultDeny = []string{
	"node_modules",
	".git",
	"coverage",
	"dist",
	"build",
	".next",
	"DEBUG.md",
	"fix-logger-errors",
	"logger.ts",
}

// 🔧 Options controls which files are selected
type Options struct {
	Includes []string // doublestar globs, relative to the root
	Deny     []string // substrings of the relative path
	Excludes []string // extra doublestar globs, relative to the root
	Trigger  string   // literal a candidate must contain
}

// DefaultOptions returns the fixed selection used by the rewriter.
func DefaultOptions() Options {
	return Options{
		Includes: append([]string(nil), DefaultIncludes...),
		Deny:     append([]string(nil), DefaultDeny...),
		Trigger:  rule.Trigger,
	}
}

// WithExcludes returns a copy of o with extra exclude globs appended.
func (o Options) WithExcludes(globs ...string) Options {
	o.Excludes = append(append([]string(nil), o.Excludes...), globs...)
	return o
}

// Validate checks every glob is well formed.
func (o Options) Validate() error {
	for _, g := range append(append([]string(nil), o.Includes...), o.Excludes...) {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid glob %q", g)
		}
	}
	if o.Trigger == "" {
		return errors.New("trigger is required")
	}
	return nil
}

// 📋 Selection is the outcome of walking a root
type Selection struct {
	Root       string
	Scanned    []string // every readable file that passed the path filters
	Candidates []string // the subset containing the trigger
}

// 🔍 Selector walks a tree and picks files worth rewriting
type Selector struct {
	opts Options
}

// 🏭 New creates a selector, rejecting malformed globs
func New(opts Options) (*Selector, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("validating selector options: %w", err)
	}
	return &Selector{opts: opts}, nil
}

// Select walks root and returns the scanned and candidate files, sorted.
// Unreadable and non UTF-8 files are left out without error; only a
// missing or unreadable root fails the walk.
func (s *Selector) Select(ctx context.Context, root string) (*Selection, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("reading root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", root)
	}

	sel := &Selection{Root: root}
	trigger := []byte(s.opts.Trigger)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.denied(rel) || s.excluded(rel) {
				logger.Debug().Str("dir", rel).Msg("skipping directory")
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !s.included(rel) || s.denied(rel) || s.excluded(rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(content) {
			logger.Debug().Str("path", path).Msg("skipping unreadable file")
			return nil
		}

		sel.Scanned = append(sel.Scanned, path)
		if bytes.Contains(content, trigger) {
			sel.Candidates = append(sel.Candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(sel.Scanned)
	sort.Strings(sel.Candidates)

	logger.Debug().
		Str("root", root).
		Int("scanned", len(sel.Scanned)).
		Int("candidates", len(sel.Candidates)).
		Msg("selection complete")

	return sel, nil
}

func (s *Selector) included(rel string) bool {
	for _, g := range s.opts.Includes {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

func (s *Selector) denied(rel string) bool {
	for _, frag := range s.opts.Deny {
		if strings.Contains(rel, frag) {
			return true
		}
	}
	return false
}

func (s *Selector) excluded(rel string) bool {
	for _, g := range s.opts.Excludes {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
