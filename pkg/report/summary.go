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

package report

import (
	"sort"
	"sync"

	"github.com/walteh/loggerfix/pkg/rewrite"
)

// 📄 FileResult is what processing one candidate produced
type FileResult struct {
	Path    string
	Changed bool
	Fixes   int
	Counts  []rewrite.RuleCount // non-zero per-rule counts
	Err     error
}

// ❌ FileError records a file that could not be processed
type FileError struct {
	Path string
	Err  error
}

// 📊 Totals is a point-in-time copy of the summary counters
type Totals struct {
	FilesScanned int
	Candidates   int
	FilesChanged int
	TotalFixes   int
	Failed       int
}

// 📊 Summary aggregates file results for one run. Safe for concurrent use.
type Summary struct {
	mu      sync.Mutex
	scanned int
	cands   int
	changed []string
	fixes   int
	failed  []FileError
	perRule map[string]int
}

// 🏭 NewSummary starts a summary for a selection
func NewSummary(scanned, candidates int) *Summary {
	return &Summary{
		scanned: scanned,
		cands:   candidates,
		perRule: make(map[string]int),
	}
}

// Add folds one file result into the summary. A failed file counts as
// unfixed, and fixes on an unchanged file are not counted.
func (s *Summary) Add(r FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Err != nil {
		s.failed = append(s.failed, FileError{Path: r.Path, Err: r.Err})
		return
	}
	if !r.Changed {
		return
	}

	s.changed = append(s.changed, r.Path)
	s.fixes += r.Fixes
	for _, c := range r.Counts {
		s.perRule[c.Rule] += c.Count
	}
}

// Totals returns the current counters.
func (s *Summary) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Totals{
		FilesScanned: s.scanned,
		Candidates:   s.cands,
		FilesChanged: len(s.changed),
		TotalFixes:   s.fixes,
		Failed:       len(s.failed),
	}
}

// Changed returns the changed file paths, sorted.
func (s *Summary) Changed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]string(nil), s.changed...)
	sort.Strings(out)
	return out
}

// Failed returns the failed files, sorted by path.
func (s *Summary) Failed() []FileError {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]FileError(nil), s.failed...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// RuleTotals returns how often each rule fired across changed files.
func (s *Summary) RuleTotals() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.perRule))
	for k, v := range s.perRule {
		out[k] = v
	}
	return out
}
