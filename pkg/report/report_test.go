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
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/loggerfix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

func TestSummary_Add(t *testing.T) {
	s := NewSummary(5, 4)

	s.Add(FileResult{Path: "src/b.ts", Changed: true, Fixes: 2, Counts: []rewrite.RuleCount{{Rule: "message", Count: 2}}})
	s.Add(FileResult{Path: "src/a.ts", Changed: true, Fixes: 1, Counts: []rewrite.RuleCount{{Rule: "message", Count: 1}}})
	s.Add(FileResult{Path: "src/c.ts", Changed: false})
	s.Add(FileResult{Path: "src/d.ts", Changed: true, Fixes: 7, Err: errors.New("disk full")})

	assert.Equal(t, Totals{
		FilesScanned: 5,
		Candidates:   4,
		FilesChanged: 2,
		TotalFixes:   3,
		Failed:       1,
	}, s.Totals())
	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, s.Changed(), "changed files should be sorted")
	assert.Equal(t, map[string]int{"message": 3}, s.RuleTotals())

	failed := s.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "src/d.ts", failed[0].Path)
	assert.EqualError(t, failed[0].Err, "disk full")
}

func TestSummary_UnchangedFixesIgnored(t *testing.T) {
	s := NewSummary(1, 1)
	s.Add(FileResult{Path: "src/a.ts", Changed: false, Fixes: 3})

	assert.Equal(t, 0, s.Totals().TotalFixes)
	assert.Empty(t, s.Changed())
}

func TestSummary_ConcurrentAdd(t *testing.T) {
	s := NewSummary(100, 100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(FileResult{Path: fmt.Sprintf("src/%03d.ts", i), Changed: true, Fixes: 1})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, s.Totals().FilesChanged)
	assert.Equal(t, 100, s.Totals().TotalFixes)
	assert.Equal(t, "src/000.ts", s.Changed()[0])
}

func TestRender(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name        string
		summary     func() *Summary
		dryRun      bool
		contains    []string
		notContains []string
	}{
		{
			name: "changed_files",
			summary: func() *Summary {
				s := NewSummary(3, 2)
				s.Add(FileResult{Path: "src/b.ts", Changed: true, Fixes: 2, Counts: []rewrite.RuleCount{{Rule: "message-only", Count: 2}}})
				s.Add(FileResult{Path: "src/a.ts", Changed: true, Fixes: 1, Counts: []rewrite.RuleCount{{Rule: "stack", Count: 1}}})
				return s
			},
			contains: []string{
				"Summary",
				"Total files scanned: 3",
				"Files with logger.error() calls: 2",
				"Total files fixed: 2",
				"Total fixes applied: 3",
				"Fixed files:\n  - src/a.ts\n  - src/b.ts\n",
				"message-only",
			},
			notContains: []string{"No files needed fixing", "Failed files"},
		},
		{
			name: "nothing_to_fix",
			summary: func() *Summary {
				s := NewSummary(4, 1)
				s.Add(FileResult{Path: "src/a.ts"})
				return s
			},
			contains: []string{
				"Total files scanned: 4",
				"Total files fixed: 0",
				"No files needed fixing (or all already fixed manually)",
			},
			notContains: []string{"Fixed files:", "Fixes by rule"},
		},
		{
			name: "failures",
			summary: func() *Summary {
				s := NewSummary(1, 1)
				s.Add(FileResult{Path: "src/a.ts", Err: errors.New("permission denied")})
				return s
			},
			contains: []string{
				"Failed files (1):",
				"  - src/a.ts: permission denied",
			},
		},
		{
			name: "dry_run",
			summary: func() *Summary {
				s := NewSummary(1, 1)
				s.Add(FileResult{Path: "src/a.ts", Changed: true, Fixes: 1})
				return s
			},
			dryRun: true,
			contains: []string{
				"Total files to fix: 1",
				"Total fixes pending: 1",
				"Files to fix:\n  - src/a.ts\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, Render(buf, tt.summary(), tt.dryRun))

			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestNextSteps(t *testing.T) {
	assert.Equal(t, []string{
		"Review the changes with git diff",
		"Run: npx tsc --noEmit",
		"Run tests: npm test",
		"Commit changes",
	}, NextSteps(true))

	assert.Equal(t, []string{
		"Review the changed files",
		"Run: npx tsc --noEmit",
		"Run tests: npm test",
	}, NextSteps(false))
}

func TestRenderNextSteps(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	require.NoError(t, RenderNextSteps(buf, NextSteps(true)))

	out := buf.String()
	assert.Contains(t, out, "Next steps")
	assert.Contains(t, out, "1. Review the changes with git diff")
	assert.Contains(t, out, "2. Run: npx tsc --noEmit")
	assert.Contains(t, out, "3. Run tests: npm test")
	assert.Contains(t, out, "4. Commit changes")
}

func TestDiff(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	before := "import x;\nlogger.error('x', { error: e.message });\nexport {};\n"
	after := "import x;\nlogger.error('x', new Error(e.message));\nexport {};\n"

	out := Diff("src/a.ts", before, after)
	assert.Contains(t, out, "--- src/a.ts\n+++ src/a.ts\n")
	assert.Contains(t, out, "-logger.error('x', { error: e.message });\n")
	assert.Contains(t, out, "+logger.error('x', new Error(e.message));\n")
	assert.NotContains(t, out, "import x;")

	assert.Empty(t, Diff("src/a.ts", before, before))
}
