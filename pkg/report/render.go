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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

const ruleWidth = 80

// 🎨 Render writes the run summary. dryRun switches the wording to what
// would have been fixed.
func Render(w io.Writer, s *Summary, dryRun bool) error {
	t := s.Totals()

	verb, fixesVerb, heading := "fixed", "applied", "Fixed files:"
	if dryRun {
		verb, fixesVerb, heading = "to fix", "pending", "Files to fix:"
	}

	var b strings.Builder
	line := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", line, color.New(color.Bold).Sprint("Summary"), line)
	fmt.Fprintf(&b, "Total files scanned: %d\n", t.FilesScanned)
	fmt.Fprintf(&b, "Files with logger.error() calls: %d\n", t.Candidates)
	fmt.Fprintf(&b, "Total files %s: %d\n", verb, t.FilesChanged)
	fmt.Fprintf(&b, "Total fixes %s: %d\n", fixesVerb, t.TotalFixes)
	b.WriteString("\n")

	if changed := s.Changed(); len(changed) > 0 {
		b.WriteString(heading + "\n")
		for _, f := range changed {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	} else {
		b.WriteString("No files needed fixing (or all already fixed manually)\n")
	}

	if rules := s.RuleTotals(); len(rules) > 0 {
		names := make([]string, 0, len(rules))
		for name := range rules {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\nFixes by rule:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %-20s %d\n", name, rules[name])
		}
	}

	if failed := s.Failed(); len(failed) > 0 {
		fmt.Fprintf(&b, "\n%s\n", color.New(color.FgRed).Sprintf("Failed files (%d):", len(failed)))
		for _, f := range failed {
			fmt.Fprintf(&b, "  - %s: %v\n", f.Path, f.Err)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing summary: %w", err)
	}
	return nil
}

// 📋 NextSteps returns the follow-up hints printed after a run
func NextSteps(inGitRepo bool) []string {
	review := "Review the changed files"
	if inGitRepo {
		review = "Review the changes with git diff"
	}

	steps := []string{
		review,
		"Run: npx tsc --noEmit",
		"Run tests: npm test",
	}
	if inGitRepo {
		steps = append(steps, "Commit changes")
	}
	return steps
}

// 🎨 RenderNextSteps writes the numbered hints
func RenderNextSteps(w io.Writer, steps []string) error {
	items := make([]pterm.BulletListItem, 0, len(steps))
	for i, step := range steps {
		items = append(items, pterm.BulletListItem{
			Level:  0,
			Text:   step,
			Bullet: fmt.Sprintf("%d.", i+1),
		})
	}

	list, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return errors.Errorf("rendering next steps: %w", err)
	}

	header := pterm.DefaultSection.Sprint("Next steps")
	if _, err := io.WriteString(w, header+list); err != nil {
		return errors.Errorf("writing next steps: %w", err)
	}
	return nil
}
