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
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 Diff renders the changed lines between before and after, prefixed
// with "-" and "+". Unchanged lines are omitted.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "%s\n", color.New(color.Bold).Sprintf("--- %s", path))
	fmt.Fprintf(&out, "%s\n", color.New(color.Bold).Sprintf("+++ %s", path))

	for _, d := range diffs {
		var prefix string
		var c *color.Color
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", color.New(color.FgRed)
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", color.New(color.FgGreen)
		default:
			continue
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			out.WriteString(c.Sprint(prefix+strings.TrimSuffix(l, "\n")) + "\n")
		}
	}

	return out.String()
}
