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

package rewrite

import (
	"context"
	"io"
	"strings"

	"github.com/walteh/loggerfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 📊 RuleCount is the number of matches a single rule rewrote
type RuleCount struct {
	Rule  string
	Count int
}

// 📄 Result is the outcome of rewriting one file's content
type Result struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int         // Sum of RuleCounts; overlapping rules count twice
	RuleCounts       []RuleCount // One entry per rule, in table order
	WasModified      bool
}

// 🔧 Engine applies a rule table to file content
type Engine struct {
	table rule.Table
}

// 🏭 NewEngine creates an engine bound to the given table
func NewEngine(table rule.Table) *Engine {
	return &Engine{table: table}
}

// Table returns the rules the engine applies.
func (e *Engine) Table() rule.Table {
	return e.table
}

// Rewrite reads all content and applies every rule in table order.
func (e *Engine) Rewrite(ctx context.Context, content io.Reader) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: original,
		ModifiedContent: original,
	}

	current := string(original)
	for _, r := range e.table.Rules() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("rewriting content: %w", err)
		}

		next, n := substitute(r, current)
		result.RuleCounts = append(result.RuleCounts, RuleCount{Rule: r.Name, Count: n})
		result.ReplacementCount += n
		current = next
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(original)
	return result, nil
}

// RewriteString is Rewrite for in-memory text.
func (e *Engine) RewriteString(content string) *Result {
	// strings.Reader never fails and Background is never cancelled
	result, _ := e.Rewrite(context.Background(), strings.NewReader(content))
	return result
}

// substitute replaces every accepted match of r in src. Matches are found
// against src as it was before this rule ran.
func substitute(r rule.Rule, src string) (string, int) {
	locs := r.Pattern.FindAllStringSubmatchIndex(src, -1)
	if len(locs) == 0 {
		return src, 0
	}

	var b strings.Builder
	last, count := 0, 0
	for _, loc := range locs {
		m := rule.NewMatch(r.Pattern, src, loc)
		if !r.Accepts(m) {
			continue
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(r.Replace(m))
		last = loc[1]
		count++
	}

	if count == 0 {
		return src, 0
	}

	b.WriteString(src[last:])
	return b.String(), count
}

// Counts returns the non-zero rule counts.
func (r *Result) Counts() []RuleCount {
	var out []RuleCount
	for _, c := range r.RuleCounts {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}
