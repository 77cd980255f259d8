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

package rule

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	re := regexp.MustCompile(`(?P<key>\w+):\s*(?P<value>\w+)(?P<tail>!)?`)
	src := "say error: boom"

	loc := re.FindStringSubmatchIndex(src)
	require.NotNil(t, loc)

	m := NewMatch(re, src, loc)
	assert.Equal(t, "error: boom", m.Text)
	assert.Equal(t, "error", m.Group("key"))
	assert.Equal(t, "boom", m.Group("value"))
	assert.Equal(t, "", m.Group("tail"), "non participating group should be empty")
	assert.Equal(t, "", m.Group("missing"))
	assert.Equal(t, "boom", m.Index(2))
	assert.Equal(t, "", m.Index(42))
	assert.Equal(t, 4, m.Len())
}

func TestNewTable(t *testing.T) {
	noop := func(Match) string { return "" }
	re := regexp.MustCompile(`x`)

	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name:  "valid_rules",
			rules: []Rule{{Name: "a", Pattern: re, Replace: noop}, {Name: "b", Pattern: re, Replace: noop}},
		},
		{
			name:  "empty_rules",
			rules: []Rule{},
		},
		{
			name:      "missing_name",
			rules:     []Rule{{Pattern: re, Replace: noop}},
			wantError: "name is required",
		},
		{
			name:      "missing_pattern",
			rules:     []Rule{{Name: "a", Replace: noop}},
			wantError: "pattern is required",
		},
		{
			name:      "missing_replace",
			rules:     []Rule{{Name: "a", Pattern: re}},
			wantError: "replace is required",
		},
		{
			name:      "duplicate_name",
			rules:     []Rule{{Name: "a", Pattern: re, Replace: noop}, {Name: "a", Pattern: re, Replace: noop}},
			wantError: `rule 1: duplicate name "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.rules...)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rules), table.Len())
		})
	}
}

func TestTableIsReadOnly(t *testing.T) {
	table := DefaultTable()
	rules := table.Rules()
	first := rules[0].Name

	rules[0].Name = "tampered"
	assert.Equal(t, first, table.Rules()[0].Name, "mutating the returned slice must not touch the table")

	_, ok := table.Lookup("tampered")
	assert.False(t, ok)
}

func TestDefaultTableOrder(t *testing.T) {
	var names []string
	for _, r := range DefaultTable().Rules() {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{
		"stack-only",
		"stack",
		"instanceof-only",
		"instanceof",
		"error-message-only",
		"error-message",
		"named-error-only",
		"named-error",
		"message-only",
		"message",
		"result-error-only",
	}, names)
}

func TestDefaultRules(t *testing.T) {
	tests := []struct {
		rule  string
		input string
		want  string
	}{
		{
			rule:  "stack-only",
			input: `logger.error('Save failed', { error: err.message, stack: err.stack })`,
			want:  `logger.error('Save failed', err)`,
		},
		{
			rule:  "stack",
			input: `logger.error('Save failed', { error: err.message, stack: err.stack, userId })`,
			want:  `logger.error('Save failed', err, { userId })`,
		},
		{
			rule:  "instanceof-only",
			input: `logger.error('Boom', { error: err instanceof Error ? err.message : 'Unknown error' })`,
			want:  `logger.error('Boom', err instanceof Error ? err : new Error(String('Unknown error')))`,
		},
		{
			rule:  "instanceof",
			input: `logger.error('Boom', { error: e instanceof Error ? e.message : String(e), requestId })`,
			want:  `logger.error('Boom', e instanceof Error ? e : new Error(String(e)), { requestId })`,
		},
		{
			rule:  "error-message-only",
			input: `logger.error('Upload failed', { error: errorMessage })`,
			want:  `logger.error('Upload failed', new Error(errorMessage))`,
		},
		{
			rule:  "error-message",
			input: `logger.error('Upload failed', { error: errorMessage, fileId })`,
			want:  `logger.error('Upload failed', new Error(errorMessage), { fileId })`,
		},
		{
			rule:  "named-error-only",
			input: `logger.error('Post failed', { postError: error.message })`,
			want:  `logger.error('Post failed', new Error(error.message), { postErrorType: 'postError' })`,
		},
		{
			rule:  "named-error",
			input: `logger.error('Post failed', { postError: error.message, postId })`,
			want:  `logger.error('Post failed', new Error(error.message), { postErrorType: 'postError', postId })`,
		},
		{
			rule:  "message-only",
			input: `logger.error('Query failed', { error: someError.message })`,
			want:  `logger.error('Query failed', new Error(someError.message))`,
		},
		{
			rule:  "message",
			input: `logger.error('Query failed', { error: someError.message, table: 'users' })`,
			want:  `logger.error('Query failed', new Error(someError.message), { table: 'users' })`,
		},
		{
			rule:  "result-error-only",
			input: `logger.error('Action failed', { error: result.error })`,
			want:  `logger.error('Action failed', new Error(result.error))`,
		},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r, ok := table.Lookup(tt.rule)
			require.True(t, ok, "rule should exist")

			loc := r.Pattern.FindStringSubmatchIndex(tt.input)
			require.NotNil(t, loc, "pattern should match")

			m := NewMatch(r.Pattern, tt.input, loc)
			require.True(t, r.Accepts(m), "guard should accept")

			got := strings.Replace(tt.input, m.Text, r.Replace(m), 1)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardsRejectMismatchedIdentifiers(t *testing.T) {
	tests := []struct {
		rule  string
		input string
	}{
		{
			rule:  "stack-only",
			input: `logger.error('x', { error: a.message, stack: b.stack })`,
		},
		{
			rule:  "stack",
			input: `logger.error('x', { error: a.message, stack: b.stack, id })`,
		},
		{
			rule:  "instanceof-only",
			input: `logger.error('x', { error: a instanceof Error ? b.message : 'n/a' })`,
		},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r, ok := table.Lookup(tt.rule)
			require.True(t, ok)

			loc := r.Pattern.FindStringSubmatchIndex(tt.input)
			require.NotNil(t, loc)
			assert.False(t, r.Accepts(NewMatch(r.Pattern, tt.input, loc)))
		})
	}
}

func TestDefaultRulesIgnoreCanonicalCalls(t *testing.T) {
	canonical := []string{
		`logger.error('Save failed', err)`,
		`logger.error('Save failed', err, { userId })`,
		`logger.error('Upload failed', new Error(errorMessage), { fileId })`,
		`logger.error('Boom', e instanceof Error ? e : new Error(String(e)))`,
		`logger.error('Post failed', new Error(error.message), { postErrorType: 'postError', postId })`,
		`logger.error('Plain message')`,
	}

	for _, r := range DefaultTable().Rules() {
		for _, src := range canonical {
			assert.False(t, r.Pattern.MatchString(src), "rule %s should not match %q", r.Name, src)
		}
	}
}

func TestMessageArgumentStopsAtStatementEnd(t *testing.T) {
	src := "logger.error('no context');\nfoo(bar, { error: e.message })"
	for _, r := range DefaultTable().Rules() {
		assert.False(t, r.Pattern.MatchString(src), "rule %s must not reach across statements", r.Name)
	}
}
