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

	"gitlab.com/tozd/go/errors"
)

// 📚 Table is an ordered, read-only list of rules
type Table struct {
	rules []Rule
}

// 🏭 NewTable validates the rules and freezes their order
func NewTable(rules ...Rule) (Table, error) {
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return Table{}, errors.Errorf("rule %d: %w", i, err)
		}
		if seen[r.Name] {
			return Table{}, errors.Errorf("rule %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
	}

	frozen := make([]Rule, len(rules))
	copy(frozen, rules)
	return Table{rules: frozen}, nil
}

// Rules returns the rules in evaluation order. The slice is a copy.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t Table) Len() int {
	return len(t.rules)
}

// Lookup finds a rule by name.
func (t Table) Lookup(name string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Trigger is the literal every default rule starts with. Files without it
// cannot match any rule.
const Trigger = "logger.error("

const (
	callPrefix = `logger\.error\((?P<msg>[^,;]+),\s*\{\s*`
	closing    = `\s*,?\s*\}\s*\)`
	ident      = `[A-Za-z_$][\w$]*`
)

func call(m Match, args ...string) string {
	return "logger.error(" + m.Group("msg") + ", " + strings.Join(args, ", ")
}

// stringify wraps a fallback expression in String(...) unless it already is one.
func stringify(expr string) string {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "String(") && strings.HasSuffix(expr, ")") {
		return expr
	}
	return "String(" + expr + ")"
}

func conditional(m Match) string {
	x := m.Group("ident")
	return x + " instanceof Error ? " + x + " : new Error(" + stringify(m.Group("fallback")) + ")"
}

// 🎯 DefaultTable returns the logger.error rule set in evaluation order.
//
// Composite shapes (message plus stack, instanceof conditionals) come first
// so the plain "error: x.message" rules never see them. Within each pair the
// closing variant runs before the open one so a trailing comma before "}"
// does not leave an empty property bag behind.
func DefaultTable() Table {
	t, err := NewTable(
		Rule{
			Name:        "stack-only",
			Description: "Fix { error: err.message, stack: err.stack } pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`error:\s*(?P<ident>` + ident + `)\.message\s*,\s*stack:\s*(?P<stack>` + ident + `)\.stack` + closing),
			When: sameGroups("ident", "stack"),
			Replace: func(m Match) string {
				return call(m, m.Group("ident")) + ")"
			},
		},
		Rule{
			Name:        "stack",
			Description: "Fix { error: err.message, stack: err.stack, ... } pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`error:\s*(?P<ident>` + ident + `)\.message\s*,\s*stack:\s*(?P<stack>` + ident + `)\.stack\s*,`),
			When: sameGroups("ident", "stack"),
			Replace: func(m Match) string {
				return call(m, m.Group("ident"), "{")
			},
		},
		Rule{
			Name:        "instanceof-only",
			Description: "Fix { error: err instanceof Error ? err.message : ... } pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`error:\s*(?P<ident>` + ident + `)\s+instanceof\s+Error\s*\?\s*(?P<subject>` + ident + `)\.message\s*:\s*(?P<fallback>[^,}]+?)` + closing),
			When: sameGroups("ident", "subject"),
			Replace: func(m Match) string {
				return call(m, conditional(m)) + ")"
			},
		},
		Rule{
			Name:        "instanceof",
			Description: "Fix { error: err instanceof Error ? err.message : ..., ... } pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`error:\s*(?P<ident>` + ident + `)\s+instanceof\s+Error\s*\?\s*(?P<subject>` + ident + `)\.message\s*:\s*(?P<fallback>[^,}]+?)\s*,`),
			When: sameGroups("ident", "subject"),
			Replace: func(m Match) string {
				return call(m, conditional(m), "{")
			},
		},
		Rule{
			Name:        "error-message-only",
			Description: "Fix { error: errorMessage } (only property) pattern",
			Pattern:     regexp.MustCompile(callPrefix + `error:\s*errorMessage` + closing),
			Replace: func(m Match) string {
				return call(m, "new Error(errorMessage)") + ")"
			},
		},
		Rule{
			Name:        "error-message",
			Description: "Fix { error: errorMessage } pattern",
			Pattern:     regexp.MustCompile(callPrefix + `error:\s*errorMessage\s*,`),
			Replace: func(m Match) string {
				return call(m, "new Error(errorMessage)", "{")
			},
		},
		Rule{
			Name:        "named-error-only",
			Description: "Fix { namedError: error.message } (only property) pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`(?P<field>\w+Error):\s*(?P<ident>` + ident + `)\.message` + closing),
			Replace: func(m Match) string {
				field := m.Group("field")
				return call(m, "new Error("+m.Group("ident")+".message)", "{ "+field+"Type: '"+field+"' })")
			},
		},
		Rule{
			Name:        "named-error",
			Description: "Fix { namedError: error.message } pattern",
			Pattern: regexp.MustCompile(callPrefix +
				`(?P<field>\w+Error):\s*(?P<ident>` + ident + `)\.message\s*,`),
			Replace: func(m Match) string {
				field := m.Group("field")
				return call(m, "new Error("+m.Group("ident")+".message)", "{ "+field+"Type: '"+field+"',")
			},
		},
		Rule{
			Name:        "message-only",
			Description: "Fix { error: supabaseError.message } (only property) pattern",
			Pattern:     regexp.MustCompile(callPrefix + `error:\s*(?P<ident>` + ident + `)\.message` + closing),
			Replace: func(m Match) string {
				return call(m, "new Error("+m.Group("ident")+".message)") + ")"
			},
		},
		Rule{
			Name:        "message",
			Description: "Fix { error: supabaseError.message } pattern",
			Pattern:     regexp.MustCompile(callPrefix + `error:\s*(?P<ident>` + ident + `)\.message\s*,`),
			Replace: func(m Match) string {
				return call(m, "new Error("+m.Group("ident")+".message)", "{")
			},
		},
		Rule{
			Name:        "result-error-only",
			Description: "Fix { error: result.error } pattern",
			Pattern:     regexp.MustCompile(callPrefix + `error:\s*result\.error` + closing),
			Replace: func(m Match) string {
				return call(m, "new Error(result.error)") + ")"
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}
