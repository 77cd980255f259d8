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

	"gitlab.com/tozd/go/errors"
)

// 🎯 Match is the context handed to a rule's guard and replacer
type Match struct {
	Text   string   // Full matched text
	groups []string // Capture groups, index 0 is the full match
	names  []string // Group names as returned by regexp.SubexpNames
}

// 🏭 NewMatch builds a Match from a FindAllStringSubmatchIndex location
func NewMatch(re *regexp.Regexp, src string, loc []int) Match {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		groups[i] = src[start:end]
	}
	return Match{
		Text:   groups[0],
		groups: groups,
		names:  re.SubexpNames(),
	}
}

// Group returns the value of the named capture group, or "" if the group
// does not exist or did not participate in the match.
func (m Match) Group(name string) string {
	for i, n := range m.names {
		if n == name && i < len(m.groups) {
			return m.groups[i]
		}
	}
	return ""
}

// Index returns the i-th capture group (0 is the full match).
func (m Match) Index(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Len returns the number of capture groups including the full match.
func (m Match) Len() int {
	return len(m.groups)
}

// 🔄 Rule recognizes one malformed call shape and rewrites it
type Rule struct {
	Name        string               // Short identifier, unique within a table
	Description string               // Human readable label
	Pattern     *regexp.Regexp       // Shape to find, with named groups
	When        func(m Match) bool   // Optional guard; nil accepts every match
	Replace     func(m Match) string // Replacement text for an accepted match
}

// Accepts reports whether the guard lets the match through.
func (r Rule) Accepts(m Match) bool {
	return r.When == nil || r.When(m)
}

// 🔍 Validate checks a single rule
func (r Rule) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Pattern == nil {
		return errors.Errorf("rule %q: pattern is required", r.Name)
	}
	if r.Replace == nil {
		return errors.Errorf("rule %q: replace is required", r.Name)
	}
	return nil
}

// sameGroups returns a guard accepting matches whose two named groups hold
// identical text. RE2 has no backreferences, so rules that need "\2" use it.
func sameGroups(a, b string) func(Match) bool {
	return func(m Match) bool {
		return m.Group(a) == m.Group(b)
	}
}
