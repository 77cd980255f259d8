// Package rewrite applies a rule table to file content.
//
// Rules run in table order against the current content, each one replacing
// all of its accepted matches before the next rule starts. The reported count
// is the sum of per-rule counts, so a call site rewritten by two rules in
// sequence is counted twice.
package rewrite
