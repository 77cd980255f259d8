/*
Package report aggregates per-file results and renders the run summary.

🎯 Purpose:
- Count scanned, candidate and changed files plus total fixes
- Keep the sorted list of changed files and the list of failures
- Print the summary, the next-step hints and optional diffs

Aggregation is purely additive. The summary makes no decisions; it only
records what the operation reports.

🔍 Example:

	summary := report.NewSummary(len(sel.Scanned), len(sel.Candidates))
	summary.Add(report.FileResult{Path: path, Changed: true, Fixes: 2})
	_ = report.Render(os.Stdout, summary, false)
*/
package report
