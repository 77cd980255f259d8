/*
Package operation runs one rewrite pass over a source tree.

	+-------------+
	|  Selector   |
	| (Discover)  |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	|  (Rewrite)  |
	+------+------+
	       |
	+------+------+
	|   Report    |
	| (Summarize) |
	+-------------+

🎯 Purpose:
- Selects candidate files below a root
- Rewrites each one with the rule engine, in place or as a dry run
- Folds per-file results into a summary and prints it

🔄 Flow:
1. Walks the root and collects candidates
2. Inspects the enclosing git worktree, if any
3. Processes candidates on a bounded worker pool
4. Logs every file in sorted order, then renders the summary

⚡ Failure handling:
A candidate that cannot be read or written is recorded as failed and the
run moves on. Only a bad root or a cancelled context fails the run.

🤝 Interfaces:
- FileManager: reads and atomically rewrites candidates

🔍 Example:

	op, err := operation.New(operation.Options{Root: "src", Workers: 4})
	if err != nil {
		return err
	}
	outcome, err := op.Run(ctx)
*/
package operation
