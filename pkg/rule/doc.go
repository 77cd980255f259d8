/*
Package rule defines the rewrite rules for malformed logger.error calls.

	+-------------+      +-------------+
	|    Rule     | ---> |    Match    |
	| (pattern +  |      | (named      |
	|  replacer)  |      |  groups)    |
	+------+------+      +-------------+
	       |
	+------+------+
	|    Table    |
	|  (ordered)  |
	+-------------+

🎯 Purpose:
- Describe each malformed call shape as a regular expression
- Turn an accepted match into canonical replacement text
- Fix the order in which shapes are tried

A call such as

	logger.error('Failed to save', { error: saveError.message })

passes a string where the logger expects an Error. The default table rewrites
it to

	logger.error('Failed to save', new Error(saveError.message))

Rules work on text only. They do not understand TypeScript, so a type check
should follow any rewrite.

🔍 Example:

	table := rule.DefaultTable()
	for _, r := range table.Rules() {
		fmt.Println(r.Name, r.Description)
	}
*/
package rule
