/*
Package config loads the optional loggerfix settings file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Finds .loggerfix.{yaml,yml,hcl,json} or a bare .loggerfix
- Parses it strictly, rejecting unknown fields
- Fills defaults and validates exclude globs

A missing config file is not an error. Resolve returns Default() and the
command line flags override whatever was loaded.

🔍 Example:

	root = "src"
	exclude = ["generated/**"]
	workers = 4
*/
package config
