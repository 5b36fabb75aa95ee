// Stepgrep prints lines that match one or more step-compiled patterns.
//
// Usage:
//
//	# Search files for a pattern
//	stepgrep '\d{3}-\d{4}' contacts.txt
//
//	# Several patterns, any of which may match
//	stepgrep -e '^ERROR' -e 'panic:' server.log
//
//	# Patterns from a YAML file
//	stepgrep -f patterns.yaml app.log
//
//	# Use backtracking repetition and show the compiled steps
//	stepgrep --backtrack --dump 'a*a'
//
// The exit status is 0 when some line matched, 1 when none did and 2 on error.
package main

func main() {
	Execute()
}
