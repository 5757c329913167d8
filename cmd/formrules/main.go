// Command formrules validates form submissions against declarative rule
// annotations.
//
// Usage:
//
//	# Validate values against a schema file
//	formrules check signup.yaml username=jo password=secret1 terms=on
//
//	# List registered rules and their message templates
//	formrules rules
//
//	# Serve POST /validate for a schema, reloading it on change
//	formrules serve --schema signup.yaml --watch
package main

func main() {
	Execute()
}
