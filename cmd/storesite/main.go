// Package main provides the CLI entry point for storesite.
//
// Usage:
//
//	storesite                       # build listings.xlsx into docs/
//	storesite -i stores.xlsx -o site
//	storesite init --workbook listings.xlsx
//
// See --help for all available options.
package main

func main() {
	Execute()
}
