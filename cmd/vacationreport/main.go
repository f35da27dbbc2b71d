// Package main provides the entry point for the vacationreport CLI.
//
// vacationreport reads distances.csv from the current directory and prints
// every city with its distance from Berlin.
//
// Usage:
//
//	vacationreport
//	vacationreport --markdown -o report.md
//	vacationreport compare
//
// See --help for all available options.
package main

// main is the entry point for vacationreport.
func main() {
	Execute()
}
