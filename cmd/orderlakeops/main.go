// Package main provides the entry point for the orderlakeops CLI tool.
//
// orderlakeops is the order lake operational automation CLI. It provides
// a thin wrapper around the reusable orderlakeops library, adding:
//   - Command-line flag parsing
//   - Interactive confirmation prompts
//   - Dry-run visualization
//   - A local run ledger
//
// For programmatic access, import the library directly:
//
//	import "orderlake.io/orderlake/orderlakeops/pipeline"
package main

import (
	"orderlake.io/orderlake/cmd/orderlakeops/cmd"
)

func main() {
	cmd.Execute()
}
