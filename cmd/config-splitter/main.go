// Package main provides the CLI entrypoint for config-splitter.
//
// config-splitter is a YAML configuration tool that:
//   - Splits one configuration into a file per top-level section
//   - Moves selected second-level blocks into files of their own
//   - Merges section files back with a table of contents and headers
//   - Fills missing sections from schema defaults
package main

import "config-splitter/internal/cli"

func main() {
	cli.Execute()
}
