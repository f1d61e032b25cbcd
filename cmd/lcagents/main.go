// Package main provides the lcagents CLI.
// Implements: prd007-lcagents-cli R1;
//
//	docs/ARCHITECTURE § CLI.
package main

import "github.com/mesh-intelligence/lcagents/internal/cli"

func main() {
	cli.Execute()
}
