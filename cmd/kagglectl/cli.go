// Where: cmd/kagglectl/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/nurfaiz0909/kagglectl/internal/commands"
)

// buildDependencies constructs the runtime dependencies for the CLI. All
// fields are left at their production defaults; tests inject fakes through
// commands.Dependencies directly.
func buildDependencies() commands.Dependencies {
	return commands.Dependencies{
		Out: os.Stdout,
	}
}
