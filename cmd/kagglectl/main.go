// Where: cmd/kagglectl/main.go
// What: CLI entrypoint.
// Why: Execute kagglectl commands with configured dependencies.
package main

import (
	"os"

	"github.com/nurfaiz0909/kagglectl/internal/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], buildDependencies()))
}
