// Where: internal/commands/version_cmd.go
// What: Version command implementation.
package commands

import "github.com/nurfaiz0909/kagglectl/internal/version"

// VersionCmd prints build version information.
type VersionCmd struct{}

func runVersion(ctx *commandContext) int {
	ctx.console.Info(version.GetVersion())
	return 0
}
