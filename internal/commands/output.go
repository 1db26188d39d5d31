// Where: internal/commands/output.go
// What: Output helpers for command handlers.
package commands

import (
	"strings"

	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
)

func exitWithError(console *ui.Console, err error) int {
	console.Fail(err.Error())
	return 1
}

// reportResult prints a dispatch outcome and maps it to an exit code.
func reportResult(console *ui.Console, res dispatch.Result) int {
	if res.Retried {
		console.Warn("primary credential scheme rejected, fallback scheme used")
	}
	body := strings.TrimSpace(res.RawOutput)
	switch res.Classification {
	case dispatch.Success:
		if body != "" {
			console.Info(body)
		}
		console.OK("done")
		return 0
	case dispatch.AuthFailure:
		console.Fail("authentication rejected: " + body)
		return 1
	default:
		if res.TimedOut {
			console.Fail("timed out: " + body)
			return 1
		}
		console.Fail(body)
		return 1
	}
}
