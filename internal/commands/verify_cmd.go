// Where: internal/commands/verify_cmd.go
// What: MCP endpoint verification command.
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"github.com/nurfaiz0909/kagglectl/internal/verify"
)

// VerifyCmd runs the endpoint verification harness. The exit code is zero
// exactly when no hard failure was recorded; skips and expected rejections do
// not count.
type VerifyCmd struct {
	Quick     bool   `help:"Probe only the fast subset of tools"`
	ReportDir string `name:"report-dir" help:"Write a markdown report into this directory"`
}

// verifySchemes splits the ambient credentials into one set per scheme so the
// harness can compare them.
func verifySchemes(resolver creds.Resolver) (scoped, legacy creds.Set) {
	set, _, err := resolver.Resolve()
	if err != nil {
		return creds.Set{}, creds.Set{}
	}
	if set.ScopedToken != "" {
		scoped = creds.Set{Username: set.Username, ScopedToken: set.ScopedToken}
	}
	if set.LegacyKey != "" {
		legacy = creds.Set{Username: set.Username, LegacyKey: set.LegacyKey}
	}
	// The resolver returns the first complete source; the other scheme may
	// still exist in a lower-priority source.
	if legacy.LegacyKey == "" {
		if key := strings.TrimSpace(os.Getenv(meta.EnvLegacyKey)); creds.IsLegacyKey(key) {
			legacy = creds.Set{Username: set.Username, LegacyKey: key}
		}
	}
	return scoped, legacy
}

func runVerify(ctx *commandContext) int {
	cmd := ctx.cli.Verify
	scoped, legacy := verifySchemes(ctx.resolver())
	if !scoped.Usable() && !legacy.Usable() {
		return exitWithError(ctx.console, creds.ErrNotFound)
	}

	rec := verify.NewRecorder(ctx.console)
	harness := verify.NewHarness(ctx.mcpClient(), rec, scoped, legacy)
	harness.Quick = cmd.Quick

	ctx.console.Header("Verification")
	if err := harness.Run(ctx.background()); err != nil {
		return exitWithError(ctx.console, err)
	}

	ctx.console.Info("")
	ctx.console.Info(fmt.Sprintf("results: %d passed, %d failed, %d known_fail, %d skipped (total %d)",
		rec.Count(verify.Pass), rec.Count(verify.Fail),
		rec.Count(verify.KnownFail), rec.Count(verify.Skip), rec.Total()))

	if cmd.ReportDir != "" {
		info := verify.RunInfo{
			Timestamp: time.Now(),
			Username:  scoped.Username,
			HasScoped: scoped.Usable(),
			HasLegacy: legacy.Usable(),
		}
		if info.Username == "" {
			info.Username = legacy.Username
		}
		path, err := verify.SaveReport(cmd.ReportDir, rec, info)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		ctx.console.OK("report saved to " + path)
	}
	return rec.ExitCode()
}
