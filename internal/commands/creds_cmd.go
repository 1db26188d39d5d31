// Where: internal/commands/creds_cmd.go
// What: Credential inspection and bootstrap commands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"github.com/nurfaiz0909/kagglectl/internal/report"
)

// CredsCmd groups the credential subcommands.
type CredsCmd struct {
	Check CredsCheckCmd `cmd:"" help:"Show credential configuration with masked values"`
	Init  CredsInitCmd  `cmd:"" help:"Write ~/.kaggle/kaggle.json from flags or environment"`
}

type (
	CredsCheckCmd struct {
		JSON bool `help:"Emit the report as JSON"`
	}
	CredsInitCmd struct {
		Username string `help:"Kaggle username (defaults to KAGGLE_USERNAME)"`
		Key      string `help:"Legacy API key (defaults to KAGGLE_KEY)"`
	}
)

func runCredsCheck(ctx *commandContext) int {
	resolver := ctx.resolver()
	rep := resolver.BuildReport()

	if ctx.cli.Creds.Check.JSON {
		if err := report.WriteJSON(ctx.out, rep); err != nil {
			return exitWithError(ctx.console, err)
		}
		if rep.Found() == 0 {
			return 1
		}
		return 0
	}

	ctx.console.Header("Credentials")
	for _, status := range []creds.Status{rep.Username, rep.Legacy, rep.Scoped} {
		if status.OK {
			ctx.console.OK(fmt.Sprintf("%s = %s (%s)", status.Name, status.Value, status.Source))
		} else {
			ctx.console.Missing(status.Name + " not configured")
		}
	}

	// Alias diagnostic and kaggle.json permission check run as part of the
	// report, matching the resolver's own warnings.
	if _, _, err := resolver.Resolve(); err != nil {
		ctx.console.Fail("no usable credential set resolved")
		return 1
	}
	if loose, mode := creds.CheckKaggleJSONMode(kaggleDir(ctx)); loose {
		ctx.console.Warn(fmt.Sprintf("kaggle.json permissions are %04o, expected 0600", mode))
	}

	ctx.console.Info("")
	ctx.console.OK(fmt.Sprintf("%d of 3 credential slots configured", rep.Found()))
	return 0
}

func runCredsInit(ctx *commandContext) int {
	cmd := ctx.cli.Creds.Init
	username := cmd.Username
	if username == "" {
		username = os.Getenv(meta.EnvUsername)
	}
	key := cmd.Key
	if key == "" {
		key = os.Getenv(meta.EnvLegacyKey)
	}
	if username == "" || key == "" {
		return exitWithError(ctx.console, fmt.Errorf("username and key are required, pass flags or set %s and %s", meta.EnvUsername, meta.EnvLegacyKey))
	}

	created, err := creds.EnsureKaggleJSON(kaggleDir(ctx), username, key)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	if created {
		ctx.console.OK("kaggle.json written with 0600 permissions")
	} else {
		ctx.console.Info("kaggle.json already exists, left untouched")
	}
	return 0
}

func kaggleDir(ctx *commandContext) string {
	home := ctx.deps.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, meta.KaggleDir)
}
