// Where: internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/mcp"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// MCPClient is the slice of the protocol client the commands use.
type MCPClient interface {
	dispatch.Dispatcher
	CallTool(ctx context.Context, tool string, args map[string]any, set creds.Set) (dispatch.Result, error)
	ListTools(ctx context.Context, set creds.Set) ([]mcp.ToolInfo, error)
	Reachable(ctx context.Context) (int, error)
}

// Dependencies holds the injected subsystems commands execute against. Every
// field has a production default so the zero value works outside tests.
type Dependencies struct {
	Out io.Writer
	// Runner executes the external kaggle binary; nil uses os/exec.
	Runner kagglecli.CommandRunner
	// NewMCP constructs the protocol client; nil uses the HTTP client.
	NewMCP func(endpoint string, timeout time.Duration) MCPClient
	// HomeDir overrides the user home for credential probing.
	HomeDir string
	// StageDir overrides the staging scratch root.
	StageDir string
	// ProgressPath overrides the badge progress file location.
	ProgressPath string
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	EnvFile string `name:"env-file" help:"Path to .env file"`

	Creds       CredsCmd       `cmd:"" help:"Inspect and bootstrap Kaggle credentials"`
	MCP         MCPCmd         `cmd:"" name:"mcp" help:"Work with the MCP endpoint"`
	Kernel      KernelCmd      `cmd:"" help:"Kernel operations via the external CLI"`
	Dataset     DatasetCmd     `cmd:"" help:"Dataset operations via the external CLI"`
	Model       ModelCmd       `cmd:"" help:"Model operations via the external CLI"`
	Competition CompetitionCmd `cmd:"" help:"Competition listings and reports"`
	Badge       BadgeCmd       `cmd:"" help:"Achievement badge collector"`
	Verify      VerifyCmd      `cmd:"" help:"Verify the MCP endpoint surface"`
	Completion  CompletionCmd  `cmd:"" help:"Generate shell completion script"`
	Version     VersionCmd     `cmd:"" help:"Show version information"`
}

// Run is the main entry point for CLI command execution. It parses the
// arguments, wires the command context, and dispatches. Returns the process
// exit code.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	console := ui.New(out)

	if len(args) == 0 {
		return runNoArgs(console)
	}

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(console, err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(console, err)
	}

	configureLogging(cli.Verbose)
	loadEnvFile(cli.EnvFile, console)

	cmdCtx, err := newCommandContext(cli, deps, out)
	if err != nil {
		return exitWithError(console, err)
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cmdCtx); handled {
		return exitCode
	}
	console.Warn("unknown command")
	return 1
}

type commandHandler func(*commandContext) int

func dispatchCommand(command string, ctx *commandContext) (int, bool) {
	handlers := map[string]commandHandler{
		"creds check": runCredsCheck,
		"creds init":  runCredsInit,

		"mcp call <tool>": runMCPCall,
		"mcp tools":       runMCPTools,
		"mcp ping":        runMCPPing,

		"kernel push <dir>":         runKernelPush,
		"kernel pull <ref>":         runKernelPull,
		"kernel status <ref>":       runKernelStatus,
		"kernel output <ref>":       runKernelOutput,
		"kernel wait <ref>":         runKernelWait,
		"dataset create <dir>":      runDatasetCreate,
		"dataset download <handle>": runDatasetDownload,
		"model create <dir>":        runModelCreate,

		"competition list":               runCompetitionList,
		"competition report <slug>":      runCompetitionReport,
		"competition download <slug>":    runCompetitionDownload,
		"competition submit <slug>":      runCompetitionSubmit,
		"competition submissions <slug>": runCompetitionSubmissions,

		"badge run":    runBadgeRun,
		"badge status": runBadgeStatus,
		"badge list":   runBadgeList,

		"verify": runVerify,

		"completion bash": runCompletionBash,
		"completion zsh":  runCompletionZsh,
		"completion fish": runCompletionFish,
		"version":         runVersion,
	}
	if handler, ok := handlers[command]; ok {
		return handler(ctx), true
	}
	return 1, false
}

func runNoArgs(console *ui.Console) int {
	console.Info("Usage:")
	console.Info("  kagglectl creds check")
	console.Info("  kagglectl verify [--quick]")
	console.Info("  kagglectl badge run --phase all")
	console.Info("  kagglectl competition list --lookback-days 30")
	console.Info("")
	console.Info("Try: kagglectl --help")
	return 0
}

// configureLogging sets the global zerolog level; commands log to stderr so
// command output stays clean on stdout.
func configureLogging(verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// loadEnvFile loads an explicit env file, or ./.env when present.
func loadEnvFile(path string, console *ui.Console) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			console.Warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			console.Warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}
