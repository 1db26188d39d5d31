// Where: internal/commands/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command wiring and exit codes are stable.
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/mcp"
)

const testScopedToken = "KGAT_0123456789abcdef0123456789abcdef"

// setupEnv isolates the test from ambient credentials and global config. The
// written config leaves the rate limit at zero so CLI-backed commands do not
// sleep between calls.
func setupEnv(t *testing.T) {
	t.Helper()
	cfgHome := t.TempDir()
	if err := os.WriteFile(filepath.Join(cfgHome, "config.yaml"), []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KAGGLECTL_CONFIG_HOME", cfgHome)
	t.Setenv("KAGGLECTL_CONFIG_PATH", "")
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")
	t.Setenv("KAGGLE_API_TOKEN", "")
	t.Setenv("KAGGLE_MCP_TOKEN", "")
	t.Setenv("KAGGLE_TOKEN", "")
}

type recordedCall struct {
	name string
	args []string
	env  []string
}

type fakeRunner struct {
	calls    []recordedCall
	output   string
	exitCode int
}

func (f *fakeRunner) CombinedOutput(_ context.Context, _ string, env []string, name string, args ...string) ([]byte, int, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args, env: env})
	return []byte(f.output), f.exitCode, nil
}

type fakeMCP struct {
	tools      []mcp.ToolInfo
	result     dispatch.Result
	pingStatus int
}

func (f *fakeMCP) Dispatch(_ context.Context, _ dispatch.Command, _ creds.Set) (dispatch.Result, error) {
	return f.result, nil
}

func (f *fakeMCP) CallTool(ctx context.Context, tool string, args map[string]any, set creds.Set) (dispatch.Result, error) {
	return f.Dispatch(ctx, dispatch.Command{Op: tool, Args: args}, set)
}

func (f *fakeMCP) ListTools(_ context.Context, _ creds.Set) ([]mcp.ToolInfo, error) {
	return f.tools, nil
}

func (f *fakeMCP) Reachable(_ context.Context) (int, error) {
	return f.pingStatus, nil
}

func newMCPFactory(f *fakeMCP) func(string, time.Duration) MCPClient {
	return func(_ string, _ time.Duration) MCPClient { return f }
}

func TestRunNoArgs(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run(nil, Dependencies{Out: &out})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "kagglectl creds check") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"version"}, Dependencies{Out: &out})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected version output")
	}
}

func TestRunCompletionScripts(t *testing.T) {
	setupEnv(t)

	cases := map[string]string{
		"bash": "complete -F _kagglectl_completion kagglectl",
		"zsh":  "#compdef kagglectl",
		"fish": "__fish_use_subcommand",
	}
	for shell, marker := range cases {
		var out bytes.Buffer
		exitCode := Run([]string{"completion", shell}, Dependencies{Out: &out})
		if exitCode != 0 {
			t.Fatalf("%s: expected exit code 0, got %d", shell, exitCode)
		}
		if !strings.Contains(out.String(), marker) {
			t.Fatalf("%s: expected %q in script, got %q", shell, marker, out.String())
		}
	}
}

func TestRunCredsCheckNothingConfigured(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"creds", "check"}, Dependencies{Out: &out, HomeDir: t.TempDir()})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "[MISSING]") {
		t.Fatalf("expected missing markers, got %q", out.String())
	}
	if !strings.Contains(out.String(), "no usable credential set resolved") {
		t.Fatalf("expected resolution failure, got %q", out.String())
	}
}

func TestRunCredsCheckScopedToken(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_API_TOKEN", testScopedToken)
	var out bytes.Buffer

	exitCode := Run([]string{"creds", "check"}, Dependencies{Out: &out, HomeDir: t.TempDir()})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "2 of 3 credential slots configured") {
		t.Fatalf("expected slot summary, got %q", out.String())
	}
	if strings.Contains(out.String(), testScopedToken) {
		t.Fatalf("expected masked token, got %q", out.String())
	}
}

func TestRunCredsInitWritesKaggleJSON(t *testing.T) {
	setupEnv(t)
	home := t.TempDir()
	var out bytes.Buffer

	exitCode := Run([]string{"creds", "init", "--username", "alice", "--key", "cafe0123cafe0123cafe0123cafe0123"},
		Dependencies{Out: &out, HomeDir: home})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, out.String())
	}

	path := filepath.Join(home, ".kaggle", "kaggle.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected kaggle.json: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %04o", info.Mode().Perm())
	}

	// Second run leaves the existing file untouched.
	out.Reset()
	exitCode = Run([]string{"creds", "init", "--username", "bob", "--key", "cafe0123cafe0123cafe0123cafe0123"},
		Dependencies{Out: &out, HomeDir: home})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "left untouched") {
		t.Fatalf("expected untouched notice, got %q", out.String())
	}
}

func TestRunCredsInitMissingInputs(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"creds", "init"}, Dependencies{Out: &out, HomeDir: t.TempDir()})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestRunMCPTools(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", testScopedToken)
	var out bytes.Buffer

	client := &fakeMCP{tools: []mcp.ToolInfo{{Name: "search_competitions"}, {Name: "search_datasets"}}}
	exitCode := Run([]string{"mcp", "tools"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), NewMCP: newMCPFactory(client)})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "search_competitions") {
		t.Fatalf("expected tool listing, got %q", out.String())
	}
	if !strings.Contains(out.String(), "2 tools advertised") {
		t.Fatalf("expected tool count, got %q", out.String())
	}
}

func TestRunMCPCallSuccess(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", testScopedToken)
	var out bytes.Buffer

	client := &fakeMCP{result: dispatch.Result{RawOutput: `{"competitions":[]}`, Classification: dispatch.Success}}
	exitCode := Run([]string{"mcp", "call", "search_competitions", "--args", `{"query":"titanic"}`},
		Dependencies{Out: &out, HomeDir: t.TempDir(), NewMCP: newMCPFactory(client)})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "[OK] done") {
		t.Fatalf("expected success marker, got %q", out.String())
	}
}

func TestRunMCPCallAuthFailure(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", testScopedToken)
	var out bytes.Buffer

	client := &fakeMCP{result: dispatch.Result{RawOutput: "unauthenticated", Classification: dispatch.AuthFailure}}
	exitCode := Run([]string{"mcp", "call", "search_competitions"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), NewMCP: newMCPFactory(client)})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "authentication rejected") {
		t.Fatalf("expected auth failure output, got %q", out.String())
	}
}

func TestRunMCPCallBadArgs(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", testScopedToken)
	var out bytes.Buffer

	exitCode := Run([]string{"mcp", "call", "search_competitions", "--args", "{not json"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), NewMCP: newMCPFactory(&fakeMCP{})})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "parse --args") {
		t.Fatalf("expected parse error, got %q", out.String())
	}
}

func TestRunMCPPing(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	client := &fakeMCP{pingStatus: 401}
	exitCode := Run([]string{"mcp", "ping"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), NewMCP: newMCPFactory(client)})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "HTTP 401") {
		t.Fatalf("expected status code in output, got %q", out.String())
	}
}

func TestRunKernelPush(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "cafe0123cafe0123cafe0123cafe0123")
	var out bytes.Buffer

	runner := &fakeRunner{output: "Kernel version pushed"}
	exitCode := Run([]string{"kernel", "push", "/tmp/stage"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), Runner: runner})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, out.String())
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected one CLI call, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	want := []string{"kernels", "push", "-p", "/tmp/stage"}
	if strings.Join(call.args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected argv: %v", call.args)
	}
	joined := strings.Join(call.env, " ")
	if !strings.Contains(joined, "KAGGLE_USERNAME=alice") || !strings.Contains(joined, "KAGGLE_KEY=cafe0123cafe0123cafe0123cafe0123") {
		t.Fatalf("expected credential env, got %v", call.env)
	}
}

func TestRunDatasetDownloadFailure(t *testing.T) {
	setupEnv(t)
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "cafe0123cafe0123cafe0123cafe0123")
	var out bytes.Buffer

	runner := &fakeRunner{output: "403 - Forbidden", exitCode: 1}
	exitCode := Run([]string{"dataset", "download", "alice/titanic"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), Runner: runner})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "[FAIL]") {
		t.Fatalf("expected failure marker, got %q", out.String())
	}
}

func TestRunCommandWithoutCredentials(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"kernel", "push", "/tmp/stage"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), Runner: &fakeRunner{}})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "KAGGLE_API_TOKEN") {
		t.Fatalf("expected remediation hint, got %q", out.String())
	}
}

func TestRunBadgeList(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"badge", "list"}, Dependencies{Out: &out, HomeDir: t.TempDir()})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "Python Coder") {
		t.Fatalf("expected badge listing, got %q", out.String())
	}
	if !strings.Contains(out.String(), "19 of 26 badges automatable") {
		t.Fatalf("expected automatable summary, got %q", out.String())
	}
}

func TestRunBadgeRunInvalidPhase(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"badge", "run", "--phase", "9"},
		Dependencies{Out: &out, HomeDir: t.TempDir(), ProgressPath: filepath.Join(t.TempDir(), "progress.json")})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "invalid phase") {
		t.Fatalf("expected phase error, got %q", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"bogus"}, Dependencies{Out: &out})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}
