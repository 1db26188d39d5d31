// Where: internal/kagglecli/runner.go
// What: Process execution for the external kaggle binary.
// Why: Exit status and stdout text are the only contract the CLI surface has.
package kagglecli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"github.com/rs/zerolog/log"
)

// CommandRunner defines the interface for executing the external binary.
type CommandRunner interface {
	// CombinedOutput runs the command and returns its combined output and
	// exit code. A non-zero exit is not an error; only failure to run is.
	CombinedOutput(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, int, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) CombinedOutput(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if env != nil {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, err
	}
	return out, 0, nil
}

// Locate finds the kaggle binary. An explicit override wins, then PATH, then
// the common user-local install location. The bare name is returned as a last
// resort so the eventual exec error names the missing binary.
func Locate(override string) string {
	if override != "" && override != meta.DefaultKaggleBin {
		return override
	}
	if path, err := exec.LookPath(meta.DefaultKaggleBin); err == nil {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".local", "bin", meta.DefaultKaggleBin)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return meta.DefaultKaggleBin
}

// Tool dispatches commands to the external kaggle binary with an
// unconditional inter-call delay for rate limiting.
type Tool struct {
	Bin    string
	Runner CommandRunner
	Delay  time.Duration

	sleep func(time.Duration)
}

// NewTool builds a Tool around the given binary path.
func NewTool(bin string, runner CommandRunner, delay time.Duration) *Tool {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Tool{Bin: bin, Runner: runner, Delay: delay, sleep: time.Sleep}
}

// Dispatch implements dispatch.Dispatcher. The operation is the space-joined
// verb/noun command ("kernels push"); Args render as flag-style arguments in
// deterministic order, with the "_" key carrying positional arguments.
func (t *Tool) Dispatch(ctx context.Context, cmd dispatch.Command, set creds.Set) (dispatch.Result, error) {
	argv := renderArgs(cmd)

	log.Debug().Str("bin", t.Bin).Strs("args", argv).Msg("kaggle cli dispatch")

	out, exitCode, err := t.Runner.CombinedOutput(ctx, "", credentialEnv(set), t.Bin, argv...)
	t.pause()
	// A process killed by the deadline surfaces as a plain non-zero exit, so
	// the context check must come before the error and exit code are read.
	if ctx.Err() != nil {
		return dispatch.Result{
			RawOutput:      "timeout",
			Classification: dispatch.OtherError,
			TimedOut:       true,
		}, nil
	}
	if err != nil {
		return dispatch.Result{}, err
	}

	body := string(out)
	cls := dispatch.Classify(body)
	if exitCode != 0 && cls == dispatch.Success {
		cls = dispatch.OtherError
	}
	return dispatch.Result{RawOutput: body, Classification: cls}, nil
}

func (t *Tool) pause() {
	if t.Delay <= 0 {
		return
	}
	sleep := t.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(t.Delay)
}

// renderArgs turns a command descriptor into argv. Flag keys are sorted so
// invocations are reproducible.
func renderArgs(cmd dispatch.Command) []string {
	argv := strings.Fields(cmd.Op)

	if positional, ok := cmd.Args["_"].([]string); ok {
		argv = append(argv, positional...)
	}

	keys := make([]string, 0, len(cmd.Args))
	for k := range cmd.Args {
		if k == "_" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		flag := k
		if !strings.HasPrefix(flag, "-") {
			flag = "--" + flag
		}
		switch v := cmd.Args[k].(type) {
		case bool:
			if v {
				argv = append(argv, flag)
			}
		case nil:
			argv = append(argv, flag)
		default:
			argv = append(argv, flag, fmt.Sprintf("%v", v))
		}
	}
	return argv
}

// credentialEnv renders the set as the environment the external CLI expects.
func credentialEnv(set creds.Set) []string {
	var env []string
	if set.Username != "" {
		env = append(env, meta.EnvUsername+"="+set.Username)
	}
	if set.LegacyKey != "" {
		env = append(env, meta.EnvLegacyKey+"="+set.LegacyKey)
	}
	if set.ScopedToken != "" {
		env = append(env, meta.EnvAPIToken+"="+set.ScopedToken)
	}
	return env
}
