// Where: internal/commands/command_context.go
// What: Shared wiring for command handlers.
// Why: Centralize config, credential, and surface construction.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/badge"
	"github.com/nurfaiz0909/kagglectl/internal/config"
	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/mcp"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
)

// commandContext bundles everything a handler needs.
type commandContext struct {
	cli     CLI
	deps    Dependencies
	out     io.Writer
	console *ui.Console
	cfg     config.GlobalConfig
}

func newCommandContext(cli CLI, deps Dependencies, out io.Writer) (*commandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &commandContext{
		cli:     cli,
		deps:    deps,
		out:     out,
		console: ui.New(out),
		cfg:     cfg,
	}, nil
}

func (c *commandContext) background() context.Context {
	return context.Background()
}

func (c *commandContext) resolver() creds.Resolver {
	return creds.Resolver{
		HomeDir: c.deps.HomeDir,
		Warnf: func(format string, args ...any) {
			c.console.Warn(fmt.Sprintf(format, args...))
		},
	}
}

// credentials resolves the ambient credential set, re-reading sources on
// every call.
func (c *commandContext) credentials() (creds.Set, error) {
	set, source, err := c.resolver().Resolve()
	if err != nil {
		return creds.Set{}, fmt.Errorf("%w; set KAGGLE_API_TOKEN, or KAGGLE_USERNAME and KAGGLE_KEY, or create ~/.kaggle/kaggle.json", err)
	}
	c.console.Item("credentials", fmt.Sprintf("%s (%s)", set.Kind(), source))
	return set, nil
}

func (c *commandContext) mcpClient() MCPClient {
	if c.deps.NewMCP != nil {
		return c.deps.NewMCP(c.cfg.MCPEndpoint, c.cfg.CallTimeout())
	}
	return mcp.New(c.cfg.MCPEndpoint, c.cfg.CallTimeout())
}

// mcpDispatcher wraps the protocol client with the single-fallback retry.
func (c *commandContext) mcpDispatcher() dispatch.Dispatcher {
	return dispatch.FallbackPolicy{Dispatcher: c.mcpClient()}
}

// cliTool builds the external-binary dispatcher with the configured rate
// limit, wrapped with the single-fallback retry.
func (c *commandContext) cliOps(set creds.Set) kagglecli.Ops {
	bin := kagglecli.Locate(c.cfg.KaggleBin)
	tool := kagglecli.NewTool(bin, c.deps.Runner, c.cfg.RateLimit())
	return kagglecli.Ops{
		Dispatcher: dispatch.FallbackPolicy{Dispatcher: tool},
		Creds:      set,
	}
}

func (c *commandContext) progressPath() (string, error) {
	if c.deps.ProgressPath != "" {
		return c.deps.ProgressPath, nil
	}
	return badge.DefaultProgressPath()
}

// callTimeout is the wall-clock bound for one external call.
func (c *commandContext) callTimeout() time.Duration {
	return c.cfg.CallTimeout()
}
