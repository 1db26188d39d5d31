// Where: internal/commands/mcp_cmd.go
// What: Direct MCP endpoint commands.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
)

// MCPCmd groups the protocol-endpoint subcommands.
type MCPCmd struct {
	Call  MCPCallCmd  `cmd:"" help:"Invoke one tool by name"`
	Tools MCPToolsCmd `cmd:"" help:"List the advertised tools"`
	Ping  MCPPingCmd  `cmd:"" help:"Check endpoint reachability"`
}

type (
	MCPCallCmd struct {
		Tool string `arg:"" help:"Tool name, e.g. search_competitions"`
		Args string `help:"Tool arguments as a JSON object"`
	}
	MCPToolsCmd struct{}
	MCPPingCmd  struct{}
)

func runMCPCall(ctx *commandContext) int {
	cmd := ctx.cli.MCP.Call
	args := map[string]any{}
	if cmd.Args != "" {
		if err := json.Unmarshal([]byte(cmd.Args), &args); err != nil {
			return exitWithError(ctx.console, fmt.Errorf("parse --args: %w", err))
		}
	}

	set, err := ctx.credentials()
	if err != nil {
		return exitWithError(ctx.console, err)
	}

	res, err := ctx.mcpDispatcher().Dispatch(ctx.background(), dispatch.Command{Op: cmd.Tool, Args: args}, set)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	return reportResult(ctx.console, res)
}

func runMCPTools(ctx *commandContext) int {
	set, err := ctx.credentials()
	if err != nil {
		return exitWithError(ctx.console, err)
	}

	tools, err := ctx.mcpClient().ListTools(ctx.background(), set)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	ctx.console.Header("Tools")
	for _, tool := range tools {
		ctx.console.ItemPlain(tool.Name)
	}
	ctx.console.Info("")
	ctx.console.OK(fmt.Sprintf("%d tools advertised", len(tools)))
	return 0
}

func runMCPPing(ctx *commandContext) int {
	code, err := ctx.mcpClient().Reachable(ctx.background())
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	// Any HTTP response means the endpoint is up; auth comes later.
	ctx.console.OK(fmt.Sprintf("endpoint reachable (HTTP %d)", code))
	return 0
}
