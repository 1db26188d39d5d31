// Where: internal/commands/badge_cmd.go
// What: Badge collector commands.
package commands

import (
	"fmt"
	"strconv"

	"github.com/nurfaiz0909/kagglectl/internal/badge"
)

// BadgeCmd groups the collector subcommands.
type BadgeCmd struct {
	Run    BadgeRunCmd    `cmd:"" help:"Attempt automatable badges"`
	Status BadgeStatusCmd `cmd:"" help:"Show badge progress"`
	List   BadgeListCmd   `cmd:"" help:"List known badges"`
}

type (
	BadgeRunCmd struct {
		Phase  string `default:"all" help:"Phase to run: 1-5 or 'all'"`
		DryRun bool   `name:"dry-run" help:"Show planned actions without executing"`
	}
	BadgeStatusCmd struct{}
	BadgeListCmd   struct{}
)

func parsePhases(value string) ([]badge.Phase, error) {
	if value == "all" || value == "" {
		return badge.AllPhases, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < int(badge.PhaseInstant) || n > int(badge.PhaseStreaks) {
		return nil, fmt.Errorf("invalid phase %q, use 1-5 or 'all'", value)
	}
	return []badge.Phase{badge.Phase(n)}, nil
}

func (c *commandContext) orchestrator() (*badge.Orchestrator, error) {
	path, err := c.progressPath()
	if err != nil {
		return nil, err
	}
	tracker, err := badge.NewTracker(path)
	if err != nil {
		return nil, err
	}

	set, err := c.credentials()
	if err != nil {
		return nil, err
	}
	if set.Username == "" {
		return nil, fmt.Errorf("username required for badge collection, set KAGGLE_USERNAME or kaggle.json")
	}

	return &badge.Orchestrator{Collector: &badge.Collector{
		Ops:      c.cliOps(set),
		Tracker:  tracker,
		Stager:   badge.NewStager(c.deps.StageDir),
		Username: set.Username,
		Console:  c.console,
	}}, nil
}

func runBadgeRun(ctx *commandContext) int {
	cmd := ctx.cli.Badge.Run
	phases, err := parsePhases(cmd.Phase)
	if err != nil {
		return exitWithError(ctx.console, err)
	}

	orch, err := ctx.orchestrator()
	if err != nil {
		return exitWithError(ctx.console, err)
	}

	if cmd.DryRun {
		orch.DryRun(phases)
		return 0
	}

	sum, err := orch.Run(ctx.background(), phases)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	ctx.console.Info("")
	ctx.console.OK(fmt.Sprintf("complete: %d/%d badges earned", sum.Earned, sum.Attempted))
	orch.Collector.Tracker.PrintStatusTable(ctx.console)
	return 0
}

func runBadgeStatus(ctx *commandContext) int {
	path, err := ctx.progressPath()
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	tracker, err := badge.NewTracker(path)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	tracker.PrintStatusTable(ctx.console)
	return 0
}

func runBadgeList(ctx *commandContext) int {
	ctx.console.Header("Badges")
	for _, b := range badge.Registry {
		auto := "manual"
		if b.Automatable {
			auto = "automatable"
		}
		ctx.console.ItemPlain(fmt.Sprintf("%s (phase %d, %s): %s", b.Name, b.Phase, auto, b.Description))
	}
	ctx.console.Info("")
	ctx.console.Info(fmt.Sprintf("%d of %d badges automatable", len(badge.Automatable()), len(badge.Registry)))
	return 0
}
