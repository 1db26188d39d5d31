// Where: internal/commands/competition_cmd.go
// What: Competition listing, reporting, and submission commands.
package commands

import (
	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/report"
)

// CompetitionCmd groups the competition subcommands. Listings and reports go
// through the MCP surface; downloads and submissions go through the external
// CLI because the protocol surface has no submission upload completion.
type CompetitionCmd struct {
	List        CompetitionListCmd        `cmd:"" help:"List recent competitions"`
	Report      CompetitionReportCmd      `cmd:"" help:"Detailed report for one competition"`
	Download    CompetitionDownloadCmd    `cmd:"" help:"Download competition data files"`
	Submit      CompetitionSubmitCmd      `cmd:"" help:"Submit a file to a competition"`
	Submissions CompetitionSubmissionsCmd `cmd:"" help:"List your submissions"`
}

type (
	CompetitionListCmd struct {
		LookbackDays int  `default:"30" help:"How many days to look back"`
		JSON         bool `help:"Emit JSON"`
	}
	CompetitionReportCmd struct {
		Slug string `arg:"" help:"Competition slug"`
		TopN int    `default:"5" help:"Leaderboard entries to include"`
		JSON bool   `help:"Emit JSON"`
	}
	CompetitionDownloadCmd struct {
		Slug string `arg:"" help:"Competition slug"`
		Dir  string `short:"p" default:"." help:"Destination directory"`
	}
	CompetitionSubmitCmd struct {
		Slug    string `arg:"" help:"Competition slug"`
		File    string `short:"f" required:"" help:"Submission file"`
		Message string `short:"m" default:"kagglectl submission" help:"Submission message"`
	}
	CompetitionSubmissionsCmd struct {
		Slug string `arg:"" help:"Competition slug"`
	}
)

func (c *commandContext) reportService() (*report.Service, error) {
	set, err := c.credentials()
	if err != nil {
		return nil, err
	}
	return report.NewService(c.mcpClient(), set), nil
}

func runCompetitionList(ctx *commandContext) int {
	cmd := ctx.cli.Competition.List
	svc, err := ctx.reportService()
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	comps, err := svc.Competitions(ctx.background(), cmd.LookbackDays)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	if cmd.JSON {
		if err := report.WriteJSON(ctx.out, comps); err != nil {
			return exitWithError(ctx.console, err)
		}
		return 0
	}
	report.RenderCompetitions(ctx.console, comps)
	return 0
}

func runCompetitionReport(ctx *commandContext) int {
	cmd := ctx.cli.Competition.Report
	svc, err := ctx.reportService()
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	details, err := svc.Details(ctx.background(), cmd.Slug, cmd.TopN)
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	if cmd.JSON {
		if err := report.WriteJSON(ctx.out, details); err != nil {
			return exitWithError(ctx.console, err)
		}
		return 0
	}
	report.RenderDetails(ctx.console, details)
	return 0
}

func runCompetitionDownload(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Competition.Download
		res, err := ops.CompetitionsDownload(ctx.background(), cmd.Slug, cmd.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runCompetitionSubmit(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Competition.Submit
		res, err := ops.CompetitionsSubmit(ctx.background(), cmd.Slug, cmd.File, cmd.Message)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runCompetitionSubmissions(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		res, err := ops.CompetitionsSubmissions(ctx.background(), ctx.cli.Competition.Submissions.Slug)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}
