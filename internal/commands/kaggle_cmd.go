// Where: internal/commands/kaggle_cmd.go
// What: Kernel, dataset, and model commands over the external CLI.
package commands

import (
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
)

// KernelCmd groups the kernel subcommands.
type KernelCmd struct {
	Push   KernelPushCmd   `cmd:"" help:"Push a staged kernel directory"`
	Pull   KernelPullCmd   `cmd:"" help:"Pull a public kernel's code"`
	Status KernelStatusCmd `cmd:"" help:"Show a kernel's execution status"`
	Output KernelOutputCmd `cmd:"" help:"Download a finished kernel's output"`
	Wait   KernelWaitCmd   `cmd:"" help:"Poll a kernel until it completes"`
}

type (
	KernelPushCmd struct {
		Dir string `arg:"" help:"Staging directory containing kernel-metadata.json"`
	}
	KernelPullCmd struct {
		Ref string `arg:"" help:"Kernel reference (owner/slug)"`
		Dir string `short:"p" default:"." help:"Destination directory"`
	}
	KernelStatusCmd struct {
		Ref string `arg:"" help:"Kernel reference (owner/slug)"`
	}
	KernelOutputCmd struct {
		Ref string `arg:"" help:"Kernel reference (owner/slug)"`
		Dir string `short:"p" default:"." help:"Destination directory"`
	}
	KernelWaitCmd struct {
		Ref      string        `arg:"" help:"Kernel reference (owner/slug)"`
		Interval time.Duration `default:"30s" help:"Poll interval"`
		Timeout  time.Duration `default:"10m" help:"Give up after this long"`
	}
)

// DatasetCmd groups the dataset subcommands.
type DatasetCmd struct {
	Create   DatasetCreateCmd   `cmd:"" help:"Create a dataset from a staged directory"`
	Download DatasetDownloadCmd `cmd:"" help:"Download and unzip a dataset"`
}

type (
	DatasetCreateCmd struct {
		Dir string `arg:"" help:"Staging directory containing dataset-metadata.json"`
	}
	DatasetDownloadCmd struct {
		Handle string `arg:"" help:"Dataset handle (owner/slug)"`
		Dir    string `short:"p" default:"." help:"Destination directory"`
	}
)

// ModelCmd groups the model subcommands.
type ModelCmd struct {
	Create ModelCreateCmd `cmd:"" help:"Create a model from a staged directory"`
}

type ModelCreateCmd struct {
	Dir string `arg:"" help:"Staging directory containing model-metadata.json"`
}

// withOps resolves credentials, builds the CLI surface, and runs fn.
func withOps(ctx *commandContext, fn func(kagglecli.Ops) int) int {
	set, err := ctx.credentials()
	if err != nil {
		return exitWithError(ctx.console, err)
	}
	return fn(ctx.cliOps(set))
}

func runKernelPush(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		res, err := ops.KernelsPush(ctx.background(), ctx.cli.Kernel.Push.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runKernelPull(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Kernel.Pull
		res, err := ops.KernelsPull(ctx.background(), cmd.Ref, cmd.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runKernelStatus(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		res, err := ops.KernelsStatus(ctx.background(), ctx.cli.Kernel.Status.Ref)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runKernelOutput(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Kernel.Output
		res, err := ops.KernelsOutput(ctx.background(), cmd.Ref, cmd.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runKernelWait(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Kernel.Wait
		if err := kagglecli.WaitForKernel(ctx.background(), ops, cmd.Ref, cmd.Interval, cmd.Timeout); err != nil {
			return exitWithError(ctx.console, err)
		}
		ctx.console.OK("kernel completed")
		return 0
	})
}

func runDatasetCreate(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		res, err := ops.DatasetsCreate(ctx.background(), ctx.cli.Dataset.Create.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runDatasetDownload(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		cmd := ctx.cli.Dataset.Download
		res, err := ops.DatasetsDownload(ctx.background(), cmd.Handle, cmd.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}

func runModelCreate(ctx *commandContext) int {
	return withOps(ctx, func(ops kagglecli.Ops) int {
		res, err := ops.ModelsCreate(ctx.background(), ctx.cli.Model.Create.Dir)
		if err != nil {
			return exitWithError(ctx.console, err)
		}
		return reportResult(ctx.console, res)
	})
}
