// Where: internal/badge/pipeline.go
// What: Phase 3 actions, badges that need a remote notebook run first.
package badge

import (
	"context"
	"fmt"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/manifest"
)

const (
	// PollInterval is the gap between kernel status checks.
	PollInterval = 30 * time.Second
	// PollTimeout bounds how long a remote run may take.
	PollTimeout = 10 * time.Minute
)

// PipelineActions lists the phase 3 attempts in execution order.
func (c *Collector) PipelineActions() []action {
	return []action{
		{
			badgeIDs: []string{"dataset_pipeline_creator"},
			label:    "dataset from notebook output",
			run:      c.datasetPipeline,
		},
		{
			badgeIDs: []string{"model_pipeline_creator"},
			label:    "model from notebook output",
			run:      c.modelPipeline,
		},
		{
			badgeIDs: []string{"r_markdown_coder"},
			label:    "execute r notebook",
			run:      c.runRNotebook,
		},
	}
}

// RunPipeline executes all phase 3 actions whose badges are still pending.
func (c *Collector) RunPipeline(ctx context.Context) (attempted, earned int, err error) {
	return c.runActions(ctx, c.PipelineActions())
}

// runAndFetchOutput pushes a notebook, waits for the remote run, and pulls
// its output files into a fresh staging directory.
func (c *Collector) runAndFetchOutput(ctx context.Context, slug, suffix string) (string, error) {
	dir, err := c.Stager.StageNotebook(c.Username, slug, "python", []string{"badge-collector", "pipeline"})
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPush(ctx, dir)); err != nil {
		return "", err
	}
	ref := c.Username + "/" + slug

	c.Console.ItemPlain("waiting for remote execution of " + ref)
	if err := kagglecli.WaitForKernel(ctx, c.Ops, ref, PollInterval, PollTimeout); err != nil {
		return "", err
	}

	outputDir, err := c.Stager.tempDir(suffix)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsOutput(ctx, ref, outputDir)); err != nil {
		return "", err
	}
	return outputDir, nil
}

func (c *Collector) datasetPipeline(ctx context.Context) (string, error) {
	nbSlug := ResourceName("ds-pipeline-nb")
	outputDir, err := c.runAndFetchOutput(ctx, nbSlug, "-ds-output")
	if err != nil {
		return "", err
	}

	dsSlug := ResourceName("pipeline-ds")
	_, err = manifest.WriteDoc(outputDir, manifest.KindDataset, manifest.Dataset{
		Title:    titleFor(dsSlug),
		ID:       c.Username + "/" + dsSlug,
		Licenses: []manifest.License{{Name: "CC0-1.0"}},
		Keywords: []string{"badge-collector", "pipeline"},
	})
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.DatasetsCreate(ctx, outputDir)); err != nil {
		return "", err
	}
	return fmt.Sprintf("dataset=%s from notebook=%s", dsSlug, nbSlug), nil
}

func (c *Collector) modelPipeline(ctx context.Context) (string, error) {
	nbSlug := ResourceName("model-pipeline-nb")
	outputDir, err := c.runAndFetchOutput(ctx, nbSlug, "-model-output")
	if err != nil {
		return "", err
	}

	modelSlug := ResourceName("pipeline-model")
	_, err = manifest.WriteDoc(outputDir, manifest.KindModel, manifest.Model{
		Owner:     c.Username,
		Title:     titleFor(modelSlug),
		Slug:      modelSlug,
		IsPrivate: true,
	})
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.ModelsCreate(ctx, outputDir)); err != nil {
		return "", err
	}
	return fmt.Sprintf("model=%s from notebook=%s", modelSlug, nbSlug), nil
}

// runRNotebook pushes an R notebook and waits for it to execute remotely.
func (c *Collector) runRNotebook(ctx context.Context) (string, error) {
	slug := ResourceName("r-exec-nb")
	dir, err := c.Stager.StageNotebook(c.Username, slug, "r", []string{"badge-collector", "r"})
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPush(ctx, dir)); err != nil {
		return "", err
	}
	ref := c.Username + "/" + slug
	if err := kagglecli.WaitForKernel(ctx, c.Ops, ref, PollInterval, PollTimeout); err != nil {
		return "", err
	}
	return "notebook=" + slug, nil
}
