// Where: internal/badge/instant.go
// What: Phase 1 actions, badges earned by single API calls.
package badge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/manifest"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
	"github.com/rs/zerolog/log"
)

// forkSource is a long-lived public notebook used for the fork action.
const forkSource = "alexisbcook/titanic-tutorial"

// Collector runs badge actions against the external CLI surface.
type Collector struct {
	Ops      kagglecli.Ops
	Tracker  *Tracker
	Stager   *Stager
	Username string
	Console  *ui.Console
}

// action maps one earn attempt to the badges it covers.
type action struct {
	badgeIDs []string
	label    string
	run      func(ctx context.Context) (string, error)
}

// InstantActions lists the phase 1 attempts in execution order.
func (c *Collector) InstantActions() []action {
	return []action{
		{
			badgeIDs: []string{"python_coder", "api_notebook_creator", "code_uploader"},
			label:    "push python notebook",
			run:      func(ctx context.Context) (string, error) { return c.pushNotebook(ctx, "python", nil) },
		},
		{
			badgeIDs: []string{"r_coder"},
			label:    "push r notebook",
			run:      func(ctx context.Context) (string, error) { return c.pushNotebook(ctx, "r", nil) },
		},
		{
			badgeIDs: []string{"utility_scripter"},
			label:    "push utility script",
			run:      c.pushUtilityScript,
		},
		{
			badgeIDs: []string{"notebook_forker"},
			label:    "fork public notebook",
			run:      c.forkNotebook,
		},
		{
			badgeIDs: []string{"notebook_tagger"},
			label:    "push tagged notebook",
			run: func(ctx context.Context) (string, error) {
				return c.pushNotebook(ctx, "python", []string{"badge-collector", "automated", "tagged"})
			},
		},
		{
			badgeIDs: []string{"dataset_creator", "api_dataset_creator"},
			label:    "create dataset",
			run: func(ctx context.Context) (string, error) {
				return c.createDataset(ctx, nil, false)
			},
		},
		{
			badgeIDs: []string{"dataset_tagger"},
			label:    "create tagged dataset",
			run: func(ctx context.Context) (string, error) {
				return c.createDataset(ctx, []string{"badge-collector", "automated"}, false)
			},
		},
		{
			badgeIDs: []string{"dataset_documenter"},
			label:    "create documented dataset",
			run: func(ctx context.Context) (string, error) {
				return c.createDataset(ctx, nil, true)
			},
		},
		{
			badgeIDs: []string{"model_creator", "api_model_creator"},
			label:    "create model",
			run: func(ctx context.Context) (string, error) {
				return c.createModel(ctx, false)
			},
		},
		{
			badgeIDs: []string{"model_variation_creator"},
			label:    "create model variation",
			run:      c.createModelVariation,
		},
		{
			badgeIDs: []string{"model_tagger", "model_documenter"},
			label:    "create documented model",
			run: func(ctx context.Context) (string, error) {
				return c.createModel(ctx, true)
			},
		},
	}
}

// RunInstant executes all phase 1 actions whose badges are still pending.
// Returns how many badges were attempted and how many were earned.
func (c *Collector) RunInstant(ctx context.Context) (attempted, earned int, err error) {
	return c.runActions(ctx, c.InstantActions())
}

func (c *Collector) runActions(ctx context.Context, actions []action) (attempted, earned int, err error) {
	for _, a := range actions {
		ids := c.actionable(a.badgeIDs)
		if len(ids) == 0 {
			continue
		}
		attempted += len(ids)
		for _, id := range ids {
			if err := c.Tracker.SetStatus(id, StatusAttempting, ""); err != nil {
				return attempted, earned, err
			}
		}
		note, runErr := a.run(ctx)
		if runErr != nil {
			c.Console.Fail(fmt.Sprintf("%s: %v", a.label, runErr))
			for _, id := range ids {
				if err := c.Tracker.SetStatus(id, StatusFailed, runErr.Error()); err != nil {
					return attempted, earned, err
				}
			}
			if ctx.Err() != nil {
				return attempted, earned, ctx.Err()
			}
			continue
		}
		c.Console.OK(fmt.Sprintf("%s: %s", a.label, note))
		for _, id := range ids {
			if err := c.Tracker.SetStatus(id, StatusEarned, note); err != nil {
				return attempted, earned, err
			}
			earned++
		}
	}
	return attempted, earned, nil
}

func (c *Collector) actionable(ids []string) []string {
	var out []string
	for _, id := range ids {
		if c.Tracker.ShouldAttempt(id) {
			out = append(out, id)
		}
	}
	return out
}

// resultErr folds a non-success dispatch classification into an error.
func resultErr(res dispatch.Result, err error) error {
	if err != nil {
		return err
	}
	if res.Classification != dispatch.Success {
		return fmt.Errorf("%s: %s", res.Classification, strings.TrimSpace(truncateOutput(res.RawOutput)))
	}
	return nil
}

func truncateOutput(s string) string {
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

func (c *Collector) pushNotebook(ctx context.Context, language string, keywords []string) (string, error) {
	slug := ResourceName(language + "-nb")
	dir, err := c.Stager.StageNotebook(c.Username, slug, language, keywords)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPush(ctx, dir)); err != nil {
		return "", err
	}
	return "notebook=" + slug, nil
}

func (c *Collector) pushUtilityScript(ctx context.Context) (string, error) {
	slug := ResourceName("utility-script")
	dir, err := c.Stager.StageUtilityScript(c.Username, slug)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPush(ctx, dir)); err != nil {
		return "", err
	}
	return "script=" + slug, nil
}

// forkNotebook pulls a public notebook and pushes it back under the caller's
// namespace with fresh metadata.
func (c *Collector) forkNotebook(ctx context.Context) (string, error) {
	slug := ResourceName("fork")
	dir, err := c.Stager.tempDir("-fork")
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPull(ctx, forkSource, dir)); err != nil {
		return "", fmt.Errorf("pull %s: %w", forkSource, err)
	}
	if err := rewriteForkMetadata(dir, c.Username, slug); err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.KernelsPush(ctx, dir)); err != nil {
		return "", err
	}
	return "fork=" + slug + " of=" + forkSource, nil
}

// rewriteForkMetadata replaces the pulled notebook's metadata so the push
// lands under the caller's namespace.
func rewriteForkMetadata(dir, username, slug string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var codeFile string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if ext == ".ipynb" || ext == ".py" {
			codeFile = e.Name()
			break
		}
	}
	if codeFile == "" {
		return fmt.Errorf("no notebook or script pulled into %s", dir)
	}
	kernelType := "notebook"
	if filepath.Ext(codeFile) == ".py" {
		kernelType = "script"
	}
	_, err = manifest.WriteDoc(dir, manifest.KindKernel, manifest.Kernel{
		ID:         username + "/" + slug,
		Title:      slug,
		CodeFile:   codeFile,
		Language:   "python",
		KernelType: kernelType,
		IsPrivate:  true,
		Keywords:   []string{"badge-collector", "forked"},
	})
	return err
}

func (c *Collector) createDataset(ctx context.Context, keywords []string, documented bool) (string, error) {
	slug := ResourceName("dataset")
	dir, err := c.Stager.StageDataset(c.Username, slug, keywords, documented)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.DatasetsCreate(ctx, dir)); err != nil {
		return "", err
	}
	return "dataset=" + slug, nil
}

func (c *Collector) createModel(ctx context.Context, documented bool) (string, error) {
	slug := ResourceName("model")
	dir, err := c.Stager.StageModel(c.Username, slug, documented)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.ModelsCreate(ctx, dir)); err != nil {
		return "", err
	}
	return "model=" + slug, nil
}

// createModelVariation creates a fresh model and then uploads a framework
// variation under it.
func (c *Collector) createModelVariation(ctx context.Context) (string, error) {
	modelSlug := ResourceName("model-var")
	modelDir, err := c.Stager.StageModel(c.Username, modelSlug, false)
	if err != nil {
		return "", err
	}
	if err := resultErr(c.Ops.ModelsCreate(ctx, modelDir)); err != nil {
		return "", err
	}

	instanceDir, err := c.Stager.StageModelInstance(c.Username, modelSlug, "default")
	if err != nil {
		return "", err
	}
	handle := fmt.Sprintf("%s/%s/other/default", c.Username, modelSlug)
	if err := resultErr(c.Ops.ModelInstanceVersionCreate(ctx, handle, instanceDir, "Initial version")); err != nil {
		return "", err
	}
	log.Debug().Str("handle", handle).Msg("model variation uploaded")
	return "model=" + modelSlug + " instance=default", nil
}
