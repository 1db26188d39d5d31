// Where: internal/kagglecli/ops.go
// What: Typed operations over the external kaggle binary.
// Why: Give callers verb/noun commands without hand-assembling argv.
package kagglecli

import (
	"context"
	"fmt"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
)

// Ops binds a dispatcher and a credential set to the kaggle CLI verbs the
// tool uses. All operations are sequential and synchronous; the dispatcher
// enforces the inter-call delay.
type Ops struct {
	Dispatcher dispatch.Dispatcher
	Creds      creds.Set
}

func (o Ops) run(ctx context.Context, op string, args map[string]any) (dispatch.Result, error) {
	res, err := o.Dispatcher.Dispatch(ctx, dispatch.Command{Op: op, Args: args}, o.Creds)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// KernelsPush pushes the notebook or script staged in dir. The directory must
// contain a kernel-metadata.json.
func (o Ops) KernelsPush(ctx context.Context, dir string) (dispatch.Result, error) {
	return o.run(ctx, "kernels push", map[string]any{"-p": dir})
}

// KernelsPull downloads the code of a public kernel into dir.
func (o Ops) KernelsPull(ctx context.Context, ref, dir string) (dispatch.Result, error) {
	return o.run(ctx, "kernels pull", map[string]any{"_": []string{ref}, "-p": dir})
}

// KernelsStatus fetches the execution status of a kernel.
func (o Ops) KernelsStatus(ctx context.Context, ref string) (dispatch.Result, error) {
	return o.run(ctx, "kernels status", map[string]any{"_": []string{ref}})
}

// KernelsOutput downloads the output files of a finished kernel into dir.
func (o Ops) KernelsOutput(ctx context.Context, ref, dir string) (dispatch.Result, error) {
	return o.run(ctx, "kernels output", map[string]any{"_": []string{ref}, "-p": dir})
}

// DatasetsCreate creates a dataset from the staged dir. The directory must
// contain a dataset-metadata.json.
func (o Ops) DatasetsCreate(ctx context.Context, dir string) (dispatch.Result, error) {
	return o.run(ctx, "datasets create", map[string]any{"-p": dir})
}

// DatasetsDownload downloads a dataset by handle into dir.
func (o Ops) DatasetsDownload(ctx context.Context, handle, dir string) (dispatch.Result, error) {
	return o.run(ctx, "datasets download", map[string]any{"_": []string{handle}, "-p": dir, "--unzip": true})
}

// ModelsCreate creates a model container from the staged dir.
func (o Ops) ModelsCreate(ctx context.Context, dir string) (dispatch.Result, error) {
	return o.run(ctx, "models create", map[string]any{"-p": dir})
}

// ModelInstanceVersionCreate uploads a new version of a model variation.
// The handle has the owner/model/framework/instance form.
func (o Ops) ModelInstanceVersionCreate(ctx context.Context, handle, dir, notes string) (dispatch.Result, error) {
	return o.run(ctx, "models instances versions create", map[string]any{
		"_": []string{handle}, "-p": dir, "-n": notes,
	})
}

// CompetitionsDownload downloads competition data files into dir.
func (o Ops) CompetitionsDownload(ctx context.Context, slug, dir string) (dispatch.Result, error) {
	return o.run(ctx, "competitions download", map[string]any{"_": []string{slug}, "-p": dir})
}

// CompetitionsSubmit submits a file to a competition.
func (o Ops) CompetitionsSubmit(ctx context.Context, slug, file, message string) (dispatch.Result, error) {
	return o.run(ctx, "competitions submit", map[string]any{
		"_": []string{slug}, "-f": file, "-m": message,
	})
}

// CompetitionsSubmissions lists the caller's submissions for a competition.
func (o Ops) CompetitionsSubmissions(ctx context.Context, slug string) (dispatch.Result, error) {
	return o.run(ctx, "competitions submissions", map[string]any{"_": []string{slug}})
}
