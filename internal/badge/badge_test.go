package badge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/nurfaiz0909/kagglectl/internal/kagglecli"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	ops      []string
	failOps  map[string]string
	statuses []string
}

func (f *fakeDispatcher) Dispatch(_ context.Context, cmd dispatch.Command, _ creds.Set) (dispatch.Result, error) {
	f.ops = append(f.ops, cmd.Op)
	if out, ok := f.failOps[cmd.Op]; ok {
		return dispatch.Result{RawOutput: out, Classification: dispatch.Classify(out)}, nil
	}
	if cmd.Op == "kernels status" {
		out := `has status "complete"`
		if len(f.statuses) > 0 {
			out = f.statuses[0]
			if len(f.statuses) > 1 {
				f.statuses = f.statuses[1:]
			}
		}
		return dispatch.Result{RawOutput: out, Classification: dispatch.Success}, nil
	}
	if cmd.Op == "kernels pull" {
		if dir, ok := cmd.Args["-p"].(string); ok {
			_ = os.WriteFile(filepath.Join(dir, "titanic-tutorial.ipynb"), []byte("{}"), 0o644)
		}
	}
	return dispatch.Result{RawOutput: "ok", Classification: dispatch.Success}, nil
}

func newCollector(t *testing.T, fake *fakeDispatcher) (*Collector, *bytes.Buffer) {
	t.Helper()
	tracker, err := NewTracker(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	var buf bytes.Buffer
	return &Collector{
		Ops:      kagglecli.Ops{Dispatcher: fake, Creds: creds.Set{Username: "alice", ScopedToken: "KGAT_t"}},
		Tracker:  tracker,
		Stager:   NewStager(t.TempDir()),
		Username: "alice",
		Console:  ui.New(&buf),
	}, &buf
}

func TestRegistryLookup(t *testing.T) {
	b, ok := Lookup("python_coder")
	require.True(t, ok)
	assert.Equal(t, PhaseInstant, b.Phase)
	assert.True(t, b.Automatable)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)
}

func TestRegistryPhasesArePartition(t *testing.T) {
	seen := map[string]bool{}
	for _, phase := range AllPhases {
		for _, b := range ByPhase(phase) {
			assert.False(t, seen[b.ID], "duplicate badge %s", b.ID)
			seen[b.ID] = true
		}
	}
	assert.Len(t, seen, len(Registry))

	for _, b := range ByPhase(PhaseBrowser) {
		assert.False(t, b.Automatable, "%s cannot be automated", b.ID)
	}
}

func TestRegistryAutomatableSubset(t *testing.T) {
	auto := Automatable()
	assert.Len(t, auto, 19)
	for _, b := range auto {
		assert.True(t, b.Automatable, b.ID)
		assert.Contains(t, []Phase{PhaseInstant, PhasePipeline}, b.Phase, b.ID)
	}
}

func TestTrackerPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	tracker, err := NewTracker(path)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, tracker.Get("python_coder").Status)
	assert.True(t, tracker.ShouldAttempt("python_coder"))

	require.NoError(t, tracker.SetStatus("python_coder", StatusEarned, "notebook=x"))
	require.NoError(t, tracker.SetStatus("r_coder", StatusFailed, "push rejected"))

	reloaded, err := NewTracker(path)
	require.NoError(t, err)
	assert.Equal(t, StatusEarned, reloaded.Get("python_coder").Status)
	assert.False(t, reloaded.ShouldAttempt("python_coder"))
	assert.True(t, reloaded.ShouldAttempt("r_coder"), "failed badges are retried")
}

func TestStageNotebookWritesMetadata(t *testing.T) {
	stager := NewStager(t.TempDir())
	dir, err := stager.StageNotebook("alice", "badge-collector-python-nb-1", "python", []string{"tagged"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "kernel-metadata.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "alice/badge-collector-python-nb-1", doc["id"])
	assert.Equal(t, "python", doc["language"])

	nb, err := os.ReadFile(filepath.Join(dir, "notebook.ipynb"))
	require.NoError(t, err)
	require.True(t, json.Valid(nb), "rendered notebook must be valid JSON")
}

func TestStageDatasetDocumented(t *testing.T) {
	stager := NewStager(t.TempDir())
	dir, err := stager.StageDataset("alice", "badge-collector-dataset-1", nil, true)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data.csv"))
	require.NoError(t, err)
}

func TestRunInstantEarnsAll(t *testing.T) {
	fake := &fakeDispatcher{}
	collector, _ := newCollector(t, fake)

	attempted, earned, err := collector.RunInstant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(ByPhase(PhaseInstant)), attempted)
	assert.Equal(t, attempted, earned)

	// Resume: nothing left to attempt.
	attempted, earned, err = collector.RunInstant(context.Background())
	require.NoError(t, err)
	assert.Zero(t, attempted)
	assert.Zero(t, earned)
}

func TestRunInstantRecordsFailures(t *testing.T) {
	fake := &fakeDispatcher{failOps: map[string]string{
		"datasets create": "error: 403 forbidden",
	}}
	collector, out := newCollector(t, fake)

	_, _, err := collector.RunInstant(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, collector.Tracker.Get("dataset_creator").Status)
	assert.Equal(t, StatusEarned, collector.Tracker.Get("python_coder").Status)
	assert.Contains(t, out.String(), "[FAIL]")
}

func TestRunPipelineDatasetFromOutput(t *testing.T) {
	// The status check completes on the first poll so the constant-interval
	// wait never sleeps.
	fake := &fakeDispatcher{statuses: []string{`alice/nb has status "complete"`}}
	collector, _ := newCollector(t, fake)

	actions := collector.PipelineActions()
	require.NotEmpty(t, actions)

	attempted, earned, err := collector.runActions(context.Background(), actions[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, attempted)
	assert.Equal(t, 1, earned)
	assert.Contains(t, fake.ops, "kernels output")
	assert.Contains(t, fake.ops, "datasets create")
}

func TestOrchestratorDryRun(t *testing.T) {
	collector, out := newCollector(t, &fakeDispatcher{})
	orch := &Orchestrator{Collector: collector}

	orch.DryRun([]Phase{PhaseInstant})
	assert.Contains(t, out.String(), "would be attempted")
	assert.Contains(t, out.String(), "Python Coder")
}

func TestOrchestratorManualPhase(t *testing.T) {
	collector, out := newCollector(t, &fakeDispatcher{})
	orch := &Orchestrator{Collector: collector}

	sum, err := orch.Run(context.Background(), []Phase{PhaseBrowser})
	require.NoError(t, err)
	assert.Zero(t, sum.Attempted)
	assert.Contains(t, out.String(), "no automation")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-test-name", Slugify("My Test_Name"))
}

func TestResourceNameCarriesPrefix(t *testing.T) {
	name := ResourceName("dataset")
	assert.True(t, strings.HasPrefix(name, "badge-collector-dataset-"))
}
