// Where: internal/mcp/catalog.go
// What: Catalog of MCP tools and read-only probe calls.
// Why: Keep the documented endpoint surface in one place for the verifier.
package mcp

// DocumentedToolCount is the number of tools the endpoint is documented to
// advertise via tools/list.
const DocumentedToolCount = 47

// Probe is one read-only tool invocation with known-good arguments.
type Probe struct {
	Tool string
	Args map[string]any
}

// KGATOnlyTools are the documented tools that reject the legacy key with
// Unauthenticated and require a scoped token.
var KGATOnlyTools = map[string]bool{
	"search_competitions":                 true,
	"get_competition_leaderboard":         true,
	"list_competition_data_files":         true,
	"download_competition_data_files":     true,
	"download_competition_data_file":      true,
	"download_competition_leaderboard":    true,
	"search_competition_submissions":      true,
	"get_competition_submission":          true,
	"start_competition_submission_upload": true,
	"get_dataset_status":                  true,
	"search_notebooks":                    true,
	"list_notebook_files":                 true,
	"get_notebook_session_status":         true,
}

// ExpectedTools is a spot-check subset the verifier requires tools/list to
// advertise.
var ExpectedTools = []string{
	"authorize",
	"search_competitions",
	"search_datasets",
	"search_notebooks",
	"list_models",
	"get_model",
	"save_notebook",
	"create_model",
	"download_dataset",
}

func req(fields map[string]any) map[string]any {
	return map[string]any{"request": fields}
}

// ReadOnlyProbes spans every read-only tool across competitions, datasets,
// notebooks, models, and benchmarks. Arguments target well-known public
// resources so probes work on any account.
var ReadOnlyProbes = []Probe{
	// Auth
	{Tool: "authorize", Args: map[string]any{}},

	// Competition (read-only)
	{Tool: "search_competitions", Args: req(map[string]any{
		"search": "titanic", "hasSearch": true, "pageSize": 2, "hasPageSize": true,
	})},
	{Tool: "get_competition", Args: req(map[string]any{"competitionName": "titanic"})},
	{Tool: "get_competition_leaderboard", Args: req(map[string]any{
		"competitionName": "titanic", "pageSize": 2, "hasPageSize": true,
	})},
	{Tool: "get_competition_data_files_summary", Args: req(map[string]any{"competitionName": "titanic"})},
	{Tool: "list_competition_data_files", Args: req(map[string]any{
		"competitionName": "titanic", "pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "list_competition_data_tree_files", Args: req(map[string]any{
		"competitionName": "titanic", "pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "download_competition_data_file", Args: req(map[string]any{
		"competitionName": "titanic", "fileName": "train.csv",
	})},
	{Tool: "download_competition_data_files", Args: req(map[string]any{"competitionName": "titanic"})},
	{Tool: "download_competition_leaderboard", Args: req(map[string]any{"competitionName": "titanic"})},
	{Tool: "search_competition_submissions", Args: req(map[string]any{
		"competitionName": "titanic", "sortBy": "Date", "group": "All",
		"pageSize": 2, "hasPageSize": true,
	})},
	{Tool: "get_competition_submission", Args: req(map[string]any{"ref": 0})},
	{Tool: "start_competition_submission_upload", Args: req(map[string]any{
		"competitionName": "titanic", "hasCompetitionName": true,
		"contentLength": 100, "lastModifiedEpochSeconds": 1700000000,
		"fileName": "test.csv",
	})},

	// Dataset (read-only)
	{Tool: "search_datasets", Args: req(map[string]any{
		"search": "titanic", "hasSearch": true, "pageSize": 2,
		"hasPageSize": true, "sortBy": "Hottest",
	})},
	{Tool: "get_dataset_info", Args: req(map[string]any{"ownerSlug": "heptapod", "datasetSlug": "titanic"})},
	{Tool: "get_dataset_metadata", Args: req(map[string]any{"ownerSlug": "heptapod", "datasetSlug": "titanic"})},
	{Tool: "get_dataset_files_summary", Args: req(map[string]any{"ownerSlug": "heptapod", "datasetSlug": "titanic"})},
	{Tool: "get_dataset_status", Args: req(map[string]any{"ownerSlug": "heptapod", "datasetSlug": "titanic"})},
	{Tool: "list_dataset_files", Args: req(map[string]any{
		"ownerSlug": "heptapod", "datasetSlug": "titanic", "pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "list_dataset_tree_files", Args: req(map[string]any{
		"ownerSlug": "heptapod", "datasetSlug": "titanic", "pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "download_dataset", Args: req(map[string]any{"ownerSlug": "heptapod", "datasetSlug": "titanic"})},

	// Notebook (read-only)
	{Tool: "search_notebooks", Args: req(map[string]any{
		"search": "titanic", "hasSearch": true, "pageSize": 2,
		"hasPageSize": true, "sortBy": "Hotness", "group": "Everyone",
	})},
	{Tool: "get_notebook_info", Args: req(map[string]any{
		"userName": "alexisbcook", "kernelSlug": "titanic-tutorial",
	})},
	{Tool: "list_notebook_files", Args: req(map[string]any{
		"userName": "alexisbcook", "kernelSlug": "titanic-tutorial",
		"pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "download_notebook_output", Args: req(map[string]any{
		"ownerSlug": "alexisbcook", "kernelSlug": "titanic-tutorial",
	})},
	{Tool: "download_notebook_output_zip", Args: req(map[string]any{"kernelSessionId": 0})},
	{Tool: "get_notebook_session_status", Args: req(map[string]any{
		"userName": "alexisbcook", "kernelSlug": "titanic-tutorial",
	})},
	{Tool: "list_notebook_session_output", Args: req(map[string]any{
		"userName": "alexisbcook", "kernelSlug": "titanic-tutorial",
		"pageSize": 3, "hasPageSize": true,
	})},

	// Model (read-only)
	{Tool: "list_models", Args: req(map[string]any{
		"search": "gemma", "hasSearch": true, "pageSize": 2,
		"hasPageSize": true, "sortBy": "Hotness", "hasSortBy": true,
	})},
	{Tool: "get_model", Args: req(map[string]any{"ownerSlug": "google", "modelSlug": "gemma"})},
	{Tool: "list_model_variations", Args: req(map[string]any{
		"ownerSlug": "google", "modelSlug": "gemma", "pageSize": 2, "hasPageSize": true,
	})},
	{Tool: "get_model_variation", Args: req(map[string]any{
		"ownerSlug": "google", "modelSlug": "gemma",
		"framework": "Transformers", "instanceSlug": "2b",
	})},
	{Tool: "list_model_variation_versions", Args: req(map[string]any{
		"ownerSlug": "google", "modelSlug": "gemma",
		"framework": "Transformers", "instanceSlug": "2b",
		"pageSize": 2, "hasPageSize": true,
	})},
	{Tool: "list_model_variation_version_files", Args: req(map[string]any{
		"ownerSlug": "google", "modelSlug": "gemma",
		"framework": "Transformers", "instanceSlug": "2b",
		"versionNumber": 2, "hasVersionNumber": true,
		"pageSize": 3, "hasPageSize": true,
	})},
	{Tool: "download_model_variation_version", Args: req(map[string]any{
		"ownerSlug": "google", "modelSlug": "gemma",
		"framework": "Transformers", "instanceSlug": "2b",
		"versionNumber": 2, "path": "config.json", "hasPath": true,
	})},

	// Benchmark
	{Tool: "get_benchmark_leaderboard", Args: req(map[string]any{
		"ownerSlug": "kaggle", "benchmarkSlug": "test",
	})},
}

// quickSet is the fast probe subset.
var quickSet = map[string]bool{
	"authorize":                   true,
	"search_competitions":         true,
	"search_datasets":             true,
	"get_dataset_info":            true,
	"search_notebooks":            true,
	"get_notebook_info":           true,
	"list_models":                 true,
	"get_model":                   true,
	"get_competition_leaderboard": true,
	"get_dataset_status":          true,
	"list_notebook_files":         true,
}

// QuickProbes returns the fast subset of ReadOnlyProbes.
func QuickProbes() []Probe {
	var out []Probe
	for _, p := range ReadOnlyProbes {
		if quickSet[p.Tool] {
			out = append(out, p)
		}
	}
	return out
}
