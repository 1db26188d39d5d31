// Where: internal/badge/registry.go
// What: Catalog of collectible achievement badges.
// Why: Phases and automatable flags drive what the collector attempts.
package badge

// Phase groups badges by how they are earned.
type Phase int

const (
	PhaseInstant     Phase = 1 // earned by a single API call
	PhaseCompetition Phase = 2 // requires competition participation
	PhasePipeline    Phase = 3 // requires remote notebook execution
	PhaseBrowser     Phase = 4 // only earnable through the website
	PhaseStreaks     Phase = 5 // requires activity over multiple days
)

// Badge describes one achievement and how it can be earned.
type Badge struct {
	ID          string
	Name        string
	Category    string
	Description string
	Phase       Phase
	Automatable bool
}

// Registry lists every badge the collector knows about.
var Registry = []Badge{
	{ID: "python_coder", Name: "Python Coder", Category: "notebooks", Description: "Publish a Python notebook", Phase: PhaseInstant, Automatable: true},
	{ID: "r_coder", Name: "R Coder", Category: "notebooks", Description: "Publish an R notebook", Phase: PhaseInstant, Automatable: true},
	{ID: "api_notebook_creator", Name: "API Notebook Creator", Category: "notebooks", Description: "Create a notebook through the API", Phase: PhaseInstant, Automatable: true},
	{ID: "code_uploader", Name: "Code Uploader", Category: "notebooks", Description: "Upload notebook code", Phase: PhaseInstant, Automatable: true},
	{ID: "utility_scripter", Name: "Utility Scripter", Category: "notebooks", Description: "Publish a utility script", Phase: PhaseInstant, Automatable: true},
	{ID: "notebook_forker", Name: "Notebook Forker", Category: "notebooks", Description: "Fork a public notebook", Phase: PhaseInstant, Automatable: true},
	{ID: "notebook_tagger", Name: "Notebook Tagger", Category: "notebooks", Description: "Tag a notebook with keywords", Phase: PhaseInstant, Automatable: true},
	{ID: "dataset_creator", Name: "Dataset Creator", Category: "datasets", Description: "Publish a dataset", Phase: PhaseInstant, Automatable: true},
	{ID: "api_dataset_creator", Name: "API Dataset Creator", Category: "datasets", Description: "Create a dataset through the API", Phase: PhaseInstant, Automatable: true},
	{ID: "dataset_tagger", Name: "Dataset Tagger", Category: "datasets", Description: "Tag a dataset with keywords", Phase: PhaseInstant, Automatable: true},
	{ID: "dataset_documenter", Name: "Dataset Documenter", Category: "datasets", Description: "Add a description and file docs to a dataset", Phase: PhaseInstant, Automatable: true},
	{ID: "model_creator", Name: "Model Creator", Category: "models", Description: "Publish a model", Phase: PhaseInstant, Automatable: true},
	{ID: "api_model_creator", Name: "API Model Creator", Category: "models", Description: "Create a model through the API", Phase: PhaseInstant, Automatable: true},
	{ID: "model_variation_creator", Name: "Model Variation Creator", Category: "models", Description: "Upload a model framework variation", Phase: PhaseInstant, Automatable: true},
	{ID: "model_tagger", Name: "Model Tagger", Category: "models", Description: "Tag a model with keywords", Phase: PhaseInstant, Automatable: true},
	{ID: "model_documenter", Name: "Model Documenter", Category: "models", Description: "Document a model with usage notes", Phase: PhaseInstant, Automatable: true},

	{ID: "competitor", Name: "Competitor", Category: "competitions", Description: "Make a competition submission", Phase: PhaseCompetition, Automatable: false},
	{ID: "submission_streaker", Name: "Submission Streaker", Category: "competitions", Description: "Submit on consecutive days", Phase: PhaseCompetition, Automatable: false},

	{ID: "dataset_pipeline_creator", Name: "Dataset Pipeline Creator", Category: "pipelines", Description: "Create a dataset from notebook output", Phase: PhasePipeline, Automatable: true},
	{ID: "model_pipeline_creator", Name: "Model Pipeline Creator", Category: "pipelines", Description: "Create a model from notebook output", Phase: PhasePipeline, Automatable: true},
	{ID: "r_markdown_coder", Name: "R Markdown Coder", Category: "pipelines", Description: "Execute R code on the kernel backend", Phase: PhasePipeline, Automatable: true},

	{ID: "discussion_starter", Name: "Discussion Starter", Category: "community", Description: "Start a forum discussion", Phase: PhaseBrowser, Automatable: false},
	{ID: "upvote_giver", Name: "Upvote Giver", Category: "community", Description: "Upvote community content", Phase: PhaseBrowser, Automatable: false},
	{ID: "profile_completer", Name: "Profile Completer", Category: "community", Description: "Fill out the user profile", Phase: PhaseBrowser, Automatable: false},

	{ID: "login_streaker", Name: "Login Streaker", Category: "streaks", Description: "Log in on consecutive days", Phase: PhaseStreaks, Automatable: false},
	{ID: "activity_streaker", Name: "Activity Streaker", Category: "streaks", Description: "Stay active over multiple days", Phase: PhaseStreaks, Automatable: false},
}

// ByPhase returns the badges belonging to a phase, in registry order.
func ByPhase(p Phase) []Badge {
	var out []Badge
	for _, b := range Registry {
		if b.Phase == p {
			out = append(out, b)
		}
	}
	return out
}

// Automatable returns every badge the collector can earn without a browser.
func Automatable() []Badge {
	var out []Badge
	for _, b := range Registry {
		if b.Automatable {
			out = append(out, b)
		}
	}
	return out
}

// Lookup finds a badge by id.
func Lookup(id string) (Badge, bool) {
	for _, b := range Registry {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
