// Where: internal/manifest/types.go
// What: Metadata document types for staged resources.
// Why: The external CLI reads these JSON files from the staging directory.
package manifest

// Kernel is the kernel-metadata.json document placed next to a staged
// notebook or script.
type Kernel struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	CodeFile           string   `json:"code_file"`
	Language           string   `json:"language"`
	KernelType         string   `json:"kernel_type"`
	IsPrivate          bool     `json:"is_private"`
	EnableGPU          bool     `json:"enable_gpu"`
	EnableInternet     bool     `json:"enable_internet"`
	Keywords           []string `json:"keywords,omitempty"`
	DatasetSources     []string `json:"dataset_sources"`
	CompetitionSources []string `json:"competition_sources"`
	KernelSources      []string `json:"kernel_sources"`
	ModelSources       []string `json:"model_sources"`
}

// Dataset is the dataset-metadata.json document.
type Dataset struct {
	Title     string    `json:"title"`
	ID        string    `json:"id"`
	Licenses  []License `json:"licenses"`
	Subtitle  string    `json:"subtitle,omitempty"`
	IsPrivate bool      `json:"isPrivate,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
}

// License names a dataset license by its registry identifier.
type License struct {
	Name string `json:"name"`
}

// Model is the model-metadata.json document creating the model container.
type Model struct {
	Owner       string `json:"ownerSlug"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Subtitle    string `json:"subtitle,omitempty"`
	IsPrivate   bool   `json:"isPrivate"`
	Description string `json:"description,omitempty"`
}

// ModelInstance is the model-instance-metadata.json document describing one
// framework variation of a model.
type ModelInstance struct {
	Owner        string   `json:"ownerSlug"`
	ModelSlug    string   `json:"modelSlug"`
	InstanceSlug string   `json:"instanceSlug"`
	Framework    string   `json:"framework"`
	Overview     string   `json:"overview,omitempty"`
	Usage        string   `json:"usage,omitempty"`
	LicenseName  string   `json:"licenseName"`
	FineTunable  bool     `json:"fineTunable,omitempty"`
	TrainingData []string `json:"trainingData,omitempty"`
}
