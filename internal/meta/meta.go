// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming, env keys, and directory layout in one place.
package meta

const (
	// Project Identity
	AppName   = "kagglectl"
	Slug      = "kagglectl"
	EnvPrefix = "KAGGLECTL"

	// Directory Layout
	HomeDir      = ".kagglectl"
	KaggleDir    = ".kaggle"
	KaggleJSON   = "kaggle.json"
	APITokenFile = "api_token"
	ProgressFile = "badge-progress.json"

	// Resource Naming
	ResourcePrefix = "badge-collector-"

	// External Surfaces
	DefaultMCPEndpoint = "https://www.kaggle.com/mcp"
	DefaultKaggleBin   = "kaggle"

	// Credential Environment Keys
	EnvUsername   = "KAGGLE_USERNAME"
	EnvLegacyKey  = "KAGGLE_KEY"
	EnvAPIToken   = "KAGGLE_API_TOKEN"
	EnvMCPToken   = "KAGGLE_MCP_TOKEN"
	EnvAliasToken = "KAGGLE_TOKEN"

	// Scoped tokens carry this prefix; legacy keys are bare 32-char hex.
	ScopedTokenPrefix = "KGAT_"
)
