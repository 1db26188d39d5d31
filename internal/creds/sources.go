// Where: internal/creds/sources.go
// What: Ordered credential source probing.
// Why: Resolve the first complete credential set from coexisting locations.
package creds

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"github.com/rs/zerolog/log"
)

// Source names one probed credential location.
type Source string

const (
	SourceEnvToken  Source = "env-token"
	SourceTokenFile Source = "token-file"
	SourceEnvPair   Source = "env-pair"
	SourceJSONFile  Source = "kaggle.json"
)

// probeOrder is the fixed priority order of sources. Sources are re-read on
// every Resolve call; nothing is cached across calls.
var probeOrder = []Source{SourceEnvToken, SourceTokenFile, SourceEnvPair, SourceJSONFile}

// Resolver probes credential sources against the ambient environment and
// filesystem. HomeDir overrides the user home directory, which keeps the
// probes testable.
type Resolver struct {
	HomeDir string
	// Warnf receives user-facing diagnostics, e.g. the KAGGLE_TOKEN alias
	// misconfiguration. Nil disables them.
	Warnf func(format string, args ...any)
}

// Resolve returns the first complete credential set in priority order,
// together with the source that produced it. Incomplete sources are skipped;
// ErrNotFound is returned when no source yields a usable set.
func (r Resolver) Resolve() (Set, Source, error) {
	r.warnAliasMisconfiguration()

	for _, src := range probeOrder {
		set, ok := r.probe(src)
		if !ok || !set.Usable() {
			continue
		}
		log.Debug().Str("source", string(src)).Str("kind", string(set.Kind())).Msg("credentials resolved")
		return set, src, nil
	}
	return Set{}, "", ErrNotFound
}

func (r Resolver) probe(src Source) (Set, bool) {
	switch src {
	case SourceEnvToken:
		return r.probeEnvToken()
	case SourceTokenFile:
		return r.probeTokenFile()
	case SourceEnvPair:
		return r.probeEnvPair()
	case SourceJSONFile:
		return r.probeJSONFile()
	}
	return Set{}, false
}

// probeEnvToken reads the scoped token from the environment. KAGGLE_MCP_TOKEN
// overrides KAGGLE_API_TOKEN so the protocol surface can be pinned to a
// dedicated token.
func (r Resolver) probeEnvToken() (Set, bool) {
	token := strings.TrimSpace(os.Getenv(meta.EnvMCPToken))
	if token == "" {
		token = strings.TrimSpace(os.Getenv(meta.EnvAPIToken))
	}
	if token == "" || !IsScopedToken(token) {
		return Set{}, false
	}
	return Set{
		Username:    strings.TrimSpace(os.Getenv(meta.EnvUsername)),
		ScopedToken: token,
	}, true
}

// probeTokenFile reads the single-token private file ~/.kaggle/api_token.
func (r Resolver) probeTokenFile() (Set, bool) {
	path := filepath.Join(r.kaggleDir(), meta.APITokenFile)
	payload, err := os.ReadFile(path)
	if err != nil {
		return Set{}, false
	}
	token := strings.TrimSpace(string(payload))
	if token == "" || !IsScopedToken(token) {
		return Set{}, false
	}
	return Set{
		Username:    strings.TrimSpace(os.Getenv(meta.EnvUsername)),
		ScopedToken: token,
	}, true
}

func (r Resolver) probeEnvPair() (Set, bool) {
	username := strings.TrimSpace(os.Getenv(meta.EnvUsername))
	key := strings.TrimSpace(os.Getenv(meta.EnvLegacyKey))
	if username == "" || key == "" {
		return Set{}, false
	}
	if IsScopedToken(key) {
		// A scoped token in the legacy slot dispatches as a scoped token.
		return Set{Username: username, ScopedToken: key}, true
	}
	return Set{Username: username, LegacyKey: key}, true
}

func (r Resolver) probeJSONFile() (Set, bool) {
	doc, err := ReadKaggleJSON(r.kaggleDir())
	if err != nil || doc.Username == "" || doc.Key == "" {
		return Set{}, false
	}
	return Set{Username: doc.Username, LegacyKey: doc.Key}, true
}

// warnAliasMisconfiguration surfaces the known KAGGLE_TOKEN misconfiguration.
// The aggregator never infers intent here: silently renaming a user-provided
// secret into a different credential slot has security implications, so this
// stays a diagnostic, never an auto-repair.
func (r Resolver) warnAliasMisconfiguration() {
	if r.Warnf == nil {
		return
	}
	alias := strings.TrimSpace(os.Getenv(meta.EnvAliasToken))
	if alias == "" {
		return
	}
	if strings.TrimSpace(os.Getenv(meta.EnvLegacyKey)) == "" && strings.TrimSpace(os.Getenv(meta.EnvAPIToken)) == "" {
		r.Warnf("found %s but tools expect %s or %s; set the expected variable yourself",
			meta.EnvAliasToken, meta.EnvLegacyKey, meta.EnvAPIToken)
	}
}

func (r Resolver) kaggleDir() string {
	home := r.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, meta.KaggleDir)
}
