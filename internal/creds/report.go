// Where: internal/creds/report.go
// What: Per-credential status reporting with masking.
// Why: Show configuration state without ever printing secret values.
package creds

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
)

// Status is the configuration state of one credential slot.
type Status struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Value  string `json:"value,omitempty"` // masked, never the raw secret
	Source string `json:"source,omitempty"`
}

// Report is the full three-slot credential status.
type Report struct {
	Username Status `json:"KAGGLE_USERNAME"`
	Legacy   Status `json:"KAGGLE_KEY"`
	Scoped   Status `json:"KAGGLE_API_TOKEN"`
}

// AllOK reports whether every credential slot is configured.
func (r Report) AllOK() bool {
	return r.Username.OK && r.Legacy.OK && r.Scoped.OK
}

// Found counts configured slots.
func (r Report) Found() int {
	n := 0
	for _, s := range []Status{r.Username, r.Legacy, r.Scoped} {
		if s.OK {
			n++
		}
	}
	return n
}

// BuildReport probes every credential slot independently of the priority
// chain used by Resolve. The username slot is filled from env or kaggle.json,
// the legacy slot from env or kaggle.json, and the scoped slot from env or the
// token file. Values are masked.
func (r Resolver) BuildReport() Report {
	doc, _ := ReadKaggleJSON(r.kaggleDir())

	var rep Report

	rep.Username = Status{Name: meta.EnvUsername}
	if u := strings.TrimSpace(os.Getenv(meta.EnvUsername)); u != "" {
		rep.Username.OK, rep.Username.Value, rep.Username.Source = true, u, "env"
	} else if doc.Username != "" {
		rep.Username.OK, rep.Username.Value, rep.Username.Source = true, doc.Username, string(SourceJSONFile)
	}

	rep.Legacy = Status{Name: meta.EnvLegacyKey}
	if k := strings.TrimSpace(os.Getenv(meta.EnvLegacyKey)); k != "" {
		rep.Legacy.OK, rep.Legacy.Value, rep.Legacy.Source = true, Mask(k, 0), "env"
	} else if doc.Key != "" {
		rep.Legacy.OK, rep.Legacy.Value, rep.Legacy.Source = true, Mask(doc.Key, 0), string(SourceJSONFile)
	}

	rep.Scoped = Status{Name: meta.EnvAPIToken}
	if t := strings.TrimSpace(os.Getenv(meta.EnvAPIToken)); t != "" && IsScopedToken(t) {
		rep.Scoped.OK, rep.Scoped.Value, rep.Scoped.Source = true, Mask(t, len(meta.ScopedTokenPrefix)), "env"
	} else if payload, err := os.ReadFile(filepath.Join(r.kaggleDir(), meta.APITokenFile)); err == nil {
		if t := strings.TrimSpace(string(payload)); IsScopedToken(t) {
			rep.Scoped.OK, rep.Scoped.Value, rep.Scoped.Source = true, Mask(t, len(meta.ScopedTokenPrefix)), string(SourceTokenFile)
		}
	}

	return rep
}

// Mask hides a credential value, keeping the first prefixLen and the last
// four characters. Values too short to mask meaningfully collapse to "****".
func Mask(value string, prefixLen int) string {
	if value == "" {
		return "****"
	}
	if len(value) <= prefixLen+4 {
		return "****"
	}
	hidden := len(value) - prefixLen - 4
	return value[:prefixLen] + strings.Repeat("*", hidden) + value[len(value)-4:]
}
