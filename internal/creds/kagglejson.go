// Where: internal/creds/kagglejson.go
// What: kaggle.json read/write helpers.
// Why: Keep the legacy two-field credential document compatible with the external CLI.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
)

// KaggleJSON is the legacy two-field credential document.
type KaggleJSON struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// ReadKaggleJSON reads <dir>/kaggle.json. A missing file is an error the
// caller can detect with os.IsNotExist.
func ReadKaggleJSON(dir string) (KaggleJSON, error) {
	payload, err := os.ReadFile(filepath.Join(dir, meta.KaggleJSON))
	if err != nil {
		return KaggleJSON{}, err
	}
	var doc KaggleJSON
	if err := json.Unmarshal(payload, &doc); err != nil {
		return KaggleJSON{}, fmt.Errorf("malformed %s: %w", meta.KaggleJSON, err)
	}
	return doc, nil
}

// EnsureKaggleJSON writes <dir>/kaggle.json with 0600 permissions when the
// file does not exist yet. An existing file is never overwritten.
func EnsureKaggleJSON(dir, username, key string) (created bool, err error) {
	path := filepath.Join(dir, meta.KaggleJSON)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	payload, err := json.Marshal(KaggleJSON{Username: username, Key: key})
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return false, err
	}
	return true, nil
}

// CheckKaggleJSONMode reports whether <dir>/kaggle.json exists with
// permissions other than 0600. The returned mode is only meaningful when
// loose is true.
func CheckKaggleJSONMode(dir string) (loose bool, mode os.FileMode) {
	info, err := os.Stat(filepath.Join(dir, meta.KaggleJSON))
	if err != nil {
		return false, 0
	}
	perm := info.Mode().Perm()
	if perm != 0o600 {
		return true, perm
	}
	return false, 0
}
