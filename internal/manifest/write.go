// Where: internal/manifest/write.go
// What: Writing metadata documents into staging directories.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames maps each document kind to the file name the external CLI
// expects in a staging directory.
var FileNames = map[DocKind]string{
	KindKernel:        "kernel-metadata.json",
	KindDataset:       "dataset-metadata.json",
	KindModel:         "model-metadata.json",
	KindModelInstance: "model-instance-metadata.json",
}

// WriteDoc validates doc against the schema for kind and writes it under dir
// with the canonical file name for that kind.
func WriteDoc(dir string, kind DocKind, doc any) (string, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s metadata: %w", kind, err)
	}
	if _, err := Validate(kind, raw); err != nil {
		return "", err
	}
	name, ok := FileNames[kind]
	if !ok {
		return "", fmt.Errorf("unknown metadata kind %q", kind)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
