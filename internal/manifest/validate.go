// Where: internal/manifest/validate.go
// What: Schema validation for metadata documents.
// Why: Catch malformed metadata locally before the external CLI rejects it.
package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// DocKind selects which metadata schema a document is checked against.
type DocKind string

const (
	KindKernel        DocKind = "kernel"
	KindDataset       DocKind = "dataset"
	KindModel         DocKind = "model"
	KindModelInstance DocKind = "model_instance"
)

var (
	schemaOnce sync.Once
	schemaErr  error
	schemas    map[DocKind]*jsonschema.Schema
)

// Validate checks a metadata document against the schema for its kind.
// Content may be JSON or YAML; the canonical JSON form is returned.
func Validate(kind DocKind, content []byte) ([]byte, error) {
	sch, err := schemaFor(kind)
	if err != nil {
		return nil, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if err := sch.Validate(document); err != nil {
		return nil, fmt.Errorf("%s metadata invalid: %w", kind, err)
	}
	return jsonData, nil
}

func schemaFor(kind DocKind) (*jsonschema.Schema, error) {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return nil, schemaErr
	}
	sch, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown metadata kind %q", kind)
	}
	return sch, nil
}

func compileSchemas() {
	schemas = make(map[DocKind]*jsonschema.Schema)
	for _, kind := range []DocKind{KindKernel, KindDataset, KindModel, KindModelInstance} {
		name := fmt.Sprintf("schema/%s.schema.json", kind)
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("load schema %s: %w", name, err)
			return
		}
		schemas[kind], schemaErr = compiler.Compile(name)
		if schemaErr != nil {
			return
		}
	}
}
