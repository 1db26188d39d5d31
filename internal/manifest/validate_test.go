package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKernelJSON(t *testing.T) {
	doc := []byte(`{
		"id": "alice/my-first-notebook",
		"title": "My First Notebook",
		"code_file": "notebook.ipynb",
		"language": "python",
		"kernel_type": "notebook",
		"is_private": false
	}`)
	canonical, err := Validate(KindKernel, doc)
	require.NoError(t, err)
	assert.NotEmpty(t, canonical)
}

func TestValidateKernelYAML(t *testing.T) {
	doc := []byte(`
id: alice/my-first-notebook
title: My First Notebook
code_file: notebook.ipynb
language: r
kernel_type: script
`)
	_, err := Validate(KindKernel, doc)
	require.NoError(t, err)
}

func TestValidateKernelRejectsBadLanguage(t *testing.T) {
	doc := []byte(`{
		"id": "alice/nb",
		"title": "Valid Title",
		"code_file": "nb.ipynb",
		"language": "julia",
		"kernel_type": "notebook"
	}`)
	_, err := Validate(KindKernel, doc)
	assert.Error(t, err)
}

func TestValidateDatasetTitleBounds(t *testing.T) {
	_, err := Validate(KindDataset, []byte(`{
		"title": "abc",
		"id": "alice/tiny",
		"licenses": [{"name": "CC0-1.0"}]
	}`))
	assert.Error(t, err, "titles under six characters are rejected")

	_, err = Validate(KindDataset, []byte(`{
		"title": "Collector Sample Data",
		"id": "alice/collector-sample-data",
		"licenses": [{"name": "CC0-1.0"}]
	}`))
	require.NoError(t, err)
}

func TestValidateModelInstanceFramework(t *testing.T) {
	_, err := Validate(KindModelInstance, []byte(`{
		"ownerSlug": "alice",
		"modelSlug": "my-model",
		"instanceSlug": "default",
		"framework": "handwritten",
		"licenseName": "Apache 2.0"
	}`))
	assert.Error(t, err)
}

func TestWriteDoc(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDoc(dir, KindDataset, Dataset{
		Title:    "Collector Sample Data",
		ID:       "alice/collector-sample-data",
		Licenses: []License{{Name: "CC0-1.0"}},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dataset-metadata.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"alice/collector-sample-data"`)
}

func TestWriteDocRejectsInvalid(t *testing.T) {
	_, err := WriteDoc(t.TempDir(), KindModel, Model{Owner: "alice", Title: "M", Slug: "Bad Slug"})
	assert.Error(t, err)
}
