// Where: internal/badge/staging.go
// What: Staging-directory construction for badge resources.
// Why: Each push needs a directory with rendered content plus metadata.
package badge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/nurfaiz0909/kagglectl/assets"
	"github.com/nurfaiz0909/kagglectl/internal/manifest"
	"github.com/nurfaiz0909/kagglectl/internal/meta"
)

// TemplateData feeds the embedded resource templates.
type TemplateData struct {
	Title           string
	Description     string
	Timestamp       string
	License         string
	DataDescription string
}

var templateCache sync.Map

func renderTemplate(name string, data TemplateData) ([]byte, error) {
	cached, ok := templateCache.Load(name)
	if !ok {
		raw, err := assets.Templates().ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		cached, _ = templateCache.LoadOrStore(name, tmpl)
	}
	var buf bytes.Buffer
	if err := cached.(*template.Template).Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// ResourceName builds a prefixed, timestamped name unique enough for repeat
// runs within the same second to be unlikely.
func ResourceName(kind string) string {
	return fmt.Sprintf("%s%s-%d", meta.ResourcePrefix, kind, time.Now().Unix())
}

// Slugify lowercases a name and converts separators to hyphens.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ReplaceAll(s, "_", "-")
}

// Stager builds staging directories under a scratch root.
type Stager struct {
	Root string
	now  func() time.Time
}

// NewStager creates a Stager rooted at dir, defaulting to the system temp
// directory.
func NewStager(dir string) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Stager{Root: dir, now: time.Now}
}

func (s *Stager) tempDir(suffix string) (string, error) {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", err
	}
	return os.MkdirTemp(s.Root, meta.ResourcePrefix+"*"+suffix)
}

func (s *Stager) data(title, description string) TemplateData {
	return TemplateData{
		Title:       title,
		Description: description,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		License:     "CC0-1.0",
	}
}

// StageNotebook renders a notebook for the given language and writes it with
// kernel metadata. Returns the staging directory.
func (s *Stager) StageNotebook(username, slug, language string, keywords []string) (string, error) {
	dir, err := s.tempDir("-" + language + "-nb")
	if err != nil {
		return "", err
	}
	tmplName := "notebook_python.ipynb.tmpl"
	if language == "r" {
		tmplName = "notebook_r.ipynb.tmpl"
	}
	body, err := renderTemplate(tmplName, s.data(slug, "Generated notebook for achievement automation."))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "notebook.ipynb"), body, 0o644); err != nil {
		return "", err
	}
	_, err = manifest.WriteDoc(dir, manifest.KindKernel, manifest.Kernel{
		ID:         username + "/" + slug,
		Title:      slug,
		CodeFile:   "notebook.ipynb",
		Language:   language,
		KernelType: "notebook",
		IsPrivate:  true,
		Keywords:   keywords,
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// StageUtilityScript renders a python utility script with script-type kernel
// metadata.
func (s *Stager) StageUtilityScript(username, slug string) (string, error) {
	dir, err := s.tempDir("-utility")
	if err != nil {
		return "", err
	}
	body, err := renderTemplate("utility_script.py.tmpl", s.data(slug, "Reusable helpers published as a utility script."))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "script.py"), body, 0o644); err != nil {
		return "", err
	}
	_, err = manifest.WriteDoc(dir, manifest.KindKernel, manifest.Kernel{
		ID:         username + "/" + slug,
		Title:      slug,
		CodeFile:   "script.py",
		Language:   "python",
		KernelType: "script",
		IsPrivate:  true,
		Keywords:   []string{"badge-collector", "utility"},
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// StageDataset renders a CSV plus README and writes dataset metadata.
// documented adds a subtitle and file documentation for the documenter badge.
func (s *Stager) StageDataset(username, slug string, keywords []string, documented bool) (string, error) {
	dir, err := s.tempDir("-dataset")
	if err != nil {
		return "", err
	}
	data := s.data(slug, "Generated sample dataset for achievement automation.")
	csv, err := renderTemplate("data.csv.tmpl", data)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), csv, 0o644); err != nil {
		return "", err
	}
	doc := manifest.Dataset{
		Title:    titleFor(slug),
		ID:       username + "/" + slug,
		Licenses: []manifest.License{{Name: "CC0-1.0"}},
		Keywords: keywords,
	}
	if documented {
		doc.Subtitle = "Documented sample data with per-file descriptions"
		readme, err := renderTemplate("dataset_readme.md.tmpl", data)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(dir, "README.md"), readme, 0o644); err != nil {
			return "", err
		}
	}
	if _, err := manifest.WriteDoc(dir, manifest.KindDataset, doc); err != nil {
		return "", err
	}
	return dir, nil
}

// StageModel writes model metadata plus a small content file. documented adds
// a description, tagged is reflected in the subtitle.
func (s *Stager) StageModel(username, slug string, documented bool) (string, error) {
	dir, err := s.tempDir("-model")
	if err != nil {
		return "", err
	}
	doc := manifest.Model{
		Owner:     username,
		Title:     titleFor(slug),
		Slug:      slug,
		IsPrivate: true,
	}
	if documented {
		doc.Subtitle = "Documented model"
		doc.Description = "Generated model with usage documentation.\n\nIntended for API workflow validation only."
	}
	if _, err := manifest.WriteDoc(dir, manifest.KindModel, doc); err != nil {
		return "", err
	}
	return dir, nil
}

// StageModelInstance writes model-instance metadata plus a weights stand-in
// file for upload.
func (s *Stager) StageModelInstance(username, modelSlug, instanceSlug string) (string, error) {
	dir, err := s.tempDir("-model-instance")
	if err != nil {
		return "", err
	}
	body, err := renderTemplate("utility_script.py.tmpl", s.data(instanceSlug, "Model variation payload."))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "model.py"), body, 0o644); err != nil {
		return "", err
	}
	_, err = manifest.WriteDoc(dir, manifest.KindModelInstance, manifest.ModelInstance{
		Owner:        username,
		ModelSlug:    modelSlug,
		InstanceSlug: instanceSlug,
		Framework:    "other",
		LicenseName:  "Apache 2.0",
		Overview:     "Generated framework variation.",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// titleFor turns a slug into a display title long enough for metadata rules.
func titleFor(slug string) string {
	title := strings.ReplaceAll(slug, "-", " ")
	if len(title) > 50 {
		title = title[:50]
	}
	return strings.TrimSpace(title)
}
