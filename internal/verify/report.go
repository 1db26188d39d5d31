// Where: internal/verify/report.go
// What: Markdown report generation for verification runs.
package verify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/mcp"
)

// RunInfo captures the environment a verification run executed under.
type RunInfo struct {
	Timestamp time.Time
	Username  string
	HasScoped bool
	HasLegacy bool
}

// WriteMarkdown renders the full run report.
func WriteMarkdown(w io.Writer, rec *Recorder, info RunInfo) error {
	username := info.Username
	if username == "" {
		username = "N/A"
	}
	lines := []string{
		"# MCP Endpoint Verification Report",
		"",
		"**Date:** " + info.Timestamp.Format("2006-01-02 15:04:05"),
		"**User:** " + username,
		"**Scoped Token:** " + availability(info.HasScoped),
		"**Legacy Key:** " + availability(info.HasLegacy),
		"",
		"## Summary",
		"",
		"| Metric | Count |",
		"|--------|-------|",
		fmt.Sprintf("| Total | %d |", rec.Total()),
		fmt.Sprintf("| Passed | %d |", rec.Count(Pass)),
		fmt.Sprintf("| Failed | %d |", rec.Count(Fail)),
		fmt.Sprintf("| Known Fail | %d |", rec.Count(KnownFail)),
		fmt.Sprintf("| Skipped | %d |", rec.Count(Skip)),
		fmt.Sprintf("| Pass Rate (excl. skip/known) | %d%% |", rec.PassRate()),
		"",
		"## Results",
		"",
		"| Group | Check | Status | Details |",
		"|-------|-------|--------|---------|",
	}
	for _, r := range rec.Results() {
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s |",
			r.Group, r.Name, r.Status, strings.ReplaceAll(r.Details, "|", "\\|")))
	}

	lines = append(lines,
		"",
		"## Scoped-Token-Only Tools (Legacy Key Returns Unauthenticated)",
		"",
	)
	var scopedOnly []string
	for tool := range mcp.KGATOnlyTools {
		scopedOnly = append(scopedOnly, tool)
	}
	sort.Strings(scopedOnly)
	for _, tool := range scopedOnly {
		lines = append(lines, "- `"+tool+"`")
	}
	lines = append(lines, "")

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// SaveReport writes the markdown report under dir with a dated file name and
// returns its path.
func SaveReport(dir string, rec *Recorder, info RunInfo) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "verify-report-"+info.Timestamp.Format("2006-01-02")+".md")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteMarkdown(f, rec, info); err != nil {
		return "", err
	}
	return path, nil
}

func availability(present bool) string {
	if present {
		return "Available"
	}
	return "Not available"
}
