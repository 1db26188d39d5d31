// Where: internal/badge/tracker.go
// What: Persistent progress state for badge attempts.
// Why: Resume runs without re-attempting badges already earned or skipped.
package badge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/meta"
	"github.com/nurfaiz0909/kagglectl/internal/ui"
)

// Status is the lifecycle state of one badge attempt.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAttempting Status = "attempting"
	StatusEarned     Status = "earned"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// Entry records the latest state of one badge.
type Entry struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracker persists badge progress as a JSON file.
type Tracker struct {
	Path string

	entries map[string]Entry
	now     func() time.Time
}

// DefaultProgressPath returns the progress file location under the tool home.
func DefaultProgressPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, meta.ProgressFile), nil
}

// NewTracker loads progress from path, starting empty when the file does not
// exist yet.
func NewTracker(path string) (*Tracker, error) {
	t := &Tracker{Path: path, entries: map[string]Entry{}, now: time.Now}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &t.entries); err != nil {
		return nil, err
	}
	if t.entries == nil {
		t.entries = map[string]Entry{}
	}
	return t, nil
}

// Get returns the recorded entry for a badge; absent badges are pending.
func (t *Tracker) Get(id string) Entry {
	if e, ok := t.entries[id]; ok {
		return e
	}
	return Entry{Status: StatusPending}
}

// SetStatus records a new state for a badge and persists immediately.
func (t *Tracker) SetStatus(id string, status Status, note string) error {
	t.entries[id] = Entry{Status: status, Note: note, UpdatedAt: t.now()}
	return t.save()
}

// ShouldAttempt reports whether a badge is still worth attempting. Earned and
// skipped badges are done; failed and attempting ones are retried.
func (t *Tracker) ShouldAttempt(id string) bool {
	switch t.Get(id).Status {
	case StatusEarned, StatusSkipped:
		return false
	default:
		return true
	}
}

// Counts tallies entries per status across the whole registry.
func (t *Tracker) Counts() map[Status]int {
	counts := map[Status]int{}
	for _, b := range Registry {
		counts[t.Get(b.ID).Status]++
	}
	return counts
}

// PrintStatusTable renders per-badge progress grouped by phase.
func (t *Tracker) PrintStatusTable(console *ui.Console) {
	console.Header("Badge Progress")
	for _, phase := range []Phase{PhaseInstant, PhaseCompetition, PhasePipeline, PhaseBrowser, PhaseStreaks} {
		for _, b := range ByPhase(phase) {
			e := t.Get(b.ID)
			line := e.Note
			if line != "" {
				line = " (" + line + ")"
			}
			console.Item(b.Name, string(e.Status)+line)
		}
	}
	counts := t.Counts()
	console.Info("")
	console.Info(fmt.Sprintf("earned: %d  failed: %d  pending: %d  skipped: %d",
		counts[StatusEarned], counts[StatusFailed],
		counts[StatusPending]+counts[StatusAttempting], counts[StatusSkipped]))
}

func (t *Tracker) save() error {
	payload, err := json.MarshalIndent(t.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(t.Path, payload, 0o644)
}
