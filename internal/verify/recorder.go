// Where: internal/verify/recorder.go
// What: Result accounting for the verification harness.
// Why: Exit status must reflect hard failures only.
package verify

import (
	"fmt"

	"github.com/nurfaiz0909/kagglectl/internal/ui"
)

// Status is the outcome bucket of one check.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
	Skip Status = "SKIP"
	// KnownFail marks expected rejections, like a legacy key against a
	// scoped-token-only tool. It never affects the exit code.
	KnownFail Status = "KNOWN_FAIL"
)

// Result is one recorded check.
type Result struct {
	Group   string
	Name    string
	Status  Status
	Details string
}

// Recorder accumulates check results and echoes them to the console.
type Recorder struct {
	Console *ui.Console

	results []Result
	counts  map[Status]int
}

// NewRecorder builds a Recorder echoing to console.
func NewRecorder(console *ui.Console) *Recorder {
	return &Recorder{Console: console, counts: map[Status]int{}}
}

// Record stores one result and prints it.
func (r *Recorder) Record(group, name string, status Status, details string) {
	r.results = append(r.results, Result{Group: group, Name: name, Status: status, Details: details})
	r.counts[status]++

	line := fmt.Sprintf("[%s] %s: %s", status, group, name)
	if details != "" {
		line += " - " + details
	}
	r.Console.Info(line)
}

// Results returns all recorded checks in order.
func (r *Recorder) Results() []Result { return r.results }

// Count returns how many results carry the given status.
func (r *Recorder) Count(status Status) int { return r.counts[status] }

// Total returns the number of recorded checks.
func (r *Recorder) Total() int { return len(r.results) }

// PassRate is the pass percentage over checks that actually ran, excluding
// skips and known failures.
func (r *Recorder) PassRate() int {
	run := r.Total() - r.Count(Skip) - r.Count(KnownFail)
	if run <= 0 {
		return 0
	}
	return r.Count(Pass) * 100 / run
}

// ExitCode is zero exactly when no hard failure was recorded.
func (r *Recorder) ExitCode() int {
	if r.Count(Fail) > 0 {
		return 1
	}
	return 0
}
