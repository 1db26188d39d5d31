// Where: internal/badge/orchestrator.go
// What: Phase selection and run accounting for the collector.
package badge

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Summary totals a collector run.
type Summary struct {
	Attempted int
	Earned    int
}

// Orchestrator sequences collector phases.
type Orchestrator struct {
	Collector *Collector
}

// AllPhases is the order phases run in when none is selected explicitly.
var AllPhases = []Phase{PhaseInstant, PhaseCompetition, PhasePipeline, PhaseBrowser, PhaseStreaks}

// DryRun prints what a run over the given phases would attempt.
func (o *Orchestrator) DryRun(phases []Phase) {
	console := o.Collector.Console
	console.Header("Dry Run")
	total := 0
	for _, phase := range phases {
		var planned []Badge
		for _, b := range ByPhase(phase) {
			if b.Automatable && o.Collector.Tracker.ShouldAttempt(b.ID) {
				planned = append(planned, b)
			}
		}
		if len(planned) == 0 {
			continue
		}
		console.Info(fmt.Sprintf("phase %d: %d badge(s)", phase, len(planned)))
		for _, b := range planned {
			console.ItemPlain(b.Name + ": " + b.Description)
		}
		total += len(planned)
	}
	console.Info("")
	console.Info(fmt.Sprintf("total: %d badge(s) would be attempted", total))
}

// Run executes the selected phases in order and returns the combined totals.
// Phases without automation print a notice and are skipped.
func (o *Orchestrator) Run(ctx context.Context, phases []Phase) (Summary, error) {
	var sum Summary
	console := o.Collector.Console
	for _, phase := range phases {
		console.Header(fmt.Sprintf("Phase %d", phase))
		var attempted, earned int
		var err error
		switch phase {
		case PhaseInstant:
			attempted, earned, err = o.Collector.RunInstant(ctx)
		case PhasePipeline:
			attempted, earned, err = o.Collector.RunPipeline(ctx)
		default:
			console.Warn(fmt.Sprintf("phase %d has no automation, earn these badges manually:", phase))
			for _, b := range ByPhase(phase) {
				console.ItemPlain(b.Name + ": " + b.Description)
			}
			continue
		}
		sum.Attempted += attempted
		sum.Earned += earned
		if err != nil {
			return sum, fmt.Errorf("phase %d: %w", phase, err)
		}
		log.Info().Int("phase", int(phase)).Int("attempted", attempted).Int("earned", earned).Msg("phase complete")
		console.Info(fmt.Sprintf("phase %d complete: %d/%d badges earned", phase, earned, attempted))
	}
	return sum, nil
}
