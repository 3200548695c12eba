package clone

import (
	"errors"
	"fmt"
	"path/filepath"
)

// OpCloneFile is the only operation a clone plan produces.
const OpCloneFile = "clone-file"

// ErrDestinationExists is returned by a Runner when the clone target is
// already present. Existing files are never overwritten.
var ErrDestinationExists = errors.New("destination already exists")

// ExecutionStep is a description of a single clone. It is both structured
// (for the runner) and has a human-readable description.
type ExecutionStep struct {
	Operation   string
	Source      string
	Destination string
	Start       string
	New         string
	Description string
}

// Runner abstracts how execution steps are performed.
type Runner interface {
	Run(step ExecutionStep) error
}

// Outcome classifies how a step ended.
type Outcome int

const (
	OutcomeCloned Outcome = iota
	OutcomeSkippedExisting
	OutcomeSkippedDecode
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCloned:
		return "cloned"
	case OutcomeSkippedExisting:
		return "skipped-existing"
	case OutcomeSkippedDecode:
		return "skipped-decode"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StepResult records the outcome of one step. Err is nil for OutcomeCloned.
type StepResult struct {
	Step    ExecutionStep
	Outcome Outcome
	Err     error
}

// StepObserver is called after each step that completed or was skipped.
type StepObserver func(StepResult)

// Report collects the per-file results of Apply.
type Report struct {
	Results []StepResult
}

// Count returns how many steps ended with the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// BuildExecutionSteps converts a PlanResult into one clone-file step per entry.
func BuildExecutionSteps(plan PlanResult) []ExecutionStep {
	steps := make([]ExecutionStep, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		steps = append(steps, ExecutionStep{
			Operation:   OpCloneFile,
			Source:      e.Source,
			Destination: e.Destination,
			Start:       plan.Start,
			New:         plan.New,
			Description: fmt.Sprintf("clone %s to %s", filepath.Base(e.Source), filepath.Base(e.Destination)),
		})
	}
	return steps
}

// Apply runs the plan step by step using the given runner. Steps that fail
// with ErrDestinationExists or a *DecodeError are recorded as skips and the
// run continues; any other error stops the run and is returned with the
// failing step's context. observe may be nil.
func Apply(plan PlanResult, runner Runner, observe StepObserver) (Report, error) {
	var report Report
	for _, step := range BuildExecutionSteps(plan) {
		err := runner.Run(step)
		outcome, ok := classify(err)
		if !ok {
			return report, fmt.Errorf("apply failed on operation %q (source=%s): %w", step.Operation, step.Source, err)
		}

		res := StepResult{Step: step, Outcome: outcome, Err: err}
		report.Results = append(report.Results, res)
		logSink.Debugw("step finished", "source", step.Source, "destination", step.Destination, "outcome", outcome.String())
		if observe != nil {
			observe(res)
		}
	}
	return report, nil
}

func classify(err error) (Outcome, bool) {
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return OutcomeCloned, true
	case errors.Is(err, ErrDestinationExists):
		return OutcomeSkippedExisting, true
	case errors.As(err, &decodeErr):
		return OutcomeSkippedDecode, true
	default:
		return 0, false
	}
}
