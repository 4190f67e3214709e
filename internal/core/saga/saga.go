// Package saga runs a short workflow made of one mandatory step followed by
// optional, independently failing steps. Only the mandatory step decides
// whether the workflow as a whole succeeded.
package saga

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
)

// Step is one named unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Saga is a mandatory step plus best-effort follow-ups, run in order.
type Saga struct {
	Name      string
	Mandatory Step
	Optional  []Step
}

// Report describes how a run went.
type Report struct {
	Outcomes []domain.StepOutcome
	// Err is the mandatory step's error, wrapped with the saga and step name.
	Err error
}

// Succeeded reports whether the mandatory step completed.
func (r Report) Succeeded() bool { return r.Err == nil }

// Failed lists the optional steps that returned an error.
func (r Report) Failed() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Optional && !o.OK {
			names = append(names, o.Step)
		}
	}
	return names
}

// OnStepFailure is called for every failing optional step.
type OnStepFailure func(saga, step string, err error)

// Run executes the mandatory step and, when it succeeds, every optional step.
// Optional failures are logged and reported but never stop the run.
func (s Saga) Run(ctx context.Context, log zerolog.Logger, onFailure OnStepFailure) Report {
	var rep Report

	if err := s.Mandatory.Run(ctx); err != nil {
		rep.Outcomes = append(rep.Outcomes, domain.StepOutcome{Step: s.Mandatory.Name, Error: err.Error()})
		rep.Err = fmt.Errorf("%s: %s: %w", s.Name, s.Mandatory.Name, err)
		return rep
	}
	rep.Outcomes = append(rep.Outcomes, domain.StepOutcome{Step: s.Mandatory.Name, OK: true})

	for _, step := range s.Optional {
		out := domain.StepOutcome{Step: step.Name, Optional: true, OK: true}
		if err := step.Run(ctx); err != nil {
			out.OK = false
			out.Error = err.Error()
			log.Warn().Err(err).Str("saga", s.Name).Str("step", step.Name).Msg("optional step failed")
			if onFailure != nil {
				onFailure(s.Name, step.Name, err)
			}
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}
	return rep
}
