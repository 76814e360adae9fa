package planner

import "github.com/pkg/errors"

// PlannerBug signals a precondition violation (spec.md §7): an empty
// expression array, or a connected-component decomposition upstream
// that somehow produced no chainable ordering. It is an internal
// assertion, not a recoverable error — callers are not expected to
// catch it.
type PlannerBug struct {
	cause error
}

func (p *PlannerBug) Error() string { return p.cause.Error() }

func (p *PlannerBug) Unwrap() error { return p.cause }

func newPlannerBug(msg string) *PlannerBug {
	return &PlannerBug{cause: errors.New(msg)}
}
