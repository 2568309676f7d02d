package integrator

import "math"

// maxStepRetries bounds the accept/shrink retry loop inside Step, the Go
// analogue of gsl_odeiv_evolve_apply's own internal retry cap — without it
// a pathological Controller that always returns Decrease would spin
// forever.
const maxStepRetries = 100

// Evolver drives a System through a Stepper with step size adjudicated by a
// Controller, the same three-way split GSL keeps between its step, control
// and evolve objects. It owns no state itself; every call is in terms of
// the caller's y, t and h.
type Evolver struct {
	Stepper    Stepper
	Controller Controller
}

// NewEvolver pairs a Stepper with a Controller.
func NewEvolver(stepper Stepper, controller Controller) *Evolver {
	return &Evolver{Stepper: stepper, Controller: controller}
}

// Step advances sys by one accepted step starting at (t, y), writing the new
// state into y in place and returning the new time. On return *h holds the
// step size to try next: the size the accepted step used, or, when
// Controller returns Increase, the larger size it recommends. Every Decrease
// shrinks *h, also on the way to a failure. A kernel failure from sys.Eval
// propagates unwrapped; a Controller that never accepts is reported as
// ErrIntegratorFailure.
func (e *Evolver) Step(sys System, t float64, y []float64, h *float64) (float64, error) {
	dim := sys.Dim()
	yNext := make([]float64, dim)
	yErr := make([]float64, dim)
	order := e.Stepper.Order()

	for attempt := 0; attempt < maxStepRetries; attempt++ {
		hTry := *h
		if err := e.Stepper.Step(sys, t, hTry, y, yNext, yErr); err != nil {
			return t, err
		}

		switch e.Controller.Hadjust(order, yNext, yErr, h) {
		case Decrease:
			if math.Abs(*h) == 0 || math.IsNaN(*h) {
				return t, ErrIntegratorFailure
			}
			continue
		default:
			copy(y, yNext)
			return t + hTry, nil
		}
	}
	return t, ErrIntegratorFailure
}
