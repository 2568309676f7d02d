// Package integrator implements a small adaptive-step Runge-Kutta driver in
// the shape of GSL's gsl_odeiv trio (stepper / control / evolve), the way
// the teacher repository's own src/integrator package wraps a fixed-step
// RK4 behind an Integrable interface — generalized here to support an
// embedded error estimate and a pluggable step-size controller, since the
// secular controller this module ships is deliberately non-standard.
package integrator

import "errors"

// ErrIntegratorFailure covers failures from the stepper/evolver that are not
// a kernel failure reported through System.Eval — e.g. the step size
// underflowing to zero.
var ErrIntegratorFailure = errors.New("integrator: step failed")

// System is the ODE right-hand side the stepper advances: the analogue of
// the teacher's Integrable interface, but stateless and adaptive-friendly —
// ownership of y lives with the caller of Evolver.Step, not with System.
type System interface {
	// Dim returns the dimension of the state vector.
	Dim() int
	// Eval writes dy/dt into dydt for state y at time t. dydt and y both
	// have length Dim(). A non-nil error means the derivative is not
	// trustworthy for some component; the stepper should reject the step.
	Eval(t float64, y, dydt []float64) error
}

// Verdict is a step controller's adjudication of a proposed step.
type Verdict int

const (
	// Unchanged: accept the step, leave h alone.
	Unchanged Verdict = iota
	// Decrease: reject the step; h has already been shrunk.
	Decrease
	// Increase: accept the step; h has already been grown for next time.
	Increase
)

func (v Verdict) String() string {
	switch v {
	case Unchanged:
		return "unchanged"
	case Decrease:
		return "decrease"
	case Increase:
		return "increase"
	default:
		return "unknown"
	}
}

// Controller adjudicates a proposed step from its error estimate. Order is
// the stepper's declared order; y is the proposed new state; yerr is the
// stepper's per-component error estimate. Implementations mutate *h and
// return a Verdict; they must not mutate y or yerr.
type Controller interface {
	Hadjust(order int, y, yerr []float64, h *float64) Verdict
}

// Stepper advances a System by one step of size h from (t, y), writing the
// new state into yNext and an error estimate into yErr. It reports its
// order for the controller's use.
type Stepper interface {
	Order() int
	// Step computes one trial step of size h starting at (t, y). On
	// success it writes the candidate new state into yNext and the
	// embedded error estimate into yErr; it does not mutate y.
	Step(sys System, t, h float64, y, yNext, yErr []float64) error
}
