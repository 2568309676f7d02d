package rings

import (
	"os"

	kitlog "github.com/go-kit/kit/log"

	"github.com/djmunoz/Rings/integrator"
)

// System couples a typed secular state to the machinery that advances it:
// the RHS assembler F, the adaptive evolver wrapping DormandPrince54 and
// Controller, and the current (t, h, y). It plays the role OrbitEstimate
// plays for the teacher's Kalman propagation, minus the STM bookkeeping.
type System struct {
	F       *F
	evolver *integrator.Evolver
	t       float64
	h       float64
	y       []float64
	logger  kitlog.Logger
}

// NewSystem builds a System ready to integrate, starting at t=0 with initial
// step size h0 and controller tolerance eps (also used as F's softening
// length; epsQuad is F's quadrature tolerance).
func NewSystem(name string, cb CentralBody, orbiters []Orbiter, eps, epsQuad, h0 float64) *System {
	n := len(orbiters)
	f := NewF(n, eps, epsQuad)
	evolver := integrator.NewEvolver(NewDormandPrince54(), NewController(eps))

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "system", name)

	return &System{
		F:       f,
		evolver: evolver,
		t:       0,
		h:       h0,
		y:       Pack(cb, orbiters, nil),
		logger:  klog,
	}
}

// NewDormandPrince54 re-exports the integrator package's stepper
// constructor so callers of this package don't need a second import just to
// build a System.
func NewDormandPrince54() *integrator.DormandPrince54 {
	return integrator.NewDormandPrince54()
}

// T returns the system's current time.
func (s *System) T() float64 { return s.t }

// H returns the step size that will be attempted on the next call to
// EvolveStep.
func (s *System) H() float64 { return s.h }

// State unpacks the system's current flat vector into typed values. It does
// not mutate the System.
func (s *System) State() (CentralBody, []Orbiter) { return Unpack(s.y) }

// EvolveStep advances the system by exactly one accepted step, growing or
// shrinking h as the controller calls for. On success it advances t and
// leaves the new state packed in y; on failure (a kernel failure from a
// tidal or averaging term, or the controller never accepting within the
// retry cap) the System's t and y are left exactly as they were, so a
// caller can inspect State() for the last good configuration and report the
// error without it corrupting the run. h keeps whatever shrinking the
// controller applied before the failure.
func (s *System) EvolveStep() error {
	tNext, err := s.evolver.Step(s.F, s.t, s.y, &s.h)
	if err != nil {
		s.logger.Log("at", s.t, "h", s.h, "err", err)
		return err
	}
	s.t = tNext
	return nil
}
