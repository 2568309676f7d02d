package rings

import (
	"math"
	"testing"

	"github.com/ready-steady/ode/dopri"

	"github.com/djmunoz/Rings/vec3"
)

// TestSecularInvariantsHoldUnderReadySteadyDopri cross-checks this package's
// own RHS against github.com/ready-steady/ode/dopri, the adaptive
// Dormand-Prince library the teacher repo itself imports directly in
// src/cmd/integrator_test/dopri_example.go for precisely this kind of
// "confirm a conserved quantity stays constant" check. ready-steady's
// Compute is a whole-trajectory black box with no per-step error-estimate
// hook for Controller.Hadjust to plug into (see DESIGN.md), so it cannot
// back the production Evolver, but it is a second, independent numerical
// method to confirm AverageRHS's Casimir-conserving construction holds up
// under someone else's stepper, not just this package's own.
func TestSecularInvariantsHoldUnderReadySteadyDopri(t *testing.T) {
	cb, orbiters := twoOrbiterSystem()
	// Isolate the conservative (gravity-only) part of the dynamics.
	cb.TV = 1e12
	for i := range orbiters {
		orbiters[i].TV = 1e12
	}
	n := len(orbiters)
	f := NewF(n, 1e-6, 1e-8)
	dim := Dim(n)

	y0 := Pack(cb, orbiters, nil)
	_, initOrbiters := Unpack(y0)

	fn := func(x float64, y, dydt []float64) {
		if err := f.Eval(x, y, dydt); err != nil {
			t.Fatalf("F.Eval failed inside ready-steady/dopri: %v", err)
		}
	}

	integ, err := dopri.New(dopri.DefaultConfig())
	if err != nil {
		t.Fatalf("dopri.New: %v", err)
	}
	xs := []float64{0, 0.02, 0.04}
	trajectory, _, err := integ.Compute(fn, append([]float64(nil), y0...), xs)
	if err != nil {
		t.Fatalf("dopri.Compute: %v", err)
	}
	if len(trajectory) < dim {
		t.Fatalf("dopri.Compute returned a trajectory shorter than one state vector")
	}
	yFinal := trajectory[len(trajectory)-dim:]
	_, finalOrbiters := Unpack(yFinal)

	// ready-steady's own tolerance isn't ours to control, so this check uses
	// a loose bound: it's only meant to catch a badly non-conservative RHS,
	// not to match this package's own tight 100*eps invariant test.
	const tol = 1e-3
	for i, o := range finalOrbiters {
		c1 := vec3.Dot(o.L, o.L) + vec3.Dot(o.E, o.E)
		c2 := vec3.Dot(o.L, o.E)
		c1Init := vec3.Dot(initOrbiters[i].L, initOrbiters[i].L) + vec3.Dot(initOrbiters[i].E, initOrbiters[i].E)
		c2Init := vec3.Dot(initOrbiters[i].L, initOrbiters[i].E)
		if diff := math.Abs(c1 - c1Init); diff > tol {
			t.Fatalf("orbiter %d: |L|^2+|A|^2 drifted by %.3g under ready-steady/dopri, want <= %.3g", i, diff, tol)
		}
		if diff := math.Abs(c2 - c2Init); diff > tol {
			t.Fatalf("orbiter %d: L.A drifted by %.3g under ready-steady/dopri, want <= %.3g", i, diff, tol)
		}
	}
}
