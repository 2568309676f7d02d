package integrator

import "errors"

// DormandPrince54 is an embedded Runge-Kutta stepper of the classic
// Dormand-Prince 5(4) tableau: seven stages (the seventh reused as the
// first stage of the next step under FSAL, though this implementation
// keeps the simpler non-FSAL form to match the buffer-per-stage style of
// a fixed-step RK4), advancing the 5th-order solution while differencing
// against the embedded 4th-order one to get yErr.
type DormandPrince54 struct{}

// NewDormandPrince54 returns a stateless Dormand-Prince 5(4) stepper.
func NewDormandPrince54() *DormandPrince54 { return &DormandPrince54{} }

// Order reports the order used by the step controller, 4 — the order of
// the embedded (lower) solution the error estimate is relative to, which
// is what Hadjust's exponents (1/order, 1/(order+1)) expect.
func (s *DormandPrince54) Order() int { return 4 }

// Dormand-Prince 5(4) Butcher tableau coefficients.
const (
	dpC2 = 1.0 / 5.0
	dpC3 = 3.0 / 10.0
	dpC4 = 4.0 / 5.0
	dpC5 = 8.0 / 9.0
	dpC6 = 1.0
	dpC7 = 1.0

	dpA21 = 1.0 / 5.0

	dpA31 = 3.0 / 40.0
	dpA32 = 9.0 / 40.0

	dpA41 = 44.0 / 45.0
	dpA42 = -56.0 / 15.0
	dpA43 = 32.0 / 9.0

	dpA51 = 19372.0 / 6561.0
	dpA52 = -25360.0 / 2187.0
	dpA53 = 64448.0 / 6561.0
	dpA54 = -212.0 / 729.0

	dpA61 = 9017.0 / 3168.0
	dpA62 = -355.0 / 33.0
	dpA63 = 46732.0 / 5247.0
	dpA64 = 49.0 / 176.0
	dpA65 = -5103.0 / 18656.0

	dpA71 = 35.0 / 384.0
	dpA72 = 0.0
	dpA73 = 500.0 / 1113.0
	dpA74 = 125.0 / 192.0
	dpA75 = -2187.0 / 6784.0
	dpA76 = 11.0 / 84.0

	// 5th-order solution weights (b), identical to row 7 above since this
	// tableau is FSAL-shaped.
	dpB1 = 35.0 / 384.0
	dpB2 = 0.0
	dpB3 = 500.0 / 1113.0
	dpB4 = 125.0 / 192.0
	dpB5 = -2187.0 / 6784.0
	dpB6 = 11.0 / 84.0
	dpB7 = 0.0

	// 4th-order embedded solution weights (b*).
	dpBs1 = 5179.0 / 57600.0
	dpBs2 = 0.0
	dpBs3 = 7571.0 / 16695.0
	dpBs4 = 393.0 / 640.0
	dpBs5 = -92097.0 / 339200.0
	dpBs6 = 187.0 / 2100.0
	dpBs7 = 1.0 / 40.0
)

// Step implements Stepper: it fills yNext with the 5th-order candidate and
// yErr with (5th order) - (4th order), the same sign convention the rest of
// this package's controller expects (yerr is a scale for the local error,
// not a correction to subtract).
func (s *DormandPrince54) Step(sys System, t, h float64, y, yNext, yErr []float64) error {
	dim := sys.Dim()
	if len(y) != dim || len(yNext) != dim || len(yErr) != dim {
		return errors.New("integrator: dopri54 called with mismatched state length")
	}

	k1 := make([]float64, dim)
	k2 := make([]float64, dim)
	k3 := make([]float64, dim)
	k4 := make([]float64, dim)
	k5 := make([]float64, dim)
	k6 := make([]float64, dim)
	k7 := make([]float64, dim)
	tmp := make([]float64, dim)

	if err := sys.Eval(t, y, k1); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*dpA21*k1[i]
	}
	if err := sys.Eval(t+dpC2*h, tmp, k2); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*(dpA31*k1[i]+dpA32*k2[i])
	}
	if err := sys.Eval(t+dpC3*h, tmp, k3); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*(dpA41*k1[i]+dpA42*k2[i]+dpA43*k3[i])
	}
	if err := sys.Eval(t+dpC4*h, tmp, k4); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*(dpA51*k1[i]+dpA52*k2[i]+dpA53*k3[i]+dpA54*k4[i])
	}
	if err := sys.Eval(t+dpC5*h, tmp, k5); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*(dpA61*k1[i]+dpA62*k2[i]+dpA63*k3[i]+dpA64*k4[i]+dpA65*k5[i])
	}
	if err := sys.Eval(t+dpC6*h, tmp, k6); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		tmp[i] = y[i] + h*(dpA71*k1[i]+dpA72*k2[i]+dpA73*k3[i]+dpA74*k4[i]+dpA75*k5[i]+dpA76*k6[i])
	}
	if err := sys.Eval(t+dpC7*h, tmp, k7); err != nil {
		return err
	}

	for i := 0; i < dim; i++ {
		yNext[i] = y[i] + h*(dpB1*k1[i]+dpB2*k2[i]+dpB3*k3[i]+dpB4*k4[i]+dpB5*k5[i]+dpB6*k6[i]+dpB7*k7[i])
		y4 := y[i] + h*(dpBs1*k1[i]+dpBs2*k2[i]+dpBs3*k3[i]+dpBs4*k4[i]+dpBs5*k5[i]+dpBs6*k6[i]+dpBs7*k7[i])
		yErr[i] = yNext[i] - y4
	}
	return nil
}
