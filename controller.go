package rings

import (
	"math"

	"github.com/djmunoz/Rings/integrator"
	"github.com/djmunoz/Rings/vec3"
)

// Verdict aliases integrator.Verdict so callers in this package (and its
// tests) can keep writing rings.Unchanged/Decrease/Increase, while Controller
// itself satisfies integrator.Controller without any adapter.
type Verdict = integrator.Verdict

const (
	Unchanged = integrator.Unchanged
	Decrease  = integrator.Decrease
	Increase  = integrator.Increase
)

const stepShrinkFactor = 0.9

// Controller is the bespoke secular step controller (the Go analogue of
// gsl_odeiv_control_secular_new). It is instantiated with a single scalar
// tolerance and is otherwise purely functional: Hadjust reads y/yerr/order
// and writes only *h. It implements integrator.Controller.
type Controller struct {
	Eps float64
}

// NewController returns a Controller using the given scalar tolerance, the
// Go analogue of gsl_odeiv_control_secular_new(eps).
func NewController(eps float64) *Controller {
	return &Controller{Eps: eps}
}

// Hadjust inspects the stepper's per-component error estimate yerr against a
// proposed step y (already advanced by h), and returns a Verdict, mutating
// *h when it calls for a change. y and yerr must both have length Dim(n) for
// some n and order is the stepper's declared order.
func (c *Controller) Hadjust(order int, y, yerr []float64, h *float64) Verdict {
	n := (len(y) - CentralWidth) / OrbiterWidth
	eps := c.Eps

	ltot := totalAngularMomentum(y, n)
	ltotMag := vec3.Norm(ltot)

	m := math.Inf(-1)
	track := func(factor float64) {
		if factor > m {
			m = factor
		}
	}

	for i := 0; i < n; i++ {
		off := CentralWidth + i*OrbiterWidth

		l := getVec(y, off+oL)
		a := getVec(y, off+oE)
		dl := getVec(yerr, off+oL)
		da := getVec(yerr, off+oE)

		// Signed drift of the two secular invariants: sign carries
		// information (eating vs. replenishing the conserved quantity) and
		// must not be discarded via fabs.
		track(2 * (vec3.Dot(l, dl) + vec3.Dot(a, da)) / eps)
		track((vec3.Dot(l, da) + vec3.Dot(dl, a)) / eps)

		track(math.Abs(yerr[off+oM]/y[off+oM]) / eps)
		track(math.Abs(yerr[off+oSMA]/y[off+oSMA]) / eps)
		if tv := y[off+oTV]; tv != 0 {
			track(math.Abs(yerr[off+oTV]/tv) / eps)
		}
		track(math.Abs(yerr[off+oK]) / eps)
		track(math.Abs(yerr[off+oI]/y[off+oI]) / eps)
		track(math.Abs(yerr[off+oR]/y[off+oR]) / eps)
		track(vec3.Norm(dl) / eps)
		track(vec3.Norm(da) / eps)

		if ltotMag != 0 {
			dspin := getVec(yerr, off+oSpin)
			track(y[off+oI] * vec3.Norm(dspin) / ltotMag / eps)
		}
	}

	if tv := y[cTV]; tv != 0 {
		track(math.Abs(yerr[cTV]/tv) / eps)
	}
	track(math.Abs(yerr[cK]) / eps)
	track(math.Abs(yerr[cI]/y[cI]) / eps)
	track(math.Abs(yerr[cR]/y[cR]) / eps)
	if ltotMag != 0 {
		dcbSpin := getVec(yerr, cSpin)
		track(y[cI] * vec3.Norm(dcbSpin) / ltotMag / eps)
	}

	hold := *h
	switch {
	case m > 1.1:
		hnew := hold * stepShrinkFactor / math.Pow(m, 1.0/float64(order))
		if hnew < 0.2*hold {
			hnew = 0.2 * hold
		}
		*h = hnew
		return Decrease
	case m < 0.5:
		hnew := hold * stepShrinkFactor / math.Pow(m, 1.0/float64(order+1))
		if hnew > 5*hold {
			hnew = 5 * hold
		}
		*h = hnew
		return Increase
	default:
		return Unchanged
	}
}

// totalAngularMomentum computes Ltot = I_cb*spin_cb + sum_i(m_i n_i a_i^2 L_i
// + I_i spin_i), the diagnostic quantity the spin error factors are
// normalized against.
func totalAngularMomentum(y []float64, n int) vec3.V {
	ltot := vec3.Scale(y[cI], getVec(y, cSpin))
	for i := 0; i < n; i++ {
		off := CentralWidth + i*OrbiterWidth
		a := y[off+oSMA]
		l := getVec(y, off+oL)
		spin := getVec(y, off+oSpin)
		ni := math.Sqrt(1 / (a * a * a))
		ltot = vec3.Add(ltot, vec3.Scale(y[off+oM]*ni*a*a, l))
		ltot = vec3.Add(ltot, vec3.Scale(y[off+oI], spin))
	}
	return ltot
}
