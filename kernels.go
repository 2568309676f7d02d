package rings

import (
	"errors"
	"math"

	"github.com/djmunoz/Rings/vec3"
)

// AverageRHSFunc is the contract average_rhs plugs into F: the orbit-averaged
// derivative orbiter i picks up from orbiter j's gravity, written into the
// first GravWidth slots of i's state window (m, a, L, A never move under
// pure gravity at this order beyond L and A; m and a stay put).
type AverageRHSFunc func(eps float64, bi, bj Orbiter, epsQuad float64) ([GravWidth]float64, error)

// TidalRHSFunc is the contract tidal_rhs plugs into F: the tidal derivative
// of orbiter i's full state window, plus the central body's spin
// derivative.
type TidalRHSFunc func(bi Orbiter, cb CentralBody) (rhsBody [OrbiterWidth]float64, dSpinCB vec3.V, err error)

// MeanMotion returns the Keplerian mean motion of b around the central body,
// in the unit system where the central body's G*M = 1.
func MeanMotion(b Orbiter) float64 {
	return math.Sqrt(1 / (b.SMA * b.SMA * b.SMA))
}

// AverageRHS is the default analytic orbit-averaged pairwise kernel: a
// quadrupole-order secular (Kozai-Lidov-type) torque between orbiter i and
// orbiter j, expressed as Hamilton's equations over the (L, A) Poisson
// structure so that it conserves |L|^2+|A|^2 and L.A for each orbiter by
// construction, regardless of the exact coupling coefficient chosen (the
// coefficient below is an approximation — a proper ring-ring quadrature is
// out of scope for this port; see DESIGN.md).
//
// eps softens the coupling's (1-e_outer^2)^(-3/2) factor as the outer
// orbit's eccentricity approaches 1 (eps^2 is added to 1-e_outer^2);
// epsQuad is the kernel's own internal-quadrature tolerance knob (unused by
// this closed-form approximation, but validated so a caller passing a
// nonsensical tolerance gets a reported failure rather than silently wrong
// answers).
func AverageRHS(eps float64, bi, bj Orbiter, epsQuad float64) ([GravWidth]float64, error) {
	var out [GravWidth]float64
	if !(epsQuad > 0) {
		return out, errors.New("average_rhs: epsquad must be positive")
	}

	ni := MeanMotion(bi)
	zhat := vec3.Unit(bj.L)

	aIn, aOut := bi.SMA, bj.SMA
	eOuterSq := vec3.Dot(bj.E, bj.E)
	if aIn > aOut {
		aIn, aOut = aOut, aIn
		eOuterSq = vec3.Dot(bi.E, bi.E)
	}
	ratio := aIn / aOut
	denom := (1 - eOuterSq) + eps*eps
	if denom <= 0 {
		denom = eps * eps
	}

	coupling := 0.75 * ni * bj.M * ratio * ratio / math.Pow(denom, 1.5)

	lDotZ := vec3.Dot(bi.L, zhat)
	aDotZ := vec3.Dot(bi.E, zhat)

	dL := vec3.Sub(
		vec3.Scale(lDotZ, vec3.Cross(bi.L, zhat)),
		vec3.Scale(5*aDotZ, vec3.Cross(bi.E, zhat)),
	)
	dL = vec3.Scale(coupling, dL)

	dA := vec3.Add(
		vec3.Add(
			vec3.Scale(lDotZ, vec3.Cross(bi.E, zhat)),
			vec3.Scale(2, vec3.Cross(bi.L, bi.E)),
		),
		vec3.Scale(-5*aDotZ, vec3.Cross(bi.L, zhat)),
	)
	dA = vec3.Scale(coupling, dA)

	// out[oM] and out[oSMA] stay zero: gravity alone moves neither mass nor a.
	copyVec(out[:], oL, dL)
	copyVec(out[:], oE, dA)

	if !finiteVec3(dL) || !finiteVec3(dA) {
		return out, errors.New("average_rhs: produced non-finite derivative")
	}
	return out, nil
}

// TidalRHS is the default analytic tidal kernel: an equilibrium-tide,
// constant-phase-lag (Hut 1981 / Eggleton-Kiseleva-Hut style) model. Tides
// are raised in both directions — orbiter i's gravity raises a dissipative
// tide in the central body (governed by the central body's k, tV, R), and
// the central body's gravity raises one in the orbiter (governed by the
// orbiter's own k, tV, R) — each driving its own body's spin toward
// corotation with the orbit and draining the matching amount of orbital
// angular momentum and eccentricity, as tracked by the §4.3 Ltot bookkeeping.
func TidalRHS(bi Orbiter, cb CentralBody) (rhsBody [OrbiterWidth]float64, dSpinCB vec3.V, err error) {
	n := MeanMotion(bi)
	lhat := vec3.Unit(bi.L)
	amScale := bi.M * n * bi.SMA * bi.SMA // converts a spin torque into an orbital dL/dt.

	// Tide raised by the orbiter on the central body.
	kappaCB := tidalStrength(cb.K, cb.TV, cb.R, bi.M, bi.SMA)
	torqueCB := vec3.Scale(kappaCB, vec3.Sub(vec3.Scale(n, lhat), cb.Spin))
	dSpinCB = vec3.Scale(1/cb.I, torqueCB)

	// Tide raised by the central body on the orbiter itself.
	kappaOrb := tidalStrength(bi.K, bi.TV, bi.R, 1, bi.SMA)
	torqueOrb := vec3.Scale(kappaOrb, vec3.Sub(vec3.Scale(n, lhat), bi.Spin))
	dSpinOrb := vec3.Scale(1/bi.I, torqueOrb)

	dLOrbital := vec3.Scale(-1/amScale, vec3.Add(torqueCB, torqueOrb))
	dA := vec3.Scale(-2*(kappaCB+kappaOrb)/amScale, bi.E)
	dSMA := -2 * (kappaCB + kappaOrb) * bi.SMA * vec3.Dot(bi.E, bi.E)

	rhsBody[oSMA] = dSMA
	copyVec(rhsBody[:], oL, dLOrbital)
	copyVec(rhsBody[:], oE, dA)
	copyVec(rhsBody[:], oSpin, dSpinOrb)

	if !finiteSlice(rhsBody[:]) || !finiteVec3(dSpinCB) {
		return rhsBody, dSpinCB, errors.New("tidal_rhs: produced non-finite derivative")
	}
	return rhsBody, dSpinCB, nil
}

// tidalStrength returns the Hut-style dissipative coupling constant for a
// tide raised by a perturber of mass mPert on a body of Love number k,
// viscous timescale tV and radius R, at separation a. tV == 0 means a
// perfectly rigid, non-dissipative body: the term contributes nothing
// rather than dividing by zero.
func tidalStrength(k, tV, r, mPert, a float64) float64 {
	if tV <= 0 {
		return 0
	}
	return (k / tV) * mPert * mPert * math.Pow(r, 5) / math.Pow(a, 6)
}

func copyVec(dst []float64, off int, v vec3.V) {
	dst[off+0] = v[0]
	dst[off+1] = v[1]
	dst[off+2] = v[2]
}

func finiteVec3(v vec3.V) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func finiteSlice(v []float64) bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
