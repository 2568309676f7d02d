package rings

import (
	"math"

	"github.com/djmunoz/Rings/vec3"
)

// CentralBody is the massive body at the origin of the hierarchy. Its mass
// defines the unit system (G*M = 1): it carries no mass field of its own.
type CentralBody struct {
	Spin vec3.V  // Angular velocity.
	I    float64 // Moment of inertia.
	R    float64 // Radius.
	K    float64 // Tidal Love number.
	TV   float64 // Viscous timescale; may be zero.
}

// Orbiter is one body bound to the central body, represented by its secular
// elements rather than an instantaneous orbital phase.
type Orbiter struct {
	M    float64 // Mass, in units where the central body's G*M = 1.
	SMA  float64 // Semi-major axis, a.
	L    vec3.V  // Magnitude sqrt(1-e^2), direction of orbital angular momentum.
	E    vec3.V  // Magnitude e, direction of periapse. (The source calls this A.)
	Spin vec3.V  // Angular velocity of the orbiter.
	I    float64 // Moment of inertia.
	R    float64 // Radius.
	K    float64 // Tidal Love number.
	TV   float64 // Viscous timescale; may be zero.
}

// Layout widths, fixed by contract: offsets are deterministic functions of N
// and never change shape once a caller depends on them.
const (
	// CentralWidth is C, the number of flat-vector slots the central body
	// occupies.
	CentralWidth = 7
	// OrbiterWidth is B, the number of flat-vector slots one orbiter
	// occupies, laid out m | a | L(3) | E(3) | spin(3) | I | R | K | TV.
	OrbiterWidth = 15
	// GravWidth is the width of the average_rhs kernel's output: gravity
	// only ever perturbs m, a, L, E, never spin/I/R/K/TV.
	GravWidth = 8
)

// Central-body slot offsets within [0, CentralWidth).
const (
	cSpin = 0 // 3 slots
	cI    = 3
	cR    = 4
	cK    = 5
	cTV   = 6
)

// Per-orbiter slot offsets within an orbiter's OrbiterWidth-wide window.
const (
	oM    = 0
	oSMA  = 1
	oL    = 2 // 3 slots
	oE    = 5 // 3 slots
	oSpin = 8 // 3 slots
	oI    = 11
	oR    = 12
	oK    = 13
	oTV   = 14
)

// Dim returns the length of the flat state vector for n orbiters.
func Dim(n int) int {
	return n*OrbiterWidth + CentralWidth
}

// NewOrbiterFromElements builds an Orbiter from classical orbital elements,
// the way rings.h's init_body_from_elements does: a semi-major axis, an
// eccentricity, and the three orientation angles (all in degrees, following
// the teacher's Deg2rad convention). The periapse direction is first rotated
// by the argument of periapse about z; then both L and A are rotated by the
// inclination about x and finally by the RAAN about z.
func NewOrbiterFromElements(m, a, e, incDeg, raanDeg, argPeriDeg float64, spin vec3.V, I, R, K, TV float64) Orbiter {
	inc := vec3.Deg2rad(incDeg)
	raan := vec3.Deg2rad(raanDeg)
	argPeri := vec3.Deg2rad(argPeriDeg)

	l := vec3.V{0, 0, 1} // unit orbital angular momentum in the orbital plane frame
	l = vec3.RotateX(l, inc)
	l = vec3.RotateZ(l, raan)
	l = vec3.Scale(sqrtOneMinusESquared(e), l)

	ePeri := vec3.V{1, 0, 0}
	ePeri = vec3.RotateZ(ePeri, argPeri)
	ePeri = vec3.RotateX(ePeri, inc)
	ePeri = vec3.RotateZ(ePeri, raan)
	ePeri = vec3.Scale(e, ePeri)

	return Orbiter{M: m, SMA: a, L: l, E: ePeri, Spin: spin, I: I, R: R, K: K, TV: TV}
}

func sqrtOneMinusESquared(e float64) float64 {
	v := 1 - e*e
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}
