// Package vec3 provides the small set of fixed-size 3-vector primitives the
// secular kernels and state packer share: dot/cross/norm, scaling, and the
// axis rotations used to build L/A vectors from classical orbital elements.
//
// These mirror the vector utilities of the original Rings C sources
// (dot, norm, cross, vscale, vadd, vsub, unitize, rotate_x, rotate_z), kept
// as plain [3]float64 arithmetic but expressed over gonum/matrix/mat64
// vectors where that buys BLAS-backed dot/norm, the way smd/math.go does for
// its own R/V vectors.
package vec3

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const zeroTol = 1e-15

// V is a 3-vector. Arrays, not slices, so callers get value semantics and the
// packer can copy in/out of a flat state vector without aliasing it.
type V [3]float64

// Dot returns the inner product of a and b via mat64/BLAS.
func Dot(a, b V) float64 {
	return mat64.Dot(mat64.NewVector(3, a[:]), mat64.NewVector(3, b[:]))
}

// Norm returns the Euclidean norm of v.
func Norm(v V) float64 {
	return mat64.Norm(mat64.NewVector(3, v[:]), 2)
}

// Cross returns a × b.
func Cross(a, b V) V {
	r := mat64.NewVector(3, nil)
	r.SetVec(0, a[1]*b[2]-a[2]*b[1])
	r.SetVec(1, a[2]*b[0]-a[0]*b[2])
	r.SetVec(2, a[0]*b[1]-a[1]*b[0])
	return V{r.At(0, 0), r.At(1, 0), r.At(2, 0)}
}

// Scale returns s*v.
func Scale(s float64, v V) V {
	return V{s * v[0], s * v[1], s * v[2]}
}

// Add returns a+b.
func Add(a, b V) V {
	return V{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func Sub(a, b V) V {
	return V{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Unit returns the unit vector along v, or the zero vector if v is ~0.
func Unit(v V) V {
	n := Norm(v)
	if floats.EqualWithinAbs(n, 0, zeroTol) {
		return V{}
	}
	return Scale(1/n, v)
}

// Project returns the projection of x onto y.
func Project(x, y V) V {
	yn2 := Dot(y, y)
	if floats.EqualWithinAbs(yn2, 0, zeroTol) {
		return V{}
	}
	return Scale(Dot(x, y)/yn2, y)
}

// OrthogonalProject returns the component of x orthogonal to y.
func OrthogonalProject(x, y V) V {
	return Sub(x, Project(x, y))
}

// RotateX rotates v about the x-axis by theta radians.
func RotateX(v V, theta float64) V {
	s, c := math.Sincos(theta)
	return V{
		v[0],
		c*v[1] - s*v[2],
		s*v[1] + c*v[2],
	}
}

// RotateZ rotates v about the z-axis by theta radians.
func RotateZ(v V, theta float64) V {
	s, c := math.Sincos(theta)
	return V{
		c*v[0] - s*v[1],
		s*v[0] + c*v[1],
		v[2],
	}
}

// Deg2rad converts degrees to radians.
func Deg2rad(d float64) float64 { return d * math.Pi / 180 }
