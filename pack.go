package rings

import "github.com/djmunoz/Rings/vec3"

// Pack flattens the central body and its orbiters into a state vector of
// length Dim(len(orbiters)). Every slot is touched exactly once; dst's
// backing array is reused if its capacity is at least Dim(len(orbiters)),
// otherwise a new vector is allocated.
func Pack(cb CentralBody, orbiters []Orbiter, dst []float64) []float64 {
	n := len(orbiters)
	dim := Dim(n)
	if cap(dst) < dim {
		dst = make([]float64, dim)
	}
	dst = dst[:dim]

	putVec(dst, cSpin, cb.Spin)
	dst[cI] = cb.I
	dst[cR] = cb.R
	dst[cK] = cb.K
	dst[cTV] = cb.TV

	for i, b := range orbiters {
		off := CentralWidth + i*OrbiterWidth
		dst[off+oM] = b.M
		dst[off+oSMA] = b.SMA
		putVec(dst, off+oL, b.L)
		putVec(dst, off+oE, b.E)
		putVec(dst, off+oSpin, b.Spin)
		dst[off+oI] = b.I
		dst[off+oR] = b.R
		dst[off+oK] = b.K
		dst[off+oTV] = b.TV
	}
	return dst
}

// Unpack is the inverse of Pack: it reads a flat state vector of length
// Dim(n) back into a typed CentralBody and n Orbiters.
func Unpack(y []float64) (CentralBody, []Orbiter) {
	cb := CentralBody{
		Spin: getVec(y, cSpin),
		I:    y[cI],
		R:    y[cR],
		K:    y[cK],
		TV:   y[cTV],
	}

	n := (len(y) - CentralWidth) / OrbiterWidth
	orbiters := make([]Orbiter, n)
	for i := 0; i < n; i++ {
		off := CentralWidth + i*OrbiterWidth
		orbiters[i] = Orbiter{
			M:    y[off+oM],
			SMA:  y[off+oSMA],
			L:    getVec(y, off+oL),
			E:    getVec(y, off+oE),
			Spin: getVec(y, off+oSpin),
			I:    y[off+oI],
			R:    y[off+oR],
			K:    y[off+oK],
			TV:   y[off+oTV],
		}
	}
	return cb, orbiters
}

func putVec(dst []float64, off int, v vec3.V) {
	dst[off+0] = v[0]
	dst[off+1] = v[1]
	dst[off+2] = v[2]
}

func getVec(src []float64, off int) vec3.V {
	return vec3.V{src[off+0], src[off+1], src[off+2]}
}
