package rings

import (
	"errors"
	"runtime"
	"sync"

	"github.com/djmunoz/Rings/vec3"
)

// ErrKernelFailure is returned by F, as is, when
// average_rhs failed to converge for some pair, or tidal_rhs produced a
// non-finite result for some orbiter.
var ErrKernelFailure = errors.New("rings: kernel failure")

// Params bundles the RHS assembler's fixed inputs: the orbiter count, the
// gravitational softening length, and the quadrature tolerance threaded into
// average_rhs.
type Params struct {
	N       int
	Eps     float64
	EpsQuad float64
}

// F builds the right-hand-side closure consumed by the stepper, capturing
// (N, eps, epsquad) and the kernel implementations to use — the default
// construction, NewF(n, eps, epsQuad), wires in the package's own AverageRHS
// and TidalRHS; NewFWithKernels lets a caller substitute higher-fidelity
// kernels without touching the assembly loop itself.
type F struct {
	params Params
	avg    AverageRHSFunc
	tidal  TidalRHSFunc
}

// NewF returns an RHS assembler using the package's default analytic
// kernels.
func NewF(n int, eps, epsQuad float64) *F {
	return NewFWithKernels(n, eps, epsQuad, AverageRHS, TidalRHS)
}

// NewFWithKernels returns an RHS assembler using caller-supplied kernels.
func NewFWithKernels(n int, eps, epsQuad float64, avg AverageRHSFunc, tidal TidalRHSFunc) *F {
	return &F{params: Params{N: n, Eps: eps, EpsQuad: epsQuad}, avg: avg, tidal: tidal}
}

// Dim implements integrator.System.
func (f *F) Dim() int { return Dim(f.params.N) }

// Eval computes dy/dt into dydt (which must have length Dim(f.params.N)) by
// fanning out across orbiters in parallel: iteration i owns dydt's slice for
// orbiter i exclusively, but every iteration also contributes to the shared
// central-body spin derivative. Per the concurrency design, each worker
// accumulates its own orbiters' tidal spin contributions locally; they are
// summed into the shared slot only after every worker has finished, so no
// lock or atomic is needed on the hot path.
func (f *F) Eval(t float64, y, dydt []float64) error {
	n := f.params.N
	if len(y) != Dim(n) || len(dydt) != Dim(n) {
		panic("rings: F.Eval called with mismatched state vector length")
	}
	for i := range dydt {
		dydt[i] = 0
	}
	if n == 0 {
		return nil
	}

	cb, orbiters := Unpack(y)

	localSpin := make([]vec3.V, n)
	localOK := make([]bool, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	indices := make(chan int, n)
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				ok := true
				bi := orbiters[i]
				off := CentralWidth + i*OrbiterWidth

				for j := 0; j < n; j++ {
					if j == i {
						continue
					}
					rhs, err := f.avg(f.params.Eps, bi, orbiters[j], f.params.EpsQuad)
					if err != nil {
						ok = false
						continue
					}
					for k := 0; k < GravWidth; k++ {
						dydt[off+k] += rhs[k]
					}
				}

				rhsBody, dSpin, err := f.tidal(bi, cb)
				if err != nil {
					ok = false
				}
				for k := 0; k < OrbiterWidth; k++ {
					dydt[off+k] += rhsBody[k]
				}
				localSpin[i] = dSpin
				localOK[i] = ok
			}
		}()
	}
	wg.Wait()

	overallOK := true
	var spinSum vec3.V
	for i := 0; i < n; i++ {
		spinSum = vec3.Add(spinSum, localSpin[i])
		if !localOK[i] {
			overallOK = false
		}
	}
	dydt[cSpin+0] += spinSum[0]
	dydt[cSpin+1] += spinSum[1]
	dydt[cSpin+2] += spinSum[2]

	if !overallOK {
		return ErrKernelFailure
	}
	return nil
}
