package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/djmunoz/Rings"
	"github.com/djmunoz/Rings/config"
	"github.com/djmunoz/Rings/vec3"
)

func main() {
	tEnd := flag.Float64("tend", 1000.0, "time to integrate to")
	flag.Parse()

	cfg := config.Load()
	fmt.Println(cfg)

	cb := rings.CentralBody{Spin: vec3.V{0, 0, 2e-3}, I: 0.08, R: 4.65e-3, K: 0.03, TV: 8.0}
	orbiters := []rings.Orbiter{
		rings.NewOrbiterFromElements(1.01e-3, 1.0, 0.05, 3, 0, 0, vec3.V{0, 0, 1.5e-4}, 1e-4, 1e-3, 0.05, 3.0),
		rings.NewOrbiterFromElements(1.998e-3, 1.6, 0.1, 8, 20, 40, vec3.V{0, 0, 1.5e-4}, 2e-4, 2e-3, 0.07, 2.0),
	}

	sys := rings.NewSystem("secularevolve", cb, orbiters, cfg.Eps, cfg.EpsQuad, cfg.InitialH)

	steps := 0
	for sys.T() < *tEnd {
		if err := sys.EvolveStep(); err != nil {
			fmt.Fprintf(os.Stderr, "step %d failed at t=%g: %s\n", steps, sys.T(), err)
			os.Exit(1)
		}
		steps++
		if steps%1000 == 0 {
			fmt.Printf("t=%g h=%g (%d steps)\n", sys.T(), sys.H(), steps)
		}
	}

	_, final := sys.State()
	for i, o := range final {
		fmt.Printf("orbiter %d: a=%g |L|=%g |A|=%g\n", i, o.SMA, vec3.Norm(o.L), vec3.Norm(o.E))
	}
}
