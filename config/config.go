// Package config loads the numeric knobs a secular run is tuned with from a
// TOML file via Viper, using the same env-var-plus-conf.toml pattern (here
// RINGS_CONFIG) the teacher package used for its SPICE/Horizons
// configuration.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

var (
	loadOnce sync.Once
	loaded   Config
)

// Config bundles the run parameters: the gravitational softening length and
// quadrature tolerance fed to F, the controller tolerance, the initial step
// size, and minimum/maximum step sizes. MinH and MaxH are loaded but the
// integrator does not clamp h with them.
type Config struct {
	Eps        float64
	EpsQuad    float64
	Tol        float64
	InitialH   float64
	MinH       float64
	MaxH       float64
	OutputPath string
}

func (c Config) String() string {
	return fmt.Sprintf("[rings:config] eps=%g epsquad=%g tol=%g h0=%g", c.Eps, c.EpsQuad, c.Tol, c.InitialH)
}

// Load reads the run configuration, the analogue of the teacher's
// smdConfig(): it panics if RINGS_CONFIG is unset or conf.toml cannot be
// found there, since a misconfigured run should fail loudly rather than
// silently integrate with the wrong tolerance. Subsequent calls return the
// cached Config.
func Load() Config {
	loadOnce.Do(func() {
		confPath := os.Getenv("RINGS_CONFIG")
		if confPath == "" {
			panic("environment variable `RINGS_CONFIG` is missing or empty")
		}
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found: %w", confPath, err))
		}

		viper.SetDefault("secular.eps", 1e-3)
		viper.SetDefault("secular.epsquad", 1e-6)
		viper.SetDefault("controller.tol", 1e-8)
		viper.SetDefault("step.initial", 1e-3)
		viper.SetDefault("step.min", 1e-8)
		viper.SetDefault("step.max", 10.0)
		viper.SetDefault("general.output_path", ".")

		loaded = Config{
			Eps:        viper.GetFloat64("secular.eps"),
			EpsQuad:    viper.GetFloat64("secular.epsquad"),
			Tol:        viper.GetFloat64("controller.tol"),
			InitialH:   viper.GetFloat64("step.initial"),
			MinH:       viper.GetFloat64("step.min"),
			MaxH:       viper.GetFloat64("step.max"),
			OutputPath: viper.GetString("general.output_path"),
		}
	})
	return loaded
}
