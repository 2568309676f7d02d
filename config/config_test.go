package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsTOMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	const toml = `
[secular]
eps = 1e-5
epsquad = 1e-7

[step]
initial = 0.01
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(toml), 0o644); err != nil {
		t.Fatalf("writing conf.toml: %v", err)
	}
	t.Setenv("RINGS_CONFIG", dir)

	c := Load()
	if c.Eps != 1e-5 {
		t.Fatalf("Eps = %g, want 1e-5", c.Eps)
	}
	if c.EpsQuad != 1e-7 {
		t.Fatalf("EpsQuad = %g, want 1e-7", c.EpsQuad)
	}
	if c.InitialH != 0.01 {
		t.Fatalf("InitialH = %g, want 0.01", c.InitialH)
	}
	// Untouched keys fall back to the defaults set in Load.
	if c.Tol != 1e-8 {
		t.Fatalf("Tol = %g, want default 1e-8", c.Tol)
	}
	if c.MaxH != 10.0 {
		t.Fatalf("MaxH = %g, want default 10.0", c.MaxH)
	}
}
