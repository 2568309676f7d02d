package vec3

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestDotCrossOrthogonal(t *testing.T) {
	x := V{1, 0, 0}
	y := V{0, 1, 0}
	if !floats.EqualWithinAbs(Dot(x, y), 0, 1e-15) {
		t.Fatalf("expected orthogonal unit vectors, got dot=%f", Dot(x, y))
	}
	z := Cross(x, y)
	if z != (V{0, 0, 1}) {
		t.Fatalf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestNormUnit(t *testing.T) {
	v := V{3, 4, 0}
	if !floats.EqualWithinAbs(Norm(v), 5, 1e-12) {
		t.Fatalf("norm = %f, want 5", Norm(v))
	}
	u := Unit(v)
	if !floats.EqualWithinAbs(Norm(u), 1, 1e-12) {
		t.Fatalf("unit norm = %f, want 1", Norm(u))
	}
	if Unit(V{}) != (V{}) {
		t.Fatalf("unit of zero vector should be zero, got %v", Unit(V{}))
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	v := V{1, 0, 0}
	r := RotateZ(v, math.Pi/2)
	if !floats.EqualWithinAbs(r[0], 0, 1e-12) || !floats.EqualWithinAbs(r[1], 1, 1e-12) {
		t.Fatalf("rotate_z(x, pi/2) = %v, want (0,1,0)", r)
	}
}

func TestRotateXQuarterTurn(t *testing.T) {
	v := V{0, 1, 0}
	r := RotateX(v, math.Pi/2)
	if !floats.EqualWithinAbs(r[1], 0, 1e-12) || !floats.EqualWithinAbs(r[2], 1, 1e-12) {
		t.Fatalf("rotate_x(y, pi/2) = %v, want (0,0,1)", r)
	}
}

func TestProjectOrthogonalProjectRecompose(t *testing.T) {
	x := V{1, 2, 3}
	y := V{0, 0, 1}
	p := Project(x, y)
	o := OrthogonalProject(x, y)
	sum := Add(p, o)
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(sum[i], x[i], 1e-12) {
			t.Fatalf("project+orthogonal_project = %v, want %v", sum, x)
		}
	}
	if !floats.EqualWithinAbs(Dot(o, y), 0, 1e-12) {
		t.Fatalf("orthogonal component not orthogonal: dot=%f", Dot(o, y))
	}
}
