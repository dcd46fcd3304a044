package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func TestEmptyAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Fatal("EmptyAABB should be empty")
	}

	b.Extend(V3(1, 2, 3))
	if b.IsEmpty() {
		t.Fatal("box with one point should not be empty")
	}
	if b.Min != V3(1, 2, 3) || b.Max != V3(1, 2, 3) {
		t.Errorf("expected degenerate box at (1,2,3), got %+v", b)
	}
}

func TestAABBUnion(t *testing.T) {
	a := NewAABB(V3(-1, -1, -1), V3(1, 1, 1))
	c := NewAABB(V3(0, 0, 0), V3(3, 0.5, 2))

	u := a.Union(c)
	if u.Min != V3(-1, -1, -1) || u.Max != V3(3, 1, 2) {
		t.Errorf("unexpected union %+v", u)
	}

	if got := EmptyAABB().Union(a); got != a {
		t.Errorf("empty ∪ a should be a, got %+v", got)
	}
	if got := a.Union(EmptyAABB()); got != a {
		t.Errorf("a ∪ empty should be a, got %+v", got)
	}
}

func TestAABBCenterSize(t *testing.T) {
	b := NewAABB(V3(2, 4, 6), V3(-2, 0, 2))
	if b.Center() != V3(0, 2, 4) {
		t.Errorf("expected center (0,2,4), got %+v", b.Center())
	}
	if b.Size() != V3(4, 4, 4) {
		t.Errorf("expected size (4,4,4), got %+v", b.Size())
	}
	if b.Size().MaxComponent() != 4 {
		t.Errorf("expected max component 4, got %f", b.Size().MaxComponent())
	}
}

func TestAABBTransform(t *testing.T) {
	b := NewAABB(V3(-1, -1, -1), V3(1, 1, 1))
	moved := b.Transform(Translate(V3(10, 0, -5)))
	if moved.Min != V3(9, -1, -6) || moved.Max != V3(11, 1, -4) {
		t.Errorf("unexpected translated box %+v", moved)
	}

	if !EmptyAABB().Transform(Translate(V3(1, 1, 1))).IsEmpty() {
		t.Error("transforming an empty box should keep it empty")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I should equal M, got %v", got)
	}
}

func TestFromTRS(t *testing.T) {
	// 90 degrees around Y: +X maps to -Z.
	s := math32.Sqrt(0.5)
	m := FromTRS(V3(0, 1, 0), [4]float32{0, s, 0, s}, Splat(2))
	p := m.TransformPoint(V3(1, 0, 0))

	if !approx(p.X, 0) || !approx(p.Y, 1) || !approx(p.Z, -2) {
		t.Errorf("expected (0,1,-2), got %+v", p)
	}
}

func TestTransformNormal(t *testing.T) {
	tests := []struct {
		name   string
		m      Mat4
		normal Vec3
		want   Vec3
	}{
		{"identity", Identity(), V3(0, 0, 1), V3(0, 0, 1)},
		{"uniform scale keeps direction", FromTRS(Vec3{}, [4]float32{0, 0, 0, 1}, Splat(3)), V3(0, 1, 0), V3(0, 1, 0)},
		// The plane x+y=0 stretched along X becomes x+2y=0.
		{"non-uniform scale", FromTRS(Vec3{}, [4]float32{0, 0, 0, 1}, V3(2, 1, 1)), V3(1, 1, 0), V3(1, 2, 0).Normalize()},
		{"mirror flips", FromTRS(Vec3{}, [4]float32{0, 0, 0, 1}, V3(-1, 1, 1)), V3(1, 0, 0), V3(-1, 0, 0)},
		{"translation ignored", FromTRS(V3(5, 6, 7), [4]float32{0, 0, 0, 1}, Splat(1)), V3(1, 0, 0), V3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformNormal(tt.normal).Normalize()
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := V3(3, 4, 5)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))
	p := view.TransformPoint(eye)

	if !approx(p.X, 0) || !approx(p.Y, 0) || !approx(p.Z, 0) {
		t.Errorf("eye should map to origin, got %+v", p)
	}

	// The target lies straight down -Z in view space.
	q := view.TransformPoint(V3(0, 0, 0))
	if !approx(q.X, 0) || !approx(q.Y, 0) || q.Z >= 0 {
		t.Errorf("target should be on -Z axis, got %+v", q)
	}
}

func TestOrthoMapsDepthRange(t *testing.T) {
	m := Ortho(-1, 1, -1, 1, -8, 8)
	near := m.TransformPoint(V3(0, 0, 8))
	far := m.TransformPoint(V3(0, 0, -8))

	if !approx(near.Z, -1) || !approx(far.Z, 1) {
		t.Errorf("expected NDC z -1..1, got %f..%f", near.Z, far.Z)
	}
}
