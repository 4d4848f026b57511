package geometry

import (
	"math"
	"testing"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

func unitTriangle() Triangle {
	// Triangle in the z=1 plane covering the ray (0,0,1)
	return NewTriangle(
		core.NewVec3(-1, -1, 1),
		core.NewVec3(3, -1, 1),
		core.NewVec3(-1, 3, 1),
		core.NewVec2(0, 0),
		core.NewVec2(1, 0),
		core.NewVec2(0, 1),
	)
}

func TestIntersectHit(t *testing.T) {
	tri := unitTriangle()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	bary, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("expected hit through triangle interior")
	}

	// Weights sum to one
	sum := bary.U + bary.V + bary.W
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("barycentric weights sum to %f, expected 1", sum)
	}

	// The hit point is at (0,0,1): u=0.25, v=0.25 relative to V0=(-1,-1,1)
	if math.Abs(bary.U-0.25) > 1e-12 || math.Abs(bary.V-0.25) > 1e-12 {
		t.Errorf("expected u=v=0.25, got u=%f v=%f", bary.U, bary.V)
	}
}

func TestIntersectMisses(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"outside u<0", core.NewRay(core.NewVec3(-2, 0, 0), core.NewVec3(0, 0, 1))},
		{"outside u+v>1", core.NewRay(core.NewVec3(3, 3, 0), core.NewVec3(0, 0, 1))},
		{"behind origin", core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1))},
		{"parallel", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))},
	}

	for _, tt := range tests {
		if _, ok := tri.Intersect(tt.ray); ok {
			t.Errorf("%s: expected miss", tt.name)
		}
	}
}

func TestIntersectBackface(t *testing.T) {
	tri := unitTriangle()
	// Rays hit regardless of winding; only the sign of the determinant flips
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if _, ok := tri.Intersect(ray); !ok {
		t.Error("expected hit from the back side")
	}
}

func TestUVAt(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		bary     Barycentric
		expected core.Vec2
	}{
		{Barycentric{U: 1, V: 0, W: 0}, core.NewVec2(0, 0)},
		{Barycentric{U: 0, V: 1, W: 0}, core.NewVec2(1, 0)},
		{Barycentric{U: 0, V: 0, W: 1}, core.NewVec2(0, 1)},
		{Barycentric{U: 0.5, V: 0.25, W: 0.25}, core.NewVec2(0.25, 0.25)},
	}

	for _, tt := range tests {
		got := tri.UVAt(tt.bary)
		if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
			t.Errorf("UVAt(%+v): expected %v, got %v", tt.bary, tt.expected, got)
		}
	}
}
