package geometry

import (
	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Epsilon rejects near-parallel ray-triangle configurations and hits at or
// behind the ray origin.
const Epsilon = 1e-6

// Triangle is one face of a probe mesh: three vertices plus the per-vertex
// UV coordinates referencing the probe's lightmap.
type Triangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2
}

// NewTriangle creates a triangle with its lightmap UVs
func NewTriangle(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2, UV0: uv0, UV1: uv1, UV2: uv2}
}

// Barycentric holds the weights of an accepted ray-triangle intersection.
// U and V are the Möller-Trumbore edge weights; W = 1-U-V.
type Barycentric struct {
	U, V, W float64
}

// Intersect tests the ray against the triangle using Möller-Trumbore and
// returns barycentric coordinates when the ray hits the triangle in front of
// its origin. Near-parallel configurations (|det| < Epsilon) and hits with
// t <= Epsilon are rejected.
func (t Triangle) Intersect(ray core.Ray) (Barycentric, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)

	// Ray lies in (or nearly in) the plane of the triangle
	if det > -Epsilon && det < Epsilon {
		return Barycentric{}, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := s.Dot(p) * invDet

	if u < 0 || u > 1 {
		return Barycentric{}, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet

	if v < 0 || u+v > 1 {
		return Barycentric{}, false
	}

	tParam := edge2.Dot(q) * invDet
	if tParam <= Epsilon {
		// Intersection behind (or at) the origin
		return Barycentric{}, false
	}

	return Barycentric{U: u, V: v, W: 1 - u - v}, true
}

// UVAt maps barycentric weights to a lightmap UV coordinate. The weight
// assignment (U to UV0, V to UV1, W to UV2) is part of the bake contract:
// lightmaps are sampled with exactly this mapping.
func (t Triangle) UVAt(bary Barycentric) core.Vec2 {
	return t.UV0.Multiply(bary.U).
		Add(t.UV1.Multiply(bary.V)).
		Add(t.UV2.Multiply(bary.W))
}
