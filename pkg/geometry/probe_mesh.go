package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// ErrNoTriangles indicates a probe mesh with an empty face list.
var ErrNoTriangles = errors.New("probe mesh has no triangles")

// ProbeMesh is a closed triangulated surface centered on a probe, with
// per-triangle lightmap UVs. Used only during projection; never persisted.
type ProbeMesh struct {
	Triangles []Triangle
}

// NewProbeMesh builds a probe mesh from indexed vertex data. faces index into
// vertices; uvs holds one UV per face corner (three per face, in face order).
// A uniform scale is applied to every vertex, matching how probe objects
// carry their world scale separately from their local geometry.
func NewProbeMesh(vertices []core.Vec3, faces [][3]int, uvs []core.Vec2, scale float64) (*ProbeMesh, error) {
	if len(faces) == 0 {
		return nil, ErrNoTriangles
	}
	if len(uvs) != len(faces)*3 {
		return nil, fmt.Errorf("probe mesh has %d faces but %d UVs (expected %d)",
			len(faces), len(uvs), len(faces)*3)
	}

	mesh := &ProbeMesh{Triangles: make([]Triangle, 0, len(faces))}
	for i, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", i, idx, len(vertices))
			}
		}
		mesh.Triangles = append(mesh.Triangles, NewTriangle(
			vertices[face[0]].Multiply(scale),
			vertices[face[1]].Multiply(scale),
			vertices[face[2]].Multiply(scale),
			uvs[i*3], uvs[i*3+1], uvs[i*3+2],
		))
	}
	return mesh, nil
}

// Intersect scans every triangle in order and returns the index and
// barycentric coordinates of the first accepted hit. Iteration order is part
// of the contract: coincident surfaces resolve to the lowest triangle index.
func (m *ProbeMesh) Intersect(ray core.Ray) (int, Barycentric, bool) {
	for i, tri := range m.Triangles {
		if bary, ok := tri.Intersect(ray); ok {
			return i, bary, true
		}
	}
	return 0, Barycentric{}, false
}

// NewIcosphere generates a closed unit-sphere probe mesh by subdividing an
// octahedron and projecting onto the sphere, with spherical lightmap UVs.
// subdivisions=0 yields the 8 octahedron faces; each level quadruples the
// face count.
func NewIcosphere(subdivisions int, radius float64) *ProbeMesh {
	type tri struct{ a, b, c core.Vec3 }

	faces := []tri{
		{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(-1, 0, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, -1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1)},
		{core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, -1)},
		{core.NewVec3(0, -1, 0), core.NewVec3(-1, 0, 0), core.NewVec3(0, 0, -1)},
		{core.NewVec3(1, 0, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 0, -1)},
	}

	for level := 0; level < subdivisions; level++ {
		next := make([]tri, 0, len(faces)*4)
		for _, f := range faces {
			ab := f.a.Add(f.b).Normalize()
			bc := f.b.Add(f.c).Normalize()
			ca := f.c.Add(f.a).Normalize()
			next = append(next,
				tri{f.a, ab, ca},
				tri{ab, f.b, bc},
				tri{ca, bc, f.c},
				tri{ab, bc, ca},
			)
		}
		faces = next
	}

	mesh := &ProbeMesh{Triangles: make([]Triangle, 0, len(faces))}
	for _, f := range faces {
		mesh.Triangles = append(mesh.Triangles, NewTriangle(
			f.a.Multiply(radius), f.b.Multiply(radius), f.c.Multiply(radius),
			sphericalUV(f.a), sphericalUV(f.b), sphericalUV(f.c),
		))
	}
	return mesh
}

// sphericalUV maps a unit direction to equirectangular texture coordinates.
func sphericalUV(dir core.Vec3) core.Vec2 {
	u := 0.5 + math.Atan2(dir.Y, dir.X)/(2*math.Pi)
	v := math.Acos(max(-1, min(1, dir.Z))) / math.Pi
	return core.NewVec2(u, v)
}
