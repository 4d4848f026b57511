package delaunay

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

func TestNeighborsSingleSimplex(t *testing.T) {
	neighbors, err := Neighbors([]Simplex{{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}
	if len(neighbors) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(neighbors))
	}
	for k, n := range neighbors[0] {
		if n != None {
			t.Errorf("face %d: expected boundary (None), got %d", k, n)
		}
	}
}

func TestNeighborsSharedFace(t *testing.T) {
	// Two tetrahedra sharing face {1,2,3}
	simplices := []Simplex{
		{0, 1, 2, 3},
		{1, 2, 3, 4},
	}

	neighbors, err := Neighbors(simplices)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}

	// Simplex 0: face opposite vertex 0 (position 0) is {1,2,3} -> simplex 1
	if neighbors[0][0] != 1 {
		t.Errorf("expected simplex 0 face 0 -> 1, got %d", neighbors[0][0])
	}
	for k := 1; k < 4; k++ {
		if neighbors[0][k] != None {
			t.Errorf("simplex 0 face %d: expected None, got %d", k, neighbors[0][k])
		}
	}

	// Simplex 1: face opposite vertex 4 (position 3) is {1,2,3} -> simplex 0
	if neighbors[1][3] != 0 {
		t.Errorf("expected simplex 1 face 3 -> 0, got %d", neighbors[1][3])
	}
}

func TestNeighborsDuplicateFaceRejected(t *testing.T) {
	// Simplices 1 and 2 both share face {1,2,3} with simplex 0, which is
	// geometrically impossible in a valid partition
	simplices := []Simplex{
		{0, 1, 2, 3},
		{1, 2, 3, 4},
		{1, 2, 3, 5},
	}

	_, err := Neighbors(simplices)
	if err == nil {
		t.Fatal("expected duplicate shared face to be rejected")
	}
	if !strings.Contains(err.Error(), "shared by") {
		t.Errorf("unexpected error message: %v", err)
	}
}

// Symmetry law: if A lists B across a face, B lists A across the same face.
func TestNeighborsSymmetry(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	points := make([]core.Vec3, 20)
	for i := range points {
		points[i] = core.NewVec3(random.Float64()*5, random.Float64()*5, random.Float64()*5)
	}

	simplices, err := Tetrahedralize(points)
	if err != nil {
		t.Fatalf("Tetrahedralize failed: %v", err)
	}
	neighbors, err := Neighbors(simplices)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}

	for i := range simplices {
		for _, n := range neighbors[i] {
			if n == None {
				continue
			}
			back := false
			for _, m := range neighbors[n] {
				if m == i {
					back = true
				}
			}
			if !back {
				t.Errorf("simplex %d lists %d as neighbor, but not vice versa", i, n)
			}
		}
	}
}

// End-to-end property: a convex tetrahedron plus one interior point yields 4
// cells; faces on the hull have no neighbor, interior faces have exactly one.
func TestNeighborsTetraWithInteriorPoint(t *testing.T) {
	points := []core.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0.25, Y: 0.25, Z: 0.25},
	}

	simplices, err := Tetrahedralize(points)
	if err != nil {
		t.Fatalf("Tetrahedralize failed: %v", err)
	}
	if len(simplices) != 4 {
		t.Fatalf("expected 4 simplices, got %d", len(simplices))
	}

	neighbors, err := Neighbors(simplices)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}

	for i, s := range simplices {
		boundary, interior := 0, 0
		for _, n := range neighbors[i] {
			if n == None {
				boundary++
			} else {
				interior++
			}
		}
		// Each cell touches the hull with one face per hull triangle it owns
		// (1 here) and its other three faces are interior
		if boundary != 1 || interior != 3 {
			t.Errorf("simplex %d (%v): expected 1 boundary + 3 interior faces, got %d + %d",
				i, s, boundary, interior)
		}
	}
}
