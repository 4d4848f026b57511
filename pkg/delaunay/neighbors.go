package delaunay

import "fmt"

// None marks a boundary face of the convex hull: no neighboring simplex
// exists across it. Serialization turns this into a JSON null.
const None = -1

// Neighbors derives, for each simplex, the index of the unique other simplex
// sharing the face opposite each of its four vertices. Entry k of a
// simplex's neighbor list corresponds to the face formed by its other three
// vertices. Adjacency is symmetric by construction.
//
// A valid tetrahedralization has at most one simplex across any face. That
// assumption is validated here rather than trusted: finding a second match
// means the partition is corrupt, and silently picking the first would hand
// the runtime interpolator a wrong cell.
func Neighbors(simplices []Simplex) ([][4]int, error) {
	neighbors := make([][4]int, len(simplices))

	for i, simp := range simplices {
		for k := 0; k < 4; k++ {
			// The face opposite vertex k is the other three vertices
			var face [3]int
			fi := 0
			for j, v := range simp {
				if j != k {
					face[fi] = v
					fi++
				}
			}

			neighbor := None
			for j, other := range simplices {
				if j == i {
					continue
				}
				if containsFace(other, face) {
					if neighbor != None {
						return nil, fmt.Errorf(
							"face %v of simplex %v shared by simplices %d and %d",
							face, simp, neighbor, j)
					}
					neighbor = j
				}
			}
			neighbors[i][k] = neighbor
		}
	}

	return neighbors, nil
}

// containsFace reports whether all three face vertices appear in the simplex.
func containsFace(s Simplex, face [3]int) bool {
	for _, f := range face {
		found := false
		for _, v := range s {
			if v == f {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
