// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dualmesh

import "github.com/golang/geo/r2"

// ghostPoint is the fixed reference position of the synthetic ghost
// region. It sits far outside any practical domain; the ghost region
// carries topology, not geometry.
var ghostPoint = r2.Point{X: -1e4, Y: -1e4}

// AddGhostStructure closes an open triangulation into a topologically
// boundary-free one. Every unpaired side (halfedge -1) is paired with a
// new ghost triangle, and the ghost triangles are chained into a ring
// around one new ghost region appended after the input points.
//
// The returned arrays extend the inputs by exactly three sides per
// unpaired side. The cyclic order of ghost triangles around the ghost
// region matches the geometric boundary order. With no unpaired sides
// the inputs are returned unchanged and no ghost point is appended.
//
// The input halfedge array is trusted: if it is not an involution
// wherever it is not -1, the output is undefined. Use CheckOpposites to
// validate suspect input beforehand.
func AddGhostStructure(points []r2.Point, triangles, halfedges []int) ([]r2.Point, []int, []int) {
	numSolidSides := len(triangles)

	numUnpairedSides := 0
	firstUnpairedSide := -1
	sideForRegion := make(map[int]int) // begin region of an unpaired side -> that side
	for s := 0; s < numSolidSides; s++ {
		if halfedges[s] == -1 {
			numUnpairedSides++
			sideForRegion[triangles[s]] = s
			firstUnpairedSide = s
		}
	}
	if numUnpairedSides == 0 {
		return points, triangles, halfedges
	}

	ghostRegion := len(points)
	newPoints := make([]r2.Point, len(points)+1)
	copy(newPoints, points)
	newPoints[ghostRegion] = ghostPoint

	numSides := numSolidSides + 3*numUnpairedSides
	newTriangles := make([]int, numSides)
	copy(newTriangles, triangles)
	newHalfedges := make([]int, numSides)
	copy(newHalfedges, halfedges)

	// Walk the boundary ring: the next unpaired side begins at the end
	// region of the current one.
	s := firstUnpairedSide
	for i := range numUnpairedSides {
		ghostSide := numSolidSides + 3*i

		// Pair the unpaired side with the ghost triangle's first side.
		newHalfedges[s] = ghostSide
		newHalfedges[ghostSide] = s
		newTriangles[ghostSide] = newTriangles[NextSide(s)]

		// Complete the ghost triangle and chain its ghost-facing side
		// to the neighboring ghost triangle in the ring.
		newTriangles[ghostSide+1] = newTriangles[s]
		newTriangles[ghostSide+2] = ghostRegion
		k := numSolidSides + (3*i+4)%(3*numUnpairedSides)
		newHalfedges[ghostSide+2] = k
		newHalfedges[k] = ghostSide + 2

		s = sideForRegion[newTriangles[NextSide(s)]]
	}

	return newPoints, newTriangles, newHalfedges
}
