// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dualmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// cos 30°; a corner sharper than 30° has a larger cosine.
var skinnyCos = math.Cos(30 * math.Pi / 180)

// SkinnyTriangles reports the triangles with an interior angle below
// 30 degrees. Such triangles are legal but tend to produce badly shaped
// dual cells. Diagnostic only; the mesh is built regardless.
func SkinnyTriangles(points []r2.Point, triangles []int) []int {
	var skinny []int
	for t := 0; t*3 < len(triangles); t++ {
		a := points[triangles[3*t]]
		b := points[triangles[3*t+1]]
		c := points[triangles[3*t+2]]
		if cornerCos(a, b, c) > skinnyCos ||
			cornerCos(b, c, a) > skinnyCos ||
			cornerCos(c, a, b) > skinnyCos {
			skinny = append(skinny, t)
		}
	}
	return skinny
}

// cornerCos returns the cosine of the interior angle at p.
func cornerCos(p, q, r r2.Point) float64 {
	return q.Sub(p).Normalize().Dot(r.Sub(p).Normalize())
}

// CheckOpposites verifies that the halfedge array is an involution
// wherever it is paired and that circulating from every side terminates
// within a bounded step count. It accepts raw (pre-ghost) input, where
// -1 terminates a circulation. All findings are joined into the
// returned error; nil means no finding.
func CheckOpposites(triangles, halfedges []int) error {
	var errs []error
	if len(triangles) != len(halfedges) {
		return fmt.Errorf("CheckOpposites: triangles length %d != halfedges length %d",
			len(triangles), len(halfedges))
	}
	numSides := len(halfedges)

	for s := 0; s < numSides; s++ {
		o := halfedges[s]
		if o == -1 {
			continue
		}
		if o < 0 || o >= numSides {
			errs = append(errs, fmt.Errorf("halfedges[%d] = %d out of range [0 %d)", s, o, numSides))
			continue
		}
		if halfedges[o] != s {
			errs = append(errs, fmt.Errorf("halfedges[halfedges[%d]] = %d, want %d", s, halfedges[o], s))
		}
	}

	for s0 := 0; s0 < numSides; s0++ {
		s := s0
		closed := false
		for range numSides {
			o := halfedges[s]
			if o == -1 {
				closed = true
				break
			}
			if o < 0 || o >= numSides {
				closed = true // already reported above
				break
			}
			s = NextSide(o)
			if s == s0 {
				closed = true
				break
			}
		}
		if !closed {
			errs = append(errs, fmt.Errorf("circulation from side %d around region %d did not terminate", s0, triangles[s0]))
		}
	}

	return errors.Join(errs...)
}

// A point-collinearity check (no three input points exactly collinear)
// would catch degenerate triangulator input before it produces
// zero-area triangles. Not implemented; the boundary layout already
// perturbs perimeter points off exact lines.
