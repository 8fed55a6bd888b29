// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunator adapts the fogleman/delaunay triangulator to the
// flat triangle/halfedge arrays consumed by dualmesh. The triangulation
// algorithm itself is not implemented here.
package delaunator

import (
	"errors"
	"fmt"

	"github.com/fogleman/delaunay"
	"github.com/golang/geo/r2"
)

// Triangulator implements dualmesh.Triangulator on top of
// fogleman/delaunay. The zero value is ready to use.
type Triangulator struct{}

// New returns a ready-to-use Triangulator.
func New() *Triangulator {
	return &Triangulator{}
}

// Triangulate computes the Delaunay triangulation of points. It returns
// region-index triples flattened to length 3T and a same-length halfedge
// array with -1 marking unpaired sides. At least 3 points are required.
func (*Triangulator) Triangulate(points []r2.Point) (triangles, halfedges []int, err error) {
	if len(points) < 3 {
		return nil, nil,
			errors.New("delaunator: insufficient points for triangulation (minimum 3 required)")
	}

	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	dt, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, nil, fmt.Errorf("delaunator: %w", err)
	}

	if len(dt.Triangles)%3 != 0 || len(dt.Halfedges) != len(dt.Triangles) {
		return nil, nil, fmt.Errorf(
			"delaunator: inconsistent array shapes from triangulation (triangles %d, halfedges %d)",
			len(dt.Triangles), len(dt.Halfedges))
	}
	return dt.Triangles, dt.Halfedges, nil
}
