// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package dualmesh builds and queries planar dual meshes: a Delaunay
// triangulation together with its Voronoi-like polygon dual, closed by a
// ring of ghost triangles around a single ghost region so that traversal
// never has to special-case the outer boundary.
//
// Mesh elements are dense zero-based indices into flat arrays: regions
// (input points, dual polygon cells), sides (directed half-edges, three
// per triangle) and triangles (dual polygon vertices). The last region is
// the ghost region; sides at or beyond NumSolidSides belong to ghost
// triangles.
package dualmesh

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

// ErrCorrupt reports mesh topology that violates the half-edge
// invariants. It is wrapped by circulation errors and never returned for
// meshes produced by Builder.Build.
var ErrCorrupt = errors.New("dualmesh: corrupt mesh topology")

// Dual vertices of ghost triangles sit this far outside the boundary
// edge they close.
const ghostCenterOffset = 10.0

// Init carries one triangulation into NewMesh or Mesh.Update. Points
// must already include the ghost region appended by AddGhostStructure,
// and Triangles/Halfedges the ghost extension.
type Init struct {
	Points             []r2.Point
	NumBoundaryRegions int
	NumSolidSides      int
	Triangles          []int
	Halfedges          []int
}

// Mesh is the dual-mesh structure. It owns all derived arrays outright
// and is immutable after construction except through Update.
type Mesh struct {
	points    []r2.Point
	centers   []r2.Point
	triangles []int
	halfedges []int

	// regionInSide[r] is a representative side whose end region is r,
	// or -1 when r has no incident side.
	regionInSide []int

	numBoundaryRegions int
	numSolidSides      int
	numRegions         int
	numSides           int
	numTriangles       int
	numSolidTriangles  int
}

// NewMesh constructs a Mesh from a ghost-augmented triangulation.
func NewMesh(init Init) (*Mesh, error) {
	m := &Mesh{}
	if err := m.Update(init); err != nil {
		return nil, err
	}
	return m, nil
}

// Update rebuilds every derived array from a freshly supplied
// triangulation of the same point and boundary configuration. It copies
// its input and never retains a reference to it. Updating with an
// unchanged triangulation reproduces identical derived state.
func (m *Mesh) Update(init Init) error {
	if len(init.Triangles) != len(init.Halfedges) {
		return fmt.Errorf("dualmesh: triangles length %d != halfedges length %d",
			len(init.Triangles), len(init.Halfedges))
	}
	if len(init.Triangles)%3 != 0 {
		return fmt.Errorf("dualmesh: triangles length %d not divisible by 3", len(init.Triangles))
	}
	if init.NumSolidSides < 0 || init.NumSolidSides > len(init.Triangles) || init.NumSolidSides%3 != 0 {
		return fmt.Errorf("dualmesh: invalid solid side count %d", init.NumSolidSides)
	}
	if init.NumBoundaryRegions < 0 || init.NumBoundaryRegions > len(init.Points) {
		return fmt.Errorf("dualmesh: invalid boundary region count %d", init.NumBoundaryRegions)
	}
	for s, r := range init.Triangles {
		if r < 0 || r >= len(init.Points) {
			return fmt.Errorf("dualmesh: triangles[%d] = %d out of range [0 %d)", s, r, len(init.Points))
		}
	}
	for s, o := range init.Halfedges {
		if o < -1 || o >= len(init.Halfedges) {
			return fmt.Errorf("dualmesh: halfedges[%d] = %d out of range [-1 %d)", s, o, len(init.Halfedges))
		}
	}

	m.numBoundaryRegions = init.NumBoundaryRegions
	m.numSolidSides = init.NumSolidSides
	m.numRegions = len(init.Points)
	m.numSides = len(init.Triangles)
	m.numTriangles = m.numSides / 3
	m.numSolidTriangles = m.numSolidSides / 3

	m.points = make([]r2.Point, len(init.Points))
	copy(m.points, init.Points)
	m.triangles = make([]int, m.numSides)
	copy(m.triangles, init.Triangles)
	m.halfedges = make([]int, m.numSides)
	copy(m.halfedges, init.Halfedges)

	// Representative incoming side per region: one forward scan,
	// first write wins. Any valid representative is an equivalent
	// circulation start.
	m.regionInSide = make([]int, m.numRegions)
	for r := range m.regionInSide {
		m.regionInSide[r] = -1
	}
	for s := 0; s < m.numSides; s++ {
		endpoint := m.triangles[NextSide(s)]
		if m.regionInSide[endpoint] == -1 {
			m.regionInSide[endpoint] = s
		}
	}

	m.centers = make([]r2.Point, m.numTriangles)
	for t := 0; t < m.numTriangles; t++ {
		m.centers[t] = m.triangleCenter(t)
	}
	return nil
}

// triangleCenter computes the dual vertex of t: the centroid of its
// regions for a solid triangle, or a point pushed outward from the
// closed boundary edge for a ghost triangle.
func (m *Mesh) triangleCenter(t int) r2.Point {
	s := 3 * t
	a := m.points[m.triangles[s]]
	b := m.points[m.triangles[s+1]]
	if m.IsGhostTriangle(t) {
		// The first side of a ghost triangle closes a boundary edge
		// from a to b; the third region is the ghost and carries no
		// usable position.
		mid := a.Add(b).Mul(0.5)
		d := b.Sub(a)
		if d.Norm() == 0 {
			return mid
		}
		out := r2.Point{X: d.Y, Y: -d.X}.Normalize().Mul(ghostCenterOffset)
		return mid.Add(out)
	}
	c := m.points[m.triangles[s+2]]
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// NextSide returns the triangle-local successor of side s.
func NextSide(s int) int {
	if s%3 == 2 {
		return s - 2
	}
	return s + 1
}

// PrevSide returns the triangle-local predecessor of side s.
func PrevSide(s int) int {
	if s%3 == 0 {
		return s + 2
	}
	return s - 1
}

// Counts

// NumRegions returns the number of regions, ghost region included.
func (m *Mesh) NumRegions() int { return m.numRegions }

// NumBoundaryRegions returns the number of regions seeded along the
// domain perimeter. Boundary regions occupy the lowest indices.
func (m *Mesh) NumBoundaryRegions() int { return m.numBoundaryRegions }

// NumSides returns the number of sides; always 3·NumTriangles.
func (m *Mesh) NumSides() int { return m.numSides }

// NumSolidSides returns the number of non-ghost sides.
func (m *Mesh) NumSolidSides() int { return m.numSolidSides }

// NumTriangles returns the number of triangles, ghost triangles included.
func (m *Mesh) NumTriangles() int { return m.numTriangles }

// NumSolidTriangles returns the number of non-ghost triangles.
func (m *Mesh) NumSolidTriangles() int { return m.numSolidTriangles }

// GhostRegion returns the index of the single ghost region.
func (m *Mesh) GhostRegion() int { return m.numRegions - 1 }

// Positions

// RegionPoint returns the position of region r.
func (m *Mesh) RegionPoint(r int) (r2.Point, error) {
	if r < 0 || r >= m.numRegions {
		return r2.Point{}, fmt.Errorf("RegionPoint: index %d out of range [0 %d)", r, m.numRegions)
	}
	return m.points[r], nil
}

// TrianglePoint returns the dual vertex of triangle t.
func (m *Mesh) TrianglePoint(t int) (r2.Point, error) {
	if t < 0 || t >= m.numTriangles {
		return r2.Point{}, fmt.Errorf("TrianglePoint: index %d out of range [0 %d)", t, m.numTriangles)
	}
	return m.centers[t], nil
}

// Topology accessors

// BeginRegion returns the region side s starts from.
func (m *Mesh) BeginRegion(s int) (int, error) {
	if s < 0 || s >= m.numSides {
		return 0, fmt.Errorf("BeginRegion: index %d out of range [0 %d)", s, m.numSides)
	}
	return m.triangles[s], nil
}

// EndRegion returns the region side s points to.
func (m *Mesh) EndRegion(s int) (int, error) {
	if s < 0 || s >= m.numSides {
		return 0, fmt.Errorf("EndRegion: index %d out of range [0 %d)", s, m.numSides)
	}
	return m.triangles[NextSide(s)], nil
}

// OppositeSide returns the paired half-edge of s on the adjacent
// triangle.
func (m *Mesh) OppositeSide(s int) (int, error) {
	if s < 0 || s >= m.numSides {
		return 0, fmt.Errorf("OppositeSide: index %d out of range [0 %d)", s, m.numSides)
	}
	return m.halfedges[s], nil
}

// InnerTriangle returns the triangle owning side s.
func (m *Mesh) InnerTriangle(s int) (int, error) {
	if s < 0 || s >= m.numSides {
		return 0, fmt.Errorf("InnerTriangle: index %d out of range [0 %d)", s, m.numSides)
	}
	return s / 3, nil
}

// OuterTriangle returns the triangle on the other side of s.
func (m *Mesh) OuterTriangle(s int) (int, error) {
	if s < 0 || s >= m.numSides {
		return 0, fmt.Errorf("OuterTriangle: index %d out of range [0 %d)", s, m.numSides)
	}
	return m.halfedges[s] / 3, nil
}

// Predicates

// IsGhostRegion reports whether r is the ghost region.
func (m *Mesh) IsGhostRegion(r int) bool { return r == m.numRegions-1 }

// IsBoundaryRegion reports whether r was seeded on the domain perimeter.
func (m *Mesh) IsBoundaryRegion(r int) bool { return r < m.numBoundaryRegions }

// IsGhostSide reports whether s belongs to a ghost triangle.
func (m *Mesh) IsGhostSide(s int) bool { return s >= m.numSolidSides }

// IsSolidSide reports whether s belongs to a solid triangle.
func (m *Mesh) IsSolidSide(s int) bool { return s < m.numSolidSides }

// IsBoundarySide reports whether s is the ghost half of a closed
// boundary edge.
func (m *Mesh) IsBoundarySide(s int) bool { return m.IsGhostSide(s) && s%3 == 0 }

// IsGhostTriangle reports whether t is a ghost triangle.
func (m *Mesh) IsGhostTriangle(t int) bool { return 3*t >= m.numSolidSides }

// IsSolidTriangle reports whether t is a solid triangle.
func (m *Mesh) IsSolidTriangle(t int) bool { return 3*t < m.numSolidSides }

// Circulation around a region. Each walk starts at the region's
// representative incoming side and repeatedly applies "opposite, then
// triangle-local successor". The step count is capped at NumSides; a
// walk that fails to close within the cap reports ErrCorrupt.

// RegionSides returns the sides that begin at region r, reusing out.
func (m *Mesh) RegionSides(out []int, r int) ([]int, error) {
	s0, err := m.startSide("RegionSides", r)
	if err != nil {
		return nil, err
	}
	out = out[:0]
	incoming := s0
	for range m.numSides {
		out = append(out, m.halfedges[incoming])
		incoming = m.halfedges[NextSide(incoming)]
		if incoming == -1 || incoming == s0 {
			return out, nil
		}
	}
	return nil, fmt.Errorf("RegionSides: circulation around region %d did not close: %w", r, ErrCorrupt)
}

// RegionRegions returns the regions adjacent to region r, reusing out.
func (m *Mesh) RegionRegions(out []int, r int) ([]int, error) {
	s0, err := m.startSide("RegionRegions", r)
	if err != nil {
		return nil, err
	}
	out = out[:0]
	incoming := s0
	for range m.numSides {
		out = append(out, m.triangles[incoming])
		incoming = m.halfedges[NextSide(incoming)]
		if incoming == -1 || incoming == s0 {
			return out, nil
		}
	}
	return nil, fmt.Errorf("RegionRegions: circulation around region %d did not close: %w", r, ErrCorrupt)
}

// RegionTriangles returns the triangles incident to region r, reusing
// out. These are the dual polygon vertices of r's cell, in rotational
// order.
func (m *Mesh) RegionTriangles(out []int, r int) ([]int, error) {
	s0, err := m.startSide("RegionTriangles", r)
	if err != nil {
		return nil, err
	}
	out = out[:0]
	incoming := s0
	for range m.numSides {
		out = append(out, incoming/3)
		incoming = m.halfedges[NextSide(incoming)]
		if incoming == -1 || incoming == s0 {
			return out, nil
		}
	}
	return nil, fmt.Errorf("RegionTriangles: circulation around region %d did not close: %w", r, ErrCorrupt)
}

func (m *Mesh) startSide(op string, r int) (int, error) {
	if r < 0 || r >= m.numRegions {
		return 0, fmt.Errorf("%s: index %d out of range [0 %d)", op, r, m.numRegions)
	}
	s0 := m.regionInSide[r]
	if s0 == -1 {
		return 0, fmt.Errorf("%s: region %d has no incident side", op, r)
	}
	return s0, nil
}

// Circulation around a triangle: a trivial three-element enumeration.

// TriangleSides returns the three sides owned by triangle t, reusing out.
func (m *Mesh) TriangleSides(out []int, t int) ([]int, error) {
	if t < 0 || t >= m.numTriangles {
		return nil, fmt.Errorf("TriangleSides: index %d out of range [0 %d)", t, m.numTriangles)
	}
	out = out[:0]
	for i := range 3 {
		out = append(out, 3*t+i)
	}
	return out, nil
}

// TriangleRegions returns the three corner regions of triangle t,
// reusing out.
func (m *Mesh) TriangleRegions(out []int, t int) ([]int, error) {
	if t < 0 || t >= m.numTriangles {
		return nil, fmt.Errorf("TriangleRegions: index %d out of range [0 %d)", t, m.numTriangles)
	}
	out = out[:0]
	for i := range 3 {
		out = append(out, m.triangles[3*t+i])
	}
	return out, nil
}

// TriangleTriangles returns the three triangles sharing an edge with t,
// reusing out.
func (m *Mesh) TriangleTriangles(out []int, t int) ([]int, error) {
	if t < 0 || t >= m.numTriangles {
		return nil, fmt.Errorf("TriangleTriangles: index %d out of range [0 %d)", t, m.numTriangles)
	}
	out = out[:0]
	for i := range 3 {
		out = append(out, m.halfedges[3*t+i]/3)
	}
	return out, nil
}
