// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dualmesh

import (
	"errors"
	"slices"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"

	"github.com/2dChan/dualmesh/delaunator"
)

func TestSkinnyTriangles(t *testing.T) {
	tests := []struct {
		name      string
		points    []r2.Point
		triangles []int
		want      []int
	}{
		{
			"equilateral",
			[]r2.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 86.6}},
			[]int{0, 1, 2},
			nil,
		},
		{
			"right isoceles",
			[]r2.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}},
			[]int{0, 1, 2},
			nil,
		},
		{
			"sliver",
			[]r2.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 1}},
			[]int{0, 1, 2},
			[]int{0},
		},
		{
			"mixed",
			[]r2.Point{
				{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 86.6},
				{X: 200, Y: 0}, {X: 300, Y: 0}, {X: 250, Y: 2},
			},
			[]int{0, 1, 2, 3, 4, 5},
			[]int{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkinnyTriangles(tt.points, tt.triangles)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SkinnyTriangles(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckOpposites_Valid(t *testing.T) {
	points := squarePoints()
	triangles, halfedges, err := delaunator.New().Triangulate(points)
	if err != nil {
		t.Fatalf("Triangulate(...) error = %v, want nil", err)
	}

	// Raw triangulation: unpaired sides are fine.
	if err := CheckOpposites(triangles, halfedges); err != nil {
		t.Errorf("CheckOpposites(raw) error = %v, want nil", err)
	}

	// Ghost-closed structure: fully paired.
	_, gTriangles, gHalfedges := AddGhostStructure(points, triangles, halfedges)
	if err := CheckOpposites(gTriangles, gHalfedges); err != nil {
		t.Errorf("CheckOpposites(closed) error = %v, want nil", err)
	}
}

func TestCheckOpposites_Corrupt(t *testing.T) {
	points := squarePoints()
	triangles, halfedges, err := delaunator.New().Triangulate(points)
	if err != nil {
		t.Fatalf("Triangulate(...) error = %v, want nil", err)
	}
	_, gTriangles, gHalfedges := AddGhostStructure(points, triangles, halfedges)

	// Find a pair and break one direction.
	corrupt := slices.Clone(gHalfedges)
	corrupt[gHalfedges[0]] = NextSide(gHalfedges[0])
	if err := CheckOpposites(gTriangles, corrupt); err == nil {
		t.Errorf("CheckOpposites(corrupt) error = nil, want non-nil")
	}

	outOfRange := slices.Clone(gHalfedges)
	outOfRange[0] = len(outOfRange)
	if err := CheckOpposites(gTriangles, outOfRange); err == nil {
		t.Errorf("CheckOpposites(out of range) error = nil, want non-nil")
	}
}

func TestCheckOpposites_LengthMismatch(t *testing.T) {
	if err := CheckOpposites([]int{0, 1, 2}, []int{-1, -1}); err == nil {
		t.Errorf("CheckOpposites(mismatched) error = nil, want non-nil")
	}
}

func TestCirculation_CorruptMeshDetected(t *testing.T) {
	m := mustSquareMesh(t)

	// Redirect halfedges so the walk from region 0 gets stuck on side x
	// and never returns to its start. It must stop with ErrCorrupt
	// instead of looping.
	s0 := m.regionInSide[0]
	x := NextSide(s0)
	m.halfedges[x] = x
	m.halfedges[NextSide(x)] = x

	_, err := m.RegionSides(nil, 0)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("m.RegionSides(nil, 0) error = %v, want wrapped ErrCorrupt", err)
	}
}
