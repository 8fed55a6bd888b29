// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func testBounds() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1000, Y: 1000})
}

func TestGenerateRandomPoints_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateRandomPoints(tt.cnt, tt.seed, testBounds())
			if len(points) != tt.cnt {
				t.Errorf("GenerateRandomPoints(%v, %v, bounds) len = %v, want %v", tt.cnt, tt.seed,
					len(points), tt.cnt)
			}
		})
	}
}

func TestGenerateRandomPoints_InBounds(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	bounds := r2.RectFromPoints(r2.Point{X: -50, Y: 200}, r2.Point{X: 150, Y: 900})
	points := GenerateRandomPoints(cnt, seed, bounds)
	for i, p := range points {
		if !bounds.ContainsPoint(p) {
			t.Errorf("GenerateRandomPoints(%v, %v, bounds)[%d] = %v outside %v", cnt, seed, i, p, bounds)
		}
	}
}

func TestGenerateRandomPoints_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := GenerateRandomPoints(cnt, seed, testBounds())
	b := GenerateRandomPoints(cnt, seed, testBounds())
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomPoints(%v, %v, bounds) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}

func TestJitteredGrid_Sample(t *testing.T) {
	const minDistance = 50
	bounds := testBounds()
	grid := JitteredGrid{Bounds: bounds, Seed: 0}

	points := grid.Sample(nil, minDistance)
	if len(points) == 0 {
		t.Fatal("grid.Sample(nil, 50) = empty, want points")
	}
	for i, p := range points {
		if !bounds.ContainsPoint(p) {
			t.Errorf("grid.Sample(nil, %v)[%d] = %v outside %v", minDistance, i, p, bounds)
		}
	}
}

func TestJitteredGrid_ExclusionSeeds(t *testing.T) {
	const minDistance = 50
	grid := JitteredGrid{Bounds: testBounds(), Seed: 0}
	existing := []r2.Point{
		{X: 500, Y: 500},
		{X: 100, Y: 100},
		{X: 900, Y: 200},
	}

	points := grid.Sample(existing, minDistance)
	for i, p := range points {
		for _, q := range existing {
			if p.Sub(q).Norm() < minDistance {
				t.Errorf("grid.Sample(existing, %v)[%d] = %v within %v of seed %v",
					minDistance, i, p, minDistance, q)
			}
		}
	}
}

func TestJitteredGrid_Determinism(t *testing.T) {
	grid := JitteredGrid{Bounds: testBounds(), Seed: 7}
	a := grid.Sample(nil, 30)
	b := grid.Sample(nil, 30)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("grid.Sample(nil, 30) mismatch (-want +got):\n%v", diff)
	}
}
