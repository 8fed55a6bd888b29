// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides helpers for generating planar point sets for
// dual meshes.
package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates a slice of cnt random points inside
// bounds. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bounds r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	lo := bounds.Lo()
	size := bounds.Size()

	points := make([]r2.Point, cnt)
	for i := range cnt {
		points[i] = r2.Point{
			X: lo.X + random.Float64()*size.X,
			Y: lo.Y + random.Float64()*size.Y,
		}
	}
	return points
}

// JitteredGrid is a simple density sampler: it fills Bounds with one
// jittered point per grid cell of the requested spacing, skipping cells
// whose candidate lands too close to an existing point. It implements
// dualmesh.Sampler and stands in where a full Poisson-disc sampler is
// not needed.
type JitteredGrid struct {
	Bounds r2.Rect
	Seed   int64
}

// Sample returns evenly spaced points covering the grid's bounds,
// treating existing points as exclusion seeds: no returned point lies
// within minDistance of any of them.
func (g JitteredGrid) Sample(existing []r2.Point, minDistance float64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(g.Seed))
	lo := g.Bounds.Lo()
	size := g.Bounds.Size()

	var points []r2.Point
	jitter := minDistance / 4
	for y := minDistance / 2; y < size.Y-jitter; y += minDistance {
		for x := minDistance / 2; x < size.X-jitter; x += minDistance {
			p := r2.Point{
				X: lo.X + x + (random.Float64()*2-1)*jitter,
				Y: lo.Y + y + (random.Float64()*2-1)*jitter,
			}
			if tooClose(p, existing, minDistance) {
				continue
			}
			points = append(points, p)
		}
	}
	return points
}

func tooClose(p r2.Point, existing []r2.Point, minDistance float64) bool {
	for _, q := range existing {
		if p.Sub(q).Norm() < minDistance {
			return true
		}
	}
	return false
}
