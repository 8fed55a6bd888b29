// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dualmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/dualmesh/delaunator"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// Relative inward offset applied to perimeter points near the domain
// corners. Large enough to break exact collinearity of the boundary
// rows, small enough to be invisible.
const boundaryCurvature = 0.001

// Triangulator computes a Delaunay triangulation of a planar point set.
// Triangles holds region-index triples flattened to length 3T; Halfedges
// maps each side to its opposite side, or -1 where unpaired. The
// triangle array length must be divisible by 3 and the halfedge array an
// involution wherever it is not -1.
type Triangulator interface {
	Triangulate(points []r2.Point) (triangles, halfedges []int, err error)
}

// Sampler fills a domain with evenly spaced points, treating the
// existing points as exclusion seeds.
type Sampler interface {
	Sample(existing []r2.Point, minDistance float64) []r2.Point
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Bounds          r2.Rect
	BoundarySpacing float64
	Triangulator    Triangulator
	Logger          *zap.Logger
	Checks          bool
}

// BuilderOption configures a single Builder setting.
type BuilderOption func(*BuilderOptions) error

// WithBounds sets the domain rectangle. Default is [0,1000]x[0,1000].
func WithBounds(bounds r2.Rect) BuilderOption {
	return func(o *BuilderOptions) error {
		if bounds.IsEmpty() || bounds.Size().X == 0 || bounds.Size().Y == 0 {
			return errors.New("WithBounds: bounds must have positive area")
		}
		o.Bounds = bounds
		return nil
	}
}

// WithBoundarySpacing sets the spacing of generated perimeter points.
// Zero disables boundary generation. Default is 0.
func WithBoundarySpacing(spacing float64) BuilderOption {
	return func(o *BuilderOptions) error {
		if spacing < 0 {
			return fmt.Errorf("WithBoundarySpacing: spacing %v must be non-negative", spacing)
		}
		o.BoundarySpacing = spacing
		return nil
	}
}

// WithTriangulator replaces the Delaunay triangulator.
func WithTriangulator(tr Triangulator) BuilderOption {
	return func(o *BuilderOptions) error {
		if tr == nil {
			return errors.New("WithTriangulator: triangulator must be non-nil")
		}
		o.Triangulator = tr
		return nil
	}
}

// WithLogger sets the logger used during Build. Default is a no-op
// logger.
func WithLogger(log *zap.Logger) BuilderOption {
	return func(o *BuilderOptions) error {
		if log == nil {
			return errors.New("WithLogger: logger must be non-nil")
		}
		o.Logger = log
		return nil
	}
}

// WithConsistencyChecks enables the diagnostic checks during Build.
// Findings are logged as warnings and never abort construction.
func WithConsistencyChecks(enabled bool) BuilderOption {
	return func(o *BuilderOptions) error {
		o.Checks = enabled
		return nil
	}
}

// Builder accumulates points and finalizes them into a Mesh. Points
// compose in order: generated boundary points first, then explicit and
// sampled points. A Builder is not safe for concurrent use.
type Builder struct {
	bounds          r2.Rect
	boundarySpacing float64
	tr              Triangulator
	log             *zap.Logger
	checks          bool

	points      []r2.Point
	numBoundary int
}

// NewBuilder returns a Builder. Without WithTriangulator it uses the
// delaunator subpackage's adapter.
func NewBuilder(setters ...BuilderOption) (*Builder, error) {
	opts := BuilderOptions{
		Bounds:       r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1000, Y: 1000}),
		Triangulator: delaunator.New(),
		Logger:       zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	b := &Builder{
		bounds:          opts.Bounds,
		boundarySpacing: opts.BoundarySpacing,
		tr:              opts.Triangulator,
		log:             opts.Logger,
		checks:          opts.Checks,
	}
	if b.boundarySpacing > 0 {
		b.points = boundaryPoints(b.bounds, b.boundarySpacing)
		b.numBoundary = len(b.points)
	}
	return b, nil
}

// boundaryPoints lays out points evenly along the domain perimeter. The
// rows are bowed slightly inward toward the corners so that no three
// perimeter points are exactly collinear, which keeps the triangulator
// away from degenerate thin triangles.
func boundaryPoints(bounds r2.Rect, spacing float64) []r2.Point {
	lo := bounds.Lo()
	size := bounds.Size()
	var points []r2.Point

	nx := int(math.Ceil(size.X / spacing))
	for i := 0; i <= nx; i++ {
		t := (float64(i) + 0.5) / (float64(nx) + 2)
		w := size.X * t
		off := boundaryCurvature * size.Y * (t - 0.5) * (t - 0.5)
		points = append(points,
			r2.Point{X: lo.X + w, Y: lo.Y + off},
			r2.Point{X: lo.X + w, Y: lo.Y + size.Y - off},
		)
	}

	ny := int(math.Ceil(size.Y / spacing))
	for i := 0; i <= ny; i++ {
		t := (float64(i) + 0.5) / (float64(ny) + 2)
		w := size.Y * t
		off := boundaryCurvature * size.X * (t - 0.5) * (t - 0.5)
		points = append(points,
			r2.Point{X: lo.X + off, Y: lo.Y + w},
			r2.Point{X: lo.X + size.X - off, Y: lo.Y + w},
		)
	}

	return points
}

// NumBoundaryPoints returns the number of generated perimeter points.
func (b *Builder) NumBoundaryPoints() int { return b.numBoundary }

// NumPoints returns the number of accumulated points.
func (b *Builder) NumPoints() int { return len(b.points) }

// Points returns a copy of the accumulated points.
func (b *Builder) Points() []r2.Point {
	out := make([]r2.Point, len(b.points))
	copy(out, b.points)
	return out
}

// AddPoints appends explicit points.
func (b *Builder) AddPoints(points ...r2.Point) {
	b.points = append(b.points, points...)
}

// AddSampledPoints appends points produced by sampler, seeding it with
// every point accumulated so far.
func (b *Builder) AddSampledPoints(sampler Sampler, minDistance float64) error {
	if sampler == nil {
		return errors.New("AddSampledPoints: sampler must be non-nil")
	}
	if minDistance <= 0 {
		return fmt.Errorf("AddSampledPoints: minDistance %v must be positive", minDistance)
	}
	sampled := sampler.Sample(b.Points(), minDistance)
	b.points = append(b.points, sampled...)
	b.log.Debug("sampled interior points",
		zap.Int("added", len(sampled)),
		zap.Float64("minDistance", minDistance))
	return nil
}

// ClearInteriorPoints removes every point after the generated boundary,
// keeping the boundary fixed for a rebuild with a new interior set.
func (b *Builder) ClearInteriorPoints() {
	b.points = b.points[:b.numBoundary]
}

// Build runs the triangulator over the accumulated points, optionally
// runs the consistency checks, synthesizes the ghost structure and
// constructs the Mesh. The Builder stays usable afterwards; the Mesh
// holds no reference back into it.
func (b *Builder) Build() (*Mesh, error) {
	triangles, halfedges, err := b.tr.Triangulate(b.points)
	if err != nil {
		return nil, fmt.Errorf("dualmesh: triangulate: %w", err)
	}
	numSolidSides := len(triangles)
	b.log.Debug("triangulated point set",
		zap.Int("points", len(b.points)),
		zap.Int("triangles", numSolidSides/3))

	if b.checks {
		for _, t := range SkinnyTriangles(b.points, triangles) {
			b.log.Warn("skinny triangle", zap.Int("triangle", t))
		}
		if err := CheckOpposites(triangles, halfedges); err != nil {
			b.log.Warn("inconsistent triangulation", zap.Error(err))
		}
	}

	points, triangles, halfedges := AddGhostStructure(b.points, triangles, halfedges)
	m, err := NewMesh(Init{
		Points:             points,
		NumBoundaryRegions: b.numBoundary,
		NumSolidSides:      numSolidSides,
		Triangles:          triangles,
		Halfedges:          halfedges,
	})
	if err != nil {
		return nil, err
	}
	b.log.Info("mesh built",
		zap.Int("regions", m.NumRegions()),
		zap.Int("triangles", m.NumTriangles()),
		zap.Int("sides", m.NumSides()),
		zap.Int("boundaryRegions", m.NumBoundaryRegions()))
	return m, nil
}
