// Package placement produces the stream of (type, world_transform)
// tree placements the forest composer grafts: uniform random scatter
// over a height field, or user-painted strokes with minimum-spacing
// rejection sampling. It uses gonum's stat/distuv for the uniform
// draws.
package placement

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bencarey88/forestgen/internal/forest"
	"github.com/bencarey88/forestgen/internal/geom"
	"github.com/bencarey88/forestgen/internal/noise"
	"github.com/bencarey88/forestgen/internal/rng"
)

// ScatterSource draws scattered placements.
type ScatterSource struct {
	height *noise.HeightField
	rand   *sourceRand
}

// NewScatterSource builds a scatter source seeded from seed (nil falls
// back to wall-clock seeding).
func NewScatterSource(height *noise.HeightField, seed *int64) *ScatterSource {
	return &ScatterSource{height: height, rand: newSourceRand(seed)}
}

// Scatter draws count independent samples of typeIndex over
// [-worldWidth/2, worldWidth/2] in x and z, lifted onto the height
// field, with a uniform yaw and (if applyScale) a uniform scale in
// [minScale,maxScale].
func (s *ScatterSource) Scatter(typeIndex int, count int, worldWidth, minScale, maxScale float64, applyScale bool) []forest.Placement {
	half := worldWidth / 2
	xDist := distuv.Uniform{Min: -half, Max: half, Src: s.rand}
	yawDist := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: s.rand}
	scaleDist := distuv.Uniform{Min: minScale, Max: maxScale, Src: s.rand}

	placements := make([]forest.Placement, 0, count)
	for i := 0; i < count; i++ {
		x := xDist.Rand()
		z := xDist.Rand()
		y := s.height.Height(x, z)
		yaw := yawDist.Rand()

		scale := 1.0
		if applyScale {
			scale = scaleDist.Rand()
		}

		placements = append(placements, forest.Placement{
			TypeIndex: typeIndex,
			World:     yawTransform(geom.Vec3{X: x, Y: y, Z: z}, yaw, scale),
		})
	}
	return placements
}

// PaintSource is the rejection-sampling brush-stroke placer. idle/
// drawing states are tracked implicitly: BeginStroke / EndStroke
// bracket a sequence of AddPoint calls.
type PaintSource struct {
	minSpacing float64
	accepted   []geom.Vec3
	rand       *sourceRand
	drawing    bool
}

// NewPaintSource builds a paint source seeded from seed.
func NewPaintSource(minSpacing float64, seed *int64) *PaintSource {
	return &PaintSource{minSpacing: minSpacing, rand: newSourceRand(seed)}
}

// BeginStroke transitions idle -> drawing.
func (p *PaintSource) BeginStroke() { p.drawing = true }

// EndStroke transitions drawing -> idle.
func (p *PaintSource) EndStroke() { p.drawing = false }

// Clear forgets every accepted point, resetting the rejection-sampling
// history.
func (p *PaintSource) Clear() { p.accepted = nil }

// AddPoint offers a raycast-onto-terrain world point for typeIndex. It
// is rejected (ok=false) if within minSpacing of any previously
// accepted point; otherwise it is accepted, given a uniform yaw, and
// returned as a placement.
func (p *PaintSource) AddPoint(typeIndex int, point geom.Vec3) (placement forest.Placement, ok bool) {
	if !p.drawing {
		return forest.Placement{}, false
	}
	for _, a := range p.accepted {
		if distXZ(a, point) < p.minSpacing {
			return forest.Placement{}, false
		}
	}
	p.accepted = append(p.accepted, point)

	yawDist := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: p.rand}
	yaw := yawDist.Rand()

	return forest.Placement{
		TypeIndex: typeIndex,
		World:     yawTransform(point, yaw, 1),
	}, true
}

func distXZ(a, b geom.Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Hypot(dx, dz)
}

// yawTransform builds translate ∘ rotate(yaw about Y) ∘ scale.
func yawTransform(pos geom.Vec3, yaw, scale float64) geom.Transform {
	cosY := math.Cos(yaw)
	sinY := math.Sin(yaw)
	right := geom.Vec3{X: cosY, Y: 0, Z: sinY}.Scale(scale)
	heading := geom.Vec3{X: 0, Y: scale, Z: 0}
	up := geom.Vec3{X: -sinY, Y: 0, Z: cosY}.Scale(scale)
	return geom.Transform{Right: right, Heading: heading, Up: up, Pos: pos}
}

// sourceRand adapts rng.Source to the Uint64-based Source interface
// gonum's distuv distributions expect for their Src field, so a
// distuv.Uniform draw consumes this package's seeded rng.Source instead
// of the global generator, keeping placement deterministic for a fixed
// seed.
type sourceRand struct {
	source rng.Source
}

func newSourceRand(seed *int64) *sourceRand {
	return &sourceRand{source: rng.Seed(seed)}
}

func (s *sourceRand) Uint64() uint64 {
	hi := uint64(s.source.Intn(1 << 31))
	lo := uint64(s.source.Intn(1 << 31))
	return hi<<32 | lo
}
