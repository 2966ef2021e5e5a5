package placement

import (
	"math"
	"testing"

	"github.com/bencarey88/forestgen/internal/config"
	"github.com/bencarey88/forestgen/internal/geom"
	"github.com/bencarey88/forestgen/internal/noise"
)

func TestScatterCountMatchesRequest(t *testing.T) {
	height := noise.New(config.TerrainConfig{Seed: 1, Frequency: 0.1, Amplitude: 2, Octaves: 2, Persistence: 0.5, Lacunarity: 2})
	seed := int64(1)
	s := NewScatterSource(height, &seed)
	placements := s.Scatter(0, 10, 100, 1, 2, false)
	if len(placements) != 10 {
		t.Fatalf("expected 10 placements, got %d", len(placements))
	}
}

func TestScatterZeroCountIsEmpty(t *testing.T) {
	height := noise.New(config.TerrainConfig{Seed: 1, Frequency: 0.1, Amplitude: 2, Octaves: 1})
	s := NewScatterSource(height, nil)
	placements := s.Scatter(0, 0, 50, 1, 1, false)
	if len(placements) != 0 {
		t.Fatal("expected zero placements for zero count")
	}
}

func TestScatterLiftsOntoHeightField(t *testing.T) {
	height := noise.New(config.TerrainConfig{Seed: 3, Frequency: 0.1, Amplitude: 5, Octaves: 3, Persistence: 0.5, Lacunarity: 2})
	seed := int64(9)
	s := NewScatterSource(height, &seed)
	placements := s.Scatter(0, 5, 80, 1, 1, false)
	for _, p := range placements {
		want := height.Height(p.World.Pos.X, p.World.Pos.Z)
		if math.Abs(p.World.Pos.Y-want) > 1e-9 {
			t.Fatalf("expected placement height to agree with height field, got %v want %v", p.World.Pos.Y, want)
		}
	}
}

func TestPaintRejectsPointsWithinMinSpacing(t *testing.T) {
	seed := int64(1)
	p := NewPaintSource(5, &seed)
	p.BeginStroke()
	defer p.EndStroke()

	if _, ok := p.AddPoint(0, geom.Vec3{X: 0, Y: 0, Z: 0}); !ok {
		t.Fatal("expected first point to be accepted")
	}
	if _, ok := p.AddPoint(0, geom.Vec3{X: 1, Y: 0, Z: 0}); ok {
		t.Fatal("expected point within min_spacing to be rejected")
	}
	if _, ok := p.AddPoint(0, geom.Vec3{X: 10, Y: 0, Z: 0}); !ok {
		t.Fatal("expected point beyond min_spacing to be accepted")
	}
}

func TestPaintIgnoresPointsOutsideStroke(t *testing.T) {
	p := NewPaintSource(1, nil)
	if _, ok := p.AddPoint(0, geom.Vec3{}); ok {
		t.Fatal("expected points to be rejected before BeginStroke")
	}
}

func TestPaintClearForgetsAcceptedPoints(t *testing.T) {
	seed := int64(1)
	p := NewPaintSource(5, &seed)
	p.BeginStroke()
	p.AddPoint(0, geom.Vec3{X: 0, Y: 0, Z: 0})
	p.Clear()
	if _, ok := p.AddPoint(0, geom.Vec3{X: 1, Y: 0, Z: 0}); !ok {
		t.Fatal("expected Clear to forget prior accepted points, allowing a nearby point again")
	}
}

func TestPaintEmptyPointListLeavesNoAcceptedPoints(t *testing.T) {
	p := NewPaintSource(5, nil)
	if len(p.accepted) != 0 {
		t.Fatal("expected fresh paint source to have no accepted points")
	}
}
