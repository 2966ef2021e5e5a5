package noise

import (
	"testing"

	"github.com/bencarey88/forestgen/internal/config"
)

func TestHeightFieldIsDeterministic(t *testing.T) {
	cfg := config.TerrainConfig{
		Seed: 42, Frequency: 0.1, Amplitude: 5,
		Octaves: 3, Persistence: 0.5, Lacunarity: 2,
	}
	a := New(cfg)
	b := New(cfg)

	for _, pt := range [][2]float64{{0, 0}, {10.5, -3.25}, {-100, 200}} {
		ha := a.Height(pt[0], pt[1])
		hb := b.Height(pt[0], pt[1])
		if ha != hb {
			t.Fatalf("height not deterministic at %v: %v != %v", pt, ha, hb)
		}
	}
}

func TestHeightFieldZeroOctavesIsFlat(t *testing.T) {
	cfg := config.TerrainConfig{Seed: 1, Frequency: 0.1, Amplitude: 5, Octaves: 0}
	h := New(cfg)
	if got := h.Height(3, 4); got != 0 {
		t.Fatalf("expected flat height field with 0 octaves, got %v", got)
	}
}

func TestHeightFieldAgreesAcrossInstances(t *testing.T) {
	// Two independently constructed height fields from the same parameters
	// must agree, since terrain rendering and forest placement both need
	// to evaluate the same function.
	cfg := config.TerrainConfig{
		Seed: 7, Frequency: 0.02, Amplitude: 10,
		Octaves: 4, Persistence: 0.5, Lacunarity: 2,
	}
	render := New(cfg)
	placement := New(cfg)
	for x := -5.0; x <= 5.0; x++ {
		for z := -5.0; z <= 5.0; z++ {
			if render.Height(x, z) != placement.Height(x, z) {
				t.Fatalf("height disagreement at (%v,%v)", x, z)
			}
		}
	}
}

func TestHeightFieldBounded(t *testing.T) {
	cfg := config.TerrainConfig{
		Seed: 1, Frequency: 0.3, Amplitude: 8,
		Octaves: 4, Persistence: 0.5, Lacunarity: 2,
	}
	h := New(cfg)
	for x := 0.0; x < 50; x += 1.3 {
		height := h.Height(x, x*0.7)
		if height > cfg.Amplitude+1e-9 || height < -cfg.Amplitude-1e-9 {
			t.Fatalf("height %v outside expected amplitude bound %v at x=%v", height, cfg.Amplitude, x)
		}
	}
}
