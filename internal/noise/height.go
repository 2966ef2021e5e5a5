// Package noise implements the pure height field: a deterministic,
// replayable (x, z) -> y function built from layered value noise,
// trimmed down to the pure height-sampling concern (no block
// population, no mineral veins) since that is all the forest composer
// and an external terrain renderer need from it.
package noise

import (
	"math"

	"github.com/bencarey88/forestgen/internal/config"
)

// HeightField is a pure function object parameterized by
// (octaves, frequency, persistence, lacunarity, amplitude, seed). Two
// HeightFields built from the same TerrainConfig evaluate identically.
type HeightField struct {
	cfg config.TerrainConfig
}

// New builds a height field from terrain parameters.
func New(cfg config.TerrainConfig) *HeightField {
	return &HeightField{cfg: cfg}
}

// Height returns y = amplitude * noise(x, z, seed). It is pure and safe
// to call concurrently from multiple goroutines (e.g. terrain rendering
// and forest placement evaluating the same point independently).
func (h *HeightField) Height(x, z float64) float64 {
	return h.cfg.Amplitude * h.fractalNoise(x, z)
}

// Slope estimates the local gradient magnitude via central differences,
// for callers that want to bias placement away from steep terrain. It
// is additive and does not change Height's semantics.
func (h *HeightField) Slope(x, z float64) float64 {
	const eps = 0.5
	dHdx := (h.Height(x+eps, z) - h.Height(x-eps, z)) / (2 * eps)
	dHdz := (h.Height(x, z+eps) - h.Height(x, z-eps)) / (2 * eps)
	return math.Hypot(dHdx, dHdz)
}

func (h *HeightField) fractalNoise(x, z float64) float64 {
	frequency := h.cfg.Frequency
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < h.cfg.Octaves; i++ {
		noiseSum += h.valueNoise(x*frequency, z*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= h.cfg.Persistence
		frequency *= h.cfg.Lacunarity
	}

	if maxAmplitude == 0 {
		return 0
	}
	return noiseSum / maxAmplitude
}

func (h *HeightField) valueNoise(x, z float64) float64 {
	x0 := int(math.Floor(x))
	z0 := int(math.Floor(z))
	x1 := x0 + 1
	z1 := z0 + 1

	sx := smooth(x - float64(x0))
	sz := smooth(z - float64(z0))

	n0 := random2D(x0, z0, h.cfg.Seed)
	n1 := random2D(x1, z0, h.cfg.Seed)
	ix0 := lerp(n0, n1, sx)

	n2 := random2D(x0, z1, h.cfg.Seed)
	n3 := random2D(x1, z1, h.cfg.Seed)
	ix1 := lerp(n2, n3, sx)

	return lerp(ix0, ix1, sz)
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func random2D(x, z int, seed int64) float64 {
	return float64(hash3(x, z, int(seed))&0xFFFF)/0x8000 - 1.0
}

func hash3(x, z, w int) uint32 {
	hv := uint32(x*374761393 + z*668265263 + w*2147483647)
	hv = (hv ^ (hv >> 13)) * 1274126177
	return hv ^ (hv >> 16)
}
