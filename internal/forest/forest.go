// Package forest implements the composer: recursive grafting of cached
// tree-type instances at world transforms, driven by a stream of
// placements.
package forest

import (
	"github.com/bencarey88/forestgen/internal/cache"
	"github.com/bencarey88/forestgen/internal/diag"
	"github.com/bencarey88/forestgen/internal/geom"
	"github.com/bencarey88/forestgen/internal/rng"
	"github.com/bencarey88/forestgen/internal/treetype"
)

// Placement is a tree-type index plus the world transform it should be
// grafted at.
type Placement struct {
	TypeIndex int
	World     geom.Transform
}

// Forest owns placement records, the transform cache, tree-type
// references, and the RNG used to choose among cached variants.
type Forest struct {
	Types  []*treetype.TreeType
	Cache  *cache.TransformCache
	Deltas *cache.DeltaLog
	warn   *diag.Flags

	source rng.Source
	seed   *int64

	lastPlacements []Placement
}

// New builds a forest over the given tree types. seed may be nil, in
// which case the forest's rng falls back to wall-clock seeding.
func New(types []*treetype.TreeType, seed *int64, warn *diag.Flags) *Forest {
	return &Forest{
		Types:  types,
		Cache:  cache.NewTransformCache(),
		Deltas: cache.NewDeltaLog(),
		warn:   warn,
		seed:   seed,
	}
}

// Compose rebuilds the transform cache from scratch over placements. A
// new compose fully replaces the previous cache.
func (f *Forest) Compose(placements []Placement) {
	f.source = rng.Seed(f.seed)
	f.Cache = cache.NewTransformCache()
	f.Deltas = cache.NewDeltaLog()
	f.lastPlacements = append([]Placement(nil), placements...)

	for _, p := range placements {
		f.graft(p.TypeIndex, p.World, 0, 0)
	}
}

// Rebuild recomposes the forest from the last placement stream it was
// given, e.g. after a tree type was regenerated and the existing
// transform cache is stale.
func (f *Forest) Rebuild() {
	f.Compose(f.lastPlacements)
}

// Paint appends one more placement's grafts to the existing transform
// cache and delta log, without clearing prior batches.
func (f *Forest) Paint(p Placement) {
	if f.source == nil {
		f.source = rng.Seed(f.seed)
	}
	f.graft(p.TypeIndex, p.World, 0, 0)
}

// graft recursively places a chosen cached variant of (id,age) at world
// transform T, then recurses into its exit points.
func (f *Forest) graft(typeIndex int, t geom.Transform, id, age int) {
	if typeIndex < 0 || typeIndex >= len(f.Types) {
		return
	}
	tt := f.Types[typeIndex]
	n := tt.Cache.Len(id, age)
	if n == 0 {
		diag.Skip("empty cache graft for type=%d id=%d age=%d", typeIndex, id, age)
		return
	}

	variant := f.source.Intn(n)
	inst, ok := tt.Cache.Get(id, age, variant)
	if !ok {
		return
	}

	world := t.Compose(inst.LocalTransform.Inverse())

	key := cache.BatchKey{TreeType: typeIndex, ID: id, Age: age, Variant: variant}
	f.Cache.Append(key, world)
	f.Deltas.Record(key)

	for _, e := range inst.ExitPoints {
		f.graft(typeIndex, t.Compose(e.ExitTransform), e.ExitID, e.ExitAge)
	}
}
