// Package treetype fills a tree type's hero buffers and instance cache
// by running the rewriter and turtle interpreter across several "hero
// tree" repetitions, accumulating their geometry into one shared buffer
// and instance cache.
package treetype

import (
	"fmt"

	"github.com/bencarey88/forestgen/internal/cache"
	"github.com/bencarey88/forestgen/internal/config"
	"github.com/bencarey88/forestgen/internal/diag"
	"github.com/bencarey88/forestgen/internal/grammar"
	"github.com/bencarey88/forestgen/internal/turtle"
)

// TreeType owns one grammar's frozen, read-only hero geometry and
// instance cache.
type TreeType struct {
	Name     string
	Grammar  *grammar.Grammar
	Buffers  *turtle.HeroBuffers
	Cache    *cache.InstanceCache
	Defaults turtle.Defaults
}

// Build compiles cfg's grammar, then fills hero buffers and the
// instance cache by interpreting HeroTrees independent expansions, each
// with a distinct rng stream derived from cfg.Seed.
func Build(cfg config.TreeTypeConfig, warn *diag.Flags) (*TreeType, error) {
	defaults := turtle.Defaults{
		Step:           cfg.Defaults.Step,
		StepScale:      cfg.Defaults.StepScale,
		Angle:          cfg.Defaults.Angle,
		AngleScale:     cfg.Defaults.AngleScale,
		Thickness:      cfg.Defaults.Thickness,
		ThicknessScale: cfg.Defaults.ThicknessScale,
	}

	g, err := grammar.Compile(grammar.CompileOptions{
		Axiom:       cfg.Axiom,
		RawRules:    cfg.Rules,
		Generations: cfg.Generations,
		PInst:       cfg.InstanceProb,
		Defaults: grammar.Defaults{
			Step: defaults.Step, StepScale: defaults.StepScale,
			Angle: defaults.Angle, AngleScale: defaults.AngleScale,
			Thickness: defaults.Thickness, ThicknessScale: defaults.ThicknessScale,
		},
		Seed: cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("compile tree type %q: %w", cfg.Name, err)
	}

	numBranches := len(g.BranchCatalog)
	if numBranches == 0 {
		numBranches = 1
	}
	numAges := cfg.Generations
	if numAges == 0 {
		numAges = 1
	}
	instCache := cache.NewInstanceCache(numBranches, numAges, cfg.MaxVariants)
	buffers := &turtle.HeroBuffers{}

	heroTrees := cfg.HeroTrees
	if heroTrees <= 0 {
		heroTrees = 1
	}
	for h := 0; h < heroTrees; h++ {
		seed := deriveHeroSeed(cfg.Seed, h)
		expanded := g.ExpandWithSeed(seed)
		tokens := turtle.Tokenize(expanded)
		interp := turtle.NewInterpreter(instCache, buffers, warn, defaults)
		interp.Run(tokens)
		diag.Progress(fmt.Sprintf("tree type %q hero fill", cfg.Name), (h+1)*100/heroTrees)
	}

	return &TreeType{
		Name:     cfg.Name,
		Grammar:  g,
		Buffers:  buffers,
		Cache:    instCache,
		Defaults: defaults,
	}, nil
}

// Regenerate rebuilds this tree type's grammar, hero buffers, and
// instance cache in place from cfg, leaving the *TreeType pointer (and
// any forest referencing it) valid. Existing grafts referencing the old
// geometry are stale until the owning forest recomposes.
func (tt *TreeType) Regenerate(cfg config.TreeTypeConfig, warn *diag.Flags) error {
	rebuilt, err := Build(cfg, warn)
	if err != nil {
		return err
	}
	*tt = *rebuilt
	return nil
}

// deriveHeroSeed gives each hero-tree repetition a distinct but
// reproducible rng stream when a base seed is set; with no base seed,
// each repetition falls back independently to wall-clock seeding.
func deriveHeroSeed(base *int64, index int) *int64 {
	if base == nil {
		return nil
	}
	derived := *base + int64(index)*0x9e3779b9
	return &derived
}
