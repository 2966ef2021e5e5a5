package treetype

import (
	"testing"

	"github.com/bencarey88/forestgen/internal/config"
	"github.com/bencarey88/forestgen/internal/diag"
)

func baseConfig() config.TreeTypeConfig {
	return config.TreeTypeConfig{
		Name:         "oak",
		Axiom:        "A",
		Rules:        "A=F[+A][-A]",
		Generations:  3,
		InstanceProb: 0.5,
		MaxVariants:  8,
		HeroTrees:    2,
		Defaults: config.TurtleDefaults{
			Step: 1, StepScale: 0.9, Angle: 0.4, AngleScale: 1, Thickness: 1, ThicknessScale: 0.8,
		},
	}
}

func TestBuildProducesNonEmptyHeroBuffers(t *testing.T) {
	tt, err := Build(baseConfig(), diag.NewFlags())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tt.Buffers.Vertices) == 0 {
		t.Fatal("expected hero buffers to contain vertices after filling")
	}
}

func TestBuildRespectsMaxVariantsCap(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxVariants = 2
	tt, err := Build(cfg, diag.NewFlags())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for age := 0; age < cfg.Generations; age++ {
		cap := cfg.MaxVariants / (age + 1)
		for id := 0; id < len(tt.Grammar.BranchCatalog); id++ {
			if got := tt.Cache.Len(id, age); got > cap {
				t.Fatalf("id=%d age=%d: expected len <= %d, got %d", id, age, cap, got)
			}
		}
	}
}

func TestBuildZeroGenerationsStillSucceeds(t *testing.T) {
	cfg := baseConfig()
	cfg.Generations = 0
	if _, err := Build(cfg, diag.NewFlags()); err != nil {
		t.Fatalf("expected G=0 to build without error, got %v", err)
	}
}

func TestRegenerateReplacesContentsInPlace(t *testing.T) {
	tt, err := Build(baseConfig(), diag.NewFlags())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cfg := baseConfig()
	cfg.Name = "renamed"
	if err := tt.Regenerate(cfg, diag.NewFlags()); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if tt.Name != "renamed" {
		t.Fatalf("expected regenerated name, got %q", tt.Name)
	}
}

func TestBuildWithDeterministicSeedIsReproducible(t *testing.T) {
	seed := int64(55)
	cfgA := baseConfig()
	cfgA.Seed = &seed
	seed2 := int64(55)
	cfgB := baseConfig()
	cfgB.Seed = &seed2

	a, err := Build(cfgA, diag.NewFlags())
	if err != nil {
		t.Fatalf("Build a: %v", err)
	}
	b, err := Build(cfgB, diag.NewFlags())
	if err != nil {
		t.Fatalf("Build b: %v", err)
	}
	if len(a.Buffers.Vertices) != len(b.Buffers.Vertices) {
		t.Fatalf("expected identical seeds to produce identical hero buffer sizes, got %d != %d",
			len(a.Buffers.Vertices), len(b.Buffers.Vertices))
	}
}
