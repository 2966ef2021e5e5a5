// Command forestgen loads a forest configuration, fills every tree
// type's hero geometry and instance cache, scatters placements over a
// height field, and runs one compose cycle. There is no renderer in
// this repo, so the result is summarized as JSON instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bencarey88/forestgen/internal/cache"
	"github.com/bencarey88/forestgen/internal/config"
	"github.com/bencarey88/forestgen/internal/diag"
	"github.com/bencarey88/forestgen/internal/forest"
	"github.com/bencarey88/forestgen/internal/geom"
	"github.com/bencarey88/forestgen/internal/noise"
	"github.com/bencarey88/forestgen/internal/placement"
	"github.com/bencarey88/forestgen/internal/treetype"
)

func main() {
	var cfgPath string
	var seedOverride int64
	var hasSeedOverride bool
	var scatterCount int
	var outPath string

	flag.StringVar(&cfgPath, "config", "", "path to forest configuration file (JSON or YAML)")
	flag.Func("seed", "override the forest's rng seed", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		seedOverride = v
		hasSeedOverride = true
		return nil
	})
	flag.IntVar(&scatterCount, "scatter-count", 0, "override scatter count per tree type (0 = use config)")
	flag.StringVar(&outPath, "out", "", "write a JSON summary of the composed transform cache to this path")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if hasSeedOverride {
		cfg.Placement.Seed = &seedOverride
	}

	ctx, cancel := signalContext()
	defer cancel()

	summary, err := run(ctx, cfg, scatterCount)
	if err != nil {
		log.Fatalf("forest generation failed: %v", err)
	}

	if outPath != "" {
		if err := writeSummary(outPath, summary); err != nil {
			log.Fatalf("write summary: %v", err)
		}
	} else {
		log.Printf("composed %d transforms across %d tree types", summary.TotalTransforms, len(summary.Types))
	}
}

// summary is the JSON shape written to -out, since this repo has no
// renderer to hand the transform cache to directly.
type summary struct {
	Types           []typeSummary `json:"types"`
	TotalTransforms int           `json:"totalTransforms"`
}

type typeSummary struct {
	Name       string `json:"name"`
	Placements int    `json:"placements"`
	Transforms int    `json:"transforms"`
}

func run(ctx context.Context, cfg *config.Config, scatterCountOverride int) (summary, error) {
	warn := diag.NewFlags()
	height := noise.New(cfg.Terrain)

	types, err := buildTypes(ctx, cfg.TreeTypes, warn)
	if err != nil {
		return summary{}, err
	}

	f := forest.New(types, cfg.Placement.Seed, warn)
	scatter := placement.NewScatterSource(height, cfg.Placement.Seed)

	var placements []forest.Placement
	perTypeCounts := make([]int, len(types))
	for i, ttCfg := range cfg.TreeTypes {
		count := ttCfg.ScatterCount
		if scatterCountOverride > 0 {
			count = scatterCountOverride
		}
		drawn := scatter.Scatter(i, count, cfg.Placement.WorldWidth, cfg.Placement.MinScale, cfg.Placement.MaxScale, cfg.Placement.ApplyScale)
		placements = append(placements, drawn...)
		perTypeCounts[i] = len(drawn)
	}

	if err := ctx.Err(); err != nil {
		return summary{}, err
	}
	f.Compose(placements)

	transformsByType := make(map[int]int, len(types))
	f.Cache.ForEach(func(key cache.BatchKey, batch []geom.Transform) {
		transformsByType[key.TreeType] += len(batch)
	})

	out := summary{TotalTransforms: f.Cache.Len()}
	for i, tt := range types {
		out.Types = append(out.Types, typeSummary{
			Name:       tt.Name,
			Placements: perTypeCounts[i],
			Transforms: transformsByType[i],
		})
	}
	return out, nil
}

// maxConcurrentBuilds bounds how many tree types fill their hero
// geometry and instance cache at once: building one is independent of
// building another (each owns its own grammar and rng stream), but an
// unbounded fan-out would spawn one goroutine per configured tree type.
const maxConcurrentBuilds = 4

// buildTypes fills every tree type's hero buffers and instance cache
// concurrently, bounded by maxConcurrentBuilds, stopping early if ctx
// is cancelled or any build fails.
func buildTypes(ctx context.Context, cfgs []config.TreeTypeConfig, warn *diag.Flags) ([]*treetype.TreeType, error) {
	types := make([]*treetype.TreeType, len(cfgs))
	errs := make([]error, len(cfgs))

	sem := make(chan struct{}, maxConcurrentBuilds)
	var wg sync.WaitGroup
	for i, ttCfg := range cfgs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ttCfg config.TreeTypeConfig) {
			defer wg.Done()
			defer func() { <-sem }()
			tt, err := treetype.Build(ttCfg, warn)
			types[i] = tt
			errs[i] = err
		}(i, ttCfg)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("build tree type %q: %w", cfgs[i].Name, err)
		}
	}
	return types, nil
}

func writeSummary(path string, s summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
