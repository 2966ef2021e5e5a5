package grammar

import (
	"strconv"
	"strings"

	"github.com/bencarey88/forestgen/internal/rng"
)

// Expand rewrites the axiom under the grammar's rules for Generations
// passes. Each pass makes one left-to-right scan of the
// current string: non-terminal runes are replaced by a weighted draw
// among their rule's variants, terminal runes are copied verbatim, and
// any literal '#' inside an inserted variant is substituted with the
// current 0-based pass index (so instancing markers injected by Compile
// carry the generation they were created at).
//
// A fresh rng.Source is seeded from g.Seed at the start of Expand, so
// when g.Seed is set, repeated calls against the same grammar produce
// identical output; a nil g.Seed seeds each call from the wall clock.
func (g *Grammar) Expand() string {
	return g.ExpandWithSeed(g.Seed)
}

// ExpandWithSeed runs the same rewriting process as Expand but seeded
// from an explicit seed pointer, letting callers draw several
// independent expansions from one grammar, each on its own rng stream
// (e.g. one per hero-tree repetition), without mutating the grammar
// itself.
func (g *Grammar) ExpandWithSeed(seed *int64) string {
	source := rng.Seed(seed)
	current := g.Axiom
	for pass := 0; pass < g.Generations; pass++ {
		current = g.expandOnce(current, pass, source)
	}
	return current
}

func (g *Grammar) expandOnce(s string, pass int, source rng.Source) string {
	var sb strings.Builder
	for _, r := range s {
		sym := string(r)
		rule, ok := g.Rules[sym]
		if !ok || len(rule.Variants) == 0 {
			sb.WriteRune(r)
			continue
		}
		variant := chooseVariant(rule.Variants, source)
		sb.WriteString(substitutePass(variant.Expansion, pass))
	}
	return sb.String()
}

// chooseVariant draws one RHS from variants weighted by Probability. If
// the probabilities don't sum to exactly 1 (floating point drift), the
// last variant is returned as a fallback so the draw always succeeds.
func chooseVariant(variants []RHS, source rng.Source) RHS {
	roll := source.Float64()
	cumulative := 0.0
	for _, v := range variants {
		cumulative += v.Probability
		if roll < cumulative {
			return v
		}
	}
	return variants[len(variants)-1]
}

// substitutePass replaces every literal '#' placeholder with the
// current pass index.
func substitutePass(expansion string, pass int) string {
	if !strings.ContainsRune(expansion, '#') {
		return expansion
	}
	return strings.ReplaceAll(expansion, "#", strconv.Itoa(pass))
}
