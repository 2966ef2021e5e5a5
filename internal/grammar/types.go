// Package grammar compiles the L-system grammar text format into a
// normalized rule set plus a derived branch catalog, and rewrites an
// axiom under that grammar for a fixed number of generations.
package grammar

// RHS is one weighted right-hand-side alternative for a rule.
type RHS struct {
	Expansion   string
	Probability float64
	BranchCount int
}

// Rule is lhs -> one of several RHS alternatives, chosen stochastically
// in proportion to their normalized probabilities.
type Rule struct {
	LHS      string
	Variants []RHS
}

// Defaults are the turtle's starting step/angle/thickness and their
// multiplicative scale factors.
type Defaults struct {
	Step           float64
	StepScale      float64
	Angle          float64
	AngleScale     float64
	Thickness      float64
	ThicknessScale float64
}

// Grammar owns its rules and its derived branch catalog.
// BranchCatalog[i] is the i-th distinct top-level bracket body
// containing at least one non-terminal encountered during compilation;
// bodies made only of terminals are not recorded. It doubles as the id
// space for instances.
type Grammar struct {
	Axiom         string
	Rules         map[string]*Rule
	NonTerminals  map[string]struct{}
	BranchCatalog []string
	Defaults      Defaults
	Generations   int
	Seed          *int64
	PInst         float64

	branchIndex map[string]int
}

// BranchID returns the catalog index for body, or -1 if it was never
// recorded during compilation.
func (g *Grammar) BranchID(body string) int {
	id, ok := g.branchIndex[body]
	if !ok {
		return -1
	}
	return id
}

func (g *Grammar) getOrAddBranch(body string) int {
	if g.branchIndex == nil {
		g.branchIndex = make(map[string]int)
	}
	if id, ok := g.branchIndex[body]; ok {
		return id
	}
	id := len(g.BranchCatalog)
	g.BranchCatalog = append(g.BranchCatalog, body)
	g.branchIndex[body] = id
	return id
}

// IsNonTerminal reports whether sym (a single rune as a string) appears
// as some rule's lhs.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.NonTerminals[sym]
	return ok
}
