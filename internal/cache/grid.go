// Package cache implements the instance cache and transform cache. Grid
// is a triply-indexed (id, age, variant) container backed by a single
// flat slice plus offset arithmetic instead of nested slices-of-slices.
package cache

// Grid is a flat-backed (id, age, variant) -> T container. Capacity per
// age is fixed at construction (it depends only on age, never on id),
// so each age occupies a contiguous block of numIDs * capacity(age)
// slots; ages are laid out one after another. Within a block, variants
// actually written so far are tracked separately from the block's
// capacity, since ages fill at different rates.
type Grid[T any] struct {
	numIDs     int
	numAges    int
	capPerAge  []int // capPerAge[age] = capacity(age); numIDs*capPerAge[age] slots reserved
	ageOffset  []int // flat offset where age's block starts
	slots      []T
	filled     []int // filled[id*numAges+age] = variants actually written
}

// NewGrid builds a grid sized for numIDs branch ids and numAges
// generations, with variant capacity per age given by capFn(age).
func NewGrid[T any](numIDs, numAges int, capFn func(age int) int) *Grid[T] {
	g := &Grid[T]{
		numIDs:    numIDs,
		numAges:   numAges,
		capPerAge: make([]int, numAges),
		ageOffset: make([]int, numAges),
		filled:    make([]int, numIDs*numAges),
	}
	offset := 0
	for age := 0; age < numAges; age++ {
		capacity := capFn(age)
		if capacity < 0 {
			capacity = 0
		}
		g.capPerAge[age] = capacity
		g.ageOffset[age] = offset
		offset += numIDs * capacity
	}
	g.slots = make([]T, offset)
	return g
}

// Capacity returns the maximum number of variants age can hold (the
// same for every id at that age).
func (g *Grid[T]) Capacity(age int) int {
	if age < 0 || age >= g.numAges {
		return 0
	}
	return g.capPerAge[age]
}

// Len returns how many variants have actually been written for (id,age).
func (g *Grid[T]) Len(id, age int) int {
	if !g.inBounds(id, age) {
		return 0
	}
	return g.filled[id*g.numAges+age]
}

func (g *Grid[T]) inBounds(id, age int) bool {
	return id >= 0 && id < g.numIDs && age >= 0 && age < g.numAges
}

func (g *Grid[T]) offset(id, age, variant int) int {
	return g.ageOffset[age] + id*g.capPerAge[age] + variant
}

// Push appends value as a new variant of (id,age), returning its
// variant index and whether there was capacity to store it. When false
// is returned, the grid was not mutated.
func (g *Grid[T]) Push(id, age int, value T) (variant int, stored bool) {
	if !g.inBounds(id, age) {
		return 0, false
	}
	n := g.filled[id*g.numAges+age]
	if n >= g.capPerAge[age] {
		return 0, false
	}
	g.slots[g.offset(id, age, n)] = value
	g.filled[id*g.numAges+age] = n + 1
	return n, true
}

// Reserve claims the next variant slot for (id,age) and returns a
// pointer directly into the grid's backing array, so callers can fill
// in a value incrementally (e.g. while a turtle instance is still
// being interpreted) rather than constructing it all at once. The
// backing array is sized once at construction and never reallocated,
// so the returned pointer stays valid for the grid's lifetime.
func (g *Grid[T]) Reserve(id, age int) (slot *T, variant int, stored bool) {
	if !g.inBounds(id, age) {
		return nil, 0, false
	}
	n := g.filled[id*g.numAges+age]
	if n >= g.capPerAge[age] {
		return nil, 0, false
	}
	g.filled[id*g.numAges+age] = n + 1
	return &g.slots[g.offset(id, age, n)], n, true
}

// Get returns the stored value at (id, age, variant).
func (g *Grid[T]) Get(id, age, variant int) (T, bool) {
	var zero T
	if !g.inBounds(id, age) || variant < 0 || variant >= g.filled[id*g.numAges+age] {
		return zero, false
	}
	return g.slots[g.offset(id, age, variant)], true
}

// Set overwrites the stored value at (id, age, variant). variant must
// already have been written via Push.
func (g *Grid[T]) Set(id, age, variant int, value T) bool {
	if !g.inBounds(id, age) || variant < 0 || variant >= g.filled[id*g.numAges+age] {
		return false
	}
	g.slots[g.offset(id, age, variant)] = value
	return true
}

// ForEach visits every written (id, age, variant, value) tuple in id,
// then age, then variant order.
func (g *Grid[T]) ForEach(f func(id, age, variant int, value T)) {
	for id := 0; id < g.numIDs; id++ {
		for age := 0; age < g.numAges; age++ {
			n := g.filled[id*g.numAges+age]
			for v := 0; v < n; v++ {
				f(id, age, v, g.slots[g.offset(id, age, v)])
			}
		}
	}
}
