package cache

import "github.com/bencarey88/forestgen/internal/turtle"

// InstanceCache is the triply-indexed (id, age, variant) -> Instance
// store. Capacity per age decays as ⌊maxVariants/(age+1)⌋, so older
// sub-trees are starved of variants.
type InstanceCache struct {
	grid *Grid[turtle.Instance]
}

// NewInstanceCache builds an instance cache sized for numBranches
// distinct branch ids and numAges generations, with maxVariants as the
// age-0 capacity ceiling.
func NewInstanceCache(numBranches, numAges, maxVariants int) *InstanceCache {
	return &InstanceCache{
		grid: NewGrid[turtle.Instance](numBranches, numAges, func(age int) int {
			return maxVariants / (age + 1)
		}),
	}
}

// Capacity implements turtle.InstanceStore.
func (c *InstanceCache) Capacity(id, age int) int { return c.grid.Capacity(age) }

// Len implements turtle.InstanceStore.
func (c *InstanceCache) Len(id, age int) int { return c.grid.Len(id, age) }

// IsEmpty implements turtle.InstanceStore.
func (c *InstanceCache) IsEmpty(id, age int) bool { return c.grid.Len(id, age) == 0 }

// Reserve implements turtle.InstanceStore, handing back a pointer the
// interpreter fills in as it records an instance's geometry and later
// finalizes at `$`/`>`.
func (c *InstanceCache) Reserve(id, age int) (*turtle.Instance, bool) {
	slot, _, stored := c.grid.Reserve(id, age)
	return slot, stored
}

// Get returns the stored instance for (id, age, variant).
func (c *InstanceCache) Get(id, age, variant int) (turtle.Instance, bool) {
	return c.grid.Get(id, age, variant)
}

// ForEach visits every recorded (id, age, variant, Instance).
func (c *InstanceCache) ForEach(f func(id, age, variant int, inst turtle.Instance)) {
	c.grid.ForEach(f)
}
