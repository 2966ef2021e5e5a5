package cache

import "github.com/bencarey88/forestgen/internal/geom"

// BatchKey addresses one instanced-draw batch: all world transforms
// grafted against the same (treeType, branchID, age, variant) tuple.
type BatchKey struct {
	TreeType int
	ID       int
	Age      int
	Variant  int
}

// TransformCache mirrors the instance cache's realized shape per tree
// type: each key maps to the list of world transforms grafted there
// since the cache was last rebuilt. It is deliberately map-backed
// rather than a flat Grid: unlike the
// instance cache (whose capacity per age is uniform across ids), the
// transform cache's variant count per (id,age) is the instance cache's
// realized fill count, which varies per id, so a single fixed stride
// cannot address it without wasting the ragged tail.
type TransformCache struct {
	batches map[BatchKey][]geom.Transform
}

// NewTransformCache builds an empty transform cache.
func NewTransformCache() *TransformCache {
	return &TransformCache{batches: make(map[BatchKey][]geom.Transform)}
}

// Append records a newly grafted world transform under key.
func (tc *TransformCache) Append(key BatchKey, t geom.Transform) {
	tc.batches[key] = append(tc.batches[key], t)
}

// Batch returns the transforms recorded for key.
func (tc *TransformCache) Batch(key BatchKey) []geom.Transform {
	return tc.batches[key]
}

// Len returns the total number of transforms recorded across all batches.
func (tc *TransformCache) Len() int {
	total := 0
	for _, b := range tc.batches {
		total += len(b)
	}
	return total
}

// ForEach visits every (key, batch) pair.
func (tc *TransformCache) ForEach(f func(key BatchKey, batch []geom.Transform)) {
	for k, b := range tc.batches {
		f(k, b)
	}
}

// DeltaLog records (type,id,age,variant) tuples for every transform
// appended since the last Drain.
type DeltaLog struct {
	entries []BatchKey
}

// NewDeltaLog builds an empty delta log.
func NewDeltaLog() *DeltaLog {
	return &DeltaLog{}
}

// Record appends key to the log.
func (d *DeltaLog) Record(key BatchKey) {
	d.entries = append(d.entries, key)
}

// Drain returns every recorded key since the last Drain and clears the
// log, so downstream renderers rebuild only dirty batches.
func (d *DeltaLog) Drain() []BatchKey {
	out := d.entries
	d.entries = nil
	return out
}

// Len reports how many entries are pending drain.
func (d *DeltaLog) Len() int {
	return len(d.entries)
}
