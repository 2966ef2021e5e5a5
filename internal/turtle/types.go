package turtle

import "github.com/bencarey88/forestgen/internal/geom"

// Range is a half-open [Start,End) span into a hero index buffer.
type Range struct {
	Start, End int
}

// ExitPoint is a handle inside an Instance at which another instance
// should be grafted during forest composition.
type ExitPoint struct {
	ExitID        int
	ExitAge       int
	ExitTransform geom.Transform
}

// Instance records a reusable sub-tree grown at an @(id,age) or
// bootstrapping <(id,age) site.
type Instance struct {
	// LocalTransform is the rigid frame M = [right|heading|up|position]
	// captured at the @(id,age) site where this instance was recorded.
	// Grafting composes against its inverse: T' = T.Compose(LocalTransform.Inverse()).
	LocalTransform geom.Transform

	LineRange    Range
	LeafRange    Range
	PolygonRange Range

	ExitPoints []ExitPoint
}

// LeafMarker records a leaf's pose at the moment `J` was interpreted.
type LeafMarker struct {
	Position geom.Vec3
	Heading  geom.Vec3
	Right    geom.Vec3
	Index    int
}

// Vertex is one emitted turtle position plus the orientation/thickness
// it was drawn with, used for billboarded branch rendering.
type Vertex struct {
	Position  geom.Vec3
	Right     geom.Vec3
	Thickness float64
}

// HeroBuffers is a tree type's immutable-after-fill geometry: every
// vertex/index/leaf/polygon emitted across all hero-tree repetitions.
type HeroBuffers struct {
	Vertices []Vertex
	Indices  [][2]int // line segment index pairs

	Leaves []LeafMarker

	PolygonVertices []geom.Vec3
	PolygonIndices  [][3]int
}
