// Package kdtree implements a split-kd-tree over axis-aligned integer
// primitives with post-build rope links between leaves, so ray-marching or
// visibility traversal can step to a neighboring leaf in O(1) per face.
package kdtree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Boundable is an axis-aligned integer primitive. Implementations are
// immutable: SplitLeft and SplitRight return a fresh primitive rather than
// mutating the receiver.
type Boundable interface {
	// Min returns the inclusive lower bound along axis (0=X, 1=Y, 2=Z).
	Min(axis int) int
	// Max returns the exclusive upper bound along axis.
	Max(axis int) int
	// Intersects reports whether the primitive overlaps the closed box
	// [min,max], comparing both bounds inclusively.
	Intersects(min, max mgl32.Vec3) bool
	// SplitLeft returns the portion of the primitive with Max(axis) <= pos.
	SplitLeft(axis int, pos int) Boundable
	// SplitRight returns the portion of the primitive with Min(axis) >= pos.
	SplitRight(axis int, pos int) Boundable
}

func checkAxis(axis int) {
	if axis < 0 || axis > 2 {
		panic(fmt.Errorf("kdtree: axis out of range {0,1,2}: %d", axis))
	}
}
