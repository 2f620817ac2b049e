package kdtree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is a plain integer AABB. Unlike Voxel, Box does not support splitting
// across a plane; SplitLeft/SplitRight panic, matching spec.md's "Box
// (unsupported)" note — Box exists for builder-internal bookkeeping
// (node bounding boxes), not as a storable leaf primitive.
type Box struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int
}

// NewBoxFromBoundable returns the componentwise union of b's bounds on all
// three axes.
func NewBoxFromBoundable(b Boundable) Box {
	return Box{
		MinX: b.Min(0), MinY: b.Min(1), MinZ: b.Min(2),
		MaxX: b.Max(0), MaxY: b.Max(1), MaxZ: b.Max(2),
	}
}

// Min returns the box's lower bound along axis.
func (b Box) Min(axis int) int {
	switch axis {
	case 0:
		return b.MinX
	case 1:
		return b.MinY
	case 2:
		return b.MinZ
	}
	checkAxis(axis)
	return 0
}

// Max returns the box's upper bound along axis.
func (b Box) Max(axis int) int {
	switch axis {
	case 0:
		return b.MaxX
	case 1:
		return b.MaxY
	case 2:
		return b.MaxZ
	}
	checkAxis(axis)
	return 0
}

// SetMin mutates the box's lower bound along axis.
func (b *Box) SetMin(axis, v int) {
	switch axis {
	case 0:
		b.MinX = v
	case 1:
		b.MinY = v
	case 2:
		b.MinZ = v
	default:
		checkAxis(axis)
	}
}

// SetMax mutates the box's upper bound along axis.
func (b *Box) SetMax(axis, v int) {
	switch axis {
	case 0:
		b.MaxX = v
	case 1:
		b.MaxY = v
	case 2:
		b.MaxZ = v
	default:
		checkAxis(axis)
	}
}

// Union returns the componentwise union of b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: minInt(b.MinX, o.MinX), MinY: minInt(b.MinY, o.MinY), MinZ: minInt(b.MinZ, o.MinZ),
		MaxX: maxInt(b.MaxX, o.MaxX), MaxY: maxInt(b.MaxY, o.MaxY), MaxZ: maxInt(b.MaxZ, o.MaxZ),
	}
}

// Intersects reports whether the box overlaps the closed region [min,max],
// using closed comparisons on both sides: this.max >= min && this.min <=
// max, componentwise. Callers pass an exclusive-upper-bound max when that's
// the semantics they want (the closed comparison still accepts it).
func (b Box) Intersects(min, max mgl32.Vec3) bool {
	return float32(b.MaxX) >= min.X() && float32(b.MinX) <= max.X() &&
		float32(b.MaxY) >= min.Y() && float32(b.MinY) <= max.Y() &&
		float32(b.MaxZ) >= min.Z() && float32(b.MinZ) <= max.Z()
}

// SplitLeft is unsupported on Box; it is not a storable leaf primitive, only
// a bounding volume.
func (b Box) SplitLeft(axis int, pos int) Boundable {
	panic(fmt.Errorf("kdtree: Box does not support SplitLeft"))
}

// SplitRight is unsupported on Box.
func (b Box) SplitRight(axis int, pos int) Boundable {
	panic(fmt.Errorf("kdtree: Box does not support SplitRight"))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
