package kdtree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Voxel is a concrete Boundable representing a (possibly stretched) voxel.
// Base coordinates and extents are stored as unsigned bytes and decoded as
// unsigned; Min(axis) is the base coordinate, Max(axis) is base+1+extent
// (inclusive-plus-one). PaletteIndex and Sides are metadata carried through
// the tree unchanged by splitting.
type Voxel struct {
	X, Y, Z    uint8
	EX, EY, EZ uint8

	PaletteIndex uint8
	Sides        uint8
}

func (v Voxel) base(axis int) int {
	switch axis {
	case 0:
		return int(v.X)
	case 1:
		return int(v.Y)
	case 2:
		return int(v.Z)
	}
	checkAxis(axis)
	return 0
}

func (v Voxel) extent(axis int) int {
	switch axis {
	case 0:
		return int(v.EX)
	case 1:
		return int(v.EY)
	case 2:
		return int(v.EZ)
	}
	checkAxis(axis)
	return 0
}

func (v *Voxel) setBase(axis int, val uint8) {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		checkAxis(axis)
	}
}

func (v *Voxel) setExtent(axis int, val uint8) {
	switch axis {
	case 0:
		v.EX = val
	case 1:
		v.EY = val
	case 2:
		v.EZ = val
	default:
		checkAxis(axis)
	}
}

// Min returns the base coordinate along axis.
func (v Voxel) Min(axis int) int {
	return v.base(axis)
}

// Max returns base+1+extent along axis (exclusive upper bound).
func (v Voxel) Max(axis int) int {
	return v.base(axis) + 1 + v.extent(axis)
}

// Intersects reports whether the voxel overlaps the closed region
// [min,max], using the same closed-on-both-sides comparison as Box.
func (v Voxel) Intersects(min, max mgl32.Vec3) bool {
	b := NewBoxFromBoundable(v)
	return b.Intersects(min, max)
}

// SplitLeft returns the portion of v with Max(axis) == pos, re-deriving
// base/extent on axis only; the other two axes are left untouched.
func (v Voxel) SplitLeft(axis int, pos int) Boundable {
	checkAxis(axis)
	base := v.base(axis)
	newExtent := pos - base - 1
	if newExtent < 0 {
		panic(fmt.Errorf("kdtree: SplitLeft(axis=%d, pos=%d) crosses voxel base %d", axis, pos, base))
	}
	out := v
	out.setExtent(axis, uint8(newExtent))
	return out
}

// SplitRight returns the portion of v with Min(axis) == pos, re-deriving
// base/extent on axis only.
func (v Voxel) SplitRight(axis int, pos int) Boundable {
	checkAxis(axis)
	oldMax := v.Max(axis)
	newExtent := oldMax - pos - 1
	if newExtent < 0 {
		panic(fmt.Errorf("kdtree: SplitRight(axis=%d, pos=%d) crosses voxel max %d", axis, pos, oldMax))
	}
	out := v
	out.setBase(axis, uint8(pos))
	out.setExtent(axis, uint8(newExtent))
	return out
}
