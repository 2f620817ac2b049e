package mesh

import (
	"fmt"

	"github.com/dantero-ps/voxelkd/internal/telemetry"
)

// Mesher sweeps a padded voxel grid along all three axes and both sides,
// emitting the minimal set of merged axis-aligned Faces. A Mesher owns a
// scratch mask buffer sized for the grid it was built for and reuses it
// across calls to Mesh; it is not safe to call Mesh concurrently on the
// same Mesher.
type Mesher struct {
	dx, dy, dz   int
	singleOpaque bool
	mask         []int
}

// NewMesher allocates a Mesher for a dx x dy x dz grid. singleOpaque, when
// true, collapses every nonzero material id to 1 for merging purposes so
// that any two opaque cells merge regardless of their material.
func NewMesher(dx, dy, dz int, singleOpaque bool) *Mesher {
	validateDim("dx", dx)
	validateDim("dy", dy)
	validateDim("dz", dz)
	maskSize := maxInt(dx, dy) * maxInt(dy, dz)
	return &Mesher{
		dx:           dx,
		dy:           dy,
		dz:           dz,
		singleOpaque: singleOpaque,
		mask:         make([]int, maskSize),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Mesh sweeps grid and appends every merged Face to out, returning the
// extended slice. grid's dimensions must match the Mesher's.
func (m *Mesher) Mesh(grid *Grid, out []Face) []Face {
	defer telemetry.Track("mesh.Mesh")()

	if grid.DX != m.dx || grid.DY != m.dy || grid.DZ != m.dz {
		panic(fmt.Errorf("mesh: grid size (%d,%d,%d) does not match mesher size (%d,%d,%d)",
			grid.DX, grid.DY, grid.DZ, m.dx, m.dy, m.dz))
	}

	dims := [3]int{m.dx, m.dy, m.dz}
	for d := 0; d < 3; d++ {
		u := (d + 1) % 3
		v := (d + 2) % 3
		out = m.sweepAxis(grid, dims, d, u, v, out)
	}
	return out
}

// sweepAxis scans every slab along primary axis d, building a 2D mask over
// the in-plane axes (u,v) and greedily merging it into Faces. This is the
// axis-agnostic generalization of building one mask per direction and
// growing merged rectangles within it: a single implementation replaces the
// per-axis, per-side duplicated loops the rectangle-merge idea is usually
// written as, since the mask construction and the merge scan only ever
// depend on which grid axis is "up/down" (d) and which two are "in-plane"
// (u,v).
func (m *Mesher) sweepAxis(grid *Grid, dims [3]int, d, u, v int, out []Face) []Face {
	du, dv := dims[u], dims[v]
	mask := m.mask[:du*dv]

	var pos [3]int
	for slab := -1; slab < dims[d]; slab++ {
		for j := 0; j < dv; j++ {
			pos[v] = j
			for i := 0; i < du; i++ {
				pos[u] = i

				pos[d] = slab
				a := grid.get(pos[0], pos[1], pos[2])
				pos[d] = slab + 1
				b := grid.get(pos[0], pos[1], pos[2])

				idx := j*du + i
				switch {
				case (a == 0) == (b == 0):
					mask[idx] = 0
				case a != 0:
					if m.singleOpaque {
						mask[idx] = 1
					} else {
						mask[idx] = int(a)
					}
				default:
					if m.singleOpaque {
						mask[idx] = -1
					} else {
						mask[idx] = -int(b)
					}
				}
			}
		}

		out = mergeSlab(mask, du, dv, d, uint8(slab+1), out)
	}
	return out
}

// mergeSlab greedily merges a single slab's mask into Faces, zeroing each
// covered rectangle as it is emitted so every mask cell is visited O(1)
// times overall.
func mergeSlab(mask []int, du, dv, d int, plane uint8, out []Face) []Face {
	idx := 0
	for idx < du*dv {
		c := mask[idx]
		if c == 0 {
			idx++
			continue
		}

		i0 := idx % du
		j0 := idx / du

		w := 1
		for i0+w < du && mask[idx+w] == c {
			w++
		}

		h := 1
	grow:
		for j0+h < dv {
			rowStart := (j0+h)*du + i0
			for k := 0; k < w; k++ {
				if mask[rowStart+k] != c {
					break grow
				}
			}
			h++
		}

		side := byte(0)
		if c > 0 {
			side = 1
		}
		out = append(out, Face{
			U0: uint8(i0), V0: uint8(j0),
			U1: uint8(i0 + w), V1: uint8(j0 + h),
			P: plane,
			S: byte(d*2) + side,
		})

		for yy := j0; yy < j0+h; yy++ {
			rowStart := yy * du
			for xx := i0; xx < i0+w; xx++ {
				mask[rowStart+xx] = 0
			}
		}
		idx += w
	}
	return out
}
