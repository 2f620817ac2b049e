package mesh

import "fmt"

// Grid is a dense, padded byte grid addressed as
// grid[x+1 + (dx+2)*(y+1 + (dy+2)*(z+1))] over a volume of nominal size
// dx x dy x dz. The one-cell pad on every side is always 0, so neighbor
// lookups at the boundary read the pad and drive emission of outer-hull
// faces. Cell value 0 means empty; nonzero is opaque with material id equal
// to the value.
type Grid struct {
	DX, DY, DZ int
	cells      []byte
}

// NewGrid allocates a padded grid for a dx x dy x dz volume. Every axis
// extent must be in [1,256]; anything else is a programmer error.
func NewGrid(dx, dy, dz int) *Grid {
	validateDim("dx", dx)
	validateDim("dy", dy)
	validateDim("dz", dz)
	return &Grid{
		DX:    dx,
		DY:    dy,
		DZ:    dz,
		cells: make([]byte, (dx+2)*(dy+2)*(dz+2)),
	}
}

func validateDim(name string, d int) {
	if d < 1 || d > 256 {
		panic(fmt.Errorf("mesh: %s out of range [1,256]: %d", name, d))
	}
}

func (g *Grid) index(x, y, z int) int {
	return (x + 1) + (g.DX+2)*((y+1)+(g.DY+2)*(z+1))
}

// Set writes the material id at interior coordinate (x,y,z), each in
// [0,dim). Use 0 to clear a cell back to empty.
func (g *Grid) Set(x, y, z int, material byte) {
	g.cells[g.index(x, y, z)] = material
}

// Get reads the material id at interior coordinate (x,y,z), each in
// [0,dim).
func (g *Grid) Get(x, y, z int) byte {
	return g.cells[g.index(x, y, z)]
}

// get reads a cell allowing coordinates one step into the pad on either
// side of each axis, i.e. x,y,z in [-1,dim]. This is the accessor the
// mesher sweep uses so boundary slabs see the implicit empty pad.
func (g *Grid) get(x, y, z int) byte {
	return g.cells[g.index(x, y, z)]
}
