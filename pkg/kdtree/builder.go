package kdtree

import (
	"fmt"
	"math"
	"sort"

	"github.com/dantero-ps/voxelkd/internal/telemetry"
)

// Builder recursively splits a set of Boundables into a Tree, choosing
// split planes with the cost model in selectSplit.
type Builder struct {
	params   BuildParams
	maxDepth int
}

// NewBuilder returns a Builder configured with params (clamped to sane
// ranges, see BuildParams.clamp).
func NewBuilder(params BuildParams) *Builder {
	return &Builder{params: params.clamp()}
}

// Build recursively partitions primitives into a Tree. maxDepth bounds
// recursion depth regardless of how many primitives remain at a node.
// Build panics if primitives is empty or maxDepth is negative.
func (b *Builder) Build(primitives []Boundable, maxDepth int) *Tree {
	defer telemetry.Track("kdtree.Build")()

	if len(primitives) == 0 {
		panic(fmt.Errorf("kdtree: Build requires at least one primitive"))
	}
	if maxDepth < 0 {
		panic(fmt.Errorf("kdtree: maxDepth must be >= 0: %d", maxDepth))
	}

	b.maxDepth = maxDepth

	root := &Node{
		BBox:      rootBounds(primitives),
		SplitAxis: -1,
		Voxels:    primitives,
	}

	var leaves []*Node
	// The axis argument threaded through buildTree is vestigial: the
	// authoritative split axis is always chosen by widest-extent inside
	// selectSplit (spec note, see DESIGN.md Open Question). It is kept here
	// only so depth/rotation bookkeeping matches the reference shape.
	b.buildNode(root, 0, 0, &leaves)

	tree := &Tree{Root: root, Leaves: leaves}
	linkRopes(tree)
	indexLeaves(tree)
	return tree
}

func rootBounds(primitives []Boundable) Box {
	box := NewBoxFromBoundable(primitives[0])
	for _, p := range primitives[1:] {
		box = box.Union(NewBoxFromBoundable(p))
	}
	return box
}

func (b *Builder) buildNode(node *Node, axis, depth int, leaves *[]*Node) {
	if len(node.Voxels) <= b.params.MaxPrims || depth >= b.maxDepth {
		b.makeLeaf(node, leaves)
		return
	}

	sp, ok := b.selectSplit(node.BBox, node.Voxels)
	if !ok {
		b.makeLeaf(node, leaves)
		return
	}

	left := &Node{BBox: node.BBox, SplitAxis: -1}
	left.BBox.SetMax(sp.axis, sp.pos)
	right := &Node{BBox: node.BBox, SplitAxis: -1}
	right.BBox.SetMin(sp.axis, sp.pos)

	for _, prim := range node.Voxels {
		switch {
		case prim.Min(sp.axis) >= sp.pos:
			right.Voxels = append(right.Voxels, prim)
		case prim.Max(sp.axis) <= sp.pos:
			left.Voxels = append(left.Voxels, prim)
		default:
			l := prim.SplitLeft(sp.axis, sp.pos)
			r := prim.SplitRight(sp.axis, sp.pos)
			if l.Max(sp.axis) > sp.pos {
				panic(fmt.Errorf("kdtree: SplitLeft invariant violated: max(%d)=%d > splitPos %d", sp.axis, l.Max(sp.axis), sp.pos))
			}
			if r.Min(sp.axis) < sp.pos {
				panic(fmt.Errorf("kdtree: SplitRight invariant violated: min(%d)=%d < splitPos %d", sp.axis, r.Min(sp.axis), sp.pos))
			}
			left.Voxels = append(left.Voxels, l)
			right.Voxels = append(right.Voxels, r)
		}
	}

	node.SplitAxis = sp.axis
	node.SplitPos = sp.pos
	node.Left = left
	node.Right = right
	node.Voxels = nil

	nextAxis := (axis + 1) % 3
	b.buildNode(left, nextAxis, depth+1, leaves)
	b.buildNode(right, nextAxis, depth+1, leaves)
}

func (b *Builder) makeLeaf(node *Node, leaves *[]*Node) {
	node.SplitAxis = -1
	*leaves = append(*leaves, node)
}

type splitPlane struct {
	axis int
	pos  int
}

const (
	eventStart = 0
	eventEnd   = 1
)

type boundEvent struct {
	pos  int
	kind int
}

// selectSplit implements spec.md §4.4: pick the widest axis, subsample up
// to 100 primitives, build a start/end event list, sweep it computing a
// straddle-weighted cost, and reject the split if the cheapest plane lands
// on the node's own bounds.
func (b *Builder) selectSplit(bbox Box, voxels []Boundable) (splitPlane, bool) {
	axis := widestAxis(bbox)
	boxWidth := float32(bbox.Max(axis) - bbox.Min(axis))
	if boxWidth <= 0 {
		return splitPlane{}, false
	}

	n := len(voxels)
	divisor := int(math.Ceil(float64(n) / 100.0))
	if divisor < 1 {
		divisor = 1
	}
	nPrims := n / divisor

	boxMin := bbox.Min(axis)
	boxMax := bbox.Max(axis)

	events := make([]boundEvent, 0, 2*((n+divisor-1)/divisor))
	for i := 0; i < n; i += divisor {
		p := voxels[i]
		pmin, pmax := p.Min(axis), p.Max(axis)
		if pmin < boxMin || pmax > boxMax {
			panic(fmt.Errorf("kdtree: selectSplit: primitive [%d,%d) does not intersect node bounds [%d,%d) on axis %d", pmin, pmax, boxMin, boxMax, axis))
		}
		events = append(events, boundEvent{pos: pmin, kind: eventStart})
		events = append(events, boundEvent{pos: pmax, kind: eventEnd})
	}

	// Stable sort by position; ties broken deterministically by processing
	// ENDs before STARTs at the same position (spec.md §4.4/§9 requires a
	// deterministic tiebreaker without naming which one).
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].pos != events[j].pos {
			return events[i].pos < events[j].pos
		}
		return events[i].kind > events[j].kind
	})

	minCost := float32(math.Inf(1))
	bestPos := 0
	found := false
	open, done := 0, 0
	nPrimsF := float32(nPrims)
	boxMinF := float32(boxMin)

	for _, e := range events {
		if e.kind == eventEnd {
			open--
			done++
		}

		alpha := (float32(e.pos) - boxMinF) / boxWidth
		cost := b.params.VoxelIntersectCost + b.params.NodeIntersectCost*(
			float32(done+open)*alpha+(nPrimsF-float32(done))*(1-alpha))
		if cost < minCost {
			minCost = cost
			bestPos = e.pos
			found = true
		}

		if e.kind == eventStart {
			open++
		}
	}

	if !found {
		return splitPlane{}, false
	}
	if bestPos == boxMin || bestPos == boxMax {
		return splitPlane{}, false
	}
	return splitPlane{axis: axis, pos: bestPos}, true
}

// widestAxis picks argmax(Max(a)-Min(a)). X wins only when strictly widest
// and Y only when strictly wider than Z, so ties go to the later axis
// (z over y over x).
func widestAxis(bbox Box) int {
	xw := bbox.Max(0) - bbox.Min(0)
	yw := bbox.Max(1) - bbox.Min(1)
	zw := bbox.Max(2) - bbox.Min(2)
	if xw > yw && xw > zw {
		return 0
	}
	if yw > zw {
		return 1
	}
	return 2
}
