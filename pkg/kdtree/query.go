package kdtree

import "github.com/go-gl/mathgl/mgl32"

// FindNode descends from the root to the leaf containing point, comparing
// point's coordinate on each node's SplitAxis against SplitPos. If point
// lies outside the root's bbox, FindNode returns the root unchanged so the
// caller can detect the out-of-bounds case.
func (t *Tree) FindNode(point mgl32.Vec3) *Node {
	if !t.Root.BBox.Intersects(point, point) {
		return t.Root
	}
	node := t.Root
	for !node.IsLeaf() {
		coord := point[node.SplitAxis]
		if coord < float32(node.SplitPos) {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// Intersects returns every primitive, post-split, whose own Intersects
// overlaps the closed region [min,max]. A leaf's bbox overlapping Q does not
// imply every primitive it holds does, so the leaf-level overlap is only
// used to prune subtrees; each candidate primitive is tested individually.
func (t *Tree) Intersects(min, max mgl32.Vec3) []Boundable {
	var out []Boundable
	intersectNode(t.Root, min, max, &out)
	return out
}

func intersectNode(node *Node, min, max mgl32.Vec3, out *[]Boundable) {
	if node == nil || !node.BBox.Intersects(min, max) {
		return
	}
	if node.IsLeaf() {
		for _, prim := range node.Voxels {
			if prim.Intersects(min, max) {
				*out = append(*out, prim)
			}
		}
		return
	}
	intersectNode(node.Left, min, max, out)
	intersectNode(node.Right, min, max, out)
}
