package kdtree

// linkRopes walks tree.Root assigning each leaf its six rope neighbors,
// shortening each rope as far down the opposite subtree as it can go
// unambiguously (spec.md §4.5).
func linkRopes(tree *Tree) {
	var none [6]*Node
	processNode(tree.Root, none)
}

// processNode optimizes the ropes inherited from the parent against this
// node's own (tighter) bounding box, then either stores them on a leaf or
// introduces the two new ropes created by this node's split and recurses.
func processNode(node *Node, parentRopes [6]*Node) {
	var ropes [6]*Node
	for side := 0; side < 6; side++ {
		ropes[side] = optimizeRope(parentRopes[side], side, node.BBox)
	}

	if node.IsLeaf() {
		node.Ropes = ropes
		return
	}

	axis := node.SplitAxis
	posSide := axis * 2
	negSide := axis*2 + 1

	leftRopes := ropes
	leftRopes[posSide] = node.Right

	rightRopes := ropes
	rightRopes[negSide] = node.Left

	processNode(node.Left, leftRopes)
	processNode(node.Right, rightRopes)
}

// optimizeRope descends rope toward the face it borders, stopping as soon
// as bbox straddles the next split plane (at which point the rope can no
// longer be shortened unambiguously and is left pointing at an interior
// node — see DESIGN.md's Open Question on §4.5 vs §8).
func optimizeRope(rope *Node, side int, bbox Box) *Node {
	if rope == nil {
		return nil
	}

	axis := side / 2
	positive := side%2 == 0

	for !rope.IsLeaf() {
		if rope.SplitAxis == axis {
			if positive {
				rope = rope.Left
			} else {
				rope = rope.Right
			}
			continue
		}

		switch {
		case bbox.Max(rope.SplitAxis) <= rope.SplitPos:
			rope = rope.Left
		case bbox.Min(rope.SplitAxis) >= rope.SplitPos:
			rope = rope.Right
		default:
			return rope
		}
	}
	return rope
}
