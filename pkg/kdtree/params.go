package kdtree

// BuildParams holds the cost-model tunables used by Builder when choosing
// split planes. Unlike internal/config's package-global render settings,
// BuildParams is a plain value owned by the caller: a tree is immutable
// after Build, so there is nothing to guard with a mutex here, and the same
// params value can be reused across independent builds.
type BuildParams struct {
	// MaxPrims is the primitive-count threshold at or below which a node
	// becomes a leaf outright.
	MaxPrims int
	// VoxelIntersectCost and NodeIntersectCost are the two terms of the
	// SAH-style sweep cost: cost = VoxelIntersectCost + NodeIntersectCost *
	// weightedStraddleTerm.
	VoxelIntersectCost float32
	NodeIntersectCost  float32
}

// DefaultBuildParams returns the constants named by the cost model.
func DefaultBuildParams() BuildParams {
	return BuildParams{
		MaxPrims:           2,
		VoxelIntersectCost: 1.0,
		NodeIntersectCost:  1.0,
	}
}

// clamp mirrors config.RenderSettings' clamp-on-set pattern: values handed
// in by the caller are kept sane rather than propagating garbage into the
// cost sweep.
func (p BuildParams) clamp() BuildParams {
	if p.MaxPrims < 1 {
		p.MaxPrims = 1
	}
	if p.VoxelIntersectCost < 0 {
		p.VoxelIntersectCost = 0
	}
	if p.NodeIntersectCost < 0 {
		p.NodeIntersectCost = 0
	}
	return p
}
