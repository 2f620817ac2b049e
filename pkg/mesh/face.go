package mesh

// Face is a single merged rectangle emitted by the greedy mesher. (U0,V0) to
// (U1,V1) is the in-plane rectangle using the exclusive-upper-bound
// convention: the rectangle covers cells [U0,U1) x [V0,V1). P is the slice
// coordinate along the plane's normal axis. S encodes axis*2+side, side 0
// meaning the face's normal points toward the negative direction of the
// axis and side 1 the positive direction.
//
// Grid extents up to 256 make P's theoretical range [0,256]; a byte can only
// hold up to 255, so a face on the outermost positive boundary of a
// maximum-sized grid wraps to 0. This mirrors the byte-sized Face record
// named by the data model rather than widening it past what downstream
// consumers expect.
type Face struct {
	U0, V0, U1, V1 uint8
	P              uint8
	S              uint8
}

// Axis returns the sweep axis (0=X, 1=Y, 2=Z) this face lies perpendicular to.
func (f Face) Axis() int {
	return int(f.S) / 2
}

// Side returns 0 if the face's normal points toward the negative direction
// of Axis(), 1 if it points toward the positive direction.
func (f Face) Side() int {
	return int(f.S) % 2
}
