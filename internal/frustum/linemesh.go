package frustum

import "hmd-optics/internal/mathutil"

// edges is the fixed 12-edge topology of a frustum box, as corner index
// pairs: 4 near-plane edges, 4 far-plane edges, 4 connecting edges. It
// never changes; only corner positions move.
var edges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // near
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // far
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting
}

// LineMesh is a renderable wireframe of one frustum: a flat vertex buffer
// of 24 line endpoints (12 edges × 2) plus the corners they came from.
// The edge→corner index mapping is fixed at construction; Update rewrites
// endpoint positions in place with no allocation, so it is safe to call
// every frame.
type LineMesh struct {
	// Visible is a pure rendering toggle; it never affects the matrices
	// or the stored geometry.
	Visible bool

	corners [8]mathutil.Vec3
	verts   [24]mathutil.Vec3
	valid   bool
}

// NewLineMesh returns a visible, empty mesh. Call Update to populate it.
func NewLineMesh() *LineMesh {
	return &LineMesh{Visible: true}
}

// Update recomputes the 8 corners from the matrix pair and rewrites the
// vertex buffer. On reconstruction failure the previous corners and
// vertices are retained and the error is returned.
func (lm *LineMesh) Update(proj, view mathutil.Mat4) error {
	corners, err := Corners(proj, view)
	if err != nil {
		return err
	}
	lm.corners = corners
	for i, e := range edges {
		lm.verts[i*2] = corners[e[0]]
		lm.verts[i*2+1] = corners[e[1]]
	}
	lm.valid = true
	return nil
}

// Valid reports whether the mesh holds at least one successful
// reconstruction.
func (lm *LineMesh) Valid() bool { return lm.valid }

// Corners returns the current world-space corner positions, near plane
// first.
func (lm *LineMesh) Corners() [8]mathutil.Vec3 { return lm.corners }

// Segment returns the endpoints of edge i out of EdgeCount().
func (lm *LineMesh) Segment(i int) (a, b mathutil.Vec3) {
	return lm.verts[i*2], lm.verts[i*2+1]
}

// EdgeCount returns the fixed number of edges.
func EdgeCount() int { return len(edges) }
