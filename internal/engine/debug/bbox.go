// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/Faultbox/goonie-buddy/pkg/math"

// BoxWireframeVertexCount is the number of line vertices BoxWireframe
// returns for a non-empty box (12 edges, 2 endpoints each).
const BoxWireframeVertexCount = 24

// boxEdges indexes math.AABB.Corners: bottom ring, top ring, then uprights.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxWireframe returns GL_LINES vertices, xyz per vertex, outlining box
// grown by padding on every side. An empty box yields nil.
func BoxWireframe(box math.AABB, padding float32) []float32 {
	if box.IsEmpty() {
		return nil
	}
	pad := math.Splat(padding)
	corners := math.NewAABB(box.Min.Sub(pad), box.Max.Add(pad)).Corners()

	out := make([]float32, 0, BoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		a, b := corners[e[0]], corners[e[1]]
		out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return out
}
