package scene

import "github.com/Faultbox/goonie-buddy/pkg/math"

// computeSmoothNormals writes area-weighted vertex normals for a part that
// shipped without NORMAL data.
func computeSmoothNormals(vertices []Vertex, indices []uint32) {
	acc := make([]math.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}
		p0 := math.FromArray(vertices[i0].Position)
		p1 := math.FromArray(vertices[i1].Position)
		p2 := math.FromArray(vertices[i2].Position)

		// Unnormalized cross product weights by triangle area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}

	for i := range vertices {
		n := acc[i].Normalize()
		if n == (math.Vec3{}) {
			n = math.V3(0, 1, 0)
		}
		vertices[i].Normal = n.Array()
	}
}
