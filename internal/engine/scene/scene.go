// Package scene loads a glTF model into a GPU-free description of
// world-space parts, materials and lights.
package scene

import (
	"errors"
	"image"

	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// ErrNoGeometry is returned when a model contains no triangle primitive.
var ErrNoGeometry = errors.New("scene: model has no triangle geometry")

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Part is one drawable primitive with world-space geometry.
type Part struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material int // index into Description.Materials, -1 for the default
	Bounds   math.AABB
}

// Material is the subset of a glTF PBR material the renderer uses.
type Material struct {
	Name      string
	BaseColor [4]float32
	BaseImage image.Image // nil when untextured
}

// DefaultMaterial is used for parts without a material.
var DefaultMaterial = Material{Name: "default", BaseColor: [4]float32{0.8, 0.8, 0.8, 1}}

// Description is a loaded model before GPU upload.
type Description struct {
	Name      string
	Parts     []Part
	Materials []Material
}

// BoundingBox unions the bounds of every part. It is empty when there are
// no parts.
func (d *Description) BoundingBox() math.AABB {
	box := math.EmptyAABB()
	for i := range d.Parts {
		box = box.Union(d.Parts[i].Bounds)
	}
	return box
}

// TriangleCount returns the total number of triangles across all parts.
func (d *Description) TriangleCount() int {
	n := 0
	for i := range d.Parts {
		n += len(d.Parts[i].Indices) / 3
	}
	return n
}

// Material returns the material for part p, falling back to DefaultMaterial.
func (d *Description) Material(p *Part) Material {
	if p.Material < 0 || p.Material >= len(d.Materials) {
		return DefaultMaterial
	}
	return d.Materials[p.Material]
}

// DirectionalLight is a light infinitely far away.
type DirectionalLight struct {
	Intensity float32
	Color     [3]float32
	Direction math.Vec3 // direction the light travels
}

// DefaultLights is the fixed two-light rig: one from above-front, one from
// below-back, both white at full intensity.
func DefaultLights() []DirectionalLight {
	white := [3]float32{1, 1, 1}
	return []DirectionalLight{
		{Intensity: 1, Color: white, Direction: math.V3(0, -0.5, -0.5)},
		{Intensity: 1, Color: white, Direction: math.V3(0, 0.5, 0.5)},
	}
}
