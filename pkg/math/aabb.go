package math

import "github.com/chewxy/math32"

// AABB is an axis-aligned bounding box. The zero value is not empty; use
// EmptyAABB for a box that contains nothing yet.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns the identity element for Union: min at +Inf, max at -Inf.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: Splat(inf),
		Max: Splat(-inf),
	}
}

// NewAABB returns the box spanning the two corners in any order.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// IsEmpty reports whether the box contains no point.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns the smallest box containing both b and other.
func (b AABB) Union(other AABB) AABB {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns (Min+Max)/2.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns Max-Min.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners, bottom face (min Y) first.
func (b AABB) Corners() [8]Vec3 {
	lo, hi := b.Min, b.Max
	return [8]Vec3{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {hi.X, lo.Y, hi.Z}, {lo.X, lo.Y, hi.Z},
		{lo.X, hi.Y, lo.Z}, {hi.X, hi.Y, lo.Z}, {hi.X, hi.Y, hi.Z}, {lo.X, hi.Y, hi.Z},
	}
}

// Transform returns the box containing all eight corners of b under m.
func (b AABB) Transform(m Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out.Extend(m.TransformPoint(c))
	}
	return out
}
