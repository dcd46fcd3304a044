// Package camera holds the render camera and derives it from scene bounds.
package camera

import (
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// Projection selects how the camera projects the scene.
type Projection int

const (
	Orthographic Projection = iota
	Perspective
)

// String implements fmt.Stringer.
func (p Projection) String() string {
	switch p {
	case Orthographic:
		return "orthographic"
	case Perspective:
		return "perspective"
	default:
		return "unknown"
	}
}

// State is the full camera description. It is owned by one render session
// and only mutated by Fitter.Fit and SetViewport.
type State struct {
	Viewport viewport.Rect

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	Projection Projection
	Height     float32 // orthographic frame height in world units
	FOV        float32 // perspective vertical field of view in radians
	Near, Far  float32
}

// SetViewport sets the pixel rectangle the camera renders into. The aspect
// ratio of the projection follows it.
func (s *State) SetViewport(r viewport.Rect) {
	s.Viewport = r
}

// View returns the world-to-view matrix.
func (s *State) View() math.Mat4 {
	return math.LookAt(s.Position, s.Target, s.Up)
}

// ProjectionMatrix returns the view-to-clip matrix for the current viewport.
func (s *State) ProjectionMatrix() math.Mat4 {
	aspect := s.Viewport.Aspect()
	if s.Projection == Perspective {
		return math.Perspective(s.FOV, aspect, s.Near, s.Far)
	}
	halfH := s.Height / 2
	halfW := halfH * aspect
	return math.Ortho(-halfW, halfW, -halfH, halfH, s.Near, s.Far)
}

// ViewProjection returns ProjectionMatrix * View.
func (s *State) ViewProjection() math.Mat4 {
	return s.ProjectionMatrix().Mul(s.View())
}
