package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// HeightPolicy decides how the orthographic frame height follows the model.
type HeightPolicy int

const (
	// FixedHeight keeps the frame height at Config.BaselineHeight whatever
	// the model size; only the depth range scales.
	FixedHeight HeightPolicy = iota
	// ScaledHeight sets the frame height to maxDim * Config.HeightScale.
	ScaledHeight
)

// Config holds the auto-fit parameters.
type Config struct {
	Projection     Projection
	HeightPolicy   HeightPolicy
	BaselineHeight float32
	HeightScale    float32
	// Epsilon is added to every component of the eye offset so the view
	// vector is never zero-length for tiny models.
	Epsilon float32
	FOV     float32 // radians, perspective only
}

// DefaultConfig returns the orthographic fixed-height setup.
func DefaultConfig() Config {
	return Config{
		Projection:     Orthographic,
		HeightPolicy:   FixedHeight,
		BaselineHeight: 100,
		HeightScale:    1.5,
		Epsilon:        10,
		FOV:            math32.Pi / 2,
	}
}

// New returns the initial camera for a scene: eye and target both at the box
// center, like a camera that has not been fitted yet. The first Fit moves the
// eye out along the viewing diagonal.
func New(cfg Config, box math.AABB) State {
	center := math.Vec3{}
	if !box.IsEmpty() {
		center = box.Center()
	}
	s := State{
		Position:   center,
		Target:     center,
		Up:         math.V3(0, 1, 0),
		Projection: cfg.Projection,
		Height:     cfg.BaselineHeight,
		FOV:        cfg.FOV,
		Near:       0.01,
		Far:        10000,
	}
	return s
}

// Fitter re-derives a camera from a bounding box every frame.
type Fitter struct {
	cfg Config
}

// NewFitter returns a Fitter using cfg.
func NewFitter(cfg Config) *Fitter {
	return &Fitter{cfg: cfg}
}

// Fit frames box in s. For an empty or zero-size box s is left untouched and
// Fit returns false, so the previous frame's camera is kept until geometry
// shows up.
func (f *Fitter) Fit(s *State, box math.AABB) bool {
	if box.IsEmpty() {
		return false
	}
	maxDim := box.Size().MaxComponent()
	if maxDim <= 0 || math32.IsNaN(maxDim) || math32.IsInf(maxDim, 0) {
		return false
	}

	center := box.Center()
	s.Target = center
	s.Position = center.Add(math.Splat(maxDim + f.cfg.Epsilon))
	s.Up = math.V3(0, 1, 0)
	s.Projection = f.cfg.Projection

	switch f.cfg.Projection {
	case Perspective:
		s.FOV = f.cfg.FOV
		s.Near = 0.01
		s.Far = math32.Max(10000, 8*maxDim)
	default:
		s.Height = f.cfg.BaselineHeight
		if f.cfg.HeightPolicy == ScaledHeight {
			s.Height = maxDim * f.cfg.HeightScale
		}
		s.Near = -4 * maxDim
		s.Far = 4 * maxDim
	}
	return true
}
