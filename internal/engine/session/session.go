// Package session owns the per-thread render state: one GPU device, the
// resident scene and the auto-fit camera.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/camera"
	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/scene"
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// ErrNotReady is returned when a session is used before New completed.
var ErrNotReady = errors.New("session: not ready")

// Device is the slice of renderer.Context a session draws through. Err
// reports driver errors left after a draw.
type Device interface {
	Begin(t gpu.Target) (restore func())
	SetViewport(r viewport.Rect)
	Scissor(r viewport.Rect)
	ClearRect(r viewport.Rect, c gpu.Color)
	Err() error
}

// Scene is a GPU-resident model. *model.Handle implements it.
type Scene interface {
	Bounds() math.AABB
	Draw(cam *camera.State, lights []scene.DirectionalLight) error
}

// SceneLoader loads and uploads the model once a device exists.
type SceneLoader func(d Device) (Scene, error)

// Options configures every session a registry creates.
type Options struct {
	LoadScene  SceneLoader
	Camera     camera.Config
	ClearColor gpu.Color
	Lights     []scene.DirectionalLight
}

// State is the session lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Frame is one paint request in framebuffer pixels.
type Frame struct {
	Target   gpu.Target
	Viewport viewport.Rect
	Scissor  viewport.Rect
}

// Session renders one scene on the thread that created it. It is not safe
// for concurrent use.
type Session struct {
	state  State
	device Device
	scene  Scene
	camera camera.State
	fitter *camera.Fitter
	clear  gpu.Color
	lights []scene.DirectionalLight

	frames  uint64
	dropped uint64
	log     *zap.Logger
}

// New loads the scene on device and builds the initial camera around it.
// Any error here is fatal for the process.
func New(device Device, opts Options) (*Session, error) {
	if device == nil {
		return nil, fmt.Errorf("%w: nil device", gpu.ErrContext)
	}
	if opts.LoadScene == nil {
		return nil, errors.New("session: no scene loader")
	}

	sc, err := opts.LoadScene(device)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	lights := opts.Lights
	if lights == nil {
		lights = scene.DefaultLights()
	}

	s := &Session{
		device: device,
		scene:  sc,
		camera: camera.New(opts.Camera, sc.Bounds()),
		fitter: camera.NewFitter(opts.Camera),
		clear:  opts.ClearColor,
		lights: lights,
		log:    logger.Named("session"),
	}
	s.state = Ready
	s.log.Info("render session ready",
		zap.Stringer("projection", opts.Camera.Projection),
		zap.Int("lights", len(lights)),
	)
	return s, nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Camera returns a copy of the current camera.
func (s *Session) Camera() camera.State {
	return s.camera
}

// Stats returns the number of frames drawn and dropped.
func (s *Session) Stats() (frames, dropped uint64) {
	return s.frames, s.dropped
}

// RenderFrame fits the camera to the scene and draws it into f.Target,
// touching only pixels inside f.Scissor. A zero-area viewport or scissor
// draws nothing. The target is returned so the host can keep compositing.
func (s *Session) RenderFrame(f Frame) gpu.Target {
	if s.state != Ready {
		s.log.Warn("frame on uninitialized session", zap.Error(ErrNotReady))
		return f.Target
	}
	if f.Viewport.Empty() || f.Scissor.Empty() {
		return f.Target
	}

	s.fitter.Fit(&s.camera, s.scene.Bounds())
	s.camera.SetViewport(f.Viewport)

	restore := s.device.Begin(f.Target)
	defer restore()

	s.device.SetViewport(f.Viewport)
	s.device.ClearRect(f.Scissor, s.clear)
	s.device.Scissor(f.Scissor)

	err := s.scene.Draw(&s.camera, s.lights)
	if err == nil {
		err = s.device.Err()
	}
	if err != nil {
		s.dropped++
		s.log.Warn("frame dropped", zap.Uint64("frame", s.frames), zap.Error(err))
		return f.Target
	}
	s.frames++
	return f.Target
}

// Paint maps a host panel to pixels and renders it.
func (s *Session) Paint(target gpu.Target, in viewport.Input) gpu.Target {
	vp, sc := viewport.Map(in)
	return s.RenderFrame(Frame{Target: target, Viewport: vp, Scissor: sc})
}
