package shell

import (
	"image/color"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/goonie-buddy/internal/engine/camera"
	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/scene"
	"github.com/Faultbox/goonie-buddy/internal/engine/session"
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

func TestParseColorKey(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorKey
		wantErr bool
	}{
		{in: "#FFB2FF", want: DefaultColorKey},
		{in: "#ffb2ff", want: DefaultColorKey},
		{in: "#F0F", want: ColorKey{R: 0xFF, G: 0x00, B: 0xFF}},
		{in: "#00FF00", want: ColorKey{G: 0xFF}},
		{in: "#FF0000", wantErr: true},
		{in: "pink", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrColorKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorKeyConversions(t *testing.T) {
	k := DefaultColorKey
	assert.Equal(t, "#FFB2FF", k.String())
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xB2, B: 0xFF, A: 0xFF}, k.RGBA())
	assert.Equal(t, uint32(0x00FFB2FF), k.COLORREF())

	f := k.Floats()
	assert.InDelta(t, 1, f[0], 1e-6)
	assert.InDelta(t, 178.0/255, f[1], 1e-6)
	assert.Equal(t, gpu.Color{R: f[0], G: f[1], B: f[2], A: 1}, k.ClearColor())

	assert.Equal(t, uint32(0x00332211), ColorKey{R: 0x11, G: 0x22, B: 0x33}.COLORREF())
}

func TestWindowInput(t *testing.T) {
	t.Run("hidpi", func(t *testing.T) {
		in := WindowInput(400, 300, 800, 600)
		vp, sc := viewport.Map(in)
		assert.Equal(t, viewport.Rect{Width: 800, Height: 600}, vp)
		assert.Equal(t, vp, sc)
	})

	t.Run("unit ratio", func(t *testing.T) {
		vp, _ := viewport.Map(WindowInput(320, 240, 320, 240))
		assert.Equal(t, viewport.Rect{Width: 320, Height: 240}, vp)
	})

	t.Run("minimized", func(t *testing.T) {
		vp, sc := viewport.Map(WindowInput(0, 0, 0, 0))
		assert.True(t, vp.Empty())
		assert.True(t, sc.Empty())
	})
}

func TestPanelGeometryInput(t *testing.T) {
	t.Run("full viewport panel", func(t *testing.T) {
		g := PanelGeometry{
			ContentPos:       Vec2{10, 20},
			ContentSize:      Vec2{100, 50},
			WindowPos:        Vec2{0, 0},
			WindowSize:       Vec2{400, 300},
			DisplaySize:      Vec2{400, 300},
			FramebufferScale: 2,
		}
		in := g.Input()
		assert.Equal(t, int32(600), in.FramebufferHeight)

		vp, sc := viewport.Map(in)
		assert.Equal(t, viewport.Rect{X: 20, Y: 460, Width: 200, Height: 100}, vp)
		assert.Equal(t, vp, sc)
	})

	t.Run("panel window clips canvas", func(t *testing.T) {
		g := PanelGeometry{
			ContentPos:       Vec2{0, -40},
			ContentSize:      Vec2{200, 200},
			WindowPos:        Vec2{0, 0},
			WindowSize:       Vec2{200, 100},
			DisplaySize:      Vec2{200, 100},
			FramebufferScale: 1,
		}
		vp, sc := viewport.Map(g.Input())
		assert.Equal(t, viewport.Rect{X: 0, Y: -60, Width: 200, Height: 200}, vp)
		assert.Equal(t, viewport.Rect{X: 0, Y: 0, Width: 200, Height: 100}, sc)
	})

	t.Run("zero scale falls back to one", func(t *testing.T) {
		g := PanelGeometry{ContentSize: Vec2{10, 10}, WindowSize: Vec2{10, 10}, DisplaySize: Vec2{10, 10}}
		assert.Equal(t, float32(1), g.Input().PixelsPerPoint)
	})
}

type nopDevice struct{}

func (nopDevice) Begin(gpu.Target) func()            { return func() {} }
func (nopDevice) SetViewport(viewport.Rect)          {}
func (nopDevice) Scissor(viewport.Rect)              {}
func (nopDevice) ClearRect(viewport.Rect, gpu.Color) {}
func (nopDevice) Err() error                         { return nil }

type countingScene struct{ draws int }

func (s *countingScene) Bounds() math.AABB { return math.NewAABB(math.Splat(-1), math.Splat(1)) }

func (s *countingScene) Draw(*camera.State, []scene.DirectionalLight) error {
	s.draws++
	return nil
}

func TestCompositorPaint(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	sc := &countingScene{}
	reg := session.NewRegistry(session.Options{
		LoadScene: func(session.Device) (session.Scene, error) { return sc, nil },
		Camera:    camera.DefaultConfig(),
	})
	devices := 0
	c := NewCompositor(reg, func() (session.Device, error) {
		devices++
		return nopDevice{}, nil
	})

	target := gpu.Target{Width: 100, Height: 100}
	in := WindowInput(100, 100, 100, 100)

	got, err := c.Paint(target, in, Signals{})
	require.NoError(t, err)
	assert.Equal(t, target, got)

	_, err = c.Paint(target, in, Signals{SecondaryClick: true})
	require.NoError(t, err)

	assert.Equal(t, 1, devices)
	assert.Equal(t, 2, sc.draws)
	assert.Equal(t, 1, logs.FilterMessage("secondary click").Len())
}

func TestCompositorPaintFatal(t *testing.T) {
	reg := session.NewRegistry(session.Options{
		LoadScene: func(session.Device) (session.Scene, error) { return nil, scene.ErrNoGeometry },
	})
	c := NewCompositor(reg, func() (session.Device, error) { return nopDevice{}, nil })

	_, err := c.Paint(gpu.Target{}, WindowInput(10, 10, 10, 10), Signals{})
	assert.ErrorIs(t, err, scene.ErrNoGeometry)
}
