// Package renderer is the OpenGL 4.1 backend a render session draws with.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/gpu"
	"github.com/Faultbox/goonie-buddy/internal/engine/viewport"
	"github.com/Faultbox/goonie-buddy/internal/logger"
)

// Context is a GL 4.1 core context bound to the current OS thread. Every
// method must be called on that thread.
type Context struct {
	version  string
	renderer string
}

// NewContext loads GL function pointers for the context current on this
// thread. The host window or GUI toolkit must have made it current.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", gpu.ErrContext, err)
	}

	c := &Context{
		version:  gl.GoStr(gl.GetString(gl.VERSION)),
		renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	if c.version == "" {
		return nil, fmt.Errorf("%w: GL_VERSION is empty", gpu.ErrContext)
	}
	if !strings.HasPrefix(c.version, "4.") {
		logger.Warn("OpenGL version below 4.1 core, rendering may fail",
			zap.String("version", c.version),
		)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", c.version),
		zap.String("renderer", c.renderer),
	)
	return c, nil
}

// Begin binds t and snapshots the state the session touches. The returned
// function restores it, so the host toolkit can keep compositing after the
// session has drawn.
func (c *Context) Begin(t gpu.Target) (restore func()) {
	var prevFBO int32
	var prevViewport, prevScissorBox [4]int32
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &prevScissorBox[0])
	scissor := gl.IsEnabled(gl.SCISSOR_TEST)
	depth := gl.IsEnabled(gl.DEPTH_TEST)
	cull := gl.IsEnabled(gl.CULL_FACE)
	blend := gl.IsEnabled(gl.BLEND)

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.FBO)

	return func() {
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
		gl.Scissor(prevScissorBox[0], prevScissorBox[1], prevScissorBox[2], prevScissorBox[3])
		setEnabled(gl.SCISSOR_TEST, scissor)
		setEnabled(gl.DEPTH_TEST, depth)
		setEnabled(gl.CULL_FACE, cull)
		setEnabled(gl.BLEND, blend)
	}
}

// SetViewport sets the GL viewport.
func (c *Context) SetViewport(r viewport.Rect) {
	gl.Viewport(r.X, r.Y, r.Width, r.Height)
}

// Scissor restricts all following clears and draws to r.
func (c *Context) Scissor(r viewport.Rect) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(r.X, r.Y, r.Width, r.Height)
}

// ClearRect clears color and depth inside r only and leaves the scissor
// test enabled on r.
func (c *Context) ClearRect(r viewport.Rect, col gpu.Color) {
	c.Scissor(r)
	gl.ColorMask(true, true, true, true)
	gl.DepthMask(true)
	gl.ClearColor(col.R, col.G, col.B, col.A)
	gl.ClearDepth(1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Err drains the GL error queue and returns the first error, if any.
func (c *Context) Err() error {
	return DrainErrors()
}

// DrainErrors reads every pending glGetError code.
func DrainErrors() error {
	var codes []string
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, fmt.Sprintf("0x%04x", code))
		if len(codes) > 16 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("gl error %s", strings.Join(codes, ","))
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
