// Package window handles the SDL2 host window and its OpenGL context.
package window

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/logger"
)

// ErrColorKeyUnsupported is returned where the platform has no color-key
// window transparency.
var ErrColorKeyUnsupported = errors.New("window: color-key transparency not supported on this platform")

// Config holds window configuration.
type Config struct {
	Title       string
	Width       int
	Height      int
	VSync       bool
	Borderless  bool
	AlwaysOnTop bool
}

// Window wraps an SDL2 window and its OpenGL 4.1 core context. It must be
// created and used on one locked OS thread.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// New creates a window with a current OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 core is the newest macOS offers.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if cfg.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("borderless", cfg.Borderless),
		zap.Bool("always_on_top", cfg.AlwaysOnTop),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// SetColorKey makes every pixel of colorref (0x00BBGGRR) transparent to the
// desktop.
func (w *Window) SetColorKey(colorref uint32) error {
	info, err := w.sdlWindow.GetWMInfo()
	if err != nil {
		return fmt.Errorf("SDL_GetWindowWMInfo failed: %w", err)
	}
	if err := setColorKey(info, colorref); err != nil {
		return err
	}
	w.log.Info("color key applied", zap.String("colorref", fmt.Sprintf("0x%06X", colorref)))
	return nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the window size in logical units.
func (w *Window) Size() (width, height int32) {
	return w.sdlWindow.GetSize()
}

// DrawableSize returns the size of the default framebuffer in pixels.
func (w *Window) DrawableSize() (width, height int32) {
	return w.sdlWindow.GLGetDrawableSize()
}
