// Package ui hosts the 3D canvas inside a Dear ImGui panel for embedded
// mode.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/internal/shell"
)

// PaintRequest is recorded while the panel is built and handed to the paint
// callback once ImGui has rendered.
type PaintRequest struct {
	Geometry shell.PanelGeometry
	Signals  shell.Signals
}

// PaintFunc draws the canvas. Returning an error stops the loop.
type PaintFunc func(req PaintRequest) error

// Host is an SDL window driven by the cimgui-go backend with one
// undecorated, full-viewport panel whose content region is the 3D canvas.
type Host struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	pending *PaintRequest
	paint   PaintFunc
	err     error
	log     *zap.Logger
}

// NewHost creates the window and GL context. The background is transparent
// so only the canvas draws opaque pixels.
func NewHost(title string, width, height int) (*Host, error) {
	h := &Host{log: logger.Named("ui")}

	var err error
	h.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	h.backend.SetBgColor(imgui.NewVec4(0, 0, 0, 0))
	h.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	h.backend.SetAfterRenderHook(h.afterRender)
	h.log.Info("embedded host created", zap.Int("width", width), zap.Int("height", height))
	return h, nil
}

// Run drives frames until the window closes or paint fails.
func (h *Host) Run(paint PaintFunc) error {
	h.paint = paint
	h.backend.Run(h.buildFrame)
	return h.err
}

func (h *Host) buildFrame() {
	vp := imgui.MainViewport()
	imgui.SetNextWindowPos(vp.WorkPos())
	imgui.SetNextWindowSize(vp.WorkSize())

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoBackground | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##BuddyCanvas", nil, flags) {
		req := &PaintRequest{Geometry: panelGeometry()}
		req.Signals.SecondaryClick = imgui.IsWindowHovered() && imgui.IsMouseClickedBool(imgui.MouseButtonRight)
		req.Signals.Quit = imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape))
		req.Signals.Snapshot = imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12))
		h.pending = req
	}
	imgui.End()
	imgui.PopStyleVar()
}

// panelGeometry reads the current window's canvas region.
func panelGeometry() shell.PanelGeometry {
	io := imgui.CurrentIO()
	pos := imgui.CursorScreenPos()
	avail := imgui.ContentRegionAvail()
	winPos := imgui.WindowPos()
	winSize := imgui.WindowSize()
	display := io.DisplaySize()

	return shell.PanelGeometry{
		ContentPos:       shell.Vec2{X: pos.X, Y: pos.Y},
		ContentSize:      shell.Vec2{X: avail.X, Y: avail.Y},
		WindowPos:        shell.Vec2{X: winPos.X, Y: winPos.Y},
		WindowSize:       shell.Vec2{X: winSize.X, Y: winSize.Y},
		DisplaySize:      shell.Vec2{X: display.X, Y: display.Y},
		FramebufferScale: io.DisplayFramebufferScale().Y,
	}
}

func (h *Host) afterRender() {
	req := h.pending
	h.pending = nil
	if req == nil || h.paint == nil || h.err != nil {
		return
	}
	if req.Signals.Quit {
		h.backend.SetShouldClose(true)
		return
	}
	if err := h.paint(*req); err != nil {
		h.err = err
		h.backend.SetShouldClose(true)
	}
}
