// Package model keeps a loaded scene resident on the GPU and draws it.
package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/goonie-buddy/internal/engine/camera"
	"github.com/Faultbox/goonie-buddy/internal/engine/model/shaders"
	"github.com/Faultbox/goonie-buddy/internal/engine/renderer"
	"github.com/Faultbox/goonie-buddy/internal/engine/scene"
	"github.com/Faultbox/goonie-buddy/internal/engine/shader"
	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

const maxLights = 4

// Options controls how a Description is drawn.
type Options struct {
	CullBackFaces bool
	ShowBounds    bool

	// KeyGuard keeps fragments off ColorKey, the color the host window
	// treats as transparent.
	KeyGuard bool
	ColorKey [3]float32

	Ambient [3]float32
}

// Handle is a model resident on the GPU. All methods must run on the thread
// that owns the GL context it was uploaded with.
type Handle struct {
	name     string
	parts    []gpuPart
	textures []uint32 // per material, 0 when untextured
	colors   [][4]float32
	program  *shader.Program
	overlay  *boundsOverlay
	opts     Options
}

type gpuPart struct {
	vao, vbo, ebo uint32
	count         int32
	material      int
	bounds        math.AABB
}

// Upload copies desc into GPU buffers and compiles the model shader.
func Upload(desc *scene.Description, opts Options) (*Handle, error) {
	if len(desc.Parts) == 0 {
		return nil, scene.ErrNoGeometry
	}

	program, err := shader.Compile(shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	h := &Handle{
		name:    desc.Name,
		program: program,
		opts:    opts,
	}

	h.textures = make([]uint32, len(desc.Materials))
	h.colors = make([][4]float32, len(desc.Materials))
	for i, m := range desc.Materials {
		h.colors[i] = m.BaseColor
		if m.BaseImage != nil {
			h.textures[i] = uploadTexture(m.BaseImage)
		}
	}

	for i := range desc.Parts {
		h.parts = append(h.parts, uploadPart(&desc.Parts[i]))
	}

	if opts.ShowBounds {
		if h.overlay, err = newBoundsOverlay(); err != nil {
			h.Destroy()
			return nil, err
		}
	}

	if err := renderer.DrainErrors(); err != nil {
		h.Destroy()
		return nil, fmt.Errorf("upload %s: %w", desc.Name, err)
	}

	logger.Debug("scene uploaded",
		zap.String("model", desc.Name),
		zap.Int("parts", len(h.parts)),
		zap.Int("textures", len(h.textures)),
	)
	return h, nil
}

func uploadPart(p *scene.Part) gpuPart {
	gp := gpuPart{
		count:    int32(len(p.Indices)),
		material: p.Material,
		bounds:   p.Bounds,
	}

	gl.GenVertexArrays(1, &gp.vao)
	gl.BindVertexArray(gp.vao)

	stride := int32(unsafe.Sizeof(scene.Vertex{}))
	gl.GenBuffers(1, &gp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gp.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Vertices)*int(stride), unsafe.Pointer(&p.Vertices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	if gp.count > 0 {
		gl.GenBuffers(1, &gp.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gp.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, unsafe.Pointer(&p.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return gp
}

// Bounds returns the union of every part's box. It is recomputed on each
// call so callers always fit against current geometry.
func (h *Handle) Bounds() math.AABB {
	box := math.EmptyAABB()
	for i := range h.parts {
		box = box.Union(h.parts[i].bounds)
	}
	return box
}

// Draw renders every part with cam and lights into the bound framebuffer,
// inside whatever viewport and scissor the caller set. It returns the first
// pending GL error.
func (h *Handle) Draw(cam *camera.State, lights []scene.DirectionalLight) error {
	viewProj := cam.ViewProjection()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	if h.opts.CullBackFaces {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	p := h.program
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3f(p.Uniform("uAmbient"), h.opts.Ambient[0], h.opts.Ambient[1], h.opts.Ambient[2])
	h.setLights(lights)
	gl.Uniform1i(p.Uniform("uKeyGuard"), boolToInt(h.opts.KeyGuard))
	gl.Uniform3f(p.Uniform("uColorKey"), h.opts.ColorKey[0], h.opts.ColorKey[1], h.opts.ColorKey[2])
	gl.Uniform1i(p.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for i := range h.parts {
		part := &h.parts[i]
		if part.count == 0 {
			continue
		}
		color, tex := h.material(part.material)
		gl.Uniform4f(p.Uniform("uBaseColor"), color[0], color[1], color[2], color[3])
		gl.Uniform1i(p.Uniform("uHasTexture"), boolToInt(tex != 0))
		gl.BindTexture(gl.TEXTURE_2D, tex)

		gl.BindVertexArray(part.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, part.count, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if h.overlay != nil {
		h.overlay.draw(viewProj, h.Bounds())
	}
	gl.UseProgram(0)

	return renderer.DrainErrors()
}

func (h *Handle) setLights(lights []scene.DirectionalLight) {
	n := min(len(lights), maxLights)
	var dirs, colors [maxLights * 3]float32
	for i := 0; i < n; i++ {
		l := lights[i]
		dirs[i*3], dirs[i*3+1], dirs[i*3+2] = l.Direction.X, l.Direction.Y, l.Direction.Z
		for c := 0; c < 3; c++ {
			colors[i*3+c] = l.Color[c] * l.Intensity
		}
	}
	gl.Uniform1i(h.program.Uniform("uLightCount"), int32(n))
	gl.Uniform3fv(h.program.Uniform("uLightDirs"), maxLights, &dirs[0])
	gl.Uniform3fv(h.program.Uniform("uLightColors"), maxLights, &colors[0])
}

func (h *Handle) material(idx int) ([4]float32, uint32) {
	if idx < 0 || idx >= len(h.colors) {
		return scene.DefaultMaterial.BaseColor, 0
	}
	return h.colors[idx], h.textures[idx]
}

// Destroy frees every GPU object the handle owns.
func (h *Handle) Destroy() {
	for i := range h.parts {
		p := &h.parts[i]
		gl.DeleteVertexArrays(1, &p.vao)
		gl.DeleteBuffers(1, &p.vbo)
		if p.ebo != 0 {
			gl.DeleteBuffers(1, &p.ebo)
		}
	}
	h.parts = nil
	for _, t := range h.textures {
		deleteTexture(t)
	}
	h.textures = nil
	if h.overlay != nil {
		h.overlay.destroy()
		h.overlay = nil
	}
	if h.program != nil {
		h.program.Delete()
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
