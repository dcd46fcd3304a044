package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/goonie-buddy/internal/engine/debug"
	"github.com/Faultbox/goonie-buddy/internal/engine/model/shaders"
	"github.com/Faultbox/goonie-buddy/internal/engine/shader"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// boundsColor is the overlay line color, kept off the color key.
var boundsColor = [3]float32{0.2, 1, 0.4}

// boundsOverlay draws the fitted box as a line wireframe.
type boundsOverlay struct {
	program  *shader.Program
	vao, vbo uint32
}

func newBoundsOverlay() (*boundsOverlay, error) {
	program, err := shader.Compile(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bounds shader: %w", err)
	}
	o := &boundsOverlay{program: program}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BoxWireframeVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return o, nil
}

func (o *boundsOverlay) draw(viewProj math.Mat4, box math.AABB) {
	verts := debug.BoxWireframe(box, 0)
	if len(verts) == 0 {
		return
	}

	o.program.Use()
	gl.UniformMatrix4fv(o.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3f(o.program.Uniform("uColor"), boundsColor[0], boundsColor[1], boundsColor[2])

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindVertexArray(0)
}

func (o *boundsOverlay) destroy() {
	gl.DeleteVertexArrays(1, &o.vao)
	gl.DeleteBuffers(1, &o.vbo)
	o.program.Delete()
}
