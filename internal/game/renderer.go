package game

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer presents a CPU-composed RGBA screen through one textured quad.
type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32
	tex  uint32
	uTex int32

	texW, texH int
}

func NewRenderer(w, h int) (*Renderer, error) {
	prog, err := linkProgram(screenVertSrc, screenFragSrc)
	if err != nil {
		return nil, fmt.Errorf("screen program: %w", err)
	}
	r := &Renderer{prog: prog, texW: w, texH: h}

	// Unit quad (6 vertices, 2 triangles).
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(prog)
	r.uTex = gl.GetUniformLocation(prog, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)

	gl.GenTextures(1, &r.tex)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil,
	)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Present uploads screen and stretches it over the framebuffer.
func (r *Renderer) Present(screen *image.RGBA, fbW, fbH int) error {
	b := screen.Bounds()
	if b.Dx() != r.texW || b.Dy() != r.texH || screen.Stride != 4*r.texW {
		return fmt.Errorf("present: screen %v does not match texture %dx%d", b, r.texW, r.texH)
	}
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(r.texW), int32(r.texH),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(screen.Pix),
	)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	return nil
}
