// Package present copies a software-rendered frame to the window through a
// single textured quad.
package present

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	//go:embed shaders/blit.vert
	blitVert string
	//go:embed shaders/blit.frag
	blitFrag string
)

// Fullscreen quad as two triangles: x, y, u, v. Image row 0 is the top of
// the screen, so v is flipped.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,

	-1, -1, 0, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

// Presenter owns the GL objects used to show a frame. All methods must be
// called on the thread that owns the GL context.
type Presenter struct {
	shader *Shader
	vao    uint32
	vbo    uint32

	texture  uint32
	texW     int
	texH     int
	viewport [2]int
}

// New initializes GL and builds the blit pipeline.
func New() (*Presenter, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	shader, err := NewShader(blitVert, blitFrag)
	if err != nil {
		return nil, err
	}

	p := &Presenter{shader: shader}
	p.setupQuadVAO()

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	return p, nil
}

func (p *Presenter) setupQuadVAO() {
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)

	gl.BindVertexArray(0)
}

// SetViewport records the framebuffer size in pixels.
func (p *Presenter) SetViewport(width, height int) {
	p.viewport = [2]int{width, height}
}

// Present uploads img and draws it over the whole viewport.
func (p *Presenter) Present(img *image.RGBA) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w != p.texW || h != p.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		p.texW, p.texH = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if p.viewport[0] > 0 && p.viewport[1] > 0 {
		gl.Viewport(0, 0, int32(p.viewport[0]), int32(p.viewport[1]))
	}
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.shader.Use()
	p.shader.SetInt("frame", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Dispose cleans up OpenGL resources
func (p *Presenter) Dispose() {
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.shader != nil {
		p.shader.Delete()
	}
}
