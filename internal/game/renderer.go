package game

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Quad program: chunks, car, overlays.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32

	uQuadOrigin int32
	uQuadSize   int32
	uRotation   int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTex        int32
	uTint       int32

	// Point sprite program (skid marks).
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	carTex   uint32
	whiteTex uint32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}

	r := &Renderer{
		quadProg:   quadProg,
		spriteProg: spriteProg,
	}

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var qVAO, qVBO uint32
	gl.GenVertexArrays(1, &qVAO)
	gl.GenBuffers(1, &qVBO)
	gl.BindVertexArray(qVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, qVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = qVAO
	r.quadVBO = qVBO

	gl.UseProgram(quadProg)
	r.uQuadOrigin = gl.GetUniformLocation(quadProg, gl.Str("uQuadOrigin\x00"))
	r.uQuadSize = gl.GetUniformLocation(quadProg, gl.Str("uQuadSize\x00"))
	r.uRotation = gl.GetUniformLocation(quadProg, gl.Str("uRotation\x00"))
	r.uCamera = gl.GetUniformLocation(quadProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(quadProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(quadProg, gl.Str("uTex\x00"))
	r.uTint = gl.GetUniformLocation(quadProg, gl.Str("uTint\x00"))
	gl.Uniform1i(r.uTex, 0)
	gl.Uniform4f(r.uTint, 1, 1, 1, 1)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))

	r.whiteTex = uploadTexture([]uint8{255, 255, 255, 255}, 1, 1)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.spriteProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.fontTex, r.carTex, r.whiteTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// uploadTexture creates a nearest-filtered RGBA8 texture from tightly packed pixels.
func uploadTexture(pix []uint8, w, h int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int, clear RGB) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := clear.floats()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.useQuad(cam, fbW, fbH)
}

// useQuad activates the quad program with cam's transform.
func (r *Renderer) useQuad(cam Camera, fbW, fbH int) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.Uniform1f(r.uRotation, 0)
	gl.Uniform4f(r.uTint, 1, 1, 1, 1)
	gl.ActiveTexture(gl.TEXTURE0)
}

// drawQuad draws tex over the map rectangle at (x, y) sized w x h, rotated
// by rot radians about its centre. The quad program must be active.
func (r *Renderer) drawQuad(tex uint32, x, y, w, h, rot float64) {
	gl.Uniform2f(r.uQuadOrigin, float32(x), float32(y))
	gl.Uniform2f(r.uQuadSize, float32(w), float32(h))
	gl.Uniform1f(r.uRotation, float32(rot))
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// DrawRect fills a map-space rectangle with a translucent colour.
func (r *Renderer) DrawRect(rect sim.Rect, col RGB, alpha float64, cam Camera, fbW, fbH int) {
	if alpha <= 0 {
		return
	}
	r.useQuad(cam, fbW, fbH)
	cr, cg, cb := col.floats()
	gl.Uniform4f(r.uTint, cr, cg, cb, float32(alpha))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.drawQuad(r.whiteTex, rect.X, rect.Y, rect.W, rect.H, 0)
	gl.Disable(gl.BLEND)
	gl.Uniform4f(r.uTint, 1, 1, 1, 1)
}

// DrawCar draws the car centred on (x, y) in map space. The texture is the
// reference (nose up) image; it is rotated by the accumulated heading every
// frame rather than re-rotating a previously rotated image.
func (r *Renderer) DrawCar(v sim.Vehicle, x, y float64, cam Camera, fbW, fbH int) {
	if r.carTex == 0 {
		return
	}
	r.useQuad(cam, fbW, fbH)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	// Heading is counter-clockwise on screen; the shader rotates clockwise for
	// positive angles because y grows downward.
	rot := -v.Orientation() * math.Pi / 180
	r.drawQuad(r.carTex, x-v.Width/2, y-v.Length/2, v.Width, v.Length, rot)
	gl.Disable(gl.BLEND)
}
