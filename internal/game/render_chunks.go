package game

import "github.com/go-gl/gl/v4.1-core/gl"

// EnsureTexture creates a GL texture for a chunk if it doesn't have one yet.
func (r *Renderer) EnsureTexture(c *Chunk) {
	if c.Tex != 0 {
		return
	}
	c.Tex = uploadTexture(c.Pixels, ChunkSize, ChunkSize)
	c.NeedsUpload = false
}

// UploadChunk re-uploads pixel data for a chunk whose texture already exists.
func (r *Renderer) UploadChunk(c *Chunk) {
	if c.Tex == 0 {
		r.EnsureTexture(c)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, c.Tex)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		ChunkSize, ChunkSize,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(c.Pixels),
	)
	c.NeedsUpload = false
}

// DrawChunks renders every chunk inside the camera view.
func (r *Renderer) DrawChunks(m *ChunkMap, cam Camera, fbW, fbH int, scratch []*Chunk) []*Chunk {
	scratch = m.Visible(cam.View(fbW, fbH), scratch[:0])

	r.useQuad(cam, fbW, fbH)
	for _, c := range scratch {
		if c.NeedsUpload {
			r.UploadChunk(c)
		}
		baseX, baseY := c.WorldOrigin()
		r.drawQuad(c.Tex, float64(baseX), float64(baseY), ChunkSize, ChunkSize, 0)
	}
	return scratch
}

// ReleaseChunks frees the chunk textures.
func (r *Renderer) ReleaseChunks(m *ChunkMap) {
	for _, c := range m.chunks {
		if c != nil && c.Tex != 0 {
			gl.DeleteTextures(1, &c.Tex)
			c.Tex = 0
			c.NeedsUpload = true
		}
	}
}
