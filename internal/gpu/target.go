package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// renderTarget is an offscreen framebuffer with a single color attachment,
// either RGBA32F (field values) or RGBA8 (ownership indices). There is no
// depth attachment; the passes draw one full-screen quad each.
type renderTarget struct {
	fbo     uint32
	texture uint32
	width   int32
	height  int32
	float   bool
}

// newRenderTarget creates a framebuffer of the given size. Set floatFmt for
// an RGBA32F attachment.
func newRenderTarget(width, height int32, floatFmt bool) (*renderTarget, error) {
	rt := &renderTarget{width: width, height: height, float: floatFmt}

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenTextures(1, &rt.texture)
	gl.BindTexture(gl.TEXTURE_2D, rt.texture)
	if floatFmt {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, width, height, 0, gl.RGBA, gl.FLOAT, nil)
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.texture, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.destroy()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return rt, nil
}

// bind makes this target the current framebuffer and sets the viewport.
func (rt *renderTarget) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.Viewport(0, 0, rt.width, rt.height)
}

// readFloats reads the R channel of every pixel into out, which must hold
// width*height values.
func (rt *renderTarget) readFloats(out []float32) {
	pixels := make([]float32, rt.width*rt.height*4)
	gl.ReadPixels(0, 0, rt.width, rt.height, gl.RGBA, gl.FLOAT, gl.Ptr(pixels))
	for i := range out {
		out[i] = pixels[i*4]
	}
}

// readOwners decodes the two-channel atom index encoding of every pixel
// into out. The low byte lives in R, the high byte in G, so up to 65536
// atoms are addressable.
func (rt *renderTarget) readOwners(out []int32) {
	pixels := make([]byte, rt.width*rt.height*4)
	gl.ReadPixels(0, 0, rt.width, rt.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	for i := range out {
		out[i] = int32(pixels[i*4]) | int32(pixels[i*4+1])<<8
	}
}

// destroy releases the framebuffer and its attachment.
func (rt *renderTarget) destroy() {
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	if rt.texture != 0 {
		gl.DeleteTextures(1, &rt.texture)
		rt.texture = 0
	}
}
