// Package gpu implements the GPU field computation strategy: atom data goes
// into a float texture, a fragment shader evaluates the density per z-slice
// into an offscreen target, and the result is read back into the scalar
// field. Everything is driven through a hidden SDL2 window's OpenGL context.
package gpu

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/chemviz/molsurf/internal/surface"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Context owns a hidden window and its OpenGL context, created once and
// shared by the capability probe and the field computer.
type Context struct {
	window    *sdl.Window
	glContext sdl.GLContext
}

// NewContext initializes SDL2 and creates a hidden window with an OpenGL
// 4.1 core context. Callers must Destroy the context when done.
func NewContext() (*Context, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	window, err := sdl.CreateWindow(
		"molsurf offscreen",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		16,
		16,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(glContext)
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	return &Context{window: window, glContext: glContext}, nil
}

// Probe reports the capabilities the strategy selection needs. Float
// textures are core in the GL versions we create, so a live context
// implies support.
func (c *Context) Probe() surface.Capabilities {
	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	return surface.Capabilities{
		FloatTextures:  true,
		MaxTextureSize: int(maxTex),
	}
}

// MakeCurrent binds the GL context to the calling thread.
func (c *Context) MakeCurrent() error {
	if err := c.window.GLMakeCurrent(c.glContext); err != nil {
		return fmt.Errorf("SDL_GL_MakeCurrent failed: %w", err)
	}
	return nil
}

// Destroy releases the GL context, the window, and SDL itself.
func (c *Context) Destroy() {
	if c.glContext != nil {
		sdl.GLDeleteContext(c.glContext)
		c.glContext = nil
	}
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	sdl.Quit()
}
