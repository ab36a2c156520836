package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/chemviz/molsurf/internal/surface"
	"github.com/chemviz/molsurf/pkg/math"
)

// atomTexWidth is the width of the atom data texture; atom i lives at
// texel (i % atomTexWidth, i / atomTexWidth).
const atomTexWidth = 256

const vertexShaderSrc = `#version 410
in vec2 aPos;
void main() {
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

// densityShaderSrc evaluates the same Gaussian density blend as the CPU
// strategy. gl_FragCoord lands on pixel centers, so origin + coord*step is
// exactly the voxel center. The loop bound mirrors the strategy's atom cap.
const densityShaderSrc = `#version 410
uniform sampler2D uAtoms;
uniform int uAtomCount;
uniform vec2 uOriginXY;
uniform float uStep;
uniform float uSliceZ;
out vec4 fragColor;
void main() {
	vec3 p = vec3(uOriginXY + gl_FragCoord.xy * uStep, uSliceZ);
	float density = 0.0;
	for (int i = 0; i < 16384; i++) {
		if (i >= uAtomCount) {
			break;
		}
		vec4 atom = texelFetch(uAtoms, ivec2(i % 256, i / 256), 0);
		float q = distance(p, atom.xyz) / atom.w;
		density += exp(-2.0 * (q * q - 1.0));
	}
	fragColor = vec4(0.5 - density, 0.0, 0.0, 1.0);
}
`

// ownerShaderSrc finds the atom with the strongest density contribution per
// voxel and encodes its index across two 8-bit channels (low byte in R,
// high byte in G), addressing up to 65536 atoms.
const ownerShaderSrc = `#version 410
uniform sampler2D uAtoms;
uniform int uAtomCount;
uniform vec2 uOriginXY;
uniform float uStep;
uniform float uSliceZ;
out vec4 fragColor;
void main() {
	vec3 p = vec3(uOriginXY + gl_FragCoord.xy * uStep, uSliceZ);
	float best = -1.0;
	int owner = 0;
	for (int i = 0; i < 16384; i++) {
		if (i >= uAtomCount) {
			break;
		}
		vec4 atom = texelFetch(uAtoms, ivec2(i % 256, i / 256), 0);
		float q = distance(p, atom.xyz) / atom.w;
		float term = exp(-2.0 * (q * q - 1.0));
		if (term > best) {
			best = term;
			owner = i;
		}
	}
	fragColor = vec4(float(owner % 256) / 255.0, float(owner / 256) / 255.0, 0.0, 1.0);
}
`

// Computer is the GPU field strategy. It renders the density and ownership
// of each z-slice into offscreen targets and reads them back. All GL
// resources are created per call and released before ComputeField returns,
// success or failure.
type Computer struct {
	ctx *Context
}

// NewComputer wraps an initialized Context.
func NewComputer(ctx *Context) *Computer {
	return &Computer{ctx: ctx}
}

// Name implements surface.FieldComputer.
func (c *Computer) Name() string { return "gpu" }

// ComputeField implements surface.FieldComputer.
func (c *Computer) ComputeField(positions []math.Vec3, radii []float32, b surface.Bounds, step float32) (*surface.ScalarField, error) {
	if err := c.ctx.MakeCurrent(); err != nil {
		return nil, err
	}

	w, h, d := surface.FieldDims(b, step)
	field := surface.NewField(w, h, d, step, b.Min)

	res := &resources{}
	defer res.release()

	if err := res.setup(positions, radii, int32(w), int32(h)); err != nil {
		return nil, err
	}

	slice := make([]float32, w*h)
	owners := make([]int32, w*h)

	for z := 0; z < d; z++ {
		sliceZ := b.Min.Z + (float32(z)+0.5)*step

		res.drawSlice(res.densityProgram, res.valueTarget, positions, b, step, sliceZ)
		res.valueTarget.readFloats(slice)

		res.drawSlice(res.ownerProgram, res.ownerTarget, positions, b, step, sliceZ)
		res.ownerTarget.readOwners(owners)

		copy(field.Values[z*w*h:(z+1)*w*h], slice)
		copy(field.Owner[z*w*h:(z+1)*w*h], owners)
	}

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return nil, fmt.Errorf("GL error during field readback: 0x%x", glErr)
	}

	return field, nil
}

// resources tracks every GL object one ComputeField call creates.
type resources struct {
	atomTexture    uint32
	valueTarget    *renderTarget
	ownerTarget    *renderTarget
	densityProgram uint32
	ownerProgram   uint32
	vao            uint32
	vbo            uint32
}

func (r *resources) setup(positions []math.Vec3, radii []float32, w, h int32) error {
	var err error

	if r.densityProgram, err = compileProgram(vertexShaderSrc, densityShaderSrc); err != nil {
		return fmt.Errorf("density program: %w", err)
	}
	if r.ownerProgram, err = compileProgram(vertexShaderSrc, ownerShaderSrc); err != nil {
		return fmt.Errorf("owner program: %w", err)
	}

	if r.valueTarget, err = newRenderTarget(w, h, true); err != nil {
		return fmt.Errorf("value target: %w", err)
	}
	if r.ownerTarget, err = newRenderTarget(w, h, false); err != nil {
		return fmt.Errorf("owner target: %w", err)
	}

	r.atomTexture = uploadAtomTexture(positions, radii)

	quad := []float32{-1, -1, 1, -1, -1, 1, 1, -1, 1, 1, -1, 1}
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)

	return nil
}

// drawSlice renders one z-slice with the given program into target.
func (r *resources) drawSlice(program uint32, target *renderTarget, positions []math.Vec3, b surface.Bounds, step, sliceZ float32) {
	target.bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atomTexture)
	gl.Uniform1i(uniform(program, "uAtoms"), 0)
	gl.Uniform1i(uniform(program, "uAtomCount"), int32(len(positions)))
	gl.Uniform2f(uniform(program, "uOriginXY"), b.Min.X, b.Min.Y)
	gl.Uniform1f(uniform(program, "uStep"), step)
	gl.Uniform1f(uniform(program, "uSliceZ"), sliceZ)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// uploadAtomTexture packs positions and radii into an RGBA32F texture,
// xyz in rgb and the radius in alpha.
func uploadAtomTexture(positions []math.Vec3, radii []float32) uint32 {
	rows := (len(positions) + atomTexWidth - 1) / atomTexWidth
	if rows < 1 {
		rows = 1
	}
	data := make([]float32, atomTexWidth*rows*4)
	for i, p := range positions {
		data[i*4] = p.X
		data[i*4+1] = p.Y
		data[i*4+2] = p.Z
		data[i*4+3] = radii[i]
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, atomTexWidth, int32(rows), 0, gl.RGBA, gl.FLOAT, gl.Ptr(data))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return tex
}

func (r *resources) release() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.atomTexture != 0 {
		gl.DeleteTextures(1, &r.atomTexture)
	}
	if r.valueTarget != nil {
		r.valueTarget.destroy()
	}
	if r.ownerTarget != nil {
		r.ownerTarget.destroy()
	}
	if r.densityProgram != 0 {
		gl.DeleteProgram(r.densityProgram)
	}
	if r.ownerProgram != 0 {
		gl.DeleteProgram(r.ownerProgram)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}
