// Package opengl draws uiframework frames with OpenGL 4.1 core and runs them
// in a GLFW window.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	gui "github.com/go-theft-auto/uiframework"
)

const shaderVert = `#version 410 core
layout (location = 0) in vec2 inPos;
layout (location = 1) in vec2 inUV;
layout (location = 2) in vec4 inColor;

uniform mat4 uProj;

out vec2 fragUV;
out vec4 fragColor;

void main() {
    fragUV = inUV;
    fragColor = inColor;
    gl_Position = uProj * vec4(inPos, 0.0, 1.0);
}
` + "\x00"

// The font atlas holds coverage in its red channel.
const shaderFrag = `#version 410 core
in vec2 fragUV;
in vec4 fragColor;

uniform sampler2D uAtlas;
uniform bool uTextured;

out vec4 outColor;

void main() {
    float coverage = uTextured ? texture(uAtlas, fragUV).r : 1.0;
    outColor = vec4(fragColor.rgb, fragColor.a * coverage);
}
` + "\x00"

// Renderer uploads a DrawList per layer and replays its commands.
type Renderer struct {
	program  uint32
	vao      uint32
	buffers  [2]uint32 // vertices, indices
	atlasTex uint32

	uProj, uAtlas, uTextured int32

	width, height int
}

// NewRenderer builds the shader program, vertex layout and font texture.
// A GL context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	program, err := linkProgram(shaderVert, shaderFrag)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	r := &Renderer{program: program, width: width, height: height}
	r.uProj = gl.GetUniformLocation(program, gl.Str("uProj\x00"))
	r.uAtlas = gl.GetUniformLocation(program, gl.Str("uAtlas\x00"))
	r.uTextured = gl.GetUniformLocation(program, gl.Str("uTextured\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(2, &r.buffers[0])
	gl.BindBuffer(gl.ARRAY_BUFFER, r.buffers[0])
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.buffers[1])

	var v gui.Vertex
	stride := int32(unsafe.Sizeof(v))
	attribs := []struct {
		size       int32
		xtype      uint32
		normalized bool
		offset     uintptr
	}{
		{2, gl.FLOAT, false, unsafe.Offsetof(v.Pos)},
		{2, gl.FLOAT, false, unsafe.Offsetof(v.TexCoord)},
		{4, gl.UNSIGNED_BYTE, true, unsafe.Offsetof(v.Color)},
	}
	for i, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, a.xtype, a.normalized, stride, a.offset)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)

	r.atlasTex = uploadAtlas()
	return r, nil
}

// FontTextureID returns the texture text commands bind.
func (r *Renderer) FontTextureID() uint32 { return r.atlasTex }

// Resize sets the framebuffer size the projection maps to.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// Render draws dl over whatever the framebuffer holds, leaving the caller's
// GL state as it found it.
func (r *Renderer) Render(dl *gui.DrawList) error {
	if dl == nil || len(dl.VtxBuffer) == 0 {
		return nil
	}
	dl.Finalize()

	saved := saveState()
	defer saved.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	proj := ortho(float32(r.width), float32(r.height))
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.uAtlas, 0)

	gl.BindVertexArray(r.vao)
	defer gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.buffers[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(gui.Vertex{})), gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.buffers[1])
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2, gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

	for _, cmd := range dl.CmdBuffer {
		x, y, w, h, ok := scissor(cmd.ClipRect, r.height)
		if !ok || cmd.ElemCount == 0 {
			continue
		}
		gl.Scissor(x, y, w, h)
		textured := int32(0)
		if cmd.TextureID != 0 {
			gl.BindTexture(gl.TEXTURE_2D, cmd.TextureID)
			textured = 1
		}
		gl.Uniform1i(r.uTextured, textured)
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount), gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2, int32(cmd.VertexOffset))
	}
	return nil
}

// Delete frees the renderer's GL objects.
func (r *Renderer) Delete() {
	gl.DeleteTextures(1, &r.atlasTex)
	gl.DeleteBuffers(2, &r.buffers[0])
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
	*r = Renderer{}
}

// scissor converts a top-left origin clip rectangle to a GL scissor box,
// reporting false when nothing of it is on screen.
func scissor(clip [4]float32, fbHeight int) (x, y, w, h int32, ok bool) {
	x = int32(clip[0])
	y = int32(float32(fbHeight) - clip[3])
	w = int32(clip[2] - clip[0])
	h = int32(clip[3] - clip[1])
	if x < 0 {
		w, x = w+x, 0
	}
	if y < 0 {
		h, y = h+y, 0
	}
	return x, y, w, h, w > 0 && h > 0
}

// glState is the slice of GL state Render touches.
type glState struct {
	program            int32
	blendSrc, blendDst int32
	scissorBox         [4]int32
	caps               map[uint32]bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.caps = make(map[uint32]bool, 4)
	for _, c := range []uint32{gl.BLEND, gl.CULL_FACE, gl.DEPTH_TEST, gl.SCISSOR_TEST} {
		s.caps[c] = gl.IsEnabled(c)
	}
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	for c, on := range s.caps {
		if on {
			gl.Enable(c)
		} else {
			gl.Disable(c)
		}
	}
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

// uploadAtlas stores the built-in font as a single channel texture.
func uploadAtlas() uint32 {
	img := gui.BuildFontAtlas()
	size := img.Bounds().Size()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	for _, p := range [...]uint32{gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER} {
		gl.TexParameteri(gl.TEXTURE_2D, p, gl.NEAREST)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func compileShader(kind uint32, src string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		msg := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, n, nil, &msg[0])
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile shader: %s", gl.GoStr(&msg[0]))
	}
	return sh, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		msg := make([]byte, n+1)
		gl.GetProgramInfoLog(prog, n, nil, &msg[0])
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link program: %s", gl.GoStr(&msg[0]))
	}
	return prog, nil
}

// ortho maps pixels with a top-left origin to clip space.
func ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}
