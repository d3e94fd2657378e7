// Package display presents a rendered RGB pixel buffer in a window,
// standing in for the external image-viewer collaborator §1/§6 describe.
// It is a thin textured-quad blit built the way the example pack's
// go-gl/glfw renderers structure a window: GLFW owns the window and event
// loop, a single shader program and VAO drive a full-screen quad, and each
// frame re-uploads the buffer as a texture.
package display

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	quadVertexShader = `
#version 410
layout (location = 0) in vec2 vertPos;
layout (location = 1) in vec2 vertUV;
out vec2 fragUV;
void main() {
	fragUV = vertUV;
	gl_Position = vec4(vertPos, 0.0, 1.0);
}
` + "\x00"

	quadFragmentShader = `
#version 410
in vec2 fragUV;
out vec4 color;
uniform sampler2D img;
void main() {
	color = texture(img, fragUV);
}
` + "\x00"
)

// Surface is a GLFW window presenting one RGB image buffer per frame.
type Surface struct {
	window  *glfw.Window
	program uint32
	vao     uint32
	texture uint32
	width   int
	height  int
}

// Open creates a window of the given size and compiles the blit shader.
// Callers must run Open/Close from the same OS thread (glfw requirement);
// main is expected to call runtime.LockOSThread beforehand.
func Open(width, height int, title string) (*Surface, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("display: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("display: create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("display: init gl: %w", err)
	}

	program, err := newProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}

	vao := newQuadVAO()
	texture := newBlitTexture()

	return &Surface{
		window:  window,
		program: program,
		vao:     vao,
		texture: texture,
		width:   width,
		height:  height,
	}, nil
}

// ShouldClose reports whether the user has asked to close the window.
func (s *Surface) ShouldClose() bool {
	return s.window.ShouldClose()
}

// Window exposes the underlying glfw window so callers can register their
// own input callbacks (the launcher's button/field hit-testing does this).
func (s *Surface) Window() *glfw.Window {
	return s.window
}

// Present uploads an img_height x img_width x 3 RGB byte buffer as a
// texture and draws it as a full-screen quad, then swaps buffers and
// polls events.
func (s *Surface) Present(pixels []byte, width, height int) {
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.UseProgram(s.program)
	gl.Uniform1i(gl.GetUniformLocation(s.program, gl.Str("img\x00")), 0)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	s.window.SwapBuffers()
	glfw.PollEvents()
}

// Close releases the window and terminates GLFW.
func (s *Surface) Close() {
	glfw.Terminate()
}

func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertex, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("display: vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("display: fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("display: link program: %s", infoLog)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("display: compile shader: %s", infoLog)
	}

	return shader, nil
}

// newQuadVAO builds the two-triangle-strip quad covering clip space, with
// UVs flipped vertically to match the render loop's top-to-bottom row
// order (row 0 is the top of the image, §4.8).
func newQuadVAO() uint32 {
	vertices := []float32{
		// pos        uv
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)

	return vao
}

func newBlitTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}
