// Package screen presents the CHIP-8 framebuffer through OpenGL.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/display"
)

// Default colors for unlit and lit pixels, as RGBA.
var (
	DefaultBackground = [4]float32{0.05, 0.05, 0.05, 1}
	DefaultForeground = [4]float32{0.85, 0.85, 0.85, 1}
)

// Device defines all internal doodads for the screen.
type Device struct {
	pixels      [display.Width * display.Height]byte // 8bpp copy of the framebuffer.
	background  [4]float32                           // Color of unlit pixels.
	foreground  [4]float32                           // Color of lit pixels.
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	dirty       bool // pixels changed since the last upload?
	colorsDirty bool // colors changed since the last upload?
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{
		background: DefaultBackground,
		foreground: DefaultForeground,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0002)
}

// SetColors sets the colors used for unlit and lit pixels.
func (d *Device) SetColors(background, foreground [4]float32) {
	d.background = background
	d.foreground = foreground
	d.colorsDirty = true
}

// Startup initializes device resources. It requires a current GL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()

	d.dirty = true
	d.colorsDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update copies the given framebuffer contents for the next Draw.
func (d *Device) Update(s *display.Snapshot) {
	s.Gray(d.pixels[:])
	d.dirty = true
}

// Draw renders the last framebuffer contents passed to Update.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.background[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.foreground[0])
		d.colorsDirty = false
	}

	if d.dirty {
		uploadTexture(d.tex, gl.RED, display.Width, display.Height, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])
		d.dirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
