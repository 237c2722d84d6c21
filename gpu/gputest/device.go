// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides an in-memory implementation of [gpu.Device]
// for tests. It keeps the objects created through it, compiles shaders
// only as far as reflecting their uniform declarations, records state
// changes and draw calls, and can be told to fail compiles, links,
// framebuffers and texture uploads.
package gputest

import (
	"fmt"
	"image"
	"maps"
	"strings"

	"glitter.dev/glitter/gpu"
)

// OpenGL enum values used for validation, which the gpu package
// keeps unexported.
const (
	glDepthComponent = 0x1902
	glRGB            = 0x1907
	glRGBA           = 0x1908
	glSRGB           = 0x8C40
	glSRGBAlpha      = 0x8C42
	glUnsignedByte   = 0x1401
	glFloat          = 0x1406

	// FramebufferIncompleteDrawBuffer is returned for a framebuffer
	// writing color without a color attachment.
	FramebufferIncompleteDrawBuffer uint32 = 0x8CDB
)

// Kinds of device objects, as used in [Device.Deleted] and [Device.Live].
const (
	KindShader       = "shader"
	KindProgram      = "program"
	KindTexture      = "texture"
	KindBuffer       = "buffer"
	KindVertexArray  = "vertexarray"
	KindFramebuffer  = "framebuffer"
	KindRenderbuffer = "renderbuffer"
)

// Draw is a recorded draw call, with the state it was issued in.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
	Count       int
	Indexed     bool
	DepthFunc   gpu.CompareFuncs
	DepthTest   bool
	Viewport    image.Rectangle

	// Textures are the texture handles bound on each unit,
	// for any target.
	Textures map[int]uint32
}

// TexImage is the storage of one texture image.
type TexImage struct {
	InternalFormat int32
	Size           image.Point
	Format         uint32
	Type           uint32
	Data           []byte
}

// Texture is a texture object.
type Texture struct {
	Target  gpu.TextureTargets
	Images  map[gpu.TextureTargets]*TexImage
	Params  map[uint32]int32
	ParamsF map[uint32][]float32
}

// Attrib is a vertex attribute pointer.
type Attrib struct {
	Buffer  uint32
	Size    int
	Stride  int
	Offset  int
	Enabled bool
}

type shader struct {
	stage    gpu.ShaderStages
	src      string
	compiled bool
}

// Program is a program object.
type Program struct {
	Shaders  []uint32
	Attribs  map[string]uint32
	Uniforms []gpu.UniformInfo
	Linked   bool

	// Values are the uploaded uniform values by location,
	// with ints and bools converted to float.
	Values map[int32][]float32
}

type vertexArray struct {
	elements uint32
	attribs  map[uint32]*Attrib
}

type framebuffer struct {
	attachments map[gpu.Attachments]uint32
	renderbuf   map[gpu.Attachments]uint32
	color       bool
	clear       [4]float32
}

// Device is a recording, in-memory [gpu.Device].
// Handles of all kinds come from one counter, so no two objects
// ever share a handle.
type Device struct {
	// FailLink makes every link fail.
	FailLink bool

	// ForceIncomplete makes every framebuffer incomplete.
	ForceIncomplete bool

	// RejectTextures makes every texture upload fail
	// with an invalid operation error.
	RejectTextures bool

	// Calls is the log of device calls, as "Name arg arg...".
	Calls []string

	// Draws are the recorded draw calls.
	Draws []Draw

	// Deleted counts deletions by object kind.
	Deleted map[string]int

	// DoubleFrees counts deletions of handles that were not live.
	DoubleFrees int

	// state
	Program      uint32
	Unit         int
	Bound        map[int]map[gpu.TextureTargets]uint32
	ArrayBuffer  uint32
	VertexArray  uint32
	Framebuffer  uint32
	Renderbuffer uint32
	ViewportRect image.Rectangle
	Caps         map[gpu.Capabilities]bool
	DepthCompare gpu.CompareFuncs
	ClearRGBA    [4]float32

	next          uint32
	live          map[uint32]string
	shaders       map[uint32]*shader
	Programs      map[uint32]*Program
	Textures      map[uint32]*Texture
	buffers       map[uint32][]byte
	vaos          map[uint32]*vertexArray
	framebuffers  map[uint32]*framebuffer
	renderbuffers map[uint32]image.Point
	errs          []uint32
}

// NewDevice returns a new empty device, in the default GL state.
func NewDevice() *Device {
	return &Device{
		Deleted:       map[string]int{},
		Bound:         map[int]map[gpu.TextureTargets]uint32{},
		Caps:          map[gpu.Capabilities]bool{gpu.FramebufferSRGB: false},
		DepthCompare:  gpu.Less,
		live:          map[uint32]string{},
		shaders:       map[uint32]*shader{},
		Programs:      map[uint32]*Program{},
		Textures:      map[uint32]*Texture{},
		buffers:       map[uint32][]byte{},
		vaos:          map[uint32]*vertexArray{0: {attribs: map[uint32]*Attrib{}}},
		framebuffers:  map[uint32]*framebuffer{},
		renderbuffers: map[uint32]image.Point{},
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) log(name string, args ...any) {
	if len(args) == 0 {
		d.Calls = append(d.Calls, name)
		return
	}
	d.Calls = append(d.Calls, name+" "+strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Count returns the number of logged calls of the named method.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log and the recorded draws.
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Device) gen(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *Device) del(kind string, h uint32) bool {
	if h == 0 {
		return false
	}
	if d.live[h] != kind {
		d.DoubleFrees++
		return false
	}
	delete(d.live, h)
	d.Deleted[kind]++
	return true
}

// Live returns the number of live objects of the kind.
func (d *Device) Live(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (d *Device) setError(code uint32) {
	d.errs = append(d.errs, code)
}

// GetError returns and clears the oldest recorded error code.
func (d *Device) GetError() uint32 {
	if len(d.errs) == 0 {
		return gpu.NoError
	}
	e := d.errs[0]
	d.errs = d.errs[1:]
	return e
}

////////  Shaders

func (d *Device) CreateShader(stage gpu.ShaderStages) uint32 {
	h := d.gen(KindShader)
	d.shaders[h] = &shader{stage: stage}
	d.log("CreateShader", stage)
	return h
}

func (d *Device) ShaderSource(sh uint32, src string) {
	if s := d.shaders[sh]; s != nil {
		s.src = src
	}
}

// CompileShader fails for sources containing an #error directive,
// with the rest of that line in the log.
func (d *Device) CompileShader(sh uint32) (bool, string) {
	d.log("CompileShader", sh)
	s := d.shaders[sh]
	if s == nil {
		d.setError(gpu.InvalidValue)
		return false, "invalid shader"
	}
	for i, ln := range strings.Split(s.src, "\n") {
		if _, msg, ok := strings.Cut(ln, "#error"); ok {
			return false, fmt.Sprintf("ERROR: 0:%d: '#error' : %s\n", i+1, strings.TrimSpace(msg))
		}
	}
	s.compiled = true
	return true, ""
}

func (d *Device) DeleteShader(sh uint32) {
	d.log("DeleteShader", sh)
	if d.del(KindShader, sh) {
		delete(d.shaders, sh)
	}
}

func (d *Device) CreateProgram() uint32 {
	h := d.gen(KindProgram)
	d.Programs[h] = &Program{Attribs: map[string]uint32{}, Values: map[int32][]float32{}}
	d.log("CreateProgram")
	return h
}

func (d *Device) AttachShader(prog, sh uint32) {
	if p := d.Programs[prog]; p != nil {
		p.Shaders = append(p.Shaders, sh)
	}
}

func (d *Device) BindAttribLocation(prog, index uint32, name string) {
	if p := d.Programs[prog]; p != nil {
		p.Attribs[name] = index
	}
}

// LinkProgram succeeds if the program has a compiled vertex and
// fragment shader, and reflects the uniforms they declare.
func (d *Device) LinkProgram(prog uint32) (bool, string) {
	d.log("LinkProgram", prog)
	p := d.Programs[prog]
	if p == nil {
		d.setError(gpu.InvalidValue)
		return false, "invalid program"
	}
	if d.FailLink {
		return false, "error: linking failed\n"
	}
	var srcs []string
	stages := map[gpu.ShaderStages]bool{}
	for _, sh := range p.Shaders {
		s := d.shaders[sh]
		if s == nil || !s.compiled {
			return false, fmt.Sprintf("error: shader %d is not compiled\n", sh)
		}
		stages[s.stage] = true
		srcs = append(srcs, s.src)
	}
	if !stages[gpu.VertexShader] || !stages[gpu.FragmentShader] {
		return false, "error: program needs a vertex and a fragment shader\n"
	}
	p.Uniforms = ReflectUniforms(srcs...)
	p.Linked = true
	return true, ""
}

func (d *Device) ActiveUniforms(prog uint32) []gpu.UniformInfo {
	p := d.Programs[prog]
	if p == nil || !p.Linked {
		return nil
	}
	return append([]gpu.UniformInfo(nil), p.Uniforms...)
}

func (d *Device) UseProgram(prog uint32) {
	d.log("UseProgram", prog)
	if prog != 0 && (d.Programs[prog] == nil || !d.Programs[prog].Linked) {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.Program = prog
}

func (d *Device) DeleteProgram(prog uint32) {
	d.log("DeleteProgram", prog)
	if d.del(KindProgram, prog) {
		delete(d.Programs, prog)
		if d.Program == prog {
			d.Program = 0
		}
	}
}

////////  Uniforms

func (d *Device) setUniform(loc int32, v []float32) {
	if loc < 0 {
		return
	}
	p := d.Programs[d.Program]
	if p == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	p.Values[loc] = v
}

func (d *Device) UniformInt(loc int32, v int32) {
	d.log("UniformInt", loc, v)
	d.setUniform(loc, []float32{float32(v)})
}

func (d *Device) UniformFloats(loc int32, v []float32) {
	d.log("UniformFloats", loc, v)
	d.setUniform(loc, append([]float32(nil), v...))
}

func (d *Device) UniformMatrix(loc int32, v []float32) {
	d.log("UniformMatrix", loc)
	d.setUniform(loc, append([]float32(nil), v...))
}

// Uniform returns the value last uploaded to the named uniform
// of the program.
func (d *Device) Uniform(prog uint32, name string) ([]float32, bool) {
	p := d.Programs[prog]
	if p == nil {
		return nil, false
	}
	for _, u := range p.Uniforms {
		if u.Name == name {
			v, ok := p.Values[u.Location]
			return v, ok
		}
	}
	return nil, false
}

////////  Textures

func (d *Device) GenTexture() uint32 {
	h := d.gen(KindTexture)
	d.Textures[h] = &Texture{Images: map[gpu.TextureTargets]*TexImage{}, Params: map[uint32]int32{}, ParamsF: map[uint32][]float32{}}
	d.log("GenTexture")
	return h
}

func (d *Device) ActiveTexture(unit int) {
	d.log("ActiveTexture", unit)
	d.Unit = unit
}

func (d *Device) BindTexture(target gpu.TextureTargets, tex uint32) {
	d.log("BindTexture", target, tex)
	if tex != 0 {
		t := d.Textures[tex]
		if t == nil {
			d.setError(gpu.InvalidValue)
			return
		}
		if t.Target == 0 {
			t.Target = target
		} else if t.Target != target {
			d.setError(gpu.InvalidOperation)
			return
		}
	}
	if d.Bound[d.Unit] == nil {
		d.Bound[d.Unit] = map[gpu.TextureTargets]uint32{}
	}
	d.Bound[d.Unit][target] = tex
}

// bound returns the texture bound on the active unit for the target,
// where cube-map faces resolve to the cube-map target.
func (d *Device) bound(target gpu.TextureTargets) *Texture {
	if target >= gpu.CubeFace(0) && target <= gpu.CubeFace(5) {
		target = gpu.TextureCubeMap
	}
	return d.Textures[d.Bound[d.Unit][target]]
}

func channels(format uint32) int {
	switch format {
	case glRGB:
		return 3
	case glRGBA:
		return 4
	}
	return 1
}

func (d *Device) TexImage2D(target gpu.TextureTargets, internalFormat int32, width, height int, format, pixelType uint32, data []byte) {
	d.log("TexImage2D", target, internalFormat, width, height, format, pixelType)
	t := d.bound(target)
	if t == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	if d.RejectTextures {
		d.setError(gpu.InvalidOperation)
		return
	}
	isDepth := internalFormat == glDepthComponent
	switch {
	case isDepth != (format == glDepthComponent):
		d.setError(gpu.InvalidOperation)
		return
	case isDepth && pixelType != glFloat:
		d.setError(gpu.InvalidOperation)
		return
	case pixelType != glUnsignedByte && pixelType != glFloat:
		d.setError(gpu.InvalidEnum)
		return
	case width < 0 || height < 0:
		d.setError(gpu.InvalidValue)
		return
	}
	switch internalFormat {
	case glDepthComponent, glRGB, glRGBA, glSRGB, glSRGBAlpha:
	default:
		d.setError(gpu.InvalidEnum)
		return
	}
	bpc := 1
	if pixelType == glFloat {
		bpc = 4
	}
	if data != nil && len(data) < width*height*channels(format)*bpc {
		d.setError(gpu.InvalidOperation)
		return
	}
	t.Images[target] = &TexImage{
		InternalFormat: internalFormat,
		Size:           image.Pt(width, height),
		Format:         format,
		Type:           pixelType,
		Data:           append([]byte(nil), data...),
	}
}

func (d *Device) TexParameteri(target gpu.TextureTargets, pname uint32, v int32) {
	d.log("TexParameteri", target, pname, v)
	if t := d.bound(target); t != nil {
		t.Params[pname] = v
	} else {
		d.setError(gpu.InvalidOperation)
	}
}

func (d *Device) TexParameterfv(target gpu.TextureTargets, pname uint32, v []float32) {
	d.log("TexParameterfv", target, pname, v)
	if t := d.bound(target); t != nil {
		t.ParamsF[pname] = append([]float32(nil), v...)
	} else {
		d.setError(gpu.InvalidOperation)
	}
}

func (d *Device) DeleteTexture(tex uint32) {
	d.log("DeleteTexture", tex)
	if !d.del(KindTexture, tex) {
		return
	}
	delete(d.Textures, tex)
	for _, b := range d.Bound {
		for tg, h := range b {
			if h == tex {
				b[tg] = 0
			}
		}
	}
}

////////  Buffers

func (d *Device) GenBuffer() uint32 {
	h := d.gen(KindBuffer)
	d.buffers[h] = nil
	d.log("GenBuffer")
	return h
}

func (d *Device) boundBuffer(target gpu.BufferTargets) uint32 {
	if target == gpu.ElementArrayBuffer {
		return d.vaos[d.VertexArray].elements
	}
	return d.ArrayBuffer
}

func (d *Device) BindBuffer(target gpu.BufferTargets, buf uint32) {
	d.log("BindBuffer", target, buf)
	if buf != 0 && d.live[buf] != KindBuffer {
		d.setError(gpu.InvalidValue)
		return
	}
	if target == gpu.ElementArrayBuffer {
		d.vaos[d.VertexArray].elements = buf
		return
	}
	d.ArrayBuffer = buf
}

func (d *Device) BufferData(target gpu.BufferTargets, data []byte) {
	d.log("BufferData", target, len(data))
	buf := d.boundBuffer(target)
	if buf == 0 {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.buffers[buf] = append([]byte(nil), data...)
}

func (d *Device) GetBufferSubData(target gpu.BufferTargets, offset int, out []byte) {
	buf := d.boundBuffer(target)
	b := d.buffers[buf]
	if buf == 0 || offset < 0 || offset+len(out) > len(b) {
		d.setError(gpu.InvalidValue)
		return
	}
	copy(out, b[offset:])
}

// BufferContents returns the data of the buffer.
func (d *Device) BufferContents(buf uint32) []byte {
	return d.buffers[buf]
}

func (d *Device) DeleteBuffer(buf uint32) {
	d.log("DeleteBuffer", buf)
	if !d.del(KindBuffer, buf) {
		return
	}
	delete(d.buffers, buf)
	if d.ArrayBuffer == buf {
		d.ArrayBuffer = 0
	}
}

func (d *Device) GenVertexArray() uint32 {
	h := d.gen(KindVertexArray)
	d.vaos[h] = &vertexArray{attribs: map[uint32]*Attrib{}}
	d.log("GenVertexArray")
	return h
}

func (d *Device) BindVertexArray(vao uint32) {
	d.log("BindVertexArray", vao)
	if d.vaos[vao] == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.VertexArray = vao
}

func (d *Device) attrib(index uint32) *Attrib {
	va := d.vaos[d.VertexArray]
	a := va.attribs[index]
	if a == nil {
		a = &Attrib{}
		va.attribs[index] = a
	}
	return a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.log("EnableVertexAttribArray", index)
	d.attrib(index).Enabled = true
}

func (d *Device) VertexAttribPointer(index uint32, size, stride, offset int) {
	d.log("VertexAttribPointer", index, size, stride, offset)
	if d.ArrayBuffer == 0 {
		d.setError(gpu.InvalidOperation)
		return
	}
	a := d.attrib(index)
	a.Buffer, a.Size, a.Stride, a.Offset = d.ArrayBuffer, size, stride, offset
}

// Attribs returns the vertex attributes of the vertex array by index.
func (d *Device) Attribs(vao uint32) map[uint32]Attrib {
	va := d.vaos[vao]
	if va == nil {
		return nil
	}
	as := map[uint32]Attrib{}
	for i, a := range va.attribs {
		as[i] = *a
	}
	return as
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.log("DeleteVertexArray", vao)
	if !d.del(KindVertexArray, vao) {
		return
	}
	delete(d.vaos, vao)
	if d.VertexArray == vao {
		d.VertexArray = 0
	}
}

////////  Framebuffers

func (d *Device) GenFramebuffer() uint32 {
	h := d.gen(KindFramebuffer)
	d.framebuffers[h] = &framebuffer{attachments: map[gpu.Attachments]uint32{}, renderbuf: map[gpu.Attachments]uint32{}, color: true}
	d.log("GenFramebuffer")
	return h
}

func (d *Device) BindFramebuffer(fb uint32) {
	d.log("BindFramebuffer", fb)
	if fb != 0 && d.framebuffers[fb] == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.Framebuffer = fb
}

func (d *Device) FramebufferTexture2D(attachment gpu.Attachments, target gpu.TextureTargets, tex uint32) {
	d.log("FramebufferTexture2D", attachment, target, tex)
	fb := d.framebuffers[d.Framebuffer]
	if fb == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	fb.attachments[attachment] = tex
}

func (d *Device) SetColorBuffers(enabled bool) {
	d.log("SetColorBuffers", enabled)
	if fb := d.framebuffers[d.Framebuffer]; fb != nil {
		fb.color = enabled
	}
}

func (d *Device) CheckFramebufferStatus() uint32 {
	fb := d.framebuffers[d.Framebuffer]
	if fb == nil {
		return gpu.FramebufferComplete
	}
	if d.ForceIncomplete {
		return gpu.FramebufferIncompleteAttachment
	}
	if len(fb.attachments) == 0 && len(fb.renderbuf) == 0 {
		return gpu.FramebufferIncompleteMissingAttachment
	}
	for _, tex := range fb.attachments {
		t := d.Textures[tex]
		if t == nil || t.Images[gpu.Texture2D] == nil || t.Images[gpu.Texture2D].Size == (image.Point{}) {
			return gpu.FramebufferIncompleteAttachment
		}
	}
	if fb.color && fb.attachments[gpu.ColorAttachment0] == 0 {
		return FramebufferIncompleteDrawBuffer
	}
	return gpu.FramebufferComplete
}

func (d *Device) DeleteFramebuffer(fb uint32) {
	d.log("DeleteFramebuffer", fb)
	if !d.del(KindFramebuffer, fb) {
		return
	}
	delete(d.framebuffers, fb)
	if d.Framebuffer == fb {
		d.Framebuffer = 0
	}
}

func (d *Device) GenRenderbuffer() uint32 {
	h := d.gen(KindRenderbuffer)
	d.renderbuffers[h] = image.Point{}
	d.log("GenRenderbuffer")
	return h
}

func (d *Device) BindRenderbuffer(rb uint32) {
	d.log("BindRenderbuffer", rb)
	d.Renderbuffer = rb
}

func (d *Device) RenderbufferStorage(internalFormat uint32, width, height int) {
	d.log("RenderbufferStorage", internalFormat, width, height)
	if _, ok := d.renderbuffers[d.Renderbuffer]; !ok {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.renderbuffers[d.Renderbuffer] = image.Pt(width, height)
}

// RenderbufferSize returns the storage size of the renderbuffer.
func (d *Device) RenderbufferSize(rb uint32) image.Point {
	return d.renderbuffers[rb]
}

func (d *Device) FramebufferRenderbuffer(attachment gpu.Attachments, rb uint32) {
	d.log("FramebufferRenderbuffer", attachment, rb)
	fb := d.framebuffers[d.Framebuffer]
	if fb == nil {
		d.setError(gpu.InvalidOperation)
		return
	}
	fb.renderbuf[attachment] = rb
}

func (d *Device) DeleteRenderbuffer(rb uint32) {
	d.log("DeleteRenderbuffer", rb)
	if d.del(KindRenderbuffer, rb) {
		delete(d.renderbuffers, rb)
	}
}

////////  State and drawing

func (d *Device) Viewport(x, y, width, height int) {
	d.log("Viewport", x, y, width, height)
	d.ViewportRect = image.Rect(x, y, x+width, y+height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.log("ClearColor", r, g, b, a)
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) Clear(bits gpu.ClearBits) {
	d.log("Clear", bits)
	if bits&gpu.ClearColor != 0 {
		if fb := d.framebuffers[d.Framebuffer]; fb != nil {
			fb.clear = d.ClearRGBA
		}
	}
}

func (d *Device) Enable(c gpu.Capabilities) {
	d.log("Enable", c)
	d.Caps[c] = true
}

func (d *Device) Disable(c gpu.Capabilities) {
	d.log("Disable", c)
	d.Caps[c] = false
}

func (d *Device) DepthFunc(f gpu.CompareFuncs) {
	d.log("DepthFunc", f)
	d.DepthCompare = f
}

func (d *Device) draw(count int, indexed bool) {
	if d.Program == 0 || d.VertexArray == 0 {
		d.setError(gpu.InvalidOperation)
		return
	}
	texs := map[int]uint32{}
	for unit, b := range d.Bound {
		for _, h := range b {
			if h != 0 {
				texs[unit] = h
			}
		}
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.Program,
		VertexArray: d.VertexArray,
		Framebuffer: d.Framebuffer,
		Count:       count,
		Indexed:     indexed,
		DepthFunc:   d.DepthCompare,
		DepthTest:   d.Caps[gpu.DepthTest],
		Viewport:    d.ViewportRect,
		Textures:    texs,
	})
}

func (d *Device) DrawElements(count int) {
	d.log("DrawElements", count)
	if d.vaos[d.VertexArray].elements == 0 {
		d.setError(gpu.InvalidOperation)
		return
	}
	d.draw(count, true)
}

func (d *Device) DrawArrays(first, count int) {
	d.log("DrawArrays", first, count)
	d.draw(count, false)
}

// ReadPixels returns the pixels of the bound framebuffer, which are all
// the color it was last cleared to, or zero for the default framebuffer.
func (d *Device) ReadPixels(x, y, width, height int) []byte {
	d.log("ReadPixels", x, y, width, height)
	pix := make([]byte, 4*width*height)
	fb := d.framebuffers[d.Framebuffer]
	if fb == nil {
		return pix
	}
	var c [4]byte
	for i, f := range fb.clear {
		c[i] = byte(min(max(f, 0), 1)*255 + 0.5)
	}
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:], c[:])
	}
	return pix
}

// DrawsTo returns the draws issued with the given framebuffer bound.
func (d *Device) DrawsTo(fb uint32) []Draw {
	var ds []Draw
	for _, dr := range d.Draws {
		if dr.Framebuffer == fb {
			ds = append(ds, dr)
		}
	}
	return ds
}

// Attachments returns the texture attachments of the framebuffer.
func (d *Device) Attachments(fb uint32) map[gpu.Attachments]uint32 {
	f := d.framebuffers[fb]
	if f == nil {
		return nil
	}
	return maps.Clone(f.attachments)
}
