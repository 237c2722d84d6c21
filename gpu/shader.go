// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/shape"
)

// shaderSource is one compiled unit of a [Shader], kept so that
// the program can be rebuilt by [Shader.Reload].
type shaderSource struct {
	stage ShaderStages
	path  string
	src   string

	// fromFile is whether src was read from path,
	// and is read again on reload.
	fromFile bool
}

// Shader is a linked shader program, with a cache of its active
// uniforms and a table of the textures bound to its samplers.
//
// Texture units are assigned by sampler name: the samplers of the
// linked program are sorted by name, and the unit of each is its index
// in that order. Uniform values set on the shader are remembered, and
// restored after the program is rebuilt by [Shader.Reload].
type Shader struct {
	// Name is used in logs and errors.
	Name string

	ctx     *Context
	program uint32
	sources []shaderSource

	// compiled units waiting to be linked
	pending []uint32

	uniforms map[string]UniformInfo
	samplers []string
	textures map[string]*Texture
	values   map[string]any
	required []string
	warned   map[string]bool
}

// NewShader returns a new, empty shader program with the given name.
func NewShader(ctx *Context, name string) *Shader {
	return &Shader{
		Name:     name,
		ctx:      ctx,
		uniforms: map[string]UniformInfo{},
		textures: map[string]*Texture{},
		values:   map[string]any{},
		warned:   map[string]bool{},
	}
}

// StageForPath returns the shader stage for a file name, by extension:
// .vert or .vs for vertex and .frag or .fs for fragment shaders.
func StageForPath(path string) (ShaderStages, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".vs":
		return VertexShader, nil
	case ".frag", ".fs":
		return FragmentShader, nil
	}
	return 0, errors.Errorf("gpu: no shader stage for file extension of %q", path)
}

// AttachShader reads and compiles the shader source file at path,
// with the stage selected by its extension, and attaches it for the next
// [Shader.Link]. It returns a [*LoadError] if the file can not be read
// and a [*CompileError] if it does not compile.
func (sh *Shader) AttachShader(path string) error {
	stage, err := StageForPath(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return sh.attach(shaderSource{stage: stage, path: path, src: string(b), fromFile: true})
}

// AttachSource compiles the given source for the stage and attaches it
// for the next [Shader.Link]. The name is used in errors.
func (sh *Shader) AttachSource(stage ShaderStages, name, src string) error {
	return sh.attach(shaderSource{stage: stage, path: name, src: src})
}

func (sh *Shader) attach(ss shaderSource) error {
	sd, err := sh.compile(ss)
	if err != nil {
		return err
	}
	sh.pending = append(sh.pending, sd)
	sh.sources = append(sh.sources, ss)
	return nil
}

func (sh *Shader) compile(ss shaderSource) (uint32, error) {
	dev := sh.ctx.Dev
	sd := dev.CreateShader(ss.stage)
	dev.ShaderSource(sd, ss.src)
	ok, log := dev.CompileShader(sd)
	if !ok {
		dev.DeleteShader(sd)
		return 0, &CompileError{Path: ss.path, Stage: ss.stage, Log: log}
	}
	return sd, nil
}

// link links the compiled units into a new program. The units are
// deleted whether or not linking succeeds.
func (sh *Shader) link(units []uint32) (uint32, error) {
	dev := sh.ctx.Dev
	defer func() {
		for _, sd := range units {
			dev.DeleteShader(sd)
		}
	}()
	if len(units) == 0 {
		return 0, &LinkError{Program: sh.Name, Log: "no shaders attached"}
	}
	prog := dev.CreateProgram()
	for _, sd := range units {
		dev.AttachShader(prog, sd)
	}
	for _, a := range shape.VertexLayout {
		dev.BindAttribLocation(prog, a.Location, a.Name)
	}
	ok, log := dev.LinkProgram(prog)
	if !ok {
		dev.DeleteProgram(prog)
		return 0, &LinkError{Program: sh.Name, Log: log}
	}
	return prog, nil
}

// Link links all attached shaders into the program, and builds the
// uniform and sampler tables from the active uniforms of the program.
// Sampler uniforms are set to their texture units.
// It returns a [*LinkError] with the linker log on failure.
func (sh *Shader) Link() error {
	units := sh.pending
	sh.pending = nil
	prog, err := sh.link(units)
	if err != nil {
		return err
	}
	sh.swap(prog)
	return sh.checkRequired()
}

// swap makes prog the program of the shader, releasing any previous one,
// and rebuilds the uniform tables, restoring stored uniform values.
func (sh *Shader) swap(prog uint32) {
	sh.releaseProgram()
	sh.program = prog
	sh.uniforms = map[string]UniformInfo{}
	sh.samplers = sh.samplers[:0]
	for _, u := range sh.ctx.Dev.ActiveUniforms(prog) {
		sh.uniforms[u.Name] = u
		if u.Type.IsSampler() {
			sh.samplers = append(sh.samplers, u.Name)
		}
	}
	slices.Sort(sh.samplers)
	sh.ctx.UseProgram(prog)
	for i, name := range sh.samplers {
		sh.ctx.Dev.UniformInt(sh.uniforms[name].Location, int32(i))
	}
	for name, tex := range sh.textures {
		if _, ok := sh.Slot(name); !ok {
			slog.Warn("gpu: sampler no longer in program, texture dropped", "program", sh.Name, "sampler", name, "texture", tex.Name)
			delete(sh.textures, name)
		}
	}
	for name, v := range sh.values {
		if _, ok := sh.uniforms[name]; ok {
			sh.upload(name, v)
		}
	}
	slog.Debug("gpu: linked program", "program", sh.Name, "handle", prog, "uniforms", len(sh.uniforms), "samplers", len(sh.samplers))
}

// Reload rebuilds the program from the sources it was built from,
// reading source files again. On any error, including a new program
// missing a uniform declared with [Shader.Require], the previous program
// is kept and the error returned. On success, previously set uniform
// values and textures are restored.
func (sh *Shader) Reload() error {
	srcs := make([]shaderSource, len(sh.sources))
	units := make([]uint32, 0, len(sh.sources))
	fail := func(err error) error {
		for _, sd := range units {
			sh.ctx.Dev.DeleteShader(sd)
		}
		return err
	}
	for i, ss := range sh.sources {
		if ss.fromFile {
			b, err := os.ReadFile(ss.path)
			if err != nil {
				return fail(&LoadError{Path: ss.path, Err: err})
			}
			ss.src = string(b)
		}
		sd, err := sh.compile(ss)
		if err != nil {
			return fail(err)
		}
		srcs[i] = ss
		units = append(units, sd)
	}
	prog, err := sh.link(units)
	if err != nil {
		return err
	}
	if err := sh.missingFrom(prog, sh.required); err != nil {
		sh.ctx.Dev.DeleteProgram(prog)
		return err
	}
	sh.sources = srcs
	sh.swap(prog)
	slog.Info("gpu: reloaded shader", "program", sh.Name)
	return nil
}

// Sources returns the file paths the shader was built from.
func (sh *Shader) Sources() []string {
	var ps []string
	for _, ss := range sh.sources {
		if ss.fromFile {
			ps = append(ps, ss.path)
		}
	}
	return ps
}

// Handle returns the program handle, 0 before linking.
func (sh *Shader) Handle() uint32 {
	return sh.program
}

// Activate makes the program current, unless it already is.
func (sh *Shader) Activate() {
	sh.ctx.UseProgram(sh.program)
}

// Require declares that the program must have the given active uniforms.
// It returns a [*MissingUniformError] for each one that it does not have,
// joined. The requirement is checked again after every [Shader.Reload].
func (sh *Shader) Require(names ...string) error {
	for _, name := range names {
		if !slices.Contains(sh.required, name) {
			sh.required = append(sh.required, name)
		}
	}
	return sh.missing(names)
}

func (sh *Shader) checkRequired() error {
	return sh.missing(sh.required)
}

func (sh *Shader) missing(names []string) error {
	var errs []error
	for _, name := range names {
		if !sh.HasUniform(name) {
			errs = append(errs, &MissingUniformError{Program: sh.Name, Name: name})
		}
	}
	return errors.Join(errs...)
}

// missingFrom is [Shader.missing] for the active uniforms of a linked
// program that is not yet the program of the shader.
func (sh *Shader) missingFrom(prog uint32, names []string) error {
	active := map[string]bool{}
	for _, u := range sh.ctx.Dev.ActiveUniforms(prog) {
		active[u.Name] = true
	}
	var errs []error
	for _, name := range names {
		if !active[name] {
			errs = append(errs, &MissingUniformError{Program: sh.Name, Name: name})
		}
	}
	return errors.Join(errs...)
}

// HasUniform returns whether the linked program has the given active uniform.
func (sh *Shader) HasUniform(name string) bool {
	_, ok := sh.uniforms[name]
	return ok
}

// Uniform returns the reflected information for the given uniform.
func (sh *Shader) Uniform(name string) (UniformInfo, bool) {
	u, ok := sh.uniforms[name]
	return u, ok
}

// SetUniform sets the value of the named uniform, making the program
// current. Supported values are float32, float64, int, int32, bool and
// the mgl32 Vec2, Vec3, Vec4, Mat3 and Mat4 types.
//
// Setting a uniform the program does not have, or with a value of the
// wrong type, logs a warning once per name and does nothing otherwise.
// Use [Shader.Require] for uniforms that must exist.
func (sh *Shader) SetUniform(name string, v any) {
	sh.values[name] = v
	if _, ok := sh.uniforms[name]; !ok {
		sh.warnOnce(name, "gpu: uniform not in program")
		return
	}
	sh.Activate()
	sh.upload(name, v)
}

func (sh *Shader) warnOnce(name, msg string, args ...any) {
	if sh.warned[name] {
		return
	}
	sh.warned[name] = true
	slog.Warn(msg, append([]any{"program", sh.Name, "uniform", name}, args...)...)
}

// upload issues the upload of v to the named uniform of the current program.
func (sh *Shader) upload(name string, v any) {
	u := sh.uniforms[name]
	dev := sh.ctx.Dev
	ok := false
	switch x := v.(type) {
	case float32:
		ok = u.Type == UniformFloat
		if ok {
			dev.UniformFloats(u.Location, []float32{x})
		}
	case float64:
		ok = u.Type == UniformFloat
		if ok {
			dev.UniformFloats(u.Location, []float32{float32(x)})
		}
	case int:
		ok = u.Type == UniformInt
		if ok {
			dev.UniformInt(u.Location, int32(x))
		}
	case int32:
		ok = u.Type == UniformInt
		if ok {
			dev.UniformInt(u.Location, x)
		}
	case bool:
		ok = u.Type == UniformBool
		if ok {
			b := int32(0)
			if x {
				b = 1
			}
			dev.UniformInt(u.Location, b)
		}
	case mgl32.Vec2:
		ok = u.Type == UniformFloatVector2
		if ok {
			dev.UniformFloats(u.Location, x[:])
		}
	case mgl32.Vec3:
		ok = u.Type == UniformFloatVector3
		if ok {
			dev.UniformFloats(u.Location, x[:])
		}
	case mgl32.Vec4:
		ok = u.Type == UniformFloatVector4
		if ok {
			dev.UniformFloats(u.Location, x[:])
		}
	case mgl32.Mat3:
		ok = u.Type == UniformFloatMatrix3
		if ok {
			dev.UniformMatrix(u.Location, x[:])
		}
	case mgl32.Mat4:
		ok = u.Type == UniformFloatMatrix4
		if ok {
			dev.UniformMatrix(u.Location, x[:])
		}
	}
	if !ok {
		sh.warnOnce(name, "gpu: uniform value does not match its type", "type", u.Type, "value", fmt.Sprintf("%T", v))
	}
}

// AddTexture binds the texture to the named sampler of the program,
// replacing any texture previously added for it. It returns a
// [*MissingUniformError] if the program has no such sampler.
func (sh *Shader) AddTexture(name string, tex *Texture) error {
	if _, ok := sh.Slot(name); !ok {
		return &MissingUniformError{Program: sh.Name, Name: name}
	}
	sh.textures[name] = tex
	return nil
}

// Slot returns the texture unit of the named sampler.
func (sh *Shader) Slot(name string) (int, bool) {
	i, ok := slices.BinarySearch(sh.samplers, name)
	return i, ok
}

// Samplers returns the sampler names of the program in texture unit order.
func (sh *Shader) Samplers() []string {
	return slices.Clone(sh.samplers)
}

// BindTextures binds every added texture to the unit of its sampler.
func (sh *Shader) BindTextures() {
	for i, name := range sh.samplers {
		if tex := sh.textures[name]; tex != nil {
			tex.Bind(i)
		}
	}
}

func (sh *Shader) releaseProgram() {
	if sh.program == 0 {
		return
	}
	if sh.ctx.program == sh.program {
		sh.ctx.program = unknown
	}
	sh.ctx.Dev.DeleteProgram(sh.program)
	sh.program = 0
}

// Release deletes the program and any units not yet linked.
// It is safe to call more than once. Added textures are not released.
func (sh *Shader) Release() {
	for _, sd := range sh.pending {
		sh.ctx.Dev.DeleteShader(sd)
	}
	sh.pending = nil
	sh.releaseProgram()
}
