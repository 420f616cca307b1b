// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"unsafe"

	"gioui.org/shader"

	"gfx/internal/gl"
	gunsafe "gfx/internal/unsafe"
)

type gpuShader struct {
	obj   gl.Shader
	stage ShaderStage
}

type gpuProgram struct {
	obj gl.Program
	// attribs maps attribute names to locations. Inactive attributes are
	// absent.
	attribs  map[string]int
	uniforms []uniformLocation
	// uniformSize is the minimum length of data for SetUniforms.
	uniformSize int
	images      int
}

type uniformLocation struct {
	uniform gl.Uniform
	typ     UniformType
	count   int
	offset  int
}

// CreateShader compiles src for stage. Compile failures are reported as
// *ShaderError.
func (d *Device) CreateShader(stage ShaderStage, src string) (Shader, error) {
	if err := d.check(); err != nil {
		return Shader{}, err
	}
	typ := gl.Enum(gl.VERTEX_SHADER)
	switch stage {
	case StageVertex:
	case StageFragment:
		typ = gl.FRAGMENT_SHADER
	default:
		return Shader{}, invalidArg("shader stage %d", stage)
	}
	sh, err := gl.CreateShader(d.funcs, typ, src)
	if err != nil {
		if err := d.allocErr(); err == ErrContextLost {
			return Shader{}, err
		}
		return Shader{}, shaderError(err)
	}
	return Shader{d.shaders.insert(&gpuShader{obj: sh, stage: stage})}, nil
}

// DestroyShader deletes s. Programs linked from s are not affected.
func (d *Device) DestroyShader(s Shader) error {
	if err := d.check(); err != nil {
		return err
	}
	sh, err := d.shaders.remove(s.h)
	if err != nil {
		return err
	}
	d.funcs.DeleteShader(sh.obj)
	return nil
}

// CreateProgram links a vertex and a fragment shader. Attributes are
// bound to locations in the order of desc.Attributes, and image samplers
// to texture units in the order of desc.Images. Link failures are
// reported as *ShaderError.
func (d *Device) CreateProgram(vs, fs Shader, desc ProgramDesc) (Program, error) {
	if err := d.check(); err != nil {
		return Program{}, err
	}
	vsh, err := d.shaders.get(vs.h)
	if err != nil {
		return Program{}, err
	}
	fsh, err := d.shaders.get(fs.h)
	if err != nil {
		return Program{}, err
	}
	if vsh.stage != StageVertex || fsh.stage != StageFragment {
		return Program{}, invalidArg("program from %s and %s shaders", vsh.stage, fsh.stage)
	}
	if len(desc.Attributes) > maxAttribs {
		return Program{}, invalidArg("%d attributes (max %d)", len(desc.Attributes), maxAttribs)
	}
	if len(desc.Images) > maxTexUnits {
		return Program{}, invalidArg("%d images (max %d)", len(desc.Images), maxTexUnits)
	}
	for _, u := range desc.Uniforms {
		if u.Type > UniformMat4 || u.Count < 0 || u.Offset < 0 {
			return Program{}, invalidArg("uniform %q", u.Name)
		}
	}
	return d.linkProgram(vsh.obj, fsh.obj, desc)
}

func (d *Device) linkProgram(vs, fs gl.Shader, desc ProgramDesc) (Program, error) {
	f := d.funcs
	p, err := gl.CreateProgram(f, vs, fs, desc.Attributes)
	if err != nil {
		if err := d.allocErr(); err == ErrContextLost {
			return Program{}, err
		}
		return Program{}, shaderError(err)
	}
	prog := &gpuProgram{
		obj:     p,
		attribs: make(map[string]int),
		images:  len(desc.Images),
	}
	for _, name := range desc.Attributes {
		if loc := f.GetAttribLocation(p, name); loc >= 0 && loc < maxAttribs {
			prog.attribs[name] = loc
		}
	}
	off := 0
	for _, u := range desc.Uniforms {
		if u.Offset > off {
			off = u.Offset
		}
		loc := uniformLocation{
			uniform: f.GetUniformLocation(p, u.Name),
			typ:     u.Type,
			count:   max(u.Count, 1),
			offset:  off,
		}
		off += loc.typ.size() * loc.count
		// Unused uniforms are optimized away by the driver.
		if loc.uniform.Valid() {
			prog.uniforms = append(prog.uniforms, loc)
		}
	}
	prog.uniformSize = off
	// Bind texture uniforms.
	d.state.useProgram(f, p)
	for i, name := range desc.Images {
		if u := f.GetUniformLocation(p, name); u.Valid() {
			f.Uniform1iv(u, []int32{int32(i)})
		}
	}
	if err := d.allocErr(); err != nil {
		d.state.deleteProgram(f, p)
		return Program{}, err
	}
	return Program{d.programs.insert(prog)}, nil
}

// CompileProgram compiles and links a program from cross-compiled shader
// sources, choosing the GLSL dialect the context accepts. The program
// description is derived from the reflection data of the sources: vertex
// inputs by location, vertex uniforms followed by fragment uniforms, and
// textures by binding.
func (d *Device) CompileProgram(vert, frag shader.Sources) (Program, error) {
	if err := d.check(); err != nil {
		return Program{}, err
	}
	vsrc, fsrc := vert.GLSL100ES, frag.GLSL100ES
	if v := d.caps.Version; !d.caps.ES && v[0] >= 3 && (v[0] >= 4 || v[1] >= 2) {
		// OpenGL 3.2 Core only accepts glsl 1.50 or newer.
		vsrc, fsrc = vert.GLSL150, frag.GLSL150
	}
	if vsrc == "" || fsrc == "" {
		return Program{}, invalidArg("no GLSL source for %s/%s", vert.Name, frag.Name)
	}
	desc, err := programDescFor(vert, frag)
	if err != nil {
		return Program{}, err
	}
	f := d.funcs
	vs, err := gl.CreateShader(f, gl.VERTEX_SHADER, vsrc)
	if err != nil {
		return Program{}, shaderError(err)
	}
	defer f.DeleteShader(vs)
	fs, err := gl.CreateShader(f, gl.FRAGMENT_SHADER, fsrc)
	if err != nil {
		return Program{}, shaderError(err)
	}
	defer f.DeleteShader(fs)
	return d.linkProgram(vs, fs, desc)
}

func programDescFor(vert, frag shader.Sources) (ProgramDesc, error) {
	var desc ProgramDesc
	desc.Attributes = make([]string, len(vert.Inputs))
	for _, inp := range vert.Inputs {
		if inp.Location < 0 || inp.Location >= len(desc.Attributes) {
			return desc, invalidArg("input %q at location %d", inp.Name, inp.Location)
		}
		desc.Attributes[inp.Location] = inp.Name
	}
	base := 0
	for _, src := range []shader.Sources{vert, frag} {
		for _, loc := range src.Uniforms.Locations {
			typ, err := uniformTypeFor(loc)
			if err != nil {
				return desc, err
			}
			desc.Uniforms = append(desc.Uniforms, UniformDesc{
				Name:   loc.Name,
				Type:   typ,
				Offset: base + loc.Offset,
			})
		}
		base += src.Uniforms.Size
	}
	var texs []shader.TextureBinding
	texs = append(texs, vert.Textures...)
	texs = append(texs, frag.Textures...)
	sort.SliceStable(texs, func(i, j int) bool { return texs[i].Binding < texs[j].Binding })
	for _, t := range texs {
		desc.Images = append(desc.Images, t.Name)
	}
	return desc, nil
}

func uniformTypeFor(loc shader.UniformLocation) (UniformType, error) {
	switch {
	case loc.Type == shader.DataTypeFloat && loc.Size >= 1 && loc.Size <= 4:
		return UniformFloat1 + UniformType(loc.Size-1), nil
	case loc.Type == shader.DataTypeInt && loc.Size == 1:
		return UniformInt1, nil
	default:
		return 0, invalidArg("uniform %q of type %d and size %d", loc.Name, loc.Type, loc.Size)
	}
}

// DestroyProgram deletes p. Pipelines using p fail when applied.
func (d *Device) DestroyProgram(p Program) error {
	if err := d.check(); err != nil {
		return err
	}
	prog, err := d.programs.remove(p.h)
	if err != nil {
		return err
	}
	d.state.deleteProgram(d.funcs, prog.obj)
	return nil
}

// BindProgram makes p the target of SetUniforms without applying a
// pipeline.
func (d *Device) BindProgram(p Program) error {
	if err := d.check(); err != nil {
		return err
	}
	prog, err := d.programs.get(p.h)
	if err != nil {
		return err
	}
	d.state.useProgram(d.funcs, prog.obj)
	d.cur.prog = p
	return nil
}

// SetUniforms uploads the uniforms of the current program from data,
// laid out as described by its ProgramDesc.
func (d *Device) SetUniforms(data []byte) error {
	if err := d.check(); err != nil {
		return err
	}
	if d.cur.prog.IsNull() {
		return invalidArg("no program bound")
	}
	prog, err := d.programs.get(d.cur.prog.h)
	if err != nil {
		return err
	}
	if len(data) < prog.uniformSize {
		return invalidArg("%d bytes of uniforms, program needs %d", len(data), prog.uniformSize)
	}
	f := d.funcs
	for _, u := range prog.uniforms {
		n := u.typ.size() * u.count / 4
		src := data[u.offset : u.offset+4*n]
		if u.typ == UniformInt1 {
			v := d.int32s(src)
			f.Uniform1iv(u.uniform, v)
			continue
		}
		v := d.float32s(src)
		switch u.typ {
		case UniformFloat1:
			f.Uniform1fv(u.uniform, v)
		case UniformFloat2:
			f.Uniform2fv(u.uniform, v)
		case UniformFloat3:
			f.Uniform3fv(u.uniform, v)
		case UniformFloat4:
			f.Uniform4fv(u.uniform, v)
		case UniformMat4:
			f.UniformMatrix4fv(u.uniform, v)
		}
	}
	return nil
}

// ApplyUniforms uploads the uniforms of the current program from the
// memory of *v, without copying.
func ApplyUniforms[T any](d *Device, v *T) error {
	if v == nil {
		return invalidArg("nil uniforms")
	}
	return d.SetUniforms(gunsafe.BytesView(unsafe.Slice(v, 1)))
}

// float32s decodes src into the scratch space of d.
func (d *Device) float32s(src []byte) []float32 {
	if v, err := gunsafe.Cast[float32](src); err == nil {
		return v
	}
	n := len(src) / 4
	if cap(d.floats) < n {
		d.floats = make([]float32, n)
	}
	v := d.floats[:n]
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return v
}

func (d *Device) int32s(src []byte) []int32 {
	if v, err := gunsafe.Cast[int32](src); err == nil {
		return v
	}
	n := len(src) / 4
	if cap(d.ints) < n {
		d.ints = make([]int32, n)
	}
	v := d.ints[:n]
	for i := range v {
		v[i] = int32(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return v
}

func (t UniformType) String() string {
	switch t {
	case UniformFloat1:
		return "float"
	case UniformFloat2:
		return "vec2"
	case UniformFloat3:
		return "vec3"
	case UniformFloat4:
		return "vec4"
	case UniformInt1:
		return "int"
	case UniformMat4:
		return "mat4"
	default:
		return fmt.Sprintf("UniformType(%d)", uint8(t))
	}
}
