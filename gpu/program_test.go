// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package gpu

import (
	"errors"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfx/internal/gl/glfake"
)

const testVS = `#version 100
attribute vec2 pos;
attribute vec4 color;
uniform vec4 offset;
uniform mat4 mvp;
void main() {}
`

const testFS = `#version 100
uniform sampler2D tex;
void main() {}
`

var testProgramDesc = ProgramDesc{
	Attributes: []string{"pos", "color"},
	Uniforms: []UniformDesc{
		{Name: "offset", Type: UniformFloat4},
		{Name: "mvp", Type: UniformMat4},
	},
	Images: []string{"tex"},
}

type testUniforms struct {
	Offset [4]float32
	MVP    [16]float32
}

func newTestProgram(t *testing.T, d *Device) Program {
	t.Helper()
	vs, err := d.CreateShader(StageVertex, testVS)
	require.NoError(t, err)
	fs, err := d.CreateShader(StageFragment, testFS)
	require.NoError(t, err)
	p, err := d.CreateProgram(vs, fs, testProgramDesc)
	require.NoError(t, err)
	return p
}

func TestShaderError(t *testing.T) {
	d, f, _ := newTestDevice(t)
	before := f.Live()
	_, err := d.CreateShader(StageFragment, "#error missing semicolon\n")
	var serr *ShaderError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, "fragment shader compilation", serr.Op)
	assert.Contains(t, serr.Log, "missing semicolon")
	assert.Equal(t, before, f.Live())
}

func TestCreateProgram(t *testing.T) {
	d, _, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	prog, err := d.programs.get(p.h)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pos": 0, "color": 1}, prog.attribs)
	assert.Equal(t, 80, prog.uniformSize)
	assert.Equal(t, 1, prog.images)
}

func TestCreateProgramStages(t *testing.T) {
	d, _, _ := newTestDevice(t)
	vs, err := d.CreateShader(StageVertex, testVS)
	require.NoError(t, err)
	fs, err := d.CreateShader(StageFragment, testFS)
	require.NoError(t, err)
	_, err = d.CreateProgram(fs, vs, ProgramDesc{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, d.DestroyShader(fs))
	_, err = d.CreateProgram(vs, fs, ProgramDesc{})
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestUniforms(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	assert.ErrorIs(t, d.SetUniforms(make([]byte, 80)), ErrInvalidArgument, "no program bound")

	require.NoError(t, d.BindProgram(p))
	u := testUniforms{Offset: [4]float32{1, 2, 3, 4}}
	u.MVP[0], u.MVP[15] = 1, 1
	require.NoError(t, ApplyUniforms(d, &u))

	prog, _ := d.programs.get(p.h)
	require.Len(t, prog.uniforms, 2)
	assert.Equal(t, []float32{1, 2, 3, 4}, f.Uniform(prog.uniforms[0].uniform))
	assert.Equal(t, u.MVP[:], f.Uniform(prog.uniforms[1].uniform))

	assert.ErrorIs(t, d.SetUniforms(make([]byte, 79)), ErrInvalidArgument)
}

func TestUnalignedUniforms(t *testing.T) {
	d, f, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	require.NoError(t, d.BindProgram(p))
	buf := make([]byte, 81)
	data := buf[1:]
	data[0], data[1], data[2], data[3] = 0, 0, 0x80, 0x3f // 1.0
	require.NoError(t, d.SetUniforms(data))
	prog, _ := d.programs.get(p.h)
	assert.Equal(t, float32(1), f.Uniform(prog.uniforms[0].uniform)[0])
}

func TestDestroyProgram(t *testing.T) {
	d, _, _ := newTestDevice(t)
	p := newTestProgram(t, d)
	require.NoError(t, d.BindProgram(p))
	require.NoError(t, d.DestroyProgram(p))
	assert.ErrorIs(t, d.SetUniforms(make([]byte, 80)), ErrInvalidHandle)
	assert.ErrorIs(t, d.BindProgram(p), ErrInvalidHandle)
	assert.ErrorIs(t, d.DestroyProgram(p), ErrInvalidHandle)
}

func testSources() (shader.Sources, shader.Sources) {
	vert := shader.Sources{
		Name:      "test.vert",
		GLSL100ES: testVS,
		GLSL150:   "#version 150\n#error wrong dialect\n",
		Inputs: []shader.InputLocation{
			{Name: "color", Location: 1, Type: shader.DataTypeFloat, Size: 4},
			{Name: "pos", Location: 0, Type: shader.DataTypeFloat, Size: 2},
		},
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{
				{Name: "offset", Type: shader.DataTypeFloat, Size: 4, Offset: 0},
			},
			Size: 16,
		},
	}
	frag := shader.Sources{
		Name:      "test.frag",
		GLSL100ES: testFS,
		GLSL150:   "#version 150\n#error wrong dialect\n",
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{
				{Name: "tex", Type: shader.DataTypeInt, Size: 1, Offset: 0},
			},
			Size: 4,
		},
		Textures: []shader.TextureBinding{{Name: "tex", Binding: 0}},
	}
	return vert, frag
}

func TestCompileProgramDialect(t *testing.T) {
	es := glfake.New()
	es.Version = "OpenGL ES 3.0 glfake"
	d, _, _ := newTestDeviceGL(t, es)
	vert, frag := testSources()
	p, err := d.CompileProgram(vert, frag)
	require.NoError(t, err)
	prog, err := d.programs.get(p.h)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pos": 0, "color": 1}, prog.attribs)
	assert.Equal(t, 20, prog.uniformSize)

	// Desktop GL 3.3 compiles the GLSL 1.50 variant.
	d, _, _ = newTestDevice(t)
	_, err = d.CompileProgram(vert, frag)
	var serr *ShaderError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Contains(t, serr.Log, "wrong dialect")
}

func TestProgramDescFor(t *testing.T) {
	vert, frag := testSources()
	desc, err := programDescFor(vert, frag)
	require.NoError(t, err)
	assert.Equal(t, []string{"pos", "color"}, desc.Attributes)
	assert.Equal(t, []UniformDesc{
		{Name: "offset", Type: UniformFloat4, Offset: 0},
		{Name: "tex", Type: UniformInt1, Offset: 16},
	}, desc.Uniforms)
	assert.Equal(t, []string{"tex"}, desc.Images)

	vert.Inputs[0].Location = 5
	_, err = programDescFor(vert, frag)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
