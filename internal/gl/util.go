// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// BuildError reports a failed shader compile or program link together
// with the driver's info log.
type BuildError struct {
	Op  string
	Log string
}

func (e *BuildError) Error() string {
	if e.Log == "" {
		return e.Op + " failed"
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Log)
}

// CreateProgram links a program from compiled shaders, binding attribs to
// locations in order.
func CreateProgram(f API, vs, fs Shader, attribs []string) (Program, error) {
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for i, a := range attribs {
		f.BindAttribLocation(prog, Attrib(i), a)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == 0 {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, &BuildError{Op: "program link", Log: strings.TrimSpace(log)}
	}
	return prog, nil
}

// CreateShader compiles src as a shader of type typ.
func CreateShader(f API, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		op := "vertex shader compilation"
		if typ == FRAGMENT_SHADER {
			op = "fragment shader compilation"
		}
		return Shader{}, &BuildError{Op: op, Log: strings.TrimSpace(log)}
	}
	return sh, nil
}

// ParseGLVersion extracts the major and minor version from a GL_VERSION
// string. WebGL versions are mapped to their OpenGL ES equivalent.
func ParseGLVersion(glVer string) ([2]int, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	}
	return ver, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// IsES reports whether a GL_VERSION string names an OpenGL ES or WebGL
// context.
func IsES(glVer string) bool {
	return strings.HasPrefix(glVer, "OpenGL ES") || strings.HasPrefix(glVer, "WebGL")
}
