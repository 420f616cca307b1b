// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// proc indexes the dispatch table.
type proc int

const (
	procActiveTexture proc = iota
	procAttachShader
	procBindAttribLocation
	procBindBuffer
	procBindFramebuffer
	procBindTexture
	procBindVertexArray
	procBlendEquationSeparate
	procBlendFuncSeparate
	procBufferData
	procBufferSubData
	procCheckFramebufferStatus
	procClear
	procClearColor
	procClearDepth
	procClearStencil
	procColorMask
	procCompileShader
	procCreateProgram
	procCreateShader
	procCullFace
	procDeleteBuffers
	procDeleteFramebuffers
	procDeleteProgram
	procDeleteShader
	procDeleteTextures
	procDeleteVertexArrays
	procDepthFunc
	procDepthMask
	procDisable
	procDisableVertexAttribArray
	procDrawArrays
	procDrawArraysInstanced
	procDrawElements
	procDrawElementsInstanced
	procEnable
	procEnableVertexAttribArray
	procFlush
	procFramebufferTexture2D
	procFrontFace
	procGenBuffers
	procGenFramebuffers
	procGenTextures
	procGenVertexArrays
	procGetAttribLocation
	procGetError
	procGetIntegerv
	procGetProgramiv
	procGetProgramInfoLog
	procGetShaderiv
	procGetShaderInfoLog
	procGetString
	procGetUniformLocation
	procLinkProgram
	procPixelStorei
	procReadPixels
	procScissor
	procShaderSource
	procStencilFuncSeparate
	procStencilMaskSeparate
	procStencilOpSeparate
	procTexImage2D
	procTexParameteri
	procTexSubImage2D
	procUniform1fv
	procUniform1iv
	procUniform2fv
	procUniform3fv
	procUniform4fv
	procUniformMatrix4fv
	procUseProgram
	procVertexAttribDivisor
	procVertexAttribPointer
	procViewport

	numProcs
)

type procEntry struct {
	// name is the native entry point name.
	name string
	// method is the WebGL2RenderingContext method.
	method string
	// optional entry points are absent before GL 3.x and may be
	// missing from the table.
	optional bool
}

var procTable = [numProcs]procEntry{
	procActiveTexture:            {"glActiveTexture", "activeTexture", false},
	procAttachShader:             {"glAttachShader", "attachShader", false},
	procBindAttribLocation:       {"glBindAttribLocation", "bindAttribLocation", false},
	procBindBuffer:               {"glBindBuffer", "bindBuffer", false},
	procBindFramebuffer:          {"glBindFramebuffer", "bindFramebuffer", false},
	procBindTexture:              {"glBindTexture", "bindTexture", false},
	procBindVertexArray:          {"glBindVertexArray", "bindVertexArray", true},
	procBlendEquationSeparate:    {"glBlendEquationSeparate", "blendEquationSeparate", false},
	procBlendFuncSeparate:        {"glBlendFuncSeparate", "blendFuncSeparate", false},
	procBufferData:               {"glBufferData", "bufferData", false},
	procBufferSubData:            {"glBufferSubData", "bufferSubData", false},
	procCheckFramebufferStatus:   {"glCheckFramebufferStatus", "checkFramebufferStatus", false},
	procClear:                    {"glClear", "clear", false},
	procClearColor:               {"glClearColor", "clearColor", false},
	procClearDepth:               {"glClearDepth", "clearDepth", false},
	procClearStencil:             {"glClearStencil", "clearStencil", false},
	procColorMask:                {"glColorMask", "colorMask", false},
	procCompileShader:            {"glCompileShader", "compileShader", false},
	procCreateProgram:            {"glCreateProgram", "createProgram", false},
	procCreateShader:             {"glCreateShader", "createShader", false},
	procCullFace:                 {"glCullFace", "cullFace", false},
	procDeleteBuffers:            {"glDeleteBuffers", "deleteBuffer", false},
	procDeleteFramebuffers:       {"glDeleteFramebuffers", "deleteFramebuffer", false},
	procDeleteProgram:            {"glDeleteProgram", "deleteProgram", false},
	procDeleteShader:             {"glDeleteShader", "deleteShader", false},
	procDeleteTextures:           {"glDeleteTextures", "deleteTexture", false},
	procDeleteVertexArrays:       {"glDeleteVertexArrays", "deleteVertexArray", true},
	procDepthFunc:                {"glDepthFunc", "depthFunc", false},
	procDepthMask:                {"glDepthMask", "depthMask", false},
	procDisable:                  {"glDisable", "disable", false},
	procDisableVertexAttribArray: {"glDisableVertexAttribArray", "disableVertexAttribArray", false},
	procDrawArrays:               {"glDrawArrays", "drawArrays", false},
	procDrawArraysInstanced:      {"glDrawArraysInstanced", "drawArraysInstanced", true},
	procDrawElements:             {"glDrawElements", "drawElements", false},
	procDrawElementsInstanced:    {"glDrawElementsInstanced", "drawElementsInstanced", true},
	procEnable:                   {"glEnable", "enable", false},
	procEnableVertexAttribArray:  {"glEnableVertexAttribArray", "enableVertexAttribArray", false},
	procFlush:                    {"glFlush", "flush", false},
	procFramebufferTexture2D:     {"glFramebufferTexture2D", "framebufferTexture2D", false},
	procFrontFace:                {"glFrontFace", "frontFace", false},
	procGenBuffers:               {"glGenBuffers", "createBuffer", false},
	procGenFramebuffers:          {"glGenFramebuffers", "createFramebuffer", false},
	procGenTextures:              {"glGenTextures", "createTexture", false},
	procGenVertexArrays:          {"glGenVertexArrays", "createVertexArray", true},
	procGetAttribLocation:        {"glGetAttribLocation", "getAttribLocation", false},
	procGetError:                 {"glGetError", "getError", false},
	procGetIntegerv:              {"glGetIntegerv", "getParameter", false},
	procGetProgramiv:             {"glGetProgramiv", "getProgramParameter", false},
	procGetProgramInfoLog:        {"glGetProgramInfoLog", "getProgramInfoLog", false},
	procGetShaderiv:              {"glGetShaderiv", "getShaderParameter", false},
	procGetShaderInfoLog:         {"glGetShaderInfoLog", "getShaderInfoLog", false},
	procGetString:                {"glGetString", "getParameter", false},
	procGetUniformLocation:       {"glGetUniformLocation", "getUniformLocation", false},
	procLinkProgram:              {"glLinkProgram", "linkProgram", false},
	procPixelStorei:              {"glPixelStorei", "pixelStorei", false},
	procReadPixels:               {"glReadPixels", "readPixels", false},
	procScissor:                  {"glScissor", "scissor", false},
	procShaderSource:             {"glShaderSource", "shaderSource", false},
	procStencilFuncSeparate:      {"glStencilFuncSeparate", "stencilFuncSeparate", false},
	procStencilMaskSeparate:      {"glStencilMaskSeparate", "stencilMaskSeparate", false},
	procStencilOpSeparate:        {"glStencilOpSeparate", "stencilOpSeparate", false},
	procTexImage2D:               {"glTexImage2D", "texImage2D", false},
	procTexParameteri:            {"glTexParameteri", "texParameteri", false},
	procTexSubImage2D:            {"glTexSubImage2D", "texSubImage2D", false},
	procUniform1fv:               {"glUniform1fv", "uniform1fv", false},
	procUniform1iv:               {"glUniform1iv", "uniform1iv", false},
	procUniform2fv:               {"glUniform2fv", "uniform2fv", false},
	procUniform3fv:               {"glUniform3fv", "uniform3fv", false},
	procUniform4fv:               {"glUniform4fv", "uniform4fv", false},
	procUniformMatrix4fv:         {"glUniformMatrix4fv", "uniformMatrix4fv", false},
	procUseProgram:               {"glUseProgram", "useProgram", false},
	procVertexAttribDivisor:      {"glVertexAttribDivisor", "vertexAttribDivisor", true},
	procVertexAttribPointer:      {"glVertexAttribPointer", "vertexAttribPointer", false},
	procViewport:                 {"glViewport", "viewport", false},
}

// ErrMissingProc is returned by LoadProcs when a required entry point
// cannot be resolved.
var ErrMissingProc = errors.New("gl: missing entry point")

// Procs is the native dispatch table: entry point addresses resolved once
// when a context is created. A Procs is immutable after LoadProcs.
type Procs struct {
	addrs [numProcs]uintptr
}

// LoadProcs resolves every entry point with lookup, which is typically
// wglGetProcAddress or glXGetProcAddressARB with a fallback to the GL
// library's exported symbols. Missing optional entry points are left
// zero; a missing required entry point is an error.
func LoadProcs(lookup func(name string) uintptr) (*Procs, error) {
	p := new(Procs)
	var missing []string
	for i, e := range procTable {
		addr := lookup(e.name)
		if addr == 0 && !e.optional {
			missing = append(missing, e.name)
			continue
		}
		p.addrs[i] = addr
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingProc, strings.Join(missing, ", "))
	}
	return p, nil
}

// Addr returns the address of the named entry point, or 0 if it is
// unknown or was not resolved.
func (p *Procs) Addr(name string) uintptr {
	for i, e := range procTable {
		if e.name == name {
			return p.addrs[i]
		}
	}
	return 0
}

// Has reports whether the named entry point was resolved.
func (p *Procs) Has(name string) bool {
	return p.Addr(name) != 0
}

// Instanced reports whether the instanced draw entry points are present.
func (p *Procs) Instanced() bool {
	return p.addrs[procDrawArraysInstanced] != 0 &&
		p.addrs[procDrawElementsInstanced] != 0 &&
		p.addrs[procVertexAttribDivisor] != 0
}

// VertexArrays reports whether vertex array objects are supported.
func (p *Procs) VertexArrays() bool {
	return p.addrs[procGenVertexArrays] != 0 &&
		p.addrs[procBindVertexArray] != 0 &&
		p.addrs[procDeleteVertexArrays] != 0
}

// ProcNames returns the native names of every entry point in the table.
func ProcNames() []string {
	names := make([]string, 0, numProcs)
	for _, e := range procTable {
		names = append(names, e.name)
	}
	return names
}

// Optional reports whether the named entry point may be absent.
func Optional(name string) bool {
	for _, e := range procTable {
		if e.name == name {
			return e.optional
		}
	}
	return false
}
