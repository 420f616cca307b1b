// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"strings"
	"testing"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in  string
		ver [2]int
		es  bool
	}{
		{"3.3.0 NVIDIA 535.104.05", [2]int{3, 3}, false},
		{"4.6 (Core Profile) Mesa 23.1.4", [2]int{4, 6}, false},
		{"OpenGL ES 3.0 Mesa 22.0", [2]int{3, 0}, true},
		{"WebGL 2.0 (OpenGL ES 3.0 Chromium)", [2]int{3, 0}, true},
		{"2.1 Metal - 76.3", [2]int{2, 1}, false},
	}
	for _, test := range tests {
		got, err := ParseGLVersion(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.ver {
			t.Errorf("%q: got %v, expected %v", test.in, got, test.ver)
		}
		if es := IsES(test.in); es != test.es {
			t.Errorf("%q: IsES = %v", test.in, es)
		}
	}
	if _, err := ParseGLVersion("garbage"); err == nil {
		t.Error("parsed a malformed version string")
	}
}

func TestLoadProcs(t *testing.T) {
	next := uintptr(0x1000)
	p, err := LoadProcs(func(name string) uintptr {
		next += 8
		return next
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range ProcNames() {
		if !p.Has(name) {
			t.Errorf("%s not resolved", name)
		}
	}
	if !p.Instanced() || !p.VertexArrays() {
		t.Error("optional entry points were dropped")
	}
}

func TestLoadProcsOptional(t *testing.T) {
	p, err := LoadProcs(func(name string) uintptr {
		if Optional(name) {
			return 0
		}
		return 1
	})
	if err != nil {
		t.Fatalf("missing optional entry points rejected: %v", err)
	}
	if p.Instanced() {
		t.Error("instancing reported without its entry points")
	}
	if p.Has("glDrawArraysInstanced") {
		t.Error("unresolved entry point reported present")
	}
	if !p.Has("glDrawArrays") {
		t.Error("required entry point missing")
	}
}

func TestLoadProcsMissing(t *testing.T) {
	_, err := LoadProcs(func(name string) uintptr {
		if name == "glViewport" || name == "glClear" {
			return 0
		}
		return 1
	})
	if !errors.Is(err, ErrMissingProc) {
		t.Fatalf("got %v, expected ErrMissingProc", err)
	}
	for _, name := range []string{"glViewport", "glClear"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestProcNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range ProcNames() {
		if name == "" {
			t.Fatal("empty entry point name")
		}
		if seen[name] {
			t.Errorf("duplicate entry point %s", name)
		}
		seen[name] = true
	}
}
