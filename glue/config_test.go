// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Version{3, 3}, cfg.Version)
	assert.Equal(t, ProfileCore, cfg.Profile)
	assert.Equal(t, 24, cfg.DepthBits)
	assert.Equal(t, 8, cfg.StencilBits)
	assert.Equal(t, 16, cfg.Samples)
	assert.True(t, cfg.SRGB)
	assert.True(t, cfg.DoubleBuffer)
	assert.Equal(t, 1, cfg.SwapInterval())
}

func TestOptions(t *testing.T) {
	cfg := NewConfig(
		WithDepthBits(0),
		WithStencilBits(0),
		WithSamples(1),
		WithVSync(false),
		WithVersion(4, 1),
		WithProfile(ProfileCompatibility),
		WithSRGB(false),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.DepthBits)
	assert.False(t, cfg.Multisampled())
	assert.Equal(t, 0, cfg.SwapInterval())
	assert.True(t, cfg.Version.AtLeast(3, 3))
	assert.False(t, cfg.Version.AtLeast(4, 2))
	assert.Equal(t, ProfileCompatibility, cfg.Profile)
	assert.False(t, cfg.SRGB)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  func(*Config)
	}{
		{"depth", func(c *Config) { c.DepthBits = 12 }},
		{"stencil", func(c *Config) { c.StencilBits = 4 }},
		{"samples", func(c *Config) { c.Samples = 3 }},
		{"color", func(c *Config) { c.RedBits = 17 }},
		{"negative color", func(c *Config) { c.AlphaBits = -1 }},
		{"version", func(c *Config) { c.Version = Version{1, 5} }},
		{"profile", func(c *Config) { c.Profile = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.opt)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestRelax(t *testing.T) {
	cfg := DefaultConfig()
	var steps []Config
	for {
		next, ok := cfg.Relax()
		if !ok {
			break
		}
		require.NoError(t, next.Validate())
		steps = append(steps, next)
		cfg = next
	}
	samples := []int{8, 4, 2, 0}
	for i, s := range samples {
		assert.Equal(t, s, steps[i].Samples, "step %d", i)
		assert.True(t, steps[i].SRGB)
	}
	rest := steps[len(samples):]
	require.Len(t, rest, 5)
	assert.False(t, rest[0].SRGB)
	assert.Equal(t, 8, rest[0].StencilBits)
	assert.Equal(t, 0, rest[1].StencilBits)
	assert.Equal(t, 16, rest[2].DepthBits)
	assert.Equal(t, 0, rest[3].DepthBits)
	assert.Equal(t, DefaultConfig().Version, rest[3].Version)
	assert.Equal(t, Version{2, 1}, rest[4].Version)
	assert.Equal(t, ProfileCompatibility, rest[4].Profile)

	// Color is never relaxed.
	assert.Equal(t, 8, cfg.RedBits)
}

func TestRelaxProfile(t *testing.T) {
	cfg := Config{Version: Version{2, 0}, Profile: ProfileCore}
	next, ok := cfg.Relax()
	require.True(t, ok)
	assert.Equal(t, Version{2, 0}, next.Version)
	assert.Equal(t, ProfileCompatibility, next.Profile)
	_, ok = next.Relax()
	assert.False(t, ok)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
version = "4.1"
profile = "compatibility"
depth_bits = 16
samples = 4
vsync = false
`))
	require.NoError(t, err)
	assert.Equal(t, Version{4, 1}, cfg.Version)
	assert.Equal(t, ProfileCompatibility, cfg.Profile)
	assert.Equal(t, 16, cfg.DepthBits)
	assert.Equal(t, 4, cfg.Samples)
	assert.False(t, cfg.VSync)
	// Absent keys keep their defaults.
	assert.Equal(t, 8, cfg.StencilBits)
	assert.True(t, cfg.SRGB)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{"unknown key", `depth = 24`},
		{"out of range", `samples = 5`},
		{"bad version", `version = "three"`},
		{"bad profile", `profile = "es"`},
		{"syntax", `depth_bits = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gfx.toml")
	require.NoError(t, os.WriteFile(path, []byte("stencil_bits = 0\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.StencilBits)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
