// SPDX-License-Identifier: Unlicense OR MIT

package glue

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config describes the pixel format and context to request from the
// platform.
type Config struct {
	// Version is the minimum GL version of desktop contexts.
	Version Version `toml:"version"`
	// Profile selects the core or compatibility profile.
	Profile Profile `toml:"profile"`

	RedBits   int `toml:"red_bits"`
	GreenBits int `toml:"green_bits"`
	BlueBits  int `toml:"blue_bits"`
	AlphaBits int `toml:"alpha_bits"`
	// DepthBits is 0, 16, 24 or 32.
	DepthBits int `toml:"depth_bits"`
	// StencilBits is 0 or 8.
	StencilBits int `toml:"stencil_bits"`
	// Samples is the number of multisample samples. 0 and 1 both
	// disable multisampling.
	Samples int `toml:"samples"`

	// VSync synchronizes presentation with the display refresh.
	VSync bool `toml:"vsync"`
	// SRGB requests an sRGB capable default framebuffer.
	SRGB         bool `toml:"srgb"`
	DoubleBuffer bool `toml:"double_buffer"`
}

// Version is a GL version.
type Version struct {
	Major, Minor int
}

// Profile is a desktop GL context profile.
type Profile uint8

const (
	ProfileCore Profile = iota
	ProfileCompatibility
)

// Option configures a Config.
type Option func(cfg *Config)

// DefaultConfig returns the default configuration: a GL 3.3 core context
// with 8 bit RGBA color, 24 bit depth, 8 bit stencil, 16x multisampling
// and an sRGB capable, double buffered framebuffer.
func DefaultConfig() Config {
	return Config{
		Version:      Version{3, 3},
		Profile:      ProfileCore,
		RedBits:      8,
		GreenBits:    8,
		BlueBits:     8,
		AlphaBits:    8,
		DepthBits:    24,
		StencilBits:  8,
		Samples:      16,
		VSync:        true,
		SRGB:         true,
		DoubleBuffer: true,
	}
}

// NewConfig returns DefaultConfig modified by opts.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithDepthBits sets the depth buffer size.
func WithDepthBits(bits int) Option {
	return func(cfg *Config) {
		cfg.DepthBits = bits
	}
}

// WithStencilBits sets the stencil buffer size.
func WithStencilBits(bits int) Option {
	return func(cfg *Config) {
		cfg.StencilBits = bits
	}
}

// WithSamples sets the multisample count.
func WithSamples(n int) Option {
	return func(cfg *Config) {
		cfg.Samples = n
	}
}

// WithVSync enables or disables vertical synchronization.
func WithVSync(enable bool) Option {
	return func(cfg *Config) {
		cfg.VSync = enable
	}
}

// WithVersion sets the requested GL version.
func WithVersion(major, minor int) Option {
	return func(cfg *Config) {
		cfg.Version = Version{major, minor}
	}
}

// WithProfile sets the GL profile.
func WithProfile(p Profile) Option {
	return func(cfg *Config) {
		cfg.Profile = p
	}
}

// WithSRGB requests or declines an sRGB capable framebuffer.
func WithSRGB(enable bool) Option {
	return func(cfg *Config) {
		cfg.SRGB = enable
	}
}

// Validate reports whether every field of cfg is within the range any
// platform could accept. Errors wrap ErrInvalidConfig.
func (cfg Config) Validate() error {
	switch cfg.DepthBits {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("%w: depth_bits %d not in {0, 16, 24, 32}", ErrInvalidConfig, cfg.DepthBits)
	}
	switch cfg.StencilBits {
	case 0, 8:
	default:
		return fmt.Errorf("%w: stencil_bits %d not in {0, 8}", ErrInvalidConfig, cfg.StencilBits)
	}
	switch cfg.Samples {
	case 0, 1, 2, 4, 8, 16:
	default:
		return fmt.Errorf("%w: samples %d not in {0, 1, 2, 4, 8, 16}", ErrInvalidConfig, cfg.Samples)
	}
	for _, c := range []struct {
		name string
		bits int
	}{
		{"red_bits", cfg.RedBits},
		{"green_bits", cfg.GreenBits},
		{"blue_bits", cfg.BlueBits},
		{"alpha_bits", cfg.AlphaBits},
	} {
		if c.bits < 0 || c.bits > 16 {
			return fmt.Errorf("%w: %s %d out of range [0, 16]", ErrInvalidConfig, c.name, c.bits)
		}
	}
	if cfg.Version.Major < 2 || cfg.Version.Minor < 0 {
		return fmt.Errorf("%w: version %s is below 2.0", ErrInvalidConfig, cfg.Version)
	}
	switch cfg.Profile {
	case ProfileCore, ProfileCompatibility:
	default:
		return fmt.Errorf("%w: unknown profile %d", ErrInvalidConfig, cfg.Profile)
	}
	return nil
}

// Multisampled reports whether cfg requests a multisampled framebuffer.
func (cfg Config) Multisampled() bool {
	return cfg.Samples > 1
}

// SwapInterval returns the swap interval implied by VSync.
func (cfg Config) SwapInterval() int {
	if cfg.VSync {
		return 1
	}
	return 0
}

// Relax returns a less demanding copy of cfg for retrying after
// ErrContextCreation. Multisampling is reduced first, then sRGB, stencil
// and depth are dropped, and finally a 2.1 compatibility context is
// requested. It returns false when nothing is left to relax.
func (cfg Config) Relax() (Config, bool) {
	switch {
	case cfg.Samples > 1:
		cfg.Samples /= 2
		if cfg.Samples == 1 {
			cfg.Samples = 0
		}
	case cfg.SRGB:
		cfg.SRGB = false
	case cfg.StencilBits > 0:
		cfg.StencilBits = 0
	case cfg.DepthBits > 16:
		cfg.DepthBits = 16
	case cfg.DepthBits > 0:
		cfg.DepthBits = 0
	case cfg.Version.AtLeast(2, 2) || cfg.Profile != ProfileCompatibility:
		if cfg.Version.AtLeast(2, 2) {
			cfg.Version = Version{2, 1}
		}
		cfg.Profile = ProfileCompatibility
	default:
		return cfg, false
	}
	return cfg, true
}

// ParseConfig decodes a TOML configuration. Keys that are absent keep
// their DefaultConfig value; unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return checkDecoded(cfg, md)
}

// LoadConfig reads and decodes the TOML configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func checkDecoded(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is major.minor or newer.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || v.Major == major && v.Minor >= minor
}

// UnmarshalText decodes a version of the form "3.3".
func (v *Version) UnmarshalText(text []byte) error {
	var major, minor int
	if _, err := fmt.Sscanf(string(text), "%d.%d", &major, &minor); err != nil {
		return fmt.Errorf("malformed version %q", text)
	}
	*v = Version{major, minor}
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	default:
		return fmt.Sprintf("Profile(%d)", uint8(p))
	}
}

// UnmarshalText decodes "core" or "compatibility".
func (p *Profile) UnmarshalText(text []byte) error {
	switch string(text) {
	case "core":
		*p = ProfileCore
	case "compatibility":
		*p = ProfileCompatibility
	default:
		return fmt.Errorf("unknown profile %q", text)
	}
	return nil
}

func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
