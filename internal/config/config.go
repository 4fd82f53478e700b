package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that accepts human readable
// strings such as "25ms" in JSON and YAML configuration files while still
// allowing numeric nanosecond values.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a
// numeric value representing nanoseconds. Empty strings and null values decode
// to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// MarshalYAML mirrors MarshalJSON.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: expected scalar, got kind %d", node.Kind)
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("duration: decode number: %w", err)
		}
		*d = Duration(time.Duration(f))
		return nil
	}
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters of the tile world.
type Config struct {
	Viewport  ViewportConfig  `json:"viewport" yaml:"viewport"`
	Streaming StreamingConfig `json:"streaming" yaml:"streaming"`
	Noise     NoiseLayers     `json:"noise" yaml:"noise"`
	Preview   PreviewConfig   `json:"preview" yaml:"preview"`
	Trace     TraceConfig     `json:"trace" yaml:"trace"`
	Sim       SimConfig       `json:"sim" yaml:"sim"`
}

// ViewportConfig describes the orthographic camera. The viewport size in tiles,
// and therefore the chunk size, is derived from it once at startup.
type ViewportConfig struct {
	Aspect float64 `json:"aspect" yaml:"aspect"` // width / height
	Zoom   float64 `json:"zoom" yaml:"zoom"`     // half height in world units
}

type StreamingConfig struct {
	PollInterval Duration `json:"pollInterval" yaml:"pollInterval"` // initial population wait, e.g. "25ms"
}

// NoiseLayers holds the three independent fields sampled by the deriver.
type NoiseLayers struct {
	Terrain NoiseConfig `json:"terrain" yaml:"terrain"`
	Grass   NoiseConfig `json:"grass" yaml:"grass"`
	Tree    NoiseConfig `json:"tree" yaml:"tree"`
}

type NoiseConfig struct {
	Seed        int64   `json:"seed" yaml:"seed"`
	Frequency   float64 `json:"frequency" yaml:"frequency"`
	Type        string  `json:"type" yaml:"type"`               // simplex, simplex_fractal, perlin, perlin_fractal, value, value_fractal
	Interp      string  `json:"interp" yaml:"interp"`           // linear, hermite, quintic
	Octaves     int     `json:"octaves" yaml:"octaves"`         // fractal types only
	Lacunarity  float64 `json:"lacunarity" yaml:"lacunarity"`   // frequency multiplier per octave
	Gain        float64 `json:"gain" yaml:"gain"`               // amplitude multiplier per octave
	FractalType string  `json:"fractalType" yaml:"fractalType"` // fbm, billow, rigid_multi
}

type PreviewConfig struct {
	Dir string `json:"dir" yaml:"dir"` // empty disables chunk previews
}

type TraceConfig struct {
	Dir string `json:"dir" yaml:"dir"` // empty disables the lifecycle trace
}

// SimConfig drives the headless host.
type SimConfig struct {
	FrameRate int       `json:"frameRate" yaml:"frameRate"`
	MaxFrames int       `json:"maxFrames" yaml:"maxFrames"` // 0 runs until the path ends or a signal arrives
	Seed      uint64    `json:"seed" yaml:"seed"`           // player animation randomness
	StartX    float64   `json:"startX" yaml:"startX"`
	StartY    float64   `json:"startY" yaml:"startY"`
	Path      []WalkLeg `json:"path" yaml:"path"`
}

// WalkLeg holds a direction key (left, right, up, down or idle) for a duration.
type WalkLeg struct {
	Direction string   `json:"direction" yaml:"direction"`
	For       Duration `json:"for" yaml:"for"`
}

// Load reads configuration from a JSON or YAML file if provided. The format is
// picked from the extension. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the stock tile world setup: a four
// octave simplex terrain field and two single purpose fields for grass
// variants and tree placement.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Aspect: 16.0 / 9.0,
			Zoom:   4,
		},
		Streaming: StreamingConfig{
			PollInterval: Duration(25 * time.Millisecond),
		},
		Noise: NoiseLayers{
			Terrain: NoiseConfig{
				Seed:        1337,
				Frequency:   0.02,
				Type:        "simplex_fractal",
				Interp:      "quintic",
				Octaves:     4,
				Lacunarity:  2.0,
				Gain:        0.5,
				FractalType: "fbm",
			},
			Grass: NoiseConfig{
				Seed:        2345,
				Frequency:   0.1,
				Type:        "simplex_fractal",
				Interp:      "quintic",
				Octaves:     3,
				Lacunarity:  2.0,
				Gain:        0.5,
				FractalType: "fbm",
			},
			Tree: NoiseConfig{
				Seed:        5433,
				Frequency:   0.02,
				Type:        "simplex_fractal",
				Interp:      "quintic",
				Octaves:     3,
				Lacunarity:  2.0,
				Gain:        0.5,
				FractalType: "fbm",
			},
		},
		Sim: SimConfig{
			FrameRate: 60,
			Seed:      1,
			Path: []WalkLeg{
				{Direction: "right", For: Duration(20 * time.Second)},
				{Direction: "up", For: Duration(10 * time.Second)},
				{Direction: "idle", For: Duration(2 * time.Second)},
				{Direction: "left", For: Duration(20 * time.Second)},
				{Direction: "down", For: Duration(10 * time.Second)},
			},
		},
	}
}

var (
	noiseTypes   = map[string]bool{"simplex": true, "simplex_fractal": true, "perlin": true, "perlin_fractal": true, "value": true, "value_fractal": true}
	interps      = map[string]bool{"linear": true, "hermite": true, "quintic": true}
	fractalTypes = map[string]bool{"fbm": true, "billow": true, "rigid_multi": true}
	directions   = map[string]bool{"left": true, "right": true, "up": true, "down": true, "idle": true}
)

// Validate rejects structurally broken configurations. Noise frequencies are
// not checked: a zero frequency yields flat terrain, which is legal.
func (c *Config) Validate() error {
	if c.Viewport.Aspect <= 0 {
		return errors.New("viewport.aspect must be positive")
	}
	if c.Viewport.Zoom <= 0 {
		return errors.New("viewport.zoom must be positive")
	}
	if c.Streaming.PollInterval <= 0 {
		return errors.New("streaming.pollInterval must be positive")
	}
	layers := []struct {
		name string
		cfg  NoiseConfig
	}{
		{"noise.terrain", c.Noise.Terrain},
		{"noise.grass", c.Noise.Grass},
		{"noise.tree", c.Noise.Tree},
	}
	for _, layer := range layers {
		if err := layer.cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", layer.name, err)
		}
	}
	if c.Sim.FrameRate <= 0 {
		return errors.New("sim.frameRate must be positive")
	}
	if c.Sim.MaxFrames < 0 {
		return errors.New("sim.maxFrames cannot be negative")
	}
	for i, leg := range c.Sim.Path {
		if !directions[leg.Direction] {
			return fmt.Errorf("sim.path[%d].direction %q is unknown", i, leg.Direction)
		}
		if leg.For <= 0 {
			return fmt.Errorf("sim.path[%d].for must be positive", i)
		}
	}
	return nil
}

// Validate checks the enumerated fields of a noise layer.
func (n NoiseConfig) Validate() error {
	if !noiseTypes[n.Type] {
		return fmt.Errorf("type %q is unknown", n.Type)
	}
	if !interps[n.Interp] {
		return fmt.Errorf("interp %q is unknown", n.Interp)
	}
	if strings.HasSuffix(n.Type, "_fractal") {
		if n.Octaves <= 0 {
			return errors.New("octaves must be positive")
		}
		if !fractalTypes[n.FractalType] {
			return fmt.Errorf("fractalType %q is unknown", n.FractalType)
		}
	}
	return nil
}
