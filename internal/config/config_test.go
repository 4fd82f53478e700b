package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "non positive aspect",
			mutate: func(cfg *Config) {
				cfg.Viewport.Aspect = 0
			},
			wantErr: "viewport.aspect must be positive",
		},
		{
			name: "non positive zoom",
			mutate: func(cfg *Config) {
				cfg.Viewport.Zoom = -1
			},
			wantErr: "viewport.zoom must be positive",
		},
		{
			name: "missing poll interval",
			mutate: func(cfg *Config) {
				cfg.Streaming.PollInterval = 0
			},
			wantErr: "streaming.pollInterval must be positive",
		},
		{
			name: "unknown noise type",
			mutate: func(cfg *Config) {
				cfg.Noise.Grass.Type = "worley"
			},
			wantErr: `noise.grass: type "worley" is unknown`,
		},
		{
			name: "unknown interpolation",
			mutate: func(cfg *Config) {
				cfg.Noise.Terrain.Interp = "cubic"
			},
			wantErr: `noise.terrain: interp "cubic" is unknown`,
		},
		{
			name: "fractal without octaves",
			mutate: func(cfg *Config) {
				cfg.Noise.Tree.Octaves = 0
			},
			wantErr: "noise.tree: octaves must be positive",
		},
		{
			name: "unknown fractal type",
			mutate: func(cfg *Config) {
				cfg.Noise.Terrain.FractalType = "ridged"
			},
			wantErr: `noise.terrain: fractalType "ridged" is unknown`,
		},
		{
			name: "non positive frame rate",
			mutate: func(cfg *Config) {
				cfg.Sim.FrameRate = 0
			},
			wantErr: "sim.frameRate must be positive",
		},
		{
			name: "unknown walk direction",
			mutate: func(cfg *Config) {
				cfg.Sim.Path[0].Direction = "north"
			},
			wantErr: `sim.path[0].direction "north" is unknown`,
		},
		{
			name: "empty walk leg",
			mutate: func(cfg *Config) {
				cfg.Sim.Path[1].For = 0
			},
			wantErr: "sim.path[1].for must be positive",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error %q, got nil", tc.wantErr)
			}
			if err.Error() != tc.wantErr {
				t.Fatalf("unexpected error: got %q want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestZeroFrequencyIsAccepted(t *testing.T) {
	cfg := Default()
	cfg.Noise.Terrain.Frequency = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero frequency should be accepted: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Noise.Terrain.Seed != 1337 || cfg.Noise.Grass.Seed != 2345 || cfg.Noise.Tree.Seed != 5433 {
		t.Fatalf("unexpected default seeds: %+v", cfg.Noise)
	}
	if cfg.Streaming.PollInterval.Duration() != 25*time.Millisecond {
		t.Fatalf("unexpected poll interval %v", cfg.Streaming.PollInterval.Duration())
	}
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	payload := `{
		"viewport": {"aspect": 2, "zoom": 6},
		"streaming": {"pollInterval": "10ms"},
		"noise": {"terrain": {"seed": 99, "frequency": 0.05, "type": "perlin_fractal", "interp": "linear", "octaves": 2, "lacunarity": 2, "gain": 0.4, "fractalType": "billow"}}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Viewport.Aspect != 2 || cfg.Viewport.Zoom != 6 {
		t.Fatalf("viewport not applied: %+v", cfg.Viewport)
	}
	if cfg.Streaming.PollInterval.Duration() != 10*time.Millisecond {
		t.Fatalf("poll interval not applied: %v", cfg.Streaming.PollInterval.Duration())
	}
	if cfg.Noise.Terrain.Type != "perlin_fractal" || cfg.Noise.Terrain.FractalType != "billow" {
		t.Fatalf("terrain noise not applied: %+v", cfg.Noise.Terrain)
	}
	if cfg.Noise.Grass.Seed != 2345 {
		t.Fatalf("grass layer should keep its default seed, got %d", cfg.Noise.Grass.Seed)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	payload := strings.Join([]string{
		"viewport:",
		"  zoom: 8",
		"streaming:",
		"  pollInterval: 40ms",
		"preview:",
		"  dir: /tmp/previews",
		"sim:",
		"  frameRate: 30",
		"  path:",
		"    - direction: up",
		"      for: 1s",
	}, "\n")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Viewport.Zoom != 8 {
		t.Fatalf("zoom not applied: %v", cfg.Viewport.Zoom)
	}
	if cfg.Streaming.PollInterval.Duration() != 40*time.Millisecond {
		t.Fatalf("poll interval not applied: %v", cfg.Streaming.PollInterval.Duration())
	}
	if cfg.Preview.Dir != "/tmp/previews" {
		t.Fatalf("preview dir not applied: %q", cfg.Preview.Dir)
	}
	if len(cfg.Sim.Path) != 1 || cfg.Sim.Path[0].Direction != "up" || cfg.Sim.Path[0].For.Duration() != time.Second {
		t.Fatalf("walk path not applied: %+v", cfg.Sim.Path)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	if err := os.WriteFile(path, []byte(`{"viewport": {"zoom": 0}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "viewport.zoom must be positive") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDurationJSONRoundTrip(t *testing.T) {
	in := struct {
		D Duration `json:"d"`
	}{D: Duration(1500 * time.Millisecond)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"d":"1.5s"}` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var numeric struct {
		D Duration `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d": 1000000}`), &numeric); err != nil {
		t.Fatalf("unmarshal numeric: %v", err)
	}
	if numeric.D.Duration() != time.Millisecond {
		t.Fatalf("numeric duration decoded to %v", numeric.D.Duration())
	}
}
