package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Flow.WindowSize != 15 || cfg.Flow.MaxLevel != 2 || cfg.Flow.MaxIterations != 10 || cfg.Flow.Epsilon != 0.03 {
		t.Fatalf("unexpected flow defaults: %+v", cfg.Flow)
	}
	if cfg.Animation.TargetX != 300 || cfg.Animation.TargetY != 300 || cfg.Animation.Step != 5 {
		t.Fatalf("unexpected animation defaults: %+v", cfg.Animation)
	}
	if cfg.AnimationInterval() != 10*time.Millisecond {
		t.Fatalf("animation interval: got %v", cfg.AnimationInterval())
	}
	if cfg.TrackingKeyWait() != 30*time.Millisecond || cfg.BoxKeyWait() != 20*time.Millisecond {
		t.Fatalf("key waits: got %v and %v", cfg.TrackingKeyWait(), cfg.BoxKeyWait())
	}
	if cfg.Tracking.ExitKey != 27 {
		t.Fatalf("exit key: got %d", cfg.Tracking.ExitKey)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	data := `
[Camera]
Source = "file"
File = "clip.mp4"

[Animation]
Step = 10
TargetX = 640
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Camera.Source != SourceFile || cfg.Camera.File != "clip.mp4" {
		t.Fatalf("camera not overlaid: %+v", cfg.Camera)
	}
	if cfg.Animation.Step != 10 || cfg.Animation.TargetX != 640 {
		t.Fatalf("animation not overlaid: %+v", cfg.Animation)
	}
	// untouched keys keep their defaults
	if cfg.Animation.TargetY != 300 || cfg.Flow.WindowSize != 15 {
		t.Fatalf("defaults lost: %+v %+v", cfg.Animation, cfg.Flow)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Device != 1 {
		t.Fatalf("device: got %d", cfg.Camera.Device)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	if err := os.WriteFile(path, []byte("[Animation]\nSpeed = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.Animation.Step = 0 }},
		{"negative step", func(c *Config) { c.Animation.Step = -5 }},
		{"zero interval", func(c *Config) { c.Animation.IntervalMS = 0 }},
		{"even window", func(c *Config) { c.Flow.WindowSize = 14 }},
		{"zero iterations", func(c *Config) { c.Flow.MaxIterations = 0 }},
		{"unknown source", func(c *Config) { c.Camera.Source = "network" }},
		{"file without path", func(c *Config) { c.Camera.Source = SourceFile }},
		{"unknown policy", func(c *Config) { c.Tracking.LossPolicy = "forget" }},
		{"smoothing without noise", func(c *Config) {
			c.Tracking.Smoothing.Enabled = true
			c.Tracking.Smoothing.StdDevM = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
