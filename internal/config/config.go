package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ErrInvalid is returned by Validate for any out of range setting.
var ErrInvalid = errors.New("invalid configuration")

const (
	SourceCamera = "camera"
	SourceFile   = "file"
	SourceScreen = "screen"

	LossRetain = "retain"
	LossClear  = "clear"
)

type Config struct {
	Camera struct {
		Source  string // camera, file or screen
		Device  int
		File    string
		Display int
	}
	Window struct {
		Name string
	}
	Tracking struct {
		KeyWaitMS    int
		ExitKey      int
		MarkerRadius int
		LossPolicy   string
		Smoothing    struct {
			Enabled bool
			StdDevA float64 // process noise
			StdDevM float64 // measurement noise
		}
	}
	Box struct {
		KeyWaitMS int
	}
	Flow struct {
		WindowSize    int
		MaxLevel      int
		MaxIterations int
		Epsilon       float64
	}
	Animation struct {
		TargetX    int
		TargetY    int
		Step       int
		IntervalMS int
		StopHotkey []string
	}
}

func NewConfig() *Config {
	cfg := &Config{}

	cfg.Camera.Source = SourceCamera
	cfg.Camera.Device = 1

	cfg.Window.Name = "Tracking"

	cfg.Tracking.KeyWaitMS = 30
	cfg.Tracking.ExitKey = 27 // Esc
	cfg.Tracking.MarkerRadius = 5
	cfg.Tracking.LossPolicy = LossRetain
	cfg.Tracking.Smoothing.StdDevA = 2.0
	cfg.Tracking.Smoothing.StdDevM = 0.1

	cfg.Box.KeyWaitMS = 20

	cfg.Flow.WindowSize = 15
	cfg.Flow.MaxLevel = 2
	cfg.Flow.MaxIterations = 10
	cfg.Flow.Epsilon = 0.03

	cfg.Animation.TargetX = 300
	cfg.Animation.TargetY = 300
	cfg.Animation.Step = 5
	cfg.Animation.IntervalMS = 10
	cfg.Animation.StopHotkey = []string{"q", "ctrl", "shift"}

	return cfg
}

// Load returns the defaults overlaid with the TOML file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Wrapf(ErrInvalid, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	switch c.Camera.Source {
	case SourceCamera:
		check(c.Camera.Device >= 0, "camera device must not be negative: %d", c.Camera.Device)
	case SourceFile:
		check(c.Camera.File != "", "file source needs a file path")
	case SourceScreen:
		check(c.Camera.Display >= 0, "display index must not be negative: %d", c.Camera.Display)
	default:
		check(false, "unknown source %q", c.Camera.Source)
	}

	check(c.Window.Name != "", "window name is empty")
	check(c.Tracking.KeyWaitMS > 0, "tracking key wait must be positive: %d", c.Tracking.KeyWaitMS)
	check(c.Tracking.MarkerRadius > 0, "marker radius must be positive: %d", c.Tracking.MarkerRadius)
	check(c.Tracking.LossPolicy == LossRetain || c.Tracking.LossPolicy == LossClear,
		"unknown loss policy %q", c.Tracking.LossPolicy)
	if c.Tracking.Smoothing.Enabled {
		check(c.Tracking.Smoothing.StdDevA > 0 && c.Tracking.Smoothing.StdDevM > 0,
			"smoothing deviations must be positive")
	}
	check(c.Box.KeyWaitMS > 0, "box key wait must be positive: %d", c.Box.KeyWaitMS)

	check(c.Flow.WindowSize > 0 && c.Flow.WindowSize%2 == 1,
		"flow window size must be a positive odd number: %d", c.Flow.WindowSize)
	check(c.Flow.MaxLevel >= 0, "flow max level must not be negative: %d", c.Flow.MaxLevel)
	check(c.Flow.MaxIterations > 0, "flow max iterations must be positive: %d", c.Flow.MaxIterations)
	check(c.Flow.Epsilon > 0, "flow epsilon must be positive: %g", c.Flow.Epsilon)

	check(c.Animation.Step > 0, "animation step must be positive: %d", c.Animation.Step)
	check(c.Animation.IntervalMS > 0, "animation interval must be positive: %d", c.Animation.IntervalMS)

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) TrackingKeyWait() time.Duration {
	return time.Duration(c.Tracking.KeyWaitMS) * time.Millisecond
}

func (c *Config) BoxKeyWait() time.Duration {
	return time.Duration(c.Box.KeyWaitMS) * time.Millisecond
}

func (c *Config) AnimationInterval() time.Duration {
	return time.Duration(c.Animation.IntervalMS) * time.Millisecond
}
