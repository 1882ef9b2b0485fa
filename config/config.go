// Package config holds the tunable game configuration. Default returns the
// stock game, Load overlays a YAML file on top of it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/oasis/asset"
	"github.com/lixenwraith/oasis/camera"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/placement"
	"github.com/lixenwraith/oasis/vmath"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// World is the playfield and player kinematics
type World struct {
	Bounds       vmath.Rect `yaml:"bounds"`   // player movement limits
	Spawn        vmath.Vec3 `yaml:"spawn"`
	Headings     int        `yaml:"headings"` // 4 or 8
	Gravity      float64    `yaml:"gravity"`  // per tick, negative
	JumpVelocity float64    `yaml:"jump_velocity"`
}

// Session is the scoring rules
type Session struct {
	Countdown int `yaml:"countdown"`
	Score     int `yaml:"score"`
}

// Timing is the scheduler rates in Hz
type Timing struct {
	SimHz       float64 `yaml:"sim_hz"`
	CountdownHz float64 `yaml:"countdown_hz"`
}

// Static is a fixed entity of the world layout
type Static struct {
	Template core.EntityTemplate `yaml:"template"`
	Position vmath.Vec3          `yaml:"position"`
}

// Camera is the two camera rigs
type Camera struct {
	ThirdPerson camera.Params `yaml:"third_person"`
	FirstPerson camera.Params `yaml:"first_person"`
}

// Audio is cue mixing
type Audio struct {
	Mute    bool               `yaml:"mute"`
	Volumes map[string]float64 `yaml:"volumes"`
}

// Spectator is the optional websocket frame broadcaster
type Spectator struct {
	Addr string `yaml:"addr"` // empty disables the server
	Path string `yaml:"path"`
}

// Log is the debug log destination
type Log struct {
	Dir string `yaml:"dir"`
}

// Config is the complete game configuration
type Config struct {
	World     World                     `yaml:"world"`
	Session   Session                   `yaml:"session"`
	Timing    Timing                    `yaml:"timing"`
	Player    core.EntityTemplate       `yaml:"player"`
	Quotas    []placement.Quota         `yaml:"quotas"`
	Margins   map[core.Category]float64 `yaml:"margins"`
	Regions   []interaction.Region      `yaml:"regions"`
	Statics   []Static                  `yaml:"statics"`
	Camera    Camera                    `yaml:"camera"`
	Audio     Audio                     `yaml:"audio"`
	Assets    asset.Catalog             `yaml:"assets"`
	Spectator Spectator                 `yaml:"spectator"`
	Log       Log                       `yaml:"log"`
}

// Load reads path over the defaults and validates the result
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result
// Lists present in the document replace the default lists wholesale
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if !c.World.Bounds.Valid() {
		return invalid("world bounds %+v inverted", c.World.Bounds)
	}
	if c.World.Headings != 4 && c.World.Headings != 8 {
		return invalid("headings %d, want 4 or 8", c.World.Headings)
	}
	if c.World.Gravity >= 0 {
		return invalid("gravity %v must pull down", c.World.Gravity)
	}
	if c.World.JumpVelocity <= 0 {
		return invalid("jump velocity %v must be positive", c.World.JumpVelocity)
	}
	if c.Timing.SimHz <= 0 || c.Timing.CountdownHz <= 0 {
		return invalid("tick rates must be positive, got sim %v countdown %v", c.Timing.SimHz, c.Timing.CountdownHz)
	}
	if c.Session.Countdown < 0 {
		return invalid("negative countdown %d", c.Session.Countdown)
	}
	if c.Player.Category != core.CategoryPlayer {
		return invalid("player template has category %s", c.Player.Category)
	}
	for i := range c.Quotas {
		if err := c.Quotas[i].Validate(); err != nil {
			return invalid("%v", err)
		}
	}
	for cat, m := range c.Margins {
		if m < 0 {
			return invalid("negative margin for %s", cat)
		}
	}
	names := make(map[string]bool, len(c.Regions))
	for i := range c.Regions {
		r := &c.Regions[i]
		if err := r.Validate(); err != nil {
			return invalid("%v", err)
		}
		if names[r.Name] {
			return invalid("duplicate region %s", r.Name)
		}
		names[r.Name] = true
	}
	for z := range c.Assets {
		if z > core.ZoneCave {
			return invalid("asset set for unknown zone %d", z)
		}
	}
	return nil
}
