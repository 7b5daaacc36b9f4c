// Package config provides configuration loading and access for the arena and its pilots.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Roster kinds understood by the match runner.
const (
	KindPilot   = "pilot"
	KindDuck    = "duck"
	KindSpinner = "spinner"
	KindCrawler = "crawler"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all arena and pilot configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Hull      HullConfig      `yaml:"hull"`
	Rules     RulesConfig     `yaml:"rules"`
	Pilot     PilotConfig     `yaml:"pilot"`
	Roster    []RosterEntry   `yaml:"roster"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer window settings.
type ScreenConfig struct {
	TargetFPS int     `yaml:"target_fps"`
	Margin    int     `yaml:"margin"`      // Pixels around the arena
	PanelW    int     `yaml:"panel_width"` // Width of the side panel
	Scale     float64 `yaml:"scale"`       // Arena units to pixels
}

// ArenaConfig holds match dimensions and pacing.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MaxTicks int     `yaml:"max_ticks"` // Per round; 0 = unlimited
	Rounds   int     `yaml:"rounds"`
	Seed     int64   `yaml:"seed"` // 0 = time based
}

// HullConfig holds the bounding box every agent shares.
type HullConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RulesConfig holds the host physics and damage rules.
type RulesConfig struct {
	MaxPower               float64 `yaml:"max_power"`
	MinPower               float64 `yaml:"min_power"`
	MaxVelocity            float64 `yaml:"max_velocity"`
	Acceleration           float64 `yaml:"acceleration"`
	Deceleration           float64 `yaml:"deceleration"`
	MaxTurnRate            float64 `yaml:"max_turn_rate"`             // Degrees per tick at rest
	TurnRateVelocityFactor float64 `yaml:"turn_rate_velocity_factor"` // Degrees lost per unit of speed
	GunTurnRate            float64 `yaml:"gun_turn_rate"`             // Degrees per tick
	RadarRange             float64 `yaml:"radar_range"`
	GunCooling             float64 `yaml:"gun_cooling"` // Heat removed per tick
	StartEnergy            float64 `yaml:"start_energy"`
	RamDamage              float64 `yaml:"ram_damage"`
	WallDamageFactor       float64 `yaml:"wall_damage_factor"` // Damage = max(|v|*factor - 1, 0)
}

// PilotConfig holds the decision thresholds of the combat controller.
type PilotConfig struct {
	LapseTicks           int64   `yaml:"lapse_ticks"`
	ContactTTLTicks      int64   `yaml:"contact_ttl_ticks"` // Unseen contacts are forgotten after this; 0 keeps them
	PreemptDistance      float64 `yaml:"preempt_distance"`
	AssuredFireThreshold float64 `yaml:"assured_fire_threshold"`
	HeadingReflection    float64 `yaml:"heading_reflection"` // Gun/heading delta above this is reflected
	MediumRange          float64 `yaml:"medium_range"`
	ChargeRatio          float64 `yaml:"charge_ratio"`
	MediumStep           float64 `yaml:"medium_step"`
	EvadeStep            float64 `yaml:"evade_step"`
	EvadeFlipsSweep      bool    `yaml:"evade_flips_sweep"`
	ManeuverStep         float64 `yaml:"maneuver_step"`
	SweepStep            float64 `yaml:"sweep_step"`
	RamAdvance           float64 `yaml:"ram_advance"`
	ImpactTurn           float64 `yaml:"impact_turn"`
	WeakEnergy           float64 `yaml:"weak_energy"`
	RearArc              float64 `yaml:"rear_arc"`
	FrontalArc           float64 `yaml:"frontal_arc"`
	StrongImpactPower    float64 `yaml:"strong_impact_power"`
	OpportunityRange     float64 `yaml:"opportunity_range"`
	OpportunityVelocity  float64 `yaml:"opportunity_velocity"`
	LowEnergyColour      float64 `yaml:"low_energy_colour"`
}

// RosterEntry names one agent entered into the match.
type RosterEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Enabled      bool `yaml:"enabled"`
	SummaryEvery int  `yaml:"summary_every"` // Log a cross-round summary every N rounds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxDistance     float64 // Arena diagonal
	PointBlankRange float64 // 2 * min(hull width, hull height)
	ScreenW         int32   // Window width in pixels
	ScreenH         int32   // Window height in pixels
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first setting the arena cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena size %gx%g", ErrInvalid, c.Arena.Width, c.Arena.Height)
	case c.Hull.Width <= 0 || c.Hull.Height <= 0:
		return fmt.Errorf("%w: hull size %gx%g", ErrInvalid, c.Hull.Width, c.Hull.Height)
	case c.Rules.MaxPower <= c.Rules.MinPower:
		return fmt.Errorf("%w: max_power %g must exceed min_power %g", ErrInvalid, c.Rules.MaxPower, c.Rules.MinPower)
	case c.Pilot.AssuredFireThreshold <= 0:
		return fmt.Errorf("%w: assured_fire_threshold must be positive", ErrInvalid)
	case c.Pilot.ContactTTLTicks < 0:
		return fmt.Errorf("%w: contact_ttl_ticks must not be negative", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Roster))
	for _, e := range c.Roster {
		switch e.Kind {
		case KindPilot, KindDuck, KindSpinner, KindCrawler:
		default:
			return fmt.Errorf("%w: roster entry %q has unknown kind %q", ErrInvalid, e.Name, e.Kind)
		}
		if e.Name == "" || seen[e.Name] {
			return fmt.Errorf("%w: roster names must be unique and non-empty (%q)", ErrInvalid, e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxDistance = math.Hypot(c.Arena.Width, c.Arena.Height)
	c.Derived.PointBlankRange = PointBlankRange(c.Hull.Width, c.Hull.Height)

	scale := c.Screen.Scale
	if scale <= 0 {
		scale = 1
	}
	c.Derived.ScreenW = int32(c.Arena.Width*scale) + int32(2*c.Screen.Margin+c.Screen.PanelW)
	c.Derived.ScreenH = int32(c.Arena.Height*scale) + int32(2*c.Screen.Margin)
}

// PointBlankRange returns the distance under which every shot is taken at full power.
func PointBlankRange(hullWidth, hullHeight float64) float64 {
	return 2 * math.Min(hullWidth, hullHeight)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
