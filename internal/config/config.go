// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for display, physics and meteor settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"math"
	"os"
	"strconv"
	"time"
)

// =============================================================================
// DISPLAY CONFIGURATION
// =============================================================================

// DisplayConfig holds the pixel budget the playfield is derived from.
// The simulation never sees pixels: it works in units where the geometric
// mean of width and height is 1.
type DisplayConfig struct {
	Aspect     float64 // Width / height
	Pixels     int     // Total pixel budget (width * height)
	FPS        int     // Logical tick rate, also the frame rate
	Fullscreen bool
}

// DefaultDisplay returns the default display configuration (1280x800 @ 30).
func DefaultDisplay() DisplayConfig {
	return DisplayConfig{
		Aspect:     16 / 10.0,
		Pixels:     1280 * 800,
		FPS:        30,
		Fullscreen: false,
	}
}

// DisplayFromEnv returns display configuration with environment variable overrides.
func DisplayFromEnv() DisplayConfig {
	cfg := DefaultDisplay()

	if a := getEnvFloat("ARENA_ASPECT", 0); a > 0 {
		cfg.Aspect = a
	}
	if p := getEnvInt("ARENA_PIXELS", 0); p > 0 {
		cfg.Pixels = p
	}
	if fps := getEnvInt("ARENA_FPS", 0); fps > 0 {
		cfg.FPS = fps
	}
	if os.Getenv("ARENA_FULLSCREEN") == "true" {
		cfg.Fullscreen = true
	}

	return cfg
}

// Resolution returns the window size in pixels.
func (d DisplayConfig) Resolution() (width, height int) {
	width = int(math.Sqrt(float64(d.Pixels) * d.Aspect))
	height = int(math.Sqrt(float64(d.Pixels) / d.Aspect))
	return width, height
}

// Scale is the number of pixels per playfield unit.
func (d DisplayConfig) Scale() float64 {
	w, h := d.Resolution()
	return math.Sqrt(float64(w) * float64(h))
}

// Domain returns the playfield size in normalized units (width/scale, height/scale).
func (d DisplayConfig) Domain() (width, height float64) {
	w, h := d.Resolution()
	s := d.Scale()
	return float64(w) / s, float64(h) / s
}

// TickDuration is the wall time covered by one logical tick.
func (d DisplayConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(d.FPS)
}

// =============================================================================
// PHYSICS CONFIGURATION
// =============================================================================

// PhysicsConfig holds ship and bullet constants. Rates are per second.
type PhysicsConfig struct {
	ShipAccel     float64       `yaml:"ship_accel"`      // Linear acceleration at full gas
	ShipDrag      float64       `yaml:"ship_drag"`       // Fraction of linear velocity lost per second
	ShipTurnAccel float64       `yaml:"ship_turn_accel"` // Turns per second squared at full steer
	ShipTurnDrag  float64       `yaml:"ship_turn_drag"`  // Fraction of angular velocity lost per second
	ShipScale     float64       `yaml:"ship_scale"`      // Hull size; radius is half of it
	BulletSpeed   float64       `yaml:"bullet_speed"`    // Units per second along the heading
	BulletScale   float64       `yaml:"bullet_scale"`    // Bullet length; radius is half of it
	BulletTTL     time.Duration `yaml:"bullet_lifetime"` // Age after which a bullet expires
}

// DefaultPhysics returns the reference physics constants.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		ShipAccel:     1 / 8.0,
		ShipDrag:      1 / 4.0,
		ShipTurnAccel: 4,
		ShipTurnDrag:  63 / 64.0,
		ShipScale:     1 / 16.0,
		BulletSpeed:   30 / 32.0, // 1/32 per tick at 30 TPS
		BulletScale:   1 / 64.0,
		BulletTTL:     256 * time.Millisecond,
	}
}

// ShipRadius is the collision radius of a ship.
func (p PhysicsConfig) ShipRadius() float64 { return p.ShipScale / 2 }

// BulletRadius is the collision radius of a bullet.
func (p PhysicsConfig) BulletRadius() float64 { return p.BulletScale / 2 }

// =============================================================================
// METEOR CONFIGURATION
// =============================================================================

// MeteorTier is the static description of one meteor size class.
// Tier 0 is the smallest. Density must not increase with tier: splitting a
// tier T meteor yields Density(T-1)/Density(T) children of tier T-1.
type MeteorTier struct {
	Sides   int     `yaml:"sides"`   // Polygon side count
	Scale   float64 `yaml:"scale"`   // Diameter; radius is half of it
	Density int     `yaml:"density"` // Max fragments descended from one largest-tier meteor
	Speed   float64 `yaml:"speed"`   // Units per second
	Spin    float64 `yaml:"spin"`    // Max radians per second, either direction
}

// Radius is the collision radius of a meteor of this tier.
func (t MeteorTier) Radius() float64 { return t.Scale / 2 }

// DefaultTiers returns the reference tier table, smallest first.
func DefaultTiers() []MeteorTier {
	return []MeteorTier{
		{Sides: 5, Scale: 1 / 32.0, Density: 9, Speed: 1 / 4.0, Spin: math.Pi},
		{Sides: 7, Scale: 1 / 16.0, Density: 3, Speed: 1 / 8.0, Spin: math.Pi / 2},
		{Sides: 9, Scale: 1 / 8.0, Density: 1, Speed: 1 / 16.0, Spin: math.Pi / 4},
	}
}

// WaveConfig controls field replenishment.
type WaveConfig struct {
	Size int `yaml:"size"` // Largest-tier meteors spawned when the field is empty
}

// DefaultWave returns the reference wave policy.
func DefaultWave() WaveConfig {
	return WaveConfig{Size: 2}
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits are the fixed slot capacities. Requests beyond them are dropped.
type ResourceLimits struct {
	MaxShips       int // Ship slots (and bullet slots, one per ship)
	MaxMeteors     int // Meteor slots
	MaxControllers int // Input sources tracked at once
	MaxEvents      int // In-memory event log ring size
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxShips:       4,
		MaxMeteors:     32,
		MaxControllers: 8,
		MaxEvents:      256,
	}
}

// LimitsFromEnv returns limits with environment variable overrides.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if n := getEnvInt("ARENA_MAX_SHIPS", 0); n > 0 {
		cfg.MaxShips = n
	}
	if n := getEnvInt("ARENA_MAX_METEORS", 0); n > 0 {
		cfg.MaxMeteors = n
	}

	return cfg
}

// =============================================================================
// OBSERVABILITY CONFIGURATION
// =============================================================================

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled       bool
	ListenAddr    string // MUST stay on loopback
	BasicAuthUser string // Optional basic auth
	BasicAuthPass string
}

// DefaultObservability returns safe defaults.
func DefaultObservability() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// ObservabilityFromEnv returns observability configuration with environment overrides.
func ObservabilityFromEnv() ObservabilityConfig {
	cfg := DefaultObservability()

	if os.Getenv("DISABLE_DEBUG_SERVER") == "true" {
		cfg.Enabled = false
	}
	if addr := os.Getenv("DEBUG_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	cfg.BasicAuthUser = os.Getenv("DEBUG_USER")
	cfg.BasicAuthPass = os.Getenv("DEBUG_PASS")

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Display       DisplayConfig
	Tuning        Tuning
	Limits        ResourceLimits
	Observability ObservabilityConfig
	TuningPath    string // Optional YAML file overriding Tuning
}

// Load returns the complete configuration with environment overrides.
// A tuning file named by ARENA_TUNING is applied on top of the defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Display:       DisplayFromEnv(),
		Tuning:        DefaultTuning(),
		Limits:        LimitsFromEnv(),
		Observability: ObservabilityFromEnv(),
		TuningPath:    os.Getenv("ARENA_TUNING"),
	}

	if cfg.TuningPath != "" {
		t, err := LoadTuningFile(cfg.TuningPath)
		if err != nil {
			return cfg, err
		}
		cfg.Tuning = t
	}

	return cfg, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
