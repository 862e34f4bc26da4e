package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the gameplay-facing part of the configuration. It can be loaded
// from a YAML file and reloaded while the game runs.
type Tuning struct {
	Physics PhysicsConfig `yaml:"physics"`
	Tiers   []MeteorTier  `yaml:"tiers"`
	Wave    WaveConfig    `yaml:"wave"`
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: DefaultPhysics(),
		Tiers:   DefaultTiers(),
		Wave:    DefaultWave(),
	}
}

// Largest returns the index of the largest tier.
func (t Tuning) Largest() int {
	return len(t.Tiers) - 1
}

// Validate reports the first inconsistency in the tuning.
func (t Tuning) Validate() error {
	if err := ValidateTiers(t.Tiers); err != nil {
		return err
	}
	p := t.Physics
	if p.ShipScale <= 0 || p.BulletScale <= 0 {
		return errors.New("ship and bullet scale must be positive")
	}
	if p.ShipDrag < 0 || p.ShipDrag >= 1 || p.ShipTurnDrag < 0 || p.ShipTurnDrag >= 1 {
		return errors.New("drag must be in [0, 1)")
	}
	if p.BulletTTL <= 0 {
		return errors.New("bullet lifetime must be positive")
	}
	if t.Wave.Size < 0 {
		return errors.New("wave size must not be negative")
	}
	return nil
}

// ValidateTiers checks the tier table: at least one tier, positive densities,
// density non-increasing with tier.
func ValidateTiers(tiers []MeteorTier) error {
	if len(tiers) == 0 {
		return errors.New("at least one meteor tier is required")
	}
	for i, tier := range tiers {
		if tier.Density <= 0 {
			return fmt.Errorf("tier %d: density must be positive, got %d", i, tier.Density)
		}
		if tier.Sides < 3 {
			return fmt.Errorf("tier %d: polygon needs at least 3 sides, got %d", i, tier.Sides)
		}
		if tier.Scale <= 0 {
			return fmt.Errorf("tier %d: scale must be positive", i)
		}
		if i > 0 && tier.Density > tiers[i-1].Density {
			return fmt.Errorf("tier %d: density %d exceeds tier %d density %d",
				i, tier.Density, i-1, tiers[i-1].Density)
		}
	}
	return nil
}

// ParseTuning decodes YAML on top of the default tuning and validates it.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// LoadTuningFile reads and validates a YAML tuning file.
func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTuning(), fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}
