// Package config provides the options that shape every target line. A Config
// is loaded from a JSON file so each setup can define its own look.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/style"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// CombatOption gates all lines on the viewer's combat state.
type CombatOption string

// Combat gating modes.
const (
	CombatAlways     CombatOption = "always"
	CombatOnly       CombatOption = "in_combat"
	CombatOutOfCombat CombatOption = "out_of_combat"
)

// DeathAnimation is the curve used to flatten a line that lost its target.
type DeathAnimation string

// Death animation curves.
const (
	DeathLinear DeathAnimation = "linear"
	DeathSquare DeathAnimation = "square"
	DeathCube   DeathAnimation = "cube"
)

// Sample count limits. The bounds are odd so that a curve always has a
// distinct middle sample.
const (
	MinSampleCount = 3
	MaxSampleCount = 513
)

// Config holds every line option
type Config struct {
	// Gating
	OnlyInCombat     CombatOption `json:"only_in_combat"`
	OnlyUnsheathed   bool         `json:"only_unsheathed"`
	OcclusionCulling bool         `json:"occlusion_culling"` // Always on for hostile sources

	// Look
	SolidColor      bool    `json:"solid_color"` // Flat bezier strokes instead of textured quads
	BreathingEffect bool    `json:"breathing_effect"`
	PulsingEffect   bool    `json:"pulsing_effect"`
	FadeToEnd       bool    `json:"fade_to_end"`
	FadeToEndScalar float64 `json:"fade_to_end_scalar"` // Outline opacity at the target end (0-1)

	// Sampling
	DynamicSampleCount      bool `json:"dynamic_sample_count"`
	TextureCurveSampleCount int  `json:"texture_curve_sample_count"` // Fixed count when not dynamic
	TextureCurveSampleMin   int  `json:"texture_curve_sample_count_min"`
	TextureCurveSampleMax   int  `json:"texture_curve_sample_count_max"`

	// Shape
	HeightScale      float64 `json:"height_scale"`       // 0 = feet, 1 = head
	ArcHeightScale   float64 `json:"arc_height_scale"`   // 0 = flat
	LineThickness    float64 `json:"line_thickness"`     // 0 disables the line
	OutlineThickness float64 `json:"outline_thickness"`  // 0 disables the outline
	PlayerHeightBump float64 `json:"player_height_bump"` // Added to the arc when the source is a player
	EnemyHeightBump  float64 `json:"enemy_height_bump"`  // Added to the arc when the source is a battle character

	// Animation
	NewTargetEaseTime       float64        `json:"new_target_ease_time"` // Seconds
	NoTargetFadeTime        float64        `json:"no_target_fade_time"`  // Seconds
	DeathAnimation          DeathAnimation `json:"death_animation"`
	DeathAnimationTimeScale float64        `json:"death_animation_time_scale"`
	WaveAmplitudeOffset     float64        `json:"wave_amplitude_offset"`
	WaveFrequencyScalar     float64        `json:"wave_frequency_scalar"`

	// Debug
	DebugSampleCount bool `json:"debug_sample_count"`

	// Rules
	Fallback *style.Rule   `json:"fallback"`
	Rules    []*style.Rule `json:"rules"`
}

// DefaultConfig returns the stock look with the default rule list.
func DefaultConfig() *Config {
	return &Config{
		OnlyInCombat:            CombatAlways,
		OnlyUnsheathed:          false,
		OcclusionCulling:        false,
		SolidColor:              false,
		BreathingEffect:         true,
		PulsingEffect:           true,
		FadeToEnd:               true,
		FadeToEndScalar:         0.2,
		DynamicSampleCount:      true,
		TextureCurveSampleCount: 31,
		TextureCurveSampleMin:   9,
		TextureCurveSampleMax:   63,
		HeightScale:             1.0,
		ArcHeightScale:          0.5,
		LineThickness:           8,
		OutlineThickness:        12,
		PlayerHeightBump:        0,
		EnemyHeightBump:         0,
		NewTargetEaseTime:       0.25,
		NoTargetFadeTime:        0.5,
		DeathAnimation:          DeathLinear,
		DeathAnimationTimeScale: 1,
		WaveAmplitudeOffset:     0.15,
		WaveFrequencyScalar:     3,
		Fallback:                style.DefaultFallback(),
		Rules:                   style.DefaultRules(),
	}
}

// LoadConfig loads a config from a JSON file. Missing fields keep their
// defaults; a missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Logger().Info("config file not found, using defaults", "path", path)
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	logging.Logger().Info("config loaded", "path", path, "rules", len(config.Rules))
	return config, nil
}

// Parse decodes, validates and normalises a JSON config.
func Parse(data []byte) (*Config, error) {
	config := DefaultConfig()
	// Decode rules into a fresh slice so file rules never merge into the
	// default ones; an absent key keeps the defaults.
	defaults := config.Rules
	config.Rules = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Rules == nil {
		config.Rules = defaults
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Normalize()
	return config, nil
}

// Validate reports options that cannot be interpreted.
func (c *Config) Validate() error {
	var errs []error
	switch c.OnlyInCombat {
	case CombatAlways, CombatOnly, CombatOutOfCombat, "":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown only_in_combat %q", ErrInvalid, c.OnlyInCombat))
	}
	switch c.DeathAnimation {
	case DeathLinear, DeathSquare, DeathCube, "":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown death_animation %q", ErrInvalid, c.DeathAnimation))
	}
	if c.TextureCurveSampleMin > c.TextureCurveSampleMax && c.TextureCurveSampleMax > 0 {
		errs = append(errs, fmt.Errorf("%w: sample count min %d above max %d",
			ErrInvalid, c.TextureCurveSampleMin, c.TextureCurveSampleMax))
	}
	return errors.Join(errs...)
}

// Normalize clamps every option into its usable range. Afterwards the sample
// bounds are odd with MinSampleCount <= min <= max <= MaxSampleCount.
func (c *Config) Normalize() {
	if c.OnlyInCombat == "" {
		c.OnlyInCombat = CombatAlways
	}
	if c.DeathAnimation == "" {
		c.DeathAnimation = DeathLinear
	}

	c.TextureCurveSampleMin = clampInt(c.TextureCurveSampleMin, MinSampleCount, MaxSampleCount) | 1
	c.TextureCurveSampleMax = clampInt(c.TextureCurveSampleMax, MinSampleCount, MaxSampleCount)
	if c.TextureCurveSampleMax%2 == 0 {
		c.TextureCurveSampleMax--
	}
	if c.TextureCurveSampleMax < c.TextureCurveSampleMin {
		c.TextureCurveSampleMax = c.TextureCurveSampleMin
	}
	c.TextureCurveSampleCount = clampInt(c.TextureCurveSampleCount, c.TextureCurveSampleMin, c.TextureCurveSampleMax)

	c.FadeToEndScalar = clampFloat(c.FadeToEndScalar, 0, 1)
	c.HeightScale = clampFloat(c.HeightScale, 0, 1)
	c.ArcHeightScale = clampFloat(c.ArcHeightScale, 0, 2)
	c.LineThickness = clampFloat(c.LineThickness, 0, 64)
	c.OutlineThickness = clampFloat(c.OutlineThickness, 0, 72)
	c.PlayerHeightBump = clampFloat(c.PlayerHeightBump, 0, 10)
	c.EnemyHeightBump = clampFloat(c.EnemyHeightBump, 0, 10)
	c.NewTargetEaseTime = clampFloat(c.NewTargetEaseTime, 0, 5)
	c.NoTargetFadeTime = clampFloat(c.NoTargetFadeTime, 0, 5)
	c.DeathAnimationTimeScale = clampFloat(c.DeathAnimationTimeScale, 1, 4)
	c.WaveAmplitudeOffset = clampFloat(c.WaveAmplitudeOffset, 0, 0.5)
	c.WaveFrequencyScalar = clampFloat(c.WaveFrequencyScalar, 0, 10)

	if c.Fallback == nil {
		c.Fallback = style.DefaultFallback()
	}
	rules := c.Rules[:0]
	for _, r := range c.Rules {
		if r == nil {
			continue
		}
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		rules = append(rules, r)
	}
	c.Rules = rules
}

// RuleSet returns the configured rules sorted by priority.
func (c *Config) RuleSet() *style.RuleSet {
	return style.NewRuleSet(c.Rules...)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
