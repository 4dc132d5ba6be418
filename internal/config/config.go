// Package config holds the settings for generating and lighting levels.
// They are loaded from a JSON file layered over the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/shadows"
	"chosenoffset.com/gloomdelve/internal/render/lighting"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
	"chosenoffset.com/gloomdelve/internal/world/placement"
)

// Config holds everything needed to build a run of levels
type Config struct {
	Seed         uint64 `json:"seed"`          // Base seed; each level derives its own
	StartLevel   int    `json:"start_level"`   // Level number the run starts on
	LevelRetries int    `json:"level_retries"` // Extra seeds tried when a level cannot be laid out
	Debug        bool   `json:"debug"`         // Enables DEBUG logging everywhere

	Dungeon    dungeon.Config   `json:"dungeon"`
	Population PopulationConfig `json:"population"`
	Visibility VisibilityConfig `json:"visibility"`
	Lighting   LightingConfig   `json:"lighting"`
	Assets     AssetsConfig     `json:"assets"`
}

// PopulationConfig holds the spawn-distance rules. Counts come from the level number.
type PopulationConfig struct {
	MinMonsterDistance float64 `json:"min_monster_distance"`
	MinBossDistance    float64 `json:"min_boss_distance"`
	MinBonfireDistance float64 `json:"min_bonfire_distance"`
	MinNPCDistance     float64 `json:"min_npc_distance"`
	BossSize           int     `json:"boss_size"`
}

// VisibilityConfig configures the shadow-casting engine
type VisibilityConfig struct {
	TileSize  int     `json:"tile_size"` // Pixels per cell
	Extrude   float64 `json:"extrude"`   // Wall-top extrusion in pixels
	MaxRadius float64 `json:"max_radius"`
	Bounded   bool    `json:"bounded"` // Add the grid outline as a wall
}

// LightingConfig configures the light manager and the lights a level registers
type LightingConfig struct {
	Parallel       bool    `json:"parallel"`
	Workers        int     `json:"workers"`
	Ambient        float64 `json:"ambient"`
	HeroRadius     float64 `json:"hero_radius"`
	FountainRadius float64 `json:"fountain_radius"`
	BonfireRadius  float64 `json:"bonfire_radius"`
}

// AssetsConfig points at the tile atlas
type AssetsConfig struct {
	AtlasPath string `json:"atlas_path"`
}

// DefaultConfig returns the defaults for a fresh run
func DefaultConfig() *Config {
	pop := placement.ForLevel(0)
	return &Config{
		Seed:         1,
		LevelRetries: 5,
		Dungeon:      dungeon.DefaultConfig(),
		Population: PopulationConfig{
			MinMonsterDistance: pop.MinMonsterDistance,
			MinBossDistance:    pop.MinBossDistance,
			MinBonfireDistance: pop.MinBonfireDistance,
			MinNPCDistance:     pop.MinNPCDistance,
			BossSize:           pop.BossSize,
		},
		Visibility: VisibilityConfig{
			TileSize:  16,
			Extrude:   16,
			MaxRadius: 4096,
			Bounded:   true,
		},
		Lighting: LightingConfig{
			Parallel:       true,
			Workers:        4,
			Ambient:        0.15,
			HeroRadius:     160,
			FountainRadius: 96,
			BonfireRadius:  128,
		},
		Assets: AssetsConfig{
			AtlasPath: "data/atlases/dungeon.json",
		},
	}
}

// LoadConfig loads config from a JSON file over the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.DungeonFor(config.StartLevel).Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// DungeonFor returns the generator settings for a level. A zero room count
// follows the room-count formula.
func (c *Config) DungeonFor(level int) dungeon.Config {
	d := c.Dungeon
	if d.Rooms == 0 {
		d.Rooms = dungeon.RoomsForLevel(level)
	}
	d.Debug = d.Debug || c.Debug
	return d
}

// PopulationFor returns the entity counts and spawn rules for a level
func (c *Config) PopulationFor(level int) placement.Config {
	p := placement.ForLevel(level)
	p.MinMonsterDistance = c.Population.MinMonsterDistance
	p.MinBossDistance = c.Population.MinBossDistance
	p.MinBonfireDistance = c.Population.MinBonfireDistance
	p.MinNPCDistance = c.Population.MinNPCDistance
	if c.Population.BossSize > 0 {
		p.BossSize = c.Population.BossSize
	}
	p.Debug = c.Debug
	return p
}

// ShadowOptions returns the visibility engine settings for the configured grid
func (c *Config) ShadowOptions() shadows.Options {
	opts := shadows.Options{
		TileSize:  float64(c.Visibility.TileSize),
		Extrude:   c.Visibility.Extrude,
		MaxRadius: c.Visibility.MaxRadius,
		Debug:     c.Debug,
	}
	if c.Visibility.Bounded {
		t := c.Visibility.TileSize
		opts.Bounds = geom.Rect{W: c.Dungeon.Width * t, H: c.Dungeon.Height * t}
	}
	return opts
}

// LightingOptions returns the light manager settings
func (c *Config) LightingOptions() lighting.Options {
	return lighting.Options{
		Parallel:   c.Lighting.Parallel,
		Workers:    c.Lighting.Workers,
		Debug:      c.Debug,
		HeroRadius: c.Lighting.HeroRadius,
	}
}
