// Package level assembles one playable level: it derives the level seed, runs the
// generator and entity placement, loads the visibility engine and registers the
// level's lights.
package level

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"chosenoffset.com/gloomdelve/internal/config"
	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/rng"
	"chosenoffset.com/gloomdelve/internal/core/shadows"
	"chosenoffset.com/gloomdelve/internal/render/lighting"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
	"chosenoffset.com/gloomdelve/internal/world/placement"
)

// Level is a generated level together with its visibility engine and lights
type Level struct {
	Number  int
	Seed    uint64 // Seed the successful attempt was generated from
	Attempt int    // Retries it took

	Dungeon *dungeon.Dungeon
	Report  placement.Report
	Engine  *shadows.Engine
	Lights  *lighting.Manager
	Hero    lighting.LightID
}

var (
	fountainColors = map[string]color.NRGBA{
		dungeon.TileFountainMidRed:  {255, 90, 80, 255},
		dungeon.TileFountainMidBlue: {90, 140, 255, 255},
	}
	bonfireColor = color.NRGBA{255, 170, 60, 255}
)

// retryable reports whether another seed might produce a valid level
func retryable(err error) bool {
	return errors.Is(err, dungeon.ErrPlacementExhausted) ||
		errors.Is(err, dungeon.ErrNoLadderCell) ||
		errors.Is(err, placement.ErrNoFreeCell)
}

// Build generates level number. Layout failures are retried with derived seeds up
// to cfg.LevelRetries times; configuration errors and splice defects are returned
// at once. lights may be nil, in which case a new manager is created; otherwise its
// static lights are replaced.
func Build(cfg *config.Config, number int, spawner placement.Spawner, lights *lighting.Manager) (*Level, error) {
	levelSeed := rng.LevelSeed(cfg.Seed, number)

	var lastErr error
	for attempt := 0; attempt <= cfg.LevelRetries; attempt++ {
		seed := levelSeed
		if attempt > 0 {
			seed = rng.LevelSeed(levelSeed, attempt)
		}

		d, report, err := layout(cfg, number, seed, spawner)
		if err == nil {
			lvl := &Level{Number: number, Seed: seed, Attempt: attempt, Dungeon: d, Report: report}
			lvl.light(cfg, lights)
			if cfg.Debug {
				log.Printf("DEBUG: level %d built from seed %d after %d retries", number, seed, attempt)
			}
			return lvl, nil
		}
		if !retryable(err) {
			return nil, fmt.Errorf("level %d: %w", number, err)
		}
		log.Printf("WARNING: level %d attempt %d (seed %d) failed: %v", number, attempt+1, seed, err)
		lastErr = err
	}

	return nil, fmt.Errorf("level %d: giving up after %d attempts: %w", number, cfg.LevelRetries+1, lastErr)
}

// layout runs generation and placement from one seed. The spawner only sees the
// entities of a layout that succeeds.
func layout(cfg *config.Config, number int, seed uint64, spawner placement.Spawner) (*dungeon.Dungeon, placement.Report, error) {
	src := rng.New(seed)

	d, err := dungeon.Generate(cfg.DungeonFor(number), src)
	if err != nil {
		return nil, placement.Report{}, err
	}

	var buffered []placement.Placement
	report, err := placement.Populate(d, cfg.PopulationFor(number), src, placement.SpawnerFunc(
		func(kind placement.Kind, x, y, w, h int) {
			buffered = append(buffered, placement.Placement{Kind: kind, Cell: geom.Cell{X: x, Y: y}, W: w, H: h})
		}))
	if err != nil {
		return nil, placement.Report{}, err
	}

	if spawner != nil {
		for _, p := range buffered {
			spawner.Spawn(p.Kind, p.Cell.X, p.Cell.Y, p.W, p.H)
		}
	}
	return d, report, nil
}

// light loads the visibility engine and registers the hero, fountain and bonfire lights
func (l *Level) light(cfg *config.Config, lights *lighting.Manager) {
	tile := float64(cfg.Visibility.TileSize)

	l.Engine = shadows.NewEngine(cfg.ShadowOptions())
	horizontal, vertical := l.Dungeon.CorridorRects()
	l.Engine.Load(l.Dungeon.Rooms, horizontal, vertical)

	if lights == nil {
		lights = lighting.NewManager(l.Engine, cfg.LightingOptions())
		lights.SetAmbientLight(cfg.Lighting.Ambient)
	} else {
		lights.SetEngine(l.Engine)
		lights.ClearStatic()
	}
	l.Lights = lights

	for _, f := range l.Dungeon.Fountains {
		_, wall := l.Dungeon.CellTileIDs(f.X, f.Y)
		// The light sits on the basin in front of the fountain face
		lights.Add(lighting.Light{
			Position:  geom.Cell{X: f.X, Y: f.Y + 1}.Center(tile),
			Radius:    cfg.Lighting.FountainRadius,
			Intensity: 0.6,
			Color:     fountainColors[wall],
			Static:    true,
			Owner:     "fountain",
		})
	}
	for _, c := range l.Report.Cells(placement.Bonfire) {
		lights.Add(lighting.Light{
			Position:  c.Center(tile),
			Radius:    cfg.Lighting.BonfireRadius,
			Intensity: 0.8,
			Color:     bonfireColor,
			Static:    true,
			Owner:     "bonfire",
		})
	}

	l.Hero = lights.SetHeroLight(l.Dungeon.Spawn.Center(tile))
}

// TileSize returns the pixel size of one cell
func (l *Level) TileSize() float64 {
	return l.Engine.Options().TileSize
}

// CellAt converts a world pixel position to the cell under it
func (l *Level) CellAt(p geom.Point) geom.Cell {
	t := l.TileSize()
	return geom.Cell{X: int(p.X / t), Y: int(p.Y / t)}
}
