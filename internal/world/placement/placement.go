// Package placement picks the cells where the hero, monsters, bosses, NPCs, drops
// and bonfires of a generated level start out, and hands them to a Spawner.
package placement

import (
	"errors"
	"fmt"
	"log"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/rng"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
)

// ErrNoFreeCell is returned when no cell satisfies an entity's constraints
var ErrNoFreeCell = errors.New("no free cell")

// Kind is the type of entity being placed
type Kind int

const (
	Hero Kind = iota
	Monster
	Boss
	Drop
	Bonfire
	NPC
)

func (k Kind) String() string {
	switch k {
	case Hero:
		return "hero"
	case Monster:
		return "monster"
	case Boss:
		return "boss"
	case Drop:
		return "drop"
	case Bonfire:
		return "bonfire"
	case NPC:
		return "npc"
	}
	return "unknown"
}

// Spawner constructs and registers an entity; placement never inspects the result
type Spawner interface {
	Spawn(kind Kind, x, y, w, h int)
}

// SpawnerFunc adapts a function to Spawner
type SpawnerFunc func(kind Kind, x, y, w, h int)

func (f SpawnerFunc) Spawn(kind Kind, x, y, w, h int) { f(kind, x, y, w, h) }

// Config holds the population counts and spawn-distance rules for one level
type Config struct {
	Monsters int `json:"monsters"`
	Drops    int `json:"drops"`
	Bosses   int `json:"bosses"`
	Bonfires int `json:"bonfires"`
	NPCs     int `json:"npcs"`

	MinMonsterDistance float64 `json:"min_monster_distance"` // Cells from the hero spawn
	MinBossDistance    float64 `json:"min_boss_distance"`
	MinBonfireDistance float64 `json:"min_bonfire_distance"`
	MinNPCDistance     float64 `json:"min_npc_distance"`
	BossSize           int     `json:"boss_size"` // Boss footprint is BossSize x BossSize

	Debug bool `json:"debug"`
}

// ForLevel returns the population for a level number
func ForLevel(level int) Config {
	if level < 0 {
		level = 0
	}
	bosses := 0
	if level > 0 && level%3 == 0 {
		bosses = 1
	}
	return Config{
		Monsters:           2 + 2*level,
		Drops:              1 + level,
		Bosses:             bosses,
		Bonfires:           1 + level/2,
		NPCs:               1 + level/4,
		MinMonsterDistance: 8,
		MinBossDistance:    15,
		MinBonfireDistance: 6,
		MinNPCDistance:     4,
		BossSize:           2,
	}
}

// Placement is one placed entity
type Placement struct {
	Kind Kind
	Cell geom.Cell // Top-left cell of the footprint
	W, H int
}

// Report summarizes a Populate run
type Report struct {
	Placed  []Placement
	Skipped map[Kind]int
}

// Count returns how many entities of kind were placed
func (r Report) Count(kind Kind) int {
	n := 0
	for _, p := range r.Placed {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Cells returns the top-left cells of every placed entity of kind
func (r Report) Cells(kind Kind) []geom.Cell {
	var out []geom.Cell
	for _, p := range r.Placed {
		if p.Kind == kind {
			out = append(out, p.Cell)
		}
	}
	return out
}

type populator struct {
	d        *dungeon.Dungeon
	r        rng.Random
	s        Spawner
	occupied map[geom.Cell]bool
	report   Report
}

// Populate places the hero at the dungeon spawn, then bosses, monsters, bonfires,
// NPCs and drops. A boss that cannot be placed fails the level; other entities that do
// not fit are skipped with a warning.
func Populate(d *dungeon.Dungeon, cfg Config, r rng.Random, s Spawner) (Report, error) {
	p := &populator{
		d:        d,
		r:        r,
		s:        s,
		occupied: map[geom.Cell]bool{d.Spawn: true, d.Ladder: true},
		report:   Report{Skipped: map[Kind]int{}},
	}

	s.Spawn(Hero, d.Spawn.X, d.Spawn.Y, 1, 1)
	p.report.Placed = append(p.report.Placed, Placement{Kind: Hero, Cell: d.Spawn, W: 1, H: 1})

	for i := 0; i < cfg.Bosses; i++ {
		if err := p.place(Boss, cfg.BossSize, cfg.MinBossDistance, false); err != nil {
			return p.report, err
		}
	}

	batches := []struct {
		kind     Kind
		count    int
		dist     float64
		interior bool
	}{
		{Monster, cfg.Monsters, cfg.MinMonsterDistance, false},
		{Bonfire, cfg.Bonfires, cfg.MinBonfireDistance, true},
		{NPC, cfg.NPCs, cfg.MinNPCDistance, true},
		{Drop, cfg.Drops, 0, false},
	}
	for _, b := range batches {
		for i := 0; i < b.count; i++ {
			if err := p.place(b.kind, 1, b.dist, b.interior); err != nil {
				log.Printf("WARNING: skipping %s %d of %d: %v", b.kind, i+1, b.count, err)
				p.report.Skipped[b.kind]++
			}
		}
	}

	if cfg.Debug {
		log.Printf("DEBUG: placed %d entities (%d skipped)", len(p.report.Placed), p.skipped())
	}
	return p.report, nil
}

func (p *populator) skipped() int {
	n := 0
	for _, c := range p.report.Skipped {
		n += c
	}
	return n
}

// place picks a uniformly random free size x size block at least minDist cells
// from the spawn and spawns kind there.
func (p *populator) place(kind Kind, size int, minDist float64, interior bool) error {
	if size < 1 {
		size = 1
	}
	spawn := p.d.Spawn
	minSq := minDist * minDist

	candidates := p.d.FindFreeRect(size, size, func(x, y int) bool {
		c := geom.Cell{X: x, Y: y}
		if p.occupied[c] {
			return false
		}
		if float64(c.DistSq(spawn)) < minSq {
			return false
		}
		if interior && !p.d.IsInterior(x, y) {
			return false
		}
		floor, _ := p.d.CellTileIDs(x, y)
		return dungeon.IsPlainFloor(floor)
	})
	if len(candidates) == 0 {
		return fmt.Errorf("%w for %s (%dx%d, %.0f cells from spawn)", ErrNoFreeCell, kind, size, size, minDist)
	}

	at := rng.Select(p.r, candidates)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			p.occupied[geom.Cell{X: at.X + dx, Y: at.Y + dy}] = true
		}
	}

	p.s.Spawn(kind, at.X, at.Y, size, size)
	p.report.Placed = append(p.report.Placed, Placement{Kind: kind, Cell: at, W: size, H: size})
	return nil
}
