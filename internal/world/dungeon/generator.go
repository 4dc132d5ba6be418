// Package dungeon builds one level's room/corridor layout and the two-layer tile
// grid stamped from it.
package dungeon

import (
	"fmt"
	"log"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/rng"
)

// Corridor is a one-cell-wide strip joining two rooms. Its rectangle spans the
// two facing wall lines, so both ends sit on a room wall.
type Corridor struct {
	geom.Rect
	Horizontal bool
	From       int // Index of the room that existed first
	To         int // Index of the room that was being placed
}

// expanded returns the corridor's clearance rectangle
func (c Corridor) expanded(margin int) geom.Rect {
	if c.Horizontal {
		return c.Expand(0, margin)
	}
	return c.Expand(margin, 0)
}

// Dungeon is one generated level. The grid and rectangle lists are read-only once
// Generate returns.
type Dungeon struct {
	Grid       *Grid
	Rooms      []geom.Rect
	CorridorsH []Corridor
	CorridorsV []Corridor
	Spawn      geom.Cell   // Hero spawn: centre of the first room
	Ladder     geom.Cell   // Level exit
	Fountains  []geom.Cell // Wall cells holding a fountain face
}

// generator carries the in-progress layout while rooms are placed
type generator struct {
	cfg   Config
	r     rng.Random
	rooms []geom.Rect
	corrH []Corridor
	corrV []Corridor
}

// Generate places cfg.Rooms rooms, connects them, stamps tiles, decorates and
// places the exit ladder. All randomness comes from r.
func Generate(cfg Config, r rng.Random) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &generator{cfg: cfg, r: r}
	for len(g.rooms) < cfg.Rooms {
		if err := g.placeRoom(); err != nil {
			return nil, err
		}
	}

	d := &Dungeon{
		Grid:       NewGrid(cfg.Width, cfg.Height),
		Rooms:      g.rooms,
		CorridorsH: g.corrH,
		CorridorsV: g.corrV,
		Spawn:      g.rooms[0].Center(),
	}

	if err := d.fill(); err != nil {
		return nil, fmt.Errorf("tile fill: %w", err)
	}
	d.decorate(cfg, r)

	ladder, err := d.PlaceLadder(d.Spawn)
	if err != nil {
		return nil, err
	}
	d.Ladder = ladder

	if cfg.Debug {
		log.Printf("DEBUG: generated %d rooms, %d+%d corridors, %d fountains, ladder at (%d,%d)",
			len(d.Rooms), len(d.CorridorsH), len(d.CorridorsV), len(d.Fountains), ladder.X, ladder.Y)
	}

	return d, nil
}

// placeRoom samples candidates until one fits and connects, or the attempt limit is hit
func (g *generator) placeRoom() error {
	for attempt := 0; attempt < g.cfg.MaxRoomAttempts; attempt++ {
		cand := g.sampleRoom()
		if g.roomBlocked(cand) {
			continue
		}

		if len(g.rooms) == 0 {
			g.rooms = append(g.rooms, cand)
			if g.cfg.Debug {
				log.Printf("DEBUG: placed first room at (%d,%d) size %dx%d", cand.X, cand.Y, cand.W, cand.H)
			}
			return nil
		}

		h, v := g.connect(cand, len(g.rooms))
		if len(h)+len(v) == 0 {
			continue
		}

		g.rooms = append(g.rooms, cand)
		g.corrH = append(g.corrH, h...)
		g.corrV = append(g.corrV, v...)
		if g.cfg.Debug {
			log.Printf("DEBUG: placed room %d at (%d,%d) size %dx%d after %d attempts with %d corridors",
				len(g.rooms)-1, cand.X, cand.Y, cand.W, cand.H, attempt+1, len(h)+len(v))
		}
		return nil
	}

	return fmt.Errorf("%w: cannot generate level with %d rooms in %dx%d grid (placed %d after %d attempts)",
		ErrPlacementExhausted, g.cfg.Rooms, g.cfg.Width, g.cfg.Height, len(g.rooms), g.cfg.MaxRoomAttempts)
}

// sampleRoom draws a room size, then a position that keeps its walls inside the grid
func (g *generator) sampleRoom() geom.Rect {
	maxW := min(g.cfg.RoomMaxW, g.cfg.Width-2*borderPad-1)
	maxH := min(g.cfg.RoomMaxH, g.cfg.Height-2*borderPad-1)

	w := g.r.Range(g.cfg.RoomMinW, maxW+1)
	h := g.r.Range(g.cfg.RoomMinH, maxH+1)
	x := g.r.Range(borderPad, g.cfg.Width-w-borderPad)
	y := g.r.Range(borderPad, g.cfg.Height-h-borderPad)
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

// roomBlocked reports whether cand, grown by the room margin, hits existing geometry
func (g *generator) roomBlocked(cand geom.Rect) bool {
	exp := cand.Expand(g.cfg.RoomMargin, g.cfg.RoomMargin)
	for _, r := range g.rooms {
		if exp.Overlaps(r) {
			return true
		}
	}
	for _, c := range g.corrH {
		if exp.Overlaps(c.Rect) {
			return true
		}
	}
	for _, c := range g.corrV {
		if exp.Overlaps(c.Rect) {
			return true
		}
	}
	return false
}

// connect searches every existing room for a corridor to the new room.
// Corridors accepted earlier in the same search block later ones.
func (g *generator) connect(room geom.Rect, idx int) (horizontal, vertical []Corridor) {
	for j, other := range g.rooms {
		if c, ok := g.horizontalCorridor(other, room, j, idx); ok && !g.corridorBlocked(c, room, horizontal, vertical) {
			horizontal = append(horizontal, c)
			continue
		}
		if c, ok := g.verticalCorridor(other, room, j, idx); ok && !g.corridorBlocked(c, room, horizontal, vertical) {
			vertical = append(vertical, c)
		}
	}
	return horizontal, vertical
}

// horizontalCorridor builds the east-west corridor between a and b, if their rows overlap enough
func (g *generator) horizontalCorridor(a, b geom.Rect, from, to int) (Corridor, bool) {
	lo := max(a.Y, b.Y)
	hi := min(a.Bottom(), b.Bottom())
	if hi-lo < g.cfg.MinCorridorOverlap {
		return Corridor{}, false
	}

	left, right := a, b
	if b.X < a.X {
		left, right = b, a
	}
	// Need at least the two wall columns between the interiors
	if right.X < left.Right()+2 {
		return Corridor{}, false
	}
	length := right.X - left.Right()
	if length > g.cfg.MaxCorridorLength {
		return Corridor{}, false
	}

	// Keep both jambs on plain side-wall cells of both rooms
	y := g.r.Range(lo+1, hi-1)
	return Corridor{
		Rect:       geom.Rect{X: left.Right(), Y: y, W: length, H: 1},
		Horizontal: true,
		From:       from,
		To:         to,
	}, true
}

// verticalCorridor builds the north-south corridor between a and b, if their columns overlap enough
func (g *generator) verticalCorridor(a, b geom.Rect, from, to int) (Corridor, bool) {
	lo := max(a.X, b.X)
	hi := min(a.Right(), b.Right())
	if hi-lo < g.cfg.MinCorridorOverlap {
		return Corridor{}, false
	}

	top, bottom := a, b
	if b.Y < a.Y {
		top, bottom = b, a
	}
	if bottom.Y < top.Bottom()+2 {
		return Corridor{}, false
	}
	length := bottom.Y - top.Bottom()
	if length > g.cfg.MaxCorridorLength {
		return Corridor{}, false
	}

	x := g.r.Range(lo+1, hi-1)
	return Corridor{
		Rect:       geom.Rect{X: x, Y: top.Bottom(), W: 1, H: length},
		Horizontal: false,
		From:       from,
		To:         to,
	}, true
}

// corridorBlocked checks c's clearance against every room (including the one being
// placed), every committed corridor and the corridors tentatively accepted this round.
func (g *generator) corridorBlocked(c Corridor, room geom.Rect, tentH, tentV []Corridor) bool {
	exp := c.expanded(g.cfg.CorridorMargin)

	if exp.Overlaps(room) {
		return true
	}
	for _, r := range g.rooms {
		if exp.Overlaps(r) {
			return true
		}
	}

	for _, list := range [][]Corridor{g.corrH, g.corrV, tentH, tentV} {
		for _, o := range list {
			if exp.Overlaps(o.Rect) || c.Overlaps(o.expanded(g.cfg.CorridorMargin)) {
				return true
			}
		}
	}
	return false
}

// Corridors returns horizontal corridors followed by vertical ones
func (d *Dungeon) Corridors() []Corridor {
	out := make([]Corridor, 0, len(d.CorridorsH)+len(d.CorridorsV))
	out = append(out, d.CorridorsH...)
	return append(out, d.CorridorsV...)
}

// CorridorRects returns the rectangles of the horizontal and vertical corridors
func (d *Dungeon) CorridorRects() (horizontal, vertical []geom.Rect) {
	for _, c := range d.CorridorsH {
		horizontal = append(horizontal, c.Rect)
	}
	for _, c := range d.CorridorsV {
		vertical = append(vertical, c.Rect)
	}
	return horizontal, vertical
}
