package dungeon

import (
	"fmt"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

// HasFloor reports whether (x, y) carries a floor tile
func (d *Dungeon) HasFloor(x, y int) bool {
	return d.Grid.HasFloor(x, y)
}

// CellTileIDs returns the floor and wall ids at (x, y); either may be empty
func (d *Dungeon) CellTileIDs(x, y int) (floor, wall string) {
	c := d.Grid.At(x, y)
	return c.Floor, c.Wall
}

// Walkable reports whether an entity can stand on (x, y)
func (d *Dungeon) Walkable(x, y int) bool {
	return d.Grid.Walkable(x, y)
}

// IsInterior reports whether (x, y) is surrounded by walkable floor on all eight sides
func (d *Dungeon) IsInterior(x, y int) bool {
	return d.Grid.IsInterior(x, y)
}

// RoomIndex returns the room containing c, or -1
func (d *Dungeon) RoomIndex(c geom.Cell) int {
	for i, r := range d.Rooms {
		if r.Contains(c) {
			return i
		}
	}
	return -1
}

// FindFreeRect returns the top-left cell of every w×h block whose cells are all
// walkable and satisfy pred. A nil pred accepts every walkable cell.
func (d *Dungeon) FindFreeRect(w, h int, pred func(x, y int) bool) []geom.Cell {
	if w <= 0 || h <= 0 {
		return nil
	}
	g := d.Grid
	ok := func(x, y int) bool {
		return g.Walkable(x, y) && (pred == nil || pred(x, y))
	}

	var out []geom.Cell
	for y := 0; y+h <= g.Height; y++ {
	scan:
		for x := 0; x+w <= g.Width; x++ {
			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					if !ok(x+dx, y+dy) {
						continue scan
					}
				}
			}
			out = append(out, geom.Cell{X: x, Y: y})
		}
	}
	return out
}

// PlaceLadder marks the exit on the plain floor cell farthest from `from`,
// preferring cells fully surrounded by floor. Ties go to the first cell in scan order.
func (d *Dungeon) PlaceLadder(from geom.Cell) (geom.Cell, error) {
	g := d.Grid

	best, bestEdge := geom.Cell{X: -1}, geom.Cell{X: -1}
	bestDist, bestEdgeDist := -1, -1

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if c.Wall != "" || !IsPlainFloor(c.Floor) {
				continue
			}
			cell := geom.Cell{X: x, Y: y}
			dist := cell.DistSq(from)
			if g.IsInterior(x, y) {
				if dist > bestDist {
					best, bestDist = cell, dist
				}
			} else if dist > bestEdgeDist {
				bestEdge, bestEdgeDist = cell, dist
			}
		}
	}

	pick := best
	if bestDist < 0 {
		pick = bestEdge
	}
	if pick.X < 0 {
		return geom.Cell{}, fmt.Errorf("%w: %dx%d grid has no plain floor", ErrNoLadderCell, g.Width, g.Height)
	}

	if err := g.SetFloor(pick.X, pick.Y, TileLadder); err != nil {
		return geom.Cell{}, err
	}
	return pick, nil
}
