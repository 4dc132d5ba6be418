package dungeon

import (
	"log"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/core/rng"
)

// decorate runs the two cosmetic passes in scan order: floor variants, then wall variants
func (d *Dungeon) decorate(cfg Config, r rng.Random) {
	g := d.Grid

	floors := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y).Floor != TileFloor || !r.Chance(cfg.FloorVariantChance) {
				continue
			}
			g.cells[y*g.Width+x].Floor = rng.Select(r, FloorVariants)
			floors++
		}
	}

	walls := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y).Wall != TileWallMid || !r.Chance(cfg.WallVariantChance) {
				continue
			}
			if d.applyWallVariant(x, y, rng.Select(r, WallVariants)) {
				walls++
			}
		}
	}

	if cfg.Debug {
		log.Printf("DEBUG: decorated %d floor cells, %d wall cells (%d fountains)", floors, walls, len(d.Fountains))
	}
}

// applyWallVariant swaps a wall_mid cell for id, returning false when a fountain
// does not fit and the cell keeps wall_mid.
func (d *Dungeon) applyWallVariant(x, y int, id string) bool {
	g := d.Grid

	if basin, ok := fountainBasin[id]; ok {
		if !g.InBounds(x, y-1) || !g.InBounds(x, y+1) {
			return false
		}
		if !g.At(x, y-1).Empty() || !g.HasFloor(x, y+1) || g.HasWall(x, y+1) {
			return false
		}
		g.cells[(y-1)*g.Width+x].Wall = TileFountainTop
		g.cells[y*g.Width+x].Wall = id
		g.cells[(y+1)*g.Width+x].Floor = basin
		d.Fountains = append(d.Fountains, geom.Cell{X: x, Y: y})
		return true
	}

	g.cells[y*g.Width+x].Wall = id
	if id == TileGoo && g.InBounds(x, y+1) && IsPlainFloor(g.At(x, y+1).Floor) {
		g.cells[(y+1)*g.Width+x].Floor = TileGooBase
	}
	return true
}
