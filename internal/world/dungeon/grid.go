package dungeon

import (
	"fmt"

	"chosenoffset.com/gloomdelve/internal/core/geom"
)

// Cell holds the two tile layers of one grid position. Empty string = absent.
type Cell struct {
	Floor string
	Wall  string
}

// Empty reports whether neither layer is set
func (c Cell) Empty() bool {
	return c.Floor == "" && c.Wall == ""
}

// Grid is a fixed-size arena of cells indexed by (x, y)
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid allocates an empty grid
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds reports whether (x, y) is inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y); out-of-bounds positions read as empty
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[y*g.Width+x]
}

// SetFloor writes the floor layer at (x, y)
func (g *Grid) SetFloor(x, y int, id string) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("floor write out of bounds: (%d, %d)", x, y)
	}
	g.cells[y*g.Width+x].Floor = id
	return nil
}

// SetWall writes the wall layer at (x, y)
func (g *Grid) SetWall(x, y int, id string) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("wall write out of bounds: (%d, %d)", x, y)
	}
	g.cells[y*g.Width+x].Wall = id
	return nil
}

// HasFloor reports whether (x, y) carries a floor id
func (g *Grid) HasFloor(x, y int) bool {
	return g.At(x, y).Floor != ""
}

// HasWall reports whether (x, y) carries a wall id
func (g *Grid) HasWall(x, y int) bool {
	return g.At(x, y).Wall != ""
}

// Walkable reports whether (x, y) is floor without a wall on top of it
func (g *Grid) Walkable(x, y int) bool {
	c := g.At(x, y)
	return c.Floor != "" && c.Wall == ""
}

// Each calls fn for every cell in row-major order
func (g *Grid) Each(fn func(x, y int, c Cell)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(x, y, g.cells[y*g.Width+x])
		}
	}
}

// neighbours8 returns how many of the eight neighbours of (x, y) are walkable floor
func (g *Grid) neighbours8(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Walkable(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// IsInterior reports whether all eight neighbours of (x, y) are walkable floor
func (g *Grid) IsInterior(x, y int) bool {
	return g.neighbours8(x, y) == 8
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Width, g.Height)
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids hold identical tiles
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) cellsIn(r geom.Rect, fn func(x, y int)) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			fn(x, y)
		}
	}
}
