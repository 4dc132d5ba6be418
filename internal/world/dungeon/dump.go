package dungeon

import "strings"

// Glyph returns the ASCII character for a cell
func Glyph(c Cell) byte {
	switch {
	case c.Wall != "" && IsFountain(c.Wall):
		return 'F'
	case c.Wall == TileFountainTop:
		return '^'
	case c.Wall != "":
		return '#'
	case c.Floor == TileLadder:
		return '>'
	case c.Floor == TileBasinRed || c.Floor == TileBasinBlue:
		return '~'
	case c.Floor == TileGooBase:
		return ','
	case c.Floor != "":
		return '.'
	}
	return ' '
}

// String renders the grid one row per line
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			b.WriteByte(Glyph(g.cells[y*g.Width+x]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the level with the spawn marked '@'
func (d *Dungeon) String() string {
	rows := strings.Split(d.Grid.String(), "\n")
	if d.Grid.InBounds(d.Spawn.X, d.Spawn.Y) {
		row := []byte(rows[d.Spawn.Y])
		row[d.Spawn.X] = '@'
		rows[d.Spawn.Y] = string(row)
	}
	return strings.Join(rows, "\n")
}
