// Package term draws a level onto a tcell screen. Cells outside every light's
// polygon are drawn dimmed.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
	"chosenoffset.com/gloomdelve/internal/world/level"
)

// Glyph is how one kind of cell is drawn
type Glyph struct {
	Text  string
	Color tcell.Color
}

// Theme maps dungeon.Glyph characters to what is drawn. '@' is the hero.
type Theme map[byte]Glyph

// ASCII draws every cell one column wide
var ASCII = Theme{
	'#': {"#", tcell.ColorSilver},
	'.': {".", tcell.ColorGray},
	'>': {">", tcell.ColorWhite},
	'~': {"~", tcell.ColorAqua},
	',': {",", tcell.ColorGreen},
	'F': {"F", tcell.ColorBlue},
	'^': {"^", tcell.ColorSilver},
	'@': {"@", tcell.ColorYellow},
}

// Emoji draws two-column glyphs
var Emoji = Theme{
	'#': {"🧱", tcell.ColorSilver},
	'.': {"·", tcell.ColorGray},
	'>': {"🪜", tcell.ColorWhite},
	'~': {"💧", tcell.ColorAqua},
	',': {"🟢", tcell.ColorGreen},
	'F': {"⛲", tcell.ColorBlue},
	'^': {"🧱", tcell.ColorSilver},
	'@': {"🧙", tcell.ColorYellow},
}

// Width returns the widest glyph in columns, the width of one world cell on screen
func (t Theme) Width() int {
	w := 1
	for _, g := range t {
		w = max(w, runewidth.StringWidth(g.Text))
	}
	return w
}

// Camera translates between world cells and screen columns
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellWidth  int // columns per world cell
}

// Center repositions the camera so that cell (cx, cy) is in the middle
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/c.CellWidth)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// WorldToScreen converts a cell to screen coordinates.
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.CellWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// Cells returns the world cells the viewport covers
func (c *Camera) Cells() geom.Rect {
	return geom.Rect{X: c.OffsetX, Y: c.OffsetY, W: c.ViewWidth / c.CellWidth, H: c.ViewHeight}
}

// Renderer draws levels onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	Camera Camera
}

// New creates a renderer sized to the screen
func New(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		theme:  theme,
		Camera: Camera{ViewWidth: w, ViewHeight: h, CellWidth: theme.Width()},
	}
}

// Resize refits the viewport after the terminal changed size
func (r *Renderer) Resize() {
	r.Camera.ViewWidth, r.Camera.ViewHeight = r.screen.Size()
}

// Draw renders lvl centred on hero. The level's lights are updated for the
// visible area first.
func (r *Renderer) Draw(lvl *level.Level, hero geom.Cell) {
	r.Camera.Center(hero.X, hero.Y)
	view := r.Camera.Cells()
	tile := lvl.TileSize()

	px := geom.Rect{
		X: int(float64(view.X) * tile), Y: int(float64(view.Y) * tile),
		W: int(float64(view.W) * tile), H: int(float64(view.H) * tile),
	}
	lvl.Lights.Update(px)

	r.screen.Clear()
	grid := lvl.Dungeon.Grid
	for wy := view.Y; wy < view.Bottom(); wy++ {
		for wx := view.X; wx < view.Right(); wx++ {
			if !grid.InBounds(wx, wy) {
				continue
			}
			ch := dungeon.Glyph(grid.At(wx, wy))
			if wx == hero.X && wy == hero.Y {
				ch = '@'
			}
			if ch == ' ' {
				continue
			}
			c := geom.Cell{X: wx, Y: wy}.Center(tile)
			r.drawCell(wx, wy, ch, lvl.Lights.Lit(c.X, c.Y))
		}
	}
	r.screen.Show()
}

func (r *Renderer) drawCell(wx, wy int, ch byte, lit bool) {
	sx, sy, ok := r.Camera.WorldToScreen(wx, wy)
	if !ok {
		return
	}
	g, found := r.theme[ch]
	if !found {
		g = Glyph{Text: string(rune(ch)), Color: tcell.ColorWhite}
	}
	style := tcell.StyleDefault.Foreground(g.Color)
	if !lit {
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Dim(true)
	}
	r.putGlyph(sx, sy, g.Text, style)
}

// putGlyph writes glyph at (x, y), padding the cell out to the camera's cell width
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 && runewidth.RuneWidth(runes[1]) == 0 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	w := runewidth.StringWidth(glyph)
	for col := w; col < r.Camera.CellWidth; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
