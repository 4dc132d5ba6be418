package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/render"
	"chosenoffset.com/gloomdelve/internal/world/placement"
)

var whiteColor = color.RGBA{255, 255, 255, 255}

var markerColors = map[placement.Kind]color.RGBA{
	placement.Monster: {255, 50, 50, 255},   // Bright red
	placement.Boss:    {200, 0, 200, 255},   // Magenta
	placement.Drop:    {255, 215, 0, 255},   // Gold
	placement.Bonfire: {255, 140, 0, 255},   // Orange
	placement.NPC:     {80, 200, 255, 255},  // Cyan
	placement.Hero:    {255, 255, 100, 255}, // Yellow
}

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()
	g.FrameCount++

	// Ensure render textures exist and are the right size
	g.SceneTexture = g.ensureTexture(g.SceneTexture, w, h)
	g.LightMap = g.ensureTexture(g.LightMap, w, h)

	// Step 1: Clear and render the scene to an offscreen texture
	g.SceneTexture.Clear()
	g.drawTiles(g.SceneTexture)
	g.drawMarkers(g.SceneTexture)
	g.drawHero(g.SceneTexture)

	// Step 2: Light the scene
	g.applyLighting(screen)

	// Step 3: Draw UI elements on top (unaffected by lighting)
	g.drawUI(screen)
}

func (g *Game) ensureTexture(img render.Image, w, h int) render.Image {
	if img != nil && !needsResize(img, w, h) {
		return img
	}
	if img != nil {
		img.Dispose()
	}
	return g.Renderer.NewImage(w, h)
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

// visibleCells returns the cells the camera overlaps, clipped to the grid
func (g *Game) visibleCells() geom.Rect {
	tile := g.Level.TileSize()
	grid := g.Level.Dungeon.Grid
	x0 := max(0, int(g.Camera.X/tile))
	y0 := max(0, int(g.Camera.Y/tile))
	x1 := min(grid.Width, int((g.Camera.X+float64(g.ScreenWidth))/tile)+1)
	y1 := min(grid.Height, int((g.Camera.Y+float64(g.ScreenHeight))/tile)+1)
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (g *Game) drawTile(screen render.Image, name string, x, y int) {
	if name == "" || g.Tiles == nil {
		return
	}
	img, ok := g.Tiles.Tile(name)
	if !ok {
		return
	}
	tile := g.Level.TileSize()
	opts := &render.DrawImageOptions{}
	opts.GeoM = render.NewGeoM()
	opts.GeoM.Translate(float64(x)*tile-g.Camera.X, float64(y)*tile-g.Camera.Y)
	screen.DrawImage(img, opts)
}

// drawTiles draws the floor layer and then the wall layer over it
func (g *Game) drawTiles(screen render.Image) {
	view := g.visibleCells()
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			floor, _ := g.Level.Dungeon.CellTileIDs(x, y)
			g.drawTile(screen, floor, x, y)
		}
	}
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			_, wall := g.Level.Dungeon.CellTileIDs(x, y)
			g.drawTile(screen, wall, x, y)
		}
	}
}

func (g *Game) drawMarkers(screen render.Image) {
	tile := g.Level.TileSize()
	for _, p := range g.Placed {
		if p.Kind == placement.Hero {
			continue
		}
		// Centre of the footprint
		cx := (float64(p.Cell.X)+float64(p.W)/2)*tile - g.Camera.X
		cy := (float64(p.Cell.Y)+float64(p.H)/2)*tile - g.Camera.Y
		radius := float32(tile) * float32(p.W) * 0.35
		g.Renderer.FillCircle(screen, float32(cx), float32(cy), radius, markerColors[p.Kind])
	}
}

func (g *Game) drawHero(screen render.Image) {
	pos := g.heroPos()
	x := float32(pos.X - g.Camera.X)
	y := float32(pos.Y - g.Camera.Y)
	r := float32(g.Level.TileSize()) * 0.4
	g.Renderer.FillCircle(screen, x, y, r, markerColors[placement.Hero])
	g.Renderer.StrokeCircle(screen, x, y, r, 1, color.RGBA{200, 200, 50, 255})
}

// applyLighting multiplies the scene by a lightmap built from the ambient level
// and every visible light's mask
func (g *Game) applyLighting(screen render.Image) {
	lights := g.Level.Lights
	lights.Update(g.View())

	if !g.LightsOn {
		screen.DrawImage(g.SceneTexture, &render.DrawImageOptions{})
		return
	}

	a := uint8(lights.Ambient() * 255)
	g.LightMap.Fill(color.RGBA{a, a, a, 255})
	lights.Draw(g.LightMap, g.WhiteImg, geom.Point{X: g.Camera.X, Y: g.Camera.Y})

	screen.DrawImage(g.SceneTexture, &render.DrawImageOptions{})
	screen.DrawImage(g.LightMap, &render.DrawImageOptions{Blend: render.BlendMultiply})
}

func (g *Game) drawUI(screen render.Image) {
	status := fmt.Sprintf("Level %d  lights %d/%d", g.Level.Number, len(g.Level.Lights.Visible()), g.Level.Lights.Len())
	g.Renderer.DrawText(screen, status, 8, 8, whiteColor, 1.0)

	// Draw on-screen messages
	y := 30.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 8, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}
