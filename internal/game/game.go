// Package game is the windowed level viewer: it walks a hero light through
// generated levels and draws them with the light manager's masks.
package game

import (
	"errors"
	"fmt"
	"log"

	"chosenoffset.com/gloomdelve/internal/config"
	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/render"
	"chosenoffset.com/gloomdelve/internal/render/lighting"
	"chosenoffset.com/gloomdelve/internal/world/atlas"
	"chosenoffset.com/gloomdelve/internal/world/level"
	"chosenoffset.com/gloomdelve/internal/world/placement"
)

// ErrQuit is returned from Update when the player asks to leave
var ErrQuit = errors.New("quit")

// Game holds all viewer state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *config.Config
	Level        *level.Level
	Hero         geom.Cell
	Camera       Camera
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Tiles        *atlas.Atlas
	WhiteImg     render.Image
	SceneTexture render.Image
	LightMap     render.Image

	// Entities placed on the current level
	Placed []placement.Placement

	// UI state
	LightsOn bool
	Messages []Message

	// Debug
	FrameCount int
}

// NewGame builds the configured starting level
func NewGame(cfg *config.Config, r render.Renderer, input render.InputManager, tiles *atlas.Atlas, width, height int) (*Game, error) {
	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Config:       cfg,
		Renderer:     r,
		InputMgr:     input,
		Tiles:        tiles,
		LightsOn:     true,
	}

	// 3x3 so the light masks can sample the centre pixel
	g.WhiteImg = r.NewImage(3, 3)
	g.WhiteImg.Fill(whiteColor)

	if err := g.LoadLevel(cfg.StartLevel); err != nil {
		return nil, err
	}
	return g, nil
}

// Spawn implements placement.Spawner
func (g *Game) Spawn(kind placement.Kind, x, y, w, h int) {
	g.Placed = append(g.Placed, placement.Placement{Kind: kind, Cell: geom.Cell{X: x, Y: y}, W: w, H: h})
}

// LoadLevel builds level number and moves the hero to its spawn. The light
// manager carries over from the previous level.
func (g *Game) LoadLevel(number int) error {
	var lights *lighting.Manager
	if g.Level != nil {
		lights = g.Level.Lights
	}

	// A failed build leaves the current level and its markers in place
	prev := g.Placed
	g.Placed = nil
	lvl, err := level.Build(g.Config, number, g, lights)
	if err != nil {
		g.Placed = prev
		return fmt.Errorf("failed to load level %d: %w", number, err)
	}

	g.Level = lvl
	g.Hero = lvl.Dungeon.Spawn
	g.UpdateCamera()
	g.ShowMessage(fmt.Sprintf("Level %d (seed %d)", number, lvl.Seed))
	return nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}

	dx, dy := 0, 0
	switch {
	case g.InputMgr.IsKeyJustPressed(render.KeyW), g.InputMgr.IsKeyJustPressed(render.KeyUp):
		dy = -1
	case g.InputMgr.IsKeyJustPressed(render.KeyS), g.InputMgr.IsKeyJustPressed(render.KeyDown):
		dy = 1
	case g.InputMgr.IsKeyJustPressed(render.KeyA), g.InputMgr.IsKeyJustPressed(render.KeyLeft):
		dx = -1
	case g.InputMgr.IsKeyJustPressed(render.KeyD), g.InputMgr.IsKeyJustPressed(render.KeyRight):
		dx = 1
	}
	if dx != 0 || dy != 0 {
		g.Move(dx, dy)
	}

	// Toggle lighting with L key
	if g.InputMgr.IsKeyJustPressed(render.KeyL) {
		g.LightsOn = !g.LightsOn
		if g.LightsOn {
			g.ShowMessage("Lighting on")
		} else {
			g.ShowMessage("Lighting off")
		}
	}

	// Descend with Space while standing on the ladder
	if g.InputMgr.IsKeyJustPressed(render.KeySpace) {
		if g.Hero != g.Level.Dungeon.Ladder {
			g.ShowMessage("There is no ladder here")
		} else if err := g.LoadLevel(g.Level.Number + 1); err != nil {
			return err
		}
	}

	g.UpdateCamera()
	return nil
}

// Move steps the hero one cell if the target is walkable
func (g *Game) Move(dx, dy int) bool {
	next := geom.Cell{X: g.Hero.X + dx, Y: g.Hero.Y + dy}
	if !g.Level.Dungeon.Walkable(next.X, next.Y) {
		return false
	}
	g.Hero = next
	g.Level.Lights.SetHeroLight(g.heroPos())
	return true
}

func (g *Game) heroPos() geom.Point {
	return g.Hero.Center(g.Level.TileSize())
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// UpdateCamera updates the camera to follow the hero.
func (g *Game) UpdateCamera() {
	if g.Level == nil {
		return
	}
	pos := g.heroPos()
	g.Camera.X = pos.X - float64(g.ScreenWidth)/2
	g.Camera.Y = pos.Y - float64(g.ScreenHeight)/2

	// Clamp camera to map bounds
	tile := g.Level.TileSize()
	mapWidth := float64(g.Level.Dungeon.Grid.Width) * tile
	mapHeight := float64(g.Level.Dungeon.Grid.Height) * tile

	if g.Camera.X > mapWidth-float64(g.ScreenWidth) {
		g.Camera.X = mapWidth - float64(g.ScreenWidth)
	}
	if g.Camera.Y > mapHeight-float64(g.ScreenHeight) {
		g.Camera.Y = mapHeight - float64(g.ScreenHeight)
	}
	if g.Camera.X < 0 {
		g.Camera.X = 0
	}
	if g.Camera.Y < 0 {
		g.Camera.Y = 0
	}
}

// View returns the camera's rectangle in world pixels
func (g *Game) View() geom.Rect {
	return geom.Rect{X: int(g.Camera.X), Y: int(g.Camera.Y), W: g.ScreenWidth, H: g.ScreenHeight}
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})

	log.Printf("Message: %s", text)
}
