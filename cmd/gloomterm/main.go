// gloomterm walks generated levels in a terminal. Build:
//
//	go build -o gloomterm ./cmd/gloomterm
//
// Usage:
//
//	./gloomterm [-config config.json] [-seed N] [-level N] [-emoji] [-dump]
//
// With -dump the level is printed as ASCII and the program exits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/gloomdelve/internal/config"
	"chosenoffset.com/gloomdelve/internal/core/geom"
	"chosenoffset.com/gloomdelve/internal/render/lighting"
	"chosenoffset.com/gloomdelve/internal/render/term"
	"chosenoffset.com/gloomdelve/internal/world/level"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the JSON config (defaults are used if absent)")
	seed := flag.Uint64("seed", 0, "Override the base seed")
	start := flag.Int("level", -1, "Override the starting level")
	emoji := flag.Bool("emoji", false, "Draw with two-column emoji glyphs")
	dump := flag.Bool("dump", false, "Print the level as ASCII and exit")
	debug := flag.Bool("debug", false, "Enable DEBUG logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *start >= 0 {
		cfg.StartLevel = *start
	}
	cfg.Debug = cfg.Debug || *debug

	if *dump {
		lvl, err := level.Build(cfg, cfg.StartLevel, nil, nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(lvl.Dungeon.String())
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	theme := term.ASCII
	if *emoji {
		theme = term.Emoji
	}
	v, err := newViewer(cfg, screen, theme)
	if err == nil {
		err = v.run()
	}
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewer holds the current level and the hero's cell
type viewer struct {
	cfg      *config.Config
	screen   tcell.Screen
	renderer *term.Renderer
	lvl      *level.Level
	hero     geom.Cell
}

func newViewer(cfg *config.Config, screen tcell.Screen, theme term.Theme) (*viewer, error) {
	v := &viewer{cfg: cfg, screen: screen, renderer: term.New(screen, theme)}
	if err := v.load(cfg.StartLevel); err != nil {
		return nil, err
	}
	return v, nil
}

// load builds level number, reusing the light manager of the previous level
func (v *viewer) load(number int) error {
	var lights *lighting.Manager
	if v.lvl != nil {
		lights = v.lvl.Lights
	}
	lvl, err := level.Build(v.cfg, number, nil, lights)
	if err != nil {
		return err
	}
	v.lvl = lvl
	v.hero = lvl.Dungeon.Spawn
	return nil
}

func (v *viewer) run() error {
	for {
		v.draw()
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.renderer.Resize()
		case *tcell.EventKey:
			quit, err := v.handleKey(ev)
			if err != nil || quit {
				return err
			}
		case nil:
			return nil
		}
	}
}

func (v *viewer) draw() {
	v.renderer.Draw(v.lvl, v.hero)
}

// handleKey applies one key press. It reports whether the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) (bool, error) {
	dx, dy := 0, 0
	switch ev.Key() {
	case tcell.KeyUp:
		dy = -1
	case tcell.KeyDown:
		dy = 1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyEscape:
		return true, nil
	}

	switch ev.Rune() {
	case 'k', 'K':
		dy = -1
	case 'j', 'J':
		dy = 1
	case 'l', 'L':
		dx = 1
	case 'h', 'H':
		dx = -1
	case 'q', 'Q':
		return true, nil
	case '>':
		if v.hero == v.lvl.Dungeon.Ladder {
			return false, v.load(v.lvl.Number + 1)
		}
		return false, nil
	}

	next := geom.Cell{X: v.hero.X + dx, Y: v.hero.Y + dy}
	if (dx != 0 || dy != 0) && v.lvl.Dungeon.Walkable(next.X, next.Y) {
		v.hero = next
		v.lvl.Lights.SetHeroLight(next.Center(v.lvl.TileSize()))
	}
	return false, nil
}
