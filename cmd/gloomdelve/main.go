package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"chosenoffset.com/gloomdelve/internal/config"
	"chosenoffset.com/gloomdelve/internal/game"
	"chosenoffset.com/gloomdelve/internal/placeholders"
	ebitenrender "chosenoffset.com/gloomdelve/internal/render/ebiten"
	"chosenoffset.com/gloomdelve/internal/world/atlas"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the JSON config (defaults are used if absent)")
	seed := flag.Uint64("seed", 0, "Override the base seed")
	flag.Parse()

	screenWidth := 1280
	screenHeight := 800

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	if _, err := os.Stat(cfg.Assets.AtlasPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("Atlas %s not found, generating placeholder tiles", cfg.Assets.AtlasPath)
		if err := placeholders.GenerateAndSave(filepath.Dir(cfg.Assets.AtlasPath)); err != nil {
			log.Fatalf("Failed to generate placeholders: %v", err)
		}
	}
	tiles, err := atlas.Load(cfg.Assets.AtlasPath, loader)
	if err != nil {
		log.Fatalf("Failed to load atlas: %v", err)
	}
	if missing := tiles.Missing(dungeon.AllTileIDs()); len(missing) > 0 {
		log.Printf("WARNING: atlas %s has no tiles for %v", cfg.Assets.AtlasPath, missing)
	}

	g, err := game.NewGame(cfg, renderer, inputMgr, tiles, screenWidth, screenHeight)
	if err != nil {
		log.Fatal(err)
	}

	// Set up the window
	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Gloomdelve")
	engine.SetWindowResizable(true)

	log.Println("Starting game...")
	if err := engine.RunGame(g); err != nil && !errors.Is(err, game.ErrQuit) {
		log.Fatal(err)
	}
}
