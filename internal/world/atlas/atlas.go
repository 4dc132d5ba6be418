// Package atlas loads a tile sheet described by a JSON file and hands out the
// sub-image for a dungeon tile id.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/gloomdelve/internal/render"
)

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name   string `json:"name"`    // Tile id as emitted by the generator (e.g. "wall_mid")
	AtlasX int    `json:"atlas_x"` // X position in atlas (in tiles)
	AtlasY int    `json:"atlas_y"` // Y position in atlas (in tiles)
}

// Config defines the JSON configuration for a sprite atlas
type Config struct {
	Name       string           `json:"name"`
	ImagePath  string           `json:"image_path"`  // Relative to the JSON file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`
}

// Atlas represents a loaded sprite atlas
type Atlas struct {
	Config      *Config
	Image       render.Image
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// Parse decodes and validates an atlas configuration
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}

	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", config.TileWidth, config.TileHeight)
	}
	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}

	seen := make(map[string]bool, len(config.Tiles))
	for _, t := range config.Tiles {
		if t.Name == "" {
			return nil, fmt.Errorf("tile at (%d, %d) has no name", t.AtlasX, t.AtlasY)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate tile %q", t.Name)
		}
		seen[t.Name] = true
	}
	return &config, nil
}

// Load reads the JSON configuration at configPath and loads its image through loader
func Load(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}
	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}
	return New(config, img), nil
}

// New builds an atlas over an already loaded image
func New(config *Config, img render.Image) *Atlas {
	tilesByName := make(map[string]*TileDefinition, len(config.Tiles))
	for i := range config.Tiles {
		tilesByName[config.Tiles[i].Name] = &config.Tiles[i]
	}
	return &Atlas{Config: config, Image: img, TilesByName: tilesByName}
}

// Rect returns the pixel rectangle of a tile within the atlas image
func (a *Atlas) Rect(name string) (image.Rectangle, bool) {
	tile, ok := a.TilesByName[name]
	if !ok {
		return image.Rectangle{}, false
	}
	x := tile.AtlasX * a.Config.TileWidth
	y := tile.AtlasY * a.Config.TileHeight
	return image.Rect(x, y, x+a.Config.TileWidth, y+a.Config.TileHeight), true
}

// Tile returns the sub-image for a tile id
func (a *Atlas) Tile(name string) (render.Image, bool) {
	r, ok := a.Rect(name)
	if !ok {
		return nil, false
	}
	return a.Image.SubImage(r), true
}

// Missing returns the ids in names that the atlas has no tile for
func (a *Atlas) Missing(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := a.TilesByName[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
