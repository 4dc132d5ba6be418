// Package placeholders draws flat-colour stand-in tiles for every tile id the
// dungeon generator emits and writes them out as an atlas image plus its JSON.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/gloomdelve/internal/world/atlas"
	"chosenoffset.com/gloomdelve/internal/world/dungeon"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 16

// Columns is the width of the generated atlas in tiles
const Columns = 8

// ColorPalette defines colors for the dungeon tile families
var ColorPalette = struct {
	Floor    color.RGBA
	Wall     color.RGBA
	WallTop  color.RGBA
	Ladder   color.RGBA
	WaterRed color.RGBA
	Water    color.RGBA
	Goo      color.RGBA
	Banner   map[string]color.RGBA
}{
	Floor:    color.RGBA{70, 65, 60, 255},    // Dark stone gray
	Wall:     color.RGBA{130, 125, 115, 255}, // Lighter stone for walls
	WallTop:  color.RGBA{90, 85, 80, 255},
	Ladder:   color.RGBA{140, 100, 60, 255}, // Wood brown
	WaterRed: color.RGBA{200, 60, 50, 255},
	Water:    color.RGBA{60, 110, 220, 255},
	Goo:      color.RGBA{80, 180, 70, 255},
	Banner: map[string]color.RGBA{
		"red":    {180, 40, 40, 255},
		"blue":   {40, 60, 180, 255},
		"green":  {40, 150, 60, 255},
		"yellow": {210, 180, 40, 255},
	},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < TileSize; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, TileSize-1-i, borderColor)
		}
		for y := 0; y < TileSize; y++ {
			img.Set(i, y, borderColor)
			img.Set(TileSize-1-i, y, borderColor)
		}
	}
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "grid":
		for i := 0; i < TileSize; i += 4 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, i, patternColor)
				img.Set(i, x, patternColor)
			}
		}
	case "dots":
		quarter := TileSize / 4
		threeQuarter := 3 * TileSize / 4
		for _, p := range []image.Point{{quarter, quarter}, {threeQuarter, quarter}, {quarter, threeQuarter}, {threeQuarter, threeQuarter}} {
			img.Set(p.X, p.Y, patternColor)
		}
	case "rungs":
		for y := 2; y < TileSize; y += 4 {
			for x := 3; x < TileSize-3; x++ {
				img.Set(x, y, patternColor)
			}
		}
		for y := 0; y < TileSize; y++ {
			img.Set(3, y, patternColor)
			img.Set(TileSize-4, y, patternColor)
		}
	case "hole":
		mid := TileSize / 2
		for y := mid - 2; y <= mid+2; y++ {
			for x := mid - 2; x <= mid+2; x++ {
				img.Set(x, y, patternColor)
			}
		}
	case "banner":
		for y := 1; y < TileSize-3; y++ {
			for x := 4; x < TileSize-4; x++ {
				img.Set(x, y, patternColor)
			}
		}
	case "drip":
		mid := TileSize / 2
		for y := 0; y < TileSize; y++ {
			img.Set(mid, y, patternColor)
			img.Set(mid+1, y, patternColor)
		}
	}

	return img
}

// edgeTile draws a wall tile with a highlight along the named edges
func edgeTile(edges string) *image.RGBA {
	img := CreateSolidTile(ColorPalette.Wall)
	hi := Lighten(ColorPalette.Wall, 0.4)
	for i := 0; i < TileSize; i++ {
		if strings.Contains(edges, "t") {
			img.Set(i, 0, hi)
		}
		if strings.Contains(edges, "b") {
			img.Set(i, TileSize-1, hi)
		}
		if strings.Contains(edges, "l") {
			img.Set(0, i, hi)
		}
		if strings.Contains(edges, "r") {
			img.Set(TileSize-1, i, hi)
		}
	}
	return img
}

// TileImage draws the placeholder for one tile id
func TileImage(id string) *image.RGBA {
	p := ColorPalette
	switch id {
	case dungeon.TileFloor:
		return CreateSolidTile(p.Floor)
	case dungeon.TileLadder:
		return CreatePatternedTile(p.Floor, p.Ladder, "rungs")
	case dungeon.TileBasinRed:
		return CreatePatternedTile(p.Floor, p.WaterRed, "hole")
	case dungeon.TileBasinBlue:
		return CreatePatternedTile(p.Floor, p.Water, "hole")
	case dungeon.TileGooBase:
		return CreatePatternedTile(p.Floor, p.Goo, "dots")
	case dungeon.TileWallTopMid, dungeon.TileFountainTop:
		return CreateSolidTile(p.WallTop)
	case dungeon.TileWallMid:
		return CreateBorderedTile(p.Wall, Darken(p.Wall, 0.6), 1)
	case dungeon.TileFountainMidRed:
		return CreatePatternedTile(p.Wall, p.WaterRed, "drip")
	case dungeon.TileFountainMidBlue:
		return CreatePatternedTile(p.Wall, p.Water, "drip")
	case dungeon.TileGoo:
		return CreatePatternedTile(p.Wall, p.Goo, "drip")
	}

	switch {
	case strings.HasPrefix(id, "floor_"):
		return CreatePatternedTile(p.Floor, Darken(p.Floor, 0.8), "grid")
	case strings.HasPrefix(id, "wall_hole_"):
		return CreatePatternedTile(p.Wall, Darken(p.Wall, 0.3), "hole")
	case strings.HasPrefix(id, "wall_banner_"):
		return CreatePatternedTile(p.Wall, p.Banner[strings.TrimPrefix(id, "wall_banner_")], "banner")
	case strings.Contains(id, "top_left"):
		return edgeTile("tl")
	case strings.Contains(id, "top_right"):
		return edgeTile("tr")
	case strings.Contains(id, "bottom_left"):
		return edgeTile("bl")
	case strings.Contains(id, "bottom_right"):
		return edgeTile("br")
	case strings.HasSuffix(id, "_left"):
		return edgeTile("l")
	case strings.HasSuffix(id, "_right"):
		return edgeTile("r")
	}
	return CreateSolidTile(p.Wall)
}

// CreateAtlas creates a sprite atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * TileSize
		y := (i / columns) * TileSize
		draw.Draw(img, image.Rect(x, y, x+TileSize, y+TileSize), tile, image.Point{}, draw.Src)
	}
	return img
}

// BuildDungeonAtlas lays out one tile per generator tile id, row-major
func BuildDungeonAtlas(imageName string) (*image.RGBA, *atlas.Config) {
	ids := dungeon.AllTileIDs()
	cfg := &atlas.Config{
		Name:       "dungeon",
		ImagePath:  imageName,
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Tiles:      make([]atlas.TileDefinition, 0, len(ids)),
	}
	tiles := make([]*image.RGBA, 0, len(ids))
	for i, id := range ids {
		tiles = append(tiles, TileImage(id))
		cfg.Tiles = append(cfg.Tiles, atlas.TileDefinition{Name: id, AtlasX: i % Columns, AtlasY: i / Columns})
	}
	return CreateAtlas(tiles, Columns), cfg
}

// GenerateAndSave writes dungeon.png and dungeon.json into dir
func GenerateAndSave(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	img, cfg := BuildDungeonAtlas("dungeon.png")
	if err := SavePNG(img, filepath.Join(dir, "dungeon.png")); err != nil {
		return fmt.Errorf("failed to save atlas image: %w", err)
	}
	fmt.Printf("  Created %s (%d tiles)\n", filepath.Join(dir, "dungeon.png"), len(cfg.Tiles))

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "dungeon.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to save atlas config: %w", err)
	}
	fmt.Printf("  Created %s\n", filepath.Join(dir, "dungeon.json"))
	return nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
